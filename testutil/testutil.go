// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/funmapco/funmap/auth"
	"github.com/funmapco/funmap/cliparse"
	"github.com/funmapco/funmap/db"
)

// TestDBURL is an in-memory SQLite database, private to one connection.
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, db.SQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(ctx, conn, db.SQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: string(db.SQLite),
		IconRoot:     ".",
		LogMode:      "dev",
		IPHashSalt:   "test-ip-salt",
	}
}

// Exec runs a statement and fails the test on error
func Exec(t *testing.T, conn *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := conn.Exec(query, args...); err != nil {
		t.Fatalf("Failed to exec %q: %v", query, err)
	}
}

// CreateTestMember inserts a member with a bcrypt-hashed password and
// returns its id
func CreateTestMember(t *testing.T, conn *sql.DB, email, displayName, password, memberKey string) int64 {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	id, err := db.InsertReturningID(context.Background(), conn, db.SQLite, `
		INSERT INTO members (email, password_hash, display_name, member_key)
		VALUES (?, ?, ?, ?)`, email, hash, displayName, memberKey)
	if err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}
	return id
}

// CreateTestAdmin inserts an admin and returns its id
func CreateTestAdmin(t *testing.T, conn *sql.DB, email, displayName, password string) int64 {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	id, err := db.InsertReturningID(context.Background(), conn, db.SQLite, `
		INSERT INTO admins (email, password_hash, display_name)
		VALUES (?, ?, ?)`, email, hash, displayName)
	if err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}
	return id
}

// SeedEventCatalog loads a small catalog: category Events with subcategory
// Concerts whose field type 1 holds [field=5] and [fieldset=7], and
// fieldset 7 bundles fields 8 and 9.
func SeedEventCatalog(t *testing.T, conn *sql.DB) {
	t.Helper()

	Exec(t, conn, `INSERT INTO fields (id, field_key, field_name, type, required) VALUES
		(5, 'title', 'Title', 'text', 1),
		(8, 'address', 'Address', 'location', 0),
		(9, 'venue_name', NULL, 'text', 0)`)
	Exec(t, conn, `INSERT INTO fieldsets (id, fieldset_key, fieldset_name, field_id) VALUES (7, 'venue', 'Venue', '8,9')`)
	Exec(t, conn, `INSERT INTO field_types (id, field_type_key, field_type_name, field_type_item_1, field_type_item_2)
		VALUES (1, 'event_details', 'Event details', 'Event name [field=5]', 'Venue [fieldset=7]')`)
	Exec(t, conn, `INSERT INTO categories (id, category_name, sort_order, icon_path) VALUES (1, 'Events', 1, 'assets/icons-20/events-20.png')`)
	Exec(t, conn, `INSERT INTO subcategories (id, category_id, subcategory_name, field_type_id, metadata_json)
		VALUES (10, 1, 'Concerts', '[1]', '{"versionPriceCurrencies":["usd"]}')`)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a form-encoded HTTP test request
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
