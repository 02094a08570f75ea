// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"

	"github.com/funmapco/funmap/logger"
	"github.com/funmapco/funmap/models"
	"github.com/funmapco/funmap/testutil"
)

// TestConcurrentRegistrationsSameEmail verifies that racing sign-ups for one
// email address create exactly one member
func TestConcurrentRegistrationsSameEmail(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewMemberHandler(conn, testutil.GetTestConfig(), logger.NewNop())

	const attempts = 8
	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			form := registrationForm(fmt.Sprintf("Racer %d", n), "race@example.com")
			w := httptest.NewRecorder()
			h.Register(w, testutil.MakeFormRequest("POST", "/connectors/add-member.php", form))

			switch w.Code {
			case http.StatusOK:
				successCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			default:
				t.Errorf("Racer %d: unexpected status %d: %s", n, w.Code, w.Body.String())
			}
		}(i)
	}
	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful registration, got %d", successCount.Load())
	}
	if conflictCount.Load() != attempts-1 {
		t.Errorf("Expected %d conflicts, got %d", attempts-1, conflictCount.Load())
	}

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM members WHERE email = ?", "race@example.com").Scan(&count); err != nil {
		t.Fatalf("Failed to count members: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 member row, got %d", count)
	}
}

// TestConcurrentFormReads verifies that simultaneous snapshot builds all see
// the same catalog
func TestConcurrentFormReads(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedEventCatalog(t, conn)
	h := NewFormHandler(conn, testutil.GetTestConfig(), afero.NewMemMapFs(), logger.NewNop())

	const readers = 10
	var wg sync.WaitGroup
	var okCount atomic.Int32

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := httptest.NewRecorder()
			h.GetForm(w, testutil.MakeRequest("GET", "/connectors/get-form.php", nil, nil))
			if w.Code != http.StatusOK {
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
				return
			}

			var resp models.FormResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Errorf("Failed to decode response: %v", err)
				return
			}
			if got := len(resp.Snapshot.SubcategoryFields["Concerts"]); got != 3 {
				t.Errorf("Expected 3 Concerts fields, got %d", got)
				return
			}
			okCount.Add(1)
		}()
	}
	wg.Wait()

	if okCount.Load() != readers {
		t.Errorf("Expected %d successful reads, got %d", readers, okCount.Load())
	}
}
