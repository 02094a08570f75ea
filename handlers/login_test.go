// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/funmapco/funmap/logger"
	"github.com/funmapco/funmap/models"
	"github.com/funmapco/funmap/testutil"
)

func TestVerifyLogin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewLoginHandler(conn, testutil.GetTestConfig(), logger.NewNop())

	memberID := testutil.CreateTestMember(t, conn, "Mia@Example.com", "Mia", "member-pw", "mia")
	adminID := testutil.CreateTestAdmin(t, conn, "root@example.com", "Root", "admin-pw")

	tests := []struct {
		name     string
		username string
		password string
		role     string
		id       int64
	}{
		{"member by email", "mia@example.com", "member-pw", models.RoleMember, memberID},
		{"member by mixed case email", "MIA@EXAMPLE.COM", "member-pw", models.RoleMember, memberID},
		{"member by display name", "Mia", "member-pw", models.RoleMember, memberID},
		{"admin by email", "root@example.com", "admin-pw", models.RoleAdmin, adminID},
		{"admin by display name", " Root ", "admin-pw", models.RoleAdmin, adminID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/connectors/verify-login.php",
				models.LoginRequest{Username: tt.username, Password: tt.password}, nil)
			w := httptest.NewRecorder()
			h.VerifyLogin(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			var resp models.LoginResponse
			testutil.AssertJSON(t, w, &resp)
			if !resp.Success || resp.Role != tt.role || resp.User.ID != tt.id {
				t.Errorf("Expected %s %d, got %+v", tt.role, tt.id, resp)
			}
		})
	}
}

func TestVerifyLogin_MemberFields(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewLoginHandler(conn, testutil.GetTestConfig(), logger.NewNop())
	testutil.CreateTestMember(t, conn, "kai@example.com", "Kai", "pw", "kai")

	req := testutil.MakeRequest("POST", "/connectors/verify-login.php",
		models.LoginRequest{Username: "kai@example.com", Password: "pw"}, nil)
	w := httptest.NewRecorder()
	h.VerifyLogin(w, req)

	var resp models.LoginResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.User.MemberKey != "kai" || resp.User.DisplayName != "Kai" {
		t.Errorf("Unexpected user %+v", resp.User)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("Response must not carry the password hash")
	}
}

// Two members may share a display name; the password picks the account.
func TestVerifyLogin_SharedDisplayName(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewLoginHandler(conn, testutil.GetTestConfig(), logger.NewNop())
	testutil.CreateTestMember(t, conn, "first@example.com", "Sam", "first-pw", "sam")
	second := testutil.CreateTestMember(t, conn, "second@example.com", "Sam", "second-pw", "sam-2")

	req := testutil.MakeRequest("POST", "/connectors/verify-login.php",
		models.LoginRequest{Username: "Sam", Password: "second-pw"}, nil)
	w := httptest.NewRecorder()
	h.VerifyLogin(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.LoginResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.User.ID != second {
		t.Errorf("Expected member %d, got %d", second, resp.User.ID)
	}
}

func TestVerifyLogin_Failures(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewLoginHandler(conn, testutil.GetTestConfig(), logger.NewNop())
	testutil.CreateTestMember(t, conn, "mia@example.com", "Mia", "member-pw", "mia")

	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"wrong password", `{"username":"mia@example.com","password":"nope"}`, http.StatusUnauthorized, msgBadCredentials},
		{"unknown user", `{"username":"ghost","password":"member-pw"}`, http.StatusUnauthorized, msgBadCredentials},
		{"missing password", `{"username":"mia@example.com"}`, http.StatusBadRequest, "Missing credentials"},
		{"blank username", `{"username":"   ","password":"x"}`, http.StatusBadRequest, "Missing credentials"},
		{"invalid json", `{"username":`, http.StatusBadRequest, "Invalid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/connectors/verify-login.php", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			h.VerifyLogin(w, req)

			testutil.AssertStatus(t, w, tt.status)
			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Success || resp.Error != tt.msg {
				t.Errorf("Expected error '%s', got %+v", tt.msg, resp)
			}
		})
	}
}

func TestVerifyLogin_WithoutAdminsTable(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.Exec(t, conn, "DROP TABLE admins")
	h := NewLoginHandler(conn, testutil.GetTestConfig(), logger.NewNop())
	testutil.CreateTestMember(t, conn, "mia@example.com", "Mia", "member-pw", "mia")

	req := testutil.MakeRequest("POST", "/connectors/verify-login.php",
		models.LoginRequest{Username: "mia@example.com", Password: "member-pw"}, nil)
	w := httptest.NewRecorder()
	h.VerifyLogin(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestVerifyLogin_MethodNotAllowed(t *testing.T) {
	h := NewLoginHandler(nil, testutil.GetTestConfig(), logger.NewNop())

	w := httptest.NewRecorder()
	h.VerifyLogin(w, testutil.MakeRequest("GET", "/connectors/verify-login.php", nil, nil))

	testutil.AssertStatus(t, w, http.StatusMethodNotAllowed)
}
