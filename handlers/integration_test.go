// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/spf13/afero"

	"github.com/funmapco/funmap/logger"
	"github.com/funmapco/funmap/models"
	"github.com/funmapco/funmap/testutil"
)

// TestMemberAndFormWorkflow tests the complete end-to-end flow:
// 1. Load the form snapshot
// 2. Register a member
// 3. Reject a second registration with the same email
// 4. Log in with email and with display name
// 5. Log in as an admin
func TestMemberAndFormWorkflow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedEventCatalog(t, conn)
	testutil.CreateTestAdmin(t, conn, "ops@example.com", "Ops", "ops-password")

	cfg := testutil.GetTestConfig()
	log := logger.NewNop()
	icons := afero.NewMemMapFs()
	if err := icons.MkdirAll("assets/icons-30", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(icons, "assets/icons-30/events-30.png", []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	formHandler := NewFormHandler(conn, cfg, icons, log)
	memberHandler := NewMemberHandler(conn, cfg, log)
	loginHandler := NewLoginHandler(conn, cfg, log)

	// Step 1: Load the form
	w := httptest.NewRecorder()
	formHandler.GetForm(w, testutil.MakeRequest("GET", "/connectors/get-form.php", nil, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 1 - Get form failed: %d - %s", w.Code, w.Body.String())
	}
	var formResp models.FormResponse
	testutil.AssertJSON(t, w, &formResp)
	snap := formResp.Snapshot
	if len(snap.Categories) != 1 || len(snap.Categories[0].Subcategories) != 1 {
		t.Fatalf("Step 1 - Unexpected catalog: %+v", snap.Categories)
	}
	if key := snap.SubcategoryKeys["Concerts"]; key != "concerts" {
		t.Errorf("Step 1 - Expected subcategory key 'concerts', got '%s'", key)
	}
	if len(snap.Warnings) != 0 {
		t.Errorf("Step 1 - Expected no warnings, got %v", snap.Warnings)
	}
	t.Logf("Step 1 - Snapshot has %d field types", len(snap.FieldTypes))

	// Step 2: Register
	form := url.Values{
		"display_name": {"Jo Lane"},
		"email":        {"jo@example.com"},
		"password":     {"jo-password"},
		"confirm":      {"jo-password"},
	}
	w = httptest.NewRecorder()
	memberHandler.Register(w, testutil.MakeFormRequest("POST", "/connectors/add-member.php", form))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Register failed: %d - %s", w.Code, w.Body.String())
	}
	var regResp models.RegisterMemberResponse
	testutil.AssertJSON(t, w, &regResp)
	t.Logf("Step 2 - Registered member %d as %s", regResp.ID, regResp.MemberKey)

	// Step 3: Same email again
	form.Set("email", "JO@example.com")
	form.Set("display_name", "Someone Else")
	w = httptest.NewRecorder()
	memberHandler.Register(w, testutil.MakeFormRequest("POST", "/connectors/add-member.php", form))
	if w.Code != http.StatusConflict {
		t.Errorf("Step 3 - Expected 409, got %d", w.Code)
	}

	// Step 4: Member login
	for _, username := range []string{"jo@example.com", "Jo Lane"} {
		w = httptest.NewRecorder()
		loginHandler.VerifyLogin(w, testutil.MakeRequest("POST", "/connectors/verify-login.php",
			models.LoginRequest{Username: username, Password: "jo-password"}, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Step 4 - Login as %q failed: %d - %s", username, w.Code, w.Body.String())
		}
		var loginResp models.LoginResponse
		testutil.AssertJSON(t, w, &loginResp)
		if loginResp.Role != models.RoleMember || loginResp.User.ID != regResp.ID {
			t.Errorf("Step 4 - Unexpected login %+v", loginResp)
		}
	}

	// Step 5: Admin login
	w = httptest.NewRecorder()
	loginHandler.VerifyLogin(w, testutil.MakeRequest("POST", "/connectors/verify-login.php",
		models.LoginRequest{Username: "ops@example.com", Password: "ops-password"}, nil))
	var adminResp models.LoginResponse
	testutil.AssertJSON(t, w, &adminResp)
	if adminResp.Role != models.RoleAdmin {
		t.Errorf("Step 5 - Expected admin role, got '%s'", adminResp.Role)
	}
}
