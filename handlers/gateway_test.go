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

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	testutil.SeedEventCatalog(t, conn)
	cfg := testutil.GetTestConfig()
	log := logger.NewNop()
	fs := afero.NewMemMapFs()

	return NewGateway(
		NewFormHandler(conn, cfg, fs, log),
		NewMemberHandler(conn, cfg, log),
		NewLoginHandler(conn, cfg, log),
		NewIconHandler(fs, log),
	)
}

func TestGateway(t *testing.T) {
	g := newTestGateway(t)

	t.Run("get-form", func(t *testing.T) {
		w := httptest.NewRecorder()
		g.ServeHTTP(w, testutil.MakeRequest("GET", "/gateway.php?action=GET-FORM", nil, nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.FormResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Snapshot == nil || len(resp.Snapshot.Categories) != 1 {
			t.Errorf("Expected one category, got %+v", resp.Snapshot)
		}
	})

	t.Run("add-member then verify-login", func(t *testing.T) {
		form := url.Values{
			"display_name": {"Lee"},
			"email":        {"lee@example.com"},
			"password":     {"secret-pw"},
			"confirm":      {"secret-pw"},
		}
		w := httptest.NewRecorder()
		g.ServeHTTP(w, testutil.MakeFormRequest("POST", "/gateway.php?action=add-member", form))
		testutil.AssertStatus(t, w, http.StatusOK)

		w = httptest.NewRecorder()
		g.ServeHTTP(w, testutil.MakeRequest("POST", "/gateway.php?action=verify-login",
			models.LoginRequest{Username: "lee@example.com", Password: "secret-pw"}, nil))
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("list-icons", func(t *testing.T) {
		w := httptest.NewRecorder()
		g.ServeHTTP(w, testutil.MakeRequest("GET", "/gateway.php?action=list-icons&folder=assets/icons-30", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)
	})
}

func TestGateway_UnknownAction(t *testing.T) {
	g := newTestGateway(t)

	for _, path := range []string{"/gateway.php", "/gateway.php?action=drop-tables"} {
		w := httptest.NewRecorder()
		g.ServeHTTP(w, testutil.MakeRequest("GET", path, nil, nil))

		testutil.AssertStatus(t, w, http.StatusNotFound)
		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Error != "Unknown action" {
			t.Errorf("Expected 'Unknown action', got '%s'", resp.Error)
		}
	}
}
