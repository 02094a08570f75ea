// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/funmapco/funmap/logger"
	"github.com/funmapco/funmap/models"
	"github.com/funmapco/funmap/testutil"
)

func TestListIcons(t *testing.T) {
	fs := iconFs(t,
		"assets/icons-20/b-20.png",
		"assets/icons-20/a-20.svg",
		"assets/icons-20/notes.md",
		"assets/icons-30/c-30.png",
	)
	h := NewIconHandler(fs, logger.NewNop())

	w := httptest.NewRecorder()
	h.ListIcons(w, testutil.MakeRequest("GET", "/connectors/list-icons.php?folder=assets/icons-20/", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.IconListResponse
	testutil.AssertJSON(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "assets/icons-20", resp.Folder)
	assert.Equal(t, []string{"assets/icons-20/a-20.svg", "assets/icons-20/b-20.png"}, resp.Icons)
}

func TestListIcons_UnknownFolder(t *testing.T) {
	h := NewIconHandler(iconFs(t), logger.NewNop())

	w := httptest.NewRecorder()
	h.ListIcons(w, testutil.MakeRequest("GET", "/connectors/list-icons.php?folder=assets/icons-99", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.IconListResponse
	testutil.AssertJSON(t, w, &resp)
	assert.NotNil(t, resp.Icons)
	assert.Empty(t, resp.Icons)
}

func TestListIcons_BadRequests(t *testing.T) {
	h := NewIconHandler(iconFs(t), logger.NewNop())

	tests := []struct {
		name  string
		query string
		msg   string
	}{
		{"missing folder", "", "Folder parameter is required"},
		{"outside icon tree", "?folder=uploads", "Invalid folder"},
		{"traversal", "?folder=assets/icons-30/../../etc", "Invalid folder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ListIcons(w, testutil.MakeRequest("GET", "/connectors/list-icons.php"+tt.query, nil, nil))

			testutil.AssertStatus(t, w, http.StatusBadRequest)
			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Equal(t, tt.msg, resp.Error)
		})
	}
}
