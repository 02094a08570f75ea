// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/funmapco/funmap/middleware"
)

// Gateway dispatches /gateway.php?action=<name> to a connector.
type Gateway struct {
	actions map[string]http.HandlerFunc
}

func NewGateway(form *FormHandler, members *MemberHandler, login *LoginHandler, icons *IconHandler) *Gateway {
	return &Gateway{actions: map[string]http.HandlerFunc{
		"get-form":     form.GetForm,
		"add-member":   members.Register,
		"verify-login": login.VerifyLogin,
		"list-icons":   icons.ListIcons,
	}}
}

// ServeHTTP handles /gateway.php
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("action")))
	handler, ok := g.actions[action]
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown action")
		return
	}
	handler(w, r)
}
