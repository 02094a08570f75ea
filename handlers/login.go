// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/funmapco/funmap/auth"
	"github.com/funmapco/funmap/cliparse"
	"github.com/funmapco/funmap/db"
	"github.com/funmapco/funmap/logger"
	"github.com/funmapco/funmap/middleware"
	"github.com/funmapco/funmap/models"
)

const msgBadCredentials = "Incorrect email/username or password"

type LoginHandler struct {
	conn *sql.DB
	cfg  cliparse.Config
	log  *logger.Logger
}

func NewLoginHandler(conn *sql.DB, cfg cliparse.Config, log *logger.Logger) *LoginHandler {
	return &LoginHandler{conn: conn, cfg: cfg, log: log}
}

// VerifyLogin handles POST /connectors/verify-login.php
func (h *LoginHandler) VerifyLogin(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFrom(r.Context(), h.log)

	if r.Method != http.MethodPost {
		middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing credentials")
		return
	}

	// Admins first, then members
	for _, role := range []string{models.RoleAdmin, models.RoleMember} {
		user, ok, err := h.attempt(r.Context(), role, req.Username, req.Password)
		if err != nil {
			log.Error("login lookup failed", "role", role, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error")
			return
		}
		if ok {
			log.Info("login succeeded", "role", role, "user_id", user.ID)
			middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
				Success: true,
				Role:    role,
				User:    user,
			})
			return
		}
	}

	log.Warn("login failed", "ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt))
	middleware.ErrorResponse(w, http.StatusUnauthorized, msgBadCredentials)
}

// attempt looks username up by email or display name in the role's table
// and checks password against every match. A missing admins table counts
// as no match.
func (h *LoginHandler) attempt(ctx context.Context, role, username, password string) (models.MemberInfo, bool, error) {
	d := h.cfg.Dialect()

	query := `SELECT id, email, display_name, member_key, avatar_url, password_hash
		FROM members WHERE LOWER(email) = ? OR display_name = ? ORDER BY id`
	if role == models.RoleAdmin {
		query = `SELECT id, email, display_name, NULL, NULL, password_hash
		FROM admins WHERE LOWER(email) = ? OR display_name = ? ORDER BY id`
	}

	rows, err := h.conn.QueryContext(ctx, d.Rebind(query), strings.ToLower(username), username)
	if err != nil {
		if role == models.RoleAdmin && db.IsMissingTable(err) {
			return models.MemberInfo{}, false, nil
		}
		return models.MemberInfo{}, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			info            models.MemberInfo
			memberKey, avat sql.NullString
			hash            string
		)
		if err := rows.Scan(&info.ID, &info.Email, &info.DisplayName, &memberKey, &avat, &hash); err != nil {
			return models.MemberInfo{}, false, err
		}
		if auth.CheckPassword(password, hash) {
			info.MemberKey = memberKey.String
			info.AvatarURL = avat.String
			return info, true, nil
		}
	}
	return models.MemberInfo{}, false, rows.Err()
}
