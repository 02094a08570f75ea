// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/funmapco/funmap/auth"
	"github.com/funmapco/funmap/cliparse"
	"github.com/funmapco/funmap/db"
	"github.com/funmapco/funmap/logger"
	"github.com/funmapco/funmap/middleware"
	"github.com/funmapco/funmap/models"
	"github.com/funmapco/funmap/slug"
)

// maxMemberKeyAttempts bounds the -2, -3, ... suffix search.
const maxMemberKeyAttempts = 1000

var errMemberKeyExhausted = errors.New("no free member key")

type MemberHandler struct {
	conn     *sql.DB
	cfg      cliparse.Config
	log      *logger.Logger
	validate *validator.Validate
}

func NewMemberHandler(conn *sql.DB, cfg cliparse.Config, log *logger.Logger) *MemberHandler {
	return &MemberHandler{conn: conn, cfg: cfg, log: log, validate: validator.New()}
}

// Register handles POST /connectors/add-member.php
func (h *MemberHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFrom(r.Context(), h.log)

	if r.Method != http.MethodPost {
		middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req := models.RegisterMemberRequest{
		DisplayName: strings.TrimSpace(r.PostFormValue("display_name")),
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Password:    r.PostFormValue("password"),
		Confirm:     r.PostFormValue("confirm"),
		AvatarURL:   strings.TrimSpace(r.PostFormValue("avatar_url")),
	}

	// Validate input
	if msg := h.validateRegistration(req); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	d := h.cfg.Dialect()

	taken, err := h.emailTaken(ctx, d, req.Email)
	if err != nil {
		log.Error("failed to check email", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		middleware.ErrorResponse(w, http.StatusConflict, "Email already registered.")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	memberKey, err := h.uniqueMemberKey(ctx, d, req.DisplayName)
	if err != nil {
		log.Error("failed to assign member key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	id, err := db.InsertReturningID(ctx, h.conn, d, `
		INSERT INTO members (email, password_hash, display_name, member_key, avatar_url)
		VALUES (?, ?, ?, ?, ?)`,
		req.Email, hash, req.DisplayName, memberKey, sql.NullString{String: req.AvatarURL, Valid: req.AvatarURL != ""},
	)
	if db.IsUniqueViolation(err) {
		// Lost a race with a concurrent registration.
		middleware.ErrorResponse(w, http.StatusConflict, "Email already registered.")
		return
	}
	if err != nil {
		log.Error("failed to insert member", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	log.Info("member registered",
		"member_id", id,
		"member_key", memberKey,
		"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt),
	)

	middleware.JSONResponse(w, http.StatusOK, models.RegisterMemberResponse{
		Success:     true,
		ID:          id,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		MemberKey:   memberKey,
		AvatarURL:   req.AvatarURL,
	})
}

// validateRegistration returns the first problem with req, or "".
func (h *MemberHandler) validateRegistration(req models.RegisterMemberRequest) string {
	required := []struct{ value, field string }{
		{req.DisplayName, "Username"},
		{req.Email, "Email"},
		{req.Password, "Password"},
		{req.Confirm, "Confirm Password"},
	}
	for _, f := range required {
		if f.value == "" {
			return f.field + " is required."
		}
	}
	if err := h.validate.Var(req.Email, "email"); err != nil {
		return "Please enter a valid email address."
	}
	if req.Password != req.Confirm {
		return "Passwords do not match."
	}
	if len(req.Password) > auth.MaxPasswordBytes {
		return fmt.Sprintf("Password must be at most %d bytes.", auth.MaxPasswordBytes)
	}
	return ""
}

// emailTaken checks members and, when the table exists, admins. Emails
// compare case-insensitively.
func (h *MemberHandler) emailTaken(ctx context.Context, d db.Dialect, email string) (bool, error) {
	lower := strings.ToLower(email)
	for _, table := range []string{"members", "admins"} {
		found, err := h.exists(ctx, d, "SELECT id FROM "+table+" WHERE LOWER(email) = ? LIMIT 1", lower)
		if err != nil {
			if table == "admins" && db.IsMissingTable(err) {
				continue
			}
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

// uniqueMemberKey slugifies the display name and appends -2, -3, ... until
// the key is free among members and admin display names.
func (h *MemberHandler) uniqueMemberKey(ctx context.Context, d db.Dialect, displayName string) (string, error) {
	base := slug.Slugify(displayName)
	if base == "" {
		base = "user"
	}

	candidate := base
	for n := 2; n < maxMemberKeyAttempts; n++ {
		taken, err := h.exists(ctx, d, "SELECT id FROM members WHERE member_key = ? LIMIT 1", candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			taken, err = h.exists(ctx, d, "SELECT id FROM admins WHERE display_name = ? LIMIT 1", candidate)
			if err != nil && !db.IsMissingTable(err) {
				return "", err
			}
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return "", errMemberKeyExhausted
}

func (h *MemberHandler) exists(ctx context.Context, d db.Dialect, query string, args ...any) (bool, error) {
	var id int64
	err := h.conn.QueryRowContext(ctx, d.Rebind(query), args...).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
