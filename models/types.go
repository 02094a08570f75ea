// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"cmp"
	"strings"
)

// Login roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Field item kinds
const (
	ItemField    = "field"
	ItemFieldset = "fieldset"
	ItemRaw      = "raw"
)

// Request types

// Registration arrives form-encoded, not as JSON.
type RegisterMemberRequest struct {
	DisplayName string
	Email       string
	Password    string
	Confirm     string
	AvatarURL   string
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response types

type RegisterMemberResponse struct {
	Success     bool   `json:"success"`
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	MemberKey   string `json:"member_key"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

type MemberInfo struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	MemberKey   string `json:"member_key,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

type LoginResponse struct {
	Success bool       `json:"success"`
	Role    string     `json:"role"`
	User    MemberInfo `json:"user"`
}

type FormResponse struct {
	Success  bool      `json:"success"`
	Snapshot *Snapshot `json:"snapshot"`
}

type IconListResponse struct {
	Success bool     `json:"success"`
	Folder  string   `json:"folder"`
	Icons   []string `json:"icons"`
}

// Error response. Message and Error carry the same human-readable text;
// older clients read one, newer clients the other.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// CompareOrder orders by sort order ascending with nil last, then by
// case-insensitive name.
func CompareOrder(aOrder *int64, aName string, bOrder *int64, bName string) int {
	switch {
	case aOrder != nil && bOrder != nil && *aOrder != *bOrder:
		return cmp.Compare(*aOrder, *bOrder)
	case aOrder != nil && bOrder == nil:
		return -1
	case aOrder == nil && bOrder != nil:
		return 1
	}
	if c := cmp.Compare(strings.ToLower(aName), strings.ToLower(bName)); c != 0 {
		return c
	}
	return cmp.Compare(aName, bName)
}
