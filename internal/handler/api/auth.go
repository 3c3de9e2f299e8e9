// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/olegiv/ozpolat-cms/internal/auth"
	"github.com/olegiv/ozpolat-cms/internal/middleware"
	"github.com/olegiv/ozpolat-cms/internal/util"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthUser identifies the authenticated principal.
type AuthUser struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// CheckResponse is the body of GET /api/auth/check.
type CheckResponse struct {
	Authenticated bool      `json:"authenticated"`
	User          *AuthUser `json:"user,omitempty"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, expires, err := h.auth.Login(req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidPassword) {
			h.writeError(w, r, err)
			return
		}
		if err := h.sessions.LogOut(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "failed to destroy session", "error", err)
		}
		h.logger.WarnContext(r.Context(), "failed admin login", "ip", util.ClientIP(r))
		WriteJSON(w, http.StatusUnauthorized, successResponse{Success: false, Message: "Invalid password"})
		return
	}

	if err := h.sessions.LogIn(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "admin logged in", "ip", util.ClientIP(r))
	WriteJSON(w, http.StatusOK, LoginResponse{
		Success:   true,
		Message:   "Login successful",
		Token:     token,
		ExpiresAt: expires,
	})
}

// Check handles GET /api/auth/check.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetAdmin(r)
	if p == nil {
		WriteJSON(w, http.StatusUnauthorized, CheckResponse{Authenticated: false})
		return
	}
	WriteJSON(w, http.StatusOK, CheckResponse{
		Authenticated: true,
		User:          &AuthUser{ID: p.ID, Role: p.Role},
	})
}

// Logout handles POST /api/auth/logout and DELETE /api/auth.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.LogOut(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeSuccess(w, "Logged out")
}
