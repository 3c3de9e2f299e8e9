// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Admin identity carried by every token.
const (
	AdminSubject = "admin"
	RoleAdmin    = "admin"
)

// MinSecretLength is the shortest accepted signing secret.
const MinSecretLength = 32

// Auth errors.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
	ErrWeakSecret      = fmt.Errorf("signing secret must be at least %d bytes", MinSecretLength)
)

// Claims are the JWT claims of an admin token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator checks the admin password and signs tokens.
type Authenticator struct {
	password string
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewAuthenticator returns an Authenticator for the configured admin
// password (plain or argon2id hash).
func NewAuthenticator(password, secret string, lifetime time.Duration) (*Authenticator, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if lifetime <= 0 {
		lifetime = 7 * 24 * time.Hour
	}
	return &Authenticator{
		password: password,
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

// Lifetime returns how long issued tokens stay valid.
func (a *Authenticator) Lifetime() time.Duration {
	return a.lifetime
}

// Login verifies password and returns a signed token and its expiry.
func (a *Authenticator) Login(password string) (string, time.Time, error) {
	ok, err := MatchAdminPassword(a.password, password)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("checking password: %w", err)
	}
	if !ok {
		return "", time.Time{}, ErrInvalidPassword
	}
	return a.Issue()
}

// Issue signs a new admin token.
func (a *Authenticator) Issue() (string, time.Time, error) {
	now := a.now()
	exp := now.Add(a.lifetime)
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   AdminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses a token and checks signature, expiry and role.
func (a *Authenticator) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Role != RoleAdmin || claims.Subject != AdminSubject {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
