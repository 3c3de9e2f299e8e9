// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// defaultErrorMessage is used when the server sent no message.
const defaultErrorMessage = "Bir hata oluştu"

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
	Code    string
	Details map[string]string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error   string            `json:"error"`
		Message string            `json:"message"`
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	_ = json.Unmarshal(body, &payload)

	e := &APIError{Status: status, Message: payload.Error, Code: payload.Code, Details: payload.Details}
	if e.Message == "" {
		e.Message = payload.Message
	}
	if e.Message == "" {
		e.Message = defaultErrorMessage
	}
	return e
}

func hasStatus(err error, statuses ...int) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, s := range statuses {
		if apiErr.Status == s {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

// IsValidation reports whether err rejected the request input, including
// rejected uploads.
func IsValidation(err error) bool {
	return hasStatus(err, http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType)
}
