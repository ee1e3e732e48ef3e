// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope of every JSON body served by the API, errors
// included, so the UI can rely on a single shape.
type Response struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	// Code is the machine readable error kind, empty on success.
	Code string `json:"code,omitempty"`
}

// WriteJSON writes data wrapped in a Response with the given status.
func WriteJSON(w http.ResponseWriter, status int, message string, data any) error {
	return write(w, Response{Data: data, Message: message, Status: status})
}

// WriteError writes an error Response carrying code.
func WriteError(w http.ResponseWriter, status int, code, message string) error {
	return write(w, Response{Message: message, Status: status, Code: code})
}

func write(w http.ResponseWriter, r Response) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.Status)
	return json.NewEncoder(w).Encode(r)
}
