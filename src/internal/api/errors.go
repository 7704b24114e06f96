// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRequest indicates that the API could not be reached at all.
	ErrRequest = errors.New("api: request failed")

	// ErrUnauthorized indicates a 401 or 403 response.
	ErrUnauthorized = errors.New("api: authentication failed, provide --api-key or set VERIBITS_API_KEY")
)

// Error is returned when the API answers with an HTTP error status or with
// an envelope whose success flag is false.
type Error struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Message is error.message from the envelope, when present.
	Message string
	// Body is the raw response body.
	Body string
	// RequestID is the X-Request-ID the client sent.
	RequestID string
	Err       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.StatusCode < http.StatusBadRequest {
		return "api: request rejected: " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("api: HTTP %d: %s (%v)", e.StatusCode, msg, e.Err)
	}
	return fmt.Sprintf("api: HTTP %d: %s", e.StatusCode, msg)
}

// Unwrap returns the sentinel classifying the failure, if any.
func (e *Error) Unwrap() error { return e.Err }

// envelopeError accepts both {"message": "..."} and a bare string.
type envelopeError struct{ Message string }

func (e *envelopeError) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Message = s
		return nil
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Message = obj.Message
	return nil
}

// envelope is the standard response wrapper.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *envelopeError  `json:"error"`
}
