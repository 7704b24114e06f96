// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package api is the HTTP client for the VeriBits REST API.
//
// Every endpoint answers with the envelope
//
//	{"success": true, "data": {...}, "error": {"message": "..."}}
//
// and the client unwraps it: data is decoded into the typed result of the
// calling method, while a failed envelope or an HTTP status of 400 and above
// becomes an [*Error]. 401 and 403 responses additionally match
// [ErrUnauthorized]. Endpoints that answer with a bare JSON object (health)
// are decoded as-is.
//
// Requests carry a Bearer token when an API key is configured, a User-Agent
// naming the CLI version, and a fresh X-Request-ID so a failing call can be
// traced on the server side.
package api
