// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// veribits is a command-line client for the VeriBits security tools.
//
// # Installation
//
//	go install github.com/H0llyW00dzZ/veribits-cli/cmd/veribits@latest
//
// # Usage
//
//	veribits COMMAND [ARGS] [FLAGS]
//
// # Global Flags
//
//	    --config     Config file (JSON or YAML), default $VERIBITS_CONFIG_FILE
//	    --api-url    API base URL, default $VERIBITS_API_URL or https://veribits.com/api/v1
//	    --api-key    API key, default $VERIBITS_API_KEY
//	    --timeout    Request timeout in seconds (default 30)
//	    --json       Print raw JSON results
//	-v, --verbose    Log requests and conversion stages to stderr
//	    --log-format Diagnostic log format: text or json
//
// # Examples
//
// Decode and verify a JWT:
//
//	veribits jwt-decode eyJhbGciOi... --secret s3cret --verify
//
// Look up MX records:
//
//	veribits dns example.com --type MX
//
// Convert a PEM certificate and key to a Java keystore locally:
//
//	veribits cert-convert cert.pem key.pem --format jks --password changeit -o server.jks
//
// Serve the tools to an MCP client over stdio:
//
//	veribits mcp
//
// The process exits with status 1 when a command fails and 130 when it is
// interrupted.
package main
