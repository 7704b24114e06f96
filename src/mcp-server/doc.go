// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes VeriBits tools over the Model Context Protocol ([MCP]).
//
// The server speaks MCP on stdio and offers the local keystore converter and
// certificate inspector together with a subset of the VeriBits API (JWT
// decoding, hashing and DNS validation). Tool failures are reported as tool
// results with IsError set, never as protocol errors, so clients can show
// them to the user. Stdout belongs to the protocol; diagnostics go to the
// configured logger.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
