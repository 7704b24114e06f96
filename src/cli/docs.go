// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the VeriBits security tools.
// It implements a Cobra-based command tree whose API-backed commands send one request
// to the VeriBits REST API and render the result as tables, panels and colored status
// lines, or as raw JSON with --json. The cert-convert and cert-info commands run
// locally, and the mcp command serves a subset of the tools over the Model Context
// Protocol on stdio. Configuration comes from the config package, overridden by the
// global flags, and diagnostics go through the logger package when --verbose is set.
package cli
