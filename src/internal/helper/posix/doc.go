// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-style helpers for naming the running program.
//
// The veribits command tree uses [GetExecutableName] for its usage line, so
// help text follows whatever the binary was installed as:
//
//	rootCmd := &cobra.Command{
//	    Use: posix.GetExecutableName(),
//	}
//
// Cross-platform behavior:
//
//   - Linux/macOS: "/usr/local/bin/veribits" → "veribits"
//   - Windows: "C:\bin\veribits.exe" → "veribits"
//   - Fallback: empty os.Args → [FallbackName]
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
