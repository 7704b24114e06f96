// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// FallbackName is returned when os.Args[0] is unavailable.
const FallbackName = "veribits"

// GetExecutableName returns the executable name without directory or .exe suffix.
//
// Returns:
//   - string: Clean executable name suitable for CLI usage
func GetExecutableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return FallbackName
	}
	return baseName(os.Args[0])
}

// baseName strips the directory from path using both separators, so a
// Windows path is handled on Unix as well.
func baseName(path string) string {
	name := filepath.Base(path)

	if strings.ContainsAny(name, `/\`) {
		parts := strings.FieldsFunc(name, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			name = parts[len(parts)-1]
		}
	}

	return strings.TrimSuffix(name, ".exe")
}
