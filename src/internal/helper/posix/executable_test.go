// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetExecutableName(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"relative path", []string{"./veribits"}, "veribits"},
		{"just filename", []string{"veribits"}, "veribits"},
		{"empty args", []string{}, FallbackName},
		{"empty first arg", []string{""}, FallbackName},
		{"foreign windows path", []string{`C:\Users\dev\bin\veribits.exe`}, "veribits"},
		{"windows path without extension", []string{`C:\tools\veribits`}, "veribits"},
	}
	if runtime.GOOS != "windows" {
		tests = append(tests,
			struct {
				name     string
				args     []string
				expected string
			}{"unix absolute path", []string{"/usr/local/bin/veribits"}, "veribits"},
			struct {
				name     string
				args     []string
				expected string
			}{"other extensions kept", []string{"/opt/veribits.bin"}, "veribits.bin"},
		)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := os.Args
			os.Args = tt.args
			defer func() { os.Args = orig }()

			assert.Equal(t, tt.expected, GetExecutableName())
		})
	}
}
