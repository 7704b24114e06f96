// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keystore

import (
	"fmt"
	"strings"
)

// Format identifies the keystore format produced by a conversion.
type Format string

const (
	// FormatPKCS12 is a PKCS#12 archive (.p12/.pfx).
	FormatPKCS12 Format = "pkcs12"
	// FormatJKS is a Java KeyStore archive (.jks).
	FormatJKS Format = "jks"
)

const (
	// DefaultAlias is the friendly name used when a request leaves Alias empty.
	DefaultAlias = "mycert"

	// FallbackPassword protects both JKS stages when no password is given.
	// PKCS12 output never falls back and is exported with the empty password.
	FallbackPassword = "changeit"
)

// ParseFormat converts user input such as "pkcs12", "p12", "PFX" or "jks" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pkcs12", "p12", "pfx":
		return FormatPKCS12, nil
	case "jks":
		return FormatJKS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool { return f == FormatPKCS12 || f == FormatJKS }

// DefaultOutput returns the output file name used when a request has no OutputPath.
func (f Format) DefaultOutput() string {
	if f == FormatJKS {
		return "certificate.jks"
	}
	return "certificate.p12"
}

// DisplayName returns a human readable name for terminal output.
func (f Format) DisplayName() string {
	switch f {
	case FormatPKCS12:
		return "PKCS12"
	case FormatJKS:
		return "JKS (Java KeyStore)"
	default:
		return string(f)
	}
}

// String implements fmt.Stringer.
func (f Format) String() string { return string(f) }
