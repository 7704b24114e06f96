// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keystore

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat indicates a target format other than PKCS12 or JKS.
	ErrUnsupportedFormat = errors.New("keystore: unsupported format")

	// ErrInputNotReadable indicates that the certificate or key file cannot be read.
	ErrInputNotReadable = errors.New("keystore: input file not readable")

	// ErrInputNotPEM indicates that the certificate or key file is not PEM encoded.
	ErrInputNotPEM = errors.New("keystore: input file is not PEM encoded")

	// ErrOutputIsInput indicates that the output path points at one of the inputs.
	ErrOutputIsInput = errors.New("keystore: output path would overwrite an input file")

	// ErrExecutableNotFound is returned by a ProcessRunner when the executable is absent.
	ErrExecutableNotFound = errors.New("keystore: executable not found")
)

// Logical tool names used in errors, independent of the configured executables.
const (
	ToolBundler  = "pkcs12-bundler"
	ToolMigrator = "keystore-migrator"
)

const (
	bundlerHint  = "install OpenSSL: https://www.openssl.org/"
	migratorHint = "keytool (Java) must be installed for JKS conversion: https://www.oracle.com/java/"
)

// Kind classifies a conversion failure.
type Kind int

const (
	// KindInvalidInput covers missing or unreadable inputs and unsupported formats.
	KindInvalidInput Kind = iota + 1
	// KindExternalToolFailure means a tool ran but exited non-zero.
	KindExternalToolFailure
	// KindToolNotFound means a tool executable is absent from the environment.
	KindToolNotFound
	// KindIOFailure means the workspace or output file could not be created, moved or removed.
	KindIOFailure
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindExternalToolFailure:
		return "external tool failure"
	case KindToolNotFound:
		return "tool not found"
	case KindIOFailure:
		return "i/o failure"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by [Converter.Convert].
type Error struct {
	Kind  Kind
	Stage Stage
	// Tool is the logical tool name (ToolBundler or ToolMigrator), empty when no tool was involved.
	Tool string
	// Executable is the program that was invoked for Tool.
	Executable string
	// ExitCode is the tool exit status for KindExternalToolFailure.
	ExitCode int
	// Stderr is the diagnostic text captured from the tool, kept verbatim.
	Stderr string
	// Hint is a user-actionable suggestion, set when a tool is missing.
	Hint string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindExternalToolFailure:
		if e.Err != nil {
			return fmt.Sprintf("keystore: %s (%s) failed while %s: %v", e.Tool, e.Executable, e.Stage, e.Err)
		}
		msg := fmt.Sprintf("keystore: %s (%s) failed while %s: exit status %d", e.Tool, e.Executable, e.Stage, e.ExitCode)
		if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
			msg += ": " + stderr
		}
		return msg
	case KindToolNotFound:
		return fmt.Sprintf("keystore: %s (%s) not found", e.Tool, e.Executable)
	default:
		if e.Err != nil {
			return fmt.Sprintf("keystore: %s while %s: %v", e.Kind, e.Stage, e.Err)
		}
		return fmt.Sprintf("keystore: %s while %s", e.Kind, e.Stage)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is (or wraps) an [*Error] of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func invalidInput(err error) *Error {
	return &Error{Kind: KindInvalidInput, Stage: StageValidating, Err: err}
}

func ioFailure(stage Stage, err error) *Error {
	return &Error{Kind: KindIOFailure, Stage: stage, Err: err}
}
