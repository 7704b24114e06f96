// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotATerminal is returned by --prompt-password when stdin is not a terminal.
var ErrNotATerminal = errors.New("--prompt-password requires an interactive terminal")

// terminalPassword returns a reader that prompts on w and reads a password
// from stdin without echo.
func terminalPassword(w io.Writer) func(prompt string) (string, error) {
	return func(prompt string) (string, error) {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return "", ErrNotATerminal
		}
		fmt.Fprint(w, prompt)
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(pw), nil
	}
}
