// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keystore

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/H0llyW00dzZ/veribits-cli/src/internal/helper/gc"
)

// ProcessResult is the outcome of a process that started and exited.
type ProcessResult struct {
	ExitCode int
	Stderr   string
}

// ProcessRunner runs an external program to completion.
//
// Run returns a result for any process that started, whatever its exit code.
// It returns an error wrapping [ErrExecutableNotFound] when name cannot be
// resolved, and any other error when the process could not be started or
// waited on.
type ProcessRunner interface {
	Run(ctx context.Context, name string, args ...string) (*ProcessResult, error)
}

// waitDelay bounds how long Run waits for the stderr pipe after the context
// kills the tool, since a grandchild may still hold it open.
const waitDelay = time.Second

// ExecRunner is the os/exec backed ProcessRunner.
type ExecRunner struct{}

// Run executes name with args, capturing stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (*ProcessResult, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExecutableNotFound, name, err)
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = buf
	cmd.WaitDelay = waitDelay

	runErr := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	res := &ProcessResult{Stderr: buf.String()}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, runErr
		}
		res.ExitCode = exitErr.ExitCode()
	}
	return res, nil
}
