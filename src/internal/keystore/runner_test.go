// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keystore_test

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/veribits-cli/src/internal/keystore"
)

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	runner := keystore.ExecRunner{}

	t.Run("Success", func(t *testing.T) {
		res, err := runner.Run(context.Background(), "sh", "-c", "exit 0")
		require.NoError(t, err)
		assert.Zero(t, res.ExitCode)
		assert.Empty(t, res.Stderr)
	})

	t.Run("Non-zero exit keeps stderr verbatim", func(t *testing.T) {
		res, err := runner.Run(context.Background(), "sh", "-c", "printf 'bad decrypt\\n' >&2; exit 3")
		require.NoError(t, err)
		assert.Equal(t, 3, res.ExitCode)
		assert.Equal(t, "bad decrypt\n", res.Stderr)
	})

	t.Run("Executable not found", func(t *testing.T) {
		_, err := runner.Run(context.Background(), "veribits-no-such-tool")
		assert.ErrorIs(t, err, keystore.ErrExecutableNotFound)
	})

	t.Run("Context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := runner.Run(ctx, "sh", "-c", "sleep 5; exit 0")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 3*time.Second, "cancellation must not wait for orphaned children")
	})
}
