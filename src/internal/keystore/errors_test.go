// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keystore_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/H0llyW00dzZ/veribits-cli/src/internal/keystore"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *keystore.Error
		want string
	}{
		{
			name: "Tool exit status with stderr",
			err: &keystore.Error{
				Kind:       keystore.KindExternalToolFailure,
				Stage:      keystore.StageMigrating,
				Tool:       keystore.ToolMigrator,
				Executable: "keytool",
				ExitCode:   1,
				Stderr:     "keytool error: java.io.IOException\n",
			},
			want: "keystore: keystore-migrator (keytool) failed while migrating: exit status 1: keytool error: java.io.IOException",
		},
		{
			name: "Tool start failure",
			err: &keystore.Error{
				Kind:       keystore.KindExternalToolFailure,
				Stage:      keystore.StageBundling,
				Tool:       keystore.ToolBundler,
				Executable: "openssl",
				Err:        cause,
			},
			want: "keystore: pkcs12-bundler (openssl) failed while bundling: boom",
		},
		{
			name: "Tool not found",
			err: &keystore.Error{
				Kind:       keystore.KindToolNotFound,
				Stage:      keystore.StageBundling,
				Tool:       keystore.ToolBundler,
				Executable: "openssl",
			},
			want: "keystore: pkcs12-bundler (openssl) not found",
		},
		{
			name: "Invalid input",
			err:  &keystore.Error{Kind: keystore.KindInvalidInput, Stage: keystore.StageValidating, Err: cause},
			want: "keystore: invalid input while validating: boom",
		},
		{
			name: "I/O failure without cause",
			err:  &keystore.Error{Kind: keystore.KindIOFailure, Stage: keystore.StageDone},
			want: "keystore: i/o failure while done",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsKind(t *testing.T) {
	base := &keystore.Error{Kind: keystore.KindToolNotFound, Err: keystore.ErrExecutableNotFound}
	wrapped := fmt.Errorf("cert-convert: %w", base)

	assert.True(t, keystore.IsKind(wrapped, keystore.KindToolNotFound))
	assert.False(t, keystore.IsKind(wrapped, keystore.KindIOFailure))
	assert.False(t, keystore.IsKind(errors.New("plain"), keystore.KindToolNotFound))
	assert.ErrorIs(t, wrapped, keystore.ErrExecutableNotFound)
}

func TestKindAndStageStrings(t *testing.T) {
	assert.Equal(t, "external tool failure", keystore.KindExternalToolFailure.String())
	assert.Equal(t, "unknown", keystore.Kind(0).String())
	assert.Equal(t, "failed", keystore.StageFailed.String())
	assert.Equal(t, "unknown", keystore.Stage(42).String())
}
