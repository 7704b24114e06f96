// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keystore_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/veribits-cli/src/internal/helper/testcert"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/keystore"
	"github.com/H0llyW00dzZ/veribits-cli/src/logger"
)

type invocation struct {
	name string
	args []string
}

// fakeRunner records invocations and simulates the tools by writing the file
// named after -out or -destkeystore. behave may override the outcome.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []invocation
	behave func(call invocation) (*keystore.ProcessResult, error)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (*keystore.ProcessResult, error) {
	call := invocation{name: name, args: slices.Clone(args)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.behave != nil {
		if res, err := f.behave(call); res != nil || err != nil {
			return res, err
		}
	}

	for _, flag := range []string{"-out", "-destkeystore"} {
		if out := argAfter(call.args, flag); out != "" {
			if err := os.WriteFile(out, []byte(name+" output"), 0o600); err != nil {
				return nil, err
			}
		}
	}
	return &keystore.ProcessResult{}, nil
}

func (f *fakeRunner) invocations() []invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func argAfter(args []string, flag string) string {
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}

type fixture struct {
	dir      string
	certPath string
	keyPath  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	certPath, keyPath := testcert.New(t, "veribits.test").WriteFiles(t, dir)
	return fixture{dir: dir, certPath: certPath, keyPath: keyPath}
}

func (f fixture) request(format keystore.Format, out string) keystore.Request {
	return keystore.Request{
		CertificatePath: f.certPath,
		KeyPath:         f.keyPath,
		Format:          format,
		Password:        "s3cret",
		OutputPath:      filepath.Join(f.dir, out),
	}
}

// assertNoWorkspace fails when a JKS workspace directory was left in dir.
func assertNoWorkspace(t *testing.T, dir string) {
	t.Helper()
	leftovers, err := filepath.Glob(filepath.Join(dir, ".veribits-keystore-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "workspace left behind")
}

func TestConvertPKCS12(t *testing.T) {
	f := newFixture(t)
	runner := &fakeRunner{}
	conv := keystore.New(runner)

	req := f.request(keystore.FormatPKCS12, "out.p12")
	res, err := conv.Convert(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, req.OutputPath, res.OutputPath)
	assert.Equal(t, keystore.FormatPKCS12, res.Format)
	assert.Equal(t, keystore.DefaultAlias, res.Alias)
	assert.FileExists(t, req.OutputPath)

	calls := runner.invocations()
	require.Len(t, calls, 1)
	assert.Equal(t, "openssl", calls[0].name)
	assert.Equal(t, []string{
		"pkcs12", "-export",
		"-in", f.certPath,
		"-inkey", f.keyPath,
		"-out", req.OutputPath,
		"-name", "mycert",
		"-passout", "pass:s3cret",
	}, calls[0].args)

	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "only cert, key and output expected")
}

func TestConvertPKCS12EmptyPassword(t *testing.T) {
	f := newFixture(t)
	runner := &fakeRunner{}

	req := f.request(keystore.FormatPKCS12, "out.p12")
	req.Password = ""
	req.Alias = "server"

	_, err := keystore.New(runner).Convert(context.Background(), req)
	require.NoError(t, err)

	calls := runner.invocations()
	require.Len(t, calls, 1)
	assert.Equal(t, "pass:", argAfter(calls[0].args, "-passout"))
	assert.Equal(t, "server", argAfter(calls[0].args, "-name"))
}

func TestConvertJKS(t *testing.T) {
	f := newFixture(t)
	runner := &fakeRunner{}

	req := f.request(keystore.FormatJKS, "out.jks")
	res, err := keystore.New(runner).Convert(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, keystore.FormatJKS, res.Format)

	calls := runner.invocations()
	require.Len(t, calls, 2)

	bundleOut := argAfter(calls[0].args, "-out")
	assert.Equal(t, "openssl", calls[0].name)
	assert.NotEqual(t, req.OutputPath, bundleOut, "JKS must bundle into the workspace")
	assert.Equal(t, "pass:s3cret", argAfter(calls[0].args, "-passout"))

	assert.Equal(t, "keytool", calls[1].name)
	assert.Equal(t, bundleOut, argAfter(calls[1].args, "-srckeystore"))
	assert.Equal(t, "PKCS12", argAfter(calls[1].args, "-srcstoretype"))
	assert.Equal(t, "JKS", argAfter(calls[1].args, "-deststoretype"))
	assert.Equal(t, "s3cret", argAfter(calls[1].args, "-srcstorepass"))
	assert.Equal(t, "s3cret", argAfter(calls[1].args, "-deststorepass"))

	data, err := os.ReadFile(req.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "keytool output", string(data))

	assert.NoFileExists(t, bundleOut)
	assertNoWorkspace(t, f.dir)
}

func TestConvertJKSFallbackPassword(t *testing.T) {
	f := newFixture(t)
	runner := &fakeRunner{}

	req := f.request(keystore.FormatJKS, "out.jks")
	req.Password = ""

	_, err := keystore.New(runner).Convert(context.Background(), req)
	require.NoError(t, err)

	calls := runner.invocations()
	require.Len(t, calls, 2)
	assert.Equal(t, "pass:changeit", argAfter(calls[0].args, "-passout"))
	assert.Equal(t, "changeit", argAfter(calls[1].args, "-srcstorepass"))
	assert.Equal(t, "changeit", argAfter(calls[1].args, "-deststorepass"))
}

func TestConvertJKSOverwritesExistingOutput(t *testing.T) {
	f := newFixture(t)
	req := f.request(keystore.FormatJKS, "out.jks")
	require.NoError(t, os.WriteFile(req.OutputPath, []byte("stale"), 0o600))

	conv := keystore.New(&fakeRunner{})
	for range 2 {
		_, err := conv.Convert(context.Background(), req)
		require.NoError(t, err)
	}

	data, err := os.ReadFile(req.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "keytool output", string(data))
	assertNoWorkspace(t, f.dir)
}

func TestConvertDefaults(t *testing.T) {
	f := newFixture(t)
	t.Chdir(f.dir)

	_, err := keystore.New(&fakeRunner{}).Convert(context.Background(), keystore.Request{
		CertificatePath: f.certPath,
		KeyPath:         f.keyPath,
		Format:          keystore.FormatJKS,
	})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.dir, "certificate.jks"))
	assertNoWorkspace(t, f.dir)
}

func TestConvertToolFailures(t *testing.T) {
	exitWith := func(tool string, code int, stderr string) func(invocation) (*keystore.ProcessResult, error) {
		return func(call invocation) (*keystore.ProcessResult, error) {
			if call.name != tool {
				return nil, nil
			}
			// Leave a partial artifact behind like a real tool might.
			if out := argAfter(call.args, "-out"); out != "" {
				_ = os.WriteFile(out, []byte("partial"), 0o600)
			}
			return &keystore.ProcessResult{ExitCode: code, Stderr: stderr}, nil
		}
	}
	missing := func(tool string) func(invocation) (*keystore.ProcessResult, error) {
		return func(call invocation) (*keystore.ProcessResult, error) {
			if call.name != tool {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: %s", keystore.ErrExecutableNotFound, tool)
		}
	}

	tests := []struct {
		name      string
		format    keystore.Format
		behave    func(invocation) (*keystore.ProcessResult, error)
		wantKind  keystore.Kind
		wantStage keystore.Stage
		wantTool  string
		wantHint  string
		wantCalls int
	}{
		{
			name:      "PKCS12 bundler exits non-zero",
			format:    keystore.FormatPKCS12,
			behave:    exitWith("openssl", 1, "unable to load private key\n"),
			wantKind:  keystore.KindExternalToolFailure,
			wantStage: keystore.StageBundling,
			wantTool:  keystore.ToolBundler,
			wantCalls: 1,
		},
		{
			name:      "JKS bundler exits non-zero",
			format:    keystore.FormatJKS,
			behave:    exitWith("openssl", 1, "unable to load certificates\n"),
			wantKind:  keystore.KindExternalToolFailure,
			wantStage: keystore.StageBundling,
			wantTool:  keystore.ToolBundler,
			wantCalls: 1,
		},
		{
			name:      "JKS migrator exits non-zero",
			format:    keystore.FormatJKS,
			behave:    exitWith("keytool", 1, "keytool error: java.lang.Exception\n"),
			wantKind:  keystore.KindExternalToolFailure,
			wantStage: keystore.StageMigrating,
			wantTool:  keystore.ToolMigrator,
			wantCalls: 2,
		},
		{
			name:      "Bundler not installed",
			format:    keystore.FormatPKCS12,
			behave:    missing("openssl"),
			wantKind:  keystore.KindToolNotFound,
			wantStage: keystore.StageBundling,
			wantTool:  keystore.ToolBundler,
			wantHint:  "https://www.openssl.org/",
			wantCalls: 1,
		},
		{
			name:      "Migrator not installed",
			format:    keystore.FormatJKS,
			behave:    missing("keytool"),
			wantKind:  keystore.KindToolNotFound,
			wantStage: keystore.StageMigrating,
			wantTool:  keystore.ToolMigrator,
			wantHint:  "keytool (Java) must be installed",
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			runner := &fakeRunner{behave: tt.behave}
			req := f.request(tt.format, "out."+string(tt.format))

			res, err := keystore.New(runner).Convert(context.Background(), req)
			require.Error(t, err)
			assert.Nil(t, res)

			var kerr *keystore.Error
			require.ErrorAs(t, err, &kerr)
			assert.Equal(t, tt.wantKind, kerr.Kind)
			assert.Equal(t, tt.wantStage, kerr.Stage)
			assert.Equal(t, tt.wantTool, kerr.Tool)
			if tt.wantHint != "" {
				assert.Contains(t, kerr.Hint, tt.wantHint)
			}
			if tt.wantKind == keystore.KindExternalToolFailure {
				assert.Equal(t, 1, kerr.ExitCode)
				assert.NotEmpty(t, kerr.Stderr)
			}

			assert.Len(t, runner.invocations(), tt.wantCalls)
			assert.NoFileExists(t, req.OutputPath)
			assertNoWorkspace(t, f.dir)
		})
	}
}

func TestConvertFailureKeepsExistingOutput(t *testing.T) {
	f := newFixture(t)
	req := f.request(keystore.FormatJKS, "out.jks")
	require.NoError(t, os.WriteFile(req.OutputPath, []byte("previous keystore"), 0o600))

	runner := &fakeRunner{behave: func(call invocation) (*keystore.ProcessResult, error) {
		if call.name == "keytool" {
			return &keystore.ProcessResult{ExitCode: 1, Stderr: "bad password"}, nil
		}
		return nil, nil
	}}

	_, err := keystore.New(runner).Convert(context.Background(), req)
	require.Error(t, err)

	data, err := os.ReadFile(req.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "previous keystore", string(data))
	assertNoWorkspace(t, f.dir)
}

func TestConvertInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f fixture, req *keystore.Request)
		wantErr error
	}{
		{
			name:    "Unsupported format",
			mutate:  func(_ fixture, req *keystore.Request) { req.Format = "pem" },
			wantErr: keystore.ErrUnsupportedFormat,
		},
		{
			name:    "Missing certificate",
			mutate:  func(f fixture, req *keystore.Request) { req.CertificatePath = filepath.Join(f.dir, "nope.pem") },
			wantErr: keystore.ErrInputNotReadable,
		},
		{
			name:    "Empty key path",
			mutate:  func(_ fixture, req *keystore.Request) { req.KeyPath = "" },
			wantErr: keystore.ErrInputNotReadable,
		},
		{
			name: "Certificate is not PEM",
			mutate: func(f fixture, req *keystore.Request) {
				p := filepath.Join(f.dir, "cert.der")
				_ = os.WriteFile(p, []byte{0x30, 0x82, 0x01}, 0o600)
				req.CertificatePath = p
			},
			wantErr: keystore.ErrInputNotPEM,
		},
		{
			name:    "Key file holds no private key",
			mutate:  func(f fixture, req *keystore.Request) { req.KeyPath = f.certPath },
			wantErr: keystore.ErrInputNotPEM,
		},
		{
			name:    "Output overwrites certificate",
			mutate:  func(f fixture, req *keystore.Request) { req.OutputPath = f.certPath },
			wantErr: keystore.ErrOutputIsInput,
		},
		{
			name: "Output overwrites key via relative path",
			mutate: func(f fixture, req *keystore.Request) {
				req.OutputPath = filepath.Join(f.dir, ".", "key.pem")
			},
			wantErr: keystore.ErrOutputIsInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			runner := &fakeRunner{}
			req := f.request(keystore.FormatJKS, "out.jks")
			tt.mutate(f, &req)

			certBefore, err := os.ReadFile(f.certPath)
			require.NoError(t, err)

			_, err = keystore.New(runner).Convert(context.Background(), req)
			require.Error(t, err)
			assert.True(t, keystore.IsKind(err, keystore.KindInvalidInput))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, runner.invocations(), "no tool may run on invalid input")

			certAfter, err := os.ReadFile(f.certPath)
			require.NoError(t, err)
			assert.Equal(t, certBefore, certAfter)
			assertNoWorkspace(t, f.dir)
		})
	}
}

func TestConvertPanicReleasesWorkspace(t *testing.T) {
	f := newFixture(t)
	runner := &fakeRunner{behave: func(call invocation) (*keystore.ProcessResult, error) {
		if call.name == "keytool" {
			panic("migrator crashed")
		}
		return nil, nil
	}}

	req := f.request(keystore.FormatJKS, "out.jks")
	assert.PanicsWithValue(t, "migrator crashed", func() {
		_, _ = keystore.New(runner).Convert(context.Background(), req)
	})

	assert.NoFileExists(t, req.OutputPath)
	assertNoWorkspace(t, f.dir)
}

func TestConvertConcurrentWorkspacesAreIsolated(t *testing.T) {
	f := newFixture(t)
	runner := &fakeRunner{}
	conv := keystore.New(runner)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := f.request(keystore.FormatJKS, fmt.Sprintf("out-%d.jks", i))
			_, errs[i] = conv.Convert(context.Background(), req)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "conversion %d", i)
	}

	intermediates := map[string]bool{}
	for _, call := range runner.invocations() {
		if out := argAfter(call.args, "-out"); out != "" {
			intermediates[filepath.Dir(out)] = true
		}
	}
	assert.Len(t, intermediates, n, "each conversion needs its own workspace")
	assertNoWorkspace(t, f.dir)
}

func TestConvertCustomToolsAndLogger(t *testing.T) {
	f := newFixture(t)
	runner := &fakeRunner{}

	var logs bytes.Buffer
	log := logger.NewCLILogger()
	log.SetOutput(&logs)

	conv := keystore.New(runner,
		keystore.WithTools(keystore.Tools{Bundler: "/opt/ssl/bin/openssl"}),
		keystore.WithLogger(log),
	)

	_, err := conv.Convert(context.Background(), f.request(keystore.FormatJKS, "out.jks"))
	require.NoError(t, err)

	calls := runner.invocations()
	require.Len(t, calls, 2)
	assert.Equal(t, "/opt/ssl/bin/openssl", calls[0].name)
	assert.Equal(t, "keytool", calls[1].name)

	for _, stage := range []string{"validating", "bundling", "migrating", "done"} {
		assert.Contains(t, logs.String(), "keystore: "+stage)
	}
}
