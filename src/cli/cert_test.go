// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"software.sslmate.com/src/go-pkcs12"

	"github.com/H0llyW00dzZ/veribits-cli/src/cli"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/helper/testcert"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/keystore"
)

// keystoreRunner stands in for openssl and keytool. The bundler writes a
// real PKCS12 file for pair so that --verify can open it.
type keystoreRunner struct {
	pair    *testcert.Pair
	missing string
	calls   [][]string
}

func (r *keystoreRunner) Run(_ context.Context, name string, args ...string) (*keystore.ProcessResult, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	if name == r.missing {
		return nil, fmt.Errorf("%w: %s", keystore.ErrExecutableNotFound, name)
	}

	switch name {
	case "openssl":
		password := strings.TrimPrefix(argAfter(args, "-passout"), "pass:")
		enc := pkcs12.Modern
		if password == "" {
			enc = pkcs12.LegacyRC2
		}
		data, err := enc.Encode(r.pair.Key, r.pair.Cert, nil, password)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(argAfter(args, "-out"), data, 0o600); err != nil {
			return nil, err
		}
	case "keytool":
		if err := os.WriteFile(argAfter(args, "-destkeystore"), []byte("jks"), 0o600); err != nil {
			return nil, err
		}
	}
	return &keystore.ProcessResult{}, nil
}

func (r *keystoreRunner) argsOf(name string) []string {
	for _, c := range r.calls {
		if c[0] == name {
			return c[1:]
		}
	}
	return nil
}

func argAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func certFixture(t *testing.T) (pair *testcert.Pair, dir, certPath, keyPath string) {
	t.Helper()
	pair = testcert.New(t, "veribits.test")
	dir = t.TempDir()
	certPath, keyPath = pair.WriteFiles(t, dir)
	return pair, dir, certPath, keyPath
}

func TestCertConvertPKCS12Verify(t *testing.T) {
	pair, dir, certPath, keyPath := certFixture(t)
	runner := &keystoreRunner{pair: pair}
	out := filepath.Join(dir, "out.p12")

	res := run(t, []cli.Option{cli.WithProcessRunner(runner)},
		"cert-convert", certPath, keyPath, "-p", "s3cret", "-o", out, "--verify")
	require.NoError(t, res.err, res.stderr)

	assert.Contains(t, res.stdout, "✓ Certificate converted successfully!")
	assert.Contains(t, res.stdout, "Format: PKCS12")
	assert.Contains(t, res.stdout, "Output File: "+out)
	assert.Contains(t, res.stdout, "Alias: mycert")
	assert.Contains(t, res.stdout, "Keystore Verification")
	assert.Contains(t, res.stdout, "Private Key: Yes")
	assert.Contains(t, res.stdout, "└── [✓] veribits.test (Self-Signed Certificate)")
	assert.Contains(t, res.stdout, "Store the keystore file securely and use a strong password.")
	assert.Contains(t, res.stdout, "This conversion was performed locally on your machine.")

	args := runner.argsOf("openssl")
	assert.Equal(t, "pass:s3cret", argAfter(args, "-passout"))
	assert.Equal(t, "mycert", argAfter(args, "-name"))
	assert.Nil(t, runner.argsOf("keytool"))
}

func TestCertConvertJKS(t *testing.T) {
	pair, dir, certPath, keyPath := certFixture(t)
	runner := &keystoreRunner{pair: pair}
	out := filepath.Join(dir, "out.jks")

	res := run(t, []cli.Option{cli.WithProcessRunner(runner)},
		"cert-convert", certPath, keyPath, "--format", "JKS", "-a", "server", "-o", out, "--verify")
	require.NoError(t, res.err, res.stderr)

	assert.Contains(t, res.stdout, "Format: JKS (Java KeyStore)")
	assert.Contains(t, res.stdout, "--verify is only supported for PKCS12 output")
	assert.NotContains(t, res.stdout, "Keystore Verification")
	assert.FileExists(t, out)

	require.Len(t, runner.calls, 2)
	assert.Equal(t, "openssl", runner.calls[0][0])
	assert.Equal(t, "keytool", runner.calls[1][0])
	assert.Equal(t, "pass:changeit", argAfter(runner.argsOf("openssl"), "-passout"))
	assert.Equal(t, "server", argAfter(runner.argsOf("openssl"), "-name"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".veribits-keystore-"), "workspace %s left behind", e.Name())
	}
}

func TestCertConvertPasswordPrompt(t *testing.T) {
	pair, dir, certPath, keyPath := certFixture(t)
	runner := &keystoreRunner{pair: pair}

	var prompted string
	reader := cli.WithPasswordReader(func(prompt string) (string, error) {
		prompted = prompt
		return "typed", nil
	})

	res := run(t, []cli.Option{cli.WithProcessRunner(runner), reader},
		"cert-convert", certPath, keyPath, "--prompt-password", "-o", filepath.Join(dir, "p.p12"), "--verify")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "Keystore password: ", prompted)
	assert.Equal(t, "pass:typed", argAfter(runner.argsOf("openssl"), "-passout"))

	res = run(t, []cli.Option{cli.WithProcessRunner(runner), reader},
		"cert-convert", certPath, keyPath, "--prompt-password", "--password", "x")
	assert.ErrorContains(t, res.err, "none of the others can be")

	failing := cli.WithPasswordReader(func(string) (string, error) { return "", cli.ErrNotATerminal })
	res = run(t, []cli.Option{cli.WithProcessRunner(runner), failing},
		"cert-convert", certPath, keyPath, "--prompt-password")
	assert.ErrorIs(t, res.err, cli.ErrNotATerminal)
}

func TestCertConvertJSON(t *testing.T) {
	pair, dir, certPath, keyPath := certFixture(t)
	out := filepath.Join(dir, "out.p12")

	res := run(t, []cli.Option{cli.WithProcessRunner(&keystoreRunner{pair: pair})},
		"cert-convert", certPath, keyPath, "-o", out, "--verify", "--json")
	require.NoError(t, res.err, res.stderr)

	var view struct {
		OutputPath string `json:"output_path"`
		Format     string `json:"format"`
		Alias      string `json:"alias"`
		Verified   bool   `json:"verified"`
		HasKey     bool   `json:"has_key"`
		Chain      struct {
			ChainLength int  `json:"chainLength"`
			Verified    bool `json:"verified"`
		} `json:"chain"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &view), res.stdout)
	assert.Equal(t, out, view.OutputPath)
	assert.Equal(t, "pkcs12", view.Format)
	assert.True(t, view.Verified)
	assert.True(t, view.HasKey)
	assert.Equal(t, 1, view.Chain.ChainLength)
	assert.True(t, view.Chain.Verified)
}

func TestCertConvertConfigAlias(t *testing.T) {
	pair, dir, certPath, keyPath := certFixture(t)
	runner := &keystoreRunner{pair: pair}
	cfgPath := filepath.Join(dir, "veribits.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("keystore:\n  defaultAlias: tomcat\n"), 0o600))

	res := run(t, []cli.Option{cli.WithProcessRunner(runner)},
		"cert-convert", certPath, keyPath, "-o", filepath.Join(dir, "a.p12"), "--config", cfgPath)
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "tomcat", argAfter(runner.argsOf("openssl"), "-name"))
	assert.Contains(t, res.stdout, "Alias: tomcat")
}

func TestCertConvertErrors(t *testing.T) {
	pair, dir, certPath, keyPath := certFixture(t)

	t.Run("missing bundler prints hint", func(t *testing.T) {
		runner := &keystoreRunner{pair: pair, missing: "openssl"}
		res := run(t, []cli.Option{cli.WithProcessRunner(runner)},
			"cert-convert", certPath, keyPath, "-o", filepath.Join(dir, "x.p12"))
		require.Error(t, res.err)
		assert.True(t, keystore.IsKind(res.err, keystore.KindToolNotFound))
		assert.Contains(t, res.stderr, "Hint: install OpenSSL")
		assert.NoFileExists(t, filepath.Join(dir, "x.p12"))
	})

	t.Run("missing migrator", func(t *testing.T) {
		runner := &keystoreRunner{pair: pair, missing: "keytool"}
		res := run(t, []cli.Option{cli.WithProcessRunner(runner)},
			"cert-convert", certPath, keyPath, "-f", "jks", "-o", filepath.Join(dir, "x.jks"))
		require.Error(t, res.err)
		assert.Contains(t, res.stderr, "Hint: keytool (Java) must be installed")
		assert.NoFileExists(t, filepath.Join(dir, "x.jks"))
	})

	t.Run("unsupported format", func(t *testing.T) {
		res := run(t, nil, "cert-convert", certPath, keyPath, "-f", "pem")
		assert.ErrorIs(t, res.err, keystore.ErrUnsupportedFormat)
	})

	t.Run("key is not PEM", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.key")
		require.NoError(t, os.WriteFile(bad, []byte("not a key"), 0o600))
		res := run(t, []cli.Option{cli.WithProcessRunner(&keystoreRunner{pair: pair})},
			"cert-convert", certPath, bad)
		assert.True(t, keystore.IsKind(res.err, keystore.KindInvalidInput))
		assert.Empty(t, res.stderr)
	})

	t.Run("output overwrites input", func(t *testing.T) {
		res := run(t, []cli.Option{cli.WithProcessRunner(&keystoreRunner{pair: pair})},
			"cert-convert", certPath, keyPath, "-o", keyPath)
		assert.ErrorIs(t, res.err, keystore.ErrOutputIsInput)
	})
}

func TestCertInfo(t *testing.T) {
	pair, dir, certPath, _ := certFixture(t)
	now := func() time.Time { return pair.Cert.NotBefore.Add(time.Minute) }
	clock := []cli.Option{cli.WithClock(now)}

	t.Run("table", func(t *testing.T) {
		res := run(t, clock, "cert-info", certPath)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Certificates: 1")
		assert.Contains(t, res.stdout, "Self-Signed Certificate")
		assert.Contains(t, res.stdout, "Chain verifies against its last certificate")
	})

	t.Run("tree", func(t *testing.T) {
		res := run(t, clock, "cert-info", certPath, "--tree")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "└── [✓] veribits.test (Self-Signed Certificate)")
	})

	t.Run("json", func(t *testing.T) {
		res := run(t, clock, "cert-info", certPath, "--json")
		require.NoError(t, res.err)

		var summary struct {
			ChainLength  int  `json:"chainLength"`
			Verified     bool `json:"verified"`
			Certificates []struct {
				Role   string `json:"role"`
				Status string `json:"status"`
			} `json:"certificates"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &summary), res.stdout)
		assert.Equal(t, 1, summary.ChainLength)
		assert.True(t, summary.Verified)
		require.Len(t, summary.Certificates, 1)
		assert.Equal(t, "Self-Signed Certificate", summary.Certificates[0].Role)
		assert.Equal(t, "valid", summary.Certificates[0].Status)
	})

	t.Run("expired", func(t *testing.T) {
		later := cli.WithClock(func() time.Time { return pair.Cert.NotAfter.Add(time.Hour) })
		res := run(t, []cli.Option{later}, "cert-info", certPath, "-t")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "[✗] veribits.test")
		assert.Contains(t, res.stdout, "Chain does not verify")
	})

	t.Run("not a certificate", func(t *testing.T) {
		bad := filepath.Join(dir, "junk.pem")
		require.NoError(t, os.WriteFile(bad, []byte("junk"), 0o600))
		res := run(t, clock, "cert-info", bad)
		assert.ErrorContains(t, res.err, "decoding")
	})

	t.Run("missing file", func(t *testing.T) {
		res := run(t, clock, "cert-info", filepath.Join(dir, "nope.pem"))
		assert.True(t, errors.Is(res.err, os.ErrNotExist))
	})
}
