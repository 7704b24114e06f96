// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/veribits-cli/src/config"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/helper/testcert"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/keystore"
)

// recordingRunner writes the file named by -out or -destkeystore and records tool names.
type recordingRunner struct {
	mu    sync.Mutex
	names []string
	fail  bool
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) (*keystore.ProcessResult, error) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()

	if r.fail {
		return &keystore.ProcessResult{ExitCode: 1, Stderr: "unable to load private key"}, nil
	}
	for _, flag := range []string{"-out", "-destkeystore"} {
		if i := slices.Index(args, flag); i >= 0 && i+1 < len(args) {
			if err := os.WriteFile(args[i+1], []byte(name), 0o600); err != nil {
				return nil, err
			}
		}
	}
	return &keystore.ProcessResult{}, nil
}

// apiStub answers the three API endpoints used by the tools.
func apiStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/jwt/decode":
			var req map[string]any
			_ = json.Unmarshal(body, &req)
			if req["token"] == "bad" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, `{"success":false,"error":{"message":"Invalid JWT format"}}`)
				return
			}
			_, _ = io.WriteString(w, `{"success":true,"data":{"header":{"alg":"HS256"},"payload":{"sub":"42"},"signature_verified":true}}`)
		case "/tools/generate-hash":
			var req struct {
				Algorithms []string `json:"algorithms"`
			}
			_ = json.Unmarshal(body, &req)
			hashes := map[string]string{}
			for _, a := range req.Algorithms {
				hashes[a] = a + "-digest"
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"hashes": hashes}})
		case "/tools/dns-validate":
			_, _ = io.WriteString(w, `{"success":true,"data":{"records":[{"type":"MX","value":"mail.example.com","ttl":300,"priority":10}],"dnssec":{"enabled":true}}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func startServer(t *testing.T, runner keystore.ProcessRunner, apiURL string) *mcptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.API.URL = apiURL

	builder := NewServerBuilder().
		WithConfig(cfg).
		WithVersion("1.3.3.7-testing").
		WithRunner(runner).
		WithClock(func() time.Time { return time.Now() })

	srv := mcptest.NewUnstartedServer(t)
	srv.AddTools(builder.Tools()...)
	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(srv.Close)
	return srv
}

func callTool(t *testing.T, srv *mcptest.Server, name string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := srv.Client().CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	var content strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			content.WriteString(tc.Text)
		}
	}
	return content.String(), result.IsError
}

func TestMCPTools(t *testing.T) {
	dir := t.TempDir()
	pair := testcert.New(t, "mcp.example.com")
	certPath, keyPath := pair.WriteFiles(t, dir)
	out := filepath.Join(dir, "out.jks")

	runner := &recordingRunner{}
	srv := startServer(t, runner, apiStub(t).URL)

	tests := []struct {
		name           string
		toolName       string
		args           map[string]any
		expectError    bool
		expectContains []string
	}{
		{
			name:     "convert_certificate jks",
			toolName: "convert_certificate",
			args: map[string]any{
				"certificate": certPath,
				"key":         keyPath,
				"format":      "jks",
				"output":      out,
			},
			expectContains: []string{"JKS (Java KeyStore)", out, "Alias: mycert"},
		},
		{
			name:           "convert_certificate bad format",
			toolName:       "convert_certificate",
			args:           map[string]any{"certificate": certPath, "key": keyPath, "format": "pem"},
			expectError:    true,
			expectContains: []string{"unsupported format"},
		},
		{
			name:           "convert_certificate missing key",
			toolName:       "convert_certificate",
			args:           map[string]any{"certificate": certPath},
			expectError:    true,
			expectContains: []string{"key parameter required"},
		},
		{
			name:           "inspect_certificate table from file",
			toolName:       "inspect_certificate",
			args:           map[string]any{"certificate": certPath},
			expectContains: []string{"Certificates: 1", "mcp.example.com", "Chain verification: OK"},
		},
		{
			name:     "inspect_certificate json from base64",
			toolName: "inspect_certificate",
			args: map[string]any{
				"certificate": base64.StdEncoding.EncodeToString(pair.CertPEM),
				"format":      "json",
			},
			expectContains: []string{`"chainLength": 1`, "Self-Signed Certificate"},
		},
		{
			name:           "inspect_certificate tree",
			toolName:       "inspect_certificate",
			args:           map[string]any{"certificate": certPath, "format": "tree"},
			expectContains: []string{"└──", "mcp.example.com"},
		},
		{
			name:           "inspect_certificate garbage",
			toolName:       "inspect_certificate",
			args:           map[string]any{"certificate": "not a path or base64!"},
			expectError:    true,
			expectContains: []string{"not a valid file path or base64 data"},
		},
		{
			name:           "decode_jwt",
			toolName:       "decode_jwt",
			args:           map[string]any{"token": "eyJ.eyJ.sig", "verify": true},
			expectContains: []string{`"alg": "HS256"`, `"signature_verified": true`},
		},
		{
			name:           "decode_jwt api error",
			toolName:       "decode_jwt",
			args:           map[string]any{"token": "bad"},
			expectError:    true,
			expectContains: []string{"Invalid JWT format"},
		},
		{
			name:           "generate_hash",
			toolName:       "generate_hash",
			args:           map[string]any{"text": "hello", "algorithms": "md5, sha1"},
			expectContains: []string{`"md5": "md5-digest"`, `"sha1": "sha1-digest"`},
		},
		{
			name:           "generate_hash no algorithms",
			toolName:       "generate_hash",
			args:           map[string]any{"text": "hello", "algorithms": " , "},
			expectError:    true,
			expectContains: []string{"at least one algorithm"},
		},
		{
			name:           "validate_dns",
			toolName:       "validate_dns",
			args:           map[string]any{"domain": "example.com", "record_type": "mx"},
			expectContains: []string{"mail.example.com", `"enabled": true`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, isError := callTool(t, srv, tt.toolName, tt.args)
			assert.Equal(t, tt.expectError, isError, content)
			for _, expected := range tt.expectContains {
				assert.Contains(t, content, expected)
			}
		})
	}

	assert.FileExists(t, out)
	runner.mu.Lock()
	assert.Equal(t, []string{"openssl", "keytool"}, runner.names)
	runner.mu.Unlock()
}

func TestConvertCertificateToolFailure(t *testing.T) {
	dir := t.TempDir()
	certPath, keyPath := testcert.New(t, "fail.example.com").WriteFiles(t, dir)
	out := filepath.Join(dir, "out.p12")

	srv := startServer(t, &recordingRunner{fail: true}, "http://127.0.0.1:1")
	content, isError := callTool(t, srv, "convert_certificate", map[string]any{
		"certificate": certPath,
		"key":         keyPath,
		"output":      out,
	})

	assert.True(t, isError)
	assert.Contains(t, content, "pkcs12-bundler")
	assert.Contains(t, content, "unable to load private key")
	assert.NoFileExists(t, out)
}

func TestBuild(t *testing.T) {
	s, err := NewServerBuilder().WithVersion("1.0.0").Build()
	require.NoError(t, err)
	assert.NotNil(t, s)

	assert.Len(t, NewServerBuilder().Tools(), 5)

	cfg := config.Default()
	cfg.API.URL = ""
	_, err = NewServerBuilder().WithConfig(cfg).Build()
	assert.ErrorContains(t, err, "API URL is empty")
}

func TestRunBuildError(t *testing.T) {
	cfg := config.Default()
	cfg.API.URL = ""
	err := Run(context.Background(), NewServerBuilder().WithConfig(cfg), strings.NewReader(""), io.Discard)
	assert.ErrorContains(t, err, "failed to build server")
}

func TestReadCertificateInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.pem")
	require.NoError(t, os.WriteFile(path, []byte("file data"), 0o600))

	got, err := readCertificateInput(path)
	require.NoError(t, err)
	assert.Equal(t, "file data", string(got))

	got, err = readCertificateInput(base64.StdEncoding.EncodeToString([]byte("b64 data")))
	require.NoError(t, err)
	assert.Equal(t, "b64 data", string(got))

	_, err = readCertificateInput("%%%")
	assert.Error(t, err)
}
