// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/veribits-cli/src/config"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/api"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/keystore"
	"github.com/H0llyW00dzZ/veribits-cli/src/logger"
)

// ServerName is the name announced during MCP initialization.
const ServerName = "VeriBits Security Tools"

// ServerDependencies holds everything the tool handlers need.
type ServerDependencies struct {
	Version string
	Config  *config.Config
	Runner  keystore.ProcessRunner
	Logger  logger.Logger
	// Now is used for certificate validity checks.
	Now func() time.Time
}

// ServerBuilder assembles an MCP server.
//
// Example:
//
//	s, err := mcpserver.NewServerBuilder().
//		WithConfig(cfg).
//		WithVersion(version).
//		WithLogger(log).
//		Build()
type ServerBuilder struct {
	deps ServerDependencies
}

// NewServerBuilder returns a builder with default configuration, the exec
// runner and a silent logger.
func NewServerBuilder() *ServerBuilder {
	return &ServerBuilder{deps: ServerDependencies{
		Version: "dev",
		Config:  config.Default(),
		Logger:  logger.NewJSONLogger(nil, true),
		Now:     time.Now,
	}}
}

// WithConfig sets the configuration used for the API client and converter tools.
func (b *ServerBuilder) WithConfig(cfg *config.Config) *ServerBuilder {
	if cfg != nil {
		b.deps.Config = cfg
	}
	return b
}

// WithVersion sets the announced server version.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	if version != "" {
		b.deps.Version = version
	}
	return b
}

// WithRunner sets the process runner used by convert_certificate.
func (b *ServerBuilder) WithRunner(r keystore.ProcessRunner) *ServerBuilder {
	b.deps.Runner = r
	return b
}

// WithLogger sets the diagnostic logger. It must not write to stdout.
func (b *ServerBuilder) WithLogger(l logger.Logger) *ServerBuilder {
	if l != nil {
		b.deps.Logger = l
	}
	return b
}

// WithClock overrides time.Now for certificate validity checks.
func (b *ServerBuilder) WithClock(now func() time.Time) *ServerBuilder {
	if now != nil {
		b.deps.Now = now
	}
	return b
}

// Tools returns the tool set the built server will register.
func (b *ServerBuilder) Tools() []server.ServerTool {
	return createTools(newHandlers(b.deps))
}

// Build creates the MCP server with all tools and resources registered.
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	if b.deps.Config.API.URL == "" {
		return nil, errors.New("mcpserver: API URL is empty")
	}

	s := server.NewMCPServer(
		ServerName,
		b.deps.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions(instructions),
	)
	s.AddTools(b.Tools()...)
	for _, r := range createResources(b.deps) {
		s.AddResource(r.resource, r.handler)
	}
	return s, nil
}

const instructions = `VeriBits security tools.
Use convert_certificate to turn a PEM certificate and key into a PKCS12 or JKS keystore on this machine,
and inspect_certificate to examine a local certificate or bundle.
decode_jwt, generate_hash and validate_dns call the VeriBits API.`

// Run builds the server and serves MCP over in and out until ctx is cancelled
// or the input is closed.
//
// Parameters:
//   - ctx: Cancelling it stops the server
//   - b: Configured builder
//   - in, out: Protocol streams, normally os.Stdin and os.Stdout
//
// Returns:
//   - error: Build or transport error, or a wrapped context error on shutdown
func Run(ctx context.Context, b *ServerBuilder, in io.Reader, out io.Writer) error {
	s, err := b.Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	log := b.deps.Logger
	log.Printf("mcp: serving %s %s on stdio (api=%s)", ServerName, b.deps.Version, b.deps.Config.API.URL)

	stdio := server.NewStdioServer(s)
	errChan := make(chan error, 1)
	go func() {
		errChan <- stdio.Listen(ctx, in, out)
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Println("mcp: shutting down")
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}

// resourceDefinition pairs a static resource with its handler.
type resourceDefinition struct {
	resource mcp.Resource
	handler  server.ResourceHandlerFunc
}

func createResources(deps ServerDependencies) []resourceDefinition {
	return []resourceDefinition{
		{
			resource: mcp.NewResource("info://version", "Server version",
				mcp.WithResourceDescription("VeriBits MCP server version and API endpoint"),
				mcp.WithMIMEType("application/json"),
			),
			handler: func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				text := fmt.Sprintf(`{"name":%q,"version":%q,"apiUrl":%q}`, ServerName, deps.Version, deps.Config.API.URL)
				return []mcp.ResourceContents{mcp.TextResourceContents{
					URI:      req.Params.URI,
					MIMEType: "application/json",
					Text:     text,
				}}, nil
			},
		},
		{
			resource: mcp.NewResource("docs://keystore-formats", "Keystore formats",
				mcp.WithResourceDescription("Formats accepted by convert_certificate and their password rules"),
				mcp.WithMIMEType("text/markdown"),
			),
			handler: func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return []mcp.ResourceContents{mcp.TextResourceContents{
					URI:      req.Params.URI,
					MIMEType: "text/markdown",
					Text:     keystoreFormatsDoc,
				}}, nil
			},
		},
	}
}

var keystoreFormatsDoc = fmt.Sprintf(`# Keystore formats

| Format | Aliases | Default output | Empty password |
|---|---|---|---|
| %s | pkcs12, p12, pfx | %s | exported with the empty password |
| %s | jks | %s | %q is used for both stages |

JKS output requires keytool (Java). Both formats require openssl.
`,
	keystore.FormatPKCS12.DisplayName(), keystore.FormatPKCS12.DefaultOutput(),
	keystore.FormatJKS.DisplayName(), keystore.FormatJKS.DefaultOutput(), keystore.FallbackPassword)

// newClient builds the API client for the tool handlers.
func newClient(deps ServerDependencies) *api.Client {
	return api.NewFromConfig(deps.Config, deps.Version, api.WithLogger(deps.Logger))
}
