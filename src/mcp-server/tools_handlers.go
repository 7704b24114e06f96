// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/H0llyW00dzZ/veribits-cli/src/internal/api"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/keystore"
	x509certs "github.com/H0llyW00dzZ/veribits-cli/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/veribits-cli/src/internal/x509/chain"
)

// handlers binds tool handlers to their shared dependencies.
type handlers struct {
	deps   ServerDependencies
	client *api.Client
	conv   *keystore.Converter
}

func newHandlers(deps ServerDependencies) *handlers {
	return &handlers{
		deps:   deps,
		client: newClient(deps),
		conv: keystore.New(deps.Runner,
			keystore.WithTools(keystore.Tools{
				Bundler:  deps.Config.Keystore.Bundler,
				Migrator: deps.Config.Keystore.Migrator,
			}),
			keystore.WithLogger(deps.Logger),
		),
	}
}

// handleConvertCertificate runs the keystore converter.
//
// Validation and tool failures are returned as tool errors carrying the
// converter's message, including the tool's stderr and any install hint.
func (h *handlers) handleConvertCertificate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	certPath, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}
	keyPath, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("key parameter required: %v", err)), nil
	}

	format, err := keystore.ParseFormat(request.GetString("format", string(keystore.FormatPKCS12)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	alias := request.GetString("alias", "")
	if alias == "" {
		alias = h.deps.Config.Keystore.DefaultAlias
	}

	res, err := h.conv.Convert(ctx, keystore.Request{
		CertificatePath: certPath,
		KeyPath:         keyPath,
		Format:          format,
		Password:        request.GetString("password", ""),
		Alias:           alias,
		OutputPath:      request.GetString("output", ""),
	})
	if err != nil {
		msg := err.Error()
		var kerr *keystore.Error
		if errors.As(err, &kerr) && kerr.Hint != "" {
			msg += "\nHint: " + kerr.Hint
		}
		return mcp.NewToolResultError(msg), nil
	}

	var b strings.Builder
	b.WriteString("Certificate converted successfully:\n")
	fmt.Fprintf(&b, "Format: %s\n", res.Format.DisplayName())
	fmt.Fprintf(&b, "Output File: %s\n", res.OutputPath)
	fmt.Fprintf(&b, "Alias: %s\n", res.Alias)
	b.WriteString("\nThe conversion was performed locally. Store the keystore securely.\n")
	return mcp.NewToolResultText(b.String()), nil
}

// handleInspectCertificate decodes a certificate from a file path or base64
// data and describes the chain it contains.
func (h *handlers) handleInspectCertificate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	certInput, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}

	certData, err := readCertificateInput(certInput)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	certs, err := x509certs.New().DecodeMultiple(certData)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to decode certificate: %v", err)), nil
	}

	now := h.deps.Now()
	chain := x509chain.New(certs...)

	switch format := request.GetString("format", "table"); format {
	case "json":
		data, err := chain.ToVisualizationJSON(now)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode chain: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	case "tree", "table":
		summary := chain.Summarize(now)
		var b strings.Builder
		fmt.Fprintf(&b, "Certificates: %d\n\n", summary.ChainLength)
		if format == "tree" {
			b.WriteString(chain.RenderASCIITree(now))
		} else {
			b.WriteString(chain.RenderTable(now))
		}
		if summary.Verified {
			b.WriteString("\nChain verification: OK\n")
		} else {
			fmt.Fprintf(&b, "\nChain verification: FAILED (%s)\n", summary.VerifyError)
		}
		return mcp.NewToolResultText(b.String()), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q: use table, tree or json", format)), nil
	}
}

func (h *handlers) handleDecodeJWT(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	token, err := request.RequireString("token")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("token parameter required: %v", err)), nil
	}

	res, err := h.client.DecodeJWT(ctx, api.JWTDecodeRequest{
		Token:           token,
		Secret:          request.GetString("secret", ""),
		VerifySignature: request.GetBool("verify", false),
	})
	return jsonResult(res, err)
}

func (h *handlers) handleGenerateHash(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("text parameter required: %v", err)), nil
	}

	var algorithms []string
	for _, a := range strings.Split(request.GetString("algorithms", "md5,sha256,sha512"), ",") {
		if a = strings.TrimSpace(a); a != "" {
			algorithms = append(algorithms, a)
		}
	}
	if len(algorithms) == 0 {
		return mcp.NewToolResultError("at least one algorithm is required"), nil
	}

	res, err := h.client.GenerateHash(ctx, api.HashRequest{Text: text, Algorithms: algorithms})
	return jsonResult(res, err)
}

func (h *handlers) handleValidateDNS(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domain, err := request.RequireString("domain")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("domain parameter required: %v", err)), nil
	}

	recordType := strings.ToUpper(request.GetString("record_type", "A"))
	if !slices.Contains(api.DNSRecordTypes, recordType) {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported record type %q", recordType)), nil
	}

	res, err := h.client.ValidateDNS(ctx, api.DNSRequest{Domain: domain, RecordType: recordType})
	return jsonResult(res, err)
}

// jsonResult turns an API result into indented JSON text, or a tool error.
func jsonResult(v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// readCertificateInput reads input as a file path first, then as base64 data.
func readCertificateInput(input string) ([]byte, error) {
	if data, err := os.ReadFile(input); err == nil {
		return data, nil
	}
	if decoded, err := base64.StdEncoding.DecodeString(input); err == nil {
		return decoded, nil
	}
	return nil, errors.New("failed to read certificate: not a valid file path or base64 data")
}
