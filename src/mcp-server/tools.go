// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/veribits-cli/src/internal/api"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/keystore"
)

// createTools returns every MCP tool definition bound to h.
//
// The function defines the following tools:
//   - convert_certificate: PEM certificate and key to PKCS12 or JKS, run locally
//   - inspect_certificate: Local certificate or bundle summary with chain verification
//   - decode_jwt: Decodes (and optionally verifies) a JWT through the API
//   - generate_hash: Hashes text with several algorithms through the API
//   - validate_dns: Resolves DNS records through the API
func createTools(h *handlers) []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("convert_certificate",
				mcp.WithDescription("Convert a PEM certificate and private key into a PKCS12 or JKS keystore on the local machine"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description("Path to the PEM certificate file"),
				),
				mcp.WithString("key",
					mcp.Required(),
					mcp.Description("Path to the PEM private key file"),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'pkcs12' or 'jks' (default: pkcs12)"),
					mcp.DefaultString(string(keystore.FormatPKCS12)),
				),
				mcp.WithString("password",
					mcp.Description("Keystore password; empty means no password for PKCS12 and 'changeit' for JKS"),
				),
				mcp.WithString("alias",
					mcp.Description("Certificate alias (default: "+keystore.DefaultAlias+")"),
				),
				mcp.WithString("output",
					mcp.Description("Output path (default: certificate.p12 or certificate.jks)"),
				),
			),
			Handler: h.handleConvertCertificate,
		},
		{
			Tool: mcp.NewTool("inspect_certificate",
				mcp.WithDescription("Inspect a local certificate, PEM bundle or PKCS7 file and verify the chain it contains"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description("Certificate file path or base64-encoded certificate data"),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'table', 'tree' or 'json' (default: table)"),
					mcp.DefaultString("table"),
				),
			),
			Handler: h.handleInspectCertificate,
		},
		{
			Tool: mcp.NewTool("decode_jwt",
				mcp.WithDescription("Decode a JWT and optionally verify its signature using the VeriBits API"),
				mcp.WithString("token",
					mcp.Required(),
					mcp.Description("The JWT to decode"),
				),
				mcp.WithString("secret",
					mcp.Description("Secret key for signature verification"),
				),
				mcp.WithBoolean("verify",
					mcp.Description("Verify the signature (default: false)"),
					mcp.DefaultBool(false),
				),
			),
			Handler: h.handleDecodeJWT,
		},
		{
			Tool: mcp.NewTool("generate_hash",
				mcp.WithDescription("Generate hashes of text using the VeriBits API"),
				mcp.WithString("text",
					mcp.Required(),
					mcp.Description("Text to hash"),
				),
				mcp.WithString("algorithms",
					mcp.Description("Comma-separated algorithms (default: md5,sha256,sha512)"),
					mcp.DefaultString("md5,sha256,sha512"),
				),
			),
			Handler: h.handleGenerateHash,
		},
		{
			Tool: mcp.NewTool("validate_dns",
				mcp.WithDescription("Look up and validate DNS records for a domain using the VeriBits API"),
				mcp.WithString("domain",
					mcp.Required(),
					mcp.Description("Domain name to query"),
				),
				mcp.WithString("record_type",
					mcp.Description("Record type: "+strings.Join(api.DNSRecordTypes, ", ")+" (default: A)"),
					mcp.DefaultString("A"),
					mcp.Enum(api.DNSRecordTypes...),
				),
			),
			Handler: h.handleValidateDNS,
		},
	}
}
