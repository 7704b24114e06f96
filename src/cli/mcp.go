// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/veribits-cli/src/logger"
	mcpserver "github.com/H0llyW00dzZ/veribits-cli/src/mcp-server"
)

func (a *app) mcpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve VeriBits tools over the Model Context Protocol on stdio",
		Long: `Start an MCP server on stdin/stdout exposing convert_certificate,
inspect_certificate, decode_jwt, generate_hash and validate_dns.

Diagnostics are written to stderr as JSON lines when --verbose is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Stdout carries the protocol, so diagnostics are always JSON on stderr.
			log := logger.NewJSONLogger(a.errOut, !a.flags.verbose)

			b := mcpserver.NewServerBuilder().
				WithConfig(a.cfg).
				WithVersion(a.version).
				WithRunner(a.runner).
				WithLogger(log).
				WithClock(a.now)
			return mcpserver.Run(cmd.Context(), b, cmd.InOrStdin(), a.out)
		},
	}
}
