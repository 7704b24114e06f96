// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// veribits-mcp serves the VeriBits tools to an MCP client over stdio.
//
// It is equivalent to "veribits mcp" and reads the same configuration:
// VERIBITS_CONFIG_FILE, VERIBITS_API_URL, VERIBITS_API_KEY and VERIBITS_TIMEOUT.
// Diagnostics are written to stderr as JSON when VERIBITS_MCP_DEBUG is set.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/H0llyW00dzZ/veribits-cli/src/config"
	"github.com/H0llyW00dzZ/veribits-cli/src/logger"
	"github.com/H0llyW00dzZ/veribits-cli/src/mcp-server"
	verpkg "github.com/H0llyW00dzZ/veribits-cli/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	log := logger.NewJSONLogger(os.Stderr, os.Getenv("VERIBITS_MCP_DEBUG") == "")
	b := mcpserver.NewServerBuilder().
		WithConfig(cfg).
		WithVersion(version).
		WithLogger(log)

	err = mcpserver.Run(ctx, b, os.Stdin, os.Stdout)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
