// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/veribits-cli/src/config"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/api"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/render"
)

// Values shown by limits when the server omits a field.
const (
	defaultFreeScans       = 5
	defaultMaxFileSizeMB   = 50
	defaultTrialWindowDays = 30
)

func (a *app) limitsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Show anonymous usage limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client().AnonymousLimits(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.Header("Anonymous Usage Limits")
				p.KV("Free Scans", intOr(res.FreeScans, defaultFreeScans))
				p.KVStatus("Scans Remaining", fmt.Sprint(intOr(res.ScansRemaining, defaultFreeScans)), true)
				p.KV("Max File Size", fmt.Sprintf("%d MB", intOr(res.MaxFileSizeMB, defaultMaxFileSizeMB)))
				p.KV("Trial Window", fmt.Sprintf("%d days", intOr(res.TrialWindowDays, defaultTrialWindowDays)))
				return nil
			})
		},
	}
}

func (a *app) healthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the VeriBits API health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client().Health(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.Header("VeriBits API Health")
				p.KV("Endpoint", a.cfg.API.URL)
				healthy := strings.EqualFold(res.Status, "healthy") || strings.EqualFold(res.Status, "ok")
				p.KVStatus("Status", res.Status, healthy)
				p.KV("Service", res.Service)
				p.KV("Server Time", res.Time)
				return nil
			})
		},
	}
}

func (a *app) toolsCommand() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the available VeriBits tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client().ListTools(cmd.Context())
			if err != nil {
				return err
			}
			if category != "" {
				filtered := res.Tools[:0:0]
				for _, t := range res.Tools {
					if strings.EqualFold(t.Category, category) {
						filtered = append(filtered, t)
					}
				}
				res.Tools = filtered
				res.Total = len(filtered)
				res.Category = category
			}
			return a.emit(res, func(p *render.Printer) error {
				p.Header("VeriBits Tools")
				return a.renderTools(p, res)
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list tools in this category")
	return cmd
}

func (a *app) toolSearchCommand() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "tool-search QUERY",
		Short: "Search the tool catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client().SearchTools(cmd.Context(), args[0], category)
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.Header(fmt.Sprintf("Tools matching '%s'", args[0]))
				return a.renderTools(p, res)
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "restrict the search to this category")
	return cmd
}

func (a *app) renderTools(p *render.Printer, res *api.ToolsResult) error {
	if len(res.Tools) == 0 {
		p.Warn("No tools found")
		return nil
	}

	headers := []string{"Name", "Category", "CLI Command"}
	if a.flags.verbose {
		headers = append(headers, "Description")
	}
	rows := make([][]string, 0, len(res.Tools))
	for _, t := range res.Tools {
		row := []string{t.Name, t.Category, t.CLICommand}
		if a.flags.verbose {
			row = append(row, render.Truncate(t.Description, 60))
		}
		rows = append(rows, row)
	}
	if err := p.Table(headers, rows); err != nil {
		return err
	}

	total := res.Total
	if total == 0 {
		total = len(res.Tools)
	}
	p.KV("Total", total)
	if len(res.Categories) > 0 {
		names := make([]string, 0, len(res.Categories))
		for _, c := range res.Categories {
			names = append(names, fmt.Sprintf("%s (%d)", c.Name, c.Count))
		}
		p.KV("Categories", strings.Join(names, ", "))
	}
	return nil
}

// configView is the --json form of the effective configuration.
type configView struct {
	Source         string `json:"source,omitempty"`
	APIURL         string `json:"api_url"`
	APIKeySet      bool   `json:"api_key_set"`
	APIKey         string `json:"api_key,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	Bundler        string `json:"bundler"`
	Migrator       string `json:"migrator"`
	DefaultAlias   string `json:"default_alias"`
	LogFormat      string `json:"log_format"`
}

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.cfg
			view := configView{
				Source:         c.Source,
				APIURL:         c.API.URL,
				APIKeySet:      c.API.Key != "",
				APIKey:         c.MaskedKey(),
				TimeoutSeconds: c.API.TimeoutSeconds,
				Bundler:        c.Keystore.Bundler,
				Migrator:       c.Keystore.Migrator,
				DefaultAlias:   c.Keystore.DefaultAlias,
				LogFormat:      c.Log.Format,
			}
			return a.emit(view, func(p *render.Printer) error {
				p.Header("VeriBits CLI Configuration")
				p.KV("Config File", orDefault(view.Source, "(none)"))
				p.KV("API URL", view.APIURL)
				if view.APIKeySet {
					p.KVStatus("API Key", "Set ✅ "+view.APIKey, true)
				} else {
					p.KVStatus("API Key", "Not set ❌", false)
				}
				p.KV("Timeout", fmt.Sprintf("%ds", view.TimeoutSeconds))
				p.KV("Bundler", view.Bundler)
				p.KV("Migrator", view.Migrator)
				p.KV("Default Alias", view.DefaultAlias)
				p.KV("Log Format", view.LogFormat)

				p.Section("Environment Variables")
				p.Line("  %s - Path to a JSON or YAML config file", config.EnvConfigFile)
				p.Line("  %s - Override API endpoint", config.EnvAPIURL)
				p.Line("  %s - Set API key for authenticated requests", config.EnvAPIKey)
				p.Line("  %s - Request timeout in seconds", config.EnvTimeout)
				p.Line("  %s - Diagnostic log format (text or json)", config.EnvLogFormat)
				return nil
			})
		},
	}
	cmd.AddCommand(a.configInitCommand())
	return cmd
}

func (a *app) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [FILE]",
		Short: "Write an example configuration file (default veribits.yaml)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "veribits.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			example := config.Default()
			example.API.URL = a.cfg.API.URL
			if err := example.Save(path); err != nil {
				return err
			}

			res := struct {
				Path string `json:"path"`
			}{path}
			return a.emit(res, func(p *render.Printer) error {
				p.Success("Configuration written to %s", path)
				p.Dim("Set api.key there or export %s; pass the file with --config or %s.", config.EnvAPIKey, config.EnvConfigFile)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
