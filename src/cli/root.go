// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/veribits-cli/src/config"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/api"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/keystore"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/render"
	"github.com/H0llyW00dzZ/veribits-cli/src/logger"
)

// ErrInvalidTimeout is returned when --timeout is not a positive number of seconds.
var ErrInvalidTimeout = errors.New("--timeout must be a positive number of seconds")

// Command groups shown in help output.
const (
	groupSecurity = "security"
	groupNetwork  = "network"
	groupBGP      = "bgp"
	groupAccount  = "account"
	groupLocal    = "local"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	apiURL     string
	apiKey     string
	logFormat  string
	timeout    int
	json       bool
	verbose    bool
}

// app is the state shared by the command tree for one invocation.
type app struct {
	version string
	args    []string
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	runner  keystore.ProcessRunner
	now     func() time.Time

	readPassword func(prompt string) (string, error)

	flags globalFlags

	// Populated by setup before any RunE.
	cfg     *config.Config
	log     logger.Logger
	printer *render.Printer
}

// Option customizes the command tree, mainly for tests.
type Option func(*app)

// WithArgs sets the arguments to parse instead of os.Args[1:].
func WithArgs(args ...string) Option {
	return func(a *app) { a.args = append([]string{}, args...) }
}

// WithOutput sets the writer that receives command results.
func WithOutput(w io.Writer) Option { return func(a *app) { a.out = w } }

// WithErrOutput sets the writer that receives diagnostics and hints.
func WithErrOutput(w io.Writer) Option { return func(a *app) { a.errOut = w } }

// WithInput sets the reader used by the mcp command instead of os.Stdin.
func WithInput(r io.Reader) Option { return func(a *app) { a.in = r } }

// WithProcessRunner replaces the runner used for the bundler and migrator tools.
func WithProcessRunner(r keystore.ProcessRunner) Option { return func(a *app) { a.runner = r } }

// WithPasswordReader replaces the terminal prompt used by --prompt-password.
func WithPasswordReader(fn func(prompt string) (string, error)) Option {
	return func(a *app) { a.readPassword = fn }
}

// WithClock replaces time.Now for certificate validity checks.
func WithClock(now func() time.Time) Option { return func(a *app) { a.now = now } }

// Execute builds the command tree and runs it.
//
// Parameters:
//   - ctx: Cancelled on SIGINT/SIGTERM; passed to every request and external tool
//   - version: Reported by --version and sent in the User-Agent header
//   - opts: Overrides for arguments, writers and the process runner
//
// Returns:
//   - error: The first error from flag parsing, configuration or the command itself
func Execute(ctx context.Context, version string, opts ...Option) error {
	a := newApp(version, opts...)
	root := a.rootCommand()
	return root.ExecuteContext(ctx)
}

func newApp(version string, opts ...Option) *app {
	a := &app{
		version: version,
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.readPassword == nil {
		a.readPassword = terminalPassword(a.errOut)
	}
	return a
}

func (a *app) rootCommand() *cobra.Command {
	name := posix.GetExecutableName()
	root := &cobra.Command{
		Use:   name,
		Short: "VeriBits CLI - Professional security and developer tools",
		Long: `VeriBits CLI gives terminal access to the VeriBits security tools:
JWT, regex, secret scanning, hashing, crypto address validation, DNS, WHOIS,
BGP, traceroute, RBL and SMTP checks. Certificate conversion runs locally.`,
		Example: fmt.Sprintf(`  %[1]s jwt-decode eyJhbGciOi... --secret s3cret --verify
  %[1]s dns example.com --type MX
  %[1]s cert-convert cert.pem key.pem --format jks -o keystore.jks
  %[1]s health --json`, name),
		Version:           a.version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetIn(a.in)
	if a.args != nil {
		root.SetArgs(a.args)
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (JSON or YAML; default $"+config.EnvConfigFile+")")
	pf.StringVar(&a.flags.apiURL, "api-url", "", "API base URL (default $"+config.EnvAPIURL+" or "+config.DefaultAPIURL+")")
	pf.StringVar(&a.flags.apiKey, "api-key", "", "API key (default $"+config.EnvAPIKey+")")
	pf.IntVar(&a.flags.timeout, "timeout", 0, fmt.Sprintf("request timeout in seconds (default %d)", config.DefaultTimeoutSeconds))
	pf.BoolVar(&a.flags.json, "json", false, "print raw JSON results")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log requests and conversion stages to stderr")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "diagnostic log format: text or json")

	root.AddGroup(
		&cobra.Group{ID: groupSecurity, Title: "Security Tools:"},
		&cobra.Group{ID: groupNetwork, Title: "Network Tools:"},
		&cobra.Group{ID: groupBGP, Title: "BGP Tools:"},
		&cobra.Group{ID: groupAccount, Title: "Account & Catalog:"},
		&cobra.Group{ID: groupLocal, Title: "Local Tools:"},
	)

	add := func(group string, cmds ...*cobra.Command) {
		for _, c := range cmds {
			c.GroupID = group
			root.AddCommand(c)
		}
	}
	add(groupSecurity,
		a.jwtDecodeCommand(), a.jwtSignCommand(), a.regexCommand(), a.secretsCommand(),
		a.hashCommand(), a.bitcoinCommand(), a.ethereumCommand(), a.fileMagicCommand(),
		a.breachCommand(), a.breachPasswordCommand(),
		a.cloudStorageScanCommand(), a.cloudStorageBucketsCommand(),
	)
	add(groupNetwork,
		a.dnsCommand(), a.whoisCommand(), a.ipcalcCommand(), a.rblCommand(),
		a.smtpRelayCommand(), a.tracerouteCommand(),
	)
	add(groupBGP,
		a.bgpPrefixCommand(), a.bgpASNCommand(), a.bgpPrefixesCommand(), a.bgpPeersCommand(),
		a.bgpUpstreamsCommand(), a.bgpDownstreamsCommand(), a.bgpSearchCommand(),
	)
	add(groupAccount,
		a.limitsCommand(), a.healthCommand(), a.toolsCommand(), a.toolSearchCommand(),
		a.configCommand(),
	)
	add(groupLocal, a.certConvertCommand(), a.certInfoCommand(), a.mcpCommand())

	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger and printer. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}

	fl := cmd.Flags()
	if fl.Changed("api-url") {
		cfg.API.URL = strings.TrimRight(strings.TrimSpace(a.flags.apiURL), "/")
	}
	if fl.Changed("api-key") {
		cfg.API.Key = a.flags.apiKey
	}
	if fl.Changed("timeout") {
		if a.flags.timeout <= 0 {
			return ErrInvalidTimeout
		}
		cfg.API.TimeoutSeconds = a.flags.timeout
	}
	if fl.Changed("log-format") {
		cfg.Log.Format = a.flags.logFormat
	}

	log, err := logger.New(cfg.Log.Format, a.errOut)
	if err != nil {
		return err
	}
	if !a.flags.verbose {
		log.SetOutput(io.Discard)
	}

	a.cfg = cfg
	a.log = log
	a.printer = render.New(a.out, a.flags.json)
	a.log.Printf("config: api=%s source=%q timeout=%ds", cfg.API.URL, cfg.Source, cfg.API.TimeoutSeconds)
	return nil
}

func (a *app) client() *api.Client {
	return api.NewFromConfig(a.cfg, a.version, api.WithLogger(a.log))
}

// emit prints res as JSON in --json mode and calls human otherwise.
func (a *app) emit(res any, human func(p *render.Printer) error) error {
	if a.printer.JSONMode() {
		return a.printer.JSON(res)
	}
	return human(a.printer)
}
