// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/H0llyW00dzZ/veribits-cli/src/internal/api"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/render"
)

// ErrInvalidPayload is returned by jwt-sign when --payload is not a JSON object.
var ErrInvalidPayload = errors.New("invalid JSON payload")

func (a *app) jwtDecodeCommand() *cobra.Command {
	var (
		secret string
		verify bool
	)
	cmd := &cobra.Command{
		Use:   "jwt-decode TOKEN",
		Short: "Decode and verify a JWT token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header("Decoding JWT Token...")
			res, err := a.client().DecodeJWT(cmd.Context(), api.JWTDecodeRequest{
				Token:           args[0],
				Secret:          secret,
				VerifySignature: verify,
			})
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.Panel("Header", indentJSON(res.Header))
				p.Panel("Payload", indentJSON(res.Payload))

				if len(res.Claims) > 0 {
					p.Section("Claims")
					for _, k := range sortedKeys(res.Claims) {
						v := res.Claims[k]
						if k == "expired" || k == "not_yet_valid" {
							bad, _ := v.(bool)
							p.KVStatus("  "+k, fmt.Sprintf("%v %s", v, render.Check(!bad)), !bad)
							continue
						}
						p.KV("  "+k, v)
					}
				}

				if verify {
					p.Line("")
					p.KVStatus("Signature Verified",
						fmt.Sprintf("%v %s", res.SignatureVerified, render.Check(res.SignatureVerified)),
						res.SignatureVerified)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&secret, "secret", "s", "", "secret key for signature verification")
	cmd.Flags().BoolVar(&verify, "verify", false, "verify the token signature")
	return cmd
}

func (a *app) jwtSignCommand() *cobra.Command {
	var (
		secret  string
		payload string
		expires int
	)
	cmd := &cobra.Command{
		Use:   "jwt-sign",
		Short: "Generate a new JWT token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var claims map[string]any
			if err := json.Unmarshal([]byte(payload), &claims); err != nil || claims == nil {
				return ErrInvalidPayload
			}

			a.printer.Header("Generating JWT Token...")
			res, err := a.client().SignJWT(cmd.Context(), api.JWTSignRequest{
				Secret:    secret,
				Payload:   claims,
				ExpiresIn: expires,
			})
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.Panel("Generated JWT Token", res.Token)
				p.KV("Algorithm", res.Algorithm)
				p.KV("Expires In", fmt.Sprintf("%d seconds", res.ExpiresIn))
				p.KV("Expires At", res.ExpiresAt)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&secret, "secret", "s", "", "secret key for signing")
	cmd.Flags().StringVarP(&payload, "payload", "p", "", `JSON payload, e.g. '{"sub":"42"}'`)
	cmd.Flags().IntVarP(&expires, "expires", "e", 3600, "expiration time in seconds")
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("payload")
	return cmd
}

func (a *app) regexCommand() *cobra.Command {
	var flags string
	cmd := &cobra.Command{
		Use:   "regex PATTERN TEXT",
		Short: "Test a regular expression",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header("Testing Regex Pattern...")
			res, err := a.client().TestRegex(cmd.Context(), api.RegexRequest{
				Pattern: args[0],
				Text:    args[1],
				Flags:   flags,
			})
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.KV("Pattern", res.Pattern)
				p.KV("Matches Found", res.MatchCount)
				if len(res.Matches) == 0 {
					p.Warn("No matches found")
					return nil
				}
				rows := make([][]string, 0, len(res.Matches))
				for i, m := range res.Matches {
					rows = append(rows, []string{fmt.Sprint(i + 1), m.Match, fmt.Sprint(m.Position)})
				}
				return p.Table([]string{"#", "Match", "Position"}, rows)
			})
		},
	}
	cmd.Flags().StringVarP(&flags, "flags", "f", "g", "regex flags (g, i, m)")
	return cmd
}

func (a *app) secretsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "secrets FILE",
		Short: "Scan a file for exposed secrets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			a.printer.Header("Scanning for Secrets...")
			res, err := a.client().ScanSecrets(cmd.Context(), string(text))
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				risk := res.RiskLevel
				if risk == "" {
					risk = "low"
				}
				p.KV("Secrets Found", render.Paint(fmt.Sprint(res.SecretsFound), risk, render.RiskColors))
				p.KV("Risk Level", render.Colorize(strings.ToUpper(risk), render.RiskColors))

				if len(res.Secrets) == 0 {
					p.Success("No secrets detected!")
					return nil
				}
				rows := make([][]string, 0, len(res.Secrets))
				for _, s := range res.Secrets {
					rows = append(rows, []string{
						s.Type,
						s.Value,
						fmt.Sprint(s.Line),
						render.Colorize(strings.ToUpper(s.Severity), render.SeverityColors),
					})
				}
				return p.Table([]string{"Type", "Value", "Line", "Severity"}, rows)
			})
		},
	}
}

func (a *app) hashCommand() *cobra.Command {
	var algorithms []string
	cmd := &cobra.Command{
		Use:   "hash TEXT",
		Short: "Generate hashes for text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header("Generating Hashes...")
			res, err := a.client().GenerateHash(cmd.Context(), api.HashRequest{
				Text:       args[0],
				Algorithms: algorithms,
			})
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				rows := make([][]string, 0, len(res.Hashes))
				for _, algo := range sortedKeys(res.Hashes) {
					rows = append(rows, []string{strings.ToUpper(algo), res.Hashes[algo]})
				}
				return p.Table([]string{"Algorithm", "Hash"}, rows)
			})
		},
	}
	cmd.Flags().StringSliceVarP(&algorithms, "algorithms", "a", []string{"md5", "sha256", "sha512"}, "hash algorithms to use")
	return cmd
}

func (a *app) bitcoinCommand() *cobra.Command {
	return a.cryptoCommand("bitcoin", "Bitcoin", a.validateBitcoin)
}

func (a *app) ethereumCommand() *cobra.Command {
	return a.cryptoCommand("ethereum", "Ethereum", a.validateEthereum)
}

type cryptoValidator func(cmd *cobra.Command, req api.CryptoValidateRequest) (*api.CryptoValidateResult, error)

func (a *app) validateBitcoin(cmd *cobra.Command, req api.CryptoValidateRequest) (*api.CryptoValidateResult, error) {
	return a.client().ValidateBitcoin(cmd.Context(), req)
}

func (a *app) validateEthereum(cmd *cobra.Command, req api.CryptoValidateRequest) (*api.CryptoValidateResult, error) {
	return a.client().ValidateEthereum(cmd.Context(), req)
}

// cryptoCommand builds the bitcoin and ethereum validators, which share
// their request shape and differ only in rendering.
func (a *app) cryptoCommand(name, title string, validate cryptoValidator) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   name + " VALUE",
		Short: fmt.Sprintf("Validate a %s address or transaction", title),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind != "address" && kind != "transaction" {
				return fmt.Errorf("invalid --type %q: must be address or transaction", kind)
			}

			a.printer.Header(fmt.Sprintf("Validating %s...", title))
			res, err := validate(cmd, api.CryptoValidateRequest{Value: args[0], Type: kind})
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.KVStatus("Status", render.Check(res.IsValid)+" "+validWord(res.IsValid), res.IsValid)

				if name == "ethereum" {
					if kind == "address" {
						checksum := "✅ Valid"
						if !res.ChecksumValid {
							checksum = "⚠️ Invalid/Missing"
						}
						p.KV("Checksum", checksum)
						if addr, ok := res.Details["checksum_address"]; ok {
							p.KV("Checksum Address", addr)
						}
					}
					return nil
				}

				p.KV("Format", res.Format)
				p.KV("Network", res.Network)
				if len(res.Details) > 0 {
					p.Section("Details")
					for _, k := range sortedKeys(res.Details) {
						p.KV("  "+k, res.Details[k])
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "address", "validation type: address or transaction")
	return cmd
}

func (a *app) fileMagicCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "file-magic FILE",
		Short: "Detect a file type by its magic number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			a.printer.Header("Analyzing File Magic Number...")
			res, err := a.client().FileMagic(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.KVStatus("Detected Type", res.DetectedType, true)
				p.KV("Extension", res.DetectedExtension)
				p.KV("MIME Type", res.DetectedMIME)
				p.KV("File Hash", res.FileHash)
				return nil
			})
		},
	}
}

func (a *app) breachCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "breach EMAIL",
		Short: "Check an email address against known data breaches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header(fmt.Sprintf("Checking Breaches for %s...", args[0]))
			res, err := a.client().CheckBreach(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				if res.BreachCount == 0 {
					p.Success("No breaches found for %s", args[0])
					return nil
				}

				p.Error("Found in %d data breach(es)", res.BreachCount)
				p.KV("Checked At", res.CheckedAt)
				rows := make([][]string, 0, len(res.Breaches))
				for _, b := range res.Breaches {
					rows = append(rows, []string{
						b.Name,
						b.Domain,
						b.BreachDate,
						render.Truncate(strings.Join(b.DataClasses, ", "), 60),
						render.Check(b.IsVerified),
					})
				}
				if err := p.Table([]string{"Name", "Domain", "Date", "Data Classes", "Verified"}, rows); err != nil {
					return err
				}

				p.Section("Recommendations")
				p.Line("  • Change the password for every affected account")
				p.Line("  • Never reuse passwords across sites; use a password manager")
				p.Line("  • Enable two-factor authentication where available")
				return nil
			})
		},
	}
}

func (a *app) breachPasswordCommand() *cobra.Command {
	var prompt bool
	cmd := &cobra.Command{
		Use:     "breach-password [PASSWORD]",
		Aliases: []string{"hibp-password"},
		Short:   "Check a password against known breach corpora",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			switch {
			case len(args) == 1 && prompt:
				return errors.New("pass the password as an argument or use --prompt-password, not both")
			case len(args) == 1:
				password = args[0]
			case prompt:
				var err error
				if password, err = a.readPassword("Password to check: "); err != nil {
					return err
				}
			default:
				return errors.New("requires a PASSWORD argument or --prompt-password")
			}
			if password == "" {
				return errors.New("password must not be empty")
			}

			a.printer.Header("Checking Password Breaches...")
			res, err := a.client().CheckPassword(cmd.Context(), password)
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				if !res.Pwned {
					p.Success("PASSWORD SECURE")
					p.Line("This password was not found in any known data breach.")
					p.Section("Best Practices")
					p.Line("  • Use a unique password for every account")
					p.Line("  • Prefer long passphrases of 16+ characters")
					p.Line("  • Enable two-factor authentication where available")
				} else {
					risk := passwordRisk(res.Occurrences)
					p.Error("PASSWORD COMPROMISED")
					p.KV("Occurrences", message.NewPrinter(language.English).Sprintf("%d times", res.Occurrences))
					p.KV("Risk Level", render.Paint(strings.ToUpper(risk), risk, render.RiskColors))
					p.Section("Immediate Action Required")
					p.Line("  • Stop using this password everywhere it is in use")
					p.Line("  • Change it on every account that shares it")
					p.Line("  • Generate replacements with a password manager")
				}
				if res.Cached {
					p.Dim("[Cached result from %s]", res.CheckedAt)
				}
				p.Dim("[Privacy: only the first 5 characters of the SHA-1 hash reach Have I Been Pwned]")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&prompt, "prompt-password", false, "read the password from the terminal without echo")
	return cmd
}

// passwordRisk grades a breached password by how often it was seen.
func passwordRisk(occurrences int) string {
	switch {
	case occurrences > 100000:
		return "critical"
	case occurrences > 10000:
		return "high"
	case occurrences > 1000:
		return "medium"
	default:
		return "low"
	}
}

func validWord(ok bool) string {
	if ok {
		return "Valid"
	}
	return "Invalid"
}

func indentJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
