// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/veribits-cli/src/internal/keystore"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/render"
	x509certs "github.com/H0llyW00dzZ/veribits-cli/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/veribits-cli/src/internal/x509/chain"
)

// convertView is the --json form of a conversion result.
type convertView struct {
	OutputPath string             `json:"output_path"`
	Format     keystore.Format    `json:"format"`
	Alias      string             `json:"alias"`
	Verified   bool               `json:"verified"`
	HasKey     bool               `json:"has_key,omitempty"`
	Chain      *x509chain.Summary `json:"chain,omitempty"`
}

func (a *app) certConvertCommand() *cobra.Command {
	var (
		format         string
		password       string
		promptPassword bool
		alias          string
		output         string
		verify         bool
	)
	cmd := &cobra.Command{
		Use:   "cert-convert CERT_FILE KEY_FILE",
		Short: "Convert a PEM certificate and key to a PKCS12 or JKS keystore",
		Long: `Convert a PEM-encoded certificate and private key to a PKCS12 or JKS keystore.

Processing is done locally with openssl (and keytool for JKS). When no password
is given, PKCS12 output uses the empty password and JKS output uses "changeit".`,
		Example: `  veribits cert-convert cert.pem key.pem --format pkcs12 -o cert.p12
  veribits cert-convert cert.pem key.pem --format jks --password changeit -o cert.jks
  veribits cert-convert cert.pem key.pem --prompt-password --verify`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := keystore.ParseFormat(format)
			if err != nil {
				return err
			}
			if promptPassword {
				if password, err = a.readPassword("Keystore password: "); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("alias") {
				alias = a.cfg.Keystore.DefaultAlias
			}

			conv := keystore.New(a.runner,
				keystore.WithTools(keystore.Tools{Bundler: a.cfg.Keystore.Bundler, Migrator: a.cfg.Keystore.Migrator}),
				keystore.WithLogger(a.log),
			)

			a.printer.Header("Converting Certificate...")
			res, err := conv.Convert(cmd.Context(), keystore.Request{
				CertificatePath: args[0],
				KeyPath:         args[1],
				Format:          f,
				Password:        password,
				Alias:           alias,
				OutputPath:      output,
			})
			if err != nil {
				a.printHint(err)
				return err
			}

			view := convertView{OutputPath: res.OutputPath, Format: res.Format, Alias: res.Alias}
			var ch *x509chain.Chain
			if verify {
				if res.Format != keystore.FormatPKCS12 {
					a.printer.Warn("--verify is only supported for PKCS12 output")
				} else {
					bundle, err := keystore.VerifyPKCS12(res.OutputPath, password)
					if err != nil {
						return err
					}
					ch = bundleChain(bundle)
					summary := ch.Summarize(a.now())
					view.Verified = true
					view.HasKey = bundle.HasKey
					view.Chain = &summary
				}
			}

			return a.emit(view, func(p *render.Printer) error {
				p.Success("Certificate converted successfully!")
				p.KV("Format", res.Format.DisplayName())
				p.KV("Output File", res.OutputPath)
				p.KV("Alias", res.Alias)

				if ch != nil {
					p.Section("Keystore Verification")
					p.KVStatus("Password", "opens the keystore", true)
					p.KVStatus("Private Key", render.YesNo(view.HasKey), view.HasKey)
					p.Line("%s", ch.RenderASCIITree(a.now()))
				}

				p.Line("")
				p.Warn("Security Note:")
				p.Line("Store the keystore file securely and use a strong password.")
				p.Line("This conversion was performed locally on your machine.")
				return nil
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&format, "format", "f", string(keystore.FormatPKCS12), "output format: pkcs12 or jks")
	fl.StringVarP(&password, "password", "p", "", "keystore password")
	fl.BoolVar(&promptPassword, "prompt-password", false, "read the keystore password from the terminal")
	fl.StringVarP(&alias, "alias", "a", keystore.DefaultAlias, "certificate alias")
	fl.StringVarP(&output, "output", "o", "", "output file (default certificate.p12 or certificate.jks)")
	fl.BoolVar(&verify, "verify", false, "re-open the PKCS12 output with the password and show its contents")
	cmd.MarkFlagsMutuallyExclusive("password", "prompt-password")
	return cmd
}

// printHint writes the install hint of a missing tool to stderr.
func (a *app) printHint(err error) {
	var kerr *keystore.Error
	if errors.As(err, &kerr) && kerr.Hint != "" {
		fmt.Fprintf(a.errOut, "Hint: %s\n", kerr.Hint)
	}
}

func bundleChain(b *keystore.Bundle) *x509chain.Chain {
	certs := make([]*x509.Certificate, 0, 1+len(b.CACerts))
	if b.Leaf != nil {
		certs = append(certs, b.Leaf)
	}
	certs = append(certs, b.CACerts...)
	return x509chain.New(certs...)
}

func (a *app) certInfoCommand() *cobra.Command {
	var tree bool
	cmd := &cobra.Command{
		Use:   "cert-info CERT_FILE",
		Short: "Inspect a local certificate or PEM bundle",
		Long: `Decode a PEM bundle, DER certificate or PKCS7 file and show each certificate's
role, validity and key size. The chain is verified against its own last
certificate; system roots are not consulted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			certs, err := x509certs.New().DecodeMultiple(data)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}

			now := a.now()
			ch := x509chain.New(certs...)
			summary := ch.Summarize(now)
			return a.emit(summary, func(p *render.Printer) error {
				p.Header("Certificate Information")
				p.KV("File", args[0])
				p.KV("Certificates", summary.ChainLength)
				p.Line("")
				if tree {
					p.Line("%s", ch.RenderASCIITree(now))
				} else {
					p.Line("%s", ch.RenderTable(now))
				}
				if summary.Verified {
					p.Success("Chain verifies against its last certificate")
				} else {
					p.Warn("Chain does not verify: %s", summary.VerifyError)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&tree, "tree", "t", false, "show the chain as an ASCII tree instead of a table")
	return cmd
}
