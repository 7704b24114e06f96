// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keystore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	x509certs "github.com/H0llyW00dzZ/veribits-cli/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/veribits-cli/src/logger"
)

// Stage is a step of the conversion state machine:
// Validating → Bundling → (JKS only: Migrating) → Done, or Failed.
type Stage int

const (
	StageValidating Stage = iota
	StageBundling
	StageMigrating
	StageDone
	StageFailed
)

// String implements fmt.Stringer.
func (s Stage) String() string {
	switch s {
	case StageValidating:
		return "validating"
	case StageBundling:
		return "bundling"
	case StageMigrating:
		return "migrating"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Tools names the executables behind the logical bundler and migrator tools.
type Tools struct {
	Bundler  string // e.g. "openssl"
	Migrator string // e.g. "keytool"
}

// DefaultTools returns the openssl/keytool pair.
func DefaultTools() Tools {
	return Tools{Bundler: "openssl", Migrator: "keytool"}
}

// Request describes one conversion.
type Request struct {
	CertificatePath string
	KeyPath         string
	Format          Format
	// Password may be empty. PKCS12 output then uses the empty password,
	// JKS output uses FallbackPassword for both stages.
	Password string
	// Alias defaults to DefaultAlias.
	Alias string
	// OutputPath defaults to Format.DefaultOutput().
	OutputPath string
}

// Result describes a successful conversion.
type Result struct {
	OutputPath string
	Format     Format
	Alias      string
}

// Converter turns PEM certificate/key pairs into keystores using external tools.
//
// A Converter holds no per-conversion state and may be reused. Each call to
// Convert owns its own workspace.
type Converter struct {
	runner ProcessRunner
	tools  Tools
	log    logger.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithTools overrides the bundler and migrator executables. Empty fields keep the defaults.
func WithTools(t Tools) Option {
	return func(c *Converter) {
		if t.Bundler != "" {
			c.tools.Bundler = t.Bundler
		}
		if t.Migrator != "" {
			c.tools.Migrator = t.Migrator
		}
	}
}

// WithLogger sets the logger that receives stage transitions.
func WithLogger(l logger.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Converter. A nil runner selects [ExecRunner].
func New(runner ProcessRunner, opts ...Option) *Converter {
	if runner == nil {
		runner = ExecRunner{}
	}
	c := &Converter{
		runner: runner,
		tools:  DefaultTools(),
		log:    logger.NewJSONLogger(nil, true),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert validates req and produces the requested keystore.
//
// Parameters:
//   - ctx: Bounds the external tool invocations. Convert imposes no timeout itself.
//   - req: The conversion request; zero Alias and OutputPath are defaulted.
//
// Returns:
//   - *Result: Output path, format and alias on success
//   - error: An [*Error] describing the failing stage
//
// On every failure path the JKS workspace is removed, and an output file that
// did not exist before the call is removed as well.
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	c.enter(StageValidating, req)
	req, err := c.validate(req)
	if err != nil {
		c.enter(StageFailed, req)
		return nil, err
	}

	var res *Result
	switch req.Format {
	case FormatJKS:
		res, err = c.convertJKS(ctx, req)
	default:
		res, err = c.convertPKCS12(ctx, req)
	}
	if err != nil {
		c.enter(StageFailed, req)
		return nil, err
	}

	c.enter(StageDone, req)
	return res, nil
}

func (c *Converter) enter(stage Stage, req Request) {
	c.log.Printf("keystore: %s (format=%s output=%s)", stage, req.Format, req.OutputPath)
}

func (c *Converter) validate(req Request) (Request, error) {
	if !req.Format.Valid() {
		return req, invalidInput(fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format))
	}
	if req.Alias == "" {
		req.Alias = DefaultAlias
	}
	if req.OutputPath == "" {
		req.OutputPath = req.Format.DefaultOutput()
	}

	decoder := x509certs.New()

	certData, err := readInput("certificate", req.CertificatePath)
	if err != nil {
		return req, invalidInput(err)
	}
	if !decoder.IsPEM(certData) {
		return req, invalidInput(fmt.Errorf("%w: certificate %s", ErrInputNotPEM, req.CertificatePath))
	}
	if _, err := decoder.DecodeMultiple(certData); err != nil {
		return req, invalidInput(fmt.Errorf("%w: certificate %s: %v", ErrInputNotPEM, req.CertificatePath, err))
	}

	keyData, err := readInput("key", req.KeyPath)
	if err != nil {
		return req, invalidInput(err)
	}
	if _, err := decoder.DecodeKeyBlock(keyData); err != nil {
		return req, invalidInput(fmt.Errorf("%w: key %s: %v", ErrInputNotPEM, req.KeyPath, err))
	}

	for _, in := range []string{req.CertificatePath, req.KeyPath} {
		if samePath(in, req.OutputPath) {
			return req, invalidInput(fmt.Errorf("%w: %s", ErrOutputIsInput, req.OutputPath))
		}
	}

	return req, nil
}

func (c *Converter) convertPKCS12(ctx context.Context, req Request) (*Result, error) {
	existed := fileExists(req.OutputPath)

	c.enter(StageBundling, req)
	if err := c.bundle(ctx, req, req.OutputPath, req.Password); err != nil {
		if !existed {
			removePartial(req.OutputPath)
		}
		return nil, err
	}

	return &Result{OutputPath: req.OutputPath, Format: FormatPKCS12, Alias: req.Alias}, nil
}

func (c *Converter) convertJKS(ctx context.Context, req Request) (res *Result, err error) {
	ws, err := acquireWorkspace(filepath.Dir(req.OutputPath))
	if err != nil {
		return nil, ioFailure(StageBundling, err)
	}
	defer func() {
		if relErr := ws.release(); relErr != nil && err == nil {
			res, err = nil, ioFailure(StageDone, relErr)
		}
	}()

	password := req.Password
	if password == "" {
		password = FallbackPassword
	}

	intermediate := ws.path("intermediate.p12")
	staged := ws.path("keystore.jks")

	c.enter(StageBundling, req)
	if err := c.bundle(ctx, req, intermediate, password); err != nil {
		return nil, err
	}

	c.enter(StageMigrating, req)
	if err := c.migrate(ctx, intermediate, staged, password); err != nil {
		return nil, err
	}

	if err := os.Rename(staged, req.OutputPath); err != nil {
		return nil, ioFailure(StageMigrating, err)
	}

	return &Result{OutputPath: req.OutputPath, Format: FormatJKS, Alias: req.Alias}, nil
}

// bundle runs: openssl pkcs12 -export -in C -inkey K -out O -name A -passout pass:P
func (c *Converter) bundle(ctx context.Context, req Request, out, password string) error {
	args := []string{
		"pkcs12", "-export",
		"-in", req.CertificatePath,
		"-inkey", req.KeyPath,
		"-out", out,
		"-name", req.Alias,
		"-passout", "pass:" + password,
	}
	return c.run(ctx, StageBundling, ToolBundler, c.tools.Bundler, args)
}

// migrate runs keytool -importkeystore from the PKCS12 src into a new JKS dest.
func (c *Converter) migrate(ctx context.Context, src, dest, password string) error {
	args := []string{
		"-importkeystore",
		"-srckeystore", src,
		"-srcstoretype", "PKCS12",
		"-srcstorepass", password,
		"-destkeystore", dest,
		"-deststoretype", "JKS",
		"-deststorepass", password,
		"-noprompt",
	}
	return c.run(ctx, StageMigrating, ToolMigrator, c.tools.Migrator, args)
}

func (c *Converter) run(ctx context.Context, stage Stage, tool, exe string, args []string) error {
	res, err := c.runner.Run(ctx, exe, args...)
	switch {
	case errors.Is(err, ErrExecutableNotFound):
		hint := bundlerHint
		if tool == ToolMigrator {
			hint = migratorHint
		}
		return &Error{Kind: KindToolNotFound, Stage: stage, Tool: tool, Executable: exe, Hint: hint, Err: err}
	case err != nil:
		return &Error{Kind: KindExternalToolFailure, Stage: stage, Tool: tool, Executable: exe, Err: err}
	case res.ExitCode != 0:
		return &Error{
			Kind:       KindExternalToolFailure,
			Stage:      stage,
			Tool:       tool,
			Executable: exe,
			ExitCode:   res.ExitCode,
			Stderr:     res.Stderr,
		}
	}
	return nil
}

func readInput(what, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: %s path is empty", ErrInputNotReadable, what)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrInputNotReadable, what, path, err)
	}
	return data, nil
}

func samePath(a, b string) bool {
	if ai, err := os.Stat(a); err == nil {
		if bi, err := os.Stat(b); err == nil {
			return os.SameFile(ai, bi)
		}
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func fileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// removePartial drops an output the failed tool may have left behind.
func removePartial(path string) { _ = os.Remove(path) }
