// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package keystore converts a PEM certificate and private key into a [PKCS12]
// or [JKS] keystore by orchestrating external certificate tooling.
//
// The conversion never touches the input files and never leaves temporary
// artifacts behind. PKCS12 output is produced by a single invocation of the
// bundling tool (openssl by default). JKS output has no direct PEM path, so it
// is produced in two stages: the bundling tool writes an intermediate PKCS12
// file into a scoped workspace, then the migration tool (keytool by default)
// imports it into a JKS keystore. The workspace is released with defer, so it
// is removed on success, on tool failure and on panic.
//
// External processes are reached through the [ProcessRunner] interface. The
// default [ExecRunner] uses os/exec; tests substitute a fake runner.
//
// Failures are reported as [*Error] values carrying a [Kind]:
//   - [KindInvalidInput]: missing or non-PEM inputs, unsupported format
//   - [KindExternalToolFailure]: a tool ran and exited non-zero (stderr kept verbatim)
//   - [KindToolNotFound]: a tool executable is not installed
//   - [KindIOFailure]: the workspace or output file could not be managed
//
// Example:
//
//	conv := keystore.New(nil)
//	res, err := conv.Convert(ctx, keystore.Request{
//	    CertificatePath: "cert.pem",
//	    KeyPath:         "key.pem",
//	    Format:          keystore.FormatJKS,
//	})
//
// [PKCS12]: https://grokipedia.com/page/PKCS_12
// [JKS]: https://grokipedia.com/page/Java_KeyStore
package keystore
