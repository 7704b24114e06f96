// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain inspects local [X.509] certificate chains.
// It provides capabilities to:
//   - Classify each certificate in a chain (leaf, intermediate, root, self-signed).
//   - Verify a chain against its own last certificate as the trust anchor.
//   - Render a chain as an ASCII tree, a markdown table, or structured JSON.
//
// It backs the cert-info command and the summary printed after
// cert-convert --verify reads a PKCS12 bundle back.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509chain
