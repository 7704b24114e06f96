// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrEmptyChain is returned by operations that need at least one certificate.
var ErrEmptyChain = errors.New("x509chain: no certificates in chain")

// Chain manages [X.509] certificates ordered leaf first.
//
// [X.509]: https://grokipedia.com/page/X.509
type Chain struct {
	mu    sync.RWMutex
	Certs []*x509.Certificate
}

// New creates a new Chain.
//
// Parameters:
//   - certs: Certificates ordered leaf first, as they appear in a PEM bundle
//
// Returns:
//   - *Chain: New Chain instance
func New(certs ...*x509.Certificate) *Chain {
	return &Chain{Certs: certs}
}

// Len returns the number of certificates in the chain.
func (ch *Chain) Len() int {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return len(ch.Certs)
}

// IsSelfSigned checks if a certificate is self-signed.
//
// Parameters:
//   - cert: Certificate to check
//
// Returns:
//   - bool: true if self-signed, false otherwise
func (ch *Chain) IsSelfSigned(cert *x509.Certificate) bool {
	return cert.CheckSignatureFrom(cert) == nil
}

// VerifyChain checks that the leaf chains up to the last certificate.
//
// The last certificate is used as the root and every other certificate as an
// intermediate. No system roots are consulted.
//
// Parameters:
//   - now: Time at which validity periods are evaluated
//
// Returns:
//   - error: [ErrEmptyChain], or the verification error from crypto/x509
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) VerifyChain(now time.Time) error {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return ErrEmptyChain
	}

	roots := x509.NewCertPool()
	intermediates := x509.NewCertPool()
	for i, cert := range ch.Certs {
		if i == len(ch.Certs)-1 {
			roots.AddCert(cert)
		} else {
			intermediates.AddCert(cert)
		}
	}

	opts := x509.VerifyOptions{
		Roots:         roots,
		Intermediates: intermediates,
		CurrentTime:   now,
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	}

	// Preserve the original error for its diagnostics (expiry, unknown authority).
	_, err := ch.Certs[0].Verify(opts)
	return err
}

// ValidityStatus reports whether cert is valid at now.
//
// Returns:
//   - string: "valid", "expired", or "not yet valid"
func ValidityStatus(cert *x509.Certificate, now time.Time) string {
	switch {
	case now.After(cert.NotAfter):
		return "expired"
	case now.Before(cert.NotBefore):
		return "not yet valid"
	default:
		return "valid"
	}
}

// KeyInfo describes the public key of cert.
//
// Returns:
//   - algo: "RSA", "ECDSA", "Ed25519", or "unknown"
//   - bits: Key size in bits, 0 when unknown
func KeyInfo(cert *x509.Certificate) (algo string, bits int) {
	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return "RSA", pub.Size() * 8
	case *ecdsa.PublicKey:
		return "ECDSA", pub.Curve.Params().BitSize
	case ed25519.PublicKey:
		return "Ed25519", 256
	default:
		return "unknown", 0
	}
}

func keySize(cert *x509.Certificate) string {
	algo, bits := KeyInfo(cert)
	if bits == 0 {
		return algo
	}
	return fmt.Sprintf("%d-bit %s", bits, algo)
}
