// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keystore

import (
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"software.sslmate.com/src/go-pkcs12"
)

// ErrVerifyPKCS12 indicates that a produced PKCS12 file could not be opened with its password.
var ErrVerifyPKCS12 = errors.New("keystore: PKCS12 verification failed")

// Bundle summarizes a PKCS12 keystore that was read back after conversion.
type Bundle struct {
	Leaf    *x509.Certificate
	CACerts []*x509.Certificate
	HasKey  bool
}

// VerifyPKCS12 opens the PKCS12 file at path with password and returns its contents.
//
// It is used after a PKCS12 conversion to prove that the bundle decrypts with
// the password the caller supplied (including the empty password).
func VerifyPKCS12(path, password string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerifyPKCS12, err)
	}

	key, leaf, caCerts, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerifyPKCS12, err)
	}

	return &Bundle{Leaf: leaf, CACerts: caCerts, HasKey: key != nil}, nil
}
