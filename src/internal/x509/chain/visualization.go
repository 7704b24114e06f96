// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderASCIITree renders the certificate chain as an ASCII tree diagram.
//
// It displays the certificate hierarchy with visual connectors showing the
// relationship between leaf, intermediate, and root certificates.
//
// Parameters:
//   - now: Time used to mark each certificate valid or not
//
// Returns:
//   - string: ASCII tree representation of the certificate chain
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) RenderASCIITree(now time.Time) string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return "No certificates in chain"
	}

	var result strings.Builder
	for i, cert := range ch.Certs {
		connector := "├── "
		if i == len(ch.Certs)-1 {
			connector = "└── "
		}

		statusIcon := "✓"
		if ValidityStatus(cert, now) != "valid" {
			statusIcon = "✗"
		}

		fmt.Fprintf(&result, "%s[%s] %s (%s)\n", connector, statusIcon, displayName(cert), ch.role(i))
	}

	return result.String()
}

// RenderTable renders the certificate chain as a formatted markdown table.
//
// It displays certificate details including role, subject, issuer, validity dates,
// key size, and validity status in a tabular format using tablewriter.
//
// Parameters:
//   - now: Time used to compute the status column
//
// Returns:
//   - string: Markdown table representation of the certificate chain
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) RenderTable(now time.Time) string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Role", "Subject", "Issuer", "Valid Until", "Key Size", "Status"})

	rows := make([][]string, 0, len(ch.Certs))
	for i, cert := range ch.Certs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			ch.role(i),
			displayName(cert),
			cert.Issuer.CommonName,
			cert.NotAfter.Format("2006-01-02"),
			keySize(cert),
			ValidityStatus(cert, now),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// CertificateSummary is the JSON view of one certificate in a chain.
type CertificateSummary struct {
	Index              int       `json:"index"`
	Role               string    `json:"role"`
	Subject            string    `json:"subject"`
	Issuer             string    `json:"issuer"`
	SerialNumber       string    `json:"serialNumber"`
	SignatureAlgorithm string    `json:"signatureAlgorithm"`
	PublicKeyAlgorithm string    `json:"publicKeyAlgorithm"`
	KeySize            int       `json:"keySize"`
	DNSNames           []string  `json:"dnsNames,omitempty"`
	NotBefore          time.Time `json:"notBefore"`
	NotAfter           time.Time `json:"notAfter"`
	IsCA               bool      `json:"isCA"`
	Status             string    `json:"status"`
}

// Summary is the JSON view of a chain.
type Summary struct {
	Timestamp    string               `json:"timestamp"`
	ChainLength  int                  `json:"chainLength"`
	Verified     bool                 `json:"verified"`
	VerifyError  string               `json:"verifyError,omitempty"`
	Certificates []CertificateSummary `json:"certificates"`
}

// Summarize builds the structured view of the chain at now.
//
// Thread Safety: Safe for concurrent use.
func (ch *Chain) Summarize(now time.Time) Summary {
	verifyErr := ch.VerifyChain(now)

	ch.mu.RLock()
	defer ch.mu.RUnlock()

	s := Summary{
		Timestamp:    now.UTC().Format(time.RFC3339),
		ChainLength:  len(ch.Certs),
		Verified:     verifyErr == nil,
		Certificates: make([]CertificateSummary, len(ch.Certs)),
	}
	if verifyErr != nil {
		s.VerifyError = verifyErr.Error()
	}

	for i, cert := range ch.Certs {
		algo, bits := KeyInfo(cert)
		s.Certificates[i] = CertificateSummary{
			Index:              i,
			Role:               ch.role(i),
			Subject:            cert.Subject.String(),
			Issuer:             cert.Issuer.String(),
			SerialNumber:       cert.SerialNumber.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			PublicKeyAlgorithm: algo,
			KeySize:            bits,
			DNSNames:           cert.DNSNames,
			NotBefore:          cert.NotBefore,
			NotAfter:           cert.NotAfter,
			IsCA:               cert.IsCA,
			Status:             ValidityStatus(cert, now),
		}
	}

	return s
}

// ToVisualizationJSON converts the certificate chain to indented JSON.
//
// Returns:
//   - []byte: JSON representation of [Chain.Summarize]
//   - error: Error if JSON marshaling fails
func (ch *Chain) ToVisualizationJSON(now time.Time) ([]byte, error) {
	return json.MarshalIndent(ch.Summarize(now), "", "  ")
}

// role determines the role of a certificate in the chain.
// Callers must hold ch.mu.
func (ch *Chain) role(index int) string {
	total := len(ch.Certs)
	switch {
	case total == 1 && ch.IsSelfSigned(ch.Certs[0]):
		return "Self-Signed Certificate"
	case index == 0:
		return "End-Entity (Leaf) Certificate"
	case index == total-1:
		return "Root CA Certificate"
	default:
		return "Intermediate CA Certificate"
	}
}

func displayName(cert *x509.Certificate) string {
	if cert.Subject.CommonName != "" {
		return cert.Subject.CommonName
	}
	return cert.Subject.String()
}
