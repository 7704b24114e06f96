// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package api

import (
	"context"
	"io"
	"net/url"
)

// DecodeJWT calls POST /jwt/decode.
func (c *Client) DecodeJWT(ctx context.Context, req JWTDecodeRequest) (*JWTDecodeResult, error) {
	var out JWTDecodeResult
	if err := c.postJSON(ctx, "/jwt/decode", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignJWT calls POST /jwt/sign.
func (c *Client) SignJWT(ctx context.Context, req JWTSignRequest) (*JWTSignResult, error) {
	var out JWTSignResult
	if err := c.postJSON(ctx, "/jwt/sign", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TestRegex calls POST /tools/regex-test.
func (c *Client) TestRegex(ctx context.Context, req RegexRequest) (*RegexResult, error) {
	var out RegexResult
	if err := c.postJSON(ctx, "/tools/regex-test", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScanSecrets calls POST /tools/scan-secrets.
func (c *Client) ScanSecrets(ctx context.Context, text string) (*SecretScanResult, error) {
	var out SecretScanResult
	if err := c.postJSON(ctx, "/tools/scan-secrets", SecretScanRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateHash calls POST /tools/generate-hash.
func (c *Client) GenerateHash(ctx context.Context, req HashRequest) (*HashResult, error) {
	var out HashResult
	if err := c.postJSON(ctx, "/tools/generate-hash", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateBitcoin calls POST /crypto/validate/bitcoin.
func (c *Client) ValidateBitcoin(ctx context.Context, req CryptoValidateRequest) (*CryptoValidateResult, error) {
	var out CryptoValidateResult
	if err := c.postJSON(ctx, "/crypto/validate/bitcoin", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateEthereum calls POST /crypto/validate/ethereum.
func (c *Client) ValidateEthereum(ctx context.Context, req CryptoValidateRequest) (*CryptoValidateResult, error) {
	var out CryptoValidateResult
	if err := c.postJSON(ctx, "/crypto/validate/ethereum", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FileMagic uploads r to POST /file-magic as a multipart file named filename.
func (c *Client) FileMagic(ctx context.Context, filename string, r io.Reader) (*FileMagicResult, error) {
	var out FileMagicResult
	if err := c.postFile(ctx, "/file-magic", filename, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateDNS calls POST /tools/dns-validate.
func (c *Client) ValidateDNS(ctx context.Context, req DNSRequest) (*DNSResult, error) {
	var out DNSResult
	if err := c.postJSON(ctx, "/tools/dns-validate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Whois calls POST /tools/whois.
func (c *Client) Whois(ctx context.Context, query string) (*WhoisResult, error) {
	var out WhoisResult
	if err := c.postJSON(ctx, "/tools/whois", WhoisRequest{Query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CalculateIP calls POST /tools/ip-calculate.
func (c *Client) CalculateIP(ctx context.Context, req IPCalcRequest) (*IPCalcResult, error) {
	var out IPCalcResult
	if err := c.postJSON(ctx, "/tools/ip-calculate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckRBL calls POST /tools/rbl-check.
func (c *Client) CheckRBL(ctx context.Context, ip string) (*RBLResult, error) {
	var out RBLResult
	if err := c.postJSON(ctx, "/tools/rbl-check", RBLRequest{IP: ip}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckSMTPRelay calls POST /tools/smtp-relay-check.
func (c *Client) CheckSMTPRelay(ctx context.Context, target string) (*SMTPRelayResult, error) {
	var out SMTPRelayResult
	if err := c.postJSON(ctx, "/tools/smtp-relay-check", SMTPRelayRequest{Target: target}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Traceroute calls POST /tools/traceroute.
func (c *Client) Traceroute(ctx context.Context, req TracerouteRequest) (*TracerouteResult, error) {
	var out TracerouteResult
	if err := c.postJSON(ctx, "/tools/traceroute", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BGPPrefix calls POST /bgp/prefix.
func (c *Client) BGPPrefix(ctx context.Context, query string) (*BGPPrefixResult, error) {
	var out BGPPrefixResult
	if err := c.postJSON(ctx, "/bgp/prefix", BGPQueryRequest{Query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BGPASN calls POST /bgp/asn.
func (c *Client) BGPASN(ctx context.Context, asn string) (*BGPASNResult, error) {
	var out BGPASNResult
	if err := c.postJSON(ctx, "/bgp/asn", BGPASNRequest{ASN: asn}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BGPPrefixes calls POST /bgp/asn/prefixes.
func (c *Client) BGPPrefixes(ctx context.Context, asn string) (*BGPPrefixesResult, error) {
	var out BGPPrefixesResult
	if err := c.postJSON(ctx, "/bgp/asn/prefixes", BGPASNRequest{ASN: asn}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BGPPeers calls POST /bgp/asn/peers.
func (c *Client) BGPPeers(ctx context.Context, asn string) (*BGPPeersResult, error) {
	var out BGPPeersResult
	if err := c.postJSON(ctx, "/bgp/asn/peers", BGPASNRequest{ASN: asn}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BGPUpstreams calls POST /bgp/asn/upstreams.
func (c *Client) BGPUpstreams(ctx context.Context, asn string) (*BGPUpstreamsResult, error) {
	var out BGPUpstreamsResult
	if err := c.postJSON(ctx, "/bgp/asn/upstreams", BGPASNRequest{ASN: asn}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BGPDownstreams calls POST /bgp/asn/downstreams.
func (c *Client) BGPDownstreams(ctx context.Context, asn string) (*BGPDownstreamsResult, error) {
	var out BGPDownstreamsResult
	if err := c.postJSON(ctx, "/bgp/asn/downstreams", BGPASNRequest{ASN: asn}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BGPSearch calls POST /bgp/search.
func (c *Client) BGPSearch(ctx context.Context, query string) (*BGPSearchResult, error) {
	var out BGPSearchResult
	if err := c.postJSON(ctx, "/bgp/search", BGPQueryRequest{Query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnonymousLimits calls GET /limits/anonymous.
func (c *Client) AnonymousLimits(ctx context.Context) (*LimitsResult, error) {
	var out LimitsResult
	if err := c.getJSON(ctx, "/limits/anonymous", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (*HealthResult, error) {
	var out HealthResult
	if err := c.getJSON(ctx, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTools calls GET /tools/list.
func (c *Client) ListTools(ctx context.Context) (*ToolsResult, error) {
	var out ToolsResult
	if err := c.getJSON(ctx, "/tools/list", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchTools calls GET /tools/search with optional query and category filters.
func (c *Client) SearchTools(ctx context.Context, query, category string) (*ToolsResult, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if category != "" {
		params.Set("category", category)
	}

	var out ToolsResult
	if err := c.getJSON(ctx, "/tools/search", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckBreach calls POST /hibp/check-email.
func (c *Client) CheckBreach(ctx context.Context, email string) (*BreachResult, error) {
	var out BreachResult
	if err := c.postJSON(ctx, "/hibp/check-email", BreachRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckPassword calls POST /hibp/check-password. The server queries Have I
// Been Pwned by SHA-1 prefix.
func (c *Client) CheckPassword(ctx context.Context, password string) (*PasswordCheckResult, error) {
	var out PasswordCheckResult
	if err := c.postJSON(ctx, "/hibp/check-password", PasswordCheckRequest{Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchCloudStorage calls POST /tools/cloud-storage/search.
func (c *Client) SearchCloudStorage(ctx context.Context, req CloudSearchRequest) (*CloudSearchResult, error) {
	var out CloudSearchResult
	if err := c.postJSON(ctx, "/tools/cloud-storage/search", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBuckets calls POST /tools/cloud-storage/list-buckets.
func (c *Client) ListBuckets(ctx context.Context, req ListBucketsRequest) (*ListBucketsResult, error) {
	var out ListBucketsResult
	if err := c.postJSON(ctx, "/tools/cloud-storage/list-buckets", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
