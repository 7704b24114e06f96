// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package api

import (
	"bytes"
	"encoding/json"
)

// JWTDecodeRequest is the body of POST /jwt/decode.
type JWTDecodeRequest struct {
	Token           string `json:"token"`
	Secret          string `json:"secret"`
	VerifySignature bool   `json:"verify_signature"`
}

// JWTDecodeResult is the data of POST /jwt/decode.
type JWTDecodeResult struct {
	Header            map[string]any `json:"header"`
	Payload           map[string]any `json:"payload"`
	Claims            map[string]any `json:"claims,omitempty"`
	SignatureVerified bool           `json:"signature_verified"`
}

// JWTSignRequest is the body of POST /jwt/sign.
type JWTSignRequest struct {
	Secret    string         `json:"secret"`
	Payload   map[string]any `json:"payload"`
	ExpiresIn int            `json:"expires_in"`
}

// JWTSignResult is the data of POST /jwt/sign.
type JWTSignResult struct {
	Token     string `json:"token"`
	Algorithm string `json:"algorithm"`
	ExpiresIn int    `json:"expires_in"`
	ExpiresAt any    `json:"expires_at,omitempty"`
}

// RegexRequest is the body of POST /tools/regex-test.
type RegexRequest struct {
	Pattern string `json:"pattern"`
	Text    string `json:"text"`
	Flags   string `json:"flags"`
}

// RegexMatch is one match reported by the regex tester.
type RegexMatch struct {
	Match    string `json:"match"`
	Position int    `json:"position"`
}

// RegexResult is the data of POST /tools/regex-test.
type RegexResult struct {
	Pattern    string       `json:"pattern"`
	MatchCount int          `json:"match_count"`
	Matches    []RegexMatch `json:"matches"`
}

// SecretScanRequest is the body of POST /tools/scan-secrets.
type SecretScanRequest struct {
	Text string `json:"text"`
}

// Secret is one finding of the secret scanner.
type Secret struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Line     int    `json:"line"`
	Severity string `json:"severity"`
}

// SecretScanResult is the data of POST /tools/scan-secrets.
type SecretScanResult struct {
	SecretsFound int      `json:"secrets_found"`
	RiskLevel    string   `json:"risk_level"`
	Secrets      []Secret `json:"secrets"`
}

// HashRequest is the body of POST /tools/generate-hash.
type HashRequest struct {
	Text       string   `json:"text"`
	Algorithms []string `json:"algorithms"`
}

// HashResult is the data of POST /tools/generate-hash.
type HashResult struct {
	Hashes map[string]string `json:"hashes"`
}

// CryptoValidateRequest is the body of POST /crypto/validate/{bitcoin,ethereum}.
type CryptoValidateRequest struct {
	Value string `json:"value"`
	// Type is "address" or "transaction".
	Type string `json:"type"`
}

// CryptoValidateResult is the data of the bitcoin and ethereum validators.
type CryptoValidateResult struct {
	IsValid       bool           `json:"is_valid"`
	Format        string         `json:"format,omitempty"`
	Network       string         `json:"network,omitempty"`
	ChecksumValid bool           `json:"checksum_valid"`
	Details       map[string]any `json:"details,omitempty"`
}

// FileMagicResult is the data of POST /file-magic.
type FileMagicResult struct {
	DetectedType      string `json:"detected_type"`
	DetectedExtension string `json:"detected_extension"`
	DetectedMIME      string `json:"detected_mime"`
	FileHash          string `json:"file_hash"`
}

// DNSRecordTypes lists the record types accepted by POST /tools/dns-validate.
var DNSRecordTypes = []string{"A", "AAAA", "MX", "TXT", "CNAME", "NS", "SOA", "PTR", "SRV", "CAA"}

// DNSRequest is the body of POST /tools/dns-validate.
type DNSRequest struct {
	Domain     string `json:"domain"`
	RecordType string `json:"record_type"`
}

// DNSRecord is one resolved record.
type DNSRecord struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	TTL      int    `json:"ttl"`
	Priority int    `json:"priority,omitempty"`
}

// DNSSEC reports DNSSEC status for a domain.
type DNSSEC struct {
	Enabled bool `json:"enabled"`
}

// DNSResult is the data of POST /tools/dns-validate.
type DNSResult struct {
	Records []DNSRecord `json:"records"`
	DNSSEC  *DNSSEC     `json:"dnssec,omitempty"`
}

// WhoisRequest is the body of POST /tools/whois.
type WhoisRequest struct {
	Query string `json:"query"`
}

// WhoisResult is the data of POST /tools/whois.
type WhoisResult struct {
	Query       string         `json:"query"`
	QueryType   string         `json:"query_type"`
	WhoisServer string         `json:"whois_server"`
	Parsed      map[string]any `json:"parsed,omitempty"`
	RawResponse string         `json:"raw_response,omitempty"`
}

// IPCalcRequest is the body of POST /tools/ip-calculate.
type IPCalcRequest struct {
	IP         string `json:"ip"`
	SubnetMask string `json:"subnet_mask,omitempty"`
}

// IPCalcResult is the data of POST /tools/ip-calculate.
type IPCalcResult struct {
	IPAddress        string      `json:"ip_address"`
	CIDR             string      `json:"cidr"`
	NetworkAddress   string      `json:"network_address"`
	BroadcastAddress string      `json:"broadcast_address"`
	SubnetMask       string      `json:"subnet_mask"`
	WildcardMask     string      `json:"wildcard_mask"`
	FirstUsable      string      `json:"first_usable"`
	LastUsable       string      `json:"last_usable"`
	TotalHosts       json.Number `json:"total_hosts"`
	UsableHosts      json.Number `json:"usable_hosts"`
	IPClass          string      `json:"ip_class"`
	IPType           string      `json:"ip_type"`
}

// RBLRequest is the body of POST /tools/rbl-check.
type RBLRequest struct {
	IP string `json:"ip"`
}

// RBLListing is one blacklist that lists the address.
type RBLListing struct {
	RBL    string `json:"rbl"`
	Reason string `json:"reason"`
}

// RBLResult is the data of POST /tools/rbl-check.
type RBLResult struct {
	Listed            bool         `json:"listed"`
	BlacklistsChecked int          `json:"blacklists_checked"`
	BlacklistsFound   int          `json:"blacklists_found"`
	Listings          []RBLListing `json:"listings"`
}

// SMTPRelayRequest is the body of POST /tools/smtp-relay-check.
type SMTPRelayRequest struct {
	Target string `json:"target"`
}

// SMTPTest is one check run by the relay checker.
type SMTPTest struct {
	Test    string `json:"test"`
	Result  string `json:"result"`
	Details string `json:"details"`
	Passed  bool   `json:"passed"`
}

// SMTPRelayResult is the data of POST /tools/smtp-relay-check.
type SMTPRelayResult struct {
	Server         string     `json:"server"`
	IsOpenRelay    bool       `json:"is_open_relay"`
	TestsPerformed []SMTPTest `json:"tests_performed"`
}

// TracerouteRequest is the body of POST /tools/traceroute.
type TracerouteRequest struct {
	Target  string `json:"target"`
	MaxHops int    `json:"max_hops"`
}

// HopLocation is the geolocation of a hop.
type HopLocation struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Hop is one traceroute hop.
type Hop struct {
	Hop       int          `json:"hop"`
	IP        string       `json:"ip"`
	Hostname  string       `json:"hostname"`
	Timeout   bool         `json:"timeout"`
	Latencies []float64    `json:"latencies"`
	Location  *HopLocation `json:"location,omitempty"`
}

// TracerouteResult is the data of POST /tools/traceroute.
type TracerouteResult struct {
	Target    string `json:"target"`
	TotalHops int    `json:"total_hops"`
	Hops      []Hop  `json:"hops"`
}

// BGPQueryRequest is the body of POST /bgp/prefix and POST /bgp/search.
type BGPQueryRequest struct {
	Query string `json:"query"`
}

// BGPASNRequest is the body of the POST /bgp/asn endpoints.
type BGPASNRequest struct {
	ASN string `json:"asn"`
}

// ASNRef is an autonomous system as listed by the BGP endpoints.
type ASNRef struct {
	ASN         json.Number `json:"asn"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	CountryCode string      `json:"country_code"`
}

// PrefixRef is an announced prefix as listed by the BGP endpoints.
type PrefixRef struct {
	Prefix      string `json:"prefix"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BGPPrefixResult is the data of POST /bgp/prefix.
type BGPPrefixResult struct {
	Prefix         string   `json:"prefix"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	CountryCode    string   `json:"country_code"`
	RIRName        string   `json:"rir_name"`
	ASNs           []ASNRef `json:"asns"`
	RPKIValidation string   `json:"rpki_validation"`
}

// BGPASNResult is the data of POST /bgp/asn.
type BGPASNResult struct {
	ASN               json.Number `json:"asn"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	CountryCode       string      `json:"country_code"`
	Website           string      `json:"website,omitempty"`
	LookingGlass      string      `json:"looking_glass,omitempty"`
	TrafficEstimation string      `json:"traffic_estimation,omitempty"`
	TrafficRatio      string      `json:"traffic_ratio,omitempty"`
	EmailContacts     []string    `json:"email_contacts,omitempty"`
}

// BGPPrefixesResult is the data of POST /bgp/asn/prefixes.
type BGPPrefixesResult struct {
	IPv4Count    int         `json:"ipv4_count"`
	IPv6Count    int         `json:"ipv6_count"`
	IPv4Prefixes []PrefixRef `json:"ipv4_prefixes"`
}

// BGPPeersResult is the data of POST /bgp/asn/peers.
type BGPPeersResult struct {
	IPv4PeerCount int      `json:"ipv4_peer_count"`
	IPv6PeerCount int      `json:"ipv6_peer_count"`
	IPv4Peers     []ASNRef `json:"ipv4_peers"`
}

// BGPUpstreamsResult is the data of POST /bgp/asn/upstreams.
type BGPUpstreamsResult struct {
	IPv4UpstreamCount int      `json:"ipv4_upstream_count"`
	IPv6UpstreamCount int      `json:"ipv6_upstream_count"`
	IPv4Upstreams     []ASNRef `json:"ipv4_upstreams"`
}

// BGPDownstreamsResult is the data of POST /bgp/asn/downstreams.
type BGPDownstreamsResult struct {
	IPv4DownstreamCount int      `json:"ipv4_downstream_count"`
	IPv6DownstreamCount int      `json:"ipv6_downstream_count"`
	IPv4Downstreams     []ASNRef `json:"ipv4_downstreams"`
}

// BGPSearchResult is the data of POST /bgp/search.
type BGPSearchResult struct {
	Results struct {
		ASNs         []ASNRef    `json:"asns"`
		IPv4Prefixes []PrefixRef `json:"ipv4_prefixes"`
		IPv6Prefixes []PrefixRef `json:"ipv6_prefixes"`
	} `json:"results"`
}

// Total returns the number of hits across all result kinds.
func (r *BGPSearchResult) Total() int {
	return len(r.Results.ASNs) + len(r.Results.IPv4Prefixes) + len(r.Results.IPv6Prefixes)
}

// LimitsResult is the data of GET /limits/anonymous.
// Fields are pointers so that absent values can fall back to the documented defaults.
type LimitsResult struct {
	FreeScans       *int `json:"free_scans,omitempty"`
	ScansRemaining  *int `json:"scans_remaining,omitempty"`
	MaxFileSizeMB   *int `json:"max_file_size_mb,omitempty"`
	TrialWindowDays *int `json:"trial_window_days,omitempty"`
}

// HealthResult is the body of GET /health.
type HealthResult struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
	Time    string `json:"time,omitempty"`
}

// Tool describes one VeriBits tool in the catalog.
type Tool struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Endpoint    string `json:"endpoint"`
	CLICommand  string `json:"cli_command"`
	URL         string `json:"url,omitempty"`
}

// ToolCategory is a catalog category with its tool count.
type ToolCategory struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ToolsResult is the data of GET /tools/list and GET /tools/search.
type ToolsResult struct {
	Query      string         `json:"query,omitempty"`
	Category   string         `json:"category,omitempty"`
	Tools      []Tool         `json:"tools"`
	Total      int            `json:"total,omitempty"`
	Categories []ToolCategory `json:"categories,omitempty"`
}

// UnmarshalJSON accepts the catalog object as well as a bare array of tools.
func (r *ToolsResult) UnmarshalJSON(data []byte) error {
	type plain ToolsResult
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var tools []Tool
		if err := json.Unmarshal(trimmed, &tools); err != nil {
			return err
		}
		*r = ToolsResult{Tools: tools, Total: len(tools)}
		return nil
	}
	return json.Unmarshal(data, (*plain)(r))
}

// BreachRequest is the body of POST /hibp/check-email.
type BreachRequest struct {
	Email string `json:"email"`
}

// Breach is one data breach record as reported by Have I Been Pwned.
type Breach struct {
	Name        string   `json:"Name"`
	Domain      string   `json:"Domain"`
	BreachDate  string   `json:"BreachDate"`
	Description string   `json:"Description"`
	DataClasses []string `json:"DataClasses"`
	IsVerified  bool     `json:"IsVerified"`
	IsSensitive bool     `json:"IsSensitive"`
}

// BreachResult is the data of POST /hibp/check-email.
type BreachResult struct {
	BreachCount int      `json:"breach_count"`
	Breaches    []Breach `json:"breaches"`
	Cached      bool     `json:"cached,omitempty"`
	CheckedAt   string   `json:"checked_at,omitempty"`
}

// PasswordCheckRequest is the body of POST /hibp/check-password.
type PasswordCheckRequest struct {
	Password string `json:"password"`
}

// PasswordCheckResult is the data of POST /hibp/check-password.
type PasswordCheckResult struct {
	Pwned       bool   `json:"pwned"`
	Occurrences int    `json:"occurrences"`
	Cached      bool   `json:"cached,omitempty"`
	CheckedAt   string `json:"checked_at,omitempty"`
}

// Cloud storage providers accepted by the cloud-storage endpoints.
const (
	ProviderAll          = "all"
	ProviderAWS          = "aws"
	ProviderGCS          = "gcs"
	ProviderAzure        = "azure"
	ProviderDigitalOcean = "digitalocean"
)

// CloudProviders lists the concrete providers, without [ProviderAll].
var CloudProviders = []string{ProviderAWS, ProviderGCS, ProviderAzure, ProviderDigitalOcean}

// AccessKeyCredentials authenticate S3-compatible providers (AWS, DigitalOcean Spaces).
type AccessKeyCredentials struct {
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Region    string `json:"region"`
}

// GCSCredentials authenticate Google Cloud Storage.
type GCSCredentials struct {
	ProjectID       string `json:"project_id"`
	CredentialsFile string `json:"credentials_file"`
}

// AzureCredentials authenticate Azure Blob Storage.
type AzureCredentials struct {
	AccountName string `json:"account_name"`
	AccountKey  string `json:"account_key"`
}

// CloudCredentials carries the credentials of every provider that has them.
type CloudCredentials struct {
	AWS          *AccessKeyCredentials `json:"aws,omitempty"`
	GCS          *GCSCredentials       `json:"gcs,omitempty"`
	Azure        *AzureCredentials     `json:"azure,omitempty"`
	DigitalOcean *AccessKeyCredentials `json:"digitalocean,omitempty"`
}

// Empty reports whether no provider has credentials.
func (c CloudCredentials) Empty() bool {
	return c.AWS == nil && c.GCS == nil && c.Azure == nil && c.DigitalOcean == nil
}

// CloudSearchRequest is the body of POST /tools/cloud-storage/search.
type CloudSearchRequest struct {
	Providers   []string         `json:"providers"`
	SearchType  string           `json:"search_type"`
	Query       string           `json:"query"`
	Credentials CloudCredentials `json:"credentials"`
	MaxResults  int              `json:"max_results"`
}

// CloudFileMatch is one object that matched a cloud storage search.
type CloudFileMatch struct {
	Key          string `json:"key"`
	SizeHuman    string `json:"size_human,omitempty"`
	ContentMatch bool   `json:"content_match,omitempty"`
}

// CloudBucketMatches groups the matches found in one bucket, container or space.
type CloudBucketMatches struct {
	Bucket    string           `json:"bucket,omitempty"`
	Container string           `json:"container,omitempty"`
	Space     string           `json:"space,omitempty"`
	Count     int              `json:"count"`
	Matches   []CloudFileMatch `json:"matches"`
}

// Name returns the bucket, container or space name, whichever the provider set.
func (b CloudBucketMatches) Name() string {
	for _, n := range []string{b.Bucket, b.Container, b.Space} {
		if n != "" {
			return n
		}
	}
	return "unknown"
}

// CloudProviderResult is the search outcome for one provider.
type CloudProviderResult struct {
	TotalMatches    int                  `json:"total_matches"`
	BucketsSearched int                  `json:"buckets_searched"`
	Results         []CloudBucketMatches `json:"results"`
}

// CloudSearchResult is the data of POST /tools/cloud-storage/search.
type CloudSearchResult struct {
	Summary struct {
		TotalProvidersSearched int `json:"total_providers_searched"`
		TotalBucketsSearched   int `json:"total_buckets_searched"`
		TotalMatches           int `json:"total_matches"`
	} `json:"summary"`
	Cached  bool                           `json:"cached,omitempty"`
	Results map[string]CloudProviderResult `json:"results"`
}

// ListBucketsRequest is the body of POST /tools/cloud-storage/list-buckets.
type ListBucketsRequest struct {
	Provider    string           `json:"provider"`
	Credentials CloudCredentials `json:"credentials"`
}

// Bucket is a storage bucket. The API sends either a name or an object.
type Bucket struct {
	Name string `json:"name"`
}

// UnmarshalJSON accepts "name" as well as {"name": "name"}.
func (b *Bucket) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		b.Name = name
		return nil
	}
	type plain Bucket
	return json.Unmarshal(data, (*plain)(b))
}

// ListBucketsResult is the data of POST /tools/cloud-storage/list-buckets.
type ListBucketsResult struct {
	Buckets []Bucket `json:"buckets"`
}
