// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/H0llyW00dzZ/veribits-cli/src/internal/api"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/render"
)

// ErrNoCloudCredentials is returned when no provider has credentials in
// flags or environment.
var ErrNoCloudCredentials = errors.New("no cloud credentials provided")

// Environment variables read when the matching credential flag is unset.
const (
	EnvAWSAccessKey     = "AWS_ACCESS_KEY_ID"
	EnvAWSSecretKey     = "AWS_SECRET_ACCESS_KEY"
	EnvAWSRegion        = "AWS_DEFAULT_REGION"
	EnvGCPProject       = "GCP_PROJECT_ID"
	EnvGCPCredentials   = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvAzureAccount     = "AZURE_STORAGE_ACCOUNT"
	EnvAzureKey         = "AZURE_STORAGE_KEY"
	EnvSpacesKey        = "DO_SPACES_KEY"
	EnvSpacesSecret     = "DO_SPACES_SECRET"
	EnvSpacesRegion     = "DO_SPACES_REGION"
	defaultAWSRegion    = "us-east-1"
	defaultSpacesRegion = "nyc3"
)

// shownMatches caps the files listed per bucket in text output.
const shownMatches = 5

type cloudFlags struct {
	awsKey, awsSecret, awsRegion string
	gcpProject, gcpCredentials   string
	azureAccount, azureKey       string
	spacesKey, spacesSecret      string
	spacesRegion                 string
}

func (f *cloudFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.awsKey, "aws-access-key", "", "AWS access key (default $"+EnvAWSAccessKey+")")
	fs.StringVar(&f.awsSecret, "aws-secret-key", "", "AWS secret key (default $"+EnvAWSSecretKey+")")
	fs.StringVar(&f.awsRegion, "aws-region", "", "AWS region (default $"+EnvAWSRegion+" or "+defaultAWSRegion+")")
	fs.StringVar(&f.gcpProject, "gcp-project", "", "GCP project ID (default $"+EnvGCPProject+")")
	fs.StringVar(&f.gcpCredentials, "gcp-credentials", "", "GCP service account file (default $"+EnvGCPCredentials+")")
	fs.StringVar(&f.azureAccount, "azure-account", "", "Azure storage account (default $"+EnvAzureAccount+")")
	fs.StringVar(&f.azureKey, "azure-key", "", "Azure storage key (default $"+EnvAzureKey+")")
	fs.StringVar(&f.spacesKey, "do-key", "", "DigitalOcean Spaces key (default $"+EnvSpacesKey+")")
	fs.StringVar(&f.spacesSecret, "do-secret", "", "DigitalOcean Spaces secret (default $"+EnvSpacesSecret+")")
	fs.StringVar(&f.spacesRegion, "do-region", "", "DigitalOcean Spaces region (default $"+EnvSpacesRegion+" or "+defaultSpacesRegion+")")
}

// credentials collects the credentials of provider, or of every provider
// when provider is [api.ProviderAll]. Incomplete sets are skipped.
func (f *cloudFlags) credentials(provider string) (api.CloudCredentials, error) {
	var creds api.CloudCredentials
	want := func(p string) bool { return provider == api.ProviderAll || provider == p }

	if want(api.ProviderAWS) {
		key, secret := orEnv(f.awsKey, EnvAWSAccessKey, ""), orEnv(f.awsSecret, EnvAWSSecretKey, "")
		if key != "" && secret != "" {
			creds.AWS = &api.AccessKeyCredentials{
				AccessKey: key,
				SecretKey: secret,
				Region:    orEnv(f.awsRegion, EnvAWSRegion, defaultAWSRegion),
			}
		}
	}
	if want(api.ProviderGCS) {
		project, file := orEnv(f.gcpProject, EnvGCPProject, ""), orEnv(f.gcpCredentials, EnvGCPCredentials, "")
		if project != "" && file != "" {
			if _, err := os.Stat(file); err != nil {
				return creds, fmt.Errorf("GCP credentials file: %w", err)
			}
			creds.GCS = &api.GCSCredentials{ProjectID: project, CredentialsFile: file}
		}
	}
	if want(api.ProviderAzure) {
		account, key := orEnv(f.azureAccount, EnvAzureAccount, ""), orEnv(f.azureKey, EnvAzureKey, "")
		if account != "" && key != "" {
			creds.Azure = &api.AzureCredentials{AccountName: account, AccountKey: key}
		}
	}
	if want(api.ProviderDigitalOcean) {
		key, secret := orEnv(f.spacesKey, EnvSpacesKey, ""), orEnv(f.spacesSecret, EnvSpacesSecret, "")
		if key != "" && secret != "" {
			creds.DigitalOcean = &api.AccessKeyCredentials{
				AccessKey: key,
				SecretKey: secret,
				Region:    orEnv(f.spacesRegion, EnvSpacesRegion, defaultSpacesRegion),
			}
		}
	}

	if creds.Empty() {
		return creds, fmt.Errorf("%w for %s: set %s/%s, %s/%s, %s/%s or %s/%s",
			ErrNoCloudCredentials, provider,
			EnvAWSAccessKey, EnvAWSSecretKey, EnvGCPProject, EnvGCPCredentials,
			EnvAzureAccount, EnvAzureKey, EnvSpacesKey, EnvSpacesSecret)
	}
	return creds, nil
}

func orEnv(flag, env, fallback string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fallback
}

func validProvider(p string, allowAll bool) error {
	if slices.Contains(api.CloudProviders, p) || (allowAll && p == api.ProviderAll) {
		return nil
	}
	valid := strings.Join(api.CloudProviders, ", ")
	if allowAll {
		valid += ", " + api.ProviderAll
	}
	return fmt.Errorf("invalid --provider %q: must be one of %s", p, valid)
}

func (a *app) cloudStorageScanCommand() *cobra.Command {
	var (
		provider   string
		searchType string
		maxResults int
		creds      cloudFlags
	)
	cmd := &cobra.Command{
		Use:     "cloud-storage-scan QUERY",
		Aliases: []string{"cloud-storage"},
		Short:   "Search cloud storage buckets for files by name or content",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider = strings.ToLower(provider)
			if err := validProvider(provider, true); err != nil {
				return err
			}
			if searchType != "filename" && searchType != "content" {
				return fmt.Errorf("invalid --search-type %q: must be filename or content", searchType)
			}
			if maxResults <= 0 {
				return fmt.Errorf("invalid --max-results %d: must be positive", maxResults)
			}
			credentials, err := creds.credentials(provider)
			if err != nil {
				return err
			}

			a.printer.Header(fmt.Sprintf("Searching Cloud Storage for %q...", args[0]))
			res, err := a.client().SearchCloudStorage(cmd.Context(), api.CloudSearchRequest{
				Providers:   []string{provider},
				SearchType:  searchType,
				Query:       args[0],
				Credentials: credentials,
				MaxResults:  maxResults,
			})
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.KV("Providers Searched", res.Summary.TotalProvidersSearched)
				p.KV("Buckets Searched", res.Summary.TotalBucketsSearched)
				p.KV("Total Matches", res.Summary.TotalMatches)
				if res.Cached {
					p.Dim("[Cached result]")
				}
				if res.Summary.TotalMatches == 0 {
					p.Success("No matching files found")
					return nil
				}

				for _, name := range sortedKeys(res.Results) {
					pr := res.Results[name]
					if pr.TotalMatches == 0 {
						continue
					}
					p.Section(strings.ToUpper(name))
					p.Line("  %d match(es) in %d bucket(s)", pr.TotalMatches, pr.BucketsSearched)
					for _, b := range pr.Results {
						p.Line("  %s (%d files)", b.Name(), b.Count)
						for _, m := range b.Matches[:min(shownMatches, len(b.Matches))] {
							line := "    - " + m.Key
							if m.SizeHuman != "" {
								line += " (" + m.SizeHuman + ")"
							}
							if m.ContentMatch {
								line += " [content match]"
							}
							p.Line("%s", line)
						}
						if extra := len(b.Matches) - shownMatches; extra > 0 {
							p.Dim("    ... and %d more files", extra)
						}
					}
				}
				return nil
			})
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&provider, "provider", "p", api.ProviderAll, "provider: aws, gcs, azure, digitalocean or all")
	fs.StringVarP(&searchType, "search-type", "t", "filename", "match on filename or content")
	fs.IntVarP(&maxResults, "max-results", "m", 1000, "maximum number of matches")
	creds.bind(fs)
	return cmd
}

func (a *app) cloudStorageBucketsCommand() *cobra.Command {
	var (
		provider string
		creds    cloudFlags
	)
	cmd := &cobra.Command{
		Use:   "cloud-storage-buckets",
		Short: "List the buckets visible to cloud credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider = strings.ToLower(provider)
			if err := validProvider(provider, false); err != nil {
				return err
			}
			credentials, err := creds.credentials(provider)
			if err != nil {
				return err
			}

			a.printer.Header(fmt.Sprintf("Listing %s Buckets...", strings.ToUpper(provider)))
			res, err := a.client().ListBuckets(cmd.Context(), api.ListBucketsRequest{
				Provider:    provider,
				Credentials: credentials,
			})
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				if len(res.Buckets) == 0 {
					p.Warn("No buckets found")
					return nil
				}
				p.Section(fmt.Sprintf("Buckets for %s (%d total)", strings.ToUpper(provider), len(res.Buckets)))
				for _, b := range res.Buckets {
					p.Line("  - %s", b.Name)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "provider: aws, gcs, azure or digitalocean")
	creds.bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("provider")
	return cmd
}
