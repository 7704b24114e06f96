// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/veribits-cli/src/internal/api"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/render"
)

// whoisRawLines is the number of raw WHOIS lines shown before truncating.
const whoisRawLines = 50

func (a *app) dnsCommand() *cobra.Command {
	var recordType string
	cmd := &cobra.Command{
		Use:   "dns DOMAIN",
		Short: "Validate DNS records for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordType = strings.ToUpper(recordType)
			if !slices.Contains(api.DNSRecordTypes, recordType) {
				return fmt.Errorf("invalid --type %q: must be one of %s", recordType, strings.Join(api.DNSRecordTypes, ", "))
			}

			a.printer.Header(fmt.Sprintf("Validating DNS Records for %s...", args[0]))
			res, err := a.client().ValidateDNS(cmd.Context(), api.DNSRequest{Domain: args[0], RecordType: recordType})
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				if len(res.Records) == 0 {
					p.Warn("No DNS records found")
				} else {
					p.Section(fmt.Sprintf("DNS Records (%s)", recordType))
					rows := make([][]string, 0, len(res.Records))
					for _, r := range res.Records {
						priority := ""
						if r.Priority != 0 {
							priority = fmt.Sprint(r.Priority)
						}
						rows = append(rows, []string{r.Type, r.Value, fmt.Sprint(r.TTL), priority})
					}
					if err := p.Table([]string{"Type", "Value", "TTL", "Priority"}, rows); err != nil {
						return err
					}
				}

				if res.DNSSEC != nil {
					status := "✅ Enabled"
					if !res.DNSSEC.Enabled {
						status = "❌ Not Enabled"
					}
					p.KVStatus("DNSSEC", status, res.DNSSEC.Enabled)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&recordType, "type", "t", "A", "record type: "+strings.Join(api.DNSRecordTypes, ", "))
	return cmd
}

func (a *app) whoisCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whois QUERY",
		Short: "WHOIS lookup for a domain or IP address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header(fmt.Sprintf("WHOIS Lookup for %s...", args[0]))
			res, err := a.client().Whois(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.KV("Query", res.Query)
				p.KV("Query Type", strings.ToUpper(res.QueryType))
				p.KV("WHOIS Server", res.WhoisServer)

				if len(res.Parsed) > 0 {
					p.Section("Parsed Information")
					for _, k := range sortedKeys(res.Parsed) {
						p.KV("  "+k, res.Parsed[k])
					}
				}

				if res.RawResponse != "" {
					p.Section("Raw WHOIS Response")
					lines := strings.Split(res.RawResponse, "\n")
					for _, l := range lines[:min(len(lines), whoisRawLines)] {
						p.Line("%s", l)
					}
					if len(lines) > whoisRawLines {
						p.Dim("... (truncated, use --json for the full response)")
					}
				}
				return nil
			})
		},
	}
}

func (a *app) ipcalcCommand() *cobra.Command {
	var subnet string
	cmd := &cobra.Command{
		Use:   "ipcalc IP",
		Short: "Calculate IP subnet information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header("Calculating IP Subnet Information...")
			res, err := a.client().CalculateIP(cmd.Context(), api.IPCalcRequest{IP: args[0], SubnetMask: subnet})
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.KV("IP Address", res.IPAddress)
				p.KV("CIDR Notation", res.CIDR)
				p.KV("Network Address", res.NetworkAddress)
				p.KV("Broadcast Address", res.BroadcastAddress)
				p.KV("Subnet Mask", res.SubnetMask)
				p.KV("Wildcard Mask", res.WildcardMask)
				p.KVStatus("First Usable IP", res.FirstUsable, true)
				p.KVStatus("Last Usable IP", res.LastUsable, true)
				p.KV("Total Hosts", res.TotalHosts.String())
				p.KV("Usable Hosts", res.UsableHosts.String())
				p.KV("IP Class", res.IPClass)
				p.KV("IP Type", res.IPType)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&subnet, "subnet", "s", "", "subnet mask (e.g. 255.255.255.0 or /24)")
	return cmd
}

func (a *app) rblCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rbl IP",
		Short: "Check whether an IP is listed on RBL/DNSBL blacklists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header(fmt.Sprintf("Checking RBL Blacklists for %s...", args[0]))
			res, err := a.client().CheckRBL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				status := "✅ Not listed on blacklists"
				if res.Listed {
					status = "❌ Listed on blacklists"
				}
				p.KVStatus("Status", status, !res.Listed)
				p.KV("Blacklists Checked", res.BlacklistsChecked)
				p.KVStatus("Blacklists Found", fmt.Sprint(res.BlacklistsFound), !res.Listed)

				if len(res.Listings) == 0 {
					p.Success("IP is clean - not listed on any checked RBLs")
					return nil
				}
				rows := make([][]string, 0, len(res.Listings))
				for _, l := range res.Listings {
					rows = append(rows, []string{l.RBL, l.Reason})
				}
				return p.Table([]string{"RBL", "Reason"}, rows)
			})
		},
	}
}

func (a *app) smtpRelayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "smtp-relay TARGET",
		Short: "Check SMTP open-relay status for a domain or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header(fmt.Sprintf("Checking SMTP Relay for %s...", args[0]))
			res, err := a.client().CheckSMTPRelay(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				status := "✅ NO - SECURE"
				if res.IsOpenRelay {
					status = "❌ YES - VULNERABLE"
				}
				p.KV("SMTP Server", res.Server)
				p.KVStatus("Open Relay", status, !res.IsOpenRelay)

				rows := make([][]string, 0, len(res.TestsPerformed))
				for _, t := range res.TestsPerformed {
					rows = append(rows, []string{t.Test, render.Check(t.Passed) + " " + t.Result, t.Details})
				}
				if err := p.Table([]string{"Test", "Result", "Details"}, rows); err != nil {
					return err
				}

				if res.IsOpenRelay {
					p.Warn("WARNING: Open relay detected!")
					p.Line("This server can be abused for spam. Please secure your SMTP server.")
				}
				return nil
			})
		},
	}
}

func (a *app) tracerouteCommand() *cobra.Command {
	var maxHops int
	cmd := &cobra.Command{
		Use:   "traceroute TARGET",
		Short: "Trace the route to a destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header(fmt.Sprintf("Tracing route to %s...", args[0]))
			a.printer.Dim("This may take 30-60 seconds...")
			res, err := a.client().Traceroute(cmd.Context(), api.TracerouteRequest{Target: args[0], MaxHops: maxHops})
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.KV("Target", res.Target)
				p.KV("Total Hops", res.TotalHops)

				if len(res.Hops) == 0 {
					p.Warn("No hops found")
					return nil
				}
				rows := make([][]string, 0, len(res.Hops))
				for _, h := range res.Hops {
					rows = append(rows, hopRow(h))
				}
				return p.Table([]string{"Hop", "IP Address", "Hostname", "Location", "Latency (ms)"}, rows)
			})
		},
	}
	cmd.Flags().IntVarP(&maxHops, "max-hops", "m", 30, "maximum number of hops")
	return cmd
}

func hopRow(h api.Hop) []string {
	if h.Timeout {
		return []string{fmt.Sprint(h.Hop), "*", "Request timed out", "-", "-"}
	}

	latency := "N/A"
	if len(h.Latencies) > 0 {
		var sum float64
		for _, l := range h.Latencies {
			sum += l
		}
		latency = fmt.Sprintf("%.2f", sum/float64(len(h.Latencies)))
	}

	location := "-"
	if h.Location != nil {
		if loc := strings.Trim(h.Location.City+", "+h.Location.Country, ", "); loc != "" {
			location = loc
		}
	}

	ip := h.IP
	if ip == "" {
		ip = "N/A"
	}
	hostname := h.Hostname
	if hostname == "" {
		hostname = "-"
	}
	return []string{fmt.Sprint(h.Hop), ip, hostname, location, latency}
}
