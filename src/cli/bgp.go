// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/veribits-cli/src/internal/api"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/render"
)

// bgpListLimit caps the prefix and customer tables.
const bgpListLimit = 50

func (a *app) bgpPrefixCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bgp-prefix QUERY",
		Short: "Look up a BGP prefix or IP address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header(fmt.Sprintf("BGP Prefix Lookup for %s...", args[0]))
			res, err := a.client().BGPPrefix(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.KV("Prefix", res.Prefix)
				p.KV("Name", orNA(res.Name))
				p.KV("Description", orNA(res.Description))
				p.KV("Country", orNA(res.CountryCode))
				p.KV("RIR", orNA(res.RIRName))
				if len(res.ASNs) > 0 {
					origins := make([]string, 0, len(res.ASNs))
					for _, asn := range res.ASNs {
						origins = append(origins, "AS"+asn.ASN.String())
					}
					p.KV("Origin ASNs", strings.Join(origins, ", "))
				}
				rpki := res.RPKIValidation
				if rpki == "" {
					rpki = "unknown"
				}
				p.KV("RPKI Status", render.Paint(strings.ToUpper(rpki), rpki, render.RPKIColors))
				return nil
			})
		},
	}
}

func (a *app) bgpASNCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bgp-asn ASN",
		Short: "Look up Autonomous System information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header(fmt.Sprintf("BGP AS Lookup for %s...", args[0]))
			res, err := a.client().BGPASN(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.KV("ASN", "AS"+res.ASN.String())
				p.KV("Name", orNA(res.Name))
				p.KV("Description", orNA(res.Description))
				p.KV("Country", orNA(res.CountryCode))
				p.KV("Website", res.Website)
				p.KV("Looking Glass", res.LookingGlass)
				p.KV("Traffic Estimation", res.TrafficEstimation)
				p.KV("Traffic Ratio", res.TrafficRatio)
				if len(res.EmailContacts) > 0 {
					p.Section("Email Contacts")
					for _, c := range res.EmailContacts {
						p.Line("  • %s", c)
					}
				}
				return nil
			})
		},
	}
}

func (a *app) bgpPrefixesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bgp-prefixes ASN",
		Short: "List prefixes announced by an AS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header(fmt.Sprintf("Getting Prefixes for AS%s...", trimAS(args[0])))
			res, err := a.client().BGPPrefixes(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.KV("IPv4 Prefixes", res.IPv4Count)
				p.KV("IPv6 Prefixes", res.IPv6Count)
				if len(res.IPv4Prefixes) == 0 {
					return nil
				}
				p.Section(fmt.Sprintf("IPv4 Prefixes (First %d)", bgpListLimit))
				if err := p.Table([]string{"Prefix", "Name", "Description"}, prefixRows(res.IPv4Prefixes, bgpListLimit)); err != nil {
					return err
				}
				if n := len(res.IPv4Prefixes) - bgpListLimit; n > 0 {
					p.Dim("... and %d more prefixes", n)
				}
				return nil
			})
		},
	}
}

func (a *app) bgpPeersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bgp-peers ASN",
		Short: "List BGP peers of an AS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header(fmt.Sprintf("Getting BGP Peers for AS%s...", trimAS(args[0])))
			res, err := a.client().BGPPeers(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.KV("IPv4 Peers", res.IPv4PeerCount)
				p.KV("IPv6 Peers", res.IPv6PeerCount)
				if len(res.IPv4Peers) == 0 {
					return nil
				}
				p.Section("IPv4 Peers")
				return p.Table(asnHeaders, asnRows(res.IPv4Peers, 0))
			})
		},
	}
}

func (a *app) bgpUpstreamsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bgp-upstreams ASN",
		Short: "List transit providers (upstreams) of an AS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header(fmt.Sprintf("Getting Transit Providers for AS%s...", trimAS(args[0])))
			res, err := a.client().BGPUpstreams(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.KV("IPv4 Upstreams", res.IPv4UpstreamCount)
				p.KV("IPv6 Upstreams", res.IPv6UpstreamCount)
				if len(res.IPv4Upstreams) == 0 {
					p.Warn("No upstream providers found - this may be a Tier-1 AS")
					return nil
				}
				p.Section("IPv4 Transit Providers")
				return p.Table(asnHeaders, asnRows(res.IPv4Upstreams, 0))
			})
		},
	}
}

func (a *app) bgpDownstreamsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bgp-downstreams ASN",
		Short: "List customers (downstreams) of an AS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header(fmt.Sprintf("Getting Customers for AS%s...", trimAS(args[0])))
			res, err := a.client().BGPDownstreams(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				p.KV("IPv4 Downstreams", res.IPv4DownstreamCount)
				p.KV("IPv6 Downstreams", res.IPv6DownstreamCount)
				if len(res.IPv4Downstreams) == 0 {
					p.Warn("No downstream customers found")
					return nil
				}
				p.Section(fmt.Sprintf("IPv4 Customers (First %d)", bgpListLimit))
				if err := p.Table(asnHeaders, asnRows(res.IPv4Downstreams, bgpListLimit)); err != nil {
					return err
				}
				if n := len(res.IPv4Downstreams) - bgpListLimit; n > 0 {
					p.Dim("... and %d more customers", n)
				}
				return nil
			})
		},
	}
}

func (a *app) bgpSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bgp-search QUERY",
		Short: "Search autonomous systems and prefixes by name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printer.Header(fmt.Sprintf("Searching BGP for '%s'...", args[0]))
			res, err := a.client().BGPSearch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(res, func(p *render.Printer) error {
				if res.Total() == 0 {
					p.Warn("No results found")
					return nil
				}
				p.KV("Total Results", res.Total())

				sections := []struct {
					title   string
					headers []string
					rows    [][]string
				}{
					{"Autonomous Systems", asnHeaders, asnRows(res.Results.ASNs, 0)},
					{"IPv4 Prefixes", prefixHeaders, prefixRows(res.Results.IPv4Prefixes, 0)},
					{"IPv6 Prefixes", prefixHeaders, prefixRows(res.Results.IPv6Prefixes, 0)},
				}
				for _, s := range sections {
					if len(s.rows) == 0 {
						continue
					}
					p.Section(s.title)
					if err := p.Table(s.headers, s.rows); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

var (
	asnHeaders    = []string{"ASN", "Name", "Country"}
	prefixHeaders = []string{"Prefix", "Name", "Description"}
)

// asnRows converts ASNs to table rows, keeping at most limit rows when limit > 0.
func asnRows(asns []api.ASNRef, limit int) [][]string {
	if limit > 0 && len(asns) > limit {
		asns = asns[:limit]
	}
	rows := make([][]string, 0, len(asns))
	for _, asn := range asns {
		rows = append(rows, []string{"AS" + asn.ASN.String(), asn.Name, asn.CountryCode})
	}
	return rows
}

// prefixRows converts prefixes to table rows, keeping at most limit rows when limit > 0.
func prefixRows(prefixes []api.PrefixRef, limit int) [][]string {
	if limit > 0 && len(prefixes) > limit {
		prefixes = prefixes[:limit]
	}
	rows := make([][]string, 0, len(prefixes))
	for _, pr := range prefixes {
		rows = append(rows, []string{pr.Prefix, pr.Name, pr.Description})
	}
	return rows
}

// trimAS strips a leading "AS" so headers do not read "ASAS13335".
func trimAS(asn string) string {
	if len(asn) > 2 && strings.EqualFold(asn[:2], "as") {
		return asn[2:]
	}
	return asn
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
