// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package render writes command results to the terminal.
//
// A [Printer] produces either human output (section headers, label/value
// lines, boxed panels, tables and colored status markers) or, in JSON mode,
// the raw result as indented JSON so that output can be piped to other tools.
//
// Colors come from [github.com/fatih/color] and follow its global NoColor
// switch, which is off when stdout is not a terminal or NO_COLOR is set.
// Tables are drawn with [github.com/olekukonko/tablewriter].
//
// Example:
//
//	p := render.New(os.Stdout, false)
//	p.Header("DNS Records")
//	p.KV("Domain", "example.com")
//	_ = p.Table([]string{"Type", "Value", "TTL"}, rows)
//	p.Success("DNSSEC enabled")
package render
