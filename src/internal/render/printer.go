// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgYellow)
	valueColor   = color.New(color.FgWhite)
	dimColor     = color.New(color.Faint)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	infoColor    = color.New(color.FgBlue)
)

// ruleWidth is the width of header underlines and panel borders.
const ruleWidth = 60

// Printer renders results to a single writer.
//
// The zero value is not usable; call [New].
type Printer struct {
	out      io.Writer
	jsonMode bool
}

// New returns a Printer writing to out. A nil out selects os.Stdout.
// When jsonMode is set, only [Printer.JSON] produces output; the human
// helpers become no-ops so commands can call both unconditionally.
func New(out io.Writer, jsonMode bool) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{out: out, jsonMode: jsonMode}
}

// JSONMode reports whether the printer emits raw JSON.
func (p *Printer) JSONMode() bool { return p.jsonMode }

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.out }

// JSON writes v as indented JSON followed by a newline.
func (p *Printer) JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("render: encoding JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = p.out.Write(data)
	return err
}

// Header prints a bold title underlined with a rule.
func (p *Printer) Header(title string) {
	if p.jsonMode {
		return
	}
	fmt.Fprintln(p.out)
	headerColor.Fprintln(p.out, title)
	dimColor.Fprintln(p.out, strings.Repeat("─", ruleWidth))
}

// Section prints a sub-heading.
func (p *Printer) Section(title string) {
	if p.jsonMode {
		return
	}
	fmt.Fprintln(p.out)
	headerColor.Fprintf(p.out, "┌ %s\n", title)
}

// KV prints a "label: value" line. Empty values are skipped.
func (p *Printer) KV(label string, value any) {
	if p.jsonMode {
		return
	}
	s := fmt.Sprint(value)
	if value == nil || s == "" {
		return
	}
	labelColor.Fprintf(p.out, "%s: ", label)
	valueColor.Fprintln(p.out, s)
}

// KVStatus prints a "label: value" line with the value green when ok and red otherwise.
func (p *Printer) KVStatus(label, value string, ok bool) {
	if p.jsonMode {
		return
	}
	c := errorColor
	if ok {
		c = successColor
	}
	labelColor.Fprintf(p.out, "%s: ", label)
	c.Fprintln(p.out, value)
}

// Line prints a plain formatted line.
func (p *Printer) Line(format string, args ...any) {
	if p.jsonMode {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Success prints a green line prefixed with a check mark.
func (p *Printer) Success(format string, args ...any) {
	p.status(successColor, "✓", format, args...)
}

// Warn prints a yellow line prefixed with a warning sign.
func (p *Printer) Warn(format string, args ...any) {
	p.status(warnColor, "⚠", format, args...)
}

// Error prints a red line prefixed with a cross.
func (p *Printer) Error(format string, args ...any) {
	p.status(errorColor, "✗", format, args...)
}

// Info prints a blue informational line.
func (p *Printer) Info(format string, args ...any) {
	p.status(infoColor, "ℹ", format, args...)
}

// Dim prints a faint line, used for hints and truncation notes.
func (p *Printer) Dim(format string, args ...any) {
	if p.jsonMode {
		return
	}
	dimColor.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) status(c *color.Color, mark, format string, args ...any) {
	if p.jsonMode {
		return
	}
	c.Fprintf(p.out, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// Panel prints body inside a box titled title.
func (p *Printer) Panel(title, body string) {
	if p.jsonMode {
		return
	}
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")

	width := utf8.RuneCountInString(title) + 2
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	width = min(max(width, ruleWidth-4), 120)

	top := "┌─ " + title + " " + strings.Repeat("─", max(width-utf8.RuneCountInString(title)-1, 0)) + "┐"
	headerColor.Fprintln(p.out, top)
	for _, l := range lines {
		pad := max(width-utf8.RuneCountInString(l), 0)
		fmt.Fprintf(p.out, "│ %s%s │\n", l, strings.Repeat(" ", pad))
	}
	headerColor.Fprintln(p.out, "└"+strings.Repeat("─", width+2)+"┘")
}

// Table renders rows under headers. An empty rows slice prints nothing.
func (p *Printer) Table(headers []string, rows [][]string) error {
	if p.jsonMode || len(rows) == 0 {
		return nil
	}

	table := tablewriter.NewTable(p.out)
	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render: table rows: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render: table: %w", err)
	}
	return nil
}

// Check returns a check or cross mark for ok.
func Check(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

// YesNo returns a green "Yes" or a red "No".
func YesNo(ok bool) string {
	if ok {
		return successColor.Sprint("Yes")
	}
	return errorColor.Sprint("No")
}

// Palettes map lower-cased status words to their display color.
var (
	RiskColors = map[string]*color.Color{
		"low":      successColor,
		"medium":   warnColor,
		"high":     errorColor,
		"critical": errorColor,
	}
	SeverityColors = map[string]*color.Color{
		"critical": errorColor,
		"high":     warnColor,
		"medium":   infoColor,
	}
	RPKIColors = map[string]*color.Color{
		"valid":   successColor,
		"invalid": errorColor,
		"unknown": warnColor,
	}
)

// Colorize paints s with the color palette assigns to it. Words missing
// from palette are returned unchanged.
func Colorize(s string, palette map[string]*color.Color) string {
	return Paint(s, s, palette)
}

// Paint colors s with the color palette assigns to level.
func Paint(s, level string, palette map[string]*color.Color) string {
	if c, ok := palette[strings.ToLower(level)]; ok {
		return c.Sprint(s)
	}
	return s
}

// Truncate shortens s to n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	if n <= 3 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}
