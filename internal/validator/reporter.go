package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" and "json".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", errors.Newf("unknown report format %q (use text or json)", s)
}

// valueWidth caps how much of a rejected value is printed.
const valueWidth = 50

// Reporter writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{out: out, format: format}
}

// Report writes result in the reporter's format.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}
	if r.format == FormatJSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(result), "encoding JSON report")
	}
	r.reportText(result)
	return nil
}

func (r *Reporter) reportText(result *Result) {
	name := result.Source
	if name == "" {
		name = "configuration"
	}
	errs, warnings := result.Errors(), result.Warnings()
	if len(errs) == 0 && len(warnings) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ %s is valid", name))
		return
	}

	var summary []string
	if len(errs) > 0 {
		summary = append(summary, color.RedString("%d error(s)", len(errs)))
	}
	if len(warnings) > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
	}
	verdict := "is valid with"
	if len(errs) > 0 {
		verdict = "is invalid:"
	}
	fmt.Fprintf(r.out, "%s %s %s\n\n", name, verdict, strings.Join(summary, ", "))

	r.section("Errors:", errs, color.FgRed)
	r.section("Warnings:", warnings, color.FgYellow)
}

func (r *Reporter) section(title string, issues []Issue, c color.Attribute) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintln(r.out, title)
	for _, i := range issues {
		r.printIssue(i, c)
	}
	fmt.Fprintln(r.out)
}

// printIssue writes "  • field: message [value]".
func (r *Reporter) printIssue(i Issue, c color.Attribute) {
	var sb strings.Builder
	sb.WriteString("  • ")
	if i.Field != "" {
		sb.WriteString(color.New(c).Sprint(i.Field))
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)
	if i.Value != nil {
		v := fmt.Sprintf("%v", i.Value)
		if len(v) > valueWidth {
			v = v[:valueWidth-3] + "..."
		}
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", v))
	}
	fmt.Fprintln(r.out, sb.String())
}
