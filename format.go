package problemlens

import (
	"regexp"
	"strconv"
	"strings"
)

var linebreakRe = regexp.MustCompile(`[ \t]*(?:\r\n|\r|\n)+[ \t]*`)

// FormatOptions carries the template post-processing knobs.
type FormatOptions struct {
	RemoveLinebreaks        bool
	ReplaceLinebreaksSymbol string
}

// FormatMessage substitutes the diagnostic into the user template.
// Recognized placeholders: $message, $severity, $source, $code, $count.
func FormatMessage(template string, d Diagnostic, count int, opts FormatOptions) string {
	text := strings.NewReplacer(
		"$message", d.Message,
		"$severity", d.Severity.String(),
		"$source", d.Source,
		"$code", d.Code.String(),
		"$count", strconv.Itoa(count),
	).Replace(template)

	if opts.RemoveLinebreaks {
		text = linebreakRe.ReplaceAllString(text, opts.ReplaceLinebreaksSymbol)
	}
	return text
}

// Tooltip renders the hover text for the status bar item: the formatted
// message as trusted markdown, a horizontal rule, then a "source [code]"
// citation. The documentation link of a structured code is not rendered
// here.
func Tooltip(formatted string, d Diagnostic) string {
	var b strings.Builder
	b.WriteString(formatted)
	b.WriteString("\n\n---\n\n")

	citation := d.Source
	if code := d.Code.String(); code != "" {
		if citation != "" {
			citation += " "
		}
		citation += "[" + code + "]"
	}
	b.WriteString(citation)
	return b.String()
}
