package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Colour definitions mirror the go-mix REPL's palette: red for the error
// banner, cyan for the underline, yellow for the span location.
var (
	errColour   = color.New(color.FgRed, color.Bold)
	pointColour = color.New(color.FgCyan)
	locColour   = color.New(color.FgYellow)
)

// Render produces a human-readable, multi-line rendering of d against the
// original source text, underlining each labelled span. Exact layout is not
// contractual (spec §6); this is the one public rendering surface.
func Render(d *Diagnostic) string {
	var b strings.Builder

	b.WriteString(errColour.Sprint("error: "))
	b.WriteString(d.Message)
	b.WriteByte('\n')

	for _, lbl := range d.Labels {
		line, col := lbl.Span.LineCol()
		loc := fmt.Sprintf("  --> %s:%d:%d", lbl.Span.File(), line, col)
		b.WriteString(locColour.Sprint(loc))
		b.WriteByte('\n')
		renderSnippet(&b, lbl)
	}

	if d.Cause != nil {
		if cause, ok := AsDiagnostic(d.Cause); ok {
			b.WriteString("\ncaused by:\n")
			b.WriteString(Render(cause))
		} else {
			fmt.Fprintf(&b, "\ncaused by: %s\n", d.Cause)
		}
	}

	return b.String()
}

// renderSnippet writes the source line containing the label's span, plus a
// line of carets underlining the labelled range.
func renderSnippet(b *strings.Builder, lbl Label) {
	src := lbl.Span.Source
	if src == nil {
		return
	}
	text := src.Text
	start := lbl.Span.Position.Start
	end := lbl.Span.Position.End

	lineStart := start
	for lineStart > 0 && text[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := end
	for lineEnd < len(text) && text[lineEnd] != '\n' {
		lineEnd++
	}
	if lineEnd < start {
		lineEnd = start
	}

	line := text[lineStart:lineEnd]
	fmt.Fprintf(b, "      %s\n", line)

	padding := start - lineStart
	width := end - start
	if width < 1 {
		width = 1
	}
	underline := strings.Repeat(" ", padding) + strings.Repeat("^", width)
	b.WriteString("      ")
	b.WriteString(pointColour.Sprint(underline))
	if lbl.Message != "" {
		fmt.Fprintf(b, " %s", lbl.Message)
	}
	b.WriteByte('\n')
}
