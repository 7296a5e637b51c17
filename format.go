package suggestdiff

import (
	"fmt"
	"strings"
)

// FormatOptions configures terminal diff output formatting.
type FormatOptions struct {
	// StartDelete is the string to mark the beginning of deleted text.
	// Default: "[-"
	StartDelete string

	// StopDelete is the string to mark the end of deleted text.
	// Default: "-]"
	StopDelete string

	// StartInsert is the string to mark the beginning of inserted text.
	// Default: "{+"
	StartInsert string

	// StopInsert is the string to mark the end of inserted text.
	// Default: "+}"
	StopInsert string

	// UseColor enables ANSI color output. When true, DeleteColor and
	// InsertColor are used in addition to text markers.
	UseColor bool

	// DeleteColor is the ANSI escape sequence for deleted text color.
	DeleteColor string

	// InsertColor is the ANSI escape sequence for inserted text color.
	InsertColor string

	// ColorReset is the ANSI escape sequence to reset colors.
	ColorReset string
}

// ANSI escape code constants
const (
	ANSIReset       = "\033[0m"
	ANSIDeleteColor = "\033[0;31;1m" // bold red
	ANSIInsertColor = "\033[0;32;1m" // bold green
)

// DefaultFormatOptions returns marker-based formatting with color enabled.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		StartDelete: "[-",
		StopDelete:  "-]",
		StartInsert: "{+",
		StopInsert:  "+}",
		UseColor:    true,
		DeleteColor: ANSIDeleteColor,
		InsertColor: ANSIInsertColor,
		ColorReset:  ANSIReset,
	}
}

// ForegroundColors maps color names to ANSI foreground escape codes.
var ForegroundColors = map[string]string{
	"black":         "\033[30m",
	"red":           "\033[31m",
	"green":         "\033[32m",
	"yellow":        "\033[33m",
	"blue":          "\033[34m",
	"magenta":       "\033[35m",
	"cyan":          "\033[36m",
	"white":         "\033[37m",
	"brightblack":   "\033[90m",
	"brightred":     "\033[91m",
	"brightgreen":   "\033[92m",
	"brightyellow":  "\033[93m",
	"brightblue":    "\033[94m",
	"brightmagenta": "\033[95m",
	"brightcyan":    "\033[96m",
	"brightwhite":   "\033[97m",
}

// ParseColor parses a color name and returns the ANSI escape sequence.
// The empty string returns the empty string (no color).
func ParseColor(spec string) (string, error) {
	spec = strings.ToLower(strings.TrimSpace(spec))
	if spec == "" {
		return "", nil
	}
	code, ok := ForegroundColors[spec]
	if !ok {
		return "", fmt.Errorf("unknown color %q", spec)
	}
	return code, nil
}

// FormatSegments renders a word diff as a single line with deletion and
// insertion markers.
func FormatSegments(segments []Segment, opts FormatOptions) string {
	var sb strings.Builder
	for _, s := range segments {
		switch s.Type {
		case Equal:
			sb.WriteString(s.Value)
		case Delete:
			writeMarked(&sb, s.Value, opts.StartDelete, opts.StopDelete, opts.DeleteColor, opts)
		case Insert:
			writeMarked(&sb, s.Value, opts.StartInsert, opts.StopInsert, opts.InsertColor, opts)
		}
	}
	return sb.String()
}

// FormatTextSpans renders a plain-text preview diff with the same
// markers as FormatSegments.
func FormatTextSpans(spans []TextSpan, opts FormatOptions) string {
	segments := make([]Segment, len(spans))
	for i, sp := range spans {
		segments[i] = Segment{Type: sp.Op, Value: sp.Text}
	}
	return FormatSegments(segments, opts)
}

// FormatBlockDiffs renders a whole block diff for the terminal. Added
// and deleted blocks print in full inside insert/delete markers;
// modified blocks print their word-level diff; unchanged blocks print
// verbatim. Blocks are separated by blank lines in current-document
// order, with each deletion following the block it was anchored to.
func FormatBlockDiffs(diffs []BlockDiff, current []Block, opts FormatOptions) string {
	// Deletions grouped by anchor so they print right after it.
	deletedAfter := make(map[string][]BlockDiff)
	var inOrder []BlockDiff
	for _, d := range diffs {
		if d.Type == Deleted {
			deletedAfter[d.AfterBlockID] = append(deletedAfter[d.AfterBlockID], d)
		} else {
			inOrder = append(inOrder, d)
		}
	}

	var parts []string
	appendDeleted := func(anchor string) {
		for _, d := range deletedAfter[anchor] {
			var sb strings.Builder
			writeMarked(&sb, d.OriginalText, opts.StartDelete, opts.StopDelete, opts.DeleteColor, opts)
			parts = append(parts, sb.String())
		}
	}

	// The "" anchor means the document start; id-less blocks must not
	// re-trigger it below.
	appendDeleted("")
	for _, d := range inOrder {
		switch d.Type {
		case Unchanged:
			if d.Position >= 0 && d.Position < len(current) {
				parts = append(parts, ExtractText(current[d.Position]))
			}
		case Modified:
			parts = append(parts, FormatSegments(DiffWords(d.OriginalText, d.CurrentText), opts))
		case Added:
			var sb strings.Builder
			writeMarked(&sb, d.CurrentText, opts.StartInsert, opts.StopInsert, opts.InsertColor, opts)
			parts = append(parts, sb.String())
		}
		if d.BlockID != "" {
			appendDeleted(d.BlockID)
		}
	}

	return strings.Join(parts, "\n\n")
}

func writeMarked(sb *strings.Builder, text, start, stop, color string, opts FormatOptions) {
	if opts.UseColor && color != "" {
		sb.WriteString(color)
	}
	sb.WriteString(start)
	sb.WriteString(text)
	sb.WriteString(stop)
	if opts.UseColor && color != "" {
		sb.WriteString(opts.ColorReset)
	}
}
