// Package span defines the text span data model consumed by the outline
// pipeline. Spans are produced by an external source (see Source), typically
// a PDF text layer, and carry the font metadata the pipeline classifies on.
package span

import (
	"context"
	"strings"
)

// TextSpan is a contiguous run of text with uniform font styling.
// Spans are immutable once produced; the pipeline reads them and never
// mutates the sequence it is given.
type TextSpan struct {
	// Text is the span's text content.
	Text string

	// FontSize is the font size in points. A non-positive size marks the
	// span as malformed; malformed spans are skipped, never fatal.
	FontSize float64

	// FontName is the PDF font name (e.g. "Helvetica-Bold").
	FontName string

	// Bold and Italic are the style flags reported by the text layer.
	// Bold detection also falls back to FontName tokens downstream, since
	// many producers set neither flag on visually bold fonts.
	Bold   bool
	Italic bool

	// Page is the 0-based page index.
	Page int

	// Y is the vertical position on the page, measured from the top of the
	// page (0 = top, increasing downward). Spans within a page arrive in
	// reading order, so Y is non-decreasing per visual line.
	Y float64

	// X is the horizontal indent from the left page edge.
	X float64
}

// Valid reports whether the span carries usable text and font metadata.
// Spans with empty (after trimming) text or a non-positive font size are
// excluded from statistics and scoring.
func (s TextSpan) Valid() bool {
	return s.FontSize > 0 && strings.TrimSpace(s.Text) != ""
}

// Len returns the rune count of the trimmed span text.
func (s TextSpan) Len() int {
	return len([]rune(strings.TrimSpace(s.Text)))
}

// Source supplies the span sequence for one document. Spans must be grouped
// by page and, within a page, supplied in visual reading order; the
// pipeline does not sort by layout.
type Source interface {
	Spans(ctx context.Context) ([]TextSpan, error)
}

// SliceSource adapts an in-memory span slice to the Source interface.
type SliceSource []TextSpan

// Spans returns the underlying slice.
func (s SliceSource) Spans(_ context.Context) ([]TextSpan, error) {
	return s, nil
}
