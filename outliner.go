// Package outliner turns a PDF document's text spans into a structured
// outline: a document title plus an ordered list of H1–H3 headings with
// 0-based page numbers.
//
// The pipeline is adaptive: every classification cut point is derived from
// the document's own font statistics rather than fixed absolute sizes, and
// heading confidence fuses font size, weight, structural patterns, page
// position, and a language-fairness adjustment for non-Latin scripts.
//
// Basic usage:
//
//	result, err := outliner.New().Extract(spans)
//	if err != nil {
//	    // handle error
//	}
//	data, _ := json.MarshalIndent(result, "", "  ")
//
// With a span source (e.g. the pdfspan package):
//
//	src, err := pdfspan.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	result, err := outliner.New().ExtractFromSource(ctx, src)
//
// The pipeline is a pure, single-threaded transformation with no shared
// state: one Pipeline may be used from multiple goroutines, and running the
// same spans twice yields byte-identical marshaled output.
package outliner

import (
	"context"
	"errors"

	"github.com/doctrail/outliner/outline"
	"github.com/doctrail/outliner/span"
	"github.com/doctrail/outliner/stats"
)

// ErrNilSource is returned when ExtractFromSource is called with a nil
// source. A missing input sequence is a caller contract violation and fails
// loudly; an empty one is a defined degenerate success.
var ErrNilSource = errors.New("outliner: nil span source")

// Pipeline runs the full extraction: statistics collection, threshold
// derivation, block merging, furniture removal, scoring, and assembly.
type Pipeline struct {
	config    Config
	collector *stats.Collector
	deriver   *stats.Deriver
	repeats   *outline.RepeatDetector
	scorer    *outline.Scorer
	builder   *outline.Builder
}

// New creates a pipeline with default configuration.
func New() *Pipeline {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a pipeline with custom configuration.
func NewWithConfig(config Config) *Pipeline {
	return &Pipeline{
		config:    config,
		collector: stats.NewCollectorWithConfig(config.Collector),
		deriver:   stats.NewDeriverWithConfig(config.Deriver),
		repeats:   outline.NewRepeatDetectorWithConfig(config.Repeat),
		scorer:    outline.NewScorerWithConfig(config.Scorer),
		builder:   outline.NewBuilderWithConfig(config.Builder),
	}
}

// Extract runs the pipeline over an in-memory span sequence. Zero spans
// yield an empty-titled Result with an empty (non-nil) outline; malformed
// spans are skipped, never fatal.
func (p *Pipeline) Extract(spans []span.TextSpan) (*outline.Result, error) {
	profile := p.collector.Collect(spans)
	thresholds := p.deriver.Derive(profile)

	blocks := outline.BuildBlocks(spans, p.config.Block)
	blocks = p.repeats.Filter(blocks)

	scored := p.scorer.ScoreBlocks(blocks, thresholds)
	return p.builder.Build(scored), nil
}

// ExtractFromSource pulls the span sequence from src and runs Extract.
func (p *Pipeline) ExtractFromSource(ctx context.Context, src span.Source) (*outline.Result, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	spans, err := src.Spans(ctx)
	if err != nil {
		return nil, err
	}
	return p.Extract(spans)
}

// Profile exposes the font statistics the pipeline would derive for a span
// sequence, for callers that want to inspect the document's typography.
func (p *Pipeline) Profile(spans []span.TextSpan) stats.FontProfile {
	return p.collector.Collect(spans)
}

// Extract runs a default-configured pipeline over spans.
func Extract(spans []span.TextSpan) (*outline.Result, error) {
	return New().Extract(spans)
}
