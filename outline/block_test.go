package outline

import (
	"testing"

	"github.com/doctrail/outliner/span"
)

func makeSpan(text string, size float64, page int, y float64) span.TextSpan {
	return span.TextSpan{Text: text, FontSize: size, FontName: "Helvetica", Page: page, Y: y}
}

func TestBuildBlocksMergesSameLine(t *testing.T) {
	spans := []span.TextSpan{
		makeSpan("1.", 24, 0, 100),
		makeSpan("Introduction", 24, 0, 100),
	}
	blocks := BuildBlocks(spans, DefaultBlockConfig())

	if len(blocks) != 1 {
		t.Fatalf("expected 1 merged block, got %d", len(blocks))
	}
	if blocks[0].Text != "1. Introduction" {
		t.Errorf("expected '1. Introduction', got %q", blocks[0].Text)
	}
	if blocks[0].SpanCount != 2 {
		t.Errorf("expected SpanCount=2, got %d", blocks[0].SpanCount)
	}
}

func TestBuildBlocksNoMerge(t *testing.T) {
	tests := []struct {
		name  string
		first span.TextSpan
		next  span.TextSpan
	}{
		{
			"different pages",
			makeSpan("Heading", 12, 0, 100),
			makeSpan("continued", 12, 1, 100),
		},
		{
			"size gap",
			makeSpan("Heading", 24, 0, 100),
			makeSpan("body", 10, 0, 100),
		},
		{
			"different line",
			makeSpan("Heading", 12, 0, 100),
			makeSpan("next line", 12, 0, 120),
		},
		{
			"bold flag differs",
			span.TextSpan{Text: "Heading", FontSize: 12, FontName: "Helvetica", Bold: true, Y: 100},
			span.TextSpan{Text: "body", FontSize: 12, FontName: "Helvetica", Y: 100},
		},
		{
			"font differs",
			makeSpan("Heading", 12, 0, 100),
			span.TextSpan{Text: "body", FontSize: 12, FontName: "Times", Y: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := BuildBlocks([]span.TextSpan{tt.first, tt.next}, DefaultBlockConfig())
			if len(blocks) != 2 {
				t.Errorf("expected 2 blocks, got %d", len(blocks))
			}
		})
	}
}

func TestBuildBlocksClosingPunctuation(t *testing.T) {
	spans := []span.TextSpan{
		makeSpan("Overview", 12, 0, 100),
		makeSpan(")", 12, 0, 100),
	}
	blocks := BuildBlocks(spans, DefaultBlockConfig())

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Text != "Overview)" {
		t.Errorf("expected no space before closing paren, got %q", blocks[0].Text)
	}
}

func TestBuildBlocksDropsMalformed(t *testing.T) {
	spans := []span.TextSpan{
		{Text: "  ", FontSize: 12},
		{Text: "real", FontSize: 0},
		makeSpan("kept", 12, 0, 100),
	}
	blocks := BuildBlocks(spans, DefaultBlockConfig())

	if len(blocks) != 1 || blocks[0].Text != "kept" {
		t.Errorf("expected only the valid span, got %+v", blocks)
	}
}

func TestBuildBlocksNormalizesText(t *testing.T) {
	spans := []span.TextSpan{makeSpan("  Chapter \t One  ", 12, 0, 100)}
	blocks := BuildBlocks(spans, DefaultBlockConfig())

	if len(blocks) != 1 || blocks[0].Text != "Chapter One" {
		t.Errorf("expected normalized text, got %+v", blocks)
	}
}

func TestBlockWordCount(t *testing.T) {
	b := Block{Text: "1. Introduction to Parsing"}
	if got := b.WordCount(); got != 4 {
		t.Errorf("WordCount() = %d, want 4", got)
	}
}
