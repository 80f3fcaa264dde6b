package outline

import (
	"strings"

	"github.com/doctrail/outliner/span"
)

// Block is a merged run of adjacent spans with identical styling, the unit
// the scorer classifies. Single spans that merge with nothing become
// single-span blocks.
type Block struct {
	// Text is the normalized, assembled text of the run.
	Text string

	// FontSize is the font size shared by the merged spans.
	FontSize float64

	// FontName is the font name of the first span in the run.
	FontName string

	// Bold and Italic are the style flags shared by the run.
	Bold   bool
	Italic bool

	// Page is the 0-based page index.
	Page int

	// Y is the vertical position of the run's first span (top of page = 0).
	Y float64

	// X is the horizontal indent of the run's first span.
	X float64

	// SpanCount is the number of spans merged into this block.
	SpanCount int
}

// WordCount returns the number of whitespace-separated words in the block.
func (b Block) WordCount() int {
	return len(strings.Fields(b.Text))
}

// BlockConfig holds configuration for merging spans into blocks.
type BlockConfig struct {
	// SizeTolerance is the maximum font size difference for two spans to
	// merge. Default: 0.1.
	SizeTolerance float64

	// LineTolerance is the maximum Y difference, as a fraction of font size,
	// for two spans to be treated as the same visual line. Default: 0.5.
	LineTolerance float64
}

// DefaultBlockConfig returns sensible default configuration.
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		SizeTolerance: 0.1,
		LineTolerance: 0.5,
	}
}

// BuildBlocks merges consecutive valid spans that share a page, a font
// name, the bold flag, a near-equal size, and the same visual line. Text
// producers split visually continuous headings into per-word or per-glyph
// spans; merging here means the scorer sees "1. Introduction" instead of
// three fragments. Malformed spans are dropped.
func BuildBlocks(spans []span.TextSpan, config BlockConfig) []Block {
	if config.SizeTolerance <= 0 {
		config.SizeTolerance = 0.1
	}
	if config.LineTolerance <= 0 {
		config.LineTolerance = 0.5
	}

	var blocks []Block
	for _, s := range spans {
		if !s.Valid() {
			continue
		}
		text := span.Normalize(s.Text)
		if text == "" {
			continue
		}

		if len(blocks) > 0 && mergeable(&blocks[len(blocks)-1], s, config) {
			appendText(&blocks[len(blocks)-1], text)
			blocks[len(blocks)-1].SpanCount++
			continue
		}

		blocks = append(blocks, Block{
			Text:      text,
			FontSize:  s.FontSize,
			FontName:  s.FontName,
			Bold:      s.Bold,
			Italic:    s.Italic,
			Page:      s.Page,
			Y:         s.Y,
			X:         s.X,
			SpanCount: 1,
		})
	}
	return blocks
}

// mergeable reports whether span s continues the run accumulated in b.
func mergeable(b *Block, s span.TextSpan, config BlockConfig) bool {
	if s.Page != b.Page {
		return false
	}
	if s.Bold != b.Bold || s.FontName != b.FontName {
		return false
	}
	if absFloat(s.FontSize-b.FontSize) > config.SizeTolerance {
		return false
	}
	// Same visual line: Y within a fraction of the font size.
	return absFloat(s.Y-b.Y) <= b.FontSize*config.LineTolerance
}

// appendText joins run text with a space, except before closing punctuation.
func appendText(b *Block, text string) {
	if len(text) == 1 && strings.ContainsAny(text, "!?.,;:)]") {
		b.Text += text
		return
	}
	b.Text += " " + text
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
