package outline

// Entry is one outline item in the externally visible JSON artifact.
type Entry struct {
	// Level is "H1", "H2", or "H3".
	Level string `json:"level"`

	// Text is the heading text.
	Text string `json:"text"`

	// Page is the 0-based page index.
	Page int `json:"page"`
}

// Result is the externally visible artifact: a title (possibly empty) plus
// the outline in document order.
type Result struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}

// EntryCount returns the number of outline entries.
func (r *Result) EntryCount() int {
	if r == nil {
		return 0
	}
	return len(r.Outline)
}

// BuilderConfig holds configuration for outline assembly.
type BuilderConfig struct {
	// MinConfidence is the acceptance threshold for outline entries; blocks
	// the scorer leveled below it are dropped. Default: 0.50.
	MinConfidence float64

	// TitleMinConfidence is the higher bar a first-page H1-tier block must
	// clear to be selected as the document title. Default: 0.70.
	TitleMinConfidence float64
}

// DefaultBuilderConfig returns sensible default configuration.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		MinConfidence:      0.50,
		TitleMinConfidence: 0.70,
	}
}

// Builder assembles scored blocks into the final Result.
type Builder struct {
	config BuilderConfig
}

// NewBuilder creates a builder with default configuration.
func NewBuilder() *Builder {
	return &Builder{config: DefaultBuilderConfig()}
}

// NewBuilderWithConfig creates a builder with custom configuration.
func NewBuilderWithConfig(config BuilderConfig) *Builder {
	return &Builder{config: config}
}

// Build walks the scored blocks in document order, selects the title, keeps
// leveled blocks above the acceptance threshold, collapses duplicate
// (level, text, page) triples keeping the first occurrence, and emits the
// Result. Output order is always document order; entries are never re-sorted
// by level or confidence.
func (b *Builder) Build(scored []ScoredBlock) *Result {
	result := &Result{
		Title:   b.selectTitle(scored),
		Outline: []Entry{},
	}

	seen := make(map[Entry]bool)
	for _, sb := range scored {
		if sb.Level == LevelNone || sb.Confidence < b.config.MinConfidence {
			continue
		}
		entry := Entry{
			Level: sb.Level.String(),
			Text:  sb.Text,
			Page:  sb.Page,
		}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		result.Outline = append(result.Outline, entry)
	}

	return result
}

// selectTitle picks the document title: the highest-confidence H1-tier block
// on the first page above the title threshold, falling back to the
// largest-font first-page block regardless of structural score, else empty.
// The title block stays in the outline: the title names the document, the
// outline describes its structure, and the two may overlap.
func (b *Builder) selectTitle(scored []ScoredBlock) string {
	best := -1
	bestConfidence := b.config.TitleMinConfidence

	for i, sb := range scored {
		if sb.Page != 0 {
			continue
		}
		if sb.Level != LevelH1 {
			continue
		}
		// >= for the first qualifier, > afterwards: ties keep the earliest.
		if (best < 0 && sb.Confidence >= bestConfidence) || sb.Confidence > bestConfidence {
			best = i
			bestConfidence = sb.Confidence
		}
	}
	if best >= 0 {
		return scored[best].Text
	}

	// Fallback: the visually dominant first-page block, even when its
	// structural score rejected it as a heading.
	largest := -1
	largestSize := 0.0
	for i, sb := range scored {
		if sb.Page != 0 {
			continue
		}
		if sb.Text == "" {
			continue
		}
		if sb.FontSize > largestSize {
			largest = i
			largestSize = sb.FontSize
		}
	}
	if largest >= 0 {
		return scored[largest].Text
	}

	return ""
}
