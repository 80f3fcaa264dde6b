package outline

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/doctrail/outliner/span"
	"github.com/doctrail/outliner/stats"
)

// Level is the heading tier assigned to a scored block.
type Level int

const (
	// LevelNone marks a block that is not a heading.
	LevelNone Level = iota
	// LevelH1 is a main title or chapter heading.
	LevelH1
	// LevelH2 is a major section heading.
	LevelH2
	// LevelH3 is a subsection heading.
	LevelH3
)

// String returns the wire representation of the level ("H1".."H3", or ""
// for LevelNone).
func (l Level) String() string {
	switch l {
	case LevelH1:
		return "H1"
	case LevelH2:
		return "H2"
	case LevelH3:
		return "H3"
	default:
		return ""
	}
}

// Features records the structural signals that contributed to a block's
// confidence. The builder and tests read these; they carry no behavior.
type Features struct {
	IsBold          bool
	IsNumbered      bool
	IsTitleCase     bool
	IsAllCaps       bool
	NearPageTop     bool
	Isolated        bool
	IsNonASCII      bool
	EndsMidSentence bool
}

// ScoredBlock is a block plus the scorer's verdict. Created by the Scorer,
// consumed once by the Builder.
type ScoredBlock struct {
	Block

	// Confidence is the clamped [0,1] heading confidence.
	Confidence float64

	// Level is the assigned tier, LevelNone when the block is not accepted
	// as a heading.
	Level Level

	// Features are the signals that contributed to the score.
	Features Features
}

// ScorerConfig holds the signal weights and acceptance thresholds. The
// weights are tunable parameters, not structural contracts; behavior is
// validated against scenario tests, not against specific weight values.
type ScorerConfig struct {
	// SizeWeightH1 is the base contribution for a block at or above the H1
	// cut point; the contribution saturates at SizeSignalCap as the size
	// grows past the cut point. Default: 0.35, cap 0.45.
	SizeWeightH1  float64
	SizeSignalCap float64

	// SizeWeightH2 and SizeWeightH3 are the contributions for blocks whose
	// size clears only the lower tiers. Defaults: 0.30, 0.25.
	SizeWeightH2 float64
	SizeWeightH3 float64

	// SizePenalty is subtracted when the size clears no tier. Default: 0.10.
	SizePenalty float64

	// BoldWeight is added when the block is bold by flag or font name.
	// Default: 0.20.
	BoldWeight float64

	// NumberedWeight is added for a numbered-section prefix. Default: 0.20.
	NumberedWeight float64

	// AllCapsWeight and TitleCaseWeight reward heading-like casing on short
	// runs. Defaults: 0.15, 0.10.
	AllCapsWeight   float64
	TitleCaseWeight float64

	// ShortRunWeight is added when the block has at most ShortRunWords
	// words. Defaults: 0.10, 10.
	ShortRunWeight float64
	ShortRunWords  int

	// MidSentencePenalty is subtracted for runs that end mid-sentence or
	// with body-sentence punctuation. Default: 0.15.
	MidSentencePenalty float64

	// TopRegionHeight is the distance from the page top within which a block
	// earns the position bonus. Default: 100.
	TopRegionHeight float64

	// PositionWeight is the bonus for top-of-page position and for vertical
	// isolation from both neighbours. Default: 0.10 each.
	PositionWeight float64

	// IsolationGapRatio is the neighbour gap, as a multiple of the block's
	// own font size, above which the block counts as isolated. Default: 1.5.
	IsolationGapRatio float64

	// FairnessBonus is the flat additive adjustment for predominantly
	// non-ASCII runs, compensating for casing signals that are meaningless
	// in scripts without case. Default: 0.15.
	FairnessBonus float64

	// NonASCIIThreshold is the non-ASCII character ratio above which the
	// fairness bonus applies. Default: 0.3.
	NonASCIIThreshold float64

	// MinConfidence is the acceptance threshold: only blocks at or above it
	// are assigned a level. Default: 0.50.
	MinConfidence float64

	// FormFieldMinConfidence is the higher bar a form-field-like label
	// (short run ending in a colon) must clear to be kept. Default: 0.75.
	FormFieldMinConfidence float64

	// MaxChars rejects blocks longer than heading length outright.
	// Default: 120.
	MaxChars int

	// NumberedPatterns match numbered-section prefixes.
	NumberedPatterns []*regexp.Regexp
}

// DefaultScorerConfig returns sensible default configuration.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		SizeWeightH1:           0.35,
		SizeSignalCap:          0.45,
		SizeWeightH2:           0.30,
		SizeWeightH3:           0.25,
		SizePenalty:            0.10,
		BoldWeight:             0.20,
		NumberedWeight:         0.20,
		AllCapsWeight:          0.15,
		TitleCaseWeight:        0.10,
		ShortRunWeight:         0.10,
		ShortRunWords:          10,
		MidSentencePenalty:     0.15,
		TopRegionHeight:        100.0,
		PositionWeight:         0.10,
		IsolationGapRatio:      1.5,
		FairnessBonus:          0.15,
		NonASCIIThreshold:      0.3,
		MinConfidence:          0.50,
		FormFieldMinConfidence: 0.75,
		MaxChars:               120,
		NumberedPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^(?i)(chapter|section|part)\s+\d+`),
			regexp.MustCompile(`^\d+(\.\d+)*\.?\s`),
			regexp.MustCompile(`^[IVXLCDM]+\.\s`),
			regexp.MustCompile(`^[A-Z]\.\s`),
			regexp.MustCompile(`^\([a-z]\)\s`),
		},
	}
}

// boldNameTokens are font-name substrings that mark a font as visually bold
// even when the producer never set the bold flag.
var boldNameTokens = []string{"bold", "black", "heavy", "semibold", "demibold", "extrabold"}

// Scorer assigns heading confidence and tier to candidate blocks.
type Scorer struct {
	config ScorerConfig
}

// NewScorer creates a scorer with default configuration.
func NewScorer() *Scorer {
	return &Scorer{config: DefaultScorerConfig()}
}

// NewScorerWithConfig creates a scorer with custom configuration.
func NewScorerWithConfig(config ScorerConfig) *Scorer {
	if config.MaxChars <= 0 {
		config.MaxChars = 120
	}
	if len(config.NumberedPatterns) == 0 {
		config.NumberedPatterns = DefaultScorerConfig().NumberedPatterns
	}
	return &Scorer{config: config}
}

// ScoreBlocks scores every block in document order. Neighbour context
// (vertical isolation) comes from the surrounding blocks; the
// immediately-preceding-duplicate filter needs the running accept state, so
// scoring is a single ordered pass.
func (s *Scorer) ScoreBlocks(blocks []Block, thresholds stats.ThresholdSet) []ScoredBlock {
	scored := make([]ScoredBlock, 0, len(blocks))
	lastAccepted := ""

	for i := range blocks {
		var prev, next *Block
		if i > 0 {
			prev = &blocks[i-1]
		}
		if i+1 < len(blocks) {
			next = &blocks[i+1]
		}

		sb := s.Score(blocks[i], prev, next, thresholds)

		if sb.Level != LevelNone {
			// Repeated headers/footers produce identical consecutive text;
			// keep the first occurrence only.
			if sb.Text == lastAccepted {
				sb.Level = LevelNone
			} else {
				lastAccepted = sb.Text
			}
		}

		scored = append(scored, sb)
	}
	return scored
}

// Score computes confidence and tier for a single block. prev and next may be
// nil at document edges.
func (s *Scorer) Score(b Block, prev, next *Block, thresholds stats.ThresholdSet) ScoredBlock {
	sb := ScoredBlock{Block: b, Level: LevelNone}

	text := strings.TrimSpace(b.Text)
	if text == "" || b.FontSize <= 0 {
		return sb
	}
	if len([]rune(text)) > s.config.MaxChars {
		return sb
	}

	sb.Features = s.detectFeatures(b, prev, next)
	confidence := s.confidence(b, sb.Features, thresholds)
	sb.Confidence = clamp01(confidence)

	if sb.Confidence < s.config.MinConfidence {
		return sb
	}

	// Form labels ("Name:", "Date:") pass only with high fairness-adjusted
	// confidence; in genuine forms the labels are not document structure.
	if isFormFieldLabel(text) && sb.Confidence < s.config.FormFieldMinConfidence {
		return sb
	}

	switch thresholds.TierFor(b.FontSize) {
	case 1:
		sb.Level = LevelH1
	case 2:
		sb.Level = LevelH2
	case 3:
		sb.Level = LevelH3
	default:
		// Confidence alone never makes a heading: the size must clear a
		// tier for a level to be assigned.
		sb.Level = LevelNone
	}

	return sb
}

// detectFeatures computes the structural signals for a block.
func (s *Scorer) detectFeatures(b Block, prev, next *Block) Features {
	text := strings.TrimSpace(b.Text)

	return Features{
		IsBold:          b.Bold || hasBoldName(b.FontName),
		IsNumbered:      s.isNumbered(text),
		IsTitleCase:     span.IsTitleCase(text),
		IsAllCaps:       span.IsAllCaps(text),
		NearPageTop:     b.Y < s.config.TopRegionHeight,
		Isolated:        s.isIsolated(b, prev, next),
		IsNonASCII:      span.NonASCIIRatio(text) > s.config.NonASCIIThreshold,
		EndsMidSentence: endsMidSentence(text),
	}
}

// confidence sums the independent signal contributions. Each signal is
// bounded by its weight; the caller clamps the total to [0,1].
func (s *Scorer) confidence(b Block, f Features, thresholds stats.ThresholdSet) float64 {
	confidence := s.sizeSignal(b.FontSize, thresholds)

	if f.IsBold {
		confidence += s.config.BoldWeight
	}

	if f.IsNumbered {
		confidence += s.config.NumberedWeight
	}
	words := b.WordCount()
	if f.IsAllCaps && words <= s.config.ShortRunWords {
		confidence += s.config.AllCapsWeight
	} else if f.IsTitleCase {
		confidence += s.config.TitleCaseWeight
	}
	if words <= s.config.ShortRunWords {
		confidence += s.config.ShortRunWeight
	}
	if f.EndsMidSentence {
		confidence -= s.config.MidSentencePenalty
	}

	if f.NearPageTop {
		confidence += s.config.PositionWeight
	}
	if f.Isolated {
		confidence += s.config.PositionWeight
	}

	// Casing signals are structurally unavailable for uncased scripts; the
	// flat bonus stands in for them.
	if f.IsNonASCII {
		confidence += s.config.FairnessBonus
	}

	return confidence
}

// sizeSignal is tier-banded: saturating ratio above the H1 cut point, fixed
// contributions for the lower tiers, and a penalty below all tiers.
func (s *Scorer) sizeSignal(size float64, t stats.ThresholdSet) float64 {
	switch {
	case size >= t.H1MinSize && t.H1MinSize > 0:
		c := s.config.SizeWeightH1 * size / t.H1MinSize
		if c > s.config.SizeSignalCap {
			c = s.config.SizeSignalCap
		}
		return c
	case size >= t.H2MinSize:
		return s.config.SizeWeightH2
	case size >= t.H3MinSize:
		return s.config.SizeWeightH3
	default:
		return -s.config.SizePenalty
	}
}

// isNumbered reports whether text starts with a numbered-section prefix.
func (s *Scorer) isNumbered(text string) bool {
	for _, pattern := range s.config.NumberedPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// isIsolated reports whether the block is separated from both vertical
// neighbours by more than the configured gap. An isolated line is more
// heading-like than a line embedded in a dense paragraph; blocks at document
// or page boundaries count as isolated on that side.
func (s *Scorer) isIsolated(b Block, prev, next *Block) bool {
	gap := b.FontSize * s.config.IsolationGapRatio

	before := prev == nil || prev.Page != b.Page || absFloat(b.Y-prev.Y) > gap
	after := next == nil || next.Page != b.Page || absFloat(next.Y-b.Y) > gap

	return before && after
}

// endsMidSentence reports whether the run ends like body text rather than a
// heading: terminal comma or semicolon, or a long lowercase-ending run with
// no terminal punctuation at all.
func endsMidSentence(text string) bool {
	runes := []rune(text)
	last := runes[len(runes)-1]

	if last == ',' || last == ';' {
		return true
	}
	if last == '.' && len(runes) > 1 {
		// A trailing period on a multi-word lowercase-dominated run reads
		// as a sentence; "1." style numbering does not.
		words := strings.Fields(text)
		if len(words) >= 4 && !span.IsTitleCase(text) && !span.IsAllCaps(text) {
			return true
		}
	}
	if unicode.IsLower(last) && len(strings.Fields(text)) >= 8 {
		return true
	}
	return false
}

// isFormFieldLabel matches short form labels: at most two words ending in a
// colon, as in "Name:" or "Date of birth" labels split per line.
func isFormFieldLabel(text string) bool {
	if !strings.HasSuffix(text, ":") {
		return false
	}
	return len(strings.Fields(text)) <= 2
}

// hasBoldName reports whether the font name carries a bold-family token.
func hasBoldName(fontName string) bool {
	name := strings.ToLower(fontName)
	for _, token := range boldNameTokens {
		if strings.Contains(name, token) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
