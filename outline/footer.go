package outline

import (
	"regexp"
	"strings"
)

// RepeatConfig holds configuration for repeated header/footer detection.
type RepeatConfig struct {
	// MinPages is the minimum number of distinct pages a text must appear on
	// to count as page furniture. Default: 2.
	MinPages int

	// MinOccurrenceRatio is the minimum fraction of document pages the text
	// must appear on. Default: 0.5.
	MinOccurrenceRatio float64

	// PositionTolerance is the maximum Y difference for two occurrences to
	// count as the same position. Default: 5.
	PositionTolerance float64

	// XPositionTolerance is the maximum X difference for two occurrences to
	// count as the same position. Default: 10.
	XPositionTolerance float64
}

// DefaultRepeatConfig returns sensible default configuration.
func DefaultRepeatConfig() RepeatConfig {
	return RepeatConfig{
		MinPages:           2,
		MinOccurrenceRatio: 0.5,
		PositionTolerance:  5.0,
		XPositionTolerance: 10.0,
	}
}

// RepeatDetector finds blocks whose digit-normalized text repeats across
// pages at a consistent position: running headers, footers, and page
// numbers. "Confidentiel p.1" and "Confidentiel p.2" normalize to the same
// key and are both removed.
type RepeatDetector struct {
	config RepeatConfig
}

// NewRepeatDetector creates a detector with default configuration.
func NewRepeatDetector() *RepeatDetector {
	return &RepeatDetector{config: DefaultRepeatConfig()}
}

// NewRepeatDetectorWithConfig creates a detector with custom configuration.
func NewRepeatDetectorWithConfig(config RepeatConfig) *RepeatDetector {
	if config.MinPages < 2 {
		config.MinPages = 2
	}
	return &RepeatDetector{config: config}
}

// Filter returns the blocks with page furniture removed. Single-page
// documents pass through untouched: repetition across pages is the only
// signal used here, so there is nothing to detect.
func (d *RepeatDetector) Filter(blocks []Block) []Block {
	pages := pageCount(blocks)
	if pages < d.config.MinPages {
		return blocks
	}

	repeated := d.repeatedKeys(blocks, pages)
	if len(repeated) == 0 {
		return blocks
	}

	filtered := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if repeated[normalizeDigits(b.Text)] {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}

// repeatedKeys returns the set of normalized texts that qualify as page
// furniture.
func (d *RepeatDetector) repeatedKeys(blocks []Block, pages int) map[string]bool {
	groups := make(map[string][]Block)
	for _, b := range blocks {
		key := normalizeDigits(b.Text)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], b)
	}

	minOccurrences := int(float64(pages) * d.config.MinOccurrenceRatio)
	if minOccurrences < d.config.MinPages {
		minOccurrences = d.config.MinPages
	}

	repeated := make(map[string]bool)
	for key, group := range groups {
		pageSet := make(map[int]bool)
		for _, b := range group {
			pageSet[b.Page] = true
		}
		if len(pageSet) < minOccurrences {
			continue
		}
		if !d.consistentPosition(group) {
			continue
		}
		repeated[key] = true
	}
	return repeated
}

// consistentPosition reports whether every occurrence sits at the same spot
// on its page, within tolerance. Genuine furniture is stamped at a fixed
// position; a section title that happens to recur is not.
func (d *RepeatDetector) consistentPosition(group []Block) bool {
	if len(group) < 2 {
		return false
	}
	refY, refX := group[0].Y, group[0].X
	for _, b := range group[1:] {
		if absFloat(b.Y-refY) > d.config.PositionTolerance {
			return false
		}
		if absFloat(b.X-refX) > d.config.XPositionTolerance {
			return false
		}
	}
	return true
}

func pageCount(blocks []Block) int {
	pages := make(map[int]bool)
	for _, b := range blocks {
		pages[b.Page] = true
	}
	return len(pages)
}

var digitRunRe = regexp.MustCompile(`\d+`)

// normalizeDigits replaces digit runs with a placeholder so page-numbered
// variants of the same furniture group together.
func normalizeDigits(text string) string {
	return digitRunRe.ReplaceAllString(strings.TrimSpace(text), "#")
}
