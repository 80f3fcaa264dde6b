package stats

import (
	"math"
	"sort"

	"github.com/doctrail/outliner/span"
)

// Complexity classifies how varied a document's typography is. It is
// informational: reported to callers and logged, never a numeric input to
// the thresholds, so the class cannot create hidden cliffs in threshold
// values.
type Complexity int

const (
	// ComplexitySimple marks documents where nearly all spans share one or
	// two sizes (forms, flyers, single-font scans).
	ComplexitySimple Complexity = iota

	// ComplexityModerate marks typical documents.
	ComplexityModerate

	// ComplexityComplex marks documents with rich typography: many distinct
	// sizes and high size variance (technical manuals, magazines).
	ComplexityComplex
)

// String returns a string representation of the complexity class.
func (c Complexity) String() string {
	switch c {
	case ComplexityModerate:
		return "moderate"
	case ComplexityComplex:
		return "complex"
	default:
		return "simple"
	}
}

// FontProfile holds the per-document font statistics derived once by the
// Collector. A document with zero valid spans yields the zero profile with
// ComplexitySimple; downstream stages handle that without failing.
type FontProfile struct {
	// MeanSize is the mean font size over body candidates.
	MeanSize float64

	// MedianSize is the median font size over body candidates.
	MedianSize float64

	// SizeVariance is the population variance of body candidate sizes.
	SizeVariance float64

	// DistinctSizes is the number of distinct sizes (0.5pt buckets) across
	// all valid spans.
	DistinctSizes int

	// DominantBodySize is the single most frequent size among
	// paragraph-length spans, not the most frequent size overall, so large
	// decorative glyphs cannot skew the body estimate.
	DominantBodySize float64

	// SpanCount is the number of valid spans seen.
	SpanCount int

	// BodySpanCount is the number of spans classified as body candidates.
	BodySpanCount int

	// Complexity is the document's typography class.
	Complexity Complexity
}

// IsEmpty reports whether the profile was built from zero valid spans.
func (p FontProfile) IsEmpty() bool {
	return p.SpanCount == 0
}

// Baseline returns the best available body-size estimate: the mean, falling
// back to the median, then the dominant body size. Returns 0 for an empty
// profile.
func (p FontProfile) Baseline() float64 {
	if p.MeanSize > 0 {
		return p.MeanSize
	}
	if p.MedianSize > 0 {
		return p.MedianSize
	}
	return p.DominantBodySize
}

// CollectorConfig holds configuration for font statistics collection.
type CollectorConfig struct {
	// StructuralMaxChars is the maximum rune count for a span to be treated
	// as a structural (heading-length) candidate rather than body text.
	// Default: 120.
	StructuralMaxChars int

	// SizeBucket is the bucket width in points used when counting distinct
	// sizes and finding the dominant size. Default: 0.5.
	SizeBucket float64

	// ComplexDistinctSizes is the distinct-size count above which a document
	// may be classified complex. Default: 5.
	ComplexDistinctSizes int

	// ComplexVariance is the size variance above which a document may be
	// classified complex. Default: 6.0.
	ComplexVariance float64
}

// DefaultCollectorConfig returns sensible default configuration.
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		StructuralMaxChars:   120,
		SizeBucket:           0.5,
		ComplexDistinctSizes: 5,
		ComplexVariance:      6.0,
	}
}

// Collector builds a FontProfile from a document's span sequence.
type Collector struct {
	config CollectorConfig
}

// NewCollector creates a collector with default configuration.
func NewCollector() *Collector {
	return &Collector{config: DefaultCollectorConfig()}
}

// NewCollectorWithConfig creates a collector with custom configuration.
func NewCollectorWithConfig(config CollectorConfig) *Collector {
	if config.StructuralMaxChars <= 0 {
		config.StructuralMaxChars = 120
	}
	if config.SizeBucket <= 0 {
		config.SizeBucket = 0.5
	}
	return &Collector{config: config}
}

// Collect scans the full span sequence once and returns the document's
// FontProfile. Malformed spans (empty text, non-positive size) are skipped.
func (c *Collector) Collect(spans []span.TextSpan) FontProfile {
	var bodySizes []float64
	var allSizes []float64

	for _, s := range spans {
		if !s.Valid() {
			continue
		}
		allSizes = append(allSizes, s.FontSize)
		if s.Len() > c.config.StructuralMaxChars {
			bodySizes = append(bodySizes, s.FontSize)
		}
	}

	if len(allSizes) == 0 {
		return FontProfile{Complexity: ComplexitySimple}
	}

	// Statistics are computed over body candidates so heading-length spans
	// cannot inflate the baseline; a document with no body candidates falls
	// back to all valid spans.
	sample := bodySizes
	if len(sample) == 0 {
		sample = allSizes
	}

	profile := FontProfile{
		MeanSize:         mean(sample),
		MedianSize:       median(sample),
		SizeVariance:     variance(sample),
		DominantBodySize: dominantSize(sample, c.config.SizeBucket),
		SpanCount:        len(allSizes),
		BodySpanCount:    len(bodySizes),
		DistinctSizes:    distinctSizes(allSizes, c.config.SizeBucket),
	}
	profile.Complexity = c.classify(profile)

	return profile
}

// classify assigns a complexity class from distinct-size count and variance.
func (c *Collector) classify(p FontProfile) Complexity {
	switch {
	case p.DistinctSizes <= 2:
		return ComplexitySimple
	case p.DistinctSizes > c.config.ComplexDistinctSizes && p.SizeVariance > c.config.ComplexVariance:
		return ComplexityComplex
	default:
		return ComplexityModerate
	}
}

func mean(sizes []float64) float64 {
	sum := 0.0
	for _, s := range sizes {
		sum += s
	}
	return sum / float64(len(sizes))
}

func median(sizes []float64) float64 {
	sorted := make([]float64, len(sizes))
	copy(sorted, sizes)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func variance(sizes []float64) float64 {
	m := mean(sizes)
	sum := 0.0
	for _, s := range sizes {
		d := s - m
		sum += d * d
	}
	return sum / float64(len(sizes))
}

// dominantSize returns the center of the most frequent size bucket. Ties go
// to the smaller size, since body text runs smaller than display text.
func dominantSize(sizes []float64, bucket float64) float64 {
	counts := make(map[int]int)
	for _, s := range sizes {
		counts[sizeBucket(s, bucket)]++
	}

	best := 0
	bestCount := 0
	for b, count := range counts {
		if count > bestCount || (count == bestCount && b < best) {
			best = b
			bestCount = count
		}
	}
	return float64(best) * bucket
}

func distinctSizes(sizes []float64, bucket float64) int {
	seen := make(map[int]bool)
	for _, s := range sizes {
		seen[sizeBucket(s, bucket)] = true
	}
	return len(seen)
}

func sizeBucket(size, bucket float64) int {
	return int(math.Round(size / bucket))
}
