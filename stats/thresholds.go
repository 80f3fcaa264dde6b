package stats

// ThresholdSet holds the per-document heading size cut points. The ordering
// invariant H1MinSize >= H2MinSize >= H3MinSize >= the configured floor holds
// for every profile, including empty and single-size ones.
type ThresholdSet struct {
	// H1MinSize is the minimum font size for an H1-tier block.
	H1MinSize float64

	// H2MinSize is the minimum font size for an H2-tier block.
	H2MinSize float64

	// H3MinSize is the minimum font size for an H3-tier block. It is floored
	// at an absolute minimum so tiny-font documents cannot produce spurious
	// headings from ordinary text.
	H3MinSize float64
}

// TierFor returns the highest heading tier (1, 2, or 3) whose minimum the
// given size meets or exceeds, or 0 when the size clears no tier.
func (t ThresholdSet) TierFor(size float64) int {
	switch {
	case size >= t.H1MinSize:
		return 1
	case size >= t.H2MinSize:
		return 2
	case size >= t.H3MinSize:
		return 3
	default:
		return 0
	}
}

// DeriverConfig holds the tunable multipliers and floors for threshold
// derivation. The multipliers are applied to the profile baseline; the guards
// below keep the tiers ordered regardless of the multiplier values.
type DeriverConfig struct {
	// H1Multiplier scales the baseline into the H1 cut point. Default: 1.6.
	H1Multiplier float64

	// H2Multiplier scales the baseline into the H2 cut point. Default: 1.3.
	H2Multiplier float64

	// H3Multiplier scales the baseline into the H3 cut point. Default: 0.85.
	H3Multiplier float64

	// FloorSize is the absolute minimum for the H3 cut point. Default: 8.0.
	FloorSize float64

	// MinGap is the minimum spacing enforced between adjacent tiers.
	// Default: 0.5.
	MinGap float64
}

// DefaultDeriverConfig returns sensible default configuration.
func DefaultDeriverConfig() DeriverConfig {
	return DeriverConfig{
		H1Multiplier: 1.6,
		H2Multiplier: 1.3,
		H3Multiplier: 0.85,
		FloorSize:    8.0,
		MinGap:       0.5,
	}
}

// Deriver turns a FontProfile into a ThresholdSet.
type Deriver struct {
	config DeriverConfig
}

// NewDeriver creates a deriver with default configuration.
func NewDeriver() *Deriver {
	return &Deriver{config: DefaultDeriverConfig()}
}

// NewDeriverWithConfig creates a deriver with custom configuration.
func NewDeriverWithConfig(config DeriverConfig) *Deriver {
	if config.FloorSize <= 0 {
		config.FloorSize = 8.0
	}
	if config.MinGap < 0 {
		config.MinGap = 0
	}
	return &Deriver{config: config}
}

// Derive computes the threshold set for a profile. Every cut point is a
// function of the document's own baseline; the only absolute value is the
// floor. Ordering is enforced with explicit guards rather than trusting the
// multiplier arithmetic: each tier is taken as the max of its scaled value
// and the tier beneath it plus the minimum gap.
//
// A degenerate profile (zero baseline, zero variance, single size) still
// produces a valid, correctly ordered set. In a single-size document the
// tiers collapse toward scaled copies of that size and structural and
// positional signals become the only real discriminators.
func (d *Deriver) Derive(profile FontProfile) ThresholdSet {
	base := profile.Baseline()

	h3 := maxFloat(base*d.config.H3Multiplier, d.config.FloorSize)
	h2 := maxFloat(base*d.config.H2Multiplier, h3+d.config.MinGap)
	h1 := maxFloat(base*d.config.H1Multiplier, h2+d.config.MinGap)

	return ThresholdSet{
		H1MinSize: h1,
		H2MinSize: h2,
		H3MinSize: h3,
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
