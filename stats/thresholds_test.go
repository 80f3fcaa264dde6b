package stats

import (
	"math"
	"testing"
)

func TestDeriveTypicalDocument(t *testing.T) {
	d := NewDeriver()
	set := d.Derive(FontProfile{MeanSize: 10, SpanCount: 100})

	if math.Abs(set.H1MinSize-16) > 1e-9 {
		t.Errorf("expected H1 min 16, got %f", set.H1MinSize)
	}
	if math.Abs(set.H2MinSize-13) > 1e-9 {
		t.Errorf("expected H2 min 13, got %f", set.H2MinSize)
	}
	if math.Abs(set.H3MinSize-8.5) > 1e-9 {
		t.Errorf("expected H3 min 8.5, got %f", set.H3MinSize)
	}
}

func TestDeriveFloorsH3(t *testing.T) {
	d := NewDeriver()
	// 0.85 * 6 = 5.1, below the 8.0 floor.
	set := d.Derive(FontProfile{MeanSize: 6, SpanCount: 10})

	if set.H3MinSize != 8.0 {
		t.Errorf("expected H3 floored at 8.0, got %f", set.H3MinSize)
	}
}

func TestDeriveOrderingHolds(t *testing.T) {
	d := NewDeriver()
	profiles := []FontProfile{
		{},                                // empty
		{MeanSize: 1, SpanCount: 1},       // tiny fonts
		{MeanSize: 6, SpanCount: 5},       // below floor
		{MeanSize: 10, SpanCount: 100},    // typical
		{MeanSize: 72, SpanCount: 3},      // poster sizes
		{MedianSize: 9, SpanCount: 4},     // mean missing
		{DominantBodySize: 11, SpanCount: 2},
	}

	for _, p := range profiles {
		set := d.Derive(p)
		if set.H1MinSize < set.H2MinSize || set.H2MinSize < set.H3MinSize {
			t.Errorf("ordering violated for profile %+v: %+v", p, set)
		}
		if set.H3MinSize < 8.0 {
			t.Errorf("floor violated for profile %+v: H3=%f", p, set.H3MinSize)
		}
	}
}

func TestDeriveDegenerateProfileKeepsGap(t *testing.T) {
	// Tiny baseline collapses all scaled values below the floor; the gap
	// guards must still separate the tiers.
	d := NewDeriver()
	set := d.Derive(FontProfile{MeanSize: 2, SpanCount: 5})

	if set.H3MinSize != 8.0 {
		t.Errorf("expected H3 at floor, got %f", set.H3MinSize)
	}
	if set.H2MinSize != 8.5 {
		t.Errorf("expected H2 at floor+gap, got %f", set.H2MinSize)
	}
	if set.H1MinSize != 9.0 {
		t.Errorf("expected H1 at floor+2*gap, got %f", set.H1MinSize)
	}
}

func TestTierFor(t *testing.T) {
	set := ThresholdSet{H1MinSize: 16, H2MinSize: 13, H3MinSize: 8.5}

	tests := []struct {
		size float64
		want int
	}{
		{24, 1},
		{16, 1},
		{15.9, 2},
		{13, 2},
		{12.9, 3},
		{8.5, 3},
		{8.4, 0},
		{0, 0},
	}

	for _, tt := range tests {
		if got := set.TierFor(tt.size); got != tt.want {
			t.Errorf("TierFor(%f) = %d, want %d", tt.size, got, tt.want)
		}
	}
}
