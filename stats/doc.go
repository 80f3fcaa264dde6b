// Package stats derives per-document font statistics and adaptive heading
// thresholds from a span sequence.
//
// The Collector scans the document once and produces a FontProfile: baseline
// size statistics computed over body-length spans, the dominant body size,
// and a coarse complexity class. The Deriver turns a profile into a
// ThresholdSet: document-relative H1/H2/H3 size cut points with explicit
// floors and ordering guards, so no fixed absolute size ever decides what a
// heading is.
//
//	profile := stats.NewCollector().Collect(spans)
//	thresholds := stats.NewDeriver().Derive(profile)
//
// Both are pure functions of their input: the same spans always produce the
// same profile and thresholds.
package stats
