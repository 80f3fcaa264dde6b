package outliner

import (
	"github.com/doctrail/outliner/outline"
	"github.com/doctrail/outliner/stats"
)

// Config aggregates the configuration of every pipeline stage. The zero
// value is not usable; start from DefaultConfig and override fields.
type Config struct {
	// Collector controls font statistics gathering.
	Collector stats.CollectorConfig

	// Deriver controls heading size threshold derivation.
	Deriver stats.DeriverConfig

	// Block controls span-to-block merging.
	Block outline.BlockConfig

	// Repeat controls repeated header/footer removal.
	Repeat outline.RepeatConfig

	// Scorer controls heading confidence scoring.
	Scorer outline.ScorerConfig

	// Builder controls outline assembly and title selection.
	Builder outline.BuilderConfig
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{
		Collector: stats.DefaultCollectorConfig(),
		Deriver:   stats.DefaultDeriverConfig(),
		Block:     outline.DefaultBlockConfig(),
		Repeat:    outline.DefaultRepeatConfig(),
		Scorer:    outline.DefaultScorerConfig(),
		Builder:   outline.DefaultBuilderConfig(),
	}
}
