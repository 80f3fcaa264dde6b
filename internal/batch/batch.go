package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/doctrail/outliner"
	"github.com/doctrail/outliner/pdfspan"
)

// Stats summarises a batch run.
type Stats struct {
	Total     int
	Succeeded int
	Failed    int
	Cached    int
}

// Runner processes PDF files through the outline pipeline.
type Runner struct {
	config   Config
	logger   *slog.Logger
	pipeline *outliner.Pipeline
	cache    *Cache

	mu    sync.Mutex
	stats Stats
}

// NewRunner creates a runner. A nil logger discards log output.
func NewRunner(config Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		config:   config,
		logger:   logger,
		pipeline: outliner.New(),
	}
}

// Run processes every PDF under the given inputs (files or directories) and
// writes one <stem>.json per input file. Failures are isolated per file and
// reported in Stats; Run only returns an error for setup problems or context
// cancellation.
func (r *Runner) Run(ctx context.Context, inputs []string) (Stats, error) {
	files, err := discover(inputs)
	if err != nil {
		return Stats{}, err
	}
	r.stats = Stats{Total: len(files)}
	if len(files) == 0 {
		return r.stats, nil
	}

	if r.config.CachePath != "" {
		cache, err := OpenCache(r.config.CachePath)
		if err != nil {
			return Stats{}, err
		}
		defer cache.Close()
		r.cache = cache
	}

	if r.config.OutputDir != "" {
		if err := os.MkdirAll(r.config.OutputDir, 0o755); err != nil {
			return Stats{}, err
		}
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < r.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				r.processOne(ctx, path)
			}
		}()
	}

	var canceled error
feed:
	for _, path := range files {
		select {
		case <-ctx.Done():
			canceled = ctx.Err()
			break feed
		case jobs <- path:
		}
	}
	close(jobs)
	wg.Wait()

	return r.stats, canceled
}

// discover expands files and directories into a sorted list of PDF paths.
func discover(inputs []string) ([]string, error) {
	var files []string
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, input)
			continue
		}
		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func (r *Runner) processOne(ctx context.Context, path string) {
	data, cached, err := r.extract(ctx, path)
	if err != nil {
		r.logger.Error("extraction failed", "path", path, "error", err)
		r.count(func(s *Stats) { s.Failed++ })
		return
	}

	out := r.outputPath(path)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		r.logger.Error("write failed", "path", out, "error", err)
		r.count(func(s *Stats) { s.Failed++ })
		return
	}

	r.logger.Info("outline written", "input", path, "output", out, "cached", cached)
	r.count(func(s *Stats) {
		s.Succeeded++
		if cached {
			s.Cached++
		}
	})
}

// extract returns the marshaled outline for one file, consulting the cache
// first when one is configured.
func (r *Runner) extract(ctx context.Context, path string) ([]byte, bool, error) {
	var hash string
	if r.cache != nil {
		h, err := hashFile(path)
		if err != nil {
			return nil, false, err
		}
		hash = h
		if data, ok := r.cache.Get(hash); ok {
			return data, true, nil
		}
	}

	doc, err := pdfspan.Open(path)
	if err != nil {
		return nil, false, err
	}
	spans, err := doc.Spans(ctx)
	if err != nil {
		return nil, false, err
	}

	profile := r.pipeline.Profile(spans)
	r.logger.Debug("document profile",
		"path", path,
		"spans", profile.SpanCount,
		"baseline", profile.Baseline(),
		"complexity", profile.Complexity.String(),
	)

	result, err := r.pipeline.Extract(spans)
	if err != nil {
		return nil, false, err
	}

	var data []byte
	if r.config.Indent {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return nil, false, err
	}
	data = append(data, '\n')

	if r.cache != nil {
		if err := r.cache.Put(hash, path, data); err != nil {
			r.logger.Warn("cache write failed", "path", path, "error", err)
		}
	}
	return data, false, nil
}

// outputPath maps an input file to its JSON output location.
func (r *Runner) outputPath(input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name := stem + ".json"
	if r.config.OutputDir != "" {
		return filepath.Join(r.config.OutputDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}

func (r *Runner) count(update func(*Stats)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	update(&r.stats)
}

// String renders stats for the end-of-run summary line.
func (s Stats) String() string {
	return fmt.Sprintf("total=%d succeeded=%d failed=%d cached=%d",
		s.Total, s.Succeeded, s.Failed, s.Cached)
}
