// Command outliner extracts structured outlines (title plus H1–H3 headings)
// from PDF files and writes one JSON file per input.
//
// Usage:
//
//	outliner [flags] <file-or-directory>...
//
// Directories are walked recursively for *.pdf files. Each input produces a
// <stem>.json next to it, or under -output when given.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/doctrail/outliner/internal/batch"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		outputDir  = flag.String("output", "", "directory for JSON output (default: next to each input)")
		cachePath  = flag.String("cache", "", "SQLite result cache path")
		workers    = flag.Int("workers", 0, "concurrent files (default: number of CPUs)")
		compact    = flag.Bool("compact", false, "emit compact JSON instead of indented")
		verbose    = flag.Bool("verbose", false, "debug logging")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: outliner [flags] <file-or-directory>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "outliner: load .env: %v\n", err)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := batch.DefaultConfig()
	if *configPath != "" {
		loaded, err := batch.LoadConfig(*configPath)
		if err != nil {
			logger.Error("config load failed", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *cachePath != "" {
		cfg.CachePath = *cachePath
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *compact {
		cfg.Indent = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := batch.NewRunner(cfg, logger)
	stats, err := runner.Run(ctx, flag.Args())
	if err != nil {
		logger.Error("run aborted", "error", err)
		os.Exit(1)
	}

	logger.Info("done", "summary", stats.String())
	if stats.Failed > 0 {
		os.Exit(1)
	}
}
