package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// parseLogLevel maps a config string onto a slog level. The empty string
// means info.
func parseLogLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, true
	case "debug":
		return slog.LevelDebug, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// validOutputs are the accepted output mode spellings.
var validOutputs = map[string]bool{
	"":         true,
	"auto":     true,
	"text":     true,
	"markdown": true,
	"md":       true,
	"json":     true,
}

// Validate rejects configuration values no command could act on.
func Validate(cfg *Config) error {
	if _, ok := parseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q (use debug, info, warn, or error)", cfg.LogLevel)
	}
	if !validOutputs[strings.ToLower(strings.TrimSpace(cfg.Output))] {
		return fmt.Errorf("unknown output mode %q (use auto, text, markdown, or json)", cfg.Output)
	}
	if cfg.Compile.BatchSize <= 0 {
		return fmt.Errorf("compile.batch_size must be positive, got %d", cfg.Compile.BatchSize)
	}
	if cfg.Generate.Workers < 1 {
		return fmt.Errorf("generate.workers must be at least 1, got %d", cfg.Generate.Workers)
	}
	for i, p := range cfg.Pipelines {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("pipelines[%d]: name is required", i)
		}
		if p.SQL == "" && p.File == "" {
			return fmt.Errorf("pipeline %q: either sql or file is required", p.Name)
		}
	}
	return nil
}
