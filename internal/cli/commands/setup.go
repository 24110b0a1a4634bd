package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pipeforge-labs/pipeforge/internal/cli/config"
	"github.com/pipeforge-labs/pipeforge/internal/cli/output"
	"github.com/pipeforge-labs/pipeforge/internal/state"
	"github.com/pipeforge-labs/pipeforge/pkg/descriptor"
	"github.com/pipeforge-labs/pipeforge/pkg/parser"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the config, logger and renderer for a
// command invocation. The renderer set up by the root command is reused
// when present so tests and nested commands share one output stream.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	var r *output.Renderer
	if ctx := cmd.Context(); ctx != nil {
		r = output.FromContext(ctx)
	}
	if r == nil {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration. It uses the config loaded
// by the root command when available, otherwise falls back to environment
// variables so commands stay usable when constructed standalone.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cfg := &config.Config{
		LogLevel:  getEnvOrDefault("PIPEFORGE_LOG_LEVEL", config.DefaultLogLevel),
		Output:    getEnvOrDefault("PIPEFORGE_OUTPUT", config.DefaultOutput),
		Verbose:   os.Getenv("PIPEFORGE_VERBOSE") == "true",
		StatePath: getEnvOrDefault("PIPEFORGE_STATE_PATH", config.DefaultStateFile),
	}
	cfg.Compile.BatchSize = descriptor.DefaultBatchSize
	cfg.Generate.OutDir = config.DefaultOutDir
	cfg.Generate.TemplateSet = config.DefaultTemplateSet
	cfg.Generate.Workers = config.DefaultWorkers
	cfg.Serve.Addr = config.DefaultServeAddr
	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openStore opens the state database, creating its directory and
// applying pending migrations. Callers must Close the returned store.
func openStore(cfg *config.Config, logger *slog.Logger) (*state.SQLiteStore, error) {
	if cfg.StatePath != ":memory:" {
		stateDir := filepath.Dir(cfg.StatePath)
		if stateDir != "." && stateDir != "" {
			if err := os.MkdirAll(stateDir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create state directory: %w", err)
			}
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// cmdContext returns the command's context, falling back to Background
// for commands constructed outside Execute.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// buildDescriptor runs one statement through the parse and build stages.
func buildDescriptor(sql string, cfg descriptor.Config) (*descriptor.Descriptor, error) {
	stmt, err := parser.ParseOne(sql)
	if err != nil {
		return nil, err
	}
	return descriptor.Build(stmt, cfg)
}

// readSQLInput resolves the SQL text for commands that accept it as a
// file argument, an inline flag, or piped stdin, in that order.
func readSQLInput(cmd *cobra.Command, args []string, inline string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	if inline != "" {
		return inline, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("no SQL input: pass a file argument, --sql, or pipe to stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no SQL input: pass a file argument, --sql, or pipe to stdin")
	}
	return string(data), nil
}
