package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pipeforge-labs/pipeforge/internal/cli/config"
	"github.com/pipeforge-labs/pipeforge/internal/cli/output"
	"github.com/pipeforge-labs/pipeforge/internal/render"
	"github.com/pipeforge-labs/pipeforge/internal/state"
	"github.com/pipeforge-labs/pipeforge/pkg/descriptor"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// GenerateOptions holds options for the generate command.
type GenerateOptions struct {
	Manifest string
	Watch    bool
	DryRun   bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compile and render every pipeline in the manifest",
		Long: `Compile each manifest entry into a pipeline descriptor and render it
through the configured template set into the output directory. Every
run is recorded in the generation history, failed entries included.

Pipelines come from the project config's pipelines list, or from a
separate manifest file via --manifest.`,
		Example: `  # Generate everything configured in pipeforge.yaml
  pipeforge generate

  # Use a dedicated manifest
  pipeforge generate --manifest pipelines.yaml

  # Compile-only check, no files written
  pipeforge generate --dry-run

  # Regenerate on source changes
  pipeforge generate --watch`,
		Aliases: []string{"gen"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "m", "", "Manifest file with a pipelines list (default: pipelines from pipeforge.yaml)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run generation when pipeline sources change")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Compile and report without writing files or history")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions) error {
	cc := NewCommandContext(cmd)
	ctx := cmdContext(cmd)

	var store *state.SQLiteStore
	if !opts.DryRun {
		var err error
		if store, err = openStore(cc.Cfg, cc.Logger); err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	passErr := generatePass(ctx, cc, store, opts)
	if !opts.Watch {
		return passErr
	}
	if passErr != nil {
		// Watch mode keeps running so the next edit can fix the failure.
		cc.Renderer.Error(passErr.Error())
	}
	return watchAndRegenerate(ctx, cc, store, opts)
}

// generatePass loads the manifest and generates every entry once.
func generatePass(ctx context.Context, cc *CommandContext, store *state.SQLiteStore, opts *GenerateOptions) error {
	pipelines, err := loadPipelines(cc.Cfg, opts.Manifest)
	if err != nil {
		return err
	}
	if len(pipelines) == 0 {
		return fmt.Errorf("no pipelines configured: add a pipelines list to pipeforge.yaml or pass --manifest")
	}
	return generateAll(ctx, cc, store, pipelines, opts.DryRun)
}

// loadPipelines resolves the pipeline list from the manifest flag or the
// project config.
func loadPipelines(cfg *config.Config, manifest string) ([]config.PipelineSpec, error) {
	if manifest != "" {
		return config.LoadManifest(manifest)
	}
	return cfg.Pipelines, nil
}

// generateResult is the outcome of one pipeline generation.
type generateResult struct {
	Pipeline string `json:"pipeline"`
	Status   string `json:"status"`
	OutDir   string `json:"out_dir,omitempty"`
	Error    string `json:"error,omitempty"`
}

// generateAll compiles and renders the given pipelines in parallel,
// bounded by Generate.Workers. A failed entry does not stop the rest of
// the batch; the aggregate failure is reported at the end.
func generateAll(ctx context.Context, cc *CommandContext, store *state.SQLiteStore, pipelines []config.PipelineSpec, dryRun bool) error {
	workers := cc.Cfg.Generate.Workers
	if workers < 1 {
		workers = config.DefaultWorkers
	}

	results := make([]generateResult, len(pipelines))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, p := range pipelines {
		eg.Go(func() error {
			results[i] = generateOne(egctx, cc, store, p, dryRun)
			return nil
		})
	}
	// Workers report through results; only context cancellation surfaces here.
	if err := eg.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Status == string(state.GenerationStatusError) {
			failed++
		}
	}

	if cc.Renderer.EffectiveMode() == output.ModeJSON {
		if err := cc.Renderer.JSON(map[string]any{
			"results": results,
			"failed":  failed,
		}); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			detail := res.OutDir
			if res.Error != "" {
				detail = res.Error
			} else if dryRun {
				detail = "dry-run"
			}
			cc.Renderer.StatusLine(res.Pipeline, res.Status, detail)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d pipelines failed", failed, len(pipelines))
	}
	if cc.Renderer.EffectiveMode() != output.ModeJSON {
		verb := "generated"
		if dryRun {
			verb = "compiled"
		}
		cc.Renderer.Success(fmt.Sprintf("%s %d pipelines", verb, len(pipelines)))
	}
	return nil
}

// generateOne compiles a single pipeline and renders it unless dryRun is
// set. Both outcomes are recorded in the generation history.
func generateOne(ctx context.Context, cc *CommandContext, store *state.SQLiteStore, p config.PipelineSpec, dryRun bool) generateResult {
	res := generateResult{Pipeline: p.Name, Status: string(state.GenerationStatusSuccess)}

	fail := func(sqlText string, err error) generateResult {
		res.Status = string(state.GenerationStatusError)
		res.Error = err.Error()
		recordGeneration(ctx, cc, store, &state.Generation{
			Pipeline: p.Name,
			SQLText:  sqlText,
			Status:   state.GenerationStatusError,
			Error:    err.Error(),
		})
		return res
	}

	sqlText, err := p.LoadSQL(cc.Cfg.ProjectRoot)
	if err != nil {
		return fail("", err)
	}

	compileCfg := cc.Cfg.Compile.Merge(p.Compile).DescriptorConfig(cc.Cfg.ProjectName)
	desc, err := buildDescriptor(sqlText, compileCfg)
	if err != nil {
		return fail(sqlText, err)
	}

	if dryRun {
		return res
	}

	outDir := filepath.Join(cc.Cfg.Generate.OutDir, p.Name)
	if err := render.Render(desc, render.Options{
		Set:      cc.Cfg.Generate.TemplateSet,
		OutDir:   outDir,
		Pipeline: p.Name,
	}); err != nil {
		return fail(sqlText, err)
	}
	res.OutDir = outDir

	recordGeneration(ctx, cc, store, successGeneration(p.Name, sqlText, desc))
	return res
}

// successGeneration assembles the history record for a completed run.
func successGeneration(pipeline, sqlText string, desc *descriptor.Descriptor) *state.Generation {
	gen := &state.Generation{
		Pipeline:   pipeline,
		SQLText:    sqlText,
		SourceType: desc.Source.Type,
		SinkType:   desc.Sink.Type,
		Status:     state.GenerationStatusSuccess,
	}
	if data, err := json.Marshal(desc); err == nil {
		gen.DescriptorJSON = string(data)
	}
	return gen
}

// recordGeneration writes one history row. History failures are logged,
// not fatal: the generated files on disk are the primary artifact.
func recordGeneration(ctx context.Context, cc *CommandContext, store *state.SQLiteStore, gen *state.Generation) {
	if store == nil {
		return
	}
	if err := store.RecordGeneration(ctx, gen); err != nil {
		cc.Logger.Warn("failed to record generation", "pipeline", gen.Pipeline, "error", err)
	}
}

// watchAndRegenerate blocks, re-running the full generation pass when a
// pipeline source or manifest changes.
func watchAndRegenerate(ctx context.Context, cc *CommandContext, store *state.SQLiteStore, opts *GenerateOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	watchRoot := cc.Cfg.ProjectRoot
	if watchRoot == "" {
		watchRoot = "."
	}
	if err := watchDirRecursive(watcher, watchRoot); err != nil {
		return fmt.Errorf("failed to watch %s: %w", watchRoot, err)
	}

	cc.Renderer.Info("watching for changes (Ctrl+C to stop)")

	// Serializes regeneration passes triggered by overlapping timers.
	var mu sync.Mutex
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			ext := filepath.Ext(event.Name)
			if ext != ".sql" && ext != ".yaml" && ext != ".yml" {
				continue
			}
			// Generated output must not retrigger the watcher.
			if within(cc.Cfg.Generate.OutDir, event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				mu.Lock()
				defer mu.Unlock()
				cc.Renderer.Info(fmt.Sprintf("change detected: %s", filepath.Base(event.Name)))
				if err := generatePass(ctx, cc, store, opts); err != nil {
					cc.Renderer.Error(err.Error())
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cc.Logger.Error("watcher error", "error", err)
		}
	}
}

// within reports whether path sits inside dir.
func within(dir, path string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(rel, "..")
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
