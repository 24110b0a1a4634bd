// Package server exposes the compile pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pipeforge-labs/pipeforge/internal/state"
	"github.com/pipeforge-labs/pipeforge/pkg/descriptor"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for the API server.
type Config struct {
	Addr    string
	Logger  *slog.Logger
	Store   *state.SQLiteStore
	Compile descriptor.Config

	// WatchDir, when set, enables a file watcher over the project's
	// pipeline sources. OnChange runs after the debounce window; when
	// nil, changes are logged and otherwise ignored.
	WatchDir string
	OnChange func(path string)
}

// Server is the pipeforge API server.
type Server struct {
	addr     string
	logger   *slog.Logger
	store    *state.SQLiteStore
	watchDir string
	onChange func(path string)

	mu      sync.RWMutex
	compile descriptor.Config
}

// New creates a new API server instance.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		addr:     cfg.Addr,
		logger:   logger,
		store:    cfg.Store,
		watchDir: cfg.WatchDir,
		onChange: cfg.OnChange,
		compile:  cfg.Compile,
	}
	if s.onChange == nil {
		s.onChange = func(path string) {
			s.logger.Info("pipeline file changed", "file", path)
		}
	}
	return s
}

// CompileConfig returns the compile options currently applied to
// requests that carry no config of their own.
func (s *Server) CompileConfig() descriptor.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.compile
}

// SetCompileConfig swaps the base compile options. Used by watch mode to
// pick up edits to the project config without a restart.
func (s *Server) SetCompileConfig(cfg descriptor.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compile = cfg
}

// Handler returns the full API route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(s.logger),
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/compile", s.handleCompile)
		r.Post("/tokens", s.handleTokens)
		r.Get("/history", s.handleHistory)
	})
	r.Get("/healthz", s.handleHealthz)

	return r
}

// Serve starts the API server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting API server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start file watcher if enabled
	if s.watchDir != "" {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// requestLogger logs one line per request through the server's slog
// logger, replacing chi's default text logger.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// watchFiles watches for changes to pipeline sources under the
// configured directory.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.watchDir); err != nil {
		s.logger.Error("failed to watch pipeline directory", "dir", s.watchDir, "error", err)
		// Don't fail - continue without watching
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			ext := filepath.Ext(event.Name)
			if ext != ".sql" && ext != ".yaml" && ext != ".yml" {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.onChange(event.Name)
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
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
