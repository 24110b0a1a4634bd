package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pipeforge-labs/pipeforge/internal/cli/config"
	"github.com/pipeforge-labs/pipeforge/internal/server"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Addr  string
	Watch bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compile API over HTTP",
		Long: `Run the HTTP API:

  POST /api/v1/compile   compile SQL into a pipeline descriptor
  POST /api/v1/tokens    token stream for a statement
  GET  /api/v1/history   recorded generations
  GET  /healthz          liveness probe

The server shuts down gracefully on SIGINT and SIGTERM.`,
		Example: `  # Serve on the configured address
  pipeforge serve

  # Override the address and reload compile defaults on config edits
  pipeforge serve --addr :9090 --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default from serve.addr)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Reload compile defaults when project files change")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc := NewCommandContext(cmd)

	addr := opts.Addr
	if addr == "" {
		addr = cc.Cfg.Serve.Addr
	}
	if addr == "" {
		addr = config.DefaultServeAddr
	}

	store, err := openStore(cc.Cfg, cc.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	srvCfg := server.Config{
		Addr:    addr,
		Logger:  cc.Logger,
		Store:   store,
		Compile: cc.Cfg.Compile.DescriptorConfig(cc.Cfg.ProjectName),
	}

	var srv *server.Server
	if opts.Watch || cc.Cfg.Serve.Watch {
		watchDir := cc.Cfg.ProjectRoot
		if watchDir == "" {
			watchDir = "."
		}
		srvCfg.WatchDir = watchDir
		srvCfg.OnChange = func(path string) {
			cc.Logger.Info("project file changed", "file", filepath.Base(path))
			cfg, err := config.LoadConfig(config.GetConfigFileUsed(), nil)
			if err != nil {
				cc.Logger.Error("config reload failed", "error", err)
				return
			}
			srv.SetCompileConfig(cfg.Compile.DescriptorConfig(cfg.ProjectName))
			cc.Logger.Info("compile defaults reloaded")
		}
	}
	srv = server.New(srvCfg)

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cc.Renderer.Info(fmt.Sprintf("serving API on %s", addr))
	return srv.Serve(ctx)
}
