package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"gifify/internal/convert"
	"gifify/internal/deps"
	"gifify/internal/history"
	"gifify/internal/webui"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var openBrowser bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local drag-and-drop web interface",
		Long: `Run the local drag-and-drop web interface.

The server binds to the configured address (127.0.0.1 by default) and
converts uploads synchronously, streaming the finished GIF back as the
response. Press Ctrl+C to stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := deps.MissingRequired(deps.Check(cfg)); err != nil {
				return err
			}

			logger, err := ctx.logger(verbose)
			if err != nil {
				return err
			}

			var store *history.Store
			opts := []convert.Option{}
			if cfg.History.Enabled {
				store, err = history.Open(cfg.HistoryDBPath())
				if err != nil {
					logger.Warn("conversion history unavailable", "error", err)
					store = nil
				} else {
					defer store.Close()
					opts = append(opts, convert.WithHistory(store))
				}
			}

			converter, err := convert.New(cfg, logger, opts...)
			if err != nil {
				return err
			}

			server, err := webui.New(cfg, logger, converter, store)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := server.Start(runCtx); err != nil {
				return err
			}
			defer server.Stop()

			url := "http://" + server.Addr()
			fmt.Fprintf(cmd.OutOrStdout(), "gifify web UI listening on %s\n", url)
			if openBrowser || cfg.UI.OpenBrowser {
				launchBrowser(runCtx, logger, url)
			}

			<-runCtx.Done()
			return nil
		},
	}

	cmd.Flags().BoolVar(&openBrowser, "open", false, "Open the UI in the default browser")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log the executed commands and tool output")
	return cmd
}

// launchBrowser is best-effort; a missing opener is not worth failing the
// server over.
func launchBrowser(ctx context.Context, logger *slog.Logger, url string) {
	var name string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		name = "open"
		args = []string{url}
	case "windows":
		name = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	default:
		name = "xdg-open"
		args = []string{url}
	}
	if err := exec.CommandContext(ctx, name, args...).Start(); err != nil {
		logger.Warn("open browser", "error", err)
	}
}
