// Package cli implements the pageview command-line interface.
//
// This package provides commands for inspecting document layouts,
// rendering previews, fitting layouts to viewports, browsing documents
// interactively, serving the HTTP API, and managing snapshots. The CLI
// is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - info: Show the computed layout of a document manifest
//   - render: Render a document to SVG, PNG, or JSON
//   - fit: Compute the zoom factor for a viewport
//   - view: Browse a document interactively in the terminal
//   - serve: Serve the document over the HTTP API
//   - snapshot: Save, list, show, and delete layout snapshots
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context so subcommands share one logger.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pageview/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "pageview"

// Execute runs the pageview CLI and returns an error if any command
// fails. The given context cancels long-running commands (serve, view)
// on SIGINT/SIGTERM.
func Execute(ctx context.Context) error {
	var verbose bool
	var configPath string

	root := &cobra.Command{
		Use:          appName,
		Short:        "Pageview lays out and serves multi-page documents",
		Long:         `Pageview computes scrollable page layouts for multi-page documents and renders, serves and snapshots them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/pageview/config.toml)")

	root.AddCommand(newInfoCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newFitCmd())
	root.AddCommand(newViewCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newSnapshotCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
