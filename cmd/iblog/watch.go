package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	staticcmd "github.com/zht7063/iblog/internal/commands/static"
	"github.com/zht7063/iblog/internal/logging"
	"github.com/zht7063/iblog/internal/watcher"
)

var watchDebounce time.Duration

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the site whenever source documents change",
	Long: `Watch performs an initial build, then monitors the input directory
and rebuilds after changes settle. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newGeneratorService(inputDir, outputDir)
		if err != nil {
			return err
		}

		handler := staticcmd.NewBuildSiteHandler(service, logging.GeneratorLogger(provider))
		rebuild := func(ctx context.Context) error {
			return handler.Execute(ctx, staticcmd.BuildSiteCommand{})
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := rebuild(ctx); err != nil {
			return err
		}

		w, err := watcher.New(
			watcher.Config{
				Dir:       inputDir,
				Pattern:   "*.md",
				Exclude:   siteCfg.Build.Exclude,
				Recursive: true,
				Debounce:  watchDebounce,
			},
			rebuild,
			logging.WatcherLogger(provider),
		)
		if err != nil {
			return err
		}

		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	registerBuildFlags(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Quiet period before a rebuild fires (0 uses the default)")
}
