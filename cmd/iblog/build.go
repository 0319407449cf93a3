package main

import (
	"github.com/spf13/cobra"

	staticcmd "github.com/zht7063/iblog/internal/commands/static"
	"github.com/zht7063/iblog/internal/logging"
)

var (
	inputDir  string
	outputDir string
	assetsDir string
	dryRun    bool
	workers   int
)

// buildCmd represents the build command.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site from a content directory",
	Long: `Build scans the input directory for Markdown documents, normalizes
their frontmatter, and writes the rendered site to the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newGeneratorService(inputDir, outputDir)
		if err != nil {
			return err
		}

		handler := staticcmd.NewBuildSiteHandler(service, logging.GeneratorLogger(provider))
		return handler.Execute(cmd.Context(), staticcmd.BuildSiteCommand{
			DryRun:  dryRun,
			Workers: workers,
		})
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	registerBuildFlags(buildCmd)
	buildCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render every page without writing output")
	buildCmd.Flags().IntVar(&workers, "workers", 0, "Worker count for parallel rendering (0 uses configured value)")
}

func registerBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&inputDir, "input", "i", "content", "Directory scanned for Markdown documents")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "dist", "Directory receiving the generated site")
	cmd.Flags().StringVar(&assetsDir, "assets", "assets", "Directory of static assets mirrored into the output")
}
