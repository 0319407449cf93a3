package main

import (
	"github.com/spf13/cobra"

	staticcmd "github.com/zht7063/iblog/internal/commands/static"
	"github.com/zht7063/iblog/internal/logging"
)

var cleanOutputDir string

// cleanCmd represents the clean command.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every generated artifact from the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newGeneratorService(".", cleanOutputDir)
		if err != nil {
			return err
		}

		handler := staticcmd.NewCleanSiteHandler(service, logging.GeneratorLogger(provider))
		return handler.Execute(cmd.Context(), staticcmd.CleanSiteCommand{})
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVarP(&cleanOutputDir, "output", "o", "dist", "Directory receiving the generated site")
}
