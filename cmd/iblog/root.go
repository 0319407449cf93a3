package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/zht7063/iblog/internal/config"
	"github.com/zht7063/iblog/internal/generator"
	"github.com/zht7063/iblog/internal/logging"
	"github.com/zht7063/iblog/internal/logging/gologger"
	"github.com/zht7063/iblog/internal/markdown"
	"github.com/zht7063/iblog/internal/render"
	"github.com/zht7063/iblog/internal/scanner"
	"github.com/zht7063/iblog/pkg/interfaces"
)

var (
	cfgPath   string
	verbose   bool
	logFormat string

	siteCfg  *config.Config
	provider *gologger.Provider
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "iblog",
	Short: "A static blog generator for Markdown + frontmatter content",
	Long: `iblog turns a directory of Markdown documents into a static site.
It normalizes frontmatter metadata, builds sorted and grouped indexes,
extracts tables of contents, and renders every page through templates.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cfgPath)
		if err != nil {
			return err
		}
		siteCfg = cfg

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		format := cfg.Logging.Format
		if logFormat != "" {
			format = logFormat
		}
		provider, err = gologger.NewProvider(gologger.Config{
			Level:     level,
			Format:    format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return err
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to config file (defaults to config.yml when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log output format: console, json, or pretty")
}

const defaultConfigFile = "config.yml"

// loadConfig resolves the site configuration. An explicit --config path must
// exist; the implicit default file is optional and falls back to built-in
// defaults when absent.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Load(defaultConfigFile)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			defaults := config.DefaultConfig()
			return &defaults, nil
		}
		return nil, err
	}
	return cfg, nil
}

// newGeneratorService wires the full pipeline for the given input and output
// directories.
func newGeneratorService(inputDir, outputDir string) (generator.Service, error) {
	docs := scanner.New(
		os.DirFS(inputDir),
		scanner.Config{
			Pattern:   "*.md",
			Exclude:   siteCfg.Build.Exclude,
			Recursive: true,
		},
		siteCfg.MetadataDefaults(),
		logging.ScannerLogger(provider),
	)

	parser := markdown.NewGoldmarkParser(interfaces.ParseOptions{
		Extensions: siteCfg.Markdown.Extensions,
		Sanitize:   siteCfg.Markdown.Sanitize,
		HardWraps:  siteCfg.Markdown.HardWraps,
		SafeMode:   siteCfg.Markdown.SafeMode,
	})

	renderer, err := render.NewPongo2Renderer(siteCfg.Templates.Dir)
	if err != nil {
		return nil, err
	}

	return generator.NewService(
		generator.Config{
			ContentDir: ".",
			CleanBuild: siteCfg.Build.CleanOutput,
			CopyAssets: siteCfg.Build.CopyAssets,
			Parallel:   siteCfg.Build.Parallel,
			Workers:    siteCfg.Build.Workers,
		},
		generator.Dependencies{
			Site:     siteCfg,
			Scanner:  docs,
			Parser:   parser,
			Renderer: renderer,
			Writer:   generator.NewOSWriter(outputDir),
			Assets:   assetSource(assetsDir),
			Logger:   logging.GeneratorLogger(provider),
		},
	)
}

// assetSource returns a filesystem over the static assets directory, or nil
// when the directory does not exist.
func assetSource(dir string) fs.FS {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}
	return os.DirFS(dir)
}
