// Package generator exposes the static site generation API for iblog hosts.
// Use NewService with Config and Dependencies to run full builds, dry runs,
// or output cleans against a scanned document corpus.
package generator

import internal "github.com/zht7063/iblog/internal/generator"

type (
	Service        = internal.Service
	Config         = internal.Config
	Dependencies   = internal.Dependencies
	BuildOptions   = internal.BuildOptions
	BuildResult    = internal.BuildResult
	ArtifactWriter = internal.ArtifactWriter
)

var (
	ErrSiteConfigRequired = internal.ErrSiteConfigRequired
	ErrScannerRequired    = internal.ErrScannerRequired
	ErrParserRequired     = internal.ErrParserRequired
	ErrRendererRequired   = internal.ErrRendererRequired
)

// NewService wires a generator with the supplied configuration and dependencies.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	return internal.NewService(cfg, deps)
}

// NewOSWriter persists artifacts beneath baseDir on the local filesystem.
func NewOSWriter(baseDir string) ArtifactWriter {
	return internal.NewOSWriter(baseDir)
}

// NewDiscardWriter accepts every write and stores nothing.
func NewDiscardWriter() ArtifactWriter {
	return internal.NewDiscardWriter()
}
