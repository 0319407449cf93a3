package staticcmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/zht7063/iblog/internal/generator"
)

const (
	buildSiteMessageType = "iblog.site.build"
	cleanSiteMessageType = "iblog.site.clean"
)

// ResultCallback receives build results produced by generator operations.
// Optional; invoked synchronously from the handler when a result is
// available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a site command execution.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand runs a full site build.
type BuildSiteCommand struct {
	// DryRun renders every page without writing output.
	DryRun bool `json:"dry_run,omitempty"`
	// Workers overrides the configured worker count when positive.
	Workers        int            `json:"workers,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures the worker override is sane.
func (m BuildSiteCommand) Validate() error {
	return validation.Errors{
		"workers": validation.Validate(m.Workers, validation.Min(0)),
	}.Filter()
}

// CleanSiteCommand removes every generated artifact from the output directory.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }
