// Package unlink implements the unlink command: it removes the
// symlinks of correctly linked mappings, leaving everything else
// untouched.
package unlink

import (
	"github.com/dotlink/dotlink/pkg/config"
	"github.com/dotlink/dotlink/pkg/executor"
	"github.com/dotlink/dotlink/pkg/filesystem"
	"github.com/dotlink/dotlink/pkg/logging"
	"github.com/dotlink/dotlink/pkg/plan"
	"github.com/dotlink/dotlink/pkg/reconcile"
	"github.com/dotlink/dotlink/pkg/types"
)

// Options defines the options for the Unlink command.
type Options struct {
	// FS is the filesystem to operate on. Defaults to the OS
	// filesystem.
	FS types.FS

	// DotfilesRoot is the absolute path of the dotfiles directory.
	DotfilesRoot string

	// HomeDir is the absolute path of the user's home directory.
	HomeDir string

	// ConfigFile is the path of the mapping configuration file.
	ConfigFile string

	// DryRun reports planned changes without mutating the filesystem.
	DryRun bool
}

// Result carries the classifications and the execution report.
type Result struct {
	Statuses []types.MappingStatus `json:"statuses" yaml:"statuses"`
	Report   *types.Report         `json:"report" yaml:"report"`
}

// Run classifies all mappings, plans the unlink operation and executes
// it. Mappings that are not correctly linked are skipped: unlink never
// removes a conflicting file.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.unlink")
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}

	mappingStore, err := config.Load(opts.FS, opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	statuses, err := reconcile.ClassifyAll(opts.FS, mappingStore.Mappings(), opts.DotfilesRoot, opts.HomeDir)
	if err != nil {
		return nil, err
	}

	actions := plan.Plan(types.OpUnlink, statuses)
	report := executor.New(opts.FS, opts.DotfilesRoot, opts.HomeDir, executor.Options{
		DryRun: opts.DryRun,
	}).Execute(actions)

	logger.Info().
		Int("actions", len(actions)).
		Bool("dryRun", opts.DryRun).
		Bool("failed", report.Failed()).
		Msg("unlink finished")
	return &Result{Statuses: statuses, Report: report}, nil
}
