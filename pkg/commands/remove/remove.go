// Package remove implements the remove command: it deletes a mapping
// from the configuration and optionally removes its symlink.
package remove

import (
	"github.com/dotlink/dotlink/pkg/config"
	"github.com/dotlink/dotlink/pkg/executor"
	"github.com/dotlink/dotlink/pkg/filesystem"
	"github.com/dotlink/dotlink/pkg/logging"
	"github.com/dotlink/dotlink/pkg/plan"
	"github.com/dotlink/dotlink/pkg/reconcile"
	"github.com/dotlink/dotlink/pkg/types"
)

// Options defines the options for the Remove command.
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

	// Target is the target path (relative to home) of the mapping to
	// remove.
	Target string

	// Unlink also removes the symlink if the mapping is correctly
	// linked. Without it remove only changes the configuration.
	Unlink bool

	// DryRun reports what would happen without changing anything.
	DryRun bool
}

// Result reports the removed mapping and, when unlinking, the
// execution report.
type Result struct {
	Removed types.Mapping `json:"removed" yaml:"removed"`
	Report  *types.Report `json:"report,omitempty" yaml:"report,omitempty"`
}

// Run removes the mapping with the given target. It fails with
// NOT_FOUND if no such mapping exists, leaving the configuration
// unchanged.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.remove")
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}

	mappingStore, err := config.Load(opts.FS, opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	removed, err := mappingStore.Remove(opts.Target)
	if err != nil {
		return nil, err
	}

	result := &Result{Removed: removed}

	if opts.Unlink {
		status, err := reconcile.Classify(opts.FS, removed, opts.DotfilesRoot, opts.HomeDir)
		if err != nil {
			return nil, err
		}
		actions := plan.Plan(types.OpUnlink, []types.MappingStatus{status})
		result.Report = executor.New(opts.FS, opts.DotfilesRoot, opts.HomeDir, executor.Options{
			DryRun: opts.DryRun,
		}).Execute(actions)
	}

	if !opts.DryRun {
		if err := config.Save(opts.FS, opts.ConfigFile, mappingStore); err != nil {
			return result, err
		}
	}

	logger.Info().
		Str("target", removed.Target).
		Bool("unlink", opts.Unlink).
		Bool("dryRun", opts.DryRun).
		Msg("mapping removed")
	return result, nil
}
