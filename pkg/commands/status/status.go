// Package status implements the status command: it reports the
// reconciliation state of every declared mapping without mutating
// anything.
package status

import (
	"github.com/dotlink/dotlink/pkg/config"
	"github.com/dotlink/dotlink/pkg/filesystem"
	"github.com/dotlink/dotlink/pkg/logging"
	"github.com/dotlink/dotlink/pkg/reconcile"
	"github.com/dotlink/dotlink/pkg/types"
)

// Options defines the options for the Status command.
type Options struct {
	// FS is the filesystem to probe. Defaults to the OS filesystem.
	FS types.FS

	// DotfilesRoot is the absolute path of the dotfiles directory.
	DotfilesRoot string

	// HomeDir is the absolute path of the user's home directory.
	HomeDir string

	// ConfigFile is the path of the mapping configuration file.
	ConfigFile string
}

// Result carries the per-mapping classifications in enumeration order.
type Result struct {
	Statuses []types.MappingStatus `json:"statuses" yaml:"statuses"`
}

// Run classifies every declared mapping. Status always succeeds given
// a loadable configuration; Missing and Conflict are data here, not
// errors.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.status")
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

	logger.Info().Int("mappings", len(statuses)).Msg("status computed")
	return &Result{Statuses: statuses}, nil
}
