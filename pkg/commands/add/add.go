// Package add implements the add command. Given a path inside either
// the dotfiles root or the home directory it declares a mapping for
// it, adopts the file into the dotfiles root when necessary (move,
// then link), and creates the symlink.
package add

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotlink/dotlink/pkg/config"
	"github.com/dotlink/dotlink/pkg/errors"
	"github.com/dotlink/dotlink/pkg/filesystem"
	"github.com/dotlink/dotlink/pkg/logging"
	"github.com/dotlink/dotlink/pkg/reconcile"
	"github.com/dotlink/dotlink/pkg/store"
	"github.com/dotlink/dotlink/pkg/types"
)

// Options defines the options for the Add command.
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

	// Path is the absolute path of the file or directory to add. It
	// must lie inside the dotfiles root or the home directory.
	Path string

	// Target optionally overrides the target path relative to the
	// home directory. Defaults to the same relative path as the
	// source.
	Target string

	// DryRun computes and reports the required changes without
	// applying them.
	DryRun bool

	// Confirm is called with the change descriptions before anything
	// is applied; returning false aborts. A nil Confirm applies
	// without asking.
	Confirm func(changes []string) bool
}

// Result reports what add decided and did.
type Result struct {
	Mapping types.Mapping `json:"mapping" yaml:"mapping"`

	// Changes describes the steps that were applied (or, in dry-run
	// mode, would be applied), in order.
	Changes []string `json:"changes" yaml:"changes"`

	// Skipped describes steps that were already satisfied.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	// Applied is false in dry-run mode or when the confirmation
	// declined.
	Applied bool `json:"applied" yaml:"applied"`
}

type changeKind int

const (
	changeAddMapping changeKind = iota
	changeMoveFile
	changeCreateLink
)

type change struct {
	kind     changeKind
	from, to string
}

func (c change) String() string {
	switch c.kind {
	case changeAddMapping:
		return fmt.Sprintf("add %s to the mapping configuration", c.to)
	case changeMoveFile:
		return fmt.Sprintf("move %s -> %s", c.from, c.to)
	default:
		return fmt.Sprintf("create symlink %s -> %s", c.from, c.to)
	}
}

// Run computes the required changes for the given path, confirms them
// and applies them.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.add")
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}

	if _, err := opts.FS.Lstat(opts.Path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrInvalidInput, "the given path %s does not exist", opts.Path)
		}
		return nil, errors.Wrapf(err, errors.ErrIoFailure, "cannot inspect %s", opts.Path)
	}

	mapping, err := resolveMapping(opts)
	if err != nil {
		return nil, err
	}

	mappingStore, err := config.Load(opts.FS, opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	changes, skipped, err := requiredChanges(opts, mappingStore, mapping)
	if err != nil {
		return nil, err
	}

	result := &Result{Mapping: mapping, Skipped: skipped}
	for _, c := range changes {
		result.Changes = append(result.Changes, c.String())
	}

	if opts.DryRun || len(changes) == 0 {
		return result, nil
	}
	if opts.Confirm != nil && !opts.Confirm(result.Changes) {
		logger.Info().Msg("add aborted by user")
		return result, nil
	}

	if err := apply(opts, mappingStore, mapping, changes); err != nil {
		return result, err
	}
	result.Applied = true
	logger.Info().
		Str("source", mapping.Source).
		Str("target", mapping.Target).
		Int("changes", len(changes)).
		Msg("mapping added")
	return result, nil
}

// resolveMapping derives the relative mapping from the given absolute
// path, depending on which root it lives under. The dotfiles root is
// often itself inside the home directory, so it is checked first.
func resolveMapping(opts Options) (types.Mapping, error) {
	var rel string
	if sub, ok := pathWithin(opts.DotfilesRoot, opts.Path); ok {
		rel = sub
	} else if sub, ok := pathWithin(opts.HomeDir, opts.Path); ok {
		rel = sub
	} else {
		return types.Mapping{}, errors.Newf(errors.ErrInvalidInput,
			"%s is outside both the home and the dotfiles directory", opts.Path)
	}

	source, err := store.NormalizeRel(rel)
	if err != nil {
		return types.Mapping{}, err
	}
	target := source
	if opts.Target != "" {
		if target, err = store.NormalizeRel(opts.Target); err != nil {
			return types.Mapping{}, err
		}
	}
	return types.Mapping{Source: source, Target: target}, nil
}

// pathWithin returns path relative to root if path lies below root.
func pathWithin(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

func requiredChanges(opts Options, mappingStore *store.Store, mapping types.Mapping) ([]change, []string, error) {
	var changes []change
	var skipped []string

	if mappingStore.Contains(mapping.Target) {
		skipped = append(skipped, "path already mapped, configuration unchanged")
	} else {
		// Probe the add against a copy so nested-mapping violations
		// surface before anything is touched.
		probe, err := store.FromMappings(mappingStore.Mappings())
		if err != nil {
			return nil, nil, err
		}
		if err := probe.Add(mapping); err != nil {
			return nil, nil, err
		}
		changes = append(changes, change{kind: changeAddMapping, to: mapping.Target})
	}

	sourcePath := mapping.SourcePath(opts.DotfilesRoot)
	targetPath := mapping.TargetPath(opts.HomeDir)
	sourceExists := exists(opts.FS, sourcePath)
	targetExists := exists(opts.FS, targetPath)

	switch {
	case sourceExists && targetExists:
		// Either they are already linked or this add is invalid.
		state, err := reconcile.Probe(opts.FS, targetPath)
		if err != nil {
			return nil, nil, err
		}
		if state.Kind == types.TargetSymlink && state.Dest == filepath.Clean(sourcePath) {
			skipped = append(skipped, "paths are already linked, no symlink needed")
		} else {
			return nil, nil, errors.Newf(errors.ErrAlreadyExists,
				"both %s and %s exist; remove one of them and run add again", sourcePath, targetPath)
		}

	case targetExists:
		// The file lives in the home directory only: adopt it.
		changes = append(changes,
			change{kind: changeMoveFile, from: targetPath, to: sourcePath},
			change{kind: changeCreateLink, from: targetPath, to: sourcePath})

	default:
		changes = append(changes, change{kind: changeCreateLink, from: targetPath, to: sourcePath})
	}

	return changes, skipped, nil
}

func apply(opts Options, mappingStore *store.Store, mapping types.Mapping, changes []change) error {
	for _, c := range changes {
		switch c.kind {
		case changeAddMapping:
			if err := mappingStore.Add(mapping); err != nil {
				return err
			}
			if err := config.Save(opts.FS, opts.ConfigFile, mappingStore); err != nil {
				return err
			}

		case changeMoveFile:
			if err := opts.FS.MkdirAll(filepath.Dir(c.to), 0o755); err != nil {
				return errors.Wrapf(err, errors.ErrIoFailure, "cannot create %s", filepath.Dir(c.to))
			}
			if err := opts.FS.Rename(c.from, c.to); err != nil {
				return errors.Wrapf(err, errors.ErrIoFailure, "cannot move %s -> %s", c.from, c.to)
			}

		case changeCreateLink:
			if err := opts.FS.MkdirAll(filepath.Dir(c.from), 0o755); err != nil {
				return errors.Wrapf(err, errors.ErrIoFailure, "cannot create %s", filepath.Dir(c.from))
			}
			if err := opts.FS.Symlink(c.to, c.from); err != nil {
				if os.IsExist(err) {
					return errors.Wrapf(err, errors.ErrRaceConflict,
						"%s appeared while adding, not overwriting", c.from)
				}
				return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot create symlink %s", c.from)
			}
		}
	}
	return nil
}

func exists(fsys types.FS, path string) bool {
	_, err := fsys.Lstat(path)
	return err == nil
}
