package reconcile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dotlink/dotlink/pkg/logging"
	"github.com/dotlink/dotlink/pkg/types"
)

// Classify derives the LinkStatus of one mapping from the declared
// state and the probed target state.
//
// Missing takes precedence over everything the target looks like: a
// mapping whose source is gone is never reported as Linked, even when
// a dangling symlink still points at the old path. That would be
// false confidence.
func Classify(fsys types.FS, m types.Mapping, dotfilesRoot, homeDir string) (types.MappingStatus, error) {
	expectedSource := m.SourcePath(dotfilesRoot)
	target := m.TargetPath(homeDir)

	if _, err := fsys.Lstat(expectedSource); err != nil {
		if os.IsNotExist(err) {
			return types.MappingStatus{
				Mapping: m,
				Status:  types.StatusMissing,
				Detail:  fmt.Sprintf("%s does not exist in the dotfiles root", m.Source),
			}, nil
		}
		return types.MappingStatus{}, wrapProbeErr(err, expectedSource)
	}

	state, err := Probe(fsys, target)
	if err != nil {
		return types.MappingStatus{}, err
	}

	switch state.Kind {
	case types.TargetAbsent:
		return types.MappingStatus{Mapping: m, Status: types.StatusUnlinked}, nil

	case types.TargetSymlink:
		// Lexical comparison only; realpath resolution would fail on
		// links whose destination is gone.
		if state.Dest == filepath.Clean(expectedSource) {
			return types.MappingStatus{Mapping: m, Status: types.StatusLinked}, nil
		}
		return types.MappingStatus{
			Mapping: m,
			Status:  types.StatusConflict,
			Detail:  fmt.Sprintf("points to %s instead", state.Dest),
		}, nil

	default:
		return types.MappingStatus{
			Mapping: m,
			Status:  types.StatusConflict,
			Detail:  fmt.Sprintf("%s exists but is not a symlink", target),
		}, nil
	}
}

// ClassifyAll classifies every mapping in enumeration order. The
// result is computed fresh on every call; nothing is cached across
// runs. Opaque probe failures abort, since a half-classified mapping
// set would plan against stale assumptions.
func ClassifyAll(fsys types.FS, mappings []types.Mapping, dotfilesRoot, homeDir string) ([]types.MappingStatus, error) {
	logger := logging.GetLogger("reconcile")

	statuses := make([]types.MappingStatus, 0, len(mappings))
	for _, m := range mappings {
		status, err := Classify(fsys, m, dotfilesRoot, homeDir)
		if err != nil {
			return nil, err
		}
		logger.Debug().
			Str("source", m.Source).
			Str("target", m.Target).
			Str("status", string(status.Status)).
			Msg("classified mapping")
		statuses = append(statuses, status)
	}
	return statuses, nil
}
