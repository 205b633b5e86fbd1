// Package reconcile classifies the real-world state of declared
// mappings: it probes target paths without following symlinks and
// derives a LinkStatus for each mapping from declared state and
// filesystem reality.
package reconcile

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dotlink/dotlink/pkg/errors"
	"github.com/dotlink/dotlink/pkg/types"
)

// Probe inspects a single target path and reports what occupies it.
// It uses Lstat, never a traversal-following stat, so a dangling
// symlink is reported as TargetSymlink rather than absent. Symlink
// destinations are returned as absolute lexical paths: a relative
// destination is resolved against the link's parent directory, with
// no real-path resolution (which would fail on dangling links).
func Probe(fsys types.FS, target string) (types.TargetState, error) {
	info, err := fsys.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return types.TargetState{Kind: types.TargetAbsent}, nil
		}
		return types.TargetState{}, wrapProbeErr(err, target)
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		return types.TargetState{Kind: types.TargetOtherFile}, nil
	}

	dest, err := fsys.Readlink(target)
	if err != nil {
		return types.TargetState{}, wrapProbeErr(err, target)
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(target), dest)
	}
	return types.TargetState{Kind: types.TargetSymlink, Dest: filepath.Clean(dest)}, nil
}

func wrapProbeErr(err error, target string) *errors.Error {
	code := errors.ErrIoFailure
	if os.IsPermission(err) {
		code = errors.ErrPermission
	}
	return errors.Wrapf(err, code, "cannot probe %s", target)
}
