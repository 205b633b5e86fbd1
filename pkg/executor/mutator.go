package executor

import (
	"path/filepath"

	"github.com/dotlink/dotlink/pkg/types"
)

// mutator is the write-side capability of the executor. Dry-run is an
// alternate implementation rather than branches inside the mutation
// logic, so the live path and the simulated path share every check
// that precedes a write.
type mutator interface {
	createLink(source, target string) error
	remove(target string) error
}

// liveMutator performs real filesystem writes.
type liveMutator struct {
	fs types.FS
}

func (l *liveMutator) createLink(source, target string) error {
	if err := l.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	// Symlink has create-new semantics: it fails if the target path
	// appeared between probe and create instead of overwriting it.
	return l.fs.Symlink(source, target)
}

func (l *liveMutator) remove(target string) error {
	return l.fs.Remove(target)
}

// recordingMutator mutates nothing and always succeeds; with it the
// executor reports what would happen.
type recordingMutator struct{}

func (r *recordingMutator) createLink(string, string) error { return nil }
func (r *recordingMutator) remove(string) error             { return nil }
