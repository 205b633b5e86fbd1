package types

import (
	"io/fs"
)

// FS is the filesystem interface required for dotlink operations.
// The probing side (Lstat, Readlink, Stat) and the mutating side
// (Symlink, Remove, MkdirAll, Rename) are the only ways any component
// touches the filesystem, which keeps the whole core testable against
// an in-memory implementation.
type FS interface {
	// Stat follows symlinks.
	Stat(name string) (fs.FileInfo, error)

	// Lstat does not follow symlinks. Probing must use Lstat so a
	// dangling symlink is not misread as an absent path.
	Lstat(name string) (fs.FileInfo, error)

	// Readlink returns the destination of a symlink as stored,
	// which may be relative to the link's parent directory.
	Readlink(name string) (string, error)

	// Symlink creates newname as a symlink to oldname. It must fail
	// if newname already exists rather than overwrite.
	Symlink(oldname, newname string) error

	Remove(name string) error
	MkdirAll(path string, perm fs.FileMode) error
	Rename(oldpath, newpath string) error

	// File content operations, used by the configuration layer and
	// the add command.
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
}
