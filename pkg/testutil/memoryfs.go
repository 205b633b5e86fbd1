// Package testutil provides test doubles for dotlink, most notably an
// in-memory types.FS with symlink support and error injection.
package testutil

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage. Unlike most
// in-memory filesystems it models symlinks as first-class nodes, which
// the reconciliation tests depend on (dangling links, links pointing
// elsewhere, links inside not-yet-existing directories).
type MemoryFS struct {
	mu    sync.RWMutex
	nodes map[string]*fileNode

	// errorPaths injects errors for specific paths to simulate
	// permission problems and I/O failures.
	errorPaths map[string]error
}

// fileNode represents a file, directory or symlink in memory.
type fileNode struct {
	mode     fs.FileMode
	modTime  time.Time
	content  []byte
	linkDest string
}

func (n *fileNode) isDir() bool  { return n.mode.IsDir() }
func (n *fileNode) isLink() bool { return n.mode&fs.ModeSymlink != 0 }

// NewMemoryFS creates a new in-memory filesystem with an empty root.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		nodes: map[string]*fileNode{
			"/": {mode: fs.ModeDir | 0o755, modTime: time.Now()},
		},
		errorPaths: make(map[string]error),
	}
}

// InjectError makes every operation on path fail with err.
func (m *MemoryFS) InjectError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[m.normalize(path)] = err
}

func (m *MemoryFS) normalize(path string) string {
	if !filepath.IsAbs(path) {
		path = "/" + path
	}
	return filepath.Clean(path)
}

func (m *MemoryFS) checkError(path string) error {
	if err, ok := m.errorPaths[path]; ok {
		return err
	}
	return nil
}

func (m *MemoryFS) getNode(op, path string) (*fileNode, error) {
	if err := m.checkError(path); err != nil {
		return nil, err
	}
	node, ok := m.nodes[path]
	if !ok {
		return nil, &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
	}
	return node, nil
}

// resolve follows symlinks until a non-link node is reached.
func (m *MemoryFS) resolve(op, path string) (string, *fileNode, error) {
	for hops := 0; hops < 40; hops++ {
		node, err := m.getNode(op, path)
		if err != nil {
			return "", nil, err
		}
		if !node.isLink() {
			return path, node, nil
		}
		dest := node.linkDest
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = m.normalize(dest)
	}
	return "", nil, &fs.PathError{Op: op, Path: path, Err: errors.New("too many levels of symbolic links")}
}

func (m *MemoryFS) requireParentDir(op, path string) error {
	parent := filepath.Dir(path)
	node, err := m.getNode(op, parent)
	if err != nil {
		return err
	}
	if !node.isDir() {
		return &fs.PathError{Op: op, Path: parent, Err: errors.New("not a directory")}
	}
	return nil
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := m.normalize(name)
	resolved, node, err := m.resolve("stat", path)
	if err != nil {
		return nil, err
	}
	return newFileInfo(resolved, node), nil
}

func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := m.normalize(name)
	node, err := m.getNode("lstat", path)
	if err != nil {
		return nil, err
	}
	return newFileInfo(path, node), nil
}

func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := m.normalize(name)
	node, err := m.getNode("readlink", path)
	if err != nil {
		return "", err
	}
	if !node.isLink() {
		return "", &fs.PathError{Op: "readlink", Path: path, Err: errors.New("invalid argument")}
	}
	return node.linkDest, nil
}

func (m *MemoryFS) Symlink(oldname, newname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.normalize(newname)
	if err := m.checkError(path); err != nil {
		return err
	}
	if _, ok := m.nodes[path]; ok {
		return &fs.PathError{Op: "symlink", Path: path, Err: fs.ErrExist}
	}
	if err := m.requireParentDir("symlink", path); err != nil {
		return err
	}
	m.nodes[path] = &fileNode{
		mode:     fs.ModeSymlink | 0o777,
		modTime:  time.Now(),
		linkDest: oldname,
	}
	return nil
}

func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.normalize(name)
	node, err := m.getNode("remove", path)
	if err != nil {
		return err
	}
	if node.isDir() && m.hasChildren(path) {
		return &fs.PathError{Op: "remove", Path: path, Err: errors.New("directory not empty")}
	}
	delete(m.nodes, path)
	return nil
}

func (m *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = m.normalize(path)
	if err := m.checkError(path); err != nil {
		return err
	}

	// Walk down from the root, creating missing directories.
	segments := strings.Split(strings.Trim(path, "/"), "/")
	current := "/"
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		current = filepath.Join(current, seg)
		if node, ok := m.nodes[current]; ok {
			if node.isLink() {
				if _, resolved, err := m.resolve("mkdir", current); err != nil || !resolved.isDir() {
					return &fs.PathError{Op: "mkdir", Path: current, Err: errors.New("not a directory")}
				}
				continue
			}
			if !node.isDir() {
				return &fs.PathError{Op: "mkdir", Path: current, Err: errors.New("not a directory")}
			}
			continue
		}
		m.nodes[current] = &fileNode{mode: fs.ModeDir | perm.Perm(), modTime: time.Now()}
	}
	return nil
}

func (m *MemoryFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.normalize(oldpath)
	to := m.normalize(newpath)
	if err := m.checkError(from); err != nil {
		return err
	}
	if err := m.checkError(to); err != nil {
		return err
	}
	if _, ok := m.nodes[from]; !ok {
		return &fs.PathError{Op: "rename", Path: from, Err: fs.ErrNotExist}
	}
	if err := m.requireParentDir("rename", to); err != nil {
		return err
	}

	// Move the node and, for directories, the whole subtree.
	moved := make(map[string]*fileNode)
	prefix := from + "/"
	for path, node := range m.nodes {
		if path == from {
			moved[to] = node
			delete(m.nodes, path)
		} else if strings.HasPrefix(path, prefix) {
			moved[to+"/"+strings.TrimPrefix(path, prefix)] = node
			delete(m.nodes, path)
		}
	}
	for path, node := range moved {
		m.nodes[m.normalize(path)] = node
	}
	return nil
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := m.normalize(name)
	resolved, node, err := m.resolve("open", path)
	if err != nil {
		return nil, err
	}
	if node.isDir() {
		return nil, &fs.PathError{Op: "read", Path: resolved, Err: errors.New("is a directory")}
	}
	out := make([]byte, len(node.content))
	copy(out, node.content)
	return out, nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.normalize(name)
	if err := m.checkError(path); err != nil {
		return err
	}
	if node, ok := m.nodes[path]; ok {
		if node.isLink() {
			resolved, target, err := m.resolve("write", path)
			if err != nil {
				return err
			}
			path, node = resolved, target
		}
		if node.isDir() {
			return &fs.PathError{Op: "write", Path: path, Err: errors.New("is a directory")}
		}
	} else if err := m.requireParentDir("write", path); err != nil {
		return err
	}

	content := make([]byte, len(data))
	copy(content, data)
	m.nodes[path] = &fileNode{mode: perm.Perm(), modTime: time.Now(), content: content}
	return nil
}

func (m *MemoryFS) hasChildren(path string) bool {
	prefix := path + "/"
	if path == "/" {
		prefix = "/"
	}
	for p := range m.nodes {
		if p != path && strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// Snapshot returns a deterministic textual dump of the whole tree.
// Tests compare snapshots before and after a dry run to prove zero
// mutation.
func (m *MemoryFS) Snapshot() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, 0, len(m.nodes))
	for path := range m.nodes {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var b strings.Builder
	for _, path := range paths {
		node := m.nodes[path]
		switch {
		case node.isLink():
			fmt.Fprintf(&b, "L %s -> %s\n", path, node.linkDest)
		case node.isDir():
			fmt.Fprintf(&b, "D %s\n", path)
		default:
			fmt.Fprintf(&b, "F %s %q\n", path, node.content)
		}
	}
	return b.String()
}

// fileInfo implements fs.FileInfo for memory nodes.
type fileInfo struct {
	name string
	node *fileNode
}

func newFileInfo(path string, node *fileNode) *fileInfo {
	return &fileInfo{name: filepath.Base(path), node: node}
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() fs.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir() }
func (fi *fileInfo) Sys() interface{}   { return nil }
