package types

import "path/filepath"

// Mapping declares that a file in the dotfiles root should be linked
// into the home directory. Both paths are relative: Source to the
// dotfiles root, Target to the home directory.
type Mapping struct {
	Source string `toml:"source" json:"source" yaml:"source"`
	Target string `toml:"target" json:"target" yaml:"target"`
}

// SourcePath returns the absolute path of the mapping's source file.
func (m Mapping) SourcePath(dotfilesRoot string) string {
	return filepath.Join(dotfilesRoot, m.Source)
}

// TargetPath returns the absolute path the symlink should live at.
func (m Mapping) TargetPath(homeDir string) string {
	return filepath.Join(homeDir, m.Target)
}

func (m Mapping) String() string {
	if m.Source == m.Target {
		return m.Target
	}
	return m.Source + " -> " + m.Target
}
