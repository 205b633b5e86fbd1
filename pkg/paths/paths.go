// Package paths provides centralized path handling for dotlink:
// dotfiles root resolution, home directory discovery, and the location
// of the mapping configuration inside the dotfiles root.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/dotlink/dotlink/pkg/errors"
)

const (
	// EnvDotfilesRoot overrides the dotfiles root location.
	EnvDotfilesRoot = "DOTLINK_ROOT"

	// AppDirName is the directory name for dotlink-specific files.
	AppDirName = "dotlink"

	// ConfigFileName is the name of the mapping configuration file.
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file.
	LogFileName = "dotlink.log"
)

// Paths resolves and carries every location dotlink needs for one
// invocation.
type Paths struct {
	dotfilesRoot string
	homeDir      string
}

// New resolves the dotfiles root from the explicit argument or the
// DOTLINK_ROOT environment variable, in that order, and verifies it is
// an existing directory.
func New(root string) (*Paths, error) {
	if root == "" {
		root = os.Getenv(EnvDotfilesRoot)
	}
	if root == "" {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"no dotfiles root: pass --root or set %s", EnvDotfilesRoot)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve dotfiles root %q", root)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "dotfiles root %q is not a directory", abs)
	}

	return &Paths{dotfilesRoot: abs, homeDir: xdg.Home}, nil
}

// DotfilesRoot returns the absolute dotfiles root directory.
func (p *Paths) DotfilesRoot() string {
	return p.dotfilesRoot
}

// HomeDir returns the current user's home directory.
func (p *Paths) HomeDir() string {
	return p.homeDir
}

// ConfigFile returns the path of the mapping configuration file. The
// config lives inside the dotfiles root so it travels with the repo
// instead of needing to be linked itself:
//
//	<root>/<config dir relative to home>/dotlink/config.toml
//
// With default XDG locations that is <root>/.config/dotlink/config.toml.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.dotfilesRoot, p.relConfigDir(), AppDirName, ConfigFileName)
}

// relConfigDir returns the user config directory relative to the home
// directory, falling back to ".config" when XDG_CONFIG_HOME points
// outside of home.
func (p *Paths) relConfigDir() string {
	rel, err := filepath.Rel(p.homeDir, xdg.ConfigHome)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ".config"
	}
	return rel
}

// LogFile returns the log file path under the XDG state directory.
func LogFile() string {
	return filepath.Join(xdg.StateHome, AppDirName, LogFileName)
}
