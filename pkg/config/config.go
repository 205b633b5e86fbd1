// Package config persists the declared mapping list as a TOML file.
// The file lives inside the dotfiles root (see pkg/paths) so it
// travels with the repository; this package is only the serialization
// collaborator, the core never touches it.
package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/dotlink/dotlink/pkg/errors"
	"github.com/dotlink/dotlink/pkg/logging"
	"github.com/dotlink/dotlink/pkg/store"
	"github.com/dotlink/dotlink/pkg/types"
)

// Version is the current config file format version.
const Version = 1

// File is the on-disk layout of the mapping configuration.
type File struct {
	Version  int             `toml:"version"`
	Mappings []types.Mapping `toml:"mappings,omitempty"`
}

// Load reads, parses and validates the mapping configuration. A
// missing file loads as an empty mapping set; it is only written once
// a mapping is added. Validation (relative paths, unique targets, no
// nesting) happens here, before any mapping reaches the core.
func Load(fsys types.FS, path string) (*store.Store, error) {
	logger := logging.GetLogger("config")

	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no config file, starting with an empty mapping set")
			return store.New(), nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path)
	}

	var file File
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse config file %s", path)
	}

	// Entries may give only one side; the other defaults to the same
	// relative path.
	for i := range file.Mappings {
		if file.Mappings[i].Target == "" {
			file.Mappings[i].Target = file.Mappings[i].Source
		}
		if file.Mappings[i].Source == "" {
			file.Mappings[i].Source = file.Mappings[i].Target
		}
	}

	s, err := store.FromMappings(file.Mappings)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid mappings in %s", path)
	}

	logger.Debug().Str("path", path).Int("mappings", s.Len()).Msg("loaded config")
	return s, nil
}

// Save writes the store's mappings back to the configuration file,
// creating parent directories as needed.
func Save(fsys types.FS, path string, s *store.Store) error {
	data, err := toml.Marshal(File{Version: Version, Mappings: s.Mappings()})
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "cannot serialize config")
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "cannot create config directory for %s", path)
	}
	if err := fsys.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "cannot write config file %s", path)
	}
	return nil
}
