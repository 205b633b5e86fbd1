// Package store holds the in-memory set of declared mappings. It is
// pure data: the canonical, ordered mapping list for the duration of
// one invocation. Persistence lives in pkg/config.
package store

import (
	"path/filepath"
	"strings"

	"github.com/dotlink/dotlink/pkg/errors"
	"github.com/dotlink/dotlink/pkg/types"
)

// Store is an ordered, de-duplicated collection of mappings keyed by
// target path. Enumeration preserves insertion order so status output
// and plans are reproducible.
type Store struct {
	mappings []types.Mapping
	byTarget map[string]int
}

// New creates an empty store.
func New() *Store {
	return &Store{byTarget: make(map[string]int)}
}

// FromMappings builds a store from a mapping list, validating every
// entry. Used by the configuration layer after loading.
func FromMappings(mappings []types.Mapping) (*Store, error) {
	s := New()
	for _, m := range mappings {
		if err := s.Add(m); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NormalizeRel cleans a relative mapping path. Leading "./" segments
// are stripped so "./.config" and ".config" compare equal. Absolute
// paths and paths escaping the root are rejected.
func NormalizeRel(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "mapping path must not be empty")
	}
	if filepath.IsAbs(path) {
		return "", errors.Newf(errors.ErrInvalidInput,
			"mapping path %q is absolute; mappings must be relative to their root", path)
	}
	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.Newf(errors.ErrInvalidInput,
			"mapping path %q escapes its root", path)
	}
	if cleaned == "." {
		return "", errors.Newf(errors.ErrInvalidInput, "mapping path %q names the root itself", path)
	}
	return cleaned, nil
}

// Add appends a mapping. It fails with DUPLICATE_TARGET if the target
// is already mapped and with NESTED_MAPPING if the target is nested
// inside (or a parent of) an existing mapping's target, since linking
// a directory and a file inside it cannot both hold.
func (s *Store) Add(m types.Mapping) error {
	source, err := NormalizeRel(m.Source)
	if err != nil {
		return err
	}
	target, err := NormalizeRel(m.Target)
	if err != nil {
		return err
	}
	m = types.Mapping{Source: source, Target: target}

	if _, ok := s.byTarget[m.Target]; ok {
		return errors.Newf(errors.ErrDuplicateTarget, "target %q is already mapped", m.Target)
	}
	for _, existing := range s.mappings {
		if isNested(existing.Target, m.Target) {
			return errors.Newf(errors.ErrNestedMapping,
				"target %q is nested in the existing mapping %q", m.Target, existing.Target)
		}
		if isNested(m.Target, existing.Target) {
			return errors.Newf(errors.ErrNestedMapping,
				"existing mapping %q is nested in target %q", existing.Target, m.Target)
		}
	}

	s.byTarget[m.Target] = len(s.mappings)
	s.mappings = append(s.mappings, m)
	return nil
}

// Remove deletes the mapping with the given target path and returns
// it. It fails with NOT_FOUND if absent, leaving the store unchanged.
func (s *Store) Remove(target string) (types.Mapping, error) {
	normalized, err := NormalizeRel(target)
	if err != nil {
		return types.Mapping{}, err
	}
	idx, ok := s.byTarget[normalized]
	if !ok {
		return types.Mapping{}, errors.Newf(errors.ErrNotFound, "no mapping with target %q", normalized)
	}

	removed := s.mappings[idx]
	s.mappings = append(s.mappings[:idx], s.mappings[idx+1:]...)
	delete(s.byTarget, normalized)
	for i := idx; i < len(s.mappings); i++ {
		s.byTarget[s.mappings[i].Target] = i
	}
	return removed, nil
}

// Contains reports whether a mapping with the given target exists.
func (s *Store) Contains(target string) bool {
	normalized, err := NormalizeRel(target)
	if err != nil {
		return false
	}
	_, ok := s.byTarget[normalized]
	return ok
}

// Get returns the mapping with the given target.
func (s *Store) Get(target string) (types.Mapping, bool) {
	normalized, err := NormalizeRel(target)
	if err != nil {
		return types.Mapping{}, false
	}
	idx, ok := s.byTarget[normalized]
	if !ok {
		return types.Mapping{}, false
	}
	return s.mappings[idx], true
}

// Mappings returns the mappings in insertion order. The returned slice
// is a copy; the store's canonical list cannot be mutated through it.
func (s *Store) Mappings() []types.Mapping {
	out := make([]types.Mapping, len(s.mappings))
	copy(out, s.mappings)
	return out
}

// Len returns the number of mappings.
func (s *Store) Len() int {
	return len(s.mappings)
}

// isNested reports whether child is a path below parent.
func isNested(parent, child string) bool {
	return strings.HasPrefix(child, parent+string(filepath.Separator))
}
