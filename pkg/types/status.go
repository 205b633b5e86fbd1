package types

// LinkStatus classifies the real-world state of a mapping. It is
// derived fresh on every invocation, never cached.
type LinkStatus string

const (
	// StatusLinked means the target is a symlink resolving to the
	// expected source path.
	StatusLinked LinkStatus = "linked"

	// StatusUnlinked means the target does not exist.
	StatusUnlinked LinkStatus = "unlinked"

	// StatusMissing means the declared source does not exist in the
	// dotfiles root. Missing takes precedence over the target state.
	StatusMissing LinkStatus = "missing"

	// StatusConflict means the target exists but is not a symlink, or
	// is a symlink pointing somewhere else.
	StatusConflict LinkStatus = "conflict"
)

// TargetStateKind enumerates what a probe found at a target path.
type TargetStateKind string

const (
	// TargetAbsent means nothing exists at the path, not even a
	// dangling symlink.
	TargetAbsent TargetStateKind = "absent"

	// TargetSymlink means the path is a symlink. The link destination
	// may or may not exist.
	TargetSymlink TargetStateKind = "symlink"

	// TargetOtherFile means the path exists as a regular file or
	// directory.
	TargetOtherFile TargetStateKind = "other"
)

// TargetState is the probed state of one target path. Dest is only
// set for symlinks and holds the link destination resolved to an
// absolute lexical path.
type TargetState struct {
	Kind TargetStateKind
	Dest string
}

// MappingStatus pairs a mapping with its classification.
type MappingStatus struct {
	Mapping Mapping    `json:"mapping" yaml:"mapping"`
	Status  LinkStatus `json:"status" yaml:"status"`

	// Detail explains conflicts, e.g. which path the target points to
	// instead of the expected source.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}
