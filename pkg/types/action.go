package types

// Operation is a requested high-level command the planner turns into
// filesystem actions.
type Operation string

const (
	// OpStatus only reports classifications, producing no actions.
	OpStatus Operation = "status"

	// OpLink ensures every mapping's symlink exists.
	OpLink Operation = "link"

	// OpUnlink removes symlinks for mappings that are correctly linked.
	OpUnlink Operation = "unlink"
)

// ActionKind is the kind of a single planned filesystem action.
type ActionKind string

const (
	ActionCreateLink ActionKind = "create-link"
	ActionRemoveLink ActionKind = "remove-link"
	ActionNoop       ActionKind = "noop"
)

// PlannedAction is one filesystem change the planner decided on for a
// mapping. Actions are ordered the same way as the mapping store's
// enumeration, so plans are reproducible across runs.
type PlannedAction struct {
	Mapping Mapping    `json:"mapping" yaml:"mapping"`
	Kind    ActionKind `json:"kind" yaml:"kind"`

	// RequiresForce marks an action that would overwrite a conflicting
	// target. The executor refuses it unless force is authorized.
	RequiresForce bool `json:"requiresForce,omitempty" yaml:"requiresForce,omitempty"`

	// Reason carries a human-readable note, e.g. why a noop was
	// planned for a missing source.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}
