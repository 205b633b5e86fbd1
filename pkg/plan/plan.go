// Package plan turns a requested operation and the classified mapping
// statuses into an ordered list of filesystem actions.
package plan

import (
	"fmt"

	"github.com/dotlink/dotlink/pkg/types"
)

// Plan produces the actions for one operation. Output order follows
// the order of statuses, which follows the mapping store's
// enumeration: identical input state always yields an identical plan.
//
//	link:   Unlinked -> CreateLink, Linked -> Noop,
//	        Missing -> Noop (with warning), Conflict -> CreateLink
//	        requiring force
//	unlink: Linked -> RemoveLink, everything else -> Noop
//	status: no actions
func Plan(op types.Operation, statuses []types.MappingStatus) []types.PlannedAction {
	if op == types.OpStatus {
		return nil
	}

	actions := make([]types.PlannedAction, 0, len(statuses))
	for _, s := range statuses {
		actions = append(actions, planOne(op, s))
	}
	return actions
}

func planOne(op types.Operation, s types.MappingStatus) types.PlannedAction {
	action := types.PlannedAction{Mapping: s.Mapping, Kind: types.ActionNoop}

	switch op {
	case types.OpLink:
		switch s.Status {
		case types.StatusUnlinked:
			action.Kind = types.ActionCreateLink
		case types.StatusLinked:
			action.Reason = "already linked"
		case types.StatusMissing:
			action.Reason = fmt.Sprintf("cannot link: %s", s.Detail)
		case types.StatusConflict:
			action.Kind = types.ActionCreateLink
			action.RequiresForce = true
			action.Reason = s.Detail
		}

	case types.OpUnlink:
		if s.Status == types.StatusLinked {
			action.Kind = types.ActionRemoveLink
		} else {
			action.Reason = fmt.Sprintf("not linked (%s)", s.Status)
		}
	}

	return action
}
