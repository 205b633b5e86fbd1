// Package executor applies planned actions to the filesystem, or in
// dry-run mode reports what would happen without mutating anything.
package executor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/dotlink/dotlink/pkg/errors"
	"github.com/dotlink/dotlink/pkg/logging"
	"github.com/dotlink/dotlink/pkg/reconcile"
	"github.com/dotlink/dotlink/pkg/types"
)

// Options configures an Executor.
type Options struct {
	// DryRun swaps the live mutator for a recording one: zero
	// filesystem mutation, same reporting.
	DryRun bool

	// Force authorizes actions that overwrite a conflicting target.
	Force bool
}

// Executor applies planned actions one mapping at a time. Each
// individual link or unlink is the atomic unit; there is no
// cross-mapping atomicity, and a failure on one mapping never stops
// the rest of the batch.
type Executor struct {
	fs           types.FS
	mut          mutator
	opts         Options
	dotfilesRoot string
	homeDir      string
	logger       zerolog.Logger
}

// New creates an executor for the given roots.
func New(fsys types.FS, dotfilesRoot, homeDir string, opts Options) *Executor {
	mut := mutator(&liveMutator{fs: fsys})
	if opts.DryRun {
		mut = &recordingMutator{}
	}
	return &Executor{
		fs:           fsys,
		mut:          mut,
		opts:         opts,
		dotfilesRoot: dotfilesRoot,
		homeDir:      homeDir,
		logger:       logging.GetLogger("executor"),
	}
}

// Execute applies the actions in order and returns the per-action
// report. Refusals and per-mapping failures are data in the report,
// never an abort: one bad mapping does not block the rest.
func (e *Executor) Execute(actions []types.PlannedAction) *types.Report {
	report := &types.Report{DryRun: e.opts.DryRun}

	for _, action := range actions {
		result := e.executeOne(action)
		e.logger.Debug().
			Str("kind", string(action.Kind)).
			Str("target", action.Mapping.Target).
			Str("result", string(result.Status)).
			Bool("dryRun", e.opts.DryRun).
			Msg("executed action")
		report.Results = append(report.Results, result)
	}

	return report
}

func (e *Executor) executeOne(action types.PlannedAction) types.ActionResult {
	result := types.ActionResult{Action: action}

	switch action.Kind {
	case types.ActionNoop:
		result.Status = types.ResultSkipped
		result.Message = action.Reason

	case types.ActionCreateLink:
		e.createLink(action, &result)

	case types.ActionRemoveLink:
		e.removeLink(action, &result)

	default:
		result.Status = types.ResultFailed
		result.Error = fmt.Sprintf("unknown action kind %q", action.Kind)
	}

	return result
}

func (e *Executor) createLink(action types.PlannedAction, result *types.ActionResult) {
	source := action.Mapping.SourcePath(e.dotfilesRoot)
	target := action.Mapping.TargetPath(e.homeDir)

	if action.RequiresForce {
		if !e.opts.Force {
			result.Status = types.ResultRefused
			result.Message = fmt.Sprintf("refusing to overwrite %s (%s); re-run with --force", target, action.Reason)
			return
		}
		if err := e.removeConflicting(target); err != nil {
			e.fail(result, err)
			return
		}
	}

	if err := e.mut.createLink(source, target); err != nil {
		if os.IsExist(err) {
			// Something appeared at the target between planning and
			// execution. Never overwrite it silently.
			e.fail(result, errors.Wrapf(err, errors.ErrRaceConflict,
				"%s appeared since planning, not overwriting", target))
			return
		}
		e.fail(result, wrapFsErr(err, errors.ErrSymlinkCreate, "cannot create symlink %s", target))
		return
	}

	result.Status = types.ResultSuccess
	result.Message = fmt.Sprintf("%s %s -> %s", e.verb("linked", "would link"), target, source)
}

func (e *Executor) removeLink(action types.PlannedAction, result *types.ActionResult) {
	source := action.Mapping.SourcePath(e.dotfilesRoot)
	target := action.Mapping.TargetPath(e.homeDir)

	// Re-verify immediately before removal: the target must still be
	// a symlink to the expected source. Anything else means the path
	// changed since planning, and removing it could destroy user data
	// substituted in the race window.
	state, err := reconcile.Probe(e.fs, target)
	if err != nil {
		e.fail(result, err)
		return
	}
	if state.Kind != types.TargetSymlink || state.Dest != filepath.Clean(source) {
		e.fail(result, errors.Newf(errors.ErrRaceConflict,
			"%s changed since planning, not removing", target))
		return
	}

	if err := e.mut.remove(target); err != nil {
		e.fail(result, wrapFsErr(err, errors.ErrIoFailure, "cannot remove %s", target))
		return
	}

	result.Status = types.ResultSuccess
	result.Message = fmt.Sprintf("%s %s", e.verb("unlinked", "would unlink"), target)
}

// removeConflicting clears a conflicting target under force. A
// directory target is never removed, force or not: replacing a whole
// tree is beyond what a file linker may do silently.
func (e *Executor) removeConflicting(target string) error {
	info, err := e.fs.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			// Conflict resolved itself since planning; nothing to do.
			return nil
		}
		return wrapFsErr(err, errors.ErrIoFailure, "cannot inspect %s", target)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput,
			"%s is a directory; refusing to replace it even with force", target)
	}
	if err := e.mut.remove(target); err != nil {
		return wrapFsErr(err, errors.ErrIoFailure, "cannot remove conflicting %s", target)
	}
	return nil
}

func (e *Executor) fail(result *types.ActionResult, err error) {
	result.Status = types.ResultFailed
	result.Error = err.Error()
	e.logger.Warn().
		Str("target", result.Action.Mapping.Target).
		Str("code", string(errors.CodeOf(err))).
		Msg(err.Error())
}

func (e *Executor) verb(live, dry string) string {
	if e.opts.DryRun {
		return dry
	}
	return live
}

func wrapFsErr(err error, code errors.ErrorCode, format string, args ...interface{}) *errors.Error {
	if os.IsPermission(err) {
		code = errors.ErrPermission
	}
	return errors.Wrapf(err, code, format, args...)
}
