package types

// ResultStatus is the per-action outcome of an execution.
type ResultStatus string

const (
	// ResultSuccess means the action was applied (or, in dry-run mode,
	// would have been applied).
	ResultSuccess ResultStatus = "success"

	// ResultSkipped means the action was a noop.
	ResultSkipped ResultStatus = "skipped"

	// ResultRefused means the action required force and force was not
	// authorized. Refusals are reported, never escalated to a fatal
	// error, so the rest of the batch still runs.
	ResultRefused ResultStatus = "refused"

	// ResultFailed means the action was attempted and hit an error,
	// including execution-time race conflicts.
	ResultFailed ResultStatus = "failed"
)

// ActionResult records what happened to one planned action.
type ActionResult struct {
	Action  PlannedAction `json:"action" yaml:"action"`
	Status  ResultStatus  `json:"status" yaml:"status"`
	Message string        `json:"message,omitempty" yaml:"message,omitempty"`
	Error   string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is the outcome of executing a plan. There is no cross-mapping
// atomicity: partial application is possible and the per-action
// results are the record of it.
type Report struct {
	DryRun  bool           `json:"dryRun" yaml:"dryRun"`
	Results []ActionResult `json:"results" yaml:"results"`
}

// Failed returns true if any action failed or was refused. The CLI
// derives its exit code from this.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Status == ResultFailed || res.Status == ResultRefused {
			return true
		}
	}
	return false
}

// Counts tallies results by status.
func (r *Report) Counts() map[ResultStatus]int {
	counts := make(map[ResultStatus]int)
	for _, res := range r.Results {
		counts[res.Status]++
	}
	return counts
}
