package commit

import (
	"fmt"
)

// Step identifies the orchestration step a failure belongs to.
type Step string

const (
	StepScan      Step = "scan"
	StepDiff      Step = "diff"
	StepUnstage   Step = "unstage"
	StepApply     Step = "apply"
	StepStash     Step = "stash"
	StepCommit    Step = "commit"
	StepReconcile Step = "reconcile"
)

// StepError reports a failure at one orchestration step for one path. It is
// terminal for that path; nothing in this subsystem retries.
type StepError struct {
	Step Step
	Path string
	Err  error
	// Conflict marks a stash pop that hit a merge conflict and needs
	// manual resolution.
	Conflict bool
}

func (e *StepError) Error() string {
	if e.Conflict {
		return fmt.Sprintf("%s %s: stash pop conflict, manual resolution required: %v", e.Step, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Step, e.Path, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// RecoveryError reports that a compensating action itself failed after an
// earlier failure. Repository state is now unknown; processing of the whole
// repository must stop, not just this path.
type RecoveryError struct {
	Step  Step
	Path  string
	Cause error // the failure that triggered compensation
	Err   error // the compensation failure
}

func (e *RecoveryError) Error() string {
	return fmt.Sprintf("recovery after failed %s of %s also failed: %v (original failure: %v)", e.Step, e.Path, e.Err, e.Cause)
}

func (e *RecoveryError) Unwrap() error { return e.Err }
