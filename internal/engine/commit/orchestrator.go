// Package commit implements the hunk-splitting commit orchestrator: it
// commits the first unified-diff hunk of one path's staged modification and
// returns every other pending change to its prior state.
package commit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pacerdev/pacer/internal/engine/git"
	"github.com/pacerdev/pacer/internal/platform/logger"
)

// Orchestrator drives the restore → apply-first-hunk → isolate-worktree →
// commit → reconcile sequence for one repository.
type Orchestrator struct {
	// RepoPath is the repository the orchestrator holds the lock for.
	RepoPath string
	// Git executes the primitive operations.
	Git git.Service
	// NewMarker produces the stash marker for a run. Defaults to a uuid so
	// reconciliation pops exactly the entry this run pushed.
	NewMarker func() string
}

// NewOrchestrator creates an Orchestrator for the given repository.
func NewOrchestrator(repoPath string, svc git.Service) *Orchestrator {
	return &Orchestrator{
		RepoPath:  repoPath,
		Git:       svc,
		NewMarker: func() string { return "pacer-" + uuid.NewString() },
	}
}

// Result describes what a run did.
type Result struct {
	Path string
	// Skipped is set when the entry's status code is not a staged
	// modification; nothing was touched.
	Skipped bool
	// Committed is set once the first-hunk commit exists. It stays set
	// even when a later reconciliation step fails.
	Committed bool
	// Restaged is set when the hunks after the first were re-staged after
	// reconciliation. False with Committed set means those hunks remain
	// as working-tree edits only.
	Restaged bool
	Message  string
}

// CommitFirstHunk commits only the first hunk of the entry's staged diff
// with the given message, then restores the remaining staged hunks and all
// working-tree edits.
//
// Failures are *StepError (terminal for the path) or *RecoveryError (a
// compensating action failed; the whole repository must be left alone for
// this cycle). A non-nil Result is returned alongside a reconcile error
// once the commit itself has been created.
func (o *Orchestrator) CommitFirstHunk(ctx context.Context, entry git.StatusEntry, message string) (*Result, error) {
	mu := lockFor(o.RepoPath)
	mu.Lock()
	defer mu.Unlock()

	log := logger.FromContext(ctx).With("repo", o.RepoPath, "path", entry.Path)

	// Dispatch over the status variant pair. Added, deleted, renamed,
	// copied, untracked, unmerged, and clean entries are recognized but
	// never mutated.
	if !entry.StagedModified() {
		log.Debug("status code not a staged modification, skipping",
			"index", entry.Index.String(), "worktree", entry.Worktree.String())
		return &Result{Path: entry.Path, Skipped: true}, nil
	}

	fullDiff, err := o.Git.DiffStaged(ctx, entry.Path)
	if err != nil {
		return nil, &StepError{Step: StepDiff, Path: entry.Path, Err: err}
	}

	// A staged-modified entry must carry at least one hunk; anything else
	// means the scan and the diff disagree, and proceeding would unstage
	// changes we cannot re-apply.
	first, rest, err := git.SplitFirstHunk(fullDiff)
	if err != nil {
		return nil, &StepError{Step: StepDiff, Path: entry.Path, Err: err}
	}

	if err := o.Git.RestoreStaged(ctx, entry.Path); err != nil {
		// The index was not touched; nothing to unwind.
		return nil, &StepError{Step: StepUnstage, Path: entry.Path, Err: err}
	}

	if err := o.Git.ApplyIndex(ctx, first); err != nil {
		// Put the original staged changes back before surfacing.
		if undoErr := o.Git.ApplyIndex(ctx, fullDiff); undoErr != nil {
			return nil, &RecoveryError{Step: StepApply, Path: entry.Path, Cause: err, Err: undoErr}
		}
		return nil, &StepError{Step: StepApply, Path: entry.Path, Err: err}
	}

	marker := o.NewMarker()
	if err := o.Git.StashPushKeepIndex(ctx, marker); err != nil {
		// Degraded state: the first hunk stays staged and the working
		// tree keeps everything. Operator attention required.
		log.Error("stash push failed, first hunk left staged", "error", err)
		return nil, &StepError{Step: StepStash, Path: entry.Path, Err: err}
	}

	if err := o.Git.Commit(ctx, entry.Path, message); err != nil {
		// The working tree now lives in the stash; pop it before
		// surfacing or the edits are lost.
		if popErr := o.Git.StashPop(ctx, marker); popErr != nil {
			return nil, &RecoveryError{Step: StepCommit, Path: entry.Path, Cause: err, Err: popErr}
		}
		return nil, &StepError{Step: StepCommit, Path: entry.Path, Err: err}
	}

	res := &Result{Path: entry.Path, Committed: true, Message: message}
	log.Info("committed first hunk", "message", message)

	if err := o.Git.StashPop(ctx, marker); err != nil {
		return res, &StepError{
			Step:     StepReconcile,
			Path:     entry.Path,
			Err:      fmt.Errorf("restoring working tree: %w", err),
			Conflict: git.IsConflict(err),
		}
	}

	// The first hunk is already part of the new commit, so only the hunks
	// after it go back to the index.
	if rest != "" {
		if err := o.Git.ApplyIndex(ctx, rest); err != nil {
			log.Warn("could not re-stage remaining hunks, they stay as working-tree edits", "error", err)
			return res, &StepError{Step: StepReconcile, Path: entry.Path, Err: err}
		}
		res.Restaged = true
	}

	return res, nil
}
