// Package git abstracts git operations for testability.
package git

import (
	"context"
)

// State classifies one side of a two-character porcelain status code.
type State byte

const (
	StateClean State = iota
	StateModified
	StateAdded
	StateDeleted
	StateRenamed
	StateCopied
	StateUnmerged
	StateUntracked
	StateUnknown
)

// stateOf maps a porcelain status letter to its State.
// Letters outside the porcelain alphabet map to StateUnknown.
func stateOf(c byte) State {
	switch c {
	case ' ':
		return StateClean
	case 'M':
		return StateModified
	case 'A':
		return StateAdded
	case 'D':
		return StateDeleted
	case 'R':
		return StateRenamed
	case 'C':
		return StateCopied
	case 'U':
		return StateUnmerged
	case '?':
		return StateUntracked
	}
	return StateUnknown
}

// String returns the porcelain letter for the state.
func (s State) String() string {
	switch s {
	case StateClean:
		return " "
	case StateModified:
		return "M"
	case StateAdded:
		return "A"
	case StateDeleted:
		return "D"
	case StateRenamed:
		return "R"
	case StateCopied:
		return "C"
	case StateUnmerged:
		return "U"
	case StateUntracked:
		return "?"
	}
	return "!"
}

// StatusEntry is one parsed line of porcelain status output.
type StatusEntry struct {
	Index    State
	Worktree State
	Path     string
}

// StagedModified reports whether the entry is modified in the index with the
// working tree either clean or also modified. These are the only two codes
// the hunk commit orchestrator acts on.
func (e StatusEntry) StagedModified() bool {
	return e.Index == StateModified &&
		(e.Worktree == StateClean || e.Worktree == StateModified)
}

// Outcome captures the observable result of a single git invocation.
type Outcome struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Service abstracts git operations against one repository.
//
// Every method issues exactly one git invocation and never retries; a
// non-zero exit surfaces as an *OperationError. Callers decide propagation.
type Service interface {
	// Status returns the parsed porcelain status of the repository.
	Status(ctx context.Context) ([]StatusEntry, error)
	// DiffStaged returns the unified diff of staged changes for one path.
	DiffStaged(ctx context.Context, path string) (string, error)
	// ApplyIndex applies a patch to the index only.
	ApplyIndex(ctx context.Context, patch string) error
	// ApplyIndexAndWorktree applies a patch to both index and working tree.
	ApplyIndexAndWorktree(ctx context.Context, patch string) error
	// RestoreStaged removes a path's staged changes from the index,
	// leaving the working tree untouched.
	RestoreStaged(ctx context.Context, path string) error
	// Add stages the current working-tree content of a path.
	Add(ctx context.Context, path string) error
	// StashPushKeepIndex stashes all working-tree changes repository-wide,
	// preserving the index, under the given marker message.
	StashPushKeepIndex(ctx context.Context, marker string) error
	// StashPop pops the stash entry carrying the given marker.
	// Popping a marker that is not in the stash list is a no-op.
	StashPop(ctx context.Context, marker string) error
	// StashList returns the raw stash list lines.
	StashList(ctx context.Context) ([]string, error)
	// Commit commits staged changes with the given message.
	// A non-empty path scopes the commit to that path.
	Commit(ctx context.Context, path, message string) error
	// LsFiles returns tracked files matching the given pathspec patterns.
	LsFiles(ctx context.Context, patterns ...string) ([]string, error)
}
