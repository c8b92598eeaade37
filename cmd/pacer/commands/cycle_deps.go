package commands

import (
	"context"

	"github.com/pacerdev/pacer/internal/engine/commit"
	"github.com/pacerdev/pacer/internal/engine/git"
)

// HunkCommitter abstracts the first-hunk commit orchestrator.
type HunkCommitter interface {
	CommitFirstHunk(ctx context.Context, entry git.StatusEntry, message string) (*commit.Result, error)
}

// FileMutator abstracts synthetic edits to tracked files.
type FileMutator interface {
	Mutate(path string, minLines, maxLines int) error
}

// RepoValidator reports whether a path holds a git repository.
type RepoValidator func(path string) error
