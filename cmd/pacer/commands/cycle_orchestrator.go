package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pacerdev/pacer/internal/engine/commit"
	"github.com/pacerdev/pacer/internal/engine/git"
	"github.com/pacerdev/pacer/internal/engine/message"
	"github.com/pacerdev/pacer/internal/platform/logger"
)

// CycleOpts holds per-invocation options for a commit cycle.
type CycleOpts struct {
	// Synthesize makes the cycle produce an edit of its own when a
	// repository has nothing staged.
	Synthesize bool
	MinLines   int
	MaxLines   int
	// Extensions limits which files the cycle acts on. Empty means all.
	Extensions []string
}

// Cycle orchestrates one commit cycle across repositories with injected
// dependencies. This struct enables testing the orchestration logic without
// real repositories.
type Cycle struct {
	// NewGit builds the git service for a repository.
	NewGit func(repoPath string) git.Service

	// NewCommitter builds the first-hunk committer for a repository.
	NewCommitter func(repoPath string, svc git.Service) HunkCommitter

	// Validate checks that a configured path is a repository.
	Validate RepoValidator

	// Mutator produces synthetic edits when Synthesize is set.
	Mutator FileMutator

	// SelectFiles picks mutation candidates among tracked files.
	SelectFiles func(ctx context.Context, svc git.Service, extensions []string, n int) ([]string, error)

	// Messages generates commit messages from staged diffs.
	Messages message.Generator

	// Fallback is used when Messages fails; never nil in production
	// wiring (the template generator cannot fail).
	Fallback message.Generator
}

// ExecuteAll runs one cycle over every repository. A failing repository is
// logged and skipped; the cycle moves on to the next one. The returned error
// aggregates per-repository failures.
func (c *Cycle) ExecuteAll(ctx context.Context, repoPaths []string, opts CycleOpts) error {
	log := logger.FromContext(ctx)
	var errs []error

	for _, repoPath := range repoPaths {
		result, err := c.Execute(ctx, repoPath, opts)
		if err != nil {
			log.Error("cycle failed for repository", "repo", repoPath, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", repoPath, err))
			continue
		}
		if result == nil {
			log.Info("nothing to commit", "repo", repoPath)
			continue
		}
		log.Info("committed first hunk",
			"repo", repoPath, "path", result.Path,
			"message", result.Message, "restaged", result.Restaged)
	}

	return errors.Join(errs...)
}

// Execute runs one cycle for a single repository: at most one first-hunk
// commit. Returns a nil result when the repository has no eligible staged
// modification.
func (c *Cycle) Execute(ctx context.Context, repoPath string, opts CycleOpts) (*commit.Result, error) {
	log := logger.FromContext(ctx)

	if err := c.Validate(repoPath); err != nil {
		return nil, err
	}

	svc := c.NewGit(repoPath)

	entry, err := c.pickCandidate(ctx, svc, opts.Extensions)
	if err != nil {
		return nil, err
	}

	// Nothing staged: synthesize an edit and rescan, or give up.
	if entry == nil {
		if !opts.Synthesize {
			return nil, nil
		}
		if err := c.synthesize(ctx, svc, repoPath, opts); err != nil {
			return nil, err
		}
		entry, err = c.pickCandidate(ctx, svc, opts.Extensions)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return nil, nil
		}
	}

	diff, err := svc.DiffStaged(ctx, entry.Path)
	if err != nil {
		return nil, err
	}

	msg, err := c.Messages.Message(ctx, diff)
	if err != nil {
		log.Warn("message generation failed, using fallback", "error", err)
		msg, err = c.Fallback.Message(ctx, diff)
		if err != nil {
			return nil, fmt.Errorf("generating commit message: %w", err)
		}
	}

	committer := c.NewCommitter(repoPath, svc)
	result, err := committer.CommitFirstHunk(ctx, *entry, msg)

	// A recovery failure means the repository is in an unknown state;
	// surface it even when a partial result exists.
	var rerr *commit.RecoveryError
	if errors.As(err, &rerr) {
		return result, err
	}
	if err != nil && result != nil && result.Committed {
		// The commit stands; reconciliation left work in the tree.
		log.Warn("commit created but reconciliation failed",
			"repo", repoPath, "path", result.Path, "error", err)
		return result, nil
	}
	return result, err
}

// pickCandidate scans the repository and returns the first staged
// modification whose extension is allowed, or nil.
func (c *Cycle) pickCandidate(ctx context.Context, svc git.Service, extensions []string) (*git.StatusEntry, error) {
	entries, err := svc.Status(ctx)
	if err != nil {
		return nil, &commit.StepError{Step: commit.StepScan, Err: err}
	}
	for _, e := range entries {
		if !e.StagedModified() {
			continue
		}
		if !extensionAllowed(e.Path, extensions) {
			continue
		}
		return &e, nil
	}
	return nil, nil
}

// synthesize mutates one tracked file and stages it.
func (c *Cycle) synthesize(ctx context.Context, svc git.Service, repoPath string, opts CycleOpts) error {
	log := logger.FromContext(ctx)

	files, err := c.SelectFiles(ctx, svc, opts.Extensions, 1)
	if err != nil {
		return fmt.Errorf("selecting files to edit: %w", err)
	}
	if len(files) == 0 {
		log.Info("no tracked files match the configured extensions", "repo", repoPath)
		return nil
	}

	path := files[0]
	if err := c.Mutator.Mutate(filepath.Join(repoPath, path), opts.MinLines, opts.MaxLines); err != nil {
		return fmt.Errorf("editing %s: %w", path, err)
	}
	if err := svc.Add(ctx, path); err != nil {
		return fmt.Errorf("staging %s: %w", path, err)
	}
	log.Debug("synthesized edit", "repo", repoPath, "path", path)
	return nil
}

func extensionAllowed(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
