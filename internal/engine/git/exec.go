package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pacerdev/pacer/internal/platform/logger"
)

// DefaultTimeout bounds a single git invocation. The reference tool waited
// forever; a hung git process would wedge the whole scheduler.
const DefaultTimeout = 30 * time.Second

// ExecService implements Service by running the git binary via os/exec.
type ExecService struct {
	// WorkDir is the repository path all commands are pinned to.
	WorkDir string
	// Timeout bounds each invocation. Zero means DefaultTimeout.
	Timeout time.Duration
}

// NewExecService creates a new ExecService for the given repository path.
func NewExecService(workDir string) *ExecService {
	return &ExecService{WorkDir: workDir}
}

// DiffStaged returns the unified diff of staged changes for one path.
func (s *ExecService) DiffStaged(ctx context.Context, path string) (string, error) {
	logger.FromContext(ctx).Debug("getting staged diff", "path", path)

	out, err := s.runGit(ctx, "diff-staged", "diff", "--cached", "--", path)
	if err != nil {
		return "", fmt.Errorf("getting staged diff for %s: %w", path, err)
	}

	return out.Stdout, nil
}

// ApplyIndex applies a patch to the index only.
func (s *ExecService) ApplyIndex(ctx context.Context, patch string) error {
	return s.apply(ctx, "apply-index", patch, "--cached")
}

// ApplyIndexAndWorktree applies a patch to both index and working tree.
func (s *ExecService) ApplyIndexAndWorktree(ctx context.Context, patch string) error {
	return s.apply(ctx, "apply-index-worktree", patch, "--index")
}

// apply writes the patch to a temporary file and hands it to git apply by
// path. A non-zero exit means the patch did not apply cleanly.
func (s *ExecService) apply(ctx context.Context, op, patch string, mode string) error {
	f, err := os.CreateTemp("", "pacer-patch-*.diff")
	if err != nil {
		return fmt.Errorf("creating patch file: %w", err)
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if _, err := f.WriteString(patch); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing patch file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing patch file: %w", err)
	}

	if _, err := s.runGit(ctx, op, "apply", mode, f.Name()); err != nil {
		return fmt.Errorf("applying patch: %w", err)
	}
	return nil
}

// RestoreStaged removes a path's staged changes from the index, leaving the
// working tree untouched.
func (s *ExecService) RestoreStaged(ctx context.Context, path string) error {
	logger.FromContext(ctx).Debug("unstaging path", "path", path)

	if _, err := s.runGit(ctx, "restore-staged", "restore", "--staged", "--", path); err != nil {
		return fmt.Errorf("unstaging %s: %w", path, err)
	}
	return nil
}

// Add stages the current working-tree content of a path.
func (s *ExecService) Add(ctx context.Context, path string) error {
	if _, err := s.runGit(ctx, "add", "add", "--", path); err != nil {
		return fmt.Errorf("staging %s: %w", path, err)
	}
	return nil
}

// Commit commits staged changes with the given message. A non-empty path
// scopes the commit to that path.
func (s *ExecService) Commit(ctx context.Context, path, message string) error {
	logger.FromContext(ctx).Debug("committing", "path", path)

	args := []string{"commit", "-m", message}
	if path != "" {
		args = append(args, "--", path)
	}
	if _, err := s.runGit(ctx, "commit", args...); err != nil {
		return fmt.Errorf("committing %s: %w", path, err)
	}
	return nil
}

// LsFiles returns tracked files matching the given pathspec patterns.
func (s *ExecService) LsFiles(ctx context.Context, patterns ...string) ([]string, error) {
	args := append([]string{"ls-files", "--"}, patterns...)
	out, err := s.runGit(ctx, "ls-files", args...)
	if err != nil {
		return nil, fmt.Errorf("listing tracked files: %w", err)
	}

	trimmed := strings.TrimSpace(out.Stdout)
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// runGit executes one git command pinned to the repository working
// directory and captures its full outcome. A non-zero exit or deadline
// expiry surfaces as an *OperationError carrying the operation name, exit
// code, and stderr.
func (s *ExecService) runGit(ctx context.Context, op string, args ...string) (Outcome, error) {
	timeout := s.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...) // #nosec G204 -- argument vectors are fixed per operation, not user input
	cmd.Dir = s.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Outcome{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}

	out.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
	}

	detail := out.Stderr
	if strings.TrimSpace(detail) == "" {
		detail = out.Stdout
	}
	if ctx.Err() != nil {
		detail = fmt.Sprintf("timed out after %s: %s", timeout, detail)
	}

	return out, &OperationError{Op: op, ExitCode: out.ExitCode, Stderr: detail}
}
