package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/pacerdev/pacer/internal/platform/logger"
)

// StashPushKeepIndex stashes all working-tree changes repository-wide,
// preserving the index, under the given marker message. The marker lets a
// later StashPop target exactly this entry even if other stashes exist.
func (s *ExecService) StashPushKeepIndex(ctx context.Context, marker string) error {
	logger.FromContext(ctx).Debug("stashing working tree", "marker", marker)

	_, err := s.runGit(ctx, "stash-push", "stash", "push", "--keep-index", "--include-untracked", "-m", marker)
	if err != nil {
		return fmt.Errorf("stashing working tree: %w", err)
	}
	return nil
}

// StashPop pops the stash entry carrying the given marker. If no entry
// carries the marker, nothing is popped and nil is returned; the caller's
// stash either never existed or was already restored.
func (s *ExecService) StashPop(ctx context.Context, marker string) error {
	log := logger.FromContext(ctx)

	entries, err := s.StashList(ctx)
	if err != nil {
		return err
	}

	for _, line := range entries {
		if !strings.Contains(line, marker) {
			continue
		}
		// Line shape: "stash@{0}: On main: <marker>".
		ref, _, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		if _, err := s.runGit(ctx, "stash-pop", "stash", "pop", strings.TrimSpace(ref)); err != nil {
			return fmt.Errorf("popping stash: %w", err)
		}
		log.Debug("stash restored", "marker", marker)
		return nil
	}

	log.Debug("no stash entry for marker", "marker", marker)
	return nil
}

// StashList returns the raw stash list lines.
func (s *ExecService) StashList(ctx context.Context) ([]string, error) {
	out, err := s.runGit(ctx, "stash-list", "stash", "list")
	if err != nil {
		return nil, fmt.Errorf("listing stashes: %w", err)
	}

	trimmed := strings.TrimSpace(out.Stdout)
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}
