package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/pacerdev/pacer/internal/platform/logger"
)

// statusPrefixLen is the fixed width of the XY code plus its separator in
// porcelain output.
const statusPrefixLen = 3

// Status returns the parsed porcelain status of the repository.
func (s *ExecService) Status(ctx context.Context) ([]StatusEntry, error) {
	logger.FromContext(ctx).Debug("scanning repository status", "repo", s.WorkDir)

	out, err := s.runGit(ctx, "status", "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("querying status: %w", err)
	}

	return ParseStatus(out.Stdout)
}

// ParseStatus parses porcelain v1 output into status entries. Pure
// function. A line shorter than the fixed XY prefix aborts the whole parse;
// the scan is produced fresh each cycle, so a partial result is worthless.
func ParseStatus(out string) ([]StatusEntry, error) {
	var entries []StatusEntry
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		if len(line) < statusPrefixLen {
			return nil, &ParseError{Line: line}
		}

		path := line[statusPrefixLen:]
		// Rename and copy lines carry "old -> new"; the new path is the
		// one any later operation would act on.
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+len(" -> "):]
		}
		path = strings.Trim(path, `"`)

		entries = append(entries, StatusEntry{
			Index:    stateOf(line[0]),
			Worktree: stateOf(line[1]),
			Path:     path,
		})
	}
	return entries, nil
}
