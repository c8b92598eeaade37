package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedDiff is returned when a diff document is empty or contains no
// hunk headers.
var ErrMalformedDiff = errors.New("diff contains no hunks")

// OperationError reports a git invocation that exited non-zero or expired
// its deadline. ExitCode is -1 when the process did not produce an exit
// status (e.g. it was killed on timeout).
type OperationError struct {
	Op       string
	ExitCode int
	Stderr   string
}

func (e *OperationError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = "no output"
	}
	return fmt.Sprintf("git %s failed (exit %d): %s", e.Op, e.ExitCode, msg)
}

// ParseError reports a status line that does not match the fixed
// XY-prefix porcelain shape.
type ParseError struct {
	Line string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable status line %q", e.Line)
}

// IsConflict reports whether err came from a stash pop that hit a merge
// conflict. Git reports the conflict on stdout and keeps the stash entry,
// noting that on stderr.
func IsConflict(err error) bool {
	var op *OperationError
	if !errors.As(err, &op) {
		return false
	}
	s := strings.ToLower(op.Stderr)
	return strings.Contains(s, "conflict") || strings.Contains(s, "stash entry is kept")
}
