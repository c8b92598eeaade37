package git

import (
	"regexp"
	"strings"
)

// hunkHeaderRe matches a unified diff hunk header, e.g. "@@ -1,3 +1,4 @@".
var hunkHeaderRe = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+\d+(?:,\d+)? @@`)

// SplitFirstHunk splits a unified diff for one file into the patch
// containing only its first hunk and the remainder patch containing every
// later hunk. Both results keep the file-level headers and end with exactly
// one newline, so each is a valid standalone patch.
//
// A diff with a single hunk returns that diff (newline-normalized) as first
// and an empty remainder. An empty diff or one without hunk headers returns
// ErrMalformedDiff. Pure and deterministic.
func SplitFirstHunk(diff string) (first, rest string, err error) {
	if strings.TrimSpace(diff) == "" {
		return "", "", ErrMalformedDiff
	}

	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")

	var headers []int
	for i, line := range lines {
		if hunkHeaderRe.MatchString(line) {
			headers = append(headers, i)
		}
	}
	if len(headers) == 0 {
		return "", "", ErrMalformedDiff
	}

	if len(headers) == 1 {
		return strings.Join(lines, "\n") + "\n", "", nil
	}

	second := headers[1]
	first = strings.Join(lines[:second], "\n") + "\n"

	restLines := make([]string, 0, headers[0]+len(lines)-second)
	restLines = append(restLines, lines[:headers[0]]...)
	restLines = append(restLines, lines[second:]...)
	rest = strings.Join(restLines, "\n") + "\n"

	return first, rest, nil
}

// CountHunks returns the number of hunk headers in a diff.
func CountHunks(diff string) int {
	n := 0
	for _, line := range strings.Split(diff, "\n") {
		if hunkHeaderRe.MatchString(line) {
			n++
		}
	}
	return n
}
