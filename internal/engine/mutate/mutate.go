// Package mutate applies synthetic line edits to tracked files so a
// repository always has something to pace out.
package mutate

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// commentMarkers maps file extensions to their line comment marker.
// Extensions not listed fall back to "#".
var commentMarkers = map[string]string{
	".go":   "//",
	".js":   "//",
	".ts":   "//",
	".c":    "//",
	".cpp":  "//",
	".java": "//",
	".css":  "/*",
	".html": "<!--",
}

// action is one kind of synthetic edit.
type action int

const (
	actionAdd action = iota
	actionRemove
	actionModify
)

// Mutator rewrites files with random line edits.
type Mutator struct {
	rng *rand.Rand
	// now is injectable for deterministic tests.
	now func() time.Time
}

// NewMutator creates a Mutator with the given rng.
func NewMutator(rng *rand.Rand) *Mutator {
	return &Mutator{rng: rng, now: time.Now}
}

// Mutate rewrites path with between minLines and maxLines synthetic line
// edits. A .bak copy guards the original: it is removed on success and
// moved back over the file when the rewrite fails partway.
func (m *Mutator) Mutate(path string, minLines, maxLines int) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path was selected from the repository's own tracked files
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	backup := path + ".bak"
	if err := os.WriteFile(backup, data, 0o600); err != nil {
		return fmt.Errorf("writing backup for %s: %w", path, err)
	}

	lines := strings.SplitAfter(string(data), "\n")
	// SplitAfter leaves a trailing empty element for newline-terminated files.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	count := minLines
	if maxLines > minLines {
		count = minLines + m.rng.Intn(maxLines-minLines+1)
	}

	lines = m.edit(lines, m.pickAction(len(lines), count), count, markerFor(path))

	if err := os.WriteFile(path, []byte(strings.Join(lines, "")), 0o600); err != nil {
		// Best effort restore; the rewrite failed midway.
		_ = os.Rename(backup, path)
		return fmt.Errorf("rewriting %s: %w", path, err)
	}

	_ = os.Remove(backup)
	return nil
}

// pickAction chooses an edit kind, avoiding removals that would gut a
// short file.
func (m *Mutator) pickAction(lineCount, changes int) action {
	a := action(m.rng.Intn(3))
	if a == actionRemove && lineCount <= changes*2 {
		return actionModify
	}
	return a
}

func (m *Mutator) edit(lines []string, a action, count int, marker string) []string {
	stamp := m.now().Format("2006-01-02 15:04:05")

	switch a {
	case actionAdd:
		for range count {
			pos := m.rng.Intn(len(lines) + 1)
			note := fmt.Sprintf("%s note: %s\n", marker, stamp)
			lines = append(lines[:pos], append([]string{note}, lines[pos:]...)...)
		}
	case actionRemove:
		limit := min(count, len(lines)/3)
		for range limit {
			pos := m.rng.Intn(len(lines))
			lines = append(lines[:pos], lines[pos+1:]...)
		}
	case actionModify:
		limit := min(count, len(lines))
		for range limit {
			pos := m.rng.Intn(len(lines))
			lines[pos] = fmt.Sprintf("%s revised %s: %s\n", marker, stamp, strings.TrimRight(lines[pos], "\n"))
		}
	}
	return lines
}

// markerFor returns the line comment marker for a file path.
func markerFor(path string) string {
	if marker, ok := commentMarkers[filepath.Ext(path)]; ok {
		return marker
	}
	return "#"
}
