// Package repo validates repositories and selects tracked files for
// synthetic edits.
package repo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	gogit "github.com/go-git/go-git/v5"

	"github.com/pacerdev/pacer/internal/engine/git"
)

// ErrNotARepository is returned when a path does not hold a git repository.
var ErrNotARepository = errors.New("not a git repository")

// Validate reports whether path contains a git repository.
func Validate(path string) error {
	if _, err := gogit.PlainOpen(path); err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return fmt.Errorf("%s: %w", path, ErrNotARepository)
		}
		return fmt.Errorf("opening repository %s: %w", path, err)
	}
	return nil
}

// SelectTracked returns up to n tracked files whose names end in one of the
// given extensions, sampled with the provided rng. Returns nil when nothing
// matches.
func SelectTracked(ctx context.Context, svc git.Service, extensions []string, n int, rng *rand.Rand) ([]string, error) {
	seen := make(map[string]bool)
	var candidates []string

	for _, ext := range extensions {
		files, err := svc.LsFiles(ctx, "*"+ext)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !seen[f] {
				seen[f] = true
				candidates = append(candidates, f)
			}
		}
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if n < len(candidates) {
		candidates = candidates[:n]
	}
	return candidates, nil
}
