// Package message produces commit messages for paced commits.
package message

import (
	"context"
	"fmt"
	"math/rand"
)

// Generator abstracts commit message generation for testability.
type Generator interface {
	// Message returns a one-line commit message for the given diff.
	Message(ctx context.Context, diff string) (string, error)
}

var (
	prefixes = []string{
		"Fix", "Update", "Refactor", "Improve", "Optimize",
		"Add", "Remove", "Modify", "Enhance", "Clean up",
	}
	components = []string{
		"documentation", "code style", "performance", "UI", "functionality",
		"tests", "comments", "error handling", "dependencies", "configuration",
	}
	details = []string{
		"for better readability", "to follow best practices",
		"to address feedback", "based on code review",
		"to fix edge cases", "for maintainability",
		"to reduce complexity", "to improve efficiency",
		"to meet new requirements", "for consistency",
	}
)

// TemplateGenerator composes messages from fixed word tables. It ignores
// the diff entirely.
type TemplateGenerator struct {
	rng *rand.Rand
}

// NewTemplateGenerator creates a TemplateGenerator with the given rng.
func NewTemplateGenerator(rng *rand.Rand) *TemplateGenerator {
	return &TemplateGenerator{rng: rng}
}

// Message returns a "<prefix> <component> <detail>" line.
func (g *TemplateGenerator) Message(_ context.Context, _ string) (string, error) {
	return fmt.Sprintf("%s %s %s",
		prefixes[g.rng.Intn(len(prefixes))],
		components[g.rng.Intn(len(components))],
		details[g.rng.Intn(len(details))],
	), nil
}
