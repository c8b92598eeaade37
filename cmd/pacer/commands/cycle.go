package commands

import (
	"context"
	"math/rand"
	"time"

	"github.com/pacerdev/pacer/internal/engine/commit"
	"github.com/pacerdev/pacer/internal/engine/config"
	"github.com/pacerdev/pacer/internal/engine/git"
	"github.com/pacerdev/pacer/internal/engine/message"
	"github.com/pacerdev/pacer/internal/engine/mutate"
	"github.com/pacerdev/pacer/internal/engine/repo"
)

// newCycle wires real infrastructure and returns a ready Cycle.
// This is a composition root — it instantiates production dependencies.
func newCycle(cfg *config.Config) *Cycle {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	template := message.NewTemplateGenerator(rng)
	var generator message.Generator = template
	if cfg.Message.Provider == config.ProviderGemini && !cfg.GeminiAPIKey.IsEmpty() {
		generator = message.NewGeminiGenerator(string(cfg.GeminiAPIKey), cfg.Message.Model, message.DefaultClientFactory)
	}

	return &Cycle{
		NewGit: func(repoPath string) git.Service {
			return git.NewExecService(repoPath)
		},
		NewCommitter: func(repoPath string, svc git.Service) HunkCommitter {
			return commit.NewOrchestrator(repoPath, svc)
		},
		Validate: repo.Validate,
		Mutator:  mutate.NewMutator(rng),
		SelectFiles: func(ctx context.Context, svc git.Service, extensions []string, n int) ([]string, error) {
			return repo.SelectTracked(ctx, svc, extensions, n, rng)
		},
		Messages: generator,
		Fallback: template,
	}
}

// cycleOpts derives cycle options from the configuration.
func cycleOpts(cfg *config.Config, synthesize bool) CycleOpts {
	return CycleOpts{
		Synthesize: synthesize,
		MinLines:   cfg.LineChanges.MinLines,
		MaxLines:   cfg.LineChanges.MaxLines,
		Extensions: cfg.FileExtensions,
	}
}
