package commit

import (
	"path/filepath"
	"sync"
)

// The index and stash are repository-wide mutable state: no orchestrator
// invariant holds if two runs interleave on the same repository. Runs on
// different repositories share nothing and may proceed concurrently.
var locks sync.Map // cleaned repository path -> *sync.Mutex

func lockFor(repoPath string) *sync.Mutex {
	mu, _ := locks.LoadOrStore(filepath.Clean(repoPath), &sync.Mutex{})
	return mu.(*sync.Mutex)
}
