// Package watch observes repository working trees and fires a commit
// trigger when files settle after a burst of edits.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pacerdev/pacer/internal/platform/logger"
)

// DefaultDebounce is how long a repository must stay quiet after the
// last file event before the trigger fires.
const DefaultDebounce = 2 * time.Second

// Service watches one or more repositories and invokes Trigger for a
// repository once its file events go quiet.
type Service struct {
	// Trigger runs one commit cycle for the repository. Errors are
	// logged, never fatal.
	Trigger  func(ctx context.Context, repoPath string) error
	Debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewService creates a Service with the default debounce interval.
func NewService(trigger func(ctx context.Context, repoPath string) error) *Service {
	return &Service{
		Trigger:  trigger,
		Debounce: DefaultDebounce,
		timers:   make(map[string]*time.Timer),
	}
}

// Run watches the given repositories until ctx is cancelled. Each file
// event restarts that repository's debounce timer; when a timer expires
// the trigger fires once for the whole repository.
func (s *Service) Run(ctx context.Context, repoPaths []string) error {
	log := logger.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	roots := make([]string, 0, len(repoPaths))
	for _, repoPath := range repoPaths {
		abs, err := filepath.Abs(repoPath)
		if err != nil {
			return err
		}
		if err := addRecursive(watcher, abs); err != nil {
			return err
		}
		roots = append(roots, abs)
		log.Info("watching repository", "path", abs)
	}

	defer s.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isIgnored(ev.Name) {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, ev.Name)
				}
			}
			if root := ownerOf(roots, ev.Name); root != "" {
				log.Debug("file event", "repo", root, "file", ev.Name, "op", ev.Op.String())
				s.schedule(ctx, root)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)
		}
	}
}

// schedule restarts the repository's debounce timer.
func (s *Service) schedule(ctx context.Context, repoPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[repoPath]; ok {
		t.Stop()
	}
	delay := s.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	s.timers[repoPath] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, repoPath)
		s.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		log := logger.FromContext(ctx)
		log.Info("repository settled, running cycle", "repo", repoPath)
		if err := s.Trigger(ctx, repoPath); err != nil {
			log.Error("commit cycle failed", "repo", repoPath, "error", err)
		}
	})
}

func (s *Service) stopTimers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for path, t := range s.timers {
		t.Stop()
		delete(s.timers, path)
	}
}

// ownerOf returns the watched root containing path, or "".
func ownerOf(roots []string, path string) string {
	for _, root := range roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return root
		}
	}
	return ""
}

// addRecursive watches root and every subdirectory, skipping .git.
func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return nil
		}
		return nil
	})
}

// isIgnored filters events from VCS metadata and editor backup files.
func isIgnored(path string) bool {
	sep := string(filepath.Separator)
	if strings.Contains(path, sep+".git"+sep) {
		return true
	}
	base := filepath.Base(path)
	if base == ".git" {
		return true
	}
	if strings.HasSuffix(base, ".bak") || strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, "~") {
		return true
	}
	return false
}
