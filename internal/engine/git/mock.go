package git

import (
	"context"
	"strings"
)

// MockService is a test double for Service. It records every call in order
// so tests can assert which operations ran: most orchestrator properties
// are statements about which mutations did or did not happen.
type MockService struct {
	Calls []string

	StatusEntries []StatusEntry
	StatusErr     error
	DiffOut       string
	DiffErr       error
	// ApplyIndexFn decides the result per patch; nil means success.
	ApplyIndexFn func(patch string) error
	ApplyBothErr error
	RestoreErr   error
	AddErr       error
	PushErr      error
	PopErr       error
	ListLines    []string
	ListErr      error
	CommitErr    error
	Files        []string
	FilesErr     error
}

func (m *MockService) record(call string) {
	m.Calls = append(m.Calls, call)
}

// MutationCalls returns the recorded calls that mutate repository state.
func (m *MockService) MutationCalls() []string {
	var muts []string
	for _, c := range m.Calls {
		switch {
		case strings.HasPrefix(c, "status"),
			strings.HasPrefix(c, "diff-staged"),
			strings.HasPrefix(c, "stash-list"),
			strings.HasPrefix(c, "ls-files"):
			// read-only
		default:
			muts = append(muts, c)
		}
	}
	return muts
}

func (m *MockService) Status(_ context.Context) ([]StatusEntry, error) {
	m.record("status")
	return m.StatusEntries, m.StatusErr
}

func (m *MockService) DiffStaged(_ context.Context, path string) (string, error) {
	m.record("diff-staged " + path)
	return m.DiffOut, m.DiffErr
}

func (m *MockService) ApplyIndex(_ context.Context, patch string) error {
	m.record("apply-index")
	if m.ApplyIndexFn != nil {
		return m.ApplyIndexFn(patch)
	}
	return nil
}

func (m *MockService) ApplyIndexAndWorktree(_ context.Context, _ string) error {
	m.record("apply-index-worktree")
	return m.ApplyBothErr
}

func (m *MockService) RestoreStaged(_ context.Context, path string) error {
	m.record("restore-staged " + path)
	return m.RestoreErr
}

func (m *MockService) Add(_ context.Context, path string) error {
	m.record("add " + path)
	return m.AddErr
}

func (m *MockService) StashPushKeepIndex(_ context.Context, _ string) error {
	m.record("stash-push")
	return m.PushErr
}

func (m *MockService) StashPop(_ context.Context, _ string) error {
	m.record("stash-pop")
	return m.PopErr
}

func (m *MockService) StashList(_ context.Context) ([]string, error) {
	m.record("stash-list")
	return m.ListLines, m.ListErr
}

func (m *MockService) Commit(_ context.Context, path, _ string) error {
	m.record("commit " + path)
	return m.CommitErr
}

func (m *MockService) LsFiles(_ context.Context, _ ...string) ([]string, error) {
	m.record("ls-files")
	return m.Files, m.FilesErr
}
