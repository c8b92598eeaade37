package repo

import (
	"context"
	"errors"
	"math/rand"
	"os/exec"
	"testing"

	"github.com/pacerdev/pacer/internal/engine/git"
)

func TestValidate_NotARepository(t *testing.T) {
	err := Validate(t.TempDir())
	if !errors.Is(err, ErrNotARepository) {
		t.Fatalf("expected ErrNotARepository, got %v", err)
	}
}

func TestValidate_RealRepository(t *testing.T) {
	dir := t.TempDir()
	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init failed: %v\n%s", err, out)
	}

	if err := Validate(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSelectTracked_SamplesWithoutDuplicates(t *testing.T) {
	mock := &git.MockService{Files: []string{"a.py", "b.py", "c.py"}}
	rng := rand.New(rand.NewSource(1))

	// Two extensions return the same file list; duplicates must collapse.
	files, err := SelectTracked(context.Background(), mock, []string{".py", ".py"}, 2, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	if files[0] == files[1] {
		t.Errorf("sample contains duplicate: %v", files)
	}
}

func TestSelectTracked_Empty(t *testing.T) {
	mock := &git.MockService{}
	files, err := SelectTracked(context.Background(), mock, []string{".py"}, 3, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if files != nil {
		t.Errorf("expected nil for no matches, got %v", files)
	}
}
