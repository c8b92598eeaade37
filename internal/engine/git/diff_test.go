package git

import (
	"errors"
	"strings"
	"testing"
)

const singleHunkDiff = `diff --git a/foo.py b/foo.py
index 1234567..89abcde 100644
--- a/foo.py
+++ b/foo.py
@@ -1,3 +1,4 @@
 a
+added
 b
 c
`

const twoHunkDiff = `diff --git a/foo.py b/foo.py
index 1234567..89abcde 100644
--- a/foo.py
+++ b/foo.py
@@ -1,3 +1,4 @@
 a
+added
 b
 c
@@ -10,2 +11,3 @@
 x
+tail
 y
`

func TestSplitFirstHunk_SingleHunkIdempotent(t *testing.T) {
	first, rest, err := SplitFirstHunk(singleHunkDiff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != singleHunkDiff {
		t.Errorf("single-hunk diff must round-trip:\nwant:\n%s\ngot:\n%s", singleHunkDiff, first)
	}
	if rest != "" {
		t.Errorf("expected empty remainder, got:\n%s", rest)
	}
}

func TestSplitFirstHunk_MissingTrailingNewline(t *testing.T) {
	first, _, err := SplitFirstHunk(strings.TrimSuffix(singleHunkDiff, "\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != singleHunkDiff {
		t.Error("expected a single trailing newline to be appended")
	}
}

func TestSplitFirstHunk_TwoHunks(t *testing.T) {
	first, rest, err := SplitFirstHunk(twoHunkDiff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// First patch: everything up to (excluding) the second hunk header,
	// with one trailing newline.
	wantFirst := `diff --git a/foo.py b/foo.py
index 1234567..89abcde 100644
--- a/foo.py
+++ b/foo.py
@@ -1,3 +1,4 @@
 a
+added
 b
 c
`
	if first != wantFirst {
		t.Errorf("first patch mismatch:\nwant:\n%s\ngot:\n%s", wantFirst, first)
	}
	if CountHunks(first) != 1 {
		t.Errorf("first patch must contain exactly one hunk, got %d", CountHunks(first))
	}

	// Remainder: file headers plus hunk two.
	wantRest := `diff --git a/foo.py b/foo.py
index 1234567..89abcde 100644
--- a/foo.py
+++ b/foo.py
@@ -10,2 +11,3 @@
 x
+tail
 y
`
	if rest != wantRest {
		t.Errorf("remainder mismatch:\nwant:\n%s\ngot:\n%s", wantRest, rest)
	}
}

func TestSplitFirstHunk_Deterministic(t *testing.T) {
	f1, r1, _ := SplitFirstHunk(twoHunkDiff)
	f2, r2, _ := SplitFirstHunk(twoHunkDiff)
	if f1 != f2 || r1 != r2 {
		t.Error("SplitFirstHunk must be deterministic for identical input")
	}
}

func TestSplitFirstHunk_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"whitespace":  "  \n\n",
		"headersOnly": "diff --git a/x b/x\n--- a/x\n+++ b/x\n",
		"notADiff":    "hello world\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := SplitFirstHunk(input)
			if !errors.Is(err, ErrMalformedDiff) {
				t.Errorf("expected ErrMalformedDiff, got %v", err)
			}
		})
	}
}

func TestSplitFirstHunk_HunkHeaderWithSection(t *testing.T) {
	diff := `diff --git a/foo.go b/foo.go
--- a/foo.go
+++ b/foo.go
@@ -5,2 +5,3 @@ func main() {
 a
+b
 c
@@ -20,1 +21,2 @@ func helper() {
 d
+e
`
	first, rest, err := SplitFirstHunk(diff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if CountHunks(first) != 1 || CountHunks(rest) != 1 {
		t.Errorf("expected one hunk each, got first=%d rest=%d", CountHunks(first), CountHunks(rest))
	}
	if !strings.Contains(rest, "func helper()") {
		t.Errorf("remainder lost its hunk header section text:\n%s", rest)
	}
}
