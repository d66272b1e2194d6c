// golden_test.go drives the real production pipeline end to end —
// extract.SplitPatch, merge.MergePatch, merge.IsolateConflicts,
// emit.Print — against each of the scenarios a three-way patch
// applicator has to get right, asserting the literal emitted bytes and
// the conflicts/wiggles/ignored counters a caller reports to its user.
//
// It is package merge_test, not merge, so it can import pkg/emit
// (which itself imports pkg/merge) without an import cycle.
package merge_test

import (
	"bytes"
	"testing"

	"github.com/odvcencio/wiggle/pkg/emit"
	"github.com/odvcencio/wiggle/pkg/extract"
	"github.com/odvcencio/wiggle/pkg/lcs"
	"github.com/odvcencio/wiggle/pkg/merge"
	"github.com/odvcencio/wiggle/pkg/token"
)

// diffOf is merge_test's own copy of merge_test.go's internal diffOf
// helper: package merge_test cannot see that unexported function, and
// these two scenarios are the only callers here.
func diffOf(t *testing.T, a, b *token.File) lcs.Csl {
	t.Helper()
	return lcs.Diff(a, b)
}

// apply runs one patch against one file through the full production
// pipeline and returns the merged output plus the counters emit.Print
// reports.
func apply(t *testing.T, file, patch []byte, opts merge.Options) (string, int, int, int) {
	t.Helper()
	ps, err := extract.SplitPatch(patch)
	if err != nil {
		t.Fatalf("SplitPatch: %v", err)
	}
	mf := token.Tokenize(file, token.ByLine)
	bf := token.Tokenize(ps.Before, token.ByLine)
	af := token.Tokenize(ps.After, token.ByLine)

	res := merge.MergePatch(mf, bf, af, ps.Chunks, opts)
	merge.IsolateConflicts(&res, opts)

	var out bytes.Buffer
	conflicts, wiggles, ignored, err := emit.Print(&out, &res, opts)
	if err != nil {
		t.Fatalf("emit.Print: %v", err)
	}
	return out.String(), conflicts, wiggles, ignored
}

// TestGoldenTrivialApply covers scenario 1: the patch's claimed context
// matches the file exactly, so the change applies with no relocation.
func TestGoldenTrivialApply(t *testing.T) {
	file := []byte("a\nb\nc\n")
	patch := []byte("@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n")

	got, conflicts, wiggles, _ := apply(t, file, patch, merge.Options{})
	want := "a\nB\nc\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if conflicts != 0 {
		t.Errorf("conflicts = %d, want 0", conflicts)
	}
	if wiggles != 0 {
		t.Errorf("wiggles = %d, want 0", wiggles)
	}
}

// TestGoldenWiggleDrift covers scenario 2: the hunk's claimed line
// doesn't match where its context actually lives any more, so BestMatch
// has to relocate it before the change applies.
func TestGoldenWiggleDrift(t *testing.T) {
	file := []byte("x\na\nb\nc\ny\n")
	patch := []byte("@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n")

	got, conflicts, wiggles, _ := apply(t, file, patch, merge.Options{})
	want := "x\na\nB\nc\ny\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if conflicts != 0 {
		t.Errorf("conflicts = %d, want 0", conflicts)
	}
	if wiggles != 1 {
		t.Errorf("wiggles = %d, want 1 (hunk claimed line 1, landed at line 2)", wiggles)
	}
}

// TestGoldenConflict covers scenario 3: the line the patch wants to
// change has independently been changed to something else, so neither
// side's content can be preferred automatically.
func TestGoldenConflict(t *testing.T) {
	file := []byte("a\nQ\nc\n")
	patch := []byte("@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n")

	got, conflicts, _, _ := apply(t, file, patch, merge.Options{})
	if conflicts != 1 {
		t.Fatalf("conflicts = %d, want 1", conflicts)
	}
	want := "<<<<<<<\na\nQ\nc\n|||||||\na\nb\nc\n=======\na\nB\nc\n>>>>>>>\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// TestGoldenAlreadyApplied covers scenario 4: the file already contains
// the patch's intended result, so with ignore_already the hunk is
// counted as a no-op rather than a conflict and the file passes through
// unchanged.
func TestGoldenAlreadyApplied(t *testing.T) {
	file := []byte("a\nB\nc\n")
	patch := []byte("@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n")

	got, conflicts, _, ignored := apply(t, file, patch, merge.Options{IgnoreAlready: true})
	if conflicts != 0 {
		t.Errorf("conflicts = %d, want 0", conflicts)
	}
	if ignored != 1 {
		t.Errorf("ignored = %d, want 1", ignored)
	}
	want := "a\nB\nc\n"
	if got != want {
		t.Errorf("output = %q, want %q (AlreadyApplied must reproduce the file untouched)", got, want)
	}
}

// TestGoldenTwoHunksReordered covers scenario 5: two hunks whose
// localities appear in the opposite order from the patch's own hunk
// order still both locate and apply, since MergePatch merges each
// placement independently instead of walking one combined Csl.
func TestGoldenTwoHunksReordered(t *testing.T) {
	file := []byte("func two() {\n\treturn 2\n}\n\nfunc one() {\n\treturn 1\n}\n")
	patch := []byte("@@ -1,2 +1,2 @@\n func one() {\n-\treturn 1\n+\treturn 11\n" +
		"@@ -10,2 +10,2 @@\n func two() {\n-\treturn 2\n+\treturn 22\n")

	got, conflicts, _, _ := apply(t, file, patch, merge.Options{})
	want := "func two() {\n\treturn 22\n}\n\nfunc one() {\n\treturn 11\n}\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if conflicts != 0 {
		t.Errorf("conflicts = %d, want 0", conflicts)
	}
}

// TestGoldenWordModeNarrowsConflict covers scenario 6: a concurrent edit
// and the patch's own edit both change the same word of a line, while the
// line's other word is left alone by both. Word-granularity tokenization
// and merging narrows the conflict to the one word both sides actually
// touched; line-granularity can only
// report the whole line as conflicting, since it has no unit smaller
// than a line to resolve the rest of the line against.
func TestGoldenWordModeNarrowsConflict(t *testing.T) {
	// Patch: "world" -> "there". Concurrent edit in m: "world" -> "globe".
	// "hello" is untouched by either side.
	m := []byte("hello globe\n")
	b := []byte("hello world\n")
	a := []byte("hello there\n")

	t.Run("words", func(t *testing.T) {
		mf := token.Tokenize(m, token.ByWord)
		bf := token.Tokenize(b, token.ByWord)
		af := token.Tokenize(a, token.ByWord)

		res := merge.Merge(mf, bf, af, diffOf(t, mf, bf), diffOf(t, bf, af), merge.Options{Words: true})
		if res.Conflicts != 1 {
			t.Fatalf("Conflicts = %d, want 1", res.Conflicts)
		}
		merge.IsolateConflicts(&res, merge.Options{Words: true})

		var out bytes.Buffer
		conflicts, _, _, err := emit.Print(&out, &res, merge.Options{Words: true})
		if err != nil {
			t.Fatalf("emit.Print: %v", err)
		}
		if conflicts != 1 {
			t.Fatalf("Print conflicts = %d, want 1", conflicts)
		}
		want := "hello <<<---globe|||world===there--->>>\n"
		if got := out.String(); got != want {
			t.Errorf("word-mode output = %q, want %q", got, want)
		}
	})

	t.Run("lines", func(t *testing.T) {
		mf := token.Tokenize(m, token.ByLine)
		bf := token.Tokenize(b, token.ByLine)
		af := token.Tokenize(a, token.ByLine)

		res := merge.Merge(mf, bf, af, diffOf(t, mf, bf), diffOf(t, bf, af), merge.Options{})
		if res.Conflicts != 1 {
			t.Fatalf("Conflicts = %d, want 1", res.Conflicts)
		}
		merge.IsolateConflicts(&res, merge.Options{})

		var out bytes.Buffer
		conflicts, _, _, err := emit.Print(&out, &res, merge.Options{})
		if err != nil {
			t.Fatalf("emit.Print: %v", err)
		}
		if conflicts != 1 {
			t.Fatalf("Print conflicts = %d, want 1", conflicts)
		}
		want := "<<<<<<<\nhello globe\n|||||||\nhello world\n=======\nhello there\n>>>>>>>\n"
		if got := out.String(); got != want {
			t.Errorf("line-mode output = %q, want %q (whole line must conflict)", got, want)
		}
	})
}
