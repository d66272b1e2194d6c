package extract

import (
	"bytes"
	"testing"

	"github.com/odvcencio/wiggle/pkg/token"
)

func TestSplitPatch_SingleUnifiedHunk(t *testing.T) {
	patch := []byte("@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n")
	ps, err := SplitPatch(patch)
	if err != nil {
		t.Fatalf("SplitPatch: %v", err)
	}
	if ps.Chunks != 1 {
		t.Fatalf("Chunks = %d, want 1", ps.Chunks)
	}

	bf := token.Tokenize(ps.Before, token.ByLine)
	af := token.Tokenize(ps.After, token.ByLine)

	if bf.Len() != 4 { // marker + a + b + c
		t.Fatalf("before stream has %d elements, want 4", bf.Len())
	}
	if !bf.Elems[0].IsChunkMarker(bf.Buf) {
		t.Fatal("before stream does not start with a chunk marker")
	}
	if string(bf.Content(1)) != "a\n" || string(bf.Content(2)) != "b\n" || string(bf.Content(3)) != "c\n" {
		t.Errorf("before stream content wrong: %q %q %q", bf.Content(1), bf.Content(2), bf.Content(3))
	}
	if string(af.Content(1)) != "a\n" || string(af.Content(2)) != "B\n" || string(af.Content(3)) != "c\n" {
		t.Errorf("after stream content wrong: %q %q %q", af.Content(1), af.Content(2), af.Content(3))
	}
}

func TestSplitPatch_TwoHunks(t *testing.T) {
	patch := []byte("@@ -1,2 +1,2 @@\n-a\n+A\n b\n@@ -10,2 +10,2 @@\n-x\n+X\n y\n")
	ps, err := SplitPatch(patch)
	if err != nil {
		t.Fatalf("SplitPatch: %v", err)
	}
	if ps.Chunks != 2 {
		t.Fatalf("Chunks = %d, want 2", ps.Chunks)
	}
	bf := token.Tokenize(ps.Before, token.ByLine)
	markers := 0
	for i := 0; i < bf.Len(); i++ {
		if bf.Elems[i].IsChunkMarker(bf.Buf) {
			markers++
		}
	}
	if markers != 2 {
		t.Fatalf("found %d chunk markers in before stream, want 2", markers)
	}
}

func TestSplitPatch_MalformedHeaderReturnsParseError(t *testing.T) {
	_, err := SplitPatch([]byte("@@ -nope @@\n a\n"))
	if err == nil {
		t.Fatal("expected error for malformed hunk header")
	}
	var pe *ParseError
	if !asParseError(err, &pe) {
		t.Fatalf("error is not *ParseError: %v", err)
	}
}

func asParseError(err error, target **ParseError) bool {
	if pe, ok := err.(*ParseError); ok {
		*target = pe
		return true
	}
	return false
}

func TestSplitMerge_ThreeWay(t *testing.T) {
	input := []byte("a\n<<<<<<< ours\nB\n||||||| base\nb\n=======\nQ\n>>>>>>> theirs\nc\n")
	ok, ms, err := SplitMerge(input)
	if err != nil {
		t.Fatalf("SplitMerge: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true")
	}
	if string(ms.M) != "a\nb\nc\n" {
		t.Errorf("M = %q", ms.M)
	}
	if string(ms.B) != "a\nB\nc\n" {
		t.Errorf("B = %q", ms.B)
	}
	if string(ms.A) != "a\nQ\nc\n" {
		t.Errorf("A = %q", ms.A)
	}
}

func TestSplitMerge_TwoWay(t *testing.T) {
	input := []byte("a\n<<<<<<< ours\nB\n=======\nQ\n>>>>>>> theirs\nc\n")
	ok, ms, err := SplitMerge(input)
	if err != nil {
		t.Fatalf("SplitMerge: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true")
	}
	if string(ms.B) != "a\nB\nc\n" {
		t.Errorf("B = %q", ms.B)
	}
	if string(ms.A) != "a\nQ\nc\n" {
		t.Errorf("A = %q", ms.A)
	}
}

func TestSplitMerge_NoConflictMarkers(t *testing.T) {
	input := []byte("plain text\nno markers\n")
	ok, ms, err := SplitMerge(input)
	if err != nil {
		t.Fatalf("SplitMerge: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for text with no conflict markers")
	}
	if !bytes.Equal(ms.M, input) || !bytes.Equal(ms.B, input) || !bytes.Equal(ms.A, input) {
		t.Error("all three streams should equal the input verbatim")
	}
}

func TestSplitMerge_UnterminatedConflictIsError(t *testing.T) {
	_, _, err := SplitMerge([]byte("<<<<<<< ours\nB\n"))
	if err == nil {
		t.Fatal("expected error for unterminated conflict")
	}
}
