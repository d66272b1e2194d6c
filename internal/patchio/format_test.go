package patchio

import (
	"strings"
	"testing"

	"github.com/odvcencio/wiggle/pkg/token"
)

func TestFormatDiff_IdenticalBuffersWriteNothing(t *testing.T) {
	var out strings.Builder
	buf := []byte("a\nb\nc\n")
	if err := FormatDiff(&out, "f.txt", buf, buf, token.ByLine); err != nil {
		t.Fatalf("FormatDiff: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output for identical buffers, got %q", out.String())
	}
}

func TestFormatDiff_SingleLineChangeProducesHunk(t *testing.T) {
	var out strings.Builder
	before := []byte("a\nb\nc\n")
	after := []byte("a\nB\nc\n")
	if err := FormatDiff(&out, "f.txt", before, after, token.ByLine); err != nil {
		t.Fatalf("FormatDiff: %v", err)
	}

	got := out.String()
	for _, want := range []string{"--- a/f.txt\n", "+++ b/f.txt\n", "@@ ", "-b\n", "+B\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q; got:\n%s", want, got)
		}
	}
}

func TestFormatDiff_InsertionOnly(t *testing.T) {
	var out strings.Builder
	before := []byte("a\nc\n")
	after := []byte("a\nb\nc\n")
	if err := FormatDiff(&out, "f.txt", before, after, token.ByLine); err != nil {
		t.Fatalf("FormatDiff: %v", err)
	}
	if !strings.Contains(out.String(), "+b\n") {
		t.Errorf("expected an insertion line; got:\n%s", out.String())
	}
}
