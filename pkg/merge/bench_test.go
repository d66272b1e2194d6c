package merge

import (
	"fmt"
	"strings"
	"testing"

	"github.com/odvcencio/wiggle/pkg/token"
)

func generateLines(n int) []byte {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "line-%04d\n", i)
	}
	return []byte(b.String())
}

func modifyLine(src []byte, idx int, replacement string) []byte {
	lines := strings.Split(string(src), "\n")
	if idx < len(lines) {
		lines[idx] = replacement
	}
	return []byte(strings.Join(lines, "\n"))
}

// BenchmarkMergeSmall merges 50-line files with non-overlapping single
// line changes on each side.
func BenchmarkMergeSmall(b *testing.B) {
	const n = 50
	base := generateLines(n)
	ours := modifyLine(base, 5, "OURS-CHANGED-LINE")
	theirs := modifyLine(base, 45, "THEIRS-CHANGED-LINE")

	mf := token.Tokenize(base, token.ByLine)
	bf := token.Tokenize(ours, token.ByLine)
	af := token.Tokenize(theirs, token.ByLine)
	csl1 := diffOf(base, ours)
	csl2 := diffOf(ours, theirs)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := Merge(mf, bf, af, csl1, csl2, Options{})
		if res.Conflicts != 0 {
			b.Fatal("unexpected conflict in non-overlapping merge")
		}
	}
}

// BenchmarkMergeLarge merges 2000-line files the same way, at a scale
// representative of a real source file.
func BenchmarkMergeLarge(b *testing.B) {
	const n = 2000
	base := generateLines(n)
	ours := modifyLine(base, 50, "OURS-CHANGED-LINE")
	theirs := modifyLine(base, 1950, "THEIRS-CHANGED-LINE")

	mf := token.Tokenize(base, token.ByLine)
	bf := token.Tokenize(ours, token.ByLine)
	af := token.Tokenize(theirs, token.ByLine)
	csl1 := diffOf(base, ours)
	csl2 := diffOf(ours, theirs)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := Merge(mf, bf, af, csl1, csl2, Options{})
		if res.Conflicts != 0 {
			b.Fatal("unexpected conflict in non-overlapping merge")
		}
	}
}
