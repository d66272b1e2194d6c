package patchio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/odvcencio/wiggle/pkg/lcs"
	"github.com/odvcencio/wiggle/pkg/token"
)

const diffContextLines = 3

type diffLineType int

const (
	diffEqual diffLineType = iota
	diffDelete
	diffInsert
)

type diffLine struct {
	typ     diffLineType
	content []byte
}

// flattenDiff walks csl = lcs.Diff(before, after) into a flat sequence
// of equal/delete/insert lines, the same shape the teacher's
// diff3.LineDiff produces, so the hunk-windowing logic below can be
// lifted unchanged from cmd/got's line-diff printer.
func flattenDiff(csl lcs.Csl, before, after *token.File) []diffLine {
	var lines []diffLine
	bi, ai := 0, 0
	for _, e := range csl {
		for bi < e.A {
			lines = append(lines, diffLine{diffDelete, before.Span(bi)})
			bi++
		}
		for ai < e.B {
			lines = append(lines, diffLine{diffInsert, after.Span(ai)})
			ai++
		}
		for k := 0; k < e.Len; k++ {
			lines = append(lines, diffLine{diffEqual, before.Span(bi)})
			bi++
			ai++
		}
	}
	return lines
}

type diffHunk struct {
	start, end int
}

func buildHunks(lines []diffLine, context int) []diffHunk {
	var hunks []diffHunk
	for i, dl := range lines {
		if dl.typ == diffEqual {
			continue
		}
		start := i - context
		if start < 0 {
			start = 0
		}
		end := i + context + 1
		if end > len(lines) {
			end = len(lines)
		}
		if len(hunks) == 0 || start > hunks[len(hunks)-1].end {
			hunks = append(hunks, diffHunk{start, end})
			continue
		}
		if end > hunks[len(hunks)-1].end {
			hunks[len(hunks)-1].end = end
		}
	}
	return hunks
}

func (h diffHunk) lineRange(lines []diffLine) (oldStart, oldCount, newStart, newCount int) {
	oldLine, newLine := 1, 1
	for i := 0; i < h.start; i++ {
		switch lines[i].typ {
		case diffEqual:
			oldLine++
			newLine++
		case diffDelete:
			oldLine++
		case diffInsert:
			newLine++
		}
	}
	oldStart, newStart = oldLine, newLine
	for i := h.start; i < h.end; i++ {
		switch lines[i].typ {
		case diffEqual:
			oldCount++
			newCount++
			oldLine++
			newLine++
		case diffDelete:
			oldCount++
			oldLine++
		case diffInsert:
			newCount++
			newLine++
		}
	}
	if oldCount == 0 {
		oldStart--
	}
	if newCount == 0 {
		newStart--
	}
	return oldStart, oldCount, newStart, newCount
}

// FormatDiff writes a unified-style diff of before vs after to out,
// tokenized per mode. It writes nothing if the two buffers are
// identical.
func FormatDiff(out io.Writer, path string, before, after []byte, mode token.Mode) error {
	if bytes.Equal(before, after) {
		return nil
	}

	bf := token.Tokenize(before, mode)
	af := token.Tokenize(after, mode)
	csl := lcs.Diff(bf, af)
	lines := flattenDiff(csl, bf, af)

	fmt.Fprintf(out, "--- a/%s\n", path)
	fmt.Fprintf(out, "+++ b/%s\n", path)

	for _, h := range buildHunks(lines, diffContextLines) {
		oldStart, oldCount, newStart, newCount := h.lineRange(lines)
		fmt.Fprintf(out, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
		for _, dl := range lines[h.start:h.end] {
			switch dl.typ {
			case diffEqual:
				if _, err := fmt.Fprintf(out, " %s", dl.content); err != nil {
					return err
				}
			case diffDelete:
				if _, err := fmt.Fprintf(out, "-%s", dl.content); err != nil {
					return err
				}
			case diffInsert:
				if _, err := fmt.Fprintf(out, "+%s", dl.content); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
