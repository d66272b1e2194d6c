package merge

import (
	"bytes"

	"github.com/odvcencio/wiggle/pkg/lcs"
	"github.com/odvcencio/wiggle/pkg/token"
)

// Options configures a merge walk.
type Options struct {
	Words         bool // word-granularity conflict narrowing (read by the isolator/emitter)
	IgnoreAlready bool // re-classify no-op conflicts (patch already applied) as AlreadyApplied
	ShowWiggles   bool // treat wiggles as conflicts for isolation purposes
}

// Result is a completed three-way merge: the classified segment list plus
// the counters the CLI reports to the user.
type Result struct {
	M, B, A    *token.File
	Csl1, Csl2 lcs.Csl
	Segments   []Segment
	Conflicts  int
	Wiggles    int
	Ignored    int
}

// Merge walks csl1 = LCS(m, b) and csl2 = LCS(b, a) in lockstep: bb is
// the shared pivot both lists reference (csl1's B side and csl2's A
// side), so each step's length in b is bounded by whichever list's next
// boundary comes first, and the m/a lengths are read off in lockstep
// while a match is active on that side, or independently while it is
// not.
func Merge(m, b, a *token.File, csl1, csl2 lcs.Csl, opts Options) Result {
	res := Result{M: m, B: b, A: a, Csl1: csl1, Csl2: csl2}

	ma, bb, ca := 0, 0, 0
	c1, c2 := 0, 0
	sawNonHeaderExtraneous := false

	for {
		advanceCsl(csl1, &c1, ma, bb)
		advanceCsl(csl2, &c2, bb, ca)

		e1, e2 := csl1[c1], csl2[c2]
		atEnd := e1.Len == 0 && e2.Len == 0 &&
			ma >= m.Len() && bb >= b.Len() && ca >= a.Len()
		if atEnd {
			res.Segments = append(res.Segments, Segment{Type: End, MA: ma, BB: bb, CA: ca})
			break
		}

		if bb < b.Len() && b.Elems[bb].IsChunkMarker(b.Buf) {
			seg := Segment{Type: Extraneous, MA: ma, BB: bb, CA: ca, BL: 1, HunkHeader: true}
			if sawNonHeaderExtraneous {
				res.Wiggles++
				sawNonHeaderExtraneous = false
			}
			res.Segments = append(res.Segments, seg)
			bb++
			continue
		}

		match1 := ma >= e1.A && bb >= e1.B
		match2 := bb >= e2.A && ca >= e2.B

		nextA1 := e1.A
		nextB1 := e1.B
		if match1 {
			nextA1 = e1.A + e1.Len
			nextB1 = e1.B + e1.Len
		}
		nextB2 := e2.A
		nextC2 := e2.B
		if match2 {
			nextB2 = e2.A + e2.Len
			nextC2 = e2.B + e2.Len
		}

		bBoundary := nextB1
		if nextB2 < bBoundary {
			bBoundary = nextB2
		}
		if bBoundary <= bb {
			bBoundary = bb + 1 // degenerate boundary (e.g. a zero-width sentinel gap) still advances
		}

		bl := bBoundary - bb
		al := bl
		if !match1 {
			al = nextA1 - ma
		}
		cl := bl
		if !match2 {
			cl = nextC2 - ca
		}
		if al < 0 {
			al = 0
		}
		if cl < 0 {
			cl = 0
		}

		seg := Segment{MA: ma, BB: bb, CA: ca, AL: al, BL: bl, CL: cl}
		switch {
		case match1 && match2:
			seg.Type = Unchanged
		case match1 && !match2:
			seg.Type = Changed
		case !match1 && match2:
			if al > 0 {
				seg.Type = Unmatched
			} else {
				seg.Type = Extraneous
			}
		default:
			seg.Type = Conflict
			if opts.IgnoreAlready && al == cl &&
				bytes.Equal(flatten(m, ma, al), flatten(a, ca, cl)) {
				seg.Type = AlreadyApplied
				res.Ignored++
			} else {
				res.Conflicts++
			}
		}

		if seg.Type == Extraneous && seg.BL > 0 {
			sawNonHeaderExtraneous = true
		}

		res.Segments = append(res.Segments, seg)
		ma += al
		bb += bl
		ca += cl
	}

	return res
}

// advanceCsl skips entries already fully consumed by the cursors, so the
// caller always sees the first entry it has not yet fully passed.
func advanceCsl(cs lcs.Csl, c *int, x, y int) {
	for *c < len(cs)-1 && x >= cs[*c].A+cs[*c].Len && y >= cs[*c].B+cs[*c].Len {
		*c++
	}
}

// flatten concatenates the byte spans of n elements starting at i.
func flatten(f *token.File, i, n int) []byte {
	var buf []byte
	for k := 0; k < n; k++ {
		buf = append(buf, f.Span(i+k)...)
	}
	return buf
}
