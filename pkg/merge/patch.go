package merge

import (
	"sort"

	"github.com/odvcencio/wiggle/pkg/lcs"
	"github.com/odvcencio/wiggle/pkg/locate"
	"github.com/odvcencio/wiggle/pkg/token"
)

// MergePatch places a patch's hunks into m via locate.Locate, then merges
// each located hunk independently against its own region of m, b, and a
// before splicing the results together in m order. Gaps in m that no
// placement covers are copied through unchanged.
//
// A single Merge call over the whole files cannot do this: its ma/bb/ca
// cursors only move forward, so once the walk has passed a hunk's
// locality in m it can never reach an earlier-numbered hunk placed
// further on — which is exactly what happens when two hunks' localities
// land in the opposite order from the patch's own hunk order. Splicing
// independent sub-merges sidesteps that, since each hunk's walk never
// has to cross another hunk's territory.
//
// Each sub-merge's own b window starts right after its chunk marker, so
// Merge's marker-skip wiggle detection never fires inside it; a hunk's
// marker carries the line it was cut from, so MergePatch counts a wiggle
// itself whenever a hunk's placed line differs from that claim.
func MergePatch(m, b, a *token.File, chunks int, opts Options) Result {
	res := Result{M: m, B: b, A: a}
	if chunks <= 0 {
		res.Segments = []Segment{{Type: End, MA: m.Len(), BB: b.Len(), CA: a.Len()}}
		return res
	}

	placements := locate.Locate(m, b, chunks)
	bBounds := chunkBounds(b, chunks)
	aBounds := chunkBounds(a, chunks)

	type span struct {
		lo, hi       int
		bBase, aBase int
		sub          Result
	}
	var spans []span
	for _, p := range placements {
		if !p.Placed || p.Chunk >= len(bBounds) || p.Chunk >= len(aBounds) {
			continue
		}
		bb := bBounds[p.Chunk]
		ab := aBounds[p.Chunk]
		lo, hi := locate.SnapToLines(m, p.Alo, p.Ahi)

		if bb.hasStart && lo+1 != bb.startLine {
			res.Wiggles++
		}

		subM := subFile(m, lo, hi)
		subB := subFile(b, bb.lo, bb.hi)
		subA := subFile(a, ab.lo, ab.hi)

		csl1 := rebaseCsl(lcs.DiffPartial(m, lo, hi, b, bb.lo, bb.hi), lo, bb.lo)
		csl1 = append(csl1, lcs.Entry{A: subM.Len(), B: subB.Len(), Len: 0})
		csl2 := rebaseCsl(lcs.DiffPartial(b, bb.lo, bb.hi, a, ab.lo, ab.hi), bb.lo, ab.lo)
		csl2 = append(csl2, lcs.Entry{A: subB.Len(), B: subA.Len(), Len: 0})

		sub := Merge(subM, subB, subA, csl1, csl2, opts)
		spans = append(spans, span{lo: lo, hi: hi, bBase: bb.lo, aBase: ab.lo, sub: sub})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })

	cursor := 0
	for _, s := range spans {
		if s.lo > cursor {
			res.Segments = append(res.Segments, gapSegment(cursor, s.lo))
		}
		for _, seg := range s.sub.Segments {
			if seg.Type == End {
				continue
			}
			res.Segments = append(res.Segments, unrebaseSegment(seg, s.lo, s.bBase, s.aBase))
		}
		res.Conflicts += s.sub.Conflicts
		res.Wiggles += s.sub.Wiggles
		res.Ignored += s.sub.Ignored
		cursor = s.hi
	}
	if cursor < m.Len() {
		res.Segments = append(res.Segments, gapSegment(cursor, m.Len()))
	}
	res.Segments = append(res.Segments, Segment{Type: End, MA: m.Len(), BB: b.Len(), CA: a.Len()})
	return res
}

// gapSegment is the verbatim-copy segment for m text no placement
// covers. HunkHeader forces the isolator to treat it as a hard boundary
// rather than dragging part of it into a conflict's context window: its
// BB/CA carry no matching span in file_b/file_a to absorb.
func gapSegment(lo, hi int) Segment {
	return Segment{Type: Unchanged, MA: lo, AL: hi - lo, HunkHeader: true}
}

// chunkBound is one chunk's element range in a stream built by
// extract.SplitPatch: everything between its own chunk-marker and the
// next one (or the stream's end, for the last chunk). startLine is the
// hunk's claimed starting line, decoded from its marker; hasStart is
// false only if the marker failed to decode, which SplitPatch never
// actually produces but DecodeChunkMarker still reports defensively.
type chunkBound struct {
	lo, hi    int
	startLine int
	hasStart  bool
}

// chunkBounds scans f, a stream carrying one chunk-marker ahead of each
// of its chunks hunks' body, and returns each chunk's body range. f's
// markers always appear in ascending chunk-index order. bf and af
// (extract.SplitPatch's two output streams) share the same marker
// layout, so this delimits a chunk's region in either one identically.
func chunkBounds(f *token.File, chunks int) []chunkBound {
	bounds := make([]chunkBound, chunks)
	cur := -1
	start := 0
	for i := 0; i < f.Len(); i++ {
		if f.Elems[i].IsChunkMarker(f.Buf) {
			if cur >= 0 {
				bounds[cur].hi = i
			}
			cur = int(f.Elems[i].ChunkIndex())
			start = i + 1
			_, startLine, _, ok := token.DecodeChunkMarker(f.Elems[i].Content(f.Buf))
			bounds[cur].lo = start
			bounds[cur].startLine = startLine
			bounds[cur].hasStart = ok
		}
	}
	if cur >= 0 {
		bounds[cur].hi = f.Len()
	}
	return bounds
}

// subFile returns a File over f's [lo, hi) elements, sharing f's
// underlying buffer (element byte offsets are absolute, so no rewrite is
// needed) but re-based to local element index 0.
func subFile(f *token.File, lo, hi int) *token.File {
	return &token.File{Buf: f.Buf, Elems: f.Elems[lo:hi]}
}

// rebaseCsl translates a Csl produced against the full files (as
// lcs.DiffPartial returns) into one expressed relative to a sub-file
// starting at (aBase, bBase).
func rebaseCsl(cs lcs.Csl, aBase, bBase int) lcs.Csl {
	out := make(lcs.Csl, len(cs))
	for i, e := range cs {
		out[i] = lcs.Entry{A: e.A - aBase, B: e.B - bBase, Len: e.Len}
	}
	return out
}

// unrebaseSegment translates a segment produced by a sub-merge back into
// the enclosing files' absolute coordinates.
func unrebaseSegment(s Segment, mBase, bBase, aBase int) Segment {
	s.MA += mBase
	s.BB += bBase
	s.CA += aBase
	return s
}
