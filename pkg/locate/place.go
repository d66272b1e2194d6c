package locate

import (
	"sort"

	"github.com/odvcencio/wiggle/pkg/lcs"
	"github.com/odvcencio/wiggle/pkg/token"
)

// placement is one hunk's located region in both files, in original
// (non-reduced) indices.
type placement struct {
	chunk              int
	alo, ahi, blo, bhi int
	val                int
	placed             bool
}

// PlacePatch runs BestMatch: it places each of the patch's chunks hunks
// into the locality of a where it best matches b's corresponding hunk
// body, then stitches the per-hunk diffs into one ordered Csl. b is the
// extracted "before" stream, carrying a chunk-marker ahead of each hunk's
// body; chunks is the hunk count extract.SplitPatch reported.
//
// Unlike lcs.Diff, PlacePatch does not require every element of a or b to
// participate: text in a between two hunks' localities, and text in b
// outside any hunk, is left out of the result entirely — it is the
// "unrelated drift" the rationale in the specification describes.
func PlacePatch(a, b *token.File, chunks int) lcs.Csl {
	if chunks <= 0 {
		return lcs.Csl{{A: a.Len(), B: b.Len(), Len: 0}}
	}

	placements := locatePlacements(a, b, chunks)

	var out lcs.Csl
	for _, p := range placements {
		if !p.placed {
			continue
		}
		lo, hi := snapToLines(a, p.alo, p.ahi)
		sub := lcs.DiffPartial(a, lo, hi, b, p.blo, p.bhi)
		out = append(out, sub...)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].A < out[j].A })
	out = append(out, lcs.Entry{A: a.Len(), B: b.Len(), Len: 0})
	return out
}

// locatePlacements runs BestMatch's scoring and ordering-enforcement
// steps, returning each chunk's located region in original (non-reduced)
// indices. It is the shared core behind PlacePatch (which stitches the
// placements into one Csl for a single global merge) and Locate (which
// hands the placements to MergePatch for independent per-hunk merging).
func locatePlacements(a, b *token.File, chunks int) []placement {
	ra := reduce(a)
	rb := reduce(b)

	best := scoreMatrix(ra, rb, chunks)
	placements := make([]placement, chunks)
	for i, bst := range best {
		if !bst.found {
			continue
		}
		alo, ahi := expandBounds(ra, bst.xlo, bst.xhi)
		blo, bhi := expandBounds(rb, bst.ylo, bst.yhi)
		placements[i] = placement{chunk: i, alo: alo, ahi: ahi, blo: blo, bhi: bhi, val: bst.val, placed: true}
	}

	enforceOrdering(placements)
	return placements
}

// Placement is one hunk's located region in a, after ordering
// enforcement has resolved any genuine overlaps with its neighbours.
// Placed is false for a hunk whose locality lost out to a higher-scoring
// overlapping neighbour.
type Placement struct {
	Chunk              int
	Alo, Ahi, Blo, Bhi int
	Placed             bool
}

// Locate runs BestMatch and returns each chunk's located region without
// assembling a Csl. Unlike PlacePatch's output, placements need not be
// monotonic in b: a hunk whose locality in a falls out of the patch's
// own hunk order is still reported, so a caller that merges each
// placement independently (see merge.MergePatch) can place it correctly.
func Locate(a, b *token.File, chunks int) []Placement {
	if chunks <= 0 {
		return nil
	}
	internal := locatePlacements(a, b, chunks)
	out := make([]Placement, len(internal))
	for i, p := range internal {
		out[i] = Placement{Chunk: p.chunk, Alo: p.alo, Ahi: p.ahi, Blo: p.blo, Bhi: p.bhi, Placed: p.placed}
	}
	return out
}

// SnapToLines widens [lo, hi) in a to whole-line boundaries, the same way
// PlacePatch does internally before diffing a placed hunk's region. It is
// exported so merge.MergePatch can apply the same snapping to the
// locations Locate reports.
func SnapToLines(a *token.File, lo, hi int) (int, int) {
	return snapToLines(a, lo, hi)
}

// enforceOrdering resolves overlaps between placements that BestMatch's
// independent per-chunk scoring can produce: when two placed chunks'
// a-ranges genuinely intersect, the lower-scoring one is withdrawn (its
// hunk falls through to the merger as an unplaced conflict) so that the
// surviving placements' a-ranges are disjoint. Two placements whose
// ranges are merely out of chunk order but otherwise disjoint are left
// alone — PlacePatch's final sort by A puts them back in file order.
// Placements are compared pairwise by range rather than by adjacent
// array index, since placements is indexed by chunk number, not by
// position in a. This is a single greedy pass rather than the
// specification's full recursive re-solve of the displaced neighbours'
// subranges — see DESIGN.md.
func enforceOrdering(placements []placement) {
	for {
		ci, cj := -1, -1
		for i := 0; i < len(placements); i++ {
			if !placements[i].placed {
				continue
			}
			for j := i + 1; j < len(placements); j++ {
				if !placements[j].placed {
					continue
				}
				if rangesOverlap(placements[i], placements[j]) {
					ci, cj = i, j
					break
				}
			}
			if ci >= 0 {
				break
			}
		}
		if ci < 0 {
			return
		}
		if placements[ci].val >= placements[cj].val {
			placements[cj].placed = false
		} else {
			placements[ci].placed = false
		}
	}
}

// rangesOverlap reports whether two placements' a-ranges actually
// intersect, as opposed to merely appearing in a different order than
// their chunk indices.
func rangesOverlap(a, b placement) bool {
	return a.alo < b.ahi && b.alo < a.ahi
}

// snapToLines extends [lo, hi) outward to the nearest line boundaries in
// a, so a placed hunk's diff is computed over whole lines even when the
// matrix walk's best-scoring run started or ended mid-line.
func snapToLines(a *token.File, lo, hi int) (int, int) {
	for lo > 0 && !a.Elems[lo-1].IsLineEnder(a.Buf) {
		lo--
	}
	for hi < a.Len() && !a.Elems[hi-1].IsLineEnder(a.Buf) {
		hi++
	}
	return lo, hi
}
