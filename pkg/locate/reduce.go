// Package locate implements BestMatch, the placement of a multi-hunk
// patch into its best-matching locality inside a file that has drifted
// since the patch was produced.
package locate

import "github.com/odvcencio/wiggle/pkg/token"

// reduced is a file's element stream with uninteresting elements dropped,
// plus the map back to the original stream's indices.
type reduced struct {
	file *token.File
	orig []int // reduced index -> original index
}

func (r reduced) len() int { return len(r.orig) }

// reduce keeps only elements that end a line, open a chunk marker, or
// begin with an alphanumeric/underscore byte — the elements BestMatch
// treats as "interesting" for scoring a locality match. Everything else
// (lone punctuation, bare whitespace runs) is dropped from the matcher's
// view but still accounted for when remap extends a placement's bounds.
func reduce(f *token.File) reduced {
	r := reduced{file: f}
	for i := 0; i < f.Len(); i++ {
		e := f.Elems[i]
		if e.IsChunkMarker(f.Buf) || e.IsLineEnder(f.Buf) || startsAlnumOrUnderscore(f, i) {
			r.orig = append(r.orig, i)
		}
	}
	return r
}

func startsAlnumOrUnderscore(f *token.File, i int) bool {
	c := f.Content(i)
	if len(c) == 0 {
		return false
	}
	b := c[0]
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

// expandBounds maps a reduced-index range [rlo, rhi) back to the original
// stream's index range, absorbing adjacent dropped elements: the lower
// bound snaps back to just past the previous kept element (or 0), and the
// upper bound snaps forward to the next kept element (or the stream's
// length), so no "uninteresting" element is left stranded between a
// chunk's placement and its neighbour.
func expandBounds(r reduced, rlo, rhi int) (lo, hi int) {
	switch {
	case rlo <= 0:
		lo = 0
	default:
		lo = r.orig[rlo-1] + 1
	}
	switch {
	case rhi >= r.len():
		hi = r.file.Len()
	default:
		hi = r.orig[rhi]
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
