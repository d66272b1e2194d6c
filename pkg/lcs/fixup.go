package lcs

import "github.com/odvcencio/wiggle/pkg/token"

// fixup slides the boundaries between adjacent matching runs across
// one-sided gaps (a pure deletion or a pure insertion) when doing so
// does not change how many elements end up matched overall, preferring
// the placement that ends the earlier run on a line boundary. The O(ND)
// search returns *a* shortest edit script; when the region just inside
// a gap repeats an element found at the gap's far edge, several
// placements of the gap are equally short, and this picks the one a
// line-oriented diff reader expects the edit to hug.
func fixup(a, b *token.File, entries []Entry) []Entry {
	if len(entries) < 2 {
		return entries
	}
	out := append(Csl(nil), entries...)
	for i := 0; i+1 < len(out); i++ {
		prev, next := &out[i], &out[i+1]
		aGap := next.A - (prev.A + prev.Len)
		bGap := next.B - (prev.B + prev.Len)
		switch {
		case aGap > 0 && bGap == 0:
			slideA(a, prev, next)
		case bGap > 0 && aGap == 0:
			slideB(b, prev, next)
		}
	}

	filtered := out[:0]
	for _, e := range out {
		if e.Len > 0 {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// slideA slides a pure-A gap between prev and next, preferring to land
// prev's last matched element on a line ending.
func slideA(a *token.File, prev, next *Entry) {
	for next.Len > 0 && !lineEnderOrEmpty(a, prev) &&
		token.Equal(a.Buf, a.Elems[prev.A+prev.Len], a.Buf, a.Elems[next.A]) {
		prev.Len++
		next.A++
		next.B++
		next.Len--
	}
	if lineEnderOrEmpty(a, prev) {
		return
	}
	for prev.Len > 0 &&
		token.Equal(a.Buf, a.Elems[prev.A+prev.Len-1], a.Buf, a.Elems[next.A-1]) {
		prev.Len--
		next.A--
		next.B--
		next.Len++
		if lineEnderOrEmpty(a, prev) {
			return
		}
	}
}

// slideB is slideA's mirror for a pure-B gap (an insertion).
func slideB(b *token.File, prev, next *Entry) {
	for next.Len > 0 && !lineEnderOrEmptyB(b, prev) &&
		token.Equal(b.Buf, b.Elems[prev.B+prev.Len], b.Buf, b.Elems[next.B]) {
		prev.Len++
		next.A++
		next.B++
		next.Len--
	}
	if lineEnderOrEmptyB(b, prev) {
		return
	}
	for prev.Len > 0 &&
		token.Equal(b.Buf, b.Elems[prev.B+prev.Len-1], b.Buf, b.Elems[next.B-1]) {
		prev.Len--
		next.A--
		next.B--
		next.Len++
		if lineEnderOrEmptyB(b, prev) {
			return
		}
	}
}

func lineEnderOrEmpty(a *token.File, prev *Entry) bool {
	if prev.Len == 0 {
		return true
	}
	return a.Elems[prev.A+prev.Len-1].IsLineEnder(a.Buf)
}

func lineEnderOrEmptyB(b *token.File, prev *Entry) bool {
	if prev.Len == 0 {
		return true
	}
	return b.Elems[prev.B+prev.Len-1].IsLineEnder(b.Buf)
}
