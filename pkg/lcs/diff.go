package lcs

import "github.com/odvcencio/wiggle/pkg/token"

// Diff computes the LCS of a and b, returning a sentinel-terminated Csl.
func Diff(a, b *token.File) Csl {
	var entries []Entry
	diffRange(a, 0, a.Len(), b, 0, b.Len(), &entries)
	entries = fixup(a, b, entries)
	entries = append(entries, Entry{A: a.Len(), B: b.Len(), Len: 0})
	return entries
}

// DiffPartial computes the LCS restricted to a[alo:ahi] and b[blo:bhi],
// with entry indices expressed in the full files' coordinates. The
// result is NOT sentinel-terminated; it is meant for composing into a
// larger Csl (as pkg/locate does when assembling a patch placement).
func DiffPartial(a *token.File, alo, ahi int, b *token.File, blo, bhi int) Csl {
	var entries []Entry
	diffRange(a, alo, ahi, b, blo, bhi, &entries)
	return fixup(a, b, entries)
}

// snake is a matching run discovered mid-search, in LOCAL coordinates
// relative to the enclosing diffRange call's (alo, blo).
type snake struct {
	x0, y0, x1, y1 int
}

// diffRange is the recursive O(ND) linear-space search. It appends
// matching runs for a[alo:ahi] vs b[blo:bhi], in order, to *out.
func diffRange(a *token.File, alo, ahi int, b *token.File, blo, bhi int, out *[]Entry) {
	n := ahi - alo
	m := bhi - blo
	if n <= 0 || m <= 0 {
		return
	}

	mid := (n + m) / 2 // target local anti-diagonal x+y
	maxD := n + m
	size := 2*maxD + 3
	offset := maxD + 1

	x := make([]int, size)
	pathMD := make([]int, size)
	pathL := make([]int, size)
	crossSnake := make([]snake, size)
	noCross := -(maxD + 2) // outside every diagonal index, unlike -1
	for i := range x {
		pathMD[i] = noCross
	}
	x[offset+1] = 0
	pathL[offset+1] = 0

	klo, khi := 0, 0
	var finalK int
	found := false

	for d := 0; d <= maxD && !found; d++ {
		if d > 0 {
			if klo > -maxD {
				klo--
			}
			if khi < maxD {
				khi++
			}
		}
		for k := khi; k >= klo; k -= 2 {
			var sx, sy, l, md int
			down := k == klo || (k != khi && x[offset+k-1] < x[offset+k+1])
			if down {
				sx = x[offset+k+1]
				l = pathL[offset+k+1]
				md = pathMD[offset+k+1]
			} else {
				sx = x[offset+k-1] + 1
				l = pathL[offset+k-1]
				md = pathMD[offset+k-1]
			}
			sy = sx - k
			preSum := sx + sy

			cx, cy := sx, sy
			for cx < n && cy < m && token.Equal(a.Buf, a.Elems[alo+cx], b.Buf, b.Elems[blo+cy]) {
				cx++
				cy++
			}
			if cx > sx {
				l++
			}
			postSum := cx + cy

			if md == noCross && preSum <= mid && mid <= postSum {
				md = k
				crossSnake[offset+k] = snake{x0: sx, y0: sy, x1: cx, y1: cy}
			}

			x[offset+k] = cx
			pathL[offset+k] = l
			pathMD[offset+k] = md

			if cx >= n && cy >= m {
				found = true
				finalK = k
				break
			}
		}
	}

	if !found {
		// Unreachable for well-formed inputs: the forward search always
		// reaches (n, m) within max = n+m steps.
		panic("lcs: diffRange search did not converge")
	}

	mdk := pathMD[offset+finalK]
	if mdk == noCross {
		panic("lcs: diffRange: no midpoint crossing recorded")
	}
	cs := crossSnake[offset+mdk]

	diffRange(a, alo, alo+cs.x0, b, blo, blo+cs.y0, out)
	if cs.x1 > cs.x0 {
		appendMatch(out, alo+cs.x0, blo+cs.y0, cs.x1-cs.x0)
	}
	diffRange(a, alo+cs.x1, ahi, b, blo+cs.y1, bhi, out)
}

// appendMatch appends a matching run, coalescing it with the previous
// entry when the two are contiguous in both files.
func appendMatch(out *[]Entry, a, b, length int) {
	if length <= 0 {
		return
	}
	n := len(*out)
	if n > 0 {
		last := &(*out)[n-1]
		if last.A+last.Len == a && last.B+last.Len == b {
			last.Len += length
			return
		}
	}
	*out = append(*out, Entry{A: a, B: b, Len: length})
}
