package locate

import "github.com/odvcencio/wiggle/pkg/token"

// cell is one point of the scoring DP: the best-scoring alignment run that
// reaches this (x, y) position, together with the run's starting point.
type cell struct {
	val            int
	startX, startY int
	inMatch        bool
	lastDir        int8 // 0 = none/match, +1 = last step consumed a, -1 = last step consumed b
}

// chunkBest is the best-scoring placement found so far for one hunk.
type chunkBest struct {
	xlo, ylo, xhi, yhi int
	val                int
	found              bool
}

// scoreMatrix runs the BestMatch matrix walk described in the locate
// specification: a DP over the reduced (a, b) grid that rewards runs of
// matching elements and penalizes single-sided steps, resetting at every
// chunk-marker crossing in b and tracking, per chunk, the best-scoring run
// discovered in its region.
//
// This computes the full (len(ra)+1) x (len(rb)+1) grid rather than the
// pruned diagonal-front walk described informally in the source material:
// with the grid computed exactly, there is no live diagonal to prune, and
// doing so trades the walk's memory-bounded cleverness for a simpler,
// unambiguously correct implementation. See DESIGN.md.
func scoreMatrix(ra, rb reduced, chunks int) []chunkBest {
	na, nb := ra.len(), rb.len()
	best := make([]chunkBest, chunks)

	prevRow := make([]cell, na+1)
	curRow := make([]cell, na+1)
	for x := range prevRow {
		prevRow[x] = cell{startX: x, startY: 0}
	}

	curChunk := 0
	recordBest(best, curChunk, prevRow[0], 0, 0)

	for y := 1; y <= nb; y++ {
		bi := rb.orig[y-1]
		if rb.file.Elems[bi].IsChunkMarker(rb.file.Buf) {
			curChunk = int(rb.file.Elems[bi].ChunkIndex())
			if curChunk >= chunks {
				curChunk = chunks - 1
			}
			for x := 0; x <= na; x++ {
				curRow[x] = cell{startX: x, startY: y}
				recordBest(best, curChunk, curRow[x], x, y)
			}
			prevRow, curRow = curRow, prevRow
			continue
		}

		curRow[0] = stepCell(cell{}, prevRow[0], 0, y, -1)
		recordBest(best, curChunk, curRow[0], 0, y)

		for x := 1; x <= na; x++ {
			ai := ra.orig[x-1]
			matches := token.Equal(ra.file.Buf, ra.file.Elems[ai], rb.file.Buf, rb.file.Elems[bi])
			if matches {
				curRow[x] = matchCell(prevRow[x-1], x, y)
			} else {
				xStep := curRow[x-1]
				yStep := prevRow[x]
				if xStep.val >= yStep.val {
					curRow[x] = stepCell(xStep, cell{}, x, y, +1)
				} else {
					curRow[x] = stepCell(cell{}, yStep, x, y, -1)
				}
			}
			recordBest(best, curChunk, curRow[x], x, y)
		}
		prevRow, curRow = curRow, prevRow
	}

	return best
}

// matchCell scores a diagonal step where ra[x-1] and rb[y-1] are equal.
func matchCell(pred cell, x, y int) cell {
	val := pred.val
	start := pred
	inc := 2
	if pred.inMatch {
		inc = 3
	}
	if val <= 0 {
		val = 4
		start = cell{startX: x - 1, startY: y - 1}
	}
	val += inc
	return cell{val: val, startX: start.startX, startY: start.startY, inMatch: true, lastDir: 0}
}

// stepCell scores an x-step (dir=+1, from xPred at (x-1,y)) or a y-step
// (dir=-1, from yPred at (x,y-1)). The predecessor not taken is the zero
// cell and ignored.
func stepCell(xPred, yPred cell, x, y int, dir int8) cell {
	pred := xPred
	if dir == -1 {
		pred = yPred
	}
	val := pred.val
	if val > 0 {
		amnesty := pred.lastDir != 0 && pred.lastDir == -dir
		if !amnesty {
			val--
		}
	}
	return cell{val: val, startX: pred.startX, startY: pred.startY, inMatch: false, lastDir: dir}
}

func recordBest(best []chunkBest, chunk int, c cell, x, y int) {
	if chunk < 0 || chunk >= len(best) {
		return
	}
	if c.val > best[chunk].val || !best[chunk].found {
		best[chunk] = chunkBest{xlo: c.startX, ylo: c.startY, xhi: x, yhi: y, val: c.val, found: c.val > 0}
	}
}
