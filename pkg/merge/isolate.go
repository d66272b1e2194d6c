package merge

// newlineBudget is the number of lines of surrounding context required
// before a conflict is allowed to stop expanding into an Unchanged or
// Extraneous region. In line-granularity tokenization every element of
// such a segment already ends its own line, so "3 newlines of context"
// and "3 whole-line elements of context" coincide; this lets the
// isolator count elements instead of scanning segment bytes for '\n'.
// Word-mode disables the requirement entirely (see IsolateConflicts),
// so this constant is never consulted for word-granularity conflicts.
const newlineBudget = 3

// region is one conflict's absorbed segment range, by index into
// Result.Segments, inclusive of both border segments.
type region struct {
	lo, hi int // -1 lo means the region runs off the start of the file
}

// IsolateConflicts expands every Conflict segment (and, with
// opts.ShowWiggles, every non-header Extraneous segment and every
// Changed/Unmatched pair with no Unchanged between them) outward to the
// nearest usable line boundary, marking the segments it absorbs
// in_conflict and recording the cut point in the bordering segment it
// stops at. Adjacent expansions that meet are merged into one conflict.
// It returns the number of conflict regions remaining after merges.
func IsolateConflicts(res *Result, opts Options) int {
	segs := res.Segments
	n := len(segs)
	if n == 0 {
		return 0
	}

	// Every segment starts with Hi at its own length: "nothing dragged
	// in", the same reading emit.go gives a segment untouched by any
	// border expansion. Merge never sets Hi, so without this the zero
	// value would read as a left border with its whole span absorbed.
	for i := range segs {
		segs[i].Hi = segs[i].AL
	}

	seed := markSeeds(segs, opts)

	var regions []region
	i := 0
	for i < n {
		if !seed[i] {
			i++
			continue
		}
		j := i
		for j+1 < n && seed[j+1] {
			j++
		}
		loBorder := expandBackward(segs, i, opts)
		hiBorder := expandForward(segs, j, opts)
		for k := loBorder + 1; k < hiBorder; k++ {
			segs[k].InConflict = true
		}
		regions = append(regions, region{lo: loBorder, hi: hiBorder})
		i = j + 1
	}

	return mergeAdjacentRegions(segs, regions)
}

func markSeeds(segs []Segment, opts Options) []bool {
	n := len(segs)
	seed := make([]bool, n)
	for i, s := range segs {
		if s.Type == Conflict {
			seed[i] = true
		}
		if opts.ShowWiggles && s.Type == Extraneous && !s.HunkHeader {
			seed[i] = true
		}
	}
	if opts.ShowWiggles {
		for i := 0; i+1 < n; i++ {
			a, b := segs[i].Type, segs[i+1].Type
			if (a == Changed && b == Unmatched) || (a == Unmatched && b == Changed) {
				seed[i], seed[i+1] = true, true
			}
		}
	}
	return seed
}

// expandBackward walks left from the conflict run starting at i,
// returning the index of the segment it stops at (the left border).
// That segment's Hi field is set to the element offset, within its own
// [0, AL) range, where the conflict's interior begins.
func expandBackward(segs []Segment, i int, opts Options) int {
	budget := newlineBudget
	firstUnit := -1

	for k := i - 1; k >= 0; k-- {
		s := &segs[k]
		if s.HunkHeader {
			s.Hi = s.AL
			return k
		}
		if opts.Words {
			s.Hi = s.AL
			return k
		}
		if s.Type == Changed {
			s.Hi = s.AL
			return k
		}

		units := s.AL
		if units == 0 {
			s.InConflict = true
			continue
		}
		if firstUnit < 0 && units >= budget {
			// The very first region examined alone supplies the whole
			// budget: keep only one line of context, not three, so a
			// conflict bordered by a large unchanged block does not
			// swallow it needlessly.
			s.Hi = s.AL - 1
			return k
		}
		firstUnit = k
		if units >= budget {
			s.Hi = s.AL - budget
			return k
		}
		budget -= units
		s.InConflict = true
	}
	return -1
}

// expandForward is expandBackward's mirror: it walks right from the
// conflict run ending at j, returning the index of the right border
// segment and recording its Lo.
func expandForward(segs []Segment, j int, opts Options) int {
	budget := newlineBudget
	firstUnit := -1
	n := len(segs)

	for k := j + 1; k < n; k++ {
		s := &segs[k]
		if s.HunkHeader {
			s.Lo = 0
			return k
		}
		if opts.Words {
			s.Lo = 0
			return k
		}
		if s.Type == Changed {
			s.Lo = 0
			return k
		}

		units := s.AL
		if units == 0 {
			s.InConflict = true
			continue
		}
		if firstUnit < 0 && units >= budget {
			s.Lo = 1
			return k
		}
		firstUnit = k
		if units >= budget {
			s.Lo = budget
			return k
		}
		budget -= units
		s.InConflict = true
	}
	return n
}

// mergeAdjacentRegions collapses conflicts whose expansions absorbed the
// same border segment: the shared segment's Hi is cleared (set to -1,
// meaning fully interior to the merged conflict) and the two regions
// become one.
func mergeAdjacentRegions(segs []Segment, regions []region) int {
	if len(regions) == 0 {
		return 0
	}
	merged := []region{regions[0]}
	for _, r := range regions[1:] {
		last := &merged[len(merged)-1]
		if r.lo >= 0 && r.lo == last.hi {
			segs[r.lo].Hi = -1
			segs[r.lo].InConflict = true
			last.hi = r.hi
			continue
		}
		merged = append(merged, r)
	}
	for _, r := range merged {
		if r.lo >= 0 {
			segs[r.lo].InConflict = segs[r.lo].InConflict || segs[r.lo].Hi < 0
		}
	}
	return len(merged)
}
