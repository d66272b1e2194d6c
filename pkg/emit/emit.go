// Package emit serialises a merge.Result as text, wrapping conflicting
// spans in conflict markers the way a three-way merge tool traditionally
// does.
package emit

import (
	"io"

	"github.com/odvcencio/wiggle/pkg/merge"
	"github.com/odvcencio/wiggle/pkg/token"
)

// Delims is one set of conflict-marker delimiters. Line mode uses
// git-style markers on their own line; word mode uses inline markers
// with no surrounding newline, since a conflict there can span only
// part of a line.
type Delims struct {
	Open, Base, Mid, Wiggled, Close string
	Inline                          bool
}

var lineDelims = Delims{
	Open: "<<<<<<<\n", Base: "|||||||\n", Mid: "=======\n",
	Wiggled: "&&&&&&&\n", Close: ">>>>>>>\n",
}

var wordDelims = Delims{
	Open: "<<<---", Base: "|||", Mid: "===",
	Wiggled: "&&&", Close: "--->>>", Inline: true,
}

// Print writes res's merged text to out, wrapping each conflict's span
// (as established by merge.IsolateConflicts) in conflict markers. The
// caller must run merge.IsolateConflicts on res before calling Print;
// until isolation runs, every segment's Hi/Lo is the zero value rather
// than "not part of a conflict", and Print's output is meaningless.
// Print returns the conflict, wiggle, and ignored counters for the
// caller to report.
func Print(out io.Writer, res *merge.Result, opts merge.Options) (conflicts, wiggles, ignored int, err error) {
	delims := lineDelims
	if opts.Words {
		delims = wordDelims
	}

	segs := res.Segments
	i := 0
	for i < len(segs) {
		if segWindow(segs[i]).empty() {
			if err := writePlainSegment(out, res, segs[i]); err != nil {
				return 0, 0, 0, err
			}
			i++
			continue
		}
		j := i
		for j < len(segs) && !segWindow(segs[j]).empty() {
			j++
		}
		// A border segment's part outside its window is ordinary merged text.
		if w := segWindow(segs[i]); !w.full && w.lo > 0 {
			if err := writeSpan(out, res.M, segs[i].MA, segs[i].MA+w.lo); err != nil {
				return 0, 0, 0, err
			}
		}
		if err := writeConflictBlock(out, res, segs[i:j], delims, opts); err != nil {
			return 0, 0, 0, err
		}
		if last := segs[j-1]; !segWindow(last).full && segWindow(last).hi < last.AL {
			if err := writeSpan(out, res.M, last.MA+segWindow(last).hi, last.MA+last.AL); err != nil {
				return 0, 0, 0, err
			}
		}
		conflicts++
		i = j
	}

	return conflicts, res.Wiggles, res.Ignored, nil
}

// window describes how much of a segment belongs to an enclosing
// conflict block: the whole thing (an absorbed interior segment), a
// partial range (a border segment's dragged-in context tail), or none
// of it (an ordinary segment untouched by isolation).
type window struct {
	full   bool
	lo, hi int // element offsets within [0, AL); meaningful only when !full
}

func (w window) empty() bool { return !w.full && w.lo == w.hi }

func segWindow(s merge.Segment) window {
	if s.Hi == -1 || s.InConflict {
		return window{full: true}
	}
	if s.Hi < s.AL {
		return window{lo: s.Hi, hi: s.AL}
	}
	if s.Lo > 0 {
		return window{lo: 0, hi: s.Lo}
	}
	return window{}
}

// mRange, bRange, and aRange resolve a segment's window into element
// index ranges in each of the three files. Partial windows only ever
// occur on Unchanged border segments, where AL == BL == CL and the same
// numeric offsets apply to all three; full windows use each file's own
// length independently.
func mRange(s merge.Segment, w window) (lo, hi int) {
	if w.full {
		return s.MA, s.MA + s.AL
	}
	return s.MA + w.lo, s.MA + w.hi
}

func bRange(s merge.Segment, w window) (lo, hi int) {
	if w.full {
		return s.BB, s.BB + s.BL
	}
	return s.BB + w.lo, s.BB + w.hi
}

func aRange(s merge.Segment, w window) (lo, hi int) {
	if w.full {
		return s.CA, s.CA + s.CL
	}
	return s.CA + w.lo, s.CA + w.hi
}

// writePlainSegment emits the bytes a non-conflict segment contributes
// to the merged result: file_m's span for Unchanged/Unmatched/
// AlreadyApplied, file_a's span for Changed, nothing for Extraneous.
func writePlainSegment(out io.Writer, res *merge.Result, s merge.Segment) error {
	switch s.Type {
	case merge.Unchanged, merge.Unmatched, merge.AlreadyApplied:
		return writeSpan(out, res.M, s.MA, s.MA+s.AL)
	case merge.Changed:
		return writeSpan(out, res.A, s.CA, s.CA+s.CL)
	case merge.Extraneous, merge.End, merge.Conflict:
		return nil
	}
	return nil
}

func writeConflictBlock(out io.Writer, res *merge.Result, group []merge.Segment, d Delims, opts merge.Options) error {
	first, last := group[0], group[len(group)-1]
	w0, w1 := segWindow(first), segWindow(last)

	mlo, _ := mRange(first, w0)
	_, mhi := mRange(last, w1)
	blo, _ := bRange(first, w0)
	_, bhi := bRange(last, w1)
	alo, _ := aRange(first, w0)
	_, ahi := aRange(last, w1)

	hasTrueConflict := false
	for _, s := range group {
		if s.Type == merge.Conflict {
			hasTrueConflict = true
		}
	}

	writes := []func() error{
		func() error { return writeDelim(out, d.Open, d.Inline) },
		func() error { return writeSpan(out, res.M, mlo, mhi) },
		func() error { return writeDelim(out, d.Base, d.Inline) },
		func() error { return writeSpan(out, res.B, blo, bhi) },
		func() error { return writeDelim(out, d.Mid, d.Inline) },
		func() error { return writeSpan(out, res.A, alo, ahi) },
	}
	if opts.ShowWiggles && !hasTrueConflict {
		writes = append(writes,
			func() error { return writeDelim(out, d.Wiggled, d.Inline) },
			func() error { return writeWiggledResult(out, res, group) },
		)
	}
	writes = append(writes, func() error { return writeDelim(out, d.Close, d.Inline) })

	for _, w := range writes {
		if err := w(); err != nil {
			return err
		}
	}
	return nil
}

// writeWiggledResult renders a conflict-free group (one that isolation
// pulled in only for show_wiggles context, with no true Conflict
// segment inside) the way Print would have rendered it outside a
// conflict block: this is "the result" the patch actually produced.
func writeWiggledResult(out io.Writer, res *merge.Result, group []merge.Segment) error {
	for _, s := range group {
		if err := writePlainSegment(out, res, s); err != nil {
			return err
		}
	}
	return nil
}

func writeSpan(out io.Writer, f *token.File, lo, hi int) error {
	for i := lo; i < hi; i++ {
		if _, err := out.Write(f.Span(i)); err != nil {
			return err
		}
	}
	return nil
}

func writeDelim(out io.Writer, s string, inline bool) error {
	_, err := io.WriteString(out, s)
	_ = inline // inline delimiters already carry no surrounding newline in their literal text
	return err
}
