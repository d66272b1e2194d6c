package extract

import "bytes"

// MergeSplit is the result of SplitMerge: the three streams recovered
// from a conflict-marked file.
type MergeSplit struct {
	M, B, A []byte // original/base, before/ours, after/theirs
}

// SplitMerge parses a three-way conflict-marked file (diff3 style, with
// an optional "|||||||" base section, or plain two-way conflict markers)
// and recovers the three underlying streams. ok is false if buf contains
// no recognisable conflict markers at all — SplitMerge still succeeds in
// that case, returning buf unchanged on all three streams.
//
// Outside any conflict, text is identical across all three versions (the
// emitter never prints a plain three-way disagreement without markers),
// so non-conflict lines are appended to M, B, and A alike. Inside a
// conflict, a lookahead at "<<<<<<<" decides whether the block is
// diff3-style (a "|||||||" base section precedes "=======") or a plain
// two-way conflict (no base section); in the latter case M receives no
// bytes for that span, since the original text is not recoverable from
// the marker text alone.
func SplitMerge(buf []byte) (ok bool, result *MergeSplit, err error) {
	lines := splitLines(buf)
	ms := &MergeSplit{}
	foundConflict := false

	i := 0
	for i < len(lines) {
		line := lines[i]
		if !hasMarkerPrefix(line, "<<<<<<<") {
			ms.M = append(ms.M, line...)
			ms.B = append(ms.B, line...)
			ms.A = append(ms.A, line...)
			i++
			continue
		}

		foundConflict = true
		threeWay, sepIdx, err := lookaheadConflictShape(lines, i+1)
		if err != nil {
			return false, nil, err
		}

		j := i + 1
		for j < sepIdx {
			ms.B = append(ms.B, lines[j]...)
			j++
		}

		if threeWay {
			// lines[sepIdx] is "|||||||"; base runs until "=======".
			j = sepIdx + 1
			for j < len(lines) && !hasMarkerPrefix(lines[j], "=======") {
				ms.M = append(ms.M, lines[j]...)
				j++
			}
			if j >= len(lines) {
				return false, nil, &ParseError{Line: i + 1, Text: string(bytes.TrimRight(line, "\n")), Msg: "unterminated conflict: missing ======="}
			}
		} else {
			// lines[sepIdx] is "=======" directly; no base text recovered.
			j = sepIdx
		}

		j++ // past "======="
		for j < len(lines) && !hasMarkerPrefix(lines[j], ">>>>>>>") {
			ms.A = append(ms.A, lines[j]...)
			j++
		}
		if j >= len(lines) {
			return false, nil, &ParseError{Line: i + 1, Text: string(bytes.TrimRight(line, "\n")), Msg: "unterminated conflict: missing >>>>>>>"}
		}
		i = j + 1
	}

	return foundConflict, ms, nil
}

// lookaheadConflictShape scans forward from just past "<<<<<<<" to find
// whichever comes first: "|||||||" (a diff3-style base section) or
// "=======" (a plain two-way conflict). It returns which shape was found
// and the index of the marker line that ended the scan.
func lookaheadConflictShape(lines [][]byte, from int) (threeWay bool, markerIdx int, err error) {
	for k := from; k < len(lines); k++ {
		if hasMarkerPrefix(lines[k], "|||||||") {
			return true, k, nil
		}
		if hasMarkerPrefix(lines[k], "=======") {
			return false, k, nil
		}
		if hasMarkerPrefix(lines[k], "<<<<<<<") || hasMarkerPrefix(lines[k], ">>>>>>>") {
			break
		}
	}
	text := ""
	if from-1 >= 0 && from-1 < len(lines) {
		text = string(bytes.TrimRight(lines[from-1], "\n"))
	}
	return false, 0, &ParseError{Line: from, Text: text, Msg: "unterminated conflict: missing ======= or |||||||"}
}
