// Package extract splits a unified/context diff, or a three-way
// conflict-marked file, into the separate byte streams the tokenizer and
// differ operate on.
package extract

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/odvcencio/wiggle/pkg/token"
)

// ParseError reports a malformed patch or merge-file input, with the
// 1-based line number and raw line text that failed to parse.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// splitLines splits buf into lines, each including its trailing '\n' if
// present (the final line may lack one).
func splitLines(buf []byte) [][]byte {
	var lines [][]byte
	r := bufio.NewReader(bytes.NewReader(buf))
	for {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, []byte(line))
		}
		if err != nil {
			if err != io.EOF {
				panic(err) // bytes.Reader never returns a non-EOF error
			}
			return lines
		}
	}
}

func hasMarkerPrefix(line []byte, marker string) bool {
	if !bytes.HasPrefix(line, []byte(marker)) {
		return false
	}
	if len(line) == len(marker) {
		return true
	}
	c := line[len(marker)]
	return c == ' ' || c == '\n'
}

// PatchSplit is the result of SplitPatch: two tokenizable streams, each
// with one chunk-marker preceding every hunk's body.
type PatchSplit struct {
	Chunks int
	Before []byte
	After  []byte
}

// SplitPatch parses a unified or context diff and returns the "before"
// and "after" element streams, each interleaved with a 20-byte
// chunk-marker at the start of every hunk (see token.EncodeChunkMarker).
func SplitPatch(buf []byte) (*PatchSplit, error) {
	lines := splitLines(buf)
	ps := &PatchSplit{}

	i := 0
	for i < len(lines) {
		line := lines[i]
		switch {
		case bytes.HasPrefix(line, []byte("@@ -")):
			n, err := parseUnifiedHunk(lines, i, ps)
			if err != nil {
				return nil, err
			}
			i = n
		case hasMarkerPrefix(line, "***") && isContextRangeLine(line, "***", "****"):
			n, err := parseContextHunk(lines, i, ps)
			if err != nil {
				return nil, err
			}
			i = n
		default:
			i++
		}
	}
	return ps, nil
}

type unifiedCounts struct {
	startA, countA int
	startB, countB int
}

func parseUnifiedHeader(line []byte, lineNo int) (unifiedCounts, error) {
	var c unifiedCounts
	text := string(bytes.TrimRight(line, "\n"))
	c.countA, c.countB = 1, 1
	n, err := fmt.Sscanf(text, "@@ -%d,%d +%d,%d @@", &c.startA, &c.countA, &c.startB, &c.countB)
	if err == nil && n == 4 {
		return c, nil
	}
	n, err = fmt.Sscanf(text, "@@ -%d +%d @@", &c.startA, &c.startB)
	if err == nil && n == 2 {
		return c, nil
	}
	return c, &ParseError{Line: lineNo, Text: text, Msg: "malformed unified hunk header"}
}

// parseUnifiedHunk consumes one unified-diff hunk starting at lines[i]
// (the "@@" header) and appends its chunk-marker and body lines to ps.
// It returns the index of the next unconsumed line.
func parseUnifiedHunk(lines [][]byte, i int, ps *PatchSplit) (int, error) {
	counts, err := parseUnifiedHeader(lines[i], i+1)
	if err != nil {
		return 0, err
	}
	chunkIndex := ps.Chunks
	ps.Chunks++

	ps.Before = append(ps.Before, token.EncodeChunkMarker(chunkIndex, counts.startA, counts.countA)...)
	ps.After = append(ps.After, token.EncodeChunkMarker(chunkIndex, counts.startB, counts.countB)...)

	bcnt, acnt := counts.countA, counts.countB
	j := i + 1
	for j < len(lines) && (bcnt > 0 || acnt > 0) {
		line := lines[j]
		if len(line) == 0 {
			break
		}
		switch line[0] {
		case ' ':
			ps.Before = append(ps.Before, line[1:]...)
			ps.After = append(ps.After, line[1:]...)
			bcnt--
			acnt--
		case '-':
			ps.Before = append(ps.Before, line[1:]...)
			bcnt--
		case '+':
			ps.After = append(ps.After, line[1:]...)
			acnt--
		case '\\':
			// "\ No newline at end of file" — not part of the body.
		default:
			return j, nil // stop: not a hunk body line, next header handled by outer loop
		}
		j++
	}
	return j, nil
}

func isContextRangeLine(line []byte, openTok, closeTok string) bool {
	text := bytes.TrimRight(line, "\n")
	return bytes.HasPrefix(text, []byte(openTok+" ")) && bytes.HasSuffix(text, []byte(" "+closeTok))
}

// parseContextHunk consumes one context-diff hunk: an "*** a,b ****"
// block of context/changed/deleted lines followed by a "--- c,d ----"
// block of context/changed/inserted lines.
func parseContextHunk(lines [][]byte, i int, ps *PatchSplit) (int, error) {
	oldStart, oldEnd, err := parseContextRange(lines[i], "***", "****", i+1)
	if err != nil {
		return 0, err
	}
	chunkIndex := ps.Chunks
	ps.Chunks++
	ps.Before = append(ps.Before, token.EncodeChunkMarker(chunkIndex, oldStart, oldEnd-oldStart+1)...)

	j := i + 1
	for j < len(lines) {
		line := lines[j]
		if hasMarkerPrefix(line, "---") && isContextRangeLine(line, "---", "----") {
			break
		}
		if len(line) >= 2 && (line[0] == ' ' || line[0] == '!' || line[0] == '-') {
			ps.Before = append(ps.Before, line[2:]...)
		}
		j++
	}
	if j >= len(lines) {
		// Old-only hunk with no new section: still valid (pure deletion).
		ps.After = append(ps.After, token.EncodeChunkMarker(chunkIndex, oldStart, 0)...)
		return j, nil
	}

	newStart, newEnd, err := parseContextRange(lines[j], "---", "----", j+1)
	if err != nil {
		return 0, err
	}
	ps.After = append(ps.After, token.EncodeChunkMarker(chunkIndex, newStart, newEnd-newStart+1)...)

	j++
	for j < len(lines) {
		line := lines[j]
		if bytes.HasPrefix(line, []byte("***************")) || bytes.HasPrefix(line, []byte("@@ -")) ||
			(hasMarkerPrefix(line, "***") && isContextRangeLine(line, "***", "****")) {
			break
		}
		if len(line) >= 2 && (line[0] == ' ' || line[0] == '!' || line[0] == '+') {
			ps.After = append(ps.After, line[2:]...)
		} else if len(line) < 2 {
			break
		}
		j++
	}
	return j, nil
}

func parseContextRange(line []byte, openTok, closeTok string, lineNo int) (start, end int, err error) {
	text := string(bytes.TrimRight(line, "\n"))
	n, sErr := fmt.Sscanf(text, openTok+" %d,%d "+closeTok, &start, &end)
	if sErr == nil && n == 2 {
		return start, end, nil
	}
	n, sErr = fmt.Sscanf(text, openTok+" %d "+closeTok, &start)
	if sErr == nil && n == 1 {
		return start, start, nil
	}
	return 0, 0, &ParseError{Line: lineNo, Text: text, Msg: "malformed context range"}
}
