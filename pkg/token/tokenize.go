package token

import "hash/fnv"

// Tokenize decomposes buf into a File of Elmnts according to mode.
//
// Two passes over buf: the first counts elements so the second can fill
// a precisely-sized slice without growth. Both passes share the walk
// logic so they can never disagree on element count.
func Tokenize(buf []byte, mode Mode) *File {
	count := 0
	walk(buf, mode, func(Elmnt) { count++ })

	elems := make([]Elmnt, 0, count)
	walk(buf, mode, func(e Elmnt) { elems = append(elems, e) })

	return &File{Buf: buf, Elems: elems}
}

// walk scans buf once, invoking emit for each element in order. Both
// passes of Tokenize call walk so that the counted and filled sequences
// are identical by construction.
func walk(buf []byte, mode Mode, emit func(Elmnt)) {
	n := len(buf)
	ignoreBlanks := mode&IgnoreBlanks != 0
	lineMode := mode&ByLine != 0
	wholeWord := mode&WholeWord != 0

	sol := true // start-of-line: true at buffer start and after every line-ending element
	blankFrom := -1 // start of blank lines skipped since the last element, or -1
	attach := func(e Elmnt) {
		if blankFrom >= 0 {
			// Skipped blank lines become part of the next element's prefix.
			e.Prefix = e.Start - blankFrom
			blankFrom = -1
		}
		emit(e)
	}
	i := 0
	for i < n {
		if buf[i] == 0 && i+ChunkMarkerLen <= n {
			if idx, _, _, ok := DecodeChunkMarker(buf[i : i+ChunkMarkerLen]); ok {
				attach(Elmnt{Start: i, Len: ChunkMarkerLen, Plen: ChunkMarkerLen, Hash: uint32(idx)})
				i += ChunkMarkerLen
				sol = true
				continue
			}
		}

		if ignoreBlanks && sol {
			if skip, ok := blankLineSkip(buf, i); ok {
				if blankFrom < 0 {
					blankFrom = i
				}
				i = skip
				continue
			}
		}

		if lineMode {
			start, length, plen, prefix, next := scanLine(buf, i, ignoreBlanks)
			attach(Elmnt{
				Start:  start,
				Len:    length,
				Plen:   plen,
				Prefix: prefix,
				Hash:   hashBytes(buf[start : start+length]),
			})
			i = next
			sol = true
			continue
		}

		start, length, next := scanWord(buf, i, wholeWord)
		attach(Elmnt{
			Start: start,
			Len:   length,
			Plen:  length,
			Hash:  hashBytes(buf[start : start+length]),
		})
		sol = next > start && buf[next-1] == '\n'
		i = next
	}
}

// blankLineSkip reports whether the line starting at i consists entirely
// of spaces/tabs followed by a newline (or EOF), and if so the position
// just past it. IgnoreBlanks mode elides such lines instead of emitting
// an element for them.
func blankLineSkip(buf []byte, i int) (next int, ok bool) {
	n := len(buf)
	j := i
	for j < n && isSpaceOrTab(buf[j]) {
		j++
	}
	if j == n {
		return n, true
	}
	if buf[j] == '\n' {
		return j + 1, true
	}
	return 0, false
}

// scanLine consumes one line starting at i. With ignoreBlanks, leading
// whitespace becomes the element's Prefix and is excluded from the
// hashed content; trailing whitespace up to and including the newline
// becomes the Plen extension, also excluded from the hashed content.
func scanLine(buf []byte, i int, ignoreBlanks bool) (start, length, plen, prefix, next int) {
	n := len(buf)
	j := i
	if ignoreBlanks {
		for j < n && isSpaceOrTab(buf[j]) {
			j++
		}
	}
	start = j

	k := j
	for k < n && buf[k] != '\n' {
		k++
	}
	lineEnd := k
	if k < n { // found a newline
		lineEnd = k + 1
	}

	if !ignoreBlanks {
		length = lineEnd - start
		return start, length, length, 0, lineEnd
	}

	contentEnd := k
	for contentEnd > start && isSpaceOrTab(buf[contentEnd-1]) {
		contentEnd--
	}
	return start, contentEnd - start, lineEnd - start, j - i, lineEnd
}

// scanWord consumes one word-mode element starting at i.
func scanWord(buf []byte, i int, wholeWord bool) (start, length, next int) {
	n := len(buf)
	start = i
	c := buf[i]

	if isSpaceOrTab(c) {
		j := i + 1
		for j < n && isSpaceOrTab(buf[j]) {
			j++
		}
		return start, j - i, j
	}
	if c == '\n' {
		return start, 1, i + 1
	}
	if wholeWord {
		j := i + 1
		for j < n && !isSpaceOrTab(buf[j]) && buf[j] != '\n' {
			j++
		}
		return start, j - i, j
	}
	if isWordByte(c) {
		j := i + 1
		for j < n && isWordByte(buf[j]) {
			j++
		}
		return start, j - i, j
	}
	return start, 1, i + 1
}

func hashBytes(b []byte) uint32 {
	h := fnv.New32a()
	h.Write(b)
	return h.Sum32()
}
