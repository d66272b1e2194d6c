// Package lcs computes the longest common subsequence of two token
// streams using the O(ND) algorithm in linear space, recursing on the
// midpoint-diagonal crossing of each furthest-reaching path instead of
// Myers' usual forward/reverse meet-in-the-middle search.
package lcs

// Entry is one run of the common subsequence: file A's elements
// [A, A+Len) match file B's elements [B, B+Len) elementwise.
type Entry struct {
	A, B, Len int
}

// Csl (Common Sub-List) is an ordered, strictly-increasing list of
// matching runs between two token.Files, terminated by a sentinel entry
// with Len == 0 and (A, B) set to the two files' element counts.
type Csl []Entry

// IsSentinel reports whether e is a Csl's terminating entry.
func (e Entry) IsSentinel() bool {
	return e.Len == 0
}
