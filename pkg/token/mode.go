package token

// Mode selects how Tokenize decomposes a buffer. ByWord and ByLine pick
// the base granularity; IgnoreBlanks and WholeWord are composable
// modifiers.
type Mode uint8

const (
	ByWord Mode = 1 << iota
	ByLine
	IgnoreBlanks
	WholeWord
)

func isWordByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		return true
	}
	return false
}

func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}
