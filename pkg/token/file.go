package token

// File is an ordered sequence of Elmnts tiling a byte buffer.
type File struct {
	Buf   []byte
	Elems []Elmnt
}

// Len returns the element count.
func (f *File) Len() int {
	return len(f.Elems)
}

// At returns the i'th element.
func (f *File) At(i int) Elmnt {
	return f.Elems[i]
}

// Content returns the hashed content bytes of the i'th element.
func (f *File) Content(i int) []byte {
	return f.Elems[i].Content(f.Buf)
}

// Span returns the full physical bytes (prefix + content + trailing
// extension) of the i'th element.
func (f *File) Span(i int) []byte {
	return f.Elems[i].Span(f.Buf)
}

// Equal reports whether the i'th element of f equals the j'th element of
// g under element equality (see Equal).
func (f *File) Equal(i int, g *File, j int) bool {
	return Equal(f.Buf, f.Elems[i], g.Buf, g.Elems[j])
}
