package buffer

// Location is a logical cursor position: a line index and a grapheme index
// within that line. It counts graphemes, not screen cells.
type Location struct {
	LineIndex, GraphemeIndex int
}

// IsOrigin reports whether l is the first position of the document.
func (l Location) IsOrigin() bool {
	return l.LineIndex == 0 && l.GraphemeIndex == 0
}

