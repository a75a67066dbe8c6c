package buffer

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

type graphemeWidth int

const (
	half graphemeWidth = iota
	full
)

func (w graphemeWidth) cells() int {
	if w == full {
		return 2
	}
	return 1
}

const (
	spaceMarker      = '␣'
	controlMarker    = '▯'
	zeroWidthMarker  = '.'
	truncationMarker = '⋯'
	noReplacement    = rune(0)
)

// fragment is one grapheme cluster of a line plus its display metadata.
// replacement is zero when the grapheme is rendered as-is.
type fragment struct {
	grapheme    string
	width       graphemeWidth
	replacement rune
}

func (f fragment) hasReplacement() bool {
	return f.replacement != noReplacement
}

func (f fragment) render() string {
	if f.hasReplacement() {
		return string(f.replacement)
	}
	return f.grapheme
}

// Line is a single row of text split into grapheme clusters.
// Every edit rebuilds the fragments from the resulting text, since inserting or
// removing a rune can move cluster boundaries (combining marks, ZWJ sequences).
type Line struct {
	fragments []fragment
}

// NewLine segments text into a Line.
func NewLine(text string) *Line {
	return &Line{fragments: fragmentsOf(text)}
}

func fragmentsOf(text string) []fragment {
	if text == "" {
		return nil
	}
	var fragments []fragment
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		cells := StringWidth(cluster)
		width := half
		if cells >= 2 {
			width = full
		}
		fragments = append(fragments, fragment{
			grapheme:    cluster,
			width:       width,
			replacement: replacementFor(cluster, cells),
		})
	}
	return fragments
}

func replacementFor(cluster string, cells int) rune {
	switch {
	case cluster != " " && cluster != "\t" && strings.IndexFunc(cluster, unicode.IsSpace) >= 0:
		return spaceMarker
	case cluster != "\t" && strings.IndexFunc(cluster, unicode.IsControl) >= 0:
		return controlMarker
	case cells == 0:
		return zeroWidthMarker
	}
	return noReplacement
}

// GraphemeCount returns the number of grapheme clusters in the line.
func (l *Line) GraphemeCount() int {
	return len(l.fragments)
}

// WidthUntil returns the screen column at which the grapheme at index starts.
func (l *Line) WidthUntil(graphemeIndex int) int {
	width := 0
	for i, f := range l.fragments {
		if i >= graphemeIndex {
			break
		}
		width += f.width.cells()
	}
	return width
}

// VisibleGraphemes renders the screen columns [left, right). A grapheme that
// only partially fits in the range is drawn as a single ellipsis.
func (l *Line) VisibleGraphemes(left, right int) string {
	if left >= right {
		return ""
	}
	var sb strings.Builder
	pos := 0
	for _, f := range l.fragments {
		if pos >= right {
			break
		}
		end := pos + f.width.cells()
		if end > left {
			if end > right || pos < left {
				sb.WriteRune(truncationMarker)
			} else {
				sb.WriteString(f.render())
			}
		}
		pos = end
	}
	return sb.String()
}

// InsertCharacter inserts ch before the grapheme at graphemeIndex, or appends
// it when the index is at or past the end of the line.
func (l *Line) InsertCharacter(ch rune, graphemeIndex int) {
	if graphemeIndex < 0 {
		graphemeIndex = 0
	}
	var sb strings.Builder
	inserted := false
	for i, f := range l.fragments {
		if i == graphemeIndex {
			sb.WriteRune(ch)
			inserted = true
		}
		sb.WriteString(f.grapheme)
	}
	if !inserted {
		sb.WriteRune(ch)
	}
	l.fragments = fragmentsOf(sb.String())
}

// Delete removes the grapheme at graphemeIndex. Out of range is a no-op.
func (l *Line) Delete(graphemeIndex int) {
	if graphemeIndex < 0 || graphemeIndex >= len(l.fragments) {
		return
	}
	var sb strings.Builder
	for i, f := range l.fragments {
		if i != graphemeIndex {
			sb.WriteString(f.grapheme)
		}
	}
	l.fragments = fragmentsOf(sb.String())
}

// SplitAt truncates l to its first graphemeIndex graphemes and returns the
// remainder as a new line. An index past the end returns an empty line.
func (l *Line) SplitAt(graphemeIndex int) *Line {
	if graphemeIndex > len(l.fragments) {
		return &Line{}
	}
	if graphemeIndex < 0 {
		graphemeIndex = 0
	}
	rest := make([]fragment, len(l.fragments)-graphemeIndex)
	copy(rest, l.fragments[graphemeIndex:])
	l.fragments = l.fragments[:graphemeIndex:graphemeIndex]
	return &Line{fragments: rest}
}

// Append concatenates other onto l.
func (l *Line) Append(other *Line) {
	if other == nil || len(other.fragments) == 0 {
		return
	}
	l.fragments = fragmentsOf(l.String() + other.String())
}

// String returns the stored text, without display substitutions.
func (l *Line) String() string {
	var sb strings.Builder
	for _, f := range l.fragments {
		sb.WriteString(f.grapheme)
	}
	return sb.String()
}
