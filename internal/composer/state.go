package composer

import (
	"slices"
	"strings"
)

// Space is the glyph appended by AppendSpace. A no-break space keeps runs of
// spaces visible in every renderer.
const Space = "\u00a0"

// NoCursor marks an unset cursor.
const NoCursor = -1

// Glyph is one styled character of the buffer.
type Glyph struct {
	Char  string
	Color Color
}

// State is the whole document model. Values are never mutated in place: every
// operation below takes a State and returns the next one, so the buffer, the
// cursor and the active color always change together.
//
// Cursor is NoCursor or an index in [0, len(Buffer)]. An index equal to
// len(Buffer) is the trailing position after the last glyph.
type State struct {
	Buffer      []Glyph
	Cursor      int
	ActiveColor Color
}

func Empty() State {
	return State{Cursor: NoCursor, ActiveColor: DefaultColor}
}

func (s State) Len() int {
	return len(s.Buffer)
}

func (s State) HasCursor() bool {
	return s.Cursor != NoCursor
}

// Selected reports the index of the glyph under the cursor. A trailing or
// unset cursor selects nothing.
func (s State) Selected() (int, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Buffer) {
		return 0, false
	}
	return s.Cursor, true
}

// Text flattens the buffer, dropping styling.
func (s State) Text() string {
	var sb strings.Builder
	for _, g := range s.Buffer {
		sb.WriteString(g.Char)
	}
	return sb.String()
}

func (s State) clamp() State {
	switch {
	case s.Cursor < 0:
		s.Cursor = NoCursor
	case s.Cursor > len(s.Buffer):
		s.Cursor = len(s.Buffer)
	}
	return s
}

// InsertOrReplace types ch over the selected glyph and advances the cursor.
// With no selected glyph, or when ch is the space glyph, it appends instead
// and leaves the cursor trailing.
func InsertOrReplace(s State, ch string, c Color) State {
	g := Glyph{Char: ch, Color: c}
	if i, ok := s.Selected(); ok && ch != Space {
		buf := slices.Clone(s.Buffer)
		buf[i] = g
		s.Buffer = buf
		s.Cursor = i + 1
		return s.clamp()
	}
	s.Buffer = append(slices.Clip(s.Buffer), g)
	s.Cursor = len(s.Buffer)
	return s
}

// DeleteAtCursorOrLast removes the selected glyph, or the last glyph when
// nothing is selected or the cursor is trailing, and moves the cursor back.
func DeleteAtCursorOrLast(s State) State {
	n := len(s.Buffer)
	if n == 0 {
		return s
	}
	i := n - 1
	if sel, ok := s.Selected(); ok {
		i = sel
	}
	s.Buffer = slices.Delete(slices.Clone(s.Buffer), i, i+1)
	switch {
	case len(s.Buffer) == 0:
		s.Cursor = NoCursor
	case s.HasCursor():
		s.Cursor = max(s.Cursor-1, 0)
	default:
		s.Cursor = len(s.Buffer) - 1
	}
	return s.clamp()
}

// AppendSpace always appends at the end, whatever the cursor.
func AppendSpace(s State, c Color) State {
	s.Buffer = append(slices.Clip(s.Buffer), Glyph{Char: Space, Color: c})
	s.Cursor = len(s.Buffer)
	return s
}

// BulkInsert appends every code point of text as its own glyph. The cursor is
// left where it was.
func BulkInsert(s State, text string, c Color) State {
	if text == "" {
		return s
	}
	buf := slices.Grow(slices.Clip(s.Buffer), len(text))
	for _, r := range text {
		buf = append(buf, Glyph{Char: string(r), Color: c})
	}
	s.Buffer = buf
	return s.clamp()
}

// ToggleSelect selects the glyph at index and loads its color, or releases
// the selection when index is already selected. Indices outside the buffer
// are ignored.
func ToggleSelect(s State, index int) State {
	if index < 0 || index >= len(s.Buffer) {
		return s
	}
	if index == s.Cursor {
		s.Cursor = NoCursor
		s.ActiveColor = DefaultColor
		return s
	}
	s.Cursor = index
	s.ActiveColor = s.Buffer[index].Color
	return s
}

// Recolor sets the active color and repaints the selected glyph, if any.
func Recolor(s State, c Color) State {
	s.ActiveColor = c
	if i, ok := s.Selected(); ok {
		buf := slices.Clone(s.Buffer)
		buf[i] = Glyph{Char: buf[i].Char, Color: c}
		s.Buffer = buf
	}
	return s
}

// Clear drops every glyph and the selection, keeping the active color.
func Clear(s State) State {
	return State{Cursor: NoCursor, ActiveColor: s.ActiveColor}
}
