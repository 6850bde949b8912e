package composer

import "slices"

const (
	MinFontSize     = 10
	MaxFontSize     = 100
	DefaultFontSize = 24
)

// Snapshot is a read-only copy of what the text area shows.
type Snapshot struct {
	Glyphs   []Glyph
	FontSize int
}

// Composer owns the document state and the translation shown next to it.
// It is not safe for concurrent use: every method must be called from the
// goroutine that runs the UI loop.
type Composer struct {
	state       State
	fontSize    int
	translation string
	latestTok   uint64
	unsubscribe []func()
}

func New(fontSize int) *Composer {
	c := &Composer{state: Empty()}
	c.SetFontSize(fontSize)
	return c
}

// Mount subscribes to src: backspace deletes, paste appends. Mounting twice
// replaces the earlier subscription.
func (c *Composer) Mount(src EventSource) {
	c.Unmount()
	c.unsubscribe = append(c.unsubscribe,
		src.OnKeyDown(func(ev KeyEvent) {
			if ev.Key == KeyBackspace {
				c.Backspace()
			}
		}),
		src.OnPaste(c.Paste),
	)
}

// Unmount releases the listeners and discards the buffer.
func (c *Composer) Unmount() {
	for _, fn := range c.unsubscribe {
		fn()
	}
	c.unsubscribe = nil
	c.state = Empty()
}

func (c *Composer) State() State {
	return c.state
}

func (c *Composer) Text() string {
	return c.state.Text()
}

func (c *Composer) ActiveColor() Color {
	return c.state.ActiveColor
}

// Press handles an on-screen key or a typed character.
func (c *Composer) Press(ch string) {
	if ch == "" {
		return
	}
	c.state = InsertOrReplace(c.state, ch, c.state.ActiveColor)
}

func (c *Composer) Backspace() {
	c.state = DeleteAtCursorOrLast(c.state)
}

func (c *Composer) Space() {
	c.state = AppendSpace(c.state, c.state.ActiveColor)
}

func (c *Composer) Paste(text string) {
	c.state = BulkInsert(c.state, text, c.state.ActiveColor)
}

func (c *Composer) Select(index int) {
	c.state = ToggleSelect(c.state, index)
}

// SelectNeighbor moves the selection by delta glyphs, starting from the last
// glyph when nothing is selected. A trailing cursor has no next glyph.
func (c *Composer) SelectNeighbor(delta int) {
	n := c.state.Len()
	if n == 0 || (delta > 0 && c.state.Cursor == n) {
		return
	}
	next := n - 1
	if c.state.HasCursor() {
		next = c.state.Cursor + delta
	}
	next = min(max(next, 0), n-1)
	if next == c.state.Cursor {
		return
	}
	c.state = ToggleSelect(c.state, next)
}

// ReleaseSelection unsets the cursor and resets the active color.
func (c *Composer) ReleaseSelection() {
	if !c.state.HasCursor() {
		return
	}
	if i, ok := c.state.Selected(); ok {
		c.state = ToggleSelect(c.state, i)
		return
	}
	c.state.Cursor = NoCursor
	c.state.ActiveColor = DefaultColor
}

func (c *Composer) SetColor(col Color) {
	c.state = Recolor(c.state, col)
}

func (c *Composer) Clear() {
	c.state = Clear(c.state)
}

func (c *Composer) FontSize() int {
	return c.fontSize
}

// SetFontSize clamps size into [MinFontSize, MaxFontSize]. Zero selects the
// default size.
func (c *Composer) SetFontSize(size int) {
	if size == 0 {
		size = DefaultFontSize
	}
	c.fontSize = min(max(size, MinFontSize), MaxFontSize)
}

func (c *Composer) Snapshot() Snapshot {
	return Snapshot{
		Glyphs:   slices.Clone(c.state.Buffer),
		FontSize: c.fontSize,
	}
}

// BeginTranslation issues a new request token and returns it with the text
// to translate. Any token handed out earlier becomes stale.
func (c *Composer) BeginTranslation() (token uint64, text string) {
	c.latestTok++
	return c.latestTok, c.state.Text()
}

// IsLatestTranslation reports whether token belongs to the most recent
// request.
func (c *Composer) IsLatestTranslation(token uint64) bool {
	return token != 0 && token == c.latestTok
}

// ApplyTranslation stores text when token is the latest one and reports
// whether it did.
func (c *Composer) ApplyTranslation(token uint64, text string) bool {
	if !c.IsLatestTranslation(token) {
		return false
	}
	c.translation = text
	return true
}

func (c *Composer) Translation() string {
	return c.translation
}
