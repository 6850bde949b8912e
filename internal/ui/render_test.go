package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/thaipad/internal/composer"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func click(v *View, x, y int) {
	v.HandleMouse(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	v.HandleMouse(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func cellAt(s tcell.SimulationScreen, x, y int) tcell.SimCell {
	cells, w, _ := s.GetContents()
	return cells[y*w+x]
}

func rowText(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteString(string(cells[y*w+x].Runes))
	}
	return b.String()
}

func findHit(t *testing.T, v *View, match func(hitbox) bool) hitbox {
	t.Helper()
	for _, h := range v.hits {
		if match(h) {
			return h
		}
	}
	t.Fatalf("no matching hitbox")
	return hitbox{}
}

func TestRenderGlyphColors(t *testing.T) {
	v, comp, _ := newTestView(t)
	comp.SetColor(composer.RGB(255, 0, 0))
	comp.Press("ก")
	comp.SetColor(composer.RGB(0, 0, 255))
	comp.Press("ข")

	s := newScreen(t, 60, 20)
	v.Render(s)

	first := cellAt(s, 1, 1)
	if len(first.Runes) == 0 || first.Runes[0] != 'ก' {
		t.Fatalf("cell (1,1) = %q, want ก", first.Runes)
	}
	if fg, _, _ := first.Style.Decompose(); fg != tcell.NewRGBColor(255, 0, 0) {
		t.Fatalf("cell (1,1) fg = %v, want red", fg)
	}
	second := cellAt(s, 2, 1)
	if fg, _, _ := second.Style.Decompose(); fg != tcell.NewRGBColor(0, 0, 255) {
		t.Fatalf("cell (2,1) fg = %v, want blue", fg)
	}
}

func TestRenderCombiningMarkAttaches(t *testing.T) {
	v, comp, _ := newTestView(t)
	comp.Press("ก")
	comp.Press("ี")
	comp.Press("ข")

	s := newScreen(t, 60, 20)
	v.Render(s)

	base := cellAt(s, 1, 1)
	if string(base.Runes) != "กี" {
		t.Fatalf("cell (1,1) = %q, want %q", string(base.Runes), "กี")
	}
	next := cellAt(s, 2, 1)
	if len(next.Runes) == 0 || next.Runes[0] != 'ข' {
		t.Fatalf("cell (2,1) = %q, want ข", next.Runes)
	}
}

func TestRenderLeadingMarkOnDottedCircle(t *testing.T) {
	v, comp, _ := newTestView(t)
	comp.Press("่")

	s := newScreen(t, 60, 20)
	v.Render(s)

	cell := cellAt(s, 1, 1)
	if string(cell.Runes) != "◌่" {
		t.Fatalf("cell (1,1) = %q, want dotted circle with mark", string(cell.Runes))
	}
}

func TestRenderSelectedGlyphReversed(t *testing.T) {
	v, comp, _ := newTestView(t)
	comp.Press("ก")
	comp.Press("ข")
	comp.Select(0)

	s := newScreen(t, 60, 20)
	v.Render(s)

	if _, _, attr := cellAt(s, 1, 1).Style.Decompose(); attr&tcell.AttrReverse == 0 {
		t.Fatalf("selected glyph not reversed")
	}
	if _, _, attr := cellAt(s, 2, 1).Style.Decompose(); attr&tcell.AttrReverse != 0 {
		t.Fatalf("unselected glyph reversed")
	}
	if _, _, visible := s.GetCursor(); visible {
		t.Fatalf("cursor visible while a glyph is selected")
	}
}

func TestRenderTrailingCursor(t *testing.T) {
	v, comp, _ := newTestView(t)
	comp.Press("ก")
	comp.Press("ข")

	s := newScreen(t, 60, 20)
	v.Render(s)

	x, y, visible := s.GetCursor()
	if !visible {
		t.Fatalf("cursor not visible")
	}
	if x != 3 || y != 1 {
		t.Fatalf("cursor = (%d,%d), want (3,1)", x, y)
	}
}

func TestRenderScrollsToSelection(t *testing.T) {
	v, comp, _ := newTestView(t)
	for i := 0; i < 10*(textRows+1); i++ {
		comp.Press("ก")
	}
	s := newScreen(t, 12, 24)
	v.Render(s)
	if v.textScroll == 0 {
		t.Fatalf("text did not scroll to the trailing cursor")
	}
	comp.Select(0)
	v.Render(s)
	if v.textScroll != 0 {
		t.Fatalf("textScroll = %d, want 0", v.textScroll)
	}
	if _, _, attr := cellAt(s, 1, 1).Style.Decompose(); attr&tcell.AttrReverse == 0 {
		t.Fatalf("first glyph not shown selected")
	}
}

func TestClickKeyInsertsCharacter(t *testing.T) {
	v, comp, _ := newTestView(t)
	s := newScreen(t, 60, 20)
	v.Render(s)

	key := findHit(t, v, func(h hitbox) bool { return h.kind == hitKey && h.index == 0 })
	click(v, key.x+1, key.y)
	click(v, key.x, key.y)
	if got := comp.Text(); got != "กก" {
		t.Fatalf("text = %q, want %q", got, "กก")
	}
}

func TestMouseActsOnPressEdge(t *testing.T) {
	v, comp, _ := newTestView(t)
	s := newScreen(t, 60, 20)
	v.Render(s)

	key := findHit(t, v, func(h hitbox) bool { return h.kind == hitKey && h.index == 1 })
	v.HandleMouse(tcell.NewEventMouse(key.x, key.y, tcell.Button1, tcell.ModNone))
	v.HandleMouse(tcell.NewEventMouse(key.x, key.y, tcell.Button1, tcell.ModNone))
	if got := comp.State().Len(); got != 1 {
		t.Fatalf("len = %d, want 1", got)
	}
}

func TestClickGlyphTogglesSelection(t *testing.T) {
	v, comp, _ := newTestView(t)
	comp.SetColor(composer.RGB(0, 128, 0))
	comp.Press("ก")
	comp.Press("ข")
	s := newScreen(t, 60, 20)

	v.Render(s)
	click(v, 2, 1)
	if i, ok := comp.State().Selected(); !ok || i != 1 {
		t.Fatalf("selected = %d, %v, want 1", i, ok)
	}
	if got := comp.ActiveColor(); got != composer.RGB(0, 128, 0) {
		t.Fatalf("active color = %v, want glyph color", got)
	}

	v.Render(s)
	click(v, 2, 1)
	if comp.State().HasCursor() {
		t.Fatalf("second click should unset the cursor")
	}
	if got := comp.ActiveColor(); got != composer.DefaultColor {
		t.Fatalf("active color = %v, want default", got)
	}
}

func TestClickCyclesThroughMarks(t *testing.T) {
	v, comp, _ := newTestView(t)
	comp.Press("ก")
	comp.Press("ี")
	comp.Press("่")
	s := newScreen(t, 60, 20)

	for _, want := range []int{0, 1, 2} {
		v.Render(s)
		click(v, 1, 1)
		if i, ok := comp.State().Selected(); !ok || i != want {
			t.Fatalf("selected = %d, %v, want %d", i, ok, want)
		}
	}
	runCommand(v, "color #ff0000")
	if got := comp.State().Buffer[2].Color.Hex(); got != "#ff0000" {
		t.Fatalf("mark color = %s, want #ff0000", got)
	}
	if got := comp.State().Buffer[0].Color; got != composer.DefaultColor {
		t.Fatalf("base color = %v, want default", got)
	}

	v.Render(s)
	click(v, 1, 1)
	if comp.State().HasCursor() {
		t.Fatalf("click after the last mark should release the selection")
	}
}

func TestClickSwatchRecolors(t *testing.T) {
	v, comp, _ := newTestView(t)
	s := newScreen(t, 80, 20)
	v.Render(s)

	sw := findHit(t, v, func(h hitbox) bool { return h.kind == hitSwatch && h.index == 1 })
	click(v, sw.x, sw.y)
	if got := comp.ActiveColor().Hex(); got != v.palette[1].Hex() {
		t.Fatalf("active color = %s, want %s", got, v.palette[1].Hex())
	}
}

func TestClickButtons(t *testing.T) {
	v, comp, _ := newTestView(t)
	comp.Press("ก")
	comp.Press("ข")
	s := newScreen(t, 120, 20)
	v.Render(s)

	borrar := findHit(t, v, func(h hitbox) bool { return h.kind == hitButton && h.action == actionBackspace })
	click(v, borrar.x, borrar.y)
	if got := comp.Text(); got != "ก" {
		t.Fatalf("text = %q, want %q", got, "ก")
	}
	v.Render(s)
	_, bg, _ := cellAt(s, borrar.x, borrar.y).Style.Decompose()
	_, activeBg, _ := v.styleButtonActive.Decompose()
	if bg != activeBg {
		t.Fatalf("clicked button bg = %v, want %v", bg, activeBg)
	}

	es := findHit(t, v, func(h hitbox) bool { return h.kind == hitButton && h.action == actionTranslateES })
	click(v, es.x, es.y)
	job, ok := v.ConsumeTranslationJob()
	if !ok || job.Request.Text != "ก" {
		t.Fatalf("job = %+v, %v", job, ok)
	}

	bigger := findHit(t, v, func(h hitbox) bool { return h.kind == hitButton && h.action == actionFontBigger })
	click(v, bigger.x, bigger.y)
	if comp.FontSize() != composer.DefaultFontSize+1 {
		t.Fatalf("font size = %d, want %d", comp.FontSize(), composer.DefaultFontSize+1)
	}
}

func TestRenderTranslationPanel(t *testing.T) {
	v, comp, _ := newTestView(t)
	tok, _ := comp.BeginTranslation()
	v.ApplyTranslation(tok, "hola mundo", nil)

	s := newScreen(t, 60, 20)
	v.Render(s)

	lay := computeLayout(20)
	if got := rowText(s, lay.translation); !strings.Contains(got, "Traducción: hola mundo") {
		t.Fatalf("translation row = %q", got)
	}
}

func TestRenderStatusline(t *testing.T) {
	v, comp, _ := newTestView(t)
	comp.Press("ก")
	comp.Press("ข")
	v.SetKeyboardLayout("TH")
	v.SetStatusMessage("ready")

	s := newScreen(t, 100, 20)
	v.Render(s)

	got := rowText(s, 18)
	for _, want := range []string{"THAI", "2 glyphs", "cursor end", "#000000", "24pt", "ready"} {
		if !strings.Contains(got, want) {
			t.Fatalf("status line %q missing %q", got, want)
		}
	}
	if !strings.HasSuffix(strings.TrimRight(got, " "), "TH") {
		t.Fatalf("status line %q should end with the keyboard layout", got)
	}
}

func TestRenderCommandlinePlacement(t *testing.T) {
	v, _, _ := newTestView(t)
	v.mode = ModeCommand
	v.cmd = []rune("size")

	s := newScreen(t, 40, 20)
	v.Render(s)

	cells, w, h := s.GetContents()
	cmdCell := cells[(h-1)*w]
	if len(cmdCell.Runes) == 0 || cmdCell.Runes[0] != ':' {
		t.Fatalf("command line first rune = %q, want ':'", cmdCell.Runes)
	}
	x, y, visible := s.GetCursor()
	if !visible || x != 5 || y != h-1 {
		t.Fatalf("cursor = (%d,%d,%v), want (5,%d,true)", x, y, visible, h-1)
	}
}

func TestRenderTinyScreen(t *testing.T) {
	v, comp, _ := newTestView(t)
	comp.Press("ก")
	s := newScreen(t, 3, 2)
	v.Render(s)
	if _, _, visible := s.GetCursor(); visible {
		t.Fatalf("cursor visible without a text area")
	}
}

func TestLayoutGlyphsWraps(t *testing.T) {
	st := composer.Empty()
	for _, ch := range []string{"ก", "ข", "ค", "ง", "\n", "จ"} {
		st = composer.InsertOrReplace(st, ch, composer.DefaultColor)
	}
	rows := layoutGlyphs(st, 3, tcell.StyleDefault)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if len(rows[0]) != 3 || len(rows[1]) != 1 || len(rows[2]) != 1 {
		t.Fatalf("row sizes = %d/%d/%d, want 3/1/1", len(rows[0]), len(rows[1]), len(rows[2]))
	}
	if rows[2][0].index != 5 {
		t.Fatalf("last cell index = %d, want 5", rows[2][0].index)
	}

	st = composer.Empty()
	for _, ch := range []string{"ก", "ี", "่", "ข"} {
		st = composer.InsertOrReplace(st, ch, composer.DefaultColor)
	}
	rows = layoutGlyphs(st, 10, tcell.StyleDefault)
	if len(rows[0]) != 2 {
		t.Fatalf("cells = %d, want 2", len(rows[0]))
	}
	if c := rows[0][0]; c.index != 0 || c.last != 2 {
		t.Fatalf("first cell covers %d..%d, want 0..2", c.index, c.last)
	}
	if c := rows[0][1]; c.index != 3 || c.last != 3 {
		t.Fatalf("second cell covers %d..%d, want 3..3", c.index, c.last)
	}
}

func TestComposeStatusLine(t *testing.T) {
	tests := []struct {
		left, right string
		width       int
		want        string
	}{
		{"abc", "TH", 8, "abc   TH"},
		{"abcdef", "TH", 5, "abcTH"},
		{"abc", "layout", 4, "yout"},
		{"abc", "", 0, ""},
	}
	for _, tt := range tests {
		if got := string(composeStatusLine(tt.left, tt.right, tt.width)); got != tt.want {
			t.Fatalf("composeStatusLine(%q, %q, %d) = %q, want %q", tt.left, tt.right, tt.width, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	if got := parseColor("#ff0000", tcell.ColorWhite); got != tcell.NewRGBColor(255, 0, 0) {
		t.Fatalf("parseColor hex = %v", got)
	}
	if got := parseColor("", tcell.ColorWhite); got != tcell.ColorWhite {
		t.Fatalf("parseColor empty = %v, want fallback", got)
	}
	if got := parseColor("#zzz", tcell.ColorWhite); got != tcell.ColorWhite {
		t.Fatalf("parseColor bad hex = %v, want fallback", got)
	}
	if got := parseColor("Red", tcell.ColorWhite); got != tcell.ColorRed {
		t.Fatalf("parseColor name = %v, want red", got)
	}
}
