package ui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/kobzarvs/thaipad/internal/composer"
	"github.com/kobzarvs/thaipad/internal/thai"
)

const (
	title           = "ThaiApp"
	textRows        = 4
	translationRows = 2
	keyWidth        = 3
	keyGap          = 1
	swatchWidth     = 2
)

type button struct {
	action string
	label  string
}

var buttons = []button{
	{actionBackspace, "Borrar"},
	{actionSpace, "Espacio"},
	{actionExport, "Descargar como imagen"},
	{actionTranslateES, "Traducir a Español"},
	{actionTranslateTH, "Traducir a Tailandés"},
}

// screenLayout holds the first row of each band, top to bottom.
type screenLayout struct {
	title       int
	text        int
	controls    int
	buttons     int
	translation int
	keys        int
	status      int
	command     int
}

func computeLayout(h int) screenLayout {
	l := screenLayout{title: 0, text: 1}
	l.controls = l.text + textRows
	l.buttons = l.controls + 1
	l.translation = l.buttons + 1
	l.keys = l.translation + translationRows
	l.status = h - 2
	l.command = h - 1
	return l
}

// textCell is one terminal cell of the text area. It covers the glyphs
// index..last: a base glyph followed by the Thai marks stacked on it.
type textCell struct {
	main     rune
	comb     []rune
	width    int
	style    tcell.Style
	index    int
	last     int
	selected bool
}

func (v *View) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	lay := computeLayout(h)
	bottom := lay.status
	if bottom < 0 {
		bottom = 0
	}
	v.hits = v.hits[:0]

	s.SetStyle(v.styleMain)
	s.Clear()

	if lay.title < bottom {
		clearLine(s, lay.title, w, v.styleMain)
		drawString(s, 1, lay.title, w, title, v.styleTitle)
	}
	cx, cy, cursorVisible := v.renderText(s, w, lay, bottom)
	if lay.controls < bottom {
		v.renderControls(s, w, lay.controls)
	}
	if lay.buttons < bottom {
		v.renderButtons(s, w, lay.buttons)
	}
	if lay.translation < bottom {
		v.renderTranslation(s, w, lay.translation, bottom)
	}
	v.renderKeys(s, w, lay.keys, bottom)

	if lay.status >= 0 {
		v.renderStatusline(s, w, lay.status)
	}
	if lay.command >= 0 {
		cmdX := v.renderCommandline(s, w, lay.command)
		if v.mode == ModeCommand {
			cx, cy, cursorVisible = cmdX, lay.command, true
		}
	}
	if cursorVisible {
		if cx >= w {
			cx = w - 1
		}
		s.SetCursorStyle(tcell.CursorStyleSteadyBar)
		s.ShowCursor(cx, cy)
	} else {
		s.HideCursor()
	}
	s.Show()
}

// renderText draws the glyph buffer and returns where the terminal cursor
// belongs when the composer cursor trails the buffer.
func (v *View) renderText(s tcell.Screen, w int, lay screenLayout, bottom int) (int, int, bool) {
	areaX, areaW := 1, w-2
	if areaW < 1 {
		areaX, areaW = 0, w
	}
	state := v.comp.State()
	rows := layoutGlyphs(state, areaW, v.styleText)

	// A trailing cursor after a full row sits on a line of its own.
	lines := len(rows)
	trailing := state.Cursor == state.Len()
	if trailing && rowWidth(rows[lines-1]) >= areaW {
		lines++
	}
	sel, hasSel := state.Selected()
	focus := lines - 1
	if hasSel {
		for r, row := range rows {
			for _, c := range row {
				if c.index <= sel && sel <= c.last {
					focus = r
				}
			}
		}
	}
	visible := textRows
	if lay.text+visible > bottom {
		visible = bottom - lay.text
	}
	if visible <= 0 {
		return 0, 0, false
	}
	if focus < v.textScroll {
		v.textScroll = focus
	}
	if focus >= v.textScroll+visible {
		v.textScroll = focus - visible + 1
	}
	v.textScroll = min(max(v.textScroll, 0), lines-1)

	for y := lay.text; y < lay.text+visible; y++ {
		clearLine(s, y, w, v.styleText)
	}
	for i := 0; i < visible; i++ {
		r := v.textScroll + i
		if r >= len(rows) {
			break
		}
		y := lay.text + i
		x := areaX
		for _, c := range rows[r] {
			style := c.style
			if c.selected {
				style = style.Reverse(true)
			}
			s.SetContent(x, y, c.main, c.comb, style)
			v.hits = append(v.hits, hitbox{x: x, y: y, w: c.width, kind: hitGlyph, index: c.index, last: c.last})
			x += c.width
		}
	}

	if !trailing {
		return 0, 0, false
	}
	x := areaX + rowWidth(rows[len(rows)-1])
	y := len(rows) - 1 - v.textScroll
	if x >= areaX+areaW {
		x = areaX
		y++
	}
	if y < 0 || y >= visible {
		return 0, 0, false
	}
	return x, lay.text + y, true
}

func rowWidth(row []textCell) int {
	w := 0
	for _, c := range row {
		w += c.width
	}
	return w
}

// layoutGlyphs wraps the buffer into rows of at most width cells. Thai marks
// join the cell before them; a leading mark is drawn on a dotted circle.
func layoutGlyphs(state composer.State, width int, base tcell.Style) [][]textCell {
	sel, hasSel := state.Selected()
	var rows [][]textCell
	var row []textCell
	rowW := 0
	for i, g := range state.Buffer {
		runes := []rune(g.Char)
		if len(runes) == 0 {
			continue
		}
		if runes[0] == '\n' {
			rows = append(rows, row)
			row, rowW = nil, 0
			continue
		}
		style := base.Foreground(toTcell(g.Color))
		if thai.IsCombining(runes[0]) && len(row) > 0 {
			last := &row[len(row)-1]
			last.comb = append(last.comb, runes...)
			last.last = i
			if hasSel && sel == i {
				last.selected = true
			}
			continue
		}
		main, comb := runes[0], runes[1:]
		switch {
		case thai.IsCombining(main):
			main, comb = thai.DottedCircle, runes
		case unicode.IsControl(main):
			main = ' '
		}
		cw := runewidth.RuneWidth(main)
		if cw <= 0 {
			cw = 1
		}
		if rowW+cw > width && len(row) > 0 {
			rows = append(rows, row)
			row, rowW = nil, 0
		}
		row = append(row, textCell{main: main, comb: comb, width: cw, style: style, index: i, last: i, selected: hasSel && sel == i})
		rowW += cw
	}
	return append(rows, row)
}

func (v *View) renderControls(s tcell.Screen, w, y int) {
	clearLine(s, y, w, v.styleMain)
	active := v.comp.ActiveColor()
	x := drawString(s, 1, y, w, "Color ", v.styleMain)
	x = fillCells(s, x, y, w, swatchWidth, tcell.StyleDefault.Background(toTcell(active)))
	x = drawString(s, x+1, y, w, active.Hex(), v.styleMain)
	x += 2
	for i, c := range v.palette {
		if x+swatchWidth > w {
			break
		}
		v.hits = append(v.hits, hitbox{x: x, y: y, w: swatchWidth, kind: hitSwatch, index: i})
		x = fillCells(s, x, y, w, swatchWidth, tcell.StyleDefault.Background(toTcell(c)))
		x++
	}
	x = drawString(s, x+1, y, w, "Tamaño: "+strconv.Itoa(v.comp.FontSize())+" ", v.styleMain)
	x = v.drawButton(s, x, y, w, actionFontSmaller, "-")
	v.drawButton(s, x+1, y, w, actionFontBigger, "+")
}

func (v *View) renderButtons(s tcell.Screen, w, y int) {
	clearLine(s, y, w, v.styleMain)
	x := 1
	for _, b := range buttons {
		x = v.drawButton(s, x, y, w, b.action, b.label) + 1
		if x >= w {
			break
		}
	}
}

// drawButton draws " label " and registers it as clickable when it fits.
func (v *View) drawButton(s tcell.Screen, x, y, w int, action, label string) int {
	text := " " + label + " "
	width := uniseg.StringWidth(text)
	if x+width > w {
		return x
	}
	style := v.styleButton
	if v.flashing(action) {
		style = v.styleButtonActive
	}
	v.hits = append(v.hits, hitbox{x: x, y: y, w: width, kind: hitButton, action: action})
	return drawString(s, x, y, w, text, style)
}

func (v *View) renderTranslation(s tcell.Screen, w, top, bottom int) {
	const label = "Traducción: "
	end := top + translationRows
	if end > bottom {
		end = bottom
	}
	for y := top; y < end; y++ {
		clearLine(s, y, w, v.styleTranslation)
	}
	x := drawString(s, 1, top, w, label, v.styleTranslation.Bold(true))
	y := top
	g := uniseg.NewGraphemes(v.comp.Translation())
	for g.Next() {
		runes := g.Runes()
		if runes[0] == '\n' {
			x, y = 1, y+1
			if y >= end {
				return
			}
			continue
		}
		cw := g.Width()
		if cw <= 0 {
			cw = 1
		}
		if x+cw > w-1 {
			x, y = 1, y+1
			if y >= end {
				return
			}
		}
		s.SetContent(x, y, runes[0], runes[1:], v.styleTranslation)
		x += cw
	}
}

func (v *View) renderKeys(s tcell.Screen, w, top, bottom int) {
	for i, ch := range thai.Characters {
		y := top + i/thai.Columns
		if y >= bottom {
			return
		}
		x := 1 + (i%thai.Columns)*(keyWidth+keyGap)
		if x+keyWidth > w {
			continue
		}
		style := v.styleKey
		if v.flashing("key:" + ch) {
			style = v.styleKeyActive
		}
		fillCells(s, x, y, w, keyWidth, style)
		base, comb := thai.Label(ch)
		s.SetContent(x+keyWidth/2, y, base, comb, style)
		v.hits = append(v.hits, hitbox{x: x, y: y, w: keyWidth, kind: hitKey, index: i})
	}
}

func (v *View) renderStatusline(s tcell.Screen, w, y int) {
	clearLine(s, y, w, v.styleStatus)
	state := v.comp.State()
	mode := v.input.String()
	if v.mode == ModeCommand {
		mode = "COMMAND"
	}
	cursor := "-"
	if i, ok := state.Selected(); ok {
		cursor = fmt.Sprintf("%d/%d", i+1, state.Len())
	} else if state.HasCursor() {
		cursor = "end"
	}
	parts := []string{
		" " + mode,
		fmt.Sprintf("%d glyphs", state.Len()),
		"cursor " + cursor,
		v.comp.ActiveColor().Hex(),
		fmt.Sprintf("%dpt", v.comp.FontSize()),
	}
	if v.statusMessage != "" {
		parts = append(parts, v.statusMessage)
	}
	left := strings.Join(parts, " | ")
	right := ""
	if v.layoutName != "" {
		right = v.layoutName + " "
	}
	line := composeStatusLine(left, right, w)
	for x, r := range line {
		s.SetContent(x, y, r, nil, v.styleStatus)
	}
}

func (v *View) renderCommandline(s tcell.Screen, w, y int) int {
	clearLine(s, y, w, v.styleCommand)
	if v.mode != ModeCommand {
		drawString(s, 0, y, w, " ctrl+p command  ctrl+e/ctrl+t translate  ctrl+s export  f2 input", v.styleCommand)
		return 0
	}
	s.SetContent(0, y, ':', nil, v.styleCommand)
	return drawString(s, 1, y, w, string(v.cmd), v.styleCommand)
}

// drawString writes str grapheme by grapheme starting at x and returns the
// column after the last cell written.
func drawString(s tcell.Screen, x, y, maxX int, str string, style tcell.Style) int {
	g := uniseg.NewGraphemes(str)
	for g.Next() {
		runes := g.Runes()
		cw := g.Width()
		if cw <= 0 {
			cw = runewidth.StringWidth(string(runes))
		}
		if x+cw > maxX {
			break
		}
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += cw
	}
	return x
}

func fillCells(s tcell.Screen, x, y, maxX, n int, style tcell.Style) int {
	for i := 0; i < n && x < maxX; i++ {
		s.SetContent(x, y, ' ', nil, style)
		x++
	}
	return x
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for i := len(leftRunes) + len(rightRunes); i < width; i++ {
		line = append(line, ' ')
	}
	return append(line, rightRunes...)
}

func toTcell(c composer.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") {
		c, err := composer.ParseColor(name)
		if err != nil {
			return fallback
		}
		return toTcell(c)
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
