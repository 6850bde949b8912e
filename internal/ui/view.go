package ui

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/thaipad/internal/composer"
	"github.com/kobzarvs/thaipad/internal/config"
	"github.com/kobzarvs/thaipad/internal/logger"
	"github.com/kobzarvs/thaipad/internal/platform/keyboard"
	"github.com/kobzarvs/thaipad/internal/thai"
	"github.com/kobzarvs/thaipad/internal/translate"
)

type Mode int

const (
	ModeCompose Mode = iota
	ModeCommand
)

type InputMode int

const (
	InputThai InputMode = iota
	InputDirect
)

func (m InputMode) String() string {
	if m == InputDirect {
		return "DIRECT"
	}
	return "THAI"
}

func parseInputMode(s string) InputMode {
	if strings.EqualFold(strings.TrimSpace(s), "direct") {
		return InputDirect
	}
	return InputThai
}

const (
	actionBackspace       = "backspace"
	actionSpace           = "space"
	actionPaste           = "paste"
	actionExport          = "export"
	actionTranslateES     = "translate_es"
	actionTranslateTH     = "translate_th"
	actionToggleInputMode = "toggle_input_mode"
	actionFontBigger      = "font_bigger"
	actionFontSmaller     = "font_smaller"
	actionSelectPrev      = "select_prev"
	actionSelectNext      = "select_next"
	actionClearSelection  = "clear_selection"
	actionEnterCommand    = "enter_command"
	actionQuit            = "quit"
)

const flashDuration = 200 * time.Millisecond

// TranslationJob is a translation the event loop should run off the UI
// goroutine and hand back through ApplyTranslation.
type TranslationJob struct {
	Token   uint64
	Request translate.Request
}

// ExportJob is a snapshot waiting to be rasterized into Dir.
type ExportJob struct {
	// Seq numbers exports within a session.
	Seq      uint64
	Snapshot composer.Snapshot
	Dir      string
}

type hitKind int

const (
	hitGlyph hitKind = iota
	hitKey
	hitButton
	hitSwatch
)

type hitbox struct {
	x, y, w int
	kind    hitKind
	index   int
	last    int
	action  string
}

type View struct {
	comp    *composer.Composer
	events  *Events
	keymap  map[string]string
	palette []composer.Color

	mode          Mode
	input         InputMode
	cmd           []rune
	statusMessage string
	layoutName    string

	pasting  bool
	pasteBuf []rune

	mouseDown  bool
	hits       []hitbox
	textScroll int

	flashID string
	flashAt time.Time
	now     func() time.Time

	translateJob *TranslationJob
	exportJob    *ExportJob
	exporting    bool
	exportSeq    uint64
	exportDir    string

	readClipboard func() (string, error)
	actionHook    func(action string)

	styleMain         tcell.Style
	styleTitle        tcell.Style
	styleText         tcell.Style
	styleKey          tcell.Style
	styleKeyActive    tcell.Style
	styleButton       tcell.Style
	styleButtonActive tcell.Style
	styleTranslation  tcell.Style
	styleStatus       tcell.Style
	styleCommand      tcell.Style
}

func New(cfg config.Config, comp *composer.Composer, events *Events) *View {
	keymap := make(map[string]string, len(cfg.Keymap))
	for k, v := range cfg.Keymap {
		keymap[k] = v
	}
	palette := make([]composer.Color, 0, len(cfg.Composer.Palette))
	for _, name := range cfg.Composer.Palette {
		c, err := composer.ParseColor(name)
		if err != nil {
			logger.Warn("skipping palette color", "color", name, "err", err)
			continue
		}
		palette = append(palette, c)
	}
	exportDir := cfg.Export.Directory
	if exportDir == "" {
		exportDir = "."
	}

	mainFg := parseColor(cfg.Theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(cfg.Theme.Background, tcell.ColorBlack)
	titleFg := parseColor(cfg.Theme.TitleForeground, mainFg)
	textBg := parseColor(cfg.Theme.TextBackground, tcell.ColorWhite)
	keyFg := parseColor(cfg.Theme.KeyForeground, tcell.ColorBlack)
	keyBg := parseColor(cfg.Theme.KeyBackground, tcell.ColorSilver)
	keyActiveBg := parseColor(cfg.Theme.KeyActiveBackground, tcell.ColorGray)
	buttonFg := parseColor(cfg.Theme.ButtonForeground, tcell.ColorWhite)
	buttonBg := parseColor(cfg.Theme.ButtonBackground, tcell.ColorPurple)
	buttonActiveBg := parseColor(cfg.Theme.ButtonActiveBackground, tcell.ColorMaroon)
	translationFg := parseColor(cfg.Theme.TranslationForeground, mainFg)
	statusFg := parseColor(cfg.Theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(cfg.Theme.StatuslineBackground, tcell.ColorGray)
	commandFg := parseColor(cfg.Theme.CommandlineForeground, statusFg)
	commandBg := parseColor(cfg.Theme.CommandlineBackground, statusBg)

	return &View{
		comp:              comp,
		events:            events,
		keymap:            keymap,
		palette:           palette,
		mode:              ModeCompose,
		input:             parseInputMode(cfg.Composer.InputMode),
		now:               time.Now,
		exportDir:         exportDir,
		readClipboard:     clipboard.ReadAll,
		styleMain:         tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		styleTitle:        tcell.StyleDefault.Foreground(titleFg).Background(mainBg).Bold(true),
		styleText:         tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(textBg),
		styleKey:          tcell.StyleDefault.Foreground(keyFg).Background(keyBg),
		styleKeyActive:    tcell.StyleDefault.Foreground(keyFg).Background(keyActiveBg),
		styleButton:       tcell.StyleDefault.Foreground(buttonFg).Background(buttonBg),
		styleButtonActive: tcell.StyleDefault.Foreground(buttonFg).Background(buttonActiveBg),
		styleTranslation:  tcell.StyleDefault.Foreground(translationFg).Background(mainBg),
		styleStatus:       tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		styleCommand:      tcell.StyleDefault.Foreground(commandFg).Background(commandBg),
	}
}

func (v *View) Mode() Mode {
	return v.mode
}

func (v *View) InputMode() InputMode {
	return v.input
}

func (v *View) SetKeyboardLayout(name string) {
	v.layoutName = name
}

func (v *View) SetStatusMessage(msg string) {
	v.statusMessage = msg
}

func (v *View) StatusMessage() string {
	return v.statusMessage
}

// HandleKey processes a key press and reports whether the app should quit.
func (v *View) HandleKey(ev *tcell.EventKey) bool {
	if v.pasting {
		v.collectPaste(ev)
		return false
	}
	if v.mode == ModeCommand {
		return v.handleCommand(ev)
	}
	v.statusMessage = ""

	kev := keyEvent(ev)
	v.events.EmitKey(kev)
	if kev.Key == composer.KeyBackspace {
		v.flash(actionBackspace)
		return false
	}

	if action, ok := v.keymap[keyString(ev)]; ok {
		return v.execAction(action)
	}
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
		v.typeRune(ev.Rune())
	}
	return false
}

// typeRune inserts r, remapping Latin keys through Kedmanee in thai mode
// unless the OS layout already produces Thai.
func (v *View) typeRune(r rune) {
	if v.input == InputThai && !keyboard.IsThai(v.layoutName) {
		if th, ok := thai.Kedmanee(r); ok {
			r = th
		}
	}
	if !unicode.IsPrint(r) {
		return
	}
	ch := string(r)
	v.comp.Press(ch)
	v.flash("key:" + ch)
}

// HandleMouse reacts to the press edge of the primary button only.
func (v *View) HandleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		v.mouseDown = false
		return
	}
	if v.mouseDown {
		return
	}
	v.mouseDown = true
	x, y := ev.Position()
	h, ok := v.hitAt(x, y)
	if !ok {
		return
	}
	switch h.kind {
	case hitGlyph:
		v.comp.Select(glyphTarget(v.comp.State(), h))
	case hitKey:
		ch := thai.Characters[h.index]
		v.comp.Press(ch)
		v.flash("key:" + ch)
	case hitSwatch:
		v.comp.SetColor(v.palette[h.index])
	case hitButton:
		v.execAction(h.action)
	}
}

// glyphTarget picks the glyph a click on a text cell toggles. Repeated
// clicks walk from the base glyph through its marks and then release.
func glyphTarget(st composer.State, h hitbox) int {
	sel, ok := st.Selected()
	if !ok || sel < h.index || sel > h.last {
		return h.index
	}
	if sel < h.last {
		return sel + 1
	}
	return sel
}

func (v *View) hitAt(x, y int) (hitbox, bool) {
	for _, h := range v.hits {
		if y == h.y && x >= h.x && x < h.x+h.w {
			return h, true
		}
	}
	return hitbox{}, false
}

// HandlePaste tracks bracketed paste; the runes in between arrive as key
// events and are forwarded as one payload when the paste ends.
func (v *View) HandlePaste(ev *tcell.EventPaste) {
	switch {
	case ev.Start():
		v.pasting = true
		v.pasteBuf = v.pasteBuf[:0]
	case ev.End():
		v.pasting = false
		if len(v.pasteBuf) > 0 {
			v.events.EmitPaste(string(v.pasteBuf))
		}
		v.pasteBuf = v.pasteBuf[:0]
	}
}

func (v *View) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		v.pasteBuf = append(v.pasteBuf, ev.Rune())
	case tcell.KeyEnter, tcell.KeyCtrlJ:
		v.pasteBuf = append(v.pasteBuf, '\n')
	case tcell.KeyTab:
		v.pasteBuf = append(v.pasteBuf, '\t')
	}
}

func (v *View) pasteClipboard() {
	text, err := v.readClipboard()
	if err != nil {
		logger.Warn("clipboard read failed", "err", err)
		v.setStatus("clipboard unavailable")
		return
	}
	if text == "" {
		v.setStatus("clipboard empty")
		return
	}
	v.events.EmitPaste(text)
}

func (v *View) execAction(action string) bool {
	if v.actionHook != nil {
		v.actionHook(action)
	}
	switch action {
	case actionBackspace:
		v.comp.Backspace()
		v.flash(action)
	case actionSpace:
		v.comp.Space()
		v.flash(action)
	case actionPaste:
		v.pasteClipboard()
	case actionExport:
		v.requestExport("")
		v.flash(action)
	case actionTranslateES:
		v.requestTranslation(translate.ToSpanish)
		v.flash(action)
	case actionTranslateTH:
		v.requestTranslation(translate.ToThai)
		v.flash(action)
	case actionToggleInputMode:
		if v.input == InputThai {
			v.input = InputDirect
		} else {
			v.input = InputThai
		}
		v.setStatus("input " + strings.ToLower(v.input.String()))
	case actionFontBigger:
		v.comp.SetFontSize(v.comp.FontSize() + 1)
		v.flash(action)
	case actionFontSmaller:
		v.comp.SetFontSize(v.comp.FontSize() - 1)
		v.flash(action)
	case actionSelectPrev:
		v.comp.SelectNeighbor(-1)
	case actionSelectNext:
		v.comp.SelectNeighbor(1)
	case actionClearSelection:
		v.comp.ReleaseSelection()
	case actionEnterCommand:
		v.mode = ModeCommand
		v.cmd = v.cmd[:0]
	case actionQuit:
		return true
	default:
		v.setStatus("unknown action: " + action)
	}
	return false
}

func (v *View) handleCommand(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.mode = ModeCompose
		v.cmd = v.cmd[:0]
		return false
	case tcell.KeyEnter:
		line := strings.TrimSpace(string(v.cmd))
		v.mode = ModeCompose
		v.cmd = v.cmd[:0]
		return v.execCommand(line)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(v.cmd) > 0 {
			v.cmd = v.cmd[:len(v.cmd)-1]
		}
		return false
	case tcell.KeyCtrlU:
		v.cmd = v.cmd[:0]
		return false
	case tcell.KeyRune:
		v.cmd = append(v.cmd, ev.Rune())
		return false
	}
	return false
}

func (v *View) execCommand(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "q", "quit":
		return true
	case "color":
		if len(fields) < 2 {
			v.setStatus("usage: color <#rrggbb|name>")
			return false
		}
		c, ok := lookupColor(fields[1])
		if !ok {
			v.setStatus("invalid color: " + fields[1])
			return false
		}
		v.comp.SetColor(c)
		v.setStatus("color " + c.Hex())
	case "size":
		if len(fields) < 2 {
			v.setStatus("usage: size <" + strconv.Itoa(composer.MinFontSize) + "-" + strconv.Itoa(composer.MaxFontSize) + ">")
			return false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			v.setStatus("invalid size: " + fields[1])
			return false
		}
		v.comp.SetFontSize(n)
		v.setStatus("size " + strconv.Itoa(v.comp.FontSize()))
	case "export":
		dir := ""
		if len(fields) > 1 {
			dir = fields[1]
		}
		v.requestExport(dir)
	case "tr":
		if len(fields) < 2 {
			v.setStatus("usage: tr <es|th>")
			return false
		}
		switch translate.Language(fields[1]) {
		case translate.Spanish:
			v.requestTranslation(translate.ToSpanish)
		case translate.Thai:
			v.requestTranslation(translate.ToThai)
		default:
			v.setStatus("unsupported language: " + fields[1])
		}
	case "clear":
		v.comp.Clear()
	default:
		v.setStatus("unknown command: " + fields[0])
	}
	return false
}

// lookupColor accepts hex notation or a terminal color name.
func lookupColor(s string) (composer.Color, bool) {
	if c, err := composer.ParseColor(s); err == nil {
		return c, true
	}
	tc := tcell.GetColor(strings.ToLower(s))
	if tc == tcell.ColorDefault || !tc.Valid() {
		return composer.Color{}, false
	}
	r, g, b := tc.RGB()
	if r < 0 {
		return composer.Color{}, false
	}
	return composer.RGB(uint8(r), uint8(g), uint8(b)), true
}

func (v *View) requestTranslation(dir translate.Direction) {
	token, text := v.comp.BeginTranslation()
	v.translateJob = &TranslationJob{
		Token:   token,
		Request: translate.Request{Direction: dir, Text: text},
	}
	v.setStatus("translating " + dir.String())
}

// ConsumeTranslationJob returns the pending translation, if any.
func (v *View) ConsumeTranslationJob() (TranslationJob, bool) {
	if v.translateJob == nil {
		return TranslationJob{}, false
	}
	job := *v.translateJob
	v.translateJob = nil
	return job, true
}

// ApplyTranslation shows a finished translation. Stale tokens are dropped;
// on failure the previous translation stays on screen.
func (v *View) ApplyTranslation(token uint64, text string, err error) {
	log := logger.Job(logger.JobTranslate, token)
	if !v.comp.IsLatestTranslation(token) {
		log.Debugw("discarding stale translation")
		return
	}
	if err != nil {
		log.Errorw("translation failed", "err", err)
		v.setStatus("translation failed: " + err.Error())
		return
	}
	v.comp.ApplyTranslation(token, text)
	log.Debugw("translation applied", "runes", utf8.RuneCountInString(text))
	v.setStatus("")
}

func (v *View) requestExport(dir string) {
	if v.exporting {
		v.setStatus("export already running")
		return
	}
	if dir == "" {
		dir = v.exportDir
	}
	v.exportSeq++
	v.exportJob = &ExportJob{Seq: v.exportSeq, Snapshot: v.comp.Snapshot(), Dir: dir}
	v.exporting = true
	v.setStatus("exporting")
}

// ConsumeExportJob returns the pending export, if any.
func (v *View) ConsumeExportJob() (ExportJob, bool) {
	if v.exportJob == nil {
		return ExportJob{}, false
	}
	job := *v.exportJob
	v.exportJob = nil
	return job, true
}

func (v *View) FinishExport(path string, err error) {
	v.exporting = false
	if err != nil {
		logger.Error("export failed", "err", err)
		v.setStatus("export failed: " + err.Error())
		return
	}
	logger.Info("exported image", "path", path)
	v.setStatus("saved " + path)
}

func (v *View) setStatus(msg string) {
	v.statusMessage = msg
}

func (v *View) flash(id string) {
	v.flashID = id
	v.flashAt = v.now()
}

func (v *View) flashing(id string) bool {
	return v.flashID == id && v.now().Sub(v.flashAt) < flashDuration
}

