package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/thaipad/internal/composer"
)

var namedKeys = map[tcell.Key]string{
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyEnter:      "enter",
	tcell.KeyEsc:        "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyDelete:     "del",
	tcell.KeyF1:         "f1",
	tcell.KeyF2:         "f2",
	tcell.KeyF3:         "f3",
	tcell.KeyF4:         "f4",
	tcell.KeyF5:         "f5",
	tcell.KeyF6:         "f6",
	tcell.KeyF7:         "f7",
	tcell.KeyF8:         "f8",
	tcell.KeyF9:         "f9",
	tcell.KeyF10:        "f10",
	tcell.KeyF11:        "f11",
	tcell.KeyF12:        "f12",
}

// keyString names a key event the way keymaps spell it: "a", "space",
// "ctrl+s", "alt+x", "backspace".
func keyString(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		name := string(r)
		if r == ' ' {
			name = "space"
		}
		switch {
		case ev.Modifiers()&tcell.ModCtrl != 0:
			return "ctrl+" + strings.ToLower(name)
		case ev.Modifiers()&tcell.ModAlt != 0:
			return "alt+" + name
		}
		return name
	}
	if name, ok := namedKeys[ev.Key()]; ok {
		var mods []string
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			mods = append(mods, "ctrl")
		}
		if ev.Modifiers()&tcell.ModAlt != 0 {
			mods = append(mods, "alt")
		}
		if ev.Modifiers()&tcell.ModShift != 0 {
			mods = append(mods, "shift")
		}
		return strings.Join(append(mods, name), "+")
	}
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+ev.Key()-tcell.KeyCtrlA))
	}
	return ""
}

func keyEvent(ev *tcell.EventKey) composer.KeyEvent {
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return composer.KeyEvent{Key: composer.KeyBackspace}
	case tcell.KeyRune:
		return composer.KeyEvent{Key: composer.KeyOther, Rune: ev.Rune()}
	}
	return composer.KeyEvent{Key: composer.KeyOther}
}
