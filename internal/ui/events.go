package ui

import "github.com/kobzarvs/thaipad/internal/composer"

type keyListener struct {
	id int
	fn func(composer.KeyEvent)
}

type pasteListener struct {
	id int
	fn func(string)
}

// Events fans terminal key and paste events out to subscribers. It
// implements composer.EventSource and, like the rest of the UI, is used from
// the event loop goroutine only.
type Events struct {
	nextID int
	keys   []keyListener
	pastes []pasteListener
}

func NewEvents() *Events {
	return &Events{}
}

func (e *Events) OnKeyDown(fn func(composer.KeyEvent)) func() {
	e.nextID++
	id := e.nextID
	e.keys = append(e.keys, keyListener{id: id, fn: fn})
	return func() {
		for i, l := range e.keys {
			if l.id == id {
				e.keys = append(e.keys[:i], e.keys[i+1:]...)
				return
			}
		}
	}
}

func (e *Events) OnPaste(fn func(string)) func() {
	e.nextID++
	id := e.nextID
	e.pastes = append(e.pastes, pasteListener{id: id, fn: fn})
	return func() {
		for i, l := range e.pastes {
			if l.id == id {
				e.pastes = append(e.pastes[:i], e.pastes[i+1:]...)
				return
			}
		}
	}
}

func (e *Events) EmitKey(ev composer.KeyEvent) {
	for _, l := range e.keys {
		l.fn(ev)
	}
}

func (e *Events) EmitPaste(text string) {
	for _, l := range e.pastes {
		l.fn(text)
	}
}

// Listeners returns the number of active key and paste subscriptions.
func (e *Events) Listeners() (keys, pastes int) {
	return len(e.keys), len(e.pastes)
}
