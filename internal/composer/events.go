package composer

// Key identifies the keys the composer reacts to. Everything else arrives as
// KeyOther.
type Key int

const (
	KeyOther Key = iota
	KeyBackspace
)

type KeyEvent struct {
	Key  Key
	Rune rune
}

// EventSource delivers keyboard and paste events. Each subscription returns
// the function that removes it.
type EventSource interface {
	OnKeyDown(fn func(KeyEvent)) (unsubscribe func())
	OnPaste(fn func(text string)) (unsubscribe func())
}
