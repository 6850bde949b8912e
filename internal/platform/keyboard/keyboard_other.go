//go:build !darwin || !cgo

package keyboard

// CurrentLayoutRaw reports no layout where the OS input source cannot be
// queried.
func CurrentLayoutRaw() string {
	return ""
}
