// Package thai holds the on-screen Thai keyboard: the key set, how keys are
// labeled, and the Kedmanee mapping of a US keyboard.
package thai

// Columns is the number of keys per row of the on-screen grid.
const Columns = 10

// DottedCircle is the base drawn under combining marks on key labels.
const DottedCircle = '◌'

// Characters lists the on-screen keys in grid order: consonants, vowels,
// digits, then tone and other marks.
var Characters = []string{
	"ก", "ข", "ค", "ง", "จ", "ฉ", "ช", "ซ", "ญ", "ฎ",
	"ฏ", "ฐ", "ฑ", "ฒ", "ณ", "ด", "ต", "ถ", "ท", "ธ",
	"น", "บ", "ป", "ผ", "ฝ", "พ", "ฟ", "ม", "ย", "ร",
	"ล", "ว", "ศ", "ษ", "ส", "ห", "ฬ", "อ", "ฮ",
	"ะ", "ั", "า", "ำ", "ิ", "ี", "ึ", "ื", "ุ", "ู",
	"เ", "แ", "โ", "ใ", "ไ", "๐", "๑", "๒", "๓", "๔",
	"๕", "๖", "๗", "๘", "๙",
	"่", "้", "๊", "๋", "็", "์", "ๆ", "ฯ", "ฺ",
}

// Rows returns the number of grid rows.
func Rows() int {
	return (len(Characters) + Columns - 1) / Columns
}

// IsCombining reports whether r is a Thai above or below mark, which
// occupies no cell of its own.
func IsCombining(r rune) bool {
	switch {
	case r == 0x0E31:
		return true
	case r >= 0x0E34 && r <= 0x0E3A:
		return true
	case r >= 0x0E47 && r <= 0x0E4E:
		return true
	}
	return false
}

// Label returns the base rune and the combining runes used to draw a key.
func Label(ch string) (rune, []rune) {
	runes := []rune(ch)
	if len(runes) == 0 {
		return ' ', nil
	}
	if IsCombining(runes[0]) {
		return DottedCircle, runes
	}
	return runes[0], runes[1:]
}
