// Package keyboard reports the operating system's active keyboard layout.
package keyboard

import "strings"

var layoutAbbreviations = map[string]string{
	"ABC":             "US",
	"US":              "US",
	"Thai":            "TH",
	"Thai Pattachote": "TH",
	"Spanish":         "ES",
	"Spanish ISO":     "ES",
	"Latin American":  "LA",
}

func simplifyLayoutName(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	sep := strings.LastIndexAny(raw, ".")
	if sep >= 0 && sep < len(raw)-1 {
		raw = raw[sep+1:]
	}
	raw = strings.ReplaceAll(raw, "-", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if abbr, ok := layoutAbbreviations[raw]; ok {
		return abbr
	}
	return raw
}

// CurrentLayout returns a short name such as "TH" or "US", or "" when
// unknown.
func CurrentLayout() string {
	return simplifyLayoutName(CurrentLayoutRaw())
}

// IsThai reports whether the layout already produces Thai characters, in
// which case typed runes should not be remapped.
func IsThai(layout string) bool {
	return layout == "TH"
}
