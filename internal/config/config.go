package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type ComposerOptions struct {
	FontSize  int      `toml:"font-size"`
	InputMode string   `toml:"input-mode"`
	Palette   []string `toml:"palette"`
}

type TranslateOptions struct {
	Endpoint          string  `toml:"endpoint"`
	Timeout           string  `toml:"timeout"`
	RequestsPerSecond float64 `toml:"requests-per-second"`
}

// TimeoutDuration parses Timeout, falling back to 15s when it is empty or
// invalid.
func (t TranslateOptions) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(t.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

type ExportOptions struct {
	Directory  string `toml:"directory"`
	FontFile   string `toml:"font-file"`
	Width      int    `toml:"width"`
	Padding    int    `toml:"padding"`
	Background string `toml:"background"`
}

type Theme struct {
	Theme                  string `toml:"theme"`
	Foreground             string `toml:"foreground"`
	Background             string `toml:"background"`
	TitleForeground        string `toml:"title-foreground"`
	TextBackground         string `toml:"text-background"`
	KeyForeground          string `toml:"key-foreground"`
	KeyBackground          string `toml:"key-background"`
	KeyActiveBackground    string `toml:"key-active-background"`
	ButtonForeground       string `toml:"button-foreground"`
	ButtonBackground       string `toml:"button-background"`
	ButtonActiveBackground string `toml:"button-active-background"`
	TranslationForeground  string `toml:"translation-foreground"`
	StatuslineForeground   string `toml:"statusline-foreground"`
	StatuslineBackground   string `toml:"statusline-background"`
	CommandlineForeground  string `toml:"commandline-foreground"`
	CommandlineBackground  string `toml:"commandline-background"`
}

type Config struct {
	Composer  ComposerOptions   `toml:"composer"`
	Translate TranslateOptions  `toml:"translate"`
	Export    ExportOptions     `toml:"export"`
	Theme     Theme             `toml:"theme"`
	Keymap    map[string]string `toml:"keymap"`
}

func Default() Config {
	return Config{
		Composer: ComposerOptions{
			FontSize:  24,
			InputMode: "thai",
			Palette: []string{
				"#000000", "#e11d48", "#db2777", "#9333ea",
				"#2563eb", "#059669", "#ca8a04", "#ea580c",
			},
		},
		Translate: TranslateOptions{
			Endpoint:          "https://translate.googleapis.com/translate_a/single",
			Timeout:           "15s",
			RequestsPerSecond: 2,
		},
		Export: ExportOptions{
			Directory:  ".",
			Width:      800,
			Padding:    16,
			Background: "#ffffff",
		},
		Theme: Theme{
			Theme:                  "",
			Foreground:             "#3b0764",
			Background:             "#fdf2f8",
			TitleForeground:        "#db2777",
			TextBackground:         "#ffffff",
			KeyForeground:          "#111827",
			KeyBackground:          "#e5e7eb",
			KeyActiveBackground:    "#9ca3af",
			ButtonForeground:       "#ffffff",
			ButtonBackground:       "#db2777",
			ButtonActiveBackground: "#9d174d",
			TranslationForeground:  "#111827",
			StatuslineForeground:   "#fdf2f8",
			StatuslineBackground:   "#831843",
			CommandlineForeground:  "#3b0764",
			CommandlineBackground:  "#fce7f3",
		},
		Keymap: map[string]string{
			"del":    "backspace",
			"space":  "space",
			"ctrl+v": "paste",
			"ctrl+s": "export",
			"ctrl+e": "translate_es",
			"ctrl+t": "translate_th",
			"f2":     "toggle_input_mode",
			"pgup":   "font_bigger",
			"pgdn":   "font_smaller",
			"left":   "select_prev",
			"right":  "select_next",
			"esc":    "clear_selection",
			"ctrl+p": "enter_command",
			"ctrl+c": "quit",
			"ctrl+q": "quit",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	if userCfg.Composer.FontSize > 0 {
		cfg.Composer.FontSize = userCfg.Composer.FontSize
	}
	override(&cfg.Composer.InputMode, userCfg.Composer.InputMode)
	if len(userCfg.Composer.Palette) > 0 {
		cfg.Composer.Palette = userCfg.Composer.Palette
	}

	override(&cfg.Translate.Endpoint, userCfg.Translate.Endpoint)
	override(&cfg.Translate.Timeout, userCfg.Translate.Timeout)
	if userCfg.Translate.RequestsPerSecond > 0 {
		cfg.Translate.RequestsPerSecond = userCfg.Translate.RequestsPerSecond
	}

	override(&cfg.Export.Directory, userCfg.Export.Directory)
	override(&cfg.Export.FontFile, userCfg.Export.FontFile)
	override(&cfg.Export.Background, userCfg.Export.Background)
	if userCfg.Export.Width > 0 {
		cfg.Export.Width = userCfg.Export.Width
	}
	if userCfg.Export.Padding != 0 {
		cfg.Export.Padding = userCfg.Export.Padding
	}

	override(&cfg.Theme.Theme, userCfg.Theme.Theme)
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)

	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}

	return cfg, nil
}

func override(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeTheme(dst *Theme, src Theme) {
	override(&dst.Foreground, src.Foreground)
	override(&dst.Background, src.Background)
	override(&dst.TitleForeground, src.TitleForeground)
	override(&dst.TextBackground, src.TextBackground)
	override(&dst.KeyForeground, src.KeyForeground)
	override(&dst.KeyBackground, src.KeyBackground)
	override(&dst.KeyActiveBackground, src.KeyActiveBackground)
	override(&dst.ButtonForeground, src.ButtonForeground)
	override(&dst.ButtonBackground, src.ButtonBackground)
	override(&dst.ButtonActiveBackground, src.ButtonActiveBackground)
	override(&dst.TranslationForeground, src.TranslationForeground)
	override(&dst.StatuslineForeground, src.StatuslineForeground)
	override(&dst.StatuslineBackground, src.StatuslineBackground)
	override(&dst.CommandlineForeground, src.CommandlineForeground)
	override(&dst.CommandlineBackground, src.CommandlineBackground)
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, err
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("THAIPAD_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "thaipad"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "thaipad"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
