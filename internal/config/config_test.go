package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("THAIPAD_CONFIG_HOME", "/tmp/thaipad-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/thaipad-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/thaipad-config")
	}

	t.Setenv("THAIPAD_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/thaipad" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/thaipad")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("THAIPAD_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Composer.FontSize != 24 {
		t.Fatalf("FontSize = %d, want 24", cfg.Composer.FontSize)
	}
	if cfg.Keymap["del"] != "backspace" {
		t.Fatalf("keymap del = %q", cfg.Keymap["del"])
	}
}

func TestLoadWithThemeAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("THAIPAD_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "test.toml"), `
foreground = "#111111"
background = "#222222"
statusline-foreground = "#333333"
`)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[composer]
font-size = 48
input-mode = "direct"
palette = ["#ff0000", "#00ff00"]

[translate]
endpoint = "http://localhost:9999/t"
timeout = "3s"

[export]
directory = "/tmp/out"
font-file = "/usr/share/fonts/thai.ttf"

[theme]
theme = "test"
commandline-background = "#123456"

[keymap]
"ctrl+x" = "quit"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Composer.FontSize != 48 {
		t.Fatalf("FontSize = %d, want 48", cfg.Composer.FontSize)
	}
	if cfg.Composer.InputMode != "direct" {
		t.Fatalf("InputMode = %q, want %q", cfg.Composer.InputMode, "direct")
	}
	if len(cfg.Composer.Palette) != 2 {
		t.Fatalf("Palette = %v, want 2 colors", cfg.Composer.Palette)
	}
	if cfg.Translate.Endpoint != "http://localhost:9999/t" {
		t.Fatalf("Endpoint = %q", cfg.Translate.Endpoint)
	}
	if got := cfg.Translate.TimeoutDuration(); got != 3*time.Second {
		t.Fatalf("Timeout = %v, want 3s", got)
	}
	if cfg.Translate.RequestsPerSecond != 2 {
		t.Fatalf("RequestsPerSecond = %v, want default 2", cfg.Translate.RequestsPerSecond)
	}
	if cfg.Export.Directory != "/tmp/out" || cfg.Export.FontFile != "/usr/share/fonts/thai.ttf" {
		t.Fatalf("Export = %+v", cfg.Export)
	}
	if cfg.Export.Width != 800 {
		t.Fatalf("Export.Width = %d, want default 800", cfg.Export.Width)
	}
	if cfg.Theme.Foreground != "#111111" {
		t.Fatalf("Foreground = %q, want %q", cfg.Theme.Foreground, "#111111")
	}
	if cfg.Theme.Background != "#222222" {
		t.Fatalf("Background = %q, want %q", cfg.Theme.Background, "#222222")
	}
	if cfg.Theme.CommandlineBackground != "#123456" {
		t.Fatalf("CommandlineBackground = %q, want %q", cfg.Theme.CommandlineBackground, "#123456")
	}
	if cfg.Keymap["ctrl+x"] != "quit" {
		t.Fatalf("keymap ctrl+x = %q, want %q", cfg.Keymap["ctrl+x"], "quit")
	}
	if cfg.Keymap["ctrl+s"] != "export" {
		t.Fatalf("keymap ctrl+s = %q, want %q", cfg.Keymap["ctrl+s"], "export")
	}
}

func TestLoadInvalidToml(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("THAIPAD_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), "[composer\nfont-size = ")
	if _, err := Load(); err == nil {
		t.Fatalf("Load succeeded on invalid toml")
	}
}

func TestLoadThemeWrapped(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("THAIPAD_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "wrapped.toml"), `
[theme]
foreground = "#aaaaaa"
background = "#bbbbbb"
`)

	theme, err := LoadTheme("wrapped")
	if err != nil {
		t.Fatalf("LoadTheme error: %v", err)
	}
	if theme.Foreground != "#aaaaaa" {
		t.Fatalf("Foreground = %q, want %q", theme.Foreground, "#aaaaaa")
	}
	if theme.Background != "#bbbbbb" {
		t.Fatalf("Background = %q, want %q", theme.Background, "#bbbbbb")
	}
}

func TestTimeoutDurationFallback(t *testing.T) {
	if got := (TranslateOptions{Timeout: "soon"}).TimeoutDuration(); got != 15*time.Second {
		t.Fatalf("TimeoutDuration = %v, want 15s", got)
	}
}
