package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WOPR_CONFIG", "")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Display.TypingSpeed != 30 {
		t.Errorf("typing_speed = %d, want 30", c.Display.TypingSpeed)
	}
	if c.Display.ColorScheme != "green" {
		t.Errorf("color_scheme = %q, want green", c.Display.ColorScheme)
	}
	if !c.Audio.Enabled || !c.Audio.VoiceEnabled {
		t.Errorf("audio defaults = %+v, want enabled", c.Audio)
	}
	if c.Audio.Volume != 0.8 {
		t.Errorf("volume = %v, want 0.8", c.Audio.Volume)
	}
	if c.Gameplay.SkipIntro {
		t.Errorf("skip_intro default = true, want false")
	}
	if c.Gameplay.ChessDifficulty != 3 {
		t.Errorf("chess_difficulty = %d, want 3", c.Gameplay.ChessDifficulty)
	}
	if !c.Gameplay.SaveGames {
		t.Errorf("save_games default = false, want true")
	}
	if want := filepath.Join(os.Getenv("HOME"), ".local", "share", "wopr", "wopr.db"); c.Database.Path != want {
		t.Errorf("database.path = %q, want %q", c.Database.Path, want)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
[display]
typing_speed = 60
color_scheme = "amber"

[audio]
enabled = false
voice_enabled = false
volume = 0.25

[gameplay]
skip_intro = true
chess_difficulty = 4
save_games = false

[database]
path = "/tmp/wopr-test.db"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WOPR_CONFIG", path)

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Display.TypingSpeed != 60 || c.Display.ColorScheme != "amber" {
		t.Errorf("display = %+v, want 60/amber", c.Display)
	}
	if c.Audio.Enabled || c.Audio.VoiceEnabled || c.Audio.Volume != 0.25 {
		t.Errorf("audio = %+v, want disabled at 0.25", c.Audio)
	}
	if !c.Gameplay.SkipIntro || c.Gameplay.ChessDifficulty != 4 || c.Gameplay.SaveGames {
		t.Errorf("gameplay = %+v", c.Gameplay)
	}
	if c.Database.Path != "/tmp/wopr-test.db" {
		t.Errorf("database.path = %q", c.Database.Path)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[display]\ncolor_scheme = \"white\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WOPR_CONFIG", path)
	t.Setenv("WOPR_DISPLAY_COLOR_SCHEME", "amber")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Display.ColorScheme != "amber" {
		t.Errorf("color_scheme = %q, want env override amber", c.Display.ColorScheme)
	}
}

func TestNormalizeOutOfRangeValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
[display]
typing_speed = -10
color_scheme = "plasma"

[audio]
volume = 2.5

[gameplay]
chess_difficulty = 9
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WOPR_CONFIG", path)

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Display.TypingSpeed != 0 {
		t.Errorf("typing_speed = %d, want clamped 0", c.Display.TypingSpeed)
	}
	if c.Display.ColorScheme != "green" {
		t.Errorf("color_scheme = %q, want fallback green", c.Display.ColorScheme)
	}
	if c.Audio.Volume != 1 {
		t.Errorf("volume = %v, want clamped 1", c.Audio.Volume)
	}
	if c.Gameplay.ChessDifficulty != 5 {
		t.Errorf("chess_difficulty = %d, want clamped 5", c.Gameplay.ChessDifficulty)
	}

	low := `
[gameplay]
chess_difficulty = 0
`
	if err := os.WriteFile(path, []byte(low), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	c, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Gameplay.ChessDifficulty != 1 {
		t.Errorf("chess_difficulty = %d, want clamped 1", c.Gameplay.ChessDifficulty)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("WOPR_CONFIG", path)

	want := Config{
		Display:  DisplayConfig{TypingSpeed: 45, ColorScheme: "white"},
		Audio:    AudioConfig{Enabled: true, VoiceEnabled: false, Volume: 0.5},
		Gameplay: GameplayConfig{SkipIntro: true, ChessDifficulty: 2, SaveGames: true},
		Database: DatabaseConfig{Path: "/tmp/roundtrip.db"},
	}
	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
