// Package config loads and persists WOPR's terminal settings: a TOML
// file under ~/.config/wopr, overridable per key through WOPR_
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Display  DisplayConfig
	Audio    AudioConfig
	Gameplay GameplayConfig
	Database DatabaseConfig
}

// DisplayConfig holds terminal presentation settings.
type DisplayConfig struct {
	// TypingSpeed is the typewriter pace in characters per second;
	// zero renders text instantly.
	TypingSpeed int `mapstructure:"typing_speed"`
	// ColorScheme is the phosphor palette: green, amber, or white.
	ColorScheme string `mapstructure:"color_scheme"`
}

// AudioConfig holds sound and voice settings.
type AudioConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	VoiceEnabled bool    `mapstructure:"voice_enabled"`
	Volume       float64 `mapstructure:"volume"`
}

// GameplayConfig holds session behavior settings.
type GameplayConfig struct {
	SkipIntro bool `mapstructure:"skip_intro"`
	// ChessDifficulty is the reply search depth on a 1-5 scale.
	ChessDifficulty int `mapstructure:"chess_difficulty"`
	// SaveGames enables the sqlite game journal.
	SaveGames bool `mapstructure:"save_games"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from file and env. Env var overrides use
// prefix WOPR_. A missing config file is not an error; defaults apply.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("display.typing_speed", 30)
	v.SetDefault("display.color_scheme", "green")
	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.voice_enabled", true)
	v.SetDefault("audio.volume", 0.8)
	v.SetDefault("gameplay.skip_intro", false)
	v.SetDefault("gameplay.chess_difficulty", 3)
	v.SetDefault("gameplay.save_games", true)
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "wopr", "wopr.db"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("WOPR_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "wopr"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("WOPR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.normalize()
	return c, nil
}

// normalize pulls out-of-range values back to something the terminal
// can run with rather than failing the whole session over a typo.
func (c *Config) normalize() {
	if c.Display.TypingSpeed < 0 {
		c.Display.TypingSpeed = 0
	}
	switch strings.ToLower(c.Display.ColorScheme) {
	case "green", "amber", "white":
		c.Display.ColorScheme = strings.ToLower(c.Display.ColorScheme)
	default:
		c.Display.ColorScheme = "green"
	}
	if c.Audio.Volume < 0 {
		c.Audio.Volume = 0
	}
	if c.Audio.Volume > 1 {
		c.Audio.Volume = 1
	}
	if c.Gameplay.ChessDifficulty < 1 {
		c.Gameplay.ChessDifficulty = 1
	}
	if c.Gameplay.ChessDifficulty > 5 {
		c.Gameplay.ChessDifficulty = 5
	}
}

// Save writes the provided config to disk, creating the config
// directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("WOPR_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "wopr", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("display.typing_speed", cfg.Display.TypingSpeed)
	v.Set("display.color_scheme", cfg.Display.ColorScheme)
	v.Set("audio.enabled", cfg.Audio.Enabled)
	v.Set("audio.voice_enabled", cfg.Audio.VoiceEnabled)
	v.Set("audio.volume", cfg.Audio.Volume)
	v.Set("gameplay.skip_intro", cfg.Gameplay.SkipIntro)
	v.Set("gameplay.chess_difficulty", cfg.Gameplay.ChessDifficulty)
	v.Set("gameplay.save_games", cfg.Gameplay.SaveGames)
	v.Set("database.path", cfg.Database.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
