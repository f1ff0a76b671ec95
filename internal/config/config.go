package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/emoji-reactions/internal/reaction"
)

const (
	WindowWidth  = 420
	WindowHeight = 700
	WindowTitle  = "Emoji Reactions"

	// Palette bar along the bottom of the window.
	ButtonAreaHeight = 100
	ButtonSize       = 56
	ButtonGap        = 8

	// Stats line above the palette bar.
	StatsHeight = 24

	// Resize notifications are applied once the window has been stable this
	// long (milliseconds).
	ResizeDebounceMS = 100

	// Audio defaults. These match the sound package's own defaults; config
	// does not import it so it stays free of the audio device stack.
	DefaultVolume     = 0.15
	DefaultSampleRate = 44100

	// Level meter.
	MeterWidth      = 80
	MeterHeight     = 6
	SmoothingFactor = 0.6
)

// Sentinel validation errors.
var (
	ErrEmptyPalette = errors.New("palette is empty")
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidLimit = errors.New("limit must be positive")
	ErrInvalidAudio = errors.New("invalid audio setting")
	ErrInvalidAlpha = errors.New("transparency must be in (0, 1]")
)

// PaletteEntry is one reaction button.
type PaletteEntry struct {
	Glyph string `yaml:"glyph"`
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Title       string `yaml:"title"`
	Background  string `yaml:"background"`
	AlwaysOnTop bool   `yaml:"alwaysOnTop"`

	// Transparency is the window opacity; below 1 the framebuffer is
	// created transparent.
	Transparency float64 `yaml:"transparency"`
}

// Transparent reports whether the window needs a transparent framebuffer.
func (w WindowConfig) Transparent() bool {
	return w.Transparency < 1
}

// AudioConfig tunes the synthesizer.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sampleRate"`
}

// ParticlesConfig switches particle effects.
type ParticlesConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LimitsConfig caps the live entity counts.
type LimitsConfig struct {
	MaxEmojis    int `yaml:"maxEmojis"`
	MaxParticles int `yaml:"maxParticles"`
}

// Config is the full application configuration.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Palette   []PaletteEntry  `yaml:"palette"`
	Audio     AudioConfig     `yaml:"audio"`
	Limits    LimitsConfig    `yaml:"limits"`
	Particles ParticlesConfig `yaml:"particles"`
	EmojiFont string          `yaml:"emojiFont"`
	Seed      uint64          `yaml:"seed"`
}

// DefaultPalette is the six stock reactions.
func DefaultPalette() []PaletteEntry {
	return []PaletteEntry{
		{Glyph: "❤️", Label: "Love", Color: "#ff3b5c"},
		{Glyph: "😂", Label: "Haha", Color: "#ffcc00"},
		{Glyph: "😮", Label: "Wow", Color: "#ff9500"},
		{Glyph: "😢", Label: "Sad", Color: "#5ac8fa"},
		{Glyph: "😡", Label: "Angry", Color: "#ff2d55"},
		{Glyph: "👍", Label: "Like", Color: "#34c759"},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:        WindowWidth,
			Height:       WindowHeight,
			Title:        WindowTitle,
			Background:   "#1a1a2e",
			Transparency: 1,
		},
		Palette: DefaultPalette(),
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     DefaultVolume,
			SampleRate: DefaultSampleRate,
		},
		Limits: LimitsConfig{
			MaxEmojis:    reaction.DefaultMaxEmojis,
			MaxParticles: reaction.DefaultMaxParticles,
		},
		Particles: ParticlesConfig{Enabled: true},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load for entry points: on any error it returns the
// defaults together with the error so the caller can report it and carry on.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks the palette, limits and audio settings.
func (c *Config) Validate() error {
	if len(c.Palette) == 0 {
		return ErrEmptyPalette
	}
	for i, p := range c.Palette {
		if p.Glyph == "" {
			return fmt.Errorf("palette[%d]: empty glyph", i)
		}
		if !reaction.ValidColor(p.Color) {
			return fmt.Errorf("palette[%d] %q: %w", i, p.Color, ErrInvalidColor)
		}
	}
	if c.Window.Background != "" && !reaction.ValidColor(c.Window.Background) {
		return fmt.Errorf("window background %q: %w", c.Window.Background, ErrInvalidColor)
	}
	if c.Window.Width <= 0 || c.Window.Height <= ButtonAreaHeight+StatsHeight {
		return fmt.Errorf("window %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalidLimit)
	}
	if c.Window.Transparency <= 0 || c.Window.Transparency > 1 {
		return fmt.Errorf("window transparency %v: %w", c.Window.Transparency, ErrInvalidAlpha)
	}
	if c.Limits.MaxEmojis <= 0 || c.Limits.MaxParticles <= 0 {
		return fmt.Errorf("limits %d/%d: %w", c.Limits.MaxEmojis, c.Limits.MaxParticles, ErrInvalidLimit)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("volume %v: %w", c.Audio.Volume, ErrInvalidAudio)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("sample rate %d: %w", c.Audio.SampleRate, ErrInvalidAudio)
	}
	return nil
}

// CanvasHeight is the height of the reaction area above stats and buttons.
func (c *Config) CanvasHeight() int {
	return CanvasHeightFor(c.Window.Height)
}

// CanvasHeightFor derives the reaction area height from a window height.
func CanvasHeightFor(windowHeight int) int {
	h := windowHeight - ButtonAreaHeight - StatsHeight
	if h < 1 {
		h = 1
	}
	return h
}
