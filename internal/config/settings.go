package config

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings are the user preferences that survive restarts. Reaction counts
// are deliberately not among them.
type Settings struct {
	SoundEnabled bool    `yaml:"soundEnabled"`
	Volume       float64 `yaml:"volume"`
}

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// SettingsStore loads and saves Settings through gdata. A nil manager keeps
// settings in memory only.
type SettingsStore struct {
	manager  *gdata.Manager
	defaults Settings
	settings Settings
}

// NewSettingsStore loads saved settings, falling back to defaults. A load
// failure is logged, not returned.
func NewSettingsStore(manager *gdata.Manager, defaults Settings) *SettingsStore {
	s := &SettingsStore{
		manager:  manager,
		defaults: defaults,
		settings: defaults,
	}
	if err := s.Load(); err != nil {
		log.Printf("[SettingsStore] Warning: failed to load settings: %v (using defaults)", err)
	}
	return s
}

// OpenSettingsManager opens the per-user gdata store for appName.
func OpenSettingsManager(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open settings store: %w", err)
	}
	return m, nil
}

// OpenSettings opens the per-user store for appName with defaults taken from
// cfg. When the store cannot be opened settings live in memory only.
func OpenSettings(appName string, cfg *Config) *SettingsStore {
	defaults := Settings{SoundEnabled: cfg.Audio.Enabled, Volume: cfg.Audio.Volume}
	manager, err := OpenSettingsManager(appName)
	if err != nil {
		log.Printf("[SettingsStore] Warning: %v (settings will not be saved)", err)
		manager = nil
	}
	return NewSettingsStore(manager, defaults)
}

// Load reads saved settings. Missing data keeps the defaults.
func (s *SettingsStore) Load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(settingsObject, settingsProperty) {
		s.settings = s.defaults
		return nil
	}

	data, err := s.manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		s.settings = s.defaults
		return fmt.Errorf("load settings: %w", err)
	}

	loaded := s.defaults
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		s.settings = s.defaults
		return fmt.Errorf("unmarshal settings: %w", err)
	}
	loaded.Volume = clampVolume(loaded.Volume)
	s.settings = loaded
	return nil
}

// Save writes the current settings. Without a manager it does nothing.
func (s *SettingsStore) Save() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := s.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Settings returns a copy of the current settings.
func (s *SettingsStore) Settings() Settings {
	return s.settings
}

// SetSoundEnabled changes the sound toggle in memory; call Save to persist.
func (s *SettingsStore) SetSoundEnabled(enabled bool) {
	s.settings.SoundEnabled = enabled
}

// SetVolume changes the volume in memory, clamped to [0, 1].
func (s *SettingsStore) SetVolume(v float64) {
	s.settings.Volume = clampVolume(v)
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
