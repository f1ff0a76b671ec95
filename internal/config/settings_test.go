package config

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

var testDefaults = Settings{SoundEnabled: true, Volume: 0.15}

func openTestManager(t *testing.T, name string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	m, err := gdata.Open(gdata.Config{AppName: name})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func TestSettingsStoreWithoutManager(t *testing.T) {
	s := NewSettingsStore(nil, testDefaults)
	if s.Settings() != testDefaults {
		t.Errorf("Settings() = %+v, want defaults", s.Settings())
	}
	s.SetSoundEnabled(false)
	if err := s.Save(); err != nil {
		t.Errorf("Save() without manager = %v, want nil", err)
	}
	if s.Settings().SoundEnabled {
		t.Error("in-memory change lost")
	}
}

func TestSettingsStoreRoundTrip(t *testing.T) {
	m := openTestManager(t, "emoji_reactions_settings_test")
	s := NewSettingsStore(m, testDefaults)
	s.SetSoundEnabled(false)
	s.SetVolume(0.6)
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsStore(m, testDefaults)
	got := reloaded.Settings()
	if got.SoundEnabled || got.Volume != 0.6 {
		t.Errorf("reloaded settings = %+v, want sound off at 0.6", got)
	}
}

func TestSettingsStoreClampsVolume(t *testing.T) {
	s := NewSettingsStore(nil, testDefaults)
	s.SetVolume(5)
	if s.Settings().Volume != 1 {
		t.Errorf("Volume = %v, want 1", s.Settings().Volume)
	}
	s.SetVolume(-5)
	if s.Settings().Volume != 0 {
		t.Errorf("Volume = %v, want 0", s.Settings().Volume)
	}
}

func TestSettingsStoreCorruptData(t *testing.T) {
	m := openTestManager(t, "emoji_reactions_settings_corrupt")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("volume: [")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}
	s := NewSettingsStore(m, testDefaults)
	if s.Settings() != testDefaults {
		t.Errorf("corrupt data should fall back to defaults, got %+v", s.Settings())
	}
}

func TestOpenSettingsUsesConfigDefaults(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	cfg := Default()
	cfg.Audio.Enabled = false
	cfg.Audio.Volume = 0.4

	s := OpenSettings("emoji_reactions_open_test", cfg)
	want := Settings{SoundEnabled: false, Volume: 0.4}
	if got := s.Settings(); got != want {
		t.Errorf("Settings() = %+v, want %+v", got, want)
	}

	s.SetVolume(0.7)
	if err := s.Save(); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	if got := OpenSettings("emoji_reactions_open_test", cfg).Settings().Volume; got != 0.7 {
		t.Errorf("reopened volume = %v, want 0.7", got)
	}
}
