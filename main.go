package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/emoji-reactions/internal/config"
	"github.com/iburimskiy/emoji-reactions/internal/game"
	"github.com/iburimskiy/emoji-reactions/internal/reaction"
	"github.com/iburimskiy/emoji-reactions/internal/sound"
)

const appName = "emoji-reactions"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file")
	pickConfig := flag.Bool("pick-config", false, "choose the config file with a dialog")
	seed := flag.Uint64("seed", 0, "random seed (0 = from config, or time-seeded)")
	flag.Parse()

	path := *configPath
	if *pickConfig {
		picked, err := pickConfigFile()
		if err != nil {
			log.Printf("[Main] Warning: config dialog failed: %v", err)
		}
		if picked != "" {
			path = picked
		}
	}

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		log.Printf("[Main] Warning: %v (using defaults)", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	settings := config.OpenSettings(appName, cfg)
	prefs := settings.Settings()

	synth := sound.NewSynthesizer(sound.Options{
		Volume:     prefs.Volume,
		SampleRate: cfg.Audio.SampleRate,
		Muted:      !prefs.SoundEnabled,
	})
	synth.SetVolume(prefs.Volume)
	defer synth.Close()

	sim := reaction.NewSimulation(float64(cfg.Window.Width), float64(cfg.CanvasHeight()), reaction.Options{
		MaxEmojis:    cfg.Limits.MaxEmojis,
		MaxParticles: cfg.Limits.MaxParticles,
		Rand:         reaction.NewRand(cfg.Seed),
		Sound:        synth,
		NoParticles:  !cfg.Particles.Enabled,
	})

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowFloating(cfg.Window.AlwaysOnTop)

	g := game.NewGame(cfg, sim, synth, settings)
	err = ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{
		ScreenTransparent: cfg.Window.Transparent(),
	})
	if saveErr := settings.Save(); saveErr != nil {
		log.Printf("[Main] Warning: %v", saveErr)
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// pickConfigFile asks for a YAML config. Cancelling is not an error and
// returns an empty path.
func pickConfigFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Choose a reactions config"),
		zenity.FileFilters{
			{Name: "YAML config", Patterns: []string{"*.yaml", "*.yml"}},
		},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}
