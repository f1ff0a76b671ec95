// Command reactions-tui runs the reaction overlay in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/emoji-reactions/internal/config"
	"github.com/iburimskiy/emoji-reactions/internal/sound"
	"github.com/iburimskiy/emoji-reactions/internal/tui"
)

const appName = "emoji-reactions"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file")
	seed := flag.Uint64("seed", 0, "random seed (0 = from config, or time-seeded)")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	// The terminal is ours while running; logs would corrupt the screen.
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
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

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorDefault).
		Foreground(tcell.ColorWhite))
	screen.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runErr := tui.NewRunner(screen, cfg, synth, settings).Run(ctx)
	screen.Fini()
	if err := settings.Save(); err != nil {
		log.Printf("[Main] Warning: %v", err)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
