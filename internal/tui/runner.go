package tui

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/iburimskiy/emoji-reactions/internal/config"
	"github.com/iburimskiy/emoji-reactions/internal/reaction"
	"github.com/iburimskiy/emoji-reactions/internal/sound"
)

// FrameDuration is the target frame time of the terminal loop.
const FrameDuration = time.Second / 60

const volumeStep = 0.05

var hintColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// hudRows are the stats line and the palette line under the canvas.
const hudRows = 2

type span struct{ from, to int }

// Runner drives a simulation in a terminal.
type Runner struct {
	screen   tcell.Screen
	cfg      *config.Config
	sim      *reaction.Simulation
	synth    *sound.Synthesizer
	settings *config.SettingsStore
	surface  *Surface

	start       time.Time
	cols, rows  int
	entries     []span
	prevButtons tcell.ButtonMask
}

// NewRunner sizes a simulation to screen. The screen must already be
// initialized.
func NewRunner(screen tcell.Screen, cfg *config.Config, synth *sound.Synthesizer, settings *config.SettingsStore) *Runner {
	r := &Runner{
		screen:   screen,
		cfg:      cfg,
		synth:    synth,
		settings: settings,
		start:    time.Now(),
	}
	var bottom color.NRGBA
	if cfg.Window.Background != "" {
		bottom = reaction.ParseColor(cfg.Window.Background)
	}
	r.cols, r.rows = screen.Size()
	canvasRows := r.canvasRows()
	r.surface = NewSurface(r.cols, canvasRows, bottom)
	r.sim = reaction.NewSimulation(float64(r.cols*CellWidth), float64(canvasRows*CellHeight), reaction.Options{
		MaxEmojis:    cfg.Limits.MaxEmojis,
		MaxParticles: cfg.Limits.MaxParticles,
		Rand:         reaction.NewRand(cfg.Seed),
		Sound:        synth,
		NoParticles:  !cfg.Particles.Enabled,
	})
	return r
}

// Simulation exposes the driven simulation.
func (r *Runner) Simulation() *reaction.Simulation {
	return r.sim
}

func (r *Runner) canvasRows() int {
	return max(r.rows-hudRows, 1)
}

// Run polls input and renders frames until the user quits or ctx ends.
func (r *Runner) Run(ctx context.Context) error {
	r.screen.EnableMouse()
	defer r.screen.DisableMouse()

	// Start input handling goroutine
	events := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(FrameDuration)
	defer ticker.Stop()

	for {
		// Handle input (non-blocking)
	drain:
		for {
			select {
			case ev := <-events:
				if !r.HandleEvent(ev) {
					return nil
				}
			default:
				break drain
			}
		}

		r.Frame(time.Since(r.start))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// HandleEvent applies one terminal event. It reports false when the user
// asked to quit.
func (r *Runner) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return r.handleKey(ev)
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && r.prevButtons&tcell.Button1 == 0
		r.prevButtons = buttons
		if pressed {
			x, y := ev.Position()
			r.press(x, y)
		}
	case *tcell.EventResize:
		r.resize()
	}
	return true
}

func (r *Runner) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ch := ev.Rune(); {
	case ch == 'q' || ch == 'Q':
		return false
	case ch >= '1' && ch <= '9':
		if i := int(ch - '1'); i < len(r.cfg.Palette) {
			r.react(i)
		}
	case ch == 'm' || ch == 'M':
		r.settings.SetSoundEnabled(r.synth.Toggle())
		r.saveSettings()
	case ch == '+' || ch == '=':
		r.changeVolume(volumeStep)
	case ch == '-':
		r.changeVolume(-volumeStep)
	}
	return true
}

// press handles a click at cell coordinates.
func (r *Runner) press(col, row int) {
	r.synth.Init()
	canvasRows := r.canvasRows()
	switch {
	case row < canvasRows:
		p := r.cfg.Palette[r.sim.Rand().IntN(len(r.cfg.Palette))]
		r.sim.SpawnAt(p.Glyph, p.Color, (float64(col)+0.5)*CellWidth)
	case row == canvasRows+1:
		for i, sp := range r.entries {
			if col >= sp.from && col < sp.to {
				r.react(i)
				return
			}
		}
	}
}

func (r *Runner) react(i int) {
	r.synth.Init()
	p := r.cfg.Palette[i]
	w, _ := r.sim.Size()
	r.sim.SpawnReaction(p.Glyph, p.Color, w/2)
}

func (r *Runner) changeVolume(delta float64) {
	r.synth.SetVolume(r.synth.Volume() + delta)
	r.settings.SetVolume(r.synth.Volume())
	r.saveSettings()
}

func (r *Runner) saveSettings() {
	if err := r.settings.Save(); err != nil {
		log.Printf("[TUI] Warning: failed to save settings: %v", err)
	}
}

func (r *Runner) resize() {
	r.cols, r.rows = r.screen.Size()
	canvasRows := r.canvasRows()
	r.surface.Resize(r.cols, canvasRows)
	r.sim.Resize(float64(r.cols*CellWidth), float64(canvasRows*CellHeight))
	r.screen.Sync()
}

// Frame advances the simulation to now and redraws the screen.
func (r *Runner) Frame(now time.Duration) {
	r.sim.Step(now)
	r.sim.Render(r.surface)

	canvasRows := r.canvasRows()
	if r.sim.Total() == 0 {
		hint := "Tap to react!"
		r.surface.PutText((r.cols-runewidth.StringWidth(hint))/2, canvasRows/2, hint, hintColor)
	}
	r.surface.Flush(r.screen, 0)
	r.drawStats(canvasRows)
	r.drawPalette(canvasRows + 1)
	r.screen.Show()
}

func (r *Runner) drawStats(row int) {
	r.clearRow(row)
	st := r.sim.Stats()
	status := "off"
	if r.synth.Enabled() && r.synth.State() != sound.StateDisabled {
		status = fmt.Sprintf("%d%%", int(r.synth.Volume()*100+0.5))
	}
	line := fmt.Sprintf("Reactions: %d  Active: %d  Top: %s  Sound: %s", st.Total, st.Active, st.TopGlyph, status)
	drawText(r.screen, 1, row, line, tcell.StyleDefault.Foreground(tcell.ColorLightGray))
}

func (r *Runner) drawPalette(row int) {
	r.clearRow(row)
	r.entries = r.entries[:0]
	x := 1
	for i, p := range r.cfg.Palette {
		label := fmt.Sprintf("%d %s %s %d", i+1, p.Glyph, p.Label, r.sim.Count(p.Glyph))
		c := reaction.ParseColor(p.Color)
		next := drawText(r.screen, x, row, label, tcell.StyleDefault.Foreground(tcellColor(c)))
		r.entries = append(r.entries, span{from: x, to: next})
		x = next + 2
	}
}

func (r *Runner) clearRow(row int) {
	for col := 0; col < r.cols; col++ {
		r.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
	}
}

// drawText prints s at (x, y) and returns the column after it.
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		if runewidth.RuneWidth(ch) == 0 && x > 0 {
			// Combining marks and variation selectors attach to the previous cell.
			mainc, combc, st, _ := screen.GetContent(x-1, y)
			screen.SetContent(x-1, y, mainc, append(combc, ch), st)
			continue
		}
		screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
	return x
}
