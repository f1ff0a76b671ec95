package game

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/emoji-reactions/internal/config"
	"github.com/iburimskiy/emoji-reactions/internal/reaction"
	"github.com/iburimskiy/emoji-reactions/internal/sound"
)

const (
	volumeStep    = 0.05
	pulseDuration = 200 * time.Millisecond
	meterGain     = 4

	statsTextSize = 14
	labelTextSize = 11
	hintTextSize  = 20
)

var (
	panelColor        = color.NRGBA{R: 0x16, G: 0x16, B: 0x2b, A: 0xff}
	buttonColor       = color.NRGBA{R: 0x2a, G: 0x2a, B: 0x4a, A: 0xff}
	buttonHoverColor  = color.NRGBA{R: 0x3a, G: 0x3a, B: 0x64, A: 0xff}
	buttonBorderColor = color.RGBA{R: 0x50, G: 0x50, B: 0x7a, A: 0xff}
	statsColor        = color.RGBA{R: 0xc8, G: 0xc8, B: 0xe0, A: 0xff}
	meterTrackColor   = color.RGBA{R: 0x30, G: 0x30, B: 0x50, A: 0xff}
)

var digitKeys = [...]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.Key4, ebiten.Key5, ebiten.Key6,
	ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// Game is the desktop front-end: a reaction canvas above a stats line and a
// palette bar.
type Game struct {
	cfg      *config.Config
	sim      *reaction.Simulation
	synth    *sound.Synthesizer
	settings *config.SettingsStore
	surface  *Surface

	start         time.Time
	width, height int
	resize        *resizeDebouncer

	buttons   []image.Rectangle
	hovered   int
	pressedAt []time.Duration
	touchIDs  []ebiten.TouchID

	level   float64
	prevKey map[ebiten.Key]bool
}

// NewGame wires a simulation and synthesizer to the window described by cfg.
func NewGame(cfg *config.Config, sim *reaction.Simulation, synth *sound.Synthesizer, settings *config.SettingsStore) *Game {
	var bottom color.NRGBA
	if cfg.Window.Background != "" {
		bottom = reaction.ParseColor(cfg.Window.Background)
	}
	g := &Game{
		cfg:       cfg,
		sim:       sim,
		synth:     synth,
		settings:  settings,
		surface:   NewSurface(loadFontOrFallback(cfg.EmojiFont), bottom),
		start:     time.Now(),
		width:     cfg.Window.Width,
		height:    cfg.Window.Height,
		resize:    newResizeDebouncer(config.ResizeDebounceMS*time.Millisecond, cfg.Window.Width, cfg.Window.Height),
		hovered:   -1,
		pressedAt: make([]time.Duration, len(cfg.Palette)),
		prevKey:   make(map[ebiten.Key]bool),
	}
	g.surface.SetOpacity(cfg.Window.Transparency)
	for i := range g.pressedAt {
		g.pressedAt[i] = -pulseDuration
	}
	g.buttons = layoutButtons(g.width, g.height, len(cfg.Palette))
	return g
}

func (g *Game) Update() error {
	now := time.Since(g.start)

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if w, h, ok := g.resize.ready(time.Now()); ok {
		g.applySize(w, h)
	}

	mouseX, mouseY := ebiten.CursorPosition()
	g.hovered = hitButton(g.buttons, mouseX, mouseY)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.press(mouseX, mouseY, now)
	}
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.press(x, y, now)
	}

	for i, k := range digitKeys {
		if i >= len(g.cfg.Palette) {
			break
		}
		if justPressed(k) {
			g.react(i, now)
		}
	}
	if justPressed(ebiten.KeyM) {
		g.toggleSound()
	}
	if justPressed(ebiten.KeyEqual) || justPressed(ebiten.KeyNumpadAdd) {
		g.changeVolume(volumeStep)
	}
	if justPressed(ebiten.KeyMinus) || justPressed(ebiten.KeyNumpadSubtract) {
		g.changeVolume(-volumeStep)
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.sim.Step(now)
	g.level = config.SmoothingFactor*g.level + (1-config.SmoothingFactor)*g.synth.Level()
	return nil
}

// press handles a click or touch at window coordinates.
func (g *Game) press(x, y int, now time.Duration) {
	// Audio may only start from a user gesture.
	g.synth.Init()

	if i := hitButton(g.buttons, x, y); i >= 0 {
		g.react(i, now)
		return
	}
	if y >= 0 && y < config.CanvasHeightFor(g.height) {
		p := g.cfg.Palette[g.sim.Rand().IntN(len(g.cfg.Palette))]
		g.sim.SpawnAt(p.Glyph, p.Color, float64(x))
	}
}

// react fires palette entry i from the middle of the canvas.
func (g *Game) react(i int, now time.Duration) {
	g.synth.Init()
	p := g.cfg.Palette[i]
	w, _ := g.sim.Size()
	g.sim.SpawnReaction(p.Glyph, p.Color, w/2)
	g.pressedAt[i] = now
}

func (g *Game) toggleSound() {
	enabled := g.synth.Toggle()
	g.settings.SetSoundEnabled(enabled)
	g.saveSettings()
}

func (g *Game) changeVolume(delta float64) {
	g.synth.SetVolume(g.synth.Volume() + delta)
	g.settings.SetVolume(g.synth.Volume())
	g.saveSettings()
}

func (g *Game) saveSettings() {
	if err := g.settings.Save(); err != nil {
		log.Printf("[Game] Warning: failed to save settings: %v", err)
	}
}

func (g *Game) applySize(width, height int) {
	g.width, g.height = width, height
	g.sim.Resize(float64(width), float64(config.CanvasHeightFor(height)))
	g.buttons = layoutButtons(width, height, len(g.cfg.Palette))
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Since(g.start)
	canvasHeight := config.CanvasHeightFor(g.height)

	screen.Clear()
	vector.DrawFilledRect(screen, 0, 0, float32(g.width), float32(g.height), scaleAlpha(panelColor, g.cfg.Window.Transparency), false)

	canvas := screen.SubImage(image.Rect(0, 0, g.width, canvasHeight)).(*ebiten.Image)
	g.surface.SetTarget(canvas)
	g.sim.Render(g.surface)
	if g.sim.Total() == 0 {
		g.surface.DrawCenteredText("Tap to react!", float64(g.width)/2, float64(canvasHeight)/2, hintTextSize, color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80})
	}
	g.drawMeter(screen)
	ebitenutil.DebugPrintAt(screen, "1-6: react  M: sound  +/-: volume  Esc/Q: quit", 8, 4)

	g.surface.SetTarget(screen)
	g.drawStats(canvasHeight, now)
	g.drawButtons(screen, now)
}

func (g *Game) drawStats(canvasHeight int, now time.Duration) {
	st := g.sim.Stats()
	y := float64(canvasHeight) + (config.StatsHeight-statsTextSize)/2
	left := fmt.Sprintf("Reactions: %d   Active: %d   Top: %s", st.Total, st.Active, st.TopGlyph)
	g.surface.DrawText(left, 8, y, statsTextSize, statsColor)

	status := "off"
	if g.synth.Enabled() && g.synth.State() != sound.StateDisabled {
		status = fmt.Sprintf("%d%%", int(g.synth.Volume()*100+0.5))
	}
	right := fmt.Sprintf("Sound %s  %s", status, formatDuration(now))
	x := float64(g.width) - 8 - g.surface.TextWidth(right, statsTextSize)
	g.surface.DrawText(right, x, y, statsTextSize, statsColor)
}

func (g *Game) drawButtons(screen *ebiten.Image, now time.Duration) {
	for i, r := range g.buttons {
		p := g.cfg.Palette[i]
		x, y := float32(r.Min.X), float32(r.Min.Y)
		w, h := float32(r.Dx()), float32(r.Dy())

		bg := buttonColor
		if i == g.hovered {
			bg = buttonHoverColor
		}
		since := now - g.pressedAt[i]
		if since >= 0 && since < pulseDuration {
			t := 1 - float64(since)/float64(pulseDuration)
			accent := reaction.ParseColor(p.Color)
			bg = reaction.LerpColor(bg, accent, 0.35*t)
			grow := float32(3 * t)
			vector.DrawFilledRect(screen, x-grow, y-grow, w+2*grow, h+2*grow, bg, false)
			vector.StrokeRect(screen, x-grow, y-grow, w+2*grow, h+2*grow, 2, scaleAlpha(accent, 0.4+0.6*t), false)
		} else {
			vector.DrawFilledRect(screen, x, y, w, h, bg, false)
			vector.StrokeRect(screen, x, y, w, h, 2, buttonBorderColor, false)
		}

		cx := float64(r.Min.X) + float64(r.Dx())/2
		cy := float64(r.Min.Y) + float64(r.Dy())/2
		g.surface.DrawGlyph(p.Glyph, cx, cy, float64(r.Dy())*0.55, 0, 1)

		label := fmt.Sprintf("%s %d", p.Label, g.sim.Count(p.Glyph))
		g.surface.DrawCenteredText(label, cx, float64(r.Max.Y)+labelHeight/2, labelTextSize, statsColor)
	}
}

// drawMeter shows the smoothed output level in the canvas corner.
func (g *Game) drawMeter(screen *ebiten.Image) {
	x := float32(g.width - config.MeterWidth - 8)
	y := float32(20)
	vector.DrawFilledRect(screen, x, y, config.MeterWidth, config.MeterHeight, meterTrackColor, false)

	v := clamp01(g.level * meterGain)
	if v <= 0 {
		return
	}
	r, gr, b := hsvToRgb(120-120*v, 0.8, 0.9)
	vector.DrawFilledRect(screen, x, y, float32(config.MeterWidth*v), config.MeterHeight, color.RGBA{R: r, G: gr, B: b, A: 255}, false)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize.observe(outsideWidth, outsideHeight, time.Now())
	return g.width, g.height
}
