package game

import (
	"testing"

	"github.com/iburimskiy/emoji-reactions/internal/config"
)

func TestLayoutButtonsCentered(t *testing.T) {
	rects := layoutButtons(config.WindowWidth, config.WindowHeight, 6)
	if len(rects) != 6 {
		t.Fatalf("len = %d, want 6", len(rects))
	}

	left := rects[0].Min.X
	right := config.WindowWidth - rects[5].Max.X
	if d := left - right; d < -1 || d > 1 {
		t.Errorf("row not centered: left margin %d, right margin %d", left, right)
	}
	barTop := config.WindowHeight - config.ButtonAreaHeight
	for i, r := range rects {
		if r.Dx() != config.ButtonSize || r.Dy() != config.ButtonSize {
			t.Errorf("button %d is %dx%d, want %dx%d", i, r.Dx(), r.Dy(), config.ButtonSize, config.ButtonSize)
		}
		if r.Min.Y < barTop || r.Max.Y+labelHeight > config.WindowHeight {
			t.Errorf("button %d %v outside the palette bar", i, r)
		}
		if i > 0 && r.Min.X-rects[i-1].Max.X != config.ButtonGap {
			t.Errorf("gap before button %d = %d, want %d", i, r.Min.X-rects[i-1].Max.X, config.ButtonGap)
		}
	}
}

func TestLayoutButtonsShrinkToFit(t *testing.T) {
	rects := layoutButtons(200, config.WindowHeight, 6)
	last := rects[len(rects)-1]
	if last.Max.X > 200 {
		t.Errorf("last button ends at %d, past the 200px window", last.Max.X)
	}
	if rects[0].Dx() >= config.ButtonSize {
		t.Errorf("button width %d, want it shrunk below %d", rects[0].Dx(), config.ButtonSize)
	}
}

func TestLayoutButtonsEmpty(t *testing.T) {
	if rects := layoutButtons(420, 700, 0); rects != nil {
		t.Errorf("layoutButtons with no entries = %v, want nil", rects)
	}
}

func TestHitButton(t *testing.T) {
	rects := layoutButtons(config.WindowWidth, config.WindowHeight, 6)
	r := rects[2]

	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"center", r.Min.X + r.Dx()/2, r.Min.Y + r.Dy()/2, 2},
		{"top-left corner", r.Min.X, r.Min.Y, 2},
		{"max edge is exclusive", r.Max.X, r.Min.Y, -1},
		{"gap", r.Max.X + 1, r.Min.Y + 1, -1},
		{"canvas", 10, 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hitButton(rects, tt.x, tt.y); got != tt.want {
				t.Errorf("hitButton(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
