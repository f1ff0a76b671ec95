package game

import (
	"image"

	"github.com/iburimskiy/emoji-reactions/internal/config"
)

// layoutButtons centers n square buttons in the palette bar at the bottom
// of a width x height window, shrinking them when the row would not fit.
func layoutButtons(width, height, n int) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	size := config.ButtonSize
	gap := config.ButtonGap
	if avail := width - gap*(n+1); avail < size*n {
		size = avail / n
		if size < 1 {
			size = 1
		}
	}

	rowWidth := size*n + gap*(n-1)
	x := (width - rowWidth) / 2
	if x < 0 {
		x = 0
	}
	barTop := height - config.ButtonAreaHeight
	// Leave room for the label line under each button.
	y := barTop + (config.ButtonAreaHeight-size-labelHeight)/2
	if y < barTop {
		y = barTop
	}

	rects := make([]image.Rectangle, n)
	for i := range rects {
		rects[i] = image.Rect(x, y, x+size, y+size)
		x += size + gap
	}
	return rects
}

// labelHeight is the space reserved below a button for its label.
const labelHeight = 16

// hitButton returns the index of the button containing (x, y), or -1.
func hitButton(rects []image.Rectangle, x, y int) int {
	p := image.Pt(x, y)
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}
