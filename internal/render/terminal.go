package render

import (
	"image/color"
	"math"

	"github.com/olivier-w/springcurve/internal/canvas"
	"github.com/olivier-w/springcurve/internal/geom"
)

// Terminal draws on a braille canvas stretched over a logical surface of
// Width x Height. Stroke widths collapse to a single dot.
type Terminal struct {
	Canvas *canvas.Canvas
	Width  float64
	Height float64
}

var _ Surface = Terminal{}

func (t Terminal) Line(a, b geom.Point, c color.RGBA, _ float64) {
	x0, y0 := t.dot(a)
	x1, y1 := t.dot(b)
	t.Canvas.Line(x0, y0, x1, y1, c)
}

func (t Terminal) Dashed(path []geom.Point, c color.RGBA, dash float64) {
	d := max(1, int(math.Round(dash*t.scaleX())))
	phase := 0
	for i := 1; i < len(path); i++ {
		x0, y0 := t.dot(path[i-1])
		x1, y1 := t.dot(path[i])
		phase = t.Canvas.Dashed(x0, y0, x1, y1, d, phase, c)
	}
}

func (t Terminal) Disc(center geom.Point, r float64, c color.RGBA) {
	x, y := t.dot(center)
	t.Canvas.Disc(x, y, int(math.Round(r*t.scaleX())), c)
}

func (t Terminal) scaleX() float64 {
	w, _ := t.Canvas.Dots()
	return float64(w) / t.Width
}

func (t Terminal) dot(p geom.Point) (int, int) {
	w, h := t.Canvas.Dots()
	x := int(math.Floor(p.X * float64(w) / t.Width))
	y := int(math.Floor(p.Y * float64(h) / t.Height))
	return x, y
}
