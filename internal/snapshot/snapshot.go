// Package snapshot rasterizes curve frames to PNG images.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivier-w/springcurve/internal/geom"
	"github.com/olivier-w/springcurve/internal/render"
)

// discSegments is the number of edges used to approximate a circle.
const discSegments = 32

// Image is a render.Surface backed by an RGBA image whose pixels map one to
// one onto logical surface units.
type Image struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

var _ render.Surface = (*Image)(nil)

// New returns a w x h image filled with bg.
func New(w, h int, bg color.RGBA) *Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Image{img: img, z: vector.NewRasterizer(0, 0)}
}

// RGBA returns the underlying image.
func (m *Image) RGBA() *image.RGBA {
	return m.img
}

// Line strokes a segment of the given width with round caps.
func (m *Image) Line(a, b geom.Point, c color.RGBA, width float64) {
	hw := math.Max(width, 1) / 2
	d := r2.Sub(b, a)
	n := r2.Norm(d)
	if n > 0 {
		// Normal scaled to half the stroke width.
		off := r2.Scale(hw/n, geom.Pt(-d.Y, d.X))
		m.fill([]geom.Point{r2.Add(a, off), r2.Add(b, off), r2.Sub(b, off), r2.Sub(a, off)}, c)
	}
	if width > 1 {
		m.Disc(a, hw, c)
		m.Disc(b, hw, c)
	}
}

// Dashed strokes a one unit wide polyline, alternating dash units drawn and
// dash units skipped along its whole length.
func (m *Image) Dashed(path []geom.Point, c color.RGBA, dash float64) {
	if dash <= 0 {
		for i := 1; i < len(path); i++ {
			m.Line(path[i-1], path[i], c, 1)
		}
		return
	}
	var travelled float64
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		seg := geom.Dist(a, b)
		for pos := 0.0; pos < seg; {
			phase := math.Mod(travelled+pos, 2*dash)
			step := math.Min(dash-math.Mod(phase, dash), seg-pos)
			if phase < dash {
				m.Line(geom.Lerp(a, b, pos/seg), geom.Lerp(a, b, (pos+step)/seg), c, 1)
			}
			pos += step
		}
		travelled += seg
	}
}

// Disc fills a circle of radius r.
func (m *Image) Disc(center geom.Point, r float64, c color.RGBA) {
	if r <= 0 {
		return
	}
	pts := make([]geom.Point, discSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / discSegments
		pts[i] = geom.Pt(center.X+r*math.Cos(a), center.Y+r*math.Sin(a))
	}
	m.fill(pts, c)
}

// fill paints the closed polygon pts. Only the polygon's bounding box is
// rasterized.
func (m *Image) fill(pts []geom.Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	box := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(m.img.Bounds())
	if box.Empty() {
		return
	}

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	m.z.Reset(box.Dx(), box.Dy())
	m.z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		m.z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	m.z.ClosePath()
	m.z.Draw(m.img, box, image.NewUniform(c), image.Point{})
}

// Encode rasterizes f at the logical surface size and writes it as PNG.
func Encode(w io.Writer, f render.Frame, st render.Style, width, height int) error {
	m := New(width, height, st.Background)
	render.Draw(m, f, st)
	if err := png.Encode(w, m.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Save writes f to a PNG file at path.
func Save(path string, f render.Frame, st render.Style, width, height int) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := Encode(out, f, st, width, height); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return nil
}
