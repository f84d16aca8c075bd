package snapshot

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivier-w/springcurve/internal/bezier"
	"github.com/olivier-w/springcurve/internal/config"
	"github.com/olivier-w/springcurve/internal/geom"
	"github.com/olivier-w/springcurve/internal/render"
)

func restFrame(t *testing.T) (render.Frame, render.Style) {
	t.Helper()
	cfg := config.Default()
	st, err := render.StyleFrom(cfg)
	require.NoError(t, err)
	return render.Capture(bezier.ForSurface(cfg), render.LayerAll), st
}

func rgbaAt(t *testing.T, m interface{ At(x, y int) color.Color }, x, y int) color.RGBA {
	t.Helper()
	return color.RGBAModel.Convert(m.At(x, y)).(color.RGBA)
}

func TestEncode(t *testing.T) {
	f, st := restFrame(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, f, st, 800, 500))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())

	assert.Equal(t, st.Background, rgbaAt(t, img, 5, 5))
	assert.Equal(t, st.Line, rgbaAt(t, img, 100, 250), "resting curve runs along the midline")
	assert.Equal(t, st.Point, rgbaAt(t, img, 266, 250), "p1 marker")
	assert.Equal(t, st.Background, rgbaAt(t, img, 100, 240), "stroke is only a few units wide")
}

func TestLineDegenerate(t *testing.T) {
	m := New(10, 10, color.RGBA{A: 0xff})
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	m.Line(geom.Pt(5, 5), geom.Pt(5, 5), white, 1)
	assert.Equal(t, color.RGBA{A: 0xff}, m.RGBA().RGBAAt(5, 5), "zero length hairline draws nothing")

	m.Line(geom.Pt(5, 5), geom.Pt(5, 5), white, 4)
	assert.Equal(t, white, m.RGBA().RGBAAt(5, 5), "wide stroke leaves a round dot")
}

func TestDashedLeavesGaps(t *testing.T) {
	bg := color.RGBA{A: 0xff}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	m := New(40, 10, bg)

	m.Dashed([]geom.Point{geom.Pt(0, 5), geom.Pt(20, 5), geom.Pt(40, 5)}, white, 5)

	img := m.RGBA()
	assert.NotEqual(t, bg, img.RGBAAt(2, 5), "first dash")
	assert.Equal(t, bg, img.RGBAAt(7, 5), "first gap")
	assert.NotEqual(t, bg, img.RGBAAt(12, 5))
	assert.Equal(t, bg, img.RGBAAt(17, 5))
	assert.NotEqual(t, bg, img.RGBAAt(22, 5), "pattern continues across the corner")
	assert.Equal(t, bg, img.RGBAAt(27, 5))
}

func TestSave(t *testing.T) {
	f, st := restFrame(t)
	path := filepath.Join(t.TempDir(), "curve.png")
	require.NoError(t, Save(path, f, st, 800, 500))

	err := Save(filepath.Join(t.TempDir(), "missing", "curve.png"), f, st, 800, 500)
	assert.Error(t, err)
}
