// Package render draws sampled curve geometry onto a Surface.
package render

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivier-w/springcurve/internal/bezier"
	"github.com/olivier-w/springcurve/internal/config"
	"github.com/olivier-w/springcurve/internal/geom"
)

// Surface is anything strokes can be drawn on. Coordinates are logical
// surface units; implementations scale them to their own resolution.
type Surface interface {
	Line(a, b geom.Point, c color.RGBA, width float64)
	Dashed(path []geom.Point, c color.RGBA, dash float64)
	Disc(center geom.Point, r float64, c color.RGBA)
}

// Layers selects the optional guides drawn around the curve.
type Layers uint8

const (
	LayerTangents Layers = 1 << iota
	LayerSkeleton

	LayerAll = LayerTangents | LayerSkeleton
)

type Style struct {
	config.Palette
	LineWidth     float64
	PointRadius   float64
	TangentLength float64
	Dash          float64
}

// StyleFrom resolves the drawing style of a configuration.
func StyleFrom(cfg config.Config) (Style, error) {
	pal, err := cfg.Style.Palette()
	if err != nil {
		return Style{}, err
	}
	return Style{
		Palette:       pal,
		LineWidth:     cfg.Style.LineWidth,
		PointRadius:   cfg.Style.PointRadius,
		TangentLength: cfg.Curve.TangentLength,
		Dash:          cfg.Style.Dash,
	}, nil
}

// Frame is the geometry of one animation frame.
type Frame struct {
	Samples  []bezier.Sample
	Controls [4]geom.Point
	Layers   Layers
}

// Capture samples c into a new Frame. The frame shares nothing with c.
func Capture(c *bezier.Curve, layers Layers) Frame {
	return Frame{Samples: c.Sample(), Controls: c.Controls(), Layers: layers}
}

// Draw paints f: the skeleton underneath, then the curve, its tangent
// markers and finally the two control point markers on top.
func Draw(s Surface, f Frame, st Style) {
	if f.Layers&LayerSkeleton != 0 {
		s.Dashed(f.Controls[:], st.Skeleton, st.Dash)
	}

	for i := 1; i < len(f.Samples); i++ {
		s.Line(f.Samples[i-1].Point, f.Samples[i].Point, st.Line, st.LineWidth)
	}

	if f.Layers&LayerTangents != 0 {
		for _, smp := range f.Samples {
			if !smp.HasTangent {
				continue
			}
			end := r2.Add(smp.Point, r2.Scale(st.TangentLength, smp.Tangent))
			s.Line(smp.Point, end, st.Tangent, 1)
		}
	}

	s.Disc(f.Controls[1], st.PointRadius, st.Point)
	s.Disc(f.Controls[2], st.PointRadius, st.Point)
}
