package bezier

import (
	"github.com/olivier-w/springcurve/internal/config"
	"github.com/olivier-w/springcurve/internal/geom"
)

// ForSurface lays a curve across the configured surface: anchors at the
// margins on the horizontal midline, control points resting at one and two
// thirds of the width.
func ForSurface(cfg config.Config) *Curve {
	s := cfg.Surface
	mid := s.Height / 2
	return New(
		geom.Pt(s.Margin, mid),
		geom.Pt(s.Width/3, mid),
		geom.Pt(s.Width/3*2, mid),
		geom.Pt(s.Width-s.Margin, mid),
		Options{
			Samples:         cfg.Curve.Samples,
			TangentInterval: cfg.Curve.TangentInterval,
			ControlOffset:   cfg.Curve.ControlOffset,
			Stepper:         cfg.Stepper(),
		},
	)
}
