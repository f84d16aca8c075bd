// Package bezier implements a cubic Bézier curve with fixed anchors and two
// spring-driven control points.
package bezier

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivier-w/springcurve/internal/geom"
	"github.com/olivier-w/springcurve/internal/spring"
)

// Options controls how a curve follows the pointer and how it is sampled.
type Options struct {
	Samples         int            // curve resolution; Sample returns Samples+1 points
	TangentInterval int            // stride between tangent markers
	ControlOffset   float64        // horizontal distance of each control target from the pointer
	Stepper         spring.Stepper // nil uses spring.Default
}

// DefaultOptions matches the stock configuration.
var DefaultOptions = Options{
	Samples:         100,
	TangentInterval: 12,
	ControlOffset:   100,
}

// Curve is a cubic Bézier from p0 to p3. The anchors never move after
// construction; p1 and p2 are owned springs stepped by Advance.
type Curve struct {
	p0, p3 geom.Point
	p1, p2 *spring.Point

	rest1, rest2 geom.Point
	opts         Options
}

// Sample is one point along the curve. Tangent is a unit vector and only
// meaningful when HasTangent is set.
type Sample struct {
	T          float64
	Point      geom.Point
	Tangent    geom.Point
	HasTangent bool
}

// New builds a curve through the given control points. p1 and p2 start at
// rest and Reset returns them there.
func New(p0, p1, p2, p3 geom.Point, opts Options) *Curve {
	if opts.Samples < 1 {
		opts.Samples = DefaultOptions.Samples
	}
	if opts.TangentInterval < 1 {
		opts.TangentInterval = DefaultOptions.TangentInterval
	}
	return &Curve{
		p0:    p0,
		p3:    p3,
		p1:    spring.NewPoint(p1.X, p1.Y, opts.Stepper),
		p2:    spring.NewPoint(p2.X, p2.Y, opts.Stepper),
		rest1: p1,
		rest2: p2,
		opts:  opts,
	}
}

// Evaluate returns B(t). Any real t is accepted; [0,1] spans the curve.
func (c *Curve) Evaluate(t float64) geom.Point {
	u := 1 - t
	tt := t * t
	uu := u * u
	b0 := uu * u
	b1 := 3 * uu * t
	b2 := 3 * u * tt
	b3 := tt * t
	return geom.Point{
		X: b0*c.p0.X + b1*c.p1.X + b2*c.p2.X + b3*c.p3.X,
		Y: b0*c.p0.Y + b1*c.p1.Y + b2*c.p2.Y + b3*c.p3.Y,
	}
}

// Derivative returns the unit tangent B'(t)/|B'(t)|. When the derivative
// has zero length the zero vector is returned.
func (c *Curve) Derivative(t float64) geom.Point {
	u := 1 - t
	p1, p2 := c.point1(), c.point2()

	d := r2.Add(r2.Add(
		r2.Scale(3*u*u, r2.Sub(p1, c.p0)),
		r2.Scale(6*u*t, r2.Sub(p2, p1))),
		r2.Scale(3*t*t, r2.Sub(c.p3, p2)))

	n := r2.Norm(d)
	if n == 0 {
		n = 1
	}
	return r2.Scale(1/n, d)
}

// Targets returns where p1 and p2 are pulled for a pointer position.
func (c *Curve) Targets(p geom.Pointer) (geom.Point, geom.Point) {
	return geom.Pt(p.X-c.opts.ControlOffset, p.Y), geom.Pt(p.X+c.opts.ControlOffset, p.Y)
}

// Advance steps both control springs one frame toward the pointer, p1 to
// its left and p2 to its right.
func (c *Curve) Advance(p geom.Pointer) {
	t1, t2 := c.Targets(p)
	c.p1.Update(t1.X, t1.Y)
	c.p2.Update(t2.X, t2.Y)
}

// Lag is the mean distance of the control points from their targets.
func (c *Curve) Lag(p geom.Pointer) float64 {
	t1, t2 := c.Targets(p)
	return (geom.Dist(c.point1(), t1) + geom.Dist(c.point2(), t2)) / 2
}

// Reset puts both control points back at their rest positions, stopped.
func (c *Curve) Reset() {
	c.p1.Place(c.rest1.X, c.rest1.Y)
	c.p2.Place(c.rest2.X, c.rest2.Y)
}

// Controls returns p0, p1, p2 and p3.
func (c *Curve) Controls() [4]geom.Point {
	return [4]geom.Point{c.p0, c.point1(), c.point2(), c.p3}
}

// Options returns the options the curve was built with.
func (c *Curve) Options() Options {
	return c.opts
}

func (c *Curve) point1() geom.Point { return geom.Pt(c.p1.X, c.p1.Y) }
func (c *Curve) point2() geom.Point { return geom.Pt(c.p2.X, c.p2.Y) }
