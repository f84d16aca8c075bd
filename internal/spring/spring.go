// Package spring steps points toward moving targets with a damped spring.
package spring

import "math"

// Stepper advances one axis of a spring by a single frame and returns the
// new position and velocity. harmonica.Spring satisfies it.
type Stepper interface {
	Update(pos, vel, target float64) (newPos, newVel float64)
}

// Hooke is a unit-mass spring: acceleration is proportional to the distance
// from the target, and velocity decays multiplicatively after integration.
// Stiffness and Damping are expected in (0,1).
type Hooke struct {
	Stiffness float64
	Damping   float64
}

// Update integrates velocity, then damps it, then integrates position.
// Changing that order changes the lag and overshoot of the point.
func (h Hooke) Update(pos, vel, target float64) (float64, float64) {
	accel := (target - pos) * h.Stiffness
	vel += accel
	vel *= h.Damping
	pos += vel
	return pos, vel
}

// Point is a 2D position with velocity, driven toward a target each frame.
type Point struct {
	X, Y   float64
	VX, VY float64

	stepper Stepper
}

// NewPoint returns a point at rest at (x, y). A nil stepper uses Default.
func NewPoint(x, y float64, s Stepper) *Point {
	if s == nil {
		s = Default
	}
	return &Point{X: x, Y: y, stepper: s}
}

// Default is the spring used when none is configured.
var Default Stepper = Hooke{Stiffness: 0.08, Damping: 0.88}

// Update moves the point one frame toward (targetX, targetY). Each axis is
// stepped independently.
func (p *Point) Update(targetX, targetY float64) {
	s := p.stepper
	if s == nil {
		s = Default
	}
	p.X, p.VX = s.Update(p.X, p.VX, targetX)
	p.Y, p.VY = s.Update(p.Y, p.VY, targetY)
}

// Place moves the point to (x, y) and stops it.
func (p *Point) Place(x, y float64) {
	p.X, p.Y = x, y
	p.VX, p.VY = 0, 0
}

// Speed returns the magnitude of the point's velocity.
func (p *Point) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}
