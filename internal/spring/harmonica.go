package spring

import "github.com/charmbracelet/harmonica"

// NewHarmonica returns a time-based damped harmonic oscillator stepping at fps.
// dampingRatio below 1 overshoots, 1 is critically damped.
func NewHarmonica(fps int, frequency, dampingRatio float64) Stepper {
	return harmonica.NewSpring(harmonica.FPS(fps), frequency, dampingRatio)
}
