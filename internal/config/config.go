// Package config holds the fixed settings for a run of springcurve.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/olivier-w/springcurve/internal/spring"
)

var (
	ErrSurface         = errors.New("surface must be larger than twice its margin")
	ErrStiffness       = errors.New("spring stiffness must be in (0,1)")
	ErrDamping         = errors.New("spring damping must be in (0,1)")
	ErrIntegrator      = errors.New("unknown spring integrator")
	ErrHarmonica       = errors.New("harmonica frequency and damping ratio must be positive")
	ErrSamples         = errors.New("curve samples must be positive")
	ErrTangentInterval = errors.New("tangent interval must be positive")
	ErrControlOffset   = errors.New("control offset must be finite and within the surface width")
	ErrTangentLength   = errors.New("tangent length must be finite and within the surface width")
	ErrFPS             = errors.New("fps must be positive")
	ErrColor           = errors.New("invalid color")
	ErrOpacity         = errors.New("opacity must be in [0,1]")
	ErrStroke          = errors.New("line width, point radius and dash must be positive and bounded")
)

// Upper bounds that keep a snapshot allocation and per-frame rasterizing
// work reasonable.
const (
	MaxSurface = 4096
	MaxStroke  = 64
)

// Integrator names accepted in spring.integrator.
const (
	IntegratorHooke     = "hooke"
	IntegratorHarmonica = "harmonica"
)

type Config struct {
	Surface Surface `yaml:"surface"`
	Spring  Spring  `yaml:"spring"`
	Curve   Curve   `yaml:"curve"`
	Style   Style   `yaml:"style"`
	FPS     int     `yaml:"fps"`
}

// Surface is the logical drawing space. Pointer input and curve geometry
// are expressed in these units regardless of how large the terminal is.
type Surface struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

type Spring struct {
	Stiffness    float64 `yaml:"stiffness"`
	Damping      float64 `yaml:"damping"`
	Integrator   string  `yaml:"integrator"`
	Frequency    float64 `yaml:"frequency"`
	DampingRatio float64 `yaml:"damping_ratio"`
}

type Curve struct {
	Samples         int     `yaml:"samples"`
	TangentInterval int     `yaml:"tangent_interval"`
	ControlOffset   float64 `yaml:"control_offset"`
	TangentLength   float64 `yaml:"tangent_length"`
}

type Style struct {
	LineColor       string  `yaml:"line_color"`
	PointColor      string  `yaml:"point_color"`
	TangentColor    string  `yaml:"tangent_color"`
	TangentOpacity  float64 `yaml:"tangent_opacity"`
	SkeletonColor   string  `yaml:"skeleton_color"`
	SkeletonOpacity float64 `yaml:"skeleton_opacity"`
	Background      string  `yaml:"background"`
	LineWidth       float64 `yaml:"line_width"`
	PointRadius     float64 `yaml:"point_radius"`
	Dash            float64 `yaml:"dash"`
}

// Default returns the stock configuration: an 800x500 surface, a snappy
// underdamped spring and a 100-segment curve.
func Default() Config {
	return Config{
		Surface: Surface{Width: 800, Height: 500, Margin: 50},
		Spring: Spring{
			Stiffness:    0.08,
			Damping:      0.88,
			Integrator:   IntegratorHooke,
			Frequency:    6.0,
			DampingRatio: 0.5,
		},
		Curve: Curve{
			Samples:         100,
			TangentInterval: 12,
			ControlOffset:   100,
			TangentLength:   20,
		},
		Style: Style{
			LineColor:       "#38bdf8",
			PointColor:      "#f472b6",
			TangentColor:    "#ffffff",
			TangentOpacity:  0.3,
			SkeletonColor:   "#ffffff",
			SkeletonOpacity: 0.1,
			Background:      "#0f172a",
			LineWidth:       4,
			PointRadius:     6,
			Dash:            5,
		},
		FPS: 60,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r. Keys absent from the document keep their
// default values.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range setting, joined. Every range test is
// written so that NaN fails it.
func (c Config) Validate() error {
	var errs []error
	s := c.Surface
	if !within(s.Margin, 0, MaxSurface) || !within(s.Height, 1, MaxSurface) ||
		!within(s.Width, 1, MaxSurface) || !(s.Width > 2*s.Margin) {
		errs = append(errs, fmt.Errorf("%w: %gx%g margin %g", ErrSurface, s.Width, s.Height, s.Margin))
	}
	if !open01(c.Spring.Stiffness) {
		errs = append(errs, fmt.Errorf("%w: %g", ErrStiffness, c.Spring.Stiffness))
	}
	if !open01(c.Spring.Damping) {
		errs = append(errs, fmt.Errorf("%w: %g", ErrDamping, c.Spring.Damping))
	}
	switch strings.ToLower(c.Spring.Integrator) {
	case "", IntegratorHooke:
	case IntegratorHarmonica:
		if !positive(c.Spring.Frequency) || !positive(c.Spring.DampingRatio) {
			errs = append(errs, fmt.Errorf("%w: frequency %g damping ratio %g",
				ErrHarmonica, c.Spring.Frequency, c.Spring.DampingRatio))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrIntegrator, c.Spring.Integrator))
	}
	if c.Curve.Samples < 1 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrSamples, c.Curve.Samples))
	}
	if c.Curve.TangentInterval < 1 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrTangentInterval, c.Curve.TangentInterval))
	}
	if !within(math.Abs(c.Curve.ControlOffset), 0, s.Width) {
		errs = append(errs, fmt.Errorf("%w: %g", ErrControlOffset, c.Curve.ControlOffset))
	}
	if !within(c.Curve.TangentLength, 0, s.Width) {
		errs = append(errs, fmt.Errorf("%w: %g", ErrTangentLength, c.Curve.TangentLength))
	}
	if c.FPS < 1 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrFPS, c.FPS))
	}
	st := c.Style
	if !within(st.TangentOpacity, 0, 1) || !within(st.SkeletonOpacity, 0, 1) {
		errs = append(errs, fmt.Errorf("%w: tangent %g skeleton %g", ErrOpacity, st.TangentOpacity, st.SkeletonOpacity))
	}
	if !positive(st.LineWidth) || st.LineWidth > MaxStroke ||
		!within(st.PointRadius, 0, MaxStroke) ||
		!positive(st.Dash) || st.Dash > MaxStroke {
		errs = append(errs, fmt.Errorf("%w: width %g radius %g dash %g", ErrStroke, st.LineWidth, st.PointRadius, st.Dash))
	}
	if _, err := c.Style.Palette(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Stepper builds the per-axis spring integrator named by Spring.Integrator.
func (c Config) Stepper() spring.Stepper {
	if strings.EqualFold(c.Spring.Integrator, IntegratorHarmonica) {
		return spring.NewHarmonica(c.FPS, c.Spring.Frequency, c.Spring.DampingRatio)
	}
	return spring.Hooke{Stiffness: c.Spring.Stiffness, Damping: c.Spring.Damping}
}

func open01(v float64) bool {
	return v > 0 && v < 1
}

// within reports lo <= v <= hi; false for NaN.
func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// positive is false for NaN and +Inf.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
