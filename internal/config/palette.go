package config

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is Style with its colors resolved. Translucent colors are
// pre-blended over the background, since neither a terminal cell nor the
// snapshot layering needs real alpha.
type Palette struct {
	Line       color.RGBA
	Point      color.RGBA
	Tangent    color.RGBA
	Skeleton   color.RGBA
	Background color.RGBA
}

// Palette parses the style's hex colors.
func (s Style) Palette() (Palette, error) {
	bg, err := parseHex("background", s.Background)
	if err != nil {
		return Palette{}, err
	}
	line, err := parseHex("line_color", s.LineColor)
	if err != nil {
		return Palette{}, err
	}
	point, err := parseHex("point_color", s.PointColor)
	if err != nil {
		return Palette{}, err
	}
	tangent, err := parseHex("tangent_color", s.TangentColor)
	if err != nil {
		return Palette{}, err
	}
	skeleton, err := parseHex("skeleton_color", s.SkeletonColor)
	if err != nil {
		return Palette{}, err
	}

	return Palette{
		Line:       rgba(line),
		Point:      rgba(point),
		Tangent:    rgba(bg.BlendRgb(tangent, clamp01(s.TangentOpacity))),
		Skeleton:   rgba(bg.BlendRgb(skeleton, clamp01(s.SkeletonOpacity))),
		Background: rgba(bg),
	}, nil
}

func parseHex(field, s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %s %q", ErrColor, field, s)
	}
	return c, nil
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
