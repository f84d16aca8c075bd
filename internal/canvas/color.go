package canvas

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Profile is the color capability of the output terminal.
type Profile uint8

const (
	ProfileNone Profile = iota
	ProfileANSI16
	ProfileANSI256
	ProfileTrueColor
)

var (
	profileOnce sync.Once
	detected    Profile
	seqCache    sync.Map
)

// DetectProfile inspects NO_COLOR, COLORTERM and TERM once per process.
func DetectProfile() Profile {
	profileOnce.Do(func() {
		if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
			detected = ProfileNone
			return
		}
		term := strings.ToLower(os.Getenv("TERM"))
		colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
		switch {
		case strings.Contains(colorTerm, "truecolor"), strings.Contains(colorTerm, "24bit"):
			detected = ProfileTrueColor
		case strings.Contains(term, "256color"):
			detected = ProfileANSI256
		case term == "", term == "dumb":
			detected = ProfileNone
		default:
			detected = ProfileANSI16
		}
	})
	return detected
}

// ParseProfile maps a -color flag value to a profile. "auto" and "" detect.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectProfile(), nil
	case "none", "off":
		return ProfileNone, nil
	case "16":
		return ProfileANSI16, nil
	case "256":
		return ProfileANSI256, nil
	case "truecolor", "true", "24bit":
		return ProfileTrueColor, nil
	}
	return ProfileNone, fmt.Errorf("unknown color mode %q (want auto, none, 16, 256 or truecolor)", s)
}

func (p Profile) String() string {
	switch p {
	case ProfileANSI16:
		return "16"
	case ProfileANSI256:
		return "256"
	case ProfileTrueColor:
		return "truecolor"
	default:
		return "none"
	}
}

// pen tracks the color last written into a cell run so that neighbouring
// dots of the same stroke share one escape sequence.
type pen struct {
	profile Profile
	inked   bool
	current color.RGBA
}

func (p *pen) ink(sb *strings.Builder, c color.RGBA) {
	if p.profile == ProfileNone || (p.inked && p.current == c) {
		return
	}
	sb.WriteString(colorSequence(p.profile, c))
	p.inked, p.current = true, c
}

func (p *pen) lift(sb *strings.Builder) {
	if p.inked {
		sb.WriteString("\x1b[0m")
		p.inked = false
	}
}

// xterm's default 16-color palette, normal then bright.
var ansi16 = func() []colorful.Color {
	hex := []string{
		"#000000", "#cd0000", "#00cd00", "#cdcd00", "#0000ee", "#cd00cd", "#00cdcd", "#e5e5e5",
		"#7f7f7f", "#ff0000", "#00ff00", "#ffff00", "#5c5cff", "#ff00ff", "#00ffff", "#ffffff",
	}
	out := make([]colorful.Color, len(hex))
	for i, h := range hex {
		out[i], _ = colorful.Hex(h)
	}
	return out
}()

type seqKey struct {
	profile Profile
	color   color.RGBA
}

// colorSequence returns the foreground escape for c, downsampled to the
// profile. A palette only has a handful of colors, so results are cached.
func colorSequence(p Profile, c color.RGBA) string {
	key := seqKey{p, color.RGBA{R: c.R, G: c.G, B: c.B}}
	if seq, ok := seqCache.Load(key); ok {
		return seq.(string)
	}

	var seq string
	switch p {
	case ProfileTrueColor:
		seq = fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
	case ProfileANSI256:
		seq = fmt.Sprintf("\x1b[38;5;%dm", xterm256(c))
	case ProfileANSI16:
		i := nearest16(c)
		if i < 8 {
			seq = fmt.Sprintf("\x1b[%dm", 30+i)
		} else {
			seq = fmt.Sprintf("\x1b[%dm", 90+i-8)
		}
	}

	seqCache.Store(key, seq)
	return seq
}

func nearest16(c color.RGBA) int {
	want := toColorful(c)
	best, bestDist := 0, math.MaxFloat64
	for i, q := range ansi16 {
		if d := want.DistanceLab(q); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// xterm256 picks between the 6x6x6 cube and the 24-step grey ramp,
// whichever lands closer.
func xterm256(c color.RGBA) int {
	level := func(v uint8) int { return (int(v)*5 + 127) / 255 }
	r, g, b := level(c.R), level(c.G), level(c.B)
	cube := 16 + 36*r + 6*g + b

	grey := (int(c.R) + int(c.G) + int(c.B)) / 3
	step := min(max((grey-8+5)/10, 0), 23)

	want := toColorful(c)
	cubeColor := colorful.Color{R: cubeLevel(r), G: cubeLevel(g), B: cubeLevel(b)}
	g8 := float64(8+10*step) / 255
	if want.DistanceLab(colorful.Color{R: g8, G: g8, B: g8}) < want.DistanceLab(cubeColor) {
		return 232 + step
	}
	return cube
}

func cubeLevel(i int) float64 {
	if i == 0 {
		return 0
	}
	return float64(55+40*i) / 255
}

// toColorful ignores alpha; cells are always drawn opaque.
func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
