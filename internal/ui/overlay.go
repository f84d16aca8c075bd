package ui

import "github.com/olivier-w/springcurve/internal/render"

// OverlayMode selects which construction guides are drawn over the curve.
type OverlayMode int

const (
	OverlayAll OverlayMode = iota
	OverlayTangents
	OverlaySkeleton
	OverlayNone
)

// Next cycles to the next overlay mode.
func (o OverlayMode) Next() OverlayMode {
	switch o {
	case OverlayAll:
		return OverlayTangents
	case OverlayTangents:
		return OverlaySkeleton
	case OverlaySkeleton:
		return OverlayNone
	default:
		return OverlayAll
	}
}

// String returns the name of the overlay mode.
func (o OverlayMode) String() string {
	switch o {
	case OverlayTangents:
		return "tangents"
	case OverlaySkeleton:
		return "skeleton"
	case OverlayNone:
		return "none"
	default:
		return "all"
	}
}

// Layers returns the render layers the mode enables.
func (o OverlayMode) Layers() render.Layers {
	switch o {
	case OverlayTangents:
		return render.LayerTangents
	case OverlaySkeleton:
		return render.LayerSkeleton
	case OverlayNone:
		return 0
	default:
		return render.LayerAll
	}
}
