package util

import (
	"fmt"
	"time"

	"github.com/olivier-w/springcurve/internal/geom"
)

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatPoint formats a point rounded to whole logical units, as x,y.
func FormatPoint(p geom.Point) string {
	return fmt.Sprintf("%.0f,%.0f", p.X, p.Y)
}
