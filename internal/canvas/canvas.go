// Package canvas is a Unicode Braille dot canvas for drawing in a terminal.
// Each cell is a 2x4 dot grid, giving 2x horizontal and 4x vertical
// resolution over plain characters.
package canvas

import (
	"image/color"
	"strings"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

type Canvas struct {
	cols, rows int
	cells      []uint8
	colors     []color.RGBA
	profile    Profile
}

// New returns a blank canvas of cols x rows terminal cells.
func New(cols, rows int, p Profile) *Canvas {
	c := &Canvas{profile: p}
	c.Resize(cols, rows)
	return c
}

// Resize changes the canvas size, clearing it. Sizes below one cell are
// raised to one.
func (c *Canvas) Resize(cols, rows int) {
	cols = max(cols, 1)
	rows = max(rows, 1)
	if c.cols == cols && c.rows == rows {
		c.Clear()
		return
	}
	c.cols, c.rows = cols, rows
	c.cells = make([]uint8, cols*rows)
	c.colors = make([]color.RGBA, cols*rows)
}

// Cells returns the canvas size in terminal cells.
func (c *Canvas) Cells() (cols, rows int) {
	return c.cols, c.rows
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (w, h int) {
	return c.cols * 2, c.rows * 4
}

func (c *Canvas) Clear() {
	clear(c.cells)
	clear(c.colors)
}

// Set lights the dot at (x, y). The cell takes the color of the last dot
// drawn in it. Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.cols || cy >= c.rows {
		return
	}
	i := cy*c.cols + cx
	c.cells[i] |= 1 << brailleBits[x%2][y%4]
	c.colors[i] = col
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.cols || y/4 >= c.rows {
		return false
	}
	return c.cells[(y/4)*c.cols+x/2]&(1<<brailleBits[x%2][y%4]) != 0
}

// Line draws a one-dot line from (x0, y0) to (x1, y1), both ends included.
func (c *Canvas) Line(x0, y0, x1, y1 int, col color.RGBA) {
	c.walk(x0, y0, x1, y1, func(x, y, _ int) { c.Set(x, y, col) })
}

// Dashed draws a line that alternates dash dots on and dash dots off,
// starting at phase dots into the pattern. It returns the phase to continue
// the pattern on a following segment.
func (c *Canvas) Dashed(x0, y0, x1, y1, dash, phase int, col color.RGBA) int {
	if dash < 1 {
		c.Line(x0, y0, x1, y1, col)
		return phase
	}
	n := 0
	c.walk(x0, y0, x1, y1, func(x, y, i int) {
		if ((phase+i)/dash)%2 == 0 {
			c.Set(x, y, col)
		}
		n = i
	})
	return phase + n
}

// Disc fills a circle of radius r dots around (cx, cy).
func (c *Canvas) Disc(cx, cy, r int, col color.RGBA) {
	if r < 1 {
		c.Set(cx, cy, col)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy, col)
			}
		}
	}
}

// walk visits every dot of a Bresenham line, passing its step index.
func (c *Canvas) walk(x0, y0, x1, y1 int, visit func(x, y, i int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for i := 0; ; i++ {
		visit(x0, y0, i)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the canvas as rows of braille characters joined by
// newlines, colored according to the canvas profile.
func (c *Canvas) String() string {
	var out strings.Builder
	out.Grow(c.cols * c.rows * 4)
	p := pen{profile: c.profile}
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			out.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			i := row*c.cols + col
			pattern := c.cells[i]
			if pattern != 0 {
				p.ink(&out, c.colors[i])
			}
			out.WriteRune(rune(0x2800 + int(pattern)))
		}
		p.lift(&out)
	}
	return out.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
