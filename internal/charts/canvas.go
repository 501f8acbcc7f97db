// Package charts renders the dashboard's visual surfaces as styled
// strings. Every renderer rebuilds its frame from scratch on each call
// (clear-all-then-redraw); interaction state lives in small per-chart
// structs the tui model keeps between renders.
package charts

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Canvas is a braille microgrid (2x4 pixels per terminal cell) with a
// per-cell foreground color and a text overlay for labels.
type Canvas struct {
	w, h  int
	mask  [][]uint8
	color [][]lipgloss.Color

	labels []label
}

type label struct {
	x, y  int
	text  string
	color lipgloss.Color
}

func NewCanvas(w, h int) *Canvas {
	mask := make([][]uint8, h)
	color := make([][]lipgloss.Color, h)
	for i := range mask {
		mask[i] = make([]uint8, w)
		color[i] = make([]lipgloss.Color, w)
	}
	return &Canvas{w: w, h: h, mask: mask, color: color}
}

func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

// SetPixel sets a micro-pixel at micro coords. The cell takes the
// pixel's color; the last writer wins, so draw fills before edges and
// background layers before highlights.
func (c *Canvas) SetPixel(mx, my int, col lipgloss.Color) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy < 0 || cy >= c.h || cx < 0 || cx >= c.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	c.mask[cy][cx] |= bit
	if col != "" {
		c.color[cy][cx] = col
	}
}

// Line draws a micro-coordinate line using Bresenham.
func (c *Canvas) Line(x0, y0, x1, y1 int, col lipgloss.Color) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.SetPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
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

// FillRing fills a closed ring (micro coords) per scanline with the
// even-odd rule. Holes are not subtracted; state boundaries have none.
func (c *Canvas) FillRing(ring [][2]int, col lipgloss.Color) {
	if len(ring) < 3 {
		return
	}
	hMic := c.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xstart, xend := xs[i], xs[i+1]
			if xstart > xend {
				xstart, xend = xend, xstart
			}
			for xMic := max(0, xstart); xMic <= xend; xMic++ {
				c.SetPixel(xMic, yMic, col)
			}
		}
	}
}

// Label overlays text at cell coords, replacing whatever braille was
// drawn underneath.
func (c *Canvas) Label(cellX, cellY int, text string, col lipgloss.Color) {
	c.labels = append(c.labels, label{x: cellX, y: cellY, text: text, color: col})
}

// Lines renders the canvas to styled rows. Consecutive cells with the
// same color collapse into one styled chunk to keep frames small.
func (c *Canvas) Lines() []string {
	runes := make([][]rune, c.h)
	cols := make([][]lipgloss.Color, c.h)
	for y := 0; y < c.h; y++ {
		runes[y] = make([]rune, c.w)
		cols[y] = make([]lipgloss.Color, c.w)
		for x := 0; x < c.w; x++ {
			if m := c.mask[y][x]; m != 0 {
				runes[y][x] = rune(0x2800 + int(m))
				cols[y][x] = c.color[y][x]
			} else {
				runes[y][x] = ' '
			}
		}
	}
	for _, l := range c.labels {
		if l.y < 0 || l.y >= c.h {
			continue
		}
		for i, r := range []rune(l.text) {
			x := l.x + i
			if x < 0 || x >= c.w {
				continue
			}
			runes[l.y][x] = r
			cols[l.y][x] = l.color
		}
	}
	out := make([]string, c.h)
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		b.Reset()
		x := 0
		for x < c.w {
			col := cols[y][x]
			j := x
			for j < c.w && cols[y][j] == col {
				j++
			}
			chunk := string(runes[y][x:j])
			if col == "" {
				b.WriteString(chunk)
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(col).Render(chunk))
			}
			x = j
		}
		out[y] = b.String()
	}
	return out
}

func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}
