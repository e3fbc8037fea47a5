package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	tooltipWidth = 30
	heldWidth    = 16
)

var _ host.Surface = (*canvas)(nil)

type cell struct {
	r     rune
	style *lipgloss.Style
}

// canvas is the cell grid one viewport renders into. Coordinates passed to
// its methods are screen coordinates; origin is the viewport's top left.
type canvas struct {
	origin host.Point
	width  int
	height int
	cells  []cell
	dimmed bool
}

func newCanvas(origin host.Point, width, height int) *canvas {
	c := &canvas{origin: origin, width: width, height: height}
	c.cells = make([]cell, width*height)
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

func (c *canvas) at(x, y int) *cell {
	lx, ly := x-c.origin.X, y-c.origin.Y
	if lx < 0 || ly < 0 || lx >= c.width || ly >= c.height {
		return nil
	}
	return &c.cells[ly*c.width+lx]
}

// text writes s from (x, y) and returns the number of cells it covered,
// clipped to the canvas.
func (c *canvas) text(x, y int, s string, style *lipgloss.Style) int {
	n := 0
	for _, r := range s {
		if cl := c.at(x+n, y); cl != nil {
			cl.r = r
			cl.style = style
		}
		n++
	}
	return n
}

func (c *canvas) fill(r host.Rect, style *lipgloss.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if cl := c.at(x, y); cl != nil {
				cl.r = ' '
				cl.style = style
			}
		}
	}
}

func (c *canvas) restyle(r host.Rect, style *lipgloss.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if cl := c.at(x, y); cl != nil {
				cl.style = style
			}
		}
	}
}

func (c *canvas) bounds() host.Rect {
	return host.Rect{X: c.origin.X, Y: c.origin.Y, W: c.width, H: c.height}
}

// String renders the grid, one styled run per stretch of equally styled
// cells.
func (c *canvas) String() string {
	var b strings.Builder
	var run strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var current *lipgloss.Style
		for x := 0; x < c.width; x++ {
			cl := c.cells[y*c.width+x]
			if cl.style != current && run.Len() > 0 {
				b.WriteString(render(current, run.String()))
				run.Reset()
			}
			current = cl.style
			run.WriteRune(cl.r)
		}
		b.WriteString(render(current, run.String()))
		run.Reset()
	}
	return b.String()
}

func render(style *lipgloss.Style, s string) string {
	if style == nil || s == "" {
		return s
	}
	return style.Render(s)
}

// Dim fades everything drawn so far.
func (c *canvas) Dim(alpha float64) {
	if alpha <= 0 {
		return
	}
	c.restyle(c.bounds(), styles.Dimmed)
	c.dimmed = true
}

func (c *canvas) FadeSlot(r host.Rect) {
	c.restyle(r, styles.SlotFaded)
}

func (c *canvas) DrawScrollBar(r host.Rect, offset, max int) {
	if r.Empty() {
		return
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		c.text(r.X, y, "│", styles.ScrollTrack)
	}
	if max <= 0 {
		return
	}
	thumb := r.Y + offset*(r.H-1)/max
	c.text(r.X, thumb, "█", styles.ScrollThumb)
}

func (c *canvas) DrawArrow(r host.Rect, up bool) {
	glyph := "▼"
	if up {
		glyph = "▲"
	}
	c.text(r.X, r.Y, glyph, styles.Arrow)
}

// DrawTooltip draws a box below and right of the pointer, moved inside the
// canvas when it would overflow.
func (c *canvas) DrawTooltip(at host.Point, item *inventory.Item, text string) {
	type line struct {
		text  string
		style *lipgloss.Style
	}
	var lines []line
	if item != nil {
		lines = append(lines, line{item.Label(), styles.TooltipName})
		if detail := itemDetail(item); detail != "" {
			lines = append(lines, line{detail, styles.Tooltip})
		}
	}
	if text != "" {
		lines = append(lines, line{text, styles.Tooltip})
	}
	if len(lines) == 0 {
		return
	}
	width := 0
	for i := range lines {
		lines[i].text = " " + truncate.StringWithTail(lines[i].text, tooltipWidth-2, "…") + " "
		if w := lipgloss.Width(lines[i].text); w > width {
			width = w
		}
	}
	x, y := at.X+2, at.Y+1
	if right := c.origin.X + c.width; x+width > right {
		x = right - width
	}
	if bottom := c.origin.Y + c.height; y+len(lines) > bottom {
		y = at.Y - len(lines)
	}
	for i, l := range lines {
		c.fill(host.Rect{X: x, Y: y + i, W: width, H: 1}, styles.Tooltip)
		c.text(x, y+i, l.text, l.style)
	}
}

func (c *canvas) DrawHeldItem(at host.Point, item *inventory.Item) {
	if item == nil {
		return
	}
	c.text(at.X, at.Y, " "+truncate.StringWithTail(item.Label(), heldWidth, "…")+" ", styles.Held)
}

func (c *canvas) DrawCursor(at host.Point) {
	c.restyle(host.Rect{X: at.X, Y: at.Y, W: 1, H: 1}, styles.Cursor)
}

func itemDetail(item *inventory.Item) string {
	switch {
	case item.Category != "" && item.Quality > 0:
		return fmt.Sprintf("%s · quality %d", item.Category, item.Quality)
	case item.Category != "":
		return item.Category
	case item.Quality > 0:
		return fmt.Sprintf("quality %d", item.Quality)
	}
	return ""
}
