package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/chestsync/internal/format/table"
	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/atomicstack/chestsync/internal/world"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Rows relative to the viewport origin.
const (
	headerRow = 0
	titleRow  = 1
	searchRow = 2
	topRow    = 3
	listRow   = 2
)

const listHint = "enter open · wheel/j/k move · q quit"

// View implements tea.Model. Frames are produced by the tick loop; before
// the first tick one is rendered on demand.
func (m *Model) View() string {
	if m.frame == "" {
		m.render()
	}
	return m.frame
}

func (m *Model) frameHeight() int {
	if m.height > 0 {
		return m.height
	}
	return defaultHeight
}

func (m *Model) listRows() int {
	rows := m.frameHeight() - listRow - 1
	if rows < 1 {
		return 1
	}
	return rows
}

// render runs the render phase of every viewport and joins the results.
func (m *Model) render() {
	parts := make([]string, 0, m.count)
	for i := 0; i < m.count; i++ {
		parts = append(parts, m.renderScreen(m.screen(i)))
	}
	m.frame = lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderScreen(s *screen) string {
	c := newCanvas(s.origin, viewportWidth, m.frameHeight())
	m.drawList(c, s)
	if g := s.menu; g != nil && g.backdrop {
		c.restyle(c.bounds(), styles.Dimmed)
	}
	m.emit(host.Event{Kind: host.RenderBegin, Viewport: s.index, Surface: c})
	if g := s.menu; g != nil {
		m.drawMenu(c, s, g)
	}
	m.emit(host.Event{Kind: host.RenderEnd, Viewport: s.index, Surface: c})
	return c.String()
}

func (m *Model) drawList(c *canvas, s *screen) {
	x, y := s.origin.X+1, s.origin.Y
	width := viewportWidth - 2

	title := "chestsync · " + m.world.Player(s.index).Label()
	if m.count > 1 && m.focus == s.index {
		title += " ◆"
	}
	c.text(x, y+headerRow, truncate.String(title, uint(width)), styles.Header)

	visible := s.list.Visible(m.listRows())
	if len(visible) == 0 {
		c.text(x, y+listRow, "(no chests)", styles.Info)
	}
	rows := make([][]string, len(visible))
	for i, id := range visible {
		rows[i] = m.listCells(id)
	}
	for i, line := range table.Format(rows, listColumns) {
		prefix, style := "  ", styles.Item
		if s.list.ViewportOffset+i == s.list.Cursor {
			prefix, style = "> ", styles.SelectedItem
		}
		c.text(x, y+listRow+i, truncate.String(prefix+line, uint(width)), style)
	}

	footer, style := listHint, styles.Footer
	switch {
	case s.waiting != "":
		footer, style = s.status, styles.Waiting
	case s.status != "":
		footer, style = s.status, styles.Info
	}
	c.text(x, y+m.frameHeight()-1, truncate.StringWithTail(footer, uint(width), "…"), style)
}

var listColumns = []table.Column{
	{Max: 18},
	{Max: 8},
	{},
	{Align: table.AlignRight},
}

// listCells describes a chest as label, kind, tier, fill and lock state.
func (m *Model) listCells(id string) []string {
	chest, ok := m.world.Chest(id)
	if !ok {
		return []string{id}
	}
	inv := chest.Inventory()
	capacity := "∞"
	if limit := inv.Limit(); limit > 0 {
		capacity = fmt.Sprint(limit)
	}
	cells := []string{
		chest.Label(),
		chest.Kind(),
		chest.StorageOptions().Resize.String(),
		fmt.Sprintf("%d/%s", inv.Count(), capacity),
		"",
	}
	if m.factory.Recognizes(chest.Kind()) {
		if ct, ok := m.factory.TryGetOne(chest); ok && ct.Mutex().IsLocked() {
			cells[4] = "open"
		}
	}
	return cells
}

func (m *Model) drawMenu(c *canvas, s *screen, g *grabMenu) {
	x := s.origin.X + 1
	top := s.origin.Y + titleRow
	bottom := g.bottom.bounds.Y + g.bottom.bounds.H
	c.fill(host.Rect{X: s.origin.X, Y: top, W: viewportWidth, H: bottom - top + 1}, nil)

	c.text(x, top, truncate.String(menuTitle(g.source), uint(viewportWidth-2)), styles.Header)
	if g.child != nil {
		m.drawHelp(c, s)
		return
	}
	m.drawSearch(c, s)
	m.drawPane(c, s, g.top)
	c.text(x, g.bottom.bounds.Y-1, m.world.Player(s.index).Label(), styles.Footer)
	m.drawPane(c, s, g.bottom)
	if s.status != "" {
		c.text(x, bottom, truncate.StringWithTail(s.status, uint(viewportWidth-2), "…"), styles.Info)
	}
}

func menuTitle(chest *world.Chest) string {
	if chest == nil {
		return "(nothing)"
	}
	return fmt.Sprintf("%s · %s · %s", chest.Label(), chest.Kind(), chest.StorageOptions().Resize)
}

// drawSearch draws the search row. The text input keeps the value; the
// canvas draws it cell by cell.
func (m *Model) drawSearch(c *canvas, s *screen) {
	x, y := s.origin.X+1, s.origin.Y+searchRow
	if !m.features.Active("search") {
		return
	}
	n := c.text(x, y, s.search.Prompt, styles.FilterPrompt)
	value := s.search.Value()
	switch {
	case value != "":
		n += c.text(x+n, y, value, styles.Item)
	case !s.searching:
		c.text(x+n, y, s.search.Placeholder, styles.FilterPlaceholder)
	}
	if s.searching {
		c.text(x+n, y, " ", styles.Cursor)
	}
}

// drawPane draws the slots of p between the engine's draw hooks.
func (m *Model) drawPane(c *canvas, s *screen, p *gridPane) {
	m.hooks.BeforePaneDraw(s.index, p)
	hl := p.Highlighter()
	for slot := 0; slot < p.capacity; slot++ {
		r := p.SlotBounds(slot)
		item := p.visible.At(slot)
		style := styles.Slot
		switch {
		case item == nil:
			style = styles.SlotEmpty
		case hl != nil && !hl.Highlight(item):
			style = styles.SlotFaded
		}
		c.text(r.X, r.Y, slotLabel(item), style)
	}
	m.hooks.AfterPaneDraw(s.index, p)
}

func slotLabel(item *inventory.Item) string {
	if item == nil {
		return " · "
	}
	label := truncate.String(item.Name, slotWidth-1)
	if pad := slotWidth - 1 - len([]rune(label)); pad > 0 {
		label += strings.Repeat(" ", pad)
	}
	return label
}

func (m *Model) drawHelp(c *canvas, s *screen) {
	x, y := s.origin.X+2, s.origin.Y+searchRow+1
	controls := m.cfg.Controls
	lines := [][2]string{
		{"left click", "move an item across"},
		{"right click", "pick up or drop"},
		{"wheel", "scroll the pane under the pointer"},
		{strings.Join(controls.ScrollUp, "/"), "scroll up"},
		{strings.Join(controls.ScrollDown, "/"), "scroll down"},
		{strings.Join(controls.ScrollPage, "/"), "hold to scroll a page"},
		{"/", "search"},
		{"esc", "close"},
	}
	for i, l := range lines {
		text := fmt.Sprintf("%-12s %s", l[0], l[1])
		c.text(x, y+i, truncate.String(text, uint(viewportWidth-3)), styles.Help)
	}
}
