package ui

import (
	"fmt"

	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/atomicstack/chestsync/internal/logging/events"
	"github.com/atomicstack/chestsync/internal/pane"
	"github.com/atomicstack/chestsync/internal/world"
	tea "github.com/charmbracelet/bubbletea"
)

const menuHint = "esc close · ? help · / search"

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.String() == "ctrl+c" {
		return tea.Quit
	}
	s := m.screen(m.focus)
	if s.searching {
		return m.updateSearch(s, keyMsg)
	}
	if keyMsg.String() == "tab" && m.count > 1 {
		m.focus = (m.focus + 1) % m.count
		events.UI.Focus(m.focus)
		return nil
	}
	s.input.pressed = append(s.input.pressed, host.Button(keyMsg.String()))
	return nil
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || mouse.X < 0 || mouse.Y < 0 {
		return nil
	}
	viewport := mouse.X / viewportWidth
	if viewport >= m.count {
		return nil
	}
	in := m.screen(viewport).input
	at := host.Point{X: mouse.X, Y: mouse.Y}
	if at != in.at {
		in.at = at
		in.moved = true
	}
	switch mouse.Button {
	case tea.MouseButtonWheelUp:
		in.wheel++
		in.shift = in.shift || mouse.Shift
	case tea.MouseButtonWheelDown:
		in.wheel--
		in.shift = in.shift || mouse.Shift
	case tea.MouseButtonLeft, tea.MouseButtonRight:
		if mouse.Action != tea.MouseActionPress {
			return nil
		}
		b := host.MouseLeft
		if mouse.Button == tea.MouseButtonRight {
			b = host.MouseRight
		}
		in.clicks = append(in.clicks, click{button: b, at: at})
		if m.focus != viewport {
			m.focus = viewport
			events.UI.Focus(viewport)
		}
	}
	return nil
}

func (m *Model) updateSearch(s *screen, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		s.search.SetValue("")
		m.setQuery(s, "")
		fallthrough
	case tea.KeyEnter:
		s.searching = false
		s.search.Blur()
		return nil
	}
	before := s.search.Value()
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	if value := s.search.Value(); value != before {
		m.setQuery(s, value)
	}
	return cmd
}

func (m *Model) setQuery(s *screen, query string) {
	m.finder.SetQuery(s.index, query)
	events.Filter.Query(s.index, query)
}

// hostKey is the host's reaction to a key the engine left alone.
func (m *Model) hostKey(s *screen, b host.Button) tea.Cmd {
	name := string(b)
	g := s.menu
	if g == nil {
		switch name {
		case "up", "k":
			s.list.MoveCursorUp()
		case "down", "j":
			s.list.MoveCursorDown()
		case "pgup":
			s.list.MoveCursorPageUp(m.listRows())
		case "pgdown":
			s.list.MoveCursorPageDown(m.listRows())
		case "home", "g":
			s.list.MoveCursorHome()
		case "end", "G":
			s.list.MoveCursorEnd()
		case "enter", " ":
			if id, ok := s.list.Current(); ok {
				m.openChest(s, id)
			}
		case "q":
			return tea.Quit
		}
		return nil
	}
	if g.child != nil {
		if name == "esc" || name == "?" {
			m.setHelp(s, false)
		}
		return nil
	}
	switch name {
	case "esc", "q":
		m.closeMenu(s)
	case "?":
		m.setHelp(s, true)
	case "/":
		if !m.features.Active("search") {
			s.status = "search is disabled"
			return nil
		}
		s.searching = true
		return s.search.Focus()
	}
	return nil
}

func (m *Model) scrollList(s *screen, delta int) {
	for ; delta > 0; delta-- {
		s.list.MoveCursorDown()
	}
	for ; delta < 0; delta++ {
		s.list.MoveCursorUp()
	}
}

// hover refreshes the menu's own idea of what is under the pointer. Outside
// a draw the panes show their true inventories, so the slot index is used
// as is.
func (m *Model) hover(s *screen) {
	g := s.menu
	if g == nil {
		return
	}
	at := s.input.at
	g.hovered = nil
	g.hoverText = ""
	if p := g.paneAt(at.X, at.Y); p != nil {
		if slot := p.SlotAt(at.X, at.Y); slot >= 0 {
			g.hovered = p.visible.At(slot)
		}
	}
	if at.Y == s.origin.Y+titleRow {
		g.hoverText = menuHint
	}
}

func (m *Model) hostClick(s *screen, c click) {
	g := s.menu
	if g == nil {
		if c.button != host.MouseLeft {
			return
		}
		row := c.at.Y - (s.origin.Y + listRow)
		if row < 0 || row >= m.listRows() {
			return
		}
		if idx := s.list.ViewportOffset + row; idx < len(s.list.Items) {
			s.list.Cursor = idx
			m.openChest(s, s.list.Items[idx])
		}
		return
	}
	if g.child != nil {
		m.setHelp(s, false)
		return
	}
	switch c.button {
	case host.MouseLeft:
		m.transfer(s, c.at)
	case host.MouseRight:
		m.pickOrDrop(s, c.at)
	}
}

// slotIndex maps the slot under at to an index into the pane's true
// inventory. While the engine drives the pane the drawn slot can show any
// item, so the mapping from the last draw is used.
func (m *Model) slotIndex(s *screen, at host.Point) (*gridPane, int) {
	g := s.menu
	p := g.paneAt(at.X, at.Y)
	if p == nil {
		return nil, -1
	}
	slot := p.SlotAt(at.X, at.Y)
	if slot < 0 {
		return p, -1
	}
	var pm *pane.Manager
	if p == g.top {
		pm = m.menus.Top(s.index)
	} else {
		pm = m.menus.Bottom(s.index)
	}
	if pm.Active() && pm.Pane() == host.Pane(p) {
		return p, pm.TrueIndex(slot)
	}
	return p, slot
}

func (m *Model) transfer(s *screen, at host.Point) {
	g := s.menu
	from, idx := m.slotIndex(s, at)
	if from == nil || idx < 0 {
		return
	}
	item := from.owner.At(idx)
	if item == nil {
		return
	}
	to := g.bottom
	if from == g.bottom {
		to = g.top
	}
	if !to.owner.Add(item) {
		s.status = fmt.Sprintf("no room for %s", item.Label())
		return
	}
	from.owner.RemoveAt(idx)
	s.status = fmt.Sprintf("moved %s", item.Label())
	events.UI.Transfer(s.index, item.Name, m.paneName(g, from), m.paneName(g, to), idx)
}

func (m *Model) pickOrDrop(s *screen, at host.Point) {
	g := s.menu
	if g.held == nil {
		p, idx := m.slotIndex(s, at)
		if p == nil || idx < 0 {
			return
		}
		if item := p.owner.RemoveAt(idx); item != nil {
			g.held, g.heldFrom = item, p.owner
		}
		return
	}
	target := g.heldFrom
	if p := g.paneAt(at.X, at.Y); p != nil {
		target = p.owner
	}
	if target.Add(g.held) || (target != g.heldFrom && g.heldFrom.Add(g.held)) {
		g.held, g.heldFrom = nil, nil
	}
}

func (m *Model) paneName(g *grabMenu, p *gridPane) string {
	if p == g.top && g.source != nil {
		return g.source.ID
	}
	return "player"
}

// openChest shows the grab menu for id under the chest's lock. When another
// viewport holds the chest open the request waits for a later tick.
func (m *Model) openChest(s *screen, id string) {
	if s.waiting != "" {
		s.status = "still waiting"
		return
	}
	chest, ok := m.world.Chest(id)
	if !ok {
		s.status = fmt.Sprintf("%s is gone", id)
		return
	}
	c, ok := m.factory.TryGetOne(chest)
	if !ok {
		m.showMenu(s, chest)
		events.UI.Open(s.index, id, false)
		return
	}
	opened := m.menus.OpenContainer(s.index, c, func() {
		s.waiting = ""
		if fresh, ok := m.world.Chest(id); ok {
			m.showMenu(s, fresh)
		}
	})
	if !opened {
		s.waiting = id
		s.status = fmt.Sprintf("waiting for %s", chest.Label())
	}
	events.UI.Open(s.index, id, !opened)
}

func (m *Model) showMenu(s *screen, chest *world.Chest) {
	s.menu = m.buildMenu(s, chest)
	s.status = ""
	if m.cfg.Features.Verbose {
		s.status = m.resolution(chest, s.menu.top.capacity)
	}
}

// resolution describes the container behind chest for the verbose status
// line.
func (m *Model) resolution(chest *world.Chest, capacity int) string {
	c, ok := m.factory.TryGetOne(chest)
	if !ok {
		return fmt.Sprintf("%s: no container for kind %q, %d slots", chest.ID, chest.Kind(), capacity)
	}
	return fmt.Sprintf("%s · %s · %d slots · %s", c.Name(), c.Options().Resize, capacity, c.ID.String()[:8])
}

func (m *Model) buildMenu(s *screen, chest *world.Chest) *grabMenu {
	m.menuSeq++
	capacity := m.hooks.MenuCapacity(s.index, m.requestedCapacity(chest), chest)
	x := s.origin.X + 1
	top := newGridPane(x, s.origin.Y+topRow, capacity, chest.Inventory())
	player := m.world.Player(s.index)
	bottom := newGridPane(x, top.bounds.Y+top.bounds.H+1, limitOr(player.Inventory(), defaultCapacity), player.Inventory())
	return &grabMenu{
		id:       fmt.Sprintf("grab-%d-%s", m.menuSeq, chest.ID),
		source:   chest,
		top:      top,
		bottom:   bottom,
		backdrop: true,
	}
}

// reopen replaces the open menu of s with one over chest, as the host does
// when the entity behind it was rebuilt.
func (m *Model) reopen(s *screen, chest *world.Chest) {
	old := s.menu
	if old != nil && old.heldFrom == old.top.owner {
		old.heldFrom = chest.Inventory()
	}
	swap := func() {
		s.waiting = ""
		fresh := m.buildMenu(s, chest)
		if old != nil && s.menu == old {
			fresh.held, fresh.heldFrom = old.held, old.heldFrom
			fresh.child = old.child
		}
		s.menu = fresh
	}
	c, ok := m.factory.TryGetOne(chest)
	if !ok {
		swap()
		return
	}
	if !m.menus.OpenContainer(s.index, c, swap) {
		m.closeMenu(s)
		s.waiting = chest.ID
	}
}

func (m *Model) closeMenu(s *screen) {
	g := s.menu
	if g == nil {
		return
	}
	if g.held != nil {
		if !g.heldFrom.Add(g.held) {
			m.world.Player(s.index).Inventory().Add(g.held)
		}
		g.held, g.heldFrom = nil, nil
	}
	s.menu = nil
	s.searching = false
	s.search.Blur()
	if s.search.Value() != "" {
		s.search.SetValue("")
		m.setQuery(s, "")
	}
	chest := ""
	if g.source != nil {
		chest = g.source.ID
	}
	events.UI.Close(s.index, chest)
}

func (m *Model) setHelp(s *screen, shown bool) {
	g := s.menu
	if g == nil {
		return
	}
	if shown {
		g.child = &helpMenu{id: g.id + "/help"}
	} else {
		g.child = nil
	}
	m.hooks.ChildMenuAssigned(s.index)
	events.UI.Help(s.index, shown)
}

// requestedCapacity is the slot count a chest asks for: its configured rows
// when set, otherwise its own limit.
func (m *Model) requestedCapacity(chest *world.Chest) int {
	if c, ok := m.factory.TryGetOne(chest); ok && c.Options().Rows > 0 {
		return c.Options().Rows * paneColumns
	}
	return limitOr(chest.Inventory(), defaultCapacity)
}

func limitOr(inv *inventory.Inventory, fallback int) int {
	if limit := inv.Limit(); limit > 0 {
		return limit
	}
	return fallback
}
