package pane

import (
	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/atomicstack/chestsync/internal/logging/events"
)

// BeforeDraw swaps the pane's visible inventory for the transformed view and
// records, per drawn slot, the index of its item in the true inventory. It
// reports whether a swap happened; every swap must be paired with AfterDraw
// in the same render call.
func (m *Manager) BeforeDraw(p host.Pane) bool {
	if p == nil || p != m.pane || !m.Active() || m.swapped {
		return false
	}
	current := p.Visible()
	if current == nil {
		events.Pane.Mismatch(m.name, events.PaneMismatchVisible)
		return false
	}
	truth := m.container.Items()
	view := m.ApplyOperation(truth.Items())
	capacity := p.Capacity()
	if len(view) > capacity {
		view = view[:capacity]
	}

	slots := make([]int, capacity)
	for i := range slots {
		slots[i] = -1
		if i < len(view) && view[i] != nil {
			slots[i] = truth.IndexOf(view[i])
		}
	}
	m.slots = slots
	m.restore = current
	m.swapped = true
	p.SetVisible(inventory.View(view))
	return true
}

// AfterDraw restores the inventory that was visible before BeforeDraw.
func (m *Manager) AfterDraw(p host.Pane) {
	if !m.swapped || p != m.pane {
		return
	}
	p.SetVisible(m.restore)
	m.restore = nil
	m.swapped = false
}

// TrueIndex maps a drawn slot to the index of its item in the container's
// true inventory, or -1 when the slot was empty or is out of range.
func (m *Manager) TrueIndex(slot int) int {
	if slot < 0 || slot >= len(m.slots) {
		return -1
	}
	return m.slots[slot]
}

// ItemAt returns the true item behind a drawn slot.
func (m *Manager) ItemAt(slot int) *inventory.Item {
	idx := m.TrueIndex(slot)
	if idx < 0 || m.container == nil {
		return nil
	}
	return m.container.Items().At(idx)
}

// Hover records the pointer position and the slot beneath it.
func (m *Manager) Hover(x, y int) {
	m.hover = host.Point{X: x, Y: y}
	m.hoverSlot = -1
	if m.pane == nil || !m.valid {
		return
	}
	m.hoverSlot = m.pane.SlotAt(x, y)
}

// HoveredItem returns the item under the pointer, if any.
func (m *Manager) HoveredItem() *inventory.Item {
	if !m.Active() {
		return nil
	}
	return m.ItemAt(m.hoverSlot)
}

// Highlight implements host.Highlighter: an item is highlighted when the
// host's own predicate and every registered highlighter accept it.
func (m *Manager) Highlight(item *inventory.Item) bool {
	if m.original != nil && !m.original.Highlight(item) {
		return false
	}
	for _, h := range m.highlighters {
		if !h.Highlight(item) {
			return false
		}
	}
	return true
}

// RebindHighlight installs the manager as the pane's highlighter when the
// host replaced it, keeping the host's value as the base predicate.
func (m *Manager) RebindHighlight() bool {
	if m.pane == nil {
		return false
	}
	current := m.pane.Highlighter()
	if current == host.Highlighter(m) {
		return false
	}
	m.original = current
	m.pane.SetHighlighter(m)
	events.Pane.Rebind(m.name)
	return true
}

func (m *Manager) arrows() (up, down host.Rect) {
	b := m.pane.Bounds()
	up = host.Rect{X: b.X + b.W, Y: b.Y, W: 1, H: 1}
	down = host.Rect{X: b.X + b.W, Y: b.Y + b.H - 1, W: 1, H: 1}
	return up, down
}

// LeftClick consumes clicks on the scroll arrows and registered click
// targets. Clicks on item slots are left to the host.
func (m *Manager) LeftClick(x, y int) bool {
	if !m.Active() {
		return false
	}
	if m.MaxScroll() > 0 {
		up, down := m.arrows()
		if up.Contains(x, y) {
			m.ScrollBy(-1)
			return true
		}
		if down.Contains(x, y) {
			m.ScrollBy(1)
			return true
		}
	}
	for _, target := range m.targets {
		if target.OnClick != nil && target.Bounds.Contains(x, y) && target.OnClick() {
			return true
		}
	}
	return false
}

// Draw renders the pane overlay: faded slots for items that are not
// highlighted, plus the scroll arrows and bar when the content overflows.
func (m *Manager) Draw(s host.Surface) {
	if s == nil || !m.Active() {
		return
	}
	for slot := range m.slots {
		item := m.ItemAt(slot)
		if item == nil || m.Highlight(item) {
			continue
		}
		s.FadeSlot(m.pane.SlotBounds(slot))
	}
	limit := m.MaxScroll()
	if limit == 0 {
		return
	}
	m.clampScroll(limit)
	up, down := m.arrows()
	if m.scrolled > 0 {
		s.DrawArrow(up, true)
	}
	if m.scrolled < limit {
		s.DrawArrow(down, false)
	}
	b := m.pane.Bounds()
	s.DrawScrollBar(host.Rect{X: b.X + b.W, Y: b.Y + 1, W: 1, H: b.H - 2}, m.scrolled, limit)
}
