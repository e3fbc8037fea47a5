package grabmenu

import (
	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/logging/events"
	"github.com/atomicstack/chestsync/internal/pane"
	"github.com/charmbracelet/bubbles/key"
)

func (m *Manager) pointer(viewport int) (host.Input, host.Point) {
	in := m.host.Input(viewport)
	if in == nil {
		return nil, host.Point{}
	}
	return in, in.Pointer()
}

// ButtonPressed offers a primary click to the source pane, then the player
// pane. The first pane that consumes it suppresses the button. It reports
// whether the click was consumed.
func (m *Manager) ButtonPressed(viewport int, b host.Button) bool {
	if b != host.MouseLeft || m.CurrentMenu(viewport) == nil {
		return false
	}
	in, at := m.pointer(viewport)
	s := m.screens.Get(viewport)
	target := ""
	switch {
	case s.top.LeftClick(at.X, at.Y):
		target = s.top.Name()
	case s.bottom.LeftClick(at.X, at.Y):
		target = s.bottom.Name()
	default:
		return false
	}
	if in != nil {
		in.Suppress(b)
	}
	events.Menu.Input(viewport, "click", target, true)
	return true
}

// CursorMoved updates hover state of both panes.
func (m *Manager) CursorMoved(viewport int, at host.Point) {
	if m.CurrentMenu(viewport) == nil {
		return
	}
	s := m.screens.Get(viewport)
	s.top.Hover(at.X, at.Y)
	s.bottom.Hover(at.X, at.Y)
}

// WheelScrolled scrolls the pane under the pointer. A positive delta scrolls
// up.
func (m *Manager) WheelScrolled(viewport int, delta int) {
	if delta == 0 || m.CurrentMenu(viewport) == nil {
		return
	}
	in, at := m.pointer(viewport)
	s := m.screens.Get(viewport)
	for _, pm := range []*pane.Manager{s.top, s.bottom} {
		if !pm.Contains(at.X, at.Y) {
			continue
		}
		step := m.step(in, pm)
		if delta > 0 {
			step = -step
		}
		pm.ScrollBy(step)
		events.Menu.Input(viewport, "wheel", pm.Name(), true)
	}
}

// KeybindsChanged applies the scroll keybindings among pressed to the pane
// under the pointer, falling back to the source pane. Matched buttons are
// suppressed.
func (m *Manager) KeybindsChanged(viewport int, pressed []host.Button) {
	if len(pressed) == 0 || m.CurrentMenu(viewport) == nil {
		return
	}
	in, at := m.pointer(viewport)
	s := m.screens.Get(viewport)
	target := s.top
	if !s.top.Contains(at.X, at.Y) && s.bottom.Contains(at.X, at.Y) {
		target = s.bottom
	}

	direction := 0
	for _, b := range pressed {
		switch {
		case key.Matches(b, m.controls.ScrollUp):
			direction--
		case key.Matches(b, m.controls.ScrollDown):
			direction++
		default:
			continue
		}
		if in != nil {
			in.Suppress(b)
		}
	}
	if direction == 0 {
		return
	}
	target.ScrollBy(direction * m.step(in, target))
	events.Menu.Input(viewport, "keybind", target.Name(), true)
}

// step is one row, or a page of rows while a page modifier is held.
func (m *Manager) step(in host.Input, pm *pane.Manager) int {
	if in == nil {
		return 1
	}
	for _, k := range m.controls.ScrollPage.Keys() {
		if in.IsDown(host.Button(k)) {
			if rows := pm.Rows(); rows > 0 {
				return rows
			}
		}
	}
	return 1
}
