package grabmenu

import "github.com/atomicstack/chestsync/internal/host"

const backdropAlpha = 0.25

// heldOffset is where the held item is drawn relative to the pointer.
var heldOffset = host.Point{X: 8, Y: 8}

// RenderBegin dims the screen behind the current grab menu, unless the host
// asks for clear backgrounds.
func (m *Manager) RenderBegin(viewport int, s host.Surface) {
	if s == nil || m.CurrentMenu(viewport) == nil || m.host.ClearBackgrounds() {
		return
	}
	s.Dim(backdropAlpha)
}

// RenderEnd draws the pane overlays and then redraws the foreground the
// overlays would otherwise cover: tooltip, held item and cursor.
func (m *Manager) RenderEnd(viewport int, s host.Surface) {
	menu := m.CurrentMenu(viewport)
	if s == nil || menu == nil {
		return
	}
	sc := m.screens.Get(viewport)
	sc.top.Draw(s)
	sc.bottom.Draw(s)

	_, at := m.pointer(viewport)
	hovered := sc.top.HoveredItem()
	if hovered == nil {
		hovered = sc.bottom.HoveredItem()
	}
	if hovered == nil {
		hovered = menu.HoveredItem()
	}
	switch {
	case hovered != nil:
		s.DrawTooltip(at, hovered, hovered.Description)
	case menu.HoverText() != "":
		s.DrawTooltip(at, nil, menu.HoverText())
	}

	if held := menu.HeldItem(); held != nil {
		s.DrawHeldItem(host.Point{X: at.X + heldOffset.X, Y: at.Y + heldOffset.Y}, held)
	}
	s.DrawCursor(at)
}
