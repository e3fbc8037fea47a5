package testutil

import (
	"fmt"

	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/inventory"
)

// Items builds n distinct items named item-0..item-(n-1).
func Items(n int) []*inventory.Item {
	out := make([]*inventory.Item, n)
	for i := range out {
		out[i] = &inventory.Item{
			ID:       fmt.Sprintf("item-%d", i),
			Name:     fmt.Sprintf("item-%d", i),
			Category: "misc",
			Stack:    1,
		}
	}
	return out
}

// Entity is a storage entity with a fixed kind.
type Entity struct {
	ID       string
	KindName string
	Inv      *inventory.Inventory
}

func (e *Entity) EntityID() string                { return e.ID }
func (e *Entity) Kind() string                    { return e.KindName }
func (e *Entity) Inventory() *inventory.Inventory { return e.Inv }

// Menu is a plain menu that may carry a child menu.
type Menu struct {
	ID    string
	Child host.Menu
}

func (m *Menu) MenuID() string       { return m.ID }
func (m *Menu) ChildMenu() host.Menu { return m.Child }

// Pane is a grid pane with one cell per slot.
type Pane struct {
	Rect  host.Rect
	Cols  int
	Lines int
	Inv   *inventory.Inventory
	HL    host.Highlighter

	// Drawn records the inventory visible at each Draw call.
	Drawn []*inventory.Inventory
}

// NewPane creates a pane at (x, y) of cols x rows slots showing inv.
func NewPane(x, y, cols, rows int, inv *inventory.Inventory) *Pane {
	return &Pane{
		Rect:  host.Rect{X: x, Y: y, W: cols, H: rows},
		Cols:  cols,
		Lines: rows,
		Inv:   inv,
	}
}

func (p *Pane) Bounds() host.Rect                   { return p.Rect }
func (p *Pane) Columns() int                        { return p.Cols }
func (p *Pane) Rows() int                           { return p.Lines }
func (p *Pane) Capacity() int                       { return p.Cols * p.Lines }
func (p *Pane) Visible() *inventory.Inventory       { return p.Inv }
func (p *Pane) SetVisible(inv *inventory.Inventory) { p.Inv = inv }
func (p *Pane) Highlighter() host.Highlighter       { return p.HL }
func (p *Pane) SetHighlighter(h host.Highlighter)   { p.HL = h }

func (p *Pane) SlotAt(x, y int) int {
	if !p.Rect.Contains(x, y) {
		return -1
	}
	slot := (y-p.Rect.Y)*p.Cols + (x - p.Rect.X)
	if slot >= p.Capacity() {
		return -1
	}
	return slot
}

func (p *Pane) SlotBounds(slot int) host.Rect {
	if slot < 0 || p.Cols <= 0 {
		return host.Rect{}
	}
	return host.Rect{X: p.Rect.X + slot%p.Cols, Y: p.Rect.Y + slot/p.Cols, W: 1, H: 1}
}

// Draw simulates the host drawing the pane.
func (p *Pane) Draw() {
	p.Drawn = append(p.Drawn, p.Inv)
}

// GrabMenu is a two pane transfer menu.
type GrabMenu struct {
	ID       string
	Src      host.Entity
	Top      *Pane
	Bottom   *Pane
	Backdrop bool
	Held     *inventory.Item
	Hovered  *inventory.Item
	Text     string
	Child    host.Menu
}

// NewGrabMenu creates a menu showing source above player.
func NewGrabMenu(id string, source host.Entity, player *inventory.Inventory) *GrabMenu {
	var srcInv *inventory.Inventory
	if source != nil {
		srcInv = source.Inventory()
	}
	return &GrabMenu{
		ID:       id,
		Src:      source,
		Top:      NewPane(0, 0, 12, 5, srcInv),
		Bottom:   NewPane(0, 10, 12, 3, player),
		Backdrop: true,
	}
}

func (m *GrabMenu) MenuID() string               { return m.ID }
func (m *GrabMenu) ChildMenu() host.Menu         { return m.Child }
func (m *GrabMenu) Source() host.Entity          { return m.Src }
func (m *GrabMenu) SourcePane() host.Pane        { return paneOrNil(m.Top) }
func (m *GrabMenu) PlayerPane() host.Pane        { return paneOrNil(m.Bottom) }
func (m *GrabMenu) SetDrawBackdrop(v bool)       { m.Backdrop = v }
func (m *GrabMenu) HeldItem() *inventory.Item    { return m.Held }
func (m *GrabMenu) HoveredItem() *inventory.Item { return m.Hovered }
func (m *GrabMenu) HoverText() string            { return m.Text }

func paneOrNil(p *Pane) host.Pane {
	if p == nil {
		return nil
	}
	return p
}

// Input records suppressed buttons.
type Input struct {
	At         host.Point
	Down       map[host.Button]bool
	Suppressed []host.Button
}

func (i *Input) Pointer() host.Point       { return i.At }
func (i *Input) IsDown(b host.Button) bool { return i.Down[b] }
func (i *Input) Suppress(b host.Button)    { i.Suppressed = append(i.Suppressed, b) }

// Surface records overlay draw calls in order.
type Surface struct {
	Calls []string
}

func (s *Surface) Dim(alpha float64) {
	s.Calls = append(s.Calls, fmt.Sprintf("dim:%.2f", alpha))
}

func (s *Surface) FadeSlot(r host.Rect) {
	s.Calls = append(s.Calls, fmt.Sprintf("fade:%d,%d", r.X, r.Y))
}

func (s *Surface) DrawScrollBar(r host.Rect, offset, max int) {
	s.Calls = append(s.Calls, fmt.Sprintf("scrollbar:%d/%d", offset, max))
}

func (s *Surface) DrawArrow(r host.Rect, up bool) {
	if up {
		s.Calls = append(s.Calls, "arrow:up")
		return
	}
	s.Calls = append(s.Calls, "arrow:down")
}

func (s *Surface) DrawTooltip(at host.Point, item *inventory.Item, text string) {
	name := text
	if item != nil {
		name = item.Name
	}
	s.Calls = append(s.Calls, "tooltip:"+name)
}

func (s *Surface) DrawHeldItem(at host.Point, item *inventory.Item) {
	s.Calls = append(s.Calls, fmt.Sprintf("held:%s@%d,%d", item.Name, at.X, at.Y))
}

func (s *Surface) DrawCursor(at host.Point) {
	s.Calls = append(s.Calls, fmt.Sprintf("cursor@%d,%d", at.X, at.Y))
}

// Host serves menus, players and input per viewport.
type Host struct {
	Menus   map[int]host.Menu
	Players map[int]host.Entity
	Inputs  map[int]*Input
	Clear   bool
}

// NewHost creates a host for viewport 0 with the given player.
func NewHost(player host.Entity) *Host {
	return &Host{
		Menus:   map[int]host.Menu{},
		Players: map[int]host.Entity{0: player},
		Inputs:  map[int]*Input{0: {Down: map[host.Button]bool{}}},
	}
}

func (h *Host) ActiveMenu(viewport int) host.Menu {
	return h.Menus[viewport]
}

func (h *Host) Player(viewport int) host.Entity {
	return h.Players[viewport]
}

func (h *Host) Input(viewport int) host.Input {
	in, ok := h.Inputs[viewport]
	if !ok {
		in = &Input{Down: map[host.Button]bool{}}
		h.Inputs[viewport] = in
	}
	return in
}

func (h *Host) ClearBackgrounds() bool { return h.Clear }

// SetMenu installs menu as the active menu of viewport; nil clears it.
func (h *Host) SetMenu(viewport int, menu host.Menu) {
	if menu == nil {
		delete(h.Menus, viewport)
		return
	}
	h.Menus[viewport] = menu
}
