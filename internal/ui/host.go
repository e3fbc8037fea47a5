package ui

import (
	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/atomicstack/chestsync/internal/world"
)

const (
	// slotWidth is the cell width of one slot including its gap.
	slotWidth   = 4
	paneColumns = 12
	// viewportWidth leaves room for the scroll arrows right of a pane.
	viewportWidth = 1 + paneColumns*slotWidth + 3
	defaultHeight = 18
	// defaultCapacity is what a chest asks for when its fixture sets no
	// capacity.
	defaultCapacity = 36
)

// FrameWidth returns the terminal width count viewports need side by side.
func FrameWidth(count int) int {
	return max(count, 1) * viewportWidth
}

var (
	_ host.Host            = (*Model)(nil)
	_ host.GrabMenu        = (*grabMenu)(nil)
	_ host.ChildMenuHolder = (*grabMenu)(nil)
	_ host.Pane            = (*gridPane)(nil)
	_ host.Input           = (*termInput)(nil)
)

// gridPane is a block of slots laid out in rows of paneColumns.
type gridPane struct {
	bounds   host.Rect
	capacity int
	owner    *inventory.Inventory
	visible  *inventory.Inventory
	hl       host.Highlighter
}

func newGridPane(x, y, capacity int, owner *inventory.Inventory) *gridPane {
	if capacity < 0 {
		capacity = 0
	}
	rows := (capacity + paneColumns - 1) / paneColumns
	return &gridPane{
		bounds:   host.Rect{X: x, Y: y, W: paneColumns * slotWidth, H: rows},
		capacity: capacity,
		owner:    owner,
		visible:  owner,
		hl:       host.HighlightFunc(nil),
	}
}

func (p *gridPane) Bounds() host.Rect                   { return p.bounds }
func (p *gridPane) Columns() int                        { return paneColumns }
func (p *gridPane) Rows() int                           { return p.bounds.H }
func (p *gridPane) Capacity() int                       { return p.capacity }
func (p *gridPane) Visible() *inventory.Inventory       { return p.visible }
func (p *gridPane) SetVisible(inv *inventory.Inventory) { p.visible = inv }
func (p *gridPane) Highlighter() host.Highlighter       { return p.hl }
func (p *gridPane) SetHighlighter(h host.Highlighter)   { p.hl = h }

// SlotAt returns the slot under (x, y). Gap cells between slots hit nothing.
func (p *gridPane) SlotAt(x, y int) int {
	if !p.bounds.Contains(x, y) {
		return -1
	}
	dx := x - p.bounds.X
	if dx%slotWidth == slotWidth-1 {
		return -1
	}
	slot := (y-p.bounds.Y)*paneColumns + dx/slotWidth
	if slot >= p.capacity {
		return -1
	}
	return slot
}

func (p *gridPane) SlotBounds(slot int) host.Rect {
	if slot < 0 || slot >= p.capacity {
		return host.Rect{}
	}
	return host.Rect{
		X: p.bounds.X + (slot%paneColumns)*slotWidth,
		Y: p.bounds.Y + slot/paneColumns,
		W: slotWidth - 1,
		H: 1,
	}
}

// helpMenu is the child menu listing the controls.
type helpMenu struct {
	id string
}

func (h *helpMenu) MenuID() string { return h.id }

// grabMenu shows a chest above the player's inventory.
type grabMenu struct {
	id     string
	source *world.Chest
	top    *gridPane
	bottom *gridPane

	backdrop bool
	child    host.Menu

	held     *inventory.Item
	heldFrom *inventory.Inventory

	hovered   *inventory.Item
	hoverText string
}

func (g *grabMenu) MenuID() string               { return g.id }
func (g *grabMenu) SourcePane() host.Pane        { return g.top }
func (g *grabMenu) PlayerPane() host.Pane        { return g.bottom }
func (g *grabMenu) SetDrawBackdrop(v bool)       { g.backdrop = v }
func (g *grabMenu) HeldItem() *inventory.Item    { return g.held }
func (g *grabMenu) HoveredItem() *inventory.Item { return g.hovered }
func (g *grabMenu) HoverText() string            { return g.hoverText }
func (g *grabMenu) ChildMenu() host.Menu         { return g.child }

func (g *grabMenu) Source() host.Entity {
	if g.source == nil {
		return nil
	}
	return g.source
}

// paneAt returns the pane containing (x, y).
func (g *grabMenu) paneAt(x, y int) *gridPane {
	switch {
	case g.top.bounds.Contains(x, y):
		return g.top
	case g.bottom.bounds.Contains(x, y):
		return g.bottom
	}
	return nil
}

// click is a pointer press waiting for the next tick.
type click struct {
	button host.Button
	at     host.Point
}

// termInput is the input state of one viewport. Presses collect between
// ticks and are handed to the engine during the next update phase.
type termInput struct {
	at         host.Point
	moved      bool
	down       map[host.Button]bool
	suppressed map[host.Button]bool

	pressed []host.Button
	clicks  []click
	wheel   int
	shift   bool
}

func newTermInput(origin host.Point) *termInput {
	return &termInput{
		at:         origin,
		down:       make(map[host.Button]bool),
		suppressed: make(map[host.Button]bool),
	}
}

func (in *termInput) Pointer() host.Point       { return in.at }
func (in *termInput) IsDown(b host.Button) bool { return in.down[b] }
func (in *termInput) Suppress(b host.Button)    { in.suppressed[b] = true }

// beginTick forgets suppressions from the previous tick.
func (in *termInput) beginTick() {
	for b := range in.suppressed {
		delete(in.suppressed, b)
	}
}

func (in *termInput) pending() bool {
	return in.moved || in.wheel != 0 || len(in.pressed) > 0 || len(in.clicks) > 0
}

// ActiveMenu implements host.Host.
func (m *Model) ActiveMenu(viewport int) host.Menu {
	v, ok := m.screens.Lookup(viewport)
	if !ok || v.menu == nil {
		return nil
	}
	return v.menu
}

// Player implements host.Host.
func (m *Model) Player(viewport int) host.Entity {
	return m.world.Player(viewport)
}

// Input implements host.Host.
func (m *Model) Input(viewport int) host.Input {
	v, ok := m.screens.Lookup(viewport)
	if !ok {
		return nil
	}
	return v.input
}

// ClearBackgrounds implements host.Host.
func (m *Model) ClearBackgrounds() bool {
	return m.cfg.App.ClearBackgrounds
}
