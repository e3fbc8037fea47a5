// Package host describes the collaborator that owns menus, panes, entities and
// input. The engine never constructs these objects; it observes them through
// the interfaces below and may be handed new instances at any tick.
//
// Menu and Pane implementations are compared with ==, so they must be pointer
// (or otherwise comparable) types.
package host

import "github.com/atomicstack/chestsync/internal/inventory"

// Point is a cell coordinate on the host surface.
type Point struct {
	X int
	Y int
}

// Rect is an axis aligned region on the host surface.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Menu is any menu the host may consider active.
type Menu interface {
	MenuID() string
}

// ChildMenuHolder is implemented by menus that can host a child menu which
// overrides them while present.
type ChildMenuHolder interface {
	ChildMenu() Menu
}

// GrabMenu is the two pane item transfer menu.
type GrabMenu interface {
	Menu
	// Source is the entity whose inventory fills the source pane. It may be nil.
	Source() Entity
	SourcePane() Pane
	PlayerPane() Pane
	SetDrawBackdrop(bool)
	HeldItem() *inventory.Item
	HoveredItem() *inventory.Item
	HoverText() string
}

// Highlighter decides whether an item is drawn highlighted.
type Highlighter interface {
	Highlight(item *inventory.Item) bool
}

// HighlightFunc adapts a function to Highlighter.
type HighlightFunc func(item *inventory.Item) bool

// Highlight implements Highlighter.
func (f HighlightFunc) Highlight(item *inventory.Item) bool {
	if f == nil {
		return true
	}
	return f(item)
}

// Pane is a grid of slots displaying an inventory.
type Pane interface {
	Bounds() Rect
	Columns() int
	Rows() int
	// Capacity is the number of slots the pane draws.
	Capacity() int
	// SlotAt returns the visible slot under (x, y), or -1.
	SlotAt(x, y int) int
	SlotBounds(slot int) Rect
	// Visible is the inventory the pane currently draws.
	Visible() *inventory.Inventory
	SetVisible(*inventory.Inventory)
	Highlighter() Highlighter
	SetHighlighter(Highlighter)
}

// Entity is a world object that may own an inventory.
type Entity interface {
	EntityID() string
	Kind() string
	Inventory() *inventory.Inventory
}

// Button names an input (mouse button, key or wheel direction).
type Button string

const (
	MouseLeft  Button = "mouse_left"
	MouseRight Button = "mouse_right"
)

func (b Button) String() string { return string(b) }

// Input exposes the host input state for one viewport.
type Input interface {
	Pointer() Point
	IsDown(b Button) bool
	// Suppress stops b from reaching the host for the rest of the tick.
	Suppress(b Button)
}

// Surface receives overlay drawing calls during the render phase.
type Surface interface {
	Dim(alpha float64)
	FadeSlot(r Rect)
	DrawScrollBar(r Rect, offset, max int)
	DrawArrow(r Rect, up bool)
	DrawTooltip(at Point, item *inventory.Item, text string)
	DrawHeldItem(at Point, item *inventory.Item)
	DrawCursor(at Point)
}

// Host is the collaborator the engine observes each tick.
type Host interface {
	ActiveMenu(viewport int) Menu
	Player(viewport int) Entity
	Input(viewport int) Input
	ClearBackgrounds() bool
}

// Hooks are the interception points the host invokes around its own routines.
type Hooks interface {
	// ChildMenuAssigned runs after the host sets or clears a child menu.
	ChildMenuAssigned(viewport int)
	// BeforePaneDraw runs immediately before the host draws pane.
	BeforePaneDraw(viewport int, pane Pane)
	// AfterPaneDraw runs immediately after the host draws pane.
	AfterPaneDraw(viewport int, pane Pane)
	// MenuCapacity returns the capacity a grab menu for source should use.
	MenuCapacity(viewport int, requested int, source Entity) int
}

// ResolveMenu returns the active menu for viewport after applying any child
// menu override.
func ResolveMenu(h Host, viewport int) Menu {
	if h == nil {
		return nil
	}
	menu := h.ActiveMenu(viewport)
	if menu == nil {
		return nil
	}
	if holder, ok := menu.(ChildMenuHolder); ok {
		if child := holder.ChildMenu(); child != nil {
			return child
		}
	}
	return menu
}
