// Package pane manages the view state of one inventory pane of a grab menu:
// the bound container, its display pipeline, scroll offset, hover state and
// the slot map from drawn slots back to true inventory indices.
package pane

import (
	"github.com/atomicstack/chestsync/internal/container"
	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/atomicstack/chestsync/internal/logging/events"
	"github.com/atomicstack/chestsync/internal/operation"
)

// ClickTarget is an overlay region that consumes left clicks.
type ClickTarget struct {
	Bounds  host.Rect
	OnClick func() bool
}

// Manager tracks one pane. The zero value is unusable; call New.
type Manager struct {
	name string

	menu      host.Menu
	pane      host.Pane
	valid     bool
	container *container.Container

	base         operation.Operation
	ops          []operation.Operation
	original     host.Highlighter
	highlighters []host.Highlighter
	targets      []ClickTarget

	scrolled  int
	hover     host.Point
	hoverSlot int

	slots   []int
	restore *inventory.Inventory
	swapped bool
}

// New creates an unbound manager. name labels trace output ("top", "bottom").
func New(name string) *Manager {
	return &Manager{name: name, hoverSlot: -1}
}

// Name returns the trace label.
func (m *Manager) Name() string { return m.name }

// Menu returns the menu the pane belongs to.
func (m *Manager) Menu() host.Menu { return m.menu }

// Pane returns the bound host pane.
func (m *Manager) Pane() host.Pane { return m.pane }

// Container returns the bound container, or nil.
func (m *Manager) Container() *container.Container { return m.container }

// Active reports whether the pane is bound to a container and has the
// structure the manager needs.
func (m *Manager) Active() bool {
	return m.valid && m.container != nil
}

// Reset binds the manager to pane of menu and clears every piece of transient
// state. Calling it again with the same arguments leaves the same state.
func (m *Manager) Reset(menu host.Menu, pane host.Pane) {
	if m.swapped && m.pane != nil {
		m.pane.SetVisible(m.restore)
	}
	m.menu = menu
	m.pane = pane
	m.container = nil
	m.base = nil
	m.ops = nil
	m.highlighters = nil
	m.targets = nil
	m.scrolled = 0
	m.hover = host.Point{}
	m.hoverSlot = -1
	m.slots = nil
	m.restore = nil
	m.swapped = false

	if pane != nil {
		if hl := pane.Highlighter(); hl != host.Highlighter(m) {
			m.original = hl
		}
	} else {
		m.original = nil
	}
	m.valid = m.validate(menu != nil)

	menuID := ""
	if menu != nil {
		menuID = menu.MenuID()
	}
	events.Pane.Reset(m.name, menuID)
}

func (m *Manager) validate(trace bool) bool {
	reason := events.PaneMismatch("")
	switch {
	case m.pane == nil:
		reason = events.PaneMismatchMissing
	case m.pane.Capacity() <= 0:
		reason = events.PaneMismatchCapacity
	case m.pane.Columns() <= 0:
		reason = events.PaneMismatchColumns
	}
	if reason == "" {
		return true
	}
	if trace {
		events.Pane.Mismatch(m.name, reason)
	}
	return false
}

// SetContainer binds c and rebuilds the option pipeline from its filters and
// sorts. Specs that fail to parse are skipped.
func (m *Manager) SetContainer(c *container.Container) {
	m.container = c
	m.base = nil
	if c == nil {
		return
	}
	opts := c.Options()
	specs := make([]string, 0, len(opts.Filters)+len(opts.Sorts))
	specs = append(specs, opts.Filters...)
	for _, s := range opts.Sorts {
		specs = append(specs, "sort:"+s)
	}
	op, failed := operation.BuildAll(specs)
	for spec, err := range failed {
		events.Pane.BadOperation(m.name, spec, err)
	}
	m.base = op
	events.Pane.Bind(m.name, c.Name())
}

// AddOperation appends op to the pipeline until the next Reset.
func (m *Manager) AddOperation(op operation.Operation) {
	if op != nil {
		m.ops = append(m.ops, op)
	}
}

// AddHighlighter adds a predicate that must also accept an item for it to be
// drawn highlighted.
func (m *Manager) AddHighlighter(h host.Highlighter) {
	if h != nil {
		m.highlighters = append(m.highlighters, h)
	}
}

// AddClickTarget registers an overlay region for LeftClick.
func (m *Manager) AddClickTarget(target ClickTarget) {
	m.targets = append(m.targets, target)
}

// Transform runs the display pipeline over items without applying scroll.
func (m *Manager) Transform(items []*inventory.Item) []*inventory.Item {
	steps := make([]operation.Operation, 0, len(m.ops)+1)
	steps = append(steps, m.base)
	steps = append(steps, m.ops...)
	return operation.Compose(steps...)(items)
}

// ApplyOperation returns the sequence the pane should draw: the pipeline
// output starting at the scrolled row. items is never modified. A scroll
// offset left past the end by a shrinking inventory is pulled back first.
func (m *Manager) ApplyOperation(items []*inventory.Item) []*inventory.Item {
	view := m.Transform(items)
	cols := m.columns()
	if cols <= 0 {
		return view
	}
	m.clampScroll(maxScroll(len(view), cols))
	if m.scrolled > 0 {
		view = operation.Skip(m.scrolled * cols)(view)
	}
	return view
}

// Rows returns the number of rows the pane draws, the size of a scroll page.
func (m *Manager) Rows() int {
	if m.pane == nil {
		return 0
	}
	return m.pane.Rows()
}

func (m *Manager) columns() int {
	if m.pane == nil {
		return 0
	}
	return m.pane.Columns()
}

// MaxScroll returns the largest valid scroll offset in rows.
func (m *Manager) MaxScroll() int {
	if m.container == nil {
		return 0
	}
	cols := m.columns()
	if cols <= 0 {
		return 0
	}
	return maxScroll(len(m.Transform(m.container.Items().Items())), cols)
}

func maxScroll(count, cols int) int {
	if count == 0 {
		return 0
	}
	return (count+cols-1)/cols - 1
}

// clampScroll lowers the offset to limit. The inventory is owned elsewhere
// and may shrink between frames.
func (m *Manager) clampScroll(limit int) {
	if m.scrolled <= limit {
		return
	}
	m.scrolled = max(limit, 0)
	events.Pane.Scroll(m.name, m.scrolled, limit)
}

// Scrolled returns the scroll offset in rows, clamped to [0, MaxScroll()].
func (m *Manager) Scrolled() int {
	if m.scrolled > 0 {
		m.clampScroll(m.MaxScroll())
	}
	return m.scrolled
}

// SetScrolled sets the scroll offset, clamped to [0, MaxScroll()].
func (m *Manager) SetScrolled(value int) {
	limit := m.MaxScroll()
	if value > limit {
		value = limit
	}
	if value < 0 {
		value = 0
	}
	if value == m.scrolled {
		return
	}
	m.scrolled = value
	events.Pane.Scroll(m.name, value, limit)
}

// ScrollBy moves the scroll offset by delta rows.
func (m *Manager) ScrollBy(delta int) {
	m.SetScrolled(m.Scrolled() + delta)
}

// Contains reports whether (x, y) lies within the pane.
func (m *Manager) Contains(x, y int) bool {
	if m.pane == nil {
		return false
	}
	return m.pane.Bounds().Contains(x, y)
}
