// Package grabmenu follows the active menu of every viewport, binds the two
// panes of a grab menu to their containers and routes host input and render
// phases to them.
package grabmenu

import (
	"strings"

	"github.com/atomicstack/chestsync/internal/container"
	"github.com/atomicstack/chestsync/internal/event"
	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/lock"
	"github.com/atomicstack/chestsync/internal/logging/events"
	"github.com/atomicstack/chestsync/internal/pane"
	"github.com/atomicstack/chestsync/internal/state"
	"github.com/charmbracelet/bubbles/key"
)

// MaxCapacity is the largest number of slots a grab menu may show.
const MaxCapacity = 70

// Controls are the scroll bindings matched against host buttons.
type Controls struct {
	ScrollUp   key.Binding
	ScrollDown key.Binding
	ScrollPage key.Binding
}

// NewControls builds bindings from key names.
func NewControls(up, down, page []string) Controls {
	return Controls{
		ScrollUp:   key.NewBinding(key.WithKeys(up...), key.WithHelp(strings.Join(up, "/"), "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys(down...), key.WithHelp(strings.Join(down, "/"), "scroll down")),
		ScrollPage: key.NewBinding(key.WithKeys(page...), key.WithHelp(strings.Join(page, "/"), "page scroll")),
	}
}

type dedupeKey struct {
	kind   host.EventKind
	button host.Button
}

type screen struct {
	menu   host.Menu
	top    *pane.Manager
	bottom *pane.Manager

	held    *lock.Mutex
	heldFor host.Menu

	seen map[dedupeKey]uint64
}

func newScreen(int) *screen {
	return &screen{
		top:    pane.New("top"),
		bottom: pane.New("bottom"),
		seen:   make(map[dedupeKey]uint64),
	}
}

// admit reports whether evt is the first of its kind in its tick.
func (s *screen) admit(evt host.Event) bool {
	k := dedupeKey{kind: evt.Kind}
	if evt.Kind == host.ButtonPressed {
		k.button = evt.Button
	}
	if last, ok := s.seen[k]; ok && last == evt.Tick {
		return false
	}
	s.seen[k] = evt.Tick
	return true
}

// Manager is the per-process menu orchestrator. It implements host.Hooks.
type Manager struct {
	host     host.Host
	factory  *container.Factory
	bus      *event.Bus
	controls Controls
	screens  *state.PerScreen[*screen]

	resumed    bool
	resumeTick uint64
}

var _ host.Hooks = (*Manager)(nil)

// New creates a manager. bus may be nil when nobody listens for menu changes.
func New(h host.Host, factory *container.Factory, bus *event.Bus, controls Controls) *Manager {
	return &Manager{
		host:     h,
		factory:  factory,
		bus:      bus,
		controls: controls,
		screens:  state.NewPerScreen(newScreen),
	}
}

// SetControls replaces the scroll bindings.
func (m *Manager) SetControls(c Controls) { m.controls = c }

// Top returns the source pane manager of viewport.
func (m *Manager) Top(viewport int) *pane.Manager { return m.screens.Get(viewport).top }

// Bottom returns the player pane manager of viewport.
func (m *Manager) Bottom(viewport int) *pane.Manager { return m.screens.Get(viewport).bottom }

// CurrentMenu returns the tracked grab menu of viewport while it is the
// host's active menu without a child covering it.
func (m *Manager) CurrentMenu(viewport int) host.GrabMenu {
	s, ok := m.screens.Lookup(viewport)
	if !ok || s.menu == nil {
		return nil
	}
	grab, ok := s.menu.(host.GrabMenu)
	if !ok || m.host.ActiveMenu(viewport) != s.menu {
		return nil
	}
	return grab
}

// Sync compares the host's active menu of viewport with the tracked one. An
// unchanged menu only gets its highlight predicates rebound; a new menu resets
// both panes, re-resolves their containers and publishes event.MenuChanged.
func (m *Manager) Sync(viewport int) {
	s := m.screens.Get(viewport)
	m.releaseStale(viewport, s)

	current := host.ResolveMenu(m.host, viewport)
	if current == s.menu {
		if current == nil {
			return
		}
		rebound := false
		for _, pm := range []*pane.Manager{s.top, s.bottom} {
			if pm.Active() && pm.RebindHighlight() {
				rebound = true
			}
		}
		if rebound {
			events.Menu.Rebind(viewport, current.MenuID())
		}
		return
	}

	previous := s.menu
	s.menu = current
	changed := event.MenuChanged{Viewport: viewport, Previous: previous, Menu: current}

	grab, ok := current.(host.GrabMenu)
	if !ok {
		s.top.Reset(nil, nil)
		s.bottom.Reset(nil, nil)
		m.publish(changed)
		return
	}

	s.top.Reset(grab, grab.SourcePane())
	if c, ok := m.factory.TryGetOneFromMenu(viewport); ok {
		s.top.SetContainer(c)
		changed.Top = c
	}

	s.bottom.Reset(grab, grab.PlayerPane())
	if c, ok := m.playerContainer(viewport, grab); ok {
		s.bottom.SetContainer(c)
		changed.Bottom = c
	}

	for _, pm := range []*pane.Manager{s.top, s.bottom} {
		if pm.Active() {
			pm.RebindHighlight()
		}
	}
	m.publish(changed)
	grab.SetDrawBackdrop(false)
}

// playerContainer resolves the player's container, but only while the
// player pane really shows the player's own inventory.
func (m *Manager) playerContainer(viewport int, grab host.GrabMenu) (*container.Container, bool) {
	p := grab.PlayerPane()
	player := m.host.Player(viewport)
	if p == nil || player == nil || p.Visible() == nil || p.Visible() != player.Inventory() {
		return nil, false
	}
	return m.factory.TryGetOne(player)
}

func (m *Manager) publish(changed event.MenuChanged) {
	events.Menu.Changed(changed.Viewport, menuID(changed.Previous), menuID(changed.Menu), containerName(changed.Top), containerName(changed.Bottom))
	if m.bus != nil {
		m.bus.Publish(changed)
	}
}

// Invalidate forgets the tracked menu of viewport, so the next Sync binds the
// panes again and publishes a menu change even when the host kept its menu.
func (m *Manager) Invalidate(viewport int) {
	if s, ok := m.screens.Lookup(viewport); ok {
		s.menu = nil
	}
}

// OpenContainer runs open under c's lock. When the lock is busy the request
// waits and runs on a later tick. The lock is released once the menu that
// was active after open stops being the viewport's active menu.
func (m *Manager) OpenContainer(viewport int, c *container.Container, open func()) bool {
	if c == nil || open == nil {
		return false
	}
	mu := c.Mutex()
	return mu.RequestLock(func() {
		s := m.screens.Get(viewport)
		if s.held != nil && s.held != mu {
			s.held.ReleaseLock()
		}
		open()
		active := m.host.ActiveMenu(viewport)
		if active == nil {
			// open showed nothing to hold the lock for
			mu.ReleaseLock()
			s.held, s.heldFor = nil, nil
			return
		}
		s.held = mu
		s.heldFor = active
	})
}

func (m *Manager) releaseStale(viewport int, s *screen) {
	if s.held == nil || m.host.ActiveMenu(viewport) == s.heldFor {
		return
	}
	s.held.ReleaseLock()
	s.held = nil
	s.heldFor = nil
}

// ResolveCapacity applies the capacity policy: a known tier fixes the slot
// count, otherwise the requested value is clamped to [0, MaxCapacity] with
// -1 meaning unbounded.
func ResolveCapacity(requested int, tier container.Tier) int {
	if c := tier.Capacity(); c > 0 {
		return c
	}
	switch {
	case requested == -1, requested > MaxCapacity:
		return MaxCapacity
	case requested < 0:
		return 0
	default:
		return requested
	}
}

// MenuCapacity implements host.Hooks.
func (m *Manager) MenuCapacity(viewport int, requested int, source host.Entity) int {
	tier := container.TierDefault
	if c, ok := m.factory.TryGetOne(source); ok {
		tier = c.Options().Resize
	}
	capacity := ResolveCapacity(requested, tier)
	events.Capacity.Resolved(viewport, requested, tier.String(), capacity)
	return capacity
}

// ChildMenuAssigned implements host.Hooks.
func (m *Manager) ChildMenuAssigned(viewport int) { m.Sync(viewport) }

// BeforePaneDraw implements host.Hooks.
func (m *Manager) BeforePaneDraw(viewport int, p host.Pane) {
	s, ok := m.screens.Lookup(viewport)
	if !ok {
		return
	}
	if !s.top.BeforeDraw(p) {
		s.bottom.BeforeDraw(p)
	}
}

// AfterPaneDraw implements host.Hooks.
func (m *Manager) AfterPaneDraw(viewport int, p host.Pane) {
	s, ok := m.screens.Lookup(viewport)
	if !ok {
		return
	}
	s.top.AfterDraw(p)
	s.bottom.AfterDraw(p)
}

// Handle routes one host event. Repeated events of a kind within one tick
// are ignored, and queued container locks advance once per tick.
func (m *Manager) Handle(evt host.Event) {
	s := m.screens.Get(evt.Viewport)
	if !s.admit(evt) {
		return
	}
	switch evt.Kind {
	case host.UpdateBegin:
		m.resumeLocks(evt.Tick)
		m.Sync(evt.Viewport)
	case host.UpdateEnd:
		m.Sync(evt.Viewport)
	case host.RenderBegin:
		m.RenderBegin(evt.Viewport, evt.Surface)
	case host.RenderEnd:
		m.RenderEnd(evt.Viewport, evt.Surface)
	case host.ButtonPressed:
		m.ButtonPressed(evt.Viewport, evt.Button)
	case host.CursorMoved:
		m.CursorMoved(evt.Viewport, evt.Pointer)
	case host.WheelScrolled:
		m.WheelScrolled(evt.Viewport, evt.Delta)
	case host.KeybindsChanged:
		m.KeybindsChanged(evt.Viewport, evt.Pressed)
	}
}

func (m *Manager) resumeLocks(tick uint64) {
	if m.resumed && m.resumeTick == tick {
		return
	}
	m.resumed = true
	m.resumeTick = tick
	m.factory.ResumeLocks()
}

func menuID(menu host.Menu) string {
	if menu == nil {
		return ""
	}
	return menu.MenuID()
}

func containerName(c *container.Container) string {
	if c == nil {
		return ""
	}
	return c.Name()
}
