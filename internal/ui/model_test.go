package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/chestsync/internal/config"
	"github.com/atomicstack/chestsync/internal/event"
	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/atomicstack/chestsync/internal/world"
	tea "github.com/charmbracelet/bubbletea"
)

func testConfig(viewports int) config.Config {
	cfg := config.Default()
	cfg.App.Tick = 0
	cfg.App.Churn = 0
	cfg.App.Viewports = viewports
	return cfg
}

func newTestHarness(t *testing.T, cfg config.Config) (*Harness, *world.World) {
	t.Helper()
	w := world.Default()
	model, err := NewModel(cfg, w, nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	t.Cleanup(model.Close)
	return NewHarness(model), w
}

func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

func press(h *Harness, keys ...string) {
	for _, k := range keys {
		h.Send(keyMsg(k))
		h.Tick(1)
	}
}

func mouse(x, y int, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: button, Action: tea.MouseActionPress}
}

// openKitchen moves the list cursor to the kitchen fridge and opens it.
func openKitchen(t *testing.T, h *Harness) *grabMenu {
	t.Helper()
	press(h, "down", "enter")
	g := h.Model().screen(0).menu
	if g == nil || g.source == nil || g.source.ID != "kitchen" {
		t.Fatalf("expected the kitchen menu to be open, got %+v", g)
	}
	return g
}

func hasItem(inv *inventory.Inventory, name string) bool {
	for _, item := range inv.Items() {
		if item != nil && item.Name == name {
			return true
		}
	}
	return false
}

func TestNewModelRequiresWorld(t *testing.T) {
	if _, err := NewModel(testConfig(1), nil, nil); err == nil {
		t.Fatalf("expected an error without a world")
	}
}

func TestNewModelRejectsBadStorage(t *testing.T) {
	cfg := testConfig(1)
	cfg.Storage.Default.Resize = "huge"
	if _, err := NewModel(cfg, world.Default(), nil); err == nil {
		t.Fatalf("expected an error for an unknown tier")
	}
}

func TestEnterOpensMenuUnderContainerLock(t *testing.T) {
	h, w := newTestHarness(t, testConfig(1))
	g := openKitchen(t, h)
	m := h.Model()

	kitchen, _ := w.Chest("kitchen")
	top := m.Menus().Top(0)
	if !top.Active() || top.Container() == nil || top.Container().Entity() != host.Entity(kitchen) {
		t.Fatalf("expected the source pane bound to the kitchen container")
	}
	if m.Menus().Bottom(0).Container() == nil {
		t.Fatalf("expected the player pane bound to the player container")
	}
	if !top.Container().Mutex().IsLocked() {
		t.Fatalf("expected the kitchen lock to be held while the menu is open")
	}
	if g.top.capacity != 36 {
		t.Fatalf("expected a medium chest to show 36 slots, got %d", g.top.capacity)
	}

	press(h, "esc")
	if m.screen(0).menu != nil {
		t.Fatalf("expected esc to close the menu")
	}
	if top.Container() != nil && top.Container().Mutex().IsLocked() {
		t.Fatalf("expected the lock released after closing")
	}
	c, _ := m.factory.TryGetOne(kitchen)
	if c.Mutex().IsLocked() {
		t.Fatalf("expected the kitchen lock released after closing")
	}
}

func TestUnrecognisedKindOpensWithoutContainer(t *testing.T) {
	h, w := newTestHarness(t, testConfig(1))
	press(h, "end", "enter")
	m := h.Model()
	g := m.screen(0).menu
	if g == nil || g.source.ID != "shed" {
		t.Fatalf("expected the shed menu, got %+v", g)
	}
	shed, _ := w.Chest("shed")
	if _, ok := m.factory.TryGetOne(shed); ok {
		t.Fatalf("expected crates to have no container")
	}
	if g.top.capacity != defaultCapacity {
		t.Fatalf("expected the requested capacity %d, got %d", defaultCapacity, g.top.capacity)
	}
}

func TestLeftClickMovesItemToPlayer(t *testing.T) {
	h, w := newTestHarness(t, testConfig(1))
	g := openKitchen(t, h)

	h.Send(mouse(g.top.bounds.X, g.top.bounds.Y, tea.MouseButtonLeft))
	h.Tick(1)

	kitchen, _ := w.Chest("kitchen")
	if hasItem(kitchen.Inventory(), "Egg") {
		t.Fatalf("expected Egg to leave the kitchen")
	}
	if !hasItem(w.Player(0).Inventory(), "Egg") {
		t.Fatalf("expected Egg in the player's inventory")
	}
	if !strings.HasPrefix(h.Model().screen(0).status, "moved Egg") {
		t.Fatalf("unexpected status %q", h.Model().screen(0).status)
	}
}

func TestRightClickPicksUpAndDrops(t *testing.T) {
	h, w := newTestHarness(t, testConfig(1))
	g := openKitchen(t, h)

	h.Send(mouse(g.top.bounds.X, g.top.bounds.Y, tea.MouseButtonRight))
	h.Tick(1)
	if g.held == nil || g.held.Name != "Egg" {
		t.Fatalf("expected Egg held, got %+v", g.held)
	}
	if !strings.Contains(h.View(), "Egg x6") {
		t.Fatalf("expected the held item drawn near the pointer, got:\n%s", h.View())
	}

	h.Send(mouse(g.bottom.bounds.X, g.bottom.bounds.Y+2, tea.MouseButtonRight))
	h.Tick(1)
	if g.held != nil {
		t.Fatalf("expected the held item dropped")
	}
	if !hasItem(w.Player(0).Inventory(), "Egg") {
		t.Fatalf("expected Egg dropped into the player's inventory")
	}
}

func TestCloseReturnsHeldItem(t *testing.T) {
	h, w := newTestHarness(t, testConfig(1))
	g := openKitchen(t, h)
	h.Send(mouse(g.top.bounds.X, g.top.bounds.Y, tea.MouseButtonRight))
	h.Tick(1)
	press(h, "esc")

	kitchen, _ := w.Chest("kitchen")
	if !hasItem(kitchen.Inventory(), "Egg") {
		t.Fatalf("expected the held Egg back in the kitchen")
	}
}

func TestScrollArrowClickIsConsumedByEngine(t *testing.T) {
	h, w := newTestHarness(t, testConfig(1))
	press(h, "enter")
	m := h.Model()
	g := m.screen(0).menu
	if g == nil || g.source.ID != "farmhouse" {
		t.Fatalf("expected the farmhouse menu, got %+v", g)
	}
	top := m.Menus().Top(0)
	if top.MaxScroll() == 0 {
		t.Fatalf("expected the farmhouse pane to overflow")
	}

	b := g.top.bounds
	h.Send(mouse(b.X+b.W, b.Y+b.H-1, tea.MouseButtonLeft))
	h.Tick(1)
	if top.Scrolled() != 1 {
		t.Fatalf("expected the down arrow to scroll one row, got %d", top.Scrolled())
	}
	if !m.screen(0).input.suppressed[host.MouseLeft] {
		t.Fatalf("expected the click suppressed")
	}
	farmhouse, _ := w.Chest("farmhouse")
	if farmhouse.Inventory().Count() != 28 || w.Player(0).Inventory().Count() != 7 {
		t.Fatalf("expected no transfer from an arrow click")
	}
}

func TestClicksInOneTickAreDeliveredInTurn(t *testing.T) {
	h, w := newTestHarness(t, testConfig(1))
	press(h, "enter")
	m := h.Model()
	g := m.screen(0).menu
	top := m.Menus().Top(0)
	farmhouse, _ := w.Chest("farmhouse")

	b := g.top.bounds
	h.Send(mouse(b.X+b.W, b.Y+b.H-1, tea.MouseButtonLeft))
	h.Send(mouse(b.X, b.Y, tea.MouseButtonLeft))
	h.Tick(1)
	if top.Scrolled() != 1 {
		t.Fatalf("expected the arrow click first, got scroll %d", top.Scrolled())
	}
	if farmhouse.Inventory().Count() != 28 {
		t.Fatalf("expected the slot click to wait for the next tick")
	}

	h.Tick(1)
	if farmhouse.Inventory().Count() != 27 || w.Player(0).Inventory().Count() != 8 {
		t.Fatalf("expected the slot click to move an item, chest %d player %d",
			farmhouse.Inventory().Count(), w.Player(0).Inventory().Count())
	}
	if len(m.screen(0).input.clicks) != 0 {
		t.Fatalf("expected no clicks left queued")
	}
}

func TestPageStepIsDrawnRows(t *testing.T) {
	cfg := testConfig(1)
	cfg.Storage.Kinds["crate"] = config.StorageOptions{Rows: 2}
	h, _ := newTestHarness(t, cfg)

	press(h, "end", "enter")
	m := h.Model()
	g := m.screen(0).menu
	if g == nil || g.source.ID != "shed" {
		t.Fatalf("expected the shed menu, got %+v", g)
	}
	if g.top.capacity != 24 || g.top.Rows() != 2 {
		t.Fatalf("expected 2 configured rows of 24 slots, got %d slots in %d rows", g.top.capacity, g.top.Rows())
	}
	if got := m.Menus().Top(0).Rows(); got != 2 {
		t.Fatalf("expected a page of 2 rows, got %d", got)
	}

	press(h, "esc", "g", "enter")
	if m.screen(0).menu.source.ID != "farmhouse" {
		t.Fatalf("expected the farmhouse menu")
	}
	if got := m.Menus().Top(0).Rows(); got != 6 {
		t.Fatalf("expected the large tier's 6 drawn rows as the page, got %d", got)
	}
}

func TestWheelScrollsPaneUnderPointer(t *testing.T) {
	h, _ := newTestHarness(t, testConfig(1))
	press(h, "enter")
	m := h.Model()
	g := m.screen(0).menu
	top := m.Menus().Top(0)

	h.Send(mouse(g.top.bounds.X+2, g.top.bounds.Y+1, tea.MouseButtonWheelDown))
	h.Tick(1)
	if top.Scrolled() != 1 {
		t.Fatalf("expected one row scrolled, got %d", top.Scrolled())
	}

	h.Send(mouse(g.top.bounds.X+2, g.top.bounds.Y+1, tea.MouseButtonWheelUp))
	h.Tick(1)
	if top.Scrolled() != 0 {
		t.Fatalf("expected back at the top, got %d", top.Scrolled())
	}

	paged := mouse(g.top.bounds.X+2, g.top.bounds.Y+1, tea.MouseButtonWheelDown)
	paged.Shift = true
	h.Send(paged)
	h.Tick(1)
	if top.Scrolled() != top.MaxScroll() {
		t.Fatalf("expected a page scroll to clamp at %d, got %d", top.MaxScroll(), top.Scrolled())
	}
	if m.screen(0).input.IsDown(pageModifier) {
		t.Fatalf("expected the page modifier released after the wheel event")
	}
}

func TestScrollKeyIsSuppressed(t *testing.T) {
	h, _ := newTestHarness(t, testConfig(1))
	press(h, "enter", "j")
	m := h.Model()
	if got := m.Menus().Top(0).Scrolled(); got != 1 {
		t.Fatalf("expected j to scroll the source pane, got %d", got)
	}
	if !m.screen(0).input.suppressed["j"] {
		t.Fatalf("expected j suppressed")
	}
	if m.screen(0).list.Cursor != 0 {
		t.Fatalf("expected the list cursor untouched, got %d", m.screen(0).list.Cursor)
	}
}

func TestHelpChildCoversGrabMenu(t *testing.T) {
	h, _ := newTestHarness(t, testConfig(1))
	g := openKitchen(t, h)
	m := h.Model()
	lock := m.Menus().Top(0).Container().Mutex()

	press(h, "?")
	if g.child == nil {
		t.Fatalf("expected the help child open")
	}
	if m.Menus().Top(0).Active() || m.Menus().CurrentMenu(0) != nil {
		t.Fatalf("expected the panes inactive under a child menu")
	}
	if !lock.IsLocked() {
		t.Fatalf("expected the lock kept while help is shown")
	}
	if !strings.Contains(h.View(), "scroll the pane under the pointer") {
		t.Fatalf("expected help text, got:\n%s", h.View())
	}

	press(h, "esc")
	if g.child != nil || m.screen(0).menu != g {
		t.Fatalf("expected esc to close only the help")
	}
	if !m.Menus().Top(0).Active() {
		t.Fatalf("expected the panes bound again")
	}
}

func TestSearchQueryReachesFeature(t *testing.T) {
	h, _ := newTestHarness(t, testConfig(1))
	openKitchen(t, h)
	m := h.Model()

	press(h, "/")
	s := m.screen(0)
	if !s.searching {
		t.Fatalf("expected search to start")
	}
	h.Send(keyMsg("m"), keyMsg("i"))
	h.Tick(1)
	if got := m.finder.Query(0); got != "mi" {
		t.Fatalf("expected query %q, got %q", "mi", got)
	}
	if !strings.Contains(h.View(), "/ mi") {
		t.Fatalf("expected the query drawn, got:\n%s", h.View())
	}

	h.Send(keyMsg("enter"))
	if s.searching || m.finder.Query(0) != "mi" {
		t.Fatalf("expected enter to keep the query and stop typing")
	}
	press(h, "esc")
	if m.finder.Query(0) != "" {
		t.Fatalf("expected closing the menu to clear the query")
	}
}

func TestSearchEscClearsQuery(t *testing.T) {
	h, _ := newTestHarness(t, testConfig(1))
	openKitchen(t, h)
	m := h.Model()
	press(h, "/")
	h.Send(keyMsg("e"), keyMsg("esc"))
	if m.screen(0).searching || m.finder.Query(0) != "" {
		t.Fatalf("expected esc to clear and leave the search")
	}
	if m.screen(0).menu == nil {
		t.Fatalf("expected esc inside search to keep the menu")
	}
}

func TestSecondViewportWaitsForLock(t *testing.T) {
	h, _ := newTestHarness(t, testConfig(2))
	openKitchen(t, h)
	m := h.Model()

	h.Send(keyMsg("tab"))
	if m.focus != 1 {
		t.Fatalf("expected focus on viewport 1, got %d", m.focus)
	}
	press(h, "down", "enter")
	second := m.screen(1)
	if second.menu != nil || second.waiting != "kitchen" {
		t.Fatalf("expected viewport 1 to wait for the kitchen, menu=%v waiting=%q", second.menu, second.waiting)
	}
	if !strings.Contains(second.status, "waiting for Kitchen Fridge") {
		t.Fatalf("unexpected status %q", second.status)
	}

	h.Send(keyMsg("tab"))
	press(h, "esc")
	h.Tick(1)
	if second.menu == nil || second.menu.source.ID != "kitchen" || second.waiting != "" {
		t.Fatalf("expected viewport 1 to open the kitchen once released")
	}
	if m.screen(0).menu != nil {
		t.Fatalf("expected viewport 0 closed")
	}
}

func TestRebuildReopensMenuOverFreshChest(t *testing.T) {
	h, w := newTestHarness(t, testConfig(1))
	g := openKitchen(t, h)
	old := g.source

	h.Send(rebuildMsg("kitchen"))
	h.Tick(1)

	fresh, _ := w.Chest("kitchen")
	if fresh == old {
		t.Fatalf("expected the world to hold a new kitchen entity")
	}
	m := h.Model()
	current := m.screen(0).menu
	if current == nil || current.source != fresh {
		t.Fatalf("expected the menu reopened over the rebuilt chest")
	}
	top := m.Menus().Top(0)
	if top.Container() == nil || top.Container().Entity() != host.Entity(fresh) {
		t.Fatalf("expected the source pane bound to the fresh container")
	}
	if !top.Container().Mutex().IsLocked() {
		t.Fatalf("expected the fresh container locked")
	}
}

func TestConfigReloadRebindsOpenMenus(t *testing.T) {
	h, _ := newTestHarness(t, testConfig(1))
	openKitchen(t, h)
	m := h.Model()

	changes := 0
	id := m.Bus().Subscribe(event.TypeMenuChanged, func(event.Event) { changes++ })
	defer m.Bus().Unsubscribe(id)

	cfg := testConfig(1)
	cfg.Features.Search = false
	cfg.Storage.Kinds["fridge"] = config.StorageOptions{Resize: "large"}
	h.Send(ConfigMsg{Config: cfg})

	if changes != 1 {
		t.Fatalf("expected one menu change after reload, got %d", changes)
	}
	if m.features.Active("search") {
		t.Fatalf("expected search deactivated")
	}
	if got := m.Menus().Top(0).Container().Options().Resize.String(); got != "large" {
		t.Fatalf("expected the reloaded kind tier, got %s", got)
	}
	press(h, "/")
	if m.screen(0).searching || m.screen(0).status != "search is disabled" {
		t.Fatalf("expected search refused, status %q", m.screen(0).status)
	}
}

func TestCloseDropsLeftoverSubscriptions(t *testing.T) {
	h, _ := newTestHarness(t, testConfig(1))
	m := h.Model()
	m.Bus().Subscribe(event.TypeMenuChanged, func(event.Event) {})
	m.Close()
	if got := m.Bus().SubscriptionCount(); got != 0 {
		t.Fatalf("expected no subscriptions after close, got %d", got)
	}
}

func TestQuitKeys(t *testing.T) {
	h, _ := newTestHarness(t, testConfig(1))
	press(h, "q")
	if !h.Quit() {
		t.Fatalf("expected q to quit from the chest list")
	}

	h, _ = newTestHarness(t, testConfig(1))
	openKitchen(t, h)
	h.Send(keyMsg("ctrl+c"))
	if !h.Quit() {
		t.Fatalf("expected ctrl+c to quit")
	}
}

func TestVerboseReportsContainerResolution(t *testing.T) {
	cfg := testConfig(1)
	cfg.Features.Verbose = true
	h, _ := newTestHarness(t, cfg)
	openKitchen(t, h)
	if got := h.Model().screen(0).status; !strings.HasPrefix(got, "fridge:kitchen · medium · 36 slots") {
		t.Fatalf("unexpected verbose status %q", got)
	}

	press(h, "esc", "end", "enter")
	if got := h.Model().screen(0).status; !strings.Contains(got, `no container for kind "crate"`) {
		t.Fatalf("unexpected verbose status %q", got)
	}
}
