package pane

import (
	"strings"
	"testing"

	"github.com/atomicstack/chestsync/internal/container"
	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/atomicstack/chestsync/internal/operation"
	"github.com/atomicstack/chestsync/internal/testutil"
)

type fixture struct {
	chest   *testutil.Entity
	menu    *testutil.GrabMenu
	c       *container.Container
	manager *Manager
}

func newFixture(t *testing.T, items int, opts container.Options) fixture {
	t.Helper()
	chest := &testutil.Entity{ID: "c1", KindName: "chest", Inv: inventory.From(testutil.Items(items)...)}
	f := container.NewFactory(nil, opts, map[string]container.Options{"chest": {}})
	c, ok := f.TryGetOne(chest)
	if !ok {
		t.Fatalf("expected chest to resolve")
	}
	menu := testutil.NewGrabMenu("grab", chest, inventory.New(0))
	m := New("top")
	m.Reset(menu, menu.Top)
	m.SetContainer(c)
	return fixture{chest: chest, menu: menu, c: c, manager: m}
}

func TestScrollClampsToLastRow(t *testing.T) {
	fx := newFixture(t, 80, container.Options{Rows: 2})
	if fx.manager.Rows() != 5 {
		t.Fatalf("expected the pane's 5 drawn rows as the page, got %d", fx.manager.Rows())
	}
	if got := fx.manager.MaxScroll(); got != 6 {
		t.Fatalf("expected max scroll 6 for 80 items over 12 columns, got %d", got)
	}
	fx.manager.SetScrolled(1000)
	if fx.manager.Scrolled() != 6 {
		t.Fatalf("expected clamp to 6, got %d", fx.manager.Scrolled())
	}
	fx.manager.SetScrolled(-3)
	if fx.manager.Scrolled() != 0 {
		t.Fatalf("expected clamp to 0, got %d", fx.manager.Scrolled())
	}
}

func TestScrollFollowsShrinkingInventory(t *testing.T) {
	fx := newFixture(t, 80, container.Options{})
	fx.manager.SetScrolled(6)
	for i := 10; i < 80; i++ {
		fx.chest.Inv.RemoveAt(i)
	}
	fx.chest.Inv.Compact()

	if !fx.manager.BeforeDraw(fx.menu.Top) {
		t.Fatalf("expected swap")
	}
	drawn := fx.menu.Top.Visible()
	fx.manager.AfterDraw(fx.menu.Top)
	if drawn.Count() != 10 || drawn.At(0).Name != "item-0" {
		t.Fatalf("expected all 10 items drawn from item-0, got %d", drawn.Count())
	}
	if got := fx.manager.TrueIndex(9); got != 9 {
		t.Fatalf("expected slot 9 to map to index 9, got %d", got)
	}
	if fx.manager.Scrolled() != 0 || fx.manager.MaxScroll() != 0 {
		t.Fatalf("expected scroll 0 of 0, got %d of %d", fx.manager.Scrolled(), fx.manager.MaxScroll())
	}

	fx.chest.Inv.Set(40, &inventory.Item{Name: "late"})
	fx.manager.SetScrolled(3)
	fx.chest.Inv.RemoveAt(40)
	fx.chest.Inv.Compact()
	if got := fx.manager.Scrolled(); got != 0 {
		t.Fatalf("expected the getter to clamp a stale offset, got %d", got)
	}
}

func TestScrollUsesFilteredCount(t *testing.T) {
	fx := newFixture(t, 80, container.Options{})
	fx.manager.AddOperation(operation.Take(13))
	if got := fx.manager.MaxScroll(); got != 1 {
		t.Fatalf("expected max scroll 1 for 13 visible items, got %d", got)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	fx := newFixture(t, 20, container.Options{})
	fx.manager.SetScrolled(1)
	fx.manager.Hover(3, 0)

	fx.manager.Reset(fx.menu, fx.menu.Top)
	first := *fx.manager
	fx.manager.Reset(fx.menu, fx.menu.Top)
	second := *fx.manager

	if first.menu != second.menu || first.pane != second.pane || first.original != second.original ||
		first.scrolled != second.scrolled || first.hoverSlot != second.hoverSlot ||
		first.container != second.container || first.valid != second.valid ||
		len(first.ops) != len(second.ops) || len(first.slots) != len(second.slots) {
		t.Fatalf("second reset changed state:\nfirst  %#v\nsecond %#v", first, second)
	}
	if second.container != nil || second.scrolled != 0 || second.hoverSlot != -1 {
		t.Fatalf("reset must clear container, scroll and hover")
	}
}

func TestRenderRoundTripRestoresTrueInventory(t *testing.T) {
	fx := newFixture(t, 30, container.Options{Sorts: []string{"-name"}})
	truth := fx.chest.Inv
	before := append([]*inventory.Item(nil), truth.Items()...)

	if !fx.manager.BeforeDraw(fx.menu.Top) {
		t.Fatalf("expected swap")
	}
	if fx.menu.Top.Visible() == truth {
		t.Fatalf("expected the pane to draw a transformed view")
	}
	fx.menu.Top.Draw()
	fx.manager.AfterDraw(fx.menu.Top)

	if fx.menu.Top.Visible() != truth {
		t.Fatalf("expected the true inventory to be restored")
	}
	for i, item := range truth.Items() {
		if item != before[i] {
			t.Fatalf("true inventory slot %d changed", i)
		}
	}
	drawn := fx.menu.Top.Drawn[0]
	if drawn.At(0).Name != "item-9" {
		t.Fatalf("expected descending name order, first drawn %q", drawn.At(0).Name)
	}
}

func TestTrueIndexFollowsDrawnView(t *testing.T) {
	fx := newFixture(t, 30, container.Options{})
	fx.manager.AddOperation(operation.Filter(func(i *inventory.Item) bool {
		return strings.HasSuffix(i.Name, "5")
	}))
	fx.manager.BeforeDraw(fx.menu.Top)
	fx.manager.AfterDraw(fx.menu.Top)

	if got := fx.manager.TrueIndex(0); got != 5 {
		t.Fatalf("expected slot 0 to map to index 5, got %d", got)
	}
	if got := fx.manager.TrueIndex(1); got != 15 {
		t.Fatalf("expected slot 1 to map to index 15, got %d", got)
	}
	if got := fx.manager.TrueIndex(3); got != -1 {
		t.Fatalf("expected empty slot to map to -1, got %d", got)
	}
	if item := fx.manager.ItemAt(2); item == nil || item.Name != "item-25" {
		t.Fatalf("expected item-25 behind slot 2, got %v", item)
	}
}

func TestScrolledViewSkipsRows(t *testing.T) {
	fx := newFixture(t, 40, container.Options{})
	fx.manager.SetScrolled(2)
	fx.manager.BeforeDraw(fx.menu.Top)
	defer fx.manager.AfterDraw(fx.menu.Top)
	if got := fx.menu.Top.Visible().At(0).Name; got != "item-24" {
		t.Fatalf("expected first drawn item-24, got %q", got)
	}
	if got := fx.manager.TrueIndex(0); got != 24 {
		t.Fatalf("expected true index 24, got %d", got)
	}
}

func TestBeforeDrawIgnoresForeignPanes(t *testing.T) {
	fx := newFixture(t, 5, container.Options{})
	if fx.manager.BeforeDraw(fx.menu.Bottom) {
		t.Fatalf("must not swap a pane it is not bound to")
	}
	fx.manager.BeforeDraw(fx.menu.Top)
	if fx.manager.BeforeDraw(fx.menu.Top) {
		t.Fatalf("must not swap twice without restoring")
	}
	fx.manager.AfterDraw(fx.menu.Top)
}

func TestResetDuringDrawRestores(t *testing.T) {
	fx := newFixture(t, 5, container.Options{})
	fx.manager.BeforeDraw(fx.menu.Top)
	fx.manager.Reset(nil, nil)
	if fx.menu.Top.Visible() != fx.chest.Inv {
		t.Fatalf("reset must restore a swapped pane")
	}
}

func TestBindingMismatchDeactivates(t *testing.T) {
	fx := newFixture(t, 5, container.Options{})
	broken := testutil.NewPane(0, 0, 0, 0, fx.chest.Inv)
	fx.manager.Reset(fx.menu, broken)
	fx.manager.SetContainer(fx.c)
	if fx.manager.Active() {
		t.Fatalf("pane without capacity must be inactive")
	}
	if fx.manager.BeforeDraw(broken) {
		t.Fatalf("inactive pane must not swap")
	}

	fx.manager.Reset(fx.menu, fx.menu.Top)
	fx.manager.SetContainer(fx.c)
	fx.menu.Top.Inv = nil
	if fx.manager.BeforeDraw(fx.menu.Top) {
		t.Fatalf("pane without a visible inventory must not swap")
	}
}

func TestHighlightComposesWithHostPredicate(t *testing.T) {
	fx := newFixture(t, 12, container.Options{})
	fx.menu.Top.HL = host.HighlightFunc(func(i *inventory.Item) bool { return i.Name != "item-1" })
	if !fx.manager.RebindHighlight() {
		t.Fatalf("expected rebind after the host replaced the highlighter")
	}
	if fx.manager.RebindHighlight() {
		t.Fatalf("second rebind should be a no-op")
	}
	fx.manager.AddHighlighter(host.HighlightFunc(func(i *inventory.Item) bool { return i.Name != "item-2" }))

	items := fx.chest.Inv.Items()
	if fx.manager.Highlight(items[1]) || fx.manager.Highlight(items[2]) {
		t.Fatalf("expected both predicates to apply")
	}
	if !fx.manager.Highlight(items[3]) {
		t.Fatalf("expected item-3 highlighted")
	}

	surface := &testutil.Surface{}
	fx.manager.BeforeDraw(fx.menu.Top)
	fx.manager.AfterDraw(fx.menu.Top)
	fx.manager.Draw(surface)
	want := []string{"fade:1,0", "fade:2,0"}
	if strings.Join(surface.Calls, " ") != strings.Join(want, " ") {
		t.Fatalf("expected %v, got %v", want, surface.Calls)
	}
}

func TestLeftClickScrollArrowsAndTargets(t *testing.T) {
	fx := newFixture(t, 80, container.Options{})
	b := fx.menu.Top.Bounds()
	if !fx.manager.LeftClick(b.X+b.W, b.Y+b.H-1) {
		t.Fatalf("expected down arrow to consume the click")
	}
	if fx.manager.Scrolled() != 1 {
		t.Fatalf("expected scroll 1, got %d", fx.manager.Scrolled())
	}
	if !fx.manager.LeftClick(b.X+b.W, b.Y) || fx.manager.Scrolled() != 0 {
		t.Fatalf("expected up arrow to scroll back")
	}
	if fx.manager.LeftClick(1, 1) {
		t.Fatalf("slot clicks belong to the host")
	}

	clicked := false
	fx.manager.AddClickTarget(ClickTarget{
		Bounds:  host.Rect{X: 1, Y: 1, W: 1, H: 1},
		OnClick: func() bool { clicked = true; return true },
	})
	if !fx.manager.LeftClick(1, 1) || !clicked {
		t.Fatalf("expected click target to consume the click")
	}
}

func TestHoverTracksItem(t *testing.T) {
	fx := newFixture(t, 12, container.Options{Sorts: []string{"-name"}})
	fx.manager.BeforeDraw(fx.menu.Top)
	fx.manager.AfterDraw(fx.menu.Top)
	fx.manager.Hover(0, 0)
	if item := fx.manager.HoveredItem(); item == nil || item.Name != "item-9" {
		t.Fatalf("expected hovered item-9, got %v", item)
	}
	fx.manager.Hover(40, 40)
	if fx.manager.HoveredItem() != nil {
		t.Fatalf("expected nothing hovered outside the pane")
	}
}
