package inventory

import "testing"

func TestAddFillsGapsBeforeGrowing(t *testing.T) {
	a, b, c := &Item{Name: "a"}, &Item{Name: "b"}, &Item{Name: "c"}
	inv := From(a, nil, b)
	if !inv.Add(c) {
		t.Fatalf("expected add to succeed")
	}
	if inv.At(1) != c || inv.Len() != 3 {
		t.Fatalf("expected c in the empty slot, got len %d", inv.Len())
	}
}

func TestLimitCountsOccupiedSlots(t *testing.T) {
	inv := New(2)
	inv.Set(4, &Item{Name: "a"})
	if inv.Full() {
		t.Fatalf("one item should not fill a two slot inventory")
	}
	if !inv.Add(&Item{Name: "b"}) {
		t.Fatalf("expected second add to succeed")
	}
	if inv.Add(&Item{Name: "c"}) {
		t.Fatalf("expected add past the limit to fail")
	}
	inv.SetLimit(-3)
	if inv.Limit() != 0 || inv.Full() {
		t.Fatalf("negative limit should mean unbounded")
	}
}

func TestViewIsDetached(t *testing.T) {
	a := &Item{Name: "a"}
	inv := From(a)
	v := View(inv.Items())
	v.RemoveAt(0)
	if inv.At(0) != a {
		t.Fatalf("removing from a view changed the original")
	}
	if v.IndexOf(a) != -1 {
		t.Fatalf("expected a gone from the view")
	}
}

func TestRemoveAndCompact(t *testing.T) {
	a, b := &Item{Name: "a"}, &Item{Name: "b"}
	inv := From(a, b, nil)
	if inv.RemoveAt(1) != b || inv.RemoveAt(1) != nil {
		t.Fatalf("remove should return b exactly once")
	}
	inv.Compact()
	if inv.Len() != 1 || inv.Count() != 1 {
		t.Fatalf("expected one slot after compact, got %d", inv.Len())
	}
}

func TestLabelAndTags(t *testing.T) {
	item := &Item{Name: "Egg", Stack: 6, Tags: []string{"Animal"}}
	if item.Label() != "Egg x6" {
		t.Fatalf("unexpected label %q", item.Label())
	}
	if !item.HasTag("animal") {
		t.Fatalf("tag match should ignore case")
	}
	var none *Item
	if none.Label() != "" || none.HasTag("x") {
		t.Fatalf("nil item should be empty")
	}
}
