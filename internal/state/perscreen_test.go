package state

import "testing"

func TestPerScreenCreatesLazilyPerViewport(t *testing.T) {
	created := 0
	store := NewPerScreen(func(viewport int) *int {
		created++
		v := viewport * 10
		return &v
	})
	if _, ok := store.Lookup(1); ok {
		t.Fatalf("lookup must not create")
	}
	a := store.Get(1)
	b := store.Get(1)
	if a != b || *a != 10 {
		t.Fatalf("expected one shared value for viewport 1")
	}
	store.Get(0)
	if created != 2 {
		t.Fatalf("expected 2 values created, got %d", created)
	}
	ids := store.Viewports()
	if len(ids) != 2 || ids[0] != 0 || ids[1] != 1 {
		t.Fatalf("unexpected viewports %v", ids)
	}
	if _, ok := store.Lookup(2); ok {
		t.Fatalf("lookup must not create viewport 2")
	}
}
