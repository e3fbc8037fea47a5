package lock

import "testing"

func TestRequestLockRunsImmediatelyWhenFree(t *testing.T) {
	m := New("chest")
	ran := false
	if !m.RequestLock(func() { ran = true }) {
		t.Fatalf("expected lock to be granted")
	}
	if !ran {
		t.Fatalf("expected action to run synchronously")
	}
	if !m.IsLocked() {
		t.Fatalf("expected gate to be held")
	}
}

func TestQueuedRequestsRunOnceInOrder(t *testing.T) {
	m := New("chest")
	var order []int
	holders := 0
	maxHolders := 0
	enter := func(id int) func() {
		return func() {
			holders++
			if holders > maxHolders {
				maxHolders = holders
			}
			order = append(order, id)
		}
	}
	leave := func() {
		holders--
		m.ReleaseLock()
	}

	m.RequestLock(enter(0))
	for i := 1; i <= 4; i++ {
		if m.RequestLock(enter(i)) {
			t.Fatalf("request %d should have been queued", i)
		}
	}
	if m.Waiting() != 4 {
		t.Fatalf("expected 4 waiters, got %d", m.Waiting())
	}
	if m.Resume() {
		t.Fatalf("resume must not start a waiter while the gate is held")
	}

	for tick := 0; tick < 10 && len(order) < 5; tick++ {
		leave()
		m.Resume()
	}
	leave()

	want := []int{0, 1, 2, 3, 4}
	if len(order) != len(want) {
		t.Fatalf("expected %d runs, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected FIFO order %v, got %v", want, order)
		}
	}
	if maxHolders != 1 {
		t.Fatalf("expected at most one holder, saw %d", maxHolders)
	}
	if m.IsLocked() || m.Waiting() != 0 {
		t.Fatalf("expected idle gate, locked=%v waiting=%d", m.IsLocked(), m.Waiting())
	}
}

func TestNewRequestDoesNotJumpQueue(t *testing.T) {
	m := New("chest")
	var order []string
	m.RequestLock(func() { order = append(order, "first") })
	m.RequestLock(func() { order = append(order, "queued") })
	m.ReleaseLock()

	if m.RequestLock(func() { order = append(order, "late") }) {
		t.Fatalf("late request must wait behind the queue")
	}
	m.Resume()
	m.ReleaseLock()
	m.Resume()

	want := []string{"first", "queued", "late"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestReleaseWithoutHolderIsNoop(t *testing.T) {
	m := New("chest")
	m.ReleaseLock()
	if m.IsLocked() {
		t.Fatalf("expected gate to stay free")
	}
	if m.Resume() {
		t.Fatalf("expected nothing to resume")
	}
}
