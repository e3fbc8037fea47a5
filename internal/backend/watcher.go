package backend

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/google/uuid"
)

// Kind represents the type of change emitted by the watcher.
type Kind int

const (
	KindDeposit Kind = iota
	KindWithdraw
	KindRebuild
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdraw:
		return "withdraw"
	case KindRebuild:
		return "rebuild"
	default:
		return "unknown"
	}
}

// Change is one external modification of a chest.
type Change struct {
	ChestID string
	// Item is the deposited item for KindDeposit.
	Item *inventory.Item
	// Pick selects which occupied slot a withdrawal empties.
	Pick int
}

// Event conveys a change or an error from a poller.
type Event struct {
	Kind Kind
	Data Change
	Err  error
}

// catalog is what the world receives from outside.
var catalog = []inventory.Item{
	{Name: "Parsnip", Category: "vegetable"},
	{Name: "Sardine", Category: "fish"},
	{Name: "Anchovy", Category: "fish"},
	{Name: "Copper Ore", Category: "mineral", Tags: []string{"smeltable"}},
	{Name: "Wood", Category: "resource"},
	{Name: "Blueberry", Category: "fruit", Tags: []string{"berry"}},
	{Name: "Egg", Category: "animal"},
}

// Watcher simulates other actors touching the world's chests at a fixed
// interval and publishes the resulting changes.
type Watcher struct {
	chests   []string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	rngMu sync.Mutex
	rng   *rand.Rand

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher over the given chest ids. An interval <= 0 or
// an empty id list starts no pollers and the event channel closes at once.
func NewWatcher(chests []string, interval time.Duration, seed uint64) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		chests:   append([]string(nil), chests...),
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		events:   make(chan Event, 16),
	}

	if interval > 0 && len(w.chests) > 0 {
		// one throttle across pollers so changes never land in bursts
		throttle := newThrottle(interval / 4)
		w.start(KindDeposit, interval, throttle, w.deposit)
		w.start(KindWithdraw, interval*3/2, throttle, w.withdraw)
		w.start(KindRebuild, interval*10, throttle, w.rebuild)
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of changes.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current step; use Wait
// if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) intn(n int) int {
	w.rngMu.Lock()
	defer w.rngMu.Unlock()
	return w.rng.IntN(n)
}

func (w *Watcher) chest() string {
	return w.chests[w.intn(len(w.chests))]
}

func (w *Watcher) deposit(context.Context) (Change, error) {
	proto := catalog[w.intn(len(catalog))]
	item := proto
	item.ID = uuid.NewString()
	item.Stack = 1 + w.intn(5)
	item.Tags = append([]string(nil), proto.Tags...)
	return Change{ChestID: w.chest(), Item: &item}, nil
}

func (w *Watcher) withdraw(context.Context) (Change, error) {
	return Change{ChestID: w.chest(), Pick: w.intn(1 << 16)}, nil
}

func (w *Watcher) rebuild(context.Context) (Change, error) {
	return Change{ChestID: w.chest()}, nil
}

func (w *Watcher) start(kind Kind, every time.Duration, t *throttle, step func(context.Context) (Change, error)) {
	w.wg.Add(1)
	go w.poll(kind, every, func(ctx context.Context) (Change, error) {
		if err := t.wait(ctx); err != nil {
			return Change{}, err
		}
		return step(ctx)
	})
}

func (w *Watcher) poll(kind Kind, every time.Duration, fetch func(context.Context) (Change, error)) {
	defer w.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			data, err := fetch(w.ctx)
			if w.ctx.Err() != nil {
				return
			}
			select {
			case <-w.ctx.Done():
				return
			case w.events <- Event{Kind: kind, Data: data, Err: err}:
			}
		}
	}
}
