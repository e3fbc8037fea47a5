package dispatcher

import (
	"github.com/atomicstack/chestsync/internal/backend"
	"github.com/atomicstack/chestsync/internal/container"
	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/atomicstack/chestsync/internal/logging"
	"github.com/atomicstack/chestsync/internal/logging/events"
	"github.com/atomicstack/chestsync/internal/world"
)

// Result reports what an event changed.
type Result struct {
	ChestID   string
	Changed   bool
	Rebuilt   bool
	Pruned    int
	Deposited *inventory.Item
	Withdrawn *inventory.Item
}

// Dispatcher applies watcher changes to the world. It must run on the
// goroutine that drives the host tick.
type Dispatcher struct {
	world   *world.World
	factory *container.Factory
}

func New(w *world.World, f *container.Factory) *Dispatcher {
	return &Dispatcher{world: w, factory: f}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	res := Result{ChestID: evt.Data.ChestID}
	if evt.Err != nil {
		logging.Error(evt.Err)
		return res
	}
	chest, ok := d.world.Chest(evt.Data.ChestID)
	if !ok {
		return res
	}
	switch evt.Kind {
	case backend.KindDeposit:
		if evt.Data.Item != nil && chest.Inventory().Add(evt.Data.Item) {
			res.Changed = true
			res.Deposited = evt.Data.Item
		}
	case backend.KindWithdraw:
		if item := withdraw(chest.Inventory(), evt.Data.Pick); item != nil {
			res.Changed = true
			res.Withdrawn = item
		}
	case backend.KindRebuild:
		if _, ok := d.world.Rebuild(chest.ID); ok {
			res.Changed = true
			res.Rebuilt = true
			if d.factory != nil {
				res.Pruned = d.factory.Prune(func(e host.Entity) bool { return d.world.Alive(e) })
			}
		}
	}
	if res.Changed {
		events.World.Change(evt.Kind.String(), chest.ID)
	}
	return res
}

// withdraw empties the pick-th occupied slot, wrapping around.
func withdraw(inv *inventory.Inventory, pick int) *inventory.Item {
	count := inv.Count()
	if count == 0 {
		return nil
	}
	if pick < 0 {
		pick = -pick
	}
	target := pick % count
	for i, item := range inv.Items() {
		if item == nil {
			continue
		}
		if target == 0 {
			return inv.RemoveAt(i)
		}
		target--
	}
	return nil
}
