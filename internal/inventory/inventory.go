// Package inventory holds the item and slot-sequence types shared between the
// host world and the view layer. Items and inventories are compared by
// pointer identity; nothing in this package copies an item.
package inventory

import (
	"strconv"
	"strings"
)

// Item is a single stack held in an inventory slot.
type Item struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Category    string   `yaml:"category" json:"category"`
	Quality     int      `yaml:"quality" json:"quality"`
	Stack       int      `yaml:"stack" json:"stack"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
	Description string   `yaml:"description" json:"description,omitempty"`
}

// HasTag reports whether the item carries tag, ignoring case.
func (i *Item) HasTag(tag string) bool {
	if i == nil {
		return false
	}
	for _, t := range i.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Label returns the display label for the item.
func (i *Item) Label() string {
	if i == nil {
		return ""
	}
	if i.Stack > 1 {
		return i.Name + " x" + strconv.Itoa(i.Stack)
	}
	return i.Name
}

// Inventory is an ordered slot sequence. Nil entries are empty slots.
type Inventory struct {
	slots []*Item
	limit int
}

// New returns an empty inventory that accepts at most limit occupied slots.
// A limit <= 0 means unbounded.
func New(limit int) *Inventory {
	return &Inventory{limit: limit}
}

// From wraps items in a new inventory without copying the items themselves.
func From(items ...*Item) *Inventory {
	inv := &Inventory{}
	inv.slots = append(inv.slots, items...)
	return inv
}

// View builds a detached inventory over items, used to hand a transformed
// sequence to a renderer without touching the original.
func View(items []*Item) *Inventory {
	dup := make([]*Item, len(items))
	copy(dup, items)
	return &Inventory{slots: dup}
}

// Len returns the number of slots, occupied or not.
func (inv *Inventory) Len() int {
	if inv == nil {
		return 0
	}
	return len(inv.slots)
}

// Count returns the number of occupied slots.
func (inv *Inventory) Count() int {
	if inv == nil {
		return 0
	}
	n := 0
	for _, item := range inv.slots {
		if item != nil {
			n++
		}
	}
	return n
}

// Limit returns the configured slot limit (0 when unbounded).
func (inv *Inventory) Limit() int {
	if inv == nil {
		return 0
	}
	return inv.limit
}

// SetLimit changes the slot limit. Existing items are never dropped.
func (inv *Inventory) SetLimit(limit int) {
	if inv == nil {
		return
	}
	if limit < 0 {
		limit = 0
	}
	inv.limit = limit
}

// At returns the item in slot i, or nil when the slot is empty or out of range.
func (inv *Inventory) At(i int) *Item {
	if inv == nil || i < 0 || i >= len(inv.slots) {
		return nil
	}
	return inv.slots[i]
}

// Items returns the live slot slice. Callers must treat it as read-only.
func (inv *Inventory) Items() []*Item {
	if inv == nil {
		return nil
	}
	return inv.slots
}

// IndexOf returns the slot index holding item, matched by identity.
func (inv *Inventory) IndexOf(item *Item) int {
	if inv == nil || item == nil {
		return -1
	}
	for i, candidate := range inv.slots {
		if candidate == item {
			return i
		}
	}
	return -1
}

// Full reports whether no further item can be added.
func (inv *Inventory) Full() bool {
	if inv == nil {
		return true
	}
	if inv.limit <= 0 {
		return false
	}
	return inv.Count() >= inv.limit
}

// Add places item in the first empty slot, growing the sequence when needed.
func (inv *Inventory) Add(item *Item) bool {
	if inv == nil || item == nil || inv.Full() {
		return false
	}
	for i, slot := range inv.slots {
		if slot == nil {
			inv.slots[i] = item
			return true
		}
	}
	inv.slots = append(inv.slots, item)
	return true
}

// Set replaces slot i. Indices past the end grow the sequence with empty slots.
func (inv *Inventory) Set(i int, item *Item) bool {
	if inv == nil || i < 0 {
		return false
	}
	for len(inv.slots) <= i {
		inv.slots = append(inv.slots, nil)
	}
	inv.slots[i] = item
	return true
}

// RemoveAt empties slot i and returns what it held.
func (inv *Inventory) RemoveAt(i int) *Item {
	if inv == nil || i < 0 || i >= len(inv.slots) {
		return nil
	}
	item := inv.slots[i]
	inv.slots[i] = nil
	return item
}

// Compact drops trailing empty slots.
func (inv *Inventory) Compact() {
	if inv == nil {
		return
	}
	end := len(inv.slots)
	for end > 0 && inv.slots[end-1] == nil {
		end--
	}
	inv.slots = inv.slots[:end]
}
