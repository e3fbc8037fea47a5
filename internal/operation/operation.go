// Package operation provides the display transforms applied to a container's
// items. Every Operation returns a subset or reordering of its input and never
// modifies the slice it is given.
package operation

import (
	"cmp"
	"slices"
	"strings"

	"github.com/atomicstack/chestsync/internal/inventory"
)

// Operation transforms an item sequence for display.
type Operation func(items []*inventory.Item) []*inventory.Item

// Identity returns a copy of items.
func Identity(items []*inventory.Item) []*inventory.Item {
	return clone(items)
}

// Compose chains ops left to right. Nil entries are skipped.
func Compose(ops ...Operation) Operation {
	steps := make([]Operation, 0, len(ops))
	for _, op := range ops {
		if op != nil {
			steps = append(steps, op)
		}
	}
	if len(steps) == 0 {
		return Identity
	}
	return func(items []*inventory.Item) []*inventory.Item {
		out := clone(items)
		for _, step := range steps {
			out = step(out)
		}
		return out
	}
}

// Filter keeps the occupied slots accepted by keep.
func Filter(keep func(*inventory.Item) bool) Operation {
	return func(items []*inventory.Item) []*inventory.Item {
		out := make([]*inventory.Item, 0, len(items))
		for _, item := range items {
			if item != nil && (keep == nil || keep(item)) {
				out = append(out, item)
			}
		}
		return out
	}
}

// Sort orders occupied slots with compare; empty slots move to the end.
// Equal items keep their relative order.
func Sort(compare func(a, b *inventory.Item) int) Operation {
	return func(items []*inventory.Item) []*inventory.Item {
		out := clone(items)
		slices.SortStableFunc(out, func(a, b *inventory.Item) int {
			switch {
			case a == nil && b == nil:
				return 0
			case a == nil:
				return 1
			case b == nil:
				return -1
			}
			return compare(a, b)
		})
		return out
	}
}

// Skip drops the first n entries.
func Skip(n int) Operation {
	return func(items []*inventory.Item) []*inventory.Item {
		if n <= 0 {
			return clone(items)
		}
		if n >= len(items) {
			return []*inventory.Item{}
		}
		return clone(items[n:])
	}
}

// Take keeps at most n entries.
func Take(n int) Operation {
	return func(items []*inventory.Item) []*inventory.Item {
		if n < 0 || n >= len(items) {
			return clone(items)
		}
		return clone(items[:n])
	}
}

// Categories keeps items whose category matches one of names, ignoring case.
func Categories(names ...string) Operation {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			wanted[strings.ToLower(trimmed)] = struct{}{}
		}
	}
	return Filter(func(item *inventory.Item) bool {
		if len(wanted) == 0 {
			return true
		}
		_, ok := wanted[strings.ToLower(item.Category)]
		return ok
	})
}

// Tagged keeps items carrying tag.
func Tagged(tag string) Operation {
	return Filter(func(item *inventory.Item) bool { return item.HasTag(tag) })
}

// ByName orders items alphabetically by name, ignoring case.
func ByName() Operation { return Sort(compareName) }

// ByCategory orders items by category, then name.
func ByCategory() Operation { return Sort(compareCategory) }

// ByQuantity orders larger stacks first.
func ByQuantity() Operation { return Sort(compareQuantity) }

// ByQuality orders higher quality first.
func ByQuality() Operation { return Sort(compareQuality) }

func compareName(a, b *inventory.Item) int {
	return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

func compareCategory(a, b *inventory.Item) int {
	if c := cmp.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category)); c != 0 {
		return c
	}
	return compareName(a, b)
}

func compareQuantity(a, b *inventory.Item) int { return cmp.Compare(b.Stack, a.Stack) }

func compareQuality(a, b *inventory.Item) int { return cmp.Compare(b.Quality, a.Quality) }

func clone(items []*inventory.Item) []*inventory.Item {
	out := make([]*inventory.Item, len(items))
	copy(out, items)
	return out
}
