package operation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atomicstack/chestsync/internal/inventory"
)

type builder func(arg string) (Operation, error)

var builders = map[string]builder{
	"category": func(arg string) (Operation, error) {
		if strings.TrimSpace(arg) == "" {
			return nil, fmt.Errorf("category filter needs at least one category")
		}
		return Categories(strings.Split(arg, ",")...), nil
	},
	"tag": func(arg string) (Operation, error) {
		if strings.TrimSpace(arg) == "" {
			return nil, fmt.Errorf("tag filter needs a tag")
		}
		return Tagged(strings.TrimSpace(arg)), nil
	},
	"search": func(arg string) (Operation, error) {
		return Search(arg), nil
	},
	"take": func(arg string) (Operation, error) {
		var n int
		if _, err := fmt.Sscanf(arg, "%d", &n); err != nil {
			return nil, fmt.Errorf("take: %w", err)
		}
		return Take(n), nil
	},
	"sort": buildSort,
}

func buildSort(arg string) (Operation, error) {
	key, rest, _ := strings.Cut(strings.TrimSpace(arg), ":")
	descending := strings.HasPrefix(key, "-")
	key = strings.TrimPrefix(key, "-")
	var compare func(a, b *inventory.Item) int
	switch strings.ToLower(key) {
	case "name":
		compare = compareName
	case "category":
		compare = compareCategory
	case "quantity", "stack":
		compare = compareQuantity
	case "quality":
		compare = compareQuality
	case "relevance":
		target := strings.ToLower(strings.TrimSpace(rest))
		if target == "" {
			return nil, fmt.Errorf("relevance sort needs a query")
		}
		compare = relevance(target)
	default:
		return nil, fmt.Errorf("unknown sort key %q", key)
	}
	if descending {
		asc := compare
		compare = func(a, b *inventory.Item) int { return -asc(a, b) }
	}
	return Sort(compare), nil
}

// Build parses a spec of the form "name:argument" (for example
// "category:fish,food" or "sort:-quality") into an Operation.
func Build(spec string) (Operation, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(spec), ":")
	b, ok := builders[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	op, err := b(arg)
	if err != nil {
		return nil, fmt.Errorf("operation %q: %w", spec, err)
	}
	return op, nil
}

// BuildAll builds every spec, returning the composed pipeline and the specs
// that failed to parse.
func BuildAll(specs []string) (Operation, map[string]error) {
	var (
		ops    []Operation
		failed map[string]error
	)
	for _, spec := range specs {
		op, err := Build(spec)
		if err != nil {
			if failed == nil {
				failed = make(map[string]error)
			}
			failed[spec] = err
			continue
		}
		ops = append(ops, op)
	}
	return Compose(ops...), failed
}

// Names lists the registered operation names.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
