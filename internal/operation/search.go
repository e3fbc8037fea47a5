package operation

import (
	"cmp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Search keeps items whose name fuzzy-matches query. When the fuzzy pass finds
// nothing it falls back to a substring match on name, category and tags. An
// empty query keeps every occupied slot.
func Search(query string) Operation {
	trimmed := strings.TrimSpace(query)
	return func(items []*inventory.Item) []*inventory.Item {
		occupied := Filter(nil)(items)
		if trimmed == "" {
			return occupied
		}
		return Filter(Matcher(trimmed, occupied))(occupied)
	}
}

// Matcher returns a predicate that accepts the items Search(query) would keep
// from candidates.
func Matcher(query string, candidates []*inventory.Item) func(*inventory.Item) bool {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return func(*inventory.Item) bool { return true }
	}
	names := make([]string, 0, len(candidates))
	owners := make([]*inventory.Item, 0, len(candidates))
	for _, item := range candidates {
		if item == nil {
			continue
		}
		names = append(names, item.Name)
		owners = append(owners, item)
	}
	matched := make(map[*inventory.Item]struct{})
	for _, rank := range fuzzy.RankFindNormalizedFold(trimmed, names) {
		matched[owners[rank.OriginalIndex]] = struct{}{}
	}
	if len(matched) > 0 {
		return func(item *inventory.Item) bool {
			_, ok := matched[item]
			return ok
		}
	}
	lower := strings.ToLower(trimmed)
	return func(item *inventory.Item) bool {
		if item == nil {
			return false
		}
		if strings.Contains(strings.ToLower(item.Name), lower) ||
			strings.Contains(strings.ToLower(item.Category), lower) {
			return true
		}
		for _, tag := range item.Tags {
			if strings.Contains(strings.ToLower(tag), lower) {
				return true
			}
		}
		return false
	}
}

// ByRelevance orders items by edit distance between their name and query,
// closest first. Ties keep their original order.
func ByRelevance(query string) Operation {
	target := strings.ToLower(strings.TrimSpace(query))
	if target == "" {
		return Identity
	}
	return Sort(relevance(target))
}

func relevance(target string) func(a, b *inventory.Item) int {
	return func(a, b *inventory.Item) int {
		da := levenshtein.ComputeDistance(target, strings.ToLower(a.Name))
		db := levenshtein.ComputeDistance(target, strings.ToLower(b.Name))
		return cmp.Compare(da, db)
	}
}
