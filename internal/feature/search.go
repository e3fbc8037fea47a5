package feature

import (
	"strings"

	"github.com/atomicstack/chestsync/internal/config"
	"github.com/atomicstack/chestsync/internal/event"
	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/atomicstack/chestsync/internal/operation"
)

// Search filters or fades the source pane by a per viewport query.
type Search struct {
	panes   Panes
	enabled bool
	mode    string
	queries map[int]string
	cache   map[int]*matchCache
}

type matchCache struct {
	query string
	items []*inventory.Item
	match func(*inventory.Item) bool
}

// NewSearch creates the search feature.
func NewSearch(panes Panes) *Search {
	return &Search{
		panes:   panes,
		mode:    config.SearchGray,
		queries: make(map[int]string),
		cache:   make(map[int]*matchCache),
	}
}

func (s *Search) Name() string                    { return "search" }
func (s *Search) Wanted(cfg config.Features) bool { return cfg.Search }
func (s *Search) Configure(cfg config.Features)   { s.enabled, s.mode = cfg.Search, cfg.SearchMode }
func (s *Search) Query(viewport int) string       { return s.queries[viewport] }

// SetQuery changes the query of viewport and scrolls its source pane back to
// the top.
func (s *Search) SetQuery(viewport int, query string) {
	query = strings.TrimSpace(query)
	if s.queries[viewport] == query {
		return
	}
	s.queries[viewport] = query
	delete(s.cache, viewport)
	s.panes.Top(viewport).SetScrolled(0)
}

func (s *Search) Bind(changed event.MenuChanged) {
	if changed.Top == nil {
		return
	}
	viewport := changed.Viewport
	top := s.panes.Top(viewport)
	top.AddOperation(func(items []*inventory.Item) []*inventory.Item {
		query := s.queries[viewport]
		if !s.enabled || s.mode != config.SearchHide || query == "" {
			return items
		}
		return operation.Search(query)(items)
	})
	top.AddHighlighter(host.HighlightFunc(func(item *inventory.Item) bool {
		query := s.queries[viewport]
		if !s.enabled || s.mode != config.SearchGray || query == "" {
			return true
		}
		c := top.Container()
		if c == nil {
			return true
		}
		return s.matcher(viewport, query, c.Items().Items())(item)
	}))
}

// matcher caches the fuzzy ranking for one query over one backing array.
func (s *Search) matcher(viewport int, query string, items []*inventory.Item) func(*inventory.Item) bool {
	if mc, ok := s.cache[viewport]; ok && mc.query == query && sameSlice(mc.items, items) {
		return mc.match
	}
	mc := &matchCache{query: query, items: items, match: operation.Matcher(query, items)}
	s.cache[viewport] = mc
	return mc.match
}

func sameSlice(a, b []*inventory.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
