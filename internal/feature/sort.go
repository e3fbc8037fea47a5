package feature

import (
	"github.com/atomicstack/chestsync/internal/config"
	"github.com/atomicstack/chestsync/internal/event"
	"github.com/atomicstack/chestsync/internal/inventory"
	"github.com/atomicstack/chestsync/internal/logging"
	"github.com/atomicstack/chestsync/internal/operation"
)

// Sort orders the source pane by the configured sort key.
type Sort struct {
	panes   Panes
	enabled bool
	key     string

	builtKey string
	op       operation.Operation
}

func NewSort(panes Panes) *Sort { return &Sort{panes: panes} }

func (s *Sort) Name() string                    { return "sort" }
func (s *Sort) Wanted(cfg config.Features) bool { return cfg.Sort }

func (s *Sort) Configure(cfg config.Features) {
	s.enabled = cfg.Sort
	s.key = cfg.SortKey
}

func (s *Sort) Bind(changed event.MenuChanged) {
	if changed.Top == nil {
		return
	}
	s.panes.Top(changed.Viewport).AddOperation(func(items []*inventory.Item) []*inventory.Item {
		if !s.enabled || s.key == "" {
			return items
		}
		op := s.current()
		if op == nil {
			return items
		}
		return op(items)
	})
}

func (s *Sort) current() operation.Operation {
	if s.op != nil && s.builtKey == s.key {
		return s.op
	}
	s.builtKey = s.key
	op, err := operation.Build("sort:" + s.key)
	if err != nil {
		logging.Trace("feature.sort.invalid", map[string]interface{}{"key": s.key, "error": err.Error()})
		s.op = nil
		return nil
	}
	s.op = op
	return op
}
