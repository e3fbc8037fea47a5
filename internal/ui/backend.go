package ui

import (
	"fmt"

	"github.com/atomicstack/chestsync/internal/backend"
	"github.com/atomicstack/chestsync/internal/data/dispatcher"
	"github.com/atomicstack/chestsync/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	events.World.Done()
	return nil
}

// applyBackendEvent applies a world change and lets every viewport catch up:
// the chest list is refreshed and a menu over a rebuilt chest is replaced.
func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	if !res.Changed {
		return
	}
	ids := m.world.IDs()
	note := changeNote(res)
	for i := 0; i < m.count; i++ {
		s := m.screen(i)
		s.list.UpdateItems(ids)
		if s.menu == nil && s.waiting == "" {
			s.status = note
		}
	}
	if res.Rebuilt {
		m.rebuilt(res.ChestID)
	}
}

func (m *Model) rebuilt(id string) {
	fresh, ok := m.world.Chest(id)
	if !ok {
		return
	}
	var waiters []*screen
	for i := 0; i < m.count; i++ {
		if s := m.screen(i); s.waiting == id && s.menu == nil {
			waiters = append(waiters, s)
		}
	}
	for i := 0; i < m.count; i++ {
		s := m.screen(i)
		if g := s.menu; g != nil && g.source != nil && g.source.ID == id && g.source != fresh {
			m.reopen(s, fresh)
		}
	}
	// requests queued on the old container would never be resumed
	for _, s := range waiters {
		s.waiting = ""
		m.openChest(s, id)
	}
}

func changeNote(res dispatcher.Result) string {
	switch {
	case res.Deposited != nil:
		return fmt.Sprintf("%s: +%s", res.ChestID, res.Deposited.Label())
	case res.Withdrawn != nil:
		return fmt.Sprintf("%s: -%s", res.ChestID, res.Withdrawn.Label())
	case res.Rebuilt:
		return fmt.Sprintf("%s: rebuilt", res.ChestID)
	}
	return ""
}
