package ui

import (
	"time"

	"github.com/atomicstack/chestsync/internal/host"
	tea "github.com/charmbracelet/bubbletea"
)

// pageModifier is the button name reported while shift is held on a wheel
// event.
const pageModifier = host.Button("shift")

func (m *Model) scheduleTick() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(_ time.Time) tea.Msg { return tickMsg{} })
}

// handleTickMsg runs one frame: for every viewport an update phase that
// delivers the input collected since the last tick, then a render phase.
func (m *Model) handleTickMsg(tea.Msg) tea.Cmd {
	m.tick++
	var cmds []tea.Cmd
	for i := 0; i < m.count; i++ {
		s := m.screen(i)
		s.input.beginTick()
		m.emit(host.Event{Kind: host.UpdateBegin, Viewport: i})
		cmds = append(cmds, m.flushInput(s)...)
		m.emit(host.Event{Kind: host.UpdateEnd, Viewport: i})
	}
	m.render()
	cmds = append(cmds, m.scheduleTick())
	return tea.Batch(cmds...)
}

func (m *Model) emit(evt host.Event) {
	evt.Tick = m.tick
	m.menus.Handle(evt)
}

// flushInput hands the pending input of s to the engine and then performs
// the host's own reaction to whatever the engine did not suppress. Clicks
// are delivered one per tick since the engine sees each button at most once
// per tick.
func (m *Model) flushInput(s *screen) []tea.Cmd {
	in := s.input
	if !in.pending() {
		return nil
	}
	var cmds []tea.Cmd
	if in.moved {
		in.moved = false
		m.emit(host.Event{Kind: host.CursorMoved, Viewport: s.index, Pointer: in.at})
		m.hover(s)
	}
	if in.wheel != 0 {
		delta := in.wheel
		in.wheel = 0
		if in.shift {
			in.down[pageModifier] = true
		}
		m.emit(host.Event{Kind: host.WheelScrolled, Viewport: s.index, Delta: delta})
		delete(in.down, pageModifier)
		in.shift = false
		if s.menu == nil {
			m.scrollList(s, -delta)
		}
	}
	if len(in.pressed) > 0 {
		pressed := in.pressed
		in.pressed = nil
		m.emit(host.Event{Kind: host.KeybindsChanged, Viewport: s.index, Pressed: pressed})
		for _, b := range pressed {
			if in.suppressed[b] {
				continue
			}
			if cmd := m.hostKey(s, b); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(in.clicks) > 0 {
		// one click per tick; the rest stay queued for the following ticks
		c := in.clicks[0]
		in.clicks = in.clicks[1:]
		pointer := in.at
		in.at = c.at
		m.emit(host.Event{Kind: host.ButtonPressed, Viewport: s.index, Button: c.button})
		if !in.suppressed[c.button] {
			m.hostClick(s, c)
		}
		in.at = pointer
	}
	return cmds
}
