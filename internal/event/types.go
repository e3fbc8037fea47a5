package event

import (
	"github.com/atomicstack/chestsync/internal/config"
	"github.com/atomicstack/chestsync/internal/container"
	"github.com/atomicstack/chestsync/internal/host"
)

const (
	TypeMenuChanged   = "menu.changed"
	TypeConfigChanged = "config.changed"
)

// MenuChanged is published whenever the active menu of a viewport changes.
// Top and Bottom are the containers bound to the source and player panes;
// both are nil when the new menu is not a grab menu.
type MenuChanged struct {
	Viewport int
	Previous host.Menu
	Menu     host.Menu
	Top      *container.Container
	Bottom   *container.Container
}

func (MenuChanged) EventType() string { return TypeMenuChanged }

// Empty reports whether the event carries no container binding.
func (e MenuChanged) Empty() bool {
	return e.Top == nil && e.Bottom == nil
}

// ConfigChanged is published after configuration is reloaded.
type ConfigChanged struct {
	Config config.Config
}

func (ConfigChanged) EventType() string { return TypeConfigChanged }
