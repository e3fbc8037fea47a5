package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/chestsync/internal/backend"
	"github.com/atomicstack/chestsync/internal/config"
	"github.com/atomicstack/chestsync/internal/logging"
	"github.com/atomicstack/chestsync/internal/ui"
	"github.com/atomicstack/chestsync/internal/world"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadWorld returns the fixture at path, or the built in world when path is
// empty.
func LoadWorld(path string) (*world.World, error) {
	if path == "" {
		return world.Default(), nil
	}
	w, err := world.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}
	return w, nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg config.Config) error {
	w, err := LoadWorld(cfg.App.World)
	if err != nil {
		return err
	}
	watcher := backend.NewWatcher(w.IDs(), cfg.App.Churn, uint64(time.Now().UnixNano()))
	defer watcher.Stop()

	model, err := ui.NewModel(cfg, w, watcher)
	if err != nil {
		return err
	}
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if err := config.Watch(cfg, func(next config.Config) {
		program.Send(ui.ConfigMsg{Config: next})
	}); err != nil {
		// keep running on the loaded configuration
		logging.Error(err)
	}
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
