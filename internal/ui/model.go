package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/chestsync/internal/backend"
	"github.com/atomicstack/chestsync/internal/config"
	"github.com/atomicstack/chestsync/internal/container"
	"github.com/atomicstack/chestsync/internal/data/dispatcher"
	"github.com/atomicstack/chestsync/internal/event"
	"github.com/atomicstack/chestsync/internal/feature"
	"github.com/atomicstack/chestsync/internal/grabmenu"
	"github.com/atomicstack/chestsync/internal/host"
	"github.com/atomicstack/chestsync/internal/logging"
	"github.com/atomicstack/chestsync/internal/logging/events"
	"github.com/atomicstack/chestsync/internal/state"
	"github.com/atomicstack/chestsync/internal/theme"
	uistate "github.com/atomicstack/chestsync/internal/ui/state"
	"github.com/atomicstack/chestsync/internal/world"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// ConfigMsg carries a reloaded configuration into the update loop.
type ConfigMsg struct {
	Config config.Config
}

type tickMsg struct{}

// screen is the host side state of one viewport.
type screen struct {
	index  int
	origin host.Point
	list   *uistate.Level
	menu   *grabMenu
	input  *termInput
	search textinput.Model

	searching bool
	waiting   string
	status    string
}

// Model implements the Bubble Tea model and acts as the host the menu
// engine observes.
type Model struct {
	cfg      config.Config
	world    *world.World
	interval time.Duration

	factory    *container.Factory
	bus        *event.Bus
	menus      *grabmenu.Manager
	hooks      host.Hooks
	features   *feature.Registry
	finder     *feature.Search
	backend    *backend.Watcher
	dispatcher *dispatcher.Dispatcher

	screens *state.PerScreen[*screen]
	count   int
	focus   int
	tick    uint64
	menuSeq int
	frame   string

	width       int
	height      int
	fixedHeight bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wires the engine to a terminal host over w. watcher may be nil.
func NewModel(cfg config.Config, w *world.World, watcher *backend.Watcher) (*Model, error) {
	if w == nil {
		return nil, fmt.Errorf("no world")
	}
	defaults, kinds, err := cfg.Storage.Resolve()
	if err != nil {
		return nil, fmt.Errorf("storage options: %w", err)
	}
	count := cfg.App.Viewports
	if count < 1 {
		count = 1
	}
	m := &Model{
		cfg:      cfg,
		world:    w,
		interval: cfg.App.Tick,
		bus:      event.NewBus(),
		backend:  watcher,
		count:    count,
	}
	m.factory = container.NewFactory(m, defaults, kinds)
	m.menus = grabmenu.New(m, m.factory, m.bus, controlsFrom(cfg.Controls))
	m.hooks = m.menus
	m.finder = feature.NewSearch(m.menus)
	m.features = feature.NewRegistry(m.bus, cfg.Features,
		m.finder,
		feature.NewSort(m.menus),
		feature.NewCategorize(m.menus),
	)
	m.dispatcher = dispatcher.New(w, m.factory)
	m.screens = state.NewPerScreen(m.newScreen)
	for i := 0; i < count; i++ {
		m.screens.Get(i)
	}
	if cfg.App.Height > 0 {
		m.height = cfg.App.Height
		m.fixedHeight = true
	}
	m.width = cfg.App.Width
	m.registerHandlers()
	return m, nil
}

func (m *Model) newScreen(viewport int) *screen {
	origin := host.Point{X: viewport * viewportWidth}
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"
	search.CharLimit = 32
	search.Cursor.SetMode(cursor.CursorStatic)
	if styles.FilterPrompt != nil {
		search.PromptStyle = *styles.FilterPrompt
	}
	if styles.FilterPlaceholder != nil {
		search.PlaceholderStyle = *styles.FilterPlaceholder
	}
	return &screen{
		index:  viewport,
		origin: origin,
		list:   uistate.NewLevel("chests", "Chests", m.world.IDs()),
		input:  newTermInput(origin),
		search: search,
	}
}

func controlsFrom(c config.Controls) grabmenu.Controls {
	return grabmenu.NewControls(c.ScrollUp, c.ScrollDown, c.ScrollPage)
}

// Bus exposes the event bus menu changes are published on.
func (m *Model) Bus() *event.Bus { return m.bus }

// Menus exposes the menu orchestrator.
func (m *Model) Menus() *grabmenu.Manager { return m.menus }

// Close detaches the feature subscriptions.
func (m *Model) Close() {
	m.features.Close()
	if n := m.bus.SubscriptionCount(); n > 0 {
		events.UI.Leaked(n)
		m.bus.Clear()
	}
}

func (m *Model) screen(viewport int) *screen {
	return m.screens.Get(viewport)
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if cmd := m.scheduleTick(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(ConfigMsg{}):         m.handleConfigMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = size.Width
	if !m.fixedHeight {
		m.height = size.Height
	}
	return nil
}

// handleConfigMsg applies a reloaded configuration. Features see the new
// configuration first, then open menus bind again under the new options.
func (m *Model) handleConfigMsg(msg tea.Msg) tea.Cmd {
	reloaded, ok := msg.(ConfigMsg)
	if !ok {
		return nil
	}
	cfg := reloaded.Config
	defaults, kinds, err := cfg.Storage.Resolve()
	if err != nil {
		logging.Error(fmt.Errorf("apply config: %w", err))
		return nil
	}
	cfg.App.Viewports = m.cfg.App.Viewports
	m.cfg = cfg
	m.factory.SetOptions(defaults, kinds)
	m.menus.SetControls(controlsFrom(cfg.Controls))
	logging.SetTraceEnabled(cfg.Logging.Trace)
	m.bus.Publish(event.ConfigChanged{Config: cfg})

	for _, i := range m.screens.Viewports() {
		m.menus.Invalidate(i)
		m.menus.Sync(i)
	}
	if cfg.App.Tick != m.interval {
		restart := m.interval <= 0
		m.interval = cfg.App.Tick
		if restart {
			return m.scheduleTick()
		}
	}
	return nil
}
