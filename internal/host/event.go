package host

// EventKind identifies a host notification.
type EventKind int

const (
	UpdateBegin EventKind = iota
	UpdateEnd
	RenderBegin
	RenderEnd
	ButtonPressed
	CursorMoved
	WheelScrolled
	KeybindsChanged
)

var eventKindNames = map[EventKind]string{
	UpdateBegin:     "update-begin",
	UpdateEnd:       "update-end",
	RenderBegin:     "render-begin",
	RenderEnd:       "render-end",
	ButtonPressed:   "button-pressed",
	CursorMoved:     "cursor-moved",
	WheelScrolled:   "wheel-scrolled",
	KeybindsChanged: "keybinds-changed",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is one notification from the host feed.
type Event struct {
	Kind     EventKind
	Viewport int
	Tick     uint64
	Button   Button
	Pressed  []Button
	Delta    int
	Pointer  Point
	Surface  Surface
}
