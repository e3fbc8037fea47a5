// Package state holds the cursor and scroll state of the terminal host's
// list views.
package state

// Level is a scrollable list of entity ids with a cursor.
type Level struct {
	ID             string
	Title          string
	Items          []string
	Cursor         int
	ViewportOffset int
}

// NewLevel constructs a Level over items.
func NewLevel(id, title string, items []string) *Level {
	l := &Level{ID: id, Title: title}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the position of id, or -1.
func (l *Level) IndexOf(id string) int {
	for i, item := range l.Items {
		if item == id {
			return i
		}
	}
	return -1
}

// Current returns the id under the cursor.
func (l *Level) Current() (string, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return "", false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems replaces the list. The cursor follows the id it was on when
// that id survives, and is clamped otherwise.
func (l *Level) UpdateItems(items []string) {
	current, ok := l.Current()
	l.Items = append([]string(nil), items...)
	if ok {
		if idx := l.IndexOf(current); idx >= 0 {
			l.Cursor = idx
			return
		}
	}
	l.Cursor = clamp(l.Cursor, 0, len(l.Items)-1)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
