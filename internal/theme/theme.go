package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header       *lipgloss.Style
	Info         *lipgloss.Style
	Error        *lipgloss.Style
	Footer       *lipgloss.Style
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	Waiting      *lipgloss.Style

	Slot        *lipgloss.Style
	SlotEmpty   *lipgloss.Style
	SlotFaded   *lipgloss.Style
	Dimmed      *lipgloss.Style
	Arrow       *lipgloss.Style
	ScrollTrack *lipgloss.Style
	ScrollThumb *lipgloss.Style
	Tooltip     *lipgloss.Style
	TooltipName *lipgloss.Style
	Held        *lipgloss.Style
	Cursor      *lipgloss.Style
	Help        *lipgloss.Style

	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Waiting: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Slot: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("94")),
	),
	SlotEmpty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("94")).Background(lipgloss.Color("58")),
	),
	SlotFaded: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Background(lipgloss.Color("236")),
	),
	Dimmed: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Faint(true),
	),
	Arrow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	ScrollTrack: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	ScrollThumb: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Tooltip: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235")),
	),
	TooltipName: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Background(lipgloss.Color("235")).Bold(true),
	),
	Held: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Reverse(true),
	),
	Help: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
