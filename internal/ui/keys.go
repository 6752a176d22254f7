package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PrevTab  key.Binding
	NextTab  key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Item actions
	Open    key.Binding
	Save    key.Binding
	Track   key.Binding
	Read    key.Binding
	Delete  key.Binding
	Refresh key.Binding

	// Views
	StoriesView  key.Binding
	TrendingView key.Binding
	SearchView   key.Binding
	TasksView    key.Binding
	SavedView    key.Binding
	ProfileView  key.Binding

	// General
	Help       key.Binding
	ThemeCycle key.Binding
	Quit       key.Binding
	Back       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("h", "["),
			key.WithHelp("h", "prev feed"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("l", "]"),
			key.WithHelp("l", "next feed"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),

		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Track: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "track as task"),
		),
		Read: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reader"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),

		StoriesView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "stories"),
		),
		TrendingView: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "trending"),
		),
		SearchView: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "search"),
		),
		TasksView: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "tasks"),
		),
		SavedView: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "saved"),
		),
		ProfileView: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "profile"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("escape"),
			key.WithHelp("esc", "back"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("escape"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.PrevTab, k.NextTab, k.Open, k.Read},
		{k.Save, k.Track, k.Delete, k.Refresh},
		{k.StoriesView, k.TrendingView, k.SearchView, k.TasksView},
		{k.SavedView, k.ProfileView},
		{k.Help, k.ThemeCycle, k.Quit},
	}
}
