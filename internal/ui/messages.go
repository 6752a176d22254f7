package ui

// View represents the current active view
type View int

const (
	ViewStories View = iota
	ViewTrending
	ViewSearch
	ViewTasks
	ViewSaved
	ViewProfile
	ViewReader
	ViewHelp
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewStories:
		return "Stories"
	case ViewTrending:
		return "Trending"
	case ViewSearch:
		return "Search"
	case ViewTasks:
		return "Tasks"
	case ViewSaved:
		return "Saved"
	case ViewProfile:
		return "Profile"
	case ViewReader:
		return "Reader"
	case ViewHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// ViewByName maps a command-line view name to a View.
func ViewByName(name string) (View, bool) {
	for v := ViewStories; v <= ViewProfile; v++ {
		if name == v.tabName() {
			return v, true
		}
	}
	return ViewStories, false
}

func (v View) tabName() string {
	switch v {
	case ViewStories:
		return "stories"
	case ViewTrending:
		return "trending"
	case ViewSearch:
		return "search"
	case ViewTasks:
		return "tasks"
	case ViewSaved:
		return "saved"
	case ViewProfile:
		return "profile"
	case ViewReader:
		return "reader"
	default:
		return ""
	}
}

// Messages for inter-component communication

// SwitchViewMsg requests a view change
type SwitchViewMsg struct {
	View View
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
}

// FeedRefreshedMsg is sent by the background refresh so listings repaint
type FeedRefreshedMsg struct{}
