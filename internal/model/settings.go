package model

// Settings are the viewer's preferences. The app is single-tenant: there is
// exactly one local viewer, so these are globals rather than per-account.
type Settings struct {
	UserName      string `json:"userName"`
	Theme         string `json:"theme"`
	ViewMode      string `json:"viewMode"` // list or board
	LastTab       string `json:"lastTab"`
	ProjectName   string `json:"projectName"`
	Notifications bool   `json:"notificationsEnabled"`
	Sound         bool   `json:"soundEnabled"`
}

// DefaultSettings returns the preferences a fresh profile starts with.
func DefaultSettings() Settings {
	return Settings{
		UserName:      "hacker",
		Theme:         "terminal",
		ViewMode:      "board",
		LastTab:       "tasks",
		ProjectName:   "Tasks",
		Notifications: false,
		Sound:         true,
	}
}
