package model

// UserData is the exportable profile: everything the viewer has created
// locally, round-tripped as a single JSON document.
type UserData struct {
	Tasks      []Task      `json:"tasks"`
	SavedItems []SavedItem `json:"savedItems"`
	Lists      []List      `json:"lists"`
	Follows    []string    `json:"follows"`
	UserName   string      `json:"userName"`
	Settings   Settings    `json:"settings"`
}
