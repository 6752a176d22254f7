package theme

import "github.com/charmbracelet/lipgloss"

// Terminal theme - green phosphor on black, the default
var Terminal = Theme{
	Name: "terminal",

	Background: lipgloss.Color("#0A0E0A"),
	Foreground: lipgloss.Color("#C8E6C9"),
	Subtle:     lipgloss.Color("#5A7A5A"),
	Highlight:  lipgloss.Color("#1B2E1B"),
	Border:     lipgloss.Color("#2E4A2E"),

	Primary:   lipgloss.Color("#4AF626"), // Phosphor green
	Secondary: lipgloss.Color("#8BC34A"),
	Info:      lipgloss.Color("#80CBC4"),

	Success: lipgloss.Color("#4AF626"),
	Warning: lipgloss.Color("#FFB74D"),
	Error:   lipgloss.Color("#EF5350"),

	PriorityLow:    lipgloss.Color("#8BC34A"),
	PriorityMedium: lipgloss.Color("#FFB74D"),
	PriorityHigh:   lipgloss.Color("#EF5350"),

	StatusPending:   lipgloss.Color("#FFB74D"),
	StatusRunning:   lipgloss.Color("#4AF626"),
	StatusCompleted: lipgloss.Color("#5A7A5A"),

	Score:  lipgloss.Color("#4AF626"),
	Domain: lipgloss.Color("#80CBC4"),
	Author: lipgloss.Color("#8BC34A"),
}
