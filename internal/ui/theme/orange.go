package theme

import "github.com/charmbracelet/lipgloss"

// Orange theme - the classic news.ycombinator.com palette
var Orange = Theme{
	Name: "orange",

	Background: lipgloss.Color("#1C1C1C"),
	Foreground: lipgloss.Color("#E8E8E8"),
	Subtle:     lipgloss.Color("#828282"),
	Highlight:  lipgloss.Color("#3A2A1A"),
	Border:     lipgloss.Color("#5A4A3A"),

	Primary:   lipgloss.Color("#FF6600"), // HN orange
	Secondary: lipgloss.Color("#F0C674"),
	Info:      lipgloss.Color("#81A2BE"),

	Success: lipgloss.Color("#B5BD68"),
	Warning: lipgloss.Color("#F0C674"),
	Error:   lipgloss.Color("#CC6666"),

	PriorityLow:    lipgloss.Color("#B5BD68"),
	PriorityMedium: lipgloss.Color("#F0C674"),
	PriorityHigh:   lipgloss.Color("#CC6666"),

	StatusPending:   lipgloss.Color("#F0C674"),
	StatusRunning:   lipgloss.Color("#FF6600"),
	StatusCompleted: lipgloss.Color("#828282"),

	Score:  lipgloss.Color("#FF6600"),
	Domain: lipgloss.Color("#81A2BE"),
	Author: lipgloss.Color("#F0C674"),
}
