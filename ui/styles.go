package ui

import "github.com/charmbracelet/lipgloss"

// 16-color ANSI Dracula palette
var (
	DraculaForeground = lipgloss.AdaptiveColor{Light: "0", Dark: "255"}
	DraculaPink       = lipgloss.AdaptiveColor{Light: "13", Dark: "13"}
	DraculaCyan       = lipgloss.AdaptiveColor{Light: "14", Dark: "14"}
	DraculaGreen      = lipgloss.AdaptiveColor{Light: "10", Dark: "10"}
	DraculaComment    = lipgloss.AdaptiveColor{Light: "7", Dark: "7"}

	// Tab bar styles; the active tab takes the category's theme color
	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Padding(0, 1)
	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(DraculaComment).
				Padding(0, 1)

	// Refresh header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Align(lipgloss.Center)

	// Product rows
	ProductNameStyle = lipgloss.NewStyle().
				Foreground(DraculaCyan)
	ProductSelectedStyle = lipgloss.NewStyle().
				Foreground(DraculaPink).
				Bold(true)
	ProductPriceStyle = lipgloss.NewStyle().
				Foreground(DraculaGreen)
	ProductMetaStyle = lipgloss.NewStyle().
				Foreground(DraculaComment)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(DraculaComment)
)

// themed returns style with the category's theme color as foreground.
func themed(style lipgloss.Style, color string) lipgloss.Style {
	return style.Foreground(lipgloss.Color(color))
}
