// Package presentation renders classroom state for the terminal.
package presentation

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Foreground  = lipgloss.Color("#101F38")
	Muted       = lipgloss.Color("#9aa3af")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
	Destructive = lipgloss.Color("#e53935")
	Info        = lipgloss.Color("#2196F3")
)

// skinColors maps desk skin keys to a border color; unknown skins use the default border
var skinColors = map[string]lipgloss.Color{
	"desk_red":    lipgloss.Color("#e53935"),
	"desk_blue":   lipgloss.Color("#2196F3"),
	"desk_green":  lipgloss.Color("#43a047"),
	"desk_yellow": lipgloss.Color("#fdd835"),
	"desk_gold":   lipgloss.Color("#ffb300"),
}

// Styles holds the rendering styles
type Styles struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Seat    lipgloss.Style
	Empty   lipgloss.Style
}

// DefaultStyles returns the standard style set
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(Info).MarginBottom(1),
		Bold:    lipgloss.NewStyle().Bold(true),
		Body:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(Muted),
		Success: lipgloss.NewStyle().Foreground(Success).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(Warning),
		Error:   lipgloss.NewStyle().Foreground(Destructive).Bold(true),
		Seat: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(seatWidth).
			Height(seatHeight).
			Align(lipgloss.Center),
		Empty: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(Muted).
			Foreground(Muted).
			Width(seatWidth).
			Height(seatHeight).
			Align(lipgloss.Center),
	}
}

// SeatStyle returns the card style for a desk skin
func (s Styles) SeatStyle(skin string) lipgloss.Style {
	if color, ok := skinColors[skin]; ok {
		return s.Seat.BorderForeground(color)
	}
	return s.Seat
}
