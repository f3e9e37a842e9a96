package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/spencer-p/fishdash/pkg/meta"
)

var (
	colorPrimary = lipgloss.Color("#00BFFF")
	colorMuted   = lipgloss.Color("#6C757D")
	colorBorder  = lipgloss.Color("#4A90E2")

	// Ratings use the dashboard's palette.
	ratingColors = map[string]lipgloss.Color{
		meta.Emerald: lipgloss.Color("#10B981"),
		meta.Teal:    lipgloss.Color("#14B8A6"),
		meta.Amber:   lipgloss.Color("#F59E0B"),
		meta.Rose:    lipgloss.Color("#F43F5E"),
	}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	sectionBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			MarginBottom(1)
)

func ratingStyle(r meta.Rating) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(ratingColors[r.Color]).
		Padding(0, 1)
}
