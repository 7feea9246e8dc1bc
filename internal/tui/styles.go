package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlog/internal/output"
)

type styles struct {
	doc     lipgloss.Style
	banner  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	hint    lipgloss.Style
}

func newStyles(theme output.Theme) styles {
	return styles{
		doc:     lipgloss.NewStyle().Padding(1, 2),
		banner:  theme.Style(theme.Accent).Bold(true).MarginBottom(1),
		success: theme.Style(theme.Success),
		failure: theme.Style(theme.Error).Bold(true),
		hint:    theme.Style(theme.Muted).Italic(true),
	}
}
