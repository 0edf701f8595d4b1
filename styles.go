package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header lipgloss.Style
	name   lipgloss.Style
	addr   lipgloss.Style
	ok     lipgloss.Style
	bad    lipgloss.Style
	irq    lipgloss.Style
	strip  lipgloss.Style
	dim    lipgloss.Style
}

var style = newStyles()

func newStyles() styles {
	return styles{
		header: lipgloss.NewStyle().Bold(true).Underline(true),
		name:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		addr:   lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(3)),
		ok:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)),
		bad:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
		irq:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(5)),
		strip:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(4)),
		dim:    lipgloss.NewStyle().Faint(true),
	}
}

// col renders s padded to width w with style st.
func col(st lipgloss.Style, w int, s string) string {
	return st.Width(w).Render(s)
}
