package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected                                      lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	SymOK, SymFail    string
	BarFull, BarEmpty string
}

var current = newTheme("classic")

// SetTheme switches the active theme; unknown names fall back to classic.
func SetTheme(name string) {
	current = newTheme(name)
}

// Current returns the active theme.
func Current() Theme { return current }

func newTheme(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		return Theme{
			Name:        "neon",
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
			SymOK:       "✔", SymFail: "✖",
			BarFull: "◼", BarEmpty: "◻",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain,
			Selected:    plain.Reverse(true),
			Border:      lipgloss.ASCIIBorder(),
			BorderColor: lipgloss.NoColor{},
			SymOK:       "ok", SymFail: "error:",
			BarFull: "#", BarEmpty: "-",
		}
	default: // classic
		return Theme{
			Name:        "classic",
			Title:       lipgloss.NewStyle().Bold(true),
			Muted:       lipgloss.NewStyle().Faint(true),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
			SymOK:       "✔", SymFail: "✖",
			BarFull: "█", BarEmpty: "░",
		}
	}
}
