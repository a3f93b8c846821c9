package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// MaxNameWidth is how many terminal cells an item name may take in a row.
const MaxNameWidth = 40

// ProgressBar renders a bar of done against goal with a percentage.
// Past the goal the bar stays full and the percentage keeps counting.
func ProgressBar(done, goal, width int) string {
	t := Current()
	if goal <= 0 {
		goal = 1
	}
	if width < 5 {
		width = 5
	}
	if done < 0 {
		done = 0
	}
	filled := int(float64(done) / float64(goal) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(t.BarFull, filled) + strings.Repeat(t.BarEmpty, width-filled)
	pct := int(float64(done) / float64(goal) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box around lines using the current theme.
func Panel(lines []string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// ItemLine formats one entry as "Name: N Calories", truncating long names.
func ItemLine(name string, calories int) string {
	t := Current()
	return fmt.Sprintf("%s %s",
		t.Title.Render(TruncateName(name)+":"),
		t.Accent.Render(fmt.Sprintf("%d Calories", calories)),
	)
}

// TruncateName shortens name to MaxNameWidth cells.
func TruncateName(name string) string {
	return runewidth.Truncate(name, MaxNameWidth, "...")
}

// TotalLine renders the running total, with progress when goal is set.
func TotalLine(total, goal int) string {
	t := Current()
	line := fmt.Sprintf("%s %s", t.Accent.Render("Total Calories:"), t.Title.Render(fmt.Sprint(total)))
	if goal > 0 {
		style := t.Success
		if total > goal {
			style = t.Pending
		}
		line += "  " + style.Render(ProgressBar(total, goal, 20)) + t.Muted.Render(fmt.Sprintf(" of %d", goal))
	}
	return line
}

// OK prints a success message to w.
func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
}

// Fail prints an error message to w.
func Fail(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}
