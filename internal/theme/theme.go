// Package theme holds the lipgloss styles used to print checklists.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
)

// HeaderStyle is used for group titles.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// ChecklistStyle is the base style for checklist titles. See ChecklistTitle.
var ChecklistStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// ItemStyle is the base style for open items.
var ItemStyle = lipgloss.NewStyle().
	PaddingLeft(4)

// DoneItemStyle renders checked items.
var DoneItemStyle = ItemStyle.
	Foreground(ColorGray).
	Strikethrough(true)

// SubItemStyle renders sub-item lines under an item.
var SubItemStyle = lipgloss.NewStyle().
	PaddingLeft(8).
	Foreground(ColorGray)

// HelpStyle is used for hints and empty-state text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// StatusStyle highlights a status line, such as the active backend.
var StatusStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ChecklistTitle returns ChecklistStyle tinted with a checklist's own color.
// Records without a color keep the default.
func ChecklistTitle(hex string) lipgloss.Style {
	if hex == "" {
		return ChecklistStyle
	}
	return ChecklistStyle.Foreground(lipgloss.Color(hex))
}

// ProgressStyle colors a done/total counter: gray when empty, green when
// complete, yellow otherwise.
func ProgressStyle(done, total int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case total == 0:
		return base.Foreground(ColorGray)
	case done == total:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorYellow)
	}
}

// Progress renders "[done/total]" with ProgressStyle.
func Progress(done, total int) string {
	return ProgressStyle(done, total).Render(fmt.Sprintf("[%d/%d]", done, total))
}

// Checkbox returns the marker printed before an item.
func Checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// Indent prefixes every line of s with n spaces.
func Indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
