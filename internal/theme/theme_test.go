package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestCheckbox(t *testing.T) {
	assert.Equal(t, "[x]", Checkbox(true))
	assert.Equal(t, "[ ]", Checkbox(false))
}

func TestProgressContainsCounts(t *testing.T) {
	assert.Contains(t, Progress(2, 5), "[2/5]")
	assert.Contains(t, Progress(0, 0), "[0/0]")
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", Indent("a\n\nb", 2))
}

func TestChecklistTitle(t *testing.T) {
	assert.Equal(t, ChecklistStyle.GetForeground(), ChecklistTitle("").GetForeground())
	assert.Equal(t, lipgloss.Color("#1d93c8"), ChecklistTitle("#1d93c8").GetForeground())
	assert.True(t, ChecklistTitle("#1d93c8").GetBold())
}
