package components

import (
	"charm.land/lipgloss/v2"

	"github.com/lernkraft/lernkraft/internal/ui/theme"
)

// Tabs is a horizontal tab bar. Selection is owned by the caller; the
// component only renders.
type Tabs struct {
	Labels []string
	Active int
}

// View renders the tab bar.
func (t Tabs) View() string {
	parts := make([]string, 0, len(t.Labels))
	for i, label := range t.Labels {
		if i == t.Active {
			parts = append(parts, theme.TabActive.Render(label))
		} else {
			parts = append(parts, theme.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
