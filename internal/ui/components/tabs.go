package components

import (
	"strings"

	"github.com/abhisek/studyos/internal/ui/theme"
)

// Tabs renders a horizontal tab strip with the active label highlighted.
func Tabs(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = theme.TabActive.Render(l)
		} else {
			parts[i] = theme.TabInactive.Render(l)
		}
	}
	return strings.Join(parts, " ")
}
