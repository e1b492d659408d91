package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	highPriorityStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mediumPriorityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowPriorityStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	overdueStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	doneStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	idPrefixStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
)

// Styler applies terminal styles, or passes text through when color is
// disabled.
type Styler struct {
	enabled bool
}

// NewStyler returns a Styler. A nil force pointer auto-detects whether
// stdout is a color-capable terminal.
func NewStyler(force *bool) Styler {
	if force != nil {
		return Styler{enabled: *force}
	}
	return Styler{enabled: colorCapable()}
}

// Priority styles a priority cell by severity.
func (s Styler) Priority(value string) string {
	if !s.enabled {
		return value
	}
	switch value {
	case "high":
		return highPriorityStyle.Render(value)
	case "medium":
		return mediumPriorityStyle.Render(value)
	case "low":
		return lowPriorityStyle.Render(value)
	default:
		return value
	}
}

// Due styles a rendered due date, dimming completed rows and marking
// overdue ones.
func (s Styler) Due(value string, completed bool) string {
	if !s.enabled {
		return value
	}
	if completed {
		return doneStyle.Render(value)
	}
	if strings.HasSuffix(value, "overdue") {
		return overdueStyle.Render(value)
	}
	return value
}

// Muted dims secondary text.
func (s Styler) Muted(value string) string {
	if !s.enabled {
		return value
	}
	return doneStyle.Render(value)
}

// HighlightID returns an ID with its unique prefix highlighted.
func (s Styler) HighlightID(id string, prefixLen int) string {
	if id == "" || prefixLen <= 0 || prefixLen > len(id) {
		return id
	}
	if !s.enabled {
		return id
	}
	return idPrefixStyle.Render(id[:prefixLen]) + id[prefixLen:]
}

func colorCapable() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// UniqueIDPrefixLengths returns the shortest unique prefix length for each ID.
func UniqueIDPrefixLengths(ids []string) map[string]int {
	uniqueIDs := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		idLower := strings.ToLower(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		uniqueIDs = append(uniqueIDs, idLower)
	}

	lengths := make(map[string]int, len(uniqueIDs))
	for _, id := range uniqueIDs {
		lengths[id] = uniquePrefixLength(id, uniqueIDs)
	}

	return lengths
}

func uniquePrefixLength(id string, ids []string) int {
	for length := 1; length <= len(id); length++ {
		prefix := id[:length]
		unique := true
		for _, other := range ids {
			if other == id {
				continue
			}
			if strings.HasPrefix(other, prefix) {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}

	return len(id)
}
