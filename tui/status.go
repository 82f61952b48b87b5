package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// displayName derives a human-readable name from an entity ID.
// "great_hall" -> "Great Hall".
func displayName(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// renderStatusBar produces a full-width inverted status line showing the
// current room, health, gold, suspended runs, and turn count.
func (m Model) renderStatusBar() string {
	s := m.cli.Engine.Store()

	room := displayName(s.Player.Location)
	if room == "" {
		room = "Nowhere"
	}

	left := fmt.Sprintf(" %s | HP %d/%d | Gold %d",
		room, s.Stat("hp"), s.Stat("max_hp"), s.Player.Gold)

	right := fmt.Sprintf("T:%d ", s.Turn)
	if pending := len(m.cli.Engine.Pending()); pending > 0 {
		right = fmt.Sprintf("Pending: %d | T:%d ", pending, s.Turn)
	}
	if inv := len(s.Player.Inventory); inv > 0 {
		names := make([]string, 0, inv)
		for _, id := range s.Player.Inventory {
			names = append(names, displayName(id))
		}
		candidate := fmt.Sprintf("Inv: %s | %s", strings.Join(names, ", "), right)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | %s", inv, right)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
