// Package tui provides a Bubble Tea terminal UI for GraphQuest sessions.
package tui

// History keeps recent input lines for Up/Down recall. The cursor walks
// backward from the newest line; -1 means the prompt is fresh.
type History struct {
	lines  []string
	limit  int
	cursor int
}

// NewHistory creates a history holding at most limit lines.
func NewHistory(limit int) *History {
	return &History{limit: limit, cursor: -1}
}

// Push records an input line. Repeating the newest line is a no-op, and the
// oldest line falls off once the limit is reached.
func (h *History) Push(line string) {
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return
	}
	h.lines = append(h.lines, line)
	if len(h.lines) > h.limit {
		h.lines = h.lines[1:]
	}
}

// Prev steps toward older lines, stopping at the oldest. It reports false
// only when nothing has been recorded.
func (h *History) Prev() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	switch {
	case h.cursor < 0:
		h.cursor = len(h.lines) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.lines[h.cursor], true
}

// Next steps toward newer lines. Walking past the newest returns false and
// leaves the prompt fresh.
func (h *History) Next() (string, bool) {
	if h.cursor < 0 {
		return "", false
	}
	if h.cursor++; h.cursor >= len(h.lines) {
		h.cursor = -1
		return "", false
	}
	return h.lines[h.cursor], true
}

// ResetCursor abandons navigation.
func (h *History) ResetCursor() {
	h.cursor = -1
}
