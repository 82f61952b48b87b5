package tui

import (
	"strings"
	"testing"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"hall", "Hall"},
		{"guard_hall", "Guard Hall"},
		{"old_stone_cell", "Old Stone Cell"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := displayName(tt.id); got != tt.want {
			t.Errorf("displayName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"You wake up on cold stone.", kindNarrative},
		{"Guard: Who goes there?", kindDialogue},
		{"  1) A friend", kindChoice},
		{"2) Your doom", kindChoice},
		{"[Trace output enabled.]", kindSystem},
		{"[trace] room/cell msg(ShowMessage)", kindTrace},
		{"[fault n1 RemoveItem: player does not carry \"key\"]", kindFault},
		{"A long corridor stretches north: torches line the walls.", kindNarrative},
		{"10) not a real option", kindNarrative},
	}
	for _, tt := range tests {
		if got := classifyLine(tt.line); got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestLooksSpoken(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Guard: Halt.", true},
		{"Old Guard: Halt.", false},
		{"no colon here", false},
		{": leading colon", false},
	}
	for _, tt := range tests {
		if got := looksSpoken(tt.line); got != tt.want {
			t.Errorf("looksSpoken(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	t.Run("short text unchanged", func(t *testing.T) {
		if got := wordWrap("hello world", 40); got != "hello world" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("wraps at word boundaries", func(t *testing.T) {
		got := wordWrap("the quick brown fox jumps over the lazy dog", 15)
		for i, line := range strings.Split(got, "\n") {
			if len(line) > 15 {
				t.Errorf("line %d too long: %q", i, line)
			}
		}
		if strings.Contains(got, "  ") {
			t.Errorf("double spaces in wrapped output: %q", got)
		}
	})

	t.Run("zero width unchanged", func(t *testing.T) {
		if got := wordWrap("hello", 0); got != "hello" {
			t.Errorf("got %q", got)
		}
	})
}

func TestHistory(t *testing.T) {
	h := NewHistory(3)

	if _, ok := h.Prev(); ok {
		t.Fatal("empty history should have no previous entry")
	}

	h.Push("go hall")
	h.Push("look")
	h.Push("look") // consecutive duplicate, skipped
	h.Push("talk guard")

	if prev, _ := h.Prev(); prev != "talk guard" {
		t.Fatalf("Prev = %q", prev)
	}
	if prev, _ := h.Prev(); prev != "look" {
		t.Fatalf("Prev = %q", prev)
	}
	if next, _ := h.Next(); next != "talk guard" {
		t.Fatalf("Next = %q", next)
	}
	if _, ok := h.Next(); ok {
		t.Fatal("Next past the newest entry should report false")
	}

	// Ring behavior: pushing past max drops the oldest.
	h.Push("a")
	h.Push("b")
	if prev, _ := h.Prev(); prev != "b" {
		t.Fatalf("Prev = %q", prev)
	}
	h.ResetCursor()
	for i := 0; i < 10; i++ {
		h.Prev()
	}
	if oldest, _ := h.Prev(); oldest != "talk guard" {
		t.Fatalf("oldest = %q, want the ring to have dropped earlier entries", oldest)
	}
}
