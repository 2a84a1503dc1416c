package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-defense/internal/core"
)

func menuKey(m MenuModel, msg tea.KeyMsg) MenuModel {
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuDifficultySelector(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30}
	tests := []struct {
		name     string
		initial  string
		presses  []tea.KeyMsg
		expected string
	}{
		{"default", "", nil, ""},
		{"flag preset", "hard", nil, "hard"},
		{"unknown flag", "brutal", nil, ""},
		{"right once", "", []tea.KeyMsg{{Type: tea.KeyRight}}, "easy"},
		{"left wraps", "", []tea.KeyMsg{{Type: tea.KeyLeft}}, "fixed"},
		{"right wraps", "fixed", []tea.KeyMsg{{Type: tea.KeyRight}}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMenuModel(nil, cfg, tc.initial)
			for _, k := range tc.presses {
				m = menuKey(m, k)
			}
			if got := m.Difficulty(); got != tc.expected {
				t.Errorf("Difficulty() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestMenuView(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 120, ScreenH: 30}, "easy")
	view := m.View()
	if !strings.Contains(view, "Difficulty: < easy >") {
		t.Errorf("View() missing difficulty line:\n%s", view)
	}

	m = menuKey(m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	m = NewMenuModel(nil, core.RuntimeConfig{ScreenW: 120, ScreenH: 30}, "")
	m = menuKey(m, runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit the menu")
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text     string
		width    int
		expected string
	}{
		{"ab", 6, "  ab"},
		{"abcdef", 4, "abcdef"},
		{"abc", 6, " abc"},
	}
	for _, tc := range tests {
		if got := centerText(tc.text, tc.width); got != tc.expected {
			t.Errorf("centerText(%q, %d) = %q, expected %q", tc.text, tc.width, got, tc.expected)
		}
	}
}
