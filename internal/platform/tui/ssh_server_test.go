package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/registry"
)

var lastStub *stubGame

func init() {
	registry.Register("stub", func() registry.Game {
		lastStub = &stubGame{}
		return lastStub
	})
}

func sessionKey(m SessionModel, msg tea.Msg) SessionModel {
	next, _ := m.Update(msg)
	return next.(SessionModel)
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 30}, "tester", "")

	m = sessionKey(m, tea.KeyMsg{Type: tea.KeyRight}) // easy
	m = sessionKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.inGame || m.gameModel == nil {
		t.Fatal("enter did not start a game")
	}
	if lastStub.difficulty != "easy" {
		t.Errorf("difficulty = %q, expected easy", lastStub.difficulty)
	}

	lastStub.state = core.GameState{GameOver: true}
	m = sessionKey(m, TickMsg{})
	m = sessionKey(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.inGame {
		t.Fatal("esc after game over should return to the menu")
	}
	if m.menu.Difficulty() != "easy" {
		t.Errorf("menu difficulty = %q, expected the last pick", m.menu.Difficulty())
	}
}

func TestSessionScoreboardStaysInMenu(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 100, ScreenH: 30}, "tester", "hard")
	m = sessionKey(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.quitting || m.inGame || m.menu.WantsScoreboard() {
		t.Error("tab should keep the remote session in the menu")
	}
	if m.menu.Difficulty() != "hard" {
		t.Errorf("menu difficulty = %q, expected hard", m.menu.Difficulty())
	}

	m = sessionKey(m, runeKey('q'))
	if !m.quitting {
		t.Error("q should end the session")
	}
}
