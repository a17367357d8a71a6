package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/registry"
)

const menuTestProfile = "tui-menu-test"

func registerMenuProfile(t *testing.T) {
	t.Helper()
	if !registry.Exists(menuTestProfile) {
		registry.Register(menuTestProfile, func() registry.Game { return &stubGame{} })
	}
}

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, want MenuModel", next)
	}
	return mm
}

func TestMenuListsProfiles(t *testing.T) {
	registerMenuProfile(t)
	m := NewMenuModel(testConfig(), 42)

	view := m.View()
	if !strings.Contains(view, menuTestProfile) {
		t.Error("menu should list registered profiles")
	}
	if !strings.Contains(view, "Best: 42") {
		t.Error("menu should show the high score")
	}
}

func TestMenuSelect(t *testing.T) {
	registerMenuProfile(t)
	m := NewMenuModel(testConfig(), 0)

	for i, item := range m.items {
		if item.Profile == menuTestProfile {
			for range i {
				m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
			}
			break
		}
	}

	m = updateMenu(t, m, keyEnter)
	if m.Selected() == nil || m.Selected().Profile != menuTestProfile {
		t.Fatalf("Selected() = %v, want %q", m.Selected(), menuTestProfile)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	registerMenuProfile(t)

	m := updateMenu(t, NewMenuModel(testConfig(), 0), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	m = updateMenu(t, NewMenuModel(testConfig(), 0), runeKey("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit the menu")
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := updateMenu(t, NewMenuModel(testConfig(), 0), tea.WindowSizeMsg{Width: 100, Height: 30})
	if cfg := m.Config(); cfg.ScreenW != 100 || cfg.ScreenH != 30 {
		t.Errorf("Config() = %dx%d, want 100x30", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestSessionModelFlow(t *testing.T) {
	registerMenuProfile(t)
	s := NewSessionModel(nil, nil, testConfig(), "tester")

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.screen != screenScores {
		t.Fatalf("screen = %v, want scores", s.screen)
	}
	if !strings.Contains(s.View(), "No scores recorded yet") {
		t.Error("scoreboard without a store should be empty")
	}

	next, cmd := s.Update(keyEsc)
	s = next.(SessionModel)
	if s.screen != screenMenu || cmd != nil {
		t.Fatal("esc on the scoreboard should return to the menu without quitting")
	}

	for i, item := range s.menu.items {
		if item.Profile == menuTestProfile {
			for range i {
				next, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
				s = next.(SessionModel)
			}
			break
		}
	}
	next, _ = s.Update(keyEnter)
	s = next.(SessionModel)
	if s.screen != screenGame {
		t.Fatalf("screen = %v, want game", s.screen)
	}

	next, _ = s.Update(runeKey("b"))
	s = next.(SessionModel)
	if s.screen != screenMenu {
		t.Error("back from the game menu should return to the session menu")
	}

	next, cmd = s.Update(runeKey("q"))
	s = next.(SessionModel)
	if !s.quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
}
