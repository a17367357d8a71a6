package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// roundStage tracks the end-of-round overlay.
type roundStage int

const (
	stageNone    roundStage = iota // no overlay
	stageName                      // asking for a name
	stageResults                   // showing the top scores
)

// GameModel is the Bubble Tea model hosting one game.
// Ticks are scheduled only while a round is playing, one at a time.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	reporter   *leaderboard.Reporter
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper

	ticking bool
	tickGen int

	stage      roundStage
	nameInput  textinput.Model
	lastScore  int
	submitted  bool
	top        []leaderboard.Entry
	loadingTop bool
	resultsGen int

	quitting   bool
	backToMenu bool
	quitOnBack bool // standalone program: leaving the game ends it
}

// NewGameModel creates a model for game. reporter may be nil.
// playerName pre-fills the name prompt shown after each round.
func NewGameModel(game registry.Game, reporter *leaderboard.Reporter, cfg core.RuntimeConfig, playerName string) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ti := textinput.New()
	ti.Placeholder = leaderboard.DefaultName
	ti.CharLimit = leaderboard.MaxNameLength
	ti.Width = leaderboard.MaxNameLength
	ti.Prompt = "Name: "
	ti.SetValue(playerName)

	game.Reset(cfg)

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		reporter:   reporter,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		keyMapper:  NewKeyMapper(),
		nameInput:  ti,
	}
}

// Init does nothing: the game waits in its menu until a key starts a round.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.stage != stageNone {
			return m.handleOverlayKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.stage == stageNone {
			if action := m.keyMapper.MapMouse(msg); action != core.ActionNone {
				m.inputFrame.Set(action)
				return m.applyInput()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)

	case topScoresMsg:
		if msg.gen == m.resultsGen {
			m.top = msg.entries
			m.loadingTop = false
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input during play.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.stopTicking()
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.gameState.Phase != core.PhasePlaying {
			return m.leave()
		}
		return m, nil
	case action == core.ActionNone:
		return m, nil
	}

	m.inputFrame.Set(action)
	return m.applyInput()
}

// applyInput delivers queued input. While playing it waits for the next
// tick; otherwise the game is stepped once so a start takes effect now.
func (m GameModel) applyInput() (tea.Model, tea.Cmd) {
	if m.ticking {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State

	if m.gameState.Phase == core.PhasePlaying {
		return m, m.startTicking()
	}
	return m, nil
}

// handleOverlayKey processes input on the end-of-round overlay.
func (m GameModel) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.stage == stageName {
		switch msg.String() {
		case "enter":
			done := m.reporter.Submit(m.nameInput.Value(), m.lastScore)
			m.submitted = done != nil
			return m, m.showResults(done)
		case "esc":
			return m, m.showResults(nil)
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		return m.leave()
	case action == core.ActionJump, action == core.ActionStart:
		m.stage = stageNone
		m.inputFrame.Set(core.ActionStart)
		return m.applyInput()
	}
	return m, nil
}

// leave marks the model as going back to the menu.
func (m GameModel) leave() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	if m.quitOnBack {
		return m, tea.Quit
	}
	return m, nil
}

// handleResize passes the new size to the game without restarting it.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.ticking || msg.Gen != m.tickGen {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State

	if result.RoundEnded {
		m.stopTicking()
		return m, m.endRound(result.State.Score)
	}
	if m.gameState.Phase != core.PhasePlaying {
		m.stopTicking()
		return m, nil
	}

	return m, tickCmd(m.config.TickRate, m.tickGen)
}

// startTicking begins a new tick chain.
func (m *GameModel) startTicking() tea.Cmd {
	m.ticking = true
	m.tickGen++
	return tickCmd(m.config.TickRate, m.tickGen)
}

// stopTicking invalidates any tick already scheduled.
func (m *GameModel) stopTicking() {
	m.ticking = false
	m.tickGen++
}

// endRound opens the overlay for a finished round.
func (m *GameModel) endRound(score int) tea.Cmd {
	m.lastScore = score
	m.submitted = false
	m.top = nil
	m.loadingTop = false
	m.resultsGen++
	if m.reporter.Enabled() && score > 0 {
		m.stage = stageName
		m.nameInput.Focus()
		m.nameInput.CursorEnd()
		return textinput.Blink
	}
	return m.showResults(nil)
}

// topScoresMsg carries the list loaded for the overlay identified by gen.
type topScoresMsg struct {
	gen     int
	entries []leaderboard.Entry
}

// showResults switches the overlay to the top scores list and loads it in
// the background. If done is set, the list is read after that submission
// finishes so it includes the new entry.
func (m *GameModel) showResults(done <-chan struct{}) tea.Cmd {
	m.nameInput.Blur()
	m.stage = stageResults
	if !m.reporter.Enabled() {
		return nil
	}

	m.loadingTop = true
	reporter, gen := m.reporter, m.resultsGen
	return func() tea.Msg {
		if done != nil {
			<-done
		}
		return topScoresMsg{gen: gen, entries: reporter.Top(leaderboard.DefaultLimit)}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), m.game.Profile(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.stage != stageNone {
		return lipgloss.Place(m.config.ScreenW, m.config.ScreenH,
			lipgloss.Center, lipgloss.Center, m.overlayView())
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
	overlayTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	overlayDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	overlayMarkStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// overlayView renders the end-of-round panel.
func (m GameModel) overlayView() string {
	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render("GAME OVER"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Score: %d\n\n", m.lastScore)

	if m.stage == stageName {
		b.WriteString(m.nameInput.View())
		b.WriteString("\n\n")
		b.WriteString(overlayDimStyle.Render("Enter: save  |  Esc: skip"))
		return overlayStyle.Render(b.String())
	}

	b.WriteString(m.topScoresView())
	b.WriteString("\n")
	b.WriteString(overlayDimStyle.Render("Space: retry  |  B: menu  |  Q: quit"))
	return overlayStyle.Render(b.String())
}

// topScoresView renders the ranked list, marking the entry just saved.
func (m GameModel) topScoresView() string {
	if !m.reporter.Enabled() {
		return overlayDimStyle.Render("Scores are not being saved.") + "\n"
	}
	if m.loadingTop {
		return overlayDimStyle.Render("Loading scores...") + "\n"
	}
	if len(m.top) == 0 {
		return overlayDimStyle.Render("No scores yet.") + "\n"
	}

	name := leaderboard.NormalizeName(m.nameInput.Value())
	marked := !m.submitted

	var b strings.Builder
	b.WriteString("Top Scores\n")
	for i, e := range m.top {
		line := fmt.Sprintf("%2d. %-*s %6d", i+1, leaderboard.MaxNameLength, e.Name, e.Score)
		if !marked && e.Name == name && e.Score == m.lastScore {
			line = overlayMarkStyle.Render(line)
			marked = true
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
// Returns true if the user asked to go back to the menu.
func Run(game registry.Game, reporter *leaderboard.Reporter, cfg core.RuntimeConfig, playerName string) (backToMenu bool, err error) {
	model := NewGameModel(game, reporter, cfg, playerName)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Click to jump
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
