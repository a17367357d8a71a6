// Package flappy implements the flappy simulation: a body falls under
// gravity, jumps on input and scores by passing gated obstacles. The
// simulation works in viewport pixels; the Game adapter maps terminal cells
// to pixels and draws the state into a core.Screen.
package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// GameID is the leaderboard key shared by every profile.
const GameID = "flappy"

// One terminal cell covers CellWidth x CellHeight viewport pixels.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Visual characters for rendering
const (
	BirdChar      = '●'
	BirdBeakChar  = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
)

// Game adapts a Machine to the registry.Game interface.
type Game struct {
	name    string
	profile config.Profile
	cfg     core.RuntimeConfig
	vp      core.Viewport
	machine *Machine
}

// New creates a game for the named profile. Reset must be called before use.
func New(name string, p config.Profile) *Game {
	return &Game{name: name, profile: p}
}

// ID returns the identifier scores are stored under.
func (g *Game) ID() string {
	return GameID
}

// Profile returns the profile name this game runs.
func (g *Game) Profile() string {
	return g.name
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.profile.Title != "" {
		return g.profile.Title
	}
	return "Flappy Bird"
}

// Reset drops any round in progress and returns to the menu.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.vp = ViewportForCells(cfg.ScreenW, cfg.ScreenH)
	g.machine = NewMachine(g.name, g.profile, WithSeed(cfg.Seed))
}

// Resize updates the viewport. The round in progress continues and picks
// up the new size on its next tick.
func (g *Game) Resize(w, h int) {
	g.cfg.ScreenW, g.cfg.ScreenH = w, h
	g.vp = ViewportForCells(w, h)
}

// Step feeds input to the machine and advances it by one tick. Jump starts
// a round when one is not running, so a single key both starts and flaps.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionStart) {
		g.machine.RequestStart()
	}
	if in.Has(core.ActionJump) {
		if g.machine.Phase() == core.PhasePlaying {
			g.machine.RequestJump()
		} else {
			g.machine.RequestStart()
		}
	}

	ended := g.machine.Tick(g.vp)
	return core.StepResult{State: g.machine.State(), RoundEnded: ended}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.machine.State()
}

// Machine exposes the underlying state machine.
func (g *Game) Machine() *Machine {
	return g.machine
}

// Viewport returns the pixel viewport the game currently simulates.
func (g *Game) Viewport() core.Viewport {
	return g.vp
}

// ViewportForCells converts a terminal size to viewport pixels.
func ViewportForCells(w, h int) core.Viewport {
	return core.Viewport{W: float64(w * CellWidth), H: float64(h * CellHeight)}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	snap, ok := g.machine.Snapshot()
	if !ok {
		g.drawCenteredMessage(dst, g.Title(), "Space or Enter to start")
		return
	}

	for _, o := range snap.Obstacles {
		drawObstacle(dst, o, snap.Constants)
	}
	drawBody(dst, snap.BodyRect)

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorText)

	if res, ended := g.machine.Result(); ended {
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d (%s)  |  Space to retry", res.Score, res.Cause))
	}
}

// cellSpan converts a pixel interval to the half-open cell range it covers.
func cellSpan(from, to, cell float64) (int, int) {
	return int(math.Floor(from / cell)), int(math.Ceil(to / cell))
}

// drawObstacle renders both segments of an obstacle with caps at the gap.
func drawObstacle(dst *core.Screen, o Obstacle, c Constants) {
	x0, x1 := cellSpan(o.X, o.X+c.ObstacleWidth, CellWidth)
	gapTop := core.Clamp(int(math.Floor(o.GapTop/CellHeight)), 0, dst.Height())
	gapBottom := core.Clamp(int(math.Ceil(o.GapBottom(c)/CellHeight)), 0, dst.Height())

	for x := x0; x < x1; x++ {
		for y := 0; y < gapTop; y++ {
			dst.SetColored(x, y, PipeChar, core.ColorPipe)
		}
		if gapTop > 0 {
			dst.SetColored(x, gapTop-1, PipeCapTop, core.ColorPipeCap)
		}
		for y := gapBottom; y < dst.Height(); y++ {
			dst.SetColored(x, y, PipeChar, core.ColorPipe)
		}
		if gapBottom < dst.Height() {
			dst.SetColored(x, gapBottom, PipeCapBottom, core.ColorPipeCap)
		}
	}
}

// drawBody renders the body; the top-right cell is the beak.
func drawBody(dst *core.Screen, r core.Rect) {
	x0, x1 := cellSpan(r.X, r.Right(), CellWidth)
	y0, y1 := cellSpan(r.Y, r.Bottom(), CellHeight)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			ch := BirdChar
			if y == y0 && x == x1-1 && x1-x0 > 1 {
				ch = BirdBeakChar
			}
			dst.SetColored(x, y, ch, core.ColorBird)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillArea(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorDim)

	dst.DrawTextCentered(boxY+1, title, core.ColorAlert)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorText)
}

// RegisterProfiles registers one factory per configured profile, keyed by
// profile name. Profiles already registered are left alone.
func RegisterProfiles(cfg config.FlappyConfig) {
	for _, name := range cfg.ProfileNames() {
		if registry.Exists(name) {
			continue
		}
		p := cfg.Profiles[name]
		registry.Register(name, func() registry.Game {
			return New(name, p)
		})
	}
}
