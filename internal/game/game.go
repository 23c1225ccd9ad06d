// Package game adapts the pure rule engine to the tick-driven platform
// contract: it maps input frames to engine actions, schedules gravity from
// wall-clock time accumulated across ticks, and draws the board into a
// screen buffer.
package game

import (
	"math/rand"
	"time"

	"github.com/cuhuuhoang/tetrix/internal/config"
	"github.com/cuhuuhoang/tetrix/internal/core"
	"github.com/cuhuuhoang/tetrix/internal/engine"
)

// Game implements the platform game contract on top of the engine.
type Game struct {
	cfg    config.Config
	eng    *engine.Engine
	tick   uint64
	rng    *rand.Rand
	paused bool

	// Gravity scheduling: elapsed simulated time since the last descent.
	tickDur time.Duration
	accum   time.Duration

	// One-shot resume slot, consumed by the next Reset.
	resume *engine.Snapshot

	// Screen dimensions
	screenW int
	screenH int

	tooSmall bool
}

// SetResume arranges for this game's next Reset to restore the given snapshot
// instead of starting fresh. Each Game owns its own slot, so concurrent
// sessions (e.g. SSH users) cannot interfere with each other's saves.
func (g *Game) SetResume(snap *engine.Snapshot) {
	g.resume = snap
}

// New creates a new game with the given platform configuration.
func New(cfg config.Config) *Game {
	return &Game{cfg: cfg}
}

// ID returns the game identifier used for storage and screenshots.
func (g *Game) ID() string {
	return "tetrix"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetrix"
}

// Reset initializes/restarts the game. If a resume snapshot is pending it is
// consumed here; otherwise a fresh session starts.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.eng = engine.New(g.rng)
	g.tick = 0
	g.accum = 0
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.tickDur = time.Second / time.Duration(tickRate)

	g.checkScreenSize()

	snap := g.resume
	g.resume = nil
	g.eng.Start(snap)
}

// checkScreenSize checks if the screen fits the board plus side panel.
func (g *Game) checkScreenSize() {
	requiredW := boardPixelW + panelW + 4
	requiredH := engine.Height + 2 + hudHeight
	g.tooSmall = g.screenW < requiredW || g.screenH < requiredH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionPause) {
		g.togglePause()
	}

	if g.tooSmall || g.paused || g.eng.IsGameOver() {
		return core.StepResult{State: g.State()}
	}

	// Player actions first, then gravity, so a last-moment shift or rotate
	// lands before the piece locks.
	switch {
	case in.Has(core.ActionLeft):
		g.eng.HandleAction(engine.MoveLeft)
	case in.Has(core.ActionRight):
		g.eng.HandleAction(engine.MoveRight)
	}
	if in.Has(core.ActionRotate) {
		g.eng.HandleAction(engine.Rotate)
	}
	switch {
	case in.Has(core.ActionHardDrop):
		g.eng.HandleAction(engine.HardDrop)
		g.accum = 0
	case in.Has(core.ActionSoftDrop):
		g.eng.HandleAction(engine.SoftDrop)
		g.accum = 0
	}

	g.stepGravity()

	return core.StepResult{State: g.State()}
}

// stepGravity accumulates simulated time and fires gravity ticks whenever it
// reaches the engine's current drop interval. Gated on IsRunning: the engine
// leaves that check to its caller.
func (g *Game) stepGravity() {
	if !g.eng.IsRunning() {
		return
	}
	g.accum += g.tickDur
	for interval := g.eng.DropInterval(); g.accum >= interval; interval = g.eng.DropInterval() {
		g.accum -= interval
		g.eng.StepDown(false)
		if !g.eng.IsRunning() {
			g.accum = 0
			return
		}
	}
}

// togglePause flips the pause state. No-op once the game is over.
func (g *Game) togglePause() {
	if g.eng.IsGameOver() {
		return
	}
	if g.paused {
		g.paused = false
		g.eng.Resume()
	} else {
		g.paused = true
		g.eng.Pause()
	}
}

// State returns the current game state for the platform.
func (g *Game) State() core.GameState {
	rs := g.eng.RenderState()
	return core.GameState{
		Score:    rs.Score,
		Lines:    rs.Lines,
		Level:    rs.Level,
		GameOver: rs.GameOver,
		Paused:   g.paused,
	}
}

// Snapshot returns the engine's persistable state, for the save collaborator.
func (g *Game) Snapshot() engine.Snapshot {
	return g.eng.Snapshot()
}

// Resumable reports whether the session is worth saving: mid-game, not over.
func (g *Game) Resumable() bool {
	return !g.eng.IsGameOver()
}
