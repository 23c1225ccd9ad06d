package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/cuhuuhoang/tetrix/internal/config"
	"github.com/cuhuuhoang/tetrix/internal/core"
	"github.com/cuhuuhoang/tetrix/internal/engine"
)

// TickRate 50 gives an exact 20ms tick, so gravity cadence divides evenly.
func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 50,
		Seed:     seed,
	}
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New(config.Default())
	g.Reset(testConfig(seed))
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestResetStartsFreshGame(t *testing.T) {
	g := newTestGame(t, 42)

	state := g.State()
	if state.GameOver {
		t.Error("Fresh game should not be over")
	}
	if state.Score != 0 || state.Lines != 0 {
		t.Errorf("Fresh game has score=%d lines=%d, expected zeros", state.Score, state.Lines)
	}
	if state.Level != 1 {
		t.Errorf("Fresh game level = %d, expected 1", state.Level)
	}
	if g.Snapshot().Piece == nil {
		t.Error("Fresh game should have an active piece")
	}
}

func TestGravityCadence(t *testing.T) {
	g := newTestGame(t, 42)
	startY := g.Snapshot().Piece.Y

	// Level 1 drops every 1000ms; at 50 ticks/s the 50th empty frame crosses
	// the interval.
	for range 49 {
		g.Step(frame())
	}
	if y := g.Snapshot().Piece.Y; y != startY {
		t.Errorf("Piece moved to Y=%d before the drop interval elapsed (start %d)", y, startY)
	}

	g.Step(frame())
	if y := g.Snapshot().Piece.Y; y != startY+1 {
		t.Errorf("Piece at Y=%d after the drop interval, expected %d", y, startY+1)
	}
}

func TestGravityDoesNotScore(t *testing.T) {
	g := newTestGame(t, 42)

	for range 200 {
		g.Step(frame())
	}
	if score := g.State().Score; score != 0 {
		t.Errorf("Gravity descents scored %d points, expected 0", score)
	}
}

func TestInputMapping(t *testing.T) {
	g := newTestGame(t, 42)
	startX := g.Snapshot().Piece.X

	g.Step(frame(core.ActionLeft))
	if x := g.Snapshot().Piece.X; x != startX-1 {
		t.Errorf("After left, X=%d, expected %d", x, startX-1)
	}

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionRight))
	if x := g.Snapshot().Piece.X; x != startX+1 {
		t.Errorf("After left+right+right, X=%d, expected %d", x, startX+1)
	}
}

func TestSoftDropScoresPerRow(t *testing.T) {
	g := newTestGame(t, 42)
	startY := g.Snapshot().Piece.Y

	g.Step(frame(core.ActionSoftDrop))

	if y := g.Snapshot().Piece.Y; y != startY+1 {
		t.Errorf("Soft drop moved piece to Y=%d, expected %d", y, startY+1)
	}
	if score := g.State().Score; score != 1 {
		t.Errorf("Soft drop scored %d, expected 1", score)
	}
}

func TestHardDropLocksPiece(t *testing.T) {
	g := newTestGame(t, 42)

	g.Step(frame(core.ActionHardDrop))

	snap := g.Snapshot()
	locked := 0
	for _, row := range snap.Grid {
		for _, k := range row {
			if k != engine.KindNone {
				locked++
			}
		}
	}
	if locked != 4 {
		t.Errorf("Expected 4 locked cells after hard drop, got %d", locked)
	}
	if g.State().Score == 0 {
		t.Error("Hard drop should award distance points")
	}
	if snap.Piece == nil {
		t.Error("A new piece should spawn after the drop")
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	g := newTestGame(t, 42)
	startY := g.Snapshot().Piece.Y

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("Game should be paused")
	}

	// Neither gravity nor input should act while paused.
	for range 100 {
		g.Step(frame(core.ActionSoftDrop))
	}
	if y := g.Snapshot().Piece.Y; y != startY {
		t.Errorf("Piece moved to Y=%d while paused", y)
	}
	if g.State().Score != 0 {
		t.Error("Score changed while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("Game should resume after second pause press")
	}
	g.Step(frame(core.ActionSoftDrop))
	if y := g.Snapshot().Piece.Y; y != startY+1 {
		t.Errorf("Piece at Y=%d after resume+soft drop, expected %d", y, startY+1)
	}
}

func TestDeterministicReplay(t *testing.T) {
	script := []core.InputFrame{
		frame(core.ActionLeft),
		frame(),
		frame(core.ActionRotate),
		frame(core.ActionHardDrop),
		frame(core.ActionRight),
		frame(core.ActionHardDrop),
	}

	run := func() engine.Snapshot {
		g := newTestGame(t, 99)
		for _, f := range script {
			g.Step(f)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Lines != b.Lines {
		t.Errorf("Replays diverged: score %d vs %d, lines %d vs %d", a.Score, b.Score, a.Lines, b.Lines)
	}
	for y := range a.Grid {
		for x := range a.Grid[y] {
			if a.Grid[y][x] != b.Grid[y][x] {
				t.Fatalf("Replays diverged at grid cell (%d,%d)", x, y)
			}
		}
	}
}

func TestResumeConsumedOnReset(t *testing.T) {
	// Play a bit on a throwaway engine and capture its state.
	e := engine.New(rand.New(rand.NewSource(7)))
	e.Start(nil)
	e.HandleAction(engine.HardDrop)
	saved := e.Snapshot()

	g := New(config.Default())
	g.SetResume(&saved)
	g.Reset(testConfig(1))

	if got := g.State().Score; got != saved.Score {
		t.Errorf("Resumed score = %d, expected %d", got, saved.Score)
	}

	// The pending snapshot is one-shot: the next reset starts fresh.
	g.Reset(testConfig(1))
	if got := g.State().Score; got != 0 {
		t.Errorf("Second reset should start fresh, got score %d", got)
	}
}

func TestResumeIsolatedPerGame(t *testing.T) {
	// Two sessions, two saves: each game resumes its own snapshot even when
	// the other sets its resume slot in between.
	snapshotWithScore := func(seed int64, drops int) engine.Snapshot {
		e := engine.New(rand.New(rand.NewSource(seed)))
		e.Start(nil)
		for range drops {
			e.HandleAction(engine.HardDrop)
		}
		return e.Snapshot()
	}

	savedA := snapshotWithScore(7, 1)
	savedB := snapshotWithScore(8, 2)
	if savedA.Score == savedB.Score {
		t.Fatalf("Test setup needs distinct scores, both are %d", savedA.Score)
	}

	gameA := New(config.Default())
	gameB := New(config.Default())
	gameA.SetResume(&savedA)
	gameB.SetResume(&savedB)
	gameA.Reset(testConfig(1))
	gameB.Reset(testConfig(2))

	if got := gameA.State().Score; got != savedA.Score {
		t.Errorf("First game resumed score %d, expected its own save %d", got, savedA.Score)
	}
	if got := gameB.State().Score; got != savedB.Score {
		t.Errorf("Second game resumed score %d, expected its own save %d", got, savedB.Score)
	}
}

func TestGameOverEventuallyReached(t *testing.T) {
	g := newTestGame(t, 3)

	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionHardDrop))
	}
	if !g.State().GameOver {
		t.Fatal("Stacking hard drops should eventually top out")
	}

	// Input is ignored once the game is over.
	before := g.State().Score
	g.Step(frame(core.ActionHardDrop))
	if g.State().Score != before {
		t.Error("Score changed after game over")
	}
}

func TestRenderShowsBoardAndHUD(t *testing.T) {
	g := newTestGame(t, 42)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row missing score: %q", screen.Row(0))
	}
	if !strings.Contains(screen.String(), "┌") {
		t.Error("Board border not drawn")
	}
	if !strings.Contains(screen.String(), "█") {
		t.Error("Active piece not drawn")
	}
	if !strings.Contains(screen.String(), "Next:") {
		t.Error("Next-piece preview not drawn")
	}
}

func TestRenderGameOverBanner(t *testing.T) {
	g := newTestGame(t, 3)
	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionHardDrop))
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("Game-over banner not drawn")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New(config.Default())
	cfg := testConfig(42)
	cfg.ScreenW = 20
	cfg.ScreenH = 10
	g.Reset(cfg)

	screen := core.NewScreen(20, 10)
	g.Render(screen)

	if !strings.Contains(screen.String(), "too small") {
		t.Error("Expected too-small message on a tiny screen")
	}
}

func TestGhostHiddenWhenDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Display.ShowGhost = false
	g := New(cfg)
	g.Reset(testConfig(42))

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if strings.Contains(screen.String(), "░") {
		t.Error("Ghost piece drawn despite being disabled")
	}
}
