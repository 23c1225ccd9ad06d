// Package engine implements the rule engine of the falling-block game: board
// state, the active piece, the bag-randomized queue, scoring, and line
// clearing. It is independent of any rendering or input concern; the platform
// layer drives it through movement actions and gravity ticks and reads back
// snapshots and render projections.
package engine

import (
	"math/rand"
	"time"
)

// Board dimensions. Fixed after construction; every row has exactly Width cells.
const (
	Width  = 10
	Height = 20
)

// scoreTable awards points for 0-4 lines cleared in a single lock event,
// multiplied by the current level.
var scoreTable = [5]int{0, 40, 100, 300, 1200}

// Action is a player-initiated mutation the engine can apply to the active
// piece. Illegal actions (blocked moves, impossible rotations) are silently
// absorbed as no-ops; invalid input is routine gameplay, not an error.
type Action int

const (
	MoveLeft Action = iota
	MoveRight
	Rotate
	SoftDrop
	HardDrop
)

// Engine is a self-contained state machine over a grid, an active piece, and
// a shuffled-bag queue of upcoming piece kinds. It is exclusively owned by
// its caller: all methods are synchronous and none retains aliases into
// structures it returns.
type Engine struct {
	grid     [][]Kind
	piece    *Piece
	queue    []Kind
	rng      *rand.Rand
	score    int
	lines    int
	gameOver bool
	running  bool
}

// New creates an engine with an empty grid. The RNG drives bag shuffling and
// is injected so callers can seed it for reproducible piece sequences.
// Call Start before ticking.
func New(rng *rand.Rand) *Engine {
	return &Engine{
		grid: emptyGrid(),
		rng:  rng,
	}
}

func emptyGrid() [][]Kind {
	grid := make([][]Kind, Height)
	for y := range grid {
		grid[y] = make([]Kind, Width)
	}
	return grid
}

func cloneGrid(grid [][]Kind) [][]Kind {
	out := make([][]Kind, len(grid))
	for y, row := range grid {
		out[y] = make([]Kind, len(row))
		copy(out[y], row)
	}
	return out
}

// Start (re)initializes the engine. With a nil snapshot it resets to an empty
// grid, clears score/lines/game-over, tops up the queue, and spawns the first
// piece. With a snapshot it deep-copies every field from it, tops up a short
// queue, and spawns a piece if none was saved and the game is not over.
//
// Precondition: a non-nil snapshot's grid must be Width x Height; the engine
// does not validate foreign dimensions.
func (e *Engine) Start(snap *Snapshot) {
	if snap == nil {
		e.grid = emptyGrid()
		e.piece = nil
		e.queue = nil
		e.score = 0
		e.lines = 0
		e.gameOver = false
		e.topUpQueue()
		e.spawn()
	} else {
		e.grid = cloneGrid(snap.Grid)
		e.piece = pieceFromState(snap.Piece)
		e.queue = append([]Kind(nil), snap.Queue...)
		e.score = snap.Score
		e.lines = snap.Lines
		e.gameOver = snap.GameOver
		e.topUpQueue()
		if e.piece == nil && !e.gameOver {
			e.spawn()
		}
	}
	e.running = !e.gameOver
}

// Pause stops the engine from accepting actions until Resume.
func (e *Engine) Pause() {
	e.running = false
}

// Resume re-enables actions. No-op once the game is over.
func (e *Engine) Resume() {
	if !e.gameOver {
		e.running = true
	}
}

// IsRunning reports whether the engine accepts actions: running and not game
// over. Callers must gate gravity ticks on this.
func (e *Engine) IsRunning() bool {
	return e.running && !e.gameOver
}

// IsGameOver reports whether the terminal game-over state was reached.
func (e *Engine) IsGameOver() bool {
	return e.gameOver
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Lines returns the cumulative count of cleared lines.
func (e *Engine) Lines() int {
	return e.lines
}

// Level derives the current level from cleared lines: one level per 10 lines.
func (e *Engine) Level() int {
	return e.lines/10 + 1
}

// DropInterval returns the gravity cadence for the current level. Gravity
// speeds up monotonically with level and is floored at 300ms.
func (e *Engine) DropInterval() time.Duration {
	step := e.Level() - 1
	if step > 10 {
		step = 10
	}
	ms := 1000 - step*60
	if ms < 300 {
		ms = 300
	}
	return time.Duration(ms) * time.Millisecond
}

// StepDown is the gravity tick. If the active piece can descend one row it
// does so, awarding +1 only for a manual soft drop; otherwise the piece locks
// into the grid, completed lines clear, and the next piece spawns.
//
// StepDown does not re-check the run state; callers must only invoke gravity
// ticks while IsRunning is true.
func (e *Engine) StepDown(manual bool) {
	if e.piece == nil {
		return
	}
	if e.canPlace(e.piece.Shape, e.piece.X, e.piece.Y+1) {
		e.piece.Y++
		if manual {
			e.score++
		}
		return
	}
	e.lockAndAdvance()
}

// HandleAction applies a player action to the active piece. No-op unless the
// engine is running.
func (e *Engine) HandleAction(a Action) {
	if !e.IsRunning() || e.piece == nil {
		return
	}

	switch a {
	case MoveLeft:
		e.tryShift(-1)
	case MoveRight:
		e.tryShift(1)
	case Rotate:
		e.tryRotate()
	case SoftDrop:
		e.StepDown(true)
	case HardDrop:
		e.hardDrop()
	}
}

// canPlace reports whether a shape fits at origin (x, y): every filled cell
// must stay within the horizontal bounds and above the floor, and cells on
// visible rows must map to empty grid cells. Rows above the grid are
// permitted unconditionally so a piece may protrude during spawn or rotation.
func (e *Engine) canPlace(shape Shape, x, y int) bool {
	for r, row := range shape {
		for c, filled := range row {
			if !filled {
				continue
			}
			ax := x + c
			ay := y + r
			if ax < 0 || ax >= Width || ay >= Height {
				return false
			}
			if ay >= 0 && e.grid[ay][ax] != KindNone {
				return false
			}
		}
	}
	return true
}

// tryShift moves the active piece horizontally if the target is free.
func (e *Engine) tryShift(dx int) {
	if e.canPlace(e.piece.Shape, e.piece.X+dx, e.piece.Y) {
		e.piece.X += dx
	}
}

// kickOffsets are the wall-kick x offsets tried in order after a rotation.
var kickOffsets = [...]int{0, -1, 1, -2, 2}

// tryRotate attempts a clockwise rotation at the same y, trying each kick
// offset in turn. If none fits, the rotation is rejected entirely; the shape
// and position stay unchanged.
func (e *Engine) tryRotate() {
	rotated := rotateCW(e.piece.Shape)
	for _, dx := range kickOffsets {
		if e.canPlace(rotated, e.piece.X+dx, e.piece.Y) {
			e.piece.Shape = rotated
			e.piece.X += dx
			return
		}
	}
}

// hardDrop advances the piece down while free, awards 2 points per row
// traveled, then locks in place.
func (e *Engine) hardDrop() {
	distance := 0
	for e.canPlace(e.piece.Shape, e.piece.X, e.piece.Y+1) {
		e.piece.Y++
		distance++
	}
	if distance > 0 {
		e.score += distance * 2
	}
	e.lockAndAdvance()
}

// lockAndAdvance is the shared tail of a blocked StepDown and a hard drop:
// lock the piece, clear lines, spawn the next piece.
func (e *Engine) lockAndAdvance() {
	e.lock()
	e.clearLines()
	e.spawn()
}

// lock writes every filled, in-bounds cell of the active piece into the grid.
// Cells on rows above the grid are dropped silently. Clears the piece.
func (e *Engine) lock() {
	for r, row := range e.piece.Shape {
		for c, filled := range row {
			if !filled {
				continue
			}
			ay := e.piece.Y + r
			if ay < 0 {
				continue
			}
			e.grid[ay][e.piece.X+c] = e.piece.Kind
		}
	}
	e.piece = nil
}

// clearLines scans rows bottom-to-top, removing each complete row and
// unshifting an empty row at the top. After a removal the same index is
// re-tested, since the row shifted into it may also be complete. Scoring
// uses the level computed after the line counter is incremented.
func (e *Engine) clearLines() {
	cleared := 0
	for row := Height - 1; row >= 0; {
		if !rowComplete(e.grid[row]) {
			row--
			continue
		}
		e.grid = append(e.grid[:row], e.grid[row+1:]...)
		e.grid = append([][]Kind{make([]Kind, Width)}, e.grid...)
		cleared++
	}

	if cleared == 0 {
		return
	}
	e.lines += cleared
	e.score += scoreTable[cleared] * e.Level()
}

func rowComplete(row []Kind) bool {
	for _, cell := range row {
		if cell == KindNone {
			return false
		}
	}
	return true
}

// spawn pulls the next kind from the queue, centers it horizontally one row
// above the grid, and makes it the active piece. If the spawn position
// already collides, the piece is discarded and the engine transitions to the
// terminal game-over state.
func (e *Engine) spawn() {
	kind := e.nextKind()
	shape := ShapeFor(kind)
	p := &Piece{
		Kind:  kind,
		Shape: shape,
		X:     (Width - len(shape[0])) / 2,
		Y:     -1,
	}

	if !e.canPlace(p.Shape, p.X, p.Y) {
		e.piece = nil
		e.gameOver = true
		e.running = false
		return
	}
	e.piece = p
}

// ghostY returns the row the active piece would land on if hard-dropped now.
// Only meaningful while a piece is active.
func (e *Engine) ghostY() int {
	y := e.piece.Y
	for e.canPlace(e.piece.Shape, e.piece.X, y+1) {
		y++
	}
	return y
}
