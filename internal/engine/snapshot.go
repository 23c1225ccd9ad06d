package engine

import "time"

// PieceState is the serializable form of the active piece.
type PieceState struct {
	Kind  Kind  `json:"kind"`
	Shape Shape `json:"shape"`
	X     int   `json:"x"`
	Y     int   `json:"y"`
}

// Snapshot is the minimal state needed to resume a session bit-for-bit.
// It is entirely owned by the caller after being returned: the engine copies
// on the way out and copies again on the way back in through Start, so
// holders can never observe or corrupt live engine state.
type Snapshot struct {
	Grid     [][]Kind    `json:"grid"`
	Piece    *PieceState `json:"piece,omitempty"`
	Queue    []Kind      `json:"queue"`
	Score    int         `json:"score"`
	Lines    int         `json:"lines"`
	GameOver bool        `json:"gameOver"`
}

// Snapshot returns a deep copy of the persistable engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Grid:     cloneGrid(e.grid),
		Piece:    pieceToState(e.piece),
		Queue:    append([]Kind(nil), e.queue...),
		Score:    e.score,
		Lines:    e.lines,
		GameOver: e.gameOver,
	}
}

func pieceToState(p *Piece) *PieceState {
	if p == nil {
		return nil
	}
	return &PieceState{
		Kind:  p.Kind,
		Shape: cloneShape(p.Shape),
		X:     p.X,
		Y:     p.Y,
	}
}

func pieceFromState(ps *PieceState) *Piece {
	if ps == nil {
		return nil
	}
	return &Piece{
		Kind:  ps.Kind,
		Shape: cloneShape(ps.Shape),
		X:     ps.X,
		Y:     ps.Y,
	}
}

// RenderState is the display projection: a snapshot plus derived fields
// recomputed from the canonical state on every call. Nothing here is
// persisted.
type RenderState struct {
	Snapshot

	Width  int
	Height int
	Level  int

	// Next is the head of the upcoming-piece queue.
	Next Kind

	// GhostY is the row the active piece would land on if hard-dropped now.
	// Only meaningful while Piece is non-nil.
	GhostY int

	// DropInterval is the current gravity cadence.
	DropInterval time.Duration
}

// RenderState returns the current display projection. Like Snapshot, the
// result shares no memory with the engine.
func (e *Engine) RenderState() RenderState {
	rs := RenderState{
		Snapshot:     e.Snapshot(),
		Width:        Width,
		Height:       Height,
		Level:        e.Level(),
		DropInterval: e.DropInterval(),
	}
	if len(e.queue) > 0 {
		rs.Next = e.queue[0]
	}
	if e.piece != nil {
		rs.GhostY = e.ghostY()
	}
	return rs
}
