package engine

// Kind identifies one of the seven tetromino kinds. The zero value marks an
// empty grid cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// String returns the single-letter tag for the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	default:
		return "."
	}
}

// Shape is a small boolean matrix describing which cells a piece occupies.
// Row 0 is the top of the piece.
type Shape [][]bool

// canonicalShapes holds the rotation-0 shape for every kind. These matrices
// are read-only constant data; hand out copies only (see ShapeFor).
var canonicalShapes = map[Kind]Shape{
	KindI: {
		{true, true, true, true},
	},
	KindJ: {
		{true, false, false},
		{true, true, true},
	},
	KindL: {
		{false, false, true},
		{true, true, true},
	},
	KindO: {
		{true, true},
		{true, true},
	},
	KindS: {
		{false, true, true},
		{true, true, false},
	},
	KindT: {
		{false, true, false},
		{true, true, true},
	},
	KindZ: {
		{true, true, false},
		{false, true, true},
	},
}

// Kinds lists all seven piece kinds in canonical order.
func Kinds() [7]Kind {
	return [7]Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}
}

// ShapeFor returns a fresh copy of the canonical rotation-0 shape for the
// given kind, or nil for KindNone.
func ShapeFor(k Kind) Shape {
	return cloneShape(canonicalShapes[k])
}

// cloneShape deep-copies a shape matrix. Returns nil for a nil shape.
func cloneShape(s Shape) Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for i, row := range s {
		out[i] = make([]bool, len(row))
		copy(out[i], row)
	}
	return out
}

// rotateCW returns the 90° clockwise rotation of a shape: for an RxC input
// the result is CxR with result[c][R-1-r] = s[r][c].
func rotateCW(s Shape) Shape {
	rows := len(s)
	if rows == 0 {
		return nil
	}
	cols := len(s[0])

	out := make(Shape, cols)
	for c := range out {
		out[c] = make([]bool, rows)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[c][rows-1-r] = s[r][c]
		}
	}
	return out
}

// Piece is the currently falling tetromino: its kind, its post-rotation shape
// matrix, and its board-relative origin. Y may be negative while the piece is
// partially above the visible grid.
type Piece struct {
	Kind  Kind
	Shape Shape
	X, Y  int
}

// clone deep-copies a piece. Returns nil for a nil piece.
func (p *Piece) clone() *Piece {
	if p == nil {
		return nil
	}
	return &Piece{
		Kind:  p.Kind,
		Shape: cloneShape(p.Shape),
		X:     p.X,
		Y:     p.Y,
	}
}
