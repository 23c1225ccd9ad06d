package engine

import "testing"

func TestShapeCellCounts(t *testing.T) {
	for _, k := range Kinds() {
		shape := ShapeFor(k)
		count := 0
		for _, row := range shape {
			if len(row) != len(shape[0]) {
				t.Errorf("%v: ragged shape matrix", k)
			}
			for _, filled := range row {
				if filled {
					count++
				}
			}
		}
		if count != 4 {
			t.Errorf("%v: %d filled cells, expected 4", k, count)
		}
	}
}

func TestShapeForReturnsCopy(t *testing.T) {
	a := ShapeFor(KindT)
	a[0][1] = false

	b := ShapeFor(KindT)
	if !b[0][1] {
		t.Error("mutating a returned shape corrupted the canonical table")
	}
}

func TestRotateCW(t *testing.T) {
	tests := []struct {
		name     string
		input    Shape
		expected Shape
	}{
		{
			name:     "horizontal I to vertical",
			input:    Shape{{true, true, true, true}},
			expected: Shape{{true}, {true}, {true}, {true}},
		},
		{
			name: "T points left after one turn",
			input: Shape{
				{false, true, false},
				{true, true, true},
			},
			expected: Shape{
				{true, false},
				{true, true},
				{true, false},
			},
		},
		{
			name: "J",
			input: Shape{
				{true, false, false},
				{true, true, true},
			},
			expected: Shape{
				{true, true},
				{true, false},
				{true, false},
			},
		},
		{
			name: "O is rotation invariant",
			input: Shape{
				{true, true},
				{true, true},
			},
			expected: Shape{
				{true, true},
				{true, true},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := rotateCW(tc.input)
			if !shapesEqual(got, tc.expected) {
				t.Errorf("rotateCW() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRotateCWFourTimesIsIdentity(t *testing.T) {
	for _, k := range Kinds() {
		shape := ShapeFor(k)
		rotated := shape
		for range 4 {
			rotated = rotateCW(rotated)
		}
		if !shapesEqual(rotated, shape) {
			t.Errorf("%v: four clockwise rotations should return the original shape", k)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindI.String() != "I" {
		t.Errorf("KindI.String() = %q", KindI.String())
	}
	if KindNone.String() != "." {
		t.Errorf("KindNone.String() = %q", KindNone.String())
	}
}

func shapesEqual(a, b Shape) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
