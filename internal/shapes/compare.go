package shapes

import (
	"cmp"
	"errors"
	"math"
)

var (
	// ErrNotApplicable is returned by the area arithmetic helpers when the
	// other operand is not a Shape.
	ErrNotApplicable = errors.New("operand is not a shape")

	// ErrZeroArea is returned by Mod when the divisor has no area.
	ErrZeroArea = errors.New("modulus by a shape with zero area")
)

// Less reports whether x has a smaller area than other.
// It is false when other is not a Shape.
func Less(x Shape, other any) bool {
	y, ok := other.(Shape)
	if !ok {
		return false
	}
	return x.Area() < y.Area()
}

// Equal reports whether x and other have exactly the same area.
// It is false when other is not a Shape.
func Equal(x Shape, other any) bool {
	y, ok := other.(Shape)
	if !ok {
		return false
	}
	return x.Area() == y.Area()
}

// GreaterOrEqual reports whether x is not Less than other.
// It is false when other is not a Shape.
func GreaterOrEqual(x Shape, other any) bool {
	if _, ok := other.(Shape); !ok {
		return false
	}
	return !Less(x, other)
}

// Compare orders shapes by area, for use with slices.SortFunc.
func Compare(x, y Shape) int {
	return cmp.Compare(x.Area(), y.Area())
}

// Sum returns the sum of both areas.
func Sum(x Shape, other any) (float64, error) {
	y, ok := other.(Shape)
	if !ok {
		return 0, ErrNotApplicable
	}
	return x.Area() + y.Area(), nil
}

// Difference returns x's area minus other's area.
func Difference(x Shape, other any) (float64, error) {
	y, ok := other.(Shape)
	if !ok {
		return 0, ErrNotApplicable
	}
	return x.Area() - y.Area(), nil
}

// Mod returns the remainder of x's area divided by other's area.
// Areas are never negative, so the result has the sign of the divisor.
func Mod(x Shape, other any) (float64, error) {
	y, ok := other.(Shape)
	if !ok {
		return 0, ErrNotApplicable
	}
	d := y.Area()
	if d == 0 {
		return 0, ErrZeroArea
	}
	return math.Mod(x.Area(), d), nil
}
