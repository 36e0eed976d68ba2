package shapes

import "fmt"

// Trapezoid is an immutable trapezoid. The zero value has area 0.
type Trapezoid struct {
	bigBase   int
	smallBase int
	height    int
}

// NewTrapezoid builds a trapezoid from exactly three non-negative values.
// The largest becomes the big base, the smallest the small base and the
// remaining one the height.
func NewTrapezoid(values ...int) (Trapezoid, error) {
	if err := checkValues(KindTrapezoid, values); err != nil {
		return Trapezoid{}, err
	}

	big, small, sum := values[0], values[0], 0
	for _, v := range values {
		big = max(big, v)
		small = min(small, v)
		sum += v
	}

	return Trapezoid{
		bigBase:   big,
		smallBase: small,
		height:    sum - big - small,
	}, nil
}

// BigBase returns the larger base.
func (t Trapezoid) BigBase() int { return t.bigBase }

// SmallBase returns the smaller base.
func (t Trapezoid) SmallBase() int { return t.smallBase }

// Height returns the height.
func (t Trapezoid) Height() int { return t.height }

// Kind returns KindTrapezoid.
func (t Trapezoid) Kind() Kind { return KindTrapezoid }

// Area returns (big base + small base) / 2 * height.
func (t Trapezoid) Area() float64 {
	return float64(t.bigBase+t.smallBase) / 2 * float64(t.height)
}

// String describes the trapezoid by its bases and height.
func (t Trapezoid) String() string {
	return fmt.Sprintf("Trapezoid larger base -> %d, Smaller base -> %d, Height -> %d",
		t.bigBase, t.smallBase, t.height)
}

// Rectangle is an immutable rectangle. The zero value has area 0.
type Rectangle struct {
	width  int
	height int
}

// NewRectangle builds a rectangle from exactly two non-negative values,
// width then height.
func NewRectangle(values ...int) (Rectangle, error) {
	if err := checkValues(KindRectangle, values); err != nil {
		return Rectangle{}, err
	}
	return Rectangle{width: values[0], height: values[1]}, nil
}

// Width returns the width.
func (r Rectangle) Width() int { return r.width }

// Height returns the height.
func (r Rectangle) Height() int { return r.height }

// Kind returns KindRectangle.
func (r Rectangle) Kind() Kind { return KindRectangle }

// Area returns width * height.
func (r Rectangle) Area() float64 {
	return float64(r.width) * float64(r.height)
}

// String describes the rectangle by its width and height.
func (r Rectangle) String() string {
	return fmt.Sprintf("Rectangle width -> %d, height -> %d", r.width, r.height)
}

// Square is an immutable square. The zero value has area 0.
type Square struct {
	side int
}

// NewSquare builds a square with the given non-negative side.
func NewSquare(side int) (Square, error) {
	if err := checkValues(KindSquare, []int{side}); err != nil {
		return Square{}, err
	}
	return Square{side: side}, nil
}

// Side returns the side length.
func (s Square) Side() int { return s.side }

// Kind returns KindSquare.
func (s Square) Kind() Kind { return KindSquare }

// Area returns side squared.
func (s Square) Area() float64 {
	return float64(s.side) * float64(s.side)
}

// String describes the square by its side.
func (s Square) String() string {
	return fmt.Sprintf("Square side -> %d", s.side)
}
