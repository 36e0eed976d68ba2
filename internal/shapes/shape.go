// Package shapes defines the trapezoid, rectangle and square value types and
// their area calculations.
//
// The three types are independent values that share only the Shape
// capability. A Params value is the tagged form of a shape's inputs and is
// what generators produce and executors consume.
package shapes

import (
	"errors"
	"fmt"
)

// Kind identifies a shape type.
type Kind string

const (
	// KindTrapezoid is built from three values: the two bases and the height.
	KindTrapezoid Kind = "trapezoid"

	// KindRectangle is built from two values: width and height.
	KindRectangle Kind = "rectangle"

	// KindSquare is built from a single side.
	KindSquare Kind = "square"
)

// Kinds returns all shape kinds in their canonical order.
func Kinds() []Kind {
	return []Kind{KindTrapezoid, KindRectangle, KindSquare}
}

// Arity returns the number of values needed to build a shape of this kind.
// Unknown kinds have arity 0.
func (k Kind) Arity() int {
	switch k {
	case KindTrapezoid:
		return 3
	case KindRectangle:
		return 2
	case KindSquare:
		return 1
	default:
		return 0
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k.Arity() > 0
}

// Shape is anything with an area.
type Shape interface {
	Area() float64
	Kind() Kind
	fmt.Stringer
}

var (
	// ErrInvalidArgument is matched by every *ArgumentError.
	ErrInvalidArgument = errors.New("invalid shape argument")

	// ErrUnknownKind is returned when Params carries a kind this package does not define.
	ErrUnknownKind = errors.New("unknown shape kind")
)

// ArgumentError describes a constructor call with the wrong number of values
// or a negative value.
type ArgumentError struct {
	Kind    Kind
	Want    int
	Got     int
	Message string
}

func (e *ArgumentError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: expected %d values, got %d", e.Kind, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrInvalidArgument) hold for argument errors.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func checkValues(kind Kind, values []int) error {
	if len(values) != kind.Arity() {
		return &ArgumentError{Kind: kind, Want: kind.Arity(), Got: len(values)}
	}
	for i, v := range values {
		if v < 0 {
			return &ArgumentError{
				Kind:    kind,
				Want:    kind.Arity(),
				Got:     len(values),
				Message: fmt.Sprintf("value %d is negative (%d)", i, v),
			}
		}
	}
	return nil
}

// Params is the tagged input tuple for one shape.
type Params struct {
	Kind   Kind  `json:"kind"`
	Values []int `json:"values"`
}

// Build constructs the shape described by p.
func (p Params) Build() (Shape, error) {
	switch p.Kind {
	case KindTrapezoid:
		return NewTrapezoid(p.Values...)
	case KindRectangle:
		return NewRectangle(p.Values...)
	case KindSquare:
		if err := checkValues(KindSquare, p.Values); err != nil {
			return nil, err
		}
		return NewSquare(p.Values[0])
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
	}
}

// Area builds the shape described by p and returns its area.
func Area(p Params) (float64, error) {
	s, err := p.Build()
	if err != nil {
		return 0, err
	}
	return s.Area(), nil
}
