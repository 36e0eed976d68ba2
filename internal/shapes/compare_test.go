package shapes

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTrapezoid(t *testing.T, values ...int) Trapezoid {
	t.Helper()
	tr, err := NewTrapezoid(values...)
	require.NoError(t, err)
	return tr
}

func TestComparisons(t *testing.T) {
	small := mustTrapezoid(t, 10, 4, 6) // 42
	rect, err := NewRectangle(6, 7)    // 42
	require.NoError(t, err)
	sq, err := NewSquare(7) // 49
	require.NoError(t, err)

	assert.True(t, Less(small, sq))
	assert.False(t, Less(sq, small))
	assert.False(t, Less(small, rect))

	assert.True(t, Equal(small, rect), "shapes of different kinds compare by area")
	assert.False(t, Equal(small, sq))

	assert.True(t, GreaterOrEqual(sq, small))
	assert.True(t, GreaterOrEqual(rect, small))
	assert.False(t, GreaterOrEqual(small, sq))

	assert.Equal(t, -1, Compare(small, sq))
	assert.Equal(t, 0, Compare(small, rect))
	assert.Equal(t, 1, Compare(sq, rect))
}

func TestComparisonsWithNonShape(t *testing.T) {
	sq, err := NewSquare(3)
	require.NoError(t, err)

	for _, other := range []any{nil, 9, 9.0, "square", []int{3}} {
		assert.False(t, Less(sq, other), "Less(%v)", other)
		assert.False(t, Equal(sq, other), "Equal(%v)", other)
		assert.False(t, GreaterOrEqual(sq, other), "GreaterOrEqual(%v)", other)
	}
}

func TestAreaArithmetic(t *testing.T) {
	tr := mustTrapezoid(t, 10, 4, 6) // 42
	sq, err := NewSquare(4)         // 16
	require.NoError(t, err)

	sum, err := Sum(tr, sq)
	require.NoError(t, err)
	assert.Equal(t, 58.0, sum)

	diff, err := Difference(tr, sq)
	require.NoError(t, err)
	assert.Equal(t, 26.0, diff)

	mod, err := Mod(tr, sq)
	require.NoError(t, err)
	assert.Equal(t, 10.0, mod)
}

func TestAreaArithmeticWithNonShape(t *testing.T) {
	sq, err := NewSquare(4)
	require.NoError(t, err)

	_, err = Sum(sq, 16)
	assert.ErrorIs(t, err, ErrNotApplicable)
	_, err = Difference(sq, "16")
	assert.ErrorIs(t, err, ErrNotApplicable)
	_, err = Mod(sq, nil)
	assert.ErrorIs(t, err, ErrNotApplicable)
}

func TestModByZeroArea(t *testing.T) {
	sq, err := NewSquare(4)
	require.NoError(t, err)

	_, err = Mod(sq, Square{})
	assert.ErrorIs(t, err, ErrZeroArea)
}

func TestSortByArea(t *testing.T) {
	a, _ := NewSquare(5)
	b, _ := NewRectangle(2, 3)
	c := mustTrapezoid(t, 4, 2, 3)

	list := []Shape{a, b, c}
	slices.SortFunc(list, Compare)

	assert.Equal(t, []float64{6, 9, 25}, []float64{list[0].Area(), list[1].Area(), list[2].Area()})
}
