package core

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testField(t *testing.T) *Field {
	t.Helper()
	field, err := NewField(big.NewInt(101))
	require.NoError(t, err)
	return field
}

func TestPolynomialDegree(t *testing.T) {
	field := testField(t)

	zero, err := NewPolynomial(field, nil)
	require.NoError(t, err)
	assert.Equal(t, -1, zero.Degree())

	// Trailing zero coefficients are trimmed
	trimmed, err := NewPolynomialFromInt64(field, []int64{3, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, trimmed.Degree())

	cubic, err := NewPolynomialFromInt64(field, []int64{6, 0, 2, 5})
	require.NoError(t, err)
	assert.Equal(t, 3, cubic.Degree())
}

func TestPolynomialEval(t *testing.T) {
	field := testField(t)

	// P(x) = 6 + 2x^2 + 5x^3
	poly, err := NewPolynomialFromInt64(field, []int64{6, 0, 2, 5})
	require.NoError(t, err)

	// P(2) = 6 + 8 + 40 = 54
	assert.Equal(t, int64(54), poly.Eval(field.NewElementFromInt64(2)).Big().Int64())
	assert.Equal(t, int64(6), poly.Eval(field.Zero()).Big().Int64())
}

func TestLagrangeInterpolation(t *testing.T) {
	field := testField(t)

	// Recover P(x) = 6 + 2x^2 + 5x^3 from four evaluations
	poly, err := NewPolynomialFromInt64(field, []int64{6, 0, 2, 5})
	require.NoError(t, err)

	points := make([]Point, 4)
	for i := range points {
		x := field.NewElementFromInt64(int64(i + 1))
		points[i] = NewPoint(x, poly.Eval(x))
	}

	interpolated, err := LagrangeInterpolation(points, field)
	require.NoError(t, err)
	assert.Equal(t, 3, interpolated.Degree())
	for degree := 0; degree <= 3; degree++ {
		assert.True(t, interpolated.Coefficient(degree).Equal(poly.Coefficient(degree)),
			"coefficient %d", degree)
	}
}

func TestLagrangeInterpolationConstant(t *testing.T) {
	field := testField(t)

	points := []Point{
		NewPoint(field.NewElementFromInt64(1), field.NewElementFromInt64(7)),
		NewPoint(field.NewElementFromInt64(2), field.NewElementFromInt64(7)),
	}
	poly, err := LagrangeInterpolation(points, field)
	require.NoError(t, err)
	assert.Equal(t, 0, poly.Degree())
}

func TestLagrangeInterpolationRejectsDuplicates(t *testing.T) {
	field := testField(t)

	points := []Point{
		NewPoint(field.NewElementFromInt64(1), field.NewElementFromInt64(7)),
		NewPoint(field.NewElementFromInt64(1), field.NewElementFromInt64(8)),
	}
	_, err := LagrangeInterpolation(points, field)
	assert.Error(t, err)

	_, err = LagrangeInterpolation(nil, field)
	assert.Error(t, err)
}

func TestAreColinear(t *testing.T) {
	field := testField(t)
	p := func(x, y int64) Point {
		return NewPoint(field.NewElementFromInt64(x), field.NewElementFromInt64(y))
	}

	// On the line y = 2x + 3
	assert.True(t, AreColinear(p(0, 3), p(1, 5), p(2, 7)))
	// Works modulo the field: 2*51 + 3 = 105 = 4 (mod 101)
	assert.True(t, AreColinear(p(0, 3), p(1, 5), p(51, 4)))
	// Vertical triples degenerate to collinear under the algebraic
	// form, both sides vanish
	assert.True(t, AreColinear(p(1, 1), p(1, 2), p(1, 3)))

	assert.False(t, AreColinear(p(0, 3), p(1, 5), p(2, 8)))
}
