package core

import (
	"fmt"
	"strings"
)

// Polynomial represents a polynomial with coefficients in a finite
// field, lowest degree first. Trailing zero coefficients are trimmed,
// so the zero polynomial has no coefficients and degree -1.
type Polynomial struct {
	field        *Field
	coefficients []*FieldElement
}

// NewPolynomial creates a new polynomial from field elements
func NewPolynomial(field *Field, coefficients []*FieldElement) (*Polynomial, error) {
	for i, c := range coefficients {
		if c == nil {
			return nil, fmt.Errorf("coefficient %d is nil", i)
		}
		if !c.Field().Equals(field) {
			return nil, fmt.Errorf("coefficient %d is from a different field", i)
		}
	}

	end := len(coefficients)
	for end > 0 && coefficients[end-1].IsZero() {
		end--
	}

	trimmed := make([]*FieldElement, end)
	copy(trimmed, coefficients[:end])
	return &Polynomial{field: field, coefficients: trimmed}, nil
}

// NewPolynomialFromInt64 creates a polynomial from int64 coefficients
func NewPolynomialFromInt64(field *Field, coefficients []int64) (*Polynomial, error) {
	elements := make([]*FieldElement, len(coefficients))
	for i, c := range coefficients {
		elements[i] = field.NewElementFromInt64(c)
	}
	return NewPolynomial(field, elements)
}

// Degree returns the degree of the polynomial, -1 for the zero
// polynomial
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Field returns the field the polynomial is defined over
func (p *Polynomial) Field() *Field {
	return p.field
}

// Coefficient returns the coefficient of the given degree
func (p *Polynomial) Coefficient(degree int) *FieldElement {
	if degree < 0 || degree >= len(p.coefficients) {
		return p.field.Zero()
	}
	return p.coefficients[degree]
}

// Eval evaluates the polynomial at the given point using Horner's rule
func (p *Polynomial) Eval(point *FieldElement) *FieldElement {
	result := p.field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(point).Add(p.coefficients[i])
	}
	return result
}

// Add adds two polynomials
func (p *Polynomial) Add(other *Polynomial) (*Polynomial, error) {
	if !p.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot add polynomials over different fields")
	}

	size := len(p.coefficients)
	if len(other.coefficients) > size {
		size = len(other.coefficients)
	}

	sum := make([]*FieldElement, size)
	for i := range sum {
		sum[i] = p.Coefficient(i).Add(other.Coefficient(i))
	}
	return NewPolynomial(p.field, sum)
}

// Mul multiplies two polynomials
func (p *Polynomial) Mul(other *Polynomial) (*Polynomial, error) {
	if !p.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot multiply polynomials over different fields")
	}
	if len(p.coefficients) == 0 || len(other.coefficients) == 0 {
		return NewPolynomial(p.field, nil)
	}

	product := make([]*FieldElement, len(p.coefficients)+len(other.coefficients)-1)
	for i := range product {
		product[i] = p.field.Zero()
	}
	for i, a := range p.coefficients {
		for j, b := range other.coefficients {
			product[i+j] = product[i+j].Add(a.Mul(b))
		}
	}
	return NewPolynomial(p.field, product)
}

// MulScalar multiplies the polynomial by a scalar
func (p *Polynomial) MulScalar(scalar *FieldElement) (*Polynomial, error) {
	scaled := make([]*FieldElement, len(p.coefficients))
	for i, c := range p.coefficients {
		scaled[i] = c.Mul(scalar)
	}
	return NewPolynomial(p.field, scaled)
}

// String returns a string representation of the polynomial
func (p *Polynomial) String() string {
	if len(p.coefficients) == 0 {
		return "0"
	}
	terms := make([]string, 0, len(p.coefficients))
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		if p.coefficients[i].IsZero() {
			continue
		}
		switch i {
		case 0:
			terms = append(terms, p.coefficients[i].String())
		case 1:
			terms = append(terms, fmt.Sprintf("%s*x", p.coefficients[i]))
		default:
			terms = append(terms, fmt.Sprintf("%s*x^%d", p.coefficients[i], i))
		}
	}
	return strings.Join(terms, " + ")
}

// Point represents a point for polynomial interpolation
type Point struct {
	X *FieldElement
	Y *FieldElement
}

// NewPoint creates a new point
func NewPoint(x, y *FieldElement) Point {
	return Point{X: x, Y: y}
}

// LagrangeInterpolation returns the unique polynomial of degree less
// than len(points) passing through all given points. The x-coordinates
// must be distinct.
func LagrangeInterpolation(points []Point, field *Field) (*Polynomial, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("need at least one point for interpolation")
	}
	for i, point := range points {
		if !point.X.Field().Equals(field) || !point.Y.Field().Equals(field) {
			return nil, fmt.Errorf("point %d is from a different field", i)
		}
	}

	result, err := NewPolynomial(field, nil)
	if err != nil {
		return nil, err
	}

	for i, point := range points {
		// Compute the Lagrange basis polynomial L_i(x)
		basis, err := NewPolynomialFromInt64(field, []int64{1})
		if err != nil {
			return nil, err
		}

		for j, otherPoint := range points {
			if i == j {
				continue
			}

			denominator := point.X.Sub(otherPoint.X)
			if denominator.IsZero() {
				return nil, fmt.Errorf("duplicate x-coordinates found")
			}
			invDenominator, err := denominator.Inv()
			if err != nil {
				return nil, err
			}

			// (x - x_j) / (x_i - x_j)
			factor, err := NewPolynomial(field, []*FieldElement{
				otherPoint.X.Neg().Mul(invDenominator),
				invDenominator,
			})
			if err != nil {
				return nil, err
			}

			basis, err = basis.Mul(factor)
			if err != nil {
				return nil, err
			}
		}

		term, err := basis.MulScalar(point.Y)
		if err != nil {
			return nil, err
		}
		result, err = result.Add(term)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// AreColinear checks whether three points lie on a common line. The
// check is algebraic, (y2-y1)(x3-x1) = (y3-y1)(x2-x1), so no division
// is performed.
func AreColinear(p1, p2, p3 Point) bool {
	lhs := p2.Y.Sub(p1.Y).Mul(p3.X.Sub(p1.X))
	rhs := p3.Y.Sub(p1.Y).Mul(p2.X.Sub(p1.X))
	return lhs.Equal(rhs)
}
