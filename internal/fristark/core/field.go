package core

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
)

// Field represents a prime field with modular arithmetic operations.
// The modulus is supplied by the caller; the field is not tied to any
// particular prime.
type Field struct {
	modulus *big.Int
}

// FieldElement represents an element in the finite field
type FieldElement struct {
	field *Field
	value *big.Int
}

// NewField creates a new finite field with the given modulus
func NewField(modulus *big.Int) (*Field, error) {
	if modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("modulus must be greater than 2")
	}
	return &Field{modulus: new(big.Int).Set(modulus)}, nil
}

// NewFieldFromUint64 creates a new finite field with the given modulus
func NewFieldFromUint64(modulus uint64) (*Field, error) {
	return NewField(new(big.Int).SetUint64(modulus))
}

// Modulus returns the field modulus
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// WordSized reports whether the modulus fits in a machine word, which
// enables the uint64 fast path in hot loops.
func (f *Field) WordSized() bool {
	return f.modulus.IsUint64()
}

// NewElement creates a new field element from a big.Int
func (f *Field) NewElement(value *big.Int) *FieldElement {
	normalized := new(big.Int).Mod(value, f.modulus)
	return &FieldElement{
		field: f,
		value: normalized,
	}
}

// NewElementFromInt64 creates a new field element from an int64
func (f *Field) NewElementFromInt64(value int64) *FieldElement {
	return f.NewElement(big.NewInt(value))
}

// NewElementFromUint64 creates a new field element from a uint64
func (f *Field) NewElementFromUint64(value uint64) *FieldElement {
	return f.NewElement(new(big.Int).SetUint64(value))
}

// FromBytes interprets the given bytes as a big-endian unsigned integer
// and reduces it modulo the field modulus. Challenge derivation feeds
// the first 16 bytes of a transcript digest through this.
func (f *Field) FromBytes(bs []byte) *FieldElement {
	return f.NewElement(new(big.Int).SetBytes(bs))
}

// RandomElement generates a random field element
func (f *Field) RandomElement() (*FieldElement, error) {
	value, err := rand.Int(rand.Reader, f.modulus)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random element: %w", err)
	}
	return f.NewElement(value), nil
}

// Zero returns the additive identity
func (f *Field) Zero() *FieldElement {
	return f.NewElement(big.NewInt(0))
}

// One returns the multiplicative identity
func (f *Field) One() *FieldElement {
	return f.NewElement(big.NewInt(1))
}

// PrimitiveNthRoot finds a primitive n-th root of unity in the field.
// n must be a power of two dividing modulus-1. Candidates k = 2, 3, ...
// are raised to (modulus-1)/n until one of order exactly n is found,
// which for a two-power n means omega^(n/2) = -1.
func (f *Field) PrimitiveNthRoot(n uint64) (*FieldElement, error) {
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("subgroup order must be a power of two, got %d", n)
	}
	if n == 1 {
		return f.One(), nil
	}
	order := new(big.Int).SetUint64(n)
	groupOrder := new(big.Int).Sub(f.modulus, big.NewInt(1))
	if new(big.Int).Mod(groupOrder, order).Sign() != 0 {
		return nil, fmt.Errorf("%d does not divide the multiplicative group order", n)
	}
	exponent := new(big.Int).Div(groupOrder, order)
	minusOne := new(big.Int).Sub(f.modulus, big.NewInt(1))
	half := new(big.Int).SetUint64(n / 2)

	for k := int64(2); ; k++ {
		candidate := new(big.Int).Exp(big.NewInt(k), exponent, f.modulus)
		if candidate.Cmp(big.NewInt(1)) == 0 {
			continue
		}
		if new(big.Int).Exp(candidate, half, f.modulus).Cmp(minusOne) == 0 {
			return f.NewElement(candidate), nil
		}
		if big.NewInt(k).Cmp(f.modulus) >= 0 {
			return nil, fmt.Errorf("no primitive root of order %d found", n)
		}
	}
}

// PowerSeries returns the first n powers of omega: [1, omega, omega^2, ...].
// This is the evaluation of P(x) = x on the order-n subgroup generated
// by omega.
func (f *Field) PowerSeries(omega *FieldElement, n int) []*FieldElement {
	series := make([]*FieldElement, n)
	power := f.One()
	for i := 0; i < n; i++ {
		series[i] = power
		power = power.Mul(omega)
	}
	return series
}

// Big returns the value as a big.Int
func (fe *FieldElement) Big() *big.Int {
	return new(big.Int).Set(fe.value)
}

// Field returns the field this element belongs to
func (fe *FieldElement) Field() *Field {
	return fe.field
}

// Add performs field addition
func (fe *FieldElement) Add(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot add elements from different fields")
	}
	result := new(big.Int).Add(fe.value, other.value)
	return fe.field.NewElement(result)
}

// Sub performs field subtraction
func (fe *FieldElement) Sub(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot subtract elements from different fields")
	}
	result := new(big.Int).Sub(fe.value, other.value)
	return fe.field.NewElement(result)
}

// Neg returns the additive inverse (negation) of the field element
func (fe *FieldElement) Neg() *FieldElement {
	result := new(big.Int).Neg(fe.value)
	return fe.field.NewElement(result)
}

// Mul performs field multiplication
func (fe *FieldElement) Mul(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot multiply elements from different fields")
	}
	result := new(big.Int).Mul(fe.value, other.value)
	return fe.field.NewElement(result)
}

// Div performs field division (multiplication by inverse)
func (fe *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	if !fe.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot divide elements from different fields")
	}
	inv, err := other.Inv()
	if err != nil {
		return nil, fmt.Errorf("division failed: %w", err)
	}
	return fe.Mul(inv), nil
}

// Inv computes the multiplicative inverse via the extended Euclidean
// algorithm
func (fe *FieldElement) Inv() (*FieldElement, error) {
	if fe.value.Sign() == 0 {
		return nil, fmt.Errorf("cannot compute inverse of zero")
	}

	gcd := new(big.Int)
	x := new(big.Int)
	y := new(big.Int)
	gcd.GCD(x, y, fe.value, fe.field.modulus)

	if gcd.Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("inverse does not exist")
	}

	if x.Sign() < 0 {
		x.Add(x, fe.field.modulus)
	}

	return fe.field.NewElement(x), nil
}

// Exp performs field exponentiation
func (fe *FieldElement) Exp(exponent *big.Int) *FieldElement {
	result := new(big.Int).Exp(fe.value, exponent, fe.field.modulus)
	return fe.field.NewElement(result)
}

// ExpInt64 performs field exponentiation with an int64 exponent
func (fe *FieldElement) ExpInt64(exponent int64) *FieldElement {
	return fe.Exp(big.NewInt(exponent))
}

// Square computes the square of the field element
func (fe *FieldElement) Square() *FieldElement {
	return fe.Mul(fe)
}

// Equal checks if two field elements are equal
func (fe *FieldElement) Equal(other *FieldElement) bool {
	if !fe.field.Equals(other.field) {
		return false
	}
	return fe.value.Cmp(other.value) == 0
}

// IsZero checks if the element is zero
func (fe *FieldElement) IsZero() bool {
	return fe.value.Sign() == 0
}

// IsOne checks if the element is one
func (fe *FieldElement) IsOne() bool {
	return fe.value.Cmp(big.NewInt(1)) == 0
}

// String returns a string representation of the field element
func (fe *FieldElement) String() string {
	return fe.value.String()
}

// helper method to check if two fields are equal
func (f *Field) Equals(other *Field) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

// EncodeValue serializes a canonical field-element value as a 16-bit
// little-endian byte length followed by the big-endian magnitude bytes.
// Zero encodes as a zero length with no payload. The same form is used
// for the primitive root in the proof header and for leaf values inside
// authentication paths.
func EncodeValue(value *big.Int) []byte {
	magnitude := value.Bytes()
	encoded := make([]byte, 2+len(magnitude))
	binary.LittleEndian.PutUint16(encoded[0:2], uint16(len(magnitude)))
	copy(encoded[2:], magnitude)
	return encoded
}

// DecodeValue parses a value written by EncodeValue from the front of
// buf and returns the value and the number of bytes consumed.
func DecodeValue(buf []byte) (*big.Int, int, error) {
	if len(buf) < 2 {
		return nil, 0, fmt.Errorf("value encoding truncated: %d bytes", len(buf))
	}
	length := int(binary.LittleEndian.Uint16(buf[0:2]))
	if len(buf) < 2+length {
		return nil, 0, fmt.Errorf("value encoding truncated: want %d bytes, have %d", 2+length, len(buf))
	}
	return new(big.Int).SetBytes(buf[2 : 2+length]), 2 + length, nil
}

// Default field, over the same prime as utils.DefaultConfig and the
// command-line driver's default modulus
var (
	// DefaultPrimeField is the Proth prime 3*2^30 + 1, which has
	// two-power subgroups up to order 2^30
	DefaultPrimeField, _ = NewFieldFromUint64(3221225473)
)
