package core

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordArithmeticMatchesBigInt(t *testing.T) {
	moduli := []uint64{
		3,
		101,
		65537,
		3221225473,
		18446744073709551557, // largest prime below 2^64
	}

	rng := rand.New(rand.NewSource(7))
	for _, m := range moduli {
		modulus := new(big.Int).SetUint64(m)
		for i := 0; i < 64; i++ {
			a := rng.Uint64() % m
			b := rng.Uint64() % m
			bigA := new(big.Int).SetUint64(a)
			bigB := new(big.Int).SetUint64(b)

			wantAdd := new(big.Int).Add(bigA, bigB)
			wantAdd.Mod(wantAdd, modulus)
			assert.Equal(t, wantAdd.Uint64(), AddMod64(a, b, m), "add mod %d", m)

			wantSub := new(big.Int).Sub(bigA, bigB)
			wantSub.Mod(wantSub, modulus)
			assert.Equal(t, wantSub.Uint64(), SubMod64(a, b, m), "sub mod %d", m)

			wantMul := new(big.Int).Mul(bigA, bigB)
			wantMul.Mod(wantMul, modulus)
			assert.Equal(t, wantMul.Uint64(), MulMod64(a, b, m), "mul mod %d", m)
		}
	}
}

func TestWordArithmeticBoundaries(t *testing.T) {
	m := uint64(18446744073709551557)
	assert.Equal(t, uint64(0), AddMod64(m-1, 1, m))
	assert.Equal(t, m-2, AddMod64(m-1, m-1, m))
	assert.Equal(t, m-1, SubMod64(0, 1, m))
	assert.Equal(t, uint64(1), MulMod64(m-1, m-1, m))
}
