package protocols

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fristark/fristark/internal/fristark/core"
	"github.com/fristark/fristark/internal/fristark/utils"
)

// evaluatePolynomial returns the codeword of the polynomial with the
// given coefficients (lowest degree first) on the order-n subgroup
// generated by omega.
func evaluatePolynomial(t *testing.T, field *core.Field, coefficients []int64, omega *core.FieldElement, n int) []*big.Int {
	t.Helper()
	poly, err := core.NewPolynomialFromInt64(field, coefficients)
	require.NoError(t, err)

	codeword := make([]*big.Int, n)
	for i, x := range field.PowerSeries(omega, n) {
		codeword[i] = poly.Eval(x).Big()
	}
	return codeword
}

func TestProveVerifySmallField(t *testing.T) {
	// P(x) = x over the order-4 subgroup of F_101
	modulus := big.NewInt(101)
	field, err := core.NewField(modulus)
	require.NoError(t, err)

	omega, err := field.PrimitiveNthRoot(4)
	require.NoError(t, err)
	require.Equal(t, int64(10), omega.Big().Int64())

	codeword := make([]*big.Int, 4)
	for i, x := range field.PowerSeries(omega, 4) {
		codeword[i] = x.Big()
	}

	transcript := utils.NewTranscript(utils.HashBlake3)
	proof, err := Prove(codeword, modulus, 1, 2, transcript, omega.Big())
	require.NoError(t, err)

	assert.Equal(t, uint32(1), proof.MaxDegree)
	assert.Equal(t, uint32(0), proof.MaxDegreeOfLastRound)
	assert.Equal(t, uint32(4), proof.CodewordSize)
	assert.Equal(t, uint8(1), proof.RoundsCount)
	assert.Equal(t, uint32(2), proof.S)
	assert.Equal(t, int64(10), proof.PrimitiveRootOfUnity.Int64())
	assert.Len(t, proof.MerkleRoots, 2)
	assert.Len(t, proof.ABProofs, 1)
	assert.Len(t, proof.CProofs, 1)

	require.NoError(t, Verify(proof, modulus))
}

func TestProveVerifyMediumField(t *testing.T) {
	// P(x) = x over the order-16 subgroup of F_193
	modulus := big.NewInt(193)
	field, err := core.NewField(modulus)
	require.NoError(t, err)

	omega, err := field.PrimitiveNthRoot(16)
	require.NoError(t, err)
	require.Equal(t, int64(64), omega.Big().Int64())

	expected := []int64{1, 64, 43, 50, 112, 27, 184, 3, 192, 129, 150, 143, 81, 166, 9, 190}
	codeword := make([]*big.Int, 16)
	for i, x := range field.PowerSeries(omega, 16) {
		codeword[i] = x.Big()
		assert.Equal(t, expected[i], x.Big().Int64(), "power series entry %d", i)
	}

	transcript := utils.NewTranscript(utils.HashBlake3)
	proof, err := Prove(codeword, modulus, 1, 2, transcript, omega.Big())
	require.NoError(t, err)
	require.NoError(t, Verify(proof, modulus))
}

func TestProveVerifyDegreeThree(t *testing.T) {
	// P(x) = 5x^3 + 2x^2 + 6 over the order-16 subgroup of F_10177
	modulus := big.NewInt(10177)
	field, err := core.NewField(modulus)
	require.NoError(t, err)

	omega, err := field.PrimitiveNthRoot(16)
	require.NoError(t, err)

	codeword := evaluatePolynomial(t, field, []int64{6, 0, 2, 5}, omega, 16)

	transcript := utils.NewTranscript(utils.HashBlake3)
	proof, err := Prove(codeword, modulus, 3, 6, transcript, omega.Big())
	require.NoError(t, err)
	assert.Equal(t, uint8(1), proof.RoundsCount)
	assert.Equal(t, uint32(1), proof.MaxDegreeOfLastRound)
	require.NoError(t, Verify(proof, modulus))
}

func TestTamperedCodewordFailsDegreeCheck(t *testing.T) {
	// Same setup as TestProveVerifyDegreeThree, but the codeword is
	// perturbed in enough folding columns that every 6-of-8 sample
	// of the final layer sees an off-curve value
	modulus := big.NewInt(10177)
	field, err := core.NewField(modulus)
	require.NoError(t, err)

	omega, err := field.PrimitiveNthRoot(16)
	require.NoError(t, err)

	codeword := evaluatePolynomial(t, field, []int64{6, 0, 2, 5}, omega, 16)
	for _, i := range []int{1, 3, 5} {
		codeword[i] = new(big.Int).Add(codeword[i], big.NewInt(1))
		codeword[i+8] = new(big.Int).Add(codeword[i+8], big.NewInt(1))
	}

	transcript := utils.NewTranscript(utils.HashBlake3)
	proof, err := Prove(codeword, modulus, 3, 6, transcript, omega.Big())
	require.NoError(t, err)

	err = Verify(proof, modulus)
	assert.True(t, errors.Is(err, &ValidationError{Code: LastIterationTooHighDegree}), "got %v", err)
}

func TestWrongDegreeAssertionRejected(t *testing.T) {
	// A true degree-3 codeword asserted as degree 1
	modulus := big.NewInt(10177)
	field, err := core.NewField(modulus)
	require.NoError(t, err)

	omega, err := field.PrimitiveNthRoot(16)
	require.NoError(t, err)

	codeword := evaluatePolynomial(t, field, []int64{6, 0, 2, 5}, omega, 16)

	transcript := utils.NewTranscript(utils.HashBlake3)
	proof, err := Prove(codeword, modulus, 1, 6, transcript, omega.Big())
	require.NoError(t, err)

	err = Verify(proof, modulus)
	assert.True(t, errors.Is(err, &ValidationError{Code: LastIterationTooHighDegree}), "got %v", err)
}

func TestTamperedLeafValueFailsMerkleCheck(t *testing.T) {
	modulus := big.NewInt(101)
	field, err := core.NewField(modulus)
	require.NoError(t, err)

	omega, err := field.PrimitiveNthRoot(4)
	require.NoError(t, err)

	codeword := make([]*big.Int, 4)
	for i, x := range field.PowerSeries(omega, 4) {
		codeword[i] = x.Big()
	}

	transcript := utils.NewTranscript(utils.HashBlake3)
	proof, err := Prove(codeword, modulus, 1, 2, transcript, omega.Big())
	require.NoError(t, err)

	tampered := new(big.Int).Add(proof.ABProofs[0][0].Value, big.NewInt(1))
	proof.ABProofs[0][0].Value = tampered.Mod(tampered, modulus)

	err = Verify(proof, modulus)
	assert.True(t, errors.Is(err, &ValidationError{Code: BadMerkleProof}), "got %v", err)
}

func TestProveVerifyLargeCodeword(t *testing.T) {
	// Random degree-1023 polynomial over F_65537 on a 16384-point
	// domain, word-sized fast path throughout
	modulus := big.NewInt(65537)
	field, err := core.NewField(modulus)
	require.NoError(t, err)

	omega, err := field.PrimitiveNthRoot(16384)
	require.NoError(t, err)
	require.Equal(t, int64(81), omega.Big().Int64())

	rng := rand.New(rand.NewSource(42))
	coefficients := make([]uint64, 1024)
	for i := range coefficients {
		coefficients[i] = uint64(rng.Intn(65537))
	}

	// Horner evaluation on machine words; the big.Int path would
	// dominate the test runtime at this size
	q := modulus.Uint64()
	omegaWord := omega.Big().Uint64()
	codeword := make([]*big.Int, 16384)
	x := uint64(1)
	for i := range codeword {
		y := uint64(0)
		for j := len(coefficients) - 1; j >= 0; j-- {
			y = core.AddMod64(core.MulMod64(y, x, q), coefficients[j], q)
		}
		codeword[i] = new(big.Int).SetUint64(y)
		x = core.MulMod64(x, omegaWord, q)
	}

	transcript := utils.NewTranscript(utils.HashBlake3)
	proof, err := Prove(codeword, modulus, 1023, 20, transcript, omega.Big())
	require.NoError(t, err)
	assert.Equal(t, uint8(9), proof.RoundsCount)
	require.NoError(t, Verify(proof, modulus))

	// Corrupt a run of 50 consecutive entries and prove again; the
	// damage survives every folding round
	for i := 100; i < 150; i++ {
		codeword[i] = new(big.Int).Add(codeword[i], big.NewInt(1))
	}
	tamperedTranscript := utils.NewTranscript(utils.HashBlake3)
	tamperedProof, err := Prove(codeword, modulus, 1023, 20, tamperedTranscript, omega.Big())
	require.NoError(t, err)

	err = Verify(tamperedProof, modulus)
	assert.True(t, errors.Is(err, &ValidationError{Code: LastIterationTooHighDegree}), "got %v", err)
}

func TestProveRejectsBadMaxDegree(t *testing.T) {
	modulus := big.NewInt(101)
	field, err := core.NewField(modulus)
	require.NoError(t, err)

	omega, err := field.PrimitiveNthRoot(4)
	require.NoError(t, err)

	codeword := make([]*big.Int, 4)
	for i, x := range field.PowerSeries(omega, 4) {
		codeword[i] = x.Big()
	}

	// max degree 2 means a degree bound of 3, not a power of two
	transcript := utils.NewTranscript(utils.HashBlake3)
	_, err = Prove(codeword, modulus, 2, 2, transcript, omega.Big())
	assert.True(t, errors.Is(err, &ProveError{Code: BadMaxDegreeValue}), "got %v", err)
}

func TestProveRejectsExhaustedParameters(t *testing.T) {
	modulus := big.NewInt(3221225473)
	field, err := core.NewField(modulus)
	require.NoError(t, err)

	omega, err := field.PrimitiveNthRoot(128)
	require.NoError(t, err)

	codeword := evaluatePolynomial(t, field, []int64{1, 2, 3}, omega, 128)

	// Expansion factor 2 against 128 checks misses every round
	transcript := utils.NewTranscript(utils.HashBlake3)
	_, err = Prove(codeword, modulus, 63, 128, transcript, omega.Big())
	assert.True(t, errors.Is(err, &ProveError{Code: NonPositiveRoundCount}), "got %v", err)
}
