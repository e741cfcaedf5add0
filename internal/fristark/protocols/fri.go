package protocols

import (
	"fmt"
	"math/big"

	"github.com/fristark/fristark/internal/fristark/core"
	"github.com/fristark/fristark/internal/fristark/utils"
)

// Prove generates a low-degree proof for the given codeword, the
// evaluation of a claimed degree-<=maxDegree polynomial on the
// order-N subgroup generated by primitiveRootOfUnity. The proof bytes
// are appended to the caller's transcript, which doubles as the
// Fiat-Shamir oracle: any bytes already in it bind the challenges, so
// the call composes with an outer protocol.
//
// The commit phase alternates challenge derivation and codeword
// folding, committing every intermediate layer to a Merkle tree. The
// query phase then opens both trees of every layer pair at positions
// derived from the transcript snapshot taken after the last root, and
// appends the authentication paths.
func Prove(codeword []*big.Int, modulus *big.Int, maxDegree uint32, colinearityChecks int,
	transcript *utils.Transcript, primitiveRootOfUnity *big.Int) (*LowDegreeProof, error) {

	maxDegreePlusOne := uint64(maxDegree) + 1
	if maxDegreePlusOne&(maxDegreePlusOne-1) != 0 {
		return nil, newProveError(BadMaxDegreeValue, "max degree + 1 must be a power of two, got %d", maxDegreePlusOne)
	}
	if !utils.IsPowerOfTwo(len(codeword)) {
		return nil, fmt.Errorf("codeword length must be a power of two, got %d", len(codeword))
	}
	if colinearityChecks <= 0 || colinearityChecks > utils.MaxColinearityChecks {
		return nil, fmt.Errorf("colinearity checks must be in [1, %d], got %d",
			utils.MaxColinearityChecks, colinearityChecks)
	}
	if transcript == nil {
		return nil, fmt.Errorf("transcript must not be nil")
	}

	field, err := core.NewField(modulus)
	if err != nil {
		return nil, err
	}

	// Canonical representatives; the fold loop and the Merkle leaf
	// encoding both rely on values in [0, q)
	currentCodeword := make([]*big.Int, len(codeword))
	for i, value := range codeword {
		currentCodeword[i] = new(big.Int).Mod(value, modulus)
	}
	omega := new(big.Int).Mod(primitiveRootOfUnity, modulus)

	// Parameter header: codeword size, degree bound, query budget,
	// then the length-prefixed primitive root
	transcript.AppendUint32(uint32(len(codeword)))
	transcript.AppendUint32(maxDegree)
	transcript.AppendUint32(uint32(colinearityChecks))
	transcript.Append(core.EncodeValue(omega))

	tree, err := core.NewMerkleTree(currentCodeword)
	if err != nil {
		return nil, err
	}
	trees := []*core.MerkleTree{tree}
	root := tree.Root()
	transcript.Append(root[:])

	roundsCount, maxDegreeOfLastRound := GetRoundsCount(uint32(len(codeword)), maxDegree, uint32(colinearityChecks))
	if roundsCount < 1 {
		return nil, newProveError(NonPositiveRoundCount,
			"parameters (%d, %d, %d) admit no folding round", len(codeword), maxDegree, colinearityChecks)
	}

	inverseOfTwo, err := field.NewElementFromInt64(2).Inv()
	if err != nil {
		return nil, err
	}

	// Commit phase
	workingRoot := field.NewElement(omega)
	challengeHashPreimages := make([][]byte, 0, roundsCount)
	for round := 0; round < roundsCount; round++ {
		preimage := transcript.Snapshot()
		challengeHashPreimages = append(challengeHashPreimages, preimage)
		digest, err := utils.Digest(utils.HashBlake3, preimage)
		if err != nil {
			return nil, err
		}
		challenge := field.FromBytes(digest[0:16])

		currentCodeword, err = foldCodeword(currentCodeword, field, challenge, workingRoot, inverseOfTwo)
		if err != nil {
			return nil, err
		}

		tree, err = core.NewMerkleTree(currentCodeword)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
		root = tree.Root()
		transcript.Append(root[:])

		workingRoot = workingRoot.Square()
	}

	// Query phase. The snapshot below fixes the query locations for
	// every round; it includes all committed roots.
	indexPickerPreimage := transcript.Snapshot()
	cProofs := make([][]core.PartialAuthenticationPath, 0, roundsCount)
	abProofs := make([][]core.PartialAuthenticationPath, 0, roundsCount)
	for round := 0; round < roundsCount; round++ {
		abc := abcIndices(indexPickerPreimage, uint8(round), uint32(colinearityChecks), uint32(len(codeword)))
		if abc == nil {
			return nil, fmt.Errorf("round %d cannot supply %d query locations", round, colinearityChecks)
		}
		cIndices, abIndices := splitIndices(abc)

		cPaths, err := trees[round+1].Open(cIndices)
		if err != nil {
			return nil, err
		}
		abPaths, err := trees[round].Open(abIndices)
		if err != nil {
			return nil, err
		}

		for _, paths := range [][]core.PartialAuthenticationPath{cPaths, abPaths} {
			encoded, err := core.EncodePaths(paths)
			if err != nil {
				return nil, err
			}
			if len(encoded) > 0xFFFF {
				return nil, fmt.Errorf("round %d path vector exceeds the 16-bit length prefix", round)
			}
			transcript.AppendUint16(uint16(len(encoded)))
			transcript.Append(encoded)
		}

		cProofs = append(cProofs, cPaths)
		abProofs = append(abProofs, abPaths)
	}

	merkleRoots := make([][32]byte, len(trees))
	for i, t := range trees {
		merkleRoots[i] = t.Root()
	}

	return &LowDegreeProof{
		ABProofs:               abProofs,
		CProofs:                cProofs,
		CodewordSize:           uint32(len(codeword)),
		MaxDegree:              maxDegree,
		MaxDegreeOfLastRound:   maxDegreeOfLastRound,
		MerkleRoots:            merkleRoots,
		PrimitiveRootOfUnity:   omega,
		RoundsCount:            uint8(roundsCount),
		S:                      uint32(colinearityChecks),
		challengeHashPreimages: challengeHashPreimages,
		indexPickerPreimage:    indexPickerPreimage,
	}, nil
}

// foldCodeword halves a codeword under a folding challenge. With
// x_i = omega^i running over the first half of the layer,
//
//	C'[i] = ((1 + beta/x_i)*C[i] + (1 - beta/x_i)*C[i+M]) / 2
//
// which is the split P(x) = P_e(x^2) + x*P_o(x^2) followed by the
// random combination P_e + beta*P_o, evaluated on the squared domain.
// Inverse powers of omega are maintained as a running product rather
// than inverted per step.
func foldCodeword(codeword []*big.Int, field *core.Field, challenge, workingRoot,
	inverseOfTwo *core.FieldElement) ([]*big.Int, error) {

	rootInverse, err := workingRoot.Inv()
	if err != nil {
		return nil, err
	}

	if field.WordSized() {
		return foldCodewordWord(codeword, field, challenge, rootInverse, inverseOfTwo), nil
	}

	half := len(codeword) / 2
	folded := make([]*big.Int, half)
	one := field.One()
	xInverse := field.One()
	for i := 0; i < half; i++ {
		scaled := challenge.Mul(xInverse)
		left := one.Add(scaled).Mul(field.NewElement(codeword[i]))
		right := one.Sub(scaled).Mul(field.NewElement(codeword[i+half]))
		folded[i] = left.Add(right).Mul(inverseOfTwo).Big()
		xInverse = xInverse.Mul(rootInverse)
	}
	return folded, nil
}

// foldCodewordWord is the machine-word specialization of foldCodeword
// for moduli that fit a uint64. Codeword values must already be
// canonical representatives.
func foldCodewordWord(codeword []*big.Int, field *core.Field, challenge, rootInverse,
	inverseOfTwo *core.FieldElement) []*big.Int {

	modulus := field.Modulus().Uint64()
	beta := challenge.Big().Uint64()
	rootInv := rootInverse.Big().Uint64()
	invTwo := inverseOfTwo.Big().Uint64()

	half := len(codeword) / 2
	values := make([]uint64, len(codeword))
	for i, value := range codeword {
		values[i] = value.Uint64()
	}

	folded := make([]*big.Int, half)
	xInverse := uint64(1)
	for i := 0; i < half; i++ {
		scaled := core.MulMod64(beta, xInverse, modulus)
		left := core.MulMod64(core.AddMod64(1, scaled, modulus), values[i], modulus)
		right := core.MulMod64(core.SubMod64(1, scaled, modulus), values[i+half], modulus)
		folded[i] = new(big.Int).SetUint64(core.MulMod64(core.AddMod64(left, right, modulus), invTwo, modulus))
		xInverse = core.MulMod64(xInverse, rootInv, modulus)
	}
	return folded
}
