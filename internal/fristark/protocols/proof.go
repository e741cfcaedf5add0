package protocols

import (
	"bytes"
	"encoding/binary"
	"math/big"

	"github.com/fristark/fristark/internal/fristark/core"
)

// LowDegreeProof is the argument that a committed codeword is the
// evaluation of a polynomial of degree at most MaxDegree. Its byte
// serialization is exactly the suffix the prover appended to the
// shared transcript; the challenge and index-picker preimages are not
// carried on the wire but reconstructed from transcript prefixes.
type LowDegreeProof struct {
	// ABProofs[r] authenticates the sampled sibling pairs in the
	// round-r codeword against MerkleRoots[r]
	ABProofs [][]core.PartialAuthenticationPath

	// CProofs[r] authenticates the folded values in the
	// round-(r+1) codeword against MerkleRoots[r+1]
	CProofs [][]core.PartialAuthenticationPath

	// CodewordSize is the initial codeword length N
	CodewordSize uint32

	// MaxDegree is the degree bound asserted by the prover
	MaxDegree uint32

	// MaxDegreeOfLastRound is the degree tolerated when
	// interpolating the final layer; derived, not transmitted
	MaxDegreeOfLastRound uint32

	// MerkleRoots holds one commitment per codeword layer,
	// RoundsCount+1 in total
	MerkleRoots [][32]byte

	// PrimitiveRootOfUnity generates the order-N evaluation domain
	PrimitiveRootOfUnity *big.Int

	// RoundsCount is the number of codeword halvings; derived, not
	// transmitted
	RoundsCount uint8

	// S is the number of colinearity checks per round
	S uint32

	// Transcript prefixes ending just before each round's challenge
	// was drawn, and just after the last committed root
	challengeHashPreimages [][]byte
	indexPickerPreimage    []byte
}

// GetABCIndices returns the (a, b, c) query locations of the given
// round, or nil when the round parameters cannot supply them.
func (p *LowDegreeProof) GetABCIndices(round uint8) [][3]int {
	return abcIndices(p.indexPickerPreimage, round, p.S, p.CodewordSize)
}

// GetABIndices returns the flattened [a0, b0, a1, b1, ...] positions
// of the given round, or nil when the round parameters cannot supply
// them.
func (p *LowDegreeProof) GetABIndices(round uint8) []int {
	abc := p.GetABCIndices(round)
	if abc == nil {
		return nil
	}
	_, abIndices := splitIndices(abc)
	return abIndices
}

// FromSerialization parses a proof from the transcript bytes, starting
// at startIndex. The bytes before startIndex belong to the outer
// protocol but still feed the reconstructed Fiat-Shamir preimages,
// which are prefixes of the whole buffer. Returns the proof and the
// index of the first byte after it.
//
// Any structural failure, truncation, bad lengths, malformed paths,
// yields a BadSizedProof validation error, so every byte sequence
// either decodes or is rejected with a verdict.
func FromSerialization(serialization []byte, startIndex int) (*LowDegreeProof, int, error) {
	index := startIndex
	if index < 0 || index > len(serialization) {
		return nil, 0, newValidationError(BadSizedProof, "start index %d out of range", startIndex)
	}
	remaining := func() int { return len(serialization) - index }

	if remaining() < 14 {
		return nil, 0, newValidationError(BadSizedProof, "proof header truncated: %d bytes", remaining())
	}
	codewordSize := binary.LittleEndian.Uint32(serialization[index : index+4])
	index += 4
	maxDegree := binary.LittleEndian.Uint32(serialization[index : index+4])
	index += 4
	colinearityChecks := binary.LittleEndian.Uint32(serialization[index : index+4])
	index += 4

	rootSize := int(binary.LittleEndian.Uint16(serialization[index : index+2]))
	index += 2
	if remaining() < rootSize {
		return nil, 0, newValidationError(BadSizedProof, "primitive root truncated: want %d bytes, have %d",
			rootSize, remaining())
	}
	primitiveRootOfUnity := new(big.Int).SetBytes(serialization[index : index+rootSize])
	index += rootSize

	roundsCount, maxDegreeOfLastRound := GetRoundsCount(codewordSize, maxDegree, colinearityChecks)
	if roundsCount < 1 {
		return nil, 0, newValidationError(NonPositiveRoundCount,
			"parameters (%d, %d, %d) admit no folding round", codewordSize, maxDegree, colinearityChecks)
	}

	if remaining() < 32*(roundsCount+1) {
		return nil, 0, newValidationError(BadSizedProof, "root table truncated: want %d bytes, have %d",
			32*(roundsCount+1), remaining())
	}

	// Fiat-Shamir preimages are prefixes of the full buffer at the
	// successive snapshot points: one ending before each root that
	// follows a challenge draw, plus one covering all roots
	challengeHashPreimages := make([][]byte, roundsCount)
	for i := 0; i < roundsCount; i++ {
		challengeHashPreimages[i] = append([]byte(nil), serialization[0:index+(i+1)*32]...)
	}
	indexPickerPreimage := append([]byte(nil), serialization[0:index+(roundsCount+1)*32]...)

	merkleRoots := make([][32]byte, roundsCount+1)
	for i := range merkleRoots {
		copy(merkleRoots[i][:], serialization[index:index+32])
		index += 32
	}

	cProofs := make([][]core.PartialAuthenticationPath, 0, roundsCount)
	abProofs := make([][]core.PartialAuthenticationPath, 0, roundsCount)
	for round := 0; round < roundsCount; round++ {
		for _, target := range []*[][]core.PartialAuthenticationPath{&cProofs, &abProofs} {
			if remaining() < 2 {
				return nil, 0, newValidationError(BadSizedProof, "round %d path vector truncated", round)
			}
			pathsSize := int(binary.LittleEndian.Uint16(serialization[index : index+2]))
			index += 2
			if remaining() < pathsSize {
				return nil, 0, newValidationError(BadSizedProof,
					"round %d path vector truncated: want %d bytes, have %d", round, pathsSize, remaining())
			}
			paths, err := core.DecodePaths(serialization[index : index+pathsSize])
			if err != nil {
				return nil, 0, newValidationError(BadSizedProof, "round %d: %v", round, err)
			}
			index += pathsSize
			*target = append(*target, paths)
		}
	}

	return &LowDegreeProof{
		ABProofs:               abProofs,
		CProofs:                cProofs,
		CodewordSize:           codewordSize,
		MaxDegree:              maxDegree,
		MaxDegreeOfLastRound:   maxDegreeOfLastRound,
		MerkleRoots:            merkleRoots,
		PrimitiveRootOfUnity:   primitiveRootOfUnity,
		RoundsCount:            uint8(roundsCount),
		S:                      colinearityChecks,
		challengeHashPreimages: challengeHashPreimages,
		indexPickerPreimage:    indexPickerPreimage,
	}, index, nil
}

// Serialize reproduces the exact byte suffix the prover appended to
// the transcript: the parameter header, the length-prefixed primitive
// root, the root table, and per round the length-prefixed c and ab
// path vectors.
func (p *LowDegreeProof) Serialize() ([]byte, error) {
	var buf bytes.Buffer

	var word [4]byte
	binary.LittleEndian.PutUint32(word[:], p.CodewordSize)
	buf.Write(word[:])
	binary.LittleEndian.PutUint32(word[:], p.MaxDegree)
	buf.Write(word[:])
	binary.LittleEndian.PutUint32(word[:], p.S)
	buf.Write(word[:])

	buf.Write(core.EncodeValue(p.PrimitiveRootOfUnity))

	for _, root := range p.MerkleRoots {
		buf.Write(root[:])
	}

	for round := 0; round < int(p.RoundsCount); round++ {
		if round >= len(p.CProofs) || round >= len(p.ABProofs) {
			return nil, newValidationError(BadSizedProof, "missing path vectors for round %d", round)
		}
		for _, paths := range [][]core.PartialAuthenticationPath{p.CProofs[round], p.ABProofs[round]} {
			encoded, err := core.EncodePaths(paths)
			if err != nil {
				return nil, newValidationError(BadSizedProof, "round %d: %v", round, err)
			}
			if len(encoded) > 0xFFFF {
				return nil, newValidationError(BadSizedProof,
					"round %d path vector exceeds the 16-bit length prefix", round)
			}
			var size [2]byte
			binary.LittleEndian.PutUint16(size[:], uint16(len(encoded)))
			buf.Write(size[:])
			buf.Write(encoded)
		}
	}

	return buf.Bytes(), nil
}
