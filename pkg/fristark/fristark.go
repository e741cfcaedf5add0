package fristark

import (
	"math/big"

	"github.com/fristark/fristark/internal/fristark/core"
	"github.com/fristark/fristark/internal/fristark/protocols"
	"github.com/fristark/fristark/internal/fristark/utils"
)

// LowDegreeProof is the proof object returned by Prove and
// FromSerialization
type LowDegreeProof = protocols.LowDegreeProof

// Transcript is the append-only byte buffer shared between the prover
// and the caller
type Transcript = utils.Transcript

// Field is a prime field with a caller-supplied modulus
type Field = core.Field

// FieldElement is an element of a Field
type FieldElement = core.FieldElement

// Config bundles low-degree test parameters for end-to-end callers
type Config = utils.Config

// NewTranscript creates an empty BLAKE3 transcript
func NewTranscript() *Transcript {
	return utils.NewTranscript(utils.HashBlake3)
}

// NewTranscriptFromBytes creates a transcript seeded with the state of
// an outer protocol
func NewTranscriptFromBytes(initial []byte) *Transcript {
	return utils.NewTranscriptFromBytes(initial, utils.HashBlake3)
}

// NewField creates a prime field with the given modulus
func NewField(modulus *big.Int) (*Field, error) {
	return core.NewField(modulus)
}

// DefaultConfig returns a configuration over the default prime field
func DefaultConfig() *Config {
	return utils.DefaultConfig()
}

// Prove generates a low-degree proof for the codeword and appends its
// bytes to the transcript. See the package documentation for the
// protocol outline.
func Prove(codeword []*big.Int, modulus *big.Int, maxDegree uint32, colinearityChecks int,
	transcript *Transcript, primitiveRootOfUnity *big.Int) (*LowDegreeProof, error) {
	return protocols.Prove(codeword, modulus, maxDegree, colinearityChecks, transcript, primitiveRootOfUnity)
}

// Verify checks a low-degree proof against the given modulus
func Verify(proof *LowDegreeProof, modulus *big.Int) error {
	return protocols.Verify(proof, modulus)
}

// FromSerialization parses a proof from transcript bytes starting at
// startIndex and returns it together with the index of the first byte
// after the proof
func FromSerialization(serialization []byte, startIndex int) (*LowDegreeProof, int, error) {
	return protocols.FromSerialization(serialization, startIndex)
}
