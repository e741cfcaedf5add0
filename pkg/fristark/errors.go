package fristark

import "github.com/fristark/fristark/internal/fristark/protocols"

// ErrorCode identifies a low-degree test failure
type ErrorCode = protocols.ErrorCode

// ProveError is returned when the prover refuses to produce a proof
type ProveError = protocols.ProveError

// ValidationError is returned when a proof fails verification or
// cannot be decoded
type ValidationError = protocols.ValidationError

// Prover error codes
const (
	BadMaxDegreeValue = protocols.BadMaxDegreeValue
)

// Verifier error codes; NonPositiveRoundCount is shared with the
// prover domain
const (
	NonPositiveRoundCount      = protocols.NonPositiveRoundCount
	BadSizedProof              = protocols.BadSizedProof
	BadMerkleProof             = protocols.BadMerkleProof
	NotColinear                = protocols.NotColinear
	LastIterationTooHighDegree = protocols.LastIterationTooHighDegree
)
