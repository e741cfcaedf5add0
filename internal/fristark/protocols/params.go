package protocols

import "github.com/fristark/fristark/internal/fristark/utils"

// GetRoundsCount derives the number of codeword-halving rounds and the
// degree bound tolerated in the final layer.
//
// The prover halves the codeword each round and would normally run
// ceil(log2(maxDegree+1)) rounds. When the expansion factor is smaller
// than the number of colinearity checks it must stop early: a layer
// shorter than the query budget cannot supply enough distinct
// positions. The rounds skipped this way are compensated by letting
// the verifier interpolate the final layer explicitly and tolerate a
// degree of 2^missed - 1.
//
// A result < 1 means the parameters admit no round at all; callers
// fail with NonPositiveRoundCount.
func GetRoundsCount(codewordSize, maxDegree, colinearityChecks uint32) (int, uint32) {
	maxDegreePlusOne := uint64(maxDegree) + 1
	expansionFactor := uint64(codewordSize) / maxDegreePlusOne
	if expansionFactor == 0 {
		return 0, 0
	}

	roundsCount := utils.Log2Ceil(maxDegreePlusOne)
	maxDegreeOfLastRound := uint32(0)
	if expansionFactor < uint64(colinearityChecks) {
		quotient := (uint64(colinearityChecks) + expansionFactor - 1) / expansionFactor
		missedRounds := utils.Log2Ceil(quotient)
		roundsCount -= missedRounds
		maxDegreeOfLastRound = 1<<uint32(missedRounds) - 1
	}

	return roundsCount, maxDegreeOfLastRound
}
