package protocols

import (
	"math/big"

	"github.com/sirupsen/logrus"

	"github.com/fristark/fristark/internal/fristark/core"
	"github.com/fristark/fristark/internal/fristark/utils"
)

// Verify checks a low-degree proof against the given modulus. It
// re-derives the folding challenges and query locations from the
// reconstructed transcript prefixes, verifies every Merkle opening,
// checks the colinearity of the implied point triples, and finally
// interpolates the probed values of the last layer to bound their
// degree. Nothing is written to the transcript; failure diagnostics
// only go to the package logger.
func Verify(proof *LowDegreeProof, modulus *big.Int) error {
	roundsCount := int(proof.RoundsCount)
	if roundsCount < 1 {
		return newValidationError(NonPositiveRoundCount, "proof admits no folding round")
	}
	if len(proof.ABProofs) != roundsCount ||
		len(proof.CProofs) != roundsCount ||
		len(proof.challengeHashPreimages) != roundsCount ||
		len(proof.MerkleRoots) != roundsCount+1 {
		return newValidationError(BadSizedProof,
			"cardinality mismatch: %d rounds, %d ab paths, %d c paths, %d preimages, %d roots",
			roundsCount, len(proof.ABProofs), len(proof.CProofs),
			len(proof.challengeHashPreimages), len(proof.MerkleRoots))
	}

	field, err := core.NewField(modulus)
	if err != nil {
		return err
	}

	challenges := make([]*core.FieldElement, roundsCount)
	for i, preimage := range proof.challengeHashPreimages {
		digest, err := utils.Digest(utils.HashBlake3, preimage)
		if err != nil {
			return err
		}
		challenges[i] = field.FromBytes(digest[0:16])
	}

	workingRoot := field.NewElement(proof.PrimitiveRootOfUnity)
	var lastAXs []*core.FieldElement
	var lastCYs []*big.Int
	for round, challenge := range challenges {
		abc := proof.GetABCIndices(uint8(round))
		if abc == nil {
			return newValidationError(BadSizedProof,
				"round %d cannot supply %d query locations", round, proof.S)
		}
		cIndices, abIndices := splitIndices(abc)

		validCs := core.VerifyMultiProof(proof.MerkleRoots[round+1], cIndices, proof.CProofs[round])
		validABs := core.VerifyMultiProof(proof.MerkleRoots[round], abIndices, proof.ABProofs[round])
		if !validCs || !validABs {
			logger.WithFields(logrus.Fields{
				"round":    round,
				"c_valid":  validCs,
				"ab_valid": validABs,
			}).Warn("merkle authentication path mismatch")
			return newValidationError(BadMerkleProof, "round %d authentication paths do not match the committed roots", round)
		}

		// Both openings passed, so the path counts match the
		// query budget and the values are bound to the roots
		for j := 0; j < int(proof.S); j++ {
			aX := workingRoot.ExpInt64(int64(abIndices[2*j]))
			bX := workingRoot.ExpInt64(int64(abIndices[2*j+1]))
			aY := field.NewElement(proof.ABProofs[round][2*j].Value)
			bY := field.NewElement(proof.ABProofs[round][2*j+1].Value)
			cY := field.NewElement(proof.CProofs[round][j].Value)

			// The a_x values of the final round feed the
			// closing degree check
			if round == roundsCount-1 {
				lastAXs = append(lastAXs, aX)
				lastCYs = append(lastCYs, proof.CProofs[round][j].Value)
			}

			if !core.AreColinear(
				core.NewPoint(aX, aY),
				core.NewPoint(bX, bY),
				core.NewPoint(challenge, cY),
			) {
				logger.WithFields(logrus.Fields{
					"round": round,
					"query": j,
				}).Warn("colinearity check failed")
				return newValidationError(NotColinear, "round %d query %d is not colinear", round, j)
			}
		}

		workingRoot = workingRoot.Square()
	}

	// Base case: the values probed in the last committed layer must
	// lie on a polynomial of tolerated degree. The x-coordinates are
	// squared to match the index squaring between adjacent layers.
	if len(lastCYs) == 0 {
		return newValidationError(LastIterationTooHighDegree, "no points to interpolate in the final layer")
	}
	points := make([]core.Point, len(lastCYs))
	for j, cY := range lastCYs {
		points[j] = core.NewPoint(lastAXs[j].Square(), field.NewElement(cY))
	}
	lastPolynomial, err := core.LagrangeInterpolation(points, field)
	if err != nil {
		return newValidationError(LastIterationTooHighDegree, "final layer interpolation failed: %v", err)
	}
	if lastPolynomial.Degree() > int(proof.MaxDegreeOfLastRound) {
		logger.WithFields(logrus.Fields{
			"degree":     lastPolynomial.Degree(),
			"max_degree": proof.MaxDegreeOfLastRound,
		}).Warn("final layer not of sufficiently low degree")
		return newValidationError(LastIterationTooHighDegree,
			"final layer has degree %d, tolerated %d", lastPolynomial.Degree(), proof.MaxDegreeOfLastRound)
	}

	return nil
}
