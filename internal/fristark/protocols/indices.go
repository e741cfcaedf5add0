package protocols

import (
	"github.com/fristark/fristark/internal/fristark/utils"
)

// abcIndices derives the query locations for one verification round
// from the index-picker preimage, the transcript snapshot taken after
// the last committed root. Both sides run this; the preimage already
// binds every Merkle root, so positions cannot be chosen after seeing
// the folding randomness.
//
// Each location is a triple (a, b, c): a and b = a + M are the two
// sibling positions in the round-r codeword sharing the same x^2, and
// c = a is their image in the round-(r+1) codeword of half-length
// M = fullCodewordSize >> (round+1).
//
// Returns nil when the half-length cannot supply numLocations distinct
// positions, or when numLocations exceeds the one-byte nonce space.
func abcIndices(indexPickerPreimage []byte, round uint8, numLocations uint32, fullCodewordSize uint32) [][3]int {
	halfCodewordSize := int(fullCodewordSize) >> (round + 1)

	// The nonce is a single byte, capping the budget at 256 per round
	if numLocations > utils.MaxColinearityChecks {
		return nil
	}
	if halfCodewordSize < int(numLocations) || numLocations == 0 {
		return nil
	}

	// preimage || round || nonce
	preimage := make([]byte, len(indexPickerPreimage)+2)
	copy(preimage, indexPickerPreimage)
	preimage[len(preimage)-2] = round
	nonceAt := len(preimage) - 1

	indices := make([][3]int, 0, numLocations)
	if numLocations > uint32(halfCodewordSize)/2 {
		// Dense branch: sampling without replacement. Most of the
		// layer is probed anyway, so drawing from the shrinking
		// remainder avoids the rejection loop's collisions.
		remaining := make([]int, halfCodewordSize)
		for i := range remaining {
			remaining[i] = i
		}
		for i := uint32(0); i < numLocations; i++ {
			preimage[nonceAt] = byte(i % 256)
			digest, _ := utils.Digest(utils.HashBlake3, preimage)
			pick := utils.IndexFromBytes(digest[:], len(remaining))
			index := remaining[pick]
			remaining = append(remaining[:pick], remaining[pick+1:]...)
			indices = append(indices, [3]int{index, index + halfCodewordSize, index})
		}
	} else {
		// Sparse branch: rejection sampling. Collisions are rare
		// when at most half the layer is probed, so the expected
		// work stays around 2*numLocations hashes.
		picked := make(map[int]bool, numLocations)
		counter := uint8(0)
		for attempts := 0; uint32(len(indices)) < numLocations; attempts++ {
			// The nonce space is exhausted after 256 attempts;
			// further draws would only repeat earlier digests
			if attempts == 256 {
				return nil
			}
			preimage[nonceAt] = counter
			digest, _ := utils.Digest(utils.HashBlake3, preimage)
			index := utils.IndexFromBytes(digest[:], halfCodewordSize)
			if !picked[index] {
				indices = append(indices, [3]int{index, index + halfCodewordSize, index})
				picked[index] = true
			}
			counter++
		}
	}

	return indices
}

// splitIndices flattens ABC triples into the c-index list and the
// interleaved ab-index list [a0, b0, a1, b1, ...] used for the Merkle
// openings.
func splitIndices(abc [][3]int) (cIndices, abIndices []int) {
	cIndices = make([]int, 0, len(abc))
	abIndices = make([]int, 0, 2*len(abc))
	for _, triple := range abc {
		abIndices = append(abIndices, triple[0], triple[1])
		cIndices = append(cIndices, triple[2])
	}
	return cIndices, abIndices
}
