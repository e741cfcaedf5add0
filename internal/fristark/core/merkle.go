package core

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/zeebo/blake3"
)

// MerkleTree commits to a vector of field-element values. The tree is
// a pure function of the leaf vector: leaves are hashed with BLAKE3
// over their canonical encoding, inner nodes over the concatenation of
// their children. The leaf count must be a power of two.
type MerkleTree struct {
	leaves []*big.Int
	levels [][][32]byte
}

// PartialAuthenticationPath authenticates one leaf of a multi-index
// opening. Digests holds one sibling digest per tree level, bottom up;
// a nil entry means the digest was elided because the verifier can
// recompute it from the other paths in the same opening.
type PartialAuthenticationPath struct {
	Value   *big.Int
	Digests [][]byte
}

type nodeKey struct {
	level int
	pos   int
}

// NewMerkleTree builds a Merkle tree over the given values
func NewMerkleTree(values []*big.Int) (*MerkleTree, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("cannot create Merkle tree with empty data")
	}
	if len(values)&(len(values)-1) != 0 {
		return nil, fmt.Errorf("leaf count must be a power of two, got %d", len(values))
	}

	leaves := make([]*big.Int, len(values))
	hashes := make([][32]byte, len(values))
	for i, value := range values {
		leaves[i] = new(big.Int).Set(value)
		hashes[i] = leafHash(value)
	}

	levels := [][][32]byte{hashes}
	current := hashes
	for len(current) > 1 {
		next := make([][32]byte, len(current)/2)
		for i := range next {
			next[i] = nodeHash(current[2*i], current[2*i+1])
		}
		levels = append(levels, next)
		current = next
	}

	return &MerkleTree{leaves: leaves, levels: levels}, nil
}

// Root returns the Merkle root
func (mt *MerkleTree) Root() [32]byte {
	return mt.levels[len(mt.levels)-1][0]
}

// NumberOfLeaves returns the leaf count
func (mt *MerkleTree) NumberOfLeaves() int {
	return len(mt.leaves)
}

// depth is the number of levels between a leaf and the root
func (mt *MerkleTree) depth() int {
	return len(mt.levels) - 1
}

// Open produces partial authentication paths for the requested leaf
// indices. A sibling digest is elided when it is an ancestor of
// another requested leaf, or when an earlier path in the same opening
// already carries it; the verifier reconstructs elided digests while
// walking all paths level by level.
func (mt *MerkleTree) Open(indices []int) ([]PartialAuthenticationPath, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("no indices to open")
	}
	for _, index := range indices {
		if index < 0 || index >= len(mt.leaves) {
			return nil, fmt.Errorf("index %d out of range [0, %d)", index, len(mt.leaves))
		}
	}

	depth := mt.depth()
	provided := make(map[nodeKey]bool)
	paths := make([]PartialAuthenticationPath, len(indices))

	for k, index := range indices {
		paths[k] = PartialAuthenticationPath{
			Value:   new(big.Int).Set(mt.leaves[index]),
			Digests: make([][]byte, depth),
		}
	}

	for level := 0; level < depth; level++ {
		// Node positions the verifier computes at this level anyway
		computable := make(map[int]bool, len(indices))
		for _, index := range indices {
			computable[index>>level] = true
		}

		for k, index := range indices {
			sibling := (index >> level) ^ 1
			key := nodeKey{level: level, pos: sibling}
			if computable[sibling] || provided[key] {
				continue
			}
			digest := mt.levels[level][sibling]
			paths[k].Digests[level] = digest[:]
			provided[key] = true
		}
	}

	return paths, nil
}

// VerifyMultiProof checks a multi-index opening against a committed
// root. All paths are walked jointly, level by level, so that elided
// sibling digests can be looked up from sibling subtrees computed from
// the other paths.
func VerifyMultiProof(root [32]byte, indices []int, paths []PartialAuthenticationPath) bool {
	if len(indices) == 0 || len(indices) != len(paths) {
		return false
	}
	depth := len(paths[0].Digests)
	size := 1 << depth
	seen := make(map[int]bool, len(indices))
	for k, path := range paths {
		if path.Value == nil || len(path.Digests) != depth {
			return false
		}
		if indices[k] < 0 || indices[k] >= size {
			return false
		}
		// A duplicate index would let one path shadow the value of
		// the other, so the opening is rejected outright.
		if seen[indices[k]] {
			return false
		}
		seen[indices[k]] = true
	}

	known := make(map[nodeKey][32]byte)
	for k, path := range paths {
		known[nodeKey{level: 0, pos: indices[k]}] = leafHash(path.Value)
	}

	for level := 0; level < depth; level++ {
		for k, path := range paths {
			pos := indices[k] >> level
			current, ok := known[nodeKey{level: level, pos: pos}]
			if !ok {
				return false
			}

			siblingKey := nodeKey{level: level, pos: pos ^ 1}
			var sibling [32]byte
			if digest := path.Digests[level]; digest != nil {
				if len(digest) != 32 {
					return false
				}
				copy(sibling[:], digest)
				if existing, exists := known[siblingKey]; exists && existing != sibling {
					return false
				}
				known[siblingKey] = sibling
			} else if sibling, ok = known[siblingKey]; !ok {
				return false
			}

			var parent [32]byte
			if pos&1 == 0 {
				parent = nodeHash(current, sibling)
			} else {
				parent = nodeHash(sibling, current)
			}
			known[nodeKey{level: level + 1, pos: pos >> 1}] = parent
		}
	}

	return known[nodeKey{level: depth, pos: 0}] == root
}

// EncodePaths serializes a path vector deterministically: a 32-bit
// little-endian path count, an 8-bit tree depth, then per path the
// length-prefixed leaf value followed by one presence byte per level
// with the 32-byte digest when present.
func EncodePaths(paths []PartialAuthenticationPath) ([]byte, error) {
	var buf bytes.Buffer

	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(paths)))
	buf.Write(count[:])

	depth := 0
	if len(paths) > 0 {
		depth = len(paths[0].Digests)
	}
	if depth > 0xFF {
		return nil, fmt.Errorf("tree depth %d does not fit the encoding", depth)
	}
	buf.WriteByte(byte(depth))

	for k, path := range paths {
		if len(path.Digests) != depth {
			return nil, fmt.Errorf("path %d has depth %d, want %d", k, len(path.Digests), depth)
		}
		buf.Write(EncodeValue(path.Value))
		for _, digest := range path.Digests {
			if digest == nil {
				buf.WriteByte(0)
				continue
			}
			if len(digest) != 32 {
				return nil, fmt.Errorf("path %d carries a %d-byte digest", k, len(digest))
			}
			buf.WriteByte(1)
			buf.Write(digest)
		}
	}

	return buf.Bytes(), nil
}

// DecodePaths parses a path vector written by EncodePaths. The whole
// input must be consumed.
func DecodePaths(data []byte) ([]PartialAuthenticationPath, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("path vector truncated: %d bytes", len(data))
	}
	count := int(binary.LittleEndian.Uint32(data[0:4]))
	depth := int(data[4])
	offset := 5

	// Every path consumes at least its value length prefix, so a
	// count beyond the input size cannot be honest
	if count > len(data) {
		return nil, fmt.Errorf("path vector claims %d paths in %d bytes", count, len(data))
	}

	paths := make([]PartialAuthenticationPath, 0, count)
	for k := 0; k < count; k++ {
		value, consumed, err := DecodeValue(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", k, err)
		}
		offset += consumed

		digests := make([][]byte, depth)
		for level := 0; level < depth; level++ {
			if offset >= len(data) {
				return nil, fmt.Errorf("path %d truncated at level %d", k, level)
			}
			switch data[offset] {
			case 0:
				offset++
			case 1:
				offset++
				if offset+32 > len(data) {
					return nil, fmt.Errorf("path %d truncated at level %d", k, level)
				}
				digests[level] = append([]byte(nil), data[offset:offset+32]...)
				offset += 32
			default:
				return nil, fmt.Errorf("path %d has invalid presence byte %d", k, data[offset])
			}
		}
		paths = append(paths, PartialAuthenticationPath{Value: value, Digests: digests})
	}

	if offset != len(data) {
		return nil, fmt.Errorf("path vector has %d trailing bytes", len(data)-offset)
	}
	return paths, nil
}

func leafHash(value *big.Int) [32]byte {
	return blake3.Sum256(EncodeValue(value))
}

func nodeHash(left, right [32]byte) [32]byte {
	combined := make([]byte, 64)
	copy(combined[:32], left[:])
	copy(combined[32:], right[:])
	return blake3.Sum256(combined)
}
