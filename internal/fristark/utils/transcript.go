package utils

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"

	"github.com/fristark/fristark/internal/fristark/core"
)

// Supported transcript hash functions. The FRI protocol itself always
// derives its randomness with BLAKE3; the alternatives exist for outer
// protocols that share the buffer and bring their own oracle.
const (
	HashBlake3 = "blake3"
	HashSHA256 = "sha256"
	HashSHA3   = "sha3"
)

// Transcript is an append-only byte buffer shared between a prover and
// the caller. It serves two purposes at once: it is the on-wire proof
// payload and it is the Fiat-Shamir state from which challenges are
// derived. Writes only ever append; neither side rewinds.
type Transcript struct {
	buf      []byte
	hashFunc string
}

// NewTranscript creates an empty transcript. An empty or unsupported
// hashFunc selects BLAKE3.
func NewTranscript(hashFunc string) *Transcript {
	if _, err := Digest(hashFunc, nil); err != nil {
		hashFunc = HashBlake3
	}
	if hashFunc == "" {
		hashFunc = HashBlake3
	}
	return &Transcript{hashFunc: hashFunc}
}

// NewTranscriptFromBytes creates a transcript seeded with an existing
// prefix, e.g. the state of an outer protocol the proof composes with.
func NewTranscriptFromBytes(initial []byte, hashFunc string) *Transcript {
	t := NewTranscript(hashFunc)
	t.buf = append(t.buf, initial...)
	return t
}

// Append writes raw bytes to the transcript
func (t *Transcript) Append(data []byte) {
	t.buf = append(t.buf, data...)
}

// AppendUint32 writes a little-endian 32-bit integer
func (t *Transcript) AppendUint32(v uint32) {
	var encoded [4]byte
	binary.LittleEndian.PutUint32(encoded[:], v)
	t.buf = append(t.buf, encoded[:]...)
}

// AppendUint16 writes a little-endian 16-bit integer
func (t *Transcript) AppendUint16(v uint16) {
	var encoded [2]byte
	binary.LittleEndian.PutUint16(encoded[:], v)
	t.buf = append(t.buf, encoded[:]...)
}

// Len returns the current transcript length
func (t *Transcript) Len() int {
	return len(t.buf)
}

// Bytes returns a copy of the transcript contents
func (t *Transcript) Bytes() []byte {
	return append([]byte(nil), t.buf...)
}

// Snapshot returns a copy of the current transcript contents. The FRI
// prover snapshots before each folding round (challenge preimage) and
// once after the last committed root (index-picker preimage).
func (t *Transcript) Snapshot() []byte {
	return append([]byte(nil), t.buf...)
}

// Challenge hashes the current transcript and reduces the first 16
// digest bytes into a field element, using the transcript's configured
// hash function.
func (t *Transcript) Challenge(field *core.Field) *core.FieldElement {
	digest, err := Digest(t.hashFunc, t.buf)
	if err != nil {
		// The hash function was validated at construction time
		panic(err)
	}
	return field.FromBytes(digest[0:16])
}

// String returns a short description of the transcript state
func (t *Transcript) String() string {
	return fmt.Sprintf("transcript{%d bytes, %s}", len(t.buf), t.hashFunc)
}

// Digest computes the 32-byte hash of data using the named function
func Digest(hashFunc string, data []byte) ([32]byte, error) {
	switch hashFunc {
	case HashBlake3, "":
		return blake3.Sum256(data), nil
	case HashSHA256:
		return sha256.Sum256(data), nil
	case HashSHA3:
		return sha3.Sum256(data), nil
	default:
		return [32]byte{}, fmt.Errorf("unsupported hash function: %q", hashFunc)
	}
}
