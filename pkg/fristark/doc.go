// Package fristark provides a non-interactive FRI low-degree test: an
// argument system by which a prover convinces a verifier that a vector
// of field elements is the evaluation of a polynomial of bounded
// degree on a multiplicative subgroup of a prime field, without the
// verifier reading the whole vector.
//
// # Features
//
// - Complete FRI prover and verifier over a caller-supplied prime
// - BLAKE3-driven Fiat-Shamir transcript shared with the caller
// - Merkle commitments with multi-index partial authentication paths
// - Bit-exact binary proof encoding and decoding
// - Machine-word fast path for moduli that fit a uint64
//
// # Quick Start
//
// Proving that a codeword has low degree:
//
//	modulus := big.NewInt(3221225473)
//	field, _ := fristark.NewField(modulus)
//	omega, _ := field.PrimitiveNthRoot(4096)
//
//	transcript := fristark.NewTranscript()
//	proof, err := fristark.Prove(codeword, modulus, 1023, 20, transcript, omega.Big())
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Verifying, typically on the other side of a wire:
//
//	proof, _, err := fristark.FromSerialization(transcript.Bytes(), 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := fristark.Verify(proof, modulus); err != nil {
//		log.Fatal(err)
//	}
//
// The transcript is both the Fiat-Shamir oracle and the wire payload:
// seeding it with the state of an outer protocol binds the proof to
// that state, and the proof bytes are exactly the suffix appended
// during the Prove call.
package fristark
