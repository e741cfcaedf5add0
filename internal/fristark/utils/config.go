package utils

import (
	"fmt"
	"math/big"
)

// MaxColinearityChecks is the upper bound on the per-round query
// budget. The index sampler uses a single-byte nonce, so at most 256
// distinct locations can be derived per round.
const MaxColinearityChecks = 256

// Config bundles the parameters of a low-degree test for callers that
// drive the prover end to end (the command-line tool, the tests).
type Config struct {
	// Field parameters
	FieldModulus *big.Int

	// Degree bound asserted by the prover; MaxDegree+1 must be a
	// power of two
	MaxDegree int

	// Ratio of codeword length to MaxDegree+1
	ExpansionFactor int

	// Number of colinearity checks per round
	ColinearityChecks int

	// Hash function for caller-side transcript use
	HashFunction string
}

// DefaultConfig returns a configuration over the default prime field
func DefaultConfig() *Config {
	return &Config{
		FieldModulus:      big.NewInt(3221225473), // 3 * 2^30 + 1
		MaxDegree:         1023,
		ExpansionFactor:   4,
		ColinearityChecks: 20,
		HashFunction:      HashBlake3,
	}
}

// CodewordSize returns the initial codeword length implied by the
// configuration
func (c *Config) CodewordSize() int {
	return c.ExpansionFactor * (c.MaxDegree + 1)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.FieldModulus == nil || c.FieldModulus.Cmp(big.NewInt(2)) <= 0 {
		return fmt.Errorf("field modulus must be greater than 2")
	}

	if !IsPowerOfTwo(c.MaxDegree + 1) {
		return fmt.Errorf("max degree + 1 must be a power of two, got %d", c.MaxDegree+1)
	}

	if !IsPowerOfTwo(c.ExpansionFactor) {
		return fmt.Errorf("expansion factor must be a power of two, got %d", c.ExpansionFactor)
	}

	if c.ColinearityChecks <= 0 || c.ColinearityChecks > MaxColinearityChecks {
		return fmt.Errorf("colinearity checks must be in [1, %d], got %d",
			MaxColinearityChecks, c.ColinearityChecks)
	}

	if _, err := Digest(c.HashFunction, nil); err != nil {
		return err
	}

	return nil
}
