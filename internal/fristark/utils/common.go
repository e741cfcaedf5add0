package utils

import "math/big"

// IsPowerOfTwo checks if a number is a power of 2
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// Log2 computes the base-2 logarithm of a power of 2
func Log2(n int) int {
	if !IsPowerOfTwo(n) {
		return -1
	}

	result := 0
	for n > 1 {
		n >>= 1
		result++
	}
	return result
}

// Log2Ceil returns the smallest k such that 2^k >= n
func Log2Ceil(n uint64) int {
	result := 0
	for uint64(1)<<result < n {
		result++
	}
	return result
}

// NextPowerOfTwo returns the smallest power of 2 >= n
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	if IsPowerOfTwo(n) {
		return n
	}

	power := 1
	for power < n {
		power <<= 1
	}
	return power
}

// IndexFromBytes interprets a digest as a big-endian unsigned integer
// and reduces it modulo rangeSize. Prover and verifier must agree on
// this reduction exactly, since it drives the query-index sampling.
func IndexFromBytes(digest []byte, rangeSize int) int {
	value := new(big.Int).SetBytes(digest)
	return int(value.Mod(value, big.NewInt(int64(rangeSize))).Int64())
}
