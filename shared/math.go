package shared

import "math/bits"

// Ordered is a constraint that permits any ordered type: any type
// that supports the operators < <= >= >.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 |
		~string
}

// NextPowerOf2 is a fast computation of 2^x.
// see: https://stackoverflow.com/questions/466204/rounding-up-to-next-power-of-2
func NextPowerOf2(i uint64) uint64 {
	if i == 0 {
		return 0
	}
	i--
	i |= i >> 1
	i |= i >> 2
	i |= i >> 4
	i |= i >> 8
	i |= i >> 16
	i |= i >> 32
	i++
	return i
}

// Log2 returns floor(log2(value)), or 0 for value == 0.
func Log2(value uint64) uint64 {
	if value == 0 {
		return 0
	}
	return uint64(bits.Len64(value) - 1)
}

// Max returns the max of a and b.
func Max[T Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Min returns the min of a and b.
func Min[T Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// ReduceMultiplyHigh maps a 64-bit hash into [0, n) using the
// multiply-high reduction floor(h*n / 2^64), which distributes more
// evenly than a bitmask for table sizes that are not a power of two.
func ReduceMultiplyHigh(h uint64, n int) int {
	if n <= 0 {
		return 0
	}
	hi, _ := bits.Mul64(h, uint64(n))
	return int(hi)
}
