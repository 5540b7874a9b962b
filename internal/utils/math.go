package utils

import (
	"math"
	"math/rand"
)

// RandomSource draws uniform floats in [0, 1)
type RandomSource interface {
	Float64() float64
}

// RandomSourceFunc adapts a plain function to RandomSource
type RandomSourceFunc func() float64

// Float64 calls f
func (f RandomSourceFunc) Float64() float64 {
	return f()
}

// DefaultRandom is the process-wide gameplay random source
var DefaultRandom RandomSource = RandomSourceFunc(RandomFloat)

// RandomFloat returns a random float64 between 0.0 and 1.0
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// FixedRandom returns a source that always yields v. Used by tests and
// scripted scenarios.
func FixedRandom(v float64) RandomSource {
	return RandomSourceFunc(func() float64 { return v })
}

// IsPositiveFinite reports whether f is a usable positive number
func IsPositiveFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}

// MulFloor returns floor(n * rate), or 0 when the product is not finite
func MulFloor(n int64, rate float64) int64 {
	v := math.Floor(float64(n) * rate)
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
