package game

import (
	"crypto/rand"
	"encoding/binary"
)

// Rand is the randomness source for damage rolls, enemy selection, flee
// and quest checks. Tests substitute a scripted source.
type Rand interface {
	// Intn returns a value in [0, n). n must be > 0.
	Intn(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// CryptoRand draws from crypto/rand.
type CryptoRand struct{}

func (CryptoRand) Intn(n int) int {
	return int(uint64n() % uint64(n))
}

func (CryptoRand) Float64() float64 {
	// 53 random bits, the precision of a float64 mantissa
	return float64(uint64n()>>11) / (1 << 53)
}

func uint64n() uint64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// rollRange returns a uniform value in [lo, hi], both inclusive.
func rollRange(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}
