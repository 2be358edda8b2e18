package combat

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// Source is the single uniform randomness source used by combat.
// Float64 returns a value in [0, 1).
//
// *rand.Rand from math/rand/v2 satisfies Source. It is not safe for concurrent
// use, so every combat run must own its Source.
type Source interface {
	Float64() float64
}

// logNamespace scopes combat log UUIDs.
var logNamespace = uuid.MustParse("6f1c2a8e-54d3-4b71-9a0e-2f5c3d7b9e41")

// NewSource returns a PCG-backed Source seeded from a replay key.
// Equal keys yield equal sequences, so a combat can be replayed from its key.
func NewSource(key string) *rand.Rand {
	sum := blake2b.Sum256([]byte(key))
	return rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(sum[0:8]),
		binary.LittleEndian.Uint64(sum[8:16]),
	))
}

// LogID returns the deterministic combat log ID for a replay key.
func LogID(key string) string {
	return uuid.NewSHA1(logNamespace, []byte(key)).String()
}

// rollInt draws an integer uniformly from [lo, hi] with one draw.
// If hi < lo, lo is returned without drawing.
func rollInt(rng Source, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + int(math.Floor(rng.Float64()*float64(hi-lo+1)))
}

// roll draws once and reports whether the draw fell below chance.
func roll(rng Source, chance float64) bool {
	return rng.Float64() < chance
}
