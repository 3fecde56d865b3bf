package render

import (
	"hash/fnv"

	"github.com/google/uuid"
)

const indexMix = 0x9E3779B97F4A7C15

// Seed derives the texture seed for point index of a stroke. It is a fixed
// function of its inputs so live painting and export agree.
func Seed(id uuid.UUID, index int) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id.String()))
	return h.Sum64() ^ (uint64(index) * indexMix)
}

// LCG is a 64-bit linear congruential generator.
type LCG struct {
	state uint64
}

// NewLCG seeds a generator. A zero seed is replaced by a fixed constant.
func NewLCG(seed uint64) *LCG {
	if seed == 0 {
		seed = 0xDEADBEEF
	}
	return &LCG{state: seed}
}

// Next advances the generator and returns the raw state.
func (g *LCG) Next() uint64 {
	g.state = g.state*6364136223846793005 + 1
	return g.state
}

// Unit returns a value in [0, 1) built from 24 high bits.
func (g *LCG) Unit() float64 {
	return float64((g.Next()>>40)&0xFFFFFF) / float64(0x1000000)
}

