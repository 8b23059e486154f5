package solver

import (
	"math/rand"
	randv2 "math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// newRNG returns a *rand.Rand seeded deterministically from seed, backed
// by rand/v2's PCG generator for speed under the tight inner loop of MCCFR
// traversal.
func newRNG(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(&pcgSource{src: randv2.NewPCG(mix(u), mix(u+goldenRatio64))})
}

type pcgSource struct {
	src *randv2.PCG
}

func (s *pcgSource) Int63() int64 {
	return int64(s.src.Uint64() >> 1)
}

func (s *pcgSource) Seed(seed int64) {
	u := uint64(seed)
	s.src = randv2.NewPCG(mix(u), mix(u+goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
