package rootsys

import (
	"math/rand/v2"
)

// rng wraps a PCG source so its state can be duplicated. Copying a root
// system copies the source bit for bit, which keeps the copy replaying the
// original's draw sequence.
type rng struct {
	src *rand.PCG
	*rand.Rand
}

func newRNG(seed int64) *rng {
	src := rand.NewPCG(uint64(seed), uint64(seed)*0x9e3779b97f4a7c15+1)
	return &rng{src: src, Rand: rand.New(src)}
}

func (r *rng) clone() *rng {
	buf, err := r.src.MarshalBinary()
	if err != nil {
		// PCG marshaling cannot fail; fall back to a fresh source rather
		// than sharing one across system copies.
		return newRNG(0)
	}
	src := &rand.PCG{}
	if err := src.UnmarshalBinary(buf); err != nil {
		return newRNG(0)
	}
	return &rng{src: src, Rand: rand.New(src)}
}
