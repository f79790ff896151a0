package terrain

import perlin "github.com/aquilax/go-perlin"

// Perlin is a seeded 2D gradient noise source. Octaves are layered by
// Fractal, so each sample here is a single octave. It is read-only after
// construction and safe to sample from any number of goroutines.
type Perlin struct {
	gen *perlin.Perlin
}

// NewPerlin creates a noise source whose gradient tables are shuffled by seed.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{gen: perlin.NewPerlin(2, 2, 1, seed)}
}

// Noise2 returns Perlin noise at (x, z), bounded by roughly [-0.71, 0.71].
// Integer lattice points sample to zero.
func (n *Perlin) Noise2(x, z float32) float32 {
	return float32(n.gen.Noise2D(float64(x), float64(z)))
}
