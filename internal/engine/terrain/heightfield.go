package terrain

// HeightField maps a world (x, z) position to a terrain height.
// Implementations must be pure: chunk generation calls Height from
// background goroutines without synchronization.
type HeightField interface {
	Height(x, z float32) float32
}

// HeightFunc adapts a plain function to HeightField.
type HeightFunc func(x, z float32) float32

// Height implements HeightField.
func (f HeightFunc) Height(x, z float32) float32 {
	return f(x, z)
}

// Flat is a height field with constant elevation.
type Flat float32

// Height implements HeightField.
func (f Flat) Height(_, _ float32) float32 {
	return float32(f)
}

// Fractal layers octaves of Perlin noise (fBm). Each octave multiplies the
// amplitude by Persistence and the frequency by Lacunarity; the sum is
// normalised by the total amplitude and scaled by MaxHeight.
type Fractal struct {
	Noise       *Perlin
	Frequency   float32 // Base frequency of the first octave
	Octaves     int
	Persistence float32
	Lacunarity  float32
	MaxHeight   float32
}

// DefaultFractal returns the default fBm settings: base frequency 0.02,
// six octaves, persistence 0.5 and lacunarity 2.
func DefaultFractal(seed int64, maxHeight float32) Fractal {
	return Fractal{
		Noise:       NewPerlin(seed),
		Frequency:   0.02,
		Octaves:     6,
		Persistence: 0.5,
		Lacunarity:  2.0,
		MaxHeight:   maxHeight,
	}
}

// Height implements HeightField.
func (f Fractal) Height(x, z float32) float32 {
	if f.Octaves <= 0 {
		return 0
	}

	var sum, maxAmplitude float32
	frequency := f.Frequency
	amplitude := float32(1)

	for i := 0; i < f.Octaves; i++ {
		sum += f.Noise.Noise2(x*frequency, z*frequency) * amplitude

		maxAmplitude += amplitude
		amplitude *= f.Persistence
		frequency *= f.Lacunarity
	}

	return sum / maxAmplitude * f.MaxHeight
}
