// Package randval draws the random values measurements are made of.
package randval

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Config is the configuration for the value sampler.
type Config struct {
	// StdDev is the standard deviation of the normal distribution
	// sampled around each station's mean.
	StdDev float64

	// MinValue and MaxValue bound every sample. Samples outside
	// the range are clamped to it.
	MinValue float64
	MaxValue float64

	// Seed is the random number generator seed. Use `0` for
	// the seed based on current time and completely random
	// sequences.
	Seed int64
}

// DefaultConfig returns a copy of default config.
// The random seed is based on current time.
func DefaultConfig() Config {
	return Config{
		StdDev:   10.0,
		MinValue: -99.9,
		MaxValue: 99.9,
		Seed:     0,
	}
}

// Sampler picks stations and draws clamped normal samples.
// It is not safe for concurrent use.
type Sampler struct {
	config Config
	rand   *rand.Rand

	// normal shares rand, Mu is set per draw.
	normal distuv.Normal
}

// NewSampler creates new sampler.
func NewSampler(config Config) *Sampler {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rnd := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))

	return &Sampler{
		config: config,
		rand:   rnd,
		normal: distuv.Normal{
			Sigma: config.StdDev,
			Src:   rnd,
		},
	}
}

// Intn returns a uniform index in [0, n). It panics if n <= 0.
func (s *Sampler) Intn(n int) int {
	return s.rand.IntN(n)
}

// Next draws a value from Normal(mean, StdDev²) clamped into
// [MinValue, MaxValue].
func (s *Sampler) Next(mean float64) float64 {
	s.normal.Mu = mean
	return s.Clamp(s.normal.Rand())
}

// Clamp limits v to [MinValue, MaxValue].
func (s *Sampler) Clamp(v float64) float64 {
	v = math.Min(v, s.config.MaxValue)
	v = math.Max(v, s.config.MinValue)
	return v
}
