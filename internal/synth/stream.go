package synth

import (
	"fmt"
	"gonum.org/v1/gonum/mathext/prng"
	"gonum.org/v1/gonum/stat/distuv"
	"math"
	"math/rand/v2"
)

type StreamKind string

const (
	// StreamLegacy draws every column from one shared MT19937 stream and
	// reproduces numpy RandomState output for the same seed.
	StreamLegacy StreamKind = "legacy"
	// StreamIndependent gives each column its own PCG stream derived from
	// the seed and the column position.
	StreamIndependent StreamKind = "independent"
)

func ParseStreamKind(s string) (StreamKind, error) {
	switch k := StreamKind(s); k {
	case StreamLegacy, StreamIndependent:
		return k, nil
	}
	return "", fmt.Errorf("unknown stream %q, expected %q or %q", s, StreamLegacy, StreamIndependent)
}

// stream produces whole columns of draws. Calls consume the underlying
// generator in call order.
type stream interface {
	// integers draws n values uniformly from [lo, hi).
	integers(lo, hi, n int) []int
	normal(n int) []float64
	uniform(n int) []float64
	// choice draws n indexes into weights, with P(i) proportional to weights[i].
	choice(weights []float64, n int) []int
}

func newStream(kind StreamKind, seed uint32) stream {
	if kind == StreamIndependent {
		return &independentStream{seed: uint64(seed)}
	}
	return newLegacyStream(seed)
}

type legacyStream struct {
	mt *prng.MT19937

	// second deviate of the last polar draw, kept across columns
	hasGauss bool
	gauss    float64
}

func newLegacyStream(seed uint32) *legacyStream {
	mt := prng.NewMT19937()
	mt.Seed(uint64(seed))
	return &legacyStream{mt: mt}
}

// double returns a 53-bit float in [0, 1) built from two 32-bit words.
func (s *legacyStream) double() float64 {
	a := s.mt.Uint32() >> 5
	b := s.mt.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) / 9007199254740992.0
}

// bounded returns a value in [0, rng] by masked rejection.
func (s *legacyStream) bounded(rng uint32) uint32 {
	if rng == 0 {
		return 0
	}
	mask := rng
	mask |= mask >> 1
	mask |= mask >> 2
	mask |= mask >> 4
	mask |= mask >> 8
	mask |= mask >> 16
	for {
		if v := s.mt.Uint32() & mask; v <= rng {
			return v
		}
	}
}

func (s *legacyStream) gaussian() float64 {
	if s.hasGauss {
		s.hasGauss = false
		return s.gauss
	}
	var x1, x2, r2 float64
	for {
		x1 = 2*s.double() - 1
		x2 = 2*s.double() - 1
		r2 = x1*x1 + x2*x2
		if r2 < 1 && r2 != 0 {
			break
		}
	}
	f := math.Sqrt(-2 * math.Log(r2) / r2)
	s.gauss = f * x1
	s.hasGauss = true
	return f * x2
}

func (s *legacyStream) integers(lo, hi, n int) []int {
	rng := uint32(hi - 1 - lo)
	out := make([]int, n)
	for i := range out {
		out[i] = lo + int(s.bounded(rng))
	}
	return out
}

func (s *legacyStream) normal(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.gaussian()
	}
	return out
}

func (s *legacyStream) uniform(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.double()
	}
	return out
}

func (s *legacyStream) choice(weights []float64, n int) []int {
	cdf := make([]float64, len(weights))
	var sum float64
	for i, w := range weights {
		sum += w
		cdf[i] = sum
	}
	total := cdf[len(cdf)-1]
	for i := range cdf {
		cdf[i] /= total
	}

	out := make([]int, n)
	for i := range out {
		u := s.double()
		// searchsorted, side=right
		k := 0
		for k < len(cdf)-1 && cdf[k] <= u {
			k++
		}
		out[i] = k
	}
	return out
}

type independentStream struct {
	seed   uint64
	column uint64
}

// next returns a fresh source for the next column.
func (s *independentStream) next() rand.Source {
	s.column++
	return rand.NewPCG(s.seed, s.column)
}

func (s *independentStream) integers(lo, hi, n int) []int {
	r := rand.New(s.next())
	out := make([]int, n)
	for i := range out {
		out[i] = lo + r.IntN(hi-lo)
	}
	return out
}

func (s *independentStream) normal(n int) []float64 {
	d := distuv.Normal{Mu: 0, Sigma: 1, Src: s.next()}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}

func (s *independentStream) uniform(n int) []float64 {
	d := distuv.Uniform{Min: 0, Max: 1, Src: s.next()}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}

func (s *independentStream) choice(weights []float64, n int) []int {
	d := distuv.NewCategorical(weights, s.next())
	out := make([]int, n)
	for i := range out {
		out[i] = int(d.Rand())
	}
	return out
}
