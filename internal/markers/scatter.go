package markers

import (
	"math"
	"math/rand/v2"
)

// Bounds is the box markers are scattered in, in degrees.
type Bounds struct {
	LatMin float64 `json:"lat_min"`
	LatMax float64 `json:"lat_max"`
	LngMin float64 `json:"lng_min"`
	LngMax float64 `json:"lng_max"`
}

// DefaultBounds covers Greater London and the home counties.
var DefaultBounds = Bounds{LatMin: 51.3, LatMax: 51.8, LngMin: -0.4, LngMax: 0.3}

// DefaultPrecision is the number of decimal digits kept per coordinate.
const DefaultPrecision = 3

// Scatter produces pseudo-random marker positions. The positions carry no
// meaning beyond visual spread.
type Scatter struct {
	bounds    Bounds
	precision int
	rng       *rand.Rand
}

// NewScatter returns a scatter over b. A nil src seeds from the runtime.
// Reversed bounds are accepted.
func NewScatter(b Bounds, precision int, src rand.Source) *Scatter {
	if b.LatMin > b.LatMax {
		b.LatMin, b.LatMax = b.LatMax, b.LatMin
	}
	if b.LngMin > b.LngMax {
		b.LngMin, b.LngMax = b.LngMax, b.LngMin
	}
	if precision < 0 {
		precision = DefaultPrecision
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Scatter{bounds: b, precision: precision, rng: rand.New(src)}
}

// Bounds returns the normalised box.
func (s *Scatter) Bounds() Bounds { return s.bounds }

// Next samples one position, uniform per axis.
func (s *Scatter) Next() (lat, lng float64) {
	lat = s.sample(s.bounds.LatMin, s.bounds.LatMax)
	lng = s.sample(s.bounds.LngMin, s.bounds.LngMax)
	return lat, lng
}

func (s *Scatter) sample(lo, hi float64) float64 {
	v := lo + s.rng.Float64()*(hi-lo)
	return round(v, s.precision)
}

func round(v float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*p) / p
}
