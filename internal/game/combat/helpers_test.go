package combat

// scriptedSource returns fixed draws in order, then fallback once exhausted.
type scriptedSource struct {
	draws    []float64
	fallback float64
	used     int
}

func newScripted(fallback float64, draws ...float64) *scriptedSource {
	return &scriptedSource{draws: draws, fallback: fallback}
}

func (s *scriptedSource) Float64() float64 {
	defer func() { s.used++ }()
	if s.used < len(s.draws) {
		return s.draws[s.used]
	}
	return s.fallback
}

// constSource always returns v.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }
