package engine

// Obs tags a declaration as latent or observed.
type Obs struct {
	value    float64
	observed bool
}

// Latent marks a site whose value the chain infers.
var Latent = Obs{}

// Observed marks a site fixed to v.
func Observed(v float64) Obs {
	return Obs{value: v, observed: true}
}

// IsObserved reports whether o carries an observation.
func (o Obs) IsObserved() bool {
	return o.observed
}

// Value returns the observation and whether there is one.
func (o Obs) Value() (float64, bool) {
	return o.value, o.observed
}

// ObservedAll tags every element of xs as observed.
func ObservedAll(xs []float64) []Obs {
	out := make([]Obs, len(xs))
	for i, x := range xs {
		out[i] = Observed(x)
	}
	return out
}

// Repeat returns a slice of n copies of x, for broadcasting a scalar parameter
// across a vector declaration.
func Repeat(x float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = x
	}
	return out
}
