package engine

import "math"

// JointLogProbability sums the log densities of every factor at its current
// value. Out-of-support values give -Inf; NaN contributions are reported as
// -Inf so callers only ever see a number or -Inf.
func (s *Simulation) JointLogProbability() float64 {
	total := 0.0
	for _, f := range s.factors {
		total += f.LogProb()
	}
	if math.IsNaN(total) {
		return math.Inf(-1)
	}
	return total
}
