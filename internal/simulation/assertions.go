package simulation

import (
	"math"
	"testing"

	"github.com/nvandessel/jiggle/internal/engine"
	"github.com/nvandessel/jiggle/internal/tracestat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// AssertTraceLen asserts that site's full trace has exactly want entries.
func AssertTraceLen(t *testing.T, sim *engine.Simulation, site string, want int) {
	t.Helper()
	if got := len(sim.Trace(site)); got != want {
		t.Errorf("AssertTraceLen: site %s has %d trace entries, want %d", site, got, want)
	}
}

// AssertUniformKS asserts that xs is within Kolmogorov-Smirnov distance maxD
// of Uniform(a, b).
func AssertUniformKS(t *testing.T, xs []float64, a, b, maxD float64) {
	t.Helper()
	if len(xs) == 0 {
		t.Errorf("AssertUniformKS: empty sample")
		return
	}
	ref := distuv.Uniform{Min: a, Max: b}
	d := tracestat.KolmogorovSmirnov(xs, ref.CDF)
	if !(d <= maxD) {
		t.Errorf("AssertUniformKS: KS distance %.4f to Uniform(%g, %g) exceeds %.4f (n=%d)", d, a, b, maxD, len(xs))
	}
}

// AssertMeanNear asserts that the sample mean of xs is within tol of want.
func AssertMeanNear(t *testing.T, xs []float64, want, tol float64) {
	t.Helper()
	if len(xs) == 0 {
		t.Errorf("AssertMeanNear: empty sample")
		return
	}
	got := stat.Mean(xs, nil)
	if !(math.Abs(got-want) <= tol) {
		t.Errorf("AssertMeanNear: mean %.4f not within %.4f of %.4f (n=%d)", got, tol, want, len(xs))
	}
}

// AssertAcceptanceRate asserts that the chain's acceptance rate lies in
// [min, max].
func AssertAcceptanceRate(t *testing.T, res *Result, min, max float64) {
	t.Helper()
	if res.AcceptanceRate < min || res.AcceptanceRate > max {
		t.Errorf("AssertAcceptanceRate: %s accepted %.3f of %d steps, want [%.3f, %.3f]",
			res.Name, res.AcceptanceRate, res.Steps, min, max)
	}
}
