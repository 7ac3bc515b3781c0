// Package tracestat summarizes chain traces: location, spread, quantiles,
// and a one-sample Kolmogorov-Smirnov distance against a reference CDF.
package tracestat

import (
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Quantile is one empirical quantile of a trace.
type Quantile struct {
	P     float64 `json:"p"`
	Value float64 `json:"value"`
}

// Summary describes one site's retained trace.
type Summary struct {
	Site      string     `json:"site"`
	N         int        `json:"n"`
	Mean      float64    `json:"mean"`
	StdDev    float64    `json:"sd"`
	Min       float64    `json:"min"`
	Max       float64    `json:"max"`
	Quantiles []Quantile `json:"quantiles,omitempty"`
}

// Window drops the first burnIn values and keeps every thin-th value after
// that. thin < 1 is treated as 1.
func Window(xs []float64, burnIn, thin int) []float64 {
	if thin < 1 {
		thin = 1
	}
	if burnIn < 0 {
		burnIn = 0
	}
	if burnIn >= len(xs) {
		return nil
	}
	out := make([]float64, 0, (len(xs)-burnIn+thin-1)/thin)
	for i := burnIn; i < len(xs); i += thin {
		out = append(out, xs[i])
	}
	return out
}

// Summarize computes the summary of xs. An empty trace yields N == 0 and NaN
// statistics.
func Summarize(site string, xs []float64, ps []float64) Summary {
	s := Summary{Site: site, N: len(xs)}
	if len(xs) == 0 {
		nan := math.NaN()
		s.Mean, s.StdDev, s.Min, s.Max = nan, nan, nan, nan
		return s
	}

	s.Mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		s.StdDev = stat.StdDev(xs, nil)
	}
	s.Min = floats.Min(xs)
	s.Max = floats.Max(xs)

	if len(ps) > 0 {
		sorted := slices.Clone(xs)
		sort.Float64s(sorted)
		for _, p := range ps {
			s.Quantiles = append(s.Quantiles, Quantile{
				P:     p,
				Value: stat.Quantile(p, stat.Empirical, sorted, nil),
			})
		}
	}
	return s
}

// SummarizeAll windows and summarizes every trace, ordered by site name.
func SummarizeAll(traces map[string][]float64, burnIn, thin int, ps []float64) []Summary {
	names := make([]string, 0, len(traces))
	for name := range traces {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Summary, 0, len(names))
	for _, name := range names {
		out = append(out, Summarize(name, Window(traces[name], burnIn, thin), ps))
	}
	return out
}

// KolmogorovSmirnov returns sup |F_n(x) - cdf(x)| for the empirical CDF F_n of
// xs. It returns NaN for an empty sample.
func KolmogorovSmirnov(xs []float64, cdf func(float64) float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(xs)
	sort.Float64s(sorted)

	d := 0.0
	for i, x := range sorted {
		f := cdf(x)
		lo := f - float64(i)/float64(n)
		hi := float64(i+1)/float64(n) - f
		d = math.Max(d, math.Max(lo, hi))
	}
	return d
}
