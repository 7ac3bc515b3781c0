package tracestat

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestWindow(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	tests := []struct {
		name   string
		burnIn int
		thin   int
		want   []float64
	}{
		{"all", 0, 1, xs},
		{"burn in", 7, 1, []float64{7, 8, 9}},
		{"thin", 0, 3, []float64{0, 3, 6, 9}},
		{"burn and thin", 2, 4, []float64{2, 6}},
		{"thin below one", 8, 0, []float64{8, 9}},
		{"burn past end", 10, 1, nil},
		{"negative burn", -3, 5, []float64{0, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(xs, tt.burnIn, tt.thin)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Window(%d, %d) mismatch (-want +got):\n%s", tt.burnIn, tt.thin, diff)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	xs := []float64{4, 1, 3, 2, 5}
	s := Summarize("x", xs, []float64{0.5})

	if s.Site != "x" || s.N != 5 {
		t.Errorf("Site, N = %q, %d; want x, 5", s.Site, s.N)
	}
	if s.Mean != 3 {
		t.Errorf("Mean = %v, want 3", s.Mean)
	}
	if math.Abs(s.StdDev-math.Sqrt(2.5)) > 1e-12 {
		t.Errorf("StdDev = %v, want %v", s.StdDev, math.Sqrt(2.5))
	}
	if s.Min != 1 || s.Max != 5 {
		t.Errorf("Min, Max = %v, %v; want 1, 5", s.Min, s.Max)
	}
	if len(s.Quantiles) != 1 || s.Quantiles[0].Value != 3 {
		t.Errorf("Quantiles = %+v, want median 3", s.Quantiles)
	}
	// Input must not be reordered.
	if diff := cmp.Diff([]float64{4, 1, 3, 2, 5}, xs); diff != "" {
		t.Errorf("Summarize mutated input (-want +got):\n%s", diff)
	}
}

func TestSummarize_Small(t *testing.T) {
	one := Summarize("a", []float64{7}, nil)
	if one.StdDev != 0 || one.Mean != 7 {
		t.Errorf("single value summary = %+v", one)
	}

	empty := Summarize("b", nil, []float64{0.5})
	if empty.N != 0 || !math.IsNaN(empty.Mean) || empty.Quantiles != nil {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestSummarizeAll(t *testing.T) {
	traces := map[string][]float64{
		"b": {1, 2, 3, 4},
		"a": {10, 20},
	}
	got := SummarizeAll(traces, 1, 1, nil)
	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	if got[0].Site != "a" || got[1].Site != "b" {
		t.Errorf("order = %s, %s; want a, b", got[0].Site, got[1].Site)
	}
	if got[0].N != 1 || got[1].N != 3 {
		t.Errorf("N = %d, %d; want 1, 3", got[0].N, got[1].N)
	}
}

func TestKolmogorovSmirnov(t *testing.T) {
	unit := distuv.Uniform{Min: 0, Max: 1}

	// A perfectly spaced sample sits half a step from the CDF.
	n := 100
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = (float64(i) + 0.5) / float64(n)
	}
	if d := KolmogorovSmirnov(grid, unit.CDF); math.Abs(d-0.5/float64(n)) > 1e-12 {
		t.Errorf("KS(grid) = %v, want %v", d, 0.5/float64(n))
	}

	// A sample piled at one point is far from uniform.
	piled := make([]float64, n)
	for i := range piled {
		piled[i] = 0.9
	}
	if d := KolmogorovSmirnov(piled, unit.CDF); math.Abs(d-0.9) > 1e-12 {
		t.Errorf("KS(piled) = %v, want 0.9", d)
	}

	if d := KolmogorovSmirnov(nil, unit.CDF); !math.IsNaN(d) {
		t.Errorf("KS(nil) = %v, want NaN", d)
	}
}
