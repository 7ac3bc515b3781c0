package engine

import (
	"math"
	"testing"

	"github.com/nvandessel/jiggle/internal/dist"
)

func TestJointLogProbability(t *testing.T) {
	tests := []struct {
		name  string
		model Model
		want  float64
	}{
		{
			name: "empty",
			model: func(sim *Simulation) error {
				return nil
			},
			want: 0,
		},
		{
			name: "sum of observed terms",
			model: func(sim *Simulation) error {
				sim.ObserveNormal("a", 0, 1, 0)
				sim.ObserveExponential("b", 2, 1)
				sim.ObserveUniform("c", 0, 4, 1)
				return nil
			},
			want: -0.5*math.Log(2*math.Pi) + (math.Log(2) - 2) - math.Log(4),
		},
		{
			name: "uniform outside support",
			model: func(sim *Simulation) error {
				sim.ObserveNormal("a", 0, 1, 0)
				sim.ObserveUniform("c", 0, 1, 2)
				return nil
			},
			want: math.Inf(-1),
		},
		{
			name: "degenerate parameters",
			model: func(sim *Simulation) error {
				sim.ObserveNormal("a", 0, 0, 0)
				return nil
			},
			want: math.Inf(-1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := mustSimulate(t, tt.model, WithSeed(1))
			got := sim.JointLogProbability()
			if math.IsInf(tt.want, -1) {
				if !math.IsInf(got, -1) {
					t.Errorf("JointLogProbability() = %v, want -Inf", got)
				}
				return
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("JointLogProbability() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJointLogProbability_NaNBecomesNegInf(t *testing.T) {
	sim := mustSimulate(t, func(sim *Simulation) error {
		sim.ObserveNormal("a", 0, 1, math.NaN())
		return nil
	}, WithSeed(1))
	if got := sim.JointLogProbability(); !math.IsInf(got, -1) {
		t.Errorf("JointLogProbability() = %v, want -Inf", got)
	}
}

func TestFactor_LogProb(t *testing.T) {
	f := Factor{Name: "x", Family: dist.Exponential, Params: []float64{3}, Value: 0.5}
	want := math.Log(3) - 1.5
	if got := f.LogProb(); math.Abs(got-want) > 1e-12 {
		t.Errorf("LogProb() = %v, want %v", got, want)
	}
}
