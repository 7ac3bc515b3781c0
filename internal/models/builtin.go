package models

import (
	"github.com/nvandessel/jiggle/internal/engine"
)

func init() {
	register(Builtin{
		Name:        "uniform",
		Description: "single latent x ~ Uniform(0, 1); the chain should cover the unit interval evenly",
		build: func([]float64) engine.Model {
			return Uniform
		},
	})
	register(Builtin{
		Name:        "normal-mean",
		Description: "mu ~ Normal(0, 10), data_i ~ Normal(mu, 1); posterior over the mean of the data",
		UsesData:    true,
		DefaultData: []float64{1.2, 0.8, 1.9, 1.4, 0.6, 1.1, 1.7, 0.9},
		build:       NormalMean,
	})
	register(Builtin{
		Name:        "exponential-rate",
		Description: "lambda ~ Uniform(0.01, 20), data_i ~ Exponential(lambda); posterior over the rate",
		UsesData:    true,
		DefaultData: []float64{0.31, 0.12, 0.58, 0.07, 0.44, 0.26, 0.19, 0.93, 0.15, 0.38},
		build:       ExponentialRate,
	})
	register(Builtin{
		Name:        "normal-pair",
		Description: "two independent latent sites v_0, v_1 ~ Normal(0, 1) declared as one vector",
		build: func([]float64) engine.Model {
			return NormalPair
		},
	})
}

// Uniform declares x ~ Uniform(0, 1).
func Uniform(sim *engine.Simulation) error {
	sim.Uniform("x", 0, 1)
	return nil
}

// NormalMean returns a model inferring the mean of data under a unit-variance
// normal likelihood.
func NormalMean(data []float64) engine.Model {
	return func(sim *engine.Simulation) error {
		mu := sim.Normal("mu", 0, 10)
		n := len(data)
		sim.ObserveNormalVec("data", engine.Repeat(mu, n), engine.Repeat(1, n), data)
		return nil
	}
}

// ExponentialRate returns a model inferring the rate of exponentially
// distributed data.
func ExponentialRate(data []float64) engine.Model {
	return func(sim *engine.Simulation) error {
		lambda := sim.Uniform("lambda", 0.01, 20)
		sim.ObserveExponentialVec("data", engine.Repeat(lambda, len(data)), data)
		return nil
	}
}

// NormalPair declares v_0, v_1 ~ Normal(0, 1).
func NormalPair(sim *engine.Simulation) error {
	sim.NormalVec("v", []float64{0, 0}, []float64{1, 1})
	return nil
}
