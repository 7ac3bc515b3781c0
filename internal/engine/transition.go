package engine

import (
	"fmt"
	"math"
)

// Step describes one completed transition.
type Step struct {
	Generation uint64  `json:"generation"`
	Accepted   bool    `json:"accepted"`
	Before     float64 `json:"before"`
	After      float64 `json:"after"`
	// NewSites counts sites that first appeared during this step. When it is
	// non-zero Before and After cover different factor sets.
	NewSites int `json:"new_sites,omitempty"`
}

// Simulate creates a Simulation and runs model once to declare and sample
// every site.
func Simulate(model Model, opts ...Option) (*Simulation, error) {
	sim, err := newSimulation(opts...)
	if err != nil {
		return nil, err
	}
	if err := sim.execute(model); err != nil {
		return nil, fmt.Errorf("initial execution: %w", err)
	}
	sim.logger.Debug("simulation initialized", "sites", len(sim.factors),
		"log_prob", sim.JointLogProbability())
	return sim, nil
}

// Transition performs one Metropolis-Hastings step on sim.
func Transition(sim *Simulation, model Model) error {
	_, err := TransitionStep(sim, model)
	return err
}

// TransitionStep performs one Metropolis-Hastings step and reports its
// outcome.
//
// The model is re-executed so every latent site takes a random-walk step.
// The new assignment is kept with probability min(1, exp(after-before));
// otherwise the factor set is rolled back, dropping any sites created during
// the step. Every present site's value is then appended to its trace.
//
// If the model fails or violates its naming contract, the step is rolled
// back, nothing is appended and the error is returned.
func TransitionStep(sim *Simulation, model Model) (Step, error) {
	before := sim.JointLogProbability()
	snap := sim.snapshot()
	sim.generation++
	step := Step{Generation: sim.generation, Before: before}

	if err := sim.execute(model); err != nil {
		sim.restore(snap)
		return step, fmt.Errorf("transition %d: %w", sim.generation, err)
	}

	step.After = sim.JointLogProbability()
	step.NewSites = len(sim.factors) - len(snap.factors)
	step.Accepted = accept(before, step.After, sim.src.Float64())
	if !step.Accepted {
		sim.restore(snap)
	}

	sim.appendTrace()
	sim.transitions++

	sim.logger.Debug("transition",
		"generation", step.Generation,
		"accepted", step.Accepted,
		"before", before,
		"after", step.After,
		"new_sites", step.NewSites)
	return step, nil
}

// accept is the Metropolis test on log probabilities with threshold u in
// (0, 1). An improvement is always accepted, a move to -Inf never is, and a
// NaN difference rejects.
func accept(before, after, u float64) bool {
	switch {
	case after >= before:
		return true
	case math.IsInf(after, -1):
		return false
	}
	return math.Log(u) <= after-before
}
