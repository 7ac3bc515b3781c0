// Package engine runs single-site Metropolis-Hastings over models written as
// plain Go functions.
//
// A model declares named random variables against a *Simulation:
//
//	model := func(sim *engine.Simulation) error {
//	    mu := sim.Normal("mu", 0, 10)
//	    sim.ObserveNormalVec("y", engine.Repeat(mu, len(data)), engine.Repeat(1, len(data)), data)
//	    return nil
//	}
//
//	sim, err := engine.Simulate(model, engine.WithSeed(1))
//	for i := 0; i < 10000; i++ {
//	    if err := engine.Transition(sim, model); err != nil { ... }
//	}
//	posterior := sim.Trace("mu")
//
// The first execution samples every site. Each later execution nudges every
// latent site by a Normal(0, 0.2) step, re-asserts observed sites, and keeps
// or rolls back the whole assignment based on the change in joint log
// probability. Site names must be stable across executions.
//
// A Simulation is not safe for concurrent use.
package engine
