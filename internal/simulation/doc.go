// Package simulation runs Metropolis-Hastings chains to completion and
// collects what a caller needs from them: retained samples after burn-in and
// thinning, acceptance counts and per-site summaries.
//
// The runner drives the real engine with no mocks. Each transition's outcome
// is logged at debug level and, when a DecisionLogger is attached, appended to
// the decision log. A cancelled context stops the chain between transitions
// and the partial result is returned.
//
// The Assert helpers check chain output in tests:
//
//	func TestUniformCoverage(t *testing.T) {
//	    r := simulation.NewRunner(nil, nil)
//	    res, err := r.Run(context.Background(), simulation.Scenario{
//	        Name:   "uniform",
//	        Model:  models.Uniform,
//	        Steps:  20000,
//	        BurnIn: 500,
//	        Seed:   1,
//	    })
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    simulation.AssertUniformKS(t, res.Retained["x"], 0, 1, 0.06)
//	}
package simulation
