package simulation

import (
	"github.com/nvandessel/jiggle/internal/engine"
	"github.com/nvandessel/jiggle/internal/tracestat"
)

// Scenario defines one chain run.
type Scenario struct {
	Name  string
	Model engine.Model

	Steps  int // transitions after initialization
	BurnIn int // leading transitions left out of the retained sample
	Thin   int // keep every Thin-th transition after burn-in; 0 means 1

	// Seed seeds the chain. 0 draws a random seed, reported in Result.Seed.
	Seed uint64

	// ProposalScale is the random-walk standard deviation; 0 uses the default.
	ProposalScale float64

	// Quantiles are the probabilities summarized per site; nil uses the
	// defaults.
	Quantiles []float64

	// OnSample, when non-nil, receives every retained sample as it is drawn.
	// A returned error stops the chain.
	OnSample func(Sample) error
}

// Sample is the state of every site after one retained transition.
type Sample struct {
	Run    string             `json:"run"`
	Step   int                `json:"step"`
	Values map[string]float64 `json:"values"`
}

// Result captures a finished (or interrupted) chain.
type Result struct {
	Name           string  `json:"name"`
	Seed           uint64  `json:"seed"`
	Steps          int     `json:"steps"`
	Accepted       int     `json:"accepted"`
	Rejected       int     `json:"rejected"`
	AcceptanceRate float64 `json:"acceptance_rate"`

	// Interrupted is set when the context was cancelled before Steps
	// transitions completed.
	Interrupted bool `json:"interrupted,omitempty"`

	Summaries []tracestat.Summary `json:"summaries"`

	// Retained maps each site to its values at retained transitions. A site
	// that first appeared after burn-in has a shorter slice.
	Retained map[string][]float64 `json:"-"`

	// Sim is the final chain state, including full unthinned traces.
	Sim *engine.Simulation `json:"-"`
}
