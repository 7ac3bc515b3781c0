package engine

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/nvandessel/jiggle/internal/constants"
	"github.com/nvandessel/jiggle/internal/dist"
	"github.com/nvandessel/jiggle/internal/rng"
)

// Factor is one random-variable site: its distribution, parameters and
// current value. Family and Observed never change after creation. Params of a
// latent site are fixed at creation; an observed site takes the parameters of
// its latest declaration so likelihood terms follow the latents they depend on.
type Factor struct {
	Name     string      `json:"name"`
	Family   dist.Family `json:"family"`
	Params   []float64   `json:"params"`
	Value    float64     `json:"value"`
	Observed bool        `json:"observed,omitempty"`
}

// LogProb is the factor's log density at its current value.
func (f Factor) LogProb() float64 {
	return f.Family.LogPDF(f.Value, f.Params)
}

// Model is a generative model. It declares its sites against sim and must
// use the same site names on every call. Model arguments are bound by closure.
type Model func(sim *Simulation) error

// Simulation holds the factor set and trace of one chain.
//
// Factors live in an append-only arena indexed by name. Param slices are
// replaced, never mutated, so a snapshot is a shallow copy of the arena.
type Simulation struct {
	factors []Factor
	index   map[string]int
	trace   map[string][]float64

	src    rng.Source
	scale  float64
	logger *slog.Logger

	generation  uint64
	transitions int

	// per-execution state
	declared map[string]struct{}
	err      error
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithSource sets the uniform(0,1) source used for sampling, proposals and
// the accept test.
func WithSource(src rng.Source) Option {
	return func(s *Simulation) {
		s.src = src
	}
}

// WithSeed seeds a fresh rng.RNG for the simulation.
func WithSeed(seed uint64) Option {
	return func(s *Simulation) {
		s.src = rng.NewRNG(seed)
	}
}

// WithProposalScale sets the standard deviation of the random-walk step.
func WithProposalScale(scale float64) Option {
	return func(s *Simulation) {
		s.scale = scale
	}
}

// WithLogger sets the logger. Transitions log at debug, proposals at trace.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) {
		s.logger = logger
	}
}

func newSimulation(opts ...Option) (*Simulation, error) {
	s := &Simulation{
		index: make(map[string]int),
		trace: make(map[string][]float64),
		scale: constants.DefaultProposalScale,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		s.src = rng.NewRNG(rand.Uint64())
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if !(s.scale > 0) || math.IsInf(s.scale, 0) {
		return nil, fmt.Errorf("proposal scale must be positive and finite, got %v", s.scale)
	}
	return s, nil
}

// Len returns the number of factors.
func (s *Simulation) Len() int {
	return len(s.factors)
}

// Factor returns a copy of the named factor.
func (s *Simulation) Factor(name string) (Factor, bool) {
	i, ok := s.index[name]
	if !ok {
		return Factor{}, false
	}
	f := s.factors[i]
	f.Params = slices.Clone(f.Params)
	return f, true
}

// Value returns the current value of the named site.
func (s *Simulation) Value(name string) (float64, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.factors[i].Value, true
}

// Factors returns copies of all factors in creation order.
func (s *Simulation) Factors() []Factor {
	out := make([]Factor, len(s.factors))
	for i, f := range s.factors {
		f.Params = slices.Clone(f.Params)
		out[i] = f
	}
	return out
}

// Names returns the site names in creation order.
func (s *Simulation) Names() []string {
	names := make([]string, len(s.factors))
	for i, f := range s.factors {
		names[i] = f.Name
	}
	return names
}

// Trace returns a copy of the named site's value history.
func (s *Simulation) Trace(name string) []float64 {
	return slices.Clone(s.trace[name])
}

// Traces returns a copy of every site's history.
func (s *Simulation) Traces() map[string][]float64 {
	out := make(map[string][]float64, len(s.trace))
	for name, vals := range s.trace {
		out[name] = slices.Clone(vals)
	}
	return out
}

// TraceNames returns the names with a trace, sorted.
func (s *Simulation) TraceNames() []string {
	names := make([]string, 0, len(s.trace))
	for name := range s.trace {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Transitions returns the number of completed transitions.
func (s *Simulation) Transitions() int {
	return s.transitions
}

// Generation increments once per transition attempt, including failed ones.
func (s *Simulation) Generation() uint64 {
	return s.generation
}

// ProposalScale returns the random-walk standard deviation.
func (s *Simulation) ProposalScale() float64 {
	return s.scale
}

// snapshot is the arena as it was before a transition.
type snapshot struct {
	factors []Factor
}

func (s *Simulation) snapshot() snapshot {
	return snapshot{factors: slices.Clone(s.factors)}
}

// restore rolls the arena back to snap. Sites created after the snapshot sit
// past its end and are dropped from the index.
func (s *Simulation) restore(snap snapshot) {
	for _, f := range s.factors[len(snap.factors):] {
		delete(s.index, f.Name)
	}
	s.factors = snap.factors
}

func (s *Simulation) appendTrace() {
	for _, f := range s.factors {
		s.trace[f.Name] = append(s.trace[f.Name], f.Value)
	}
}

// fail records the first contract violation of the current execution.
func (s *Simulation) fail(site string, err error, detail string) {
	if s.err != nil {
		return
	}
	s.err = &ContractError{Site: site, Err: err, Detail: detail}
}

// execute runs model once against s and reports the model's error or the
// first contract violation it caused.
func (s *Simulation) execute(model Model) error {
	s.err = nil
	s.declared = make(map[string]struct{}, len(s.factors))
	defer func() { s.declared = nil }()

	if err := model(s); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if s.err != nil {
		return s.err
	}
	return nil
}
