package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/nvandessel/jiggle/internal/constants"
	"github.com/nvandessel/jiggle/internal/engine"
	"github.com/nvandessel/jiggle/internal/logging"
	"github.com/nvandessel/jiggle/internal/tracestat"
)

// Runner executes scenarios against the engine.
type Runner struct {
	logger    *slog.Logger
	decisions *logging.DecisionLogger
	metrics   *Metrics
}

// NewRunner creates a runner. Both arguments may be nil: a nil logger
// discards output and a nil DecisionLogger records nothing.
func NewRunner(logger *slog.Logger, decisions *logging.DecisionLogger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{logger: logger, decisions: decisions}
}

// WithMetrics attaches collectors updated after every transition.
func (r *Runner) WithMetrics(m *Metrics) *Runner {
	r.metrics = m
	return r
}

// Run initializes the scenario's model and performs its transitions.
//
// ctx is checked before every transition. On cancellation Run returns the
// partial result with Interrupted set and a nil error. A failing transition
// (model error or contract violation) ends the run with that error.
func (r *Runner) Run(ctx context.Context, sc Scenario) (*Result, error) {
	if err := validate(sc); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	thin := sc.Thin
	if thin == 0 {
		thin = constants.DefaultThin
	}
	scale := sc.ProposalScale
	if scale == 0 {
		scale = constants.DefaultProposalScale
	}
	quantiles := sc.Quantiles
	if quantiles == nil {
		quantiles = constants.SummaryQuantiles
	}
	seed := sc.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}

	logger := r.logger.With("run", sc.Name)
	sim, err := engine.Simulate(sc.Model,
		engine.WithSeed(seed),
		engine.WithProposalScale(scale),
		engine.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}

	res := &Result{
		Name:     sc.Name,
		Seed:     seed,
		Retained: make(map[string][]float64),
		Sim:      sim,
	}

	for i := 0; i < sc.Steps; i++ {
		if ctx.Err() != nil {
			res.Interrupted = true
			logger.Info("chain interrupted", "completed", res.Steps, "requested", sc.Steps)
			break
		}

		step, err := engine.TransitionStep(sim, sc.Model)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		res.Steps++
		if step.Accepted {
			res.Accepted++
		} else {
			res.Rejected++
		}
		r.decisions.LogDecision(logging.Decision{
			Run:        sc.Name,
			Generation: step.Generation,
			Accepted:   step.Accepted,
			Before:     step.Before,
			After:      step.After,
			NewSites:   step.NewSites,
		})
		r.metrics.observe(sc.Name, step)

		if i < sc.BurnIn || (i-sc.BurnIn)%thin != 0 {
			continue
		}
		sample := Sample{Run: sc.Name, Step: i, Values: make(map[string]float64, sim.Len())}
		for _, f := range sim.Factors() {
			res.Retained[f.Name] = append(res.Retained[f.Name], f.Value)
			sample.Values[f.Name] = f.Value
		}
		if sc.OnSample != nil {
			if err := sc.OnSample(sample); err != nil {
				return nil, fmt.Errorf("scenario %q: sample %d: %w", sc.Name, i, err)
			}
		}
	}

	if res.Steps > 0 {
		res.AcceptanceRate = float64(res.Accepted) / float64(res.Steps)
	}
	res.Summaries = tracestat.SummarizeAll(res.Retained, 0, 1, quantiles)

	logger.Debug("chain finished",
		"steps", res.Steps,
		"accepted", res.Accepted,
		"acceptance_rate", res.AcceptanceRate,
		"sites", sim.Len())
	return res, nil
}

func validate(sc Scenario) error {
	switch {
	case sc.Model == nil:
		return fmt.Errorf("no model")
	case sc.Steps < 0:
		return fmt.Errorf("steps must be non-negative, got %d", sc.Steps)
	case sc.BurnIn < 0:
		return fmt.Errorf("burn-in must be non-negative, got %d", sc.BurnIn)
	case sc.Thin < 0:
		return fmt.Errorf("thin must be positive, got %d", sc.Thin)
	}
	return nil
}
