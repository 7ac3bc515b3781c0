package engine

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/nvandessel/jiggle/internal/constants"
	"github.com/nvandessel/jiggle/internal/dist"
	"github.com/nvandessel/jiggle/internal/logging"
)

// updateSite is the sample-or-step rule. A new site is sampled (or set to its
// observation). An existing latent site takes a Normal(0, scale) step. An
// existing observed site is re-asserted. The site's resulting value is
// returned; on a contract violation the existing value is returned unchanged.
func (s *Simulation) updateSite(name string, fam dist.Family, params []float64, obs Obs) float64 {
	if name == "" {
		s.fail(name, ErrEmptyName, "")
		return 0
	}
	if !fam.Valid() {
		s.fail(name, ErrUnknownFamily, fam.String())
		return 0
	}
	if len(params) != fam.Arity() {
		s.fail(name, ErrArity, fmt.Sprintf("%s takes %d, got %d", fam, fam.Arity(), len(params)))
		if i, ok := s.index[name]; ok {
			return s.factors[i].Value
		}
		return 0
	}
	if s.declared != nil {
		if _, dup := s.declared[name]; dup {
			s.fail(name, ErrDuplicateSite, "")
			if i, ok := s.index[name]; ok {
				return s.factors[i].Value
			}
			return 0
		}
		s.declared[name] = struct{}{}
	}

	i, ok := s.index[name]
	if !ok {
		f := Factor{
			Name:     name,
			Family:   fam,
			Params:   slices.Clone(params),
			Observed: obs.observed,
		}
		if obs.observed {
			f.Value = obs.value
		} else {
			f.Value = fam.Sample(s.src, f.Params)
		}
		s.index[name] = len(s.factors)
		s.factors = append(s.factors, f)
		return f.Value
	}

	f := &s.factors[i]
	switch {
	case f.Family != fam:
		s.fail(name, ErrFamilyChanged, fmt.Sprintf("was %s, now %s", f.Family, fam))
		return f.Value
	case len(f.Params) != len(params):
		s.fail(name, ErrArityChanged, fmt.Sprintf("was %d, now %d", len(f.Params), len(params)))
		return f.Value
	case f.Observed != obs.observed:
		s.fail(name, ErrObservedChanged, "")
		return f.Value
	}

	if obs.observed {
		if !slices.Equal(f.Params, params) {
			f.Params = slices.Clone(params)
		}
		f.Value = obs.value
		return f.Value
	}

	from := f.Value
	f.Value += s.scale * dist.BoxMuller(s.src)
	if s.logger.Enabled(context.Background(), logging.LevelTrace) {
		s.logger.Log(context.Background(), logging.LevelTrace, "proposal",
			"site", name, "from", from, "to", f.Value)
	}
	return f.Value
}

// Declare declares a scalar site and returns its value.
func (s *Simulation) Declare(name string, fam dist.Family, params []float64, obs Obs) float64 {
	return s.updateSite(name, fam, params, obs)
}

// DeclareVec declares a family of scalar sites name_0 .. name_{n-1}. Each
// entry of params is one distribution parameter as a vector of length n;
// element i of every vector parameterizes site i. obs is nil for an all-latent
// family or has length n.
//
// On a shape mismatch the violation is recorded and a zero vector of the
// first parameter's length is returned so the model can finish executing.
func (s *Simulation) DeclareVec(name string, fam dist.Family, params [][]float64, obs []Obs) []float64 {
	if !fam.Valid() {
		s.fail(name, ErrUnknownFamily, fam.String())
		return nil
	}
	if len(params) != fam.Arity() || len(params) == 0 {
		s.fail(name, ErrArity, fmt.Sprintf("%s takes %d parameter vectors, got %d", fam, fam.Arity(), len(params)))
		if len(params) > 0 {
			return make([]float64, len(params[0]))
		}
		return nil
	}

	n := len(params[0])
	for k, p := range params[1:] {
		if len(p) != n {
			s.fail(name, ErrShape, fmt.Sprintf("%s has length %d, %s has length %d",
				fam.ParamNames()[0], n, fam.ParamNames()[k+1], len(p)))
			return make([]float64, n)
		}
	}
	if obs != nil && len(obs) != n {
		s.fail(name, ErrShape, fmt.Sprintf("%d parameters but %d observations", n, len(obs)))
		return make([]float64, n)
	}

	out := make([]float64, n)
	args := make([]float64, len(params))
	for i := 0; i < n; i++ {
		for k := range params {
			args[k] = params[k][i]
		}
		o := Latent
		if obs != nil {
			o = obs[i]
		}
		out[i] = s.updateSite(SiteName(name, i), fam, args, o)
	}
	return out
}

// SiteName is the site name of element i of vector declaration name.
func SiteName(name string, i int) string {
	return name + constants.VectorSiteSeparator + strconv.Itoa(i)
}

// Uniform declares a latent Uniform(a, b) site.
func (s *Simulation) Uniform(name string, a, b float64) float64 {
	return s.updateSite(name, dist.Uniform, []float64{a, b}, Latent)
}

// Normal declares a latent Normal(mu, sigma) site.
func (s *Simulation) Normal(name string, mu, sigma float64) float64 {
	return s.updateSite(name, dist.Normal, []float64{mu, sigma}, Latent)
}

// Exponential declares a latent Exponential(lambda) site.
func (s *Simulation) Exponential(name string, lambda float64) float64 {
	return s.updateSite(name, dist.Exponential, []float64{lambda}, Latent)
}

// ObserveUniform declares a Uniform(a, b) site fixed to x.
func (s *Simulation) ObserveUniform(name string, a, b, x float64) float64 {
	return s.updateSite(name, dist.Uniform, []float64{a, b}, Observed(x))
}

// ObserveNormal declares a Normal(mu, sigma) site fixed to x.
func (s *Simulation) ObserveNormal(name string, mu, sigma, x float64) float64 {
	return s.updateSite(name, dist.Normal, []float64{mu, sigma}, Observed(x))
}

// ObserveExponential declares an Exponential(lambda) site fixed to x.
func (s *Simulation) ObserveExponential(name string, lambda, x float64) float64 {
	return s.updateSite(name, dist.Exponential, []float64{lambda}, Observed(x))
}

// UniformVec declares latent sites name_i ~ Uniform(a[i], b[i]).
func (s *Simulation) UniformVec(name string, a, b []float64) []float64 {
	return s.DeclareVec(name, dist.Uniform, [][]float64{a, b}, nil)
}

// NormalVec declares latent sites name_i ~ Normal(mu[i], sigma[i]).
func (s *Simulation) NormalVec(name string, mu, sigma []float64) []float64 {
	return s.DeclareVec(name, dist.Normal, [][]float64{mu, sigma}, nil)
}

// ExponentialVec declares latent sites name_i ~ Exponential(lambda[i]).
func (s *Simulation) ExponentialVec(name string, lambda []float64) []float64 {
	return s.DeclareVec(name, dist.Exponential, [][]float64{lambda}, nil)
}

// ObserveUniformVec declares sites name_i ~ Uniform(a[i], b[i]) fixed to xs[i].
func (s *Simulation) ObserveUniformVec(name string, a, b, xs []float64) []float64 {
	return s.DeclareVec(name, dist.Uniform, [][]float64{a, b}, ObservedAll(xs))
}

// ObserveNormalVec declares sites name_i ~ Normal(mu[i], sigma[i]) fixed to xs[i].
func (s *Simulation) ObserveNormalVec(name string, mu, sigma, xs []float64) []float64 {
	return s.DeclareVec(name, dist.Normal, [][]float64{mu, sigma}, ObservedAll(xs))
}

// ObserveExponentialVec declares sites name_i ~ Exponential(lambda[i]) fixed to xs[i].
func (s *Simulation) ObserveExponentialVec(name string, lambda, xs []float64) []float64 {
	return s.DeclareVec(name, dist.Exponential, [][]float64{lambda}, ObservedAll(xs))
}
