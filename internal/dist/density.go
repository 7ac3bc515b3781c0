package dist

import (
	"errors"
	"fmt"
	"math"

	"github.com/nvandessel/jiggle/internal/rng"
)

// ErrParams is returned by ValidateParams when parameters fall outside the
// family's parameter space.
var ErrParams = errors.New("invalid distribution parameters")

var invSqrt2Pi = 1 / math.Sqrt(2*math.Pi)

// ValidateParams checks the parameter count and parameter space of f.
func (f Family) ValidateParams(params []float64) error {
	if !f.Valid() {
		return fmt.Errorf("%w: unknown family %v", ErrParams, f)
	}
	if len(params) != f.Arity() {
		return fmt.Errorf("%w: %s takes %d parameters, got %d", ErrParams, f, f.Arity(), len(params))
	}
	for i, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: %s parameter %s is not finite", ErrParams, f, f.ParamNames()[i])
		}
	}
	switch f {
	case Uniform:
		if params[1] <= params[0] {
			return fmt.Errorf("%w: uniform needs a < b, got a=%g b=%g", ErrParams, params[0], params[1])
		}
	case Normal:
		if params[1] <= 0 {
			return fmt.Errorf("%w: normal needs sigma > 0, got %g", ErrParams, params[1])
		}
	case Exponential:
		if params[0] <= 0 {
			return fmt.Errorf("%w: exponential needs lambda > 0, got %g", ErrParams, params[0])
		}
	}
	return nil
}

// Sample draws a fresh value from f using src as the uniform(0,1) primitive.
// params must have length f.Arity(); other lengths return NaN.
func (f Family) Sample(src rng.Source, params []float64) float64 {
	if len(params) != f.Arity() {
		return math.NaN()
	}
	switch f {
	case Uniform:
		a, b := params[0], params[1]
		return a + (b-a)*src.Float64()
	case Normal:
		return params[0] + params[1]*BoxMuller(src)
	case Exponential:
		return -math.Log(src.Float64()) / params[0]
	}
	return math.NaN()
}

// BoxMuller returns a standard normal variate built from two independent
// uniforms drawn from src.
func BoxMuller(src rng.Source) float64 {
	u1 := src.Float64()
	u2 := src.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// PDF evaluates the density of f at x. It is zero outside the support and for
// parameters outside the parameter space.
func (f Family) PDF(x float64, params []float64) float64 {
	if len(params) != f.Arity() || math.IsNaN(x) {
		return 0
	}
	switch f {
	case Uniform:
		a, b := params[0], params[1]
		if b <= a || x < a || x > b {
			return 0
		}
		return 1 / (b - a)
	case Normal:
		mu, sigma := params[0], params[1]
		if sigma <= 0 {
			return 0
		}
		z := (x - mu) / sigma
		return invSqrt2Pi / sigma * math.Exp(-0.5*z*z)
	case Exponential:
		lambda := params[0]
		if lambda <= 0 || x < 0 {
			return 0
		}
		return lambda * math.Exp(-lambda*x)
	}
	return 0
}

// LogPDF is log(PDF(x, params)) computed without underflow for the normal and
// exponential tails. It returns -Inf wherever PDF is zero.
func (f Family) LogPDF(x float64, params []float64) float64 {
	if len(params) != f.Arity() || math.IsNaN(x) {
		return math.Inf(-1)
	}
	switch f {
	case Uniform:
		a, b := params[0], params[1]
		if b <= a || x < a || x > b {
			return math.Inf(-1)
		}
		return -math.Log(b - a)
	case Normal:
		mu, sigma := params[0], params[1]
		if sigma <= 0 {
			return math.Inf(-1)
		}
		z := (x - mu) / sigma
		return math.Log(invSqrt2Pi) - math.Log(sigma) - 0.5*z*z
	case Exponential:
		lambda := params[0]
		if lambda <= 0 || x < 0 {
			return math.Inf(-1)
		}
		return math.Log(lambda) - lambda*x
	}
	return math.Inf(-1)
}

// InSupport reports whether x has positive density under f.
func (f Family) InSupport(x float64, params []float64) bool {
	return f.PDF(x, params) > 0
}
