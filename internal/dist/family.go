// Package dist defines the fixed set of distribution families a model can
// declare: uniform, normal and exponential.
//
// Each family pairs a sampler with a density. Dispatch is a switch over the
// closed Family enum; the table is built at compile time and never mutated.
package dist

import (
	"fmt"
	"strings"
)

// Family identifies one supported distribution family.
type Family int

const (
	// Uniform is the continuous uniform distribution on [a, b].
	Uniform Family = iota + 1
	// Normal is the Gaussian distribution with mean mu and standard deviation sigma.
	Normal
	// Exponential is the exponential distribution with rate lambda.
	Exponential
)

// Families returns every supported family in declaration order.
func Families() []Family {
	return []Family{Uniform, Normal, Exponential}
}

// Parse maps a family name ("uniform", "normal", "exponential") to its Family.
// Matching is case-insensitive.
func Parse(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uniform":
		return Uniform, nil
	case "normal", "gaussian":
		return Normal, nil
	case "exponential", "exp":
		return Exponential, nil
	}
	return 0, fmt.Errorf("unknown distribution %q (valid: uniform, normal, exponential)", name)
}

// String returns the family's canonical lower-case name.
func (f Family) String() string {
	switch f {
	case Uniform:
		return "uniform"
	case Normal:
		return "normal"
	case Exponential:
		return "exponential"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// Valid reports whether f is one of the supported families.
func (f Family) Valid() bool {
	switch f {
	case Uniform, Normal, Exponential:
		return true
	}
	return false
}

// Arity is the number of distribution parameters, not counting an observation.
func (f Family) Arity() int {
	switch f {
	case Uniform, Normal:
		return 2
	case Exponential:
		return 1
	}
	return 0
}

// ParamNames returns the parameter names in positional order.
func (f Family) ParamNames() []string {
	switch f {
	case Uniform:
		return []string{"a", "b"}
	case Normal:
		return []string{"mu", "sigma"}
	case Exponential:
		return []string{"lambda"}
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler so families serialize by name.
func (f Family) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid distribution family %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Family) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
