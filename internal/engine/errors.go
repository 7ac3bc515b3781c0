package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors describing model contract violations. They are wrapped in
// a *ContractError and can be matched with errors.Is.
var (
	ErrUnknownFamily   = errors.New("unknown distribution family")
	ErrArity           = errors.New("wrong number of distribution parameters")
	ErrFamilyChanged   = errors.New("site redeclared with a different distribution")
	ErrArityChanged    = errors.New("site redeclared with a different parameter count")
	ErrObservedChanged = errors.New("site switched between latent and observed")
	ErrDuplicateSite   = errors.New("site declared twice in one execution")
	ErrShape           = errors.New("vector arguments differ in length")
	ErrEmptyName       = errors.New("site name is empty")
)

// ContractError reports a model that declared a site inconsistently.
type ContractError struct {
	Site   string
	Err    error
	Detail string
}

func (e *ContractError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("site %q: %v", e.Site, e.Err)
	}
	return fmt.Sprintf("site %q: %v: %s", e.Site, e.Err, e.Detail)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}
