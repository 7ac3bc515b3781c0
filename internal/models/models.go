// Package models holds the built-in generative models the CLI can run.
//
// A model is registered by name with a constructor that binds its observed
// data. Models without observations ignore the data they are given.
package models

import (
	"fmt"
	"sort"

	"github.com/nvandessel/jiggle/internal/engine"
)

// Builtin describes a runnable model.
type Builtin struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// UsesData reports whether the model observes a dataset.
	UsesData bool `json:"uses_data"`

	// DefaultData is observed when no dataset is supplied.
	DefaultData []float64 `json:"default_data,omitempty"`

	build func(data []float64) engine.Model
}

// Model returns the model bound to data. A nil data slice selects
// DefaultData.
func (b Builtin) Model(data []float64) engine.Model {
	if data == nil {
		data = b.DefaultData
	}
	return b.build(data)
}

var registry = map[string]Builtin{}

func register(b Builtin) {
	if _, dup := registry[b.Name]; dup {
		panic("models: duplicate model " + b.Name)
	}
	registry[b.Name] = b
}

// Lookup returns the built-in model with the given name.
func Lookup(name string) (Builtin, error) {
	b, ok := registry[name]
	if !ok {
		return Builtin{}, fmt.Errorf("unknown model %q (available: %v)", name, Names())
	}
	return b, nil
}

// Names returns the registered model names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered model sorted by name.
func All() []Builtin {
	out := make([]Builtin, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name])
	}
	return out
}
