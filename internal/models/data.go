package models

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoData is returned for a data file without observations.
var ErrNoData = errors.New("data file has no observations")

// Dataset is the on-disk form of a model's observations.
//
//	data: [0.31, 0.12, 0.58]
type Dataset struct {
	Data []float64 `yaml:"data"`
}

// ParseData decodes a YAML dataset. Every observation must be finite.
func ParseData(b []byte) ([]float64, error) {
	var ds Dataset
	if err := yaml.Unmarshal(b, &ds); err != nil {
		return nil, fmt.Errorf("parsing data: %w", err)
	}
	if len(ds.Data) == 0 {
		return nil, ErrNoData
	}
	for i, x := range ds.Data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("observation %d is not finite: %v", i, x)
		}
	}
	return ds.Data, nil
}

// LoadData reads a YAML dataset from path.
func LoadData(path string) ([]float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}
	data, err := ParseData(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}
