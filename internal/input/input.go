// SPDX-License-Identifier: MIT

// Package input decodes and validates the YAML documents read by the
// totbuild command.
//
// Build document:
//
//	tensor:
//	  ind_rank: 1
//	  dep_rank: 1
//	  elements:
//	    - {coord: [0, 0], value: 1}
//	    - {coord: [0, 1], value: 2}
//	sparse_map:            # optional; derived from tensor coordinates
//	  - {ind: [0], dep: [[0], [1]]}
//	mode_map: {0: 1}       # optional; destination mode → source mode
//	workers: 4             # optional
//
// Maps document:
//
//	maps:
//	  - [{ind: [0], dep: [[0], [1]]}, {ind: [1], dep: [[1]]}]
//	  - [{ind: [0], dep: [[7]]}, {ind: [1], dep: [[8]]}]
package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/sparsemap"
	"github.com/katalvlaran/sparsetot/tensor"
	"github.com/katalvlaran/sparsetot/tot"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every decoding or validation failure.
var ErrInvalid = errors.New("input: invalid document")

// docValidate is shared by all documents; validator.Validate caches struct
// metadata and is safe for concurrent use.
var docValidate *validator.Validate

func init() {
	docValidate = validator.New()
	docValidate.RegisterStructValidation(validateTensorRanks, TensorDoc{})
}

// ElementDoc is one stored tensor element.
type ElementDoc struct {
	Coord []int   `yaml:"coord" validate:"dive,gte=0"`
	Value float64 `yaml:"value"`
}

// TensorDoc is a sparse tensor in coordinate form.
type TensorDoc struct {
	IndRank  int          `yaml:"ind_rank" validate:"gte=0,lte=16"`
	DepRank  int          `yaml:"dep_rank" validate:"gte=0,lte=16"`
	Elements []ElementDoc `yaml:"elements" validate:"dive"`
}

// validateTensorRanks requires every coordinate to have ind_rank+dep_rank modes.
func validateTensorRanks(sl validator.StructLevel) {
	doc := sl.Current().Interface().(TensorDoc)
	for k, e := range doc.Elements {
		if len(e.Coord) != doc.IndRank+doc.DepRank {
			sl.ReportError(e.Coord, fmt.Sprintf("Elements[%d].Coord", k), "Coord", "rank", "")
		}
	}
}

// EntryDoc is one sparse map entry: an independent index and its Domain.
type EntryDoc struct {
	Ind []int   `yaml:"ind" validate:"dive,gte=0"`
	Dep [][]int `yaml:"dep" validate:"min=1,dive,dive,gte=0"`
}

// BuildDoc is the input of `totbuild build`.
type BuildDoc struct {
	Tensor    TensorDoc   `yaml:"tensor"`
	SparseMap []EntryDoc  `yaml:"sparse_map" validate:"omitempty,dive"`
	ModeMap   map[int]int `yaml:"mode_map" validate:"omitempty,dive,keys,gte=0,endkeys,gte=0"`
	Workers   int         `yaml:"workers" validate:"gte=0,lte=1024"`
}

// MapsDoc is the input of `totbuild compose` and `totbuild inverse`.
type MapsDoc struct {
	Maps [][]EntryDoc `yaml:"maps" validate:"min=1,dive,dive"`
}

// decode reads strict YAML (unknown fields rejected) and validates it.
func decode(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: yaml: %v", ErrInvalid, err)
	}
	if err := docValidate.Struct(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// LoadBuild decodes and validates a build document.
func LoadBuild(r io.Reader) (*BuildDoc, error) {
	var doc BuildDoc
	if err := decode(r, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// LoadMaps decodes and validates a maps document.
func LoadMaps(r io.Reader) (*MapsDoc, error) {
	var doc MapsDoc
	if err := decode(r, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Open opens path for reading, treating "-" as standard input.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(path)
}

// Source converts the tensor section into a sparse tensor.
func (d *BuildDoc) Source() (*tensor.Sparse, error) {
	elems := make([]tensor.Element, len(d.Tensor.Elements))
	for k, e := range d.Tensor.Elements {
		c, err := index.New(e.Coord...)
		if err != nil {
			return nil, err
		}
		elems[k] = tensor.Element{Coord: c, Value: e.Value}
	}

	return tensor.FromElements(d.Tensor.IndRank, d.Tensor.DepRank, elems...)
}

// Map returns the explicit sparse map, or the one implied by the stored
// coordinates of src when the document has none.
func (d *BuildDoc) Map(src tensor.Source) (*sparsemap.SparseMap, error) {
	if len(d.SparseMap) == 0 {
		return sparsemap.FromCoordinates(src.Coordinates(), src.IndRank())
	}

	return ToMap(d.SparseMap)
}

// Options translates the optional engine settings.
func (d *BuildDoc) Options() []tot.Option {
	var opts []tot.Option
	if len(d.ModeMap) > 0 {
		opts = append(opts, tot.WithModeMap(d.ModeMap))
	}
	if d.Workers > 0 {
		opts = append(opts, tot.WithWorkers(d.Workers))
	}

	return opts
}

// ToMap converts entries into a SparseMap.
// Returns ErrRankMismatch (wrapped) on inconsistent entry ranks.
func ToMap(entries []EntryDoc) (*sparsemap.SparseMap, error) {
	out := sparsemap.New()
	for _, e := range entries {
		ind, err := index.New(e.Ind...)
		if err != nil {
			return nil, err
		}
		for _, dv := range e.Dep {
			dep, err := index.New(dv...)
			if err != nil {
				return nil, err
			}
			if err := out.AddToDomain(ind, dep); err != nil {
				return nil, fmt.Errorf("input: entry %v: %w", e.Ind, err)
			}
		}
	}

	return out, nil
}

// SparseMaps converts every map of the document.
func (m *MapsDoc) SparseMaps() ([]*sparsemap.SparseMap, error) {
	out := make([]*sparsemap.SparseMap, len(m.Maps))
	for k, entries := range m.Maps {
		sm, err := ToMap(entries)
		if err != nil {
			return nil, fmt.Errorf("input: maps[%d]: %w", k, err)
		}
		out[k] = sm
	}

	return out, nil
}
