package model

import (
	"math"

	"github.com/uyouii/posterior-indices/common"
)

type Effects string

const (
	EffectsFixed  Effects = "fixed"
	EffectsRandom Effects = "random"
)

type Component string

const (
	ComponentConditional  Component = "conditional"
	ComponentZeroInflated Component = "zero_inflated"
	ComponentSmoothTerms  Component = "smooth_terms"
)

// column names of the index result table
const (
	ColPd             = "pd"
	ColPs             = "ps"
	ColRopePercentage = "ROPE_Percentage"
	ColRopeLow        = "ROPE_low"
	ColRopeHigh       = "ROPE_high"
)

// Parameter holds the posterior draws for one model parameter,
// with the optional grouping tags supplied by the model introspector.
type Parameter struct {
	Name      string
	Draws     []float64
	Effects   Effects
	Component Component
}

// DrawTable is an ordered set of parameters, built once per analysis
// call and immutable afterwards. Parameter names are unique.
type DrawTable struct {
	params []Parameter
	index  map[string]int
}

func NewDrawTable() *DrawTable {
	return &DrawTable{
		params: []Parameter{},
		index:  map[string]int{},
	}
}

func (t *DrawTable) AddParameter(p Parameter) error {
	if p.Name == "" {
		return common.ErrorInvalidValue
	}
	if _, ok := t.index[p.Name]; ok {
		return common.ErrorInvalidValue
	}
	if len(p.Draws) == 0 {
		return common.ErrorInvalidSample
	}

	// copy the draws so later caller mutation can't drift the table
	draws := make([]float64, len(p.Draws))
	copy(draws, p.Draws)
	p.Draws = draws

	t.index[p.Name] = len(t.params)
	t.params = append(t.params, p)
	return nil
}

// Parameters returns the parameters in insertion order.
func (t *DrawTable) Parameters() []Parameter {
	return t.params
}

func (t *DrawTable) Get(name string) (Parameter, bool) {
	i, ok := t.index[name]
	if !ok {
		return Parameter{}, false
	}
	return t.params[i], true
}

func (t *DrawTable) Len() int {
	return len(t.params)
}

// FiniteDraws copies the finite values out of draws. An empty sample,
// or one with no finite value at all, is an invalid sample.
func FiniteDraws(draws []float64) ([]float64, error) {
	if len(draws) == 0 {
		return nil, common.ErrorInvalidSample
	}
	res := make([]float64, 0, len(draws))
	for _, v := range draws {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		res = append(res, v)
	}
	if len(res) == 0 {
		return nil, common.ErrorInvalidSample
	}
	return res, nil
}

// IndexRow is one parameter's computed indices. Missing marks a row whose
// sample was invalid; its values are NaN and the table keeps going.
type IndexRow struct {
	Parameter string             `json:"parameter"`
	Effects   Effects            `json:"effects,omitempty"`
	Component Component          `json:"component,omitempty"`
	Values    map[string]float64 `json:"values"`
	Missing   bool               `json:"missing,omitempty"`
}

// IndexResult is the per-parameter result table consumed by an
// external formatter. Rows keep the draw table's parameter order.
type IndexResult struct {
	Columns []string   `json:"columns"`
	Rows    []IndexRow `json:"rows"`
}

func (r *IndexResult) Row(name string) (IndexRow, bool) {
	for _, row := range r.Rows {
		if row.Parameter == name {
			return row, true
		}
	}
	return IndexRow{}, false
}

func (r *IndexResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}
