// Package hdi finds highest density intervals: the narrowest interval
// holding a given share of the posterior mass.
package hdi

import (
	"math"
	"sort"

	"github.com/uyouii/posterior-indices/common"
	"github.com/uyouii/posterior-indices/model"
)

// Interval returns the narrowest interval containing at least mass ci of
// the draws, scanning fixed-size windows over the sorted sample.
func Interval(draws []float64, ci float64) (model.EquivalenceInterval, error) {
	if ci <= 0 || ci > 1 || math.IsNaN(ci) {
		return model.EquivalenceInterval{}, common.ErrorInvalidValue
	}

	xs, err := model.FiniteDraws(draws)
	if err != nil {
		return model.EquivalenceInterval{}, err
	}
	sort.Float64s(xs)

	n := len(xs)
	window := int(math.Ceil(ci * float64(n)))
	if window < 1 {
		window = 1
	}
	if window >= n {
		return model.EquivalenceInterval{Low: xs[0], High: xs[n-1]}, nil
	}

	bestLow, bestHigh := xs[0], xs[window-1]
	bestWidth := bestHigh - bestLow
	for i := 1; i+window <= n; i++ {
		width := xs[i+window-1] - xs[i]
		if width < bestWidth {
			bestWidth = width
			bestLow, bestHigh = xs[i], xs[i+window-1]
		}
	}

	return model.EquivalenceInterval{Low: bestLow, High: bestHigh}, nil
}

// Restrict returns the draws inside the ci highest density interval,
// preserving the input order.
func Restrict(draws []float64, ci float64) ([]float64, error) {
	iv, err := Interval(draws, ci)
	if err != nil {
		return nil, err
	}

	res := make([]float64, 0, len(draws))
	for _, v := range draws {
		if iv.Contains(v) {
			res = append(res, v)
		}
	}
	return res, nil
}
