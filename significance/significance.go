// Package significance computes practical significance (ps): the posterior
// mass beyond a negligible-effect threshold on the dominant side of zero,
// combining the existence of an effect with its magnitude.
package significance

import (
	"context"
	"math"

	"github.com/uyouii/posterior-indices/common"
	"github.com/uyouii/posterior-indices/model"
	"github.com/uyouii/posterior-indices/table"
	"github.com/uyouii/posterior-indices/utils"
)

// DefaultThreshold is in standardized units, a tenth of a standard effect.
const DefaultThreshold = 0.1

// Compute returns the fraction of draws beyond the threshold on the
// dominant side, in [0, 1]. The dominant side comes from the sample
// median, a median of exactly zero counting as positive. Draws on the
// other side or inside [-threshold, threshold] are not significant.
func Compute(ctx context.Context, draws []float64, threshold float64) (float64, error) {
	if threshold < 0 || math.IsNaN(threshold) {
		return math.NaN(), common.ErrorInvalidValue
	}

	xs, err := model.FiniteDraws(draws)
	if err != nil {
		return math.NaN(), err
	}

	sign := 1.0
	if utils.Median(xs) < 0 {
		sign = -1.0
	}

	cnt := 0
	for _, v := range xs {
		if sign*v > threshold {
			cnt++
		}
	}

	return float64(cnt) / float64(len(xs)), nil
}

// ComputeTable applies Compute to every parameter of the draw table,
// one row per parameter in the table's insertion order.
func ComputeTable(ctx context.Context, t *model.DrawTable, threshold float64) (*model.IndexResult, error) {
	return table.Apply(ctx, t, []string{model.ColPs},
		func(ctx context.Context, draws []float64) (map[string]float64, error) {
			v, err := Compute(ctx, draws, threshold)
			if err != nil {
				return nil, err
			}
			return map[string]float64{model.ColPs: v}, nil
		})
}
