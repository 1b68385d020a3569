// Package direction computes the probability of direction (pd): the
// certainty that a parameter's effect is positive or negative, measured
// as the fraction of posterior mass on the dominant side of zero.
package direction

import (
	"context"
	"math"

	"github.com/uyouii/posterior-indices/density"
	"github.com/uyouii/posterior-indices/model"
	"github.com/uyouii/posterior-indices/table"
	"github.com/uyouii/posterior-indices/utils"
	"go.uber.org/zap"
)

// Compute returns the probability of direction for one sample of posterior
// draws, always in [0.5, 1.0]. MethodDirect counts the draws sharing the
// median's sign; the density methods integrate the estimated curve over
// the dominant side of zero. Draws exactly equal to zero count toward the
// dominant side, and a median of exactly zero is treated as positive.
func Compute(ctx context.Context, draws []float64, method density.Method) (float64, error) {
	logger := utils.GetLogger(ctx)

	xs, err := model.FiniteDraws(draws)
	if err != nil {
		return math.NaN(), err
	}

	if method == density.MethodDirect || method == "" {
		return computeDirect(xs), nil
	}

	estimator, err := density.NewEstimator(method)
	if err != nil {
		return math.NaN(), err
	}

	curve, err := estimator.Estimate(ctx, xs)
	if err != nil {
		logger.Warn("density estimate failed, fall back to direct method",
			zap.String("method", string(method)), zap.Error(err))
		return computeDirect(xs), nil
	}

	return computeDensity(xs, curve), nil
}

func computeDirect(xs []float64) float64 {
	med := utils.Median(xs)

	cnt := 0
	if med >= 0 {
		for _, v := range xs {
			if v >= 0 {
				cnt++
			}
		}
	} else {
		for _, v := range xs {
			if v <= 0 {
				cnt++
			}
		}
	}

	p := float64(cnt) / float64(len(xs))
	return math.Max(p, 1-p)
}

func computeDensity(xs []float64, curve []model.Density) float64 {
	total := density.CurveArea(curve)
	if total <= 0 {
		return computeDirect(xs)
	}

	lo := curve[0].X
	hi := curve[len(curve)-1].X

	var mass float64
	if utils.Median(xs) >= 0 {
		mass = density.CurveMass(curve, 0, hi)
	} else {
		mass = density.CurveMass(curve, lo, 0)
	}

	p := mass / total
	return math.Max(p, 1-p)
}

// ComputeTable applies Compute to every parameter of the draw table,
// one row per parameter in the table's insertion order.
func ComputeTable(ctx context.Context, t *model.DrawTable, method density.Method) (*model.IndexResult, error) {
	return table.Apply(ctx, t, []string{model.ColPd},
		func(ctx context.Context, draws []float64) (map[string]float64, error) {
			v, err := Compute(ctx, draws, method)
			if err != nil {
				return nil, err
			}
			return map[string]float64{model.ColPd: v}, nil
		})
}
