// Package rope computes the share of posterior mass inside a region of
// practical equivalence, an interval around zero treated as "no meaningful
// effect", and picks default regions from model family metadata.
package rope

import (
	"context"
	"math"

	"github.com/uyouii/posterior-indices/common"
	"github.com/uyouii/posterior-indices/density"
	"github.com/uyouii/posterior-indices/hdi"
	"github.com/uyouii/posterior-indices/model"
	"github.com/uyouii/posterior-indices/table"
	"github.com/uyouii/posterior-indices/utils"
	"go.uber.org/zap"
)

type Options struct {
	// Method picks direct counting or a density estimator; empty means direct.
	Method density.Method

	// Range is the equivalence interval. Nil triggers the default selection:
	// from Metadata when present, otherwise the generic ±0.1 with a warning.
	Range *model.EquivalenceInterval

	// Metadata drives default range selection when Range is nil.
	Metadata *model.FamilyMetadata

	// CI in (0, 1) restricts the computation to the highest-density-interval
	// subsample holding that mass. 0 or 1 uses the full sample.
	CI float64
}

// Compute returns the fraction of the sample inside the equivalence
// interval, in [0, 1], along with the interval that was used.
func Compute(ctx context.Context, draws []float64, opts Options) (float64, model.EquivalenceInterval, error) {
	logger := utils.GetLogger(ctx)

	interval, err := resolveRange(ctx, opts)
	if err != nil {
		return math.NaN(), interval, err
	}

	xs, err := model.FiniteDraws(draws)
	if err != nil {
		return math.NaN(), interval, err
	}

	if opts.CI < 0 || opts.CI > 1 || math.IsNaN(opts.CI) {
		return math.NaN(), interval, common.ErrorInvalidValue
	}
	if opts.CI > 0 && opts.CI < 1 {
		xs, err = hdi.Restrict(xs, opts.CI)
		if err != nil {
			return math.NaN(), interval, err
		}
		if len(xs) == 0 {
			return math.NaN(), interval, common.ErrorInvalidSample
		}
	}

	if opts.Method == density.MethodDirect || opts.Method == "" {
		return directFraction(xs, interval), interval, nil
	}

	estimator, err := density.NewEstimator(opts.Method)
	if err != nil {
		return math.NaN(), interval, err
	}

	curve, err := estimator.Estimate(ctx, xs)
	if err != nil {
		logger.Warn("density estimate failed, fall back to direct method",
			zap.String("method", string(opts.Method)), zap.Error(err))
		return directFraction(xs, interval), interval, nil
	}

	total := density.CurveArea(curve)
	if total <= 0 {
		return directFraction(xs, interval), interval, nil
	}
	return density.CurveMass(curve, interval.Low, interval.High) / total, interval, nil
}

func directFraction(xs []float64, interval model.EquivalenceInterval) float64 {
	cnt := 0
	for _, v := range xs {
		if interval.Contains(v) {
			cnt++
		}
	}
	return float64(cnt) / float64(len(xs))
}

func resolveRange(ctx context.Context, opts Options) (model.EquivalenceInterval, error) {
	if opts.Range != nil {
		if !opts.Range.Valid() {
			return model.EquivalenceInterval{}, common.ErrorInvalidValue
		}
		return *opts.Range, nil
	}

	if opts.Metadata != nil {
		return SelectRange(ctx, *opts.Metadata).Interval, nil
	}

	logger := utils.GetLogger(ctx)
	logger.Warn(manualRangeWarning)
	return model.EquivalenceInterval{Low: -DefaultNegligible, High: DefaultNegligible}, nil
}

// ComputeTable applies Compute to every parameter of the draw table, one
// row per parameter in insertion order. The interval is resolved once and
// reported in the ROPE_low / ROPE_high columns of every row.
func ComputeTable(ctx context.Context, t *model.DrawTable, opts Options) (*model.IndexResult, error) {
	interval, err := resolveRange(ctx, opts)
	if err != nil {
		return nil, err
	}
	opts.Range = &interval

	columns := []string{model.ColRopePercentage, model.ColRopeLow, model.ColRopeHigh}
	return table.Apply(ctx, t, columns,
		func(ctx context.Context, draws []float64) (map[string]float64, error) {
			fraction, used, err := Compute(ctx, draws, opts)
			if err != nil {
				return nil, err
			}
			return map[string]float64{
				model.ColRopePercentage: fraction,
				model.ColRopeLow:        used.Low,
				model.ColRopeHigh:       used.High,
			}, nil
		})
}
