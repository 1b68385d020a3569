package density

import (
	"context"
	"math"
	"sort"

	"github.com/uyouii/posterior-indices/common"
	"github.com/uyouii/posterior-indices/model"
	"gonum.org/v1/gonum/interp"
)

// LogsplineEstimator fits a natural cubic spline through the log of the
// binned sample densities and exponentiates it back onto the grid. The
// spline lives in log space, so the curve is positive everywhere and
// smooth through regions with thin data.
type LogsplineEstimator struct {
	// If 0, max(len(x), 100) is used.
	GridSize int
}

func (e *LogsplineEstimator) Estimate(ctx context.Context, draws []float64) ([]model.Density, error) {
	n := len(draws)
	if n < MinLogsplinePointCnt {
		return nil, common.ErrorDensityEstimation
	}

	xs := make([]float64, n)
	copy(xs, draws)
	sort.Float64s(xs)

	lo, hi := xs[0], xs[n-1]
	if hi <= lo {
		return nil, common.ErrorDensityEstimation
	}

	// bin the sample, sqrt rule for the bin count
	binCnt := int(math.Ceil(math.Sqrt(float64(n))))
	if binCnt < 5 {
		binCnt = 5
	}
	if binCnt > 50 {
		binCnt = 50
	}
	binWidth := (hi - lo) / float64(binCnt)

	counts := make([]int, binCnt)
	for _, v := range xs {
		idx := int((v - lo) / binWidth)
		if idx >= binCnt {
			idx = binCnt - 1
		}
		counts[idx]++
	}

	// spline knots at the centers of the occupied bins
	knotX, knotY := []float64{}, []float64{}
	for i := 0; i < binCnt; i++ {
		if counts[i] == 0 {
			continue
		}
		center := lo + (float64(i)+0.5)*binWidth
		dens := float64(counts[i]) / (float64(n) * binWidth)
		knotX = append(knotX, center)
		knotY = append(knotY, math.Log(dens))
	}

	if len(knotX) < 4 {
		return nil, common.ErrorDensityEstimation
	}

	var spline interp.NaturalCubic
	if err := spline.Fit(knotX, knotY); err != nil {
		return nil, common.ErrorDensityEstimation
	}

	gridSize := e.GridSize
	if gridSize == 0 {
		gridSize = IntMax(n, DefaultGridSize)
	}
	grid := linspace(lo, hi, gridSize)

	firstKnot, lastKnot := knotX[0], knotX[len(knotX)-1]

	res := make([]model.Density, 0, len(grid))
	for _, x := range grid {
		// hold the end polynomials flat outside the knot range
		at := x
		if at < firstKnot {
			at = firstKnot
		}
		if at > lastKnot {
			at = lastKnot
		}
		res = append(res, model.Density{
			X:     x,
			Value: math.Exp(spline.Predict(at)),
		})
	}

	area := CurveArea(res)
	if area <= 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		return nil, common.ErrorDensityEstimation
	}
	for i := range res {
		res[i].Value /= area
	}

	return res, nil
}
