package density

import (
	"context"
	"math"
	"sort"

	"github.com/uyouii/posterior-indices/common"
	"github.com/uyouii/posterior-indices/model"
	"gonum.org/v1/gonum/stat"
)

// LocalPolynomialEstimator bins the sample onto a fine mesh and smooths
// the bin densities with a kernel-weighted local linear regression at
// every grid point, taking the local intercept as the density estimate.
type LocalPolynomialEstimator struct {
	// If 0, max(len(x), 100) is used.
	GridSize int

	// Bandwidth becomes the normal-reference bandwidth * BwAdjust.
	// 0 means no adjustment.
	BwAdjust float64
}

func (e *LocalPolynomialEstimator) Estimate(ctx context.Context, draws []float64) ([]model.Density, error) {
	n := len(draws)
	if n < MinLocpolyPointCnt {
		return nil, common.ErrorDensityEstimation
	}

	xs := make([]float64, n)
	copy(xs, draws)
	sort.Float64s(xs)

	if stat.StdDev(xs, nil) == 0 {
		return nil, common.ErrorDensityEstimation
	}

	kernel := NewGuassianKernel()
	bw := NewNormalReferenceBandWidth(kernel).BandWidth(xs)
	if e.BwAdjust > 0 {
		bw = bw * e.BwAdjust
	}
	if bw <= 0 {
		return nil, common.ErrorDensityEstimation
	}

	lo := xs[0] - DefaultCut*bw
	hi := xs[n-1] + DefaultCut*bw

	// fine mesh of raw bin densities to smooth over
	binWidth := (hi - lo) / float64(LocpolyBinCnt)
	counts := make([]int, LocpolyBinCnt)
	for _, v := range xs {
		idx := int((v - lo) / binWidth)
		if idx >= LocpolyBinCnt {
			idx = LocpolyBinCnt - 1
		}
		counts[idx]++
	}

	centers := make([]float64, LocpolyBinCnt)
	binDens := make([]float64, LocpolyBinCnt)
	for i := 0; i < LocpolyBinCnt; i++ {
		centers[i] = lo + (float64(i)+0.5)*binWidth
		binDens[i] = float64(counts[i]) / (float64(n) * binWidth)
	}

	gridSize := e.GridSize
	if gridSize == 0 {
		gridSize = IntMax(n, DefaultGridSize)
	}
	grid := linspace(lo, hi, gridSize)

	centered := make([]float64, LocpolyBinCnt)
	weights := make([]float64, LocpolyBinCnt)

	res := make([]model.Density, 0, len(grid))
	for _, g := range grid {
		var sumW float64
		for j := 0; j < LocpolyBinCnt; j++ {
			centered[j] = centers[j] - g
			weights[j] = kernel.Shape(centered[j] / bw)
			sumW += weights[j]
		}

		var value float64
		if sumW > 1e-12 {
			// local linear fit, the intercept at the grid point is the estimate
			alpha, _ := stat.LinearRegression(centered, binDens, weights, false)
			value = math.Max(alpha, 0)
		}
		res = append(res, model.Density{X: g, Value: value})
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
