package density

import "github.com/uyouii/posterior-indices/model"

func factorial(n int) float64 {
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}
	return result
}

func linspace(start, stop float64, num int) []float64 {
	if num < 2 {
		return []float64{start}
	}
	step := (stop - start) / float64(num-1)
	grid := make([]float64, num)
	for i := 0; i < num; i++ {
		grid[i] = start + float64(i)*step
	}
	return grid
}

func Clip(x []float64, weights []float64, clip *model.Clip) ([]float64, []float64) {
	if len(x) != len(weights) || clip == nil {
		// do nothing
		return x, weights
	}

	resX, resWeight := []float64{}, []float64{}
	n := len(x)
	for i := 0; i < n; i++ {
		if x[i] >= clip.Lower && x[i] <= clip.Upper {
			resX = append(resX, x[i])
			resWeight = append(resWeight, weights[i])
		}
	}
	return resX, resWeight
}

func InitOnes(n int) []float64 {
	res := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, 1)
	}
	return res
}

func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// CurveArea returns the trapezoid area under the whole curve.
func CurveArea(curve []model.Density) float64 {
	var area float64
	for i := 1; i < len(curve); i++ {
		area += (curve[i].Value + curve[i-1].Value) / 2 * (curve[i].X - curve[i-1].X)
	}
	return area
}

// CurveMass integrates the curve over [lo, hi] by trapezoids, interpolating
// the density at the cut points. Bounds outside the curve's support clamp
// to its end points.
func CurveMass(curve []model.Density, lo, hi float64) float64 {
	if len(curve) < 2 {
		return 0
	}

	first, last := curve[0].X, curve[len(curve)-1].X
	if lo < first {
		lo = first
	}
	if hi > last {
		hi = last
	}
	if lo >= hi {
		return 0
	}

	var area float64
	for i := 1; i < len(curve); i++ {
		x0, y0 := curve[i-1].X, curve[i-1].Value
		x1, y1 := curve[i].X, curve[i].Value

		a, b := x0, x1
		if a < lo {
			a = lo
		}
		if b > hi {
			b = hi
		}
		if b <= a {
			continue
		}

		ya := interpAt(x0, y0, x1, y1, a)
		yb := interpAt(x0, y0, x1, y1, b)
		area += (ya + yb) / 2 * (b - a)
	}
	return area
}

func interpAt(x0, y0, x1, y1, x float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}
