package density

import (
	"context"

	"github.com/uyouii/posterior-indices/common"
	"github.com/uyouii/posterior-indices/model"
)

// Method selects how a density-based index is computed. MethodDirect is
// resolved by the index packages themselves with pure order statistics;
// the other methods map to one Estimator implementation each.
type Method string

const (
	MethodDirect          Method = "direct"
	MethodKernel          Method = "kernel"
	MethodLogspline       Method = "logspline"
	MethodLocalPolynomial Method = "locpoly"
)

// Estimator fits a continuous density curve over a sample's support.
// The curve covers at least the observed range, density values are
// non-negative and the total area is normalized to 1.
type Estimator interface {
	Estimate(ctx context.Context, draws []float64) ([]model.Density, error)
}

// NewEstimator returns the estimator for a density method. MethodDirect
// has no estimator behind it and is rejected here.
func NewEstimator(method Method) (Estimator, error) {
	switch method {
	case MethodKernel, "":
		return &KernelEstimator{}, nil
	case MethodLogspline:
		return &LogsplineEstimator{}, nil
	case MethodLocalPolynomial:
		return &LocalPolynomialEstimator{}, nil
	default:
		return nil, common.ErrorInvalidValue
	}
}
