package common

import "errors"

var (
	ErrorInvalidValue  = errors.New("invalid value")
	ErrorInvalidSample = errors.New("invalid sample")

	// estimator cannot fit the sample, callers fall back to the direct method
	ErrorDensityEstimation = errors.New("density estimation failed")

	// model metadata insufficient to pick a principled rope range
	ErrorRopeRangeSelection = errors.New("rope range selection failed")

	// the introspector cannot produce a draw table for the given object
	ErrorUnsupportedModel = errors.New("unsupported model type")
)
