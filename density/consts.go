package density

const (
	// grid extension past the sample range, in bandwidths,
	// so that the kernel goes to zero at the ends
	DefaultCut = 3.0

	DefaultGridSize = 100

	// below these counts the estimators can't pick a bandwidth / fit a
	// spline, callers fall back to the direct method
	MinEstimatePointCnt  = 3
	MinLogsplinePointCnt = 10
	MinLocpolyPointCnt   = 5

	// number of fine bins the local-polynomial estimator smooths over
	LocpolyBinCnt = 400
)
