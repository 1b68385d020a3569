package model

// FamilyMetadata describes a fitted model's response family, produced by
// the model introspector. For multivariate-response models the introspector
// returns one FamilyMetadata per response variable.
type FamilyMetadata struct {
	// response variable name, empty for univariate models
	ResponseName string

	Family string
	Link   string

	IsLinear      bool
	IsLogit       bool
	IsProbit      bool
	IsCorrelation bool
	IsCount       bool

	// transformation applied to the response before fitting, like "log(y)"
	ResponseTransform string

	// raw response sample, when available (linear models)
	ResponseValues []float64

	// residual dispersion estimate for count models, 0 when unavailable
	Dispersion float64
}
