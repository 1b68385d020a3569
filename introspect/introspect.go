// Package introspect is the boundary to the model-introspection
// collaborator: anything that can turn a fitted model object into a
// table of posterior draws plus family metadata.
package introspect

import (
	"context"

	"github.com/uyouii/posterior-indices/common"
	"github.com/uyouii/posterior-indices/model"
)

// ModelIntrospector is implemented once per supported model family,
// keeping the index computations independent of model-type proliferation.
type ModelIntrospector interface {
	// DrawTable extracts one sample of posterior draws per parameter.
	DrawTable(ctx context.Context) (*model.DrawTable, error)

	// FamilyMetadata describes the response family, one entry per
	// response variable for multivariate models.
	FamilyMetadata(ctx context.Context) ([]model.FamilyMetadata, error)
}

// DrawTableOf routes an arbitrary model object through its introspector.
// Objects without one are unsupported, there is nothing to compute on.
func DrawTableOf(ctx context.Context, m interface{}) (*model.DrawTable, error) {
	in, ok := m.(ModelIntrospector)
	if !ok {
		return nil, common.ErrorUnsupportedModel
	}
	return in.DrawTable(ctx)
}

// FamilyMetadataOf routes an arbitrary model object to its family metadata.
func FamilyMetadataOf(ctx context.Context, m interface{}) ([]model.FamilyMetadata, error) {
	in, ok := m.(ModelIntrospector)
	if !ok {
		return nil, common.ErrorUnsupportedModel
	}
	return in.FamilyMetadata(ctx)
}

// SampledModel is the minimal introspector, for models already reduced
// to their draws by an external sampler.
type SampledModel struct {
	Table    *model.DrawTable
	Families []model.FamilyMetadata
}

func (m *SampledModel) DrawTable(ctx context.Context) (*model.DrawTable, error) {
	if m.Table == nil || m.Table.Len() == 0 {
		return nil, common.ErrorInvalidSample
	}
	return m.Table, nil
}

func (m *SampledModel) FamilyMetadata(ctx context.Context) ([]model.FamilyMetadata, error) {
	return m.Families, nil
}
