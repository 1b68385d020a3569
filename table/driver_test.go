package table_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uyouii/posterior-indices/common"
	"github.com/uyouii/posterior-indices/model"
	"github.com/uyouii/posterior-indices/table"
)

func meanIndex(ctx context.Context, draws []float64) (map[string]float64, error) {
	xs, err := model.FiniteDraws(draws)
	if err != nil {
		return nil, err
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}
	return map[string]float64{"mean": sum / float64(len(xs))}, nil
}

func buildTable(t *testing.T, names ...string) *model.DrawTable {
	t.Helper()
	dt := model.NewDrawTable()
	for i, name := range names {
		require.NoError(t, dt.AddParameter(model.Parameter{
			Name:  name,
			Draws: []float64{float64(i), float64(i) + 1, float64(i) + 2},
		}))
	}
	return dt
}

func TestApplyPreservesOrder(t *testing.T) {
	dt := buildTable(t, "d", "a", "c", "b")

	res, err := table.Apply(context.Background(), dt, []string{"mean"}, meanIndex)
	require.NoError(t, err)
	require.Equal(t, 4, res.Len())
	for i, name := range []string{"d", "a", "c", "b"} {
		require.Equal(t, name, res.Rows[i].Parameter)
		require.Equal(t, float64(i)+1, res.Rows[i].Values["mean"])
	}
}

func TestApplyCarriesTags(t *testing.T) {
	dt := model.NewDrawTable()
	require.NoError(t, dt.AddParameter(model.Parameter{
		Name: "x", Draws: []float64{1, 2},
		Effects: model.EffectsRandom, Component: model.ComponentSmoothTerms,
	}))

	res, err := table.Apply(context.Background(), dt, []string{"mean"}, meanIndex)
	require.NoError(t, err)
	require.Equal(t, model.EffectsRandom, res.Rows[0].Effects)
	require.Equal(t, model.ComponentSmoothTerms, res.Rows[0].Component)
}

func TestApplyRecordsMissingRowAndContinues(t *testing.T) {
	dt := model.NewDrawTable()
	require.NoError(t, dt.AddParameter(model.Parameter{Name: "ok", Draws: []float64{1, 2, 3}}))
	require.NoError(t, dt.AddParameter(model.Parameter{Name: "bad", Draws: []float64{math.NaN(), math.Inf(1)}}))
	require.NoError(t, dt.AddParameter(model.Parameter{Name: "ok2", Draws: []float64{4, 5}}))

	res, err := table.Apply(context.Background(), dt, []string{"mean"}, meanIndex)
	require.NoError(t, err, "one bad parameter must not abort the table")
	require.Equal(t, 3, res.Len())

	require.False(t, res.Rows[0].Missing)
	require.True(t, res.Rows[1].Missing)
	require.True(t, math.IsNaN(res.Rows[1].Values["mean"]))
	require.False(t, res.Rows[2].Missing)
	require.Equal(t, 4.5, res.Rows[2].Values["mean"])
}

func TestApplyAllRowsFailed(t *testing.T) {
	dt := model.NewDrawTable()
	require.NoError(t, dt.AddParameter(model.Parameter{Name: "a", Draws: []float64{math.NaN()}}))
	require.NoError(t, dt.AddParameter(model.Parameter{Name: "b", Draws: []float64{math.Inf(-1)}}))

	res, err := table.Apply(context.Background(), dt, []string{"mean"}, meanIndex)
	require.ErrorIs(t, err, common.ErrorInvalidSample)
	require.Equal(t, 2, res.Len())
	require.True(t, res.Rows[0].Missing)
	require.True(t, res.Rows[1].Missing)
}

func TestApplyEmptyAndSingleRowTables(t *testing.T) {
	res, err := table.Apply(context.Background(), model.NewDrawTable(), []string{"mean"}, meanIndex)
	require.NoError(t, err)
	require.Equal(t, 0, res.Len())

	res, err = table.Apply(context.Background(), buildTable(t, "only"), []string{"mean"}, meanIndex)
	require.NoError(t, err)
	require.Equal(t, 1, res.Len())
}

func TestApplyRecoversPanics(t *testing.T) {
	dt := buildTable(t, "a", "b")

	panics := func(ctx context.Context, draws []float64) (map[string]float64, error) {
		if draws[0] == 0 {
			panic("boom")
		}
		return map[string]float64{"mean": 1}, nil
	}

	res, err := table.Apply(context.Background(), dt, []string{"mean"}, panics)
	require.NoError(t, err)
	require.True(t, res.Rows[0].Missing)
	require.False(t, res.Rows[1].Missing)
}
