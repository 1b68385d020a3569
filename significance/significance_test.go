package significance_test

import (
	"context"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/uyouii/posterior-indices/common"
	"github.com/uyouii/posterior-indices/model"
	"github.com/uyouii/posterior-indices/significance"
)

func normalDraws(mu, sigma float64, n int, seed uint64) []float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: rand.NewSource(seed)}
	res := make([]float64, n)
	for i := range res {
		res[i] = dist.Rand()
	}
	return res
}

func TestPsShiftedNormalFixture(t *testing.T) {
	ctx := context.Background()
	draws := normalDraws(1, 1, 10000, 42)

	// P(N(1,1) > 0.1) = 0.816
	ps, err := significance.Compute(ctx, draws, significance.DefaultThreshold)
	require.NoError(t, err)
	require.InDelta(t, 0.816, ps, 0.05)
}

func TestPsMonotoneInThreshold(t *testing.T) {
	ctx := context.Background()
	draws := normalDraws(0.5, 1.5, 2000, 7)

	thresholds := []float64{0, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}
	prev := 1.1
	for _, threshold := range thresholds {
		ps, err := significance.Compute(ctx, draws, threshold)
		require.NoError(t, err)
		require.LessOrEqual(t, ps, prev, "ps must not grow with the threshold")
		require.GreaterOrEqual(t, ps, 0.0)
		require.LessOrEqual(t, ps, 1.0)
		prev = ps
	}
}

func TestPsEdgeCases(t *testing.T) {
	ctx := context.Background()

	// everything inside [-threshold, threshold]
	ps, err := significance.Compute(ctx, []float64{-0.05, 0, 0.02, 0.09}, 0.1)
	require.NoError(t, err)
	require.Zero(t, ps)

	// everything past the threshold on one side
	ps, err = significance.Compute(ctx, []float64{1, 2, 3}, 0.1)
	require.NoError(t, err)
	require.Equal(t, 1.0, ps)

	// negative dominant side: only draws below -threshold count
	ps, err = significance.Compute(ctx, []float64{-2, -1, -0.05, 1}, 0.1)
	require.NoError(t, err)
	require.Equal(t, 0.5, ps)

	// draws on the non-dominant side never count
	ps, err = significance.Compute(ctx, []float64{5, 5, 5, -5}, 0.1)
	require.NoError(t, err)
	require.Equal(t, 0.75, ps)
}

func TestPsZeroThresholdMatchesStrictSignFraction(t *testing.T) {
	ctx := context.Background()
	draws := normalDraws(0.3, 1, 1000, 13)

	ps, err := significance.Compute(ctx, draws, 0)
	require.NoError(t, err)

	med := median(draws)
	cnt := 0
	for _, v := range draws {
		if (med >= 0 && v > 0) || (med < 0 && v < 0) {
			cnt++
		}
	}
	require.Equal(t, float64(cnt)/float64(len(draws)), ps)
}

func median(xs []float64) float64 {
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	if len(s)%2 == 1 {
		return s[len(s)/2]
	}
	return (s[len(s)/2-1] + s[len(s)/2]) / 2
}

func TestPsInvalidInputs(t *testing.T) {
	ctx := context.Background()

	_, err := significance.Compute(ctx, nil, 0.1)
	require.ErrorIs(t, err, common.ErrorInvalidSample)

	_, err = significance.Compute(ctx, []float64{math.NaN()}, 0.1)
	require.ErrorIs(t, err, common.ErrorInvalidSample)

	_, err = significance.Compute(ctx, []float64{1, 2}, -0.1)
	require.ErrorIs(t, err, common.ErrorInvalidValue)
}

func TestPsComputeTable(t *testing.T) {
	ctx := context.Background()

	dt := model.NewDrawTable()
	require.NoError(t, dt.AddParameter(model.Parameter{Name: "a", Draws: normalDraws(1, 1, 100, 1)}))
	require.NoError(t, dt.AddParameter(model.Parameter{Name: "b", Draws: normalDraws(-1, 1, 100, 2)}))

	res, err := significance.ComputeTable(ctx, dt, significance.DefaultThreshold)
	require.NoError(t, err)
	require.Equal(t, []string{model.ColPs}, res.Columns)
	require.Equal(t, 2, res.Len())
	require.Equal(t, "a", res.Rows[0].Parameter)
	require.Equal(t, "b", res.Rows[1].Parameter)
}
