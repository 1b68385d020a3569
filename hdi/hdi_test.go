package hdi_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/uyouii/posterior-indices/common"
	"github.com/uyouii/posterior-indices/hdi"
	"github.com/uyouii/posterior-indices/model"
)

func normalDraws(mu, sigma float64, n int, seed uint64) []float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: rand.NewSource(seed)}
	res := make([]float64, n)
	for i := range res {
		res[i] = dist.Rand()
	}
	return res
}

func TestIntervalFullMass(t *testing.T) {
	iv, err := hdi.Interval([]float64{3, 1, 2}, 1)
	require.NoError(t, err)
	require.Equal(t, model.EquivalenceInterval{Low: 1, High: 3}, iv)
}

func TestIntervalPicksDensestWindow(t *testing.T) {
	// three tight draws and one far outlier
	iv, err := hdi.Interval([]float64{0, 0.1, 0.2, 5}, 0.75)
	require.NoError(t, err)
	require.Equal(t, model.EquivalenceInterval{Low: 0, High: 0.2}, iv)
}

func TestIntervalNormalSample(t *testing.T) {
	draws := normalDraws(0, 1, 10000, 42)

	iv, err := hdi.Interval(draws, 0.95)
	require.NoError(t, err)
	require.InDelta(t, -1.96, iv.Low, 0.15)
	require.InDelta(t, 1.96, iv.High, 0.15)

	narrow, err := hdi.Interval(draws, 0.5)
	require.NoError(t, err)
	require.Less(t, narrow.Width(), iv.Width())
}

func TestRestrictPreservesOrder(t *testing.T) {
	draws := []float64{5, 0.1, -4, 0, 0.2, 6}

	res, err := hdi.Restrict(draws, 0.5)
	require.NoError(t, err)
	require.Equal(t, []float64{0.1, 0, 0.2}, res)
}

func TestHdiInvalidInputs(t *testing.T) {
	_, err := hdi.Interval(nil, 0.95)
	require.ErrorIs(t, err, common.ErrorInvalidSample)

	for _, ci := range []float64{0, -0.5, 1.5, math.NaN()} {
		_, err = hdi.Interval([]float64{1, 2, 3}, ci)
		require.ErrorIs(t, err, common.ErrorInvalidValue, "ci %v", ci)
	}
}
