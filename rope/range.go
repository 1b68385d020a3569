package rope

import (
	"context"
	"math"
	"strings"

	"github.com/uyouii/posterior-indices/model"
	"github.com/uyouii/posterior-indices/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// DefaultNegligible is the generic fallback when the model family gives
// no principled equivalence range.
const DefaultNegligible = 0.1

const manualRangeWarning = "no principled default range for this model family, consider specifying the rope range manually"

// RangeSelection is the picked equivalence interval for one response.
// Warning is non-empty when the selection fell back to the generic default.
type RangeSelection struct {
	Response string                    `json:"response,omitempty"`
	Interval model.EquivalenceInterval `json:"interval"`
	Warning  string                    `json:"warning,omitempty"`
}

// SelectRange picks a default symmetric equivalence interval for a model
// family, [-negligible, +negligible]. The negligible value follows a
// first-match decision table over the family metadata; anything it cannot
// resolve falls through to the generic ±0.1 with a warning.
func SelectRange(ctx context.Context, meta model.FamilyMetadata) RangeSelection {
	logger := utils.GetLogger(ctx)

	value, warning := negligibleValue(meta)
	if warning != "" {
		logger.Warn(warning,
			zap.String("family", meta.Family),
			zap.String("response", meta.ResponseName))
	}

	logger.Debug("selected rope range",
		zap.Float64("negligible", utils.FormatFloat(value, 3)),
		zap.String("response", meta.ResponseName))

	return RangeSelection{
		Response: meta.ResponseName,
		Interval: model.EquivalenceInterval{Low: -value, High: value},
		Warning:  warning,
	}
}

// SelectRanges runs the selection independently per response of a
// multivariate model, one interval per response variable.
func SelectRanges(ctx context.Context, metas []model.FamilyMetadata) []RangeSelection {
	res := make([]RangeSelection, 0, len(metas))
	for _, meta := range metas {
		res = append(res, SelectRange(ctx, meta))
	}
	return res
}

func negligibleValue(meta model.FamilyMetadata) (float64, string) {
	// log-scale responses: effects live on the log scale, a hundredth
	// is already a ~1% multiplicative change
	if strings.Contains(strings.ToLower(meta.ResponseTransform), "log") ||
		(meta.IsLinear && meta.Link == "log") ||
		strings.EqualFold(meta.Family, "lognormal") {
		return 0.01, ""
	}

	// identity link with the raw response at hand: a tenth of its spread
	if meta.Link == "identity" && len(meta.ResponseValues) > 0 {
		sd := stat.StdDev(meta.ResponseValues, nil)
		if sd > 0 && !math.IsNaN(sd) && !math.IsInf(sd, 0) {
			return 0.1 * sd, ""
		}
		// degenerate response, keep falling through
	}

	// logistic scale: sd of the standard logistic is pi/sqrt(3)
	if meta.IsLogit {
		return 0.1 * math.Pi / math.Sqrt(3), ""
	}

	if meta.IsProbit {
		return 0.1, ""
	}

	if meta.IsCorrelation {
		return 0.05, ""
	}

	if meta.IsCount && meta.Dispersion > 0 &&
		!math.IsNaN(meta.Dispersion) && !math.IsInf(meta.Dispersion, 0) {
		return 0.1 * meta.Dispersion, ""
	}

	return DefaultNegligible, manualRangeWarning
}
