package model

type Clip struct {
	Lower float64
	Upper float64
}

type Density struct {
	X     float64
	Value float64
}

type Cdf struct {
	X     float64
	Value float64
}

type QuantileValue struct {
	Value    float64 `json:"v,omitempty"`
	Quantile float64 `json:"q,omitempty"`
}

// EquivalenceInterval is a closed interval, typically symmetric around 0,
// inside which an effect is treated as practically equivalent to null.
type EquivalenceInterval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func (iv EquivalenceInterval) Valid() bool {
	return iv.Low <= iv.High
}

func (iv EquivalenceInterval) Contains(v float64) bool {
	return v >= iv.Low && v <= iv.High
}

func (iv EquivalenceInterval) Width() float64 {
	return iv.High - iv.Low
}
