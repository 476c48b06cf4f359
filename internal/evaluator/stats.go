package evaluator

import (
	"math"
	"sort"
)

// Quantile computes the q-quantile (q in [0,1]) of a sample using
// linear interpolation between the bracketing order statistics:
// position = (n-1)*q, interpolated by its fractional part. The input
// is copied, not mutated. An empty sample yields 0.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return quantileSorted(sorted, q)
}

func quantileSorted(sorted []float64, q float64) float64 {
	pos := float64(len(sorted)-1) * q
	base := int(math.Floor(pos))
	rest := pos - float64(base)
	if base+1 < len(sorted) {
		return sorted[base] + rest*(sorted[base+1]-sorted[base])
	}
	return sorted[base]
}

// MedianIQR returns the median and interquartile range of a sample.
// An empty sample returns (0, 0) rather than an error.
func MedianIQR(values []float64) (median, iqr float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := quantileSorted(sorted, 0.25)
	q3 := quantileSorted(sorted, 0.75)
	return quantileSorted(sorted, 0.5), q3 - q1
}

// RelOptions are the percent-drop choices offered for relative
// thresholds.
var RelOptions = []int{10, 20, 30, 50}

// Suggestion proposes a starting threshold derived from historical
// statistics.
type Suggestion struct {
	Baseline      float64 `json:"baseline"`
	Spread        float64 `json:"spread"`
	AbsSuggestion float64 `json:"abs_suggestion"`
	RelOptions    []int   `json:"rel_options"`
}

// SuggestFromSample derives a threshold suggestion from a metric
// sample. The floor heuristic max(0, median-iqr) is naive but an
// effective starting point, and is kept as documented behavior.
func SuggestFromSample(values []float64) Suggestion {
	median, iqr := MedianIQR(values)
	return Suggestion{
		Baseline:      median,
		Spread:        iqr,
		AbsSuggestion: math.Max(0, median-iqr),
		RelOptions:    RelOptions,
	}
}
