package evaluator

import (
	"time"

	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
	"github.com/pratik-mahalle/campwatch/internal/domain/trigger"
)

// Match is one window whose aggregate satisfied the trigger condition
type Match struct {
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	Value       float64   `json:"value"`
}

// Result reports a sliding-window scan over a metric series
type Result struct {
	WindowsChecked int     `json:"windows_checked"`
	Matches        []Match `json:"matches"`
}

// EvaluateWindows scans all trailing windows of the series with a
// two-pointer sweep. For each right index, the window is the maximal
// trailing run of points whose span is strictly under the window
// duration. Spend windows are summed; rate-like metrics are averaged.
// Equality never matches either operator.
//
// The left pointer only moves forward, so the scan is O(n) regardless
// of how many points share a window. A running sum replaces per-window
// re-aggregation.
//
// A non-positive window duration is a malformed call and yields an
// empty result rather than an unbounded window.
func EvaluateWindows(series metric.Series, window time.Duration, op trigger.Operator, threshold float64) Result {
	res := Result{Matches: []Match{}}
	if len(series.Points) == 0 || window <= 0 {
		return res
	}

	cumulative := series.Metric.IsCumulative()
	points := series.Points

	left := 0
	sum := 0.0
	for right := 0; right < len(points); right++ {
		sum += points[right].Value
		for points[right].TS.Sub(points[left].TS) >= window {
			sum -= points[left].Value
			left++
		}

		res.WindowsChecked++

		agg := sum
		if !cumulative {
			agg = sum / float64(right-left+1)
		}

		var matched bool
		switch op {
		case trigger.OperatorBelow:
			matched = agg < threshold
		case trigger.OperatorAbove:
			matched = agg > threshold
		}
		if matched {
			res.Matches = append(res.Matches, Match{
				WindowStart: points[left].TS,
				WindowEnd:   points[right].TS,
				Value:       agg,
			})
		}
	}

	return res
}
