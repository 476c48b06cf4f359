package evaluator

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
	"github.com/pratik-mahalle/campwatch/internal/domain/trigger"
)

func seriesOf(key metric.Key, start time.Time, step time.Duration, values ...float64) metric.Series {
	s := metric.Series{Metric: key}
	for i, v := range values {
		s.Points = append(s.Points, metric.Point{TS: start.Add(time.Duration(i) * step), Value: v})
	}
	return s
}

func TestEvaluateWindowsEmptyAndMalformed(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty series", func(t *testing.T) {
		res := EvaluateWindows(metric.Series{Metric: metric.KeyCTR}, 3*time.Hour, trigger.OperatorBelow, 2)
		if res.WindowsChecked != 0 || len(res.Matches) != 0 {
			t.Errorf("empty series: got %d windows, %d matches, want 0, 0", res.WindowsChecked, len(res.Matches))
		}
	})

	t.Run("zero window duration", func(t *testing.T) {
		s := seriesOf(metric.KeyCTR, start, time.Hour, 1, 2, 3)
		res := EvaluateWindows(s, 0, trigger.OperatorBelow, 10)
		if res.WindowsChecked != 0 || len(res.Matches) != 0 {
			t.Errorf("zero window: got %d windows, %d matches, want 0, 0", res.WindowsChecked, len(res.Matches))
		}
	})

	t.Run("negative window duration", func(t *testing.T) {
		s := seriesOf(metric.KeySpend, start, time.Hour, 100, 200)
		res := EvaluateWindows(s, -time.Hour, trigger.OperatorAbove, 0)
		if res.WindowsChecked != 0 || len(res.Matches) != 0 {
			t.Errorf("negative window: got %d windows, %d matches, want 0, 0", res.WindowsChecked, len(res.Matches))
		}
	})
}

func TestEvaluateWindowsSinglePoint(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s := seriesOf(metric.KeyCTR, start, time.Hour, 1.0)

	res := EvaluateWindows(s, 3*time.Hour, trigger.OperatorBelow, 2.0)
	if res.WindowsChecked != 1 {
		t.Errorf("WindowsChecked = %d, want 1", res.WindowsChecked)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("Matches = %d, want 1", len(res.Matches))
	}
	m := res.Matches[0]
	if !m.WindowStart.Equal(start) || !m.WindowEnd.Equal(start) {
		t.Errorf("window bounds = [%v, %v], want both %v", m.WindowStart, m.WindowEnd, start)
	}
	if m.Value != 1.0 {
		t.Errorf("Value = %v, want 1.0", m.Value)
	}
}

func TestEvaluateWindowsAveragesRateMetrics(t *testing.T) {
	// Hourly CTR values; a 3h window at each right edge averages the
	// trailing points within a strict 3h span.
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s := seriesOf(metric.KeyCTR, start, time.Hour, 3.0, 1.0, 2.0, 6.0)

	res := EvaluateWindows(s, 3*time.Hour, trigger.OperatorBelow, 2.5)
	if res.WindowsChecked != 4 {
		t.Errorf("WindowsChecked = %d, want 4", res.WindowsChecked)
	}
	// Window aggregates: [3]=3, [3,1]=2, [3,1,2]=2, [1,2,6]=3.
	if len(res.Matches) != 2 {
		t.Fatalf("Matches = %d, want 2", len(res.Matches))
	}
	if res.Matches[0].Value != 2.0 || res.Matches[1].Value != 2.0 {
		t.Errorf("match values = %v, %v, want 2.0, 2.0", res.Matches[0].Value, res.Matches[1].Value)
	}
	if !res.Matches[1].WindowStart.Equal(start) || !res.Matches[1].WindowEnd.Equal(start.Add(2*time.Hour)) {
		t.Errorf("second match bounds = [%v, %v]", res.Matches[1].WindowStart, res.Matches[1].WindowEnd)
	}
}

func TestEvaluateWindowsSumsSpend(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s := seriesOf(metric.KeySpend, start, time.Hour, 100, 110, 120, 90)

	res := EvaluateWindows(s, 3*time.Hour, trigger.OperatorAbove, 300)
	if res.WindowsChecked != 4 {
		t.Errorf("WindowsChecked = %d, want 4", res.WindowsChecked)
	}
	// Window sums: 100, 210, 330, 320. Two exceed 300.
	if len(res.Matches) != 2 {
		t.Fatalf("Matches = %d, want 2", len(res.Matches))
	}
	if res.Matches[0].Value != 330 {
		t.Errorf("first match = %v, want 330", res.Matches[0].Value)
	}
	if !res.Matches[0].WindowStart.Equal(start) || !res.Matches[0].WindowEnd.Equal(start.Add(2*time.Hour)) {
		t.Errorf("first match bounds = [%v, %v]", res.Matches[0].WindowStart, res.Matches[0].WindowEnd)
	}
	if res.Matches[1].Value != 320 {
		t.Errorf("second match = %v, want 320", res.Matches[1].Value)
	}
}

func TestEvaluateWindowsEqualityNeverMatches(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s := seriesOf(metric.KeyCTR, start, time.Hour, 2.0, 2.0, 2.0)

	for _, op := range []trigger.Operator{trigger.OperatorBelow, trigger.OperatorAbove} {
		res := EvaluateWindows(s, 3*time.Hour, op, 2.0)
		if len(res.Matches) != 0 {
			t.Errorf("operator %q at threshold 2.0: got %d matches, want 0", op, len(res.Matches))
		}
	}
}

func TestEvaluateWindowsSpanIsStrict(t *testing.T) {
	// Points exactly windowHours apart never share a window.
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s := seriesOf(metric.KeySpend, start, 3*time.Hour, 100, 100, 100)

	res := EvaluateWindows(s, 3*time.Hour, trigger.OperatorAbove, 150)
	if res.WindowsChecked != 3 {
		t.Errorf("WindowsChecked = %d, want 3", res.WindowsChecked)
	}
	if len(res.Matches) != 0 {
		t.Errorf("Matches = %d, want 0; every window holds a single 100 point", len(res.Matches))
	}
}

func TestEvaluateWindowsDuplicateTimestamps(t *testing.T) {
	// Ties are legal; points at the same instant share every window
	// that includes either of them.
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s := metric.Series{
		Metric: metric.KeySpend,
		Points: []metric.Point{
			{TS: start, Value: 100},
			{TS: start, Value: 150},
			{TS: start.Add(time.Hour), Value: 60},
		},
	}

	res := EvaluateWindows(s, 2*time.Hour, trigger.OperatorAbove, 200)
	if res.WindowsChecked != 3 {
		t.Errorf("WindowsChecked = %d, want 3", res.WindowsChecked)
	}
	// Sums: 100, 250, 310.
	if len(res.Matches) != 2 {
		t.Fatalf("Matches = %d, want 2", len(res.Matches))
	}
	if res.Matches[0].Value != 250 || res.Matches[1].Value != 310 {
		t.Errorf("match values = %v, %v, want 250, 310", res.Matches[0].Value, res.Matches[1].Value)
	}
}

// bruteForceWindows re-aggregates every trailing window from scratch.
// It is the O(n^2) oracle the two-pointer scan must agree with.
func bruteForceWindows(series metric.Series, window time.Duration, op trigger.Operator, threshold float64) Result {
	res := Result{Matches: []Match{}}
	cumulative := series.Metric.IsCumulative()
	points := series.Points
	for right := 0; right < len(points); right++ {
		left := right
		for left > 0 && points[right].TS.Sub(points[left-1].TS) < window {
			left--
		}
		res.WindowsChecked++
		sum := 0.0
		for i := left; i <= right; i++ {
			sum += points[i].Value
		}
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

func TestEvaluateWindowsMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for _, key := range []metric.Key{metric.KeyCTR, metric.KeySpend} {
		for trial := 0; trial < 25; trial++ {
			// Irregular gaps, including occasional duplicates.
			n := 5 + rng.Intn(60)
			s := metric.Series{Metric: key}
			ts := start
			for i := 0; i < n; i++ {
				// Integer values keep the running sum exact.
				s.Points = append(s.Points, metric.Point{TS: ts, Value: float64(rng.Intn(50))})
				ts = ts.Add(time.Duration(rng.Intn(5)) * time.Hour)
			}
			window := time.Duration(1+rng.Intn(12)) * time.Hour
			threshold := float64(rng.Intn(120))
			op := trigger.OperatorBelow
			if rng.Intn(2) == 0 {
				op = trigger.OperatorAbove
			}

			got := EvaluateWindows(s, window, op, threshold)
			want := bruteForceWindows(s, window, op, threshold)

			if got.WindowsChecked != want.WindowsChecked {
				t.Fatalf("%s trial %d: WindowsChecked = %d, want %d", key, trial, got.WindowsChecked, want.WindowsChecked)
			}
			if len(got.Matches) != len(want.Matches) {
				t.Fatalf("%s trial %d: %d matches, want %d", key, trial, len(got.Matches), len(want.Matches))
			}
			for i := range got.Matches {
				g, w := got.Matches[i], want.Matches[i]
				if !g.WindowStart.Equal(w.WindowStart) || !g.WindowEnd.Equal(w.WindowEnd) {
					t.Fatalf("%s trial %d match %d: bounds [%v, %v], want [%v, %v]",
						key, trial, i, g.WindowStart, g.WindowEnd, w.WindowStart, w.WindowEnd)
				}
				if math.Abs(g.Value-w.Value) > 1e-6 {
					t.Fatalf("%s trial %d match %d: value %v, want %v", key, trial, i, g.Value, w.Value)
				}
			}
		}
	}
}
