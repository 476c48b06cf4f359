package evaluator

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{
			name:   "empty sample",
			values: nil,
			q:      0.5,
			want:   0,
		},
		{
			name:   "single value",
			values: []float64{7.5},
			q:      0.5,
			want:   7.5,
		},
		{
			name:   "median of even count interpolates",
			values: []float64{1, 2, 3, 4},
			q:      0.5,
			want:   2.5,
		},
		{
			name:   "quartile interpolates by fractional position",
			values: []float64{1, 2, 3, 4},
			q:      0.25,
			want:   1.75,
		},
		{
			name:   "unsorted input is sorted first",
			values: []float64{4, 1, 3, 2},
			q:      0.75,
			want:   3.25,
		},
		{
			name:   "q=0 is the minimum",
			values: []float64{5, 1, 9},
			q:      0,
			want:   1,
		},
		{
			name:   "q=1 is the maximum",
			values: []float64{5, 1, 9},
			q:      1,
			want:   9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantile(tt.values, tt.q)
			if !almostEqual(got, tt.want) {
				t.Errorf("Quantile(%v, %v) = %v, want %v", tt.values, tt.q, got, tt.want)
			}
		})
	}
}

func TestQuantileDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Quantile(values, 0.5)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("Quantile mutated its input: %v", values)
	}
}

func TestMedianIQR(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		wantMedian float64
		wantIQR    float64
	}{
		{
			name:       "empty sample yields zeros",
			values:     nil,
			wantMedian: 0,
			wantIQR:    0,
		},
		{
			name:       "single value has zero spread",
			values:     []float64{4.2},
			wantMedian: 4.2,
			wantIQR:    0,
		},
		{
			name:       "odd count",
			values:     []float64{1, 2, 3, 4, 5},
			wantMedian: 3,
			wantIQR:    2,
		},
		{
			name:       "even count interpolates",
			values:     []float64{1, 2, 3, 4},
			wantMedian: 2.5,
			wantIQR:    1.5,
		},
		{
			name:       "constant sample",
			values:     []float64{5, 5, 5, 5},
			wantMedian: 5,
			wantIQR:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			median, iqr := MedianIQR(tt.values)
			if !almostEqual(median, tt.wantMedian) {
				t.Errorf("median = %v, want %v", median, tt.wantMedian)
			}
			if !almostEqual(iqr, tt.wantIQR) {
				t.Errorf("iqr = %v, want %v", iqr, tt.wantIQR)
			}
		})
	}
}

func TestMedianIQRProperties(t *testing.T) {
	samples := [][]float64{
		{0.5, 1.2, 0.9, 2.1, 0.3},
		{100, 200, 150, 175, 120, 190},
		{-3, -1, -2},
		{0, 0, 0, 1},
	}

	for _, values := range samples {
		median, iqr := MedianIQR(values)
		if iqr < 0 {
			t.Errorf("MedianIQR(%v): iqr = %v, want >= 0", values, iqr)
		}
		min, max := values[0], values[0]
		for _, v := range values {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		if median < min || median > max {
			t.Errorf("MedianIQR(%v): median %v outside sample range [%v, %v]", values, median, min, max)
		}
	}
}

func TestSuggestFromSample(t *testing.T) {
	t.Run("empty sample", func(t *testing.T) {
		s := SuggestFromSample(nil)
		if s.Baseline != 0 || s.Spread != 0 || s.AbsSuggestion != 0 {
			t.Errorf("empty sample suggestion = %+v, want all zeros", s)
		}
		if len(s.RelOptions) != 4 {
			t.Errorf("RelOptions = %v, want 4 options", s.RelOptions)
		}
	})

	t.Run("suggestion is median minus iqr", func(t *testing.T) {
		s := SuggestFromSample([]float64{1, 2, 3, 4, 5})
		if !almostEqual(s.Baseline, 3) {
			t.Errorf("Baseline = %v, want 3", s.Baseline)
		}
		if !almostEqual(s.Spread, 2) {
			t.Errorf("Spread = %v, want 2", s.Spread)
		}
		if !almostEqual(s.AbsSuggestion, 1) {
			t.Errorf("AbsSuggestion = %v, want 1", s.AbsSuggestion)
		}
	})

	t.Run("suggestion never goes negative", func(t *testing.T) {
		// Wide spread relative to the median forces the floor.
		s := SuggestFromSample([]float64{0, 0.1, 0.2, 10, 20})
		if s.AbsSuggestion != 0 {
			t.Errorf("AbsSuggestion = %v, want 0 floor", s.AbsSuggestion)
		}
	})

	t.Run("rel options are the fixed percent set", func(t *testing.T) {
		s := SuggestFromSample([]float64{1, 2, 3})
		want := []int{10, 20, 30, 50}
		if len(s.RelOptions) != len(want) {
			t.Fatalf("RelOptions = %v, want %v", s.RelOptions, want)
		}
		for i, v := range want {
			if s.RelOptions[i] != v {
				t.Errorf("RelOptions[%d] = %d, want %d", i, s.RelOptions[i], v)
			}
		}
	})
}
