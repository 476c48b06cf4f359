package metric

// Value maps a raw observation to a scalar for the given metric key.
// It is pure and total: division-by-zero cases return 0, never NaN or
// Inf, so downstream aggregation and comparisons stay well-defined.
func Value(row Observation, key Key, roasMode ROASMode) float64 {
	switch key {
	case KeyCTR:
		if row.Impressions <= 0 {
			return 0
		}
		return float64(row.Clicks) / float64(row.Impressions) * 100
	case KeySpend:
		return row.Spend
	case KeyCPM:
		if row.Impressions <= 0 {
			return 0
		}
		return row.Spend / float64(row.Impressions) * 1000
	case KeyROAS:
		if roasMode == ROASModeRatio {
			if row.Spend <= 0 {
				return 0
			}
			return row.Revenue / row.Spend
		}
		return row.Revenue
	default:
		return 0
	}
}

// BuildSeries converts ordered raw rows into a scalar series for one
// metric. Rows are expected ascending by timestamp; gaps are left as
// gaps, with no filling or dedup.
func BuildSeries(rows []*Observation, key Key, roasMode ROASMode) Series {
	points := make([]Point, 0, len(rows))
	for _, row := range rows {
		points = append(points, Point{
			TS:    row.TS,
			Value: Value(*row, key, roasMode),
		})
	}
	return Series{Metric: key, Points: points}
}
