package scale

import (
	"sort"

	"github.com/aclements/go-moremath/stats"

	"dividash/internal/census"
)

// RegionStat aggregates one metric over a region's member rows.
type RegionStat struct {
	Region string
	N      int
	Mean   float64
	Median float64
}

// RegionStats computes per-region mean and median of metric across the
// dataset, in RegionNames order. Rows whose value does not parse are
// excluded, matching domain computation. Regions with no parseable
// member values are returned with N == 0.
func RegionStats(metric string, d *census.Dataset) []RegionStat {
	out := make([]RegionStat, 0, len(census.RegionNames))
	for _, name := range census.RegionNames {
		var xs []float64
		for _, r := range census.RegionRows(d, name) {
			if v, ok := r.Value(metric); ok {
				xs = append(xs, v)
			}
		}
		st := RegionStat{Region: name, N: len(xs)}
		if len(xs) > 0 {
			st.Mean = stats.Mean(xs)
			sort.Float64s(xs)
			st.Median = stats.Sample{Xs: xs, Sorted: true}.Quantile(0.5)
		}
		out = append(out, st)
	}
	return out
}
