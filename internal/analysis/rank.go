package analysis

import "sort"

// RankByCAGR returns a copy of rows sorted descending by CAGR, the order the
// dashboard table is presented in.
func RankByCAGR(rows []MetricsRow) []MetricsRow {
	out := make([]MetricsRow, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CAGR > out[j].CAGR
	})
	return out
}
