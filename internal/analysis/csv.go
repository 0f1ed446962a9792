package analysis

import (
	"encoding/csv"
	"os"
	"strconv"

	"stylegrid/internal/model"
)

// WriteMetricsCSV writes one row per series.
func WriteMetricsCSV(path string, rows []MetricsRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"label", "months", "total_return", "cagr", "volatility", "sharpe", "max_drawdown", "substituted"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Label,
			strconv.Itoa(r.Months),
			fmtFloat(r.TotalReturn),
			fmtFloat(r.CAGR),
			fmtFloat(r.Volatility),
			fmtFloat(r.Sharpe),
			fmtFloat(r.MaxDrawdown),
			strconv.FormatBool(r.Substituted),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteWealthCSV writes the cumulative wealth paths of a set, one period per
// row and one column per label, scaled by the initial capital.
func WriteWealthCSV(path string, set *model.SeriesSet, capital float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{"period"}, set.Labels...)
	if err := w.Write(header); err != nil {
		return err
	}

	paths := make(map[string][]model.WealthPoint, len(set.Labels))
	var periods []model.Period
	for _, label := range set.Labels {
		paths[label] = model.WealthPath(set.Series[label], capital)
		if periods == nil {
			for _, pt := range paths[label] {
				periods = append(periods, pt.Period)
			}
		}
	}

	for i, p := range periods {
		rec := make([]string, 0, len(set.Labels)+1)
		rec = append(rec, p.ISO())
		for _, label := range set.Labels {
			rec = append(rec, fmtFloat(paths[label][i].Value))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
