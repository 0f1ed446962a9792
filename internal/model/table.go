package model

// RawTable is the canonical shape of one normalized data source: monthly
// observations indexed by Period, one float column per provider series.
// Values are decimal fractions (a source value of 5.0% is stored as 0.05)
// and column names are whitespace-trimmed.
type RawTable struct {
	// Source identifies where the table came from (file path, dataset ID...).
	Source string

	// Periods is the ordered, ascending month index. Columns are parallel
	// slices: Columns[name][i] is the value for Periods[i].
	Periods []Period
	Columns map[string][]float64

	// Synthetic marks tables produced by the pseudo-random fallback
	// generator. Downstream consumers must surface this to the user.
	Synthetic bool
}

// NewRawTable creates an empty table for the given source.
func NewRawTable(source string) *RawTable {
	return &RawTable{
		Source:  source,
		Columns: map[string][]float64{},
	}
}

// Len returns the number of periods (rows).
func (t *RawTable) Len() int { return len(t.Periods) }

// ColumnNames returns the set of column names in unspecified order.
func (t *RawTable) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for name := range t.Columns {
		names = append(names, name)
	}
	return names
}

// HasColumn reports whether the named column exists.
func (t *RawTable) HasColumn(name string) bool {
	_, ok := t.Columns[name]
	return ok
}

// Column returns the series for one column keyed by period.
// The second return is false if the column does not exist.
func (t *RawTable) Column(name string) (map[Period]float64, bool) {
	vals, ok := t.Columns[name]
	if !ok {
		return nil, false
	}
	out := make(map[Period]float64, len(vals))
	for i, p := range t.Periods {
		out[p] = vals[i]
	}
	return out, true
}

// PeriodIndex returns the position of p in the table index, or -1.
func (t *RawTable) PeriodIndex(p Period) int {
	for i, q := range t.Periods {
		if q == p {
			return i
		}
	}
	return -1
}
