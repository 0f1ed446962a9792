package stylebox

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"stylegrid/internal/model"
)

// FallbackPolicy controls what happens when none of a label's candidate
// columns exist in the source table.
type FallbackPolicy int

const (
	// FallbackOmit drops the label from the output set. Correctness over
	// completeness; the default.
	FallbackOmit FallbackPolicy = iota

	// FallbackSubstitute fills the label from a designated default column.
	// The resulting series is flagged Substituted so it can never pass as
	// real downstream.
	FallbackSubstitute
)

// Tables are the source tables a set is built from. Portfolios is required;
// Momentum and Factors are optional, and omitting one simply omits the
// series derived from it.
type Tables struct {
	Portfolios *model.RawTable
	Momentum   *model.RawTable
	Factors    *model.RawTable
}

// Options tune one mapping run.
type Options struct {
	// StartYear retains only periods whose year is >= StartYear. Applied
	// after intersection. Zero keeps everything.
	StartYear int

	Fallback FallbackPolicy

	// DefaultColumn is the portfolio-table column used by
	// FallbackSubstitute.
	DefaultColumn string

	// Labels restricts the output to a subset of canonical labels. Empty
	// means all.
	Labels []string
}

// Mapper builds canonical series sets from normalized tables.
type Mapper struct {
	Catalog Catalog
}

// New creates a Mapper over the default catalog.
func New() *Mapper { return &Mapper{Catalog: DefaultCatalog()} }

// Build assembles an aligned SeriesSet.
//
// The working index is the intersection of all participating tables'
// indices, then the start-year filter. Grid labels that cannot be resolved
// follow the fallback policy; an unresolvable Momentum is dropped with its
// error recorded. An unresolvable Market constituent is a blocking error:
// Market is computed (Mkt-RF + RF), and analytics without it are not
// meaningful for a factor pipeline.
func (m *Mapper) Build(tables Tables, opts Options) (*model.SeriesSet, map[string]error, error) {
	if tables.Portfolios == nil {
		return nil, nil, fmt.Errorf("portfolio table is required")
	}

	index := commonIndex(opts.StartYear, tables.Portfolios, tables.Momentum, tables.Factors)
	if len(index) == 0 {
		// Metrics degrade to zeros downstream by policy; still worth a
		// loud note, because an empty intersection usually means the
		// start-year filter ate everything.
		log.Warn().Err(model.ErrEmptySeries).Int("start_year", opts.StartYear).
			Msg("intersection of table indices is empty")
	}
	want := labelFilter(opts.Labels)

	set := &model.SeriesSet{
		Series:    map[string]model.ReturnSeries{},
		Synthetic: anySynthetic(tables),
	}
	labelErrs := map[string]error{}

	for _, mapping := range m.Catalog.Grid {
		if !want(mapping.Label) {
			continue
		}
		series, err := m.resolveGrid(tables.Portfolios, mapping, index, opts)
		if err != nil {
			// Non-critical label: downgrade to omission.
			log.Warn().Str("label", mapping.Label).Err(err).Msg("omitting unresolvable style cell")
			labelErrs[mapping.Label] = err
			continue
		}
		set.Labels = append(set.Labels, mapping.Label)
		set.Series[mapping.Label] = series
	}

	if tables.Momentum != nil && want(LabelMomentum) {
		series, err := m.resolveMomentum(tables.Momentum, index)
		if err != nil {
			log.Warn().Err(err).Msg("omitting momentum series")
			labelErrs[LabelMomentum] = err
		} else {
			set.Labels = append(set.Labels, LabelMomentum)
			set.Series[LabelMomentum] = series
		}
	}

	if tables.Factors != nil && want(LabelMarket) {
		series, err := m.computeMarket(tables.Factors, index)
		if err != nil {
			return nil, labelErrs, err
		}
		set.Labels = append(set.Labels, LabelMarket)
		set.Series[LabelMarket] = series
	}

	return set, labelErrs, nil
}

// resolveGrid picks the first existing candidate column for a style cell.
func (m *Mapper) resolveGrid(table *model.RawTable, mapping Mapping, index []model.Period, opts Options) (model.ReturnSeries, error) {
	for _, name := range mapping.Candidates {
		if table.HasColumn(name) {
			return index2series(table, name, mapping.Label, index), nil
		}
	}
	if opts.Fallback == FallbackSubstitute && opts.DefaultColumn != "" && table.HasColumn(opts.DefaultColumn) {
		series := index2series(table, opts.DefaultColumn, mapping.Label, index)
		series.Substituted = true
		series.SubstitutedFrom = opts.DefaultColumn
		log.Warn().Str("label", mapping.Label).Str("column", opts.DefaultColumn).
			Msg("substituted default column for missing style cell")
		return series, nil
	}
	return model.ReturnSeries{}, &model.MissingColumnError{Label: mapping.Label, Candidates: mapping.Candidates}
}

// resolveMomentum tries the alias priority list against the momentum table.
func (m *Mapper) resolveMomentum(table *model.RawTable, index []model.Period) (model.ReturnSeries, error) {
	for _, name := range m.Catalog.MomentumAliases {
		if table.HasColumn(name) {
			return index2series(table, name, LabelMomentum, index), nil
		}
	}
	return model.ReturnSeries{}, &model.MissingColumnError{Label: LabelMomentum, Candidates: m.Catalog.MomentumAliases}
}

// computeMarket builds Market = excess market return + risk-free rate.
func (m *Mapper) computeMarket(table *model.RawTable, index []model.Period) (model.ReturnSeries, error) {
	excess, ok := table.Column(m.Catalog.ExcessMarketColumn)
	if !ok {
		return model.ReturnSeries{}, &model.MissingColumnError{
			Label:      LabelMarket,
			Candidates: []string{m.Catalog.ExcessMarketColumn},
		}
	}
	rf, ok := table.Column(m.Catalog.RiskFreeColumn)
	if !ok {
		return model.ReturnSeries{}, &model.MissingColumnError{
			Label:      LabelMarket,
			Candidates: []string{m.Catalog.RiskFreeColumn},
		}
	}

	series := model.ReturnSeries{Label: LabelMarket}
	for _, p := range index {
		series.Observations = append(series.Observations, model.Observation{
			Period: p,
			Return: excess[p] + rf[p],
		})
	}
	return series, nil
}

// RiskFreeSeries extracts the aligned risk-free series for the excess-return
// Sharpe convention. Returns false if the factors table or column is absent.
func (m *Mapper) RiskFreeSeries(tables Tables, opts Options) (model.ReturnSeries, bool) {
	if tables.Factors == nil || !tables.Factors.HasColumn(m.Catalog.RiskFreeColumn) {
		return model.ReturnSeries{}, false
	}
	index := commonIndex(opts.StartYear, tables.Portfolios, tables.Momentum, tables.Factors)
	return index2series(tables.Factors, m.Catalog.RiskFreeColumn, "RF", index), true
}

// index2series slices one column onto the working index.
func index2series(table *model.RawTable, column, label string, index []model.Period) model.ReturnSeries {
	col, _ := table.Column(column)
	series := model.ReturnSeries{Label: label}
	for _, p := range index {
		series.Observations = append(series.Observations, model.Observation{Period: p, Return: col[p]})
	}
	return series
}

// commonIndex intersects the indices of all non-nil tables, sorted ascending,
// then applies the start-year filter. Periods present in only some tables are
// excluded entirely.
func commonIndex(startYear int, tables ...*model.RawTable) []model.Period {
	counts := map[model.Period]int{}
	n := 0
	for _, t := range tables {
		if t == nil {
			continue
		}
		n++
		for _, p := range t.Periods {
			counts[p]++
		}
	}
	if n == 0 {
		return nil
	}

	out := make([]model.Period, 0, len(counts))
	for p, c := range counts {
		if c != n {
			continue
		}
		if startYear > 0 && p.Year() < startYear {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func anySynthetic(tables Tables) bool {
	for _, t := range []*model.RawTable{tables.Portfolios, tables.Momentum, tables.Factors} {
		if t != nil && t.Synthetic {
			return true
		}
	}
	return false
}

func labelFilter(labels []string) func(string) bool {
	if len(labels) == 0 {
		return func(string) bool { return true }
	}
	set := map[string]struct{}{}
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return func(l string) bool {
		_, ok := set[l]
		return ok
	}
}
