package stylebox

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylegrid/internal/model"
)

// table builds a RawTable where every column holds the same constant value.
func table(t *testing.T, periods []string, value float64, columns ...string) *model.RawTable {
	t.Helper()
	out := model.NewRawTable("test")
	for _, s := range periods {
		out.Periods = append(out.Periods, model.MustParsePeriod(s))
	}
	for _, name := range columns {
		col := make([]float64, len(periods))
		for i := range col {
			col[i] = value
		}
		out.Columns[name] = col
	}
	return out
}

var gridColumns = []string{
	"SMALL LoBM", "ME1 BM3", "SMALL HiBM",
	"ME3 BM1", "ME3 BM3", "ME3 BM5",
	"BIG LoBM", "BIG BM3", "BIG HiBM",
}

func TestBuild_FullNineBox(t *testing.T) {
	periods := []string{"199001", "199002", "199003"}
	tables := Tables{
		Portfolios: table(t, periods, 0.01, gridColumns...),
		Momentum:   table(t, periods, 0.005, "Mom"),
		Factors:    table(t, periods, 0.002, "Mkt-RF", "RF"),
	}

	set, labelErrs, err := New().Build(tables, Options{})
	require.NoError(t, err)
	assert.Empty(t, labelErrs)
	assert.Len(t, set.Labels, 11) // nine box + Momentum + Market
	assert.False(t, set.Synthetic)

	market, ok := set.Get(LabelMarket)
	require.True(t, ok)
	require.Equal(t, 3, market.Len())
	// Market is computed, not looked up: Mkt-RF + RF.
	assert.InDelta(t, 0.004, market.Observations[0].Return, 1e-12)

	small, ok := set.Get(LabelSmallValue)
	require.True(t, ok)
	assert.Equal(t, model.MustParsePeriod("199001"), small.Observations[0].Period)
	assert.InDelta(t, 0.01, small.Observations[0].Return, 1e-12)
}

func TestBuild_CandidatePriority(t *testing.T) {
	// A table containing only "BIG Lo" still resolves Large Growth via the
	// later candidate.
	periods := []string{"199001"}
	tables := Tables{Portfolios: table(t, periods, 0.02, "BIG Lo")}

	set, _, err := New().Build(tables, Options{Labels: []string{LabelLargeGrowth}})
	require.NoError(t, err)

	lg, ok := set.Get(LabelLargeGrowth)
	require.True(t, ok)
	assert.InDelta(t, 0.02, lg.Observations[0].Return, 1e-12)
	assert.False(t, lg.Substituted)
}

func TestBuild_IndexIsExactIntersection(t *testing.T) {
	portfolios := table(t, []string{"199001", "199002", "199003", "199004"}, 0.01, gridColumns...)
	factors := table(t, []string{"199002", "199003", "199005"}, 0.002, "Mkt-RF", "RF")

	set, _, err := New().Build(Tables{Portfolios: portfolios, Factors: factors}, Options{})
	require.NoError(t, err)

	want := []model.Period{
		model.MustParsePeriod("199002"),
		model.MustParsePeriod("199003"),
	}
	for _, label := range set.Labels {
		series := set.Series[label]
		require.Equal(t, len(want), series.Len(), "label %s", label)
		for i, o := range series.Observations {
			assert.Equal(t, want[i], o.Period)
		}
	}
}

func TestBuild_StartYearAppliedAfterIntersection(t *testing.T) {
	periods := []string{"198901", "198912", "199001", "199102"}
	tables := Tables{Portfolios: table(t, periods, 0.01, gridColumns...)}

	set, _, err := New().Build(tables, Options{StartYear: 1990})
	require.NoError(t, err)

	series := set.Series[LabelSmallValue]
	require.Equal(t, 2, series.Len())
	assert.Equal(t, 1990, series.Observations[0].Period.Year())
	assert.Equal(t, 1991, series.Observations[1].Period.Year())
}

func TestBuild_OmitsUnresolvableCell(t *testing.T) {
	// No Mid columns at all: the Mid row is omitted, the rest survives.
	periods := []string{"199001"}
	cols := []string{"SMALL LoBM", "ME1 BM3", "SMALL HiBM", "BIG LoBM", "BIG BM3", "BIG HiBM"}
	tables := Tables{Portfolios: table(t, periods, 0.01, cols...)}

	set, labelErrs, err := New().Build(tables, Options{})
	require.NoError(t, err)

	assert.Len(t, set.Labels, 6)
	require.Contains(t, labelErrs, LabelMidValue)

	var colErr *model.MissingColumnError
	assert.True(t, errors.As(labelErrs[LabelMidValue], &colErr))
	_, ok := set.Get(LabelMidValue)
	assert.False(t, ok)
}

func TestBuild_SubstituteIsFlagged(t *testing.T) {
	periods := []string{"199001"}
	cols := []string{"SMALL LoBM", "ME1 BM3", "SMALL HiBM", "BIG LoBM", "BIG BM3", "BIG HiBM"}
	tables := Tables{Portfolios: table(t, periods, 0.01, cols...)}

	set, labelErrs, err := New().Build(tables, Options{
		Fallback:      FallbackSubstitute,
		DefaultColumn: "SMALL LoBM",
	})
	require.NoError(t, err)
	assert.Empty(t, labelErrs)

	mid, ok := set.Get(LabelMidValue)
	require.True(t, ok)
	// Substitution is never silent.
	assert.True(t, mid.Substituted)
	assert.Equal(t, "SMALL LoBM", mid.SubstitutedFrom)
}

func TestBuild_MissingMarketConstituentIsBlocking(t *testing.T) {
	periods := []string{"199001"}
	tables := Tables{
		Portfolios: table(t, periods, 0.01, gridColumns...),
		Factors:    table(t, periods, 0.002, "Mkt-RF"), // no RF
	}

	_, _, err := New().Build(tables, Options{})
	require.Error(t, err)

	var colErr *model.MissingColumnError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, LabelMarket, colErr.Label)
}

func TestBuild_MissingMomentumDegradesToOmission(t *testing.T) {
	periods := []string{"199001"}
	tables := Tables{
		Portfolios: table(t, periods, 0.01, gridColumns...),
		Momentum:   table(t, periods, 0.005, "NotMomentum"),
	}

	set, labelErrs, err := New().Build(tables, Options{})
	require.NoError(t, err)

	require.Contains(t, labelErrs, LabelMomentum)
	_, ok := set.Get(LabelMomentum)
	assert.False(t, ok)
	// The nine box is unaffected.
	assert.Len(t, set.Labels, 9)
}

func TestBuild_MomentumAliases(t *testing.T) {
	periods := []string{"199001"}
	for _, alias := range []string{"Mom", "Hi PRIOR", "10", "High"} {
		tables := Tables{
			Portfolios: table(t, periods, 0.01, gridColumns...),
			Momentum:   table(t, periods, 0.005, alias),
		}
		set, _, err := New().Build(tables, Options{})
		require.NoError(t, err, "alias %s", alias)
		_, ok := set.Get(LabelMomentum)
		assert.True(t, ok, "alias %s", alias)
	}
}

func TestBuild_SyntheticFlagPropagates(t *testing.T) {
	periods := []string{"199001"}
	portfolios := table(t, periods, 0.01, gridColumns...)
	portfolios.Synthetic = true

	set, _, err := New().Build(Tables{Portfolios: portfolios}, Options{})
	require.NoError(t, err)
	assert.True(t, set.Synthetic)
}

func TestCatalog_Labels(t *testing.T) {
	labels := DefaultCatalog().Labels()
	assert.Len(t, labels, 11)
	assert.Equal(t, LabelMomentum, labels[9])
	assert.Equal(t, LabelMarket, labels[10])
}

func TestRiskFreeSeries_Aligned(t *testing.T) {
	portfolios := table(t, []string{"199001", "199002"}, 0.01, gridColumns...)
	factors := table(t, []string{"199002", "199003"}, 0.003, "Mkt-RF", "RF")

	mapper := New()
	tables := Tables{Portfolios: portfolios, Factors: factors}
	rf, ok := mapper.RiskFreeSeries(tables, Options{})
	require.True(t, ok)
	require.Equal(t, 1, rf.Len())
	assert.Equal(t, model.NewPeriod(1990, time.February), rf.Observations[0].Period)
}
