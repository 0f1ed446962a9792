package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"stylegrid/internal/model"
)

// monthsPerYear annualizes monthly statistics.
const monthsPerYear = 12.0

// zeroVolEpsilon treats numerically-zero volatility (constant series whose
// float mean is off by an ulp) as zero so Sharpe degrades to 0 by policy
// instead of exploding.
const zeroVolEpsilon = 1e-12

// SharpeConvention names the active Sharpe numerator.
type SharpeConvention string

const (
	// SharpeRawCAGR divides raw CAGR by annualized volatility.
	SharpeRawCAGR SharpeConvention = "raw_cagr"
	// SharpeExcessRF divides CAGR minus the annualized risk-free CAGR by
	// annualized volatility.
	SharpeExcessRF SharpeConvention = "excess_over_rf"
)

// Options tune metric computation.
type Options struct {
	// ExcessReturns enables the excess-over-risk-free Sharpe numerator.
	// Requires RiskFree to be set; ignored (with the raw convention kept)
	// when it is empty.
	ExcessReturns bool

	// RiskFree is the aligned monthly risk-free series.
	RiskFree model.ReturnSeries
}

// Convention reports which Sharpe numerator the options actually select.
func (o Options) Convention() SharpeConvention {
	if o.ExcessReturns && o.RiskFree.Len() > 0 {
		return SharpeExcessRF
	}
	return SharpeRawCAGR
}

// MetricsRow is the derived, read-only performance record for one series.
type MetricsRow struct {
	Label  string `json:"label"`
	Months int    `json:"months"`

	TotalReturn float64 `json:"total_return"`
	CAGR        float64 `json:"cagr"`
	Volatility  float64 `json:"volatility"`
	Sharpe      float64 `json:"sharpe"`
	MaxDrawdown float64 `json:"max_drawdown"`

	// Substituted is carried over from the series so a fallback-filled
	// series is distinguishable in every output.
	Substituted bool `json:"substituted,omitempty"`
}

// Compute derives a MetricsRow from one series of decimal monthly returns.
//
// Policies for degenerate inputs: zero periods yields all-zero metrics
// (ErrEmptySeries is not raised here; emptiness is a caller-visible fact,
// not a computation failure), and zero volatility yields Sharpe 0.
func Compute(series model.ReturnSeries, opts Options) MetricsRow {
	row := MetricsRow{
		Label:       series.Label,
		Months:      series.Len(),
		Substituted: series.Substituted,
	}
	if series.Len() == 0 {
		return row
	}

	returns := series.Returns()

	row.TotalReturn = totalReturn(returns)
	row.CAGR = cagr(row.TotalReturn, len(returns))
	row.Volatility = annualizedVol(returns)
	row.MaxDrawdown = maxDrawdown(returns)

	numerator := row.CAGR
	if opts.Convention() == SharpeExcessRF {
		rf := opts.RiskFree.Returns()
		numerator = row.CAGR - cagr(totalReturn(rf), len(rf))
	}
	if row.Volatility > zeroVolEpsilon {
		row.Sharpe = numerator / row.Volatility
	} else {
		row.Volatility = 0
	}
	return row
}

// ComputeSet derives rows for every series in a set, in label order.
func ComputeSet(set *model.SeriesSet, opts Options) []MetricsRow {
	rows := make([]MetricsRow, 0, len(set.Labels))
	for _, label := range set.Labels {
		rows = append(rows, Compute(set.Series[label], opts))
	}
	return rows
}

// totalReturn is Π(1+r) − 1.
func totalReturn(returns []float64) float64 {
	prod := 1.0
	for _, r := range returns {
		prod *= 1 + r
	}
	return prod - 1
}

// cagr annualizes a total return over n months: (1+total)^(12/n) − 1.
// Zero months is defined as 0.
func cagr(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.Pow(1+total, monthsPerYear/float64(n)) - 1
}

// annualizedVol is the sample standard deviation scaled by √12.
func annualizedVol(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	return stat.StdDev(returns, nil) * math.Sqrt(monthsPerYear)
}

// maxDrawdown is min over t of C(t)/runningMax(C) − 1 on the cumulative
// wealth index. Always ≤ 0; 0 for a non-decreasing wealth path.
func maxDrawdown(returns []float64) float64 {
	wealth := 1.0
	peak := 1.0
	minDD := 0.0
	for _, r := range returns {
		wealth *= 1 + r
		if wealth > peak {
			peak = wealth
		}
		if dd := wealth/peak - 1; dd < minDD {
			minDD = dd
		}
	}
	return minDD
}
