package models

// AnalyzeRequest is the body for POST /api/v1/analyze.
// Zero-valued fields fall back to the server's configured defaults.
type AnalyzeRequest struct {
	// StartYear retains only periods from this year on. It is clamped to
	// the earliest year the aligned data actually covers.
	StartYear int `json:"start_year,omitempty" form:"start_year" binding:"omitempty,gte=1900,lte=2100"`

	// Capital is the initial notional for wealth paths.
	Capital float64 `json:"capital,omitempty" form:"capital" binding:"omitempty,gt=0"`

	// Labels optionally restricts the output to a subset of canonical
	// labels.
	Labels []string `json:"labels,omitempty" form:"labels"`

	// IncludeWealth adds per-label cumulative wealth paths to the response.
	IncludeWealth bool `json:"include_wealth,omitempty" form:"include_wealth"`

	// SharpeExcess overrides the configured Sharpe convention when set.
	SharpeExcess *bool `json:"sharpe_excess,omitempty" form:"sharpe_excess"`
}
