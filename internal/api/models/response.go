package models

import (
	"stylegrid/internal/analysis"
	"stylegrid/internal/model"
)

// Data source status values.
const (
	DataSourceReal      = "real"
	DataSourceSynthetic = "synthetic"
)

// AnalyzeResponse is the result of one analysis run.
type AnalyzeResponse struct {
	ID string `json:"id"`

	// DataSource is "real" or "synthetic". Synthetic means every real
	// source failed and the demo-mode generator filled in; dashboards must
	// show a degraded-mode indicator on it.
	DataSource string `json:"data_source"`

	// SharpeConvention echoes the active Sharpe numerator so consumers
	// never have to guess ("raw_cagr" or "excess_over_rf").
	SharpeConvention string `json:"sharpe_convention"`

	StartYear int     `json:"start_year"`
	Capital   float64 `json:"capital"`
	Months    int     `json:"months"`

	// Metrics is ordered descending by CAGR.
	Metrics []analysis.MetricsRow `json:"metrics"`

	// Omitted maps labels that could not be resolved to the reason.
	Omitted map[string]string `json:"omitted,omitempty"`

	// Wealth holds per-label cumulative wealth paths when requested.
	Wealth map[string][]model.WealthPoint `json:"wealth,omitempty"`
}

// StyleInfo describes one canonical label for catalog introspection.
type StyleInfo struct {
	Label      string   `json:"label"`
	Candidates []string `json:"candidates,omitempty"`
	Computed   string   `json:"computed,omitempty"` // formula, for derived series
}

// ErrorResponse is the error envelope for all endpoints.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
