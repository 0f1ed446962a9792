package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
data:
  cache_ttl: 1h
analysis:
  start_year: 1963
  capital: 5000
  sharpe_excess: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Data.CacheTTL)
	assert.Equal(t, 1963, cfg.Analysis.StartYear)
	assert.Equal(t, 5000.0, cfg.Analysis.Capital)
	assert.True(t, cfg.Analysis.SharpeExcess)
	// Untouched keys keep their defaults.
	assert.Equal(t, "./data", cfg.Data.Dir)
	assert.Equal(t, "omit", cfg.Fallback.Policy)
}

func TestLoad_RejectsNonPositiveCapital(t *testing.T) {
	path := writeConfig(t, "analysis:\n  capital: -1\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_SubstitutePolicyNeedsColumn(t *testing.T) {
	path := writeConfig(t, "fallback:\n  policy: substitute\n")
	_, err := Load(path)
	assert.Error(t, err)

	path = writeConfig(t, "fallback:\n  policy: substitute\n  default_column: SMALL LoBM\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "SMALL LoBM", cfg.Fallback.DefaultColumn)
}

func TestLoad_UnknownPolicyRejected(t *testing.T) {
	path := writeConfig(t, "fallback:\n  policy: improvise\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestMergeAnalysis(t *testing.T) {
	base := AnalysisConfig{StartYear: 1990, Capital: 10000}

	merged := MergeAnalysis(base, AnalysisConfig{StartYear: 2000})
	assert.Equal(t, 2000, merged.StartYear)
	assert.Equal(t, 10000.0, merged.Capital)

	merged = MergeAnalysis(base, AnalysisConfig{Capital: 250})
	assert.Equal(t, 1990, merged.StartYear)
	assert.Equal(t, 250.0, merged.Capital)

	merged = MergeAnalysis(base, AnalysisConfig{})
	assert.Equal(t, base, merged)
}
