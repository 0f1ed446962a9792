package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylegrid/internal/model"
)

func TestTableCache_SetGet(t *testing.T) {
	cache := NewTableCache(time.Hour)
	defer cache.Close()

	table := model.NewRawTable("src")
	cache.Set("k", table)

	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Same(t, table, got)

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestTableCache_Expiry(t *testing.T) {
	cache := NewTableCache(10 * time.Millisecond)
	defer cache.Close()

	cache.Set("k", model.NewRawTable("src"))
	time.Sleep(25 * time.Millisecond)

	_, ok := cache.Get("k")
	assert.False(t, ok)
}

func TestTableCache_SetReplacesEntry(t *testing.T) {
	cache := NewTableCache(time.Hour)
	defer cache.Close()

	first := model.NewRawTable("a")
	second := model.NewRawTable("b")
	cache.Set("k", first)
	cache.Set("k", second)

	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestTableCache_Clear(t *testing.T) {
	cache := NewTableCache(time.Hour)
	defer cache.Close()

	cache.Set("k", model.NewRawTable("src"))
	cache.Clear()

	_, ok := cache.Get("k")
	assert.False(t, ok)
}

func TestTableCache_NilSafe(t *testing.T) {
	var cache *TableCache
	cache.Set("k", model.NewRawTable("src"))
	_, ok := cache.Get("k")
	assert.False(t, ok)
}

func TestSyntheticSource_Shape(t *testing.T) {
	src := &SyntheticSource{
		Name:          "test",
		EquityColumns: []string{"SMALL HiBM", "BIG LoBM"},
		FactorColumns: []string{"Mkt-RF", "RF"},
		Seed:          7,
	}
	table, err := src.Fetch()
	require.NoError(t, err)

	assert.True(t, table.Synthetic)
	assert.Equal(t, 35*12, table.Len()) // 1990-01 .. 2024-12
	for _, name := range []string{"SMALL HiBM", "BIG LoBM", "Mkt-RF", "RF"} {
		require.True(t, table.HasColumn(name))
		assert.Len(t, table.Columns[name], table.Len())
	}
	// RF is a rate, floored at zero.
	for _, v := range table.Columns["RF"] {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestSyntheticSource_Deterministic(t *testing.T) {
	a := &SyntheticSource{Name: "t", FactorColumns: []string{"Mom"}, Seed: 3}
	b := &SyntheticSource{Name: "t", FactorColumns: []string{"Mom"}, Seed: 3}

	ta, err := a.Fetch()
	require.NoError(t, err)
	tb, err := b.Fetch()
	require.NoError(t, err)
	assert.Equal(t, ta.Columns["Mom"], tb.Columns["Mom"])
}
