package data

import (
	"fmt"
	"math/rand"
	"time"

	"stylegrid/internal/model"
)

// Synthetic draw parameters, in percent per month (the generator writes
// percent values and scales them like a real source would be scaled).
//
//	equity portfolio cells: mean 0.90, stddev 5.00
//	factor columns:         mean 0.60, stddev 4.00
//	risk-free rate:         mean 0.25, stddev 0.10, floored at 0
const (
	synthEquityMean   = 0.90
	synthEquityStddev = 5.00
	synthFactorMean   = 0.60
	synthFactorStddev = 4.00
	synthRFMean       = 0.25
	synthRFStddev     = 0.10
)

// Synthetic tables span the nominal modern window of the real data.
var (
	synthStart = model.NewPeriod(1990, time.January)
	synthEnd   = model.NewPeriod(2024, time.December)
)

// SyntheticSource generates a structurally identical stand-in for a real
// dataset, strictly for exercising downstream code when every real source is
// unavailable. Tables it produces carry Synthetic=true; they must never be
// presented as real data.
type SyntheticSource struct {
	Name string
	// EquityColumns are drawn as equity portfolio cells, FactorColumns as
	// factor series. A column named "RF" is drawn as a risk-free rate.
	EquityColumns []string
	FactorColumns []string

	// Seed makes output reproducible when non-zero.
	Seed int64
}

func (s *SyntheticSource) Key() string { return "synthetic:" + s.Name }

func (s *SyntheticSource) Describe() string {
	return fmt.Sprintf("synthetic stand-in for %s", s.Name)
}

func (s *SyntheticSource) Fetch() (*model.RawTable, error) {
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	table := model.NewRawTable(s.Key())
	table.Synthetic = true
	for p := synthStart; !p.After(synthEnd); p = p.Next() {
		table.Periods = append(table.Periods, p)
	}

	n := table.Len()
	for _, name := range s.EquityColumns {
		table.Columns[name] = drawColumn(rng, n, synthEquityMean, synthEquityStddev, false)
	}
	for _, name := range s.FactorColumns {
		if name == "RF" {
			table.Columns[name] = drawColumn(rng, n, synthRFMean, synthRFStddev, true)
			continue
		}
		table.Columns[name] = drawColumn(rng, n, synthFactorMean, synthFactorStddev, false)
	}
	return table, nil
}

// drawColumn samples n monthly percent values and scales them to decimals,
// mirroring the /100 step applied to real sources.
func drawColumn(rng *rand.Rand, n int, mean, stddev float64, floorZero bool) []float64 {
	out := make([]float64, n)
	for i := range out {
		v := rng.NormFloat64()*stddev + mean
		if floorZero && v < 0 {
			v = 0
		}
		out[i] = v / 100
	}
	return out
}
