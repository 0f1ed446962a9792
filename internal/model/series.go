package model

// Observation is one (period, decimal monthly return) pair.
type Observation struct {
	Period Period  `json:"period"`
	Return float64 `json:"return"`
}

// ReturnSeries is one canonical series: chronologically ordered monthly
// returns with no gaps over its span.
type ReturnSeries struct {
	Label string `json:"label"`

	Observations []Observation `json:"observations"`

	// Substituted marks a series that was filled from a designated default
	// column because none of the label's candidate columns existed. It is
	// never set silently; consumers must display it.
	Substituted bool `json:"substituted,omitempty"`

	// SubstitutedFrom names the column actually used when Substituted.
	SubstitutedFrom string `json:"substituted_from,omitempty"`
}

// Len returns the number of observations.
func (s ReturnSeries) Len() int { return len(s.Observations) }

// Returns extracts the bare return values in order.
func (s ReturnSeries) Returns() []float64 {
	out := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = o.Return
	}
	return out
}

// SeriesSet is the mapper output: canonical label → aligned return series.
// All member series share an identical period index.
type SeriesSet struct {
	// Labels preserves canonical presentation order.
	Labels []string

	Series map[string]ReturnSeries

	// Synthetic is true when any contributing table was synthetic.
	Synthetic bool
}

// Get returns the series for a label.
func (ss *SeriesSet) Get(label string) (ReturnSeries, bool) {
	s, ok := ss.Series[label]
	return s, ok
}

// WealthPoint is one point of a cumulative wealth path.
type WealthPoint struct {
	Period Period  `json:"period"`
	Value  float64 `json:"value"`
}

// WealthPath computes the cumulative wealth index of a series scaled by the
// initial capital: W(t) = capital × Π_{i≤t} (1 + r_i).
func WealthPath(s ReturnSeries, capital float64) []WealthPoint {
	out := make([]WealthPoint, 0, len(s.Observations))
	w := capital
	for _, o := range s.Observations {
		w *= 1 + o.Return
		out = append(out, WealthPoint{Period: o.Period, Value: w})
	}
	return out
}
