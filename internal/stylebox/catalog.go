// Package stylebox maps provider column names onto the canonical nine-box
// size/value grid plus Momentum and Market series.
package stylebox

// Canonical series labels.
const (
	LabelLargeValue  = "Large Value"
	LabelLargeBlend  = "Large Blend"
	LabelLargeGrowth = "Large Growth"
	LabelMidValue    = "Mid Value"
	LabelMidBlend    = "Mid Blend"
	LabelMidGrowth   = "Mid Growth"
	LabelSmallValue  = "Small Value"
	LabelSmallBlend  = "Small Blend"
	LabelSmallGrowth = "Small Growth"
	LabelMomentum    = "Momentum"
	LabelMarket      = "Market"
)

// Mapping is one canonical label with its ordered candidate column names.
// The first candidate present in the source table wins.
type Mapping struct {
	Label      string   `json:"label"`
	Candidates []string `json:"candidates"`
}

// Catalog declares how a source table's columns resolve to canonical labels.
// Column-name variability lives here, as data, not in code branches.
type Catalog struct {
	// Grid maps the nine style-box cells against the portfolio table.
	Grid []Mapping

	// MomentumAliases are tried in order against the momentum table.
	MomentumAliases []string

	// Market is computed, not looked up: ExcessMarket + RiskFree.
	ExcessMarketColumn string
	RiskFreeColumn     string
}

// DefaultCatalog targets the Ken French 25 Portfolios (5x5), momentum factor
// and five-factor exports. Corner aliases come first so the legacy names
// ("SMALL HiBM", "BIG LoBM") resolve ahead of the positional grid names.
func DefaultCatalog() Catalog {
	return Catalog{
		Grid: []Mapping{
			{Label: LabelLargeValue, Candidates: []string{"BIG HiBM", "ME5 BM5", "BIG BM5"}},
			{Label: LabelLargeBlend, Candidates: []string{"BIG BM3", "ME5 BM3"}},
			{Label: LabelLargeGrowth, Candidates: []string{"BIG LoBM", "ME5 BM1", "BIG Lo"}},
			{Label: LabelMidValue, Candidates: []string{"ME3 BM5"}},
			{Label: LabelMidBlend, Candidates: []string{"ME3 BM3"}},
			{Label: LabelMidGrowth, Candidates: []string{"ME3 BM1"}},
			{Label: LabelSmallValue, Candidates: []string{"SMALL HiBM", "ME1 BM5", "SMALL Hi"}},
			{Label: LabelSmallBlend, Candidates: []string{"ME1 BM3"}},
			{Label: LabelSmallGrowth, Candidates: []string{"SMALL LoBM", "ME1 BM1", "SMALL Lo"}},
		},
		MomentumAliases:    []string{"Mom", "Hi PRIOR", "10", "High"},
		ExcessMarketColumn: "Mkt-RF",
		RiskFreeColumn:     "RF",
	}
}

// Labels returns the canonical labels in presentation order.
func (c Catalog) Labels() []string {
	out := make([]string, 0, len(c.Grid)+2)
	for _, m := range c.Grid {
		out = append(out, m.Label)
	}
	out = append(out, LabelMomentum, LabelMarket)
	return out
}
