package data

// Dataset describes one known Ken French library export and how to parse it.
type Dataset struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Archive     string   `json:"archive"`  // zip filename under the library root
	Keywords    []string `json:"keywords"` // header-identifying keywords
	Description string   `json:"description"`

	// Column classes for the synthetic stand-in generator.
	EquityColumns []string `json:"-"`
	FactorColumns []string `json:"-"`
}

// Known dataset IDs.
const (
	DatasetPortfolios5x5 = "25_portfolios_5x5"
	DatasetMomentum      = "ff_momentum_factor"
	DatasetFiveFactors   = "ff5_factors"
)

// portfolio5x5Columns enumerates the provider's 5x5 size/value grid names.
// Corner cells carry their legacy names; interior cells are "MEr BMc".
var portfolio5x5Columns = []string{
	"SMALL LoBM", "ME1 BM2", "ME1 BM3", "ME1 BM4", "SMALL HiBM",
	"ME2 BM1", "ME2 BM2", "ME2 BM3", "ME2 BM4", "ME2 BM5",
	"ME3 BM1", "ME3 BM2", "ME3 BM3", "ME3 BM4", "ME3 BM5",
	"ME4 BM1", "ME4 BM2", "ME4 BM3", "ME4 BM4", "ME4 BM5",
	"BIG LoBM", "BIG BM2", "BIG BM3", "BIG BM4", "BIG HiBM",
}

// Datasets returns the registry of known library exports.
func Datasets() []Dataset {
	return []Dataset{
		{
			ID:            DatasetPortfolios5x5,
			Name:          "25 Portfolios Formed on Size and Book-to-Market (5x5)",
			Archive:       "25_Portfolios_5x5_CSV.zip",
			Keywords:      []string{"SMALL LoBM", "BIG HiBM"},
			Description:   "Monthly value-weighted returns for 25 size/value portfolios.",
			EquityColumns: portfolio5x5Columns,
		},
		{
			ID:            DatasetMomentum,
			Name:          "Momentum Factor (Mom)",
			Archive:       "F-F_Momentum_Factor_CSV.zip",
			Keywords:      []string{"Mom"},
			Description:   "Monthly momentum factor returns.",
			FactorColumns: []string{"Mom"},
		},
		{
			ID:            DatasetFiveFactors,
			Name:          "Fama/French 5 Factors (2x3)",
			Archive:       "F-F_Research_Data_5_Factors_2x3_CSV.zip",
			Keywords:      []string{"Mkt-RF", "RF"},
			Description:   "Monthly five-factor returns plus the risk-free rate.",
			FactorColumns: []string{"Mkt-RF", "SMB", "HML", "RMW", "CMA", "RF"},
		},
	}
}

// DatasetByID looks up a dataset in the registry.
func DatasetByID(id string) (Dataset, bool) {
	for _, d := range Datasets() {
		if d.ID == id {
			return d, true
		}
	}
	return Dataset{}, false
}
