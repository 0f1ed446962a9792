package data

import (
	"path/filepath"
	"strings"
)

// LocalCSVPath is where a dataset's extracted CSV lives under the data dir,
// e.g. 25_Portfolios_5x5_CSV.zip → <dir>/25_Portfolios_5x5.csv.
func LocalCSVPath(dir string, d Dataset) string {
	name := strings.TrimSuffix(d.Archive, "_CSV.zip") + ".csv"
	return filepath.Join(dir, name)
}

// SourcesFor builds the standard acquisition chain for a dataset: local copy
// first, then the remote library.
func SourcesFor(d Dataset, dataDir string, client *LibraryClient) []Source {
	return []Source{
		&FileSource{Path: LocalCSVPath(dataDir, d), Keywords: d.Keywords},
		&RemoteSource{Client: client, Archive: d.Archive, Keywords: d.Keywords},
	}
}

// SyntheticFor builds the flagged stand-in generator for a dataset.
func SyntheticFor(d Dataset) *SyntheticSource {
	return &SyntheticSource{
		Name:          d.ID,
		EquityColumns: d.EquityColumns,
		FactorColumns: d.FactorColumns,
	}
}
