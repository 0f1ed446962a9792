package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"stylegrid/internal/analysis"
	"stylegrid/internal/config"
	"stylegrid/internal/data"
	"stylegrid/internal/logging"
	"stylegrid/internal/model"
	"stylegrid/internal/stylebox"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "analyze":
		cmdAnalyze(os.Args[2:])
	case "fetch":
		cmdFetch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli analyze --config config.yaml --start-year 1990 --capital 10000 --out results/metrics.csv")
	fmt.Println("  cli fetch --config config.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - analyze prints a CAGR-ranked metrics table for the nine-box grid + Momentum + Market")
	fmt.Println("  - fetch downloads the library datasets into the data dir so analyze can run offline")
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	startYear := fs.Int("start-year", 0, "Only include periods from this year on (0=config default)")
	capital := fs.Float64("capital", 0, "Initial notional capital (0=config default)")
	outPath := fs.String("out", "", "Optional metrics CSV path")
	wealthPath := fs.String("wealth", "", "Optional wealth-path CSV path")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	logging.Setup(cfg.Logging)

	params := config.MergeAnalysis(cfg.Analysis, config.AnalysisConfig{
		StartYear: *startYear,
		Capital:   *capital,
	})

	client := data.NewLibraryClient(cfg.Data.LibraryBaseURL)
	cache := data.NewTableCache(cfg.Data.CacheTTL)
	defer cache.Close()

	load := func(id string, required bool) *model.RawTable {
		d, ok := data.DatasetByID(id)
		if !ok {
			fatal(fmt.Errorf("unknown dataset %s", id))
		}
		loader := &data.Loader{Cache: cache}
		if cfg.Data.AllowSynthetic {
			loader.Fallback = data.SyntheticFor(d)
		}
		table, err := loader.Load(data.SourcesFor(d, cfg.Data.Dir, client)...)
		if err != nil {
			if required {
				fatal(err)
			}
			log.Warn().Str("dataset", id).Err(err).Msg("dataset unavailable")
			return nil
		}
		return table
	}

	tables := stylebox.Tables{
		Portfolios: load(data.DatasetPortfolios5x5, true),
		Factors:    load(data.DatasetFiveFactors, true),
	}
	if t := load(data.DatasetMomentum, false); t != nil {
		tables.Momentum = t
	}

	opts := stylebox.Options{StartYear: params.StartYear}
	if cfg.Fallback.Policy == "substitute" {
		opts.Fallback = stylebox.FallbackSubstitute
		opts.DefaultColumn = cfg.Fallback.DefaultColumn
	}

	mapper := stylebox.New()
	set, labelErrs, err := mapper.Build(tables, opts)
	if err != nil {
		fatal(err)
	}
	for label, lerr := range labelErrs {
		fmt.Printf("omitted %s: %v\n", label, lerr)
	}

	aopts := analysis.Options{ExcessReturns: params.SharpeExcess}
	if params.SharpeExcess {
		if rf, ok := mapper.RiskFreeSeries(tables, opts); ok {
			aopts.RiskFree = rf
		}
	}
	rows := analysis.RankByCAGR(analysis.ComputeSet(set, aopts))

	if set.Synthetic {
		fmt.Println("WARNING: all real sources unavailable, metrics below are SYNTHETIC demo data")
	}
	fmt.Printf("%-14s %8s %9s %9s %8s %9s\n", "Strategy", "Months", "CAGR", "Vol", "Sharpe", "MaxDD")
	for _, r := range rows {
		label := r.Label
		if r.Substituted {
			label += "*"
		}
		fmt.Printf("%-14s %8d %8.2f%% %8.2f%% %8.2f %8.2f%%\n",
			label, r.Months, r.CAGR*100, r.Volatility*100, r.Sharpe, r.MaxDrawdown*100)
	}
	fmt.Printf("sharpe convention: %s\n", aopts.Convention())

	if *outPath != "" {
		mustWriteDir(*outPath)
		if err := analysis.WriteMetricsCSV(*outPath, rows); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote metrics to %s\n", *outPath)
	}
	if *wealthPath != "" {
		mustWriteDir(*wealthPath)
		if err := analysis.WriteWealthCSV(*wealthPath, set, params.Capital); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote wealth paths to %s\n", *wealthPath)
	}
}

func cmdFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	logging.Setup(cfg.Logging)

	client := data.NewLibraryClient(cfg.Data.LibraryBaseURL)
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		fatal(err)
	}

	for _, d := range data.Datasets() {
		raw, err := client.FetchCSV(d.Archive)
		if err != nil {
			fatal(err)
		}
		path := data.LocalCSVPath(cfg.Data.Dir, d)
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("fetched %s -> %s (%d bytes)\n", d.Archive, path, len(raw))
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fatal(err)
	}
	return cfg
}

func mustWriteDir(path string) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatal(err)
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
