package data

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"stylegrid/internal/model"
)

// Source is one way to produce a normalized RawTable. Implementations either
// succeed or fail with a typed error; acquisition failures are *SourceError
// so callers can fall back to the next source in a chain.
type Source interface {
	// Key identifies the source for caching and logging.
	Key() string
	// Describe returns a short human-readable description.
	Describe() string
	// Fetch acquires and normalizes the table.
	Fetch() (*model.RawTable, error)
}

// Loader tries an ordered chain of sources and caches the first success.
// When every real source fails with *SourceError and a synthetic fallback is
// configured, the fallback table is returned with its Synthetic flag intact.
type Loader struct {
	Cache *TableCache

	// Fallback, when non-nil, produces synthetic data after all real sources
	// fail. Its output is never silently substituted: the table carries
	// Synthetic=true and Load reports it.
	Fallback Source
}

// Load resolves a dataset through the source chain.
func (l *Loader) Load(sources ...Source) (*model.RawTable, error) {
	if len(sources) == 0 && l.Fallback == nil {
		return nil, fmt.Errorf("no sources configured")
	}

	var failures []string
	var lastErr error
	for _, src := range sources {
		if l.Cache != nil {
			if table, ok := l.Cache.Get(src.Key()); ok {
				log.Debug().Str("source", src.Key()).Msg("cache hit")
				return table, nil
			}
		}

		table, err := src.Fetch()
		if err == nil {
			log.Info().Str("source", src.Key()).Int("rows", table.Len()).Msg("loaded dataset")
			if l.Cache != nil {
				l.Cache.Set(src.Key(), table)
			}
			return table, nil
		}

		var srcErr *model.SourceError
		if errors.As(err, &srcErr) {
			// Recoverable: try the next source.
			log.Warn().Str("source", src.Key()).Err(err).Msg("source unavailable, trying next")
			failures = append(failures, fmt.Sprintf("%s: %v", src.Key(), err))
			lastErr = err
			continue
		}
		// Parse-level failures (e.g. header not found) are not recoverable
		// by trying an identical file from another location.
		return nil, err
	}

	if l.Fallback != nil {
		log.Warn().Strs("failed", keys(sources)).Msg("all sources unavailable, generating synthetic data")
		table, err := l.Fallback.Fetch()
		if err != nil {
			return nil, fmt.Errorf("synthetic fallback: %w", err)
		}
		return table, nil
	}

	if lastErr != nil {
		return nil, &model.SourceError{
			Source:  "chain",
			Message: fmt.Sprintf("all sources failed: %s", strings.Join(failures, "; ")),
			Err:     lastErr,
		}
	}
	return nil, fmt.Errorf("no sources configured")
}

func keys(sources []Source) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.Key()
	}
	return out
}
