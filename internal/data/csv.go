package data

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"stylegrid/internal/model"
)

// ParseTable reads a loosely structured delimited source and produces a
// normalized RawTable.
//
// Provider files (Ken French library exports) carry an arbitrary free-text
// preamble, a comma-separated header whose names are padded with spaces,
// monthly rows indexed by a YYYYMM token, and trailing annual/footnote
// sections. The first line containing any of the supplied keywords and a
// comma is taken as the header; everything before it is discarded. A data row
// is kept only if its index token, stripped, is exactly six digits. Values
// are percentages and are scaled to decimal fractions.
func ParseTable(r io.Reader, source string, keywords []string) (*model.RawTable, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	headerIdx := -1
	for i, line := range lines {
		if !strings.Contains(line, ",") {
			continue
		}
		for _, k := range keywords {
			if strings.Contains(line, k) {
				headerIdx = i
				break
			}
		}
		if headerIdx >= 0 {
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("%s: %w (keywords %v)", source, model.ErrHeaderNotFound, keywords)
	}

	// First header field is the unnamed index column in provider files.
	header := strings.Split(lines[headerIdx], ",")
	cols := make([]string, 0, len(header)-1)
	for _, name := range header[1:] {
		cols = append(cols, strings.TrimSpace(name))
	}

	table := model.NewRawTable(source)
	for _, name := range cols {
		table.Columns[name] = nil
	}

	dropped := 0
	for _, line := range lines[headerIdx+1:] {
		fields := strings.Split(line, ",")
		token := strings.TrimSpace(fields[0])
		if !isMonthToken(token) {
			// Annual blocks, copyright footers and blank lines all fail the
			// 6-digit test. Dropping them silently is policy.
			continue
		}
		period, err := model.ParsePeriod(token)
		if err != nil {
			log.Warn().Str("source", source).Str("token", token).Msg("dropping row with unparseable period")
			dropped++
			continue
		}
		if len(fields)-1 < len(cols) {
			log.Warn().Str("source", source).Str("token", token).
				Int("fields", len(fields)-1).Int("want", len(cols)).
				Msg("dropping short row")
			dropped++
			continue
		}
		vals := make([]float64, len(cols))
		ok := true
		for i := range cols {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[i+1]), 64)
			if err != nil {
				log.Warn().Str("source", source).Str("token", token).Str("cell", fields[i+1]).
					Msg("dropping row with non-numeric cell")
				ok = false
				break
			}
			vals[i] = v / 100 // provider stores percent
		}
		if !ok {
			dropped++
			continue
		}
		table.Periods = append(table.Periods, period)
		for i, name := range cols {
			table.Columns[name] = append(table.Columns[name], vals[i])
		}
	}

	if dropped > 0 {
		log.Warn().Str("source", source).Int("rows", dropped).Msg("dropped malformed data rows")
	}
	return table, nil
}

// isMonthToken reports whether s is exactly six ASCII digits (YYYYMM).
func isMonthToken(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
