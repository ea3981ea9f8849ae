package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/adsabs/adsboost/schema"
)

// ReadExportCSV re-imports rows written by the CSV export. Columns are matched by name.
func ReadExportCSV(r io.Reader) ([]schema.BoostRecord, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"bibcode", "scix_id", "boost_factor"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("export CSV is missing column %q", required)
		}
	}

	var records []schema.BoostRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := parseExportRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
}

func parseExportRow(row []string, index map[string]int) (schema.BoostRecord, error) {
	cell := func(name string) string {
		if i, ok := index[name]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	var firstErr error
	number := func(name string) float64 {
		s := cell(name)
		if s == "" {
			return 0
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("column %s: %w", name, err)
		}
		return v
	}

	rec := schema.BoostRecord{
		BoostResult: schema.BoostResult{
			Bibcode:       cell("bibcode"),
			ScixID:        cell("scix_id"),
			DoctypeBoost:  number("doctype_boost"),
			RefereedBoost: number("refereed_boost"),
			RecencyBoost:  number("recency_boost"),
			BoostFactor:   number("boost_factor"),
			Weights:       make(map[schema.Discipline]float64, len(schema.AllDisciplines)),
			FinalBoosts:   make(map[schema.Discipline]float64, len(schema.AllDisciplines)),
		},
	}
	for _, d := range schema.AllDisciplines {
		rec.Weights[d] = number(schema.WeightColumn(d))
		rec.FinalBoosts[d] = number(schema.FinalBoostColumn(d))
	}
	if firstErr != nil {
		return rec, firstErr
	}
	if created := cell("created"); created != "" {
		t, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return rec, fmt.Errorf("column created: %w", err)
		}
		rec.Created = t
		rec.Modified = t
	}
	if rec.Identifier() == "" {
		return rec, errors.New("row has neither bibcode nor scix_id")
	}
	return rec, nil
}
