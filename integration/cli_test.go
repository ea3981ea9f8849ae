//go:build basic

// Package integration contains end-to-end tests for the adsboost binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Database tests need Docker: go test -tags database ./integration
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adsabs/adsboost/core"
	"github.com/adsabs/adsboost/internal/ingest"
	"github.com/adsabs/adsboost/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScoreMatchesLibrary checks the CLI output against the engine called directly.
func TestScoreMatchesLibrary(t *testing.T) {
	path := writeRecords(t)
	out, err := runCommand(t, nil, "score", path, "--store-backend", "none", "--output", "json")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	raws, err := ingest.ReadRecordsFile(path)
	require.NoError(t, err)
	require.Len(t, got, len(raws)-1, "the record without identifiers is rejected")

	cfg := schema.DefaultScoringConfig()
	for i, row := range got {
		want := core.ComputeBoost(core.NormalizeRecord(raws[i]), cfg, time.Now())
		assert.Equal(t, want.Bibcode, row["bibcode"])
		assert.Equal(t, want.ScixID, row["scix_id"])
		assert.InDelta(t, want.RefereedBoost, row["refereed_boost"], 1e-9)
		assert.InDelta(t, want.DoctypeBoost, row["doctype_boost"], 1e-9)
		for _, d := range schema.AllDisciplines {
			assert.InDelta(t, want.Weights[d], row[schema.WeightColumn(d)], 1e-9, "weight %s", d)
		}
	}
}

// TestPersistQueryExport scores into a SQLite store, queries it and re-imports the export.
func TestPersistQueryExport(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "boost.db")
	env := []string{"ADSBOOST_STORE_BACKEND=sqlite", "ADSBOOST_STORE_DB_CONNECT=" + dbPath}

	out, err := runCommand(t, env, "score", writeRecords(t), "--persist", "--output", "json")
	require.NoError(t, err)
	var scored []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &scored))
	require.Len(t, scored, 3)

	out, err = runCommand(t, env, "query", "scix:ABCD-1234-EFGH", "--output", "json")
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "scix:ABCD-1234-EFGH", rows[0]["scix_id"])

	_, err = runCommand(t, env, "query", "1999unknown")
	assert.Error(t, err)

	exportPath := filepath.Join(t.TempDir(), "boosts.csv")
	_, err = runCommand(t, env, "store", "export", "--output-file", exportPath)
	require.NoError(t, err)

	f, err := os.Open(exportPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	records, err := ingest.ReadExportCSV(f)
	require.NoError(t, err)
	require.Len(t, records, 3)

	byID := make(map[string]map[string]any, len(scored))
	for _, row := range scored {
		id, _ := row["bibcode"].(string)
		if id == "" {
			id, _ = row["scix_id"].(string)
		}
		byID[id] = row
	}
	for _, rec := range records {
		row, ok := byID[rec.Identifier()]
		require.True(t, ok, "unexpected record %s", rec.Identifier())
		assert.InDelta(t, row["boost_factor"], rec.BoostFactor, 1e-3)
		for _, d := range schema.AllDisciplines {
			assert.InDelta(t, row[schema.FinalBoostColumn(d)], rec.FinalBoosts[d], 1e-3)
		}
	}

	out, err = runCommand(t, env, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Records: 3")

	_, err = runCommand(t, env, "store", "clear")
	require.NoError(t, err)
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))
}

// TestRankingsJSON checks that the rankings report parses and reflects config overrides.
func TestRankingsJSON(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "adsboost.yaml")
	config := strings.Join([]string{
		"scoring:",
		"  rank-order: ascending",
		"  doctype-ranking:",
		"    dataset: 1",
	}, "\n")
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))

	out, err := runCommand(t, nil, "rankings", "--output", "json", "--config", configPath)
	require.NoError(t, err)

	var report schema.RankingsReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, schema.AscendingRanks, report.RankOrder)
	assert.Len(t, report.Doctypes, 1, "a configured table replaces the defaults")
	found := false
	for _, row := range report.Doctypes {
		if row.Doctype == "dataset" {
			found = true
			assert.Equal(t, 1, row.Rank)
		}
	}
	assert.True(t, found)
}

// TestInvalidConfiguration checks that bad flags fail before any work is done.
func TestInvalidConfiguration(t *testing.T) {
	path := writeRecords(t)
	tests := [][]string{
		{"score", path, "--output", "xml"},
		{"score", path, "--precision", "0"},
		{"score", path, "--store-backend", "oracle"},
		{"score", path, "--sort-by", "biology"},
		{"score", filepath.Join(t.TempDir(), "records.txt"), "--store-backend", "none"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args[2:], " "), func(t *testing.T) {
			_, err := runCommand(t, nil, args...)
			assert.Error(t, err)
		})
	}
}
