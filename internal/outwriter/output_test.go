package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []schema.BoostResult {
	mk := func(bibcode, scixID string, boost float64) schema.BoostResult {
		weights := make(map[schema.Discipline]float64)
		finals := make(map[schema.Discipline]float64)
		for _, d := range schema.AllDisciplines {
			weights[d] = 0.5
			finals[d] = 0.5 * boost
		}
		return schema.BoostResult{
			Bibcode: bibcode, ScixID: scixID,
			RefereedBoost: 1, DoctypeBoost: 1, RecencyBoost: 0.25, BoostFactor: boost,
			Weights: weights, FinalBoosts: finals,
		}
	}
	first := mk("2023ApJ...123..456A", "", 1.0)
	second := mk("", "scix:ABCD-1234-EFGH", 0.4)
	second.Fallbacks = []schema.Fallback{{Field: "pubdate", Reason: schema.UnparseableDate}}
	return []schema.BoostResult{first, second}
}

func sampleRecords() []schema.BoostRecord {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var out []schema.BoostRecord
	for i, r := range sampleResults() {
		out = append(out, schema.BoostRecord{ID: int64(i + 1), Created: created, Modified: created, BoostResult: r})
	}
	return out
}

func testConfig(t *testing.T, output schema.OutputMode) *contract.Config {
	return &contract.Config{
		Output:       output,
		OutputFile:   filepath.Join(t.TempDir(), "out"),
		Precision:    3,
		Width:        120,
		Workers:      2,
		StoreBackend: schema.NoneBackend,
	}
}

func readOutput(t *testing.T, cfg *contract.Config) string {
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	return string(data)
}

func TestPrintBoostResults_Table(t *testing.T) {
	cfg := testConfig(t, schema.TextOut)
	cfg.SortBy = schema.Astronomy
	require.NoError(t, NewOutWriter().WriteResults(sampleResults(), cfg, time.Second))

	out := readOutput(t, cfg)
	for _, s := range []string{"RANK", "RECORD", "FINAL ASTRONOMY", "2023ApJ...123..456A", "scix:ABCD-1234-EFGH", "1.000", "Strong"} {
		assert.Contains(t, strings.ToUpper(out), strings.ToUpper(s))
	}
	assert.Contains(t, out, "Showing 2 records (fallbacks applied: 1)")
	assert.Contains(t, out, "Store backend: none")
}

func TestPrintBoostResults_CSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut)
	require.NoError(t, PrintBoostResults(sampleResults(), cfg, 0))

	rows, err := csv.NewReader(strings.NewReader(readOutput(t, cfg))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, resultsHeader(), rows[0])
	assert.Equal(t, []string{"1", "2023ApJ...123..456A", "", "1.000", "1.000", "0.250", "1.000"}, rows[1][:7])
	assert.Contains(t, rows[2][len(rows[2])-1], "pubdate")
}

func TestPrintBoostResults_JSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)
	require.NoError(t, PrintBoostResults(sampleResults(), cfg, 0))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "2023ApJ...123..456A", decoded[0]["bibcode"])
	assert.Equal(t, 0.5, decoded[0]["general_final_boost"])
	assert.NotNil(t, decoded[1]["fallbacks"])
}

func TestPrintBoostResults_Parquet(t *testing.T) {
	cfg := testConfig(t, schema.ParquetOut)
	require.NoError(t, PrintBoostResults(sampleResults(), cfg, 0))
	assert.NotEmpty(t, readOutput(t, cfg))

	cfg.OutputFile = ""
	assert.ErrorContains(t, PrintBoostResults(sampleResults(), cfg, 0), "--output-file")
}

func TestPrintBoostRecords(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut)
		require.NoError(t, NewOutWriter().WriteRecords(sampleRecords(), cfg))
		out := readOutput(t, cfg)
		assert.Contains(t, out, "2025-03-01 12:00:00")
		assert.Contains(t, out, "Showing 2 stored records")
	})

	t.Run("csv uses export layout", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut)
		require.NoError(t, PrintBoostRecords(sampleRecords(), cfg))
		rows, err := csv.NewReader(strings.NewReader(readOutput(t, cfg))).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, ExportHeader(), rows[0])
	})

	t.Run("json empty", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut)
		require.NoError(t, PrintBoostRecords(nil, cfg))
		assert.Equal(t, "[]\n", readOutput(t, cfg))
	})

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut)
		require.NoError(t, PrintBoostRecords(sampleRecords(), cfg))
		var decoded []map[string]any
		require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, float64(1), decoded[0]["id"])
	})
}

func TestExportHeader(t *testing.T) {
	expected := "bibcode,scix_id,created,doctype_boost,refereed_boost,recency_boost,boost_factor," +
		"astronomy_weight,physics_weight,earth_science_weight,planetary_science_weight,heliophysics_weight,general_weight," +
		"astronomy_final_boost,physics_final_boost,earth_science_final_boost,planetary_science_final_boost,heliophysics_final_boost,general_final_boost"
	assert.Equal(t, expected, strings.Join(ExportHeader(), ","))
}

func TestWriteExportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExportCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2023ApJ...123..456A", "", "2025-03-01T12:00:00Z", "1", "1", "0.25", "1"}, rows[1][:7])
	assert.Equal(t, "scix:ABCD-1234-EFGH", rows[2][1])
	assert.Len(t, rows[2], len(ExportHeader()))
}

func TestExportRecords(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ExportRecords(sampleRecords(), schema.CSVOut, filepath.Join(dir, "out.csv")))
	require.NoError(t, ExportRecords(sampleRecords(), schema.ParquetOut, filepath.Join(dir, "out.parquet")))
	assert.Error(t, ExportRecords(sampleRecords(), schema.ParquetOut, ""))
	assert.Error(t, ExportRecords(sampleRecords(), schema.TextOut, filepath.Join(dir, "out.txt")))
}

func TestPrintRankings(t *testing.T) {
	report := schema.RankingsReport{
		Doctypes:            []schema.DoctypeScore{{Doctype: "article", Rank: 1, Score: 1}, {Doctype: "misc", Rank: 8, Score: 0}},
		RankOrder:           schema.DescendingRanks,
		RankWeights:         []schema.RankWeight{{Rank: 1, Weight: 0.1}, {Rank: 2, Weight: 1}},
		BoostWeights:        schema.DefaultBoostWeights(),
		FallbackWeights:     schema.DefaultFallbackWeights(),
		RecencyMultiplier:   0.1,
		RecencyMaxAgeMonths: 24,
	}

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut)
		require.NoError(t, NewOutWriter().WriteRankings(report, cfg))
		out := readOutput(t, cfg)
		assert.Contains(t, out, "Doctype scores")
		assert.Contains(t, out, "article")
		assert.Contains(t, out, "Collection rank weights (descending)")
		assert.Contains(t, out, "refereed_boost")
		assert.Contains(t, out, "Recency: 1/(1+0.100*age_months), neutral past 24.000 months")
	})

	t.Run("text with absent tables", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut)
		require.NoError(t, PrintRankings(schema.RankingsReport{RankOrder: schema.DescendingRanks}, cfg))
		assert.Contains(t, readOutput(t, cfg), "(not configured)")
	})

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut)
		require.NoError(t, PrintRankings(report, cfg))
		rows, err := csv.NewReader(strings.NewReader(readOutput(t, cfg))).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, []string{"section", "key", "rank", "value"}, rows[0])
		assert.Equal(t, []string{"doctype", "article", "1", "1.000"}, rows[1])
		assert.Equal(t, []string{"recency", "max_age_months", "", "24.000"}, rows[len(rows)-1])
	})

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut)
		require.NoError(t, PrintRankings(report, cfg))
		var decoded schema.RankingsReport
		require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &decoded))
		assert.Equal(t, report.Doctypes, decoded.Doctypes)
	})
}
