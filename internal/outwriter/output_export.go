package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/adsabs/adsboost/schema"
)

// ExportHeader returns the export CSV header in its fixed column order.
func ExportHeader() []string {
	header := []string{"bibcode", "scix_id", "created", "doctype_boost", "refereed_boost", "recency_boost", "boost_factor"}
	for _, d := range schema.AllDisciplines {
		header = append(header, schema.WeightColumn(d))
	}
	for _, d := range schema.AllDisciplines {
		header = append(header, schema.FinalBoostColumn(d))
	}
	return header
}

// WriteExportCSV writes one row per stored record. Numbers keep full precision.
func WriteExportCSV(w io.Writer, records []schema.BoostRecord) error {
	return writeCSVWithHeader(w, ExportHeader(), func(cw *csv.Writer) error {
		for _, r := range records {
			row := []string{
				r.Bibcode,
				r.ScixID,
				r.Created.UTC().Format(time.RFC3339Nano),
				formatExact(r.DoctypeBoost),
				formatExact(r.RefereedBoost),
				formatExact(r.RecencyBoost),
				formatExact(r.BoostFactor),
			}
			for _, d := range schema.AllDisciplines {
				row = append(row, formatExact(r.Weights[d]))
			}
			for _, d := range schema.AllDisciplines {
				row = append(row, formatExact(r.FinalBoosts[d]))
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// ExportRecords writes records to outputFile as CSV or Parquet.
func ExportRecords(records []schema.BoostRecord, format schema.OutputMode, outputFile string) error {
	switch format {
	case schema.ParquetOut:
		return writeParquet(records, outputFile)
	case schema.CSVOut, "":
		return writeWithFile(outputFile, func(w io.Writer) error {
			return WriteExportCSV(w, records)
		}, "Exported CSV")
	default:
		return fmt.Errorf("unsupported export format: %s (expected csv or parquet)", format)
	}
}
