package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/internal/parquet"
	"github.com/adsabs/adsboost/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintBoostResults outputs computed results, dispatching on the configured format.
func PrintBoostResults(results []schema.BoostResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultsCSV(w, results, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		records := make([]schema.BoostRecord, len(results))
		for i, r := range results {
			records[i] = schema.BoostRecord{BoostResult: r}
		}
		return writeParquet(records, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultsTable(w, results, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// resultsHeader lists the CSV columns for computed results.
func resultsHeader() []string {
	header := []string{"rank", "bibcode", "scix_id", "refereed_boost", "doctype_boost", "recency_boost", "boost_factor"}
	for _, d := range schema.AllDisciplines {
		header = append(header, schema.WeightColumn(d))
	}
	for _, d := range schema.AllDisciplines {
		header = append(header, schema.FinalBoostColumn(d))
	}
	return append(header, "fallbacks")
}

func writeResultsCSV(w io.Writer, results []schema.BoostResult, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, resultsHeader(), func(cw *csv.Writer) error {
		for i, r := range results {
			row := []string{
				strconv.Itoa(i + 1),
				r.Bibcode,
				r.ScixID,
				fmtFloat(r.RefereedBoost),
				fmtFloat(r.DoctypeBoost),
				fmtFloat(r.RecencyBoost),
				fmtFloat(r.BoostFactor),
			}
			for _, d := range schema.AllDisciplines {
				row = append(row, fmtFloat(r.Weights[d]))
			}
			for _, d := range schema.AllDisciplines {
				row = append(row, fmtFloat(r.FinalBoosts[d]))
			}
			row = append(row, formatFallbacks(r.Fallbacks))
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

func writeResultsTable(w io.Writer, results []schema.BoostResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	headers := []string{"Rank", "Record", "Boost", "Label", "Refereed", "Doctype", "Recency"}
	if cfg.SortBy != "" {
		headers = append(headers, sortLabel(cfg.SortBy))
	}
	headers = append(headers, "Fallbacks")
	table.Header(headers)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	idWidth := getMaxTableIDWidth(cfg)
	var fallbacks int
	data := make([][]string, 0, len(results))
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(r.Identifier(), idWidth),
			fmtFloat(r.BoostFactor),
			getLabel(r.BoostFactor, cfg),
			fmtFloat(r.RefereedBoost),
			fmtFloat(r.DoctypeBoost),
			fmtFloat(r.RecencyBoost),
		}
		if cfg.SortBy != "" {
			row = append(row, fmtFloat(rankValue(r, cfg.SortBy)))
		}
		row = append(row, strconv.Itoa(len(r.Fallbacks)))
		fallbacks += len(r.Fallbacks)
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d records (fallbacks applied: %d)\n", len(results), fallbacks); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Scoring completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend)
	return err
}

// writeParquet writes records to a Parquet file; stdout is not supported.
func writeParquet(records []schema.BoostRecord, outputFile string) error {
	if outputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}
	return writeWithFile(outputFile, func(w io.Writer) error {
		return parquet.WriteBoostFactors(w, parquet.ConvertBoostRecords(records))
	}, "Wrote Parquet")
}
