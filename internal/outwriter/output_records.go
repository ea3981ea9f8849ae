package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintBoostRecords outputs stored rows, dispatching on the configured format.
// CSV output uses the export layout.
func PrintBoostRecords(records []schema.BoostRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if records == nil {
				records = []schema.BoostRecord{}
			}
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteExportCSV(w, records)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquet(records, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecordsTable(w, records, cfg)
		}, "Wrote table")
	}
}

func writeRecordsTable(w io.Writer, records []schema.BoostRecord, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)
	table := tablewriter.NewWriter(w)
	headers := []string{"ID", "Record", "Boost", "Label"}
	if cfg.SortBy != "" {
		headers = append(headers, sortLabel(cfg.SortBy))
	}
	headers = append(headers, "Modified")
	table.Header(headers)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	idWidth := getMaxTableIDWidth(cfg)
	data := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			contract.TruncateText(r.Identifier(), idWidth),
			fmtFloat(r.BoostFactor),
			getLabel(r.BoostFactor, cfg),
		}
		if cfg.SortBy != "" {
			row = append(row, fmtFloat(rankValue(r.BoostResult, cfg.SortBy)))
		}
		row = append(row, r.Modified.Format("2006-01-02 15:04:05"))
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d stored records\n", len(records))
	return err
}
