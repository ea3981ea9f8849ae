package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRankings displays the doctype scores, rank weights and combiner weights.
// This is a static display that does not read any records.
func PrintRankings(report schema.RankingsReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingsCSV(w, report, createFormatters(cfg.Precision))
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingsText(w, report, createFormatters(cfg.Precision))
		}, "Wrote text")
	}
}

func writeRankingsCSV(w io.Writer, report schema.RankingsReport, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, []string{"section", "key", "rank", "value"}, func(cw *csv.Writer) error {
		var rows [][]string
		for _, d := range report.Doctypes {
			rows = append(rows, []string{"doctype", d.Doctype, strconv.Itoa(d.Rank), fmtFloat(d.Score)})
		}
		for _, rw := range report.RankWeights {
			rows = append(rows, []string{"rank_weight", string(report.RankOrder), strconv.Itoa(rw.Rank), fmtFloat(rw.Weight)})
		}
		for _, key := range schema.AllFactors {
			if v, ok := report.BoostWeights[key]; ok {
				rows = append(rows, []string{"boost_weight", string(key), "", fmtFloat(v)})
			}
		}
		for _, key := range schema.AllFactors {
			if v, ok := report.FallbackWeights[key]; ok {
				rows = append(rows, []string{"fallback_weight", string(key), "", fmtFloat(v)})
			}
		}
		rows = append(rows,
			[]string{"recency", "multiplier", "", fmtFloat(report.RecencyMultiplier)},
			[]string{"recency", "max_age_months", "", fmtFloat(report.RecencyMaxAgeMonths)},
		)
		return cw.WriteAll(rows)
	})
}

func writeRankingsText(w io.Writer, report schema.RankingsReport, fmtFloat func(float64) string) error {
	render := func(title string, headers []string, data [][]string) error {
		if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
			return err
		}
		if len(data) == 0 {
			_, err := fmt.Fprintln(w, "  (not configured)")
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header(headers)
		table.Configure(func(c *tablewriter.Config) {
			c.Row.Alignment.Global = tw.AlignRight
		})
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	}

	var doctypes [][]string
	for _, d := range report.Doctypes {
		doctypes = append(doctypes, []string{strconv.Itoa(d.Rank), d.Doctype, fmtFloat(d.Score)})
	}
	if err := render("📄 Doctype scores", []string{"Rank", "Doctype", "Score"}, doctypes); err != nil {
		return err
	}

	var ranks [][]string
	for _, rw := range report.RankWeights {
		ranks = append(ranks, []string{strconv.Itoa(rw.Rank), fmtFloat(rw.Weight)})
	}
	title := fmt.Sprintf("🧭 Collection rank weights (%s)", report.RankOrder)
	if err := render(title, []string{"Rank", "Weight"}, ranks); err != nil {
		return err
	}

	var factors [][]string
	for _, key := range schema.AllFactors {
		factors = append(factors, []string{string(key), weightCell(report.BoostWeights, key, fmtFloat), weightCell(report.FallbackWeights, key, fmtFloat)})
	}
	if err := render("⚖️  Combiner weights", []string{"Factor", "Weight", "Fallback"}, factors); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Recency: 1/(1+%s*age_months), neutral past %s months\n",
		fmtFloat(report.RecencyMultiplier), fmtFloat(report.RecencyMaxAgeMonths))
	return err
}

func weightCell(weights map[schema.FactorKey]float64, key schema.FactorKey, fmtFloat func(float64) string) string {
	if v, ok := weights[key]; ok {
		return fmtFloat(v)
	}
	return "-"
}
