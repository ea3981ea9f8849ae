package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
	"golang.org/x/term"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader creates a CSV writer, writes a header and then the data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatters creates the float formatter shared by table and CSV output.
func createFormatters(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// formatExact renders v with the fewest digits that parse back to the same float.
func formatExact(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// getLabel returns the boost label, colored when enabled.
func getLabel(boost float64, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(boost)
	}
	return contract.GetPlainLabel(boost)
}

// formatFallbacks joins fallback descriptions for one-cell output.
func formatFallbacks(fallbacks []schema.Fallback) string {
	parts := make([]string, len(fallbacks))
	for i, fb := range fallbacks {
		parts[i] = fb.String()
	}
	return strings.Join(parts, "; ")
}

// sortLabel names the column used for ranking.
func sortLabel(by schema.Discipline) string {
	if by == "" {
		return "Boost"
	}
	return "Final " + string(by)
}

// rankValue returns the value a record is ranked by.
func rankValue(r schema.BoostResult, by schema.Discipline) float64 {
	if by == "" {
		return r.BoostFactor
	}
	return r.FinalBoosts[by]
}

// getMaxTableIDWidth calculates the maximum width for identifiers in table output
// based on terminal width.
func getMaxTableIDWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank, scores, label and fallbacks with borders and padding
	baseWidth := 75
	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
