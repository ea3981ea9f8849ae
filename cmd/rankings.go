package cmd

import (
	"github.com/adsabs/adsboost/core"
	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/internal/outwriter"
	"github.com/spf13/cobra"
)

// rankingsCmd displays the scoring tables in effect.
var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Display the doctype scores, collection weights and combiner weights",
	Long: `Show how the active configuration turns ranks into scores.

Includes:
- Doctype ranks and the score each rank maps to
- Collection rank-to-weight table and the rank order in use
- Source collection rankings per discipline
- Combiner weights, fallback weights and the recency curve

No records are scored - this is purely informational.

Examples:
  # Show the built-in tables
  adsboost rankings

  # View with overrides from a config file
  adsboost rankings --config .adsboost.yaml --output json`,
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		report := core.ExplainRankings(cfg.Scoring)
		if err := outwriter.PrintRankings(report, cfg); err != nil {
			contract.LogFatal("Cannot display rankings", err)
		}
	},
}
