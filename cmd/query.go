package cmd

import (
	"github.com/adsabs/adsboost/core"
	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/internal/outwriter"
	"github.com/spf13/cobra"
)

// queryCmd looks up stored boost factors.
var queryCmd = &cobra.Command{
	Use:   "query <bibcode|scix_id>",
	Short: "Show stored boost factors for a record",
	Long: `Look up the boost factors stored for a record.

The identifier is matched as a bibcode first and as a scix_id second.

Examples:
  adsboost query 2023ApJ...950L..10A
  adsboost query scix:ABCD-1234-EFGH --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		bs, err := requireStore()
		if err != nil {
			contract.LogFatal("Cannot query boost factors", err)
		}
		records, err := core.LookupBoost(rootCtx, bs, args[0])
		if err != nil {
			contract.LogFatal("Cannot query boost factors", err)
		}
		if err := outwriter.PrintBoostRecords(records, cfg); err != nil {
			contract.LogFatal("Cannot print boost factors", err)
		}
	},
}
