// Package cmd defines the command-line interface for adsboost.
package cmd

import (
	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(rankingsCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", contract.DefaultLogFormat, "Log format: text or json")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string (sqlite path, user:pass@tcp(host:port)/dbname, or host=... dbname=...)")
	rootCmd.PersistentFlags().String("queue-backend", string(schema.RedisQueue), "Queue backend: redis or memory or none")
	rootCmd.PersistentFlags().String("redis-addr", contract.DefaultRedisAddr, "Redis address (host:port)")
	rootCmd.PersistentFlags().String("redis-password", "", "Redis password (prefer ADSBOOST_REDIS_PASSWORD)")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database number")
	rootCmd.PersistentFlags().String("inbound-queue", contract.DefaultInboundQueue, "Queue holding records to score")
	rootCmd.PersistentFlags().String("outbound-queue", contract.DefaultOutboundQueue, "Queue receiving boost responses")
	rootCmd.PersistentFlags().String("poll-timeout", contract.DefaultPollTimeout.String(), "How long one consume call blocks")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scoreCmd to Viper
	scoreCmd.Flags().IntP("limit", "l", 0, "Number of results to display (0 = all)")
	scoreCmd.Flags().String("sort-by", "", "Sort by boost_factor or a discipline final boost (default keeps input order)")
	scoreCmd.Flags().Bool("persist", false, "Upsert every result into the boost store")
	scoreCmd.Flags().Bool("publish", false, "Send a boost response for every result to the outbound queue")
	if err := viper.BindPFlags(scoreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding score flags", err)
	}

	// Bind all flags of workerCmd to Viper
	workerCmd.Flags().String("metrics-addr", "", "Address for the Prometheus /metrics endpoint (empty = disabled)")
	if err := viper.BindPFlags(workerCmd.Flags()); err != nil {
		contract.LogFatal("Error binding worker flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
