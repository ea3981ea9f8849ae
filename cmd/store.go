package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/internal/store"
	"github.com/adsabs/adsboost/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads the minimal configuration needed for store operations.
// It skips scoring and queue validation. The store is opened only when open is set,
// so migrate and clear can run against a database the current schema does not fit.
func storeSetup(open bool) error {
	if err := readConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("store-backend")))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("store-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Output = schema.OutputMode(strings.ToLower(viper.GetString("output")))

	if open {
		if err := store.InitStore(backend, connStr); err != nil {
			return fmt.Errorf("failed to initialize boost store: %w", err)
		}
	}
	return nil
}

// sqliteFilePath resolves the SQLite database file the store uses.
func sqliteFilePath() string {
	if cfg.StoreDBConnect != "" {
		return cfg.StoreDBConnect
	}
	return contract.GetDBFilePath()
}

// storeCmd groups boost store management.
//
// Note: store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup. This avoids scoring and queue validation for simple
// store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the boost factor store",
	Long: `Manage the database holding one row of boost factors per record.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics
  export  - Export every row to CSV or Parquet
  clear   - Remove all stored boost factors
  migrate - Run database schema migrations

Examples:
  # Check store status
  adsboost store status

  # Export for analysis in pandas/DuckDB
  adsboost store export --output parquet --output-file boosts.parquet`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show the backend, connection state, number of stored records,
newest modification, oldest creation and table size.

Examples:
  adsboost store status
  adsboost store status --store-backend postgresql --store-db-connect "host=db dbname=boost"`,
	PreRunE: func(_ *cobra.Command, _ []string) error { return storeSetup(true) },
	Run: func(_ *cobra.Command, _ []string) {
		bs, err := requireStore()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		status, err := bs.GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		store.PrintStoreStatus(os.Stdout, status)
	},
}

// storeClearCmd wipes the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored boost factors",
	Long: `Delete every stored boost factor row.

For SQLite the database file is removed. For MySQL and PostgreSQL the boost
and migration tables are dropped and recreated on next use.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  adsboost store export --output-file backup.csv
  adsboost store clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error { return storeSetup(false) },
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ClearStore(cfg.StoreBackend, sqliteFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear boost store", err)
		}
		fmt.Println("Boost store cleared successfully.")
	},
}

// storeExportCmd exports stored rows.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored boost factors to CSV or Parquet",
	Long: `Export every stored row for use with analytics tools or for re-import.

CSV columns: bibcode, scix_id, created, the three factors, boost_factor,
the six discipline weights and the six final boosts. Numbers keep full precision.

Parquet requires --output-file.

Examples:
  adsboost store export --output-file boosts.csv
  adsboost store export --output parquet --output-file boosts.parquet
  duckdb -c "SELECT bibcode, astronomy_final_boost FROM read_parquet('boosts.parquet') LIMIT 10"`,
	PreRunE: func(_ *cobra.Command, _ []string) error { return storeSetup(true) },
	Run: func(_ *cobra.Command, _ []string) {
		bs, err := requireStore()
		if err != nil {
			contract.LogFatal("Failed to export boost factors", err)
		}
		format := cfg.Output
		if format == schema.TextOut {
			format = schema.CSVOut
		}
		n, err := store.ExecuteExport(rootCtx, bs, format, cfg.OutputFile)
		if errors.Is(err, store.ErrNothingToExport) {
			fmt.Fprintln(os.Stderr, "Nothing to export.")
			return
		}
		if err != nil {
			contract.LogFatal("Failed to export boost factors", err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d records.\n", n)
	},
}

// storeMigrateCmd runs database migrations for the boost store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the boost store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  adsboost store migrate

  # Rollback to the initial state
  adsboost store migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error { return storeSetup(false) },
	Run: func(_ *cobra.Command, _ []string) {
		connStr := cfg.StoreDBConnect
		if cfg.StoreBackend == schema.SQLiteBackend {
			connStr = sqliteFilePath()
		}
		result, err := store.Migrate(cfg.StoreBackend, connStr, viper.GetInt("target-version"))
		if err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		if !result.Changed {
			fmt.Printf("Schema already at version %d.\n", result.To)
			return
		}
		fmt.Printf("Migrated schema from version %d to %d.\n", result.From, result.To)
	},
}
