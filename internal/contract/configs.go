package contract

import (
	"fmt"
	"log/slog"
	"maps"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/adsabs/adsboost/schema"
)

// Default values for configuration.
const (
	DefaultPrecision     = 3
	MaxPrecision         = 6
	DefaultInboundQueue  = "compute-boost"
	DefaultOutboundQueue = "send-boost-response"
	DefaultRedisAddr     = "localhost:6379"
	DefaultPollTimeout   = 5 * time.Second
	DefaultLogFormat     = "text"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Scoring tables that can be omitted to force their documented fallback.
const (
	OmitDoctypeRanking     = "doctype-ranking"
	OmitWeights            = "weights"
	OmitCollectionRankings = "collection-rankings"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration.
// This struct is the "final, validated" config.
type Config struct {
	Workers    int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Limit      int               // 0 = no limit
	SortBy     schema.Discipline // empty = boost_factor
	Width      int               // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	QueueBackend  schema.QueueBackend
	RedisAddr     string
	RedisPassword string // Please use env var as this is plaintext
	RedisDB       int
	InboundQueue  string
	OutboundQueue string
	PollTimeout   time.Duration

	MetricsAddr string
	LogLevel    slog.Level
	LogFormat   string

	Scoring *schema.ScoringConfig
}

// FactorWeightsRaw holds optional combiner weights from the config file.
type FactorWeightsRaw struct {
	Refereed *float64 `mapstructure:"refereed_boost"`
	Doctype  *float64 `mapstructure:"doctype_boost"`
	Recency  *float64 `mapstructure:"recency_boost"`
}

// ScoringRawInput holds all scoring tables and constants from the config file.
type ScoringRawInput struct {
	DoctypeRanking      map[string]int             `mapstructure:"doctype-ranking"`
	Weights             *FactorWeightsRaw          `mapstructure:"weights"`
	FallbackWeights     *FactorWeightsRaw          `mapstructure:"fallback-weights"`
	CollectionRankings  map[string]map[string]*int `mapstructure:"collection-rankings"`
	CollectionAliases   map[string]string          `mapstructure:"collection-aliases"`
	Disciplines         []string                   `mapstructure:"disciplines"`
	RecencyMultiplier   *float64                   `mapstructure:"recency-multiplier"`
	RecencyMaxAgeMonths *float64                   `mapstructure:"recency-max-age-months"`
	RankOrder           string                     `mapstructure:"rank-order"`
	Omit                []string                   `mapstructure:"omit"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Workers        int    `mapstructure:"workers"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	LogLevel       string `mapstructure:"log-level"`
	LogFormat      string `mapstructure:"log-format"`

	// --- Fields from scoreCmd.Flags() ---
	Limit  int    `mapstructure:"limit"`
	SortBy string `mapstructure:"sort-by"`

	// --- Fields from queue related commands ---
	QueueBackend  string `mapstructure:"queue-backend"`
	RedisAddr     string `mapstructure:"redis-addr"`
	RedisPassword string `mapstructure:"redis-password"`
	RedisDB       int    `mapstructure:"redis-db"`
	InboundQueue  string `mapstructure:"inbound-queue"`
	OutboundQueue string `mapstructure:"outbound-queue"`
	PollTimeout   string `mapstructure:"poll-timeout"`

	// --- Fields from workerCmd.Flags() ---
	MetricsAddr string `mapstructure:"metrics-addr"`

	// --- Scoring tables from config file ---
	Scoring ScoringRawInput `mapstructure:"scoring"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Scoring = c.Scoring.Clone()
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processQueueConfig(cfg, input); err != nil {
		return err
	}
	scoring, err := ProcessScoringRawInput(input.Scoring)
	if err != nil {
		return err
	}
	cfg.Scoring = scoring
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the store backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// validateSimpleInputs processes and validates the output and runtime fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.MetricsAddr = input.MetricsAddr

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	if input.Limit < 0 {
		return fmt.Errorf("limit cannot be negative (received %d)", input.Limit)
	}
	cfg.Limit = input.Limit

	cfg.SortBy = ""
	if sortBy := strings.ToLower(strings.TrimSpace(input.SortBy)); sortBy != "" && sortBy != "boost_factor" {
		cfg.SortBy = schema.Discipline(sortBy)
		if _, ok := schema.ValidDisciplines[cfg.SortBy]; !ok {
			return fmt.Errorf("invalid sort-by '%s'. must be boost_factor or a discipline", input.SortBy)
		}
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(orDefault(input.LogLevel, "info"))); err != nil {
		return fmt.Errorf("invalid log-level '%s': %w", input.LogLevel, err)
	}
	cfg.LogFormat = strings.ToLower(orDefault(input.LogFormat, DefaultLogFormat))
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("invalid log-format '%s'. must be text or json", input.LogFormat)
	}
	return nil
}

// processQueueConfig validates queue backend, names and the poll timeout.
func processQueueConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.QueueBackend = schema.QueueBackend(strings.ToLower(orDefault(input.QueueBackend, string(schema.RedisQueue))))
	if _, ok := schema.ValidQueueBackends[cfg.QueueBackend]; !ok {
		return fmt.Errorf("invalid queue backend '%s'. must be redis, memory, none", input.QueueBackend)
	}
	cfg.RedisAddr = orDefault(input.RedisAddr, DefaultRedisAddr)
	cfg.RedisPassword = input.RedisPassword
	if input.RedisDB < 0 {
		return fmt.Errorf("redis-db cannot be negative (received %d)", input.RedisDB)
	}
	cfg.RedisDB = input.RedisDB

	cfg.InboundQueue = orDefault(input.InboundQueue, DefaultInboundQueue)
	cfg.OutboundQueue = orDefault(input.OutboundQueue, DefaultOutboundQueue)
	if cfg.InboundQueue == cfg.OutboundQueue {
		return fmt.Errorf("inbound and outbound queues must differ (both %q)", cfg.InboundQueue)
	}

	cfg.PollTimeout = DefaultPollTimeout
	if input.PollTimeout != "" {
		d, err := time.ParseDuration(input.PollTimeout)
		if err != nil {
			return fmt.Errorf("invalid poll-timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("poll-timeout must be positive (received %s)", d)
		}
		cfg.PollTimeout = d
	}
	return nil
}

// ProcessScoringRawInput builds the scoring configuration from defaults plus overrides.
// A doctype-ranking or collection-rankings table given in config replaces the default table.
// Weights and aliases merge over the defaults.
func ProcessScoringRawInput(raw ScoringRawInput) (*schema.ScoringConfig, error) {
	cfg := schema.DefaultScoringConfig()

	if raw.RankOrder != "" {
		cfg.RankOrder = schema.RankOrder(strings.ToLower(raw.RankOrder))
		if _, ok := schema.ValidRankOrders[cfg.RankOrder]; !ok {
			return nil, fmt.Errorf("invalid rank-order '%s'. must be descending or ascending", raw.RankOrder)
		}
	}

	if raw.RecencyMultiplier != nil {
		if *raw.RecencyMultiplier < 0 {
			return nil, fmt.Errorf("recency-multiplier cannot be negative (received %.3f)", *raw.RecencyMultiplier)
		}
		cfg.RecencyMultiplier = *raw.RecencyMultiplier
	}
	if raw.RecencyMaxAgeMonths != nil {
		if *raw.RecencyMaxAgeMonths <= 0 {
			return nil, fmt.Errorf("recency-max-age-months must be positive (received %.3f)", *raw.RecencyMaxAgeMonths)
		}
		cfg.RecencyMaxAgeMonths = *raw.RecencyMaxAgeMonths
	}

	if len(raw.DoctypeRanking) > 0 {
		cfg.DoctypeRanking = make(map[string]int, len(raw.DoctypeRanking))
		for name, rank := range raw.DoctypeRanking {
			if rank <= 0 {
				return nil, fmt.Errorf("doctype rank for %s must be positive (received %d)", name, rank)
			}
			cfg.DoctypeRanking[strings.ToLower(strings.TrimSpace(name))] = rank
		}
	}

	var err error
	if cfg.BoostWeights, err = mergeFactorWeights(cfg.BoostWeights, raw.Weights, "weights"); err != nil {
		return nil, err
	}
	if cfg.FallbackWeights, err = mergeFactorWeights(cfg.FallbackWeights, raw.FallbackWeights, "fallback-weights"); err != nil {
		return nil, err
	}

	for legacy, canonical := range raw.CollectionAliases {
		cfg.CollectionAliases[schema.CanonicalCollection(legacy, nil)] = schema.CanonicalCollection(canonical, nil)
	}

	if len(raw.CollectionRankings) > 0 {
		cfg.CollectionRankings = make(map[string]map[schema.Discipline]int, len(raw.CollectionRankings))
	}
	for source, row := range raw.CollectionRankings {
		key := schema.CanonicalCollection(source, cfg.CollectionAliases)
		parsed := make(map[schema.Discipline]int, len(row))
		for target, rank := range row {
			d := schema.Discipline(schema.CanonicalCollection(target, cfg.CollectionAliases))
			if _, ok := schema.ValidDisciplines[d]; !ok {
				return nil, fmt.Errorf("collection-rankings.%s: unknown discipline '%s'", source, target)
			}
			if rank == nil {
				continue // no relevance
			}
			if *rank <= 0 {
				return nil, fmt.Errorf("collection-rankings.%s.%s must be positive (received %d)", source, target, *rank)
			}
			parsed[d] = *rank
		}
		cfg.CollectionRankings[key] = parsed
	}

	if len(raw.Disciplines) > 0 {
		cfg.Disciplines = make([]schema.Discipline, 0, len(raw.Disciplines))
		for _, name := range raw.Disciplines {
			d := schema.Discipline(schema.CanonicalCollection(name, cfg.CollectionAliases))
			if _, ok := schema.ValidDisciplines[d]; !ok {
				return nil, fmt.Errorf("invalid discipline '%s'", name)
			}
			if slices.Contains(cfg.Disciplines, d) {
				return nil, fmt.Errorf("duplicate discipline '%s'", name)
			}
			cfg.Disciplines = append(cfg.Disciplines, d)
		}
	}

	for _, table := range raw.Omit {
		switch strings.ToLower(strings.TrimSpace(table)) {
		case OmitDoctypeRanking:
			cfg.DoctypeRanking = nil
		case OmitWeights:
			cfg.BoostWeights = nil
		case OmitCollectionRankings:
			cfg.CollectionRankings = nil
		default:
			return nil, fmt.Errorf("cannot omit '%s'. must be %s, %s or %s", table, OmitDoctypeRanking, OmitWeights, OmitCollectionRankings)
		}
	}

	return cfg, nil
}

// mergeFactorWeights copies the provided weights over base and rejects negative values.
func mergeFactorWeights(base map[schema.FactorKey]float64, raw *FactorWeightsRaw, name string) (map[schema.FactorKey]float64, error) {
	if raw == nil {
		return base, nil
	}
	merged := maps.Clone(base)
	for key, value := range map[schema.FactorKey]*float64{
		schema.RefereedFactor: raw.Refereed,
		schema.DoctypeFactor:  raw.Doctype,
		schema.RecencyFactor:  raw.Recency,
	} {
		if value == nil {
			continue
		}
		if *value < 0 {
			return nil, fmt.Errorf("%s.%s cannot be negative (received %.3f)", name, key, *value)
		}
		merged[key] = *value
	}
	return merged, nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
