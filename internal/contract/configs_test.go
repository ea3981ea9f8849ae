package contract

import (
	"log/slog"
	"testing"
	"time"

	"github.com/adsabs/adsboost/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Workers:      4,
		Precision:    3,
		Output:       "text",
		Color:        "yes",
		StoreBackend: "sqlite",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

func ptr[T any](v T) *T { return &v }

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
				assert.Equal(t, schema.RedisQueue, cfg.QueueBackend)
				assert.Equal(t, DefaultInboundQueue, cfg.InboundQueue)
				assert.Equal(t, DefaultOutboundQueue, cfg.OutboundQueue)
				assert.Equal(t, DefaultPollTimeout, cfg.PollTimeout)
				assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
				assert.True(t, cfg.UseColors)
				require.NotNil(t, cfg.Scoring)
				assert.Equal(t, schema.DefaultBoostWeights(), cfg.Scoring.BoostWeights)
			},
		},
		{
			name:        "invalid workers",
			mutate:      func(in *ConfigRawInput) { in.Workers = 0 },
			expectError: true,
		},
		{
			name:        "invalid precision",
			mutate:      func(in *ConfigRawInput) { in.Precision = 9 },
			expectError: true,
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: true,
		},
		{
			name:        "negative limit",
			mutate:      func(in *ConfigRawInput) { in.Limit = -1 },
			expectError: true,
		},
		{
			name:   "sort by discipline",
			mutate: func(in *ConfigRawInput) { in.SortBy = "Heliophysics" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.Heliophysics, cfg.SortBy)
			},
		},
		{
			name:   "sort by boost factor",
			mutate: func(in *ConfigRawInput) { in.SortBy = "boost_factor" },
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.SortBy)
			},
		},
		{
			name:        "invalid sort by",
			mutate:      func(in *ConfigRawInput) { in.SortBy = "chemistry" },
			expectError: true,
		},
		{
			name:   "debug json logging",
			mutate: func(in *ConfigRawInput) { in.LogLevel = "debug"; in.LogFormat = "JSON" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
				assert.Equal(t, "json", cfg.LogFormat)
			},
		},
		{
			name:        "invalid log level",
			mutate:      func(in *ConfigRawInput) { in.LogLevel = "loud" },
			expectError: true,
		},
		{
			name:        "invalid log format",
			mutate:      func(in *ConfigRawInput) { in.LogFormat = "xml" },
			expectError: true,
		},
		{
			name:        "invalid store backend",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = "oracle" },
			expectError: true,
		},
		{
			name: "valid mysql backend",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = "mysql"
				in.StoreDBConnect = "user:pass@tcp(localhost:3306)/adsboost"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.MySQLBackend, cfg.StoreBackend)
			},
		},
		{
			name:        "mysql without connection string",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = "mysql" },
			expectError: true,
		},
		{
			name:        "invalid queue backend",
			mutate:      func(in *ConfigRawInput) { in.QueueBackend = "kafka" },
			expectError: true,
		},
		{
			name:        "same queue names",
			mutate:      func(in *ConfigRawInput) { in.InboundQueue = "q"; in.OutboundQueue = "q" },
			expectError: true,
		},
		{
			name:   "custom poll timeout",
			mutate: func(in *ConfigRawInput) { in.PollTimeout = "250ms" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 250*time.Millisecond, cfg.PollTimeout)
			},
		},
		{
			name:        "invalid poll timeout",
			mutate:      func(in *ConfigRawInput) { in.PollTimeout = "-1s" },
			expectError: true,
		},
		{
			name:        "negative redis db",
			mutate:      func(in *ConfigRawInput) { in.RedisDB = -2 },
			expectError: true,
		},
		{
			name:        "invalid scoring",
			mutate:      func(in *ConfigRawInput) { in.Scoring.RankOrder = "sideways" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			if tt.mutate != nil {
				tt.mutate(input)
			}
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none empty", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(localhost:3306)/adsboost", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@localhost/adsboost", true},
		{"mysql missing db", schema.MySQLBackend, "root:pw@tcp(localhost:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost port=5432 dbname=adsboost", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=adsboost", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessScoringRawInput(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := ProcessScoringRawInput(ScoringRawInput{})
		require.NoError(t, err)
		assert.Equal(t, schema.DefaultScoringConfig(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := ProcessScoringRawInput(ScoringRawInput{
			DoctypeRanking:      map[string]int{"Dataset": 2},
			Weights:             &FactorWeightsRaw{Recency: ptr(0.2)},
			RecencyMultiplier:   ptr(0.3),
			RecencyMaxAgeMonths: ptr(12.0),
			RankOrder:           "Ascending",
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"dataset": 2}, cfg.DoctypeRanking)
		assert.Equal(t, 0.2, cfg.BoostWeights[schema.RecencyFactor])
		assert.Equal(t, 0.4, cfg.BoostWeights[schema.RefereedFactor])
		assert.Equal(t, 0.3, cfg.RecencyMultiplier)
		assert.Equal(t, 12.0, cfg.RecencyMaxAgeMonths)
		assert.Equal(t, schema.AscendingRanks, cfg.RankOrder)
	})

	t.Run("collection rows are canonicalized", func(t *testing.T) {
		cfg, err := ProcessScoringRawInput(ScoringRawInput{
			CollectionAliases: map[string]string{"astro": "astronomy"},
			CollectionRankings: map[string]map[string]*int{
				"Astrophysics": {"astrophysics": ptr(1), "earthscience": nil, "Earth Science": ptr(3)},
			},
		})
		require.NoError(t, err)
		row := cfg.CollectionRankings["astronomy"]
		require.NotNil(t, row)
		assert.Equal(t, map[schema.Discipline]int{schema.Astronomy: 1, schema.EarthScience: 3}, row)
		assert.NotContains(t, cfg.CollectionRankings, "astrophysics")
		assert.Equal(t, "astronomy", cfg.CollectionAliases["astro"])
	})

	t.Run("configured tables replace defaults", func(t *testing.T) {
		cfg, err := ProcessScoringRawInput(ScoringRawInput{
			DoctypeRanking:     map[string]int{"article": 1, "erratum": 2},
			CollectionRankings: map[string]map[string]*int{"astronomy": {"astronomy": ptr(1)}},
		})
		require.NoError(t, err)
		assert.Len(t, cfg.DoctypeRanking, 2)
		assert.Equal(t, map[string]map[schema.Discipline]int{"astronomy": {schema.Astronomy: 1}}, cfg.CollectionRankings)
		assert.NotContains(t, cfg.DoctypeRanking, "eprint")
	})

	t.Run("null rank means no relevance", func(t *testing.T) {
		cfg, err := ProcessScoringRawInput(ScoringRawInput{
			CollectionRankings: map[string]map[string]*int{"physics": {"physics": ptr(1), "general": nil}},
		})
		require.NoError(t, err)
		assert.Equal(t, map[schema.Discipline]int{schema.Physics: 1}, cfg.CollectionRankings["physics"])
	})

	t.Run("disciplines", func(t *testing.T) {
		cfg, err := ProcessScoringRawInput(ScoringRawInput{Disciplines: []string{"Physics", "planetary"}})
		require.NoError(t, err)
		assert.Equal(t, []schema.Discipline{schema.Physics, schema.PlanetaryScience}, cfg.Disciplines)
	})

	t.Run("omit tables", func(t *testing.T) {
		cfg, err := ProcessScoringRawInput(ScoringRawInput{Omit: []string{"doctype-ranking", "Weights", "collection-rankings"}})
		require.NoError(t, err)
		assert.Nil(t, cfg.DoctypeRanking)
		assert.Nil(t, cfg.BoostWeights)
		assert.Nil(t, cfg.CollectionRankings)
		assert.NotNil(t, cfg.FallbackWeights)
	})

	invalid := map[string]ScoringRawInput{
		"negative weight":      {Weights: &FactorWeightsRaw{Doctype: ptr(-0.1)}},
		"negative fallback":    {FallbackWeights: &FactorWeightsRaw{Refereed: ptr(-1.0)}},
		"zero doctype rank":    {DoctypeRanking: map[string]int{"article": 0}},
		"negative multiplier":  {RecencyMultiplier: ptr(-0.1)},
		"zero max age":         {RecencyMaxAgeMonths: ptr(0.0)},
		"unknown discipline":   {Disciplines: []string{"chemistry"}},
		"duplicate discipline": {Disciplines: []string{"physics", "Physics"}},
		"unknown target":       {CollectionRankings: map[string]map[string]*int{"physics": {"chemistry": ptr(1)}}},
		"zero collection rank": {CollectionRankings: map[string]map[string]*int{"physics": {"physics": ptr(0)}}},
		"unknown omit":         {Omit: []string{"disciplines"}},
		"bad rank order":       {RankOrder: "random"},
	}
	for name, raw := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := ProcessScoringRawInput(raw)
			assert.Error(t, err)
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Workers: 2, Scoring: schema.DefaultScoringConfig()}
	clone := cfg.Clone()
	clone.Scoring.DoctypeRanking["article"] = 5
	clone.Workers = 8
	assert.Equal(t, 1, cfg.Scoring.DoctypeRanking["article"])
	assert.Equal(t, 2, cfg.Workers)
}

func TestProcessProfilingConfig(t *testing.T) {
	var profile ProfileConfig
	require.NoError(t, ProcessProfilingConfig(&profile, ""))
	assert.False(t, profile.Enabled)
	require.NoError(t, ProcessProfilingConfig(&profile, "adsboost"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "adsboost", profile.Prefix)
}
