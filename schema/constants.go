package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for boost storage.
	DatabaseBackend string

	// QueueBackend represents the message transport used by the worker.
	QueueBackend string

	// FactorKey names one of the three base factors.
	FactorKey string

	// Discipline is a target subject area that receives its own weight.
	Discipline string

	// RankOrder controls how collection ranks map to weights.
	RankOrder string
)

// Base factor keys. The values double as persisted column names.
const (
	RefereedFactor FactorKey = "refereed_boost"
	DoctypeFactor  FactorKey = "doctype_boost"
	RecencyFactor  FactorKey = "recency_boost"
)

// Disciplines recognized by the persisted schema.
const (
	Astronomy        Discipline = "astronomy"
	Physics          Discipline = "physics"
	EarthScience     Discipline = "earth_science"
	PlanetaryScience Discipline = "planetary_science"
	Heliophysics     Discipline = "heliophysics"
	General          Discipline = "general"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All queue backends supported.
const (
	RedisQueue  QueueBackend = "redis" // default
	MemoryQueue QueueBackend = "memory"
	NoneQueue   QueueBackend = "none"
)

// Rank orders. Descending gives the numerically largest rank the highest weight.
const (
	DescendingRanks RankOrder = "descending" // default
	AscendingRanks  RankOrder = "ascending"
)

// Record status sentinels set by the normalizer.
const (
	StatusUnknown = "unknown"
	StatusError   = "error"
)

// StatusUpdated is the status code carried by every outbound boost response.
const StatusUpdated = 3

// AllFactors lists the base factors in output order.
var AllFactors = []FactorKey{RefereedFactor, DoctypeFactor, RecencyFactor}

// AllDisciplines lists every discipline in persisted column order.
var AllDisciplines = []Discipline{Astronomy, Physics, EarthScience, PlanetaryScience, Heliophysics, General}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidQueueBackends lists all valid queue backends.
var ValidQueueBackends = map[QueueBackend]struct{}{
	RedisQueue:  {},
	MemoryQueue: {},
	NoneQueue:   {},
}

// ValidDisciplines lists all disciplines the schema can persist.
var ValidDisciplines = map[Discipline]struct{}{
	Astronomy:        {},
	Physics:          {},
	EarthScience:     {},
	PlanetaryScience: {},
	Heliophysics:     {},
	General:          {},
}

// ValidRankOrders lists all valid rank orders.
var ValidRankOrders = map[RankOrder]struct{}{
	DescendingRanks: {},
	AscendingRanks:  {},
}

// WeightColumn returns the column name holding the weight of d.
func WeightColumn(d Discipline) string { return string(d) + "_weight" }

// FinalBoostColumn returns the column name holding the final boost of d.
func FinalBoostColumn(d Discipline) string { return string(d) + "_final_boost" }
