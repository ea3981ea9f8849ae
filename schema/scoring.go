package schema

import "maps"

// ScoringConfig holds every table and constant the boost engine reads.
// It is built once, treated as read-only while scoring, and passed explicitly.
//
// A nil table means the table is absent and the engine applies its documented fallback.
type ScoringConfig struct {
	DoctypeRanking      map[string]int                // lowercase doctype -> rank (1 = most preferred)
	BoostWeights        map[FactorKey]float64         // combiner weights
	FallbackWeights     map[FactorKey]float64         // used when BoostWeights is absent or sums to <= 0
	CollectionRankings  map[string]map[Discipline]int // source collection -> discipline -> rank
	CollectionAliases   map[string]string             // legacy collection name -> canonical name
	Disciplines         []Discipline                  // ordered output disciplines
	RecencyMultiplier   float64                       // reciprocal decay multiplier
	RecencyMaxAgeMonths float64                       // recency boost is off past this age
	RankOrder           RankOrder                     // collection rank to weight direction
}

// Clone returns a deep copy so callers can apply overrides safely.
func (c *ScoringConfig) Clone() *ScoringConfig {
	if c == nil {
		return nil
	}
	clone := *c
	if c.DoctypeRanking != nil {
		clone.DoctypeRanking = maps.Clone(c.DoctypeRanking)
	}
	if c.BoostWeights != nil {
		clone.BoostWeights = maps.Clone(c.BoostWeights)
	}
	if c.FallbackWeights != nil {
		clone.FallbackWeights = maps.Clone(c.FallbackWeights)
	}
	if c.CollectionRankings != nil {
		clone.CollectionRankings = make(map[string]map[Discipline]int, len(c.CollectionRankings))
		for source, row := range c.CollectionRankings {
			clone.CollectionRankings[source] = maps.Clone(row)
		}
	}
	if c.CollectionAliases != nil {
		clone.CollectionAliases = maps.Clone(c.CollectionAliases)
	}
	clone.Disciplines = append([]Discipline(nil), c.Disciplines...)
	return &clone
}
