package core

import (
	"sort"

	"github.com/adsabs/adsboost/schema"
)

// RankRecords sorts records by their final boost for a discipline in descending order
// and returns the top 'limit' records. An empty discipline ranks by boost_factor.
// A non-positive limit keeps every record.
func RankRecords(records []schema.BoostRecord, by schema.Discipline, limit int) []schema.BoostRecord {
	key := func(r schema.BoostRecord) float64 {
		if by == "" {
			return r.BoostFactor
		}
		return r.FinalBoosts[by]
	}
	sort.SliceStable(records, func(i, j int) bool {
		return key(records[i]) > key(records[j])
	})
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}
