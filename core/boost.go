package core

import (
	"time"

	"github.com/adsabs/adsboost/schema"
)

// ComputeBoost scores one normalized record.
// It is deterministic for a given record, configuration and reference time.
func ComputeBoost(rec schema.Record, cfg *schema.ScoringConfig, now time.Time) schema.BoostResult {
	fallbacks := slicesCloneFallbacks(rec.Fallbacks)

	doctype := DoctypeFactor(rec, cfg)
	recency := RecencyFactor(rec, cfg, now)
	factors := map[schema.FactorKey]float64{
		schema.RefereedFactor: RefereedFactor(rec),
		schema.DoctypeFactor:  doctype.Value,
		schema.RecencyFactor:  recency.Value,
	}
	combined := CombineFactors(factors, cfg)
	weights := ResolveDisciplineWeights(rec, cfg)

	for _, fb := range []*schema.Fallback{doctype.Fallback, recency.Fallback, combined.Fallback, weights.Fallback} {
		if fb != nil {
			fallbacks = append(fallbacks, *fb)
		}
	}

	disciplines := configuredDisciplines(cfg)
	finals := make(map[schema.Discipline]float64, len(disciplines))
	for _, d := range disciplines {
		finals[d] = weights.Value[d] * combined.Value
	}

	return schema.BoostResult{
		Bibcode:       rec.Bibcode,
		ScixID:        rec.ScixID,
		RefereedBoost: factors[schema.RefereedFactor],
		DoctypeBoost:  factors[schema.DoctypeFactor],
		RecencyBoost:  factors[schema.RecencyFactor],
		BoostFactor:   combined.Value,
		Weights:       weights.Value,
		FinalBoosts:   finals,
		Fallbacks:     fallbacks,
	}
}

func slicesCloneFallbacks(in []schema.Fallback) []schema.Fallback {
	if len(in) == 0 {
		return nil
	}
	return append(make([]schema.Fallback, 0, len(in)+4), in...)
}
