package core

import "github.com/adsabs/adsboost/schema"

// CombineFactors reduces the three base factors to one boost factor using normalized weights.
//
// An absent or non-positive weight table is replaced by the fallback weights.
// If those are degenerate too, the factors are averaged.
func CombineFactors(factors map[schema.FactorKey]float64, cfg *schema.ScoringConfig) schema.Outcome[float64] {
	weights := cfg.BoostWeights
	var fb *schema.Fallback
	switch {
	case len(weights) == 0:
		fb = &schema.Fallback{Field: "boost_weights", Reason: schema.MissingBoostWeights}
	case weightSum(weights) <= 0:
		fb = &schema.Fallback{Field: "boost_weights", Reason: schema.DegenerateBoostWeights, Detail: "sum <= 0"}
	}
	if fb != nil {
		weights = cfg.FallbackWeights
		if weights == nil {
			weights = schema.DefaultFallbackWeights()
		}
	}

	total := weightSum(weights)
	if total <= 0 {
		var mean float64
		for _, key := range schema.AllFactors {
			mean += factors[key]
		}
		mean /= float64(len(schema.AllFactors))
		return schema.Defaulted(clamp01(mean), schema.Fallback{
			Field:  "boost_weights",
			Reason: schema.DegenerateBoostWeights,
			Detail: "fallback weights unusable, using mean",
		})
	}

	var combined float64
	for _, key := range schema.AllFactors {
		combined += factors[key] * weights[key] / total
	}
	if fb != nil {
		return schema.Defaulted(clamp01(combined), *fb)
	}
	return schema.Parsed(clamp01(combined))
}

// weightSum adds the weights of the three named factors; other keys are ignored.
func weightSum(weights map[schema.FactorKey]float64) float64 {
	var sum float64
	for _, key := range schema.AllFactors {
		sum += weights[key]
	}
	return sum
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
