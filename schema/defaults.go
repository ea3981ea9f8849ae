package schema

// Default scoring constants.
const (
	DefaultRecencyMultiplier   = 0.1
	DefaultRecencyMaxAgeMonths = 24.0
	DaysPerMonth               = 30.44
	MinCollectionWeight        = 0.1 // weight of the least favored configured rank
)

// DefaultDoctypeRanking returns the built-in doctype rank table (1 = most preferred).
func DefaultDoctypeRanking() map[string]int {
	return map[string]int{
		"article":       1,
		"eprint":        1,
		"inbook":        1,
		"book":          1,
		"inproceedings": 2,
		"catalog":       2,
		"software":      2,
		"circular":      3,
		"mastersthesis": 3,
		"phdthesis":     3,
		"proceedings":   3,
		"techreport":    3,
		"abstract":      4,
		"bookreview":    4,
		"proposal":      4,
		"talk":          4,
		"newsletter":    5,
		"erratum":       6,
		"obituary":      6,
		"pressrelease":  7,
		"misc":          8,
	}
}

// DefaultBoostWeights returns the built-in combiner weights.
func DefaultBoostWeights() map[FactorKey]float64 {
	return map[FactorKey]float64{
		RefereedFactor: 0.4,
		DoctypeFactor:  0.6,
		RecencyFactor:  0.0,
	}
}

// DefaultFallbackWeights returns the weights used when the combiner table is unusable.
func DefaultFallbackWeights() map[FactorKey]float64 {
	return map[FactorKey]float64{
		RefereedFactor: 0.6,
		DoctypeFactor:  0.4,
		RecencyFactor:  0.0,
	}
}

// DefaultCollectionRankings returns the built-in relevance matrix.
// Rows are the record's own collection, columns the target discipline.
func DefaultCollectionRankings() map[string]map[Discipline]int {
	return map[string]map[Discipline]int{
		string(Astronomy): {
			Astronomy: 1, PlanetaryScience: 4, Physics: 2, Heliophysics: 4, General: 3, EarthScience: 6,
		},
		string(Physics): {
			Astronomy: 3, PlanetaryScience: 3, Physics: 1, Heliophysics: 3, General: 2, EarthScience: 3,
		},
		string(EarthScience): {
			Astronomy: 6, PlanetaryScience: 4, Physics: 3, Heliophysics: 5, General: 2, EarthScience: 1,
		},
		string(PlanetaryScience): {
			Astronomy: 5, PlanetaryScience: 1, Physics: 2, Heliophysics: 2, General: 3, EarthScience: 4,
		},
		string(Heliophysics): {
			Astronomy: 6, PlanetaryScience: 3, Physics: 2, Heliophysics: 1, General: 2, EarthScience: 4,
		},
		string(General): {
			Astronomy: 1, PlanetaryScience: 1, Physics: 1, Heliophysics: 1, General: 1, EarthScience: 1,
		},
	}
}

// DefaultCollectionAliases maps legacy collection names to canonical discipline names.
func DefaultCollectionAliases() map[string]string {
	return map[string]string{
		"astrophysics": string(Astronomy),
		"earthscience": string(EarthScience),
		"earth":        string(EarthScience),
		"planetary":    string(PlanetaryScience),
		"helio":        string(Heliophysics),
	}
}

// DefaultScoringConfig returns a fully populated scoring configuration.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		DoctypeRanking:      DefaultDoctypeRanking(),
		BoostWeights:        DefaultBoostWeights(),
		FallbackWeights:     DefaultFallbackWeights(),
		CollectionRankings:  DefaultCollectionRankings(),
		CollectionAliases:   DefaultCollectionAliases(),
		Disciplines:         append([]Discipline(nil), AllDisciplines...),
		RecencyMultiplier:   DefaultRecencyMultiplier,
		RecencyMaxAgeMonths: DefaultRecencyMaxAgeMonths,
		RankOrder:           DescendingRanks,
	}
}
