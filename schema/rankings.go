package schema

// DoctypeScore is one row of the doctype score table.
type DoctypeScore struct {
	Doctype string  `json:"doctype"`
	Rank    int     `json:"rank"`
	Score   float64 `json:"score"`
}

// RankWeight is one row of the collection rank-to-weight table.
type RankWeight struct {
	Rank   int     `json:"rank"`
	Weight float64 `json:"weight"`
}

// CollectionRow lists the rank each discipline gives to one source collection.
type CollectionRow struct {
	Collection string             `json:"collection"`
	Ranks      map[Discipline]int `json:"ranks"`
}

// RankingsReport describes how the active configuration turns ranks into scores.
type RankingsReport struct {
	Doctypes            []DoctypeScore        `json:"doctypes"`
	RankOrder           RankOrder             `json:"rank_order"`
	RankWeights         []RankWeight          `json:"rank_weights"`
	Collections         []CollectionRow       `json:"collections"`
	BoostWeights        map[FactorKey]float64 `json:"boost_weights"`
	FallbackWeights     map[FactorKey]float64 `json:"fallback_weights"`
	RecencyMultiplier   float64               `json:"recency_multiplier"`
	RecencyMaxAgeMonths float64               `json:"recency_max_age_months"`
	Disciplines         []Discipline          `json:"disciplines"`
}
