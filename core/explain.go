package core

import (
	"cmp"
	"slices"
	"strings"

	"github.com/adsabs/adsboost/schema"
)

// ExplainRankings builds the score tables implied by cfg. Absent tables yield empty sections.
func ExplainRankings(cfg *schema.ScoringConfig) schema.RankingsReport {
	report := schema.RankingsReport{
		RankOrder:           cfg.RankOrder,
		BoostWeights:        cfg.BoostWeights,
		FallbackWeights:     cfg.FallbackWeights,
		RecencyMultiplier:   cfg.RecencyMultiplier,
		RecencyMaxAgeMonths: cfg.RecencyMaxAgeMonths,
		Disciplines:         configuredDisciplines(cfg),
	}
	if report.RankOrder == "" {
		report.RankOrder = schema.DescendingRanks
	}

	scores := DoctypeScores(cfg.DoctypeRanking)
	for doctype, rank := range cfg.DoctypeRanking {
		report.Doctypes = append(report.Doctypes, schema.DoctypeScore{
			Doctype: strings.ToLower(doctype),
			Rank:    rank,
			Score:   scores[strings.ToLower(doctype)],
		})
	}
	slices.SortFunc(report.Doctypes, func(a, b schema.DoctypeScore) int {
		return cmp.Or(cmp.Compare(a.Rank, b.Rank), strings.Compare(a.Doctype, b.Doctype))
	})

	for rank, weight := range RankWeights(cfg.CollectionRankings, cfg.RankOrder) {
		report.RankWeights = append(report.RankWeights, schema.RankWeight{Rank: rank, Weight: weight})
	}
	slices.SortFunc(report.RankWeights, func(a, b schema.RankWeight) int {
		return cmp.Compare(a.Rank, b.Rank)
	})

	for collection, ranks := range cfg.CollectionRankings {
		report.Collections = append(report.Collections, schema.CollectionRow{Collection: collection, Ranks: ranks})
	}
	slices.SortFunc(report.Collections, func(a, b schema.CollectionRow) int {
		return strings.Compare(a.Collection, b.Collection)
	})
	return report
}
