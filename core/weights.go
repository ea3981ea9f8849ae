package core

import (
	"slices"
	"strings"

	"github.com/adsabs/adsboost/schema"
)

// RecordCollections returns the record's own collections.
// Classifications win over bib_data.database; an empty result means general.
func RecordCollections(rec schema.Record, cfg *schema.ScoringConfig) []string {
	raw := rec.Classifications
	if len(raw) == 0 {
		raw = rec.BibData.Database
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if strings.TrimSpace(v) == "" {
			continue
		}
		c := schema.CanonicalCollection(v, cfg.CollectionAliases)
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return []string{string(schema.General)}
	}
	return out
}

// RankWeights maps every distinct configured rank to a weight in [0.1, 1].
// Ranks are ordered per order and spread evenly from 1 down to the floor.
func RankWeights(rankings map[string]map[schema.Discipline]int, order schema.RankOrder) map[int]float64 {
	var ranks []int
	for _, row := range rankings {
		for _, rank := range row {
			ranks = append(ranks, rank)
		}
	}
	slices.Sort(ranks)
	ranks = slices.Compact(ranks)
	if order != schema.AscendingRanks {
		slices.Reverse(ranks)
	}

	weights := make(map[int]float64, len(ranks))
	for i, rank := range ranks {
		if len(ranks) == 1 {
			weights[rank] = 1.0
			continue
		}
		weights[rank] = 1.0 - (1.0-schema.MinCollectionWeight)*float64(i)/float64(len(ranks)-1)
	}
	return weights
}

// ResolveDisciplineWeights returns a weight in [0,1] for every configured discipline.
//
// Records in the general collection are relevant everywhere. Otherwise each discipline
// takes the best weight any of the record's collections gives it, or 0.
func ResolveDisciplineWeights(rec schema.Record, cfg *schema.ScoringConfig) schema.Outcome[map[schema.Discipline]float64] {
	disciplines := configuredDisciplines(cfg)

	if len(cfg.CollectionRankings) == 0 {
		return schema.Defaulted(uniformWeights(disciplines), schema.Fallback{
			Field:  "collection_rankings",
			Reason: schema.MissingCollectionRankings,
		})
	}

	collections := RecordCollections(rec, cfg)
	rankWeights := RankWeights(cfg.CollectionRankings, cfg.RankOrder)
	if len(rankWeights) == 0 {
		return schema.Defaulted(uniformWeights(disciplines), schema.Fallback{
			Field:  "collection_rankings",
			Reason: schema.EmptyCollectionRankings,
		})
	}

	if slices.Contains(collections, string(schema.General)) {
		return schema.Parsed(uniformWeights(disciplines))
	}

	weights := make(map[schema.Discipline]float64, len(disciplines))
	for _, d := range disciplines {
		var best float64
		for _, c := range collections {
			rank, ok := cfg.CollectionRankings[c][d]
			if !ok {
				continue
			}
			best = max(best, rankWeights[rank])
		}
		weights[d] = best
	}
	return schema.Parsed(weights)
}

func configuredDisciplines(cfg *schema.ScoringConfig) []schema.Discipline {
	if len(cfg.Disciplines) == 0 {
		return schema.AllDisciplines
	}
	return cfg.Disciplines
}

func uniformWeights(disciplines []schema.Discipline) map[schema.Discipline]float64 {
	weights := make(map[schema.Discipline]float64, len(disciplines))
	for _, d := range disciplines {
		weights[d] = 1.0
	}
	return weights
}
