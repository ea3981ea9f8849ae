package core

import (
	"errors"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/adsabs/adsboost/schema"
)

const bibDateLayout = "2006-01-02"

var errEmptyDate = errors.New("empty date")

// RefereedFactor returns 1 when metrics or bib_data mark the record as refereed, else 0.
// Metrics is consulted first.
func RefereedFactor(rec schema.Record) float64 {
	if rec.Metrics.Refereed {
		return 1.0
	}
	if rec.BibData.Refereed {
		return 1.0
	}
	return 0.0
}

// DoctypeScores maps every configured doctype to a score in [0,1].
// Distinct ranks are spread evenly: the lowest rank scores 1, the highest 0.
func DoctypeScores(ranking map[string]int) map[string]float64 {
	unique := make([]int, 0, len(ranking))
	for _, rank := range ranking {
		unique = append(unique, rank)
	}
	slices.Sort(unique)
	unique = slices.Compact(unique)

	rankScore := make(map[int]float64, len(unique))
	for i, rank := range unique {
		if len(unique) == 1 {
			rankScore[rank] = 1.0
			continue
		}
		rankScore[rank] = 1.0 - float64(i)/float64(len(unique)-1)
	}

	scores := make(map[string]float64, len(ranking))
	for doctype, rank := range ranking {
		scores[strings.ToLower(doctype)] = rankScore[rank]
	}
	return scores
}

// DoctypeFactor scores the record's doctype against the configured ranking.
// Unknown doctypes score 0. An absent ranking table scores 0 and is reported as a fallback.
func DoctypeFactor(rec schema.Record, cfg *schema.ScoringConfig) schema.Outcome[float64] {
	if len(cfg.DoctypeRanking) == 0 {
		return schema.Defaulted(0.0, schema.Fallback{
			Field:  "doctype_ranking",
			Reason: schema.MissingDoctypeRanking,
		})
	}
	doctype := strings.ToLower(strings.TrimSpace(rec.BibData.Doctype))
	return schema.Parsed(DoctypeScores(cfg.DoctypeRanking)[doctype])
}

// RecencyFactor applies a reciprocal decay to the record's age in months.
// Records with no usable date, or older than the cutoff, get the neutral 1.
func RecencyFactor(rec schema.Record, cfg *schema.ScoringConfig, now time.Time) schema.Outcome[float64] {
	ref, fb := referenceDate(rec.BibData)
	if ref.IsZero() {
		if fb != nil {
			return schema.Defaulted(1.0, *fb)
		}
		return schema.Parsed(1.0)
	}

	days := math.Floor(now.UTC().Sub(ref).Hours() / 24)
	ageMonths := max(days/schema.DaysPerMonth, 0)
	if ageMonths > cfg.RecencyMaxAgeMonths {
		return schema.Parsed(1.0)
	}
	return schema.Parsed(1.0 / (1.0 + cfg.RecencyMultiplier*ageMonths))
}

// referenceDate picks the earlier of pubdate and entry_date, or whichever one parses.
// A zero time means no usable date; the fallback is set when a date was present but malformed.
func referenceDate(bib schema.BibData) (time.Time, *schema.Fallback) {
	pub, pubErr := parseBibDate(bib.Pubdate)
	entry, entryErr := parseBibDate(bib.EntryDate)

	switch {
	case pubErr == nil && entryErr == nil:
		if entry.Before(pub) {
			return entry, nil
		}
		return pub, nil
	case pubErr == nil:
		return pub, nil
	case entryErr == nil:
		return entry, nil
	}

	if !errors.Is(pubErr, errEmptyDate) {
		return time.Time{}, &schema.Fallback{Field: "bib_data.pubdate", Reason: schema.UnparseableDate, Detail: bib.Pubdate}
	}
	if !errors.Is(entryErr, errEmptyDate) {
		return time.Time{}, &schema.Fallback{Field: "bib_data.entry_date", Reason: schema.UnparseableDate, Detail: bib.EntryDate}
	}
	return time.Time{}, nil
}

// parseBibDate parses YYYY-MM-DD in UTC, reading a "00" day as the first of the month.
func parseBibDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyDate
	}
	if strings.HasSuffix(s, "-00") {
		s = s[:len(s)-2] + "01"
	}
	return time.Parse(bibDateLayout, s)
}
