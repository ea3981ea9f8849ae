package schema

import "fmt"

// FallbackReason identifies why a default value replaced an input or configuration value.
type FallbackReason string

// Recoverable conditions, grouped by origin.
const (
	// Malformed input.
	MalformedBibData     FallbackReason = "malformed_bib_data"
	MalformedMetrics     FallbackReason = "malformed_metrics"
	CoercedSequence      FallbackReason = "coerced_sequence"
	NormalizationFailure FallbackReason = "normalization_failure"
	UnparseableDate      FallbackReason = "unparseable_date"

	// Missing configuration.
	MissingDoctypeRanking     FallbackReason = "missing_doctype_ranking"
	MissingBoostWeights       FallbackReason = "missing_boost_weights"
	DegenerateBoostWeights    FallbackReason = "degenerate_boost_weights"
	MissingCollectionRankings FallbackReason = "missing_collection_rankings"
	EmptyCollectionRankings   FallbackReason = "empty_collection_rankings"
)

// Fallback records one recovered condition: which field, why, and any detail.
type Fallback struct {
	Field  string         `json:"field"`
	Reason FallbackReason `json:"reason"`
	Detail string         `json:"detail,omitempty"`
}

func (f Fallback) String() string {
	if f.Detail == "" {
		return fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return fmt.Sprintf("%s: %s (%s)", f.Field, f.Reason, f.Detail)
}

// Outcome is either a parsed value or a defaulted value carrying the reason.
type Outcome[T any] struct {
	Value    T
	Fallback *Fallback
}

// Parsed wraps a value computed from real input.
func Parsed[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Defaulted wraps a documented default used in place of real input.
func Defaulted[T any](v T, fb Fallback) Outcome[T] {
	return Outcome[T]{Value: v, Fallback: &fb}
}

// IsDefaulted reports whether the value is a fallback.
func (o Outcome[T]) IsDefaulted() bool {
	return o.Fallback != nil
}
