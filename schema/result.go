package schema

import (
	"encoding/json"
	"time"
)

// BoostResult is the engine output for one record.
type BoostResult struct {
	Bibcode       string
	ScixID        string
	RefereedBoost float64
	DoctypeBoost  float64
	RecencyBoost  float64
	BoostFactor   float64
	Weights       map[Discipline]float64
	FinalBoosts   map[Discipline]float64
	Fallbacks     []Fallback // every recovered condition, input and configuration
}

// Factor returns the value of one base factor.
func (r BoostResult) Factor(key FactorKey) float64 {
	switch key {
	case RefereedFactor:
		return r.RefereedBoost
	case DoctypeFactor:
		return r.DoctypeBoost
	case RecencyFactor:
		return r.RecencyBoost
	default:
		return 0
	}
}

// Identifier returns the bibcode, or the scix_id when the bibcode is empty.
func (r BoostResult) Identifier() string {
	if r.Bibcode != "" {
		return r.Bibcode
	}
	return r.ScixID
}

// MarshalJSON flattens per-discipline maps into the persisted field names.
func (r BoostResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(newFlatBoost(r))
}

// BoostRecord is one persisted row of boost factors.
type BoostRecord struct {
	ID       int64
	Created  time.Time
	Modified time.Time
	BoostResult
}

// MarshalJSON includes the row metadata alongside the flattened result.
func (r BoostRecord) MarshalJSON() ([]byte, error) {
	flat := newFlatBoost(r.BoostResult)
	flat.ID = &r.ID
	flat.Created = &r.Created
	flat.Modified = &r.Modified
	return json.Marshal(flat)
}

// flatBoost fixes the JSON field order to match the persisted schema.
type flatBoost struct {
	ID            *int64     `json:"id,omitempty"`
	Bibcode       string     `json:"bibcode"`
	ScixID        string     `json:"scix_id"`
	Created       *time.Time `json:"created,omitempty"`
	Modified      *time.Time `json:"modified,omitempty"`
	RefereedBoost float64    `json:"refereed_boost"`
	DoctypeBoost  float64    `json:"doctype_boost"`
	RecencyBoost  float64    `json:"recency_boost"`
	BoostFactor   float64    `json:"boost_factor"`

	AstronomyWeight        float64 `json:"astronomy_weight"`
	PhysicsWeight          float64 `json:"physics_weight"`
	EarthScienceWeight     float64 `json:"earth_science_weight"`
	PlanetaryScienceWeight float64 `json:"planetary_science_weight"`
	HeliophysicsWeight     float64 `json:"heliophysics_weight"`
	GeneralWeight          float64 `json:"general_weight"`

	AstronomyFinalBoost        float64 `json:"astronomy_final_boost"`
	PhysicsFinalBoost          float64 `json:"physics_final_boost"`
	EarthScienceFinalBoost     float64 `json:"earth_science_final_boost"`
	PlanetaryScienceFinalBoost float64 `json:"planetary_science_final_boost"`
	HeliophysicsFinalBoost     float64 `json:"heliophysics_final_boost"`
	GeneralFinalBoost          float64 `json:"general_final_boost"`

	Fallbacks []Fallback `json:"fallbacks,omitempty"`
}

func newFlatBoost(r BoostResult) flatBoost {
	return flatBoost{
		Bibcode:       r.Bibcode,
		ScixID:        r.ScixID,
		RefereedBoost: r.RefereedBoost,
		DoctypeBoost:  r.DoctypeBoost,
		RecencyBoost:  r.RecencyBoost,
		BoostFactor:   r.BoostFactor,

		AstronomyWeight:        r.Weights[Astronomy],
		PhysicsWeight:          r.Weights[Physics],
		EarthScienceWeight:     r.Weights[EarthScience],
		PlanetaryScienceWeight: r.Weights[PlanetaryScience],
		HeliophysicsWeight:     r.Weights[Heliophysics],
		GeneralWeight:          r.Weights[General],

		AstronomyFinalBoost:        r.FinalBoosts[Astronomy],
		PhysicsFinalBoost:          r.FinalBoosts[Physics],
		EarthScienceFinalBoost:     r.FinalBoosts[EarthScience],
		PlanetaryScienceFinalBoost: r.FinalBoosts[PlanetaryScience],
		HeliophysicsFinalBoost:     r.FinalBoosts[Heliophysics],
		GeneralFinalBoost:          r.FinalBoosts[General],

		Fallbacks: r.Fallbacks,
	}
}

// StoreStatus summarizes the boost store.
type StoreStatus struct {
	Backend      string     `json:"backend"`
	Connected    bool       `json:"connected"`
	TotalRecords int        `json:"total_records"`
	LastModified *time.Time `json:"last_modified,omitempty"`
	OldestRecord *time.Time `json:"oldest_record,omitempty"`
	TableSize    int64      `json:"table_size_bytes"`
}
