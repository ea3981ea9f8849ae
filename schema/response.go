package schema

import "time"

// BoostResponse is the outbound message sent to the ranking pipeline.
type BoostResponse struct {
	Bibcode       string  `cbor:"bibcode" json:"bibcode"`
	ScixID        string  `cbor:"scix_id" json:"scix_id"`
	Status        int     `cbor:"status" json:"status"`
	DoctypeBoost  float64 `cbor:"doctype_boost" json:"doctype_boost"`
	RefereedBoost float64 `cbor:"refereed_boost" json:"refereed_boost"`
	RecencyBoost  float64 `cbor:"recency_boost" json:"recency_boost"`
	BoostFactor   float64 `cbor:"boost_factor" json:"boost_factor"`

	AstronomyFinalBoost        float64 `cbor:"astronomy_final_boost" json:"astronomy_final_boost"`
	PhysicsFinalBoost          float64 `cbor:"physics_final_boost" json:"physics_final_boost"`
	EarthScienceFinalBoost     float64 `cbor:"earth_science_final_boost" json:"earth_science_final_boost"`
	PlanetaryScienceFinalBoost float64 `cbor:"planetary_science_final_boost" json:"planetary_science_final_boost"`
	HeliophysicsFinalBoost     float64 `cbor:"heliophysics_final_boost" json:"heliophysics_final_boost"`
	GeneralFinalBoost          float64 `cbor:"general_final_boost" json:"general_final_boost"`

	Created  string `cbor:"created" json:"created"`   // ISO-8601
	Modified string `cbor:"modified" json:"modified"` // ISO-8601
}

// NewBoostResponse builds the outbound message for a scored record.
func NewBoostResponse(r BoostResult, created, modified time.Time) BoostResponse {
	return BoostResponse{
		Bibcode:       r.Bibcode,
		ScixID:        r.ScixID,
		Status:        StatusUpdated,
		DoctypeBoost:  r.DoctypeBoost,
		RefereedBoost: r.RefereedBoost,
		RecencyBoost:  r.RecencyBoost,
		BoostFactor:   r.BoostFactor,

		AstronomyFinalBoost:        r.FinalBoosts[Astronomy],
		PhysicsFinalBoost:          r.FinalBoosts[Physics],
		EarthScienceFinalBoost:     r.FinalBoosts[EarthScience],
		PlanetaryScienceFinalBoost: r.FinalBoosts[PlanetaryScience],
		HeliophysicsFinalBoost:     r.FinalBoosts[Heliophysics],
		GeneralFinalBoost:          r.FinalBoosts[General],

		Created:  created.UTC().Format(time.RFC3339Nano),
		Modified: modified.UTC().Format(time.RFC3339Nano),
	}
}

// FinalBoost returns the final boost for one discipline.
func (r BoostResponse) FinalBoost(d Discipline) float64 {
	switch d {
	case Astronomy:
		return r.AstronomyFinalBoost
	case Physics:
		return r.PhysicsFinalBoost
	case EarthScience:
		return r.EarthScienceFinalBoost
	case PlanetaryScience:
		return r.PlanetaryScienceFinalBoost
	case Heliophysics:
		return r.HeliophysicsFinalBoost
	case General:
		return r.GeneralFinalBoost
	default:
		return 0
	}
}
