// Package parquet exports stored boost factors to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adsabs/adsboost/schema"
	"github.com/parquet-go/parquet-go"
)

// BoostFactors is one row of the boost_factors table.
type BoostFactors struct {
	// ID is the store row id
	ID int64 `parquet:"id,snappy"`

	// Bibcode and ScixID identify the record; at least one is set
	Bibcode *string `parquet:"bibcode,optional,snappy"`
	ScixID  *string `parquet:"scix_id,optional,snappy"`

	Created  time.Time `parquet:"created,snappy"`
	Modified time.Time `parquet:"modified,snappy"`

	RefereedBoost float64 `parquet:"refereed_boost,snappy"`
	DoctypeBoost  float64 `parquet:"doctype_boost,snappy"`
	RecencyBoost  float64 `parquet:"recency_boost,snappy"`
	BoostFactor   float64 `parquet:"boost_factor,snappy"`

	AstronomyWeight        float64 `parquet:"astronomy_weight,snappy"`
	PhysicsWeight          float64 `parquet:"physics_weight,snappy"`
	EarthScienceWeight     float64 `parquet:"earth_science_weight,snappy"`
	PlanetaryScienceWeight float64 `parquet:"planetary_science_weight,snappy"`
	HeliophysicsWeight     float64 `parquet:"heliophysics_weight,snappy"`
	GeneralWeight          float64 `parquet:"general_weight,snappy"`

	AstronomyFinalBoost        float64 `parquet:"astronomy_final_boost,snappy"`
	PhysicsFinalBoost          float64 `parquet:"physics_final_boost,snappy"`
	EarthScienceFinalBoost     float64 `parquet:"earth_science_final_boost,snappy"`
	PlanetaryScienceFinalBoost float64 `parquet:"planetary_science_final_boost,snappy"`
	HeliophysicsFinalBoost     float64 `parquet:"heliophysics_final_boost,snappy"`
	GeneralFinalBoost          float64 `parquet:"general_final_boost,snappy"`
}

// ConvertBoostRecords maps stored rows onto the Parquet schema.
func ConvertBoostRecords(records []schema.BoostRecord) []BoostFactors {
	out := make([]BoostFactors, len(records))
	for i, r := range records {
		out[i] = BoostFactors{
			ID:            r.ID,
			Bibcode:       optional(r.Bibcode),
			ScixID:        optional(r.ScixID),
			Created:       r.Created.UTC(),
			Modified:      r.Modified.UTC(),
			RefereedBoost: r.RefereedBoost,
			DoctypeBoost:  r.DoctypeBoost,
			RecencyBoost:  r.RecencyBoost,
			BoostFactor:   r.BoostFactor,

			AstronomyWeight:        r.Weights[schema.Astronomy],
			PhysicsWeight:          r.Weights[schema.Physics],
			EarthScienceWeight:     r.Weights[schema.EarthScience],
			PlanetaryScienceWeight: r.Weights[schema.PlanetaryScience],
			HeliophysicsWeight:     r.Weights[schema.Heliophysics],
			GeneralWeight:          r.Weights[schema.General],

			AstronomyFinalBoost:        r.FinalBoosts[schema.Astronomy],
			PhysicsFinalBoost:          r.FinalBoosts[schema.Physics],
			EarthScienceFinalBoost:     r.FinalBoosts[schema.EarthScience],
			PlanetaryScienceFinalBoost: r.FinalBoosts[schema.PlanetaryScience],
			HeliophysicsFinalBoost:     r.FinalBoosts[schema.Heliophysics],
			GeneralFinalBoost:          r.FinalBoosts[schema.General],
		}
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// WriteBoostFactors writes rows to w in Parquet format.
func WriteBoostFactors(w io.Writer, data []BoostFactors) error {
	writer := parquet.NewGenericWriter[BoostFactors](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteBoostFactorsParquet writes rows to a Parquet file at outputPath.
func WriteBoostFactorsParquet(data []BoostFactors, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteBoostFactors(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
