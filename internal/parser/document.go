package parser

import "github.com/harrison/segcheck/internal/models"

// Document is the on-disk form of a check run: the bridge layout plus the
// already-computed check results of every segment.
type Document struct {
	Name string `yaml:"name"`
	// HaulInterval applies to segments that do not name their own.
	HaulInterval int             `yaml:"haul_interval"`
	DeckRegions  []DeckRegionDoc `yaml:"deck_regions"`
	Segments     []SegmentDoc    `yaml:"segments"`

	// FilePath is the absolute path the document was read from.
	FilePath string `yaml:"-"`
}

// DeckRegionDoc declares a deck casting region.
type DeckRegionDoc struct {
	ID                int `yaml:"id"`
	CompositeInterval int `yaml:"composite_interval"`
}

// SegmentDoc holds one segment's check results.
type SegmentDoc struct {
	Group        int  `yaml:"group"`
	Girder       int  `yaml:"girder"`
	Segment      int  `yaml:"segment"`
	HaulInterval *int `yaml:"haul_interval,omitempty"`

	Pois []PoiDoc `yaml:"pois"`

	StrandStress        *models.StrandStressArtifact            `yaml:"strand_stress,omitempty"`
	StrandSlope         *models.StrandSlopeArtifact             `yaml:"strand_slope,omitempty"`
	HoldDownForce       *models.HoldDownForceArtifact           `yaml:"hold_down_force,omitempty"`
	PlantHandlingWeight *models.PlantHandlingWeightArtifact     `yaml:"plant_handling_weight,omitempty"`
	Stirrups            *models.StirrupCheckArtifact            `yaml:"stirrups,omitempty"`
	Detailing           *models.PrecastIGirderDetailingArtifact `yaml:"detailing,omitempty"`
	Stability           *models.SegmentStabilityArtifact        `yaml:"stability,omitempty"`
	// Debond is keyed by strand type name.
	Debond map[string]models.DebondArtifact `yaml:"debond,omitempty"`

	FlexuralStress    []FlexuralDoc `yaml:"flexural_stress"`
	CapacityWithRebar []CapacityDoc `yaml:"capacity_with_rebar,omitempty"`

	Tendons []TendonDoc `yaml:"tendons,omitempty"`
	Ducts   []DuctDoc   `yaml:"ducts,omitempty"`

	Lifting *HandlingDoc `yaml:"lifting,omitempty"`
	Hauling *HaulingDoc  `yaml:"hauling,omitempty"`
}

// Key returns the segment identity.
func (s SegmentDoc) Key() models.SegmentKey {
	return models.SegmentKey{Group: s.Group, Girder: s.Girder, Segment: s.Segment}
}

// PoiDoc declares a point of interest and its classification.
type PoiDoc struct {
	ID           int64   `yaml:"id"`
	Distance     float64 `yaml:"distance"`
	ClosureJoint bool    `yaml:"closure_joint,omitempty"`
	DeckRegion   *int    `yaml:"deck_region,omitempty"`
}

// FlexuralDoc is one flexural stress check result. Locations are keyed by
// fiber name such as "top_girder".
type FlexuralDoc struct {
	Poi        int64                  `yaml:"poi"`
	Interval   int                    `yaml:"interval"`
	LimitState string                 `yaml:"limit_state"`
	StressType string                 `yaml:"stress_type"`
	Locations  map[string]LocationDoc `yaml:"locations"`
}

// LocationDoc is the result at one fiber. RequiredFc uses the signed
// encoding: negative is infeasible, zero is no requirement.
type LocationDoc struct {
	models.StressLocationResult `yaml:",inline"`
	RequiredFc                  float64 `yaml:"required_fc"`
}

// CapacityDoc records a with-rebar allowable tensile stress.
type CapacityDoc struct {
	Interval   int     `yaml:"interval"`
	LimitState string  `yaml:"limit_state"`
	Location   string  `yaml:"location"`
	Allowable  float64 `yaml:"allowable"`
}

// TendonDoc is the tendon stress check of one duct.
type TendonDoc struct {
	Duct                        int `yaml:"duct"`
	models.TendonStressArtifact `yaml:",inline"`
}

// DuctDoc is the duct size check of one duct.
type DuctDoc struct {
	Duct                    int `yaml:"duct"`
	models.DuctSizeArtifact `yaml:",inline"`
}

// StrengthDoc holds the strengths a handling analysis requires, each in the
// signed encoding.
type StrengthDoc struct {
	Compression      float64 `yaml:"compression"`
	Tension          float64 `yaml:"tension"`
	TensionWithRebar float64 `yaml:"tension_with_rebar"`
}

func (s StrengthDoc) strength() models.HandlingStrength {
	return models.HandlingStrength{
		Compression:      models.StrengthFromSentinel(s.Compression),
		Tension:          models.StrengthFromSentinel(s.Tension),
		TensionWithRebar: models.StrengthFromSentinel(s.TensionWithRebar),
	}
}

// HandlingDoc is a lifting analysis, or one slope of a hauling analysis.
type HandlingDoc struct {
	Passed     bool        `yaml:"passed"`
	RequiredFc StrengthDoc `yaml:"required_fc"`
}

// HaulingDoc is a hauling analysis for both roadway slopes.
type HaulingDoc struct {
	CrownSlope     HandlingDoc `yaml:"crown_slope"`
	Superelevation HandlingDoc `yaml:"superelevation"`
}
