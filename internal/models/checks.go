package models

// DemandCapacity pairs a computed demand with the limit it is checked against.
type DemandCapacity struct {
	Demand   float64 `yaml:"demand" json:"demand"`
	Capacity float64 `yaml:"capacity" json:"capacity"`
}

// Satisfied reports whether the demand does not exceed the capacity.
func (dc DemandCapacity) Satisfied() bool {
	return dc.Demand <= dc.Capacity
}

func allSatisfied(checks []DemandCapacity) bool {
	for _, c := range checks {
		if !c.Satisfied() {
			return false
		}
	}
	return true
}

// StrandStressArtifact checks strand stresses against their limits at each
// check point (jacking, before transfer, after all losses).
type StrandStressArtifact struct {
	Checks []DemandCapacity `yaml:"checks" json:"checks"`
}

// Passed reports whether every strand stress is within its limit.
func (a StrandStressArtifact) Passed() bool { return allSatisfied(a.Checks) }

// StrandSlopeArtifact checks the harped strand slope. Slopes are expressed as
// 1:n, so a steeper strand has a smaller n and passes when n is at least the
// limit.
type StrandSlopeArtifact struct {
	Applicable bool    `yaml:"applicable" json:"applicable"`
	Slope      float64 `yaml:"slope" json:"slope"`
	Limit      float64 `yaml:"limit" json:"limit"`
}

// Passed reports whether the slope is no steeper than the limit.
func (a StrandSlopeArtifact) Passed() bool {
	return !a.Applicable || a.Limit <= a.Slope
}

// HoldDownForceArtifact checks the total harped strand hold-down force.
type HoldDownForceArtifact struct {
	Applicable     bool `yaml:"applicable" json:"applicable"`
	DemandCapacity `yaml:",inline" json:",inline"`
}

// Passed reports whether the hold-down force is within the device capacity.
func (a HoldDownForceArtifact) Passed() bool {
	return !a.Applicable || a.Satisfied()
}

// PlantHandlingWeightArtifact checks the segment weight against the plant's
// handling limit.
type PlantHandlingWeightArtifact struct {
	Applicable bool    `yaml:"applicable" json:"applicable"`
	Weight     float64 `yaml:"weight" json:"weight"`
	Limit      float64 `yaml:"limit" json:"limit"`
}

// Passed reports whether the segment can be handled in the plant.
func (a PlantHandlingWeightArtifact) Passed() bool {
	return !a.Applicable || a.Weight <= a.Limit
}

// StirrupCheckAtPoi is the shear reinforcement outcome at one point of interest.
type StirrupCheckAtPoi struct {
	PoiID  PoiID `yaml:"poi" json:"poi"`
	Passed bool  `yaml:"passed" json:"passed"`
}

// StirrupCheckArtifact collects the shear and confinement reinforcement checks.
type StirrupCheckArtifact struct {
	Points []StirrupCheckAtPoi `yaml:"points" json:"points"`
	// Splitting is nil when splitting resistance is not checked.
	Splitting           *DemandCapacity `yaml:"splitting,omitempty" json:"splitting,omitempty"`
	ConfinementViolated bool            `yaml:"confinement_violated" json:"confinement_violated"`
}

// Passed reports whether every stirrup check passed.
func (a StirrupCheckArtifact) Passed() bool {
	for _, p := range a.Points {
		if !p.Passed {
			return false
		}
	}
	if a.Splitting != nil && !a.Splitting.Satisfied() {
		return false
	}
	return !a.ConfinementViolated
}

// DimensionCheck compares a section dimension with its minimum.
type DimensionCheck struct {
	Name    string  `yaml:"name" json:"name"`
	Value   float64 `yaml:"value" json:"value"`
	Minimum float64 `yaml:"minimum" json:"minimum"`
}

// PrecastIGirderDetailingArtifact checks minimum flange and web dimensions.
type PrecastIGirderDetailingArtifact struct {
	Dimensions []DimensionCheck `yaml:"dimensions" json:"dimensions"`
}

// Passed reports whether every dimension meets its minimum.
func (a PrecastIGirderDetailingArtifact) Passed() bool {
	for _, d := range a.Dimensions {
		if d.Value < d.Minimum {
			return false
		}
	}
	return true
}

// SegmentStabilityArtifact checks global stability of the segment on its
// bearings.
type SegmentStabilityArtifact struct {
	Applicable bool    `yaml:"applicable" json:"applicable"`
	Incline    float64 `yaml:"incline" json:"incline"`
	MaxIncline float64 `yaml:"max_incline" json:"max_incline"`
}

// Passed reports whether the segment orientation is within the stability limit.
func (a SegmentStabilityArtifact) Passed() bool {
	return !a.Applicable || a.Incline <= a.MaxIncline
}

// DebondArtifact checks debonding limits for one strand type: fractions of
// debonded strands in the section and per row, and debond length limits.
type DebondArtifact struct {
	Limits []DemandCapacity `yaml:"limits" json:"limits"`
}

// Passed reports whether every debonding limit is satisfied.
func (a DebondArtifact) Passed() bool { return allSatisfied(a.Limits) }

// TendonStressArtifact checks one duct's tendon stresses at jacking, at
// anchorages after seating and elsewhere after seating.
type TendonStressArtifact struct {
	AtJacking               DemandCapacity `yaml:"at_jacking" json:"at_jacking"`
	AtAnchorageAfterSeating DemandCapacity `yaml:"at_anchorage" json:"at_anchorage"`
	ElsewhereAfterSeating   DemandCapacity `yaml:"elsewhere" json:"elsewhere"`
}

// Passed reports whether every tendon stress is within its limit.
func (a TendonStressArtifact) Passed() bool {
	return a.AtJacking.Satisfied() && a.AtAnchorageAfterSeating.Satisfied() && a.ElsewhereAfterSeating.Satisfied()
}

// DuctSizeArtifact checks one duct's area ratio and size relative to the web.
type DuctSizeArtifact struct {
	AreaRatio    float64 `yaml:"area_ratio" json:"area_ratio"`
	MinAreaRatio float64 `yaml:"min_area_ratio" json:"min_area_ratio"`
	SizeRatio    float64 `yaml:"size_ratio" json:"size_ratio"`
	MaxSizeRatio float64 `yaml:"max_size_ratio" json:"max_size_ratio"`
}

// Passed reports whether the duct is large enough for its tendon and small
// enough for the web.
func (a DuctSizeArtifact) Passed() bool {
	return a.MinAreaRatio <= a.AreaRatio && a.SizeRatio <= a.MaxSizeRatio
}
