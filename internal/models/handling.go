package models

// HandlingStrength holds the concrete strengths a handling analysis requires
// for compression, tension without supplemental reinforcement and tension with
// supplemental reinforcement.
type HandlingStrength struct {
	Compression      RequiredStrength
	Tension          RequiredStrength
	TensionWithRebar RequiredStrength
}

// LiftingCheck is the result of a segment lifting analysis. Lifting results
// are owned by the stability analysis and referenced by segment artifacts.
type LiftingCheck interface {
	// Passed reports whether the segment can be lifted.
	Passed() bool
	// RequiredFcCompression is the strength the compressive stress limit needs.
	RequiredFcCompression() RequiredStrength
	// RequiredFcTension is the strength the tensile limit without
	// supplemental reinforcement needs.
	RequiredFcTension() RequiredStrength
	// RequiredFcTensionWithRebar is the strength the tensile limit with
	// supplemental reinforcement needs.
	RequiredFcTensionWithRebar() RequiredStrength
}

// HaulingAnalysis is the result of a segment hauling analysis, evaluated
// separately for a crowned roadway and for maximum superelevation.
type HaulingAnalysis interface {
	// Passed reports whether the segment can be hauled on slope.
	Passed(slope HaulingSlope) bool
	// RequiredConcreteStrength returns the strengths hauling on slope needs.
	RequiredConcreteStrength(slope HaulingSlope) HandlingStrength
}

// LiftingResult is a LiftingCheck backed by stored analysis output.
type LiftingResult struct {
	Pass     bool
	Strength HandlingStrength
}

// Passed reports the stored lifting outcome.
func (r *LiftingResult) Passed() bool { return r.Pass }

// RequiredFcCompression returns the stored compression requirement.
func (r *LiftingResult) RequiredFcCompression() RequiredStrength { return r.Strength.Compression }

// RequiredFcTension returns the stored tension requirement without rebar.
func (r *LiftingResult) RequiredFcTension() RequiredStrength { return r.Strength.Tension }

// RequiredFcTensionWithRebar returns the stored tension requirement with rebar.
func (r *LiftingResult) RequiredFcTensionWithRebar() RequiredStrength {
	return r.Strength.TensionWithRebar
}

// HaulingCase is the outcome of a hauling analysis for one roadway slope.
type HaulingCase struct {
	Pass     bool
	Strength HandlingStrength
}

// HaulingResult is a HaulingAnalysis backed by stored analysis output.
type HaulingResult struct {
	CrownSlope     HaulingCase
	Superelevation HaulingCase
}

// slopeCase returns the case for slope. An unknown slope yields a failing
// case with no strength requirement.
func (r *HaulingResult) slopeCase(slope HaulingSlope) HaulingCase {
	switch slope {
	case CrownSlope:
		return r.CrownSlope
	case Superelevation:
		return r.Superelevation
	default:
		return HaulingCase{}
	}
}

// Passed reports whether the segment can be hauled on the given slope.
func (r *HaulingResult) Passed(slope HaulingSlope) bool {
	return r.slopeCase(slope).Pass
}

// RequiredConcreteStrength returns the strengths required for the given slope.
func (r *HaulingResult) RequiredConcreteStrength(slope HaulingSlope) HandlingStrength {
	return r.slopeCase(slope).Strength
}
