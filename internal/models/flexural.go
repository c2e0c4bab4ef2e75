package models

import (
	"cmp"
	"fmt"
)

// StressCheckTask identifies one flexural stress check scenario.
// Tasks are comparable and used as map keys.
type StressCheckTask struct {
	Interval   IntervalIndex
	LimitState LimitState
	StressType StressType
}

// NewStressCheckTask builds a task.
func NewStressCheckTask(interval IntervalIndex, ls LimitState, st StressType) StressCheckTask {
	return StressCheckTask{Interval: interval, LimitState: ls, StressType: st}
}

// Compare orders tasks by interval, limit state and stress type.
func (t StressCheckTask) Compare(other StressCheckTask) int {
	if c := cmp.Compare(t.Interval, other.Interval); c != 0 {
		return c
	}
	if c := cmp.Compare(t.LimitState, other.LimitState); c != 0 {
		return c
	}
	return cmp.Compare(t.StressType, other.StressType)
}

// Matches reports whether the task belongs to the given interval and limit state.
func (t StressCheckTask) Matches(interval IntervalIndex, ls LimitState) bool {
	return t.Interval == interval && t.LimitState == ls
}

func (t StressCheckTask) String() string {
	return fmt.Sprintf("interval %d %s %s", t.Interval, t.LimitState, t.StressType)
}

// StressLocationResult is the outcome of a flexural stress check at one fiber.
type StressLocationResult struct {
	Applicable bool `yaml:"applicable" json:"applicable"`
	Pass       bool `yaml:"passed" json:"passed"`

	// Demand and Allowable are carried for reporting only.
	Demand    float64 `yaml:"demand" json:"demand"`
	Allowable float64 `yaml:"allowable" json:"allowable"`

	WithRebarApplicable bool `yaml:"rebar_applicable" json:"rebar_applicable"`
	WithRebarUsed       bool `yaml:"rebar_used" json:"rebar_used"`
	InPTZ               bool `yaml:"in_ptz" json:"in_ptz"`

	RequiredStrength RequiredStrength `yaml:"-" json:"-"`
}

// FlexuralStressArtifact is the result of one stress check task at one point
// of interest.
type FlexuralStressArtifact struct {
	Poi       PointOfInterest
	Task      StressCheckTask
	Locations [StressLocationCount]StressLocationResult
}

// NewFlexuralStressArtifact returns an artifact with every location inapplicable.
func NewFlexuralStressArtifact(poi PointOfInterest, task StressCheckTask) FlexuralStressArtifact {
	return FlexuralStressArtifact{Poi: poi, Task: task}
}

// Compare orders artifacts by point of interest.
func (a FlexuralStressArtifact) Compare(other FlexuralStressArtifact) int {
	return a.Poi.Compare(other.Poi)
}

// SetLocation records the result at loc.
func (a *FlexuralStressArtifact) SetLocation(loc StressLocation, res StressLocationResult) {
	a.Locations[loc] = res
}

// Location returns the result at loc.
func (a FlexuralStressArtifact) Location(loc StressLocation) StressLocationResult {
	return a.Locations[loc]
}

// IsApplicable reports whether the check applies at loc.
func (a FlexuralStressArtifact) IsApplicable(loc StressLocation) bool {
	return a.Locations[loc].Applicable
}

// Passed reports whether loc passed. Inapplicable locations pass.
func (a FlexuralStressArtifact) Passed(loc StressLocation) bool {
	r := a.Locations[loc]
	return !r.Applicable || r.Pass
}

// BeamPassed reports whether both girder fibers passed.
func (a FlexuralStressArtifact) BeamPassed() bool {
	return a.Passed(TopGirder) && a.Passed(BottomGirder)
}

// DeckPassed reports whether both deck fibers passed.
func (a FlexuralStressArtifact) DeckPassed() bool {
	return a.Passed(TopDeck) && a.Passed(BottomDeck)
}

// RequiredConcreteStrength returns the strength required at loc.
func (a FlexuralStressArtifact) RequiredConcreteStrength(loc StressLocation) RequiredStrength {
	return a.Locations[loc].RequiredStrength
}

// RequiredBeamConcreteStrength combines the applicable girder fibers: an
// infeasible fiber makes the beam infeasible, otherwise the larger requirement
// governs.
func (a FlexuralStressArtifact) RequiredBeamConcreteStrength() RequiredStrength {
	var reqd RequiredStrength
	for _, loc := range GirderLocations {
		if !a.IsApplicable(loc) {
			continue
		}
		fc := a.RequiredConcreteStrength(loc)
		switch fc.Kind() {
		case Infeasible:
			return fc
		case Required:
			if v, _ := fc.Value(); v > reqd.Sentinel() {
				reqd = fc
			}
		}
	}
	return reqd
}

// WasWithRebarAllowableStressUsed reports whether the with-rebar tensile limit governed at loc.
func (a FlexuralStressArtifact) WasWithRebarAllowableStressUsed(loc StressLocation) bool {
	return a.Locations[loc].WithRebarUsed
}

// IsWithRebarAllowableStressApplicable reports whether the with-rebar tensile limit applies at loc.
func (a FlexuralStressArtifact) IsWithRebarAllowableStressApplicable(loc StressLocation) bool {
	return a.Locations[loc].WithRebarApplicable
}

// IsInPrecompressedTensileZone reports whether loc lies in the precompressed tensile zone.
func (a FlexuralStressArtifact) IsInPrecompressedTensileZone(loc StressLocation) bool {
	return a.Locations[loc].InPTZ
}
