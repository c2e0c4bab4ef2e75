package segment

import (
	"fmt"

	"github.com/harrison/segcheck/internal/models"
)

// Scope partitions points of interest by closure joint membership.
type Scope int

const (
	// ScopeSegment selects points outside closure joints.
	ScopeSegment Scope = iota
	// ScopeClosureJoint selects points inside closure joints.
	ScopeClosureJoint
)

func (s Scope) String() string {
	switch s {
	case ScopeSegment:
		return "segment"
	case ScopeClosureJoint:
		return "closure joint"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// rebarFlag reads one with-rebar flag from an artifact.
type rebarFlag func(models.FlexuralStressArtifact, models.StressLocation) bool

var (
	rebarUsed       rebarFlag = models.FlexuralStressArtifact.WasWithRebarAllowableStressUsed
	rebarApplicable rebarFlag = models.FlexuralStressArtifact.IsWithRebarAllowableStressApplicable
)

func requireTension(task models.StressCheckTask) error {
	if task.StressType != models.Tension {
		return fmt.Errorf("%w: with-rebar allowable stress queried for %s", ErrInvalidArgument, task)
	}
	return nil
}

// anyRebar reports whether flag holds at any of locs for a point accepted by keep.
func (a *Artifact) anyRebar(task models.StressCheckTask, keep func(models.FlexuralStressArtifact) bool, flag rebarFlag, locs ...models.StressLocation) (bool, error) {
	if err := requireTension(task); err != nil {
		return false, err
	}
	for _, fsa := range a.flexural.query(task) {
		if !keep(fsa) {
			continue
		}
		for _, loc := range locs {
			if flag(fsa, loc) {
				return true, nil
			}
		}
	}
	return false, nil
}

func (a *Artifact) inScope(scope Scope) (func(models.FlexuralStressArtifact) bool, error) {
	switch scope {
	case ScopeSegment:
		return func(fsa models.FlexuralStressArtifact) bool { return !a.isInClosureJoint(fsa.Poi) }, nil
	case ScopeClosureJoint:
		return func(fsa models.FlexuralStressArtifact) bool { return a.isInClosureJoint(fsa.Poi) }, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, scope)
	}
}

func everyPoi(models.FlexuralStressArtifact) bool { return true }

// ptzMatch checks flag only at fibers whose precompressed tensile zone
// classification equals inPTZ.
func ptzMatch(flag rebarFlag, inPTZ bool) rebarFlag {
	return func(fsa models.FlexuralStressArtifact, loc models.StressLocation) bool {
		return fsa.IsInPrecompressedTensileZone(loc) == inPTZ && flag(fsa, loc)
	}
}

// WasWithRebarAllowableStressUsed reports whether the with-rebar tensile limit
// governed at loc for any point in scope.
func (a *Artifact) WasWithRebarAllowableStressUsed(task models.StressCheckTask, loc models.StressLocation, scope Scope) (bool, error) {
	keep, err := a.inScope(scope)
	if err != nil {
		return false, err
	}
	return a.anyRebar(task, keep, rebarUsed, loc)
}

// IsWithRebarAllowableStressApplicable reports whether the with-rebar tensile
// limit applies at loc for any point in scope.
func (a *Artifact) IsWithRebarAllowableStressApplicable(task models.StressCheckTask, loc models.StressLocation, scope Scope) (bool, error) {
	keep, err := a.inScope(scope)
	if err != nil {
		return false, err
	}
	return a.anyRebar(task, keep, rebarApplicable, loc)
}

// WasSegmentWithRebarAllowableStressUsed checks the girder fibers of points
// outside closure joints.
func (a *Artifact) WasSegmentWithRebarAllowableStressUsed(task models.StressCheckTask) (bool, error) {
	keep, _ := a.inScope(ScopeSegment)
	return a.anyRebar(task, keep, rebarUsed, models.GirderLocations...)
}

// IsSegmentWithRebarAllowableStressApplicable checks the girder fibers of
// points outside closure joints.
func (a *Artifact) IsSegmentWithRebarAllowableStressApplicable(task models.StressCheckTask) (bool, error) {
	keep, _ := a.inScope(ScopeSegment)
	return a.anyRebar(task, keep, rebarApplicable, models.GirderLocations...)
}

// WasClosureJointWithRebarAllowableStressUsed checks the girder fibers of
// closure joint points whose precompressed tensile zone status is inPTZ.
func (a *Artifact) WasClosureJointWithRebarAllowableStressUsed(task models.StressCheckTask, inPTZ bool) (bool, error) {
	keep, _ := a.inScope(ScopeClosureJoint)
	return a.anyRebar(task, keep, ptzMatch(rebarUsed, inPTZ), models.GirderLocations...)
}

// IsClosureJointWithRebarAllowableStressApplicable checks the girder fibers of
// closure joint points whose precompressed tensile zone status is inPTZ.
func (a *Artifact) IsClosureJointWithRebarAllowableStressApplicable(task models.StressCheckTask, inPTZ bool) (bool, error) {
	keep, _ := a.inScope(ScopeClosureJoint)
	return a.anyRebar(task, keep, ptzMatch(rebarApplicable, inPTZ), models.GirderLocations...)
}

// WasDeckWithRebarAllowableStressUsed checks the deck fibers of every point.
func (a *Artifact) WasDeckWithRebarAllowableStressUsed(task models.StressCheckTask) (bool, error) {
	return a.anyRebar(task, everyPoi, rebarUsed, models.DeckLocations...)
}

// IsDeckWithRebarAllowableStressApplicable checks the deck fibers of every point.
func (a *Artifact) IsDeckWithRebarAllowableStressApplicable(task models.StressCheckTask) (bool, error) {
	return a.anyRebar(task, everyPoi, rebarApplicable, models.DeckLocations...)
}
