package segment

import (
	"maps"
	"slices"

	"github.com/harrison/segcheck/internal/models"
)

type rebarKey struct {
	task models.StressCheckTask
	loc  models.StressLocation
}

// Artifact is the filled, read-only check record for one segment. It is
// produced by Builder.Build and is safe for concurrent queries.
type Artifact struct {
	key models.SegmentKey
	svc Services

	strandStress  models.StrandStressArtifact
	strandSlope   models.StrandSlopeArtifact
	holdDown      models.HoldDownForceArtifact
	plantHandling models.PlantHandlingWeightArtifact
	stirrups      models.StirrupCheckArtifact
	detailing     models.PrecastIGirderDetailingArtifact
	stability     models.SegmentStabilityArtifact
	debond        [models.StrandTypeCount]models.DebondArtifact

	flexural flexuralStore
	tendons  map[models.DuctIndex]models.TendonStressArtifact
	ducts    map[models.DuctIndex]models.DuctSizeArtifact

	capacityWithRebar map[rebarKey]float64

	lifting Ref[models.LiftingCheck]
	hauling Ref[models.HaulingAnalysis]
}

func newArtifact(key models.SegmentKey) *Artifact {
	return &Artifact{
		key:               key,
		flexural:          newFlexuralStore(),
		tendons:           make(map[models.DuctIndex]models.TendonStressArtifact),
		ducts:             make(map[models.DuctIndex]models.DuctSizeArtifact),
		capacityWithRebar: make(map[rebarKey]float64),
	}
}

// Key returns the segment identity.
func (a *Artifact) Key() models.SegmentKey { return a.key }

// Less orders artifacts by segment key.
func (a *Artifact) Less(other *Artifact) bool { return a.key.Less(other.key) }

// StrandStress returns the strand stress check.
func (a *Artifact) StrandStress() models.StrandStressArtifact { return a.strandStress }

// StrandSlope returns the strand slope check.
func (a *Artifact) StrandSlope() models.StrandSlopeArtifact { return a.strandSlope }

// HoldDownForce returns the hold-down force check.
func (a *Artifact) HoldDownForce() models.HoldDownForceArtifact { return a.holdDown }

// PlantHandlingWeight returns the plant handling weight check.
func (a *Artifact) PlantHandlingWeight() models.PlantHandlingWeightArtifact {
	return a.plantHandling
}

// StirrupCheck returns the stirrup check.
func (a *Artifact) StirrupCheck() models.StirrupCheckArtifact { return a.stirrups }

// PrecastIGirderDetailing returns the detailing check.
func (a *Artifact) PrecastIGirderDetailing() models.PrecastIGirderDetailingArtifact {
	return a.detailing
}

// SegmentStability returns the segment stability check.
func (a *Artifact) SegmentStability() models.SegmentStabilityArtifact { return a.stability }

// Debond returns the debonding check for strand. Out of range strand types
// yield an empty check.
func (a *Artifact) Debond(strand models.StrandType) models.DebondArtifact {
	if strand < 0 || int(strand) >= models.StrandTypeCount {
		return models.DebondArtifact{}
	}
	return a.debond[strand]
}

// Lifting returns the referenced lifting analysis, if any.
func (a *Artifact) Lifting() (models.LiftingCheck, bool) { return a.lifting.Get() }

// Hauling returns the referenced hauling analysis, if any.
func (a *Artifact) Hauling() (models.HaulingAnalysis, bool) { return a.hauling.Get() }

// FlexuralStressTasks returns every task with stored artifacts, ascending.
func (a *Artifact) FlexuralStressTasks() []models.StressCheckTask {
	return a.flexural.tasks()
}

// FlexuralStressCount returns the number of artifacts stored for task.
func (a *Artifact) FlexuralStressCount(task models.StressCheckTask) int {
	return len(a.flexural.query(task))
}

// FlexuralStress returns the idx-th artifact for task in point of interest
// order. ok is false when idx is out of range.
func (a *Artifact) FlexuralStress(task models.StressCheckTask, idx int) (models.FlexuralStressArtifact, bool) {
	p := a.flexural.at(task, idx)
	if p == nil {
		return models.FlexuralStressArtifact{}, false
	}
	return *p, true
}

// FlexuralStressAtPoi returns the first artifact for task at poiID.
func (a *Artifact) FlexuralStressAtPoi(task models.StressCheckTask, poiID models.PoiID) (models.FlexuralStressArtifact, bool) {
	return a.flexural.atPoi(task, poiID)
}

// FlexuralStresses returns a copy of the artifacts for task in point of
// interest order. An unseen task yields nil.
func (a *Artifact) FlexuralStresses(task models.StressCheckTask) []models.FlexuralStressArtifact {
	return slices.Clone(a.flexural.query(task))
}

// TendonStress returns the tendon stress check for duct.
func (a *Artifact) TendonStress(duct models.DuctIndex) (models.TendonStressArtifact, bool) {
	t, ok := a.tendons[duct]
	return t, ok
}

// TendonStressDucts returns the ducts with a tendon stress check, ascending.
func (a *Artifact) TendonStressDucts() []models.DuctIndex {
	return slices.Sorted(maps.Keys(a.tendons))
}

// DuctSize returns the duct size check for duct.
func (a *Artifact) DuctSize(duct models.DuctIndex) (models.DuctSizeArtifact, bool) {
	d, ok := a.ducts[duct]
	return d, ok
}

// DuctSizeDucts returns the ducts with a duct size check, ascending.
func (a *Artifact) DuctSizeDucts() []models.DuctIndex {
	return slices.Sorted(maps.Keys(a.ducts))
}

// CapacityWithRebar returns the with-rebar allowable tensile stress recorded
// for the tension task at (interval, ls) and loc.
func (a *Artifact) CapacityWithRebar(interval models.IntervalIndex, ls models.LimitState, loc models.StressLocation) (float64, bool) {
	f, ok := a.capacityWithRebar[rebarKey{task: models.NewStressCheckTask(interval, ls, models.Tension), loc: loc}]
	return f, ok
}

// IsFlexuralStressCheckApplicable reports whether any artifact of task is
// applicable at loc.
func (a *Artifact) IsFlexuralStressCheckApplicable(task models.StressCheckTask, loc models.StressLocation) bool {
	for _, fsa := range a.flexural.query(task) {
		if fsa.IsApplicable(loc) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Lifting and hauling references still point at
// the same analyses.
func (a *Artifact) Clone() *Artifact {
	c := *a
	c.flexural = a.flexural.clone()
	c.tendons = maps.Clone(a.tendons)
	c.ducts = maps.Clone(a.ducts)
	c.capacityWithRebar = maps.Clone(a.capacityWithRebar)
	c.strandStress.Checks = slices.Clone(a.strandStress.Checks)
	c.stirrups.Points = slices.Clone(a.stirrups.Points)
	if a.stirrups.Splitting != nil {
		splitting := *a.stirrups.Splitting
		c.stirrups.Splitting = &splitting
	}
	c.detailing.Dimensions = slices.Clone(a.detailing.Dimensions)
	for i := range c.debond {
		c.debond[i].Limits = slices.Clone(a.debond[i].Limits)
	}
	return &c
}

func (a *Artifact) isInClosureJoint(poi models.PointOfInterest) bool {
	_, ok := a.svc.Closures.IsInClosureJoint(poi)
	return ok
}
