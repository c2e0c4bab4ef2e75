package segment

import (
	"fmt"
	"maps"

	"github.com/harrison/segcheck/internal/models"
)

// Check names one constituent of the segment pass/fail rollup.
type Check string

const (
	CheckStability      Check = "segment stability"
	CheckHoldDownForce  Check = "hold-down force"
	CheckPlantHandling  Check = "plant handling weight"
	CheckStrandSlope    Check = "strand slope"
	CheckStrandStress   Check = "strand stress"
	CheckFlexuralStress Check = "flexural stress"
	CheckStirrups       Check = "stirrups"
	CheckDetailing      Check = "precast girder detailing"
	CheckLifting        Check = "lifting"
	CheckHauling        Check = "hauling"
	CheckDebond         Check = "debonding"
	CheckTendonStress   Check = "tendon stress"
	CheckDuctSize       Check = "duct size"
)

// Builder collects check results for one segment. Each single-valued check
// may be written once; flexural stress artifacts and per-duct results
// accumulate. Build consumes the Builder.
type Builder struct {
	a       *Artifact
	filled  map[Check]bool
	debonds [models.StrandTypeCount]bool
	tendons map[models.DuctIndex]*models.TendonStressArtifact
	ducts   map[models.DuctIndex]*models.DuctSizeArtifact
}

// NewBuilder starts the fill phase for the segment identified by key.
func NewBuilder(key models.SegmentKey) *Builder {
	return &Builder{
		a:       newArtifact(key),
		filled:  make(map[Check]bool),
		tendons: make(map[models.DuctIndex]*models.TendonStressArtifact),
		ducts:   make(map[models.DuctIndex]*models.DuctSizeArtifact),
	}
}

// Key returns the segment being filled.
func (b *Builder) Key() models.SegmentKey {
	if b.a == nil {
		return models.SegmentKey{}
	}
	return b.a.key
}

// claim marks check as written, failing if it already was.
func (b *Builder) claim(check Check) error {
	if b.a == nil {
		return ErrBuilt
	}
	if b.filled[check] {
		return fmt.Errorf("%w: %s for %s", ErrAlreadySet, check, b.a.key)
	}
	b.filled[check] = true
	return nil
}

// SetStrandStress records the strand stress check.
func (b *Builder) SetStrandStress(a models.StrandStressArtifact) error {
	if err := b.claim(CheckStrandStress); err != nil {
		return err
	}
	b.a.strandStress = a
	return nil
}

// SetStrandSlope records the strand slope check.
func (b *Builder) SetStrandSlope(a models.StrandSlopeArtifact) error {
	if err := b.claim(CheckStrandSlope); err != nil {
		return err
	}
	b.a.strandSlope = a
	return nil
}

// SetHoldDownForce records the hold-down force check.
func (b *Builder) SetHoldDownForce(a models.HoldDownForceArtifact) error {
	if err := b.claim(CheckHoldDownForce); err != nil {
		return err
	}
	b.a.holdDown = a
	return nil
}

// SetPlantHandlingWeight records the plant handling weight check.
func (b *Builder) SetPlantHandlingWeight(a models.PlantHandlingWeightArtifact) error {
	if err := b.claim(CheckPlantHandling); err != nil {
		return err
	}
	b.a.plantHandling = a
	return nil
}

// SetStirrupCheck records the stirrup check.
func (b *Builder) SetStirrupCheck(a models.StirrupCheckArtifact) error {
	if err := b.claim(CheckStirrups); err != nil {
		return err
	}
	b.a.stirrups = a
	return nil
}

// SetPrecastIGirderDetailing records the detailing check.
func (b *Builder) SetPrecastIGirderDetailing(a models.PrecastIGirderDetailingArtifact) error {
	if err := b.claim(CheckDetailing); err != nil {
		return err
	}
	b.a.detailing = a
	return nil
}

// SetSegmentStability records the segment stability check.
func (b *Builder) SetSegmentStability(a models.SegmentStabilityArtifact) error {
	if err := b.claim(CheckStability); err != nil {
		return err
	}
	b.a.stability = a
	return nil
}

// SetDebond records the debonding check for one strand type.
func (b *Builder) SetDebond(strand models.StrandType, a models.DebondArtifact) error {
	if b.a == nil {
		return ErrBuilt
	}
	if strand < 0 || int(strand) >= models.StrandTypeCount {
		return fmt.Errorf("%w: strand type %d", ErrInvalidArgument, int(strand))
	}
	if b.debonds[strand] {
		return fmt.Errorf("%w: %s %s for %s", ErrAlreadySet, strand, CheckDebond, b.a.key)
	}
	b.debonds[strand] = true
	b.a.debond[strand] = a
	return nil
}

// SetLifting references the lifting analysis. The analysis is not copied and
// must outlive the built Artifact. A nil check leaves lifting unevaluated.
func (b *Builder) SetLifting(check models.LiftingCheck) error {
	if err := b.claim(CheckLifting); err != nil {
		return err
	}
	b.a.lifting = Borrow(check)
	return nil
}

// SetHauling references the hauling analysis. The analysis is not copied and
// must outlive the built Artifact. A nil analysis leaves hauling unevaluated.
func (b *Builder) SetHauling(analysis models.HaulingAnalysis) error {
	if err := b.claim(CheckHauling); err != nil {
		return err
	}
	b.a.hauling = Borrow(analysis)
	return nil
}

// AddFlexuralStress stores a under its task. The point of interest must have a
// valid ID. Adding the same point and task twice keeps both entries.
func (b *Builder) AddFlexuralStress(a models.FlexuralStressArtifact) error {
	if b.a == nil {
		return ErrBuilt
	}
	return b.a.flexural.insert(a)
}

// FlexuralStress returns the idx-th artifact of task for in-place updates, or
// nil when idx is out of range. Callers must not change the point of interest.
// Writes through the pointer after Build do not reach the built Artifact.
func (b *Builder) FlexuralStress(task models.StressCheckTask, idx int) *models.FlexuralStressArtifact {
	if b.a == nil {
		return nil
	}
	return b.a.flexural.at(task, idx)
}

// SetCapacityWithRebar records the with-rebar allowable tensile stress for a
// tension task at one location.
func (b *Builder) SetCapacityWithRebar(interval models.IntervalIndex, ls models.LimitState, loc models.StressLocation, fAllow float64) error {
	if b.a == nil {
		return ErrBuilt
	}
	b.a.capacityWithRebar[rebarKey{task: models.NewStressCheckTask(interval, ls, models.Tension), loc: loc}] = fAllow
	return nil
}

// TendonStress returns the tendon stress artifact for duct, creating an empty
// one on first use. It returns nil once the Builder is built.
func (b *Builder) TendonStress(duct models.DuctIndex) *models.TendonStressArtifact {
	if b.a == nil {
		return nil
	}
	a, ok := b.tendons[duct]
	if !ok {
		a = &models.TendonStressArtifact{}
		b.tendons[duct] = a
	}
	return a
}

// SetTendonStress replaces the tendon stress artifact for duct.
func (b *Builder) SetTendonStress(duct models.DuctIndex, a models.TendonStressArtifact) error {
	if b.a == nil {
		return ErrBuilt
	}
	*b.TendonStress(duct) = a
	return nil
}

// DuctSize returns the duct size artifact for duct, creating an empty one on
// first use. It returns nil once the Builder is built.
func (b *Builder) DuctSize(duct models.DuctIndex) *models.DuctSizeArtifact {
	if b.a == nil {
		return nil
	}
	a, ok := b.ducts[duct]
	if !ok {
		a = &models.DuctSizeArtifact{}
		b.ducts[duct] = a
	}
	return a
}

// SetDuctSize replaces the duct size artifact for duct.
func (b *Builder) SetDuctSize(duct models.DuctIndex, a models.DuctSizeArtifact) error {
	if b.a == nil {
		return ErrBuilt
	}
	*b.DuctSize(duct) = a
	return nil
}

// Build ends the fill phase. The returned Artifact answers queries through
// svc. Checks that were never written keep their zero value, which passes.
func (b *Builder) Build(svc Services) (*Artifact, error) {
	if b.a == nil {
		return nil, ErrBuilt
	}
	if err := svc.validate(); err != nil {
		return nil, fmt.Errorf("build %s: %w", b.a.key, err)
	}

	a := b.a
	a.svc = svc
	a.flexural = a.flexural.clone()
	for duct, t := range b.tendons {
		a.tendons[duct] = *t
	}
	for duct, d := range b.ducts {
		a.ducts[duct] = *d
	}

	b.a = nil
	b.tendons = nil
	b.ducts = nil
	return a, nil
}

// Filled returns the single-valued checks written so far.
func (b *Builder) Filled() map[Check]bool {
	return maps.Clone(b.filled)
}
