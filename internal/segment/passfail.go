package segment

import "github.com/harrison/segcheck/internal/models"

// outcome is one constituent of the segment rollup.
type outcome struct {
	check     Check
	evaluated bool
	passed    func() bool
}

// constituents lists the rollup in evaluation order.
func (a *Artifact) constituents() []outcome {
	lifting, hasLifting := a.lifting.Get()
	hauling, hasHauling := a.hauling.Get()

	return []outcome{
		{CheckStability, true, a.stability.Passed},
		{CheckHoldDownForce, true, a.holdDown.Passed},
		{CheckPlantHandling, true, a.plantHandling.Passed},
		{CheckStrandSlope, true, a.strandSlope.Passed},
		{CheckStrandStress, true, a.strandStress.Passed},
		{CheckFlexuralStress, true, a.DidFlexuralStressPass},
		{CheckStirrups, true, a.stirrups.Passed},
		{CheckDetailing, true, a.detailing.Passed},
		{CheckLifting, hasLifting, func() bool { return lifting.Passed() }},
		{CheckHauling, hasHauling, func() bool {
			return hauling.Passed(models.CrownSlope) && hauling.Passed(models.Superelevation)
		}},
		{CheckDebond, true, a.debondPassed},
		{CheckTendonStress, true, a.tendonsPassed},
		{CheckDuctSize, true, a.ductsPassed},
	}
}

// Passed reports whether every evaluated check passed. Lifting and hauling
// are evaluated only when an analysis is referenced.
func (a *Artifact) Passed() bool {
	for _, c := range a.constituents() {
		if c.evaluated && !c.passed() {
			return false
		}
	}
	return true
}

// DidFlexuralStressPass reports whether every flexural stress artifact passed
// at both girder and deck fibers.
func (a *Artifact) DidFlexuralStressPass() bool {
	return a.DidSegmentFlexuralStressesPass() && a.DidDeckFlexuralStressesPass()
}

// DidSegmentFlexuralStressesPass considers girder fibers only.
func (a *Artifact) DidSegmentFlexuralStressesPass() bool {
	return a.flexural.all(models.FlexuralStressArtifact.BeamPassed)
}

// DidDeckFlexuralStressesPass considers deck fibers only.
func (a *Artifact) DidDeckFlexuralStressesPass() bool {
	return a.flexural.all(models.FlexuralStressArtifact.DeckPassed)
}

func (a *Artifact) debondPassed() bool {
	for _, d := range a.debond {
		if !d.Passed() {
			return false
		}
	}
	return true
}

func (a *Artifact) tendonsPassed() bool {
	for _, t := range a.tendons {
		if !t.Passed() {
			return false
		}
	}
	return true
}

func (a *Artifact) ductsPassed() bool {
	for _, d := range a.ducts {
		if !d.Passed() {
			return false
		}
	}
	return true
}
