package segment

import "github.com/harrison/segcheck/internal/models"

// CheckOutcome is the result of one rollup constituent.
type CheckOutcome struct {
	Check     Check
	Evaluated bool
	Passed    bool
}

// Summary is a flattened view of an Artifact for reporting and persistence.
type Summary struct {
	Key    models.SegmentKey
	Passed bool
	Checks []CheckOutcome

	SegmentFlexurePassed bool
	DeckFlexurePassed    bool

	ReleaseStrength      models.RequiredStrength
	SegmentStrength      models.RequiredStrength
	ClosureJointStrength models.RequiredStrength
	DeckStrength         models.RequiredStrength

	FlexuralTasks  int
	FlexuralPoints int
	HasLifting     bool
	HasHauling     bool
}

// Summarize evaluates every rollup and resolver once.
func (a *Artifact) Summarize() Summary {
	s := Summary{
		Key:                  a.key,
		Passed:               true,
		SegmentFlexurePassed: a.DidSegmentFlexuralStressesPass(),
		DeckFlexurePassed:    a.DidDeckFlexuralStressesPass(),
		ReleaseStrength:      a.RequiredReleaseStrength(),
		SegmentStrength:      a.RequiredSegmentConcreteStrength(),
		ClosureJointStrength: a.RequiredClosureJointConcreteStrength(),
		DeckStrength:         a.RequiredDeckConcreteStrength(),
		FlexuralTasks:        len(a.flexural.buckets),
		FlexuralPoints:       a.flexural.count(),
		HasLifting:           a.lifting.Present(),
		HasHauling:           a.hauling.Present(),
	}
	for _, c := range a.constituents() {
		out := CheckOutcome{Check: c.check, Evaluated: c.evaluated, Passed: true}
		if c.evaluated {
			out.Passed = c.passed()
		}
		if !out.Passed {
			s.Passed = false
		}
		s.Checks = append(s.Checks, out)
	}
	return s
}

// FailedChecks returns the evaluated checks that failed, in rollup order.
func (s Summary) FailedChecks() []Check {
	var failed []Check
	for _, c := range s.Checks {
		if c.Evaluated && !c.Passed {
			failed = append(failed, c.Check)
		}
	}
	return failed
}
