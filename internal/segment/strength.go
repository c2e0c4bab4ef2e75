package segment

import "github.com/harrison/segcheck/internal/models"

// fcMax accumulates the governing requirement. Once an infeasible value is
// seen it sticks and further values are ignored.
type fcMax struct {
	reqd models.RequiredStrength
}

// add folds fc in and reports whether aggregation may continue.
func (m *fcMax) add(fc models.RequiredStrength) bool {
	if m.reqd.IsInfeasible() {
		return false
	}
	switch fc.Kind() {
	case models.Infeasible:
		m.reqd = fc
		return false
	case models.Required:
		if v, _ := fc.Value(); v > m.reqd.Sentinel() {
			m.reqd = fc
		}
	}
	return true
}

// strengthScope selects the artifacts and fibers a resolver aggregates.
type strengthScope struct {
	task      func(models.StressCheckTask) bool
	poi       func(models.StressCheckTask, models.PointOfInterest) bool
	locations []models.StressLocation
}

func (a *Artifact) governingStrength(acc *fcMax, scope strengthScope) bool {
	for _, task := range a.flexural.tasks() {
		if !scope.task(task) {
			continue
		}
		for _, fsa := range a.flexural.query(task) {
			if !scope.poi(task, fsa.Poi) {
				continue
			}
			for _, loc := range scope.locations {
				if !fsa.IsApplicable(loc) {
					continue
				}
				if !acc.add(fsa.RequiredConcreteStrength(loc)) {
					return false
				}
			}
		}
	}
	return true
}

func matching(interval models.IntervalIndex, ls models.LimitState) func(models.StressCheckTask) bool {
	return func(t models.StressCheckTask) bool { return t.Matches(interval, ls) }
}

func (a *Artifact) outsideClosure(_ models.StressCheckTask, poi models.PointOfInterest) bool {
	return !a.isInClosureJoint(poi)
}

func (a *Artifact) insideClosure(_ models.StressCheckTask, poi models.PointOfInterest) bool {
	return a.isInClosureJoint(poi)
}

func anyPoi(models.StressCheckTask, models.PointOfInterest) bool { return true }

func (a *Artifact) resolve(scope strengthScope) models.RequiredStrength {
	var acc fcMax
	a.governingStrength(&acc, scope)
	return acc.reqd
}

// RequiredSegmentConcreteStrengthAt returns the concrete strength the girder
// fibers outside closure joints require for (interval, ls).
func (a *Artifact) RequiredSegmentConcreteStrengthAt(interval models.IntervalIndex, ls models.LimitState) models.RequiredStrength {
	return a.resolve(strengthScope{
		task:      matching(interval, ls),
		poi:       a.outsideClosure,
		locations: models.GirderLocations,
	})
}

// RequiredClosureJointConcreteStrengthAt returns the concrete strength the
// girder fibers inside closure joints require for (interval, ls).
func (a *Artifact) RequiredClosureJointConcreteStrengthAt(interval models.IntervalIndex, ls models.LimitState) models.RequiredStrength {
	return a.resolve(strengthScope{
		task:      matching(interval, ls),
		poi:       a.insideClosure,
		locations: models.GirderLocations,
	})
}

// RequiredDeckConcreteStrengthAt returns the concrete strength the deck fibers
// require for (interval, ls).
func (a *Artifact) RequiredDeckConcreteStrengthAt(interval models.IntervalIndex, ls models.LimitState) models.RequiredStrength {
	return a.resolve(strengthScope{
		task:      matching(interval, ls),
		poi:       anyPoi,
		locations: models.DeckLocations,
	})
}

func (a *Artifact) haulInterval() models.IntervalIndex {
	return a.svc.Intervals.HaulSegmentInterval(a.key)
}

// RequiredSegmentConcreteStrength returns the final segment concrete strength:
// every task from hauling onwards plus the hauling analysis, when referenced.
// The hauling contribution is the largest of four values: compression and
// tension with rebar, each for the crown slope and the superelevation case.
// Tension without rebar is not folded in.
func (a *Artifact) RequiredSegmentConcreteStrength() models.RequiredStrength {
	haul := a.haulInterval()
	var acc fcMax
	ok := a.governingStrength(&acc, strengthScope{
		task:      func(t models.StressCheckTask) bool { return haul <= t.Interval },
		poi:       a.outsideClosure,
		locations: models.GirderLocations,
	})
	if !ok {
		return acc.reqd
	}

	if hauling, present := a.hauling.Get(); present {
		crown := hauling.RequiredConcreteStrength(models.CrownSlope)
		super := hauling.RequiredConcreteStrength(models.Superelevation)
		fc := models.MaxBySentinel(
			crown.Compression, crown.TensionWithRebar,
			super.Compression, super.TensionWithRebar,
		)
		acc.add(fc)
	}
	return acc.reqd
}

// RequiredClosureJointConcreteStrength returns the final closure joint
// concrete strength over every task from hauling onwards.
func (a *Artifact) RequiredClosureJointConcreteStrength() models.RequiredStrength {
	haul := a.haulInterval()
	return a.resolve(strengthScope{
		task:      func(t models.StressCheckTask) bool { return haul <= t.Interval },
		poi:       a.insideClosure,
		locations: models.GirderLocations,
	})
}

// RequiredDeckConcreteStrength returns the final deck concrete strength. Each
// point counts only for tasks at or after the interval its deck casting
// region becomes composite; points without a region are skipped.
func (a *Artifact) RequiredDeckConcreteStrength() models.RequiredStrength {
	composite := make(map[models.RegionID]models.IntervalIndex)
	return a.resolve(strengthScope{
		task: func(models.StressCheckTask) bool { return true },
		poi: func(t models.StressCheckTask, poi models.PointOfInterest) bool {
			region := a.svc.DeckRegions.DeckCastingRegion(poi)
			if region == models.InvalidRegion {
				return false
			}
			interval, ok := composite[region]
			if !ok {
				interval = a.svc.Intervals.CompositeDeckInterval(region)
				composite[region] = interval
			}
			return interval <= t.Interval
		},
		locations: models.DeckLocations,
	})
}

// RequiredReleaseStrength returns the concrete strength required before the
// segment is hauled, including the lifting analysis when referenced.
//
// The lifting requirement is combined by plain maximum of the signed
// encoding. An infeasible lifting requirement therefore does not override a
// feasible flexural requirement here, unlike hauling in
// RequiredSegmentConcreteStrength.
func (a *Artifact) RequiredReleaseStrength() models.RequiredStrength {
	haul := a.haulInterval()
	var acc fcMax
	for _, task := range a.flexural.tasks() {
		if haul <= task.Interval {
			continue
		}
		for _, fsa := range a.flexural.query(task) {
			if !acc.add(fsa.RequiredBeamConcreteStrength()) {
				return acc.reqd
			}
		}
	}

	reqd := acc.reqd
	if lifting, present := a.lifting.Get(); present {
		fc := models.MaxBySentinel(
			lifting.RequiredFcCompression(),
			lifting.RequiredFcTension(),
			lifting.RequiredFcTensionWithRebar(),
		)
		reqd = models.MaxBySentinel(reqd, fc)
	}
	return reqd
}
