package parser

import (
	"fmt"

	"github.com/harrison/segcheck/internal/bridge"
	"github.com/harrison/segcheck/internal/models"
	"github.com/harrison/segcheck/internal/segment"
)

// Project is a built check run. It owns the lifting and hauling analyses its
// segment artifacts refer to, so artifacts must not be used after the
// Project is discarded.
type Project struct {
	Name     string
	FilePath string
	Bridge   *bridge.Model
	Segments []*segment.Artifact

	lifting []*models.LiftingResult
	hauling []*models.HaulingResult
}

// Build constructs the bridge model and one artifact per segment.
func (d *Document) Build() (*Project, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	p := &Project{
		Name:     d.Name,
		FilePath: d.FilePath,
		Bridge:   bridge.New(models.IntervalIndex(d.HaulInterval)),
	}
	for _, r := range d.DeckRegions {
		if err := p.Bridge.SetCompositeInterval(models.RegionID(r.ID), models.IntervalIndex(r.CompositeInterval)); err != nil {
			return nil, err
		}
	}
	for _, s := range d.Segments {
		if err := p.registerSegment(s); err != nil {
			return nil, err
		}
	}
	if err := p.Bridge.Validate(); err != nil {
		return nil, err
	}

	svc := segment.ServicesFrom(p.Bridge)
	for _, s := range d.Segments {
		a, err := p.buildSegment(s, svc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Key(), err)
		}
		p.Segments = append(p.Segments, a)
	}
	return p, nil
}

func (p *Project) registerSegment(s SegmentDoc) error {
	key := s.Key()
	if s.HaulInterval != nil {
		p.Bridge.SetHaulInterval(key, models.IntervalIndex(*s.HaulInterval))
	}
	for _, poi := range s.Pois {
		info := bridge.PoiInfo{Region: models.InvalidRegion}
		if poi.ClosureJoint {
			closure := models.ClosureKey(key)
			info.Closure = &closure
		}
		if poi.DeckRegion != nil {
			info.Region = models.RegionID(*poi.DeckRegion)
		}
		if err := p.Bridge.AddPoi(models.PoiID(poi.ID), info); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func (p *Project) buildSegment(s SegmentDoc, svc segment.Services) (*segment.Artifact, error) {
	key := s.Key()
	b := segment.NewBuilder(key)

	set := []struct {
		present bool
		apply   func() error
	}{
		{s.StrandStress != nil, func() error { return b.SetStrandStress(*s.StrandStress) }},
		{s.StrandSlope != nil, func() error { return b.SetStrandSlope(*s.StrandSlope) }},
		{s.HoldDownForce != nil, func() error { return b.SetHoldDownForce(*s.HoldDownForce) }},
		{s.PlantHandlingWeight != nil, func() error { return b.SetPlantHandlingWeight(*s.PlantHandlingWeight) }},
		{s.Stirrups != nil, func() error { return b.SetStirrupCheck(*s.Stirrups) }},
		{s.Detailing != nil, func() error { return b.SetPrecastIGirderDetailing(*s.Detailing) }},
		{s.Stability != nil, func() error { return b.SetSegmentStability(*s.Stability) }},
	}
	for _, c := range set {
		if !c.present {
			continue
		}
		if err := c.apply(); err != nil {
			return nil, err
		}
	}

	for name, d := range s.Debond {
		strand, err := models.ParseStrandType(name)
		if err != nil {
			return nil, err
		}
		if err := b.SetDebond(strand, d); err != nil {
			return nil, err
		}
	}

	locations := make(map[int64]models.PointOfInterest, len(s.Pois))
	for _, poi := range s.Pois {
		locations[poi.ID] = models.PointOfInterest{ID: models.PoiID(poi.ID), Segment: key, Distance: poi.Distance}
	}
	for _, f := range s.FlexuralStress {
		task, err := f.task()
		if err != nil {
			return nil, err
		}
		fsa := models.NewFlexuralStressArtifact(locations[f.Poi], task)
		for name, l := range f.Locations {
			loc, err := models.ParseStressLocation(name)
			if err != nil {
				return nil, err
			}
			res := l.StressLocationResult
			res.RequiredStrength = models.StrengthFromSentinel(l.RequiredFc)
			fsa.SetLocation(loc, res)
		}
		if err := b.AddFlexuralStress(fsa); err != nil {
			return nil, err
		}
	}

	for _, c := range s.CapacityWithRebar {
		ls, err := models.ParseLimitState(c.LimitState)
		if err != nil {
			return nil, err
		}
		loc, err := models.ParseStressLocation(c.Location)
		if err != nil {
			return nil, err
		}
		if err := b.SetCapacityWithRebar(models.IntervalIndex(c.Interval), ls, loc, c.Allowable); err != nil {
			return nil, err
		}
	}

	for _, t := range s.Tendons {
		if err := b.SetTendonStress(models.DuctIndex(t.Duct), t.TendonStressArtifact); err != nil {
			return nil, err
		}
	}
	for _, d := range s.Ducts {
		if err := b.SetDuctSize(models.DuctIndex(d.Duct), d.DuctSizeArtifact); err != nil {
			return nil, err
		}
	}

	if s.Lifting != nil {
		lifting := &models.LiftingResult{Pass: s.Lifting.Passed, Strength: s.Lifting.RequiredFc.strength()}
		p.lifting = append(p.lifting, lifting)
		if err := b.SetLifting(lifting); err != nil {
			return nil, err
		}
	}
	if s.Hauling != nil {
		hauling := &models.HaulingResult{
			CrownSlope: models.HaulingCase{
				Pass:     s.Hauling.CrownSlope.Passed,
				Strength: s.Hauling.CrownSlope.RequiredFc.strength(),
			},
			Superelevation: models.HaulingCase{
				Pass:     s.Hauling.Superelevation.Passed,
				Strength: s.Hauling.Superelevation.RequiredFc.strength(),
			},
		}
		p.hauling = append(p.hauling, hauling)
		if err := b.SetHauling(hauling); err != nil {
			return nil, err
		}
	}

	return b.Build(svc)
}

// Load parses path and builds it.
func Load(path string) (*Project, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	project, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return project, nil
}
