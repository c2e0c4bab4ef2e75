package segment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harrison/segcheck/internal/models"
)

// fakeLocator classifies points by ID.
type fakeLocator struct {
	closures  map[models.PoiID]bool
	regions   map[models.PoiID]models.RegionID
	haul      models.IntervalIndex
	composite map[models.RegionID]models.IntervalIndex
}

func newFakeLocator() *fakeLocator {
	return &fakeLocator{
		closures:  make(map[models.PoiID]bool),
		regions:   make(map[models.PoiID]models.RegionID),
		haul:      2,
		composite: make(map[models.RegionID]models.IntervalIndex),
	}
}

func (f *fakeLocator) IsInClosureJoint(poi models.PointOfInterest) (models.ClosureKey, bool) {
	if f.closures[poi.ID] {
		return poi.Segment, true
	}
	return models.ClosureKey{}, false
}

func (f *fakeLocator) DeckCastingRegion(poi models.PointOfInterest) models.RegionID {
	if r, ok := f.regions[poi.ID]; ok {
		return r
	}
	return models.InvalidRegion
}

func (f *fakeLocator) HaulSegmentInterval(models.SegmentKey) models.IntervalIndex { return f.haul }

func (f *fakeLocator) CompositeDeckInterval(region models.RegionID) models.IntervalIndex {
	return f.composite[region]
}

var testKey = models.SegmentKey{Group: 0, Girder: 1, Segment: 2}

func poi(id models.PoiID, distance float64) models.PointOfInterest {
	return models.PointOfInterest{ID: id, Segment: testKey, Distance: distance}
}

// fsa builds an artifact with the given fiber requirements. Listed fibers are
// applicable and passing.
func fsa(p models.PointOfInterest, task models.StressCheckTask, fcs map[models.StressLocation]float64) models.FlexuralStressArtifact {
	a := models.NewFlexuralStressArtifact(p, task)
	for loc, fc := range fcs {
		a.SetLocation(loc, models.StressLocationResult{
			Applicable:       true,
			Pass:             true,
			RequiredStrength: models.StrengthFromSentinel(fc),
		})
	}
	return a
}

func build(t *testing.T, b *Builder, loc *fakeLocator) *Artifact {
	t.Helper()
	a, err := b.Build(ServicesFrom(loc))
	require.NoError(t, err)
	return a
}

type fakeLifting struct {
	pass               bool
	comp, tens, tensWR float64
}

func (f *fakeLifting) Passed() bool { return f.pass }
func (f *fakeLifting) RequiredFcCompression() models.RequiredStrength {
	return models.StrengthFromSentinel(f.comp)
}
func (f *fakeLifting) RequiredFcTension() models.RequiredStrength {
	return models.StrengthFromSentinel(f.tens)
}
func (f *fakeLifting) RequiredFcTensionWithRebar() models.RequiredStrength {
	return models.StrengthFromSentinel(f.tensWR)
}

func handling(comp, tens, tensWR float64) models.HandlingStrength {
	return models.HandlingStrength{
		Compression:      models.StrengthFromSentinel(comp),
		Tension:          models.StrengthFromSentinel(tens),
		TensionWithRebar: models.StrengthFromSentinel(tensWR),
	}
}
