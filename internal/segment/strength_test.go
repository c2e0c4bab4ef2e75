package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/segcheck/internal/models"
)

type fcs = map[models.StressLocation]float64

func assertStrength(t *testing.T, want float64, got models.RequiredStrength) {
	t.Helper()
	assert.InDelta(t, want, got.Sentinel(), 1e-12, "got %s", got)
}

func TestRequiredSegmentConcreteStrengthAt_InfeasibleDominates(t *testing.T) {
	task := models.NewStressCheckTask(1, models.ServiceI, models.Compression)
	b := NewBuilder(testKey)
	require.NoError(t, b.AddFlexuralStress(fsa(poi(1, 0), task, fcs{models.TopGirder: 5.5})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(2, 10), task, fcs{models.BottomGirder: -1.0})))
	a := build(t, b, newFakeLocator())

	got := a.RequiredSegmentConcreteStrengthAt(1, models.ServiceI)
	assert.True(t, got.IsInfeasible())
	assertStrength(t, -1.0, got)
}

func TestRequiredSegmentConcreteStrengthAt(t *testing.T) {
	task := models.NewStressCheckTask(1, models.ServiceI, models.Compression)
	other := models.NewStressCheckTask(1, models.ServiceIII, models.Tension)

	tests := []struct {
		name string
		add  []models.FlexuralStressArtifact
		want float64
		kind models.StrengthKind
	}{
		{
			name: "no artifacts",
			kind: models.NoRequirement,
		},
		{
			name: "all zero",
			add: []models.FlexuralStressArtifact{
				fsa(poi(1, 0), task, fcs{models.TopGirder: 0, models.BottomGirder: 0}),
			},
			kind: models.NoRequirement,
		},
		{
			name: "inapplicable infeasible ignored",
			add: []models.FlexuralStressArtifact{
				func() models.FlexuralStressArtifact {
					a := fsa(poi(1, 0), task, fcs{models.TopGirder: 4})
					a.SetLocation(models.BottomGirder, models.StressLocationResult{RequiredStrength: models.InfeasibleStrength()})
					return a
				}(),
			},
			want: 4,
			kind: models.Required,
		},
		{
			name: "maximum over points and fibers",
			add: []models.FlexuralStressArtifact{
				fsa(poi(1, 0), task, fcs{models.TopGirder: 4, models.BottomGirder: 6.5}),
				fsa(poi(2, 5), task, fcs{models.TopGirder: 5}),
			},
			want: 6.5,
			kind: models.Required,
		},
		{
			name: "deck fibers ignored",
			add: []models.FlexuralStressArtifact{
				fsa(poi(1, 0), task, fcs{models.TopDeck: 9, models.TopGirder: 3}),
			},
			want: 3,
			kind: models.Required,
		},
		{
			name: "other tasks ignored",
			add: []models.FlexuralStressArtifact{
				fsa(poi(1, 0), other, fcs{models.TopGirder: -1}),
				fsa(poi(1, 0), task, fcs{models.TopGirder: 2}),
			},
			want: 2,
			kind: models.Required,
		},
		{
			name: "infeasible first",
			add: []models.FlexuralStressArtifact{
				fsa(poi(1, 0), task, fcs{models.TopGirder: -2}),
				fsa(poi(2, 5), task, fcs{models.TopGirder: 8}),
			},
			want: -2,
			kind: models.Infeasible,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(testKey)
			for _, f := range tt.add {
				require.NoError(t, b.AddFlexuralStress(f))
			}
			a := build(t, b, newFakeLocator())
			got := a.RequiredSegmentConcreteStrengthAt(1, models.ServiceI)
			assert.Equal(t, tt.kind, got.Kind())
			assertStrength(t, tt.want, got)
		})
	}
}

func TestClosureJointPartition(t *testing.T) {
	task := models.NewStressCheckTask(3, models.ServiceI, models.Tension)
	loc := newFakeLocator()
	loc.closures[2] = true

	b := NewBuilder(testKey)
	require.NoError(t, b.AddFlexuralStress(fsa(poi(1, 0), task, fcs{models.TopGirder: 4})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(2, 5), task, fcs{models.TopGirder: 7})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(3, 9), task, fcs{models.BottomGirder: 5})))
	a := build(t, b, loc)

	assertStrength(t, 5, a.RequiredSegmentConcreteStrengthAt(3, models.ServiceI))
	assertStrength(t, 7, a.RequiredClosureJointConcreteStrengthAt(3, models.ServiceI))

	loc.closures[2] = false
	loc.closures[3] = true
	assertStrength(t, 7, a.RequiredSegmentConcreteStrengthAt(3, models.ServiceI))
	assertStrength(t, 5, a.RequiredClosureJointConcreteStrengthAt(3, models.ServiceI))
}

// Each point contributes to exactly one of the segment and closure joint
// resolvers.
func TestClosureJointPartition_Infeasible(t *testing.T) {
	task := models.NewStressCheckTask(3, models.ServiceI, models.Tension)
	for id := models.PoiID(1); id <= 4; id++ {
		loc := newFakeLocator()
		loc.closures[2] = true
		loc.closures[4] = true

		b := NewBuilder(testKey)
		for p := models.PoiID(1); p <= 4; p++ {
			fc := 1.0
			if p == id {
				fc = -1
			}
			require.NoError(t, b.AddFlexuralStress(fsa(poi(p, float64(p)), task, fcs{models.TopGirder: fc})))
		}
		a := build(t, b, loc)

		seg := a.RequiredSegmentConcreteStrengthAt(3, models.ServiceI).IsInfeasible()
		cj := a.RequiredClosureJointConcreteStrengthAt(3, models.ServiceI).IsInfeasible()
		assert.NotEqual(t, seg, cj, "poi %d counted by exactly one resolver", id)
		assert.Equal(t, loc.closures[id], cj)
	}
}

func TestRequiredDeckConcreteStrengthAt(t *testing.T) {
	task := models.NewStressCheckTask(5, models.ServiceI, models.Compression)
	loc := newFakeLocator()
	loc.closures[2] = true

	b := NewBuilder(testKey)
	require.NoError(t, b.AddFlexuralStress(fsa(poi(1, 0), task, fcs{models.TopDeck: 3, models.TopGirder: 9})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(2, 5), task, fcs{models.BottomDeck: 4})))
	a := build(t, b, loc)

	assertStrength(t, 4, a.RequiredDeckConcreteStrengthAt(5, models.ServiceI))
	assertStrength(t, 0, a.RequiredDeckConcreteStrengthAt(4, models.ServiceI))
}

func TestRequiredSegmentConcreteStrength_Final(t *testing.T) {
	loc := newFakeLocator()
	loc.haul = 2

	b := NewBuilder(testKey)
	require.NoError(t, b.AddFlexuralStress(fsa(poi(1, 0), models.NewStressCheckTask(1, models.ServiceI, models.Compression), fcs{models.TopGirder: 9})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(1, 0), models.NewStressCheckTask(2, models.ServiceI, models.Compression), fcs{models.TopGirder: 5})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(1, 0), models.NewStressCheckTask(6, models.ServiceIII, models.Tension), fcs{models.BottomGirder: 6})))
	a := build(t, b, loc)

	assertStrength(t, 6, a.RequiredSegmentConcreteStrength())
}

func TestRequiredSegmentConcreteStrength_Hauling(t *testing.T) {
	tests := []struct {
		name         string
		flexural     float64
		crown, super models.HandlingStrength
		want         float64
	}{
		{
			name:     "hauling governs",
			flexural: 5,
			crown:    handling(6, 0, 5.5),
			super:    handling(4, 0, 6.5),
			want:     6.5,
		},
		{
			name:     "flexure governs",
			flexural: 7,
			crown:    handling(6, 0, 5.5),
			super:    handling(4, 0, 6.5),
			want:     7,
		},
		{
			name:     "tension without rebar not combined",
			flexural: 5,
			crown:    handling(4, 9, 4),
			super:    handling(4, 9, 4),
			want:     5,
		},
		{
			name:     "all hauling infeasible",
			flexural: 5,
			crown:    handling(-1, -1, -1),
			super:    handling(-1, -1, -1),
			want:     -1,
		},
		{
			name:     "one infeasible hauling value masked by max",
			flexural: 5,
			crown:    handling(-1, 0, 3),
			super:    handling(2, 0, 0),
			want:     5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(testKey)
			require.NoError(t, b.AddFlexuralStress(fsa(poi(1, 0), models.NewStressCheckTask(3, models.ServiceI, models.Compression), fcs{models.TopGirder: tt.flexural})))
			require.NoError(t, b.SetHauling(&fakeHauling{
				crown: true, super: true,
				strength: map[models.HaulingSlope]models.HandlingStrength{
					models.CrownSlope:     tt.crown,
					models.Superelevation: tt.super,
				},
			}))
			a := build(t, b, newFakeLocator())
			assertStrength(t, tt.want, a.RequiredSegmentConcreteStrength())
		})
	}
}

func TestRequiredSegmentConcreteStrength_FlexuralInfeasibleSkipsHauling(t *testing.T) {
	b := NewBuilder(testKey)
	require.NoError(t, b.AddFlexuralStress(fsa(poi(1, 0), models.NewStressCheckTask(3, models.ServiceI, models.Tension), fcs{models.TopGirder: -3})))
	require.NoError(t, b.SetHauling(&fakeHauling{strength: map[models.HaulingSlope]models.HandlingStrength{
		models.CrownSlope: handling(12, 12, 12),
	}}))
	a := build(t, b, newFakeLocator())
	assertStrength(t, -3, a.RequiredSegmentConcreteStrength())
}

func TestRequiredClosureJointConcreteStrength_Final(t *testing.T) {
	loc := newFakeLocator()
	loc.haul = 3
	loc.closures[5] = true

	b := NewBuilder(testKey)
	require.NoError(t, b.AddFlexuralStress(fsa(poi(5, 0), models.NewStressCheckTask(2, models.ServiceI, models.Tension), fcs{models.TopGirder: -1})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(5, 0), models.NewStressCheckTask(4, models.ServiceI, models.Tension), fcs{models.TopGirder: 6})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(6, 1), models.NewStressCheckTask(4, models.ServiceI, models.Tension), fcs{models.TopGirder: 8})))
	a := build(t, b, loc)

	assertStrength(t, 6, a.RequiredClosureJointConcreteStrength())
	assertStrength(t, 8, a.RequiredSegmentConcreteStrength())
}

func TestRequiredDeckConcreteStrength_PerRegionCompositeInterval(t *testing.T) {
	loc := newFakeLocator()
	loc.regions[1] = 0
	loc.regions[2] = 1
	loc.composite[0] = 4
	loc.composite[1] = 6

	b := NewBuilder(testKey)
	early := models.NewStressCheckTask(5, models.ServiceI, models.Compression)
	late := models.NewStressCheckTask(7, models.ServiceI, models.Compression)
	require.NoError(t, b.AddFlexuralStress(fsa(poi(1, 0), early, fcs{models.TopDeck: 3})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(2, 5), early, fcs{models.TopDeck: -1})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(2, 5), late, fcs{models.BottomDeck: 4.5})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(3, 9), late, fcs{models.TopDeck: 20})))
	a := build(t, b, loc)

	assertStrength(t, 4.5, a.RequiredDeckConcreteStrength())
}

func TestRequiredReleaseStrength(t *testing.T) {
	loc := newFakeLocator()
	loc.haul = 3

	b := NewBuilder(testKey)
	require.NoError(t, b.AddFlexuralStress(fsa(poi(1, 0), models.NewStressCheckTask(0, models.ServiceI, models.Compression), fcs{models.TopGirder: 4, models.TopDeck: 9})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(2, 1), models.NewStressCheckTask(1, models.ServiceI, models.Tension), fcs{models.BottomGirder: 4.8})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(2, 1), models.NewStressCheckTask(3, models.ServiceI, models.Tension), fcs{models.BottomGirder: 10})))
	require.NoError(t, b.SetLifting(&fakeLifting{pass: true, comp: 4.2, tens: 5.1, tensWR: 3}))
	a := build(t, b, loc)

	assertStrength(t, 5.1, a.RequiredReleaseStrength())
}

func TestRequiredReleaseStrength_FlexuralInfeasible(t *testing.T) {
	b := NewBuilder(testKey)
	require.NoError(t, b.AddFlexuralStress(fsa(poi(1, 0), models.NewStressCheckTask(0, models.ServiceI, models.Tension), fcs{models.TopGirder: -1})))
	require.NoError(t, b.SetLifting(&fakeLifting{pass: true, comp: 9}))
	a := build(t, b, newFakeLocator())

	assert.True(t, a.RequiredReleaseStrength().IsInfeasible())
}

// An infeasible lifting requirement is folded in by plain maximum of the
// signed encoding, so a feasible flexural requirement masks it. Hauling
// infeasibility is not masked in RequiredSegmentConcreteStrength. This
// asymmetry is existing behavior and is kept until the design intent is
// confirmed.
func TestRequiredReleaseStrength_LiftingInfeasibleIsMasked(t *testing.T) {
	b := NewBuilder(testKey)
	require.NoError(t, b.AddFlexuralStress(fsa(poi(1, 0), models.NewStressCheckTask(0, models.ServiceI, models.Compression), fcs{models.TopGirder: 4})))
	require.NoError(t, b.SetLifting(&fakeLifting{pass: false, comp: -1, tens: -1, tensWR: -1}))
	a := build(t, b, newFakeLocator())

	got := a.RequiredReleaseStrength()
	assert.False(t, got.IsInfeasible())
	assertStrength(t, 4, got)

	b = NewBuilder(testKey)
	require.NoError(t, b.SetLifting(&fakeLifting{pass: false, comp: -1, tens: -1, tensWR: -1}))
	a = build(t, b, newFakeLocator())
	assert.Equal(t, models.NoRequirement, a.RequiredReleaseStrength().Kind(),
		"no flexural requirement still masks an infeasible lifting requirement")

	b = NewBuilder(testKey)
	require.NoError(t, b.SetLifting(&fakeLifting{pass: false, comp: -1, tens: 5, tensWR: -1}))
	a = build(t, b, newFakeLocator())
	assertStrength(t, 5, a.RequiredReleaseStrength())
}
