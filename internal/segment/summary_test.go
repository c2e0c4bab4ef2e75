package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/segcheck/internal/models"
)

func TestSummarize(t *testing.T) {
	loc := newFakeLocator()
	loc.haul = 2

	b := NewBuilder(testKey)
	require.NoError(t, b.AddFlexuralStress(fsa(poi(1, 0), models.NewStressCheckTask(0, models.ServiceI, models.Compression), fcs{models.TopGirder: 4})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(1, 0), models.NewStressCheckTask(3, models.ServiceIII, models.Tension), fcs{models.BottomGirder: 6})))
	require.NoError(t, b.AddFlexuralStress(fsa(poi(2, 8), models.NewStressCheckTask(3, models.ServiceIII, models.Tension), fcs{models.TopGirder: 5})))
	require.NoError(t, b.SetLifting(&fakeLifting{pass: true, comp: 4.5}))
	failing(t, b, CheckStrandSlope)
	a := build(t, b, loc)

	s := a.Summarize()
	assert.Equal(t, testKey, s.Key)
	assert.False(t, s.Passed)
	assert.Equal(t, []Check{CheckStrandSlope}, s.FailedChecks())
	assert.Equal(t, 2, s.FlexuralTasks)
	assert.Equal(t, 3, s.FlexuralPoints)
	assert.True(t, s.HasLifting)
	assert.False(t, s.HasHauling)
	assert.True(t, s.SegmentFlexurePassed)
	assert.True(t, s.DeckFlexurePassed)
	assertStrength(t, 4.5, s.ReleaseStrength)
	assertStrength(t, 6, s.SegmentStrength)
	assert.Equal(t, models.NoRequirement, s.ClosureJointStrength.Kind())
	assert.Equal(t, models.NoRequirement, s.DeckStrength.Kind())

	require.Len(t, s.Checks, len(allChecks))
	for i, c := range s.Checks {
		assert.Equal(t, allChecks[i], c.Check)
	}
	assert.False(t, s.Checks[9].Evaluated, "hauling not referenced")
}
