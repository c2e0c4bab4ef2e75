package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentKey_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b SegmentKey
		want int
	}{
		{"equal", SegmentKey{1, 2, 3}, SegmentKey{1, 2, 3}, 0},
		{"group dominates", SegmentKey{0, 9, 9}, SegmentKey{1, 0, 0}, -1},
		{"girder before segment", SegmentKey{1, 1, 0}, SegmentKey{1, 0, 5}, 1},
		{"segment last", SegmentKey{1, 1, 0}, SegmentKey{1, 1, 1}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
		})
	}
}

func TestSegmentKey_String(t *testing.T) {
	assert.Equal(t, "Group 1 Girder A Segment 1", SegmentKey{}.String())
	assert.Equal(t, "Group 2 Girder AB Segment 3", SegmentKey{Group: 1, Girder: 27, Segment: 2}.String())
}

func TestPointOfInterest_IsValid(t *testing.T) {
	assert.True(t, PointOfInterest{ID: 0}.IsValid())
	assert.False(t, PointOfInterest{ID: InvalidPoiID}.IsValid())
}

func TestParseEnums(t *testing.T) {
	ls, err := ParseLimitState("service_iii")
	require.NoError(t, err)
	assert.Equal(t, ServiceIII, ls)

	_, err = ParseLimitState("ServiceIV")
	assert.Error(t, err)

	st, err := ParseStressType("Compression")
	require.NoError(t, err)
	assert.Equal(t, Compression, st)

	strand, err := ParseStrandType("temporary")
	require.NoError(t, err)
	assert.Equal(t, Temporary, strand)

	loc, err := ParseStressLocation("Top Deck")
	require.NoError(t, err)
	assert.Equal(t, TopDeck, loc)
	assert.True(t, BottomGirder.IsGirder())
	assert.False(t, loc.IsGirder())

	_, err = ParseStressLocation("web")
	assert.Error(t, err)
}
