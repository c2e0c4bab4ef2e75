package models

import (
	"cmp"
	"fmt"
)

// IntervalIndex identifies a construction interval on the bridge timeline.
type IntervalIndex int

// InvalidInterval is returned by interval services that cannot resolve an event.
const InvalidInterval IntervalIndex = -1

// PoiID is the stable identifier of a point of interest.
type PoiID int64

// InvalidPoiID marks a point of interest that has not been registered.
const InvalidPoiID PoiID = -1

// RegionID identifies a deck casting region.
type RegionID int

// InvalidRegion is reported for points of interest outside every deck casting region.
const InvalidRegion RegionID = -1

// DuctIndex identifies a post-tensioning duct within a segment.
type DuctIndex int

// SegmentKey identifies one precast segment by group, girder and segment index.
// Keys are ordered lexicographically.
type SegmentKey struct {
	Group   int `yaml:"group" json:"group"`
	Girder  int `yaml:"girder" json:"girder"`
	Segment int `yaml:"segment" json:"segment"`
}

// Compare returns -1, 0 or +1 when k sorts before, equal to or after other.
func (k SegmentKey) Compare(other SegmentKey) int {
	if c := cmp.Compare(k.Group, other.Group); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Girder, other.Girder); c != 0 {
		return c
	}
	return cmp.Compare(k.Segment, other.Segment)
}

// Less reports whether k sorts before other.
func (k SegmentKey) Less(other SegmentKey) bool {
	return k.Compare(other) < 0
}

// String renders the key with one-based indices the way reports label segments.
func (k SegmentKey) String() string {
	return fmt.Sprintf("Group %d Girder %s Segment %d", k.Group+1, girderLabel(k.Girder), k.Segment+1)
}

// girderLabel converts a zero-based girder index to the A, B, ... Z, AA label.
func girderLabel(idx int) string {
	if idx < 0 {
		return "?"
	}
	label := ""
	for n := idx; ; n = n/26 - 1 {
		label = string(rune('A'+n%26)) + label
		if n < 26 {
			break
		}
	}
	return label
}

// ClosureKey identifies the closure joint a point of interest lies in.
// Closure joints are keyed by the segment on their left side.
type ClosureKey = SegmentKey

// PointOfInterest is a labeled analysis location along a segment.
type PointOfInterest struct {
	ID       PoiID      `yaml:"id" json:"id"`
	Segment  SegmentKey `yaml:"segment" json:"segment"`
	Distance float64    `yaml:"distance" json:"distance"` // from the start of the segment
}

// IsValid reports whether the point has been assigned a stable ID.
func (p PointOfInterest) IsValid() bool {
	return p.ID != InvalidPoiID
}

// Compare orders points by segment, then by distance along the segment, then by ID.
func (p PointOfInterest) Compare(other PointOfInterest) int {
	if c := p.Segment.Compare(other.Segment); c != 0 {
		return c
	}
	if c := cmp.Compare(p.Distance, other.Distance); c != 0 {
		return c
	}
	return cmp.Compare(p.ID, other.ID)
}
