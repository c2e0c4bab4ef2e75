// Package bridge holds the bridge layout a segment check run is evaluated
// against: which points of interest lie in closure joints, which deck casting
// region each point belongs to, and the construction intervals at which
// segments are hauled and deck regions become composite.
package bridge

import (
	"fmt"
	"math"

	"github.com/harrison/segcheck/internal/models"
)

// PoiInfo is the classification of one point of interest.
type PoiInfo struct {
	// Closure is set when the point lies in a closure joint.
	Closure *models.ClosureKey
	Region  models.RegionID
}

// Model is a table-backed bridge description. It implements
// segment.Locator. A Model must not be modified once artifacts built
// against it are being queried.
type Model struct {
	pois        map[models.PoiID]PoiInfo
	haul        map[models.SegmentKey]models.IntervalIndex
	defaultHaul models.IntervalIndex
	composite   map[models.RegionID]models.IntervalIndex
}

// New returns an empty model. Segments without an explicit haul interval are
// hauled in defaultHaul.
func New(defaultHaul models.IntervalIndex) *Model {
	return &Model{
		pois:        make(map[models.PoiID]PoiInfo),
		haul:        make(map[models.SegmentKey]models.IntervalIndex),
		defaultHaul: defaultHaul,
		composite:   make(map[models.RegionID]models.IntervalIndex),
	}
}

// AddPoi registers a point of interest. IDs are unique across the bridge.
func (m *Model) AddPoi(id models.PoiID, info PoiInfo) error {
	if id == models.InvalidPoiID {
		return fmt.Errorf("register point of interest: invalid id")
	}
	if _, exists := m.pois[id]; exists {
		return fmt.Errorf("register point of interest: duplicate id %d", id)
	}
	m.pois[id] = info
	return nil
}

// Poi returns the registered classification of id.
func (m *Model) Poi(id models.PoiID) (PoiInfo, bool) {
	info, ok := m.pois[id]
	return info, ok
}

// SetHaulInterval records the interval in which key is hauled.
func (m *Model) SetHaulInterval(key models.SegmentKey, interval models.IntervalIndex) {
	m.haul[key] = interval
}

// SetCompositeInterval records the interval in which region becomes composite.
func (m *Model) SetCompositeInterval(region models.RegionID, interval models.IntervalIndex) error {
	if region == models.InvalidRegion {
		return fmt.Errorf("deck casting region: invalid region id")
	}
	m.composite[region] = interval
	return nil
}

// IsInClosureJoint reports whether poi lies in a closure joint. Unregistered
// points are not in a closure joint.
func (m *Model) IsInClosureJoint(poi models.PointOfInterest) (models.ClosureKey, bool) {
	info, ok := m.pois[poi.ID]
	if !ok || info.Closure == nil {
		return models.ClosureKey{}, false
	}
	return *info.Closure, true
}

// DeckCastingRegion returns the region of poi, or models.InvalidRegion.
func (m *Model) DeckCastingRegion(poi models.PointOfInterest) models.RegionID {
	info, ok := m.pois[poi.ID]
	if !ok {
		return models.InvalidRegion
	}
	return info.Region
}

// HaulSegmentInterval returns the interval in which key is hauled.
func (m *Model) HaulSegmentInterval(key models.SegmentKey) models.IntervalIndex {
	if interval, ok := m.haul[key]; ok {
		return interval
	}
	return m.defaultHaul
}

// CompositeDeckInterval returns the interval in which region becomes
// composite. Unknown regions never become composite.
func (m *Model) CompositeDeckInterval(region models.RegionID) models.IntervalIndex {
	if interval, ok := m.composite[region]; ok {
		return interval
	}
	return models.IntervalIndex(math.MaxInt)
}

// Validate checks that every deck casting region a point refers to has a
// composite interval.
func (m *Model) Validate() error {
	for id, info := range m.pois {
		if info.Region != models.InvalidRegion {
			if _, ok := m.composite[info.Region]; !ok {
				return fmt.Errorf("point of interest %d: deck casting region %d has no composite interval", id, info.Region)
			}
		}
	}
	return nil
}
