package segment

import (
	"fmt"
	"reflect"

	"github.com/harrison/segcheck/internal/models"
)

// ClosureJointLocator classifies points of interest that lie within a
// cast-in-place closure joint.
type ClosureJointLocator interface {
	IsInClosureJoint(poi models.PointOfInterest) (models.ClosureKey, bool)
}

// DeckCastingRegionLocator maps a point of interest to its deck casting
// region, or models.InvalidRegion when it has none.
type DeckCastingRegionLocator interface {
	DeckCastingRegion(poi models.PointOfInterest) models.RegionID
}

// IntervalLocator maps construction events to interval indices.
type IntervalLocator interface {
	HaulSegmentInterval(key models.SegmentKey) models.IntervalIndex
	CompositeDeckInterval(region models.RegionID) models.IntervalIndex
}

// Services bundles the collaborators an Artifact consults while answering
// queries.
type Services struct {
	Closures    ClosureJointLocator
	DeckRegions DeckCastingRegionLocator
	Intervals   IntervalLocator
}

// Locator is implemented by bridge models that provide every service.
type Locator interface {
	ClosureJointLocator
	DeckCastingRegionLocator
	IntervalLocator
}

// ServicesFrom uses one locator for every service.
func ServicesFrom(l Locator) Services {
	return Services{Closures: l, DeckRegions: l, Intervals: l}
}

func (s Services) validate() error {
	switch {
	case s.Closures == nil:
		return fmt.Errorf("%w: closure joint locator", ErrMissingService)
	case s.DeckRegions == nil:
		return fmt.Errorf("%w: deck casting region locator", ErrMissingService)
	case s.Intervals == nil:
		return fmt.Errorf("%w: interval locator", ErrMissingService)
	}
	return nil
}

// Ref is a non-owning reference to an analysis result held elsewhere. The
// zero Ref is empty. Artifacts hold lifting and hauling results through Ref:
// copying an Artifact copies the reference, never the result.
type Ref[T any] struct {
	target T
	ok     bool
}

// Borrow returns a reference to target. A nil target, including a nil
// pointer held in an interface, yields an empty Ref.
func Borrow[T any](target T) Ref[T] {
	if isNil(any(target)) {
		return Ref[T]{}
	}
	return Ref[T]{target: target, ok: true}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Get returns the referenced value and whether the reference is set.
func (r Ref[T]) Get() (T, bool) {
	return r.target, r.ok
}

// Present reports whether the reference is set.
func (r Ref[T]) Present() bool {
	return r.ok
}
