package parser

import (
	"errors"
	"fmt"

	"github.com/harrison/segcheck/internal/models"
)

// Validate checks cross references within the document: unique segments and
// point IDs, known enum names and declared deck regions. All problems are
// reported together.
func (d *Document) Validate() error {
	var errs []error

	regions := make(map[int]bool)
	for _, r := range d.DeckRegions {
		if r.ID < 0 {
			errs = append(errs, fmt.Errorf("deck region %d: id must not be negative", r.ID))
		}
		if regions[r.ID] {
			errs = append(errs, fmt.Errorf("deck region %d: declared twice", r.ID))
		}
		regions[r.ID] = true
	}

	segments := make(map[models.SegmentKey]bool)
	pois := make(map[int64]models.SegmentKey)
	for i := range d.Segments {
		s := &d.Segments[i]
		key := s.Key()
		if s.Group < 0 || s.Girder < 0 || s.Segment < 0 {
			errs = append(errs, fmt.Errorf("segment %d: indices must not be negative", i))
			continue
		}
		if segments[key] {
			errs = append(errs, fmt.Errorf("%s: declared twice", key))
		}
		segments[key] = true

		local := make(map[int64]bool)
		for _, p := range s.Pois {
			if models.PoiID(p.ID) == models.InvalidPoiID {
				errs = append(errs, fmt.Errorf("%s: point of interest has invalid id %d", key, p.ID))
				continue
			}
			if other, dup := pois[p.ID]; dup {
				errs = append(errs, fmt.Errorf("%s: point of interest %d already declared by %s", key, p.ID, other))
			}
			pois[p.ID] = key
			local[p.ID] = true
			if p.DeckRegion != nil && !regions[*p.DeckRegion] {
				errs = append(errs, fmt.Errorf("%s: point of interest %d refers to undeclared deck region %d", key, p.ID, *p.DeckRegion))
			}
		}

		for j, f := range s.FlexuralStress {
			if !local[f.Poi] {
				errs = append(errs, fmt.Errorf("%s: flexural stress %d refers to undeclared point of interest %d", key, j, f.Poi))
			}
			if _, err := f.task(); err != nil {
				errs = append(errs, fmt.Errorf("%s: flexural stress %d: %w", key, j, err))
			}
			for name := range f.Locations {
				if _, err := models.ParseStressLocation(name); err != nil {
					errs = append(errs, fmt.Errorf("%s: flexural stress %d: %w", key, j, err))
				}
			}
		}

		for j, c := range s.CapacityWithRebar {
			if _, err := models.ParseLimitState(c.LimitState); err != nil {
				errs = append(errs, fmt.Errorf("%s: capacity with rebar %d: %w", key, j, err))
			}
			if _, err := models.ParseStressLocation(c.Location); err != nil {
				errs = append(errs, fmt.Errorf("%s: capacity with rebar %d: %w", key, j, err))
			}
		}

		for name := range s.Debond {
			if _, err := models.ParseStrandType(name); err != nil {
				errs = append(errs, fmt.Errorf("%s: debond: %w", key, err))
			}
		}

		ducts := make(map[int]bool)
		for _, t := range s.Tendons {
			if ducts[t.Duct] {
				errs = append(errs, fmt.Errorf("%s: tendon stress for duct %d declared twice", key, t.Duct))
			}
			ducts[t.Duct] = true
		}
		clear(ducts)
		for _, dd := range s.Ducts {
			if ducts[dd.Duct] {
				errs = append(errs, fmt.Errorf("%s: duct size for duct %d declared twice", key, dd.Duct))
			}
			ducts[dd.Duct] = true
		}
	}

	return errors.Join(errs...)
}

func (f FlexuralDoc) task() (models.StressCheckTask, error) {
	ls, err := models.ParseLimitState(f.LimitState)
	if err != nil {
		return models.StressCheckTask{}, err
	}
	st, err := models.ParseStressType(f.StressType)
	if err != nil {
		return models.StressCheckTask{}, err
	}
	return models.NewStressCheckTask(models.IntervalIndex(f.Interval), ls, st), nil
}
