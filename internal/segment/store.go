package segment

import (
	"fmt"
	"slices"

	"github.com/harrison/segcheck/internal/models"
)

// flexuralStore maps each stress check task to its artifacts, kept sorted by
// point of interest after every insert.
type flexuralStore struct {
	buckets map[models.StressCheckTask][]models.FlexuralStressArtifact
}

func newFlexuralStore() flexuralStore {
	return flexuralStore{buckets: make(map[models.StressCheckTask][]models.FlexuralStressArtifact)}
}

// insert appends a to its task's bucket. Duplicate points are kept.
func (s *flexuralStore) insert(a models.FlexuralStressArtifact) error {
	if !a.Poi.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidPoi, a.Task)
	}
	bucket := append(s.buckets[a.Task], a)
	slices.SortStableFunc(bucket, models.FlexuralStressArtifact.Compare)
	s.buckets[a.Task] = bucket
	return nil
}

// query returns the bucket for task without creating it. The result aliases
// the store and must not be modified.
func (s flexuralStore) query(task models.StressCheckTask) []models.FlexuralStressArtifact {
	return s.buckets[task]
}

// at returns a pointer into the bucket, or nil when idx is out of range.
func (s flexuralStore) at(task models.StressCheckTask, idx int) *models.FlexuralStressArtifact {
	bucket := s.buckets[task]
	if idx < 0 || idx >= len(bucket) {
		return nil
	}
	return &bucket[idx]
}

// atPoi returns the first artifact for poiID in the task's bucket.
func (s flexuralStore) atPoi(task models.StressCheckTask, poiID models.PoiID) (models.FlexuralStressArtifact, bool) {
	for _, a := range s.buckets[task] {
		if a.Poi.ID == poiID {
			return a, true
		}
	}
	return models.FlexuralStressArtifact{}, false
}

// tasks returns every populated task in ascending order.
func (s flexuralStore) tasks() []models.StressCheckTask {
	tasks := make([]models.StressCheckTask, 0, len(s.buckets))
	for task := range s.buckets {
		tasks = append(tasks, task)
	}
	slices.SortFunc(tasks, models.StressCheckTask.Compare)
	return tasks
}

// all reports whether pred holds for every stored artifact.
func (s flexuralStore) all(pred func(models.FlexuralStressArtifact) bool) bool {
	for _, bucket := range s.buckets {
		for _, a := range bucket {
			if !pred(a) {
				return false
			}
		}
	}
	return true
}

// count returns the number of stored artifacts across all tasks.
func (s flexuralStore) count() int {
	n := 0
	for _, bucket := range s.buckets {
		n += len(bucket)
	}
	return n
}

func (s flexuralStore) clone() flexuralStore {
	out := newFlexuralStore()
	for task, bucket := range s.buckets {
		out.buckets[task] = slices.Clone(bucket)
	}
	return out
}
