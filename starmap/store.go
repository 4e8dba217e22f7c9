// Package starmap holds the immutable in-memory star dataset and its binary
// snapshot format.
//
// A Store is loaded exactly once per run from a precomputed snapshot and is
// read-only thereafter. It is an explicit handle, never a process-wide
// singleton: independent Stores can be loaded side by side (tests, multiple
// datasets in one process).
package starmap

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/stargo/geom"
	"github.com/hupe1980/stargo/model"
)

// Store is the in-memory point table. Column layout keeps the hot search
// loops cache-friendly and lets the snapshot reader fill slices directly.
type Store struct {
	names    []string
	pos      []geom.Point
	cats     []model.Category
	ranges   []float32
	nameToID map[string]model.SystemID

	// byCat tracks system IDs per category for index building and
	// category-filtered iteration.
	byCat map[model.Category]*roaring.Bitmap
}

func newStore(count int) *Store {
	return &Store{
		names:    make([]string, 0, count),
		pos:      make([]geom.Point, 0, count),
		cats:     make([]model.Category, 0, count),
		ranges:   make([]float32, 0, count),
		nameToID: make(map[string]model.SystemID, count),
		byCat:    make(map[model.Category]*roaring.Bitmap),
	}
}

// append adds one system during load. Duplicate names resolve to the last
// occurrence, matching the snapshot producer's behavior.
func (s *Store) append(sys model.System) {
	id := model.SystemID(len(s.names))
	s.names = append(s.names, sys.Name)
	s.pos = append(s.pos, sys.Pos)
	s.cats = append(s.cats, sys.Category)
	s.ranges = append(s.ranges, sys.JumpRange)
	s.nameToID[sys.Name] = id

	bm, ok := s.byCat[sys.Category]
	if !ok {
		bm = roaring.New()
		s.byCat[sys.Category] = bm
	}
	bm.Add(uint32(id))
}

// New builds a Store directly from systems, for snapshot tooling and tests.
// IDs are assigned in slice order; the per-system ID field is ignored.
func New(systems []model.System) *Store {
	s := newStore(len(systems))
	for i := range systems {
		s.append(systems[i])
	}
	return s
}

// Count returns the number of systems in the store.
func (s *Store) Count() int { return len(s.names) }

// CategoryCount returns the number of systems of the given category.
func (s *Store) CategoryCount(cat model.Category) int {
	bm, ok := s.byCat[cat]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}

// ByID returns the system with the given ID.
func (s *Store) ByID(id model.SystemID) (model.System, bool) {
	if int(id) >= len(s.names) {
		return model.System{}, false
	}
	return model.System{
		ID:        id,
		Name:      s.names[id],
		Pos:       s.pos[id],
		Category:  s.cats[id],
		JumpRange: s.ranges[id],
	}, true
}

// IDByName returns the ID of the system with the given canonical name.
// Matching is case-sensitive.
func (s *Store) IDByName(name string) (model.SystemID, bool) {
	id, ok := s.nameToID[name]
	return id, ok
}

// Name returns the system's canonical name, or "" for an unknown ID.
func (s *Store) Name(id model.SystemID) string {
	if int(id) >= len(s.names) {
		return ""
	}
	return s.names[id]
}

// Pos returns the system's position. Unknown IDs return the zero point.
func (s *Store) Pos(id model.SystemID) geom.Point {
	if int(id) >= len(s.pos) {
		return geom.Point{}
	}
	return s.pos[id]
}

// Category returns the system's category. Unknown IDs return CategoryUnknown.
func (s *Store) Category(id model.SystemID) model.Category {
	if int(id) >= len(s.cats) {
		return model.CategoryUnknown
	}
	return s.cats[id]
}

// RangeOf returns the system's effective unboosted jump range: the per-system
// attribute when set, otherwise base.
func (s *Store) RangeOf(id model.SystemID, base float32) float32 {
	if int(id) >= len(s.ranges) || s.ranges[id] <= 0 {
		return base
	}
	return s.ranges[id]
}

// Systems returns a restartable iterator over all systems of the given
// category, in ascending ID order.
func (s *Store) Systems(cat model.Category) iter.Seq[model.System] {
	return func(yield func(model.System) bool) {
		bm, ok := s.byCat[cat]
		if !ok {
			return
		}
		it := bm.Iterator()
		for it.HasNext() {
			sys, _ := s.ByID(model.SystemID(it.Next()))
			if !yield(sys) {
				return
			}
		}
	}
}
