// Package kdtree implements a static 3-D k-d tree for radius and k-nearest
// neighbor queries over an immutable point set.
//
// The tree is an implicit balanced tree over two parallel arrays: Build
// rearranges the points so that for every subrange the median element on the
// current axis sits in the middle. No per-node allocations, no pointers.
// After Build the tree is read-only and safe for concurrent queries.
package kdtree

import (
	"math"
	"sort"

	"github.com/hupe1980/stargo/geom"
	"github.com/hupe1980/stargo/model"
)

// Neighbor is a single query result.
type Neighbor struct {
	ID       model.SystemID
	Distance float32
}

// Tree is a static spatial index over 3-D points.
type Tree struct {
	points []geom.Point
	ids    []model.SystemID
}

// Build constructs a tree over the given points. The slices are copied; the
// caller keeps ownership of its arguments. ids[i] identifies points[i].
// Build is O(n log n) and panics if the slice lengths differ.
func Build(points []geom.Point, ids []model.SystemID) *Tree {
	if len(points) != len(ids) {
		panic("kdtree: points and ids length mismatch")
	}

	t := &Tree{
		points: make([]geom.Point, len(points)),
		ids:    make([]model.SystemID, len(ids)),
	}
	copy(t.points, points)
	copy(t.ids, ids)

	t.build(0, len(t.points), 0)

	return t
}

// Len returns the number of indexed points.
func (t *Tree) Len() int { return len(t.points) }

// build recursively partitions [lo, hi) so the median on axis sits at mid.
func (t *Tree) build(lo, hi, axis int) {
	if hi-lo <= 1 {
		return
	}

	mid := (lo + hi) / 2
	t.selectNth(lo, hi, mid, axis)

	next := (axis + 1) % 3
	t.build(lo, mid, next)
	t.build(mid+1, hi, next)
}

// selectNth partially sorts [lo, hi) so the element with rank n on axis is at
// position n (quickselect with median-of-three pivoting).
func (t *Tree) selectNth(lo, hi, n, axis int) {
	for hi-lo > 1 {
		p := t.medianOfThree(lo, hi, axis)
		i, j := lo, hi-1
		for i <= j {
			for t.points[i][axis] < p {
				i++
			}
			for t.points[j][axis] > p {
				j--
			}
			if i <= j {
				t.swap(i, j)
				i++
				j--
			}
		}
		switch {
		case n <= j:
			hi = j + 1
		case n >= i:
			lo = i
		default:
			return
		}
	}
}

func (t *Tree) medianOfThree(lo, hi, axis int) float32 {
	a := t.points[lo][axis]
	b := t.points[(lo+hi)/2][axis]
	c := t.points[hi-1][axis]
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		b = a
	}
	return b
}

func (t *Tree) swap(i, j int) {
	t.points[i], t.points[j] = t.points[j], t.points[i]
	t.ids[i], t.ids[j] = t.ids[j], t.ids[i]
}

// Within returns every indexed point with Euclidean distance <= radius from
// center, ordered by ascending distance with ties broken by ascending ID.
// A zero radius returns only exact matches; a negative radius returns nil.
func (t *Tree) Within(center geom.Point, radius float32) []Neighbor {
	if len(t.points) == 0 || radius < 0 {
		return nil
	}

	r2 := radius * radius
	var out []Neighbor
	t.within(0, len(t.points), 0, center, r2, &out)

	sortNeighbors(out)

	return out
}

func (t *Tree) within(lo, hi, axis int, center geom.Point, r2 float32, out *[]Neighbor) {
	if hi <= lo {
		return
	}

	mid := (lo + hi) / 2
	d2 := geom.SquaredDistance(center, t.points[mid])
	if d2 <= r2 {
		*out = append(*out, Neighbor{ID: t.ids[mid], Distance: sqrt32(d2)})
	}

	split := t.points[mid][axis]
	delta := center[axis] - split
	next := (axis + 1) % 3

	if delta <= 0 {
		t.within(lo, mid, next, center, r2, out)
		if delta*delta <= r2 {
			t.within(mid+1, hi, next, center, r2, out)
		}
	} else {
		t.within(mid+1, hi, next, center, r2, out)
		if delta*delta <= r2 {
			t.within(lo, mid, next, center, r2, out)
		}
	}
}

// Nearest returns the k points closest to center, ordered by ascending
// distance with ties broken by ascending ID. Fewer than k results are
// returned if the tree holds fewer points.
func (t *Tree) Nearest(center geom.Point, k int) []Neighbor {
	if len(t.points) == 0 || k <= 0 {
		return nil
	}
	if k > len(t.points) {
		k = len(t.points)
	}

	h := &boundedHeap{limit: k}
	t.nearest(0, len(t.points), 0, center, h)

	out := make([]Neighbor, len(h.items))
	copy(out, h.items)
	sortNeighbors(out)

	return out
}

func (t *Tree) nearest(lo, hi, axis int, center geom.Point, h *boundedHeap) {
	if hi <= lo {
		return
	}

	mid := (lo + hi) / 2
	d2 := geom.SquaredDistance(center, t.points[mid])
	h.offer(Neighbor{ID: t.ids[mid], Distance: sqrt32(d2)}, d2)

	split := t.points[mid][axis]
	delta := center[axis] - split
	next := (axis + 1) % 3

	near, farLo, farHi := lo, mid+1, hi
	if delta > 0 {
		near, farLo, farHi = mid+1, lo, mid
	}
	if near == lo {
		t.nearest(lo, mid, next, center, h)
	} else {
		t.nearest(mid+1, hi, next, center, h)
	}
	if !h.full() || delta*delta <= h.worst() {
		t.nearest(farLo, farHi, next, center, h)
	}
}

func sortNeighbors(ns []Neighbor) {
	sort.Slice(ns, func(i, j int) bool {
		if ns[i].Distance != ns[j].Distance {
			return ns[i].Distance < ns[j].Distance
		}
		return ns[i].ID < ns[j].ID
	})
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
