package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/stargo/geom"
	"github.com/hupe1980/stargo/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns a pseudo-random number in [0,1).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// Point returns a pseudo-random point in the cube [0,extent)^3.
func (r *RNG) Point(extent float32) geom.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return geom.Point{
		r.rand.Float32() * extent,
		r.rand.Float32() * extent,
		r.rand.Float32() * extent,
	}
}

// RandomGalaxy generates a star field with the given number of fuel and
// neutron systems, uniformly placed in a cube of the given extent.
// Names are unique and deterministic for a fixed RNG seed.
func RandomGalaxy(rng *RNG, fuel, neutron int, extent float32) []model.System {
	systems := make([]model.System, 0, fuel+neutron)
	for i := 0; i < fuel; i++ {
		systems = append(systems, model.System{
			Name:     fmt.Sprintf("Fuel %d", i),
			Category: model.CategoryFuel,
			Pos:      rng.Point(extent),
		})
	}
	for i := 0; i < neutron; i++ {
		systems = append(systems, model.System{
			Name:     fmt.Sprintf("Neutron %d", i),
			Category: model.CategoryNeutron,
			Pos:      rng.Point(extent),
		})
	}
	return systems
}

// ExactMinHops computes the minimum hop count between start and goal by
// breadth-first search over the full adjacency, honoring category
// alternation and the neutron range boost. Returns -1 when no route exists.
// Quadratic per layer; only suitable for small star fields.
func ExactMinHops(systems []model.System, start, goal int, base, boost float32) int {
	if start == goal {
		return 0
	}

	reachable := func(from, to int) bool {
		if systems[to].Category == systems[from].Category {
			return false
		}
		limit := systems[from].JumpRange
		if limit <= 0 {
			limit = base
		}
		if systems[from].Category == model.CategoryNeutron {
			limit *= boost
		}
		return geom.SquaredDistance(systems[from].Pos, systems[to].Pos) <= limit*limit
	}

	visited := make([]bool, len(systems))
	visited[start] = true
	frontier := []int{start}

	for hops := 1; len(frontier) > 0; hops++ {
		var next []int
		for _, from := range frontier {
			for to := range systems {
				if visited[to] || !reachable(from, to) {
					continue
				}
				if to == goal {
					return hops
				}
				visited[to] = true
				next = append(next, to)
			}
		}
		frontier = next
	}

	return -1
}
