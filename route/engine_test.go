package route

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stargo/geom"
	"github.com/hupe1980/stargo/model"
	"github.com/hupe1980/stargo/starmap"
)

func sys(name string, cat model.Category, x, y, z, jumpRange float32) model.System {
	return model.System{Name: name, Category: cat, Pos: geom.Point{x, y, z}, JumpRange: jumpRange}
}

func newEngine(t *testing.T, systems []model.System, optFns ...func(o *Options)) *Engine {
	t.Helper()
	e, err := New(context.Background(), starmap.New(systems), optFns...)
	require.NoError(t, err)
	return e
}

// The canonical line: A(neutron) - B(fuel) - C(neutron) - D(fuel), 5 ly
// apart, 10 ly range everywhere, no boost.
func lineSystems() []model.System {
	return []model.System{
		sys("A", model.CategoryNeutron, 0, 0, 0, 10),
		sys("B", model.CategoryFuel, 5, 0, 0, 10),
		sys("C", model.CategoryNeutron, 10, 0, 0, 10),
		sys("D", model.CategoryFuel, 15, 0, 0, 10),
	}
}

func noBoost(o *Options) { o.NeutronBoost = 1 }

func TestFind_AlternatingLine(t *testing.T) {
	e := newEngine(t, lineSystems(), noBoost)

	route, err := e.Find(context.Background(), 0, 3)
	require.NoError(t, err)

	assert.Equal(t, []model.SystemID{0, 1, 2, 3}, route.Systems)
	assert.Equal(t, 3, route.HopCount())
	assert.InDelta(t, 15.0, route.TotalDistance, 1e-4)
	for _, hop := range route.Hops {
		assert.InDelta(t, 5.0, hop.Distance, 1e-4)
	}
}

func TestFind_StartEqualsGoal(t *testing.T) {
	e := newEngine(t, lineSystems(), noBoost)

	route, err := e.Find(context.Background(), 2, 2)
	require.NoError(t, err)

	assert.Equal(t, []model.SystemID{2}, route.Systems)
	assert.Equal(t, 0, route.HopCount())
	assert.Equal(t, float32(0), route.TotalDistance)
}

func TestFind_NoRoute(t *testing.T) {
	systems := append(lineSystems(),
		sys("Far", model.CategoryFuel, 1000, 0, 0, 10),
	)
	e := newEngine(t, systems, noBoost)

	_, err := e.Find(context.Background(), 0, 4)
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestFind_IsolatedBranchIsPrunedNotFatal(t *testing.T) {
	// E dead-ends (nothing within range of it), but A-B-C-D still works.
	systems := append(lineSystems(),
		sys("E", model.CategoryFuel, -8, 0, 0, 0.5),
	)
	e := newEngine(t, systems, noBoost)

	route, err := e.Find(context.Background(), 0, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, route.HopCount())
}

func TestFind_NeutronBoostExtendsRange(t *testing.T) {
	// A -> B is 40 ly: reachable only with the 6x boost on A's 10 ly range.
	systems := []model.System{
		sys("A", model.CategoryNeutron, 0, 0, 0, 10),
		sys("B", model.CategoryFuel, 40, 0, 0, 10),
	}

	e := newEngine(t, systems, noBoost)
	_, err := e.Find(context.Background(), 0, 1)
	assert.ErrorIs(t, err, ErrNoRoute)

	e = newEngine(t, systems) // default boost 6
	route, err := e.Find(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, route.HopCount())
	// 40 ly on a 6x boosted leg demands a 40/6 base range.
	assert.InDelta(t, 40.0/6.0, route.RequiredRange, 1e-4)
}

func TestFind_RangeLimitOfTravelingSystemApplies(t *testing.T) {
	// B's own range is too small for B -> C even though C could reach B.
	systems := []model.System{
		sys("A", model.CategoryNeutron, 0, 0, 0, 10),
		sys("B", model.CategoryFuel, 5, 0, 0, 2),
		sys("C", model.CategoryNeutron, 10, 0, 0, 10),
	}
	e := newEngine(t, systems, noBoost)

	_, err := e.Find(context.Background(), 0, 2)
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestFind_HopInvariants(t *testing.T) {
	e := newEngine(t, lineSystems(), noBoost)

	route, err := e.Find(context.Background(), 0, 3)
	require.NoError(t, err)

	store := starmap.New(lineSystems())
	for _, hop := range route.Hops {
		assert.NotEqual(t, store.Category(hop.From), store.Category(hop.To))
		assert.LessOrEqual(t, hop.Distance, e.rangeLimit(hop.From))
	}
}

func TestFind_DistanceTieBreak(t *testing.T) {
	// Two 2-hop paths A->M1->Z and A->M2->Z; M2 is the shorter detour.
	systems := []model.System{
		sys("A", model.CategoryNeutron, 0, 0, 0, 10),
		sys("M1", model.CategoryFuel, 5, 8, 0, 10),
		sys("M2", model.CategoryFuel, 5, 2, 0, 10),
		sys("Z", model.CategoryNeutron, 10, 0, 0, 10),
	}
	e := newEngine(t, systems, noBoost)

	route, err := e.Find(context.Background(), 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []model.SystemID{0, 2, 3}, route.Systems)
}

func TestFind_BudgetExhausted(t *testing.T) {
	e := newEngine(t, lineSystems(), noBoost, func(o *Options) { o.MaxNodes = 1 })

	_, err := e.Find(context.Background(), 0, 3)

	var be *ErrBudgetExhausted
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 1, be.Budget)
}

func TestFind_UnknownID(t *testing.T) {
	e := newEngine(t, lineSystems(), noBoost)

	_, err := e.Find(context.Background(), 0, 99)
	var unknown *ErrUnknownID
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, model.SystemID(99), unknown.ID)
}

func TestFind_UnroutableCategory(t *testing.T) {
	systems := append(lineSystems(),
		sys("X", model.CategoryUnknown, 20, 0, 0, 10),
	)
	e := newEngine(t, systems, noBoost)

	_, err := e.Find(context.Background(), 4, 0)
	var unroutable *ErrUnroutableSystem
	require.ErrorAs(t, err, &unroutable)
	assert.Equal(t, "X", unroutable.Name)
}

func TestFind_CanceledContext(t *testing.T) {
	e := newEngine(t, lineSystems(), noBoost)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Find(ctx, 0, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_InvalidOptions(t *testing.T) {
	store := starmap.New(lineSystems())

	_, err := New(context.Background(), store, func(o *Options) { o.BaseRange = -1 })
	assert.Error(t, err)

	_, err = New(context.Background(), store, func(o *Options) { o.NeutronBoost = 0.5 })
	assert.Error(t, err)
}

// randomGalaxy builds a reproducible synthetic dataset with both categories.
func randomGalaxy(rng *rand.Rand, n int, scale float32) []model.System {
	systems := make([]model.System, n)
	for i := range systems {
		cat := model.CategoryFuel
		if rng.Intn(2) == 0 {
			cat = model.CategoryNeutron
		}
		systems[i] = model.System{
			Name:     "S" + string(rune('A'+i%26)) + string(rune('0'+i/26)),
			Category: cat,
			Pos: geom.Point{
				rng.Float32() * scale,
				rng.Float32() * scale,
				rng.Float32() * scale,
			},
		}
	}
	return systems
}

// bruteMinHops is the reference alternating BFS the engine is checked
// against.
func bruteMinHops(systems []model.System, opts Options, start, goal int) (int, bool) {
	if start == goal {
		return 0, true
	}

	limit := func(i int) float32 {
		r := systems[i].JumpRange
		if r <= 0 {
			r = opts.BaseRange
		}
		if systems[i].Category == model.CategoryNeutron {
			r *= opts.NeutronBoost
		}
		return r
	}

	visited := map[int]bool{start: true}
	cur := []int{start}
	for depth := 1; depth <= len(systems); depth++ {
		var next []int
		for _, u := range cur {
			l := limit(u)
			for v := range systems {
				if visited[v] || systems[v].Category != systems[u].Category.Opposite() {
					continue
				}
				if geom.Distance(systems[u].Pos, systems[v].Pos) > l {
					continue
				}
				if v == goal {
					return depth, true
				}
				visited[v] = true
				next = append(next, v)
			}
		}
		if len(next) == 0 {
			return 0, false
		}
		cur = next
	}
	return 0, false
}

func TestFind_HopOptimality_CrossCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))
	systems := randomGalaxy(rng, 80, 100)

	opts := Options{BaseRange: 25, NeutronBoost: 2, MaxNodes: 1_000_000}
	e := newEngine(t, systems, func(o *Options) {
		o.BaseRange = opts.BaseRange
		o.NeutronBoost = opts.NeutronBoost
	})

	for trial := 0; trial < 40; trial++ {
		start := rng.Intn(len(systems))
		goal := rng.Intn(len(systems))

		wantHops, reachable := bruteMinHops(systems, opts, start, goal)

		route, err := e.Find(context.Background(), model.SystemID(start), model.SystemID(goal))
		if !reachable {
			assert.ErrorIs(t, err, ErrNoRoute, "trial %d: %d -> %d", trial, start, goal)
			continue
		}

		require.NoError(t, err, "trial %d: %d -> %d", trial, start, goal)
		assert.Equal(t, wantHops, route.HopCount(), "trial %d: %d -> %d", trial, start, goal)
	}
}

func TestFind_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(77))
	systems := randomGalaxy(rng, 120, 80)
	e := newEngine(t, systems, func(o *Options) {
		o.BaseRange = 20
		o.NeutronBoost = 2
	})

	first, err := e.Find(context.Background(), 3, 90)
	if err != nil {
		require.ErrorIs(t, err, ErrNoRoute)
		return
	}
	for i := 0; i < 5; i++ {
		again, err := e.Find(context.Background(), 3, 90)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFind_ParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(4321))
	systems := randomGalaxy(rng, 200, 100)

	seq := newEngine(t, systems, func(o *Options) {
		o.BaseRange = 20
		o.NeutronBoost = 2
	})
	par := newEngine(t, systems, func(o *Options) {
		o.BaseRange = 20
		o.NeutronBoost = 2
		o.Parallelism = 4
	})

	for trial := 0; trial < 20; trial++ {
		start := model.SystemID(rng.Intn(len(systems)))
		goal := model.SystemID(rng.Intn(len(systems)))

		wantRoute, wantErr := seq.Find(context.Background(), start, goal)
		gotRoute, gotErr := par.Find(context.Background(), start, goal)

		if wantErr != nil {
			assert.ErrorIs(t, gotErr, ErrNoRoute)
			continue
		}
		require.NoError(t, gotErr)
		assert.Equal(t, wantRoute, gotRoute, "trial %d: %d -> %d", trial, start, goal)
	}
}

func TestFind_MinDistanceAmongMinHop_CrossCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	systems := randomGalaxy(rng, 30, 60)

	opts := Options{BaseRange: 30, NeutronBoost: 2}
	e := newEngine(t, systems, func(o *Options) {
		o.BaseRange = opts.BaseRange
		o.NeutronBoost = opts.NeutronBoost
	})

	limit := func(i int) float32 {
		r := opts.BaseRange
		if systems[i].Category == model.CategoryNeutron {
			r *= opts.NeutronBoost
		}
		return r
	}

	// Exhaustive DFS over all alternating paths of exactly maxDepth hops.
	var bestDist float64
	var dfs func(u, goal, depth int, dist float64, onPath map[int]bool)
	dfs = func(u, goal, depth int, dist float64, onPath map[int]bool) {
		if depth == 0 {
			if u == goal && dist < bestDist {
				bestDist = dist
			}
			return
		}
		for v := range systems {
			if onPath[v] || systems[v].Category != systems[u].Category.Opposite() {
				continue
			}
			d := geom.Distance(systems[u].Pos, systems[v].Pos)
			if d > limit(u) {
				continue
			}
			onPath[v] = true
			dfs(v, goal, depth-1, dist+float64(d), onPath)
			delete(onPath, v)
		}
	}

	for trial := 0; trial < 10; trial++ {
		start := rng.Intn(len(systems))
		goal := rng.Intn(len(systems))
		if start == goal {
			continue
		}

		route, err := e.Find(context.Background(), model.SystemID(start), model.SystemID(goal))
		if err != nil {
			continue
		}
		if route.HopCount() > 4 {
			continue // keep the exhaustive check tractable
		}

		bestDist = math.Inf(1)
		dfs(start, goal, route.HopCount(), 0, map[int]bool{start: true})

		require.False(t, math.IsInf(bestDist, 1))
		assert.InDelta(t, bestDist, float64(route.TotalDistance), 1e-2,
			"trial %d: %d -> %d", trial, start, goal)
	}
}

func TestFind_GoalDistanceTieBreakStillMinimizesHops(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	systems := randomGalaxy(rng, 80, 100)

	opts := Options{BaseRange: 25, NeutronBoost: 2}
	e := newEngine(t, systems, func(o *Options) {
		o.BaseRange = opts.BaseRange
		o.NeutronBoost = opts.NeutronBoost
		o.TieBreak = TieBreakGoalDistance
	})

	for trial := 0; trial < 20; trial++ {
		start := rng.Intn(len(systems))
		goal := rng.Intn(len(systems))

		wantHops, reachable := bruteMinHops(systems, opts, start, goal)
		route, err := e.Find(context.Background(), model.SystemID(start), model.SystemID(goal))
		if !reachable {
			assert.ErrorIs(t, err, ErrNoRoute)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, wantHops, route.HopCount())
	}
}
