// Package benchmark_test holds macro benchmarks over randomly generated
// star fields. Run with:
//
//	go test -bench . -benchmem ./benchmark_test
package benchmark_test

import (
	"context"
	"testing"

	"github.com/hupe1980/stargo"
	"github.com/hupe1980/stargo/geom"
	"github.com/hupe1980/stargo/kdtree"
	"github.com/hupe1980/stargo/model"
	"github.com/hupe1980/stargo/route"
	"github.com/hupe1980/stargo/starmap"
	"github.com/hupe1980/stargo/testutil"
)

// denseGalaxy is sized so that routes of a few dozen hops exist between
// far-apart neutron pairs under the default parameters.
func denseGalaxy(b *testing.B, fuel, neutron int) []model.System {
	b.Helper()
	return testutil.RandomGalaxy(testutil.NewRNG(1), fuel, neutron, 600)
}

func neutronPair(systems []model.System) (start, goal model.SystemID) {
	first, last := -1, -1
	for i, sys := range systems {
		if sys.Category != model.CategoryNeutron {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	return model.SystemID(first), model.SystemID(last)
}

func BenchmarkEngineNew(b *testing.B) {
	ctx := context.Background()
	store := starmap.New(denseGalaxy(b, 20000, 2000))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := route.New(ctx, store); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFind(b *testing.B) {
	ctx := context.Background()
	systems := denseGalaxy(b, 20000, 2000)
	store := starmap.New(systems)
	start, goal := neutronPair(systems)

	engine, err := route.New(ctx, store)
	if err != nil {
		b.Fatal(err)
	}
	requireRoutable(b, engine, start, goal)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Find(ctx, start, goal); err != nil {
			b.Fatal(err)
		}
	}
}

// requireRoutable skips the benchmark when the generated field happens to
// leave the chosen pair disconnected.
func requireRoutable(b *testing.B, engine *route.Engine, start, goal model.SystemID) {
	b.Helper()
	if _, err := engine.Find(context.Background(), start, goal); err != nil {
		b.Skipf("pair not routable: %v", err)
	}
}

func BenchmarkFindParallel4(b *testing.B) {
	ctx := context.Background()
	systems := denseGalaxy(b, 20000, 2000)
	store := starmap.New(systems)
	start, goal := neutronPair(systems)

	engine, err := route.New(ctx, store, func(o *route.Options) {
		o.Parallelism = 4
	})
	if err != nil {
		b.Fatal(err)
	}
	requireRoutable(b, engine, start, goal)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Find(ctx, start, goal); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKDTreeWithin(b *testing.B) {
	systems := denseGalaxy(b, 50000, 0)

	points := make([]geom.Point, len(systems))
	ids := make([]model.SystemID, len(systems))
	for i, sys := range systems {
		points[i] = sys.Pos
		ids[i] = model.SystemID(i)
	}
	tree := kdtree.Build(points, ids)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Within(points[i%len(points)], 50)
	}
}

func BenchmarkSnapshotLoad(b *testing.B) {
	data, err := starmap.SaveBytes(denseGalaxy(b, 20000, 2000))
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := starmap.LoadBytes(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPlan(b *testing.B) {
	ctx := context.Background()
	systems := denseGalaxy(b, 20000, 2000)
	start, goal := neutronPair(systems)

	data, err := starmap.SaveBytes(systems)
	if err != nil {
		b.Fatal(err)
	}

	planner, err := stargo.New().SnapshotBytes(data).Build(ctx)
	if err != nil {
		b.Fatal(err)
	}

	startName := systems[start].Name
	goalName := systems[goal].Name
	if _, err := planner.Plan(ctx, startName, goalName); err != nil {
		b.Skipf("pair not routable: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := planner.Plan(ctx, startName, goalName); err != nil {
			b.Fatal(err)
		}
	}
}
