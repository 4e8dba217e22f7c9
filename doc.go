// Package stargo provides an embedded neutron-star route plotter for Go.
//
// Stargo loads a snapshot of scoopable fuel stars and neutron stars, builds
// per-category spatial indexes over it, and plots routes that alternate
// between the two categories while minimizing the number of jumps:
//
//   - Columnar star storage loaded from a compact binary snapshot
//     (zstd or lz4 compressed, CRC32 checksummed)
//   - Static k-d trees per star category for radius queries
//   - Hop-count-first frontier search with configurable tie-breaking
//   - Alias resolution for "JP:"-prefixed jump point labels
//   - Snapshot loading from local files, S3, or MinIO blob stores
//   - Type-safe fluent builder: stargo.New()...Build(ctx)
//
// # Quick Start
//
// Build a planner from a local snapshot and plot a route:
//
//	ctx := context.Background()
//	planner, err := stargo.New().
//	    SnapshotFile("galaxy.snap").
//	    AliasFile("jumppoints.json").
//	    BaseRange(30).
//	    Parallelism(4).
//	    Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plan, err := planner.Plan(ctx, "JP:Sol", "Colonia")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	plan.WriteText(os.Stdout)
//
// Routes always start and end at neutron stars; intermediate fuel stops are
// where the ship refuels between supercharged jumps. Plan reports the
// minimum unboosted jump range that would have permitted every hop, so a
// pilot knows whether their ship can fly the route at all.
//
// # Snapshot Sources
//
// Snapshots can come from memory, the local file system, or a blob store:
//
//	planner, err := stargo.New().
//	    SnapshotStore(s3store, "snapshots/galaxy.snap").
//	    Build(ctx)
//
// Multiple independent planners can coexist in one process; each owns its
// own store and indexes.
package stargo
