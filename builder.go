// This file implements the fluent builder API for creating and configuring
// Planner instances. The builder is immutable - each method returns a new
// builder with the updated configuration.
package stargo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hupe1980/stargo/alias"
	"github.com/hupe1980/stargo/blobstore"
	"github.com/hupe1980/stargo/model"
	"github.com/hupe1980/stargo/resource"
	"github.com/hupe1980/stargo/route"
	"github.com/hupe1980/stargo/starmap"
)

// New creates a new planner builder with default search parameters.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration. This ensures thread-safety and prevents accidental
// state sharing.
//
// Example:
//
//	planner, err := stargo.New().
//	    SnapshotFile("galaxy.snap").
//	    AliasFile("jumppoints.json").
//	    BaseRange(30).
//	    Parallelism(4).
//	    Build(ctx)
func New() Builder {
	return Builder{
		baseRange:    route.DefaultOptions.BaseRange,
		neutronBoost: route.DefaultOptions.NeutronBoost,
		maxNodes:     route.DefaultOptions.MaxNodes,
		tieBreak:     route.DefaultOptions.TieBreak,
		parallelism:  route.DefaultOptions.Parallelism,
	}
}

// Builder is an immutable fluent builder for creating Planner instances.
// Each method returns a new builder with the updated configuration.
type Builder struct {
	snapshotPath  string
	snapshotData  []byte
	snapshotStore blobstore.Store
	snapshotKey   string
	aliasPath     string
	aliases       map[string]string
	baseRange     float32
	neutronBoost  float32
	maxNodes      int
	tieBreak      route.TieBreak
	parallelism   int
	ioLimit       int64
	logger        *Logger
	metrics       MetricsCollector
}

// SnapshotFile loads the star snapshot from a local file.
func (b Builder) SnapshotFile(path string) Builder {
	b.snapshotPath = path
	return b
}

// SnapshotBytes loads the star snapshot from an in-memory byte slice.
func (b Builder) SnapshotBytes(data []byte) Builder {
	b.snapshotData = data
	return b
}

// SnapshotStore loads the star snapshot from a blob store under the given key.
func (b Builder) SnapshotStore(store blobstore.Store, key string) Builder {
	b.snapshotStore = store
	b.snapshotKey = key
	return b
}

// AliasFile loads jump point aliases from a JSON file. If the file does not
// exist it is created with the default aliases first.
func (b Builder) AliasFile(path string) Builder {
	b.aliasPath = path
	return b
}

// Aliases sets jump point aliases directly, bypassing the alias file.
func (b Builder) Aliases(aliases map[string]string) Builder {
	b.aliases = aliases
	return b
}

// BaseRange sets the unboosted jump range in light years for systems without
// a per-system range attribute. Default: 30.
func (b Builder) BaseRange(ly float32) Builder {
	b.baseRange = ly
	return b
}

// NeutronBoost sets the range multiplier applied when jumping from a neutron
// star. Default: 6.
func (b Builder) NeutronBoost(factor float32) Builder {
	b.neutronBoost = factor
	return b
}

// MaxNodes bounds the number of search nodes a single plan may allocate.
// Default: 4,000,000.
func (b Builder) MaxNodes(n int) Builder {
	b.maxNodes = n
	return b
}

// TieBreakGoalDistance switches the equal-hop frontier ordering from
// cumulative travel distance to straight-line distance to the goal. Often
// converges faster, but no longer guarantees the shortest minimum-hop route.
func (b Builder) TieBreakGoalDistance() Builder {
	b.tieBreak = route.TieBreakGoalDistance
	return b
}

// Parallelism sets the number of concurrent frontier expansion workers.
// Default: 1 (sequential). Results are identical either way.
func (b Builder) Parallelism(n int) Builder {
	b.parallelism = n
	return b
}

// IOLimit caps snapshot file reads at the given bytes per second.
// Default: unlimited.
func (b Builder) IOLimit(bytesPerSec int64) Builder {
	b.ioLimit = bytesPerSec
	return b
}

// Logger sets the structured logger for operation tracing.
func (b Builder) Logger(l *Logger) Builder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	b.metrics = mc
	return b
}

// Build loads the snapshot, constructs the spatial indexes, and returns a
// ready Planner.
func (b Builder) Build(ctx context.Context) (*Planner, error) {
	logger := b.logger
	if logger == nil {
		logger = NoopLogger()
	}
	metrics := b.metrics
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	var controller *resource.Controller
	if b.parallelism > 1 || b.ioLimit > 0 {
		controller = resource.NewController(resource.Config{
			MaxSearchWorkers:   int64(b.parallelism),
			IOLimitBytesPerSec: b.ioLimit,
		})
	}

	store, source, err := b.loadSnapshot(ctx, controller)
	count := 0
	if store != nil {
		count = store.Count()
	}
	logger.LogSnapshotLoad(ctx, source, count, err)
	if err != nil {
		return nil, translateLoadError(err)
	}

	resolver, err := b.loadAliases()
	if err != nil {
		return nil, err
	}

	indexStart := time.Now()
	engine, err := route.New(ctx, store, func(o *route.Options) {
		o.BaseRange = b.baseRange
		o.NeutronBoost = b.neutronBoost
		o.MaxNodes = b.maxNodes
		o.TieBreak = b.tieBreak
		o.Parallelism = b.parallelism
		o.Controller = controller
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordIndexBuild(time.Since(indexStart))
	logger.LogIndexBuild(ctx,
		store.CategoryCount(model.CategoryFuel),
		store.CategoryCount(model.CategoryNeutron),
	)

	return &Planner{
		store:    store,
		engine:   engine,
		resolver: resolver,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

// MustBuild creates the Planner, panicking on error.
func (b Builder) MustBuild(ctx context.Context) *Planner {
	p, err := b.Build(ctx)
	if err != nil {
		panic(err)
	}
	return p
}

func (b Builder) loadSnapshot(ctx context.Context, controller *resource.Controller) (*starmap.Store, string, error) {
	metrics := b.metrics
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	sources := 0
	if b.snapshotData != nil {
		sources++
	}
	if b.snapshotPath != "" {
		sources++
	}
	if b.snapshotStore != nil {
		sources++
	}
	if sources == 0 {
		return nil, "", errors.New("no snapshot source configured")
	}
	if sources > 1 {
		return nil, "", errors.New("multiple snapshot sources configured")
	}

	loadStart := time.Now()

	var (
		store  *starmap.Store
		source string
		err    error
	)
	switch {
	case b.snapshotData != nil:
		source = "memory"
		store, err = starmap.LoadBytes(b.snapshotData)

	case b.snapshotPath != "":
		source = b.snapshotPath
		store, err = b.loadSnapshotFile(ctx, controller)

	default:
		source = b.snapshotKey
		store, err = b.loadSnapshotBlob(ctx)
	}

	count := 0
	if store != nil {
		count = store.Count()
	}
	metrics.RecordSnapshotLoad(count, time.Since(loadStart), err)

	return store, source, err
}

func (b Builder) loadSnapshotFile(ctx context.Context, controller *resource.Controller) (*starmap.Store, error) {
	if controller == nil || b.ioLimit <= 0 {
		return starmap.LoadFile(b.snapshotPath)
	}

	f, err := os.Open(b.snapshotPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := controller.ThrottleReader(ctx, bufio.NewReaderSize(f, 256*1024))
	return starmap.Load(r)
}

func (b Builder) loadSnapshotBlob(ctx context.Context) (*starmap.Store, error) {
	blob, err := b.snapshotStore.Open(ctx, b.snapshotKey)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, fmt.Errorf("snapshot %q: %w", b.snapshotKey, err)
		}
		return nil, err
	}
	defer blob.Close()

	return starmap.LoadBlob(ctx, blob)
}

func (b Builder) loadAliases() (*alias.Resolver, error) {
	if b.aliases != nil {
		return alias.New(b.aliases), nil
	}
	if b.aliasPath != "" {
		if _, err := alias.WriteDefault(b.aliasPath); err != nil {
			return nil, err
		}
		return alias.LoadFile(b.aliasPath)
	}
	return alias.New(alias.DefaultAliases()), nil
}
