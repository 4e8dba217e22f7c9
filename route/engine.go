// Package route implements the alternating-category route search.
//
// The search is a best-first expansion over (hop count, distance): hop count
// is the cost being minimized, distance only breaks ties within a hop layer.
// From a system of one category only systems of the opposite category within
// that system's boosted jump range are reachable, so category alternation is
// structural rather than checked.
package route

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/stargo/geom"
	"github.com/hupe1980/stargo/kdtree"
	"github.com/hupe1980/stargo/model"
	"github.com/hupe1980/stargo/resource"
	"github.com/hupe1980/stargo/starmap"
)

// TieBreak selects the secondary ordering within a hop layer.
type TieBreak uint8

const (
	// TieBreakDistance orders equal-hop nodes by cumulative travel
	// distance. This yields the shortest route among all minimum-hop
	// routes.
	TieBreakDistance TieBreak = iota
	// TieBreakGoalDistance orders equal-hop nodes by straight-line
	// distance to the goal. A greedy heuristic: often faster to converge,
	// no longer guarantees the shortest minimum-hop route.
	TieBreakGoalDistance
)

// Options represents the options for configuring the search engine.
type Options struct {
	// BaseRange is the unboosted jump range in light years applied to
	// systems without a per-system range attribute.
	BaseRange float32

	// NeutronBoost multiplies the jump range when traveling FROM a
	// neutron system (supercharged frame shift drive).
	NeutronBoost float32

	// MaxNodes bounds the total number of search nodes allocated before
	// the search fails with ErrBudgetExhausted.
	MaxNodes int

	// TieBreak selects the secondary frontier ordering.
	TieBreak TieBreak

	// Parallelism is the number of concurrent expansion workers per hop
	// layer. Values <= 1 expand sequentially. Results are identical
	// either way.
	Parallelism int

	// Controller optionally bounds expansion workers across engines.
	Controller *resource.Controller
}

// DefaultOptions are sized for the full galaxy dump.
var DefaultOptions = Options{
	BaseRange:    30,
	NeutronBoost: 6,
	MaxNodes:     4_000_000,
	TieBreak:     TieBreakDistance,
	Parallelism:  1,
}

// Engine searches for alternating-category routes over one loaded starmap.
// The engine is read-only after New and safe for concurrent Find calls.
type Engine struct {
	store *starmap.Store
	trees map[model.Category]*kdtree.Tree
	opts  Options
}

// New builds the per-category spatial indexes over the store and returns a
// ready engine. Index construction for the two categories runs in parallel.
func New(ctx context.Context, store *starmap.Store, optFns ...func(o *Options)) (*Engine, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.BaseRange <= 0 {
		return nil, fmt.Errorf("base range must be positive, got %g", opts.BaseRange)
	}
	if opts.NeutronBoost < 1 {
		return nil, fmt.Errorf("neutron boost must be >= 1, got %g", opts.NeutronBoost)
	}

	e := &Engine{
		store: store,
		trees: make(map[model.Category]*kdtree.Tree, 2),
	}

	cats := []model.Category{model.CategoryFuel, model.CategoryNeutron}
	trees := make([]*kdtree.Tree, len(cats))

	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range cats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			points := make([]geom.Point, 0, store.CategoryCount(cat))
			ids := make([]model.SystemID, 0, store.CategoryCount(cat))
			for sys := range store.Systems(cat) {
				points = append(points, sys.Pos)
				ids = append(ids, sys.ID)
			}
			trees[i] = kdtree.Build(points, ids)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, cat := range cats {
		e.trees[cat] = trees[i]
	}

	e.opts = opts

	return e, nil
}

// Tree exposes the spatial index of one category, mainly for diagnostics.
func (e *Engine) Tree(cat model.Category) *kdtree.Tree {
	return e.trees[cat]
}

// rangeLimit returns the maximum hop distance when traveling from the system.
func (e *Engine) rangeLimit(id model.SystemID) float32 {
	limit := e.store.RangeOf(id, e.opts.BaseRange)
	if e.store.Category(id) == model.CategoryNeutron {
		limit *= e.opts.NeutronBoost
	}
	return limit
}

// searchNode is one explored path state. Nodes live in a flat arena and
// reference their parent by index, so finished searches free in one sweep
// and no ownership cycles exist.
type searchNode struct {
	sys    model.SystemID
	hops   int32
	cost   float32
	parent int32 // arena index, -1 for the root
}

// visitedState records the best (hops, cost) a system was reached with.
type visitedState struct {
	hops int32
	cost float32
}

// betterThan reports whether v beats or matches the candidate state.
func (v visitedState) betterThan(hops int32, cost float32) bool {
	if v.hops != hops {
		return v.hops < hops
	}
	return v.cost <= cost
}

// Find searches for a minimum-hop alternating route from start to goal.
// Ties between equal-hop routes are broken by the configured TieBreak.
// Returns ErrNoRoute if the goal is unreachable and *ErrBudgetExhausted if
// the node budget runs out first.
func (e *Engine) Find(ctx context.Context, start, goal model.SystemID) (*model.Route, error) {
	startSys, ok := e.store.ByID(start)
	if !ok {
		return nil, &ErrUnknownID{ID: start}
	}
	goalSys, ok := e.store.ByID(goal)
	if !ok {
		return nil, &ErrUnknownID{ID: goal}
	}
	if !startSys.Category.Routable() {
		return nil, &ErrUnroutableSystem{ID: start, Name: startSys.Name, Category: startSys.Category}
	}
	if !goalSys.Category.Routable() {
		return nil, &ErrUnroutableSystem{ID: goal, Name: goalSys.Name, Category: goalSys.Category}
	}

	if start == goal {
		return &model.Route{Systems: []model.SystemID{start}}, nil
	}

	s := &search{
		engine:  e,
		goal:    goal,
		goalPos: goalSys.Pos,
		visited: make(map[model.SystemID]visitedState),
	}

	s.arena = append(s.arena, searchNode{sys: start, parent: -1})
	s.visited[start] = visitedState{}
	s.frontier.push(frontierItem{Node: 0, Sys: start})

	for s.frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		layer := s.drainLayer()
		if len(layer) == 0 {
			break
		}

		// The layer pops in (cost, id) order, so the first goal hit is
		// the best route of the minimal hop count.
		for _, item := range layer {
			if item.Sys == goal {
				return s.reconstruct(item.Node), nil
			}
		}

		if err := s.expandLayer(ctx, layer); err != nil {
			return nil, err
		}
	}

	return nil, ErrNoRoute
}

// search is the per-invocation state; the engine itself stays immutable.
type search struct {
	engine  *Engine
	goal    model.SystemID
	goalPos geom.Point
	arena   []searchNode
	visited map[model.SystemID]visitedState
	frontier
}

// stale reports whether a frontier entry was superseded by a better path to
// the same system. Superseded entries stay on the heap and are skipped here.
func (s *search) stale(item frontierItem) bool {
	node := s.arena[item.Node]
	v, ok := s.visited[node.sys]
	if !ok {
		return true
	}
	return v.hops != node.hops || v.cost != node.cost
}

// drainLayer pops every live frontier entry of the next hop layer, in
// (key, id) order, skipping stale and duplicate entries.
func (s *search) drainLayer() []frontierItem {
	var layer []frontierItem
	seen := make(map[model.SystemID]struct{})

	layerHops := int32(-1)
	for s.frontier.Len() > 0 {
		if layerHops >= 0 && s.frontier.top().Hops != layerHops {
			break
		}

		item := s.frontier.pop()
		if s.stale(item) {
			continue
		}
		if _, dup := seen[item.Sys]; dup {
			continue
		}

		layerHops = item.Hops
		seen[item.Sys] = struct{}{}
		layer = append(layer, item)
	}

	return layer
}

// expandLayer generates the successor candidates of a full hop layer and
// pushes the surviving ones. Candidate generation may run concurrently; the
// merge is sequential and in layer order, keeping results deterministic.
func (s *search) expandLayer(ctx context.Context, layer []frontierItem) error {
	results := make([][]kdtree.Neighbor, len(layer))

	workers := s.engine.opts.Parallelism
	if workers <= 1 || len(layer) == 1 {
		for i, item := range layer {
			results[i] = s.successors(item)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, item := range layer {
			g.Go(func() error {
				if ctrl := s.engine.opts.Controller; ctrl != nil {
					if err := ctrl.AcquireWorker(gctx); err != nil {
						return err
					}
					defer ctrl.ReleaseWorker()
				}
				results[i] = s.successors(item)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	for i, item := range layer {
		parent := s.arena[item.Node]
		for _, n := range results[i] {
			hops := parent.hops + 1
			cost := parent.cost + n.Distance

			if v, ok := s.visited[n.ID]; ok && v.betterThan(hops, cost) {
				continue
			}
			s.visited[n.ID] = visitedState{hops: hops, cost: cost}

			if len(s.arena) >= s.engine.opts.MaxNodes {
				return &ErrBudgetExhausted{Explored: len(s.arena), Budget: s.engine.opts.MaxNodes}
			}

			idx := int32(len(s.arena))
			s.arena = append(s.arena, searchNode{sys: n.ID, hops: hops, cost: cost, parent: item.Node})
			s.frontier.push(frontierItem{Node: idx, Hops: hops, Key: s.key(n.ID, cost), Sys: n.ID})
		}
	}

	return nil
}

// successors queries the opposite-category index within the traveling
// system's range limit. Read-only against engine state, safe to run
// concurrently for several frontier nodes.
func (s *search) successors(item frontierItem) []kdtree.Neighbor {
	e := s.engine
	cat := e.store.Category(item.Sys)
	tree := e.trees[cat.Opposite()]
	if tree == nil {
		return nil
	}
	return tree.Within(e.store.Pos(item.Sys), e.rangeLimit(item.Sys))
}

// key computes the frontier tie-break key for a freshly reached system.
func (s *search) key(sys model.SystemID, cost float32) float32 {
	if s.engine.opts.TieBreak == TieBreakGoalDistance {
		return geom.Distance(s.engine.store.Pos(sys), s.goalPos)
	}
	return cost
}

// reconstruct walks the parent chain and assembles the final route.
func (s *search) reconstruct(nodeIdx int32) *model.Route {
	var ids []model.SystemID
	for idx := nodeIdx; idx >= 0; idx = s.arena[idx].parent {
		ids = append(ids, s.arena[idx].sys)
	}
	// Reverse into traversal order.
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}

	route := &model.Route{Systems: ids}
	for i := 1; i < len(ids); i++ {
		from, to := ids[i-1], ids[i]
		dist := geom.Distance(s.engine.store.Pos(from), s.engine.store.Pos(to))
		route.Hops = append(route.Hops, model.Hop{From: from, To: to, Distance: dist})
		route.TotalDistance += dist

		// The base range this hop demanded, with the boost factored out.
		demanded := dist
		if s.engine.store.Category(from) == model.CategoryNeutron {
			demanded /= s.engine.opts.NeutronBoost
		}
		if demanded > route.RequiredRange {
			route.RequiredRange = demanded
		}
	}

	return route
}
