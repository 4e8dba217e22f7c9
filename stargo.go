package stargo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/stargo/alias"
	"github.com/hupe1980/stargo/format"
	"github.com/hupe1980/stargo/model"
	"github.com/hupe1980/stargo/route"
	"github.com/hupe1980/stargo/starmap"
)

// Planner plots neutron-boosted routes over one loaded star snapshot.
// It is read-only after Build and safe for concurrent Plan calls.
type Planner struct {
	store    *starmap.Store
	engine   *route.Engine
	resolver *alias.Resolver
	logger   *Logger
	metrics  MetricsCollector
}

// Store exposes the loaded star store, mainly for diagnostics.
func (p *Planner) Store() *starmap.Store { return p.store }

// Plan resolves the two labels and plots a minimum-hop route between them.
// Both endpoints must resolve to neutron-category systems.
func (p *Planner) Plan(ctx context.Context, startLabel, goalLabel string) (*Plan, error) {
	start := time.Now()

	plan, err := p.plan(ctx, startLabel, goalLabel)

	hops := 0
	if plan != nil {
		hops = plan.Route.HopCount()
	}
	p.metrics.RecordPlan(hops, time.Since(start), err)
	p.logger.LogPlan(ctx, startLabel, goalLabel, hops, err)

	return plan, err
}

func (p *Planner) plan(ctx context.Context, startLabel, goalLabel string) (*Plan, error) {
	startID, err := p.resolve(ctx, startLabel)
	if err != nil {
		return nil, err
	}
	goalID, err := p.resolve(ctx, goalLabel)
	if err != nil {
		return nil, err
	}

	for _, id := range []model.SystemID{startID, goalID} {
		if cat := p.store.Category(id); cat != model.CategoryNeutron {
			return nil, &ErrNotNeutron{Name: p.store.Name(id), Category: cat}
		}
	}

	r, err := p.engine.Find(ctx, startID, goalID)
	if err != nil {
		return nil, translateError(err)
	}

	return p.assemble(r), nil
}

// resolve maps a label through the alias table to a SystemID.
func (p *Planner) resolve(ctx context.Context, label string) (model.SystemID, error) {
	name, err := p.resolver.Resolve(label)
	if err != nil {
		return 0, translateError(err)
	}
	p.logger.LogAliasResolve(ctx, label, name)

	id, ok := p.store.IDByName(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSystem, name)
	}
	return id, nil
}

func (p *Planner) assemble(r *model.Route) *Plan {
	neutronJumps := 0
	for _, hop := range r.Hops {
		if p.store.Category(hop.From) == model.CategoryNeutron {
			neutronJumps++
		}
	}

	first := r.Systems[0]
	last := r.Systems[len(r.Systems)-1]

	return &Plan{
		Start:         p.store.Name(first),
		Goal:          p.store.Name(last),
		Route:         r,
		Stops:         format.FuelStops(p.store, r),
		RequiredRange: r.RequiredRange,
		NeutronJumps:  neutronJumps,
	}
}

// Plan is a plotted route ready for presentation.
type Plan struct {
	// Start and Goal are the canonical names of the endpoints.
	Start string
	Goal  string

	// Route is the full alternating system sequence.
	Route *model.Route

	// Stops lists the fuel stops between the endpoints, in traversal order.
	Stops []model.Stop

	// RequiredRange is the minimum unboosted jump range in light years that
	// would have permitted every hop of the route.
	RequiredRange float32

	// NeutronJumps counts the hops departing from a neutron star.
	NeutronJumps int
}

// WriteText writes the plan in the classic route file shape: two summary
// lines, the start system, one fuel stop per line, and the goal system.
func (p *Plan) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Minimum jump range required: %.2f\n", p.RequiredRange); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total neutron jumps: %d\n", p.NeutronJumps); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, p.Start); err != nil {
		return err
	}
	if err := format.Write(w, p.Stops); err != nil {
		return err
	}
	if p.Goal != p.Start || p.Route.HopCount() > 0 {
		if _, err := fmt.Fprintln(w, p.Goal); err != nil {
			return err
		}
	}

	return nil
}
