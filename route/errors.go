package route

import (
	"errors"
	"fmt"

	"github.com/hupe1980/stargo/model"
)

// ErrNoRoute is returned when the frontier exhausts before reaching the
// goal. Unlike every other search failure it is a reportable result, not a
// fault: the run completes, it just has no route to show.
var ErrNoRoute = errors.New("no route found")

// ErrBudgetExhausted indicates the search exceeded its node budget before
// resolving. Degenerate inputs (disconnected category graph, zero-range
// systems) would otherwise grow the frontier without bound.
type ErrBudgetExhausted struct {
	Explored int
	Budget   int
}

func (e *ErrBudgetExhausted) Error() string {
	return fmt.Sprintf("search budget exhausted: explored %d of %d allowed nodes", e.Explored, e.Budget)
}

// ErrUnroutableSystem indicates a start or goal system whose category can
// never appear on an alternating route.
type ErrUnroutableSystem struct {
	ID       model.SystemID
	Name     string
	Category model.Category
}

func (e *ErrUnroutableSystem) Error() string {
	return fmt.Sprintf("system %q (id %d) has unroutable category %s", e.Name, e.ID, e.Category)
}

// ErrUnknownID indicates a SystemID outside the store.
type ErrUnknownID struct {
	ID model.SystemID
}

func (e *ErrUnknownID) Error() string {
	return fmt.Sprintf("unknown system id %d", e.ID)
}
