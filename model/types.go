package model

import (
	"fmt"

	"github.com/hupe1980/stargo/geom"
)

// Category classifies a star system by its primary star.
// The numeric values match the snapshot encoding.
type Category uint8

const (
	// CategoryUnknown marks systems whose primary star is neither
	// fuel-scoopable nor a neutron star. They never appear on a route.
	CategoryUnknown Category = 0
	// CategoryFuel marks systems with a scoopable primary star.
	CategoryFuel Category = 1
	// CategoryNeutron marks systems with a neutron primary star.
	CategoryNeutron Category = 2
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryFuel:
		return "Fuel"
	case CategoryNeutron:
		return "Neutron"
	case CategoryUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
}

// Opposite returns the category a route must alternate to next.
// Opposite of CategoryUnknown is CategoryUnknown.
func (c Category) Opposite() Category {
	switch c {
	case CategoryFuel:
		return CategoryNeutron
	case CategoryNeutron:
		return CategoryFuel
	default:
		return CategoryUnknown
	}
}

// Routable reports whether systems of this category may appear on a route.
func (c Category) Routable() bool {
	return c == CategoryFuel || c == CategoryNeutron
}

// SystemID is a dense, stable identifier for a system within one loaded
// starmap. It is an index into the starmap's column tables and is only
// meaningful relative to the Store that produced it.
type SystemID uint32

// System is one point of the dataset. Immutable once loaded.
type System struct {
	ID       SystemID
	Name     string
	Pos      geom.Point
	Category Category
	// JumpRange is the per-system maximum jump distance in light years.
	// Zero means the caller's base range applies.
	JumpRange float32
}

// Hop is a single traversal between two consecutive route systems.
type Hop struct {
	From     SystemID
	To       SystemID
	Distance float32
}

// Route is an ordered alternating-category sequence of systems from start to
// goal. A route with start == goal has a single system and no hops.
type Route struct {
	// Systems lists every visited system in traversal order, start first.
	Systems []SystemID
	// Hops has len(Systems)-1 entries (zero for the trivial route).
	Hops []Hop
	// TotalDistance is the sum of all hop distances.
	TotalDistance float32
	// RequiredRange is the minimum unboosted jump range that would have
	// permitted every hop of the route.
	RequiredRange float32
}

// HopCount returns the number of hops on the route.
func (r *Route) HopCount() int { return len(r.Hops) }

// Stop is one formatted waypoint of a plotted route.
type Stop struct {
	Name string
	Pos  geom.Point
}
