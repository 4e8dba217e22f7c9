// Package format turns a found route into the externally consumed hop list.
//
// Only the fuel-category stops are emitted: the neutron legs between them
// are resolved by the in-game plotter at use time, so listing them would be
// noise to the consumer.
package format

import (
	"fmt"
	"io"

	"github.com/hupe1980/stargo/model"
	"github.com/hupe1980/stargo/starmap"
)

// FuelStops extracts the fuel-category stops of the route in traversal
// order, excluding the start system. The first stop is the first system
// jumped to after start; a zero-hop route yields no stops.
func FuelStops(store *starmap.Store, route *model.Route) []model.Stop {
	var stops []model.Stop
	for i, id := range route.Systems {
		if i == 0 {
			continue
		}
		if store.Category(id) != model.CategoryFuel {
			continue
		}
		stops = append(stops, model.Stop{
			Name: store.Name(id),
			Pos:  store.Pos(id),
		})
	}
	return stops
}

// Write emits one stop name per line in traversal order.
func Write(w io.Writer, stops []model.Stop) error {
	for _, stop := range stops {
		if _, err := fmt.Fprintln(w, stop.Name); err != nil {
			return err
		}
	}
	return nil
}

// WriteDetailed emits one stop per line with its coordinates.
func WriteDetailed(w io.Writer, stops []model.Stop) error {
	for _, stop := range stops {
		if _, err := fmt.Fprintf(w, "%s\t%.3f %.3f %.3f\n", stop.Name, stop.Pos.X(), stop.Pos.Y(), stop.Pos.Z()); err != nil {
			return err
		}
	}
	return nil
}
