package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryOpposite(t *testing.T) {
	assert.Equal(t, CategoryNeutron, CategoryFuel.Opposite())
	assert.Equal(t, CategoryFuel, CategoryNeutron.Opposite())
	assert.Equal(t, CategoryUnknown, CategoryUnknown.Opposite())
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Fuel", CategoryFuel.String())
	assert.Equal(t, "Neutron", CategoryNeutron.String())
	assert.Equal(t, "Unknown", CategoryUnknown.String())
	assert.Equal(t, "Category(7)", Category(7).String())
}

func TestCategoryRoutable(t *testing.T) {
	assert.True(t, CategoryFuel.Routable())
	assert.True(t, CategoryNeutron.Routable())
	assert.False(t, CategoryUnknown.Routable())
}

func TestRouteHopCount(t *testing.T) {
	r := &Route{Systems: []SystemID{1}}
	assert.Equal(t, 0, r.HopCount())

	r = &Route{
		Systems: []SystemID{1, 2, 3},
		Hops:    []Hop{{From: 1, To: 2}, {From: 2, To: 3}},
	}
	assert.Equal(t, 2, r.HopCount())
}
