package core_test

import (
	"fmt"

	"github.com/katalvlaran/wareflow/astar"
	"github.com/katalvlaran/wareflow/core"
)

// ExampleNetwork_FindRoute builds a small square of flags and routes a ware
// across it.
//
//	A───B
//	│   │
//	C───D
func ExampleNetwork_FindRoute() {
	n := core.NewNetwork()
	a, _ := n.AddFlag(core.Coords{X: 0, Y: 0}, 1)
	b, _ := n.AddFlag(core.Coords{X: 2, Y: 0}, 1)
	c, _ := n.AddFlag(core.Coords{X: 0, Y: 2}, 1)
	d, _ := n.AddFlag(core.Coords{X: 2, Y: 2}, 1)
	_, _ = n.AddRoad(a, b, 2)
	_, _ = n.AddRoad(b, d, 5)
	_, _ = n.AddRoad(a, c, 2)
	_, _ = n.AddRoad(c, d, 2)

	route, ok := n.FindRoute(core.KindWare, a, d, astar.Unbounded)
	fmt.Println(ok, route.Cost, len(route.Nodes))
	// Output: true 4 3
}
