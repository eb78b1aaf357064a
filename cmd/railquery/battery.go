package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/kiwiland/railquery/internal/engine"
)

const noSuchRoute = "NO SUCH ROUTE"

// The fixed query battery, in its historical order. The arguments are
// deliberately hardcoded here: the engine itself knows nothing about
// them.
var battery = []struct {
	name string
	run  func(e *engine.Engine) (int, bool)
}{
	{"distance A-B-C", func(e *engine.Engine) (int, bool) { return e.RouteDistance("A", "B", "C") }},
	{"distance A-D", func(e *engine.Engine) (int, bool) { return e.RouteDistance("A", "D") }},
	{"distance A-D-C", func(e *engine.Engine) (int, bool) { return e.RouteDistance("A", "D", "C") }},
	{"distance A-E-B-C-D", func(e *engine.Engine) (int, bool) { return e.RouteDistance("A", "E", "B", "C", "D") }},
	{"distance A-E-D", func(e *engine.Engine) (int, bool) { return e.RouteDistance("A", "E", "D") }},
	{"circular from C in 3", func(e *engine.Engine) (int, bool) { return e.CircularRoutes("C", 3) }},
	{"A to B in exactly 4", func(e *engine.Engine) (int, bool) { return e.ExactStops("A", "B", 4) }},
	{"shortest A to C", func(e *engine.Engine) (int, bool) { return e.ShortestRoute("A", "C") }},
	{"shortest cycle at B", func(e *engine.Engine) (int, bool) { return e.ShortestRoute("B", "B") }},
	{"C to C under 30", func(e *engine.Engine) (int, bool) { return e.RoutesLessThan("C", "C", 30) }},
}

func runBattery(e *engine.Engine, out io.Writer) {
	for i, q := range battery {
		v, ok := q.run(e)
		fmt.Fprintf(out, "Output #%d: %s\n", i+1, formatResult(v, ok))
	}
}

func formatResult(v int, ok bool) string {
	if !ok {
		return noSuchRoute
	}
	return strconv.Itoa(v)
}
