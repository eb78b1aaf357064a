// Package engine answers route queries against an immutable graph.
//
// Four of the five queries are breadth-first sweeps sharing one
// frontier/next-frontier skeleton; they differ only in how a route is
// accepted or pruned each round. Queries hold no state of their own,
// so the same Engine may serve any number of calls and repeated calls
// always agree.
package engine

import (
	"github.com/kiwiland/railquery/internal/graph"
	"github.com/kiwiland/railquery/internal/model"
)

type Engine struct {
	g *graph.Graph
}

func New(g *graph.Graph) *Engine {
	return &Engine{g: g}
}

// Route is one concrete in-progress walk: the stations visited so far
// and the distance accumulated over them. Routes ending at the same
// station via different paths stay separate; the frontier is never
// deduplicated.
type Route struct {
	Stops    []model.Station
	Distance int
}

// Current returns the station the route is presently at.
func (r Route) Current() model.Station {
	return r.Stops[len(r.Stops)-1]
}

// expand grows a route one hop in every available direction. A station
// with no outgoing edges yields nothing; the route simply drops out of
// the frontier.
func (e *Engine) expand(r Route) []Route {
	out := e.g.Outgoing(r.Current())
	next := make([]Route, 0, len(out))
	for _, edge := range out {
		stops := make([]model.Station, len(r.Stops), len(r.Stops)+1)
		copy(stops, r.Stops)
		next = append(next, Route{
			Stops:    append(stops, edge.To),
			Distance: r.Distance + edge.Distance,
		})
	}
	return next
}

// visitFunc inspects one frontier route and reports whether it should
// expand into the next round.
type visitFunc func(r Route) bool

// traverse seeds the frontier with the start station expanded one hop,
// then runs rounds of whole-frontier expansion. rounds < 0 means run
// until the frontier empties. Returns the final frontier.
func (e *Engine) traverse(start model.Station, rounds int, visit visitFunc) []Route {
	frontier := e.expand(Route{Stops: []model.Station{start}})
	for round := 0; rounds < 0 || round < rounds; round++ {
		if len(frontier) == 0 {
			break
		}
		var next []Route
		for _, r := range frontier {
			if !visit(r) {
				continue
			}
			next = append(next, e.expand(r)...)
		}
		frontier = next
	}
	return frontier
}

// RouteDistance walks a literal stop sequence, summing single-hop
// distances. The first missing hop short-circuits to no-route. A
// one-station sequence is distance 0.
func (e *Engine) RouteDistance(stops ...model.Station) (int, bool) {
	total := 0
	for i := 1; i < len(stops); i++ {
		d, ok := e.g.Lookup(stops[i-1], stops[i])
		if !ok {
			return 0, false
		}
		total += d
	}
	return total, true
}

// CircularRoutes runs exactly the given number of expansion rounds
// from start, tracking bare stations rather than full routes, and
// counts every frontier arrival back at start. Unlike the other
// sweeps, a dead end anywhere in the fan-out aborts the whole count
// with no-route.
func (e *Engine) CircularRoutes(start model.Station, rounds int) (int, bool) {
	frontier := []model.Station{start}
	count := 0
	for i := 0; i < rounds; i++ {
		var next []model.Station
		for _, s := range frontier {
			out := e.g.Outgoing(s)
			if len(out) == 0 {
				return 0, false
			}
			for _, edge := range out {
				if edge.To == start {
					count++
				}
				next = append(next, edge.To)
			}
		}
		frontier = next
	}
	return count, true
}

// ExactStops counts the routes sitting at dest after the seeded
// frontier has been expanded through the given number of rounds. Dead
// ends drop out silently.
func (e *Engine) ExactStops(start, dest model.Station, rounds int) (int, bool) {
	frontier := e.traverse(start, rounds, func(Route) bool { return true })
	count := 0
	for _, r := range frontier {
		if r.Current() == dest {
			count++
		}
	}
	return count, true
}

// ShortestRoute finds the smallest completed distance from start to
// dest. Routes at or beyond the running best are pruned, and a route
// that reaches dest is never re-expanded. Because the initial frontier
// is already one hop in, start == dest finds the shortest nontrivial
// cycle, never the zero-length path. This is a pruned breadth-first
// sweep, not Dijkstra; it terminates on positive edge distances.
func (e *Engine) ShortestRoute(start, dest model.Station) (int, bool) {
	best := -1
	e.traverse(start, -1, func(r Route) bool {
		if best >= 0 && r.Distance >= best {
			return false
		}
		if r.Current() == dest {
			best = r.Distance
			return false
		}
		return true
	})
	if best < 0 {
		return 0, false
	}
	return best, true
}

// RoutesLessThan counts every route from start to dest with distance
// strictly under the ceiling. Reaching dest is not terminal: the route
// keeps expanding, so cycles past dest can qualify again at a longer
// distance.
func (e *Engine) RoutesLessThan(start, dest model.Station, ceiling int) (int, bool) {
	count := 0
	e.traverse(start, -1, func(r Route) bool {
		if r.Distance >= ceiling {
			return false
		}
		if r.Current() == dest {
			count++
		}
		return true
	})
	return count, true
}
