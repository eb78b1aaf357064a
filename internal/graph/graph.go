// Package graph holds the immutable adjacency structure every query
// runs against. Build once with New, then share freely: nothing here
// mutates after construction.
package graph

import (
	"errors"
	"fmt"

	"github.com/kiwiland/railquery/internal/model"
)

// ErrMalformedEdge is returned when an edge triple cannot form a valid
// graph entry (empty station token or negative distance).
var ErrMalformedEdge = errors.New("malformed edge")

// Graph maps origin station -> destination station -> distance.
// Stations with no outgoing edges are simply absent as keys.
type Graph struct {
	adj map[model.Station]map[model.Station]int
}

// New builds the adjacency map from edge triples. A repeated
// (from, to) pair overwrites the earlier distance; that is not an
// error, last write wins.
func New(edges []model.Edge) (*Graph, error) {
	adj := make(map[model.Station]map[model.Station]int)
	for _, e := range edges {
		if e.From == "" || e.To == "" {
			return nil, fmt.Errorf("%w: missing station in %q->%q", ErrMalformedEdge, e.From, e.To)
		}
		if e.Distance < 0 {
			return nil, fmt.Errorf("%w: negative distance %d on %s->%s", ErrMalformedEdge, e.Distance, e.From, e.To)
		}
		out, ok := adj[e.From]
		if !ok {
			out = make(map[model.Station]int)
			adj[e.From] = out
		}
		out[e.To] = e.Distance
	}
	return &Graph{adj: adj}, nil
}

// Lookup returns the single-hop distance from one station to another.
func (g *Graph) Lookup(from, to model.Station) (int, bool) {
	out, ok := g.adj[from]
	if !ok {
		return 0, false
	}
	d, ok := out[to]
	return d, ok
}

// Outgoing returns every edge leaving the station, in no particular
// order. A station with no outgoing edges yields an empty slice.
func (g *Graph) Outgoing(s model.Station) []model.Edge {
	out := g.adj[s]
	if len(out) == 0 {
		return nil
	}
	edges := make([]model.Edge, 0, len(out))
	for to, d := range out {
		edges = append(edges, model.Edge{From: s, To: to, Distance: d})
	}
	return edges
}

// Stations returns every station that has at least one outgoing edge.
func (g *Graph) Stations() []model.Station {
	out := make([]model.Station, 0, len(g.adj))
	for s := range g.adj {
		out = append(out, s)
	}
	return out
}

func (g *Graph) StationCount() int { return len(g.adj) }

func (g *Graph) EdgeCount() int {
	n := 0
	for _, out := range g.adj {
		n += len(out)
	}
	return n
}
