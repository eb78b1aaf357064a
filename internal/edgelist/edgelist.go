// Package edgelist parses the textual edge-list format and keeps a
// built graph in sync with the file it came from.
package edgelist

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/kiwiland/railquery/internal/graph"
	"github.com/kiwiland/railquery/internal/model"
)

// edgePattern matches one directed edge: two station letters followed
// by a digit run, e.g. "AB5". Everything between matches is separator
// noise (commas, spaces, newlines) and is ignored; the parse is a scan
// over the whole input, not a split.
var edgePattern = regexp.MustCompile(`([a-zA-Z])([a-zA-Z])(\d+)`)

// Parse extracts every edge triple from the input text. The only way a
// matched triple can fail is a distance token too large for int.
func Parse(input string) ([]model.Edge, error) {
	matches := edgePattern.FindAllStringSubmatch(input, -1)
	edges := make([]model.Edge, 0, len(matches))
	for _, m := range matches {
		d, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, fmt.Errorf("%w: distance token %q: %v", graph.ErrMalformedEdge, m[3], err)
		}
		edges = append(edges, model.Edge{
			From:     model.Station(m[1]),
			To:       model.Station(m[2]),
			Distance: d,
		})
	}
	return edges, nil
}

// Build is Parse followed by graph construction.
func Build(input string) (*graph.Graph, error) {
	edges, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return graph.New(edges)
}
