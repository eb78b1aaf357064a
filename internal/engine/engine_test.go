package engine_test

import (
	"testing"

	"github.com/kiwiland/railquery/internal/edgelist"
	"github.com/kiwiland/railquery/internal/engine"
	"github.com/kiwiland/railquery/internal/model"
)

func buildEngine(t *testing.T, input string) *engine.Engine {
	t.Helper()
	g, err := edgelist.Build(input)
	if err != nil {
		t.Fatalf("Build(%q) error: %v", input, err)
	}
	return engine.New(g)
}

func stations(labels ...string) []model.Station {
	out := make([]model.Station, len(labels))
	for i, l := range labels {
		out[i] = model.Station(l)
	}
	return out
}

func TestRouteDistance(t *testing.T) {
	cases := []struct {
		name  string
		input string
		stops []model.Station
		want  int
		ok    bool
	}{
		{"two hops", "AB2, BC3", stations("A", "B", "C"), 5, true},
		{"single station is zero", "AB2, BC3", stations("A"), 0, true},
		{"missing edge", "AB3, CD4", stations("A", "C"), 0, false},
		{"short-circuits before later hops", "AB3, CD4", stations("A", "C", "D"), 0, false},
		{"unknown origin", "AB3", stations("X", "A"), 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := buildEngine(t, tc.input)
			got, ok := e.RouteDistance(tc.stops...)
			if ok != tc.ok || got != tc.want {
				t.Errorf("RouteDistance(%v) = (%d, %v), want (%d, %v)", tc.stops, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestCircularRoutes(t *testing.T) {
	e := buildEngine(t, "CD3, DE3, EC3, EB4, BC4")
	got, ok := e.CircularRoutes("C", 4)
	if !ok || got != 2 {
		t.Fatalf("CircularRoutes(C, 4) = (%d, %v), want (2, true)", got, ok)
	}
}

func TestCircularRoutesDeadEndAborts(t *testing.T) {
	// D has no outgoing edges, so the fan-out hits a dead end on the
	// second round and the whole count must come back as no-route.
	e := buildEngine(t, "CD3, CE3, EC3")
	if _, ok := e.CircularRoutes("C", 3); ok {
		t.Fatal("CircularRoutes over a dead end should report no route")
	}
}

func TestExactStops(t *testing.T) {
	e := buildEngine(t, "AB3, AC2, BC3, BA2, CA7")
	got, ok := e.ExactStops("A", "B", 2)
	if !ok || got != 2 {
		t.Fatalf("ExactStops(A, B, 2) = (%d, %v), want (2, true)", got, ok)
	}
}

func TestExactStopsDeadEndsVanish(t *testing.T) {
	// B dead-ends; unlike CircularRoutes this must not abort, the
	// walk through B just drops out of the frontier.
	e := buildEngine(t, "AB3, AC2, CB1, CA7")
	got, ok := e.ExactStops("A", "B", 1)
	if !ok || got != 1 {
		t.Fatalf("ExactStops(A, B, 1) = (%d, %v), want (1, true)", got, ok)
	}
}

func TestShortestRoute(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		src, dst model.Station
		want     int
		ok       bool
	}{
		{"prefers more hops when shorter", "AB1, BC1, AD3, DC3", "A", "C", 2, true},
		{"no route", "AB1, CD1", "A", "D", 0, false},
		{"cycle excludes trivial zero path", "AB2, BA3", "A", "A", 5, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := buildEngine(t, tc.input)
			got, ok := e.ShortestRoute(tc.src, tc.dst)
			if ok != tc.ok || got != tc.want {
				t.Errorf("ShortestRoute(%s, %s) = (%d, %v), want (%d, %v)", tc.src, tc.dst, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestRoutesLessThan(t *testing.T) {
	e := buildEngine(t, "AB1, BC1, BA2, CA3, CD5, DA5")
	got, ok := e.RoutesLessThan("A", "A", 8)
	if !ok || got != 3 {
		t.Fatalf("RoutesLessThan(A, A, 8) = (%d, %v), want (3, true)", got, ok)
	}
}

func TestRoutesLessThanCountsRoutesPastDestination(t *testing.T) {
	// A-B-A qualifies, and so does continuing through the cycle again:
	// reaching the destination must not stop expansion.
	e := buildEngine(t, "AB1, BA1")
	got, ok := e.RoutesLessThan("A", "A", 5)
	if !ok || got != 2 {
		t.Fatalf("RoutesLessThan(A, A, 5) = (%d, %v), want (2, true)", got, ok)
	}
}

func TestQueriesAreIdempotent(t *testing.T) {
	e := buildEngine(t, "AB5, BC4, CD8, DC8, DE6, AD5, CE2, EB3, AE7")
	for i := 0; i < 3; i++ {
		if d, ok := e.ShortestRoute("B", "B"); !ok || d != 9 {
			t.Fatalf("run %d: ShortestRoute(B, B) = (%d, %v), want (9, true)", i, d, ok)
		}
		if n, ok := e.RoutesLessThan("C", "C", 30); !ok || n != 7 {
			t.Fatalf("run %d: RoutesLessThan(C, C, 30) = (%d, %v), want (7, true)", i, n, ok)
		}
		if n, ok := e.ExactStops("A", "B", 4); !ok || n != 3 {
			t.Fatalf("run %d: ExactStops(A, B, 4) = (%d, %v), want (3, true)", i, n, ok)
		}
	}
}
