package edgelist_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kiwiland/railquery/internal/edgelist"
	"github.com/kiwiland/railquery/internal/graph"
	"github.com/kiwiland/railquery/internal/model"
)

func TestParse(t *testing.T) {
	edges, err := edgelist.Parse("AB5, BC4\nCD8")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := []model.Edge{
		{From: "A", To: "B", Distance: 5},
		{From: "B", To: "C", Distance: 4},
		{From: "C", To: "D", Distance: 8},
	}
	if len(edges) != len(want) {
		t.Fatalf("Parse returned %d edges, want %d", len(edges), len(want))
	}
	for i, e := range want {
		if edges[i] != e {
			t.Errorf("edge %d = %+v, want %+v", i, edges[i], e)
		}
	}
}

func TestParseIgnoresSeparators(t *testing.T) {
	// The format is a pattern scan, not a delimiter split: any junk
	// between matches is skipped.
	edges, err := edgelist.Parse("!!AB12;;xCD7  9")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("Parse returned %d edges, want 2: %+v", len(edges), edges)
	}
	if edges[0].Distance != 12 || edges[1].Distance != 7 {
		t.Errorf("distances = %d, %d, want 12, 7", edges[0].Distance, edges[1].Distance)
	}
}

func TestParseEmptyInput(t *testing.T) {
	edges, err := edgelist.Parse("no edges here: 123 456")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("Parse returned %d edges, want 0", len(edges))
	}
}

func TestParseRejectsUnparseableDistance(t *testing.T) {
	_, err := edgelist.Parse("AB92233720368547758089")
	if !errors.Is(err, graph.ErrMalformedEdge) {
		t.Errorf("Parse = %v, want ErrMalformedEdge", err)
	}
}

func TestLoaderReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.txt")
	if err := os.WriteFile(path, []byte("AB5, BC4"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := edgelist.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	if n := l.Graph().EdgeCount(); n != 2 {
		t.Fatalf("initial EdgeCount = %d, want 2", n)
	}

	swapped := 0
	l.OnSwap(func(*graph.Graph) { swapped++ })

	if err := os.WriteFile(path, []byte("AB5, BC4, CA1"), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := l.Reload()
	if err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	if n := g.EdgeCount(); n != 3 {
		t.Errorf("reloaded EdgeCount = %d, want 3", n)
	}
	if swapped != 1 {
		t.Errorf("OnSwap fired %d times, want 1", swapped)
	}
	if l.Graph() != g {
		t.Error("Graph() should return the reloaded graph")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := edgelist.NewLoader(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("NewLoader on a missing file should fail")
	}
}
