package edgelist

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/kiwiland/railquery/internal/graph"
)

// Loader reads an edge-list file into a graph and watches it for
// changes. The graph itself stays immutable; a reload builds a fresh
// one and swaps the pointer.
type Loader struct {
	path    string
	mu      sync.RWMutex
	current *graph.Graph
	onSwap  []func(*graph.Graph)
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: path}
	g, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = g
	return l, nil
}

// Graph returns the current (latest) graph.
func (l *Loader) Graph() *graph.Graph {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnSwap registers a callback invoked whenever a reload replaces the
// graph.
func (l *Loader) OnSwap(fn func(*graph.Graph)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onSwap = append(l.onSwap, fn)
}

// Reload forces an immediate re-read of the edge file.
func (l *Loader) Reload() (*graph.Graph, error) {
	g, err := l.load()
	if err != nil {
		return nil, err
	}
	l.swap(g)
	return g, nil
}

// Watch starts a background goroutine that rebuilds the graph when the
// edge file changes. Call the returned stop function to clean up. A
// file that rewrites into an unparseable state keeps the old graph.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("edge watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("edge watcher add %s: %w", l.path, err)
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					g, err := l.load()
					if err != nil {
						continue
					}
					l.swap(g)
				}
			case <-w.Errors:
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}

func (l *Loader) swap(g *graph.Graph) {
	l.mu.Lock()
	l.current = g
	callbacks := make([]func(*graph.Graph), len(l.onSwap))
	copy(callbacks, l.onSwap)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(g)
	}
}

func (l *Loader) load() (*graph.Graph, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read edge list %s: %w", l.path, err)
	}
	return Build(string(data))
}
