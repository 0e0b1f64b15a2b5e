package client

import "sync"

// LoadingGuard tracks in-flight requests so a UI layer can show a
// blocking loading state. The guard is scoped per resource path; the
// aggregate Active count drives the indicator. It replaces the modal
// loading toast of the original client with observable server state.
type LoadingGuard struct {
	mu       sync.Mutex
	inFlight map[string]int
}

func NewLoadingGuard() *LoadingGuard {
	return &LoadingGuard{inFlight: make(map[string]int)}
}

// Begin marks a request against path as started.
func (g *LoadingGuard) Begin(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight[path]++
}

// End marks a request against path as settled. Called on both success
// and terminal failure.
func (g *LoadingGuard) End(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight[path] <= 1 {
		delete(g.inFlight, path)
		return
	}
	g.inFlight[path]--
}

// Active returns the number of distinct paths with in-flight requests.
func (g *LoadingGuard) Active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.inFlight)
}

// Loading reports whether anything is currently in flight.
func (g *LoadingGuard) Loading() bool {
	return g.Active() > 0
}
