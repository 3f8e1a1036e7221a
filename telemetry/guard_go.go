//go:build !tinygo

package telemetry

import "sync"

// guard serialises the producer and the drain handler. On the host the
// "interrupt" is just another goroutine, so a mutex stands in for masking.
type guard struct {
	mu sync.Mutex
}

type guardState struct{}

func (g *guard) enter() guardState {
	g.mu.Lock()
	return guardState{}
}

func (g *guard) exit(guardState) {
	g.mu.Unlock()
}
