//go:build tinygo

package telemetry

import "runtime/interrupt"

// guard masks interrupts for the duration of a ring update. It nests
// correctly because the previous mask is restored on exit.
type guard struct{}

type guardState = interrupt.State

func (g *guard) enter() guardState {
	return interrupt.Disable()
}

func (g *guard) exit(state guardState) {
	interrupt.Restore(state)
}
