//go:build !tinygo

package core

import "sync"

// State stands in for the saved interrupt mask on host builds.
type State struct{}

// schedMu serialises the timer list between goroutines on host builds,
// where the simulator and the model timer run concurrently.
var schedMu sync.Mutex

func disableInterrupts() State {
	schedMu.Lock()
	return State{}
}

func restoreInterrupts(State) {
	schedMu.Unlock()
}
