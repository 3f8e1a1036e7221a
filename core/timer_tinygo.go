//go:build tinygo

package core

import "time"

// The hardware timer is free-running; SetTime moves an offset against it.
var tickOffset uint32

func hardwareTicks() uint32 {
	return uint32(time.Now().UnixMicro())
}

func getSystemTicks() uint32 {
	return hardwareTicks() + tickOffset
}

func setSystemTicks(ticks uint32) {
	state := disableInterrupts()
	tickOffset = ticks - hardwareTicks()
	restoreInterrupts(state)
}
