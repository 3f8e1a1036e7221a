//go:build !tinygo

package core

import "sync/atomic"

var systemTicks atomic.Uint32

func getSystemTicks() uint32 {
	return systemTicks.Load()
}

func setSystemTicks(ticks uint32) {
	systemTicks.Store(ticks)
}
