//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"

	"dspblocks/core"
)

// RP2040 timer peripheral: a free-running 1 MHz counter
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x0C // raw timer low word
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// UpdateSystemTime copies the hardware microsecond counter into the core
// clock, which ticks at core.TimerFreq = 1 MHz as well.
func UpdateSystemTime() {
	core.SetTime(timerRAWL.Get())
}
