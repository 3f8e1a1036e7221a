package core

// TimerFreq is the system tick rate. One tick is one microsecond on every
// target.
const (
	TimerFreq = 1000000
)

// GetTime returns the current system time in timer ticks
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the current system time
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}

// TimerFromUS converts microseconds to timer ticks
func TimerFromUS(us uint32) uint32 {
	return uint32(uint64(us) * TimerFreq / 1000000)
}

// TimerToUS converts timer ticks to microseconds
func TimerToUS(ticks uint32) uint32 {
	return uint32(uint64(ticks) * 1000000 / TimerFreq)
}

// TimerFromSeconds converts a sample time in seconds to timer ticks
func TimerFromSeconds(s float64) uint32 {
	return uint32(s*TimerFreq + 0.5)
}

// ProcessTimers runs the timers due at the current system time
func ProcessTimers() {
	state := disableInterrupts()
	currentTime = GetTime()
	restoreInterrupts(state)
	TimerDispatch()
}

// AdvanceTime moves the system time forward by ticks, stopping at every
// wake time on the way so each timer sees its own deadline. Host builds use
// it in place of a hardware timer.
func AdvanceTime(ticks uint32) {
	target := GetTime() + ticks
	for {
		state := disableInterrupts()
		next := target
		if timerList != nil && timerBefore(timerList.WakeTime, target) {
			next = timerList.WakeTime
		}
		restoreInterrupts(state)

		if timerBefore(GetTime(), next) {
			SetTime(next)
		}
		ProcessTimers()
		if !timerBefore(GetTime(), target) {
			return
		}
	}
}
