package core

// Timer represents a scheduled event
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer

	active bool
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

var (
	timerList   *Timer
	currentTime uint32
)

// timerBefore compares wake times across a wrap of the tick counter.
func timerBefore(a, b uint32) bool {
	return int32(a-b) < 0
}

// ScheduleTimer adds a timer to the schedule. Scheduling a timer that is
// already pending moves it to its new WakeTime.
func ScheduleTimer(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	removeTimer(t)
	t.active = true
	insertTimer(t)
}

// CancelTimer removes t from the schedule. A handler that is running when
// its timer is cancelled is not rescheduled.
func CancelTimer(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	t.active = false
	removeTimer(t)
}

// insertTimer inserts a timer in sorted order by WakeTime
func insertTimer(t *Timer) {
	if timerList == nil || timerBefore(t.WakeTime, timerList.WakeTime) {
		t.Next = timerList
		timerList = t
		return
	}

	current := timerList
	for current.Next != nil && !timerBefore(t.WakeTime, current.Next.WakeTime) {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

func removeTimer(t *Timer) {
	for p := &timerList; *p != nil; p = &(*p).Next {
		if *p == t {
			*p = t.Next
			t.Next = nil
			return
		}
	}
}

// TimerDispatch runs every timer due at currentTime. Handlers run outside
// the critical section so they may schedule or cancel timers.
func TimerDispatch() {
	state := disableInterrupts()
	for timerList != nil && !timerBefore(currentTime, timerList.WakeTime) {
		timer := timerList
		timerList = timer.Next
		timer.Next = nil

		restoreInterrupts(state)
		result := timer.Handler(timer)
		state = disableInterrupts()

		if result == SF_RESCHEDULE && timer.active {
			insertTimer(timer)
		} else {
			timer.active = false
		}
	}
	restoreInterrupts(state)
}

// PendingTimers returns the number of scheduled timers
func PendingTimers() int {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	n := 0
	for t := timerList; t != nil; t = t.Next {
		n++
	}
	return n
}

// ResetTimers drops every scheduled timer
func ResetTimers() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	for t := timerList; t != nil; {
		next := t.Next
		t.Next = nil
		t.active = false
		t = next
	}
	timerList = nil
}
