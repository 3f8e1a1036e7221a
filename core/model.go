// Model runner: the init/step/end entry points of a generated model.
package core

import "errors"

var (
	ErrNoSampleTime   = errors.New("model sample time is zero")
	ErrModelRunning   = errors.New("model already running")
	ErrModelNotInited = errors.New("model not initialised")
)

// Model runs an ordered list of blocks at a fixed sample period. Blocks
// are initialised and stepped in order and terminated in reverse.
type Model struct {
	Name       string
	Blocks     []*Block
	TsampTicks uint32

	timer   Timer
	inited  bool
	running bool
	steps   uint32
	err     error
}

// NewModel creates a model with sample time tsamp in seconds
func NewModel(name string, tsamp float64, blocks ...*Block) *Model {
	return &Model{
		Name:       name,
		Blocks:     blocks,
		TsampTicks: TimerFromSeconds(tsamp),
	}
}

// Init runs FlagInit on every block. When a block fails the blocks already
// initialised are terminated again.
func (m *Model) Init() error {
	if m.TsampTicks == 0 {
		return ErrNoSampleTime
	}
	for i, b := range m.Blocks {
		if err := Dispatch(FlagInit, b); err != nil {
			RecordEvent(EvtError, uint8(i), uint32(FlagInit))
			DebugPrintln("[MODEL] " + err.Error())
			return errors.Join(err, m.terminate(i))
		}
		RecordEvent(EvtInit, uint8(i), 0)
	}
	m.inited = true
	m.steps = 0
	m.err = nil
	return nil
}

// Step runs one sample period: FlagOutput then FlagStateUpdate on every
// block. It stops at the first failing block.
func (m *Model) Step() error {
	if !m.inited {
		return ErrModelNotInited
	}
	for _, flag := range [...]Flag{FlagOutput, FlagStateUpdate} {
		for i, b := range m.Blocks {
			if err := Dispatch(flag, b); err != nil {
				RecordEvent(EvtError, uint8(i), uint32(flag))
				return err
			}
		}
	}
	m.steps++
	return nil
}

// Start arms a periodic timer that steps the model every TsampTicks. A
// failing step stops the timer; the error is available from Err.
func (m *Model) Start() error {
	if !m.inited {
		return ErrModelNotInited
	}
	if m.running {
		return ErrModelRunning
	}
	m.running = true
	m.timer.Handler = m.tick
	m.timer.WakeTime = GetTime() + m.TsampTicks
	RecordEvent(EvtStart, 0, m.TsampTicks)
	ScheduleTimer(&m.timer)
	return nil
}

func (m *Model) tick(t *Timer) uint8 {
	if lag := GetTime() - t.WakeTime; lag >= m.TsampTicks {
		RecordEvent(EvtOverrun, 0, lag)
	}
	if err := m.Step(); err != nil {
		m.err = err
		m.running = false
		DebugAsync("[MODEL] " + m.Name + " stopped: " + err.Error())
		return SF_DONE
	}
	t.WakeTime += m.TsampTicks
	return SF_RESCHEDULE
}

// Stop cancels the periodic timer
func (m *Model) Stop() {
	if !m.running {
		return
	}
	CancelTimer(&m.timer)
	m.running = false
	RecordEvent(EvtStop, 0, m.steps)
}

// End stops the model and runs FlagEnd on every block in reverse order,
// returning every terminate error.
func (m *Model) End() error {
	m.Stop()
	if !m.inited {
		return nil
	}
	m.inited = false
	return m.terminate(len(m.Blocks))
}

func (m *Model) terminate(n int) error {
	var errs []error
	for i := n - 1; i >= 0; i-- {
		if err := Dispatch(FlagEnd, m.Blocks[i]); err != nil {
			RecordEvent(EvtError, uint8(i), uint32(FlagEnd))
			errs = append(errs, err)
			continue
		}
		RecordEvent(EvtEnd, uint8(i), 0)
	}
	return errors.Join(errs...)
}

// Running reports whether the periodic timer is armed
func (m *Model) Running() bool {
	return m.running
}

// Steps returns the number of completed sample periods
func (m *Model) Steps() uint32 {
	return m.steps
}

// RunTime returns the model time in seconds
func (m *Model) RunTime() float64 {
	return float64(m.steps) * float64(m.TsampTicks) / TimerFreq
}

// Err returns the error that stopped the periodic timer, if any
func (m *Model) Err() error {
	return m.err
}
