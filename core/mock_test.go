package core

import (
	"dspblocks/f2837x"
	"dspblocks/telemetry"
	"errors"
	"testing"
)

type pinMode int

const (
	modeUnset pinMode = iota
	modeOutput
	modePullUp
	modePullDown
)

// mockGPIO models pins as levels; inputs with pull-up float high.
type mockGPIO struct {
	mode  map[GPIOPin]pinMode
	level map[GPIOPin]bool
	sets  int
}

func newMockGPIO() *mockGPIO {
	return &mockGPIO{
		mode:  make(map[GPIOPin]pinMode),
		level: make(map[GPIOPin]bool),
	}
}

func (m *mockGPIO) ConfigureOutput(pin GPIOPin) error {
	m.mode[pin] = modeOutput
	return nil
}

func (m *mockGPIO) ConfigureInputPullUp(pin GPIOPin) error {
	m.mode[pin] = modePullUp
	m.level[pin] = true
	return nil
}

func (m *mockGPIO) ConfigureInputPullDown(pin GPIOPin) error {
	m.mode[pin] = modePullDown
	m.level[pin] = false
	return nil
}

func (m *mockGPIO) SetPin(pin GPIOPin, value bool) error {
	if m.mode[pin] != modeOutput {
		return errors.New("pin not an output")
	}
	m.level[pin] = value
	m.sets++
	return nil
}

func (m *mockGPIO) GetPin(pin GPIOPin) (bool, error) {
	return m.level[pin], nil
}

func (m *mockGPIO) ReadPin(pin GPIOPin) bool {
	return m.level[pin]
}

type socKey struct {
	module f2837x.ADCModule
	soc    int
}

type mockADC struct {
	channel map[socKey]int
	value   map[int]uint16 // by channel
}

func newMockADC() *mockADC {
	return &mockADC{
		channel: make(map[socKey]int),
		value:   make(map[int]uint16),
	}
}

func (m *mockADC) ConfigureChannel(module f2837x.ADCModule, channel, soc int) error {
	m.channel[socKey{module, soc}] = channel
	return nil
}

func (m *mockADC) ReadSOC(module f2837x.ADCModule, soc int) (uint16, error) {
	ch, ok := m.channel[socKey{module, soc}]
	if !ok {
		return 0, errors.New("SOC not configured")
	}
	return m.value[ch], nil
}

type pwmState struct {
	period, compare uint16
	enabled         bool
	updates         int
}

type mockPWM struct {
	out map[string]*pwmState
}

func newMockPWM() *mockPWM {
	return &mockPWM{out: make(map[string]*pwmState)}
}

func (m *mockPWM) Configure(out f2837x.EPWMOutput, period, compare uint16) error {
	m.out[out.Name] = &pwmState{period: period, compare: compare, enabled: true}
	return nil
}

func (m *mockPWM) SetCompare(out f2837x.EPWMOutput, compare uint16) error {
	s, ok := m.out[out.Name]
	if !ok {
		return errors.New("output not configured")
	}
	s.compare = compare
	s.updates++
	return nil
}

func (m *mockPWM) Disable(out f2837x.EPWMOutput) error {
	if s, ok := m.out[out.Name]; ok {
		s.enabled = false
	}
	return nil
}

// mockSCI is a port with an unbounded FIFO; pump plays the TX interrupt.
type mockSCI struct {
	baud    uint32
	line    []byte
	enabled bool
	acks    int
	handler func()
}

func (m *mockSCI) Init(baud uint32) error {
	if baud == 0 {
		return f2837x.ErrInvalidBaud
	}
	m.baud = baud
	return nil
}

func (m *mockSCI) SetTxHandler(h func()) {
	m.handler = h
}

func (m *mockSCI) PushByte(b byte) {
	m.line = append(m.line, b)
}

func (m *mockSCI) SetTxInterrupt(enabled bool) {
	m.enabled = enabled
}

func (m *mockSCI) AckTxInterrupt() {
	m.acks++
}

func (m *mockSCI) samples() []telemetry.Sample {
	return decodeLine(m.line)
}

// pump runs the TX handler while the interrupt stays enabled.
func (m *mockSCI) pump() {
	for i := 0; i < 1000 && m.enabled && m.handler != nil; i++ {
		m.handler()
	}
}

func decodeLine(line []byte) []telemetry.Sample {
	out := make([]telemetry.Sample, 0, len(line)/telemetry.SampleSize)
	for i := 0; i+telemetry.SampleSize <= len(line); i += telemetry.SampleSize {
		out = append(out, telemetry.DecodeSample(line[i:]))
	}
	return out
}

type mockBoard struct {
	gpio *mockGPIO
	adc  *mockADC
	pwm  *mockPWM
	sci  *mockSCI
}

// setupMocks installs fresh mock drivers and resets scheduler state.
func setupMocks(t *testing.T) *mockBoard {
	t.Helper()
	b := &mockBoard{
		gpio: newMockGPIO(),
		adc:  newMockADC(),
		pwm:  newMockPWM(),
		sci:  &mockSCI{},
	}
	SetGPIODriver(b.gpio)
	SetADCDriver(b.adc)
	SetPWMDriver(b.pwm)
	SetSCIDriver(b.sci)
	ResetTimers()
	SetTime(0)
	ClearEvents()

	t.Cleanup(func() {
		SetGPIODriver(nil)
		SetADCDriver(nil)
		SetPWMDriver(nil)
		SetSCIDriver(nil)
		ResetTimers()
		plotMu.Lock()
		plotOwner = nil
		plotMu.Unlock()
	})
	return b
}

func mustBlock(t *testing.T, cfg BlockConfig) *Block {
	t.Helper()
	b, err := NewBlock(cfg)
	if err != nil {
		t.Fatalf("NewBlock(%s) failed: %v", cfg.Kind, err)
	}
	return b
}

func mustDispatch(t *testing.T, flag Flag, b *Block) {
	t.Helper()
	if err := Dispatch(flag, b); err != nil {
		t.Fatalf("Dispatch(%v, %s) failed: %v", flag, b.Name, err)
	}
}
