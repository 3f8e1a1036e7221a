//go:build rp2040

package main

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"dspblocks/f2837x"
	"dspblocks/telemetry"
)

// PIO UART transmitter, 8N1, eight PIO cycles per bit. OUT and SET both
// map to the TX pin.
func buildSCITxProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),                   // 0: pull block
		asm.Set(rp2pio.SetDestPins, 0).Delay(6).Encode(), // 1: set pins, 0 [6] (start bit)
		asm.Set(rp2pio.SetDestX, 7).Encode(),             // 2: set x, 7
		// bitloop:
		asm.Out(rp2pio.OutDestPins, 1).Delay(6).Encode(), // 3: out pins, 1 [6]
		asm.Jmp(3, rp2pio.JmpXNZeroDec).Encode(),         // 4: jmp x--, 3
		asm.Set(rp2pio.SetDestPins, 1).Delay(7).Encode(), // 5: set pins, 1 [7] (stop bit)
		// .wrap
	}
}

// sciTxOrigin is fixed so the absolute jump target holds
const sciTxOrigin = 0

// pioCyclesPerBit matches the delays of the program above
const pioCyclesPerBit = 8

// PIOSCI implements core.SCIDriver with a PIO state machine as the
// shifter. A 16-byte staging FIFO stands in for the SCI TX FIFO so the
// interrupt fires under the same condition: FIFO level at or below
// TXFFIL with the interrupt enabled. Poll plays the role of the ISR
// dispatcher and is called from the main loop.
type PIOSCI struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	tx     machine.Pin
	offset uint8

	fifo      *telemetry.ByteFIFO
	txEnabled bool
	handler   func()
	baud      uint32
	overflows uint32
	loaded    bool
}

// NewPIOSCI creates a transmitter on PIO pioNum, state machine smNum,
// driving pin tx.
func NewPIOSCI(pioNum, smNum uint8, tx machine.Pin) *PIOSCI {
	pioHW := rp2pio.PIO0
	if pioNum != 0 {
		pioHW = rp2pio.PIO1
	}
	return &PIOSCI{
		pio:  pioHW,
		sm:   pioHW.StateMachine(smNum),
		tx:   tx,
		fifo: telemetry.NewByteFIFO(f2837x.SCITxFIFODepth),
	}
}

func (s *PIOSCI) Init(baud uint32) error {
	if baud == 0 {
		return f2837x.ErrInvalidBaud
	}
	if !s.loaded {
		s.sm.TryClaim()
		program := buildSCITxProgram()
		offset, err := s.pio.AddProgram(program, sciTxOrigin)
		if err != nil {
			return err
		}
		s.offset = offset
		s.loaded = true
	}

	s.tx.Configure(machine.PinConfig{Mode: s.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(s.tx, 1)
	cfg.SetOutPins(s.tx, 1)
	// LSB first, explicit pull, one byte per word
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(s.offset, s.offset+uint8(len(buildSCITxProgram()))-1)

	whole, frac, err := pioClockDivider(machine.CPUFrequency(), baud)
	if err != nil {
		return err
	}
	cfg.SetClkDivIntFrac(whole, frac)

	s.sm.SetEnabled(false)
	s.sm.Init(s.offset, cfg)
	s.sm.SetPindirsConsecutive(s.tx, 1, true)
	// line idles high
	s.sm.SetPinsConsecutive(s.tx, 1, true)
	s.sm.SetEnabled(true)

	s.fifo.Reset()
	s.txEnabled = false
	s.baud = baud
	return nil
}

// pioClockDivider splits sysclk/(8*baud) into the 16.8 fixed point
// divider of the state machine.
func pioClockDivider(sysclk, baud uint32) (uint16, uint8, error) {
	div := uint64(sysclk) * 256 / (uint64(baud) * pioCyclesPerBit)
	whole := div >> 8
	if whole == 0 || whole > 0xffff {
		return 0, 0, f2837x.ErrInvalidBaud
	}
	return uint16(whole), uint8(div & 0xff), nil
}

func (s *PIOSCI) PushByte(b byte) {
	if !s.fifo.Push(b) {
		s.overflows++
	}
}

func (s *PIOSCI) SetTxInterrupt(enabled bool) {
	s.txEnabled = enabled
}

func (s *PIOSCI) AckTxInterrupt() {}

func (s *PIOSCI) SetTxHandler(h func()) {
	s.handler = h
}

// Overflows returns the number of bytes refused by a full FIFO
func (s *PIOSCI) Overflows() uint32 {
	return s.overflows
}

// Poll moves staged bytes into the state machine and runs the TX handler
// while the staging FIFO is empty and the interrupt is enabled.
func (s *PIOSCI) Poll() {
	for pass := 0; pass < f2837x.SCITxFIFODepth; pass++ {
		for s.fifo.Level() > 0 && !s.sm.IsTxFIFOFull() {
			b, _ := s.fifo.PopByte()
			s.sm.TxPut(uint32(b))
		}
		if s.fifo.Level() > f2837x.SCITxFIFOLevel || !s.txEnabled || s.handler == nil {
			return
		}
		s.handler()
		if s.fifo.Level() == 0 {
			return
		}
	}
}
