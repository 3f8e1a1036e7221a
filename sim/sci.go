package sim

import (
	"context"
	"io"
	"sync"
	"time"

	"dspblocks/f2837x"
	"dspblocks/telemetry"
)

// maxServicePasses bounds the interrupt loop of one Service call.
const maxServicePasses = 64

// SCI simulates SCIA transmit: the baud registers, a 16-byte TX FIFO and
// the FIFO interrupt, which is pending while TXFFIENA is set and the FIFO
// level is at or below TXFFIL. The interrupt handler runs from Service or
// Run, never from inside a driver call.
type SCI struct {
	mu      sync.Mutex
	line    io.Writer
	fifo    *telemetry.ByteFIFO
	hbaud   uint8
	lbaud   uint8
	inited  bool
	txEna   bool // TXFFIENA
	handler func()

	overflows uint64
	acks      uint64
	written   uint64
	lineErr   error
}

// NewSCI creates a port transmitting into line
func NewSCI(line io.Writer) *SCI {
	if line == nil {
		line = io.Discard
	}
	return &SCI{
		line: line,
		fifo: telemetry.NewByteFIFO(f2837x.SCITxFIFODepth),
	}
}

// Init programs SCIHBAUD/SCILBAUD for baud from LSPCLK and resets the FIFO
func (s *SCI) Init(baud uint32) error {
	hi, lo, err := f2837x.BaudRegisters(f2837x.LSPCLK, baud)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hbaud, s.lbaud = hi, lo
	s.fifo.Reset()
	s.txEna = false
	s.inited = true
	return nil
}

func (s *SCI) SetTxHandler(h func()) {
	s.mu.Lock()
	s.handler = h
	s.mu.Unlock()
}

// PushByte writes SCITXBUF. A write to a full FIFO is lost.
func (s *SCI) PushByte(b byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fifo.Push(b) {
		s.overflows++
	}
}

func (s *SCI) SetTxInterrupt(enabled bool) {
	s.mu.Lock()
	s.txEna = enabled
	s.mu.Unlock()
}

// AckTxInterrupt writes TXFFINTCLR
func (s *SCI) AckTxInterrupt() {
	s.mu.Lock()
	s.acks++
	s.mu.Unlock()
}

// Baud returns the line rate produced by the programmed divider
func (s *SCI) Baud() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inited {
		return 0
	}
	return f2837x.ActualBaud(f2837x.LSPCLK, s.hbaud, s.lbaud)
}

// BaudRegisters returns SCIHBAUD and SCILBAUD
func (s *SCI) BaudRegisters() (hi, lo uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hbaud, s.lbaud
}

// Level returns TXFFST
func (s *SCI) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fifo.Level()
}

// InterruptEnabled reports TXFFIENA
func (s *SCI) InterruptEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txEna
}

// Counters returns bytes put on the line, FIFO overflows and interrupt
// acknowledgements.
func (s *SCI) Counters() (written, overflows, acks uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written, s.overflows, s.acks
}

// Err returns the first error from the line writer
func (s *SCI) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lineErr
}

func (s *SCI) pendingHandler() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.txEna && s.handler != nil && s.fifo.Level() <= f2837x.SCITxFIFOLevel {
		return s.handler
	}
	return nil
}

// Service runs the TX interrupt handler while the interrupt is pending.
func (s *SCI) Service() int {
	runs := 0
	for ; runs < maxServicePasses; runs++ {
		h := s.pendingHandler()
		if h == nil {
			break
		}
		h()
	}
	return runs
}

// Shift moves up to n bytes from the FIFO onto the line and returns how
// many moved.
func (s *SCI) Shift(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var buf [f2837x.SCITxFIFODepth]byte
	if n > len(buf) {
		n = len(buf)
	}
	got := s.fifo.Pop(buf[:n])
	if got == 0 {
		return 0
	}
	if _, err := s.line.Write(buf[:got]); err != nil && s.lineErr == nil {
		s.lineErr = err
	}
	s.written += uint64(got)
	return got
}

// Pump services the interrupt and empties the FIFO until the port is
// idle: nothing queued and the interrupt not pending.
func (s *SCI) Pump() {
	for {
		runs := s.Service()
		if s.Shift(f2837x.SCITxFIFODepth) > 0 {
			continue
		}
		if runs == maxServicePasses || s.pendingHandler() == nil {
			return
		}
	}
}

// Run transmits at the programmed baud rate until ctx is done. Each tick
// moves the bytes that fit in the elapsed time and services the
// interrupt.
func (s *SCI) Run(ctx context.Context, tick time.Duration) error {
	if tick <= 0 {
		tick = time.Millisecond
	}
	t := time.NewTicker(tick)
	defer t.Stop()

	var credit float64
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			// 8N1: ten bit times per byte
			credit += now.Sub(last).Seconds() * float64(s.Baud()) / 10
			last = now
			for credit >= 1 {
				s.Service()
				n := int(credit)
				moved := s.Shift(n)
				if moved == 0 {
					credit = 0
					break
				}
				credit -= float64(moved)
			}
			s.Service()
			if err := s.Err(); err != nil {
				return err
			}
		}
	}
}
