package serial

import (
	"errors"
	"io"
	"testing"
)

// timeoutLine answers like tarm/serial on Linux: (0, io.EOF) once the read
// timeout expires, then the queued bytes.
type timeoutLine struct {
	timeouts int
	data     []byte
}

func (l *timeoutLine) Read(b []byte) (int, error) {
	if l.timeouts > 0 {
		l.timeouts--
		return 0, io.EOF
	}
	if len(l.data) == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	n := copy(b, l.data)
	l.data = l.data[n:]
	return n, nil
}

func (l *timeoutLine) Write(b []byte) (int, error) { return len(b), nil }
func (l *timeoutLine) Close() error                { return nil }
func (l *timeoutLine) Flush() error                { return nil }

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyUSB0")
	if cfg.Baud != 2000000 || cfg.ReadTimeout != 100 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig("").Validate(); !errors.Is(err, ErrNoDevice) {
		t.Errorf("expected ErrNoDevice, got %v", err)
	}
	cfg := DefaultConfig("COM3")
	cfg.Baud = 0
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for zero baud")
	}
	if _, err := Open(nil); err == nil {
		t.Errorf("expected error for nil config")
	}
}

func TestValidateReadTimeout(t *testing.T) {
	cfg := DefaultConfig("COM3")
	cfg.ReadTimeout = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected blocking reads to be allowed, got %v", err)
	}
	cfg.ReadTimeout = -1
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for negative read timeout")
	}
}

func TestReadTimeoutIsNotEOF(t *testing.T) {
	p := &NativePort{port: &timeoutLine{timeouts: 2, data: []byte{1, 2, 3}}, cfg: DefaultConfig("COM3")}
	buf := make([]byte, 8)

	for i := 0; i < 2; i++ {
		n, err := p.Read(buf)
		if n != 0 || err != nil {
			t.Fatalf("read %d: expected (0, nil) on timeout, got (%d, %v)", i, n, err)
		}
	}
	n, err := p.Read(buf)
	if n != 3 || err != nil {
		t.Fatalf("expected 3 bytes after the timeouts, got (%d, %v)", n, err)
	}
	if _, err := p.Read(buf); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected other errors passed through, got %v", err)
	}
}
