package telemetry

import (
	"bytes"
	"testing"
)

func TestByteFIFO(t *testing.T) {
	f := NewByteFIFO(4)
	for i := 0; i < 4; i++ {
		if !f.Push(byte(i)) {
			t.Fatalf("push %d failed", i)
		}
	}
	if f.Push(9) {
		t.Errorf("expected push to a full FIFO to fail")
	}
	buf := make([]byte, 3)
	if n := f.Pop(buf); n != 3 || buf[0] != 0 || buf[2] != 2 {
		t.Errorf("unexpected pop %d %v", n, buf)
	}
	f.Push(4)
	f.Push(5)
	if b, ok := f.PopByte(); !ok || b != 3 {
		t.Errorf("expected 3, got %d %v", b, ok)
	}
	buf = make([]byte, 8)
	if n := f.Pop(buf); n != 2 || !bytes.Equal(buf[:2], []byte{4, 5}) {
		t.Errorf("expected wrapped pop [4 5], got %v", buf[:n])
	}
	if _, ok := f.PopByte(); ok || f.Level() != 0 {
		t.Errorf("expected empty FIFO")
	}
	f.Push(1)
	f.Reset()
	if f.Level() != 0 || f.Depth() != 4 {
		t.Errorf("unexpected state after reset")
	}
}
