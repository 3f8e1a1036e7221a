package telemetry

// ByteFIFO is a fixed-depth byte queue with the behaviour of a UART
// transmit FIFO: writes to a full FIFO are refused. It is not safe for
// concurrent use.
type ByteFIFO struct {
	buf   []byte
	read  int
	count int
}

// NewByteFIFO creates a FIFO holding depth bytes
func NewByteFIFO(depth int) *ByteFIFO {
	return &ByteFIFO{buf: make([]byte, depth)}
}

// Push appends b and reports false when the FIFO is full
func (f *ByteFIFO) Push(b byte) bool {
	if f.count == len(f.buf) {
		return false
	}
	f.buf[(f.read+f.count)%len(f.buf)] = b
	f.count++
	return true
}

// Pop moves up to len(dst) bytes out, oldest first
func (f *ByteFIFO) Pop(dst []byte) int {
	n := 0
	for n < len(dst) && f.count > 0 {
		dst[n] = f.buf[f.read]
		f.read = (f.read + 1) % len(f.buf)
		f.count--
		n++
	}
	return n
}

// PopByte removes the oldest byte
func (f *ByteFIFO) PopByte() (byte, bool) {
	if f.count == 0 {
		return 0, false
	}
	b := f.buf[f.read]
	f.read = (f.read + 1) % len(f.buf)
	f.count--
	return b, true
}

// Level returns the number of bytes waiting
func (f *ByteFIFO) Level() int {
	return f.count
}

// Depth returns the FIFO size
func (f *ByteFIFO) Depth() int {
	return len(f.buf)
}

// Reset empties the FIFO
func (f *ByteFIFO) Reset() {
	f.read = 0
	f.count = 0
}
