package telemetry

import "errors"

// ErrNilQueue is returned when a ring is built without a transmit queue.
var ErrNilQueue = errors.New("telemetry: nil transmit queue")

// Stats counts ring activity since the last Reset.
type Stats struct {
	Appended  uint32 // samples handed to Append
	Sent      uint32 // real samples pushed to the queue
	Sentinels uint32 // sentinel copies pushed to the queue
	Dropped   uint32 // samples overwritten before they were sent
}

// Ring is the transmit buffer behind the plot block.
//
// Slot 0 holds the Sentinel and is never written by Append. The write cursor
// runs over 1..cap-1; the read cursor runs over 0..cap-1 so the sentinel goes
// out once per lap. Append may run in any context, Drain runs from the
// transmit interrupt; both hold the ring guard for their whole update.
type Ring struct {
	g guard
	q TxQueue

	buf     []Sample
	head    int // next slot to write
	tail    int // next slot to send, cap means "wrap before sending"
	pending int // real samples not yet sent

	// sentinelDue is set when an overwrite moved the read cursor past slot 0,
	// so the next drain re-marks the stream before resuming.
	sentinelDue bool

	txEnabled bool
	stats     Stats
}

// New builds a ring of the given capacity (sentinel slot included) bound to
// q. This is the init_buffer step: it must run once at bring-up, before any
// Append or Drain.
func New(capacity int, q TxQueue) (*Ring, error) {
	if capacity < 2 {
		return nil, ErrCapacity
	}
	if q == nil {
		return nil, ErrNilQueue
	}
	r := &Ring{
		q:   q,
		buf: make([]Sample, capacity),
	}
	r.reset()
	return r, nil
}

// Reset returns the ring to its power-on contents. The transmit interrupt is
// left to the next Drain to switch off.
func (r *Ring) Reset() {
	st := r.g.enter()
	r.reset()
	r.g.exit(st)
}

func (r *Ring) reset() {
	for i := range r.buf {
		r.buf[i] = 0
	}
	r.buf[0] = Sentinel
	r.head = 1
	r.tail = 0
	r.pending = 0
	r.sentinelDue = false
	r.stats = Stats{}
}

// Append stores s and arms the transmit interrupt if it was idle.
//
// Append never blocks. When the producer laps the transmitter the oldest
// unsent sample is overwritten and the read cursor moves past it, so the
// remaining cap-1 samples still go out oldest first. If that move skips the
// sentinel slot, a sentinel is sent ahead of the next sample instead.
func (r *Ring) Append(s Sample) {
	st := r.g.enter()
	defer r.g.exit(st)

	capacity := len(r.buf)
	full := r.pending == capacity-1

	r.buf[r.head] = s
	r.head++
	if r.head == capacity {
		r.head = 1
	}
	r.stats.Appended++

	if full {
		old := r.tail
		r.tail = r.head
		if old == 0 || old >= capacity || r.tail < old {
			r.sentinelDue = true
		}
		r.stats.Dropped++
	} else {
		r.pending++
	}

	if !r.txEnabled {
		r.txEnabled = true
		r.q.SetTxInterrupt(true)
	}
}

// Drain is the transmit interrupt handler. It moves at most BatchSize
// samples into the queue, switches the interrupt off once no real data is
// pending and acknowledges the interrupt. It returns the number of samples
// pushed, sentinel copies included.
//
// The sentinel is only sent when real data follows it, so a drain with
// nothing appended since the last idle transition pushes no bytes.
func (r *Ring) Drain() int {
	st := r.g.enter()
	defer r.g.exit(st)

	capacity := len(r.buf)
	sent := 0
	for i := 0; i < BatchSize; i++ {
		if r.pending == 0 {
			r.txEnabled = false
			r.q.SetTxInterrupt(false)
			break
		}
		if r.sentinelDue {
			r.sentinelDue = false
			PutSample(r.q, r.buf[0])
			sent++
			r.stats.Sentinels++
			continue
		}
		if r.tail >= capacity {
			r.tail = 0
		}
		idx := r.tail
		PutSample(r.q, r.buf[idx])
		r.tail++
		sent++

		if idx == 0 {
			r.stats.Sentinels++
		} else {
			r.pending--
			r.stats.Sent++
		}
	}
	r.q.AckTxInterrupt()
	return sent
}

// Stop switches the transmit interrupt off. Pending samples stay in the
// ring and the next Append arms the interrupt again.
func (r *Ring) Stop() {
	st := r.g.enter()
	defer r.g.exit(st)
	r.txEnabled = false
	r.q.SetTxInterrupt(false)
}

// Capacity returns the ring size, sentinel slot included.
func (r *Ring) Capacity() int {
	return len(r.buf)
}

// Pending returns the number of real samples not yet sent.
func (r *Ring) Pending() int {
	st := r.g.enter()
	defer r.g.exit(st)
	return r.pending
}

// State reports whether the transmit interrupt is armed.
func (r *Ring) State() State {
	st := r.g.enter()
	defer r.g.exit(st)
	if r.txEnabled {
		return Draining
	}
	return Idle
}

// Stats returns a snapshot of the ring counters.
func (r *Ring) Stats() Stats {
	st := r.g.enter()
	defer r.g.exit(st)
	return r.stats
}
