package telemetry

// Cycle is the run of samples received between two sentinels.
type Cycle struct {
	Samples []Sample
	// Complete is set when the run has exactly one ring lap of samples.
	Complete bool
}

// SyncStats counts receiver activity.
type SyncStats struct {
	Bytes      uint64
	Samples    uint64
	Cycles     uint64
	Incomplete uint64
	Resyncs    uint64 // alignment lost after having been found
	Skipped    uint64 // bytes discarded while hunting for the sentinel
}

// Synchronizer decodes a plot byte stream. It hunts byte by byte for the
// sentinel, then decodes aligned samples until the next sentinel closes a
// cycle. A run longer than one ring lap without a sentinel means alignment
// was lost and the hunt starts again.
//
// Synchronizer is an io.Writer and is not safe for concurrent use.
type Synchronizer struct {
	cycleLen int

	window [SampleSize]byte
	fill   int
	synced bool
	cur    []Sample

	onSample func(Sample)
	onCycle  func(Cycle)

	stats SyncStats
}

// NewSynchronizer returns a synchroniser for a transmitter whose ring holds
// capacity slots.
func NewSynchronizer(capacity int) (*Synchronizer, error) {
	if capacity < 2 {
		return nil, ErrCapacity
	}
	return &Synchronizer{
		cycleLen: capacity - 1,
		cur:      make([]Sample, 0, capacity-1),
	}, nil
}

// SetSampleHandler sets the callback for every decoded sample.
func (s *Synchronizer) SetSampleHandler(h func(Sample)) {
	s.onSample = h
}

// SetCycleHandler sets the callback for every closed cycle.
func (s *Synchronizer) SetCycleHandler(h func(Cycle)) {
	s.onCycle = h
}

// Write feeds raw bytes from the serial line.
func (s *Synchronizer) Write(p []byte) (int, error) {
	for _, b := range p {
		s.feed(b)
	}
	return len(p), nil
}

func (s *Synchronizer) feed(b byte) {
	s.stats.Bytes++

	if !s.synced {
		if s.fill < SampleSize {
			s.window[s.fill] = b
			s.fill++
		} else {
			copy(s.window[:], s.window[1:])
			s.window[SampleSize-1] = b
		}
		if s.fill < SampleSize {
			return
		}
		if IsSentinel(DecodeSample(s.window[:])) {
			s.synced = true
			s.fill = 0
			s.cur = s.cur[:0]
			return
		}
		s.stats.Skipped++
		return
	}

	s.window[s.fill] = b
	s.fill++
	if s.fill < SampleSize {
		return
	}
	s.fill = 0

	v := DecodeSample(s.window[:])
	if IsSentinel(v) {
		s.emit()
		return
	}

	s.stats.Samples++
	s.cur = append(s.cur, v)
	if s.onSample != nil {
		s.onSample(v)
	}
	if len(s.cur) > s.cycleLen {
		s.stats.Resyncs++
		s.synced = false
		s.cur = s.cur[:0]
	}
}

func (s *Synchronizer) emit() {
	c := Cycle{
		Samples:  append([]Sample(nil), s.cur...),
		Complete: len(s.cur) == s.cycleLen,
	}
	s.cur = s.cur[:0]
	s.stats.Cycles++
	if !c.Complete {
		s.stats.Incomplete++
	}
	if s.onCycle != nil {
		s.onCycle(c)
	}
}

// Flush closes the current partial cycle, if any, as incomplete.
func (s *Synchronizer) Flush() {
	if s.synced && len(s.cur) > 0 {
		s.emit()
	}
}

// Synced reports whether the sentinel has been found.
func (s *Synchronizer) Synced() bool {
	return s.synced
}

// Stats returns the receiver counters.
func (s *Synchronizer) Stats() SyncStats {
	return s.stats
}
