package telemetry

import (
	"encoding/binary"
	"math"
)

// EncodeSample writes s into dst[0:4]. The 32-bit pattern is split into its
// low and high 16-bit halves and each half goes out low byte first, which is
// little-endian float32 on the wire.
func EncodeSample(dst []byte, s Sample) {
	_ = dst[3]
	bits := math.Float32bits(float32(s))
	lo := uint16(bits)
	hi := uint16(bits >> 16)
	dst[0] = byte(lo)
	dst[1] = byte(lo >> 8)
	dst[2] = byte(hi)
	dst[3] = byte(hi >> 8)
}

// DecodeSample reverses EncodeSample. The bit pattern is preserved exactly,
// NaN payloads included.
func DecodeSample(b []byte) Sample {
	return Sample(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

// PutSample pushes the four encoded bytes of s into q.
func PutSample(q TxQueue, s Sample) {
	var buf [SampleSize]byte
	EncodeSample(buf[:], s)
	for _, b := range buf {
		q.PushByte(b)
	}
}

// IsSentinel reports whether v is the sync value, within 1e-3.
func IsSentinel(v Sample) bool {
	return math.Abs(float64(v)-float64(Sentinel)) < sentinelTolerance
}

const sentinelTolerance = 1e-3
