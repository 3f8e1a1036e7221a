package f2837x

const (
	// LSPCLK is the low-speed peripheral clock with LSPCLKDIV = 0.
	LSPCLK = 200000000

	// SCITxFIFODepth is the depth of the SCI transmit FIFO in bytes.
	SCITxFIFODepth = 16

	// SCITxFIFOLevel is TXFFIL: the TX interrupt fires once the FIFO has
	// drained to this level, leaving room for four samples.
	SCITxFIFOLevel = 0

	// DefaultBaud is the rate the plot receivers expect.
	DefaultBaud = 2000000
)

// BaudRegisters returns SCIHBAUD and SCILBAUD for baud given the peripheral
// clock: BRR = lspclk/(baud*8) - 1.
func BaudRegisters(lspclk, baud uint32) (hi, lo uint8, err error) {
	if baud == 0 {
		return 0, 0, ErrInvalidBaud
	}
	div := uint64(lspclk) / (uint64(baud) * 8)
	if div < 2 || div > 0x10000 {
		return 0, 0, ErrInvalidBaud
	}
	brr := div - 1
	return uint8(brr >> 8), uint8(brr), nil
}

// ActualBaud returns the line rate produced by a BRR value.
func ActualBaud(lspclk uint32, hi, lo uint8) uint32 {
	brr := uint32(hi)<<8 | uint32(lo)
	return lspclk / ((brr + 1) * 8)
}
