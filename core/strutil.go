package core

// Number formatting for debug output on targets where fmt is too large.

// utoa formats n in decimal
func utoa(n uint32) string {
	var buf [10]byte
	pos := len(buf)
	for {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return string(buf[pos:])
}

// itoa formats n in decimal
func itoa(n int) string {
	if n < 0 {
		return "-" + utoa(uint32(-n))
	}
	return utoa(uint32(n))
}

// ftoa formats v with three decimals, enough for signal values in logs.
func ftoa(v float64) string {
	if v != v {
		return "NaN"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	if v >= 4294967295 {
		return sign + "Inf"
	}
	milli := uint64(v*1000 + 0.5)
	whole := uint32(milli / 1000)
	frac := uint32(milli % 1000)
	fs := utoa(frac)
	for len(fs) < 3 {
		fs = "0" + fs
	}
	return sign + utoa(whole) + "." + fs
}
