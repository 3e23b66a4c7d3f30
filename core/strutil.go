package core

// utoa converts an unsigned integer to decimal without pulling in fmt,
// keeping the report path allocation-light on the MCU.
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	// Build from the right; 10 digits hold any uint32.
	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[pos:])
}
