package conv

// Itoa writes the base-10 representation of n into buf and returns the used
// slice. buf should be length >= 20 for int64. Negative numbers supported.
// No allocations; no fmt/strconv dependency.
func Itoa(buf []byte, n int64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	neg := n < 0
	var u uint64
	if neg {
		u = uint64(-n)
	} else {
		u = uint64(n)
	}
	if u == 0 {
		i--
		buf[i] = '0'
	} else {
		for u > 0 && i > 0 {
			i--
			buf[i] = byte('0' + (u % 10))
			u /= 10
		}
	}
	if neg && i > 0 {
		i--
		buf[i] = '-'
	}
	return buf[i:]
}

// Pad2 writes n as exactly two digits ("00".."99") into buf and returns the
// used slice. Values outside [0,99] are reduced modulo 100. Used for aligned
// pin numbers in log output.
func Pad2(buf []byte, n int) []byte {
	if len(buf) < 2 {
		return buf[:0]
	}
	if n < 0 {
		n = -n
	}
	n %= 100
	buf[0] = byte('0' + n/10)
	buf[1] = byte('0' + n%10)
	return buf[:2]
}
