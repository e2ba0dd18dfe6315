package qr

// GF(256) arithmetic over the QR reducing polynomial
// x^8 + x^4 + x^3 + x^2 + 1 (0x11d), generator element 2.

var (
	gfExp [512]byte // doubled so products of logs never need a modulo
	gfLog [256]byte
)

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		gfExp[i] = byte(x)
		gfLog[x] = byte(i)
		x <<= 1
		if x&0x100 != 0 {
			x ^= 0x11d
		}
	}
	for i := 255; i < 512; i++ {
		gfExp[i] = gfExp[i-255]
	}
}

func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExp[int(gfLog[a])+int(gfLog[b])]
}

// gfInv returns the multiplicative inverse of a non-zero element.
func gfInv(a byte) byte {
	return gfExp[255-int(gfLog[a])]
}

func gfDiv(a, b byte) byte {
	if a == 0 {
		return 0
	}
	return gfExp[int(gfLog[a])+255-int(gfLog[b])]
}

// Polynomials below are in ascending order: p[i] is the coefficient of x^i.

func polyEval(p []byte, x byte) byte {
	var y byte
	for i := len(p) - 1; i >= 0; i-- {
		y = gfMul(y, x) ^ p[i]
	}
	return y
}

// polyMulTrunc multiplies two polynomials, keeping terms below x^limit.
func polyMulTrunc(a, b []byte, limit int) []byte {
	out := make([]byte, limit)
	for i, ca := range a {
		if ca == 0 || i >= limit {
			continue
		}
		for j, cb := range b {
			if i+j >= limit {
				break
			}
			out[i+j] ^= gfMul(ca, cb)
		}
	}
	return out
}

// polyAddShifted returns a + scale * x^shift * b.
func polyAddShifted(a, b []byte, scale byte, shift int) []byte {
	size := len(a)
	if len(b)+shift > size {
		size = len(b) + shift
	}
	out := make([]byte, size)
	copy(out, a)
	for i, c := range b {
		out[i+shift] ^= gfMul(scale, c)
	}
	return out
}

// polyDeriv returns the formal derivative; in GF(2^8) even-degree terms
// vanish and odd-degree coefficients shift down.
func polyDeriv(p []byte) []byte {
	if len(p) < 2 {
		return []byte{0}
	}
	out := make([]byte, len(p)-1)
	for i := 1; i < len(p); i += 2 {
		out[i-1] = p[i]
	}
	return out
}
