package qr

import "fmt"

// Reed-Solomon coding over gf256.go, matching the QR generator polynomial
// family: roots alpha^0 .. alpha^(n-1) for n error-correction codewords.
// Codeword arrays are in transmission order, i.e. the first byte is the
// highest-degree coefficient.

// rsGenerator returns the degree-n generator polynomial in descending
// order with a leading 1: the product of (x + alpha^i) for i in [0,n).
func rsGenerator(n int) []byte {
	g := []byte{1}
	for i := 0; i < n; i++ {
		next := make([]byte, len(g)+1)
		for j, c := range g {
			next[j] ^= c                    // c * x
			next[j+1] ^= gfMul(c, gfExp[i]) // c * alpha^i
		}
		g = next
	}
	return g
}

// rsEncode computes n error-correction codewords for data by polynomial
// long division.
func rsEncode(data []byte, n int) []byte {
	g := rsGenerator(n)
	rem := make([]byte, len(data)+n)
	copy(rem, data)
	for i := 0; i < len(data); i++ {
		coef := rem[i]
		if coef == 0 {
			continue
		}
		for j := 1; j < len(g); j++ {
			rem[i+j] ^= gfMul(g[j], coef)
		}
	}
	return rem[len(data):]
}

// rsCorrect repairs up to ecLen/2 byte errors in block (data codewords
// followed by ecLen error-correction codewords) in place and returns the
// number of errors corrected. It fails with ErrUnrecoverable when the
// error count exceeds capacity or the corrected block is still not a
// valid codeword.
func rsCorrect(block []byte, ecLen int) (int, error) {
	synd, clean := rsSyndromes(block, ecLen)
	if clean {
		return 0, nil
	}

	sigma, errCount, err := berlekampMassey(synd)
	if err != nil {
		return 0, err
	}
	if 2*errCount > ecLen {
		return 0, fmt.Errorf("%w: %d errors exceed capacity %d", ErrUnrecoverable, errCount, ecLen/2)
	}

	n := len(block)
	positions := chienSearch(sigma, n)
	if len(positions) != errCount {
		return 0, fmt.Errorf("%w: error locator degree mismatch", ErrUnrecoverable)
	}

	// Forney: omega = S(x) * sigma(x) mod x^ecLen; magnitude at locator
	// X is X * omega(X^-1) / sigma'(X^-1) for generator root base 0.
	omega := polyMulTrunc(synd, sigma, ecLen)
	deriv := polyDeriv(sigma)
	for _, pos := range positions {
		exp := (n - 1 - pos) % 255
		xInv := gfExp[(255-exp)%255]
		den := polyEval(deriv, xInv)
		if den == 0 {
			return 0, fmt.Errorf("%w: degenerate error locator", ErrUnrecoverable)
		}
		mag := gfMul(gfExp[exp], gfDiv(polyEval(omega, xInv), den))
		block[pos] ^= mag
	}

	if _, clean := rsSyndromes(block, ecLen); !clean {
		return 0, fmt.Errorf("%w: residual syndromes after correction", ErrUnrecoverable)
	}
	return errCount, nil
}

// rsSyndromes evaluates the received polynomial at each generator root.
// synd[j] = R(alpha^j), ascending-order result.
func rsSyndromes(block []byte, ecLen int) ([]byte, bool) {
	synd := make([]byte, ecLen)
	clean := true
	for j := 0; j < ecLen; j++ {
		root := gfExp[j]
		var s byte
		for _, c := range block {
			s = gfMul(s, root) ^ c
		}
		synd[j] = s
		if s != 0 {
			clean = false
		}
	}
	return synd, clean
}

// berlekampMassey finds the minimal error-locator polynomial sigma
// (ascending order, sigma[0] = 1) for the syndrome sequence.
func berlekampMassey(synd []byte) ([]byte, int, error) {
	sigma := []byte{1}
	prev := []byte{1}
	l := 0
	m := 1
	var b byte = 1

	for i := 0; i < len(synd); i++ {
		d := synd[i]
		for j := 1; j <= l && j < len(sigma); j++ {
			d ^= gfMul(sigma[j], synd[i-j])
		}
		if d == 0 {
			m++
			continue
		}
		scale := gfMul(d, gfInv(b))
		if 2*l <= i {
			keep := append([]byte(nil), sigma...)
			sigma = polyAddShifted(sigma, prev, scale, m)
			l = i + 1 - l
			prev = keep
			b = d
			m = 1
		} else {
			sigma = polyAddShifted(sigma, prev, scale, m)
			m++
		}
	}
	if l >= len(synd) {
		return nil, 0, fmt.Errorf("%w: error locator did not converge", ErrUnrecoverable)
	}
	return sigma, l, nil
}

// chienSearch returns the block positions whose locators are roots of
// sigma, for a block of n codewords.
func chienSearch(sigma []byte, n int) []int {
	var positions []int
	for pos := 0; pos < n; pos++ {
		exp := (n - 1 - pos) % 255
		xInv := gfExp[(255-exp)%255]
		if polyEval(sigma, xInv) == 0 {
			positions = append(positions, pos)
		}
	}
	return positions
}
