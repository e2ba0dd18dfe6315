package qr

import "math/bits"

// Format information: 5 data bits (2 error-correction level, 3 mask)
// protected by a BCH(15,5) code and XORed with a fixed mask so the field
// is never all zeroes.
const (
	formatBCHPoly  = 0x537 // x^10+x^8+x^5+x^4+x^2+x+1
	formatXORMask  = 0x5412
	versionBCHPoly = 0x1F25
)

// levelFormatBits maps ECLevel to its 2-bit format field encoding.
var levelFormatBits = map[ECLevel]int{
	Low:      0b01,
	Medium:   0b00,
	Quartile: 0b11,
	High:     0b10,
}

var formatBitsLevel = map[int]ECLevel{
	0b01: Low,
	0b00: Medium,
	0b11: Quartile,
	0b10: High,
}

// bchRemainder computes the polynomial remainder of value << degree(gen)
// modulo gen, over GF(2).
func bchRemainder(value, gen int) int {
	degree := bits.Len(uint(gen)) - 1
	v := value << degree
	for bits.Len(uint(v)) > degree {
		v ^= gen << (bits.Len(uint(v)) - degree - 1)
	}
	return v
}

// formatValue returns the masked 15-bit format field for a level/mask pair.
func formatValue(level ECLevel, mask int) int {
	data := levelFormatBits[level]<<3 | mask
	return (data<<10 | bchRemainder(data, formatBCHPoly)) ^ formatXORMask
}

// decodeFormat matches a read 15-bit field against all 32 valid codes,
// tolerating up to three bit errors. It returns the level, mask, and
// whether a match was found.
func decodeFormat(read int) (ECLevel, int, bool) {
	bestDist := 4
	bestData := -1
	for data := 0; data < 32; data++ {
		level := formatBitsLevel[data>>3]
		code := formatValue(level, data&7)
		if d := bits.OnesCount(uint(read ^ code)); d < bestDist {
			bestDist = d
			bestData = data
		}
	}
	if bestData < 0 {
		return 0, 0, false
	}
	return formatBitsLevel[bestData>>3], bestData & 7, true
}

// versionValue returns the 18-bit version field for versions 7 and up.
func versionValue(version int) int {
	return version<<12 | bchRemainder(version, versionBCHPoly)
}

// decodeVersion matches a read 18-bit field against supported versions,
// tolerating up to three bit errors.
func decodeVersion(read int) (int, bool) {
	for v := 7; v <= maxVersion; v++ {
		if bits.OnesCount(uint(read^versionValue(v))) <= 3 {
			return v, true
		}
	}
	return 0, false
}

// formatBitSequence1 yields the (x, y) module positions of the first
// format copy around the top-left finder, most significant bit first.
func formatBitSequence1() [15][2]int {
	var seq [15][2]int
	i := 0
	for x := 0; x < 6; x++ {
		seq[i] = [2]int{x, 8}
		i++
	}
	seq[i] = [2]int{7, 8}
	i++
	seq[i] = [2]int{8, 8}
	i++
	seq[i] = [2]int{8, 7}
	i++
	for y := 5; y >= 0; y-- {
		seq[i] = [2]int{8, y}
		i++
	}
	return seq
}

// formatBitSequence2 yields the second copy, split between the top-right
// and bottom-left finders, most significant bit first.
func formatBitSequence2(size int) [15][2]int {
	var seq [15][2]int
	i := 0
	for y := size - 1; y >= size-7; y-- {
		seq[i] = [2]int{8, y}
		i++
	}
	for x := size - 8; x < size; x++ {
		seq[i] = [2]int{x, 8}
		i++
	}
	return seq
}
