package qr

import "fmt"

// bitBuffer accumulates a bit stream most significant bit first.
type bitBuffer struct {
	bits []bool
}

func (b *bitBuffer) append(value, width int) {
	for i := width - 1; i >= 0; i-- {
		b.bits = append(b.bits, value>>i&1 == 1)
	}
}

func (b *bitBuffer) len() int { return len(b.bits) }

func (b *bitBuffer) bytes() []byte {
	out := make([]byte, (len(b.bits)+7)/8)
	for i, bit := range b.bits {
		if bit {
			out[i/8] |= 0x80 >> (i % 8)
		}
	}
	return out
}

// Encode builds the QR matrix for text at the given error-correction
// level: smallest fitting version, byte-mode segment, Reed-Solomon
// protection, interleaving, and the masking pattern with the lowest
// penalty score.
func Encode(text string, level ECLevel) (*Matrix, error) {
	if text == "" {
		return nil, ErrContentEmpty
	}
	payload := []byte(text)

	version := 0
	for v := 1; v <= maxVersion; v++ {
		if byteCapacity(v, level) >= len(payload) {
			version = v
			break
		}
	}
	if version == 0 {
		return nil, fmt.Errorf("%w: %d bytes at level %s", ErrContentTooLong, len(payload), level)
	}

	codewords := buildCodewords(payload, version, level)

	var best *Matrix
	bestPenalty := 0
	for mask := 0; mask < 8; mask++ {
		m := newMatrix(version, level)
		placeData(m, codewords, mask)
		drawFormat(m, level, mask)
		drawVersion(m)
		if p := penalty(m); best == nil || p < bestPenalty {
			best = m
			bestPenalty = p
		}
	}
	return best, nil
}

// buildCodewords assembles the final interleaved codeword stream: segment
// header, payload, terminator, pad bytes, then per-block error correction.
func buildCodewords(payload []byte, version int, level ECLevel) []byte {
	dataLen := dataWords(version, level)

	var buf bitBuffer
	buf.append(modeByte, 4)
	buf.append(len(payload), countBits(version, modeByte))
	for _, b := range payload {
		buf.append(int(b), 8)
	}

	// Terminator, then pad to a byte boundary.
	free := dataLen*8 - buf.len()
	if free > 4 {
		free = 4
	}
	buf.append(0, free)
	if rem := buf.len() % 8; rem != 0 {
		buf.append(0, 8-rem)
	}

	data := buf.bytes()
	for pad := byte(0xEC); len(data) < dataLen; pad ^= 0xEC ^ 0x11 {
		data = append(data, pad)
	}

	blocks := splitBlocks(data, version, level)
	ecLen := ecTable[version][level].ecPerBlock
	ec := make([][]byte, len(blocks))
	for i, block := range blocks {
		ec[i] = rsEncode(block, ecLen)
	}

	out := make([]byte, 0, dataLen+ecWords(version, level))
	out = append(out, interleave(blocks)...)
	out = append(out, interleave(ec)...)
	return out
}

// splitBlocks divides the data codewords into RS blocks per the version
// table: group one first, then the longer group two blocks.
func splitBlocks(data []byte, version int, level ECLevel) [][]byte {
	var blocks [][]byte
	pos := 0
	for _, g := range ecTable[version][level].groups {
		for b := 0; b < g.blocks; b++ {
			blocks = append(blocks, data[pos:pos+g.dataWords])
			pos += g.dataWords
		}
	}
	return blocks
}

// interleave emits codeword i of every block in block order, skipping
// blocks that have run out.
func interleave(blocks [][]byte) []byte {
	longest := 0
	total := 0
	for _, b := range blocks {
		total += len(b)
		if len(b) > longest {
			longest = len(b)
		}
	}
	out := make([]byte, 0, total)
	for i := 0; i < longest; i++ {
		for _, b := range blocks {
			if i < len(b) {
				out = append(out, b[i])
			}
		}
	}
	return out
}

// maskBit reports whether the mask inverts the module at (x, y).
func maskBit(mask, x, y int) bool {
	switch mask {
	case 0:
		return (x+y)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (x+y)%3 == 0
	case 4:
		return (y/2+x/3)%2 == 0
	case 5:
		return x*y%2+x*y%3 == 0
	case 6:
		return (x*y%2+x*y%3)%2 == 0
	default:
		return ((x+y)%2+x*y%3)%2 == 0
	}
}

// placeData writes the codeword bit stream into the data modules in
// placement order, applying the mask. Remainder modules beyond the stream
// carry a masked zero bit.
func placeData(m *Matrix, codewords []byte, mask int) {
	i := 0
	m.forEachData(func(x, y int) {
		bit := false
		if i < len(codewords)*8 {
			bit = codewords[i/8]&(0x80>>(i%8)) != 0
		}
		i++
		m.set(x, y, bit != maskBit(mask, x, y))
	})
}

// drawFormat writes both format information copies.
func drawFormat(m *Matrix, level ECLevel, mask int) {
	value := formatValue(level, mask)
	for i, pos := range formatBitSequence1() {
		m.setFunction(pos[0], pos[1], value&(1<<(14-i)) != 0)
	}
	for i, pos := range formatBitSequence2(m.size) {
		m.setFunction(pos[0], pos[1], value&(1<<(14-i)) != 0)
	}
	// Dark module stays dark regardless of format bits.
	m.setFunction(8, 4*m.version+9, true)
}

// drawVersion writes the two version information blocks for versions 7+.
func drawVersion(m *Matrix) {
	if m.version < 7 {
		return
	}
	value := versionValue(m.version)
	for k := 0; k < 18; k++ {
		dark := value&(1<<k) != 0
		x := m.size - 11 + k%3
		y := k / 3
		m.setFunction(x, y, dark)
		m.setFunction(y, x, dark)
	}
}

// Penalty weights from the masking evaluation rules.
const (
	penaltyRun     = 3  // N1: runs of five or more same-colored modules
	penaltyBox     = 3  // N2: each 2x2 same-colored block
	penaltyFinder  = 40 // N3: finder-like 1:1:3:1:1 pattern with light flank
	penaltyBalance = 10 // N4: per 5% deviation from 50% dark
)

func penalty(m *Matrix) int {
	return penaltyRuns(m) + penaltyBoxes(m) + penaltyFinderLike(m) + penaltyDarkRatio(m)
}

func penaltyRuns(m *Matrix) int {
	score := 0
	for i := 0; i < m.size; i++ {
		score += runScore(m.size, func(j int) bool { return m.At(j, i) })
		score += runScore(m.size, func(j int) bool { return m.At(i, j) })
	}
	return score
}

func runScore(n int, at func(int) bool) int {
	score := 0
	run := 1
	for j := 1; j <= n; j++ {
		if j < n && at(j) == at(j-1) {
			run++
			continue
		}
		if run >= 5 {
			score += penaltyRun + run - 5
		}
		run = 1
	}
	return score
}

func penaltyBoxes(m *Matrix) int {
	score := 0
	for y := 0; y < m.size-1; y++ {
		for x := 0; x < m.size-1; x++ {
			c := m.At(x, y)
			if m.At(x+1, y) == c && m.At(x, y+1) == c && m.At(x+1, y+1) == c {
				score += penaltyBox
			}
		}
	}
	return score
}

// finderPattern is dark-light-dark-dark-dark-light-dark; a penalty applies
// when it is flanked by four light modules on either side.
var finderPattern = [7]bool{true, false, true, true, true, false, true}

func penaltyFinderLike(m *Matrix) int {
	score := 0
	match := func(at func(int) bool, start int, n int) bool {
		for k, want := range finderPattern {
			if at(start+k) != want {
				return false
			}
		}
		lightBefore := true
		for k := start - 4; k < start; k++ {
			if k >= 0 && at(k) {
				lightBefore = false
				break
			}
		}
		if lightBefore && start >= 4 {
			return true
		}
		lightAfter := true
		for k := start + 7; k < start+11; k++ {
			if k < n && at(k) {
				lightAfter = false
				break
			}
		}
		return lightAfter && start+11 <= n
	}
	for i := 0; i < m.size; i++ {
		row := func(j int) bool { return m.At(j, i) }
		col := func(j int) bool { return m.At(i, j) }
		for start := 0; start+7 <= m.size; start++ {
			if match(row, start, m.size) {
				score += penaltyFinder
			}
			if match(col, start, m.size) {
				score += penaltyFinder
			}
		}
	}
	return score
}

func penaltyDarkRatio(m *Matrix) int {
	dark := 0
	for _, v := range m.modules {
		if v {
			dark++
		}
	}
	percent := dark * 100 / len(m.modules)
	deviation := percent - 50
	if deviation < 0 {
		deviation = -deviation
	}
	return deviation / 5 * penaltyBalance
}
