package qr

import (
	"fmt"
	"image"
	"math"
	"sort"
)

// Decode reads a QR symbol out of a captured image: locate the three
// finder patterns, derive the sampling grid, recover format information,
// unmask, de-interleave, Reed-Solomon-correct, and extract the payload.
// Failures are typed: ErrNotFound when no symbol can be located, ErrFormat
// when the symbol's metadata is inconsistent, ErrUnrecoverable when damage
// exceeds the correction capacity.
func Decode(img image.Image) (string, error) {
	bm, err := binarize(img)
	if err != nil {
		return "", err
	}

	finders, err := locateFinders(bm)
	if err != nil {
		return "", err
	}

	grid, err := buildGrid(finders)
	if err != nil {
		return "", err
	}

	sampled, err := sampleGrid(bm, grid)
	if err != nil {
		return "", err
	}

	return decodeMatrix(sampled)
}

// DecodeMatrix reads the payload straight from a module matrix, skipping
// image sampling. Used when the matrix came from Encode or a renderer.
func DecodeMatrix(m *Matrix) (string, error) {
	sampled := &sampledGrid{size: m.size, bits: make([]bool, m.size*m.size)}
	for y := 0; y < m.size; y++ {
		for x := 0; x < m.size; x++ {
			sampled.bits[y*m.size+x] = m.At(x, y)
		}
	}
	return decodeMatrix(sampled)
}

// --- binarization ---

type bitmap struct {
	w, h int
	dark []bool
}

func (b *bitmap) at(x, y int) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	return b.dark[y*b.w+x]
}

// binarize reduces the image to dark/light using a global threshold at the
// midpoint of the observed luma range.
func binarize(img image.Image) (*bitmap, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 21 || h < 21 {
		return nil, fmt.Errorf("%w: image %dx%d is smaller than the smallest symbol", ErrNotFound, w, h)
	}

	luma := make([]uint8, w*h)
	minL, maxL := uint8(255), uint8(0)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			l := uint8((299*r + 587*g + 114*b) / 1000 >> 8)
			luma[y*w+x] = l
			if l < minL {
				minL = l
			}
			if l > maxL {
				maxL = l
			}
		}
	}
	if maxL-minL < 16 {
		return nil, fmt.Errorf("%w: image has no contrast", ErrNotFound)
	}

	threshold := uint8((int(minL) + int(maxL)) / 2)
	dark := make([]bool, w*h)
	for i, l := range luma {
		dark[i] = l < threshold
	}
	return &bitmap{w: w, h: h, dark: dark}, nil
}

// --- finder pattern location ---

type finderCandidate struct {
	x, y   float64
	module float64
	count  int
}

// ratioFits checks five run lengths against the 1:1:3:1:1 finder profile
// with a half-module tolerance per segment.
func ratioFits(runs [5]int) (float64, bool) {
	total := 0
	for _, r := range runs {
		if r == 0 {
			return 0, false
		}
		total += r
	}
	if total < 7 {
		return 0, false
	}
	module := float64(total) / 7
	tolerance := module / 2
	for i, want := range [5]float64{1, 1, 3, 1, 1} {
		if math.Abs(float64(runs[i])-want*module) > want*tolerance {
			return 0, false
		}
	}
	return module, true
}

// locateFinders scans every row for 1:1:3:1:1 run windows, cross-checks
// each hit vertically, and clusters the confirmed centers. The three most
// confirmed clusters are the finder patterns.
func locateFinders(bm *bitmap) ([3]finderCandidate, error) {
	var none [3]finderCandidate
	var candidates []finderCandidate

	for y := 0; y < bm.h; y++ {
		runs, starts := rowRuns(bm, y)
		for i := 0; i+5 <= len(runs); i++ {
			if !bm.at(starts[i], y) {
				continue // window must start dark
			}
			var window [5]int
			copy(window[:], runs[i:i+5])
			module, ok := ratioFits(window)
			if !ok {
				continue
			}
			cx := float64(starts[i]) + float64(window[0]+window[1]) + float64(window[2])/2
			cy, vModule, ok := crossCheckVertical(bm, int(cx), y, module)
			if !ok {
				continue
			}
			merged := false
			for j := range candidates {
				c := &candidates[j]
				if math.Abs(c.x-cx) < 3*module && math.Abs(c.y-cy) < 3*module {
					n := float64(c.count)
					c.x = (c.x*n + cx) / (n + 1)
					c.y = (c.y*n + cy) / (n + 1)
					c.module = (c.module*n + (module+vModule)/2) / (n + 1)
					c.count++
					merged = true
					break
				}
			}
			if !merged {
				candidates = append(candidates, finderCandidate{x: cx, y: cy, module: (module + vModule) / 2, count: 1})
			}
		}
	}

	// A real finder is confirmed on several scanlines; noise is not.
	confirmed := candidates[:0]
	for _, c := range candidates {
		if c.count >= 2 {
			confirmed = append(confirmed, c)
		}
	}
	if len(confirmed) < 3 {
		return none, fmt.Errorf("%w: found %d finder patterns", ErrNotFound, len(confirmed))
	}
	sort.Slice(confirmed, func(i, j int) bool { return confirmed[i].count > confirmed[j].count })
	return [3]finderCandidate{confirmed[0], confirmed[1], confirmed[2]}, nil
}

func rowRuns(bm *bitmap, y int) (runs []int, starts []int) {
	x := 0
	for x < bm.w {
		start := x
		v := bm.at(x, y)
		for x < bm.w && bm.at(x, y) == v {
			x++
		}
		runs = append(runs, x-start)
		starts = append(starts, start)
	}
	return runs, starts
}

// crossCheckVertical confirms the 1:1:3:1:1 profile in the column through
// (x, y) and returns the refined center y.
func crossCheckVertical(bm *bitmap, x, y int, module float64) (float64, float64, bool) {
	if !bm.at(x, y) {
		return 0, 0, false
	}
	up := verticalRuns(bm, x, y, -1)
	down := verticalRuns(bm, x, y, +1)

	var runs [5]int
	runs[2] = up[0] + down[0] - 1 // center run counted from both sides
	runs[1], runs[0] = up[1], up[2]
	runs[3], runs[4] = down[1], down[2]
	vModule, ok := ratioFits(runs)
	if !ok {
		return 0, 0, false
	}
	top := y - up[0] - up[1] - up[2] + 1
	total := runs[0] + runs[1] + runs[2] + runs[3] + runs[4]
	return float64(top) + float64(total)/2, vModule, true
}

// verticalRuns measures three runs (dark, light, dark) walking from (x, y)
// in direction dy, including the starting pixel in the first run.
func verticalRuns(bm *bitmap, x, y, dy int) [3]int {
	var runs [3]int
	cy := y
	for i := 0; i < 3; i++ {
		wantDark := i%2 == 0
		for cy >= 0 && cy < bm.h && bm.at(x, cy) == wantDark {
			runs[i]++
			cy += dy
		}
	}
	return runs
}

// --- grid construction and sampling ---

type grid struct {
	topLeft, topRight, bottomLeft finderCandidate
	dimension                     int
	version                       int
}

func dist(a, b finderCandidate) float64 {
	return math.Hypot(a.x-b.x, a.y-b.y)
}

// buildGrid orients the three finder centers and derives the module count
// of the symbol.
func buildGrid(f [3]finderCandidate) (*grid, error) {
	// The two centers farthest apart are the top-right and bottom-left;
	// the remaining one is the top-left corner.
	d01 := dist(f[0], f[1])
	d02 := dist(f[0], f[2])
	d12 := dist(f[1], f[2])
	var tl, a, b finderCandidate
	switch {
	case d01 >= d02 && d01 >= d12:
		tl, a, b = f[2], f[0], f[1]
	case d02 >= d01 && d02 >= d12:
		tl, a, b = f[1], f[0], f[2]
	default:
		tl, a, b = f[0], f[1], f[2]
	}

	// Orient so the cross product of (topRight-topLeft, bottomLeft-topLeft)
	// is positive in image coordinates (y grows downward).
	tr, bl := a, b
	if (tr.x-tl.x)*(bl.y-tl.y)-(tr.y-tl.y)*(bl.x-tl.x) < 0 {
		tr, bl = bl, tr
	}

	module := (tl.module + tr.module + bl.module) / 3
	if module <= 0 {
		return nil, fmt.Errorf("%w: degenerate module size", ErrNotFound)
	}
	span := (dist(tl, tr) + dist(tl, bl)) / 2
	dimension := int(math.Round(span/module)) + 7

	// Snap to the nearest valid dimension (21 + 4k).
	if dimension < 21 {
		dimension = 21
	}
	switch dimension % 4 {
	case 0:
		dimension++
	case 2:
		dimension--
	case 3:
		dimension -= 2
	}
	version := (dimension - 17) / 4
	if version < 1 || version > maxVersion {
		return nil, fmt.Errorf("%w: implausible symbol dimension %d", ErrNotFound, dimension)
	}

	return &grid{topLeft: tl, topRight: tr, bottomLeft: bl, dimension: dimension, version: version}, nil
}

type sampledGrid struct {
	size int
	bits []bool
}

func (s *sampledGrid) at(x, y int) bool { return s.bits[y*s.size+x] }

// sampleGrid reads one bit per module through the affine frame spanned by
// the three finder centers, which sit at module centers (3.5, 3.5),
// (dim-3.5, 3.5), and (3.5, dim-3.5).
func sampleGrid(bm *bitmap, g *grid) (*sampledGrid, error) {
	dim := g.dimension
	denom := float64(dim - 7)
	out := &sampledGrid{size: dim, bits: make([]bool, dim*dim)}
	for my := 0; my < dim; my++ {
		for mx := 0; mx < dim; mx++ {
			u := (float64(mx) + 0.5 - 3.5) / denom
			v := (float64(my) + 0.5 - 3.5) / denom
			px := g.topLeft.x + u*(g.topRight.x-g.topLeft.x) + v*(g.bottomLeft.x-g.topLeft.x)
			py := g.topLeft.y + u*(g.topRight.y-g.topLeft.y) + v*(g.bottomLeft.y-g.topLeft.y)
			x := int(math.Round(px))
			y := int(math.Round(py))
			if x < -1 || y < -1 || x > bm.w || y > bm.h {
				return nil, fmt.Errorf("%w: sampling grid leaves the image", ErrNotFound)
			}
			out.bits[my*dim+mx] = bm.at(x, y)
		}
	}
	return out, nil
}

// --- matrix decoding ---

func decodeMatrix(s *sampledGrid) (string, error) {
	version := (s.size - 17) / 4

	level, mask, err := readFormat(s)
	if err != nil {
		return "", err
	}
	if err := checkVersionInfo(s, version); err != nil {
		return "", err
	}

	// Rebuild the function map for this geometry, then pull the masked
	// data bits in placement order.
	ref := newMatrix(version, level)
	var stream []bool
	ref.forEachData(func(x, y int) {
		stream = append(stream, s.at(x, y) != maskBit(mask, x, y))
	})

	total := dataWords(version, level) + ecWords(version, level)
	if len(stream) < total*8 {
		return "", fmt.Errorf("%w: short data stream", ErrFormat)
	}
	codewords := make([]byte, total)
	for i := 0; i < total*8; i++ {
		if stream[i] {
			codewords[i/8] |= 0x80 >> (i % 8)
		}
	}

	data, err := correctBlocks(codewords, version, level)
	if err != nil {
		return "", err
	}
	return parsePayload(data, version)
}

// readFormat recovers level and mask from the two format copies. Each copy
// is BCH-matched independently; they must agree.
func readFormat(s *sampledGrid) (ECLevel, int, error) {
	read1 := 0
	for _, pos := range formatBitSequence1() {
		read1 <<= 1
		if s.at(pos[0], pos[1]) {
			read1 |= 1
		}
	}
	read2 := 0
	for _, pos := range formatBitSequence2(s.size) {
		read2 <<= 1
		if s.at(pos[0], pos[1]) {
			read2 |= 1
		}
	}

	level1, mask1, ok1 := decodeFormat(read1)
	level2, mask2, ok2 := decodeFormat(read2)
	switch {
	case ok1 && ok2:
		if level1 != level2 || mask1 != mask2 {
			return 0, 0, fmt.Errorf("%w: format copies disagree", ErrFormat)
		}
		return level1, mask1, nil
	case ok1:
		return level1, mask1, nil
	case ok2:
		return level2, mask2, nil
	default:
		return 0, 0, fmt.Errorf("%w: both format copies unreadable", ErrFormat)
	}
}

// checkVersionInfo cross-checks the version blocks against the dimension-
// derived version for symbols that carry them.
func checkVersionInfo(s *sampledGrid, version int) error {
	if version < 7 {
		return nil
	}
	read1, read2 := 0, 0
	for k := 17; k >= 0; k-- {
		x := s.size - 11 + k%3
		y := k / 3
		read1 <<= 1
		if s.at(x, y) {
			read1 |= 1
		}
		read2 <<= 1
		if s.at(y, x) {
			read2 |= 1
		}
	}
	v1, ok1 := decodeVersion(read1)
	v2, ok2 := decodeVersion(read2)
	if (ok1 && v1 == version) || (ok2 && v2 == version) {
		return nil
	}
	return fmt.Errorf("%w: version information does not match symbol size", ErrFormat)
}

// correctBlocks de-interleaves the codeword stream, runs Reed-Solomon
// correction on every block, and returns the concatenated data codewords.
func correctBlocks(codewords []byte, version int, level ECLevel) ([]byte, error) {
	info := ecTable[version][level]
	var dataLens []int
	for _, g := range info.groups {
		for b := 0; b < g.blocks; b++ {
			dataLens = append(dataLens, g.dataWords)
		}
	}
	numBlocks := len(dataLens)

	blocks := make([][]byte, numBlocks)
	for i, n := range dataLens {
		blocks[i] = make([]byte, 0, n+info.ecPerBlock)
	}

	// Undo data interleaving (blocks may have unequal lengths).
	pos := 0
	longest := 0
	for _, n := range dataLens {
		if n > longest {
			longest = n
		}
	}
	for i := 0; i < longest; i++ {
		for b := 0; b < numBlocks; b++ {
			if i < dataLens[b] {
				blocks[b] = append(blocks[b], codewords[pos])
				pos++
			}
		}
	}
	// Undo EC interleaving (all blocks carry the same EC length).
	ecStart := make([][]byte, numBlocks)
	for b := range ecStart {
		ecStart[b] = make([]byte, 0, info.ecPerBlock)
	}
	for i := 0; i < info.ecPerBlock; i++ {
		for b := 0; b < numBlocks; b++ {
			ecStart[b] = append(ecStart[b], codewords[pos])
			pos++
		}
	}

	var data []byte
	for b := 0; b < numBlocks; b++ {
		full := append(blocks[b], ecStart[b]...)
		if _, err := rsCorrect(full, info.ecPerBlock); err != nil {
			return nil, err
		}
		data = append(data, full[:dataLens[b]]...)
	}
	return data, nil
}

// bitReader walks a byte slice bit by bit, most significant first.
type bitReader struct {
	data []byte
	pos  int
}

func (r *bitReader) remaining() int { return len(r.data)*8 - r.pos }

func (r *bitReader) read(width int) int {
	v := 0
	for i := 0; i < width; i++ {
		v <<= 1
		if r.data[r.pos/8]&(0x80>>(r.pos%8)) != 0 {
			v |= 1
		}
		r.pos++
	}
	return v
}

const alphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// parsePayload walks the segment stream: mode indicator, character count,
// payload, repeated until the terminator or the stream runs out.
func parsePayload(data []byte, version int) (string, error) {
	r := &bitReader{data: data}
	var out []byte
	for r.remaining() >= 4 {
		mode := r.read(4)
		if mode == modeTerminator {
			break
		}
		cb := countBits(version, mode)
		if cb == 0 || r.remaining() < cb {
			return "", fmt.Errorf("%w: unsupported or truncated segment mode %04b", ErrFormat, mode)
		}
		count := r.read(cb)
		switch mode {
		case modeByte:
			if r.remaining() < count*8 {
				return "", fmt.Errorf("%w: truncated byte segment", ErrFormat)
			}
			for i := 0; i < count; i++ {
				out = append(out, byte(r.read(8)))
			}
		case modeNumeric:
			for count > 0 {
				switch {
				case count >= 3:
					if r.remaining() < 10 {
						return "", fmt.Errorf("%w: truncated numeric segment", ErrFormat)
					}
					v := r.read(10)
					if v > 999 {
						return "", fmt.Errorf("%w: numeric group out of range", ErrFormat)
					}
					out = append(out, byte('0'+v/100), byte('0'+v/10%10), byte('0'+v%10))
					count -= 3
				case count == 2:
					if r.remaining() < 7 {
						return "", fmt.Errorf("%w: truncated numeric segment", ErrFormat)
					}
					v := r.read(7)
					if v > 99 {
						return "", fmt.Errorf("%w: numeric group out of range", ErrFormat)
					}
					out = append(out, byte('0'+v/10), byte('0'+v%10))
					count -= 2
				default:
					if r.remaining() < 4 {
						return "", fmt.Errorf("%w: truncated numeric segment", ErrFormat)
					}
					v := r.read(4)
					if v > 9 {
						return "", fmt.Errorf("%w: numeric group out of range", ErrFormat)
					}
					out = append(out, byte('0'+v))
					count--
				}
			}
		case modeAlphanumeric:
			for count > 0 {
				if count >= 2 {
					if r.remaining() < 11 {
						return "", fmt.Errorf("%w: truncated alphanumeric segment", ErrFormat)
					}
					v := r.read(11)
					if v >= 45*45 {
						return "", fmt.Errorf("%w: alphanumeric pair out of range", ErrFormat)
					}
					out = append(out, alphanumericChars[v/45], alphanumericChars[v%45])
					count -= 2
				} else {
					if r.remaining() < 6 {
						return "", fmt.Errorf("%w: truncated alphanumeric segment", ErrFormat)
					}
					v := r.read(6)
					if v >= 45 {
						return "", fmt.Errorf("%w: alphanumeric value out of range", ErrFormat)
					}
					out = append(out, alphanumericChars[v])
					count--
				}
			}
		default:
			return "", fmt.Errorf("%w: unsupported segment mode %04b", ErrFormat, mode)
		}
	}
	if len(out) == 0 {
		return "", fmt.Errorf("%w: empty payload", ErrFormat)
	}
	return string(out), nil
}
