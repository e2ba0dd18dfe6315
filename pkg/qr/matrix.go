package qr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// Matrix is a square QR module grid plus the version and error-correction
// level it was built with. Dark modules are true.
type Matrix struct {
	size     int
	version  int
	level    ECLevel
	modules  []bool
	function []bool // marks function-pattern and reserved modules
}

func newMatrix(version int, level ECLevel) *Matrix {
	size := versionSize(version)
	m := &Matrix{
		size:     size,
		version:  version,
		level:    level,
		modules:  make([]bool, size*size),
		function: make([]bool, size*size),
	}
	m.drawFunctionPatterns()
	return m
}

func (m *Matrix) Size() int      { return m.size }
func (m *Matrix) Version() int   { return m.version }
func (m *Matrix) Level() ECLevel { return m.level }

// At reports whether the module at (x, y) is dark.
func (m *Matrix) At(x, y int) bool { return m.modules[y*m.size+x] }

func (m *Matrix) set(x, y int, dark bool) {
	m.modules[y*m.size+x] = dark
}

func (m *Matrix) setFunction(x, y int, dark bool) {
	i := y*m.size + x
	m.modules[i] = dark
	m.function[i] = true
}

func (m *Matrix) isFunction(x, y int) bool { return m.function[y*m.size+x] }

// drawFunctionPatterns places everything that does not depend on the
// payload: finder patterns with separators, timing patterns, alignment
// patterns, the dark module, and reservations for format and version
// information (filled in by the encoder once the mask is chosen).
func (m *Matrix) drawFunctionPatterns() {
	m.drawFinder(0, 0)
	m.drawFinder(m.size-7, 0)
	m.drawFinder(0, m.size-7)

	for i := 8; i < m.size-8; i++ {
		dark := i%2 == 0
		m.setFunction(i, 6, dark)
		m.setFunction(6, i, dark)
	}

	centers := alignmentCenters[m.version]
	if len(centers) > 0 {
		last := centers[len(centers)-1]
		for _, cy := range centers {
			for _, cx := range centers {
				// The three finder corners have no alignment pattern.
				if (cx == 6 && cy == 6) || (cx == 6 && cy == last) || (cx == last && cy == 6) {
					continue
				}
				m.drawAlignment(cx, cy)
			}
		}
	}

	// Dark module.
	m.setFunction(8, 4*m.version+9, true)

	// Reserve format information areas around the finders.
	for i := 0; i <= 8; i++ {
		if i != 6 {
			m.reserve(i, 8)
			m.reserve(8, i)
		}
	}
	for i := 0; i < 8; i++ {
		m.reserve(m.size-1-i, 8)
		m.reserve(8, m.size-1-i)
	}

	// Reserve version information blocks for versions 7 and up.
	if m.version >= 7 {
		for k := 0; k < 18; k++ {
			x := m.size - 11 + k%3
			y := k / 3
			m.reserve(x, y)
			m.reserve(y, x)
		}
	}
}

func (m *Matrix) reserve(x, y int) {
	m.function[y*m.size+x] = true
}

// drawFinder places one 7x7 finder pattern with its one-module separator.
// Separator cells (dx or dy of -1/7) are always light; the ring and core
// tests only apply inside the 7x7 square.
func (m *Matrix) drawFinder(left, top int) {
	for dy := -1; dy <= 7; dy++ {
		for dx := -1; dx <= 7; dx++ {
			x, y := left+dx, top+dy
			if x < 0 || y < 0 || x >= m.size || y >= m.size {
				continue
			}
			inFinder := dx >= 0 && dx <= 6 && dy >= 0 && dy <= 6
			ring := dx == 0 || dx == 6 || dy == 0 || dy == 6
			core := dx >= 2 && dx <= 4 && dy >= 2 && dy <= 4
			m.setFunction(x, y, inFinder && (ring || core))
		}
	}
}

func (m *Matrix) drawAlignment(cx, cy int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			edge := dx == -2 || dx == 2 || dy == -2 || dy == 2
			m.setFunction(cx+dx, cy+dy, edge || (dx == 0 && dy == 0))
		}
	}
}

// forEachData visits every data module in standard placement order: column
// pairs from the right edge, alternating upward and downward, skipping the
// vertical timing column and all function modules.
func (m *Matrix) forEachData(fn func(x, y int)) {
	upward := true
	for col := m.size - 1; col > 0; col -= 2 {
		if col == 6 {
			col--
		}
		for i := 0; i < m.size; i++ {
			y := i
			if upward {
				y = m.size - 1 - i
			}
			for dx := 0; dx < 2; dx++ {
				x := col - dx
				if !m.isFunction(x, y) {
					fn(x, y)
				}
			}
		}
		upward = !upward
	}
}

// Image renders the matrix as a grayscale image with the given pixels per
// module and quiet-zone border in modules. The standard requires a border
// of four; smaller values hinder decoding by other readers.
func (m *Matrix) Image(scale, border int) image.Image {
	if scale < 1 {
		scale = 4
	}
	if border < 0 {
		border = 4
	}
	total := (m.size + 2*border) * scale
	img := image.NewGray(image.Rect(0, 0, total, total))
	for y := 0; y < total; y++ {
		for x := 0; x < total; x++ {
			mx := x/scale - border
			my := y/scale - border
			c := color.Gray{Y: 255}
			if mx >= 0 && my >= 0 && mx < m.size && my < m.size && m.At(mx, my) {
				c = color.Gray{Y: 0}
			}
			img.SetGray(x, y, c)
		}
	}
	return img
}

// PNG renders the matrix as PNG bytes.
func (m *Matrix) PNG(scale, border int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, m.Image(scale, border)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
