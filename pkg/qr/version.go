package qr

// ECLevel is the QR error-correction level.
type ECLevel int

const (
	Low      ECLevel = iota // L, ~7% recovery
	Medium                  // M, ~15% recovery
	Quartile                // Q, ~25% recovery
	High                    // H, ~30% recovery
)

func (l ECLevel) String() string {
	switch l {
	case Low:
		return "L"
	case Medium:
		return "M"
	case Quartile:
		return "Q"
	case High:
		return "H"
	default:
		return "?"
	}
}

// maxVersion bounds the supported symbol sizes. Version 10 holds up to 271
// bytes at level L, comfortably above any password or otpauth URI this
// tool produces.
const maxVersion = 10

// blockGroup is a run of identical Reed-Solomon blocks.
type blockGroup struct {
	blocks    int
	dataWords int
}

// blockInfo is the RS block structure for one version/level pair.
type blockInfo struct {
	ecPerBlock int
	groups     [2]blockGroup
}

// ecTable is indexed [version][level]; values transcribed from the
// ISO/IEC 18004 error-correction characteristics table.
var ecTable = [maxVersion + 1][4]blockInfo{
	1: {
		{7, [2]blockGroup{{1, 19}, {}}},
		{10, [2]blockGroup{{1, 16}, {}}},
		{13, [2]blockGroup{{1, 13}, {}}},
		{17, [2]blockGroup{{1, 9}, {}}},
	},
	2: {
		{10, [2]blockGroup{{1, 34}, {}}},
		{16, [2]blockGroup{{1, 28}, {}}},
		{22, [2]blockGroup{{1, 22}, {}}},
		{28, [2]blockGroup{{1, 16}, {}}},
	},
	3: {
		{15, [2]blockGroup{{1, 55}, {}}},
		{26, [2]blockGroup{{1, 44}, {}}},
		{18, [2]blockGroup{{2, 17}, {}}},
		{22, [2]blockGroup{{2, 13}, {}}},
	},
	4: {
		{20, [2]blockGroup{{1, 80}, {}}},
		{18, [2]blockGroup{{2, 32}, {}}},
		{26, [2]blockGroup{{2, 24}, {}}},
		{16, [2]blockGroup{{4, 9}, {}}},
	},
	5: {
		{26, [2]blockGroup{{1, 108}, {}}},
		{24, [2]blockGroup{{2, 43}, {}}},
		{18, [2]blockGroup{{2, 15}, {2, 16}}},
		{22, [2]blockGroup{{2, 11}, {2, 12}}},
	},
	6: {
		{18, [2]blockGroup{{2, 68}, {}}},
		{16, [2]blockGroup{{4, 27}, {}}},
		{24, [2]blockGroup{{4, 19}, {}}},
		{28, [2]blockGroup{{4, 15}, {}}},
	},
	7: {
		{20, [2]blockGroup{{2, 78}, {}}},
		{18, [2]blockGroup{{4, 31}, {}}},
		{18, [2]blockGroup{{2, 14}, {4, 15}}},
		{26, [2]blockGroup{{4, 13}, {1, 14}}},
	},
	8: {
		{24, [2]blockGroup{{2, 97}, {}}},
		{22, [2]blockGroup{{2, 38}, {2, 39}}},
		{22, [2]blockGroup{{4, 18}, {2, 19}}},
		{26, [2]blockGroup{{4, 14}, {2, 15}}},
	},
	9: {
		{30, [2]blockGroup{{2, 116}, {}}},
		{22, [2]blockGroup{{3, 36}, {2, 37}}},
		{20, [2]blockGroup{{4, 16}, {4, 17}}},
		{24, [2]blockGroup{{4, 12}, {4, 13}}},
	},
	10: {
		{18, [2]blockGroup{{2, 68}, {2, 69}}},
		{26, [2]blockGroup{{4, 43}, {1, 44}}},
		{24, [2]blockGroup{{6, 19}, {2, 20}}},
		{28, [2]blockGroup{{6, 15}, {2, 16}}},
	},
}

// alignmentCenters lists alignment pattern center coordinates per version.
var alignmentCenters = [maxVersion + 1][]int{
	2:  {6, 18},
	3:  {6, 22},
	4:  {6, 26},
	5:  {6, 30},
	6:  {6, 34},
	7:  {6, 22, 38},
	8:  {6, 24, 42},
	9:  {6, 26, 46},
	10: {6, 28, 50},
}

func versionSize(version int) int { return 17 + 4*version }

// dataWords returns the number of data codewords for a version/level.
func dataWords(version int, level ECLevel) int {
	info := ecTable[version][level]
	n := 0
	for _, g := range info.groups {
		n += g.blocks * g.dataWords
	}
	return n
}

// ecWords returns the total error-correction codewords.
func ecWords(version int, level ECLevel) int {
	info := ecTable[version][level]
	blocks := info.groups[0].blocks + info.groups[1].blocks
	return blocks * info.ecPerBlock
}

// byteCapacity returns how many payload bytes fit in byte mode: the data
// codewords minus the mode indicator (4 bits) and character count (8 bits
// up to version 9, 16 bits from version 10).
func byteCapacity(version int, level ECLevel) int {
	bits := dataWords(version, level)*8 - 4 - countBits(version, modeByte)
	if bits < 0 {
		return 0
	}
	return bits / 8
}

// Segment modes.
const (
	modeTerminator   = 0b0000
	modeNumeric      = 0b0001
	modeAlphanumeric = 0b0010
	modeByte         = 0b0100
)

// countBits returns the width of the character-count field for a mode at a
// version (versions 1-9 vs 10-26; versions above 26 are out of range here).
func countBits(version, mode int) int {
	small := version <= 9
	switch mode {
	case modeNumeric:
		if small {
			return 10
		}
		return 12
	case modeAlphanumeric:
		if small {
			return 9
		}
		return 11
	case modeByte:
		if small {
			return 8
		}
		return 16
	default:
		return 0
	}
}
