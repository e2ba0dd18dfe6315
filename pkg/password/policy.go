package password

import "fmt"

// Type selects the base character composition of a policy.
type Type string

const (
	TypeStrong   Type = "strong"
	TypeAlpha    Type = "alpha"
	TypeAlphanum Type = "alphanum"
	TypeNumeric  Type = "numeric"
	TypeCustom   Type = "custom"
)

// Length bounds enforced for every policy.
const (
	MinLength = 8
	MaxLength = 256
)

// Policy describes everything needed to generate one password: length, the
// base character composition, per-class minimum counts, and filters applied
// to every class.
type Policy struct {
	Length     int
	Type       Type
	Special    string // overrides DefaultSpecial when non-empty
	Custom     string // charset for TypeCustom
	Exclude    string
	NoSimilar  bool
	MinUpper   int
	MinLower   int
	MinDigit   int
	MinSpecial int
}

// DefaultPolicy is the out-of-the-box generation policy: 16 characters
// drawing from all four classes with no minimums.
func DefaultPolicy() Policy {
	return Policy{Length: 16, Type: TypeStrong}
}

func (p Policy) minimums() map[Class]int {
	return map[Class]int{
		ClassUpper:   p.MinUpper,
		ClassLower:   p.MinLower,
		ClassDigit:   p.MinDigit,
		ClassSpecial: p.MinSpecial,
	}
}

// Validate checks the policy invariants: length bounds, non-negative
// minimums whose sum fits the length, and a non-empty alphabet for every
// class with a minimum. It is called by Generate but is exported so callers
// can fail fast before prompting, saving to a sink, etc.
func (p Policy) Validate() error {
	if p.Length < MinLength || p.Length > MaxLength {
		return fmt.Errorf("%w: got %d", ErrPolicyLength, p.Length)
	}
	total := 0
	for tag, min := range p.minimums() {
		if min < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeMinimum, tag)
		}
		total += min
	}
	if total > p.Length {
		return fmt.Errorf("%w: %d > %d", ErrPolicyMinimums, total, p.Length)
	}
	_, err := BuildCharset(p)
	return err
}
