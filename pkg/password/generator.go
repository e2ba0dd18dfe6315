package password

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Generator produces passwords from policies. The zero value is not usable;
// construct with New. The randomness source defaults to crypto/rand.Reader
// and is injectable for reproducible tests only — production callers must
// not substitute a non-cryptographic source.
type Generator struct {
	rand io.Reader
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand overrides the randomness source. The reader is consumed through
// crypto/rand.Int, so any io.Reader works, but anything other than a CSPRNG
// (or a fixed-sequence reader in tests) defeats the point of the package.
func WithRand(r io.Reader) Option {
	return func(g *Generator) {
		if r != nil {
			g.rand = r
		}
	}
}

// New creates a password generator.
func New(opts ...Option) *Generator {
	g := &Generator{rand: crand.Reader}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces a single password satisfying the policy.
//
// The algorithm is constructive rather than generate-and-retry: after
// validation, each class contributes its minimum count of characters drawn
// uniformly from that class, the remaining positions are drawn from the
// union of all classes, and the whole sequence is shuffled with an unbiased
// Fisher-Yates permutation. Minimums therefore hold by construction and the
// call always terminates in a fixed number of draws.
func (g *Generator) Generate(p Policy) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	cs, err := BuildCharset(p)
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, p.Length)
	for _, tag := range []Class{ClassUpper, ClassLower, ClassDigit, ClassSpecial} {
		min := p.minimums()[tag]
		set := cs.Class(tag)
		for i := 0; i < min; i++ {
			ch, err := g.pick(set)
			if err != nil {
				return "", err
			}
			out = append(out, ch)
		}
	}
	for len(out) < p.Length {
		ch, err := g.pick(cs.Union())
		if err != nil {
			return "", err
		}
		out = append(out, ch)
	}
	if err := g.shuffle(out); err != nil {
		return "", err
	}
	return string(out), nil
}

// GenerateMany produces count independent passwords under the same policy.
func (g *Generator) GenerateMany(p Policy, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", count)
	}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		pw, err := g.Generate(p)
		if err != nil {
			return nil, err
		}
		out = append(out, pw)
	}
	return out, nil
}

const (
	pronounceConsonants = "bcdfghjklmnpqrstvwxyz"
	pronounceVowels     = "aeiou"
)

// GeneratePronounceable produces an alternating consonant-vowel password.
// Roughly a third of the consonants are uppercased, and for lengths of ten
// or more a zero-padded two-digit number is spliced at a random interior
// position. Pronounceable passwords trade entropy for memorability and are
// not subject to class minimums.
func (g *Generator) GeneratePronounceable(length int) (string, error) {
	if length < MinLength || length > MaxLength {
		return "", fmt.Errorf("%w: got %d", ErrPolicyLength, length)
	}

	out := make([]byte, 0, length+2)
	consonant := true
	for len(out) < length {
		if consonant {
			ch, err := g.pick(pronounceConsonants)
			if err != nil {
				return "", err
			}
			up, err := g.intn(3)
			if err != nil {
				return "", err
			}
			if up == 0 {
				ch -= 'a' - 'A'
			}
			out = append(out, ch)
		} else {
			ch, err := g.pick(pronounceVowels)
			if err != nil {
				return "", err
			}
			out = append(out, ch)
		}
		consonant = !consonant
	}

	if length >= 10 {
		pos, err := g.intn(length - 2)
		if err != nil {
			return "", err
		}
		pos++
		num, err := g.intn(100)
		if err != nil {
			return "", err
		}
		digits := []byte(fmt.Sprintf("%02d", num))
		out = append(out[:pos], append(digits, out[pos:]...)...)
		out = out[:length]
	}
	return string(out), nil
}

func (g *Generator) pick(set string) (byte, error) {
	i, err := g.intn(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func (g *Generator) shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := g.intn(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

// intn draws a uniform integer in [0,n) from the generator's source.
// crypto/rand.Int performs the rejection sampling needed to avoid modulo
// bias.
func (g *Generator) intn(n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptyAlphabet
	}
	v, err := crand.Int(g.rand, big.NewInt(int64(n)))
	if err != nil {
		return 0, errors.Join(ErrRandomnessFailed, err)
	}
	return int(v.Int64()), nil
}
