package password

import (
	"fmt"
	"strings"
)

// Class identifies a character class a policy can require.
type Class string

const (
	ClassLower   Class = "lowercase"
	ClassUpper   Class = "uppercase"
	ClassDigit   Class = "digits"
	ClassSpecial Class = "special"
	ClassCustom  Class = "custom"
)

// Base alphabets. Special is the default set and may be overridden per
// policy; Similar is the fixed set removed when a policy excludes
// similar-looking characters.
const (
	Lowercase      = "abcdefghijklmnopqrstuvwxyz"
	Uppercase      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits         = "0123456789"
	DefaultSpecial = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	Similar        = "il1Lo0O"
)

// Charset is the resolved per-class candidate sets for one policy, with
// exclusions and the similar set already removed.
type Charset struct {
	classes map[Class]string
	union   string
}

// Class returns the candidate characters for the given class. The empty
// string means the class is not part of this charset.
func (c *Charset) Class(tag Class) string { return c.classes[tag] }

// Union returns the concatenation of all enabled classes.
func (c *Charset) Union() string { return c.union }

// Size returns the number of distinct characters across all classes.
func (c *Charset) Size() int { return len(c.union) }

// BuildCharset resolves a policy into concrete per-class candidate sets.
// Classes with a non-zero minimum must survive filtering with at least one
// character, and the union must be non-empty; both conditions are checked
// here so generation never has to retry.
func BuildCharset(p Policy) (*Charset, error) {
	special := p.Special
	if special == "" {
		special = DefaultSpecial
	}

	classes := make(map[Class]string)
	switch p.Type {
	case TypeStrong:
		classes[ClassLower] = Lowercase
		classes[ClassUpper] = Uppercase
		classes[ClassDigit] = Digits
		classes[ClassSpecial] = special
	case TypeAlpha:
		classes[ClassLower] = Lowercase
		classes[ClassUpper] = Uppercase
	case TypeAlphanum:
		classes[ClassLower] = Lowercase
		classes[ClassUpper] = Uppercase
		classes[ClassDigit] = Digits
	case TypeNumeric:
		classes[ClassDigit] = Digits
	case TypeCustom:
		classes[ClassCustom] = p.Custom
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, p.Type)
	}

	drop := p.Exclude
	if p.NoSimilar {
		drop += Similar
	}
	for tag, set := range classes {
		classes[tag] = strip(set, drop)
	}

	for tag, min := range p.minimums() {
		if min > 0 && classes[tag] == "" {
			return nil, fmt.Errorf("%w: class %s requires %d characters", ErrEmptyAlphabet, tag, min)
		}
	}

	var union strings.Builder
	for _, tag := range []Class{ClassLower, ClassUpper, ClassDigit, ClassSpecial, ClassCustom} {
		union.WriteString(classes[tag])
	}
	if union.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}

	return &Charset{classes: classes, union: union.String()}, nil
}

func strip(set, drop string) string {
	if drop == "" {
		return set
	}
	var b strings.Builder
	for _, r := range set {
		if !strings.ContainsRune(drop, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
