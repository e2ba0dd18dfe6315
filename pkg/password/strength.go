package password

import (
	"math"
	"strings"
)

// Rating is the qualitative bucket a score falls into.
type Rating string

const (
	RatingWeak       Rating = "Weak"
	RatingModerate   Rating = "Moderate"
	RatingStrong     Rating = "Strong"
	RatingVeryStrong Rating = "Very Strong"
)

// Scoring constants. The score is an additive bucketing clamped to
// [0,MaxScore]: fixed length steps, fixed class-presence bonuses, and fixed
// penalties for repeated runs and ascending sequences. They are constants
// of the package, never tuned per call.
const (
	MaxScore = 80

	scoreLengthStep   = 10 // awarded at lengths 8, 12, 16, 20
	scoreClassBonus   = 10 // lowercase, uppercase, digits
	scoreSpecialBonus = 20
	scoreRunPenalty   = 10 // three or more identical characters in a row
	scoreSeqPenalty   = 10 // ascending digit or letter triple
)

// Entropy-per-class sizes used when the effective alphabet is inferred from
// the analyzed string instead of supplied by the caller.
const (
	inferredLowerSize   = 26
	inferredUpperSize   = 26
	inferredDigitSize   = 10
	inferredSpecialSize = 32
)

// Report is a read-only strength snapshot of one secret.
type Report struct {
	Length      int            `json:"length"`
	EntropyBits float64        `json:"entropy_bits"`
	Score       int            `json:"score"`
	MaxScore    int            `json:"max_score"`
	Rating      Rating         `json:"strength"`
	Classes     map[Class]bool `json:"character_types"`
}

// Analyze scores a secret. alphabetSize is the size of the effective
// alphabet the secret was drawn from; pass 0 when it is unknown and a
// conservative size will be inferred from the classes present in the
// string. Entropy is length * log2(alphabetSize); the score and rating are
// independent of alphabetSize and follow the documented constants.
func Analyze(secret string, alphabetSize int) Report {
	classes := classesOf(secret)

	if alphabetSize <= 0 {
		if classes[ClassLower] {
			alphabetSize += inferredLowerSize
		}
		if classes[ClassUpper] {
			alphabetSize += inferredUpperSize
		}
		if classes[ClassDigit] {
			alphabetSize += inferredDigitSize
		}
		if classes[ClassSpecial] {
			alphabetSize += inferredSpecialSize
		}
	}

	entropy := 0.0
	if alphabetSize > 0 {
		entropy = float64(len(secret)) * math.Log2(float64(alphabetSize))
	}

	score := 0
	for _, threshold := range []int{8, 12, 16, 20} {
		if len(secret) >= threshold {
			score += scoreLengthStep
		}
	}
	if classes[ClassLower] {
		score += scoreClassBonus
	}
	if classes[ClassUpper] {
		score += scoreClassBonus
	}
	if classes[ClassDigit] {
		score += scoreClassBonus
	}
	if classes[ClassSpecial] {
		score += scoreSpecialBonus
	}
	if hasRepeatedRun(secret) {
		score -= scoreRunPenalty
	}
	if hasAscendingTriple(secret) {
		score -= scoreSeqPenalty
	}
	if score < 0 {
		score = 0
	}
	if score > MaxScore {
		score = MaxScore
	}

	return Report{
		Length:      len(secret),
		EntropyBits: entropy,
		Score:       score,
		MaxScore:    MaxScore,
		Rating:      ratingFor(score),
		Classes:     classes,
	}
}

func ratingFor(score int) Rating {
	switch {
	case score >= 70:
		return RatingVeryStrong
	case score >= 50:
		return RatingStrong
	case score >= 30:
		return RatingModerate
	default:
		return RatingWeak
	}
}

func classesOf(secret string) map[Class]bool {
	classes := map[Class]bool{
		ClassLower:   false,
		ClassUpper:   false,
		ClassDigit:   false,
		ClassSpecial: false,
	}
	for _, r := range secret {
		switch {
		case r >= 'a' && r <= 'z':
			classes[ClassLower] = true
		case r >= 'A' && r <= 'Z':
			classes[ClassUpper] = true
		case r >= '0' && r <= '9':
			classes[ClassDigit] = true
		default:
			classes[ClassSpecial] = true
		}
	}
	return classes
}

// hasRepeatedRun reports three or more identical characters in a row.
func hasRepeatedRun(s string) bool {
	run := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			run++
			if run >= 3 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

// hasAscendingTriple reports a run of three sequential digits or lowercase
// letters, including the 890 wrap the original tooling flagged.
func hasAscendingTriple(s string) bool {
	lower := strings.ToLower(s)
	for i := 0; i+2 < len(lower); i++ {
		a, b, c := lower[i], lower[i+1], lower[i+2]
		digits := a >= '0' && c <= '9' && a <= '9' && c >= '0'
		letters := a >= 'a' && a <= 'z' && c >= 'a' && c <= 'z'
		if (digits || letters) && b == a+1 && c == b+1 {
			return true
		}
		if a == '8' && b == '9' && c == '0' {
			return true
		}
	}
	return false
}
