package password_test

import (
	"testing"

	"github.com/TocConsulting/cryptex/pkg/password"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_Buckets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		secret string
		rating password.Rating
	}{
		{"short lowercase", "abcdxyzq", password.RatingWeak},
		{"mixed case with digit", "Abqdxfg7hjkm", password.RatingStrong},
		{"long four classes", "Kp7#mQ2$wR9!xT4&Zv8@", password.RatingVeryStrong},
		{"moderate alphanum", "Abcq7wty", password.RatingModerate},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			report := password.Analyze(tt.secret, 0)
			assert.Equal(t, tt.rating, report.Rating)
			assert.GreaterOrEqual(t, report.Score, 0)
			assert.LessOrEqual(t, report.Score, password.MaxScore)
			assert.Equal(t, len(tt.secret), report.Length)
		})
	}
}

func TestAnalyze_EntropyMonotonicity(t *testing.T) {
	t.Parallel()

	// Longer secret, same alphabet: entropy must not decrease.
	short := password.Analyze("Kp7mQ2wR", 62)
	long := password.Analyze("Kp7mQ2wRKp7mQ2wR", 62)
	assert.Greater(t, long.EntropyBits, short.EntropyBits)

	// Same length, bigger alphabet: entropy must not decrease.
	narrow := password.Analyze("Kp7mQ2wRxT4Z", 10)
	wide := password.Analyze("Kp7mQ2wRxT4Z", 94)
	assert.Greater(t, wide.EntropyBits, narrow.EntropyBits)
}

func TestAnalyze_Penalties(t *testing.T) {
	t.Parallel()

	clean := password.Analyze("Kp7mQ2wRxT4Z", 0)

	repeated := password.Analyze("Kp7mQ2wRxaaa", 0)
	assert.Less(t, repeated.Score, clean.Score)

	sequential := password.Analyze("Kp7mQ2wRx123", 0)
	assert.Less(t, sequential.Score, clean.Score)
}

func TestAnalyze_ClassesPresent(t *testing.T) {
	t.Parallel()

	report := password.Analyze("abcDEF123", 0)
	assert.True(t, report.Classes[password.ClassLower])
	assert.True(t, report.Classes[password.ClassUpper])
	assert.True(t, report.Classes[password.ClassDigit])
	assert.False(t, report.Classes[password.ClassSpecial])

	report = password.Analyze("!!??", 0)
	assert.True(t, report.Classes[password.ClassSpecial])
	assert.False(t, report.Classes[password.ClassLower])
}

func TestAnalyze_EmptySecret(t *testing.T) {
	t.Parallel()

	report := password.Analyze("", 0)
	assert.Zero(t, report.EntropyBits)
	assert.Equal(t, password.RatingWeak, report.Rating)
}
