package totp

import "time"

// Codes is the result of one code computation: the code for the current
// window, the code for the window after it, and how many seconds the
// current one remains valid.
type Codes struct {
	Current   string `json:"code"`
	Next      string `json:"next"`
	Remaining int    `json:"remaining"`
	Period    int    `json:"period"`
}

// Manager computes codes against an injectable clock so callers can pin
// time in tests. The zero value is not usable; construct with NewManager.
type Manager struct {
	now func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a code manager using the system clock by default.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Codes computes the current and next codes for the secret at the
// manager's clock.
func (m *Manager) Codes(s Secret) (Codes, error) {
	return m.CodesAt(s, m.now().Unix())
}

// CodesAt computes the current and next codes at an explicit Unix time.
// Next is the code of the window starting one period later, so it equals
// the current code computed at now+period.
func (m *Manager) CodesAt(s Secret, unixSeconds int64) (Codes, error) {
	if err := validateParams(s.Algorithm, s.Digits, s.Period); err != nil {
		return Codes{}, err
	}
	if len(s.Raw) == 0 {
		return Codes{}, ErrMissingSecret
	}
	return Codes{
		Current:   TOTP(s.Raw, unixSeconds, s.Period, s.Digits, s.Algorithm),
		Next:      TOTP(s.Raw, unixSeconds+int64(s.Period), s.Period, s.Digits, s.Algorithm),
		Remaining: RemainingSeconds(unixSeconds, s.Period),
		Period:    s.Period,
	}, nil
}
