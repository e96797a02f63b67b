package forms

import "errors"

// DefaultResendSeconds is how long the resend action stays disabled.
const DefaultResendSeconds = 60

// ErrResendLocked is returned by Resend while the countdown is running.
var ErrResendLocked = errors.New("resend not available yet")

// ResendTimer counts down the seconds until a verification code may be resent.
type ResendTimer struct {
	total     int
	remaining int
}

// NewResendTimer returns a stopped timer that restarts at seconds.
func NewResendTimer(seconds int) ResendTimer {
	if seconds <= 0 {
		seconds = DefaultResendSeconds
	}
	return ResendTimer{total: seconds}
}

// Start arms the countdown at its full duration.
func (t *ResendTimer) Start() {
	if t.total <= 0 {
		t.total = DefaultResendSeconds
	}
	t.remaining = t.total
}

// Tick removes one second. It reports whether the countdown is still running.
func (t *ResendTimer) Tick() bool {
	if t.remaining > 0 {
		t.remaining--
	}
	return t.remaining > 0
}

// Remaining is the number of seconds left.
func (t ResendTimer) Remaining() int { return t.remaining }

// CanResend reports whether the countdown has reached zero.
func (t ResendTimer) CanResend() bool { return t.remaining == 0 }

// Resend restarts the countdown, failing while it is still running.
func (t *ResendTimer) Resend() error {
	if !t.CanResend() {
		return ErrResendLocked
	}
	t.Start()
	return nil
}
