package account

import (
	"context"
	"time"
)

// Clock abstracts time for the simulated delays.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Delays are the simulated network round trips.
type Delays struct {
	OTPSend           time.Duration
	OTPVerify         time.Duration
	OTPResend         time.Duration
	PaymentProcessing time.Duration
	PaymentPIN        time.Duration
}

// DefaultDelays match the timings users see in the mobile app.
func DefaultDelays() Delays {
	return Delays{
		OTPSend:           1500 * time.Millisecond,
		OTPVerify:         1500 * time.Millisecond,
		OTPResend:         time.Second,
		PaymentProcessing: 2 * time.Second,
		PaymentPIN:        5 * time.Second,
	}
}

func wait(ctx context.Context, c Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.After(d):
		return nil
	}
}
