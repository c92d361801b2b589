package account

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zambezi-learn/zambezi/internal/store"
)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	waited []time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.waited = append(c.waited, d)
	c.now = c.now.Add(d)
	now := c.now
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

func newSessions(t *testing.T) (*Sessions, *fakeClock, store.DocumentRepo) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "zambezi.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clock := &fakeClock{now: time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)}
	docs := st.DocumentRepo()
	return NewSessions(docs, nil, WithClock(clock)), clock, docs
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		ok    bool
	}{
		{"0977123456", true},
		{"0761234567", true},
		{"0967000000", true},
		{"0877123456", false},
		{"097712345", false},
		{"09771234567", false},
		{"977123456", false},
		{"", false},
	}
	for _, tt := range tests {
		err := ValidatePhone(tt.phone)
		if tt.ok {
			assert.NoError(t, err, tt.phone)
			continue
		}
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, tt.phone)
		assert.Equal(t, "Please enter a valid Zambian phone number (e.g., 097xxxxxxx)", verr.Message)
	}
	assert.Equal(t, "0977123456", NormalizePhone("097 712-3456"))
}

func TestOTP(t *testing.T) {
	s, clock, _ := newSessions(t)
	ctx := context.Background()

	c, err := s.SendOTP(ctx, "0977123456")
	require.NoError(t, err)
	assert.Len(t, c.Code, 4)
	assert.GreaterOrEqual(t, c.Code, "1000")
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, clock.waited)

	assert.NoError(t, c.Verify(c.Code))
	assert.NoError(t, c.Verify(BypassCode))

	wrong := "0000"
	var verr *ValidationError
	require.ErrorAs(t, c.Verify(wrong), &verr)
	assert.Equal(t, "Invalid code. Please try again.", verr.Message)

	_, err = s.SendOTP(ctx, "12345")
	assert.ErrorAs(t, err, &verr)
}

func TestVerifyOTP_SignsIn(t *testing.T) {
	s, _, _ := newSessions(t)
	ctx := context.Background()

	c, err := s.SendOTP(ctx, "0977123456")
	require.NoError(t, err)

	_, err = s.VerifyOTP(ctx, c, "0000")
	require.Error(t, err)
	cur, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	u, err := s.VerifyOTP(ctx, c, BypassCode)
	require.NoError(t, err)
	assert.Equal(t, "0977123456", u.PhoneNumber)
	assert.False(t, u.HasPaid)
}

func TestLoginPayReLogin(t *testing.T) {
	s, clock, _ := newSessions(t)
	ctx := context.Background()

	u, err := s.Login(ctx, "0977123456")
	require.NoError(t, err)
	assert.False(t, u.HasPaid)
	assert.Equal(t, ScreenPayment, Gate(&u))

	var states []PaymentState
	paid, err := s.Pay(ctx, u, OperatorMTN, u.PhoneNumber, func(st PaymentState) {
		states = append(states, st)
	})
	require.NoError(t, err)
	assert.Equal(t, []PaymentState{PaymentProcessing, PaymentWaitingForPIN, PaymentSuccess}, states)
	assert.Equal(t, []time.Duration{2 * time.Second, 5 * time.Second}, clock.waited)
	assert.True(t, paid.HasPaid)
	require.NotNil(t, paid.SubscriptionDate)
	assert.True(t, paid.SubscriptionDate.Equal(clock.Now()))

	require.NoError(t, s.Logout(ctx))
	cur, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
	assert.Equal(t, ScreenLogin, Gate(cur))

	again, err := s.Login(ctx, "0977123456")
	require.NoError(t, err)
	assert.True(t, again.HasPaid)
	assert.Equal(t, ScreenProfile, Gate(&again))
}

func TestPay_Rejects(t *testing.T) {
	s, _, _ := newSessions(t)
	ctx := context.Background()
	u, err := s.Login(ctx, "0977123456")
	require.NoError(t, err)

	var verr *ValidationError
	_, err = s.Pay(ctx, u, Operator("visa"), u.PhoneNumber, nil)
	assert.ErrorAs(t, err, &verr)
	_, err = s.Pay(ctx, u, OperatorAirtel, "123", nil)
	assert.ErrorAs(t, err, &verr)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	got, err := s.Pay(cancelled, u, OperatorZamtel, u.PhoneNumber, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, got.HasPaid)

	stored, ok, err := s.Lookup(ctx, u.PhoneNumber)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, stored.HasPaid)
}

func TestProfileWizard(t *testing.T) {
	s, _, _ := newSessions(t)
	ctx := context.Background()
	u, err := s.Login(ctx, "0961234567")
	require.NoError(t, err)
	u, err = s.CompletePayment(ctx, u)
	require.NoError(t, err)

	w := NewProfileWizard(u)
	assert.Equal(t, StepName, w.Step())

	var verr *ValidationError
	assert.ErrorAs(t, w.SetName("   ", ""), &verr)
	assert.Error(t, w.SetGrade(10), "grade before name")

	require.NoError(t, w.SetName(" Mwila ", "Mwi"))
	assert.Equal(t, StepGrade, w.Step())
	_, err = s.CompleteProfile(ctx, u, w)
	assert.Error(t, err, "unfinished wizard")

	assert.ErrorAs(t, w.SetGrade(7), &verr)
	assert.ErrorAs(t, w.SetGrade(13), &verr)
	require.NoError(t, w.SetGrade(11))
	assert.Equal(t, StepFinish, w.Step())

	done, err := s.CompleteProfile(ctx, u, w)
	require.NoError(t, err)
	assert.True(t, done.ProfileSetupComplete)
	assert.Equal(t, "Mwila", done.Name)
	assert.Equal(t, "Mwi", done.DisplayName())
	assert.Equal(t, ScreenDashboard, Gate(&done))

	cur, err := s.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.EqualValues(t, 11, cur.Grade)

	require.NoError(t, s.Logout(ctx))
	back, err := s.Login(ctx, "0961234567")
	require.NoError(t, err)
	assert.True(t, back.ProfileSetupComplete)
}

func TestWizardBack(t *testing.T) {
	w := NewProfileWizard(User{Name: "Chanda", Grade: 9})
	require.NoError(t, w.SetName(w.Name(), ""))
	w.Back()
	assert.Equal(t, StepName, w.Step())
	w.Back()
	assert.Equal(t, StepName, w.Step())
	assert.EqualValues(t, 9, w.Grade())
}

func TestCurrent_CorruptRecord(t *testing.T) {
	s, _, docs := newSessions(t)
	ctx := context.Background()
	require.NoError(t, docs.Put(ctx, store.KeyUser, "not json"))

	cur, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	require.NoError(t, docs.Put(ctx, store.KeyUsers, "[]"))
	u, err := s.Login(ctx, "0977123456")
	require.NoError(t, err)
	assert.Equal(t, "0977123456", u.PhoneNumber)
}

func TestNextPayment(t *testing.T) {
	d := DefaultDelays()
	next, after, ok := d.NextPayment(PaymentProcessing)
	assert.True(t, ok)
	assert.Equal(t, PaymentWaitingForPIN, next)
	assert.Equal(t, 2*time.Second, after)

	_, _, ok = d.NextPayment(PaymentSuccess)
	assert.False(t, ok)
}
