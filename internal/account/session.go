package account

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/zambezi-learn/zambezi/internal/logger"
	"github.com/zambezi-learn/zambezi/internal/store"
)

// Sessions persists the current user and the directory of every user
// who has signed in on this device.
type Sessions struct {
	mu     sync.Mutex
	docs   store.DocumentRepo
	log    *logger.Logger
	clock  Clock
	delays Delays
}

// Option configures Sessions.
type Option func(*Sessions)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Sessions) { s.clock = c }
}

// WithDelays replaces the simulated delays.
func WithDelays(d Delays) Option {
	return func(s *Sessions) { s.delays = d }
}

func NewSessions(docs store.DocumentRepo, log *logger.Logger, opts ...Option) *Sessions {
	if log == nil {
		log = logger.Nop()
	}
	s := &Sessions{docs: docs, log: log, clock: realClock{}, delays: DefaultDelays()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Delays returns the simulated delays in use.
func (s *Sessions) Delays() Delays {
	return s.delays
}

// SendOTP validates phone and issues a verification code after the
// simulated SMS delay.
func (s *Sessions) SendOTP(ctx context.Context, phone string) (Challenge, error) {
	return s.issue(ctx, phone, s.delays.OTPSend)
}

// ResendOTP issues a fresh code, replacing the previous one.
func (s *Sessions) ResendOTP(ctx context.Context, phone string) (Challenge, error) {
	return s.issue(ctx, phone, s.delays.OTPResend)
}

func (s *Sessions) issue(ctx context.Context, phone string, delay time.Duration) (Challenge, error) {
	if err := ValidatePhone(phone); err != nil {
		return Challenge{}, err
	}
	code, err := newCode()
	if err != nil {
		return Challenge{}, err
	}
	if err := wait(ctx, s.clock, delay); err != nil {
		return Challenge{}, err
	}
	s.log.Info("verification code issued", "phone", phone, "otp", code)
	return Challenge{Phone: phone, Code: code}, nil
}

// VerifyOTP checks code after the simulated verification delay and signs
// the user in on success.
func (s *Sessions) VerifyOTP(ctx context.Context, c Challenge, code string) (User, error) {
	if err := wait(ctx, s.clock, s.delays.OTPVerify); err != nil {
		return User{}, err
	}
	if err := c.Verify(code); err != nil {
		s.log.Info("verification failed", "phone", c.Phone)
		return User{}, err
	}
	return s.Login(ctx, c.Phone)
}

// Login signs phone in. A number seen before gets its directory record
// back; a new number gets an unpaid user.
func (s *Sessions) Login(ctx context.Context, phone string) (User, error) {
	if err := ValidatePhone(phone); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir, err := s.directory(ctx)
	if err != nil {
		return User{}, err
	}
	u, known := dir[phone]
	if !known {
		u = User{PhoneNumber: phone}
		dir[phone] = u
		if err := s.putJSON(ctx, store.KeyUsers, dir); err != nil {
			return User{}, err
		}
	}
	if err := s.putJSON(ctx, store.KeyUser, u); err != nil {
		return User{}, err
	}
	s.log.Info("signed in", "phone", phone, "known", known, "paid", u.HasPaid)
	return u, nil
}

// Current returns the signed-in user, or nil when nobody is signed in or
// the record is unreadable.
func (s *Sessions) Current(ctx context.Context) (*User, error) {
	raw, ok, err := s.docs.Get(ctx, store.KeyUser)
	if err != nil {
		return nil, fmt.Errorf("load current user: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.PhoneNumber == "" {
		s.log.Warn("discarding unreadable user record", "error", err)
		return nil, nil
	}
	return &u, nil
}

// Save writes u as the current user and into the directory.
func (s *Sessions) Save(ctx context.Context, u User) error {
	if err := ValidatePhone(u.PhoneNumber); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir, err := s.directory(ctx)
	if err != nil {
		return err
	}
	dir[u.PhoneNumber] = u
	if err := s.putJSON(ctx, store.KeyUsers, dir); err != nil {
		return err
	}
	return s.putJSON(ctx, store.KeyUser, u)
}

// Logout forgets the current user. The directory is kept so the next
// login with the same number restores payment and profile.
func (s *Sessions) Logout(ctx context.Context) error {
	if err := s.docs.Delete(ctx, store.KeyUser); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info("signed out")
	return nil
}

// Lookup returns the directory record for phone.
func (s *Sessions) Lookup(ctx context.Context, phone string) (User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir, err := s.directory(ctx)
	if err != nil {
		return User{}, false, err
	}
	u, ok := dir[phone]
	return u, ok, nil
}

func (s *Sessions) directory(ctx context.Context) (map[string]User, error) {
	raw, ok, err := s.docs.Get(ctx, store.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("load user directory: %w", err)
	}
	dir := map[string]User{}
	if !ok || raw == "" {
		return dir, nil
	}
	if err := json.Unmarshal([]byte(raw), &dir); err != nil {
		s.log.Warn("user directory unreadable, starting empty", "error", err)
		return map[string]User{}, nil
	}
	return dir, nil
}

func (s *Sessions) putJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.docs.Put(ctx, key, string(b)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
