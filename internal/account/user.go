// Package account holds the local user session: simulated phone login,
// the mobile-money payment gate and the profile wizard.
package account

import (
	"time"

	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

// User is the single local learner. PhoneNumber is the identity key in
// the user directory.
type User struct {
	PhoneNumber          string         `json:"phoneNumber"`
	Name                 string         `json:"name,omitempty"`
	Nickname             string         `json:"nickname,omitempty"`
	Grade                syllabus.Grade `json:"grade,omitempty"`
	HasPaid              bool           `json:"hasPaid"`
	SubscriptionDate     *time.Time     `json:"subscriptionDate,omitempty"`
	ProfileSetupComplete bool           `json:"profileSetupComplete"`
}

// DisplayName prefers the nickname.
func (u User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	if u.Name != "" {
		return u.Name
	}
	return u.PhoneNumber
}

// Screen is the top-level view a session is allowed to see.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenPayment
	ScreenProfile
	ScreenDashboard
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenPayment:
		return "payment"
	case ScreenProfile:
		return "profile"
	case ScreenDashboard:
		return "dashboard"
	}
	return "unknown"
}

// Gate picks the screen for u: login until signed in, then payment,
// then profile setup, then the app.
func Gate(u *User) Screen {
	switch {
	case u == nil:
		return ScreenLogin
	case !u.HasPaid:
		return ScreenPayment
	case !u.ProfileSetupComplete:
		return ScreenProfile
	}
	return ScreenDashboard
}
