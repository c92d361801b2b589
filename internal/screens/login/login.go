// Package login is the phone number and verification code sign-in.
package login

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zambezi-learn/zambezi/internal/account"
	"github.com/zambezi-learn/zambezi/internal/screen"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/ui/components"
	"github.com/zambezi-learn/zambezi/internal/ui/layout"
	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

type step int

const (
	stepPhone step = iota
	stepCode
)

type codeSentMsg struct {
	Challenge account.Challenge
	Resent    bool
	Err       error
}

type verifiedMsg struct {
	User account.User
	Err  error
}

// LoginScreen collects a phone number, shows the simulated SMS and
// checks the code.
type LoginScreen struct {
	state     *session.State
	step      step
	phone     components.TextInput
	code      components.TextInput
	challenge account.Challenge
	busy      bool
	notice    string
	errMsg    string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)
var _ screen.BackHandler = (*LoginScreen)(nil)

func New(state *session.State) *LoginScreen {
	code := components.NewTextInput("••••", true, 4)
	code.Blur()
	return &LoginScreen{
		state: state,
		phone: components.NewTextInput("097xxxxxxx", true, 10),
		code:  code,
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.phone.Init()
}

func (s *LoginScreen) Title() string {
	return "Sign In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	if s.step == stepCode {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Verify"},
			{Key: "R", Description: "Resend code"},
			{Key: "W", Description: "Wrong number?"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send code"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// HandleBack returns from the code step to the phone step.
func (s *LoginScreen) HandleBack() (bool, tea.Cmd) {
	if s.step != stepCode || s.busy {
		return s.step == stepCode, nil
	}
	return true, s.backToPhone()
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case codeSentMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = message(msg.Err)
			return s, nil
		}
		s.challenge = msg.Challenge
		s.step = stepCode
		s.errMsg = ""
		s.notice = ""
		if msg.Resent {
			s.notice = "A new code has been sent."
		}
		s.code.SetValue("")
		s.phone.Blur()
		return s, s.code.Focus()

	case verifiedMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = message(msg.Err)
			s.code.SetValue("")
			return s, nil
		}
		if err := s.state.SetUser(context.Background(), msg.User); err != nil {
			s.state.Log.Warn("saving grade on sign-in", "error", err)
		}
		return s, func() tea.Msg { return session.RouteMsg{} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *LoginScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}

	var cmd tea.Cmd
	switch s.step {
	case stepPhone:
		if msg.String() == "enter" {
			return s, s.send(false)
		}
		s.phone, cmd = s.phone.Update(msg)
		return s, cmd

	case stepCode:
		switch msg.String() {
		case "enter":
			return s, s.verify()
		case "r", "R":
			return s, s.send(true)
		case "w", "W":
			return s, s.backToPhone()
		}
		s.code, cmd = s.code.Update(msg)
	}
	return s, cmd
}

func (s *LoginScreen) send(resend bool) tea.Cmd {
	phone := account.NormalizePhone(s.phone.Value())
	if err := account.ValidatePhone(phone); err != nil {
		s.errMsg = message(err)
		return nil
	}
	s.busy = true
	s.errMsg = ""
	accounts := s.state.Accounts
	return func() tea.Msg {
		ctx := context.Background()
		var c account.Challenge
		var err error
		if resend {
			c, err = accounts.ResendOTP(ctx, phone)
		} else {
			c, err = accounts.SendOTP(ctx, phone)
		}
		return codeSentMsg{Challenge: c, Resent: resend, Err: err}
	}
}

func (s *LoginScreen) verify() tea.Cmd {
	code := strings.TrimSpace(s.code.Value())
	if len(code) != 4 {
		s.errMsg = "Enter the 4-digit code."
		return nil
	}
	s.busy = true
	s.errMsg = ""
	accounts, c := s.state.Accounts, s.challenge
	return func() tea.Msg {
		u, err := accounts.VerifyOTP(context.Background(), c, code)
		return verifiedMsg{User: u, Err: err}
	}
}

func (s *LoginScreen) backToPhone() tea.Cmd {
	s.step = stepPhone
	s.challenge = account.Challenge{}
	s.errMsg = ""
	s.notice = ""
	s.code.SetValue("")
	s.code.Blur()
	return s.phone.Focus()
}

func message(err error) string {
	var verr *account.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return "Something went wrong. Please try again."
}

func (s *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	var b strings.Builder
	switch s.step {
	case stepPhone:
		b.WriteString(title.Render("Welcome to Zambezi") + "\n")
		b.WriteString(theme.Hint.Render("Sign in with your mobile number to continue.") + "\n\n")
		b.WriteString(theme.Body.Render("Phone number") + "\n")
		b.WriteString(s.phone.View() + "\n\n")
		if s.busy {
			b.WriteString(theme.Hint.Render("Sending code..."))
		} else {
			b.WriteString(components.Button("Send Code", s.phone.Value() != ""))
		}

	case stepCode:
		sms := fmt.Sprintf("Test Message\nYour verification code is %s", s.challenge.Code)
		b.WriteString(components.Badge(sms, lipgloss.NewStyle().
			Foreground(theme.BgDark).Background(theme.Accent)) + "\n\n")
		b.WriteString(title.Render("Verify your number") + "\n")
		b.WriteString(theme.Hint.Render("Enter the 4-digit code sent to "+s.challenge.Phone) + "\n\n")
		b.WriteString(s.code.View() + "\n\n")
		if s.busy {
			b.WriteString(theme.Hint.Render("Verifying..."))
		} else {
			b.WriteString(components.Button("Verify", len(s.code.Value()) == 4))
			b.WriteString("\n\n" + theme.Hint.Render("Didn't receive code? Press R.  Wrong number? Press W."))
		}
	}

	if s.notice != "" {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Success).Render(s.notice))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.ErrorText.Render(s.errMsg))
	}

	return components.Centered(components.Card(b.String(), cw), width, height)
}
