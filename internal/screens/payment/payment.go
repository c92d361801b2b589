// Package payment is the one-time mobile-money subscription screen.
package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zambezi-learn/zambezi/internal/account"
	"github.com/zambezi-learn/zambezi/internal/screen"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/ui/components"
	"github.com/zambezi-learn/zambezi/internal/ui/layout"
	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

type phase int

const (
	phaseOperator phase = iota
	phasePhone
	phasePaying
	phaseDone
)

type stepMsg struct {
	attempt int
	state   account.PaymentState
}

type paidMsg struct {
	User account.User
	Err  error
}

type loggedOutMsg struct{ Err error }

// PaymentScreen walks through operator choice, the paying number and
// the simulated approval.
type PaymentScreen struct {
	state    *session.State
	phase    phase
	menu     components.Menu
	operator account.Operator
	phone    components.TextInput
	pay      account.PaymentState
	attempt  int
	errMsg   string
}

var _ screen.Screen = (*PaymentScreen)(nil)
var _ screen.KeyHintProvider = (*PaymentScreen)(nil)
var _ screen.BackHandler = (*PaymentScreen)(nil)

func New(state *session.State) *PaymentScreen {
	s := &PaymentScreen{state: state, pay: account.PaymentIdle}

	items := make([]components.MenuItem, 0, len(account.Operators()))
	for _, op := range account.Operators() {
		items = append(items, components.MenuItem{
			Label:  op.Label(),
			Action: func() tea.Cmd { return s.chooseOperator(op) },
		})
	}
	s.menu = components.NewMenu(items)

	s.phone = components.NewTextInput("097xxxxxxx", true, 10)
	s.phone.Blur()
	return s
}

func (s *PaymentScreen) Init() tea.Cmd {
	return nil
}

func (s *PaymentScreen) Title() string {
	return "Subscription"
}

func (s *PaymentScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseOperator:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Provider"},
			{Key: "Enter", Description: "Select"},
			{Key: "L", Description: "Log out"},
		}
	case phasePhone:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Pay " + account.SubscriptionPrice},
			{Key: "Esc", Description: "Change provider"},
		}
	case phaseDone:
		return []layout.KeyHint{{Key: "Enter", Description: "Start Learning"}}
	}
	return nil
}

// HandleBack steps from the number entry back to the provider list.
func (s *PaymentScreen) HandleBack() (bool, tea.Cmd) {
	if s.phase == phasePhone {
		s.phase = phaseOperator
		s.errMsg = ""
		s.phone.Blur()
		return true, nil
	}
	return s.phase != phaseOperator, nil
}

func (s *PaymentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		if msg.attempt != s.attempt || s.phase != phasePaying {
			return s, nil
		}
		return s, s.advance(msg.state)

	case paidMsg:
		if msg.Err != nil {
			s.phase = phasePhone
			s.pay = account.PaymentIdle
			s.errMsg = "Payment could not be recorded. Please try again."
			s.state.Log.Error("recording payment", "error", msg.Err)
			return s, s.phone.Focus()
		}
		if err := s.state.SetUser(context.Background(), msg.User); err != nil {
			s.state.Log.Warn("saving progress after payment", "error", err)
		}
		s.phase = phaseDone
		return s, nil

	case loggedOutMsg:
		if msg.Err != nil {
			s.errMsg = "Could not log out. Please try again."
			return s, nil
		}
		return s, route

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func route() tea.Msg { return session.RouteMsg{} }

func (s *PaymentScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.phase {
	case phaseOperator:
		if k := msg.String(); k == "l" || k == "L" {
			return s, s.logout()
		}
		s.menu, cmd = s.menu.Update(msg)
	case phasePhone:
		if msg.String() == "enter" {
			return s, s.start()
		}
		s.phone, cmd = s.phone.Update(msg)
	case phaseDone:
		if msg.String() == "enter" {
			return s, route
		}
	}
	return s, cmd
}

func (s *PaymentScreen) chooseOperator(op account.Operator) tea.Cmd {
	s.operator = op
	s.phase = phasePhone
	s.errMsg = ""
	if s.phone.Value() == "" && s.state.User != nil {
		s.phone.SetValue(s.state.User.PhoneNumber)
	}
	return s.phone.Focus()
}

func (s *PaymentScreen) start() tea.Cmd {
	phone := account.NormalizePhone(s.phone.Value())
	if err := account.ValidatePhone(phone); err != nil {
		var verr *account.ValidationError
		if errors.As(err, &verr) {
			s.errMsg = verr.Message
		}
		return nil
	}
	s.errMsg = ""
	s.phase = phasePaying
	s.attempt++
	s.state.Log.Info("payment started", "phone", phone, "operator", string(s.operator))

	next, _, _ := s.state.Accounts.Delays().NextPayment(account.PaymentIdle)
	return s.advance(next)
}

// advance enters st and schedules the following step.
func (s *PaymentScreen) advance(st account.PaymentState) tea.Cmd {
	s.pay = st
	if st == account.PaymentSuccess {
		accounts, u := s.state.Accounts, s.currentUser()
		return func() tea.Msg {
			paid, err := accounts.CompletePayment(context.Background(), u)
			return paidMsg{User: paid, Err: err}
		}
	}
	next, after, ok := s.state.Accounts.Delays().NextPayment(st)
	if !ok {
		return nil
	}
	attempt := s.attempt
	return tea.Tick(after, func(time.Time) tea.Msg {
		return stepMsg{attempt: attempt, state: next}
	})
}

func (s *PaymentScreen) currentUser() account.User {
	if s.state.User == nil {
		return account.User{}
	}
	return *s.state.User
}

func (s *PaymentScreen) logout() tea.Cmd {
	st := s.state
	return func() tea.Msg {
		return loggedOutMsg{Err: st.Logout(context.Background())}
	}
}

func (s *PaymentScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	var b strings.Builder
	switch s.phase {
	case phaseOperator, phasePhone:
		b.WriteString(heading.Render("Unlock Zambezi") + "\n")
		b.WriteString(theme.Body.Render("One-time payment of "+account.SubscriptionPrice) + "\n")
		b.WriteString(theme.Hint.Render("Full access to all subjects, offline downloads and the AI Tutor.") + "\n\n")
		b.WriteString(theme.Body.Render("Choose your mobile money provider") + "\n")
		if s.phase == phaseOperator {
			b.WriteString(s.menu.View())
		} else {
			b.WriteString(theme.Selected.Render("  ✓ "+s.operator.Label()) + "\n\n")
			b.WriteString(theme.Body.Render(s.operator.Label()+" number") + "\n")
			b.WriteString(s.phone.View() + "\n\n")
			b.WriteString(components.Button("Pay "+account.SubscriptionPrice, true))
		}

	case phasePaying:
		b.WriteString(heading.Render(s.operator.Label()) + "\n\n")
		switch s.pay {
		case account.PaymentProcessing:
			b.WriteString(theme.Body.Render("Processing payment..."))
		case account.PaymentWaitingForPIN:
			b.WriteString(theme.Body.Render("Check your phone") + "\n")
			b.WriteString(theme.Hint.Render("Enter your PIN on the prompt to approve "+account.SubscriptionPrice+"."))
		default:
			b.WriteString(theme.Body.Render("Confirming payment..."))
		}

	case phaseDone:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Payment Successful!") + "\n\n")
		b.WriteString(theme.Body.Render("Your subscription is active. You now have full access to all subjects and the AI Tutor.") + "\n\n")
		b.WriteString(components.Button("Start Learning", true))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.ErrorText.Render(s.errMsg))
	}
	return components.Centered(components.Card(b.String(), cw), width, height)
}
