package login

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zambezi-learn/zambezi/internal/account"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/session/sessiontest"
)

func typeText(s *LoginScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(s *LoginScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func TestLoginFlow(t *testing.T) {
	state, _ := sessiontest.New(t)
	s := New(state)

	typeText(s, "0977123456")
	cmd := press(s, tea.KeyEnter)
	require.NotNil(t, cmd)

	sent := cmd().(codeSentMsg)
	require.NoError(t, sent.Err)
	s.Update(sent)
	assert.Equal(t, stepCode, s.step)
	assert.Contains(t, s.View(100, 30), "Your verification code is "+sent.Challenge.Code)
	assert.Contains(t, s.View(100, 30), "Enter the 4-digit code sent to 0977123456")

	typeText(s, account.BypassCode)
	cmd = press(s, tea.KeyEnter)
	require.NotNil(t, cmd)
	verified := cmd().(verifiedMsg)
	require.NoError(t, verified.Err)

	_, cmd = s.Update(verified)
	require.NotNil(t, cmd)
	assert.IsType(t, session.RouteMsg{}, cmd())
	require.NotNil(t, state.User)
	assert.Equal(t, account.ScreenPayment, state.Gate())
}

func TestInvalidPhoneStaysPut(t *testing.T) {
	state, _ := sessiontest.New(t)
	s := New(state)

	typeText(s, "0123")
	assert.Nil(t, press(s, tea.KeyEnter))
	assert.Equal(t, stepPhone, s.step)
	assert.Contains(t, s.View(100, 30), "valid Zambian phone number")
}

func TestWrongCode(t *testing.T) {
	state, _ := sessiontest.New(t)
	s := New(state)
	s.Update(codeSentMsg{Challenge: account.Challenge{Phone: "0977123456", Code: "4321"}})

	typeText(s, "9999")
	verified := press(s, tea.KeyEnter)().(verifiedMsg)
	s.Update(verified)
	assert.Contains(t, s.View(100, 30), "Invalid code. Please try again.")
	assert.Nil(t, state.User)
	assert.Empty(t, s.code.Value())
}

func TestWrongNumberGoesBack(t *testing.T) {
	state, _ := sessiontest.New(t)
	s := New(state)
	s.Update(codeSentMsg{Challenge: account.Challenge{Phone: "0977123456", Code: "4321"}})

	handled, _ := s.HandleBack()
	assert.True(t, handled)
	assert.Equal(t, stepPhone, s.step)

	handled, _ = s.HandleBack()
	assert.False(t, handled)
}

func TestResend(t *testing.T) {
	state, _ := sessiontest.New(t)
	s := New(state)
	typeText(s, "0961234567")
	s.Update(press(s, tea.KeyEnter)())

	cmd := press(s, 'r')
	require.NotNil(t, cmd)
	resent := cmd().(codeSentMsg)
	assert.True(t, resent.Resent)
	s.Update(resent)
	assert.Contains(t, s.View(100, 30), "A new code has been sent.")
}
