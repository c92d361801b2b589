package app

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zambezi-learn/zambezi/internal/connectivity"
	"github.com/zambezi-learn/zambezi/internal/router"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/session/sessiontest"
)

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func skipWelcome(t *testing.T, m AppModel) AppModel {
	t.Helper()
	m, cmd := update(t, m, tea.KeyPressMsg{Code: 'x', Text: "x"})
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	m, _ = update(t, m, replace)
	return m
}

func TestGateChoosesRootScreen(t *testing.T) {
	state, _ := sessiontest.New(t)
	m := newAppModel(state, nil)
	assert.Equal(t, "", m.router.Active().Title())

	m = skipWelcome(t, m)
	assert.Equal(t, "Sign In", m.router.Active().Title())

	sessiontest.SignIn(t, state, 11)
	m, _ = update(t, m, session.RouteMsg{})
	assert.Equal(t, "Dashboard", m.router.Active().Title())
	assert.Equal(t, 1, m.router.Depth())
}

func TestEscPopsOnlyAboveRoot(t *testing.T) {
	state, _ := sessiontest.New(t)
	sessiontest.SignIn(t, state, 10)
	m := skipWelcome(t, newAppModel(state, nil))

	esc := tea.KeyPressMsg{Code: tea.KeyEscape}
	_, cmd := update(t, m, esc)
	assert.Nil(t, cmd)

	_, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, 2, m.router.Depth())

	_, cmd = update(t, m, esc)
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestConnectivityNotice(t *testing.T) {
	state, _ := sessiontest.New(t)
	sessiontest.SignIn(t, state, 10)
	changes := make(chan connectivity.Change, 1)
	m := skipWelcome(t, newAppModel(state, changes))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, cmd := update(t, m, session.ConnectivityMsg{Change: connectivity.Change{Online: false, At: time.Now()}})
	assert.NotNil(t, cmd)
	assert.False(t, state.Online)

	content := m.frame()
	assert.Contains(t, content, "You're offline. Saved materials are still available.")
	assert.Contains(t, content, "Offline")
	assert.Contains(t, content, "Grade 10")
}

func TestTooSmall(t *testing.T) {
	state, _ := sessiontest.New(t)
	m, _ := update(t, newAppModel(state, nil), tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.frame(), "Terminal too small!")
}
