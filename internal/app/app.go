package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zambezi-learn/zambezi/internal/account"
	"github.com/zambezi-learn/zambezi/internal/connectivity"
	"github.com/zambezi-learn/zambezi/internal/router"
	"github.com/zambezi-learn/zambezi/internal/screen"
	"github.com/zambezi-learn/zambezi/internal/screens/dashboard"
	"github.com/zambezi-learn/zambezi/internal/screens/login"
	"github.com/zambezi-learn/zambezi/internal/screens/payment"
	"github.com/zambezi-learn/zambezi/internal/screens/profile"
	"github.com/zambezi-learn/zambezi/internal/screens/welcome"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/ui/layout"
)

type noticeExpiredMsg struct{}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	state   *session.State
	router  *router.Router
	changes <-chan connectivity.Change
	width   int
	height  int
}

// newAppModel starts on the welcome screen, which hands over to
// whatever the session gate allows.
func newAppModel(state *session.State, changes <-chan connectivity.Change) AppModel {
	return AppModel{
		state:   state,
		router:  router.New(welcome.New(func() screen.Screen { return screenFor(state) })),
		changes: changes,
	}
}

// screenFor maps the gate to the root screen of that stage.
func screenFor(state *session.State) screen.Screen {
	switch state.Gate() {
	case account.ScreenPayment:
		return payment.New(state)
	case account.ScreenProfile:
		return profile.New(state)
	case account.ScreenDashboard:
		return dashboard.New(state)
	}
	return login.New(state)
}

func waitForChange(changes <-chan connectivity.Change) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-changes
		if !ok {
			return nil
		}
		return session.ConnectivityMsg{Change: c}
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), waitForChange(m.changes))
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.router.Update(msg)

	case session.RouteMsg:
		return m, m.router.Reset(screenFor(m.state))

	case session.ConnectivityMsg:
		m.state.SetOnline(msg.Change)
		return m, tea.Batch(
			waitForChange(m.changes),
			tea.Tick(connectivity.NoticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{} }),
		)

	case noticeExpiredMsg:
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok {
				if handled, cmd := bh.HandleBack(); handled {
					return m, cmd
				}
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders header, notice banner, active screen and footer.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	status := layout.Status{Online: m.state.Online}
	if m.state.User != nil {
		status.SignedIn = true
		status.Grade = int(m.state.Grade())
	}
	header := layout.RenderHeader(active.Title(), status, m.width)

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(hints, m.width)

	banner := ""
	if n, ok := m.state.ActiveNotice(); ok {
		banner = layout.RenderBanner(n.Message, n.Level == connectivity.NoticeWarning, m.width)
	}

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	if banner != "" {
		contentHeight = max(contentHeight-lipgloss.Height(banner), 0)
	}
	content := m.router.View(m.width, contentHeight)
	if banner != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, banner, content)
	}

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program over state and blocks until the
// learner quits.
func Run(state *session.State) error {
	var changes <-chan connectivity.Change
	if state.Monitor != nil {
		ch, cancel := state.Monitor.Subscribe()
		defer cancel()
		changes = ch
	}

	p := tea.NewProgram(newAppModel(state, changes))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
