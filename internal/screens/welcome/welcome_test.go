package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zambezi-learn/zambezi/internal/router"
	"github.com/zambezi-learn/zambezi/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "login" }
func (s *stubScreen) Title() string                          { return "Login" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestTaglineAppearsAfterRiver(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(100, 30), "offline") {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 6)
	if !strings.Contains(w.View(100, 30), "Works offline too.") {
		t.Error("tagline should be visible once the river has drawn")
	}
}

func TestKeypressSkipsAnimation(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestAutoTransition(t *testing.T) {
	w, callCount := newTestWelcome()

	cmd := sendTicks(w, int(totalDur/tickInterval))
	if cmd == nil {
		t.Fatal("expected transition command at end of animation")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}

	// late ticks and keys are ignored
	if cmd := sendTicks(w, 3); cmd != nil {
		t.Error("ticks after transition should not produce a command")
	}
	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'a'}); cmd != nil {
		t.Error("keypress after transition should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(40), "Z A M B E Z I") {
		t.Error("narrow terminals should get the compact banner")
	}
}
