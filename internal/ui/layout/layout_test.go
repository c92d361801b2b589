package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Subjects", Status{Grade: 11, Online: true, SignedIn: true}, 100)
	for _, want := range []string{"Zambezi", "Subjects", "Grade 11", "Online"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}

	h = RenderHeader("Sign In", Status{Grade: 11}, 100)
	if strings.Contains(h, "Grade 11") {
		t.Error("grade shown while signed out")
	}
	if !strings.Contains(h, "Offline") {
		t.Error("offline indicator missing")
	}
}

func TestRenderFooter_DropsHintsThatWrap(t *testing.T) {
	hints := []KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Open"},
		{Key: "G", Description: "Generate"},
		{Key: "S", Description: "Save"},
		{Key: "U", Description: "Upload PDF"},
		{Key: "T", Description: "Ask Tutor"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}

	wide := RenderFooter(hints, 160)
	if !strings.Contains(wide, "Ask Tutor") {
		t.Error("wide footer should keep every hint")
	}

	narrow := RenderFooter(hints, 60)
	if got := lipgloss.Height(narrow); got != 3 {
		t.Errorf("narrow footer height = %d, want 3", got)
	}
	if !strings.Contains(narrow, "Quit") {
		t.Error("quit hint must survive trimming")
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("narrow terminal should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}
