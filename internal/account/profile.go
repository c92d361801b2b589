package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

// Wizard steps.
const (
	StepName   = 1
	StepGrade  = 2
	StepFinish = 3
)

// ProfileWizard collects name and grade over three steps.
type ProfileWizard struct {
	step     int
	name     string
	nickname string
	grade    syllabus.Grade
}

// NewProfileWizard starts at the name step, prefilled from u.
func NewProfileWizard(u User) *ProfileWizard {
	return &ProfileWizard{step: StepName, name: u.Name, nickname: u.Nickname, grade: u.Grade}
}

func (w *ProfileWizard) Step() int             { return w.step }
func (w *ProfileWizard) Name() string          { return w.name }
func (w *ProfileWizard) Nickname() string      { return w.nickname }
func (w *ProfileWizard) Grade() syllabus.Grade { return w.grade }

// SetName completes step one. Nickname is optional.
func (w *ProfileWizard) SetName(name, nickname string) error {
	if w.step != StepName {
		return fmt.Errorf("profile wizard: name belongs to step %d, at step %d", StepName, w.step)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "Please enter your name."}
	}
	w.name = name
	w.nickname = strings.TrimSpace(nickname)
	w.step = StepGrade
	return nil
}

// SetGrade completes step two.
func (w *ProfileWizard) SetGrade(g syllabus.Grade) error {
	if w.step != StepGrade {
		return fmt.Errorf("profile wizard: grade belongs to step %d, at step %d", StepGrade, w.step)
	}
	if !g.Valid() {
		return &ValidationError{Field: "grade", Message: "Please select your grade."}
	}
	w.grade = g
	w.step = StepFinish
	return nil
}

// Back returns to the previous step.
func (w *ProfileWizard) Back() {
	if w.step > StepName {
		w.step--
	}
}

// CompleteProfile applies a finished wizard to u and persists it.
func (s *Sessions) CompleteProfile(ctx context.Context, u User, w *ProfileWizard) (User, error) {
	if w.step != StepFinish {
		return u, fmt.Errorf("profile wizard not finished: at step %d", w.step)
	}
	u.Name = w.name
	u.Nickname = w.nickname
	u.Grade = w.grade
	u.ProfileSetupComplete = true
	if err := s.Save(ctx, u); err != nil {
		return u, fmt.Errorf("save profile: %w", err)
	}
	s.log.Info("profile completed", "phone", u.PhoneNumber, "grade", int(u.Grade))
	return u, nil
}
