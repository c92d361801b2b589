// Package session holds the application state shared by every screen:
// the signed-in learner, their progress and the services that act on
// them.
package session

import (
	"context"
	"time"

	"github.com/zambezi-learn/zambezi/internal/account"
	"github.com/zambezi-learn/zambezi/internal/connectivity"
	"github.com/zambezi-learn/zambezi/internal/gateway"
	"github.com/zambezi-learn/zambezi/internal/logger"
	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/progress"
	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

// Services are the long-lived collaborators behind the state.
type Services struct {
	Accounts    *account.Sessions
	Materials   material.Store
	Progress    *progress.Repo
	Gateway     *gateway.Gateway
	Regenerator *material.Regenerator
	Monitor     *connectivity.Monitor
	Log         *logger.Logger
}

// State is mutated only from the Bubble Tea update loop. Every mutation
// that must survive a restart is followed by an explicit save.
type State struct {
	Services

	User   *account.User
	Stats  progress.UserProgress
	Online bool
	Notice connectivity.Notice

	now func() time.Time
}

// RouteMsg asks the shell to re-run the session gate and show the
// screen the current user is allowed to see.
type RouteMsg struct{}

// ConnectivityMsg carries a reachability change into the update loop.
type ConnectivityMsg struct {
	Change connectivity.Change
}

// New creates a state over svc. Call Load before use.
func New(svc Services) *State {
	if svc.Log == nil {
		svc.Log = logger.Nop()
	}
	if svc.Regenerator == nil && svc.Materials != nil && svc.Gateway != nil {
		svc.Regenerator = &material.Regenerator{Store: svc.Materials, Generator: svc.Gateway}
	}
	return &State{Services: svc, Stats: progress.Initial(), now: time.Now}
}

// Load restores the current user and progress from storage. Missing or
// unreadable records fall back to a signed-out user and initial
// progress.
func (s *State) Load(ctx context.Context) {
	if u, err := s.Accounts.Current(ctx); err != nil {
		s.Log.Warn("current user unreadable", "error", err)
	} else {
		s.User = u
	}

	if p, err := s.Progress.Load(ctx); err != nil {
		s.Log.Warn("progress unreadable", "error", err)
	} else {
		s.Stats = p
	}

	if s.Monitor != nil {
		s.Online = s.Monitor.Online()
	}
}

// Gate returns the screen the current user may see.
func (s *State) Gate() account.Screen {
	return account.Gate(s.User)
}

// Grade is the learner's grade, falling back to the progress record and
// then the highest grade.
func (s *State) Grade() syllabus.Grade {
	if s.User != nil && s.User.Grade.Valid() {
		return s.User.Grade
	}
	if s.Stats.Grade.Valid() {
		return s.Stats.Grade
	}
	return syllabus.MaxGrade
}

// SetUser replaces the signed-in user. A profile grade is copied into
// the progress record.
func (s *State) SetUser(ctx context.Context, u account.User) error {
	s.User = &u
	if u.Grade.Valid() && u.Grade != s.Stats.Grade {
		s.Stats.Grade = u.Grade
		return s.Progress.Save(ctx, s.Stats)
	}
	return nil
}

// ApplyQuiz folds a finished quiz into progress and saves it.
func (s *State) ApplyQuiz(ctx context.Context, score, maxScore int, subjectID string) error {
	s.Stats = progress.ApplyQuizResult(s.Stats, score, maxScore, subjectID)
	s.Log.Info("quiz recorded",
		"subject", subjectID,
		"score", score,
		"max_score", maxScore,
		"average", s.Stats.AverageScore,
	)
	return s.Progress.Save(ctx, s.Stats)
}

// Logout signs the user out. Progress and materials stay on the device.
func (s *State) Logout(ctx context.Context) error {
	if err := s.Accounts.Logout(ctx); err != nil {
		return err
	}
	s.User = nil
	return nil
}

// SetOnline records a connectivity change and raises its notice.
func (s *State) SetOnline(c connectivity.Change) {
	s.Online = c.Online
	s.Notice = connectivity.NoticeFor(c)
}

// ActiveNotice returns the notice to show now, if any.
func (s *State) ActiveNotice() (connectivity.Notice, bool) {
	if s.Notice.Active(s.now()) {
		return s.Notice, true
	}
	return connectivity.Notice{}, false
}
