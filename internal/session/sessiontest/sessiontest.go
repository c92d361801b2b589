// Package sessiontest builds a session.State over a throwaway database
// for screen tests.
package sessiontest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zambezi-learn/zambezi/internal/account"
	"github.com/zambezi-learn/zambezi/internal/gateway"
	"github.com/zambezi-learn/zambezi/internal/llm"
	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/progress"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/store"
	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

// New returns an online, signed-out state whose gateway replays
// responses. Simulated delays are zero.
func New(t testing.TB, responses ...llm.MockResponse) (*session.State, *llm.MockProvider) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "zambezi.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	docs := st.DocumentRepo()
	mock := llm.NewMockProvider(responses...)
	state := session.New(session.Services{
		Accounts:  account.NewSessions(docs, nil, account.WithDelays(account.Delays{})),
		Materials: material.NewDocumentStore(docs, nil),
		Progress:  progress.NewRepo(docs, nil),
		Gateway:   gateway.New(mock, gateway.DefaultConfig(), nil),
	})
	state.Load(context.Background())
	state.Online = true
	return state, mock
}

// SignIn stores a paid learner with a finished profile and makes them
// current.
func SignIn(t testing.TB, state *session.State, grade syllabus.Grade) account.User {
	t.Helper()
	u := account.User{
		PhoneNumber:          "0977123456",
		Name:                 "Mwila Banda",
		Nickname:             "Mwila",
		Grade:                grade,
		HasPaid:              true,
		ProfileSetupComplete: true,
	}
	ctx := context.Background()
	require.NoError(t, state.Accounts.Save(ctx, u))
	require.NoError(t, state.SetUser(ctx, u))
	return u
}
