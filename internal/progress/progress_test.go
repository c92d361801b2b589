package progress

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zambezi-learn/zambezi/internal/store"
)

func TestInitial(t *testing.T) {
	p := Initial()
	assert.EqualValues(t, 12, p.Grade)
	assert.Zero(t, p.CompletedQuizzes)
	assert.Zero(t, p.AverageScore)
	assert.Equal(t, 1, p.StreakDays)
	assert.Len(t, p.SubjectMastery, 7)
	for id, v := range p.SubjectMastery {
		assert.Zero(t, v, id)
	}
}

func TestApplyQuizResult_RunningAverage(t *testing.T) {
	p := Initial()

	p = ApplyQuizResult(p, 4, 5, "math")
	assert.Equal(t, 1, p.CompletedQuizzes)
	assert.Equal(t, 80, p.AverageScore)
	assert.Equal(t, 5, p.Mastery("math"))

	p = ApplyQuizResult(p, 5, 5, "math")
	assert.Equal(t, 2, p.CompletedQuizzes)
	assert.Equal(t, 90, p.AverageScore)
	assert.Equal(t, 10, p.Mastery("math"))
}

func TestApplyQuizResult_Rounds(t *testing.T) {
	p := ApplyQuizResult(Initial(), 2, 3, "science")
	assert.Equal(t, 67, p.AverageScore)
}

func TestApplyQuizResult_MasteryClamped(t *testing.T) {
	p := Initial()
	for i := 0; i < 21; i++ {
		p = ApplyQuizResult(p, 5, 5, "geo")
	}
	assert.Equal(t, 21, p.CompletedQuizzes)
	assert.Equal(t, 100, p.Mastery("geo"))
	assert.Equal(t, 100, p.AverageScore)
}

func TestApplyQuizResult_ZeroMaxScore(t *testing.T) {
	p := Initial()
	p.CompletedQuizzes = 1
	p.AverageScore = 100

	p = ApplyQuizResult(p, 3, 0, "civic")
	assert.Equal(t, 50, p.AverageScore)
	assert.Equal(t, 5, p.Mastery("civic"))
}

func TestApplyQuizResult_DoesNotMutateInput(t *testing.T) {
	before := Initial()
	before.StreakDays = 4
	before.Grade = 10

	after := ApplyQuizResult(before, 1, 5, "english")

	assert.Zero(t, before.SubjectMastery["english"])
	assert.Zero(t, before.CompletedQuizzes)
	assert.Equal(t, 4, after.StreakDays)
	assert.EqualValues(t, 10, after.Grade)
}

func TestApplyQuizResult_UnknownSubject(t *testing.T) {
	p := ApplyQuizResult(UserProgress{}, 1, 1, "art")
	assert.Equal(t, 5, p.Mastery("art"))
}

func TestOverallMastery(t *testing.T) {
	p := Initial()
	p.SubjectMastery["math"] = 70
	assert.Equal(t, 10, p.OverallMastery())
}

func openDocs(t *testing.T) store.DocumentRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "p.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.DocumentRepo()
}

func TestRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	docs := openDocs(t)
	repo := NewRepo(docs, nil)

	p, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Initial(), p)

	p = ApplyQuizResult(p, 3, 5, "commerce")
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	require.NoError(t, repo.Reset(ctx))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Initial(), got)
}

func TestRepoCorruptDocument(t *testing.T) {
	ctx := context.Background()
	docs := openDocs(t)
	require.NoError(t, docs.Put(ctx, store.KeyProgress, "{not json"))

	got, err := NewRepo(docs, nil).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Initial(), got)
}
