package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/progress"
	"github.com/zambezi-learn/zambezi/internal/store"
)

func seedDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zambezi.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	ms := material.NewDocumentStore(st.DocumentRepo(), nil)
	require.NoError(t, ms.Save(ctx, material.SavedMaterial{
		ID: "n1", Kind: material.KindNote, SubjectID: "math", SubjectName: "Mathematics", Topic: "Sets",
		Grade: 10, Title: "Study Notes: Sets", Content: material.NoteContent("# Sets"),
	}))
	require.NoError(t, progress.NewRepo(st.DocumentRepo(), nil).Save(ctx, progress.ApplyQuizResult(progress.Initial(), 4, 5, "math")))
	return path
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestMaterialsExportAndDelete(t *testing.T) {
	db := seedDB(t)
	xlsx := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, run(t, "materials", "export", xlsx, "--db", db))
	assert.FileExists(t, xlsx)

	require.NoError(t, run(t, "materials", "delete", "n1", "--db", db))
	assert.Error(t, run(t, "materials", "delete", "n1", "--db", db))
}

func TestResetNeedsConfirmation(t *testing.T) {
	db := seedDB(t)

	assert.Error(t, run(t, "reset", "--db", db))
	require.NoError(t, run(t, "reset", "--yes", "--db", db))

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	assert.Empty(t, material.NewDocumentStore(st.DocumentRepo(), nil).List(context.Background()))
	p, err := progress.NewRepo(st.DocumentRepo(), nil).Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, p.CompletedQuizzes)
}

func TestImportRejectsUnknownSubject(t *testing.T) {
	db := seedDB(t)
	err := run(t, "materials", "import", "paper.pdf", "--subject", "astrology", "--topic", "Stars", "--db", db)
	assert.ErrorContains(t, err, "unknown subject")
}
