package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestDocumentGetMissing(t *testing.T) {
	repo := openTestStore(t).DocumentRepo()

	v, ok, err := repo.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("expected missing document, got %q ok=%v", v, ok)
	}
}

func TestDocumentPutReplaces(t *testing.T) {
	repo := openTestStore(t).DocumentRepo()
	ctx := context.Background()

	if err := repo.Put(ctx, KeyMaterials, `[1]`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, KeyMaterials, `[2,1]`); err != nil {
		t.Fatalf("put again: %v", err)
	}

	v, ok, err := repo.Get(ctx, KeyMaterials)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || v != `[2,1]` {
		t.Fatalf("got %q ok=%v, want [2,1]", v, ok)
	}
}

func TestDocumentKeysIndependent(t *testing.T) {
	repo := openTestStore(t).DocumentRepo()
	ctx := context.Background()

	_ = repo.Put(ctx, KeyUser, `{"phoneNumber":"0977123456"}`)
	_ = repo.Put(ctx, KeyUsers, `{}`)

	if err := repo.Delete(ctx, KeyUser); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, KeyUser); ok {
		t.Fatal("expected user document to be gone")
	}
	if _, ok, _ := repo.Get(ctx, KeyUsers); !ok {
		t.Fatal("expected directory document to survive")
	}

	// Deleting again is fine.
	if err := repo.Delete(ctx, KeyUser); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestLLMEventsAppendAndQuery(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quiz", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "notes", InputTokens: 50, OutputTokens: 700, LatencyMs: 1100, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quiz", LatencyMs: 300, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].ErrorMessage != "boom" || all[0].Success {
		t.Errorf("expected newest event first, got %+v", all[0])
	}

	quiz, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz", Limit: 1})
	if err != nil {
		t.Fatalf("query quiz: %v", err)
	}
	if len(quiz) != 1 || quiz[0].Purpose != "quiz" {
		t.Fatalf("unexpected filtered result: %+v", quiz)
	}

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.OutputTokens != 400 {
		t.Fatalf("unexpected event: %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing event")
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	_ = repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m1", Purpose: "quiz", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true})
	_ = repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m1", Purpose: "quiz", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: true})
	_ = repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m2", Purpose: "tutor", InputTokens: 5, OutputTokens: 5, LatencyMs: 50, Success: true})

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	q := byPurpose[0]
	if q.Purpose != "quiz" || q.Calls != 2 || q.InputTokens != 40 || q.OutputTokens != 60 || q.AvgLatencyMs != 200 {
		t.Errorf("unexpected quiz usage: %+v", q)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "m1" || byModel[0].Calls != 2 {
		t.Errorf("unexpected model usage: %+v", byModel)
	}
}
