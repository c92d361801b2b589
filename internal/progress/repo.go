package progress

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/zambezi-learn/zambezi/internal/logger"
	"github.com/zambezi-learn/zambezi/internal/store"
)

// Repo persists a single UserProgress document.
type Repo struct {
	docs store.DocumentRepo
	log  *logger.Logger
}

func NewRepo(docs store.DocumentRepo, log *logger.Logger) *Repo {
	if log == nil {
		log = logger.Nop()
	}
	return &Repo{docs: docs, log: log}
}

// Load returns the stored progress, or Initial() when nothing usable is
// stored. Only a failing store is reported as an error.
func (r *Repo) Load(ctx context.Context) (UserProgress, error) {
	raw, ok, err := r.docs.Get(ctx, store.KeyProgress)
	if err != nil {
		return Initial(), fmt.Errorf("load progress: %w", err)
	}
	if !ok {
		return Initial(), nil
	}

	var p UserProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		r.log.Warn("discarding unreadable progress", "error", err)
		return Initial(), nil
	}
	if !p.Grade.Valid() {
		p.Grade = Initial().Grade
	}
	if p.SubjectMastery == nil {
		p.SubjectMastery = Initial().SubjectMastery
	}
	return p, nil
}

func (r *Repo) Save(ctx context.Context, p UserProgress) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := r.docs.Put(ctx, store.KeyProgress, string(b)); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Reset removes stored progress so the next Load starts over.
func (r *Repo) Reset(ctx context.Context) error {
	return r.docs.Delete(ctx, store.KeyProgress)
}
