package material

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zambezi-learn/zambezi/internal/logger"
	"github.com/zambezi-learn/zambezi/internal/store"
)

// Store is the collection of saved materials, newest first.
type Store interface {
	// Save prepends m. A material whose ID is already stored is ignored.
	Save(ctx context.Context, m SavedMaterial) error

	// List returns every material, most recent first. An unreadable
	// collection reads as empty.
	List(ctx context.Context) []SavedMaterial

	// Get returns the material with id.
	Get(ctx context.Context, id string) (SavedMaterial, bool)

	// Delete removes the material with id, if present.
	Delete(ctx context.Context, id string) error

	// Update replaces the content of the material with id and refreshes
	// its timestamp. Unknown ids are ignored.
	Update(ctx context.Context, id string, content Content) error

	// ListForTopic returns the materials saved for one subject topic.
	ListForTopic(ctx context.Context, subjectID, topic string) []SavedMaterial
}

// DocumentStore keeps the whole collection as one JSON document. Every
// mutation rewrites the document, so the stored list is never partial.
type DocumentStore struct {
	mu   sync.Mutex
	docs store.DocumentRepo
	log  *logger.Logger
	now  func() time.Time
}

func NewDocumentStore(docs store.DocumentRepo, log *logger.Logger) *DocumentStore {
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentStore{docs: docs, log: log, now: time.Now}
}

// NewID returns a fresh material id.
func NewID() string {
	return uuid.NewString()
}

func (s *DocumentStore) Save(ctx context.Context, m SavedMaterial) error {
	if m.ID == "" {
		return &ValidationError{Field: "id", Message: "material id is required"}
	}
	if !m.Kind.Valid() {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unknown material type %q", m.Kind)}
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	for _, existing := range current {
		if existing.ID == m.ID {
			return nil
		}
	}

	updated := make([]SavedMaterial, 0, len(current)+1)
	updated = append(updated, m)
	updated = append(updated, current...)
	if err := s.write(ctx, updated); err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	s.log.Info("material saved", "id", m.ID, "type", string(m.Kind), "subject", m.SubjectID, "topic", m.Topic)
	return nil
}

func (s *DocumentStore) List(ctx context.Context) []SavedMaterial {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		s.log.Warn("list materials", "error", err)
		return []SavedMaterial{}
	}
	return items
}

func (s *DocumentStore) Get(ctx context.Context, id string) (SavedMaterial, bool) {
	for _, m := range s.List(ctx) {
		if m.ID == id {
			return m, true
		}
	}
	return SavedMaterial{}, false
}

func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	kept := current[:0:0]
	for _, m := range current {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(current) {
		return nil
	}
	if err := s.write(ctx, kept); err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	s.log.Info("material deleted", "id", id)
	return nil
}

func (s *DocumentStore) Update(ctx context.Context, id string, content Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return &StorageError{Op: "update", Err: err}
	}
	idx := -1
	for i, m := range current {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	current[idx].Content = content
	current[idx].Timestamp = s.now()
	if err := s.write(ctx, current); err != nil {
		return &StorageError{Op: "update", Err: err}
	}
	s.log.Info("material updated", "id", id)
	return nil
}

func (s *DocumentStore) ListForTopic(ctx context.Context, subjectID, topic string) []SavedMaterial {
	var out []SavedMaterial
	for _, m := range s.List(ctx) {
		if m.SubjectID == subjectID && m.Topic == topic {
			out = append(out, m)
		}
	}
	return out
}

// load reads the collection. Only a failing store is an error; a missing
// document is empty, and an unreadable document or entry is skipped.
func (s *DocumentStore) load(ctx context.Context) ([]SavedMaterial, error) {
	raw, ok, err := s.docs.Get(ctx, store.KeyMaterials)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []SavedMaterial{}, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Warn("material document unreadable, treating as empty", "error", err)
		return []SavedMaterial{}, nil
	}
	out := make([]SavedMaterial, 0, len(entries))
	for i, e := range entries {
		var m SavedMaterial
		if err := json.Unmarshal(e, &m); err != nil {
			s.log.Warn("skipping unreadable material", "index", i, "error", err)
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *DocumentStore) write(ctx context.Context, items []SavedMaterial) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode materials: %w", err)
	}
	return s.docs.Put(ctx, store.KeyMaterials, string(b))
}

// Latest returns the most recent material saved for slot.
func Latest(ctx context.Context, s Store, slot Slot) (SavedMaterial, bool) {
	for _, m := range s.ListForTopic(ctx, slot.SubjectID, slot.Topic) {
		if m.Kind == slot.Kind {
			return m, true
		}
	}
	return SavedMaterial{}, false
}
