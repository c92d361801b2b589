package presentation

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/zambezi-learn/zambezi/internal/logger"
	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

var (
	// ErrBusy is returned while another generation for the board is running.
	ErrBusy = errors.New("a generation is already in progress")

	// ErrOffline is returned when generation is requested without a connection.
	ErrOffline = errors.New("generation needs a connection")

	// ErrStale is returned for a generation that finished after the board
	// was left or superseded. Its result has been dropped.
	ErrStale = errors.New("generation result is stale")
)

// View is what the screen should offer for a slot.
type View int

const (
	// ShowControls offers generate (and upload for pdf), plus any saved copy.
	ShowControls View = iota
	// ShowSaved offers the saved copy for reading only.
	ShowSaved
	// Unavailable is a disabled placeholder: offline with nothing saved.
	Unavailable
)

func (v View) String() string {
	switch v {
	case ShowControls:
		return "controls"
	case ShowSaved:
		return "saved"
	case Unavailable:
		return "unavailable"
	}
	return "unknown"
}

// Topic identifies the board's subject topic.
type Topic struct {
	SubjectID   string
	SubjectName string
	Name        string
	Grade       syllabus.Grade
}

// Board holds the slots for one topic screen and guards generation: at
// most one request runs at a time, and results that arrive after Leave
// are dropped.
type Board struct {
	topic Topic
	store material.Store
	gen   material.Generator
	log   *logger.Logger

	mu     sync.Mutex
	slots  map[material.Kind]*Slot
	epoch  uint64
	busy   bool
	cancel context.CancelFunc
}

// NewBoard loads slot states from what is already saved for topic.
func NewBoard(ctx context.Context, topic Topic, store material.Store, gen material.Generator, log *logger.Logger) *Board {
	if log == nil {
		log = logger.Nop()
	}
	b := &Board{
		topic: topic,
		store: store,
		gen:   gen,
		log:   log,
		slots: map[material.Kind]*Slot{},
	}
	for _, k := range material.Kinds() {
		s := &Slot{Kind: k, State: NoContent}
		if _, ok := b.saved(ctx, k); ok {
			s.State = Saved
		}
		b.slots[k] = s
	}
	return b
}

func (b *Board) Topic() Topic { return b.topic }

// Slot returns a copy of the slot for kind.
func (b *Board) Slot(kind material.Kind) Slot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *b.slot(kind)
}

// Busy reports whether a generation is in flight.
func (b *Board) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.busy
}

// Render decides what to show for kind. Offline, a saved copy is shown
// read-only and anything else is unavailable; nothing here touches the
// network.
func (b *Board) Render(ctx context.Context, kind material.Kind, online bool) View {
	if online {
		return ShowControls
	}
	if _, ok := b.saved(ctx, kind); ok {
		return ShowSaved
	}
	return Unavailable
}

// Saved returns the latest saved material for kind.
func (b *Board) Saved(ctx context.Context, kind material.Kind) (material.SavedMaterial, bool) {
	return b.saved(ctx, kind)
}

func (b *Board) saved(ctx context.Context, kind material.Kind) (material.SavedMaterial, bool) {
	return material.Latest(ctx, b.store, material.Slot{SubjectID: b.topic.SubjectID, Topic: b.topic.Name, Kind: kind})
}

type ticket struct {
	kind  material.Kind
	epoch uint64
}

// Generate produces new content for kind. It fails fast with ErrOffline,
// ErrBusy or ErrIllegalTransition, and returns ErrStale if the board was
// left before the provider answered.
func (b *Board) Generate(ctx context.Context, kind material.Kind, online bool) (material.Content, error) {
	run, err := b.Start(ctx, kind, online)
	if err != nil {
		return material.Content{}, err
	}
	return run()
}

// Start claims the slot for kind and moves it to Generating. The
// returned function calls the generator and settles the slot; it may be
// run on another goroutine.
func (b *Board) Start(ctx context.Context, kind material.Kind, online bool) (func() (material.Content, error), error) {
	t, gctx, err := b.begin(ctx, kind, online)
	if err != nil {
		return nil, err
	}
	return func() (material.Content, error) {
		content, err := material.Generate(gctx, b.gen, kind, b.topic.SubjectName, b.topic.Name, b.topic.Grade)
		if err == nil && content.Empty(kind) {
			err = material.ErrEmptyContent
		}
		if ferr := b.finish(t, content, err); ferr != nil {
			return material.Content{}, ferr
		}
		return content, err
	}, nil
}

func (b *Board) begin(ctx context.Context, kind material.Kind, online bool) (ticket, context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !kind.Generated() {
		return ticket{}, nil, ErrIllegalTransition
	}
	if !online {
		return ticket{}, nil, ErrOffline
	}
	if b.busy {
		return ticket{}, nil, ErrBusy
	}

	s := b.slot(kind)
	if s.State == GeneratedUnsaved || s.State == Saved {
		if err := s.apply(EventDiscard); err != nil {
			return ticket{}, nil, err
		}
	}
	if err := s.apply(EventRequest); err != nil {
		return ticket{}, nil, err
	}
	s.Err = nil
	s.Content = material.Content{}

	gctx, cancel := context.WithCancel(ctx)
	b.busy = true
	b.cancel = cancel
	b.epoch++
	b.log.Debug("generation started", "subject", b.topic.SubjectID, "topic", b.topic.Name, "kind", string(kind))
	return ticket{kind: kind, epoch: b.epoch}, gctx, nil
}

// finish applies a result. It returns ErrStale when t is no longer current.
func (b *Board) finish(t ticket, content material.Content, genErr error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t.epoch != b.epoch {
		b.log.Debug("dropping stale generation", "topic", b.topic.Name, "kind", string(t.kind))
		return ErrStale
	}
	b.busy = false
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}

	s := b.slot(t.kind)
	if genErr != nil {
		s.Err = genErr
		return s.apply(EventFail)
	}
	s.Content = content
	return s.apply(EventSucceed)
}

// Save stores the generated content for kind.
func (b *Board) Save(ctx context.Context, kind material.Kind) (material.SavedMaterial, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.slot(kind)
	if _, err := s.State.Next(EventSave); err != nil {
		return material.SavedMaterial{}, err
	}
	m := material.SavedMaterial{
		ID:          material.NewID(),
		Kind:        kind,
		SubjectID:   b.topic.SubjectID,
		SubjectName: b.topic.SubjectName,
		Topic:       b.topic.Name,
		Grade:       b.topic.Grade,
		Title:       material.DefaultTitle(kind, b.topic.Name),
		Content:     s.Content,
	}
	if err := b.store.Save(ctx, m); err != nil {
		return material.SavedMaterial{}, err
	}
	return m, s.apply(EventSave)
}

// Upload imports a PDF into the pdf slot.
func (b *Board) Upload(ctx context.Context, name string, r io.Reader) (material.SavedMaterial, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.slot(material.KindPDF)
	if _, err := s.State.Next(EventUpload); err != nil {
		return material.SavedMaterial{}, err
	}
	m, err := material.ImportPDF(ctx, b.store, name, r, material.Classification{
		SubjectID:   b.topic.SubjectID,
		SubjectName: b.topic.SubjectName,
		Topic:       b.topic.Name,
		Grade:       b.topic.Grade,
	})
	if err != nil {
		return material.SavedMaterial{}, err
	}
	return m, s.apply(EventUpload)
}

// Discard drops unsaved content for kind, or returns a saved slot to
// NoContent so new content can be generated. Saved materials stay stored.
func (b *Board) Discard(kind material.Kind) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.slot(kind)
	if err := s.apply(EventDiscard); err != nil {
		return err
	}
	s.Content = material.Content{}
	return nil
}

// Leave cancels any in-flight generation and invalidates its ticket.
func (b *Board) Leave() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.epoch++
	if b.busy {
		for _, s := range b.slots {
			if s.State == Generating {
				_ = s.apply(EventFail)
			}
		}
	}
	b.busy = false
}

func (b *Board) slot(kind material.Kind) *Slot {
	s, ok := b.slots[kind]
	if !ok {
		s = &Slot{Kind: kind, State: NoContent}
		b.slots[kind] = s
	}
	return s
}
