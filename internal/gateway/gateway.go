// Package gateway turns study requests into provider calls and checks
// what comes back before anything reaches a screen or the store.
package gateway

import (
	"context"
	"strings"

	"github.com/zambezi-learn/zambezi/internal/llm"
	"github.com/zambezi-learn/zambezi/internal/logger"
	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

const (
	opQuiz       = "quiz"
	opNotes      = "notes"
	opFlashcards = "flashcards"
	opTutor      = "tutor"
	opExplain    = "explain"
)

// Role names in tutor history, as the chat screen stores them.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one prior message in a tutor conversation.
type Turn struct {
	Role string
	Text string
}

// Config holds generation limits.
type Config struct {
	MaxTokens   int
	Temperature float64
	Validators  []Validator
}

// DefaultConfig returns production limits with the default validator chain.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
		Validators:  DefaultValidators(),
	}
}

// Gateway produces study material through an llm.Provider.
type Gateway struct {
	provider   llm.Provider
	config     Config
	structural *StructuralValidator
	log        *logger.Logger
}

var _ material.Generator = (*Gateway)(nil)

// New creates a Gateway. A nil provider is allowed: every call then fails
// with llm.ErrNotConfigured.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	return &Gateway{provider: provider, config: cfg, structural: NewStructuralValidator(), log: log}
}

type quizOutput struct {
	Questions []material.QuizQuestion `json:"questions"`
}

type deckOutput struct {
	Cards []material.Flashcard `json:"cards"`
}

// GenerateQuiz returns QuizSize questions. If any question fails
// validation the whole set is discarded.
func (g *Gateway) GenerateQuiz(ctx context.Context, subject, topic string, grade syllabus.Grade) ([]material.QuizQuestion, error) {
	ctx = llm.WithPurpose(ctx, "quiz")

	resp, err := g.generate(ctx, llm.Request{
		Messages:    single(quizPrompt(subject, topic, grade)),
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, generationErr(opQuiz, err)
	}

	var out quizOutput
	if err := llm.Decode(QuizSchema, resp, &out); err != nil {
		return nil, generationErr(opQuiz, err)
	}
	for i, q := range out.Questions {
		for _, v := range g.config.Validators {
			if verr := v.Validate(q); verr != nil {
				verr.Index = i
				g.log.Warn("quiz question rejected", "subject", subject, "topic", topic, "validator", verr.Validator, "reason", verr.Message)
				return nil, generationErr(opQuiz, verr)
			}
		}
	}
	return out.Questions, nil
}

// GenerateStudyNotes returns markdown notes.
func (g *Gateway) GenerateStudyNotes(ctx context.Context, subject, topic string, grade syllabus.Grade) (string, error) {
	ctx = llm.WithPurpose(ctx, "notes")

	resp, err := g.generate(ctx, llm.Request{
		Messages:    single(notesPrompt(subject, topic, grade)),
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return "", generationErr(opNotes, err)
	}
	text := resp.Text()
	if text == "" {
		return "", generationErr(opNotes, ErrEmptyResponse)
	}
	return text, nil
}

// GenerateFlashcards returns DeckSize cards.
func (g *Gateway) GenerateFlashcards(ctx context.Context, subject, topic string, grade syllabus.Grade) ([]material.Flashcard, error) {
	ctx = llm.WithPurpose(ctx, "flashcards")

	resp, err := g.generate(ctx, llm.Request{
		Messages:    single(flashcardPrompt(subject, topic, grade)),
		Schema:      FlashcardSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, generationErr(opFlashcards, err)
	}

	var out deckOutput
	if err := llm.Decode(FlashcardSchema, resp, &out); err != nil {
		return nil, generationErr(opFlashcards, err)
	}
	for i, c := range out.Cards {
		if verr := g.structural.ValidateCard(c); verr != nil {
			verr.Index = i
			return nil, generationErr(opFlashcards, verr)
		}
	}
	return out.Cards, nil
}

// GenerateTutorReply answers message in the context of every prior turn.
// An empty reply from the provider becomes a fixed fallback sentence.
func (g *Gateway) GenerateTutorReply(ctx context.Context, history []Turn, message string, grade syllabus.Grade, subject string) (string, error) {
	ctx = llm.WithPurpose(ctx, "tutor")

	msgs := make([]llm.Message, 0, len(history)+1)
	for _, t := range history {
		role := llm.RoleUser
		if t.Role == RoleModel {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: t.Text})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})

	resp, err := g.generate(ctx, llm.Request{
		System:      tutorSystem(grade, subject),
		Messages:    msgs,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return "", generationErr(opTutor, err)
	}
	if text := resp.Text(); text != "" {
		return text, nil
	}
	return tutorFallback, nil
}

// ExplainConcept explains one concept with everyday analogies.
func (g *Gateway) ExplainConcept(ctx context.Context, concept string, grade syllabus.Grade) (string, error) {
	ctx = llm.WithPurpose(ctx, "explain")

	concept = strings.TrimSpace(concept)
	resp, err := g.generate(ctx, llm.Request{
		Messages:    single(explainPrompt(concept, grade)),
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return "", generationErr(opExplain, err)
	}
	if text := resp.Text(); text != "" {
		return text, nil
	}
	return explainFallback, nil
}

// ModelID reports the configured model, or "" without a provider.
func (g *Gateway) ModelID() string {
	if g.provider == nil {
		return ""
	}
	return g.provider.ModelID()
}

func (g *Gateway) generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if g.provider == nil {
		return nil, llm.ErrNotConfigured
	}
	return g.provider.Generate(ctx, req)
}

func single(prompt string) []llm.Message {
	return []llm.Message{{Role: llm.RoleUser, Content: prompt}}
}
