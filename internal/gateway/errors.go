package gateway

import (
	"errors"
	"fmt"

	"github.com/zambezi-learn/zambezi/internal/llm"
)

// ErrEmptyResponse is returned when the provider answered with nothing usable.
var ErrEmptyResponse = errors.New("provider returned no content")

// GenerationError wraps any failure to produce a study artifact. It is
// always recoverable: the caller shows UserMessage and lets the user retry.
type GenerationError struct {
	Op  string // quiz, notes, flashcards, tutor, explain
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// UserMessage is a short, non-technical description for the screen.
func (e *GenerationError) UserMessage() string {
	var rateLimit *llm.ErrRateLimit
	var unavailable *llm.ErrProviderUnavailable
	switch {
	case errors.Is(e.Err, llm.ErrNotConfigured):
		return "No content provider is configured. Set GEMINI_API_KEY and restart."
	case errors.As(e.Err, &rateLimit):
		return "The service is busy right now. Please wait a moment and try again."
	case errors.As(e.Err, &unavailable):
		return "Could not reach the content service. Please check your connection."
	}
	switch e.Op {
	case opQuiz:
		return "Could not generate quiz at this moment. Please try again."
	case opNotes:
		return "Failed to generate notes. Please try again."
	case opFlashcards:
		return "Failed to generate flashcards. Please try again."
	}
	return "Something went wrong. Please try again."
}

func generationErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &GenerationError{Op: op, Err: err}
}
