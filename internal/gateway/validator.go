package gateway

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/zambezi-learn/zambezi/internal/material"
)

// Validator checks one generated quiz question.
// Implementations must be stateless and safe for concurrent use.
type Validator interface {
	// Name is a short identifier used in errors and logs.
	Name() string

	// Validate returns nil if q passes.
	Validate(q material.QuizQuestion) *ValidationError
}

// ValidationError describes why a generated item was rejected.
type ValidationError struct {
	Validator string
	Index     int // position of the item in the generated set
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: item %d: %s", e.Validator, e.Index+1, e.Message)
}

// DefaultValidators is the chain every generated question passes through.
func DefaultValidators() []Validator {
	return []Validator{
		NewStructuralValidator(),
		&AnswerIndexValidator{},
	}
}

// questionShape carries the structural rules for a quiz question.
type questionShape struct {
	Question    string   `validate:"required,max=600"`
	Options     []string `validate:"min=2,max=6,dive,required,max=300"`
	Explanation string   `validate:"required,max=1200"`
}

type cardShape struct {
	Front string `validate:"required,max=300"`
	Back  string `validate:"required,max=600"`
}

// StructuralValidator checks that required text is present and within
// length limits.
type StructuralValidator struct {
	v *validator.Validate
}

func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (s *StructuralValidator) Name() string { return "structural" }

func (s *StructuralValidator) Validate(q material.QuizQuestion) *ValidationError {
	err := s.v.Struct(questionShape{Question: q.Question, Options: q.Options, Explanation: q.Explanation})
	if err == nil {
		return nil
	}
	return &ValidationError{Validator: s.Name(), Message: describe(err)}
}

// ValidateCard applies the same structural rules to a flashcard.
func (s *StructuralValidator) ValidateCard(c material.Flashcard) *ValidationError {
	err := s.v.Struct(cardShape{Front: c.Front, Back: c.Back})
	if err == nil {
		return nil
	}
	return &ValidationError{Validator: s.Name(), Message: describe(err)}
}

// AnswerIndexValidator checks that the correct answer points at an option.
type AnswerIndexValidator struct{}

func (v *AnswerIndexValidator) Name() string { return "answer-index" }

func (v *AnswerIndexValidator) Validate(q material.QuizQuestion) *ValidationError {
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("correctAnswerIndex %d out of range for %d options", q.CorrectAnswerIndex, len(q.Options)),
		}
	}
	return nil
}

// describe flattens validator field errors into one line.
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s fails %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s fails %s", fe.Namespace(), fe.Tag())
}
