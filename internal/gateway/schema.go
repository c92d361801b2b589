package gateway

import "github.com/zambezi-learn/zambezi/internal/llm"

const (
	// QuizSize is the number of questions in a generated quiz.
	QuizSize = 5

	// DeckSize is the number of cards in a generated flashcard deck.
	DeckSize = 8
)

// QuizSchema constrains quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "quiz-set",
	Description: "A set of multiple-choice questions with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": QuizSize,
				"maxItems": QuizSize,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question shown to the student",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Four answer options",
						},
						"correctAnswerIndex": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right",
						},
					},
					"required":             []any{"question", "options", "correctAnswerIndex", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// FlashcardSchema constrains flashcard generation responses.
var FlashcardSchema = &llm.Schema{
	Name:        "flashcard-deck",
	Description: "A deck of revision flashcards",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type":     "array",
				"minItems": DeckSize,
				"maxItems": DeckSize,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{
							"type":        "string",
							"description": "A term, date or question",
						},
						"back": map[string]any{
							"type":        "string",
							"description": "The definition or answer",
						},
					},
					"required":             []any{"front", "back"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"cards"},
		"additionalProperties": false,
	},
}
