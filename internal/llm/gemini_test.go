package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct{ in, want string }{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, geminiModels); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildGeminiSchema_QuizShape(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 5,
				"maxItems": 5,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":      map[string]any{"type": "string"},
						"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"correctAnswer": map[string]any{"type": "integer"},
					},
					"required": []string{"question", "options", "correctAnswer"},
				},
			},
			"level": map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
		},
		"required": []any{"questions"},
	}

	s := buildGeminiSchema(def)

	if s.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT, got %s", s.Type)
	}
	q := s.Properties["questions"]
	if q == nil || q.Type != genai.TypeArray {
		t.Fatalf("expected questions array, got %+v", q)
	}
	if q.MinItems == nil || *q.MinItems != 5 || q.MaxItems == nil || *q.MaxItems != 5 {
		t.Fatalf("expected item bounds of 5, got %v/%v", q.MinItems, q.MaxItems)
	}
	if q.Items.Properties["correctAnswer"].Type != genai.TypeInteger {
		t.Fatalf("expected INTEGER correctAnswer")
	}
	if len(q.Items.Required) != 3 {
		t.Fatalf("expected []string required to be kept, got %v", q.Items.Required)
	}
	if len(s.Properties["level"].Enum) != 2 {
		t.Fatalf("expected 2 enum values")
	}
	if len(s.Required) != 1 {
		t.Fatalf("expected 1 required field, got %v", s.Required)
	}
}

func TestGeminiContentsRoles(t *testing.T) {
	got := geminiContents([]Message{
		{Role: RoleAssistant, Content: "Hello!"},
		{Role: RoleUser, Content: "Teach me sets"},
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(got))
	}
	if got[0].Role != string(genai.RoleModel) || got[1].Role != string(genai.RoleUser) {
		t.Fatalf("unexpected roles %q, %q", got[0].Role, got[1].Role)
	}
}
