package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-topic",
		Description: "A topic with an ordinal",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"level": map[string]any{"type": "string", "enum": []any{"junior", "senior"}},
			},
			"required":             []any{"name", "age"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Sets","age":3,"level":"junior"}`, false},
		{"optional omitted", `{"name":"Sets","age":3}`, false},
		{"missing required", `{"name":"Sets"}`, true},
		{"wrong type", `{"name":"Sets","age":"three"}`, true},
		{"bad enum", `{"name":"Sets","age":3,"level":"college"}`, true},
		{"extra field", `{"name":"Sets","age":3,"x":1}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage("plain notes")); err != nil {
		t.Fatalf("nil schema must accept anything: %v", err)
	}
}

func TestDecode(t *testing.T) {
	var got struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	err := Decode(testSchema(), &Response{Content: json.RawMessage(`{"name":"Matrices","age":12}`)}, &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Matrices" || got.Age != 12 {
		t.Fatalf("unexpected decode %+v", got)
	}

	if err := Decode(testSchema(), nil, &got); err == nil {
		t.Fatal("expected error for nil response")
	}
}
