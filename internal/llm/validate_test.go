package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func cardSchema() *Schema {
	return &Schema{
		Name:        "test-flashcard",
		Description: "A flashcard",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"front":      map[string]any{"type": "string"},
				"back":       map[string]any{"type": "string"},
				"difficulty": map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
				"subject":    map[string]any{"type": "string", "enum": []any{"생리학", "해부학", "약리학"}},
			},
			"required": []any{"front", "back"},
		},
	}
}

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"all fields", `{"front":"CO?","back":"SV x HR","difficulty":2,"subject":"생리학"}`, false},
		{"required only", `{"front":"GFR?","back":"filtration"}`, false},
		{"missing required", `{"front":"CO?"}`, true},
		{"wrong type", `{"front":"CO?","back":"SV x HR","difficulty":"easy"}`, true},
		{"out of range", `{"front":"CO?","back":"SV x HR","difficulty":9}`, true},
		{"bad enum", `{"front":"CO?","back":"SV x HR","subject":"미생물학"}`, true},
		{"malformed", `{front}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent(cardSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateContent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invalid *ErrInvalidResponse
				if !errors.As(err, &invalid) {
					t.Fatalf("expected *ErrInvalidResponse, got %T", err)
				}
			}
		})
	}
}

func TestValidateContent_NilSchemaAcceptsText(t *testing.T) {
	if err := ValidateContent(nil, json.RawMessage("심박출량은 1회 박출량과 심박수의 곱입니다.")); err != nil {
		t.Fatalf("expected nil schema to accept free text, got %v", err)
	}
}

func TestValidateContent_NestedArray(t *testing.T) {
	schema := &Schema{
		Name: "test-deck",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"cards": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type":       "object",
						"properties": map[string]any{"front": map[string]any{"type": "string"}},
						"required":   []any{"front"},
					},
				},
			},
			"required": []any{"cards"},
		},
	}

	if err := ValidateContent(schema, json.RawMessage(`{"cards":[{"front":"Preload"}]}`)); err != nil {
		t.Fatalf("expected valid deck, got %v", err)
	}
	if err := ValidateContent(schema, json.RawMessage(`{"cards":[]}`)); err == nil {
		t.Fatal("expected error for empty deck")
	}
	if err := ValidateContent(schema, json.RawMessage(`{"cards":[{"back":"x"}]}`)); err == nil {
		t.Fatal("expected error for card without front")
	}
}
