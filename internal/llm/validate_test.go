package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var testSchema = &Schema{
	Name:        "test-exercise",
	Description: "test schema",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question":      map[string]any{"type": "string"},
			"correctAnswer": map[string]any{"type": "string"},
			"hint":          map[string]any{"type": "string"},
		},
		"required":             []any{"question", "correctAnswer"},
		"additionalProperties": false,
	},
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"question":"2/3 + 1/6 = ?","correctAnswer":"5/6","hint":"Gleichnamig machen"}`)
	if err := validateResponse(testSchema, raw); err != nil {
		t.Fatalf("expected valid response, got %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"question":"2/3 + 1/6 = ?"}`)
	err := validateResponse(testSchema, raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponse_NotJSON(t *testing.T) {
	raw := json.RawMessage(`Hier ist deine Aufgabe: ...`)
	err := validateResponse(testSchema, raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("nil schema must not validate, got %v", err)
	}
}
