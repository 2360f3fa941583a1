package tutor

import "github.com/lernkraft/lernkraft/internal/llm"

// ExerciseSchema constrains exercise generation output.
// All fields are strings; hint may be empty when the oracle has none.
var ExerciseSchema = &llm.Schema{
	Name:        "practice-exercise",
	Description: "A single short practice exercise with its solution and an optional hint",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "Die Aufgabenstellung",
			},
			"correctAnswer": map[string]any{
				"type":        "string",
				"description": "Die korrekte Lösung kurz erklärt",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "Ein kleiner Tipp zur Lösung",
			},
		},
		"required":             []any{"question", "correctAnswer"},
		"additionalProperties": false,
	},
}
