package quiz

import "github.com/abhisek/studyos/internal/llm"

// QuestionCount and ChoiceCount fix the quiz shape.
const (
	QuestionCount = 3
	ChoiceCount   = 4
)

// QuizSchema defines the JSON schema for quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "study-quiz",
	Description: "Three multiple-choice questions grounded in the study material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": QuestionCount,
				"maxItems": QuestionCount,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question stem, in Korean",
						},
						"choices": map[string]any{
							"type":        "array",
							"minItems":    ChoiceCount,
							"maxItems":    ChoiceCount,
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options without (A)-(D) prefixes",
						},
						"answer_index": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     ChoiceCount - 1,
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right, citing the material when possible",
						},
					},
					"required":             []any{"question", "choices", "answer_index", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
