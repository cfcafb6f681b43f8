package quizgen

import "github.com/chaman2003/epsilora-api/internal/llm"

// QuizSchema is the JSON schema for generated quizzes. The model must
// return a title and a questions array; every question carries exactly
// four options and the correct answer as an option letter.
var QuizSchema = &llm.Schema{
	Name:        "generated-quiz",
	Description: "A multiple-choice quiz for an online course topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short quiz title naming the course and topic",
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, plain text, self-contained",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    4,
							"maxItems":    4,
							"description": "Exactly 4 answer options without letter prefixes",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"enum":        []any{"A", "B", "C", "D"},
							"description": "The letter of the correct option",
						},
					},
					"required":             []any{"question", "options", "correct_answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "questions"},
		"additionalProperties": false,
	},
}
