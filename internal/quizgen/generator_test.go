package quizgen

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chaman2003/epsilora-api/internal/llm"
)

func goodQuizJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Python Basics: Data Types",
		"questions": [
			{
				"question": "Which type is immutable?",
				"options": ["List", "Tuple", "Dictionary", "Set"],
				"correct_answer": "B"
			},
			{
				"question": "Which keyword defines a function?",
				"options": ["func", "def", "lambda only", "function"],
				"correct_answer": "B"
			}
		]
	}`)
}

func TestGenerate_BuildsQuiz(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: goodQuizJSON()})
	g := New(mock, DefaultConfig())

	qz, err := g.Generate(context.Background(), GenerateInput{
		CourseID:     "course-1",
		CourseTitle:  "Python Basics",
		Topic:        "Data Types",
		NumQuestions: 2,
	})
	require.NoError(t, err)

	require.Len(t, qz.Questions, 2)
	require.NotEmpty(t, qz.ID)
	require.Equal(t, "course-1", qz.CourseID)
	require.Equal(t, "Python Basics: Data Types", qz.Title)

	q := qz.Questions[0]
	require.Len(t, q.Options, 4)
	require.Equal(t, "A", q.Options[0].Label)
	require.Equal(t, "Tuple", q.Options[1].Text)
	require.Equal(t, "B", q.CorrectAnswer)

	// The request carried the structured-output schema.
	require.Equal(t, 1, mock.CallCount())
	require.Same(t, QuizSchema, mock.Calls[0].Schema)
}

func TestGenerate_RejectsWrongOptionCount(t *testing.T) {
	bad := json.RawMessage(`{
		"title": "Broken",
		"questions": [
			{"question": "Q?", "options": ["a", "b"], "correct_answer": "A"}
		]
	}`)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: bad},
		llm.MockResponse{Content: bad},
	)
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), GenerateInput{CourseTitle: "X"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "options")
	// Validation failures trigger regeneration up to MaxGenAttempts.
	require.Equal(t, DefaultConfig().MaxGenAttempts, mock.CallCount())
}

func TestGenerate_RetriesThenSucceeds(t *testing.T) {
	unanswerable := json.RawMessage(`{
		"title": "Broken",
		"questions": [
			{"question": "Q?", "options": ["a", "b", "c", "d"], "correct_answer": "E"}
		]
	}`)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: unanswerable},
		llm.MockResponse{Content: goodQuizJSON()},
	)
	g := New(mock, DefaultConfig())

	qz, err := g.Generate(context.Background(), GenerateInput{CourseTitle: "X"})
	require.NoError(t, err)
	require.Len(t, qz.Questions, 2)
	require.Equal(t, 2, mock.CallCount())
}

func TestGenerate_ProviderErrorNotRegenerated(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), GenerateInput{CourseTitle: "X"})
	require.Error(t, err)
	require.Equal(t, 1, mock.CallCount())
}

func TestValidateAnswerable_AmbiguousAnswer(t *testing.T) {
	dup := json.RawMessage(`{
		"title": "Dup",
		"questions": [
			{"question": "Q?", "options": ["Paris", "Paris", "Rome", "Oslo"], "correct_answer": "Paris"}
		]
	}`)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: dup},
		llm.MockResponse{Content: dup},
	)
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), GenerateInput{CourseTitle: "X"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "matches 2 options")
}
