package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/chaman2003/epsilora-api/internal/grading"
	"github.com/chaman2003/epsilora-api/internal/llm"
	"github.com/chaman2003/epsilora-api/internal/quiz"
)

// GenerateInput describes one quiz-generation request.
type GenerateInput struct {
	CourseID     string
	CourseTitle  string
	Topic        string
	Difficulty   string // easy|medium|hard
	NumQuestions int
}

type Config struct {
	MaxTokens   int
	Temperature float64
	// TimePerQuestionSec is stamped onto generated quizzes; zero means
	// untimed.
	TimePerQuestionSec int
	// MaxGenAttempts bounds regeneration when the model returns a quiz
	// that fails validation. Transport-level retry lives in the provider.
	MaxGenAttempts int
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:          4096,
		Temperature:        0.7,
		TimePerQuestionSec: 30,
		MaxGenAttempts:     2,
	}
}

// Generator produces quizzes from course topics via the AI provider.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

func New(provider llm.Provider, cfg Config) *Generator {
	if cfg.MaxGenAttempts <= 0 {
		cfg.MaxGenAttempts = 1
	}
	return &Generator{provider: provider, cfg: cfg}
}

// quizOutput mirrors QuizSchema.
type quizOutput struct {
	Title     string `json:"title"`
	Questions []struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
	} `json:"questions"`
}

// Generate asks the model for a quiz and validates that every question is
// answerable by the grading rules before returning it.
func (g *Generator) Generate(ctx context.Context, in GenerateInput) (*quiz.Quiz, error) {
	if in.NumQuestions <= 0 {
		in.NumQuestions = 5
	}
	if in.Difficulty == "" {
		in.Difficulty = "medium"
	}

	ctx = llm.WithPurpose(ctx, "quiz-gen")
	req := llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in)}},
		Schema:      QuizSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	var lastErr error
	for attempt := 0; attempt < g.cfg.MaxGenAttempts; attempt++ {
		resp, err := g.provider.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("quiz generation failed: %w", err)
		}

		qz, err := g.buildQuiz(in, resp.Content)
		if err == nil {
			return qz, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (g *Generator) buildQuiz(in GenerateInput, content json.RawMessage) (*quiz.Quiz, error) {
	var raw quizOutput
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse generated quiz: %w", err)
	}
	if len(raw.Questions) == 0 {
		return nil, fmt.Errorf("generated quiz has no questions")
	}

	qz := &quiz.Quiz{
		ID:                 uuid.NewString(),
		CourseID:           in.CourseID,
		Title:              raw.Title,
		Difficulty:         in.Difficulty,
		TimePerQuestionSec: g.cfg.TimePerQuestionSec,
	}
	for i, rq := range raw.Questions {
		if len(rq.Options) != 4 {
			return nil, fmt.Errorf("question %d has %d options, want 4", i+1, len(rq.Options))
		}
		opts := make([]grading.Option, len(rq.Options))
		for j, text := range rq.Options {
			opts[j] = grading.Option{Text: text}
		}
		q := quiz.Question{
			ID:            uuid.NewString(),
			Text:          rq.Question,
			Options:       grading.NormalizeOptions(opts),
			CorrectAnswer: rq.CorrectAnswer,
		}
		if err := validateAnswerable(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		qz.Questions = append(qz.Questions, q)
	}
	return qz, nil
}

// validateAnswerable rejects questions whose declared correct answer the
// grading rules cannot resolve to exactly one option.
func validateAnswerable(q quiz.Question) error {
	correct := 0
	for i := range q.Options {
		label := string(rune('A' + i))
		if grading.Evaluate(label, q.CorrectAnswer, q.Options).IsCorrect {
			correct++
		}
	}
	switch correct {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("correct answer %q matches no option", q.CorrectAnswer)
	default:
		return fmt.Errorf("correct answer %q matches %d options", q.CorrectAnswer, correct)
	}
}
