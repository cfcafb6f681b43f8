package quiz

import "github.com/chaman2003/epsilora-api/internal/grading"

type Question struct {
	ID   string   `json:"id"`
	Text string   `json:"text"`
	// Options are normalized at the decode boundary; labels are positional.
	Options       []grading.Option `json:"options"`
	CorrectAnswer string           `json:"correct_answer,omitempty"`
}

type Quiz struct {
	ID                 string     `json:"id"`
	CourseID           string     `json:"course_id,omitempty"`
	Title              string     `json:"title"`
	Difficulty         string     `json:"difficulty,omitempty"` // easy|medium|hard
	TimePerQuestionSec int        `json:"time_per_question_sec"`
	Questions          []Question `json:"questions"`
	CreatedAt          int64      `json:"created_at,omitempty"`
}

// Answer is one recorded selection. A question is answered at most once;
// the verdict and the strategy that produced it are fixed at answer time.
type Answer struct {
	Selected   string `json:"selected"`
	IsCorrect  bool   `json:"is_correct"`
	Method     string `json:"method"`
	AnsweredAt int64  `json:"answered_at"`
}

type Attempt struct {
	ID      string            `json:"id"`
	QuizID  string            `json:"quiz_id"`
	UserID  string            `json:"user_id"`
	Status  string            `json:"status"` // in_progress|submitted|abandoned
	Score   float64           `json:"score"`
	Answers map[string]Answer `json:"answers"` // questionID -> answer
	// Deadlines holds the per-question countdown expiry (unix seconds),
	// set when a timed question is viewed.
	Deadlines   map[string]int64 `json:"deadlines,omitempty"`
	StartedAt   int64            `json:"started_at"`
	SubmittedAt int64            `json:"submitted_at,omitempty"`
}

type QuizSummary struct {
	ID            string `json:"id"`
	CourseID      string `json:"course_id,omitempty"`
	Title         string `json:"title"`
	Difficulty    string `json:"difficulty,omitempty"`
	QuestionCount int    `json:"question_count"`
	CreatedAt     int64  `json:"created_at,omitempty"`
}
