package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
	now    func() time.Time
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver, now: time.Now}
}

func (s *SQLStore) PutQuiz(ctx context.Context, q Quiz) error {
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}
	createdAt := q.CreatedAt
	if createdAt == 0 {
		createdAt = s.now().Unix()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quizzes (id,course_id,title,difficulty,time_per_question_sec,questions_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET course_id=EXCLUDED.course_id, title=EXCLUDED.title,
			difficulty=EXCLUDED.difficulty, time_per_question_sec=EXCLUDED.time_per_question_sec,
			questions_json=EXCLUDED.questions_json`,
		q.ID, q.CourseID, q.Title, q.Difficulty, q.TimePerQuestionSec, string(qj), createdAt)
	return err
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	qz, err := s.GetQuizFull(ctx, id)
	if err != nil {
		return Quiz{}, err
	}
	return StripAnswers(qz), nil
}

func (s *SQLStore) GetQuizFull(ctx context.Context, id string) (Quiz, error) {
	return getQuizFull(ctx, s.db, id)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func getQuizFull(ctx context.Context, q querier, id string) (Quiz, error) {
	row := q.QueryRowContext(ctx, `SELECT id,course_id,title,difficulty,time_per_question_sec,questions_json,created_at
		FROM quizzes WHERE id=$1`, id)
	var qz Quiz
	var qjson string
	if err := row.Scan(&qz.ID, &qz.CourseID, &qz.Title, &qz.Difficulty, &qz.TimePerQuestionSec, &qjson, &qz.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrQuizNotFound
		}
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &qz.Questions); err != nil {
		return Quiz{}, err
	}
	return qz, nil
}

func (s *SQLStore) ListQuizzes(ctx context.Context, courseID string, limit, offset int) ([]QuizSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,course_id,title,difficulty,questions_json,created_at
		FROM quizzes
		WHERE ($1 = '' OR course_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, courseID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []QuizSummary{}
	for rows.Next() {
		var sum QuizSummary
		var qjson string
		if err := rows.Scan(&sum.ID, &sum.CourseID, &sum.Title, &sum.Difficulty, &qjson, &sum.CreatedAt); err != nil {
			return nil, err
		}
		var qs []Question
		if err := json.Unmarshal([]byte(qjson), &qs); err == nil {
			sum.QuestionCount = len(qs)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLStore) NewAttempt(ctx context.Context, quizID, userID string) (Attempt, error) {
	var exist int
	if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM quizzes WHERE id=$1`, quizID).Scan(&exist); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Attempt{}, ErrQuizNotFound
		}
		return Attempt{}, err
	}
	a := Attempt{
		ID:        uuid.NewString(),
		QuizID:    quizID,
		UserID:    userID,
		Status:    StatusInProgress,
		Answers:   map[string]Answer{},
		StartedAt: s.now().Unix(),
	}
	ajson, _ := json.Marshal(a.Answers)
	djson, _ := json.Marshal(a.Deadlines)
	_, err := s.db.ExecContext(ctx, `INSERT INTO attempts (id,quiz_id,user_id,status,score,answers_json,deadlines_json,started_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.QuizID, a.UserID, a.Status, a.Score, string(ajson), string(djson), a.StartedAt)
	if err != nil {
		return Attempt{}, err
	}
	return a, nil
}

func (s *SQLStore) ViewQuestion(ctx context.Context, attemptID, questionID string) (Attempt, error) {
	return s.mutateAttempt(ctx, attemptID, func(a *Attempt) error {
		qz, err := getQuizFull(ctx, s.db, a.QuizID)
		if err != nil {
			return err
		}
		return startCountdown(qz, a, questionID, s.now().Unix())
	})
}

func (s *SQLStore) SaveAnswer(ctx context.Context, attemptID, questionID, selected string) (Attempt, error) {
	return s.mutateAttempt(ctx, attemptID, func(a *Attempt) error {
		qz, err := getQuizFull(ctx, s.db, a.QuizID)
		if err != nil {
			return err
		}
		_, err = applyAnswer(qz, a, questionID, selected, s.now().Unix())
		return err
	})
}

func (s *SQLStore) Submit(ctx context.Context, attemptID string) (Attempt, error) {
	return s.mutateAttempt(ctx, attemptID, func(a *Attempt) error {
		if a.Status == StatusSubmitted {
			return nil
		}
		if a.Status != StatusInProgress {
			return ErrAttemptClosed
		}
		finalize(a, s.now().Unix())
		return nil
	})
}

func (s *SQLStore) Abandon(ctx context.Context, attemptID string) (Attempt, error) {
	return s.mutateAttempt(ctx, attemptID, func(a *Attempt) error {
		if a.Status == StatusSubmitted {
			return ErrAlreadySubmitted
		}
		a.Status = StatusAbandoned
		a.Answers = map[string]Answer{}
		a.Deadlines = nil
		return nil
	})
}

func (s *SQLStore) GetAttempt(ctx context.Context, attemptID string) (Attempt, error) {
	return s.getAttempt(ctx, s.db, attemptID, false)
}

func (s *SQLStore) ListAttempts(ctx context.Context, opts AttemptListOpts) ([]Attempt, error) {
	query := `SELECT id,quiz_id,user_id,status,score,answers_json,deadlines_json,started_at,COALESCE(submitted_at,0)
		FROM attempts
		WHERE ($1 = '' OR quiz_id = $1)
		  AND ($2 = '' OR user_id = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY started_at DESC`
	args := []any{opts.QuizID, opts.UserID, opts.Status}
	// Limit <= 0 means unlimited, matching the in-memory store; callers
	// that page (the HTTP layer) always pass an explicit limit.
	if opts.Limit > 0 {
		query += ` LIMIT $4 OFFSET $5`
		args = append(args, opts.Limit, opts.Offset)
	} else if opts.Offset > 0 {
		query += ` OFFSET $4`
		args = append(args, opts.Offset)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Attempt{}
	for rows.Next() {
		var a Attempt
		var ajson, djson string
		if err := rows.Scan(&a.ID, &a.QuizID, &a.UserID, &a.Status, &a.Score, &ajson, &djson, &a.StartedAt, &a.SubmittedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ajson), &a.Answers); err != nil {
			a.Answers = map[string]Answer{}
		}
		if djson != "" {
			_ = json.Unmarshal([]byte(djson), &a.Deadlines)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// mutateAttempt runs a read-modify-write of one attempt inside a
// transaction, locking the row on postgres, so two concurrent mutations
// cannot both read the same answer state and silently overwrite each other.
func (s *SQLStore) mutateAttempt(ctx context.Context, attemptID string, mutate func(a *Attempt) error) (Attempt, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Attempt{}, err
	}
	defer tx.Rollback()

	a, err := s.getAttempt(ctx, tx, attemptID, true)
	if err != nil {
		return Attempt{}, err
	}
	if err := mutate(&a); err != nil {
		return Attempt{}, err
	}

	ajson, _ := json.Marshal(a.Answers)
	djson, _ := json.Marshal(a.Deadlines)
	var submitted any
	if a.SubmittedAt != 0 {
		submitted = a.SubmittedAt
	}
	_, err = tx.ExecContext(ctx, `UPDATE attempts SET status=$1, score=$2, answers_json=$3, deadlines_json=$4, submitted_at=$5 WHERE id=$6`,
		a.Status, a.Score, string(ajson), string(djson), submitted, a.ID)
	if err != nil {
		return Attempt{}, err
	}
	if err := tx.Commit(); err != nil {
		return Attempt{}, err
	}
	return a, nil
}

func (s *SQLStore) getAttempt(ctx context.Context, q querier, attemptID string, forUpdate bool) (Attempt, error) {
	query := `SELECT id,quiz_id,user_id,status,score,answers_json,deadlines_json,started_at,COALESCE(submitted_at,0)
		FROM attempts WHERE id=$1`
	if forUpdate && s.driver == "postgres" {
		// sqlite has no row locks; its single-writer transactions
		// serialize the update instead.
		query += ` FOR UPDATE`
	}
	row := q.QueryRowContext(ctx, query, attemptID)
	var a Attempt
	var ajson, djson string
	if err := row.Scan(&a.ID, &a.QuizID, &a.UserID, &a.Status, &a.Score, &ajson, &djson, &a.StartedAt, &a.SubmittedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Attempt{}, ErrAttemptNotFound
		}
		return Attempt{}, err
	}
	if err := json.Unmarshal([]byte(ajson), &a.Answers); err != nil {
		a.Answers = map[string]Answer{}
	}
	if djson != "" {
		_ = json.Unmarshal([]byte(djson), &a.Deadlines)
	}
	return a, nil
}
