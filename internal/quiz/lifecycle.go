package quiz

import "github.com/chaman2003/epsilora-api/internal/grading"

// Pure attempt-lifecycle rules shared by the memory and SQL stores. The
// stores own persistence; everything about what an attempt may do lives here.

func questionByID(qz Quiz, questionID string) (Question, bool) {
	for _, q := range qz.Questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return Question{}, false
}

// startCountdown records the per-question deadline. Re-viewing a question
// replaces any earlier deadline, so at most one countdown exists per
// question. Untimed quizzes get no deadline.
func startCountdown(qz Quiz, a *Attempt, questionID string, now int64) error {
	if a.Status != StatusInProgress {
		return ErrAttemptClosed
	}
	if _, ok := questionByID(qz, questionID); !ok {
		return ErrUnknownQuestion
	}
	if qz.TimePerQuestionSec <= 0 {
		return nil
	}
	if a.Deadlines == nil {
		a.Deadlines = map[string]int64{}
	}
	a.Deadlines[questionID] = now + int64(qz.TimePerQuestionSec)
	return nil
}

// applyAnswer records a selection, grading it immediately. A question is
// answered at most once; late answers are rejected once the countdown ran out.
func applyAnswer(qz Quiz, a *Attempt, questionID, selected string, now int64) (grading.Result, error) {
	if a.Status == StatusSubmitted {
		return grading.Result{}, ErrAlreadySubmitted
	}
	if a.Status != StatusInProgress {
		return grading.Result{}, ErrAttemptClosed
	}
	q, ok := questionByID(qz, questionID)
	if !ok {
		return grading.Result{}, ErrUnknownQuestion
	}
	if _, answered := a.Answers[questionID]; answered {
		return grading.Result{}, ErrAlreadyAnswered
	}
	if dl, timed := a.Deadlines[questionID]; timed && now > dl {
		return grading.Result{}, ErrQuestionExpired
	}

	res := grading.Evaluate(selected, q.CorrectAnswer, q.Options)
	if a.Answers == nil {
		a.Answers = map[string]Answer{}
	}
	a.Answers[questionID] = Answer{
		Selected:   selected,
		IsCorrect:  res.IsCorrect,
		Method:     res.Method,
		AnsweredAt: now,
	}
	return res, nil
}

// finalize closes the attempt and totals one point per correct answer.
func finalize(a *Attempt, now int64) {
	score := 0.0
	for _, ans := range a.Answers {
		if ans.IsCorrect {
			score++
		}
	}
	a.Score = score
	a.Status = StatusSubmitted
	a.SubmittedAt = now
}

// StripAnswers removes the answer keys from a quiz before it is served to a
// student.
func StripAnswers(qz Quiz) Quiz {
	qs := make([]Question, len(qz.Questions))
	copy(qs, qz.Questions)
	for i := range qs {
		qs[i].CorrectAnswer = ""
	}
	qz.Questions = qs
	return qz
}
