// Package exam covers the exam catalog, randomized question delivery and
// the grading pass with its idempotent score upsert.
package exam

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

var (
	ErrExamNotFound     = errors.New("exam not found")
	ErrQuestionNotFound = errors.New("question not found")
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListExams(ctx context.Context, userID string) ([]ExamSummary, error) {
	return s.store.ListExams(ctx, userID)
}

// ExamQuestions returns the exam's configured number of questions in a fresh
// random order on every call. Answer keys are stripped before delivery.
func (s *Service) ExamQuestions(ctx context.Context, examID int64) (*ExamInfo, []DeliveredQuestion, error) {
	e, err := s.store.GetExam(ctx, examID)
	if err != nil {
		return nil, nil, err
	}
	questions, err := s.store.GetQuestions(ctx, examID)
	if err != nil {
		return nil, nil, err
	}

	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	if e.QuestionCount > 0 && len(questions) > e.QuestionCount {
		questions = questions[:e.QuestionCount]
	}

	delivered := make([]DeliveredQuestion, 0, len(questions))
	for _, q := range questions {
		delivered = append(delivered, DeliveredQuestion{
			ID:       q.ID,
			Question: q.Text,
			Options:  []string{q.Options[0], q.Options[1], q.Options[2], q.Options[3]},
		})
	}

	info := &ExamInfo{ID: e.ID, Title: e.Title, DurationMinutes: e.DurationMinutes}
	return info, delivered, nil
}

// Submit runs a single all-or-nothing grading pass. Any answer referencing a
// question outside the exam fails the whole submission and nothing is
// persisted. Total reflects the submitted answer count, not the exam's
// configured question count.
func (s *Service) Submit(ctx context.Context, userID string, examID int64, answers []Answer, durationSeconds int) (*Result, error) {
	if _, err := s.store.GetExam(ctx, examID); err != nil {
		return nil, err
	}
	questions, err := s.store.GetQuestions(ctx, examID)
	if err != nil {
		return nil, err
	}
	key := make(map[int64]int, len(questions))
	for _, q := range questions {
		key[q.ID] = q.CorrectOption
	}

	score := 0
	for _, a := range answers {
		correct, ok := key[a.QuestionID]
		if !ok {
			return nil, ErrQuestionNotFound
		}
		if a.SelectedOption != nil && *a.SelectedOption == correct {
			score++
		}
	}

	total := len(answers)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(score) * 100 / float64(total)))
	}
	if durationSeconds < 0 {
		durationSeconds = 0
	}

	sub := &Submission{
		UserID:          userID,
		ExamID:          examID,
		Score:           score,
		Total:           total,
		Percent:         percentage,
		DurationSeconds: durationSeconds,
		SubmittedAt:     time.Now().Unix(),
	}
	if err := s.store.UpsertSubmission(ctx, sub); err != nil {
		return nil, err
	}
	return &Result{Score: score, Percentage: percentage, Total: total}, nil
}
