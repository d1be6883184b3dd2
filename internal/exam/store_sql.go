package exam

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Store interface {
	ListExams(ctx context.Context, userID string) ([]ExamSummary, error)
	GetExam(ctx context.Context, examID int64) (*Exam, error)
	GetQuestions(ctx context.Context, examID int64) ([]Question, error)
	UpsertSubmission(ctx context.Context, sub *Submission) error
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) ListExams(ctx context.Context, userID string) ([]ExamSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.title, e.subject, e.duration_minutes, e.question_count, s.score_percent
		 FROM exams e
		 LEFT JOIN exam_submissions s ON s.exam_id = e.id AND s.user_id = $1
		 ORDER BY e.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []ExamSummary{}
	for rows.Next() {
		var (
			id      int64
			sum     ExamSummary
			percent sql.NullInt64
		)
		if err := rows.Scan(&id, &sum.Title, &sum.Subject, &sum.Duration, &sum.Questions, &percent); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		sum.ID = fmt.Sprintf("%d", id)
		if percent.Valid {
			p := int(percent.Int64)
			sum.Status = "completed"
			sum.Score = &p
		} else {
			sum.Status = "available"
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetExam(ctx context.Context, examID int64) (*Exam, error) {
	e := &Exam{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, subject, duration_minutes, question_count FROM exams WHERE id=$1`, examID).
		Scan(&e.ID, &e.Title, &e.Subject, &e.DurationMinutes, &e.QuestionCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (s *SQLStore) GetQuestions(ctx context.Context, examID int64) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, exam_id, question_text, option_a, option_b, option_c, option_d, correct_option
		 FROM exam_questions WHERE exam_id=$1`, examID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.ExamID, &q.Text,
			&q.Options[0], &q.Options[1], &q.Options[2], &q.Options[3], &q.CorrectOption); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// UpsertSubmission inserts or atomically replaces the single submission row
// for (user, exam). Concurrent submissions race on the primary key and the
// last writer wins.
func (s *SQLStore) UpsertSubmission(ctx context.Context, sub *Submission) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exam_submissions (user_id, exam_id, score_value, total_questions, score_percent, duration_seconds, submitted_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (user_id, exam_id) DO UPDATE SET
		   score_value=excluded.score_value,
		   total_questions=excluded.total_questions,
		   score_percent=excluded.score_percent,
		   duration_seconds=excluded.duration_seconds,
		   submitted_at=excluded.submitted_at`,
		sub.UserID, sub.ExamID, sub.Score, sub.Total, sub.Percent, sub.DurationSeconds, sub.SubmittedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
