// Package seed loads reference exams and questions from a YAML fixture and
// upserts them, so restarts and fixture edits converge without duplicating
// rows.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type File struct {
	Exams []Exam `yaml:"exams"`
}

type Exam struct {
	ID              int64      `yaml:"id"`
	Title           string     `yaml:"title"`
	Subject         string     `yaml:"subject"`
	DurationMinutes int        `yaml:"duration_minutes"`
	Questions       []Question `yaml:"questions"`
}

type Question struct {
	ID            int64    `yaml:"id"`
	Text          string   `yaml:"text"`
	Options       []string `yaml:"options"`
	CorrectOption int      `yaml:"correct_option"`
}

func Load(path string) (*File, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	f := &File{}
	if err := yaml.Unmarshal(buf, f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) validate() error {
	for _, e := range f.Exams {
		if e.ID == 0 || e.Title == "" {
			return fmt.Errorf("exam %q: id and title are required", e.Title)
		}
		for _, q := range e.Questions {
			if q.ID == 0 || q.Text == "" {
				return fmt.Errorf("exam %d: question id and text are required", e.ID)
			}
			if len(q.Options) != 4 {
				return fmt.Errorf("exam %d question %d: exactly four options required, got %d", e.ID, q.ID, len(q.Options))
			}
			if q.CorrectOption < 0 || q.CorrectOption > 3 {
				return fmt.Errorf("exam %d question %d: correct_option out of range: %d", e.ID, q.ID, q.CorrectOption)
			}
		}
	}
	return nil
}

// Apply upserts the fixture content in one transaction. question_count is
// derived from the fixture, never stored independently of it.
func Apply(ctx context.Context, db *sql.DB, f *File) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	for _, e := range f.Exams {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO exams (id, title, subject, duration_minutes, question_count)
			 VALUES ($1,$2,$3,$4,$5)
			 ON CONFLICT (id) DO UPDATE SET
			   title=excluded.title,
			   subject=excluded.subject,
			   duration_minutes=excluded.duration_minutes,
			   question_count=excluded.question_count`,
			e.ID, e.Title, e.Subject, e.DurationMinutes, len(e.Questions))
		if err != nil {
			return fmt.Errorf("seed exam %d: %w", e.ID, err)
		}

		for _, q := range e.Questions {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO exam_questions (id, exam_id, question_text, option_a, option_b, option_c, option_d, correct_option)
				 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
				 ON CONFLICT (id) DO UPDATE SET
				   exam_id=excluded.exam_id,
				   question_text=excluded.question_text,
				   option_a=excluded.option_a,
				   option_b=excluded.option_b,
				   option_c=excluded.option_c,
				   option_d=excluded.option_d,
				   correct_option=excluded.correct_option`,
				q.ID, e.ID, q.Text, q.Options[0], q.Options[1], q.Options[2], q.Options[3], q.CorrectOption)
			if err != nil {
				return fmt.Errorf("seed question %d: %w", q.ID, err)
			}
		}
	}
	return nil
}
