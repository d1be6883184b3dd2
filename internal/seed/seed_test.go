package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examportal/backend/internal/db"
)

const fixture = `
exams:
  - id: 1
    title: Algebra Basics
    subject: Math
    duration_minutes: 30
    questions:
      - id: 1
        text: What is 2+2?
        options: ["3", "4", "5", "6"]
        correct_option: 1
      - id: 2
        text: What is 3*3?
        options: ["6", "7", "8", "9"]
        correct_option: 3
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exams.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	f, err := Load(writeFixture(t, fixture))
	require.NoError(t, err)
	require.Len(t, f.Exams, 1)
	assert.Equal(t, "Algebra Basics", f.Exams[0].Title)
	require.Len(t, f.Exams[0].Questions, 2)
	assert.Equal(t, 3, f.Exams[0].Questions[1].CorrectOption)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing file":    filepath.Join(t.TempDir(), "nope.yaml"),
		"bad yaml":        writeFixture(t, "exams: ["),
		"too few options": writeFixture(t, "exams:\n  - id: 1\n    title: T\n    questions:\n      - id: 1\n        text: Q\n        options: [\"a\", \"b\"]\n        correct_option: 0\n"),
		"bad correct":     writeFixture(t, "exams:\n  - id: 1\n    title: T\n    questions:\n      - id: 1\n        text: Q\n        options: [\"a\", \"b\", \"c\", \"d\"]\n        correct_option: 4\n"),
	}
	for name, path := range cases {
		_, err := Load(path)
		assert.Error(t, err, name)
	}
}

func TestApply_Idempotent(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { dbh.Close() })

	f, err := Load(writeFixture(t, fixture))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, Apply(ctx, dbh, f))
	require.NoError(t, Apply(ctx, dbh, f))

	var exams, questions, count int
	require.NoError(t, dbh.QueryRow(`SELECT COUNT(*) FROM exams`).Scan(&exams))
	require.NoError(t, dbh.QueryRow(`SELECT COUNT(*) FROM exam_questions`).Scan(&questions))
	require.NoError(t, dbh.QueryRow(`SELECT question_count FROM exams WHERE id=1`).Scan(&count))
	assert.Equal(t, 1, exams)
	assert.Equal(t, 2, questions)
	assert.Equal(t, 2, count)
}
