package exam

// Exam is static reference data; this service never mutates it.
type Exam struct {
	ID              int64
	Title           string
	Subject         string
	DurationMinutes int
	QuestionCount   int
}

// Question carries the answer key and must never be serialized to students
// as-is; delivery goes through DeliveredQuestion.
type Question struct {
	ID            int64
	ExamID        int64
	Text          string
	Options       [4]string // positional: A, B, C, D
	CorrectOption int
}

// ExamSummary is a catalog row with the viewer's completion status folded in.
type ExamSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subject   string `json:"subject"`
	Duration  int    `json:"duration"`
	Questions int    `json:"questions"`
	Status    string `json:"status"` // "available" | "completed"
	Score     *int   `json:"score,omitempty"`
}

type ExamInfo struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
}

type DeliveredQuestion struct {
	ID       int64    `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// Answer is one submitted response. A nil SelectedOption means unanswered.
type Answer struct {
	QuestionID     int64 `json:"questionId"`
	SelectedOption *int  `json:"selectedOption"`
}

type Result struct {
	Score      int `json:"score"`
	Percentage int `json:"percentage"`
	Total      int `json:"total"`
}

type Submission struct {
	UserID          string
	ExamID          int64
	Score           int
	Total           int
	Percent         int
	DurationSeconds int
	SubmittedAt     int64
}
