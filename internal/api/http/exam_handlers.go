package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/examportal/backend/internal/auth"
	"github.com/examportal/backend/internal/exam"
)

// GET /api/exams
func ListExamsHandler(exams *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Missing authorization token")
			return
		}
		list, err := exams.ListExams(r.Context(), userID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to list exams")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"exams": list})
	}
}

// GET /api/exams/{examID}/questions
func ExamQuestionsHandler(exams *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID, ok := examIDParam(w, r)
		if !ok {
			return
		}
		info, questions, err := exams.ExamQuestions(r.Context(), examID)
		if err != nil {
			if errors.Is(err, exam.ErrExamNotFound) {
				writeMessage(w, http.StatusNotFound, "Exam not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Failed to load questions")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"exam": info, "questions": questions})
	}
}

// POST /api/exams/{examID}/submissions  { "answers": [...], "durationSeconds": n }
func SubmitHandler(exams *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Missing authorization token")
			return
		}
		examID, ok := examIDParam(w, r)
		if !ok {
			return
		}

		var req struct {
			Answers         []exam.Answer `json:"answers"`
			DurationSeconds int           `json:"durationSeconds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid payload")
			return
		}

		res, err := exams.Submit(r.Context(), userID, examID, req.Answers, req.DurationSeconds)
		if err != nil {
			switch {
			case errors.Is(err, exam.ErrExamNotFound):
				writeMessage(w, http.StatusNotFound, "Exam not found")
			case errors.Is(err, exam.ErrQuestionNotFound):
				writeMessage(w, http.StatusNotFound, "Question not found")
			default:
				writeMessage(w, http.StatusInternalServerError, "Failed to grade submission")
			}
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

func examIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "examID"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid exam id")
		return 0, false
	}
	return id, true
}
