package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examportal/backend/internal/account"
	"github.com/examportal/backend/internal/auth"
	"github.com/examportal/backend/internal/exam"
)

// NewRouter mounts the public auth/health endpoints and the token-gated exam
// endpoints. Process-level middleware (logging, CORS, timeouts) is the
// caller's concern.
func NewRouter(accounts *account.Service, exams *exam.Service, tokens *auth.TokenService) chi.Router {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", HealthHandler())
		r.Post("/auth/register", RegisterHandler(accounts))
		r.Post("/auth/login", LoginHandler(accounts))

		r.Group(func(pr chi.Router) {
			pr.Use(auth.RequireAuth(tokens))
			pr.Get("/exams", ListExamsHandler(exams))
			pr.Get("/exams/{examID}/questions", ExamQuestionsHandler(exams))
			pr.Post("/exams/{examID}/submissions", SubmitHandler(exams))
		})
	})

	return r
}

// GET /api/health
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
