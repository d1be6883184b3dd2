package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/examportal/backend/internal/account"
)

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

// POST /api/auth/register  { "name": ..., "email": ..., "password": ... }
func RegisterHandler(accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid payload")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if msg, ok := validateRegister(req.Name, req.Email, req.Password); !ok {
			writeMessage(w, http.StatusBadRequest, msg)
			return
		}

		token, user, err := accounts.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, account.ErrDuplicateEmail) {
				writeMessage(w, http.StatusBadRequest, "Email already registered")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Registration failed")
			return
		}
		writeJSON(w, http.StatusCreated, authResponse{
			Token: token,
			User:  userPayload{ID: user.ID, Name: user.Name, Email: user.Email},
		})
	}
}

// POST /api/auth/login  { "email": ..., "password": ... }
func LoginHandler(accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid payload")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeMessage(w, http.StatusBadRequest, "Invalid payload")
			return
		}

		token, user, err := accounts.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, account.ErrInvalidCredentials) {
				writeMessage(w, http.StatusBadRequest, "Invalid credentials")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Login failed")
			return
		}
		writeJSON(w, http.StatusOK, authResponse{
			Token: token,
			User:  userPayload{ID: user.ID, Name: user.Name, Email: user.Email},
		})
	}
}

func validateRegister(name, email, password string) (string, bool) {
	if len(name) < 2 {
		return "Name must be at least 2 characters", false
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "Invalid email address", false
	}
	if len(password) < 6 {
		return "Password must be at least 6 characters", false
	}
	return "", true
}
