package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/examportal/backend/internal/account"
	api "github.com/examportal/backend/internal/api/http"
	"github.com/examportal/backend/internal/auth"
	"github.com/examportal/backend/internal/config"
	"github.com/examportal/backend/internal/db"
	"github.com/examportal/backend/internal/exam"
	"github.com/examportal/backend/internal/seed"
)

func main() {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if cfg.SeedFile != "" {
		f, err := seed.Load(cfg.SeedFile)
		if err != nil {
			log.Fatalf("seed load failed: %v", err)
		}
		if err := seed.Apply(ctx, dbh, f); err != nil {
			log.Fatalf("seed apply failed: %v", err)
		}
		log.Printf("seeded %d exams from %s", len(f.Exams), cfg.SeedFile)
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	accounts := account.NewService(account.NewSQLStore(dbh), tokens, cfg.BcryptCost)
	exams := exam.NewService(exam.NewSQLStore(dbh))

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Mount("/", api.NewRouter(accounts, exams, tokens))

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
