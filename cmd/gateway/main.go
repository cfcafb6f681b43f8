package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/chaman2003/epsilora-api/internal/api/http"
	"github.com/chaman2003/epsilora-api/internal/audit"
	auth "github.com/chaman2003/epsilora-api/internal/auth/middleware"
	"github.com/chaman2003/epsilora-api/internal/chat"
	"github.com/chaman2003/epsilora-api/internal/config"
	"github.com/chaman2003/epsilora-api/internal/course"
	"github.com/chaman2003/epsilora-api/internal/db"
	"github.com/chaman2003/epsilora-api/internal/llm"
	"github.com/chaman2003/epsilora-api/internal/quiz"
	"github.com/chaman2003/epsilora-api/internal/quizgen"
	"github.com/chaman2003/epsilora-api/internal/rbac"
	"github.com/chaman2003/epsilora-api/internal/stats"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	if cfg.DemoSeed {
		if err := db.SeedDemo(ctx, dbh); err != nil {
			log.Fatalf("demo seed failed: %v", err)
		}
	}

	eventLog := audit.NewEventLog(dbh)
	quizStore := quiz.NewSQLStore(dbh, cfg.DBDriver)
	courseStore := course.NewSQLStore(dbh)
	chatStore := chat.NewSQLStore(dbh)

	// --- LLM provider (retry + audit wrapped) ---
	if err := cfg.LLM.Validate(); err != nil {
		log.Fatalf("llm config: %v", err)
	}
	provider, err := llm.NewProvider(cfg.LLM, eventLog)
	if err != nil {
		log.Fatalf("llm provider: %v", err)
	}

	generator := quizgen.New(provider, quizgen.DefaultConfig())
	statsSvc := stats.NewService(quizStore)
	chatSvc := chat.NewService(chatStore, provider, statsSvc, chat.NewSessionCache())

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Login invalidates the user's cached chat session so a returning
	// user starts a fresh conversation.
	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh, chatSvc.Reset))

	// Protected API (JWT → subject+role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("course:list")).
			Get("/courses", api.ListCoursesHandler(courseStore))
		pr.With(rbac.Require("course:list")).
			Get("/courses/{courseID}", api.GetCourseHandler(courseStore))
		pr.With(rbac.Require("course:create")).
			Post("/courses", api.CreateCourseHandler(courseStore))

		pr.With(rbac.Require("quiz:generate")).
			Post("/quizzes/generate", api.GenerateQuizHandler(generator, courseStore, quizStore))
		pr.With(rbac.Require("quiz:view")).
			Get("/quizzes", api.ListQuizzesHandler(quizStore))
		pr.With(rbac.Require("quiz:view")).
			Get("/quizzes/{quizID}", api.GetQuizHandler(quizStore))

		pr.With(rbac.Require("attempt:create")).
			Post("/attempts", api.CreateAttemptHandler(quizStore))
		pr.With(rbac.Require("attempt:answer")).
			Post("/attempts/{attemptID}/view/{questionID}", api.ViewQuestionHandler(quizStore))
		pr.With(rbac.Require("attempt:answer")).
			Post("/attempts/{attemptID}/answers", api.SaveAnswerHandler(quizStore))
		pr.With(rbac.Require("attempt:submit")).
			Post("/attempts/{attemptID}/submit", api.SubmitAttemptHandler(quizStore, eventLog))
		pr.With(rbac.Require("attempt:submit")).
			Post("/attempts/{attemptID}/abandon", api.AbandonAttemptHandler(quizStore))
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/attempts/{attemptID}", api.GetAttemptHandler(quizStore))
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/attempts", api.ListAttemptsHandler(quizStore))

		pr.With(rbac.Require("chat:use")).
			Post("/chat/sessions", api.StartChatSessionHandler(chatSvc))
		pr.With(rbac.Require("chat:use")).
			Get("/chat/sessions", api.ListChatSessionsHandler(chatSvc))
		pr.With(rbac.Require("chat:use")).
			Post("/chat/sessions/{sessionID}/messages", api.SendChatMessageHandler(chatSvc))
		pr.With(rbac.Require("chat:use")).
			Get("/chat/sessions/{sessionID}/messages", api.ChatHistoryHandler(chatSvc))

		pr.With(rbac.RequireAny("stats:view-own", "stats:view-all")).
			Get("/stats/summary", api.StatsSummaryHandler(statsSvc))

		pr.With(rbac.Require("audit:view")).
			Get("/admin/events", api.RecentEventsHandler(eventLog))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	log.Printf("listening on %s (db=%s, llm=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.LLM.Provider)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
