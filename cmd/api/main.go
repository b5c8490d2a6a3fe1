package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "confms/docs"
	"confms/internal/auth"
	"confms/internal/config"
	"confms/internal/database"
	"confms/internal/email"
	"confms/internal/handlers"
	"confms/internal/logger"
	"confms/internal/middleware"
	"confms/internal/repository"
	"confms/internal/service"
)

// @title Conference Management API
// @version 1.0
// @description Peer review management for conference submissions: review
// @description collection, decision support and text analysis.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.Info("Starting conference management service", "environment", cfg.App.Environment)

	db, err := database.New(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	migrator := database.NewMigrationExecutor(db.DB)
	if err := migrator.RunMigrations("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Repositories
	reviewerRepo := repository.NewReviewerRepository(db.DB)
	assignmentRepo := repository.NewAssignmentRepository(db.DB)
	reviewRepo := repository.NewReviewRepository(db.DB)
	decisionRepo := repository.NewDecisionRepository(db.DB)
	invitationRepo := repository.NewInvitationRepository(db.DB)
	discussionRepo := repository.NewDiscussionRepository(db.DB)
	excerptRepo := repository.NewExcerptRepository(db.DB)

	// Services
	authService := auth.NewService(&cfg.JWT)
	emailService := email.NewService(&cfg.Email)
	reviewService := service.NewReviewService(reviewRepo, reviewerRepo, assignmentRepo, decisionRepo, discussionRepo, emailService)
	assignmentService := service.NewAssignmentService(assignmentRepo, reviewerRepo)
	reviewerService := service.NewReviewerService(reviewerRepo, invitationRepo, emailService, cfg.App.FrontendURL)
	analysisService := service.NewAnalysisService(excerptRepo)

	// Handlers
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	reviewerHandler := handlers.NewReviewerHandler(reviewerService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	corsMiddleware := middleware.NewCORSMiddleware(&cfg.CORS)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit)
	chairOnly := middleware.RequireRole(middleware.RoleChair)

	mux := http.NewServeMux()

	// Text analysis
	mux.Handle("POST /api/v1/analysis/similarity", authMiddleware.Authenticate(http.HandlerFunc(analysisHandler.CheckSimilarity)))
	mux.Handle("POST /api/v1/analysis/summarize", authMiddleware.Authenticate(http.HandlerFunc(analysisHandler.Summarize)))
	mux.Handle("POST /api/v1/analysis/keywords", authMiddleware.Authenticate(http.HandlerFunc(analysisHandler.ExtractKeywords)))
	mux.Handle("POST /api/v1/analysis/reviewer-match", authMiddleware.Authenticate(http.HandlerFunc(analysisHandler.MatchReviewers)))
	mux.Handle("POST /api/v1/analysis/plagiarism/{id}", authMiddleware.Authenticate(chairOnly(http.HandlerFunc(analysisHandler.CheckPlagiarism))))

	// Reviews and decisions
	mux.Handle("POST /api/v1/reviews/submit", authMiddleware.OptionalAuth(http.HandlerFunc(reviewHandler.SubmitReview)))
	mux.Handle("GET /api/v1/reviews/summary/{paperId}", authMiddleware.Authenticate(http.HandlerFunc(reviewHandler.GetReviewSummary)))
	mux.Handle("GET /api/v1/reviews/assignments", authMiddleware.Authenticate(http.HandlerFunc(reviewHandler.GetAssignments)))
	mux.Handle("GET /api/v1/reviews/submissions-for-decision", authMiddleware.Authenticate(chairOnly(http.HandlerFunc(reviewHandler.GetSubmissionsForDecision))))
	mux.Handle("POST /api/v1/reviews/decision", authMiddleware.Authenticate(chairOnly(http.HandlerFunc(reviewHandler.SubmitDecision))))
	mux.Handle("POST /api/v1/reviews/discussion", authMiddleware.Authenticate(http.HandlerFunc(reviewHandler.AddDiscussionComment)))
	mux.Handle("GET /api/v1/reviews/discussion/{paperId}", authMiddleware.Authenticate(http.HandlerFunc(reviewHandler.GetDiscussion)))

	// Assignments
	mux.Handle("POST /api/v1/assignments", authMiddleware.Authenticate(chairOnly(http.HandlerFunc(assignmentHandler.AssignReviewer))))
	mux.Handle("GET /api/v1/assignments/paper/{paperId}", authMiddleware.Authenticate(http.HandlerFunc(assignmentHandler.ListReviewersForPaper)))
	mux.Handle("POST /api/v1/assignments/{id}/respond", authMiddleware.Authenticate(http.HandlerFunc(assignmentHandler.RespondToAssignment)))

	// Reviewers and invitations
	mux.Handle("POST /api/v1/reviewers/invite", authMiddleware.Authenticate(chairOnly(http.HandlerFunc(reviewerHandler.InviteReviewer))))
	mux.Handle("POST /api/v1/reviewers/invitations/respond", authMiddleware.OptionalAuth(http.HandlerFunc(reviewerHandler.RespondToInvitation)))
	mux.Handle("GET /api/v1/reviewers/conference/{conferenceId}", authMiddleware.Authenticate(http.HandlerFunc(reviewerHandler.ListReviewers)))
	mux.Handle("GET /api/v1/reviewers/invitations/conference/{conferenceId}", authMiddleware.Authenticate(chairOnly(http.HandlerFunc(reviewerHandler.ListInvitations))))

	// Health and docs
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(); err != nil {
			handlers.ErrorResponse(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	handler := middleware.LoggingMiddleware(
		middleware.SecurityHeaders(
			corsMiddleware.Handler(
				rateLimiter.Limit(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
