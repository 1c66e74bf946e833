package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"quizportal-backend/internal/config"
	"quizportal-backend/internal/controller"
	"quizportal-backend/internal/db"
	"quizportal-backend/internal/model"
	"quizportal-backend/internal/repository"
	"quizportal-backend/internal/service"
	"quizportal-backend/pkg/middleware"
	"quizportal-backend/utilities"
)

func main() {
	printStartUpBanner()

	// .env only supplies secrets (DB password, JWT secret); it is optional.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	utilities.SetupLogging("logs")

	db.InitDBFromConfig(cfg)
	if err := db.GetDB().AutoMigrate(
		&model.Question{},
		&model.QuizAttempt{},
		&model.AttemptAnswer{},
		&model.Certificate{},
		&model.CertificateCounter{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Repositories.
	questionRepo := repository.NewQuestionRepository()
	attemptRepo := repository.NewAttemptRepository()
	certRepo := repository.NewCertificateRepository()

	if cfg.DB.Initialize {
		seedQuestionBank(questionRepo)
	}

	// Services.
	gate := service.NewAttemptGate(attemptRepo, cfg.Quiz.DailyAttemptLimit)
	codec := service.NewShuffleCodec(sessionSecret(), time.Duration(cfg.Quiz.SessionTTLMinutes)*time.Minute)
	scorer := service.NewScoringEngine()
	certService := service.NewCertificateService(certRepo, cfg.Quiz.CertificatePassPct)
	quizService := service.NewQuizService(questionRepo, attemptRepo, gate, codec, scorer, certService)
	analyticsService := service.NewAnalyticsService(attemptRepo)

	service.InitCertificateEventListeners()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}
	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}
	r.Use(utilities.AuthMiddleware())

	controller.RegisterRoutes(r, quizService, analyticsService, certService)

	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	utilities.Info("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// sessionSecret signs quiz-session tokens. Separate from the identity token
// secret so rotating one does not invalidate the other.
func sessionSecret() []byte {
	if s := os.Getenv("QUIZPORTAL_SESSION_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("quizportal-dev-session-secret")
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("QUIZPORTAL", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("QUIZ PORTAL API (v%s)\n\n", "1.0.0")
}
