package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/saiteja-29/V-Hire/internal/events"
	"github.com/saiteja-29/V-Hire/internal/handlers"
	"github.com/saiteja-29/V-Hire/internal/lifecycle"
	"github.com/saiteja-29/V-Hire/internal/metrics"
	"github.com/saiteja-29/V-Hire/internal/models"
	"github.com/saiteja-29/V-Hire/internal/notify"
	"github.com/saiteja-29/V-Hire/internal/payment"
	"github.com/saiteja-29/V-Hire/internal/repositories"
	"github.com/saiteja-29/V-Hire/internal/routers"
	"github.com/saiteja-29/V-Hire/internal/sandbox"
	"github.com/saiteja-29/V-Hire/internal/session"
	"github.com/saiteja-29/V-Hire/internal/settlement"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	dsn := getenv("DATABASE_URL", "host=localhost user=vhire password=vhire dbname=vhire port=5432 sslmode=disable")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&models.InterviewRequest{},
		&models.InterviewReport{},
		&models.SettlementRecord{},
		&models.InterviewerProfile{},
	); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{Addr: getenv("REDIS_ADDR", "redis:6379")})

	var notifier notify.Notifier
	if mailer, merr := notify.NewMailer(); merr != nil {
		logger.Warn("SMTP not configured, notifications disabled", zap.Error(merr))
	} else {
		notifier = mailer
	}

	interviews := &repositories.InterviewRepository{DB: db}
	reports := &repositories.ReportRepository{DB: db}
	settlements := &repositories.SettlementRepository{DB: db}
	profiles := &repositories.ProfileRepository{DB: db}

	manager := &lifecycle.Manager{
		Interviews:  interviews,
		Reports:     reports,
		Settlements: settlements,
		Profiles:    profiles,
		Notifier:    notifier,
		Publisher:   events.NewPublisher(rdb, logger),
		Log:         logger,
	}

	reconciler := &settlement.Reconciler{
		Settlements: settlements,
		Interviews:  interviews,
		Provider: payment.NewRazorpayProvider(
			os.Getenv("RAZORPAY_KEY_ID"),
			os.Getenv("RAZORPAY_SECRET"),
		),
		Log: logger,
	}

	h := &handlers.Handlers{
		Log:        logger,
		Manager:    manager,
		Reconciler: reconciler,
		Hub:        session.NewHub(),
		Runner: sandbox.NewRunner(
			getenv("COMPILER_API_URL", "https://onecompiler-apis.p.rapidapi.com/api/v1/run"),
			os.Getenv("COMPILER_API_KEY"),
		),
		JWTSecret: []byte(getenv("JWT_SECRET", "your-secret-key")),
	}

	// Sweep the settlement ledger whenever an interview completes.
	subCtx, subCancel := context.WithCancel(context.Background())
	defer subCancel()
	go events.Subscribe(subCtx, rdb, logger, func(ev events.Event) {
		if ev.Type != events.TypeCompleted {
			return
		}
		if _, serr := reconciler.SweepInvalid(subCtx); serr != nil {
			logger.Error("settlement sweep failed", zap.Error(serr))
		}
	})

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}),
		metrics.Middleware("coordinator"),
	)
	r.Mount("/", routers.New(h))

	addr := ":" + getenv("PORT", "8080")
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("coordinator listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("coordinator shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("coordinator exited")
}
