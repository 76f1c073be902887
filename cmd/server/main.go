package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"stamprally/config"
	"stamprally/internal/adapters/auth"
	"stamprally/internal/adapters/email"
	"stamprally/internal/adapters/qrcode"
	delivery "stamprally/internal/delivery/http"
	"stamprally/internal/delivery/http/controllers"
	"stamprally/internal/delivery/http/middleware"
	"stamprally/internal/metrics"
	"stamprally/internal/repository/postgres"
	"stamprally/internal/services"
)

// @title Stamp Rally API
// @version 1.0
// @description Backend for the bingo stamp rally: visitor cards, QR stamp
// @description collection, and admin event management.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	storeRepo := postgres.NewStoreRepository(db)
	prizeRepo := postgres.NewPrizeRepository(db)
	visitorRepo := postgres.NewVisitorRepository(db)
	progressRepo := postgres.NewProgressRepository(db)
	achievementRepo := postgres.NewAchievementRepository(db)
	adminRepo := postgres.NewAdminRepository(db)
	stampStore := postgres.NewStampStore(db)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenCodec := auth.NewJWTCodec(cfg.JWTSecret)
	mailer := email.NewMailer(email.Config{
		Provider:       cfg.MailProvider,
		FromAddress:    cfg.MailFromAddress,
		FromName:       cfg.MailFromName,
		SESRegion:      cfg.SESRegion,
		SESAccessKeyID: cfg.SESAccessKeyID,
		SESSecretKey:   cfg.SESSecretKey,
	})
	qrEncoder := qrcode.NewEncoder()
	m := metrics.New(prometheus.DefaultRegisterer)

	stampService := services.NewStampService(eventRepo, visitorRepo, prizeRepo, stampStore, logger, m)
	cardService := services.NewCardService(eventRepo, storeRepo, prizeRepo, progressRepo, achievementRepo)
	eventService := services.NewEventService(eventRepo, storeRepo, prizeRepo, progressRepo, achievementRepo, qrEncoder, mailer, cfg.AdminEmail, logger)
	authService := services.NewAuthService(adminRepo, hasher, tokenCodec, logger)

	cardController := controllers.NewCardController(logger, cardService)
	stampController := controllers.NewStampController(logger, stampService)
	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService)

	mux := delivery.NewRouter(cardController, stampController, authController, eventController, tokenCodec)

	secureCookies := cfg.Environment == "production"
	handler := middleware.CORS(cfg.CORSOrigins,
		middleware.Logging(logger,
			middleware.VisitorIdentity(secureCookies, mux)))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
