package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"stamprally/internal/delivery/http/controllers"
	"stamprally/internal/delivery/http/middleware"
	"stamprally/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	cardController *controllers.CardController,
	stampController *controllers.StampController,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Visitor routes
	mux.HandleFunc("GET /events/active", cardController.GetActiveEvent)
	mux.HandleFunc("GET /events/{eventID}/card", cardController.GetCard)
	mux.HandleFunc("POST /events/{eventID}/stamps", stampController.SubmitStamp)
	mux.HandleFunc("POST /stamps/scan", stampController.SubmitScan)

	// Admin
	admin := middleware.RequireAdmin(verifier)
	mux.HandleFunc("POST /admin/login", authController.Login)
	mux.HandleFunc("POST /admin/events", admin(eventController.CreateEvent))
	mux.HandleFunc("GET /admin/events", admin(eventController.ListEvents))
	mux.HandleFunc("GET /admin/events/{eventID}", admin(eventController.GetEvent))
	mux.HandleFunc("PATCH /admin/events/{eventID}/status", admin(eventController.UpdateStatus))
	mux.HandleFunc("POST /admin/events/{eventID}/qrcodes", admin(eventController.RegenerateQRCodes))
	mux.HandleFunc("GET /admin/events/{eventID}/statistics", admin(eventController.Statistics))
	mux.HandleFunc("POST /admin/events/{eventID}/redemptions", admin(eventController.Redeem))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
