package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Routes below /events and /registrations require a valid bearer token.
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	attendeeController *controllers.AttendeeController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /register", authController.Register)
	mux.HandleFunc("POST /login", authController.Login)

	// Events
	mux.HandleFunc("GET /events", requireAuth(eventController.List))
	mux.HandleFunc("POST /events", requireAuth(eventController.Create))
	mux.HandleFunc("POST /events/bulk", requireAuth(eventController.BulkCreate))
	mux.HandleFunc("GET /events/{eventID}", requireAuth(eventController.Get))
	mux.HandleFunc("PUT /events/{eventID}", requireAuth(eventController.Update))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.Delete))

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/register", requireAuth(attendeeController.RegisterForEvent))
	mux.HandleFunc("GET /registrations", requireAuth(attendeeController.ListMyRegistrations))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
