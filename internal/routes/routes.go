package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/eventhub-app/backend/internal/config"
	"github.com/eventhub-app/backend/internal/handlers"
	"github.com/eventhub-app/backend/internal/middleware"
	"github.com/eventhub-app/backend/internal/store"
)

// New builds the application mux. Method+pattern routing keeps the literal
// self-service routes (/user/update) ahead of the parameterized /user/{id}.
func New(
	st store.Store,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	usersHandler *handlers.UsersHandler,
	eventsHandler *handlers.EventsHandler,
	healthHandler *handlers.HealthHandler,
	googleAuthHandler *handlers.GoogleAuthHandler,
) *http.ServeMux {
	mux := http.NewServeMux()

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.AuthMiddleware(next, &cfg.JWT, st.Tokens())
	}

	// Health check routes
	mux.HandleFunc("GET /healthz", healthHandler.HealthCheck)
	mux.HandleFunc("GET /livez", healthHandler.LivenessCheck)
	mux.HandleFunc("GET /readyz", healthHandler.ReadinessCheck)

	// API docs
	mux.Handle("GET /docs/", httpSwagger.WrapHandler)

	// Authentication routes
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /current_user", authed(authHandler.CurrentUser))
	mux.HandleFunc("POST /logout", authed(authHandler.Logout))
	mux.HandleFunc("GET /auth/google/login", googleAuthHandler.GoogleLogin)
	mux.HandleFunc("GET /auth/google/callback", googleAuthHandler.GoogleCallback)

	// Self-service account routes (bearer token)
	mux.HandleFunc("PUT /user/update", authed(authHandler.UpdateProfile))
	mux.HandleFunc("PUT /user/updatepassword", authed(authHandler.UpdatePassword))
	mux.HandleFunc("DELETE /user/delete_account", authed(authHandler.DeleteAccount))

	// User CRUD
	mux.HandleFunc("GET /users", usersHandler.List)
	mux.HandleFunc("POST /user", usersHandler.Create)
	mux.HandleFunc("GET /user/{id}", usersHandler.Get)
	mux.HandleFunc("PUT /user/{id}", usersHandler.Update)
	mux.HandleFunc("DELETE /user/{id}", usersHandler.Delete)
	mux.HandleFunc("GET /user/{id}/events", eventsHandler.ListByUser)

	// Event CRUD
	mux.HandleFunc("POST /event", eventsHandler.Create)
	mux.HandleFunc("GET /event/{id}", eventsHandler.Get)
	mux.HandleFunc("PUT /event/{id}", eventsHandler.Update)
	mux.HandleFunc("DELETE /event/{id}", eventsHandler.Delete)

	return mux
}
