package http

import (
	"log/slog"
	"net/http"

	"eventbooking/internal/delivery/http/controllers"
	h "eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes.
// Event routes require a valid Bearer token; mutating routes also require the manageEvents right.
func NewRouter(eventController *controllers.EventController, authController *controllers.AuthController, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth(verifier, logger)
	can := func(perm domain.Permission, next http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequirePermission(perm)(next))
	}

	// Events
	mux.HandleFunc("POST /events", can(domain.PermissionManageEvents, eventController.CreateEvent))
	mux.HandleFunc("GET /events", authed(eventController.ListEvents))
	mux.HandleFunc("GET /events/{eventId}", can(domain.PermissionGetEvents, eventController.GetEvent))
	mux.HandleFunc("PATCH /events/{eventId}", can(domain.PermissionManageEvents, eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventId}", can(domain.PermissionManageEvents, eventController.DeleteEvent))
	mux.HandleFunc("POST /events/{eventId}/book", authed(eventController.BookEvent))

	// Auth
	mux.HandleFunc("POST /auth/register", authController.Register)
	mux.HandleFunc("POST /auth/login", authController.Login)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with panic recovery, request logging and CORS.
func NewHandler(mux http.Handler, logger *slog.Logger, cors middleware.CORSOptions) http.Handler {
	var handler http.Handler = mux
	handler = middleware.CORS(cors, handler)
	handler = middleware.Recoverer(logger, handler)
	handler = middleware.RequestLogger(logger, handler)
	return handler
}
