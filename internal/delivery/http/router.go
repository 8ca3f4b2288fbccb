package http

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"eventmanagement/internal/delivery/http/controllers"
	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Users      *controllers.UserController
	Admin      *controllers.AdminController
	Venues     *controllers.VenueController
	Performers *controllers.PerformerController
	Events     *controllers.EventController
}

// Pinger reports whether a backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterConfig holds the non-controller dependencies of the router.
type RouterConfig struct {
	Verifier       domain.TokenVerifier
	DB             Pinger
	UploadDir      string
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(cfg.Verifier, cfg.Logger)
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(domain.RoleAdmin)(next))
	}

	// Users
	mux.HandleFunc("POST /api/users/registration", c.Users.SignUp)
	mux.HandleFunc("POST /api/users/login", c.Users.Login)
	mux.HandleFunc("GET /api/users", c.Users.List)
	mux.HandleFunc("GET /api/users/by-username", c.Users.GetByUsername)
	mux.HandleFunc("GET /api/users/duplicate-email", c.Users.DuplicateEmail)
	mux.HandleFunc("GET /api/users/duplicate-username", c.Users.DuplicateUsername)
	mux.HandleFunc("GET /api/users/me/saved-events", auth(c.Events.ListSaved))
	mux.HandleFunc("GET /api/users/{userId}", c.Users.Get)
	mux.HandleFunc("PATCH /api/users/{userId}", auth(c.Users.Update))
	mux.HandleFunc("GET /api/users/{userId}/events", c.Events.ListByUser)

	// Admin
	mux.HandleFunc("PATCH /api/admin/users/{userId}", admin(c.Admin.UpdateUser))
	mux.HandleFunc("DELETE /api/admin/users/{userId}", admin(c.Admin.DeleteUser))
	mux.HandleFunc("POST /api/admin/venues", admin(c.Admin.CreateVenue))
	mux.HandleFunc("PATCH /api/admin/venues/{venueId}", admin(c.Admin.UpdateVenue))
	mux.HandleFunc("DELETE /api/admin/venues/{venueId}", admin(c.Admin.DeleteVenue))

	// Venues and performers
	mux.HandleFunc("GET /api/venues", c.Venues.List)
	mux.HandleFunc("GET /api/venues/duplicate-name", c.Venues.DuplicateName)
	mux.HandleFunc("GET /api/venues/{venueId}", c.Venues.Get)
	mux.HandleFunc("GET /api/performers", c.Performers.List)
	mux.HandleFunc("GET /api/performers/{performerId}", c.Performers.Get)

	// Events
	mux.HandleFunc("POST /api/events", auth(c.Events.Create))
	mux.HandleFunc("GET /api/events", c.Events.List)
	mux.HandleFunc("GET /api/events/upcoming", c.Events.Upcoming)
	mux.HandleFunc("GET /api/events/past", c.Events.Past)
	mux.HandleFunc("GET /api/events/filter-events", c.Events.FilterOptions)
	mux.HandleFunc("GET /api/events/{eventId}", c.Events.Get)
	mux.HandleFunc("PATCH /api/events/{eventId}", auth(c.Events.Update))
	mux.HandleFunc("DELETE /api/events/{eventId}", auth(c.Events.Delete))
	mux.HandleFunc("GET /api/events/{eventId}/save", auth(c.Events.IsSaved))
	mux.HandleFunc("POST /api/events/{eventId}/save", auth(c.Events.Save))
	mux.HandleFunc("DELETE /api/events/{eventId}/save", auth(c.Events.Unsave))

	// Uploaded images
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(filesOnly{http.Dir(cfg.UploadDir)})))

	mux.HandleFunc("GET /healthz", healthHandler(cfg.DB, cfg.Logger))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with the request middleware chain:
// panic recovery, request id, access log and CORS.
func NewHandler(c Controllers, cfg RouterConfig) http.Handler {
	var h http.Handler = NewRouter(c, cfg)
	h = middleware.CORS(cfg.AllowedOrigins, h)
	h = middleware.LoggingMiddleware(cfg.Logger, h)
	h = middleware.RequestID(h)
	return middleware.Recover(cfg.Logger, h)
}

// filesOnly hides directories so the upload folder cannot be listed.
type filesOnly struct {
	root http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.root.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func healthHandler(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			logger.WarnContext(r.Context(), "health check failed", "err", err)
			helpers.WriteJSONSuccess(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Database: "unreachable"})
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, healthResponse{Status: "ok", Database: "ok"})
	}
}
