package http

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// RouterConfig collects the handlers and guards for the API surface.
type RouterConfig struct {
	Auth     *AuthHandler
	Bookings *BookingHandler
	Admin    *AdminHandler
	Sessions SessionSource
	Logger   *slog.Logger
}

// NewRouter assembles the route table. Auth endpoints are public; calendar
// and booking routes require a session; admin routes additionally require an
// administrator session.
func NewRouter(cfg RouterConfig) http.Handler {
	router := mux.NewRouter()

	if cfg.Auth != nil {
		router.HandleFunc("/auth/signup", cfg.Auth.Signup).Methods(http.MethodPost)
		router.HandleFunc("/auth/login", cfg.Auth.Login).Methods(http.MethodPost)
		router.HandleFunc("/auth/session", cfg.Auth.CurrentSession).Methods(http.MethodGet)
		router.HandleFunc("/auth/session", cfg.Auth.Logout).Methods(http.MethodDelete)
	}

	requireSession := RequireSession(cfg.Sessions, cfg.Logger)

	if cfg.Bookings != nil {
		router.Handle("/calendar/week", requireSession(http.HandlerFunc(cfg.Bookings.WeekGrid))).Methods(http.MethodGet)
		router.Handle("/bookings", requireSession(http.HandlerFunc(cfg.Bookings.Book))).Methods(http.MethodPost)
		router.Handle("/bookings", requireSession(http.HandlerFunc(cfg.Bookings.Cancel))).Methods(http.MethodDelete)
	}

	if cfg.Admin != nil {
		admin := router.PathPrefix("/admin").Subrouter()
		admin.Use(mux.MiddlewareFunc(requireSession), mux.MiddlewareFunc(RequireAdmin(cfg.Logger)))
		admin.HandleFunc("/slots", cfg.Admin.ListSlots).Methods(http.MethodGet)
		admin.HandleFunc("/slots", cfg.Admin.AddSlot).Methods(http.MethodPost)
	}

	return router
}
