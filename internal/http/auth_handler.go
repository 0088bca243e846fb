package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/appointment-booker/internal/application"
)

type authService interface {
	Signup(ctx context.Context, email string) (application.User, error)
	Login(ctx context.Context, email string) (application.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (application.Session, bool, error)
}

// AuthHandler exposes signup, login, logout, and the current session.
type AuthHandler struct {
	service   authService
	responder responder
	logger    *slog.Logger
}

func NewAuthHandler(service authService, logger *slog.Logger) *AuthHandler {
	base := defaultLogger(logger)
	return &AuthHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AuthHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AuthHandler", operation, attrs...)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	email, ok := h.decodeEmail(w, r, "Signup")
	if !ok {
		return
	}

	user, err := h.service.Signup(r.Context(), email)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.log(r.Context(), "Signup", "email", user.Email).InfoContext(r.Context(), "user registered", "is_admin", user.IsAdmin)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, newUserResponse(user))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email, ok := h.decodeEmail(w, r, "Login")
	if !ok {
		return
	}

	user, err := h.service.Login(r.Context(), email)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.log(r.Context(), "Login", "email", user.Email).InfoContext(r.Context(), "session activated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, newUserResponse(user))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *AuthHandler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	session, ok, err := h.service.Current(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if !ok {
		h.responder.handleServiceError(r.Context(), w, application.ErrNotAuthenticated)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, userResponse{Email: session.Email, IsAdmin: session.IsAdmin})
}

func (h *AuthHandler) decodeEmail(w http.ResponseWriter, r *http.Request, operation string) (string, bool) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), operation, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return "", false
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return "", false
	}
	return email, true
}
