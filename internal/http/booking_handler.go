package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/appointment-booker/internal/calendar"
)

type bookingService interface {
	BookSlot(ctx context.Context, date time.Time, hour string, category calendar.Category) (calendar.Slot, error)
	CancelBooking(ctx context.Context, date time.Time, hour string, category calendar.Category) error
	WeekGrid(ctx context.Context, anchor time.Time, category calendar.Category) (calendar.WeekGrid, error)
}

// BookingHandler exposes booking, cancellation, and the week grid.
type BookingHandler struct {
	service   bookingService
	responder responder
	logger    *slog.Logger
}

func NewBookingHandler(service bookingService, logger *slog.Logger) *BookingHandler {
	base := defaultLogger(logger)
	return &BookingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *BookingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BookingHandler", operation, attrs...)
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Book", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	date, hour, category, err := parseSlotCoordinates(req.Date, req.Time, req.Category)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	booked, err := h.service.BookSlot(r.Context(), date, hour, category)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, newSlotResponse(booked))
}

// Cancel removes the caller's booking identified by the date, time, and
// category query parameters. Cancelling an absent booking still answers 204.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	date, hour, category, err := parseSlotCoordinates(
		strings.TrimSpace(query.Get("date")),
		strings.TrimSpace(query.Get("time")),
		strings.TrimSpace(query.Get("category")),
	)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	if err := h.service.CancelBooking(r.Context(), date, hour, category); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *BookingHandler) WeekGrid(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	rawAnchor := strings.TrimSpace(query.Get("anchor"))
	if rawAnchor == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingAnchor)
		return
	}
	anchor, err := parseDate(rawAnchor)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	category, err := calendar.ParseCategory(strings.TrimSpace(query.Get("category")))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCategory)
		return
	}

	grid, err := h.service.WeekGrid(r.Context(), anchor, category)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, newGridResponse(grid))
}
