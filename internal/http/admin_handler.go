package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/appointment-booker/internal/calendar"
)

type adminService interface {
	AddAvailableSlot(ctx context.Context, date time.Time, hour string, category calendar.Category) (calendar.Slot, error)
	AllSlots(ctx context.Context) ([]calendar.Slot, error)
}

// AdminHandler exposes slot seeding and the full bookings listing.
type AdminHandler struct {
	service   adminService
	responder responder
	logger    *slog.Logger
}

func NewAdminHandler(service adminService, logger *slog.Logger) *AdminHandler {
	base := defaultLogger(logger)
	return &AdminHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AdminHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AdminHandler", operation, attrs...)
}

// AddSlot seeds an available placeholder. The seeding form submits
// zero-padded hour labels; both label forms are accepted here.
func (h *AdminHandler) AddSlot(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "AddSlot", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	date, hour, category, err := parseSlotCoordinates(req.Date, req.Time, req.Category)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	seeded, err := h.service.AddAvailableSlot(r.Context(), date, hour, category)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, newSlotResponse(seeded))
}

// ListSlots returns every ledger entry for the admin bookings table.
func (h *AdminHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.AllSlots(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, newSlotResponses(slots))
}
