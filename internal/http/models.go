package http

import (
	"time"

	"github.com/example/appointment-booker/internal/application"
	"github.com/example/appointment-booker/internal/calendar"
)

type emailRequest struct {
	Email string `json:"email"`
}

type userResponse struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func newUserResponse(user application.User) userResponse {
	return userResponse{Email: user.Email, IsAdmin: user.IsAdmin}
}

type slotRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Category string `json:"category"`
}

type slotResponse struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Category  string `json:"category"`
	UserEmail string `json:"userEmail"`
}

func newSlotResponse(slot calendar.Slot) slotResponse {
	return slotResponse{
		Date:      slot.Date.UTC().Format(time.RFC3339),
		Time:      slot.Hour,
		Category:  string(slot.Category),
		UserEmail: slot.OwnerEmail,
	}
}

func newSlotResponses(slots []calendar.Slot) []slotResponse {
	out := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, newSlotResponse(slot))
	}
	return out
}

type gridDayResponse struct {
	Date   string   `json:"date"`
	States []string `json:"states"`
}

type gridResponse struct {
	Start    string            `json:"start"`
	Category string            `json:"category"`
	Hours    []string          `json:"hours"`
	Days     []gridDayResponse `json:"days"`
}

func newGridResponse(grid calendar.WeekGrid) gridResponse {
	days := make([]gridDayResponse, 0, len(grid.Days))
	for _, day := range grid.Days {
		states := make([]string, 0, len(day.Hours))
		for _, state := range day.Hours {
			states = append(states, string(state))
		}
		days = append(days, gridDayResponse{
			Date:   day.Date.Format("2006-01-02"),
			States: states,
		})
	}

	return gridResponse{
		Start:    grid.Start.Format("2006-01-02"),
		Category: string(grid.Category),
		Hours:    calendar.HourLabels(),
		Days:     days,
	}
}

// parseDate accepts either a bare ISO calendar date or a full RFC 3339
// timestamp; the persisted form carries full timestamps while only the
// calendar day participates in identity.
func parseDate(raw string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", raw); err == nil {
		return date, nil
	}
	date, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return date, nil
}

// parseSlotCoordinates validates the transport primitives of a slot identity
// tuple before it reaches the application core.
func parseSlotCoordinates(rawDate, rawTime, rawCategory string) (time.Time, string, calendar.Category, error) {
	date, err := parseDate(rawDate)
	if err != nil {
		return time.Time{}, "", "", err
	}
	if !calendar.ValidHourLabel(rawTime) {
		return time.Time{}, "", "", errInvalidHourLabel
	}
	category, err := calendar.ParseCategory(rawCategory)
	if err != nil {
		return time.Time{}, "", "", errInvalidCategory
	}
	return date, rawTime, category, nil
}
