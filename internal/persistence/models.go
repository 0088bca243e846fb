package persistence

import (
	"fmt"
	"time"

	"github.com/example/appointment-booker/internal/calendar"
)

// UserRecord is the wire form of a directory entry. The same shape is stored
// under the currentUser key for the active session.
type UserRecord struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// SlotRecord is the wire form of a ledger entry. Date carries a full RFC 3339
// timestamp even though only the calendar day participates in slot identity.
// An empty UserEmail marks an available placeholder.
type SlotRecord struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Category  string `json:"category"`
	UserEmail string `json:"userEmail"`
}

// NewSlotRecord converts a domain slot into its wire form.
func NewSlotRecord(slot calendar.Slot) SlotRecord {
	return SlotRecord{
		Date:      slot.Date.UTC().Format(time.RFC3339),
		Time:      slot.Hour,
		Category:  string(slot.Category),
		UserEmail: slot.OwnerEmail,
	}
}

// Slot converts the record back into a domain slot.
func (r SlotRecord) Slot() (calendar.Slot, error) {
	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return calendar.Slot{}, fmt.Errorf("parse slot date %q: %w", r.Date, err)
	}
	return calendar.Slot{
		Date:       date,
		Hour:       r.Time,
		Category:   calendar.Category(r.Category),
		OwnerEmail: r.UserEmail,
	}, nil
}
