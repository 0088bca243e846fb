// Package testfixtures provides deterministic domain fixtures and store
// helpers shared by the application, persistence, and transport tests.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/appointment-booker/internal/calendar"
	"github.com/example/appointment-booker/internal/persistence"
)

var (
	userCounter uint64
	slotCounter uint64
)

// referenceDay is a Wednesday, so week-start arithmetic is easy to follow in
// fixtures built relative to it.
var referenceDay = time.Date(2025, time.February, 12, 0, 0, 0, 0, time.UTC)

// ReferenceDay returns the canonical baseline day used by fixtures.
func ReferenceDay() time.Time {
	return referenceDay
}

// UserOption configures a generated user record.
type UserOption func(*persistence.UserRecord)

// WithEmail overrides the generated email.
func WithEmail(email string) UserOption {
	return func(u *persistence.UserRecord) { u.Email = email }
}

// AsAdmin marks the generated user as an administrator.
func AsAdmin() UserOption {
	return func(u *persistence.UserRecord) { u.IsAdmin = true }
}

// NewUserRecord returns a deterministic directory entry with optional
// overrides.
func NewUserRecord(opts ...UserOption) persistence.UserRecord {
	idx := atomic.AddUint64(&userCounter, 1)
	record := persistence.UserRecord{
		Email: fmt.Sprintf("user-%03d@example.com", idx),
	}
	for _, opt := range opts {
		opt(&record)
	}
	return record
}

// SlotOption configures a generated slot.
type SlotOption func(*calendar.Slot)

// OnDay places the slot on the given date.
func OnDay(date time.Time) SlotOption {
	return func(s *calendar.Slot) { s.Date = date }
}

// AtHour sets the slot's hour label.
func AtHour(hour string) SlotOption {
	return func(s *calendar.Slot) { s.Hour = hour }
}

// InCategory sets the slot's category.
func InCategory(category calendar.Category) SlotOption {
	return func(s *calendar.Slot) { s.Category = category }
}

// OwnedBy sets the slot's owner email. An empty owner makes the slot an
// available placeholder.
func OwnedBy(email string) SlotOption {
	return func(s *calendar.Slot) { s.OwnerEmail = email }
}

// NewSlot returns a deterministic booked slot with optional overrides. Each
// call advances one hour within the reference day, wrapping daily.
func NewSlot(opts ...SlotOption) calendar.Slot {
	idx := atomic.AddUint64(&slotCounter, 1)
	slot := calendar.Slot{
		Date:       referenceDay.AddDate(0, 0, int(idx/24)),
		Hour:       calendar.HourLabel(int(idx % 24)),
		Category:   calendar.CategoryFirst,
		OwnerEmail: fmt.Sprintf("owner-%03d@example.com", idx),
	}
	for _, opt := range opts {
		opt(&slot)
	}
	return slot
}
