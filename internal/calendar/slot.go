package calendar

import (
	"fmt"
	"time"
)

// Slot is a single ledger entry. An empty OwnerEmail marks an available
// placeholder seeded by an administrator; such entries carry no booking
// semantics.
type Slot struct {
	Date       time.Time
	Hour       string
	Category   Category
	OwnerEmail string
}

// Key identifies a slot for booking and cancellation purposes. Identity is
// the (calendar day, hour label, category) tuple: Date values carry full
// timestamps but only the day matters, so Day is truncated to midnight UTC.
type Key struct {
	Day      time.Time
	Hour     string
	Category Category
}

// NewKey builds the identity tuple for the given coordinates. The hour label
// is canonicalised to the unpadded grid form so that slots seeded through the
// zero-padded admin form and bookings made from the grid share one identity.
func NewKey(date time.Time, hour string, category Category) Key {
	return Key{Day: DayOf(date), Hour: canonicalHour(hour), Category: category}
}

func canonicalHour(label string) string {
	if len(label) == 5 && label[0] == '0' {
		return label[1:]
	}
	return label
}

// Key returns the identity tuple of the slot.
func (s Slot) Key() Key {
	return NewKey(s.Date, s.Hour, s.Category)
}

// Booked reports whether the slot carries an owner.
func (s Slot) Booked() bool {
	return s.OwnerEmail != ""
}

// DayOf truncates a timestamp to its calendar day at midnight UTC.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// HourLabel formats an hour 0..23 as the grid label "H:00", without zero
// padding. The admin seeding form uses FormHourLabel instead.
func HourLabel(hour int) string {
	return fmt.Sprintf("%d:00", hour)
}

// FormHourLabel formats an hour 0..23 as the zero-padded form label "HH:00".
func FormHourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// HourLabels returns the 24 grid hour labels in order.
func HourLabels() []string {
	labels := make([]string, hoursPerDay)
	for h := range labels {
		labels[h] = HourLabel(h)
	}
	return labels
}

// FormHourLabels returns the 24 zero-padded form hour labels in order.
func FormHourLabels() []string {
	labels := make([]string, hoursPerDay)
	for h := range labels {
		labels[h] = FormHourLabel(h)
	}
	return labels
}

// ValidHourLabel reports whether the raw value is one of the 24 recognised
// hour labels, padded or not.
func ValidHourLabel(raw string) bool {
	for h := 0; h < hoursPerDay; h++ {
		if raw == HourLabel(h) || raw == FormHourLabel(h) {
			return true
		}
	}
	return false
}
