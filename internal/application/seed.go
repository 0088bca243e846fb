package application

import (
	"time"

	"github.com/example/appointment-booker/internal/calendar"
)

// DemoOwnerEmail owns the example bookings seeded on first-ever load.
const DemoOwnerEmail = "demo.user@example.com"

// DemoSlots returns the example dataset written to an empty store: one
// booking per category across the first demo weekend.
func DemoSlots() []calendar.Slot {
	return []calendar.Slot{
		{
			Date:       time.Date(2025, time.February, 7, 0, 0, 0, 0, time.UTC),
			Hour:       "10:00",
			Category:   calendar.CategoryFirst,
			OwnerEmail: DemoOwnerEmail,
		},
		{
			Date:       time.Date(2025, time.February, 7, 0, 0, 0, 0, time.UTC),
			Hour:       "14:00",
			Category:   calendar.CategorySecond,
			OwnerEmail: DemoOwnerEmail,
		},
		{
			Date:       time.Date(2025, time.February, 8, 0, 0, 0, 0, time.UTC),
			Hour:       "15:00",
			Category:   calendar.CategoryThird,
			OwnerEmail: DemoOwnerEmail,
		},
	}
}
